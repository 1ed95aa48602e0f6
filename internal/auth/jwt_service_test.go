package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"blog/internal/model"
)

func testUser() *model.User {
	return &model.User{
		ID:    42,
		Email: "a@x.com",
		Roles: []model.Role{{ID: 2, Name: model.RoleUser}},
	}
}

func TestJWTService_AccessTokenRoundTrip(t *testing.T) {
	svc := NewJWTService("test-secret", time.Minute, time.Hour)

	id, token, err := svc.GenerateAccessToken(testUser())
	require.NoError(t, err)
	require.NotEmpty(t, id)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, id, claims.ID)
	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, "a@x.com", claims.Email)
	assert.Equal(t, TokenAccess, claims.Type)
	assert.Equal(t, []model.RoleName{model.RoleUser}, claims.RoleNames())

	_, err = svc.ValidateRefreshToken(token)
	assert.Error(t, err)
}

func TestJWTService_RefreshToken(t *testing.T) {
	svc := NewJWTService("test-secret", time.Minute, time.Hour)

	id, token, err := svc.GenerateRefreshToken(testUser())
	require.NoError(t, err)

	claims, err := svc.ValidateRefreshToken(token)
	require.NoError(t, err)
	assert.Equal(t, id, claims.ID)
	assert.Equal(t, TokenRefresh, claims.Type)
}

func TestJWTService_RejectsExpiredAndForeignTokens(t *testing.T) {
	svc := NewJWTService("test-secret", time.Minute, time.Hour)
	_, token, err := svc.GenerateAccessToken(testUser())
	require.NoError(t, err)

	svc.now = func() time.Time { return time.Now().Add(2 * time.Minute) }
	_, err = svc.ValidateToken(token)
	assert.Error(t, err)

	other := NewJWTService("other-secret", time.Minute, time.Hour)
	_, err = other.ValidateToken(token)
	assert.Error(t, err)

	_, err = svc.ValidateToken("garbage")
	assert.Error(t, err)
}

func TestClaims_RoleNamesDropsUnknown(t *testing.T) {
	c := &Claims{Roles: []string{"ROLE_ADMIN", "ROLE_ROOT"}}
	assert.Equal(t, []model.RoleName{model.RoleAdmin}, c.RoleNames())
}
