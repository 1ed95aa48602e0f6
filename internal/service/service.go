package service

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	apperrors "blog/internal/errors"
	"blog/internal/model"
	"blog/internal/policy"
	"blog/internal/repository"
)

const bcryptCost = 10

// resolvePrincipal loads the stored user behind p and returns a principal
// carrying its stored roles. Anonymous principals are denied; an
// authenticated email without a user record is fatal.
func resolvePrincipal(ctx context.Context, users repository.UserRepository, p policy.Principal) (*model.User, policy.Principal, error) {
	if p.IsAnonymous() {
		return nil, p, apperrors.ErrForbidden
	}
	user, err := users.FindByEmail(ctx, p.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, p, fmt.Errorf("principal %q: %w", p.Email, apperrors.ErrUnknownPrincipal)
		}
		return nil, p, fmt.Errorf("resolve principal: %w", err)
	}
	return user, policy.FromUser(user), nil
}

// findAfterCheck turns a not-found from a lookup that follows a successful
// existence check into the fatal ErrInvalidArgument.
func findAfterCheck(kind string, id uint, err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%s %d: %w", kind, id, apperrors.ErrInvalidArgument)
	}
	return fmt.Errorf("load %s %d: %w", kind, id, err)
}

func hashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hashed), nil
}

// encodePicture returns the inline representation of an upload, or "" for none.
func encodePicture(raw []byte) string {
	if len(raw) == 0 {
		return ""
	}
	return base64.StdEncoding.EncodeToString(raw)
}

// passwordChangeRequested reports whether an edit form asks for a new password:
// both fields filled in and equal. Anything else leaves the hash alone.
func passwordChangeRequested(password, confirm string) bool {
	return password != "" && confirm != "" && password == confirm
}
