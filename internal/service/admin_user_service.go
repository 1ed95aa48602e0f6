package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	apperrors "blog/internal/errors"
	"blog/internal/metrics"
	"blog/internal/model"
	"blog/internal/policy"
	"blog/internal/repository"
)

// AdminEditInput is the submitted admin user form. RoleIDs is the complete
// new role set.
type AdminEditInput struct {
	Email           string
	FullName        string
	Password        string
	ConfirmPassword string
	RoleIDs         []uint
}

// AdminUserForm feeds the admin edit view.
type AdminUserForm struct {
	User  *model.User  `json:"user"`
	Roles []model.Role `json:"roles"`
}

// AdminDeleteView feeds the admin delete confirmation.
type AdminDeleteView struct {
	User     *model.User     `json:"user"`
	Articles []model.Article `json:"articles"`
}

// AdminUserService manages arbitrary accounts. Every operation requires ROLE_ADMIN.
type AdminUserService interface {
	List(ctx context.Context, p policy.Principal) ([]model.User, error)
	EditForm(ctx context.Context, p policy.Principal, id uint) (*AdminUserForm, error)
	Edit(ctx context.Context, p policy.Principal, id uint, in AdminEditInput) (*model.User, error)
	DeleteForm(ctx context.Context, p policy.Principal, id uint) (*AdminDeleteView, error)
	Delete(ctx context.Context, p policy.Principal, id uint) error
}

type adminUserService struct {
	store     repository.Store
	sanitizer *Sanitizer
	log       zerolog.Logger
}

// NewAdminUserService creates a new admin user service.
func NewAdminUserService(store repository.Store, sanitizer *Sanitizer, log zerolog.Logger) AdminUserService {
	return &adminUserService{
		store:     store,
		sanitizer: sanitizer,
		log:       log.With().Str("component", "admin").Logger(),
	}
}

func (s *adminUserService) List(ctx context.Context, p policy.Principal) ([]model.User, error) {
	if err := s.requireAdmin(ctx, s.store, p); err != nil {
		return nil, err
	}
	users, err := s.store.Users().List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

func (s *adminUserService) EditForm(ctx context.Context, p policy.Principal, id uint) (*AdminUserForm, error) {
	if err := s.requireAdmin(ctx, s.store, p); err != nil {
		return nil, err
	}
	user, err := loadUser(ctx, s.store.Users(), id)
	if err != nil {
		return nil, err
	}
	roles, err := s.store.Roles().List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list roles: %w", err)
	}
	return &AdminUserForm{User: user, Roles: roles}, nil
}

// Edit updates the account fields and replaces the role set.
func (s *adminUserService) Edit(ctx context.Context, p policy.Principal, id uint, in AdminEditInput) (*model.User, error) {
	var user *model.User
	err := s.store.WithTransaction(ctx, func(ctx context.Context, tx repository.Store) error {
		if err := s.requireAdmin(ctx, tx, p); err != nil {
			return err
		}
		var err error
		user, err = loadUser(ctx, tx.Users(), id)
		if err != nil {
			return err
		}

		roles, err := resolveRoles(ctx, tx.Roles(), in.RoleIDs)
		if err != nil {
			return err
		}
		if err := applyAccountEdit(ctx, tx.Users(), s.sanitizer, user, in.Email, in.FullName, in.Password, in.ConfirmPassword); err != nil {
			return err
		}

		if err := tx.Users().Update(ctx, user); err != nil {
			return fmt.Errorf("update user %d: %w", id, err)
		}
		if err := tx.Users().ReplaceRoles(ctx, user, roles); err != nil {
			return fmt.Errorf("replace roles of user %d: %w", id, err)
		}
		user.Roles = roles
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info().Uint("user_id", id).Str("by", p.Email).Strs("roles", roleLabels(user.Roles)).Msg("user updated by admin")
	return user, nil
}

func (s *adminUserService) DeleteForm(ctx context.Context, p policy.Principal, id uint) (*AdminDeleteView, error) {
	if err := s.requireAdmin(ctx, s.store, p); err != nil {
		return nil, err
	}
	user, err := loadUser(ctx, s.store.Users(), id)
	if err != nil {
		return nil, err
	}
	articles, err := s.store.Articles().ListByAuthor(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("list articles of user %d: %w", id, err)
	}
	return &AdminDeleteView{User: user, Articles: articles}, nil
}

// Delete removes the user, its role links and every article it wrote.
func (s *adminUserService) Delete(ctx context.Context, p policy.Principal, id uint) error {
	var removed int64
	err := s.store.WithTransaction(ctx, func(ctx context.Context, tx repository.Store) error {
		if err := s.requireAdmin(ctx, tx, p); err != nil {
			return err
		}
		user, err := loadUser(ctx, tx.Users(), id)
		if err != nil {
			return err
		}
		removed, err = tx.Articles().DeleteByAuthor(ctx, user.ID)
		if err != nil {
			return fmt.Errorf("delete articles of user %d: %w", id, err)
		}
		if err := tx.Users().Delete(ctx, user); err != nil {
			return fmt.Errorf("delete user %d: %w", id, err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	metrics.ArticlesDeletedTotal.WithLabelValues("user_deleted").Add(float64(removed))
	s.log.Info().Uint("user_id", id).Int64("articles", removed).Str("by", p.Email).Msg("user deleted")
	return nil
}

func (s *adminUserService) requireAdmin(ctx context.Context, store repository.Store, p policy.Principal) error {
	_, principal, err := resolvePrincipal(ctx, store.Users(), p)
	if err != nil {
		return err
	}
	if !policy.HasAnyRole(principal, model.RoleAdmin) {
		metrics.AccessDeniedTotal.WithLabelValues(metrics.ScopeOwnership).Inc()
		return apperrors.ErrForbidden
	}
	return nil
}

// resolveRoles loads every id. An empty set or an unknown id is a logic
// error of the submitting form.
func resolveRoles(ctx context.Context, roles repository.RoleRepository, ids []uint) ([]model.Role, error) {
	if len(ids) == 0 {
		return nil, fmt.Errorf("empty role set: %w", apperrors.ErrInvalidArgument)
	}
	resolved := make([]model.Role, 0, len(ids))
	seen := make(map[uint]struct{}, len(ids))
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		role, err := roles.FindByID(ctx, id)
		if err != nil {
			return nil, findAfterCheck("role", id, err)
		}
		resolved = append(resolved, *role)
	}
	return resolved, nil
}

func roleLabels(roles []model.Role) []string {
	out := make([]string, 0, len(roles))
	for _, r := range roles {
		out = append(out, r.Name.Label())
	}
	return out
}
