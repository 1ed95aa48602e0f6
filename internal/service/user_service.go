package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	apperrors "blog/internal/errors"
	"blog/internal/mail"
	"blog/internal/metrics"
	"blog/internal/model"
	"blog/internal/policy"
	"blog/internal/repository"
)

// RegisterInput is the submitted registration form.
type RegisterInput struct {
	Email           string
	FullName        string
	Password        string
	ConfirmPassword string
	Picture         []byte
}

// UserEditInput is the submitted profile form. Empty password fields keep
// the current password; an empty picture keeps the current picture.
type UserEditInput struct {
	Email           string
	FullName        string
	Password        string
	ConfirmPassword string
	Picture         []byte
}

// ResetInput is the submitted reset form.
type ResetInput struct {
	Code            string
	Password        string
	ConfirmPassword string
}

// ProfileView is a user together with the articles they wrote.
type ProfileView struct {
	User     *model.User     `json:"user"`
	Articles []model.Article `json:"articles"`
}

// UserService covers registration, self-service profile edits and the
// forgot-password flow.
type UserService interface {
	Register(ctx context.Context, in RegisterInput) (*model.User, error)
	Profile(ctx context.Context, p policy.Principal) (*ProfileView, error)
	EditForm(ctx context.Context, p policy.Principal, id uint) (*model.User, error)
	Edit(ctx context.Context, p policy.Principal, id uint, in UserEditInput) (*model.User, error)

	RequestReset(ctx context.Context, email string) (*model.User, error)
	ResetForm(ctx context.Context, id uint) (*model.User, error)
	ResendCode(ctx context.Context, id uint) (*model.User, error)
	ApplyReset(ctx context.Context, id uint, in ResetInput) error
}

type userService struct {
	store     repository.Store
	mailer    mail.Mailer
	sanitizer *Sanitizer
	baseURL   string
	newCode   func() string
	log       zerolog.Logger
}

// UserServiceOption customizes a UserService.
type UserServiceOption func(*userService)

// WithCodeGenerator replaces the confirmation code source.
func WithCodeGenerator(gen func() string) UserServiceOption {
	return func(s *userService) { s.newCode = gen }
}

// NewUserService creates a new user service. baseURL prefixes the links in outgoing mail.
func NewUserService(store repository.Store, mailer mail.Mailer, sanitizer *Sanitizer, baseURL string, log zerolog.Logger, opts ...UserServiceOption) UserService {
	s := &userService{
		store:     store,
		mailer:    mailer,
		sanitizer: sanitizer,
		baseURL:   strings.TrimRight(baseURL, "/"),
		newCode:   uuid.NewString,
		log:       log.With().Str("component", "users").Logger(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Register creates a ROLE_USER account.
func (s *userService) Register(ctx context.Context, in RegisterInput) (*model.User, error) {
	if in.Password != in.ConfirmPassword {
		return nil, apperrors.ErrPasswordMismatch
	}
	email := strings.TrimSpace(in.Email)
	if email == "" {
		return nil, apperrors.ErrEmptyEmail
	}

	hashed, err := hashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	var user *model.User
	err = s.store.WithTransaction(ctx, func(ctx context.Context, tx repository.Store) error {
		if err := ensureEmailFree(ctx, tx.Users(), email, 0); err != nil {
			return err
		}
		role, err := tx.Roles().FindByName(ctx, model.RoleUser)
		if err != nil {
			return fmt.Errorf("load role %s: %w", model.RoleUser, err)
		}

		user = &model.User{
			Email:        email,
			FullName:     s.sanitizer.Plain(in.FullName),
			PasswordHash: hashed,
			Picture:      encodePicture(in.Picture),
			Roles:        []model.Role{*role},
		}
		if err := tx.Users().Create(ctx, user); err != nil {
			return fmt.Errorf("create user: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	metrics.UsersRegisteredTotal.Inc()
	s.log.Info().Uint("user_id", user.ID).Msg("user registered")
	return user, nil
}

func (s *userService) Profile(ctx context.Context, p policy.Principal) (*ProfileView, error) {
	user, _, err := resolvePrincipal(ctx, s.store.Users(), p)
	if err != nil {
		return nil, err
	}
	articles, err := s.store.Articles().ListByAuthor(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("list articles of user %d: %w", user.ID, err)
	}
	return &ProfileView{User: user, Articles: articles}, nil
}

func (s *userService) EditForm(ctx context.Context, p policy.Principal, id uint) (*model.User, error) {
	return s.loadOwned(ctx, s.store, p, id)
}

// Edit always updates the name and email of the caller's own account.
func (s *userService) Edit(ctx context.Context, p policy.Principal, id uint, in UserEditInput) (*model.User, error) {
	var user *model.User
	err := s.store.WithTransaction(ctx, func(ctx context.Context, tx repository.Store) error {
		var err error
		user, err = s.loadOwned(ctx, tx, p, id)
		if err != nil {
			return err
		}
		if err := applyAccountEdit(ctx, tx.Users(), s.sanitizer, user, in.Email, in.FullName, in.Password, in.ConfirmPassword); err != nil {
			return err
		}
		if pic := encodePicture(in.Picture); pic != "" {
			user.Picture = pic
		}
		if err := tx.Users().Update(ctx, user); err != nil {
			return fmt.Errorf("update user %d: %w", id, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info().Uint("user_id", id).Msg("profile updated")
	return user, nil
}

// RequestReset stores a fresh confirmation code for email and mails it.
func (s *userService) RequestReset(ctx context.Context, email string) (*model.User, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return nil, apperrors.ErrEmptyEmail
	}

	user, err := s.storeNewCode(ctx, func(ctx context.Context, users repository.UserRepository) (*model.User, error) {
		user, err := users.FindByEmail(ctx, email)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return user, err
	})
	if err != nil {
		return nil, err
	}

	metrics.PasswordResetsTotal.WithLabelValues("requested").Inc()
	resetURL := fmt.Sprintf("%s/user/forgot-password/%d", s.baseURL, user.ID)
	s.sendBestEffort(ctx, user, mail.ResetCodeBody(user.FullName, resetURL, *user.ConfirmCode))
	return user, nil
}

func (s *userService) ResetForm(ctx context.Context, id uint) (*model.User, error) {
	return loadUser(ctx, s.store.Users(), id)
}

// ResendCode replaces the stored code, so earlier codes stop working.
func (s *userService) ResendCode(ctx context.Context, id uint) (*model.User, error) {
	user, err := s.storeNewCode(ctx, func(ctx context.Context, users repository.UserRepository) (*model.User, error) {
		return loadUser(ctx, users, id)
	})
	if err != nil {
		return nil, err
	}

	metrics.PasswordResetsTotal.WithLabelValues("resent").Inc()
	s.sendBestEffort(ctx, user, mail.ResendCodeBody(user.FullName, *user.ConfirmCode))
	return user, nil
}

// ApplyReset sets a new password when the passwords match and the code equals
// the one in flight. The code is consumed on success and kept otherwise.
func (s *userService) ApplyReset(ctx context.Context, id uint, in ResetInput) error {
	err := s.store.WithTransaction(ctx, func(ctx context.Context, tx repository.Store) error {
		user, err := loadUser(ctx, tx.Users(), id)
		if err != nil {
			return err
		}
		if in.Password != in.ConfirmPassword {
			return apperrors.ErrPasswordMismatch
		}
		if !user.HasPendingReset() || *user.ConfirmCode != in.Code {
			return apperrors.ErrConfirmCodeMismatch
		}

		hashed, err := hashPassword(in.Password)
		if err != nil {
			return err
		}
		user.PasswordHash = hashed
		user.ConfirmCode = nil
		if err := tx.Users().Update(ctx, user); err != nil {
			return fmt.Errorf("update user %d: %w", id, err)
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, apperrors.ErrPasswordMismatch) || errors.Is(err, apperrors.ErrConfirmCodeMismatch) {
			metrics.PasswordResetsTotal.WithLabelValues("rejected").Inc()
		}
		return err
	}

	metrics.PasswordResetsTotal.WithLabelValues("applied").Inc()
	s.log.Info().Uint("user_id", id).Msg("password reset applied")
	return nil
}

// storeNewCode loads a user with find and persists a fresh confirmation code
// in one transaction. The returned user carries the new code.
func (s *userService) storeNewCode(ctx context.Context, find func(context.Context, repository.UserRepository) (*model.User, error)) (*model.User, error) {
	var user *model.User
	err := s.store.WithTransaction(ctx, func(ctx context.Context, tx repository.Store) error {
		var err error
		user, err = find(ctx, tx.Users())
		if err != nil {
			return err
		}
		code := s.newCode()
		user.ConfirmCode = &code
		if err := tx.Users().Update(ctx, user); err != nil {
			return fmt.Errorf("store confirmation code for user %d: %w", user.ID, err)
		}
		return nil
	})
	return user, err
}

// sendBestEffort runs after the code is committed. A failed send leaves the
// code in place; the user can ask for another one.
func (s *userService) sendBestEffort(ctx context.Context, user *model.User, body string) {
	if err := s.mailer.Send(ctx, user.Email, mail.SubjectChangePassword, body); err != nil {
		metrics.MailFailuresTotal.Inc()
		s.log.Warn().Err(err).Uint("user_id", user.ID).Msg("confirmation mail not sent")
	}
}

// loadOwned returns user id when p is that user.
func (s *userService) loadOwned(ctx context.Context, store repository.Store, p policy.Principal, id uint) (*model.User, error) {
	user, err := loadUser(ctx, store.Users(), id)
	if err != nil {
		return nil, err
	}
	if !policy.IsOwner(p, user) {
		metrics.AccessDeniedTotal.WithLabelValues(metrics.ScopeOwnership).Inc()
		return nil, apperrors.ErrForbidden
	}
	return user, nil
}

func loadUser(ctx context.Context, users repository.UserRepository, id uint) (*model.User, error) {
	ok, err := users.Exists(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("check user %d: %w", id, err)
	}
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	user, err := users.FindByID(ctx, id)
	if err != nil {
		return nil, findAfterCheck("user", id, err)
	}
	return user, nil
}

// ensureEmailFree fails with ErrUserAlreadyExists when email belongs to a
// user other than selfID.
func ensureEmailFree(ctx context.Context, users repository.UserRepository, email string, selfID uint) error {
	other, err := users.FindByEmail(ctx, email)
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return nil
	case err != nil:
		return fmt.Errorf("check email: %w", err)
	case other.ID != selfID:
		return apperrors.ErrUserAlreadyExists
	default:
		return nil
	}
}

// applyAccountEdit copies the fields shared by the profile and admin forms.
func applyAccountEdit(ctx context.Context, users repository.UserRepository, sanitizer *Sanitizer, user *model.User, email, fullName, password, confirm string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return apperrors.ErrEmptyEmail
	}
	if email != user.Email {
		if err := ensureEmailFree(ctx, users, email, user.ID); err != nil {
			return err
		}
	}
	user.Email = email
	user.FullName = sanitizer.Plain(fullName)

	if passwordChangeRequested(password, confirm) {
		hashed, err := hashPassword(password)
		if err != nil {
			return err
		}
		user.PasswordHash = hashed
	}
	return nil
}
