package services

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/wanderlist/api-go/models"
	"github.com/wanderlist/api-go/store"
	"golang.org/x/crypto/bcrypt"
)

var usernamePattern = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9_]*$`)

var reservedUsernames = []string{"admin", "root", "api", "www", "mail", "test", "demo", "user", "guest", "null", "undefined"}

// ValidateUsername checks format and reserved-name constraints.
func ValidateUsername(username string) error {
	trimmed := strings.TrimSpace(username)
	if len(trimmed) < 3 {
		return fmt.Errorf("username must be at least 3 characters long")
	}
	if len(trimmed) > 20 {
		return fmt.Errorf("username must be no more than 20 characters long")
	}
	if !usernamePattern.MatchString(trimmed) {
		return fmt.Errorf("username must start with a letter and contain only letters, numbers, and underscores")
	}
	for _, reserved := range reservedUsernames {
		if strings.EqualFold(trimmed, reserved) {
			return fmt.Errorf("this username is reserved and cannot be used")
		}
	}
	return nil
}

// UserService covers the identity lifecycle: signup, login credentials,
// profile updates, and account deletion.
type UserService struct {
	users    store.UserStore
	tokens   store.RefreshTokenStore
	profiles *ProfileService
}

func NewUserService(users store.UserStore, tokens store.RefreshTokenStore, profiles *ProfileService) *UserService {
	return &UserService{users: users, tokens: tokens, profiles: profiles}
}

type RegisterInput struct {
	Username    string
	Email       string
	Password    string
	DisplayName string
	Bio         string
	IsPrivate   bool
}

// Register creates a user with a bcrypt-hashed password. A duplicate
// username or email surfaces as store.ErrDuplicate.
func (s *UserService) Register(ctx context.Context, input RegisterInput) (*models.User, error) {
	if err := ValidateUsername(input.Username); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Username:     strings.TrimSpace(input.Username),
		Email:        strings.ToLower(strings.TrimSpace(input.Email)),
		DisplayName:  input.DisplayName,
		Bio:          input.Bio,
		PasswordHash: string(hash),
		IsPrivate:    input.IsPrivate,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Authenticate verifies email/password. Unknown email and wrong password
// are indistinguishable to the caller.
func (s *UserService) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	user, err := s.users.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	// Opportunistic cleanup: expired refresh tokens are purged on login so
	// they don't accumulate. Best-effort, a failure never blocks the login.
	_ = s.tokens.DeleteExpired(ctx)

	return user, nil
}

type UpdateProfileInput struct {
	Username    *string
	DisplayName *string
	Bio         *string
	IsPrivate   *bool
}

// UpdateProfile applies the non-nil fields. A duplicate username surfaces
// as store.ErrDuplicate for the caller to map to a conflict response. The
// cached profile entry is invalidated on success.
func (s *UserService) UpdateProfile(ctx context.Context, userID uint, input UpdateProfileInput) (*models.User, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	if input.Username != nil {
		if err := ValidateUsername(*input.Username); err != nil {
			return nil, err
		}
		user.Username = strings.TrimSpace(*input.Username)
	}
	if input.DisplayName != nil {
		user.DisplayName = *input.DisplayName
	}
	if input.Bio != nil {
		user.Bio = *input.Bio
	}
	if input.IsPrivate != nil {
		user.IsPrivate = *input.IsPrivate
	}

	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}
	s.profiles.InvalidateProfile(ctx, userID)
	return user, nil
}

// ChangePassword verifies the current password before setting a new hash.
func (s *UserService) ChangePassword(ctx context.Context, userID uint, current, next string) error {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(current)); err != nil {
		return ErrInvalidCredentials
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(next), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	user.PasswordHash = string(hash)
	return s.users.Update(ctx, user)
}

// DeleteAccount soft-deletes the user, revokes their refresh tokens, and
// drops the cached profile. The user row is retained for the follow edges
// that reference it.
func (s *UserService) DeleteAccount(ctx context.Context, userID uint) error {
	if err := s.users.SoftDelete(ctx, userID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	if err := s.tokens.DeleteForUser(ctx, userID); err != nil {
		return err
	}
	s.profiles.InvalidateProfile(ctx, userID)
	return nil
}
