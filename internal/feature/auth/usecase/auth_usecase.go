package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"recipe_backend/internal/feature/auth/domain/entity"
	jwtmw "recipe_backend/internal/platform/jwt"
	"recipe_backend/internal/platform/password"
)

// UserRepository abstracts the persistence layer for user entities.
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (adapters).
type UserRepository interface {
	// Create persists a new user. It returns ErrDuplicateKey when the email or
	// username is already taken.
	Create(ctx context.Context, user *entity.User) error

	// FindByEmail returns ErrUserNotFound when no user has the email.
	FindByEmail(ctx context.Context, email string) (*entity.User, error)

	// FindByID returns ErrUserNotFound when no user has the id.
	FindByID(ctx context.Context, id string) (*entity.User, error)

	// Save writes the listed fields of an existing user. Unlisted fields are left untouched.
	Save(ctx context.Context, user *entity.User, fields ...entity.Field) error
}

// PasswordHasher hashes and verifies passwords.
type PasswordHasher interface {
	Hash(plain string) (string, error)
	Verify(plain, hash string) (bool, error)
}

// TokenIssuer issues signed bearer tokens.
type TokenIssuer interface {
	Issue(claims jwtmw.Claims) (string, error)
}

// RegisterInput carries the fields accepted at registration.
type RegisterInput struct {
	Name           string
	Surname        string
	Email          string
	Username       string
	Password       string
	ProfilePicture []byte
}

// ProfileUpdate carries the fields accepted on a profile update.
// Empty strings mean "leave unchanged".
type ProfileUpdate struct {
	Name        string
	Email       string
	Password    string
	NewPassword string
}

type authUsecase struct {
	users  UserRepository
	hasher PasswordHasher
	tokens TokenIssuer
}

// NewAuthUsecase creates the auth usecase.
func NewAuthUsecase(users UserRepository, hasher PasswordHasher, tokens TokenIssuer) *authUsecase {
	return &authUsecase{
		users:  users,
		hasher: hasher,
		tokens: tokens,
	}
}

// Register creates a user with a hashed password and the default role.
func (u *authUsecase) Register(ctx context.Context, in RegisterInput) (*entity.User, error) {
	email := strings.TrimSpace(in.Email)
	username := strings.TrimSpace(in.Username)
	switch {
	case email == "":
		return nil, fmt.Errorf("%w: email is required", ErrValidation)
	case username == "":
		return nil, fmt.Errorf("%w: username is required", ErrValidation)
	case in.Password == "":
		return nil, fmt.Errorf("%w: password is required", ErrValidation)
	}

	user := &entity.User{
		Name:           in.Name,
		Surname:        in.Surname,
		Email:          email,
		Username:       username,
		ProfilePicture: in.ProfilePicture,
		Role:           entity.RoleUser,
	}
	if _, err := u.setPassword(user, in.Password); err != nil {
		return nil, err
	}

	if err := u.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Login checks the credentials and returns a signed token with the user.
// An unknown email yields ErrUserNotFound, a wrong password ErrInvalidCredentials.
func (u *authUsecase) Login(ctx context.Context, email, plain string) (string, *entity.User, error) {
	user, err := u.users.FindByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		return "", nil, err
	}

	ok, err := u.hasher.Verify(plain, user.PasswordHash)
	if err != nil {
		return "", nil, fmt.Errorf("failed to verify password: %w", err)
	}
	if !ok {
		return "", nil, ErrInvalidCredentials
	}

	token, err := u.tokens.Issue(jwtmw.Claims{UserID: user.ID, Role: user.Role})
	if err != nil {
		return "", nil, fmt.Errorf("failed to generate token: %w", err)
	}
	return token, user, nil
}

// Profile returns the user with the given id.
func (u *authUsecase) Profile(ctx context.Context, userID string) (*entity.User, error) {
	return u.users.FindByID(ctx, userID)
}

// UpdateProfile applies a profile update for userID.
// The current password is checked before anything is written; changing the
// password requires it.
func (u *authUsecase) UpdateProfile(ctx context.Context, userID string, in ProfileUpdate) (*entity.User, error) {
	user, err := u.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if in.NewPassword != "" && in.Password == "" {
		return nil, fmt.Errorf("%w: current password is required to set a new password", ErrValidation)
	}
	if in.Password != "" {
		ok, err := u.hasher.Verify(in.Password, user.PasswordHash)
		if err != nil {
			return nil, fmt.Errorf("failed to verify password: %w", err)
		}
		if !ok {
			return nil, ErrIncorrectPassword
		}
	}

	var dirty []entity.Field
	if name := strings.TrimSpace(in.Name); name != "" {
		user.Name = name
		dirty = append(dirty, entity.FieldName)
	}
	if email := strings.TrimSpace(in.Email); email != "" {
		user.Email = email
		dirty = append(dirty, entity.FieldEmail)
	}
	if in.NewPassword != "" {
		field, err := u.setPassword(user, in.NewPassword)
		if err != nil {
			return nil, err
		}
		dirty = append(dirty, field)
	}

	if err := u.users.Save(ctx, user, dirty...); err != nil {
		return nil, err
	}
	return user, nil
}

// setPassword hashes plain into user and reports the field it changed.
func (u *authUsecase) setPassword(user *entity.User, plain string) (entity.Field, error) {
	hashed, err := u.hasher.Hash(plain)
	if err != nil {
		if errors.Is(err, password.ErrPasswordTooLong) {
			return "", fmt.Errorf("%w: %v", ErrValidation, err)
		}
		return "", err
	}
	user.PasswordHash = hashed
	return entity.FieldPasswordHash, nil
}
