package usecase

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/AmCoder2104/exam-portal-api/internal/model"
	"github.com/AmCoder2104/exam-portal-api/internal/repository"
	"github.com/AmCoder2104/exam-portal-api/shared/auth"
	"github.com/AmCoder2104/exam-portal-api/shared/security"
)

// AuthUsecase defines the interface for authentication-related use cases.
type AuthUsecase interface {
	Register(ctx context.Context, params RegisterParams) (*auth.Identity, error)
	Login(ctx context.Context, params LoginParams) (*LoginResult, error)
}

// RegisterParams defines the parameters for user registration. The caller
// cannot choose a role; every new account is a candidate.
type RegisterParams struct {
	Name     string
	Email    string
	Password string
}

// LoginParams defines the parameters for user login.
type LoginParams struct {
	Email    string
	Password string
}

// LoginResult carries the issued session token together with the verified
// identity assertion.
type LoginResult struct {
	Token     string
	ExpiresAt time.Time
	User      auth.Identity
}

// The three login failures are distinct so callers can log and test them,
// but handlers must collapse them into one generic message to prevent
// account enumeration.
var (
	ErrUserAlreadyExists  = errors.New("user already exists")
	ErrUserNotFound       = errors.New("no user with this email")
	ErrUserDeactivated    = errors.New("account has been deactivated")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

type authUsecase struct {
	userRepo repository.UserRepository
	sessions *auth.Sessions
}

// NewAuthUsecase creates a new instance of AuthUsecase.
func NewAuthUsecase(userRepo repository.UserRepository, sessions *auth.Sessions) AuthUsecase {
	return &authUsecase{
		userRepo: userRepo,
		sessions: sessions,
	}
}

// Register creates a new candidate account. The password is hashed before
// persistence and is never part of the returned identity.
func (u *authUsecase) Register(ctx context.Context, params RegisterParams) (*auth.Identity, error) {
	passwordHash, err := security.HashPassword(params.Password)
	if err != nil {
		return nil, err
	}

	user, err := u.userRepo.CreateUser(ctx, &model.User{
		Name:         params.Name,
		Email:        params.Email,
		PasswordHash: passwordHash,
		Role:         model.RoleCandidate,
		IsActive:     true,
	})
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, ErrUserAlreadyExists
		}

		return nil, err
	}

	return &auth.Identity{
		ID:    user.ID.Hex(),
		Name:  user.Name,
		Email: user.Email,
		Role:  user.Role,
	}, nil
}

// Login verifies the submitted credentials and issues a session token. A
// failed verification never mutates the store; a successful one advances
// the user's last login timestamp.
func (u *authUsecase) Login(ctx context.Context, params LoginParams) (*LoginResult, error) {
	user, err := u.userRepo.GetUserByEmail(ctx, params.Email)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrUserNotFound
		}

		return nil, err
	}

	if !user.IsActive {
		return nil, ErrUserDeactivated
	}

	if ok, err := security.VerifyPassword(params.Password, user.PasswordHash); err != nil {
		return nil, err
	} else if !ok {
		return nil, ErrInvalidCredentials
	}

	if err := u.userRepo.UpdateLastLogin(ctx, user.ID.Hex()); err != nil {
		return nil, err
	}

	identity := auth.Identity{
		ID:    user.ID.Hex(),
		Name:  user.Name,
		Email: user.Email,
		Role:  user.Role,
	}

	token, claims, err := u.sessions.Issue(identity)
	if err != nil {
		return nil, err
	}

	return &LoginResult{
		Token:     token,
		ExpiresAt: claims.ExpiresAt.Time,
		User:      identity,
	}, nil
}
