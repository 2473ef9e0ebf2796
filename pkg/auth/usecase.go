package auth

import (
	"context"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
)

// AuthUseCase describes authentication/registration behavior.
type AuthUseCase interface {
	Register(ctx context.Context, in Registration) (User, error)
	Login(ctx context.Context, email, password string) (AuthResult, error)
	Logout(ctx context.Context, s Session) error
}

type AuthResult struct {
	User  User
	Token string
}

const minPasswordLength = 8

var genders = map[string]bool{"male": true, "female": true, "other": true}

type authService struct {
	repo    UserRepository
	tokens  TokenGenerator
	revoker TokenRevoker
	cost    int
}

// NewAuthService returns the default AuthUseCase. cost is the bcrypt work
// factor; values outside bcrypt's range fall back to bcrypt.DefaultCost.
func NewAuthService(repo UserRepository, tokens TokenGenerator, revoker TokenRevoker, cost int) AuthUseCase {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &authService{repo: repo, tokens: tokens, revoker: revoker, cost: cost}
}

func (s *authService) Register(ctx context.Context, in Registration) (User, error) {
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	in.Gender = strings.ToLower(strings.TrimSpace(in.Gender))
	if err := checkRegistration(in); err != nil {
		return User{}, err
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.cost)
	if err != nil {
		return User{}, err
	}

	user := User{
		ID:           uuid.New(),
		Email:        in.Email,
		PasswordHash: string(passwordHash),
		FirstName:    strings.TrimSpace(in.FirstName),
		LastName:     strings.TrimSpace(in.LastName),
		Gender:       in.Gender,
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.repo.Create(ctx, user); err != nil {
		return User{}, err
	}
	log.Info().Str("user_id", user.ID.String()).Msg("user registered")
	return user, nil
}

func checkRegistration(in Registration) error {
	if _, err := mail.ParseAddress(in.Email); err != nil || in.Email == "" {
		return fmt.Errorf("%w: email must be a valid address", ErrInvalidInput)
	}
	if len(in.Password) < minPasswordLength {
		return fmt.Errorf("%w: password must have at least %d characters", ErrInvalidInput, minPasswordLength)
	}
	if strings.TrimSpace(in.FirstName) == "" || strings.TrimSpace(in.LastName) == "" {
		return fmt.Errorf("%w: first and last name are required", ErrInvalidInput)
	}
	if in.Gender != "" && !genders[in.Gender] {
		return fmt.Errorf("%w: gender must be male, female or other", ErrInvalidInput)
	}
	return nil
}

func (s *authService) Login(ctx context.Context, email, password string) (AuthResult, error) {
	user, err := s.repo.GetByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		return AuthResult{}, ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return AuthResult{}, ErrInvalidCredentials
	}
	token, err := s.tokens.Generate(ctx, user)
	if err != nil {
		return AuthResult{}, err
	}
	return AuthResult{User: user, Token: token}, nil
}

// Logout revokes the session's token until it expires.
func (s *authService) Logout(ctx context.Context, sess Session) error {
	if sess.TokenID == "" || s.revoker == nil {
		return nil
	}
	if !sess.ExpiresAt.After(time.Now()) {
		return nil
	}
	return s.revoker.Revoke(ctx, sess.TokenID, sess.ExpiresAt)
}
