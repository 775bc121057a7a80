package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"leadsdesk/internal/auth"
	"leadsdesk/internal/errs"
	"leadsdesk/internal/limiter"
	"leadsdesk/internal/mailer"
	"leadsdesk/internal/model"
	"leadsdesk/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AuthService implements the credential lifecycle: registration, login,
// and the password-reset flow.
type AuthService struct {
	users    repository.IUserRepository
	tokens   *auth.TokenIssuer
	mail     mailer.Mailer
	attempts *limiter.LoginLimiter

	resetTTL    time.Duration
	frontendURL string
}

// NewAuthService constructs AuthService with its dependencies.
func NewAuthService(users repository.IUserRepository, tokens *auth.TokenIssuer, mail mailer.Mailer, attempts *limiter.LoginLimiter, resetTTL time.Duration, frontendURL string) *AuthService {
	return &AuthService{
		users:       users,
		tokens:      tokens,
		mail:        mail,
		attempts:    attempts,
		resetTTL:    resetTTL,
		frontendURL: frontendURL,
	}
}

// AuthResult pairs a principal with a freshly issued session token.
type AuthResult struct {
	User  *model.User
	Token string
}

// Register creates a principal through the public endpoint.
func (s *AuthService) Register(ctx context.Context, req *model.RegisterRequest) (*AuthResult, error) {
	if err := auth.ValidatePassword(req.Password); err != nil {
		return nil, err
	}

	role := auth.RoleCSR
	if req.Role != "" {
		role = auth.Role(req.Role)
		if !role.Valid() {
			return nil, fmt.Errorf("%w: unknown role %q", errs.ErrInvalidInput, req.Role)
		}
	}

	email := normalizeEmail(req.Email)
	if _, err := s.users.FindByEmail(ctx, email); err == nil {
		return nil, errs.ErrAlreadyExists
	} else if !errors.Is(err, errs.ErrNotFound) {
		return nil, err
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user, err := s.users.Create(ctx, &model.User{
		Name:         req.Name,
		Email:        email,
		PasswordHash: hash,
		Role:         role,
		Permissions:  []auth.Permission{},
	})
	if err != nil {
		return nil, err
	}

	token, err := s.tokens.Issue(user.ID.Hex())
	if err != nil {
		return nil, err
	}
	return &AuthResult{User: user, Token: token}, nil
}

// Login authenticates by email and password. Unknown email and wrong
// password fail identically.
func (s *AuthService) Login(ctx context.Context, email, password, ip string) (*AuthResult, error) {
	email = normalizeEmail(email)
	if s.attempts != nil && !s.attempts.Allow(email, ip) {
		return nil, errs.ErrRateLimited
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return nil, auth.ErrInvalidCredentials
		}
		return nil, err
	}
	if !auth.VerifyPassword(user.PasswordHash, password) {
		return nil, auth.ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user.ID.Hex())
	if err != nil {
		return nil, err
	}
	return &AuthResult{User: user, Token: token}, nil
}

// Me returns the caller's own principal record.
func (s *AuthService) Me(ctx context.Context, id primitive.ObjectID) (*model.User, error) {
	return s.users.FindByID(ctx, id)
}

// ForgotPassword issues a one-time reset token and mails its plaintext.
// Only the digest is persisted; a delivery failure rolls the stored
// token back so no dangling valid credential remains.
func (s *AuthService) ForgotPassword(ctx context.Context, email string) error {
	user, err := s.users.FindByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return err
	}

	plain, digest, err := auth.GenerateResetToken()
	if err != nil {
		return err
	}

	// Last write wins: a newer request invalidates any outstanding token.
	expiry := time.Now().UTC().Add(s.resetTTL)
	err = s.users.UpdateFields(ctx, user.ID, bson.M{
		"resetTokenHash":   digest,
		"resetTokenExpiry": expiry,
	})
	if err != nil {
		return err
	}

	resetURL := fmt.Sprintf("%s/reset-password/%s", s.frontendURL, plain)
	if err := s.mail.SendPasswordReset(ctx, user.Email, user.Name, resetURL); err != nil {
		if rbErr := s.users.ClearResetToken(ctx, user.ID); rbErr != nil {
			return fmt.Errorf("%w: rollback failed: %v", errs.ErrDeliveryFailed, rbErr)
		}
		return fmt.Errorf("%w: %v", errs.ErrDeliveryFailed, err)
	}
	return nil
}

// ResetPassword consumes a reset token. Non-matching and expired tokens
// fail with the same signal; success clears the stored digest so the
// token cannot be replayed, and issues a fresh session token.
func (s *AuthService) ResetPassword(ctx context.Context, plainToken, newPassword string) (*AuthResult, error) {
	if err := auth.ValidatePassword(newPassword); err != nil {
		return nil, err
	}

	digest := auth.HashResetToken(plainToken)
	user, err := s.users.FindByResetDigest(ctx, digest, time.Now().UTC())
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return nil, auth.ErrInvalidResetToken
		}
		return nil, err
	}

	hash, err := auth.HashPassword(newPassword)
	if err != nil {
		return nil, err
	}
	if err := s.users.UpdateFields(ctx, user.ID, bson.M{"passwordHash": hash}); err != nil {
		return nil, err
	}
	if err := s.users.ClearResetToken(ctx, user.ID); err != nil {
		return nil, err
	}

	token, err := s.tokens.Issue(user.ID.Hex())
	if err != nil {
		return nil, err
	}
	user.PasswordHash = hash
	return &AuthResult{User: user, Token: token}, nil
}
