package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"canteen/internal/auth"
	"canteen/internal/model"
	"canteen/internal/repository"

	"github.com/rs/zerolog"
)

// accountService implements AccountService.
type accountService struct {
	credentials repository.CredentialRepository
	tokens      TokenIssuer
	logger      zerolog.Logger
}

// NewAccountService creates a new account service.
func NewAccountService(credentials repository.CredentialRepository, tokens TokenIssuer, logger zerolog.Logger) AccountService {
	return &accountService{
		credentials: credentials,
		tokens:      tokens,
		logger:      logger.With().Str("service", "account").Logger(),
	}
}

// Login checks the password and issues a session token.
func (s *accountService) Login(ctx context.Context, username, password string) (*model.LoginResponse, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, model.ErrInvalidLogin
	}

	cred, err := s.credentials.GetByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("failed to look up credential: %w", err)
	}
	if cred == nil {
		s.logger.Info().Str("username", username).Msg("login refused, unknown user")
		return nil, model.ErrInvalidLogin
	}

	if err := auth.ComparePassword(cred.PasswordHash, password); err != nil {
		if errors.Is(err, auth.ErrPasswordMismatch) {
			s.logger.Info().Str("username", username).Msg("login refused, wrong password")
			return nil, model.ErrInvalidLogin
		}
		return nil, fmt.Errorf("failed to verify password: %w", err)
	}

	token, expiresAt, err := s.tokens.Issue(cred.Username, cred.Role)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("username", cred.Username).Str("role", string(cred.Role)).Msg("user logged in")

	return &model.LoginResponse{
		Token:       token,
		ExpiresAt:   expiresAt,
		Username:    cred.Username,
		Role:        cred.Role,
		DisplayName: cred.DisplayName,
	}, nil
}

// List returns every credential.
func (s *accountService) List(ctx context.Context) ([]model.Credential, error) {
	return s.credentials.List(ctx)
}

// Create stores a new credential with a hashed password.
func (s *accountService) Create(ctx context.Context, req model.CredentialRequest) (*model.Credential, error) {
	username := strings.TrimSpace(req.Username)
	role, ok := model.ParseRole(string(req.Role))
	if username == "" || req.Password == "" || !ok {
		return nil, model.ErrInvalidCredential
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	cred := &model.Credential{
		Username:     username,
		PasswordHash: hash,
		Role:         role,
		DisplayName:  strings.TrimSpace(req.DisplayName),
		Email:        strings.TrimSpace(req.Email),
	}
	if cred.DisplayName == "" {
		cred.DisplayName = username
	}

	if err := s.credentials.Create(ctx, cred); err != nil {
		return nil, err
	}

	s.logger.Info().Str("username", cred.Username).Str("role", string(cred.Role)).Msg("credential created")
	return cred, nil
}

// Update applies the non-nil fields of update. The stored hash is kept when
// the new password is empty or equal to the current one.
func (s *accountService) Update(ctx context.Context, username string, update model.CredentialUpdate) (*model.Credential, error) {
	cred, err := s.credentials.GetByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("failed to look up credential: %w", err)
	}
	if cred == nil {
		return nil, model.ErrUserNotFound
	}

	if update.Role != nil {
		role, ok := model.ParseRole(string(*update.Role))
		if !ok {
			return nil, model.ErrInvalidCredential
		}
		cred.Role = role
	}

	if update.Password != nil && *update.Password != "" {
		if auth.ComparePassword(cred.PasswordHash, *update.Password) != nil {
			hash, err := auth.HashPassword(*update.Password)
			if err != nil {
				return nil, fmt.Errorf("failed to hash password: %w", err)
			}
			cred.PasswordHash = hash
		}
	}

	if update.DisplayName != nil {
		cred.DisplayName = strings.TrimSpace(*update.DisplayName)
	}
	if update.Email != nil {
		cred.Email = strings.TrimSpace(*update.Email)
	}

	if err := s.credentials.Update(ctx, cred); err != nil {
		return nil, err
	}

	s.logger.Info().Str("username", cred.Username).Msg("credential updated")
	return cred, nil
}

// Delete removes a credential. The store refuses to remove the last admin.
func (s *accountService) Delete(ctx context.Context, username string) error {
	if err := s.credentials.Delete(ctx, username); err != nil {
		return err
	}

	s.logger.Info().Str("username", username).Msg("credential deleted")
	return nil
}

// EnsureBootstrapAdmin creates the first admin on an empty credential store.
func (s *accountService) EnsureBootstrapAdmin(ctx context.Context, username, password, displayName string) error {
	count, err := s.credentials.Count(ctx)
	if err != nil {
		return fmt.Errorf("failed to count credentials: %w", err)
	}
	if count > 0 {
		return nil
	}

	if password == "" {
		return fmt.Errorf("no credentials exist and no bootstrap admin password is configured")
	}

	_, err = s.Create(ctx, model.CredentialRequest{
		Username:    username,
		Password:    password,
		Role:        model.RoleAdmin,
		DisplayName: displayName,
	})
	if errors.Is(err, model.ErrUserExists) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to create bootstrap admin: %w", err)
	}

	s.logger.Warn().Str("username", username).Msg("bootstrap admin created, change its password")
	return nil
}
