package service

import (
	"context"
	"errors"
	"log"
	"momnt-server/internal/model"
	platformservice "momnt-server/internal/platform/service"
	"momnt-server/internal/utils"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const (
	ReasonDuplicateEmail     = "duplicate_email"
	ReasonInvalidCredentials = "invalid_credentials"
	ReasonTokenExpired       = "token_expired"
	ReasonTokenInvalid       = "token_invalid"

	bcryptCost = 12
)

var errInvalidCredentials = platformservice.NewReasonError(
	platformservice.ErrorCodeValidation, ReasonInvalidCredentials, "Invalid credentials")

// dummyHash keeps the unknown-email path as slow as a wrong password.
var dummyHash, _ = bcrypt.GenerateFromPassword([]byte("momnt-timing-equaliser"), bcryptCost)

// Register creates a host with a bcrypt-hashed password.
func (s *Service) Register(ctx context.Context, email, password string) (*model.Host, error) {
	email = utils.NormalizeEmail(email)
	if ok, msg := utils.ValidateEmail(email); !ok {
		return nil, platformservice.NewReasonError(platformservice.ErrorCodeValidation, "invalid_email", msg)
	}
	if ok, msg := utils.ValidatePassword(password); !ok {
		return nil, platformservice.NewReasonError(platformservice.ErrorCodeValidation, "invalid_password", msg)
	}

	if _, err := s.hostStore.FindByEmail(ctx, email); err == nil {
		return nil, duplicateEmail()
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Printf("❌ register: lookup email: %v", err)
		return nil, platformservice.NewInternalError("Registration failed, please try again later")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return nil, platformservice.NewInternalError("Registration failed, please try again later")
	}

	host := &model.Host{Email: email, Password: string(hashedPassword)}
	if err := s.hostStore.Create(ctx, host); err != nil {
		// concurrent signup with the same email lost the race on the unique index
		if isUniqueViolation(err) {
			return nil, duplicateEmail()
		}
		log.Printf("❌ register: create host: %v", err)
		return nil, platformservice.NewInternalError("Registration failed, please try again later")
	}
	return host, nil
}

func duplicateEmail() error {
	return platformservice.NewReasonError(platformservice.ErrorCodeValidation, ReasonDuplicateEmail, "User already exists")
}

func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique") || strings.Contains(msg, "duplicate")
}

// Authenticate fails with the same error for an unknown email and a wrong password.
func (s *Service) Authenticate(ctx context.Context, email, password string) (*model.Host, error) {
	host, err := s.hostStore.FindByEmail(ctx, utils.NormalizeEmail(email))
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Printf("❌ authenticate: lookup email: %v", err)
			return nil, platformservice.NewInternalError("Login failed, please try again later")
		}
		_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
		return nil, errInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(host.Password), []byte(password)); err != nil {
		return nil, errInvalidCredentials
	}
	return host, nil
}

// IssueToken signs a login token for host.
func (s *Service) IssueToken(host *model.Host) (string, error) {
	token, err := utils.GenerateLoginToken(host.ID, host.Email, s.Config().JWT.TokenTTL())
	if err != nil {
		return "", platformservice.NewInternalError("Failed to issue token")
	}
	return token, nil
}

// VerifyToken returns the host ID carried by a valid login token.
func (s *Service) VerifyToken(token string) (string, error) {
	claims, err := utils.ParseLoginToken(token)
	if err != nil {
		if errors.Is(err, utils.ErrTokenExpired) {
			return "", platformservice.NewReasonError(platformservice.ErrorCodeUnauthorized, ReasonTokenExpired, "Token expired")
		}
		return "", platformservice.NewReasonError(platformservice.ErrorCodeUnauthorized, ReasonTokenInvalid, "Token invalid")
	}
	return claims.HostID, nil
}

// ResolveHost loads a host by ID; a missing host is Unauthorized.
func (s *Service) ResolveHost(ctx context.Context, hostID string) (*model.Host, error) {
	host, err := s.hostStore.FindByID(ctx, hostID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, platformservice.NewUnauthorizedError("User not found")
		}
		return nil, platformservice.NewInternalError("Failed to load user")
	}
	return host, nil
}

// Signup registers a host and issues its first token.
func (s *Service) Signup(ctx context.Context, email, password string) (*model.Host, string, error) {
	host, err := s.Register(ctx, email, password)
	if err != nil {
		return nil, "", err
	}
	token, err := s.IssueToken(host)
	if err != nil {
		return nil, "", err
	}
	return host, token, nil
}

// Login authenticates a host and issues a token.
func (s *Service) Login(ctx context.Context, email, password string) (*model.Host, string, error) {
	host, err := s.Authenticate(ctx, email, password)
	if err != nil {
		return nil, "", err
	}
	token, err := s.IssueToken(host)
	if err != nil {
		return nil, "", err
	}
	return host, token, nil
}
