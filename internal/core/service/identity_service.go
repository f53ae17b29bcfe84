package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/utilibill/billing-system/internal/core/domain"
	"github.com/utilibill/billing-system/internal/core/ports"
)

// IdentityService implements registration, login, logout and session checks.
type IdentityService struct {
	users      ports.UserRepository
	customers  ports.CustomerRepository
	sessions   ports.SessionStore
	tx         ports.TxRunner
	jwtSecret  string
	sessionTTL time.Duration
	logger     zerolog.Logger
}

func NewIdentityService(
	users ports.UserRepository,
	customers ports.CustomerRepository,
	sessions ports.SessionStore,
	tx ports.TxRunner,
	jwtSecret string,
	sessionTTL time.Duration,
	logger zerolog.Logger,
) *IdentityService {
	if sessionTTL <= 0 {
		sessionTTL = 24 * time.Hour
	}
	return &IdentityService{
		users:      users,
		customers:  customers,
		sessions:   sessions,
		tx:         tx,
		jwtSecret:  jwtSecret,
		sessionTTL: sessionTTL,
		logger:     logger,
	}
}

// Register creates a new account. A CUSTOMER registration additionally
// creates the linked customer profile inside the same transaction: both
// records appear together or not at all.
func (s *IdentityService) Register(ctx context.Context, input ports.RegisterInput) (*ports.AuthResult, error) {
	role, err := domain.ParseRole(input.Role)
	if err != nil {
		return nil, err
	}

	taken, err := s.users.Exists(ctx, input.Username)
	if err != nil {
		return nil, fmt.Errorf("register: %w", err)
	}
	if taken {
		return nil, domain.ErrUsernameTaken
	}

	if role == domain.RoleCustomer {
		if strings.TrimSpace(input.Name) == "" ||
			strings.TrimSpace(input.Email) == "" ||
			strings.TrimSpace(input.Address) == "" {
			return nil, domain.ErrProfileIncomplete
		}
		inUse, err := s.customers.ExistsByEmail(ctx, input.Email)
		if err != nil {
			return nil, fmt.Errorf("register: %w", err)
		}
		if inUse {
			return nil, domain.ErrEmailTaken
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("register: hash password: %w", err)
	}

	now := time.Now().UTC()
	err = s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		user, err := s.users.Create(ctx, &domain.User{
			Username:     input.Username,
			PasswordHash: string(hash),
			Role:         role,
			CreatedAt:    now,
		})
		if err != nil {
			return err
		}
		if role == domain.RoleCustomer {
			_, err = s.customers.Create(ctx, &domain.Customer{
				Name:      input.Name,
				Email:     input.Email,
				Address:   input.Address,
				UserID:    user.ID,
				CreatedAt: now,
			})
		}
		return err
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("username", input.Username).Str("role", string(role)).Msg("user registered")

	return &ports.AuthResult{
		Message:  "Registration successful",
		Username: input.Username,
		Role:     role,
	}, nil
}

// Login validates credentials and establishes a server-side session. Unknown
// usernames and wrong passwords are indistinguishable to the caller.
func (s *IdentityService) Login(ctx context.Context, username, password string) (string, *ports.AuthResult, error) {
	if username == "" || password == "" {
		return "", nil, domain.ErrInvalidCredentials
	}

	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return "", nil, domain.ErrInvalidCredentials
		}
		return "", nil, fmt.Errorf("login: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return "", nil, domain.ErrInvalidCredentials
	}

	session := &domain.Session{
		ID:       uuid.NewString(),
		UserID:   user.ID,
		Username: user.Username,
		Role:     user.Role,
	}
	if err := s.sessions.Save(ctx, session); err != nil {
		return "", nil, fmt.Errorf("login: save session: %w", err)
	}

	token, err := s.signToken(session)
	if err != nil {
		return "", nil, fmt.Errorf("login: sign token: %w", err)
	}

	s.logger.Info().Str("username", user.Username).Str("role", string(user.Role)).Msg("login")

	return token, &ports.AuthResult{
		Message:  "Login successful",
		Username: user.Username,
		Role:     user.Role,
	}, nil
}

// Logout destroys the session. Unknown or already-expired sessions are not
// an error.
func (s *IdentityService) Logout(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return nil
	}
	if err := s.sessions.Delete(ctx, sessionID); err != nil {
		return fmt.Errorf("logout: %w", err)
	}
	return nil
}

// CheckSession reports the identity stored in the session without touching
// persistence.
func (s *IdentityService) CheckSession(session *domain.Session) (*ports.SessionInfo, error) {
	if _, err := domain.RequireSession(session); err != nil {
		return nil, err
	}
	return &ports.SessionInfo{
		LoggedIn: true,
		Username: session.Username,
		Role:     session.Role,
	}, nil
}

// signToken wraps the session id in a signed HS256 token. The token is only
// a transport for the session id: the redis record remains authoritative,
// so logout revokes access before exp.
func (s *IdentityService) signToken(session *domain.Session) (string, error) {
	claims := jwt.MapClaims{
		"sid":      session.ID,
		"username": session.Username,
		"role":     string(session.Role),
		"exp":      time.Now().Add(s.sessionTTL).Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}
