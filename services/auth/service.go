package auth

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"carelink/models"
	"carelink/services/directory"
	"carelink/services/store"
	"carelink/utils"
)

var (
	// ErrInvalidCredentials hides whether the email or the password was wrong.
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrAccountNotFound    = errors.New("account not found")
	ErrEmailTaken         = errors.New("an account with this email already exists")
)

// Result is a successful login or registration.
type Result struct {
	Token   string         `json:"token"`
	Session models.Session `json:"session"`
}

// Service authenticates credentials and opens the directory session.
type Service struct {
	accounts  AccountStore
	directory *directory.Service
	tokens    *utils.TokenIssuer
	logger    *zap.Logger
	cost      int
}

// NewService wires an auth service. cost is the bcrypt cost for new passwords.
func NewService(accounts AccountStore, dir *directory.Service, tokens *utils.TokenIssuer, logger *zap.Logger, cost int) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	return &Service{accounts: accounts, directory: dir, tokens: tokens, logger: logger, cost: cost}
}

// Login verifies email and password, opens the session and issues a token.
func (s *Service) Login(ctx context.Context, email, password string) (Result, error) {
	account, err := s.accounts.FindByEmail(ctx, email)
	if errors.Is(err, ErrAccountNotFound) {
		return Result{}, ErrInvalidCredentials
	}
	if err != nil {
		s.logger.Error("Login: failed to fetch account", zap.Error(err))
		return Result{}, fmt.Errorf("authentication failed, please try again: %w", err)
	}
	if err := bcrypt.CompareHashAndPassword(account.PasswordHash, []byte(password)); err != nil {
		return Result{}, ErrInvalidCredentials
	}

	sess := models.Session{ID: account.SubjectID, Role: account.Role, Name: account.Name, Email: account.Email}
	state, err := s.directory.Login(ctx, sess)
	if err != nil {
		return Result{}, fmt.Errorf("failed to open session: %w", err)
	}
	s.logger.Info("Session opened", zap.String("id", sess.ID), zap.String("role", string(sess.Role)))
	return s.issue(*state.Session)
}

// RegisterParticipant creates a participant with a login and opens its session.
func (s *Service) RegisterParticipant(ctx context.Context, in directory.ParticipantRegistration, password string) (Result, error) {
	return s.register(ctx, in.Email, password, models.RoleParticipant, func() (models.Session, error) {
		p, err := s.directory.RegisterParticipant(ctx, in)
		return models.Session{ID: p.ID, Name: p.Name}, err
	})
}

// RegisterProvider creates a free-tier provider with a login and opens its session.
func (s *Service) RegisterProvider(ctx context.Context, in directory.ProviderRegistration, password string) (Result, error) {
	return s.register(ctx, in.Email, password, models.RoleProvider, func() (models.Session, error) {
		p, err := s.directory.RegisterProvider(ctx, in)
		return models.Session{ID: p.ID, Name: p.Name}, err
	})
}

func (s *Service) register(ctx context.Context, email, password string, role models.Role, create func() (models.Session, error)) (Result, error) {
	if len(password) < 8 {
		return Result{}, fmt.Errorf("%w: password must be at least 8 characters", directory.ErrValidation)
	}
	// The reservation is held until the account exists so a concurrent
	// registration cannot create a second profile for the same email.
	if err := s.accounts.Reserve(ctx, email); err != nil {
		if errors.Is(err, ErrEmailTaken) {
			return Result{}, ErrEmailTaken
		}
		return Result{}, fmt.Errorf("failed to check email: %w", err)
	}
	saved := false
	defer func() {
		if !saved {
			s.accounts.Release(ctx, email)
		}
	}()

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return Result{}, fmt.Errorf("failed to hash password: %w", err)
	}

	created, err := create()
	if err != nil {
		return Result{}, err
	}
	account := Account{Email: email, PasswordHash: hash, Role: role, SubjectID: created.ID, Name: created.Name}
	if err := s.accounts.Create(ctx, account); err != nil {
		return Result{}, fmt.Errorf("failed to save account: %w", err)
	}
	saved = true
	return s.issue(models.Session{ID: created.ID, Role: role, Name: created.Name, Email: email})
}

// Logout closes the directory session.
func (s *Service) Logout(ctx context.Context) store.State {
	return s.directory.Logout(ctx)
}

// Restore reopens the saved session, if any, and issues a fresh token for it.
func (s *Service) Restore(ctx context.Context) (*Result, error) {
	state, err := s.directory.RestoreSession(ctx)
	if err != nil {
		return nil, err
	}
	if state.Session == nil {
		return nil, nil
	}
	res, err := s.issue(*state.Session)
	if err != nil {
		return nil, err
	}
	return &res, nil
}

// Authenticate resolves a bearer token to the open session. The token must
// name the identity that currently holds the session.
func (s *Service) Authenticate(token string) (models.Session, error) {
	claims, err := s.tokens.ValidateToken(token)
	if err != nil {
		return models.Session{}, fmt.Errorf("%w: %v", directory.ErrNotAuthenticated, err)
	}
	current := s.directory.State().Session
	if current == nil || current.ID != claims.Subject || current.Role != claims.Role {
		return models.Session{}, fmt.Errorf("%w: session is no longer active", directory.ErrNotAuthenticated)
	}
	return *current, nil
}

func (s *Service) issue(sess models.Session) (Result, error) {
	token, err := s.tokens.GenerateToken(sess)
	if err != nil {
		return Result{}, fmt.Errorf("failed to issue token: %w", err)
	}
	public := sess
	public.Participant, public.Provider = nil, nil
	return Result{Token: token, Session: public}, nil
}
