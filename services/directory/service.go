package directory

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"carelink/database/repository"
	"carelink/database/repository/snapshot"
	"carelink/metrics"
	"carelink/models"
	"carelink/services/store"
)

// Service is the only caller of store.Dispatch. Each operation validates its
// input, checks the session against the current state, writes through to the
// remote backend and, only when that write succeeded or no backend is
// configured, dispatches the matching action.
type Service struct {
	// mu spans check, remote write and dispatch so that checks made
	// against the state still hold when the action lands.
	mu sync.Mutex

	store     *store.Store
	remote    repository.Adapter
	snapshots snapshot.Store
	validate  *validator.Validate
	logger    *zap.Logger
	metrics   *metrics.Metrics

	now   func() time.Time
	newID func() string
}

// Option customises a Service.
type Option func(*Service)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithIDs replaces the id generator.
func WithIDs(newID func() string) Option {
	return func(s *Service) { s.newID = newID }
}

// NewService wires a directory service. remote and snapshots may be nil, in
// which case the service runs local-only with an in-memory snapshot.
func NewService(st *store.Store, remote repository.Adapter, snapshots snapshot.Store, logger *zap.Logger, m *metrics.Metrics, opts ...Option) *Service {
	if remote == nil {
		remote = repository.Unconfigured{}
	}
	if snapshots == nil {
		snapshots = snapshot.NewMemoryStore()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Service{
		store:     st,
		remote:    remote,
		snapshots: snapshots,
		validate:  validator.New(),
		logger:    logger,
		metrics:   m,
		now:       func() time.Time { return time.Now().UTC() },
		newID:     uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// State returns the current store state.
func (s *Service) State() store.State {
	return s.store.State()
}

// commit performs write against the backend and dispatches action when the
// write succeeded or reported repository.ErrNotConfigured. Any other error is
// returned and the store is left as it was. Callers hold s.mu.
func (s *Service) commit(ctx context.Context, op string, write func(context.Context) error, action store.Action) (store.State, error) {
	if err := write(ctx); err != nil {
		if !errors.Is(err, repository.ErrNotConfigured) {
			s.metrics.IncrementRemoteFailure(op)
			s.logger.Error("Remote write failed",
				zap.String("operation", op),
				zap.Bool("temporary", isTemporary(err)),
				zap.Error(err))
			return s.store.State(), fmt.Errorf("failed to %s: %w", humanOp(op), err)
		}
		s.logger.Debug("Remote persistence not configured; applying locally", zap.String("operation", op))
	}
	return s.dispatch(ctx, action), nil
}

// dispatch applies action and saves the snapshot when the session or theme changed.
func (s *Service) dispatch(ctx context.Context, action store.Action) store.State {
	before := s.store.State()
	after := s.store.Dispatch(action)
	s.metrics.IncrementAction(action.Type())

	if before.Session != after.Session || before.Theme != after.Theme {
		snap := snapshot.Snapshot{Session: after.Session, Theme: after.Theme}
		if err := s.snapshots.Save(ctx, snap); err != nil {
			s.logger.Warn("Failed to save session snapshot", zap.Error(err))
		}
	}
	return after
}

func (s *Service) check(input interface{}) error {
	if err := s.validate.Struct(input); err != nil {
		return validationError(err)
	}
	return nil
}

// session returns the open session or ErrNotAuthenticated.
func (s *Service) session(state store.State) (models.Session, error) {
	if state.Session == nil {
		return models.Session{}, ErrNotAuthenticated
	}
	return *state.Session, nil
}

// requireRole returns the session if it has the given role.
func (s *Service) requireRole(state store.State, role models.Role) (models.Session, error) {
	sess, err := s.session(state)
	if err != nil {
		return sess, err
	}
	if sess.Role != role {
		return sess, fmt.Errorf("%w: requires a %s session", ErrForbidden, role)
	}
	return sess, nil
}

func (s *Service) provider(state store.State, id string) (models.Provider, error) {
	p, ok := state.Provider(id)
	if !ok {
		return p, notFound("provider", id)
	}
	return p, nil
}

func isTemporary(err error) bool {
	var re *repository.RemoteError
	return errors.As(err, &re) && re.Temporary()
}

func humanOp(op string) string {
	out := []byte(op)
	for i, c := range out {
		if c == '_' {
			out[i] = ' '
		}
	}
	return string(out)
}
