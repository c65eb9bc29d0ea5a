package workspace

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/aretw0/urakawa"
	"github.com/aretw0/urakawa/internal/logging"
	"github.com/aretw0/urakawa/pkg/core"
	"github.com/aretw0/urakawa/pkg/ports"
)

// DefaultLockTTL bounds how long a distributed lock survives a crashed holder.
const DefaultLockTTL = 30 * time.Second

// lockEntry holds the mutex and the reference count.
type lockEntry struct {
	mu   sync.Mutex
	refs int
}

// Manager orchestrates document access, ensuring safe concurrent operations.
// Unused locks are dropped once their reference count reaches zero.
type Manager struct {
	repo *urakawa.Repository

	mu    sync.Mutex
	locks map[string]*lockEntry

	locker  ports.DistributedLocker
	lockTTL time.Duration
	logger  *slog.Logger
	init    func(*core.Project)
}

// Option configures the Manager.
type Option func(*Manager)

// WithLocker enables distributed locking.
func WithLocker(locker ports.DistributedLocker) Option {
	return func(m *Manager) {
		m.locker = locker
	}
}

// WithLockTTL sets the TTL of distributed locks. Defaults to DefaultLockTTL.
func WithLockTTL(ttl time.Duration) Option {
	return func(m *Manager) {
		if ttl > 0 {
			m.lockTTL = ttl
		}
	}
}

// WithLogger configures a logger for the Manager.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Manager) {
		m.logger = logger
	}
}

// WithInitializer customizes projects created by LoadOrCreate. The default
// gives the project a single empty presentation.
func WithInitializer(fn func(*core.Project)) Option {
	return func(m *Manager) {
		m.init = fn
	}
}

// NewManager creates a Manager over repo.
func NewManager(repo *urakawa.Repository, opts ...Option) *Manager {
	m := &Manager{
		repo:    repo,
		locks:   make(map[string]*lockEntry),
		lockTTL: DefaultLockTTL,
		logger:  logging.NewNop(),
		init: func(pr *core.Project) {
			pr.NewPresentation()
		},
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// acquire gets or creates a lock entry and increments its reference count.
// The caller must lock entry.mu and call release(id) after unlocking.
func (m *Manager) acquire(id string) *lockEntry {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, ok := m.locks[id]
	if !ok {
		entry = &lockEntry{}
		m.locks[id] = entry
	}
	entry.refs++
	return entry
}

// release decrements the reference count and deletes the entry at zero.
func (m *Manager) release(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, ok := m.locks[id]
	if !ok {
		return
	}
	entry.refs--
	if entry.refs <= 0 {
		delete(m.locks, id)
	}
}

// Load retrieves a stored project.
func (m *Manager) Load(ctx context.Context, id string) (*core.Project, error) {
	var pr *core.Project
	err := m.WithLock(ctx, id, func(ctx context.Context) error {
		var err error
		pr, err = m.repo.Load(ctx, id)
		return err
	})
	return pr, err
}

// LoadOrCreate loads a project, creating and saving a new one if none is
// stored under id.
func (m *Manager) LoadOrCreate(ctx context.Context, id string) (*core.Project, error) {
	var pr *core.Project
	err := m.WithLock(ctx, id, func(ctx context.Context) error {
		var err error
		pr, err = m.loadOrCreate(ctx, id)
		return err
	})
	return pr, err
}

func (m *Manager) loadOrCreate(ctx context.Context, id string) (*core.Project, error) {
	pr, err := m.repo.Load(ctx, id)
	if err == nil {
		return pr, nil
	}
	if !errors.Is(err, ports.ErrDocumentNotFound) {
		return nil, fmt.Errorf("failed to check document existence: %w", err)
	}

	pr = core.NewProject()
	m.init(pr)
	if err := m.repo.Save(ctx, id, pr); err != nil {
		return nil, fmt.Errorf("failed to initialize document: %w", err)
	}
	m.logger.Info("document created", "id", id)
	return pr, nil
}

// Edit loads the project stored under id, creating it if needed, passes it to
// fn and saves the result. Nothing is saved if fn fails.
func (m *Manager) Edit(ctx context.Context, id string, fn func(*core.Project) error) error {
	return m.WithLock(ctx, id, func(ctx context.Context) error {
		pr, err := m.loadOrCreate(ctx, id)
		if err != nil {
			return err
		}
		if err := fn(pr); err != nil {
			return err
		}
		return m.repo.Save(ctx, id, pr)
	})
}

// Save persists pr under id.
func (m *Manager) Save(ctx context.Context, id string, pr *core.Project) error {
	return m.WithLock(ctx, id, func(ctx context.Context) error {
		return m.repo.Save(ctx, id, pr)
	})
}

// Delete removes the document from the store.
func (m *Manager) Delete(ctx context.Context, id string) error {
	return m.WithLock(ctx, id, func(ctx context.Context) error {
		return m.repo.Delete(ctx, id)
	})
}

// List delegates to the repository.
func (m *Manager) List(ctx context.Context) ([]string, error) {
	return m.repo.List(ctx)
}

// Repository returns the underlying repository.
func (m *Manager) Repository() *urakawa.Repository {
	return m.repo
}

// WithLock executes fn while holding the lock for id.
func (m *Manager) WithLock(ctx context.Context, id string, fn func(context.Context) error) error {
	if err := ports.ValidateDocumentID(id); err != nil {
		return err
	}
	entry := m.acquire(id)
	entry.mu.Lock()
	defer func() {
		entry.mu.Unlock()
		m.release(id)
	}()

	if m.locker != nil {
		unlock, err := m.locker.Lock(ctx, id, m.lockTTL)
		if err != nil {
			return fmt.Errorf("failed to acquire distributed lock: %w", err)
		}
		defer func() {
			if err := unlock(ctx); err != nil {
				m.logger.Warn("failed to release distributed lock (will expire via TTL)",
					"id", id,
					"err", err,
				)
			}
		}()
	}

	return fn(ctx)
}
