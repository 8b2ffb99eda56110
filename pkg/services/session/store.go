package session

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/gws-tools/scubacfg/pkg/models/domain"
	"github.com/gws-tools/scubacfg/pkg/services/builder"
)

// Store keeps one builder per session id. Each session belongs to a single
// user; the lock only guards the map itself.
type Store interface {
	Create(ctx context.Context) (string, *builder.Builder, error)
	Get(ctx context.Context, id string) (*builder.Builder, error)
	Delete(ctx context.Context, id string)
}

type memoryStore struct {
	catalog       domain.BaselineCatalog
	defaultOutput *domain.OutputSettings

	mu       sync.Mutex
	sessions map[string]*builder.Builder
}

// NewStore creates a session store. When defaultOutput is non-nil, new
// documents start from those output settings instead of zero values.
func NewStore(catalog domain.BaselineCatalog, defaultOutput *domain.OutputSettings) Store {
	return &memoryStore{
		catalog:       catalog,
		defaultOutput: defaultOutput,
		sessions:      map[string]*builder.Builder{},
	}
}

func (s *memoryStore) Create(_ context.Context) (string, *builder.Builder, error) {
	id := uuid.NewString()
	b := builder.New(s.catalog)
	if s.defaultOutput != nil {
		b.SeedOutput(*s.defaultOutput)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[id] = b
	return id, b, nil
}

func (s *memoryStore) Get(_ context.Context, id string) (*builder.Builder, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.sessions[id]
	if !ok {
		return nil, fmt.Errorf("session %s not found", id)
	}
	return b, nil
}

func (s *memoryStore) Delete(_ context.Context, id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
}
