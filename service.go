package simstore

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/flarexio/simstore/embedding"
	"github.com/flarexio/simstore/vector"
)

// Service defines the core logic of SimStore.
type Service interface {

	// Close releases every stored record. Later calls fail with ErrServiceClosed.
	Close() error

	// Put embeds items and stores them for owner, replacing any previous record.
	Put(ctx context.Context, owner string, items []string) error

	// Query returns the stored string of owner most similar to text.
	Query(ctx context.Context, owner string, text string) (*Match, error)
}

type ServiceMiddleware func(Service) Service

func NewService(provider embedding.Provider) Service {
	log := zap.L().With(
		zap.String("service", "simstore"),
	)

	return &service{
		records:  make(map[string]*Record),
		provider: provider,
		log:      log,
	}
}

type service struct {
	records   map[string]*Record
	dimension int
	closed    bool
	mu        sync.RWMutex

	provider embedding.Provider
	log      *zap.Logger
}

func (svc *service) Close() error {
	svc.mu.Lock()
	defer svc.mu.Unlock()

	svc.log.Info("records released",
		zap.String("action", "close"),
		zap.Int("count", len(svc.records)),
	)

	svc.records = make(map[string]*Record)
	svc.closed = true

	return nil
}

func (svc *service) Put(ctx context.Context, owner string, items []string) error {
	if err := validateOwner(owner); err != nil {
		return err
	}

	if err := validateItems(items); err != nil {
		return err
	}

	svc.mu.RLock()
	closed := svc.closed
	svc.mu.RUnlock()

	if closed {
		return ErrServiceClosed
	}

	// encode outside the lock
	vectors, err := svc.provider.Encode(ctx, items)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrEmbeddingFailure, err)
	}

	if len(vectors) != len(items) {
		return fmt.Errorf("%w: got %d vectors for %d strings", ErrEmbeddingFailure, len(vectors), len(items))
	}

	dim := len(vectors[0])
	for i, v := range vectors {
		if len(v) == 0 || len(v) != dim {
			return fmt.Errorf("%w: vector %d has dimension %d", ErrEmbeddingFailure, i, len(v))
		}
	}

	record := &Record{
		Owner:   owner,
		Items:   append([]string(nil), items...),
		Vectors: vectors,
	}

	svc.mu.Lock()
	defer svc.mu.Unlock()

	if svc.closed {
		return ErrServiceClosed
	}

	if svc.dimension == 0 {
		svc.dimension = dim
	}

	if dim != svc.dimension {
		return fmt.Errorf("%w: dimension %d, store uses %d", ErrEmbeddingFailure, dim, svc.dimension)
	}

	svc.records[owner] = record

	return nil
}

func (svc *service) Query(ctx context.Context, owner string, text string) (*Match, error) {
	if err := validateOwner(owner); err != nil {
		return nil, err
	}

	if err := validateText(text); err != nil {
		return nil, err
	}

	svc.mu.RLock()
	record, ok := svc.records[owner]
	closed := svc.closed
	svc.mu.RUnlock()

	if closed {
		return nil, ErrServiceClosed
	}

	if !ok {
		return nil, fmt.Errorf("%w for user: %s", ErrNotFound, owner)
	}

	if record.Len() == 0 || len(record.Vectors) != record.Len() {
		return nil, fmt.Errorf("%w: %s", ErrEmptyRecord, owner)
	}

	vectors, err := svc.provider.Encode(ctx, []string{text})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrEmbeddingFailure, err)
	}

	if len(vectors) != 1 {
		return nil, fmt.Errorf("%w: got %d vectors for 1 query", ErrEmbeddingFailure, len(vectors))
	}

	q := vectors[0]
	if len(q) != len(record.Vectors[0]) {
		return nil, fmt.Errorf("%w: query dimension %d, stored %d", ErrEmbeddingFailure, len(q), len(record.Vectors[0]))
	}

	index, score, ok := vector.Nearest(q, record.Vectors)
	if !ok {
		return nil, ErrUndefinedSimilarity
	}

	return &Match{
		Query: text,
		Text:  record.Items[index],
		Index: index,
		Score: score,
	}, nil
}
