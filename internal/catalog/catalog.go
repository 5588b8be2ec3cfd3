package catalog

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"trade-reconciler/internal/infrastructure"
)

// Service ties the upstream client, the database snapshot and the search
// index together. The index is swapped atomically on refresh; searches
// never see a half-built one.
type Service struct {
	client *Client
	store  *Store
	logger *zap.Logger

	mu    sync.RWMutex
	index *Index
}

func NewService(client *Client, store *Store, logger *zap.Logger) *Service {
	return &Service{
		client: client,
		store:  store,
		logger: logger,
		index:  &Index{},
	}
}

// LoadFromStore builds the index from the persisted snapshot, if any.
func (s *Service) LoadFromStore(ctx context.Context) error {
	items, err := s.store.LoadAll(ctx)
	if err != nil {
		return err
	}
	s.swap(BuildIndex(items))
	s.logger.Info("catalog loaded from store", zap.Int("items", len(items)))
	return nil
}

// Refresh fetches the upstream catalog, persists it and rebuilds the
// index.
func (s *Service) Refresh(ctx context.Context) error {
	items, err := s.client.Fetch(ctx)
	if err != nil {
		return fmt.Errorf("catalog refresh failed: %w", err)
	}
	if err := s.store.SaveAll(ctx, items); err != nil {
		return fmt.Errorf("catalog persist failed: %w", err)
	}
	s.swap(BuildIndex(items))
	s.logger.Info("catalog refreshed", zap.Int("items", len(items)))
	return nil
}

// Search runs a substring search over the current index.
func (s *Service) Search(query string) []Item {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.index.Search(query)
}

func (s *Service) swap(idx *Index) {
	s.mu.Lock()
	s.index = idx
	s.mu.Unlock()
	infrastructure.CatalogItems.Set(float64(idx.Len()))
}
