package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/pageza/recipehub/internal/models"
	"github.com/pageza/recipehub/internal/storage"
)

// FavoritesService keeps the ordered set of bookmarked recipes and writes the
// whole set to storage after every membership change.
type FavoritesService struct {
	mu     sync.Mutex
	kv     storage.KV
	key    string
	favs   []models.Favorite
	logger *zap.Logger
}

// NewFavoritesService creates a store over kv. Call Load once before use.
func NewFavoritesService(kv storage.KV, key string, logger *zap.Logger) *FavoritesService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FavoritesService{
		kv:     kv,
		key:    key,
		favs:   []models.Favorite{},
		logger: logger,
	}
}

// Load reads the persisted set. A missing key, unreadable backend or malformed
// payload yields an empty set; the problem is logged, never returned.
func (s *FavoritesService) Load(ctx context.Context) []models.Favorite {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.favs = s.read(ctx)
	return cloneFavorites(s.favs)
}

func (s *FavoritesService) read(ctx context.Context) []models.Favorite {
	data, err := s.kv.Get(ctx, s.key)
	if errors.Is(err, storage.ErrNotFound) {
		return []models.Favorite{}
	}
	if err != nil {
		s.logger.Warn("failed to read favorites, starting empty", zap.String("key", s.key), zap.Error(err))
		return []models.Favorite{}
	}

	var stored []models.Favorite
	if err := json.Unmarshal(data, &stored); err != nil {
		s.logger.Warn("malformed favorites data, starting empty", zap.String("key", s.key), zap.Error(err))
		return []models.Favorite{}
	}

	// Collapse duplicates so the set invariant holds whatever was on disk.
	favs := make([]models.Favorite, 0, len(stored))
	seen := make(map[string]struct{}, len(stored))
	for _, f := range stored {
		if f.ID == "" {
			continue
		}
		if _, dup := seen[f.ID]; dup {
			continue
		}
		seen[f.ID] = struct{}{}
		favs = append(favs, f)
	}
	return favs
}

// Toggle removes the record with fav.ID if present, otherwise appends fav. The
// new set is persisted before returning. When persisting fails the in-memory
// change is kept and the error wraps ErrPersist.
func (s *FavoritesService) Toggle(ctx context.Context, fav models.Favorite) ([]models.Favorite, error) {
	if fav.ID == "" {
		return nil, ErrMissingID
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	next := make([]models.Favorite, 0, len(s.favs)+1)
	removed := false
	for _, f := range s.favs {
		if f.ID == fav.ID {
			removed = true
			continue
		}
		next = append(next, f)
	}
	if !removed {
		next = append(next, fav)
	}
	s.favs = next

	s.logger.Debug("favorite toggled",
		zap.String("id", fav.ID),
		zap.Bool("saved", !removed),
		zap.Int("count", len(next)),
	)

	err := s.persist(ctx, next)
	return cloneFavorites(next), err
}

// Persist serialises favs and overwrites the stored value.
func (s *FavoritesService) Persist(ctx context.Context, favs []models.Favorite) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.persist(ctx, favs)
}

func (s *FavoritesService) persist(ctx context.Context, favs []models.Favorite) error {
	if favs == nil {
		favs = []models.Favorite{}
	}
	data, err := json.Marshal(favs)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrPersist, err)
	}
	if err := s.kv.Set(ctx, s.key, data); err != nil {
		s.logger.Error("failed to persist favorites", zap.String("key", s.key), zap.Error(err))
		return fmt.Errorf("%w: %w", ErrPersist, err)
	}
	return nil
}

// List returns the current set in insertion order.
func (s *FavoritesService) List() []models.Favorite {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneFavorites(s.favs)
}

// Len returns the number of favorites.
func (s *FavoritesService) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.favs)
}

// Contains reports whether a recipe is bookmarked.
func (s *FavoritesService) Contains(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, f := range s.favs {
		if f.ID == id {
			return true
		}
	}
	return false
}

func cloneFavorites(favs []models.Favorite) []models.Favorite {
	return append([]models.Favorite{}, favs...)
}
