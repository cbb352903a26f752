package catalog

import (
	"context"
	"errors"
	"log"

	"golang.org/x/sync/singleflight"

	"github.com/LegacyPlugin/platform-app/internal/domain"
)

// Source fetches the catalog from the store API.
type Source interface {
	Plugins(ctx context.Context) ([]domain.Plugin, error)
}

// Service is a read-through cache over the public plugin list. The storefront
// hits this on every page, so misses are collapsed with singleflight and the
// cache is filled asynchronously.
type Service struct {
	source Source
	cache  Cache
	sfg    singleflight.Group
}

func NewService(source Source, cache Cache) *Service {
	return &Service{source: source, cache: cache}
}

func (s *Service) Plugins(ctx context.Context) ([]domain.Plugin, error) {
	v, err, _ := s.sfg.Do(cacheKey, func() (interface{}, error) {
		plugins, errGet := s.cache.Get(ctx)
		if errGet == nil {
			return plugins, nil
		}
		if !errors.Is(errGet, ErrCacheMiss) {
			log.Printf("catalog cache get error: %v", errGet) // log cache error but continue
		}

		plugins, errFetch := s.source.Plugins(ctx)
		if errFetch != nil {
			return nil, errFetch
		}

		go func() {
			if errSet := s.cache.Set(context.Background(), plugins); errSet != nil {
				log.Printf("catalog cache set error: %v", errSet)
			}
		}()

		return plugins, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]domain.Plugin), nil
}

// Find resolves one catalog entry by id, for cart snapshots.
func (s *Service) Find(ctx context.Context, id int64) (*domain.Plugin, bool, error) {
	plugins, err := s.Plugins(ctx)
	if err != nil {
		return nil, false, err
	}
	for i := range plugins {
		if plugins[i].ID == id {
			return &plugins[i], true, nil
		}
	}
	return nil, false, nil
}
