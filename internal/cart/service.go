package cart

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/shopspring/decimal"

	"github.com/LegacyPlugin/platform-app/internal/domain"
)

// Service is the selected-items set for a browser session. It is independent
// of authentication state and every mutation writes the full set through to
// storage before returning.
type Service struct {
	storage Storage
}

func NewService(storage Storage) *Service {
	return &Service{storage: storage}
}

// Items returns the current cart. A missing entry or an unreadable payload
// yields an empty cart; load problems never surface to the caller.
func (s *Service) Items(ctx context.Context, sessionID string) []domain.CartItem {
	items, err := s.storage.Load(ctx, sessionID)
	if err != nil {
		if !errors.Is(err, ErrCartNotFound) {
			log.Printf("cart load error: %v", err)
		}
		return nil
	}
	return items
}

// Add inserts the item unless an entry with the same id already exists;
// re-adding is a no-op. Returns the resulting set.
func (s *Service) Add(ctx context.Context, sessionID string, item domain.CartItem) ([]domain.CartItem, error) {
	items := s.Items(ctx, sessionID)
	for _, existing := range items {
		if existing.ID == item.ID {
			return items, nil
		}
	}

	items = append(items, item)
	if err := s.storage.Save(ctx, sessionID, items); err != nil {
		return nil, fmt.Errorf("persist cart: %w", err)
	}
	return items, nil
}

// Remove deletes the entry with the given id. An absent id is a silent no-op.
func (s *Service) Remove(ctx context.Context, sessionID string, id int64) ([]domain.CartItem, error) {
	items := s.Items(ctx, sessionID)
	kept := make([]domain.CartItem, 0, len(items))
	removed := false
	for _, item := range items {
		if item.ID == id {
			removed = true
			continue
		}
		kept = append(kept, item)
	}
	if !removed {
		return items, nil
	}

	if err := s.storage.Save(ctx, sessionID, kept); err != nil {
		return nil, fmt.Errorf("persist cart: %w", err)
	}
	return kept, nil
}

func (s *Service) Clear(ctx context.Context, sessionID string) error {
	if err := s.storage.Save(ctx, sessionID, []domain.CartItem{}); err != nil {
		return fmt.Errorf("persist cart: %w", err)
	}
	return nil
}

// Total recomputes the sum on every call.
func (s *Service) Total(ctx context.Context, sessionID string) decimal.Decimal {
	return domain.CartTotal(s.Items(ctx, sessionID))
}
