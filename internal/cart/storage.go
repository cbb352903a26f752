package cart

import (
	"context"
	"errors"

	"github.com/LegacyPlugin/platform-app/internal/domain"
)

// Storage persists the full item set under a fixed per-session key.
// Consumers define this interface, not the redis implementation.
type Storage interface {
	Load(ctx context.Context, sessionID string) ([]domain.CartItem, error)
	Save(ctx context.Context, sessionID string, items []domain.CartItem) error
}

var ErrCartNotFound = errors.New("cart not found")
