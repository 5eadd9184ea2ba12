package repositories

import (
	"context"
	"time"

	"captn.backend/internal/domain/entities"
)

type CaptainshipRepository interface {
	Create(ctx context.Context, c *entities.Captainship) error
	GetByStartedAt(ctx context.Context, startedAt time.Time) (*entities.Captainship, error)
	// ListRange returns captainships with startedAt in [from, to), ordered
	// by startedAt ascending.
	ListRange(ctx context.Context, from, to time.Time) ([]*entities.Captainship, error)
	// DeleteOwned removes captainships matching both startedAt and email,
	// reporting how many rows were deleted.
	DeleteOwned(ctx context.Context, startedAt time.Time, email string) (int64, error)
}
