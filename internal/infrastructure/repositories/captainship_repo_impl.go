package repositories

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"captn.backend/internal/domain/entities"
	domainerrors "captn.backend/internal/domain/errors"
	"captn.backend/internal/infrastructure/models"
)

type CaptainshipRepository struct {
	db *gorm.DB
}

func NewCaptainshipRepository(db *gorm.DB) *CaptainshipRepository {
	return &CaptainshipRepository{db: db}
}

func (r *CaptainshipRepository) Create(ctx context.Context, c *entities.Captainship) error {
	m := r.toModel(c)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domainerrors.ErrAlreadyExists
		}
		return err
	}
	c.CreatedAt = m.CreatedAt
	return nil
}

func (r *CaptainshipRepository) GetByStartedAt(ctx context.Context, startedAt time.Time) (*entities.Captainship, error) {
	var m models.Captainship
	if err := r.db.WithContext(ctx).Where("started_at = ?", startedAt).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return r.toEntity(&m), nil
}

func (r *CaptainshipRepository) ListRange(ctx context.Context, from, to time.Time) ([]*entities.Captainship, error) {
	var ms []models.Captainship
	if err := r.db.WithContext(ctx).
		Where("started_at >= ? AND started_at < ?", from, to).
		Order("started_at ASC").
		Find(&ms).Error; err != nil {
		return nil, err
	}

	items := make([]*entities.Captainship, 0, len(ms))
	for i := range ms {
		items = append(items, r.toEntity(&ms[i]))
	}
	return items, nil
}

func (r *CaptainshipRepository) DeleteOwned(ctx context.Context, startedAt time.Time, email string) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("started_at = ? AND email = ?", startedAt, email).
		Delete(&models.Captainship{})
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

func (r *CaptainshipRepository) toEntity(m *models.Captainship) *entities.Captainship {
	return &entities.Captainship{
		ID:        m.ID,
		Email:     m.Email,
		StartedAt: m.StartedAt,
		CreatedAt: m.CreatedAt,
	}
}

func (r *CaptainshipRepository) toModel(e *entities.Captainship) *models.Captainship {
	return &models.Captainship{
		ID:        e.ID,
		Email:     e.Email,
		StartedAt: e.StartedAt,
		CreatedAt: e.CreatedAt,
	}
}
