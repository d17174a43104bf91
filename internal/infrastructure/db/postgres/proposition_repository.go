package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/persoshop/persoshop-api/internal/core/domain"
)

// PropositionRepository implements ports.PropositionRepository on the
// relational store.
type PropositionRepository struct {
	db *gorm.DB
}

func NewPropositionRepository(db *gorm.DB) *PropositionRepository {
	return &PropositionRepository{db: db}
}

func (r *PropositionRepository) Create(ctx context.Context, p *domain.Proposition) (*domain.Proposition, error) {
	m := &propositionModel{
		ID:           p.ID,
		UserID:       p.UserID,
		AdminID:      p.AdminID,
		StorageID:    p.StorageID,
		URL:          p.URL,
		ProductName:  p.ProductName,
		ProductPrice: p.ProductPrice,
		ProductURL:   p.ProductURL,
		Status:       string(p.Status),
		CreatedAt:    p.CreatedAt,
	}
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	if m.Status == "" {
		m.Status = string(domain.PropositionPending)
	}
	if m.CreatedAt.IsZero() {
		m.CreatedAt = time.Now().UTC()
	}

	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return nil, fmt.Errorf("insert proposition: %w", err)
	}
	return m.toDomain(), nil
}

func (r *PropositionRepository) FindByID(ctx context.Context, id string) (*domain.Proposition, error) {
	var m propositionModel
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("find proposition: %w", err)
	}
	return m.toDomain(), nil
}

func (r *PropositionRepository) ListByUser(ctx context.Context, userID string) ([]*domain.Proposition, error) {
	var models []propositionModel
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&models).Error
	if err != nil {
		return nil, fmt.Errorf("list propositions: %w", err)
	}

	items := make([]*domain.Proposition, 0, len(models))
	for i := range models {
		items = append(items, models[i].toDomain())
	}
	return items, nil
}

// UpdateStatus sets the proposition status. Conflicting concurrent
// updates resolve last-write-wins at the row level; the store is the
// serialization point.
func (r *PropositionRepository) UpdateStatus(ctx context.Context, id string, status domain.PropositionStatus) (*domain.Proposition, error) {
	res := r.db.WithContext(ctx).Model(&propositionModel{}).Where("id = ?", id).Update("status", string(status))
	if res.Error != nil {
		return nil, fmt.Errorf("update proposition status: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, domain.ErrNotFound
	}
	return r.FindByID(ctx, id)
}

func (r *PropositionRepository) CountByUserAndStatus(ctx context.Context, userID string, status domain.PropositionStatus) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&propositionModel{}).
		Where("user_id = ? AND status = ?", userID, string(status)).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("count propositions: %w", err)
	}
	return count, nil
}
