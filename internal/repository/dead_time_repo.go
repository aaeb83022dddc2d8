package repository

import (
	"context"

	"gorm.io/gorm"

	"ete-kpi/internal/kpi"
	"ete-kpi/internal/model"
)

// DeadTimeRepository dead-time event data access
type DeadTimeRepository interface {
	ListByIDs(ctx context.Context, ids []int) ([]model.DeadTime, error)
	// ListByWindow returns dead-time events registered inside w.
	ListByWindow(ctx context.Context, w kpi.Window) ([]model.DeadTime, error)
	Create(ctx context.Context, dt *model.DeadTime) error
}

type deadTimeRepo struct {
	db *gorm.DB
}

// NewDeadTimeRepo creates a DeadTimeRepository
func NewDeadTimeRepo(db *gorm.DB) DeadTimeRepository {
	return &deadTimeRepo{db: db}
}

// inChunk keeps IN lists under the parameter limits of both drivers.
const inChunk = 500

func (r *deadTimeRepo) ListByIDs(ctx context.Context, ids []int) ([]model.DeadTime, error) {
	out := make([]model.DeadTime, 0, len(ids))
	for start := 0; start < len(ids); start += inChunk {
		end := start + inChunk
		if end > len(ids) {
			end = len(ids)
		}
		var batch []model.DeadTime
		if err := r.db.WithContext(ctx).
			Where("id IN ?", ids[start:end]).
			Find(&batch).Error; err != nil {
			return nil, err
		}
		out = append(out, batch...)
	}
	return out, nil
}

func (r *deadTimeRepo) ListByWindow(ctx context.Context, w kpi.Window) ([]model.DeadTime, error) {
	var dts []model.DeadTime
	db := r.db.WithContext(ctx)
	if w.Bounded {
		db = db.Where("registration_date >= ? AND registration_date <= ?", w.From, w.To)
	}
	err := db.Order("id ASC").Find(&dts).Error
	return dts, err
}

func (r *deadTimeRepo) Create(ctx context.Context, dt *model.DeadTime) error {
	return r.db.WithContext(ctx).Omit("Reason").Create(dt).Error
}
