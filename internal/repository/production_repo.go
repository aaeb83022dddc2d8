package repository

import (
	"context"

	"gorm.io/gorm"

	"ete-kpi/internal/kpi"
	"ete-kpi/internal/model"
)

// ProductionRepository production event data access
type ProductionRepository interface {
	// ListByWindow returns events registered inside w, in id order.
	// An unbounded window returns every event.
	ListByWindow(ctx context.Context, w kpi.Window) ([]model.Production, error)
	// ListDetailed returns events newest first with line, machine, hour and
	// dead time preloaded. limit <= 0 means no limit.
	ListDetailed(ctx context.Context, limit int) ([]model.Production, error)
	Create(ctx context.Context, p *model.Production) error
}

type productionRepo struct {
	db *gorm.DB
}

// NewProductionRepo creates a ProductionRepository
func NewProductionRepo(db *gorm.DB) ProductionRepository {
	return &productionRepo{db: db}
}

func (r *productionRepo) ListByWindow(ctx context.Context, w kpi.Window) ([]model.Production, error) {
	var events []model.Production
	db := r.db.WithContext(ctx)
	if w.Bounded {
		db = db.Where("registration_date >= ? AND registration_date <= ?", w.From, w.To)
	}
	err := db.Order("id ASC").Find(&events).Error
	return events, err
}

func (r *productionRepo) ListDetailed(ctx context.Context, limit int) ([]model.Production, error) {
	var events []model.Production
	db := r.db.WithContext(ctx).
		Preload("Line").
		Preload("Machine").
		Preload("Hour").
		Preload("DeadTime").
		Order("id DESC")
	if limit > 0 {
		db = db.Limit(limit)
	}
	err := db.Find(&events).Error
	return events, err
}

func (r *productionRepo) Create(ctx context.Context, p *model.Production) error {
	return r.db.WithContext(ctx).Omit("Line", "Machine", "Hour", "DeadTime").Create(p).Error
}
