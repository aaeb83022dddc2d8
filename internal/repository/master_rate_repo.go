package repository

import (
	"context"

	"gorm.io/gorm"

	"ete-kpi/internal/model"
)

// MasterRateRepository reference rate data access
type MasterRateRepository interface {
	// ListByLines returns the rates of the given lines; no lines means all.
	ListByLines(ctx context.Context, lines []int) ([]model.MasterEngineering, error)
}

type masterRateRepo struct {
	db *gorm.DB
}

// NewMasterRateRepo creates a MasterRateRepository
func NewMasterRateRepo(db *gorm.DB) MasterRateRepository {
	return &masterRateRepo{db: db}
}

func (r *masterRateRepo) ListByLines(ctx context.Context, lines []int) ([]model.MasterEngineering, error) {
	var rows []model.MasterEngineering
	db := r.db.WithContext(ctx).Where("pz_hr IS NOT NULL AND pz_hr > 0")
	if len(lines) > 0 {
		db = db.Where("line IN ?", lines)
	}
	err := db.Order("id ASC").Find(&rows).Error
	return rows, err
}
