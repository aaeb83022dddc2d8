package repository

import "gorm.io/gorm"

// Repository aggregates every record store repository.
type Repository struct {
	Production ProductionRepository
	DeadTime   DeadTimeRepository
	Catalog    CatalogRepository
	MasterRate MasterRateRepository

	db *gorm.DB
}

// NewRepository builds the aggregate over db.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		Production: NewProductionRepo(db),
		DeadTime:   NewDeadTimeRepo(db),
		Catalog:    NewCatalogRepo(db),
		MasterRate: NewMasterRateRepo(db),
		db:         db,
	}
}

// Transaction runs fn with repositories bound to a single transaction.
// An aggregate built without a database runs fn on itself.
func (r *Repository) Transaction(fn func(tx *Repository) error) error {
	if r.db == nil {
		return fn(r)
	}
	return r.db.Transaction(func(tx *gorm.DB) error {
		return fn(NewRepository(tx))
	})
}
