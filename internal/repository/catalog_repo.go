package repository

import (
	"context"

	"gorm.io/gorm"

	"ete-kpi/internal/model"
)

// CatalogRepository reference data: lines, processes, machines, hours,
// shifts, codes, reasons and part numbers.
type CatalogRepository interface {
	ListHours(ctx context.Context) ([]model.Hour, error)
	ListHoursByIDs(ctx context.Context, ids []int) ([]model.Hour, error)
	ListLines(ctx context.Context) ([]model.Line, error)
	ListCodes(ctx context.Context) ([]model.Code, error)
	ListWorkShifts(ctx context.Context) ([]model.WorkShift, error)
	ListMachines(ctx context.Context) ([]model.Machine, error)
	ListProcessesByLine(ctx context.Context, lineID int) ([]model.Process, error)
	ListMachinesByProcess(ctx context.Context, processID int) ([]model.Machine, error)
	ListMachinesByLine(ctx context.Context, lineID int) ([]model.Machine, error)
	ListReasons(ctx context.Context) ([]model.Reason, error)
	ListReasonsByCode(ctx context.Context, codeID int) ([]model.Reason, error)

	// HourIDsByShift resolves a work shift to the hours mapped to it.
	HourIDsByShift(ctx context.Context, shiftID int) ([]int, error)

	LineExists(ctx context.Context, id int) (bool, error)
	MachineExists(ctx context.Context, id int) (bool, error)
	WorkShiftExists(ctx context.Context, id int) (bool, error)
	CodeExists(ctx context.Context, id int) (bool, error)
	ReasonExists(ctx context.Context, id int) (bool, error)
	PartNumberExists(ctx context.Context, partNumber string) (bool, error)
}

type catalogRepo struct {
	db *gorm.DB
}

// NewCatalogRepo creates a CatalogRepository
func NewCatalogRepo(db *gorm.DB) CatalogRepository {
	return &catalogRepo{db: db}
}

// ── Listings ──

func (r *catalogRepo) ListHours(ctx context.Context) ([]model.Hour, error) {
	var hours []model.Hour
	err := r.db.WithContext(ctx).Order("id ASC").Find(&hours).Error
	return hours, err
}

func (r *catalogRepo) ListHoursByIDs(ctx context.Context, ids []int) ([]model.Hour, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var hours []model.Hour
	err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&hours).Error
	return hours, err
}

func (r *catalogRepo) ListLines(ctx context.Context) ([]model.Line, error) {
	var lines []model.Line
	err := r.db.WithContext(ctx).Order("id ASC").Find(&lines).Error
	return lines, err
}

func (r *catalogRepo) ListCodes(ctx context.Context) ([]model.Code, error) {
	var codes []model.Code
	err := r.db.WithContext(ctx).Order("id ASC").Find(&codes).Error
	return codes, err
}

func (r *catalogRepo) ListWorkShifts(ctx context.Context) ([]model.WorkShift, error) {
	var shifts []model.WorkShift
	err := r.db.WithContext(ctx).Order("id ASC").Find(&shifts).Error
	return shifts, err
}

func (r *catalogRepo) ListMachines(ctx context.Context) ([]model.Machine, error) {
	var machines []model.Machine
	err := r.db.WithContext(ctx).Order("id ASC").Find(&machines).Error
	return machines, err
}

func (r *catalogRepo) ListProcessesByLine(ctx context.Context, lineID int) ([]model.Process, error) {
	var processes []model.Process
	err := r.db.WithContext(ctx).
		Where("line_id = ?", lineID).
		Order("id ASC").
		Find(&processes).Error
	return processes, err
}

func (r *catalogRepo) ListMachinesByProcess(ctx context.Context, processID int) ([]model.Machine, error) {
	var machines []model.Machine
	err := r.db.WithContext(ctx).
		Where("process_id = ?", processID).
		Order("id ASC").
		Find(&machines).Error
	return machines, err
}

func (r *catalogRepo) ListMachinesByLine(ctx context.Context, lineID int) ([]model.Machine, error) {
	var machines []model.Machine
	err := r.db.WithContext(ctx).
		Joins("JOIN processes ON processes.id = machines.process_id").
		Where("processes.line_id = ?", lineID).
		Order("machines.id ASC").
		Find(&machines).Error
	return machines, err
}

func (r *catalogRepo) ListReasons(ctx context.Context) ([]model.Reason, error) {
	var reasons []model.Reason
	err := r.db.WithContext(ctx).Order("id ASC").Find(&reasons).Error
	return reasons, err
}

func (r *catalogRepo) ListReasonsByCode(ctx context.Context, codeID int) ([]model.Reason, error) {
	var reasons []model.Reason
	err := r.db.WithContext(ctx).
		Where("code_id = ?", codeID).
		Order("id ASC").
		Find(&reasons).Error
	return reasons, err
}

func (r *catalogRepo) HourIDsByShift(ctx context.Context, shiftID int) ([]int, error) {
	var ids []int
	err := r.db.WithContext(ctx).
		Model(&model.WorkShiftHour{}).
		Where("work_shift_id = ?", shiftID).
		Order("hour_id ASC").
		Pluck("hour_id", &ids).Error
	return ids, err
}

// ── Existence checks ──

func (r *catalogRepo) LineExists(ctx context.Context, id int) (bool, error) {
	return r.exists(ctx, &model.Line{}, "id = ?", id)
}

func (r *catalogRepo) MachineExists(ctx context.Context, id int) (bool, error) {
	return r.exists(ctx, &model.Machine{}, "id = ?", id)
}

func (r *catalogRepo) WorkShiftExists(ctx context.Context, id int) (bool, error) {
	return r.exists(ctx, &model.WorkShift{}, "id = ?", id)
}

func (r *catalogRepo) CodeExists(ctx context.Context, id int) (bool, error) {
	return r.exists(ctx, &model.Code{}, "id = ?", id)
}

func (r *catalogRepo) ReasonExists(ctx context.Context, id int) (bool, error) {
	return r.exists(ctx, &model.Reason{}, "id = ?", id)
}

func (r *catalogRepo) PartNumberExists(ctx context.Context, partNumber string) (bool, error) {
	return r.exists(ctx, &model.PartNumber{}, "part_number = ?", partNumber)
}

func (r *catalogRepo) exists(ctx context.Context, m interface{}, query string, args ...interface{}) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(m).Where(query, args...).Count(&count).Error
	return count > 0, err
}
