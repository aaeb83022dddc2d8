package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"ete-kpi/internal/dto"
	"ete-kpi/internal/model"
	"ete-kpi/internal/repository"
)

// CatalogService reference data used to fill the production form and the
// KPI filters.
type CatalogService interface {
	Hours(ctx context.Context) ([]model.Hour, error)
	Lines(ctx context.Context) ([]model.Line, error)
	Codes(ctx context.Context) ([]model.Code, error)
	WorkShifts(ctx context.Context) ([]model.WorkShift, error)
	Machines(ctx context.Context) ([]model.Machine, error)
	ProcessesByLine(ctx context.Context, lineID int) ([]model.Process, error)
	MachinesByProcess(ctx context.Context, processID int) ([]model.Machine, error)
	MachinesByLine(ctx context.Context, lineID int) ([]model.Machine, error)
	ReasonsByCode(ctx context.Context, codeID int) ([]model.Reason, error)
	// ValidatePartNumber reports whether the trimmed part number is registered.
	ValidatePartNumber(ctx context.Context, partNumber string) (*dto.PartNumberValidationResponse, error)
}

type catalogService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewCatalogService creates a CatalogService
func NewCatalogService(repo *repository.Repository, logger *zap.Logger) CatalogService {
	return &catalogService{repo: repo, logger: logger}
}

func (s *catalogService) Hours(ctx context.Context) ([]model.Hour, error) {
	items, err := s.repo.Catalog.ListHours(ctx)
	return listed(s.logger, "hours", items, err)
}

func (s *catalogService) Lines(ctx context.Context) ([]model.Line, error) {
	items, err := s.repo.Catalog.ListLines(ctx)
	return listed(s.logger, "lines", items, err)
}

func (s *catalogService) Codes(ctx context.Context) ([]model.Code, error) {
	items, err := s.repo.Catalog.ListCodes(ctx)
	return listed(s.logger, "codes", items, err)
}

func (s *catalogService) WorkShifts(ctx context.Context) ([]model.WorkShift, error) {
	items, err := s.repo.Catalog.ListWorkShifts(ctx)
	return listed(s.logger, "work shifts", items, err)
}

func (s *catalogService) Machines(ctx context.Context) ([]model.Machine, error) {
	items, err := s.repo.Catalog.ListMachines(ctx)
	return listed(s.logger, "machines", items, err)
}

func (s *catalogService) ProcessesByLine(ctx context.Context, lineID int) ([]model.Process, error) {
	items, err := s.repo.Catalog.ListProcessesByLine(ctx, lineID)
	return listed(s.logger, "processes by line", items, err)
}

func (s *catalogService) MachinesByProcess(ctx context.Context, processID int) ([]model.Machine, error) {
	items, err := s.repo.Catalog.ListMachinesByProcess(ctx, processID)
	return listed(s.logger, "machines by process", items, err)
}

func (s *catalogService) MachinesByLine(ctx context.Context, lineID int) ([]model.Machine, error) {
	items, err := s.repo.Catalog.ListMachinesByLine(ctx, lineID)
	return listed(s.logger, "machines by line", items, err)
}

func (s *catalogService) ReasonsByCode(ctx context.Context, codeID int) ([]model.Reason, error) {
	items, err := s.repo.Catalog.ListReasonsByCode(ctx, codeID)
	return listed(s.logger, "reasons by code", items, err)
}

func (s *catalogService) ValidatePartNumber(ctx context.Context, partNumber string) (*dto.PartNumberValidationResponse, error) {
	pn := strings.TrimSpace(partNumber)
	if pn == "" {
		return nil, ErrProductionPartNumberEmpty
	}
	exists, err := s.repo.Catalog.PartNumberExists(ctx, pn)
	if err != nil {
		s.logger.Error("part number lookup failed", zap.String("part_number", pn), zap.Error(err))
		return nil, err
	}
	return &dto.PartNumberValidationResponse{PartNumber: pn, Exists: exists}, nil
}

// listed logs a failed listing and turns a nil result into an empty slice.
func listed[T any](logger *zap.Logger, what string, items []T, err error) ([]T, error) {
	if err != nil {
		logger.Error("list catalog failed", zap.String("catalog", what), zap.Error(err))
		return nil, err
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}
