package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"ete-kpi/internal/cache"
	"ete-kpi/internal/dto"
	"ete-kpi/internal/model"
	"ete-kpi/internal/repository"
)

// ── Production module errors ──

var (
	ErrProductionInvalidDeadTime = errors.New("invalid dead-time code or reason")
	ErrProductionPartNumberEmpty = errors.New("part number must not be empty")
	ErrExportGenerateFail        = errors.New("failed to generate the spreadsheet")
)

// exportHeaders column titles of the production export
var exportHeaders = []string{
	"Fecha",
	"Línea",
	"Número de parte",
	"Máquina",
	"Hora",
	"Cantidad de piezas",
	"Tiempo muerto (min)",
	"Scrap",
}

const exportSheet = "Production"

// ProductionService production registration, listing and export
type ProductionService interface {
	// Register stores a production event and its dead time, if any, atomically.
	Register(ctx context.Context, req *dto.RegisterProductionRequest) (*dto.RegisterProductionResponse, error)
	List(ctx context.Context, req *dto.ProductionListRequest) ([]dto.ProductionResponse, error)
	// Export renders the production list as .xlsx and suggests a file name.
	Export(ctx context.Context) (*bytes.Buffer, string, error)
}

type productionService struct {
	repo   *repository.Repository
	cache  cache.Store
	logger *zap.Logger
	now    func() time.Time
}

// NewProductionService creates a ProductionService. store holds the cached
// KPI reports dropped after each registration and may be nil.
func NewProductionService(repo *repository.Repository, store cache.Store, logger *zap.Logger) ProductionService {
	if store == nil {
		store = cache.Noop{}
	}
	return &productionService{repo: repo, cache: store, logger: logger, now: time.Now}
}

// ────────────────────── Register ──────────────────────

func (s *productionService) Register(ctx context.Context, req *dto.RegisterProductionRequest) (*dto.RegisterProductionResponse, error) {
	partNumber := strings.TrimSpace(req.PartNumber)
	if partNumber == "" {
		return nil, ErrProductionPartNumberEmpty
	}
	if len(req.DeadTimes) > 1 {
		return nil, fmt.Errorf("%w: at most one dead time per production event", ErrProductionInvalidDeadTime)
	}

	for _, dt := range req.DeadTimes {
		codeOK, err := s.repo.Catalog.CodeExists(ctx, dt.CodeID)
		if err != nil {
			s.logger.Error("code lookup failed", zap.Error(err))
			return nil, err
		}
		reasonOK, err := s.repo.Catalog.ReasonExists(ctx, dt.ReasonID)
		if err != nil {
			s.logger.Error("reason lookup failed", zap.Error(err))
			return nil, err
		}
		if !codeOK || !reasonOK {
			return nil, ErrProductionInvalidDeadTime
		}
	}

	now := s.now()
	resp := &dto.RegisterProductionResponse{DeadTimeIDs: []int{}}

	err := s.repo.Transaction(func(tx *repository.Repository) error {
		p := &model.Production{
			RegistrationDate: now,
			ManualDate:       req.ManualDate,
			PartNumber:       partNumber,
			PieceQuantity:    req.PieceQuantity,
			Scrap:            req.Scrap,
			HourID:           req.HourID,
			LineID:           req.LineID,
			ProcessID:        req.ProcessID,
			MachineID:        req.MachineID,
		}

		for _, in := range req.DeadTimes {
			dt := &model.DeadTime{
				Minutes:          in.Minutes,
				CodeID:           in.CodeID,
				ReasonID:         in.ReasonID,
				RegistrationDate: now,
			}
			if err := tx.DeadTime.Create(ctx, dt); err != nil {
				return err
			}
			p.DeadTimeID = &dt.ID
			resp.DeadTimeIDs = append(resp.DeadTimeIDs, dt.ID)
		}

		if err := tx.Production.Create(ctx, p); err != nil {
			return err
		}
		resp.ProductionID = p.ID
		return nil
	})
	if err != nil {
		s.logger.Error("register production failed", zap.Error(err))
		return nil, err
	}
	// cached reports may cover the new event
	s.cache.Invalidate(ctx)

	s.logger.Info("production registered",
		zap.Int("production_id", resp.ProductionID),
		zap.Ints("dead_time_ids", resp.DeadTimeIDs),
	)
	return resp, nil
}

// ────────────────────── List ──────────────────────

func (s *productionService) List(ctx context.Context, req *dto.ProductionListRequest) ([]dto.ProductionResponse, error) {
	events, err := s.repo.Production.ListDetailed(ctx, req.Limit)
	if err != nil {
		s.logger.Error("list production failed", zap.Error(err))
		return nil, err
	}

	result := make([]dto.ProductionResponse, 0, len(events))
	for i := range events {
		result = append(result, toProductionResponse(&events[i]))
	}
	return result, nil
}

func toProductionResponse(p *model.Production) dto.ProductionResponse {
	resp := dto.ProductionResponse{
		ID:               p.ID,
		RegistrationDate: p.RegistrationDate.Format(time.RFC3339),
		PartNumber:       p.PartNumber,
		PieceQuantity:    p.PieceQuantity,
		Scrap:            p.Scrap,
	}
	if p.Line != nil {
		resp.Line = p.Line.Name
	}
	if p.Machine != nil {
		resp.Machine = p.Machine.Name
	}
	if p.Hour != nil {
		resp.Hour = p.Hour.Time
	}
	if p.DeadTime != nil {
		minutes := p.DeadTime.Minutes
		resp.DeadTimeMinutes = &minutes
	}
	return resp
}

// ═══════════════════════════════════════════════════════════
// Export: production list as .xlsx
// ═══════════════════════════════════════════════════════════
//
// One sheet, one header row, one row per event oldest first. Missing dead
// time leaves its cell empty.

func (s *productionService) Export(ctx context.Context) (*bytes.Buffer, string, error) {
	events, err := s.repo.Production.ListDetailed(ctx, 0)
	if err != nil {
		s.logger.Error("list production for export failed", zap.Error(err))
		return nil, "", err
	}

	f := excelize.NewFile()
	defer f.Close()

	idx, err := f.NewSheet(exportSheet)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", ErrExportGenerateFail, err)
	}
	f.SetActiveSheet(idx)
	f.DeleteSheet("Sheet1")

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#D9E1F2"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})

	for i, h := range exportHeaders {
		f.SetCellValue(exportSheet, cell(i+1, 1), h)
	}
	f.SetCellStyle(exportSheet, cell(1, 1), cell(len(exportHeaders), 1), headerStyle)
	f.SetColWidth(exportSheet, "A", "A", 20)
	f.SetColWidth(exportSheet, "B", "H", 16)

	// ListDetailed is newest first
	row := 2
	for i := len(events) - 1; i >= 0; i-- {
		r := toProductionResponse(&events[i])
		values := []interface{}{
			events[i].RegistrationDate.Format("2006-01-02 15:04"),
			r.Line,
			r.PartNumber,
			r.Machine,
			r.Hour,
			r.PieceQuantity,
			nil,
			r.Scrap,
		}
		if r.DeadTimeMinutes != nil {
			values[6] = *r.DeadTimeMinutes
		}
		for col, v := range values {
			if v == nil {
				continue
			}
			f.SetCellValue(exportSheet, cell(col+1, row), v)
		}
		row++
	}

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		s.logger.Error("write xlsx failed", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}

	filename := fmt.Sprintf("DatosExportados_%s.xlsx", s.now().Format("02012006"))
	return buf, filename, nil
}

func cell(col, row int) string {
	name, _ := excelize.CoordinatesToCellName(col, row)
	return name
}
