package dto

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"ete-kpi/internal/kpi"
)

// ── KPI module DTO ──

// ErrInvalidDate is returned for a date parameter in neither accepted layout.
var ErrInvalidDate = errors.New("invalid date")

// KPIFilterRequest query parameters shared by every KPI route
type KPIFilterRequest struct {
	LineID    *int   `form:"line_id"    binding:"omitempty,min=1"`
	MachineID *int   `form:"machine_id" binding:"omitempty,min=1"`
	ShiftID   *int   `form:"shift_id"   binding:"omitempty,min=1"`
	StartDate string `form:"start_date"` // 2006-01-02 or RFC3339
	EndDate   string `form:"end_date"`
}

// ToFilter parses the dates and builds the engine filter.
func (r *KPIFilterRequest) ToFilter() (kpi.Filter, error) {
	f := kpi.Filter{LineID: r.LineID, MachineID: r.MachineID, ShiftID: r.ShiftID}

	var err error
	if f.StartDate, err = ParseDate(r.StartDate); err != nil {
		return kpi.Filter{}, fmt.Errorf("start_date: %w", err)
	}
	if f.EndDate, err = ParseDate(r.EndDate); err != nil {
		return kpi.Filter{}, fmt.Errorf("end_date: %w", err)
	}
	return f, nil
}

// ParseDate accepts a calendar day (read in the server's time zone) or an
// RFC3339 timestamp. Blank input yields nil.
func ParseDate(s string) (*time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	if t, err := time.ParseInLocation("2006-01-02", s, time.Local); err == nil {
		return &t, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return &t, nil
	}
	return nil, fmt.Errorf("%w %q: want YYYY-MM-DD or RFC3339", ErrInvalidDate, s)
}
