package kpi

import (
	"errors"
	"testing"
	"time"
)

func TestFilter_Window(t *testing.T) {
	start := time.Date(2024, 3, 4, 15, 30, 0, 0, time.UTC)
	end := time.Date(2024, 3, 6, 8, 0, 0, 0, time.UTC)

	w := Filter{StartDate: &start, EndDate: &end}.Window()
	if !w.Bounded {
		t.Fatal("window with dates should be bounded")
	}
	if !w.From.Equal(day(2024, 3, 4)) {
		t.Errorf("from should be start of day, got %s", w.From)
	}
	if !w.Contains(time.Date(2024, 3, 6, 23, 59, 59, 0, time.UTC)) {
		t.Error("end-of-day instant should be inside the window")
	}
	if w.Contains(day(2024, 3, 7)) {
		t.Error("next day should be outside the window")
	}

	open := Filter{EndDate: &end}.Window()
	if !open.Contains(time.Date(1900, 1, 1, 0, 0, 0, 0, time.UTC)) {
		t.Error("missing start should be open")
	}

	all := Filter{}.Window()
	if all.Bounded {
		t.Error("no dates should give an unbounded window")
	}
	if !all.Contains(time.Date(3000, 1, 1, 0, 0, 0, 0, time.UTC)) {
		t.Error("unbounded window should contain everything")
	}
}

func TestFilter_Validate(t *testing.T) {
	start, end := day(2024, 3, 6), day(2024, 3, 4)
	if err := (Filter{StartDate: &start, EndDate: &end}).Validate(); !errors.Is(err, ErrInvalidFilter) {
		t.Errorf("reversed range should be invalid, got %v", err)
	}

	same := time.Date(2024, 3, 6, 18, 0, 0, 0, time.UTC)
	if err := (Filter{StartDate: &same, EndDate: &start}).Validate(); err != nil {
		t.Errorf("same calendar day should be valid, got %v", err)
	}

	if err := (Filter{LineID: intPtr(0)}).Validate(); !errors.Is(err, ErrInvalidFilter) {
		t.Errorf("non-positive line should be invalid, got %v", err)
	}
	if err := (Filter{}).Validate(); err != nil {
		t.Errorf("empty filter should be valid, got %v", err)
	}
}

func TestScope_Match(t *testing.T) {
	p := event(1, 7, at(2024, 3, 4, 9), 10, 0)

	if !NewScope(Filter{}, nil).Match(p) {
		t.Error("empty filter should match everything")
	}
	if NewScope(Filter{LineID: intPtr(2)}, nil).Match(p) {
		t.Error("line filter should exclude other lines")
	}
	if NewScope(Filter{MachineID: intPtr(11)}, nil).Match(p) {
		t.Error("machine filter should exclude other machines")
	}
	if !NewScope(Filter{ShiftID: intPtr(1)}, []int{6, 7}).Match(p) {
		t.Error("shift filter should match hours of the shift")
	}
	if NewScope(Filter{ShiftID: intPtr(1)}, nil).Match(p) {
		t.Error("shift without hours should match nothing")
	}
	if !NewScope(Filter{MachineID: intPtr(10)}, []int{99}).Match(p) {
		t.Error("hour ids are ignored when no shift was requested")
	}

	start := day(2024, 3, 5)
	if NewScope(Filter{StartDate: &start}, nil).Match(p) {
		t.Error("event before window should not match")
	}
}

func TestScope_Widen(t *testing.T) {
	start := day(2024, 3, 4)
	s := NewScope(Filter{LineID: intPtr(2), ShiftID: intPtr(1), StartDate: &start}, []int{1})
	w := s.Widen()
	if w.Filter.HasDimensions() || w.Filter.HasDateFilter() || w.Window.Bounded {
		t.Errorf("widened scope should carry no filter, got %+v", w.Filter)
	}
	if !w.Match(event(1, 42, at(2023, 1, 2, 9), 1, 0)) {
		t.Error("widened scope should match any line, hour and date")
	}
}

func TestFilter_Normalized(t *testing.T) {
	cdmx := time.FixedZone("CST", -6*3600)
	morning := time.Date(2024, 3, 4, 7, 30, 0, 0, cdmx)
	evening := time.Date(2024, 3, 4, 21, 15, 0, 0, cdmx)

	a := Filter{LineID: intPtr(1), StartDate: &morning, EndDate: &morning}.Normalized()
	b := Filter{LineID: intPtr(1), StartDate: &evening, EndDate: &evening}.Normalized()
	if !a.StartDate.Equal(*b.StartDate) || !a.EndDate.Equal(*b.EndDate) {
		t.Errorf("same day should normalise equally: %v vs %v", a.StartDate, b.StartDate)
	}
	if a.StartDate.Hour() != 0 || a.StartDate.Location() != cdmx {
		t.Errorf("start should be midnight in its own zone, got %v", a.StartDate)
	}
	if a.Window() != (Filter{StartDate: &morning, EndDate: &morning}).Window() {
		t.Error("normalising must not change the window")
	}
	if *a.LineID != 1 {
		t.Error("dimensions must be kept")
	}
	if !morning.Equal(time.Date(2024, 3, 4, 7, 30, 0, 0, cdmx)) {
		t.Error("input must not be modified")
	}
	if (Filter{}).Normalized().HasDateFilter() {
		t.Error("absent dates stay absent")
	}
}
