package kpi

import (
	"testing"

	"ete-kpi/internal/model"
)

func TestEngine_DashboardSharesScope(t *testing.T) {
	hourDate := day(2024, 3, 4)
	d := &Dataset{
		Production: []model.Production{
			withDeadTime(event(1, 1, at(2024, 3, 4, 7), 100, 5), 10),
			event(2, 2, at(2024, 3, 4, 8), 80, 0),
			{ID: 3, RegistrationDate: at(2024, 3, 4, 9), PartNumber: "PN-100", PieceQuantity: 70, HourID: 3, LineID: 2, MachineID: 20},
		},
		DeadTimes:       deadTimeMap(model.DeadTime{ID: 10, Minutes: 30, ReasonID: 1}),
		WindowDeadTimes: []model.DeadTime{{ID: 10, Minutes: 30, ReasonID: 1}},
		Hours:           map[int]model.Hour{1: {ID: 1, Date: &hourDate}},
		Reasons:         []model.Reason{{ID: 1, Name: "Cambio de modelo"}},
		Rates:           []model.MasterEngineering{{ParentPartNumber: "PN-100", Line: 1, PzHr: floatPtr(100)}},
	}
	shift := 4
	s := NewScope(Filter{LineID: intPtr(1), ShiftID: &shift}, []int{1, 2})

	got := NewEngine(DefaultExclusionMarker).Dashboard(s, d)

	if got.Quality.TotalPieces != 180 {
		t.Errorf("quality should only see line 1, got %d pieces", got.Quality.TotalPieces)
	}
	if got.Availability.TotalTime != 120 || got.Availability.DeadTime != 30 {
		t.Errorf("unexpected availability %+v", got.Availability)
	}
	if len(got.Efficiency.Summary) != 1 || got.Efficiency.Summary[0].TotalProduced != 180 {
		t.Errorf("unexpected efficiency %+v", got.Efficiency)
	}
	if got.DeadTime.TotalMinutes != 30 || got.DeadTime.Metadata.ShiftFilter == nil {
		t.Errorf("unexpected breakdown %+v", got.DeadTime)
	}
	if got.KeyMetrics.Scrap != 5 || got.KeyMetrics.DeadTime != 30 {
		t.Errorf("unexpected key metrics %+v", got.KeyMetrics)
	}
	// avg scrap over the whole window (5, 0, 0)
	if diff := got.KeyMetrics.ScrapVsAvg - (5 - 5.0/3.0); diff > 1e-9 || diff < -1e-9 {
		t.Errorf("scrap average should use the date-only baseline, got %.4f", got.KeyMetrics.ScrapVsAvg)
	}
	if got.Metadata.LineFilter == nil || *got.Metadata.LineFilter != 1 {
		t.Error("filter should be echoed")
	}
}
