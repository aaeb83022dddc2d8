package cache

import (
	"context"
	"strings"
	"testing"
	"time"

	"ete-kpi/internal/kpi"
)

func TestReportKey_Canonical(t *testing.T) {
	line := 3
	morning := time.Date(2024, 3, 4, 7, 30, 0, 0, time.UTC)
	evening := time.Date(2024, 3, 4, 19, 0, 0, 0, time.UTC)

	a := ReportKey("Quality", kpi.Filter{LineID: &line, StartDate: &morning})
	b := ReportKey(" quality ", kpi.Filter{LineID: &line, StartDate: &evening})
	if a != b {
		t.Errorf("same day and report should share a key: %s vs %s", a, b)
	}
	if !strings.HasPrefix(a, keyPrefix) {
		t.Errorf("key should carry prefix, got %s", a)
	}

	if ReportKey("quality", kpi.Filter{}) == ReportKey("availability", kpi.Filter{}) {
		t.Error("different reports must not share a key")
	}
	if ReportKey("quality", kpi.Filter{LineID: &line}) == ReportKey("quality", kpi.Filter{MachineID: &line}) {
		t.Error("line and machine filters must not collide")
	}
}

func TestReportKey_ZoneMatters(t *testing.T) {
	utc := time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)
	cdmx := time.Date(2024, 3, 4, 0, 0, 0, 0, time.FixedZone("CST", -6*3600))

	if ReportKey("quality", kpi.Filter{StartDate: &utc}) == ReportKey("quality", kpi.Filter{StartDate: &cdmx}) {
		t.Error("the same day in different zones covers different instants and must not share a key")
	}

	sameInstant := utc.In(time.FixedZone("UTC0", 0))
	if ReportKey("quality", kpi.Filter{StartDate: &utc}) != ReportKey("quality", kpi.Filter{StartDate: &sameInstant}) {
		t.Error("zones with equal offsets should share a key")
	}
}

func TestNoop(t *testing.T) {
	var s Store = Noop{}
	s.Set(context.Background(), "k", 1)
	var v int
	if s.Get(context.Background(), "k", &v) {
		t.Error("noop store should always miss")
	}
	s.Invalidate(context.Background())
}
