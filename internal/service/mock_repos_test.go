package service

import (
	"context"
	"sort"
	"strings"

	"ete-kpi/internal/kpi"
	"ete-kpi/internal/model"
	"ete-kpi/internal/repository"
)

// ── Mock ProductionRepository ──

type mockProductionRepo struct {
	events      []model.Production
	err         error
	windowCalls int
	nextID      int
}

func (m *mockProductionRepo) ListByWindow(_ context.Context, w kpi.Window) ([]model.Production, error) {
	m.windowCalls++
	if m.err != nil {
		return nil, m.err
	}
	var out []model.Production
	for _, p := range m.events {
		if w.Contains(p.RegistrationDate) {
			out = append(out, p)
		}
	}
	return out, nil
}

func (m *mockProductionRepo) ListDetailed(_ context.Context, limit int) ([]model.Production, error) {
	if m.err != nil {
		return nil, m.err
	}
	out := append([]model.Production(nil), m.events...)
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *mockProductionRepo) Create(_ context.Context, p *model.Production) error {
	if m.err != nil {
		return m.err
	}
	m.nextID++
	p.ID = 1000 + m.nextID
	m.events = append(m.events, *p)
	return nil
}

// ── Mock DeadTimeRepository ──

type mockDeadTimeRepo struct {
	deadTimes map[int]model.DeadTime
	err       error
	nextID    int
}

func newMockDeadTimeRepo(dts ...model.DeadTime) *mockDeadTimeRepo {
	m := &mockDeadTimeRepo{deadTimes: make(map[int]model.DeadTime)}
	for _, dt := range dts {
		m.deadTimes[dt.ID] = dt
	}
	return m
}

func (m *mockDeadTimeRepo) ListByIDs(_ context.Context, ids []int) ([]model.DeadTime, error) {
	if m.err != nil {
		return nil, m.err
	}
	var out []model.DeadTime
	for _, id := range ids {
		if dt, ok := m.deadTimes[id]; ok {
			out = append(out, dt)
		}
	}
	return out, nil
}

func (m *mockDeadTimeRepo) ListByWindow(_ context.Context, w kpi.Window) ([]model.DeadTime, error) {
	if m.err != nil {
		return nil, m.err
	}
	var out []model.DeadTime
	for _, dt := range m.deadTimes {
		if w.Contains(dt.RegistrationDate) {
			out = append(out, dt)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *mockDeadTimeRepo) Create(_ context.Context, dt *model.DeadTime) error {
	if m.err != nil {
		return m.err
	}
	m.nextID++
	dt.ID = 500 + m.nextID
	m.deadTimes[dt.ID] = *dt
	return nil
}

// ── Mock CatalogRepository ──

type mockCatalogRepo struct {
	lines       []model.Line
	processes   []model.Process
	machines    []model.Machine
	shifts      []model.WorkShift
	hours       []model.Hour
	shiftHours  map[int][]int
	codes       []model.Code
	reasons     []model.Reason
	partNumbers []string

	shiftCalls int
	err        error
}

func (m *mockCatalogRepo) ListHours(context.Context) ([]model.Hour, error) { return m.hours, m.err }

func (m *mockCatalogRepo) ListHoursByIDs(_ context.Context, ids []int) ([]model.Hour, error) {
	want := kpi.NewIDSet(ids...)
	var out []model.Hour
	for _, h := range m.hours {
		if want.Has(h.ID) {
			out = append(out, h)
		}
	}
	return out, m.err
}

func (m *mockCatalogRepo) ListLines(context.Context) ([]model.Line, error) { return m.lines, m.err }
func (m *mockCatalogRepo) ListCodes(context.Context) ([]model.Code, error) { return m.codes, m.err }
func (m *mockCatalogRepo) ListWorkShifts(context.Context) ([]model.WorkShift, error) {
	return m.shifts, m.err
}
func (m *mockCatalogRepo) ListMachines(context.Context) ([]model.Machine, error) {
	return m.machines, m.err
}

func (m *mockCatalogRepo) ListProcessesByLine(_ context.Context, lineID int) ([]model.Process, error) {
	var out []model.Process
	for _, p := range m.processes {
		if p.LineID == lineID {
			out = append(out, p)
		}
	}
	return out, m.err
}

func (m *mockCatalogRepo) ListMachinesByProcess(_ context.Context, processID int) ([]model.Machine, error) {
	var out []model.Machine
	for _, mc := range m.machines {
		if mc.ProcessID == processID {
			out = append(out, mc)
		}
	}
	return out, m.err
}

func (m *mockCatalogRepo) ListMachinesByLine(_ context.Context, lineID int) ([]model.Machine, error) {
	processes := make(kpi.IDSet)
	for _, p := range m.processes {
		if p.LineID == lineID {
			processes[p.ID] = struct{}{}
		}
	}
	var out []model.Machine
	for _, mc := range m.machines {
		if processes.Has(mc.ProcessID) {
			out = append(out, mc)
		}
	}
	return out, m.err
}

func (m *mockCatalogRepo) ListReasons(context.Context) ([]model.Reason, error) {
	return m.reasons, m.err
}

func (m *mockCatalogRepo) ListReasonsByCode(_ context.Context, codeID int) ([]model.Reason, error) {
	var out []model.Reason
	for _, r := range m.reasons {
		if r.CodeID == codeID {
			out = append(out, r)
		}
	}
	return out, m.err
}

func (m *mockCatalogRepo) HourIDsByShift(_ context.Context, shiftID int) ([]int, error) {
	m.shiftCalls++
	return m.shiftHours[shiftID], m.err
}

func (m *mockCatalogRepo) LineExists(_ context.Context, id int) (bool, error) {
	for _, l := range m.lines {
		if l.ID == id {
			return true, m.err
		}
	}
	return false, m.err
}

func (m *mockCatalogRepo) MachineExists(_ context.Context, id int) (bool, error) {
	for _, mc := range m.machines {
		if mc.ID == id {
			return true, m.err
		}
	}
	return false, m.err
}

func (m *mockCatalogRepo) WorkShiftExists(_ context.Context, id int) (bool, error) {
	for _, s := range m.shifts {
		if s.ID == id {
			return true, m.err
		}
	}
	return false, m.err
}

func (m *mockCatalogRepo) CodeExists(_ context.Context, id int) (bool, error) {
	for _, c := range m.codes {
		if c.ID == id {
			return true, m.err
		}
	}
	return false, m.err
}

func (m *mockCatalogRepo) ReasonExists(_ context.Context, id int) (bool, error) {
	for _, r := range m.reasons {
		if r.ID == id {
			return true, m.err
		}
	}
	return false, m.err
}

func (m *mockCatalogRepo) PartNumberExists(_ context.Context, partNumber string) (bool, error) {
	for _, pn := range m.partNumbers {
		if strings.EqualFold(pn, partNumber) {
			return true, m.err
		}
	}
	return false, m.err
}

// ── Mock MasterRateRepository ──

type mockMasterRateRepo struct {
	rows []model.MasterEngineering
	err  error
}

func (m *mockMasterRateRepo) ListByLines(_ context.Context, lines []int) ([]model.MasterEngineering, error) {
	want := kpi.NewIDSet(lines...)
	var out []model.MasterEngineering
	for _, r := range m.rows {
		if len(lines) == 0 || want.Has(r.Line) {
			out = append(out, r)
		}
	}
	return out, m.err
}

// ── Fixture ──

type mockRepos struct {
	production *mockProductionRepo
	deadTimes  *mockDeadTimeRepo
	catalog    *mockCatalogRepo
	rates      *mockMasterRateRepo
}

func (m *mockRepos) repository() *repository.Repository {
	return &repository.Repository{
		Production: m.production,
		DeadTime:   m.deadTimes,
		Catalog:    m.catalog,
		MasterRate: m.rates,
	}
}
