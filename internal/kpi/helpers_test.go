package kpi

import (
	"time"

	"ete-kpi/internal/model"
)

func intPtr(v int) *int { return &v }

func floatPtr(v float64) *float64 { return &v }

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func at(y int, m time.Month, d, hour int) time.Time {
	return time.Date(y, m, d, hour, 0, 0, 0, time.UTC)
}

// event builds a production event on line 1 / machine 10.
func event(id, hourID int, reg time.Time, pieces, scrap int) model.Production {
	return model.Production{
		ID:               id,
		RegistrationDate: reg,
		PartNumber:       "PN-100",
		PieceQuantity:    pieces,
		Scrap:            scrap,
		HourID:           hourID,
		LineID:           1,
		MachineID:        10,
		ProcessID:        100,
	}
}

func withDeadTime(p model.Production, id int) model.Production {
	p.DeadTimeID = intPtr(id)
	return p
}

func deadTimeMap(dts ...model.DeadTime) map[int]model.DeadTime {
	m := make(map[int]model.DeadTime, len(dts))
	for _, dt := range dts {
		m[dt.ID] = dt
	}
	return m
}
