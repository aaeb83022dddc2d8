package model

import "time"

// Line production line, table lines
type Line struct {
	ID   int    `gorm:"primaryKey"                  json:"id"`
	Name string `gorm:"type:varchar(100);not null" json:"name"`
}

func (Line) TableName() string { return "lines" }

// Process belongs to a line; machines hang off processes.
type Process struct {
	ID     int    `gorm:"primaryKey"                  json:"id"`
	Name   string `gorm:"type:varchar(100);not null" json:"name"`
	LineID int    `gorm:"not null;index"              json:"line_id"`
}

func (Process) TableName() string { return "processes" }

// Machine table machines
type Machine struct {
	ID        int    `gorm:"primaryKey"                  json:"id"`
	Name      string `gorm:"type:varchar(100);not null" json:"name"`
	ProcessID int    `gorm:"not null;index"              json:"process_id"`

	Process *Process `gorm:"foreignKey:ProcessID" json:"process,omitempty"`
}

func (Machine) TableName() string { return "machines" }

// WorkShift table work_shifts
type WorkShift struct {
	ID   int    `gorm:"primaryKey"                 json:"id"`
	Name string `gorm:"type:varchar(50);not null" json:"name"`
}

func (WorkShift) TableName() string { return "work_shifts" }

// Hour is a planned one-hour production slot. Date may be empty for legacy rows.
type Hour struct {
	ID   int        `gorm:"primaryKey"                 json:"id"`
	Time string     `gorm:"type:varchar(20);not null" json:"time"` // "07:00 - 08:00"
	Date *time.Time `json:"date,omitempty"`
}

func (Hour) TableName() string { return "hours" }

// WorkShiftHour maps hours to shifts (many-to-many).
type WorkShiftHour struct {
	ID          int `gorm:"primaryKey"                                  json:"id"`
	WorkShiftID int `gorm:"not null;uniqueIndex:uq_work_shift_hour"     json:"work_shift_id"`
	HourID      int `gorm:"not null;uniqueIndex:uq_work_shift_hour"     json:"hour_id"`
}

func (WorkShiftHour) TableName() string { return "work_shift_hours" }

// Code dead-time code family
type Code struct {
	ID   int    `gorm:"primaryKey"                  json:"id"`
	Name string `gorm:"type:varchar(100);not null" json:"name"`
}

func (Code) TableName() string { return "codes" }

// Reason dead-time classification within a code
type Reason struct {
	ID     int    `gorm:"primaryKey"                  json:"id"`
	Name   string `gorm:"type:varchar(200);not null" json:"name"`
	CodeID int    `gorm:"not null;index"              json:"code_id"`
}

func (Reason) TableName() string { return "reasons" }

// PartNumber is a row of part_number_matrix, the list of valid part numbers
type PartNumber struct {
	ID         int    `gorm:"primaryKey"                                json:"id"`
	PartNumber string `gorm:"type:varchar(100);not null;uniqueIndex" json:"part_number"`
}

func (PartNumber) TableName() string { return "part_number_matrix" }
