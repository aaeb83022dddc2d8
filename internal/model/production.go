package model

import "time"

// Production is one registered production event (one part number, one hour, one machine).
type Production struct {
	ID               int        `gorm:"primaryKey"                                json:"id"`
	RegistrationDate time.Time  `gorm:"not null;index;default:CURRENT_TIMESTAMP" json:"registration_date"`
	ManualDate       *time.Time `json:"manual_date,omitempty"`
	PartNumber       string     `gorm:"type:varchar(100);not null"               json:"part_number"`
	PieceQuantity    int        `gorm:"not null;default:0"                       json:"piece_quantity"`
	Scrap            int        `gorm:"not null;default:0"                       json:"scrap"`
	HourID           int        `gorm:"not null;index"                           json:"hour_id"`
	LineID           int        `gorm:"not null;index"                           json:"line_id"`
	MachineID        int        `gorm:"not null;index"                           json:"machine_id"`
	ProcessID        int        `gorm:"not null"                                 json:"process_id"`
	DeadTimeID       *int       `gorm:"index"                                    json:"dead_time_id,omitempty"`

	Line     *Line     `gorm:"foreignKey:LineID"     json:"line,omitempty"`
	Machine  *Machine  `gorm:"foreignKey:MachineID"  json:"machine,omitempty"`
	Hour     *Hour     `gorm:"foreignKey:HourID"     json:"hour,omitempty"`
	DeadTime *DeadTime `gorm:"foreignKey:DeadTimeID" json:"dead_time,omitempty"`
}

func (Production) TableName() string { return "production" }

// DeadTime minutes a machine did not produce, classified by code and reason.
type DeadTime struct {
	ID               int       `gorm:"primaryKey"                                json:"id"`
	Minutes          int       `gorm:"not null;default:0"                       json:"minutes"`
	CodeID           int       `gorm:"not null"                                 json:"code_id"`
	ReasonID         int       `gorm:"not null;index"                           json:"reason_id"`
	RegistrationDate time.Time `gorm:"not null;index;default:CURRENT_TIMESTAMP" json:"registration_date"`

	Reason *Reason `gorm:"foreignKey:ReasonID" json:"reason,omitempty"`
}

func (DeadTime) TableName() string { return "dead_times" }

// MasterEngineering reference pieces-per-hour per parent part number and line.
// Several rows may exist for one (part, line) pair; PzHr may be missing.
type MasterEngineering struct {
	ID               int      `gorm:"primaryKey"                 json:"id"`
	ParentPartNumber string   `gorm:"type:varchar(100);not null;index:idx_master_part_line" json:"parent_part_number"`
	Line             int      `gorm:"not null;index:idx_master_part_line"                   json:"line"`
	PzHr             *float64 `json:"pz_hr,omitempty"`
}

func (MasterEngineering) TableName() string { return "master_engineering" }

// All lists every model in dependency order, for AutoMigrate.
func All() []interface{} {
	return []interface{}{
		&Line{},
		&Process{},
		&Machine{},
		&WorkShift{},
		&Hour{},
		&WorkShiftHour{},
		&Code{},
		&Reason{},
		&PartNumber{},
		&DeadTime{},
		&Production{},
		&MasterEngineering{},
	}
}
