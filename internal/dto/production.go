package dto

import "time"

// ── Production module DTO ──

// RegisterProductionRequest registers one production event with at most
// one dead-time event.
type RegisterProductionRequest struct {
	PartNumber    string            `json:"part_number"    binding:"required,max=100"`
	PieceQuantity int               `json:"piece_quantity" binding:"min=0"`
	Scrap         int               `json:"scrap"          binding:"min=0"`
	HourID        int               `json:"hour_id"        binding:"required,min=1"`
	LineID        int               `json:"line_id"        binding:"required,min=1"`
	ProcessID     int               `json:"process_id"     binding:"required,min=1"`
	MachineID     int               `json:"machine_id"     binding:"required,min=1"`
	ManualDate    *time.Time        `json:"manual_date"`
	DeadTimes     []DeadTimeRequest `json:"dead_times"     binding:"omitempty,max=1,dive"`
}

// DeadTimeRequest dead time reported with a production event
type DeadTimeRequest struct {
	CodeID   int `json:"code_id"   binding:"required,min=1"`
	ReasonID int `json:"reason_id" binding:"required,min=1"`
	Minutes  int `json:"minutes"   binding:"min=0"`
}

// RegisterProductionResponse ids created by a registration
type RegisterProductionResponse struct {
	ProductionID int   `json:"production_id"`
	DeadTimeIDs  []int `json:"dead_time_ids"`
}

// ProductionListRequest production list query parameters
type ProductionListRequest struct {
	Limit int `form:"limit" binding:"omitempty,min=1,max=5000"`
}

// ProductionResponse one row of the production list
type ProductionResponse struct {
	ID               int    `json:"id"`
	RegistrationDate string `json:"registration_date"`
	Line             string `json:"line"`
	PartNumber       string `json:"part_number"`
	Machine          string `json:"machine"`
	Hour             string `json:"hour"`
	PieceQuantity    int    `json:"piece_quantity"`
	DeadTimeMinutes  *int   `json:"dead_time_minutes"`
	Scrap            int    `json:"scrap"`
}
