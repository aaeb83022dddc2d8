package dto

// PartNumberValidationResponse part number lookup result
type PartNumberValidationResponse struct {
	PartNumber string `json:"part_number"`
	Exists     bool   `json:"exists"`
}
