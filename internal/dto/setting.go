package dto

import (
	"time"

	"github.com/tradegate/trading_erp/internal/core/domain"
)

// SetSettingRequest writes one configuration value.
type SetSettingRequest struct {
	Value string `json:"value" binding:"required"`
}

// SettingResponse mirrors domain.Setting.
type SettingResponse struct {
	Key       string    `json:"key"`
	Value     string    `json:"value"`
	UpdatedAt time.Time `json:"updatedAt"`
	UpdatedBy string    `json:"updatedBy"`
}

// ToSettingResponse converts a domain.Setting to its response DTO.
func ToSettingResponse(s *domain.Setting) SettingResponse {
	return SettingResponse{
		Key:       s.Key,
		Value:     s.Value,
		UpdatedAt: s.UpdatedAt,
		UpdatedBy: s.UpdatedBy,
	}
}
