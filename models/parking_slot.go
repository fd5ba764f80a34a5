package models

import "time"

// 車位狀態
const (
	SlotStatusAvailable   = "available"
	SlotStatusOccupied    = "occupied"
	SlotStatusMaintenance = "maintenance"
)

// ParkingSlot 車位表：slot_status 為 occupied 時必定恰好有一筆 active 紀錄指向它
type ParkingSlot struct {
	SlotID     int    `json:"slot_id" gorm:"primaryKey;autoIncrement;type:INT"`
	SlotNumber string `json:"slot_number" gorm:"type:varchar(20);not null;uniqueIndex" binding:"required,max=20"`
	SlotStatus string `json:"slot_status" gorm:"type:varchar(20);not null;default:available" binding:"omitempty,oneof=available occupied maintenance"`
	Location   string `json:"location" gorm:"type:varchar(50)" binding:"omitempty,max=50"`
	IsActive   bool   `json:"is_active" gorm:"default:true"` // 軟刪除用

	Records []ParkingRecord `json:"-" gorm:"foreignKey:SlotID;references:SlotID"`

	CreatedAt time.Time `json:"created_at" gorm:"column:created_at"`
	UpdatedAt time.Time `json:"updated_at" gorm:"column:updated_at"`
}

func (ParkingSlot) TableName() string {
	return "parking_slot"
}

type ParkingSlotResponse struct {
	SlotID     int       `json:"slot_id"`
	SlotNumber string    `json:"slot_number"`
	SlotStatus string    `json:"slot_status"`
	Location   string    `json:"location,omitempty"`
	IsActive   bool      `json:"is_active"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// SlotSummary 停車紀錄中內嵌的車位摘要
type SlotSummary struct {
	SlotID     int    `json:"slot_id"`
	SlotNumber string `json:"slot_number"`
	Location   string `json:"location,omitempty"`
}

func (s *ParkingSlot) ToResponse() ParkingSlotResponse {
	return ParkingSlotResponse{
		SlotID:     s.SlotID,
		SlotNumber: s.SlotNumber,
		SlotStatus: s.SlotStatus,
		Location:   s.Location,
		IsActive:   s.IsActive,
		CreatedAt:  s.CreatedAt,
		UpdatedAt:  s.UpdatedAt,
	}
}

func (s *ParkingSlot) ToSummary() SlotSummary {
	return SlotSummary{
		SlotID:     s.SlotID,
		SlotNumber: s.SlotNumber,
		Location:   s.Location,
	}
}

// UpdateParkingSlotRequest 用於 PUT 更新車位
type UpdateParkingSlotRequest struct {
	SlotNumber *string `json:"slot_number" binding:"omitempty,max=20"`
	SlotStatus *string `json:"slot_status" binding:"omitempty,oneof=available occupied maintenance"`
	Location   *string `json:"location" binding:"omitempty,max=50"`
}
