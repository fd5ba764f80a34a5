package models

import "time"

// 停車紀錄狀態
const (
	RecordStatusActive    = "active"
	RecordStatusCompleted = "completed"
)

// ParkingRecord 停車紀錄：一筆代表一次進場到出場的停車
type ParkingRecord struct {
	RecordID    int        `json:"record_id" gorm:"primaryKey;autoIncrement;type:INT"`
	CarID       int        `json:"car_id" gorm:"index;not null;type:INT"`
	SlotID      int        `json:"slot_id" gorm:"index;not null;type:INT"`
	EntryTime   time.Time  `json:"entry_time" gorm:"not null;index"`
	ExitTime    *time.Time `json:"exit_time" gorm:"default:null"` // 未出場時為 null
	Duration    int        `json:"duration" gorm:"type:INT;default:0"` // 分鐘，出場時計算
	TotalAmount int        `json:"total_amount" gorm:"type:INT;default:0"`
	Status      string     `json:"status" gorm:"type:varchar(20);not null;default:active;index" binding:"omitempty,oneof=active completed"`
	IsPaid      bool       `json:"is_paid" gorm:"default:false"`
	Notes       string     `json:"notes" gorm:"type:varchar(255)" binding:"omitempty,max=255"`

	Car         Car         `json:"-" gorm:"foreignKey:CarID;references:CarID"`
	ParkingSlot ParkingSlot `json:"-" gorm:"foreignKey:SlotID;references:SlotID"`

	CreatedAt time.Time `json:"created_at" gorm:"column:created_at"`
	UpdatedAt time.Time `json:"updated_at" gorm:"column:updated_at"`
}

func (ParkingRecord) TableName() string {
	return "parking_record"
}

// ParkingRecordResponse 附帶車輛與車位摘要的紀錄回應
type ParkingRecordResponse struct {
	RecordID    int         `json:"record_id"`
	EntryTime   time.Time   `json:"entry_time"`
	ExitTime    *time.Time  `json:"exit_time"`
	Duration    int         `json:"duration"`
	TotalAmount int         `json:"total_amount"`
	Status      string      `json:"status"`
	IsPaid      bool        `json:"is_paid"`
	Notes       string      `json:"notes,omitempty"`
	Car         CarSummary  `json:"car"`
	ParkingSlot SlotSummary `json:"parking_slot"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}

func (r *ParkingRecord) ToResponse() ParkingRecordResponse {
	return ParkingRecordResponse{
		RecordID:    r.RecordID,
		EntryTime:   r.EntryTime,
		ExitTime:    r.ExitTime,
		Duration:    r.Duration,
		TotalAmount: r.TotalAmount,
		Status:      r.Status,
		IsPaid:      r.IsPaid,
		Notes:       r.Notes,
		Car:         r.Car.ToSummary(),
		ParkingSlot: r.ParkingSlot.ToSummary(),
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}
