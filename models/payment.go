package models

import "time"

// 付款方式與狀態
const (
	PaymentMethodCash        = "cash"
	PaymentMethodMobileMoney = "mobile_money"
	PaymentMethodCard        = "card"

	PaymentStatusPending   = "pending"
	PaymentStatusCompleted = "completed"
	PaymentStatusFailed    = "failed"
)

// Payment 付款表：一筆付款對應一筆已完成的停車紀錄
type Payment struct {
	PaymentID     int       `json:"payment_id" gorm:"primaryKey;autoIncrement;type:INT"`
	RecordID      int       `json:"record_id" gorm:"index;not null;type:INT"`
	AmountPaid    int       `json:"amount_paid" gorm:"type:INT;not null" binding:"gte=0"`
	PaymentDate   time.Time `json:"payment_date" gorm:"not null;index"`
	PaymentMethod string    `json:"payment_method" gorm:"type:varchar(20);not null;default:cash" binding:"omitempty,oneof=cash mobile_money card"`
	TransactionID string    `json:"transaction_id" gorm:"type:varchar(64)" binding:"omitempty,max=64"`
	Status        string    `json:"status" gorm:"type:varchar(20);not null;default:completed;index" binding:"omitempty,oneof=pending completed failed"`
	Notes         string    `json:"notes" gorm:"type:varchar(255)" binding:"omitempty,max=255"`

	ParkingRecord ParkingRecord `json:"-" gorm:"foreignKey:RecordID;references:RecordID"`

	CreatedAt time.Time `json:"created_at" gorm:"column:created_at"`
	UpdatedAt time.Time `json:"updated_at" gorm:"column:updated_at"`
}

func (Payment) TableName() string {
	return "payment"
}

type PaymentResponse struct {
	PaymentID     int                   `json:"payment_id"`
	AmountPaid    int                   `json:"amount_paid"`
	PaymentDate   time.Time             `json:"payment_date"`
	PaymentMethod string                `json:"payment_method"`
	TransactionID string                `json:"transaction_id,omitempty"`
	Status        string                `json:"status"`
	Notes         string                `json:"notes,omitempty"`
	ParkingRecord ParkingRecordResponse `json:"parking_record"`
	CreatedAt     time.Time             `json:"created_at"`
	UpdatedAt     time.Time             `json:"updated_at"`
}

func (p *Payment) ToResponse() PaymentResponse {
	return PaymentResponse{
		PaymentID:     p.PaymentID,
		AmountPaid:    p.AmountPaid,
		PaymentDate:   p.PaymentDate,
		PaymentMethod: p.PaymentMethod,
		TransactionID: p.TransactionID,
		Status:        p.Status,
		Notes:         p.Notes,
		ParkingRecord: p.ParkingRecord.ToResponse(),
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}
