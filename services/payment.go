package services

import (
	"errors"
	"fmt"
	"log"
	"smartpark/models"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CreatePaymentInput 建立付款所需欄位
type CreatePaymentInput struct {
	RecordID      int    `json:"record_id" binding:"required,gt=0"`
	AmountPaid    int    `json:"amount_paid" binding:"required,gte=0"`
	PaymentMethod string `json:"payment_method" binding:"omitempty,oneof=cash mobile_money card"`
	TransactionID string `json:"transaction_id" binding:"omitempty,max=64"`
	Notes         string `json:"notes" binding:"omitempty,max=255"`
}

// CreatePayment 對一筆已完成且未付款的停車紀錄建立付款，並將紀錄標記為已付。
// 金額不與 total_amount 核對，多付或少付照單全收。
func CreatePayment(db *gorm.DB, input CreatePaymentInput) (*models.Payment, error) {
	var record models.ParkingRecord
	if err := db.First(&record, input.RecordID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecordNotFound
		}
		return nil, fmt.Errorf("failed to look up parking record %d: %w", input.RecordID, err)
	}

	if record.Status != models.RecordStatusCompleted {
		return nil, ErrRecordNotCompleted
	}
	if record.IsPaid {
		return nil, ErrRecordAlreadyPaid
	}

	method := input.PaymentMethod
	if method == "" {
		method = models.PaymentMethodCash
	}
	// 未提供交易編號時產生一組收據編號
	transactionID := input.TransactionID
	if transactionID == "" {
		transactionID = uuid.NewString()
	}

	payment := models.Payment{
		RecordID:      record.RecordID,
		AmountPaid:    input.AmountPaid,
		PaymentDate:   time.Now(),
		PaymentMethod: method,
		TransactionID: transactionID,
		Status:        models.PaymentStatusCompleted,
		Notes:         input.Notes,
	}

	if err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&payment).Error; err != nil {
			return fmt.Errorf("failed to create payment: %w", err)
		}
		if err := tx.Model(&models.ParkingRecord{}).
			Where("record_id = ?", record.RecordID).
			Update("is_paid", true).Error; err != nil {
			return fmt.Errorf("failed to mark record %d as paid: %w", record.RecordID, err)
		}
		return nil
	}); err != nil {
		return nil, err
	}

	log.Printf("Payment %d created for record %d: amount %d via %s", payment.PaymentID, record.RecordID, payment.AmountPaid, method)
	return GetPaymentByID(db, payment.PaymentID)
}

// UpdatePaymentInput PUT /payments/:id 的自由欄位修改
type UpdatePaymentInput struct {
	AmountPaid    *int    `json:"amount_paid" binding:"omitempty,gte=0"`
	PaymentMethod *string `json:"payment_method" binding:"omitempty,oneof=cash mobile_money card"`
	TransactionID *string `json:"transaction_id" binding:"omitempty,max=64"`
	Status        *string `json:"status" binding:"omitempty,oneof=pending completed failed"`
	Notes         *string `json:"notes" binding:"omitempty,max=255"`
}

// UpdatePayment 更新付款欄位
func UpdatePayment(db *gorm.DB, paymentID int, input UpdatePaymentInput) (*models.Payment, error) {
	var payment models.Payment
	if err := db.First(&payment, paymentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPaymentNotFound
		}
		return nil, fmt.Errorf("failed to look up payment %d: %w", paymentID, err)
	}

	if input.AmountPaid != nil {
		payment.AmountPaid = *input.AmountPaid
	}
	if input.PaymentMethod != nil {
		payment.PaymentMethod = *input.PaymentMethod
	}
	if input.TransactionID != nil {
		payment.TransactionID = *input.TransactionID
	}
	if input.Status != nil {
		payment.Status = *input.Status
	}
	if input.Notes != nil {
		payment.Notes = *input.Notes
	}

	if err := db.Save(&payment).Error; err != nil {
		return nil, fmt.Errorf("failed to update payment %d: %w", paymentID, err)
	}
	return GetPaymentByID(db, paymentID)
}

// GetPaymentByID 查詢單筆付款並帶出其停車紀錄、車輛與車位
func GetPaymentByID(db *gorm.DB, paymentID int) (*models.Payment, error) {
	var payment models.Payment
	if err := db.
		Preload("ParkingRecord").
		Preload("ParkingRecord.Car").
		Preload("ParkingRecord.ParkingSlot").
		First(&payment, paymentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPaymentNotFound
		}
		return nil, fmt.Errorf("failed to get payment %d: %w", paymentID, err)
	}
	return &payment, nil
}

// PaymentQuery 列表過濾條件
type PaymentQuery struct {
	Status    string
	Method    string
	StartDate *time.Time
	EndDate   *time.Time
	Page      int
	Limit     int
}

// GetPayments 查詢付款列表，依付款時間新到舊排序
func GetPayments(db *gorm.DB, q PaymentQuery) ([]models.Payment, int64, error) {
	query := db.Model(&models.Payment{})
	if q.Status != "" {
		query = query.Where("status = ?", q.Status)
	}
	if q.Method != "" {
		query = query.Where("payment_method = ?", q.Method)
	}
	if q.StartDate != nil {
		query = query.Where("payment_date >= ?", *q.StartDate)
	}
	if q.EndDate != nil {
		query = query.Where("payment_date <= ?", *q.EndDate)
	}

	var total int64
	if err := query.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count payments: %w", err)
	}

	var payments []models.Payment
	if err := query.
		Preload("ParkingRecord").
		Preload("ParkingRecord.Car").
		Preload("ParkingRecord.ParkingSlot").
		Order("payment_date DESC").
		Limit(q.Limit).Offset((q.Page - 1) * q.Limit).
		Find(&payments).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to query payments: %w", err)
	}

	return payments, total, nil
}
