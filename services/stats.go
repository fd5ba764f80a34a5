package services

import (
	"fmt"
	"smartpark/models"
	"time"

	"gorm.io/gorm"
)

// todayRange 回傳今天的 [00:00, 明天 00:00) 區間
func todayRange() (time.Time, time.Time) {
	now := time.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return today, today.AddDate(0, 0, 1)
}

// SlotStatsSummary 車位狀態統計
type SlotStatsSummary struct {
	Total       int64 `json:"total"`
	Available   int64 `json:"available"`
	Occupied    int64 `json:"occupied"`
	Maintenance int64 `json:"maintenance"`
}

// GetSlotStats 依狀態統計未軟刪除的車位數量
func GetSlotStats(db *gorm.DB) (*SlotStatsSummary, error) {
	var rows []struct {
		SlotStatus string
		Count      int64
	}
	if err := db.Model(&models.ParkingSlot{}).
		Select("slot_status, COUNT(*) AS count").
		Where("is_active = ?", true).
		Group("slot_status").
		Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to aggregate slot stats: %w", err)
	}

	summary := SlotStatsSummary{}
	for _, row := range rows {
		summary.Total += row.Count
		switch row.SlotStatus {
		case models.SlotStatusAvailable:
			summary.Available = row.Count
		case models.SlotStatusOccupied:
			summary.Occupied = row.Count
		case models.SlotStatusMaintenance:
			summary.Maintenance = row.Count
		}
	}
	return &summary, nil
}

// RecordStatsSummary 停車紀錄統計：營收只計入已完成且已付款的紀錄
type RecordStatsSummary struct {
	TodayRecords  int64 `json:"today_records"`
	ActiveRecords int64 `json:"active_records"`
	TotalRevenue  int64 `json:"total_revenue"`
	TodayRevenue  int64 `json:"today_revenue"`
}

// GetRecordStats 今日進場數、在場數與營收統計
func GetRecordStats(db *gorm.DB) (*RecordStatsSummary, error) {
	today, tomorrow := todayRange()
	summary := RecordStatsSummary{}

	if err := db.Model(&models.ParkingRecord{}).
		Where("entry_time >= ? AND entry_time < ?", today, tomorrow).
		Count(&summary.TodayRecords).Error; err != nil {
		return nil, fmt.Errorf("failed to count today's records: %w", err)
	}

	if err := db.Model(&models.ParkingRecord{}).
		Where("status = ?", models.RecordStatusActive).
		Count(&summary.ActiveRecords).Error; err != nil {
		return nil, fmt.Errorf("failed to count active records: %w", err)
	}

	if err := db.Model(&models.ParkingRecord{}).
		Where("status = ? AND is_paid = ?", models.RecordStatusCompleted, true).
		Select("COALESCE(SUM(total_amount), 0)").
		Scan(&summary.TotalRevenue).Error; err != nil {
		return nil, fmt.Errorf("failed to sum total revenue: %w", err)
	}

	if err := db.Model(&models.ParkingRecord{}).
		Where("status = ? AND is_paid = ? AND exit_time >= ? AND exit_time < ?",
			models.RecordStatusCompleted, true, today, tomorrow).
		Select("COALESCE(SUM(total_amount), 0)").
		Scan(&summary.TodayRevenue).Error; err != nil {
		return nil, fmt.Errorf("failed to sum today's revenue: %w", err)
	}

	return &summary, nil
}

// PaymentMethodStats 單一付款方式的統計
type PaymentMethodStats struct {
	PaymentMethod string `json:"payment_method"`
	Count         int64  `json:"count"`
	Total         int64  `json:"total"`
}

// PaymentBucket 筆數加總額
type PaymentBucket struct {
	Count int64 `json:"count"`
	Total int64 `json:"total"`
}

// PaymentStatsSummary 付款統計：只計入 status = completed 的付款
type PaymentStatsSummary struct {
	TodayPayments  PaymentBucket        `json:"today_payments"`
	TotalPayments  PaymentBucket        `json:"total_payments"`
	PaymentMethods []PaymentMethodStats `json:"payment_methods"`
}

// GetPaymentStats 今日/總付款統計與付款方式分佈
func GetPaymentStats(db *gorm.DB) (*PaymentStatsSummary, error) {
	today, tomorrow := todayRange()
	summary := PaymentStatsSummary{PaymentMethods: []PaymentMethodStats{}}

	if err := db.Model(&models.Payment{}).
		Where("status = ? AND payment_date >= ? AND payment_date < ?", models.PaymentStatusCompleted, today, tomorrow).
		Select("COUNT(*) AS count, COALESCE(SUM(amount_paid), 0) AS total").
		Scan(&summary.TodayPayments).Error; err != nil {
		return nil, fmt.Errorf("failed to aggregate today's payments: %w", err)
	}

	if err := db.Model(&models.Payment{}).
		Where("status = ?", models.PaymentStatusCompleted).
		Select("COUNT(*) AS count, COALESCE(SUM(amount_paid), 0) AS total").
		Scan(&summary.TotalPayments).Error; err != nil {
		return nil, fmt.Errorf("failed to aggregate total payments: %w", err)
	}

	if err := db.Model(&models.Payment{}).
		Where("status = ?", models.PaymentStatusCompleted).
		Select("payment_method, COUNT(*) AS count, COALESCE(SUM(amount_paid), 0) AS total").
		Group("payment_method").
		Scan(&summary.PaymentMethods).Error; err != nil {
		return nil, fmt.Errorf("failed to aggregate payment methods: %w", err)
	}

	return &summary, nil
}
