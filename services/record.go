package services

import (
	"errors"
	"fmt"
	"log"
	"smartpark/models"
	"time"

	"gorm.io/gorm"
)

// CheckInInput 進場所需欄位
type CheckInInput struct {
	PlateNumber string `json:"plate_number" binding:"required,max=20"`
	DriverName  string `json:"driver_name" binding:"required,max=50"`
	PhoneNumber string `json:"phone_number" binding:"required,max=20"`
	SlotNumber  string `json:"slot_number" binding:"required,max=20"`
	CarModel    string `json:"car_model" binding:"omitempty,max=50"`
	CarColor    string `json:"car_color" binding:"omitempty,max=20"`
	Notes       string `json:"notes" binding:"omitempty,max=255"`
}

// upsertCar 依車牌找車，不存在就建立；存在則覆寫駕駛與電話，
// 車型與顏色只在有提供時更新（不會因省略而清空舊值）
func upsertCar(db *gorm.DB, plate string, input CheckInInput) (*models.Car, error) {
	var car models.Car
	err := db.Where("plate_number = ?", plate).First(&car).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		car = models.Car{
			PlateNumber: plate,
			DriverName:  input.DriverName,
			PhoneNumber: input.PhoneNumber,
			CarModel:    input.CarModel,
			CarColor:    input.CarColor,
			IsActive:    true,
		}
		if err := db.Create(&car).Error; err != nil {
			return nil, fmt.Errorf("failed to create car: %w", err)
		}
		log.Printf("Created new car %d for plate %s", car.CarID, plate)
		return &car, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to look up car by plate %s: %w", plate, err)
	}

	car.DriverName = input.DriverName
	car.PhoneNumber = input.PhoneNumber
	if input.CarModel != "" {
		car.CarModel = input.CarModel
	}
	if input.CarColor != "" {
		car.CarColor = input.CarColor
	}
	if err := db.Save(&car).Error; err != nil {
		return nil, fmt.Errorf("failed to update car %d: %w", car.CarID, err)
	}
	return &car, nil
}

// CheckIn 車輛進場：建立車輛（或更新）、檢查車位與重複停車，開立 active 紀錄並佔用車位。
// 檢查順序固定：車位存在 → 車位可用 → 車輛未在場內。車輛的建立/更新在檢查之前，
// 即使後續檢查失敗也會保留（比照既有行為）；紀錄建立與車位佔用則在同一交易內完成。
func CheckIn(db *gorm.DB, input CheckInInput) (*models.ParkingRecord, error) {
	plate := models.NormalizePlate(input.PlateNumber)

	car, err := upsertCar(db, plate, input)
	if err != nil {
		return nil, err
	}

	var slot models.ParkingSlot
	if err := db.Where("slot_number = ? AND is_active = ?", input.SlotNumber, true).First(&slot).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSlotNotFound
		}
		return nil, fmt.Errorf("failed to look up parking slot %s: %w", input.SlotNumber, err)
	}

	// occupied 與 maintenance 都不可進場
	if slot.SlotStatus != models.SlotStatusAvailable {
		return nil, ErrSlotUnavailable
	}

	// 「車輛已在場內」檢查：同一台車同時最多一筆 active 紀錄
	var activeCount int64
	if err := db.Model(&models.ParkingRecord{}).
		Where("car_id = ? AND status = ?", car.CarID, models.RecordStatusActive).
		Count(&activeCount).Error; err != nil {
		return nil, fmt.Errorf("failed to check active record for car %d: %w", car.CarID, err)
	}
	if activeCount > 0 {
		return nil, ErrCarAlreadyParked
	}

	record := models.ParkingRecord{
		CarID:     car.CarID,
		SlotID:    slot.SlotID,
		EntryTime: time.Now(),
		Status:    models.RecordStatusActive,
		IsPaid:    false,
		Notes:     input.Notes,
	}

	// 紀錄建立 + 車位佔用放在同一交易，避免只寫入一半
	if err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&record).Error; err != nil {
			return fmt.Errorf("failed to create parking record: %w", err)
		}
		if err := tx.Model(&models.ParkingSlot{}).
			Where("slot_id = ?", slot.SlotID).
			Update("slot_status", models.SlotStatusOccupied).Error; err != nil {
			return fmt.Errorf("failed to occupy slot %d: %w", slot.SlotID, err)
		}
		return nil
	}); err != nil {
		return nil, err
	}

	log.Printf("Check-in: plate %s entered slot %s (record %d)", plate, slot.SlotNumber, record.RecordID)
	return GetRecordByID(db, record.RecordID)
}

// CheckOut 車輛出場：設定出場時間、計費、紀錄轉 completed，車位釋放為 available
func CheckOut(db *gorm.DB, recordID int, exitTime *time.Time, notes string) (*models.ParkingRecord, error) {
	var record models.ParkingRecord
	if err := db.First(&record, recordID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecordNotFound
		}
		return nil, fmt.Errorf("failed to look up parking record %d: %w", recordID, err)
	}

	// 防止重複出場
	if record.Status != models.RecordStatusActive {
		return nil, ErrRecordNotActive
	}

	when := time.Now()
	if exitTime != nil {
		when = *exitTime
	}
	if notes != "" {
		record.Notes = notes
	}

	CompleteSession(&record, when)

	if err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(&record).Error; err != nil {
			return fmt.Errorf("failed to save parking record %d: %w", record.RecordID, err)
		}
		if err := tx.Model(&models.ParkingSlot{}).
			Where("slot_id = ?", record.SlotID).
			Update("slot_status", models.SlotStatusAvailable).Error; err != nil {
			return fmt.Errorf("failed to release slot %d: %w", record.SlotID, err)
		}
		return nil
	}); err != nil {
		return nil, err
	}

	log.Printf("Check-out: record %d completed, duration %d min, amount %d", record.RecordID, record.Duration, record.TotalAmount)
	return GetRecordByID(db, record.RecordID)
}

// UpdateRecordInput PUT /parking-records/:id 的自由欄位修改
type UpdateRecordInput struct {
	EntryTime *string `json:"entry_time"`
	ExitTime  *string `json:"exit_time"`
	Notes     *string `json:"notes" binding:"omitempty,max=255"`
}

// UpdateRecord 直接修改紀錄欄位，不重新計費也不改變狀態
func UpdateRecord(db *gorm.DB, recordID int, entryTime, exitTime *time.Time, clearExit bool, notes *string) (*models.ParkingRecord, error) {
	var record models.ParkingRecord
	if err := db.First(&record, recordID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecordNotFound
		}
		return nil, fmt.Errorf("failed to look up parking record %d: %w", recordID, err)
	}

	updates := map[string]interface{}{}
	if entryTime != nil {
		updates["entry_time"] = *entryTime
	}
	if exitTime != nil {
		updates["exit_time"] = *exitTime
	} else if clearExit {
		updates["exit_time"] = nil
	}
	if notes != nil {
		updates["notes"] = *notes
	}

	if len(updates) > 0 {
		if err := db.Model(&record).Updates(updates).Error; err != nil {
			return nil, fmt.Errorf("failed to update parking record %d: %w", recordID, err)
		}
	}

	return GetRecordByID(db, recordID)
}

// DeleteRecord 硬刪除停車紀錄：active 紀錄先釋放車位，並級聯刪除所有關聯付款
func DeleteRecord(db *gorm.DB, recordID int) error {
	var record models.ParkingRecord
	if err := db.First(&record, recordID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrRecordNotFound
		}
		return fmt.Errorf("failed to look up parking record %d: %w", recordID, err)
	}

	return db.Transaction(func(tx *gorm.DB) error {
		// active 紀錄還佔著車位，刪除前先補償釋放
		if record.Status == models.RecordStatusActive {
			if err := tx.Model(&models.ParkingSlot{}).
				Where("slot_id = ?", record.SlotID).
				Update("slot_status", models.SlotStatusAvailable).Error; err != nil {
				return fmt.Errorf("failed to release slot %d: %w", record.SlotID, err)
			}
		}

		if err := tx.Where("record_id = ?", record.RecordID).Delete(&models.Payment{}).Error; err != nil {
			return fmt.Errorf("failed to delete payments for record %d: %w", record.RecordID, err)
		}

		if err := tx.Delete(&models.ParkingRecord{}, record.RecordID).Error; err != nil {
			return fmt.Errorf("failed to delete parking record %d: %w", record.RecordID, err)
		}

		log.Printf("Deleted parking record %d (status %s) with its payments", record.RecordID, record.Status)
		return nil
	})
}

// GetRecordByID 查詢單筆紀錄並帶出車輛與車位
func GetRecordByID(db *gorm.DB, recordID int) (*models.ParkingRecord, error) {
	var record models.ParkingRecord
	if err := db.Preload("Car").Preload("ParkingSlot").First(&record, recordID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecordNotFound
		}
		return nil, fmt.Errorf("failed to get parking record %d: %w", recordID, err)
	}
	return &record, nil
}

// RecordQuery 列表過濾條件
type RecordQuery struct {
	Status    string
	StartDate *time.Time
	EndDate   *time.Time
	Page      int
	Limit     int
}

// GetRecords 查詢停車紀錄列表，依進場時間新到舊排序
func GetRecords(db *gorm.DB, q RecordQuery) ([]models.ParkingRecord, int64, error) {
	query := db.Model(&models.ParkingRecord{})
	if q.Status != "" {
		query = query.Where("status = ?", q.Status)
	}
	if q.StartDate != nil {
		query = query.Where("entry_time >= ?", *q.StartDate)
	}
	if q.EndDate != nil {
		query = query.Where("entry_time <= ?", *q.EndDate)
	}

	var total int64
	if err := query.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count parking records: %w", err)
	}

	var records []models.ParkingRecord
	if err := query.
		Preload("Car").Preload("ParkingSlot").
		Order("entry_time DESC").
		Limit(q.Limit).Offset((q.Page - 1) * q.Limit).
		Find(&records).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to query parking records: %w", err)
	}

	return records, total, nil
}
