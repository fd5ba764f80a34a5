package services

import (
	"errors"
	"fmt"
	"log"
	"smartpark/models"

	"gorm.io/gorm"
)

// CreateSlot 新增車位，車位編號不可重複（含已軟刪除的車位）
func CreateSlot(db *gorm.DB, slotNumber, location string) (*models.ParkingSlot, error) {
	var existing models.ParkingSlot
	if err := db.Where("slot_number = ?", slotNumber).First(&existing).Error; err == nil {
		return nil, ErrSlotNumberExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check for duplicate slot number: %w", err)
	}

	slot := models.ParkingSlot{
		SlotNumber: slotNumber,
		SlotStatus: models.SlotStatusAvailable,
		Location:   location,
		IsActive:   true,
	}
	if err := db.Create(&slot).Error; err != nil {
		return nil, fmt.Errorf("failed to create parking slot: %w", err)
	}

	log.Printf("Created parking slot %s (id %d)", slot.SlotNumber, slot.SlotID)
	return &slot, nil
}

// GetSlotByID 查詢單一車位，已軟刪除視同不存在
func GetSlotByID(db *gorm.DB, slotID int) (*models.ParkingSlot, error) {
	var slot models.ParkingSlot
	if err := db.Where("slot_id = ? AND is_active = ?", slotID, true).First(&slot).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSlotNotFound
		}
		return nil, fmt.Errorf("failed to get parking slot %d: %w", slotID, err)
	}
	return &slot, nil
}

// UpdateSlot 更新車位欄位；maintenance 只能由此管理操作設定，進出場邏輯不會碰它
func UpdateSlot(db *gorm.DB, slotID int, req models.UpdateParkingSlotRequest) (*models.ParkingSlot, error) {
	slot, err := GetSlotByID(db, slotID)
	if err != nil {
		return nil, err
	}

	// 變更編號時檢查重複
	if req.SlotNumber != nil && *req.SlotNumber != slot.SlotNumber {
		var existing models.ParkingSlot
		if err := db.Where("slot_number = ?", *req.SlotNumber).First(&existing).Error; err == nil {
			return nil, ErrSlotNumberExists
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("failed to check for duplicate slot number: %w", err)
		}
		slot.SlotNumber = *req.SlotNumber
	}
	if req.SlotStatus != nil {
		slot.SlotStatus = *req.SlotStatus
	}
	if req.Location != nil {
		slot.Location = *req.Location
	}

	if err := db.Save(slot).Error; err != nil {
		return nil, fmt.Errorf("failed to update parking slot %d: %w", slotID, err)
	}
	return slot, nil
}

// DeleteSlot 軟刪除：標記 is_active = false，不移除資料
func DeleteSlot(db *gorm.DB, slotID int) error {
	slot, err := GetSlotByID(db, slotID)
	if err != nil {
		return err
	}

	if err := db.Model(slot).Update("is_active", false).Error; err != nil {
		return fmt.Errorf("failed to soft delete parking slot %d: %w", slotID, err)
	}
	log.Printf("Soft deleted parking slot %s (id %d)", slot.SlotNumber, slot.SlotID)
	return nil
}

// SlotQuery 列表過濾條件
type SlotQuery struct {
	Status string
	Page   int
	Limit  int
}

// GetSlots 查詢車位列表（僅未軟刪除），依編號排序
func GetSlots(db *gorm.DB, q SlotQuery) ([]models.ParkingSlot, int64, error) {
	query := db.Model(&models.ParkingSlot{}).Where("is_active = ?", true)
	if q.Status != "" {
		query = query.Where("slot_status = ?", q.Status)
	}

	var total int64
	if err := query.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count parking slots: %w", err)
	}

	var slots []models.ParkingSlot
	if err := query.
		Order("slot_number ASC").
		Limit(q.Limit).Offset((q.Page - 1) * q.Limit).
		Find(&slots).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to query parking slots: %w", err)
	}

	return slots, total, nil
}
