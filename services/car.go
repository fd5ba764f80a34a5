package services

import (
	"errors"
	"fmt"
	"smartpark/models"

	"gorm.io/gorm"
)

// CarQuery 列表過濾條件：search 同時比對車牌、駕駛姓名與電話
type CarQuery struct {
	Search string
	Page   int
	Limit  int
}

// GetCars 查詢車輛列表（僅 is_active），依建立時間新到舊排序
func GetCars(db *gorm.DB, q CarQuery) ([]models.Car, int64, error) {
	query := db.Model(&models.Car{}).Where("is_active = ?", true)
	if q.Search != "" {
		like := "%" + q.Search + "%"
		query = query.Where("plate_number LIKE ? OR driver_name LIKE ? OR phone_number LIKE ?", like, like, like)
	}

	var total int64
	if err := query.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count cars: %w", err)
	}

	var cars []models.Car
	if err := query.
		Order("created_at DESC").
		Limit(q.Limit).Offset((q.Page - 1) * q.Limit).
		Find(&cars).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to query cars: %w", err)
	}

	return cars, total, nil
}

// GetCarByID 查詢單一車輛，已停用視同不存在
func GetCarByID(db *gorm.DB, carID int) (*models.Car, error) {
	var car models.Car
	if err := db.Where("car_id = ? AND is_active = ?", carID, true).First(&car).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCarNotFound
		}
		return nil, fmt.Errorf("failed to get car %d: %w", carID, err)
	}
	return &car, nil
}

// GetCarByPlate 依車牌查詢車輛，車牌先正規化再比對
func GetCarByPlate(db *gorm.DB, plate string) (*models.Car, error) {
	normalized := models.NormalizePlate(plate)
	var car models.Car
	if err := db.Where("plate_number = ? AND is_active = ?", normalized, true).First(&car).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCarNotFound
		}
		return nil, fmt.Errorf("failed to get car by plate %s: %w", normalized, err)
	}
	return &car, nil
}
