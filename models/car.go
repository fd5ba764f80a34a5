package models

import (
	"strings"
	"time"
)

// Car 車輛表：以車牌為唯一識別，首次進場時自動建立
type Car struct {
	CarID       int    `json:"car_id" gorm:"primaryKey;autoIncrement;type:INT"`
	PlateNumber string `json:"plate_number" gorm:"type:varchar(20);not null;uniqueIndex" binding:"required,max=20"`
	DriverName  string `json:"driver_name" gorm:"type:varchar(50);not null" binding:"required,max=50"`
	PhoneNumber string `json:"phone_number" gorm:"type:varchar(20);not null" binding:"required,max=20"`
	CarModel    string `json:"car_model" gorm:"type:varchar(50)" binding:"omitempty,max=50"`
	CarColor    string `json:"car_color" gorm:"type:varchar(20)" binding:"omitempty,max=20"`
	IsActive    bool   `json:"is_active" gorm:"default:true"`

	// 關聯：這台車的所有停車紀錄
	Records []ParkingRecord `json:"-" gorm:"foreignKey:CarID;references:CarID"`

	CreatedAt time.Time `json:"created_at" gorm:"column:created_at"`
	UpdatedAt time.Time `json:"updated_at" gorm:"column:updated_at"`
}

func (Car) TableName() string {
	return "car"
}

// NormalizePlate 車牌統一轉大寫並去除前後空白，作為車輛識別鍵
func NormalizePlate(plate string) string {
	return strings.ToUpper(strings.TrimSpace(plate))
}

type CarResponse struct {
	CarID       int       `json:"car_id"`
	PlateNumber string    `json:"plate_number"`
	DriverName  string    `json:"driver_name"`
	PhoneNumber string    `json:"phone_number"`
	CarModel    string    `json:"car_model,omitempty"`
	CarColor    string    `json:"car_color,omitempty"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// CarSummary 停車紀錄中內嵌的車輛摘要
type CarSummary struct {
	CarID       int    `json:"car_id"`
	PlateNumber string `json:"plate_number"`
	DriverName  string `json:"driver_name"`
	PhoneNumber string `json:"phone_number"`
	CarModel    string `json:"car_model,omitempty"`
	CarColor    string `json:"car_color,omitempty"`
}

func (c *Car) ToResponse() CarResponse {
	return CarResponse{
		CarID:       c.CarID,
		PlateNumber: c.PlateNumber,
		DriverName:  c.DriverName,
		PhoneNumber: c.PhoneNumber,
		CarModel:    c.CarModel,
		CarColor:    c.CarColor,
		IsActive:    c.IsActive,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

func (c *Car) ToSummary() CarSummary {
	return CarSummary{
		CarID:       c.CarID,
		PlateNumber: c.PlateNumber,
		DriverName:  c.DriverName,
		PhoneNumber: c.PhoneNumber,
		CarModel:    c.CarModel,
		CarColor:    c.CarColor,
	}
}
