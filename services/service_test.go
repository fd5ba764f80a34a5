package services

import (
	"smartpark/models"
	"testing"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB 開一個獨立的 in-memory 資料庫並完成遷移。
// 連線數固定為 1，避免連線池拿到另一個空的 memory 資料庫。
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)

	if err := db.AutoMigrate(
		&models.User{},
		&models.Car{},
		&models.ParkingSlot{},
		&models.ParkingRecord{},
		&models.Payment{},
	); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return db
}

// createTestSlot 建立一個可用的測試車位
func createTestSlot(t *testing.T, db *gorm.DB, slotNumber string) *models.ParkingSlot {
	t.Helper()

	slot, err := CreateSlot(db, slotNumber, "Ground Floor")
	if err != nil {
		t.Fatalf("failed to create test slot %s: %v", slotNumber, err)
	}
	return slot
}

// testCheckInInput 基本進場輸入
func testCheckInInput(plate, slotNumber string) CheckInInput {
	return CheckInInput{
		PlateNumber: plate,
		DriverName:  "Jean Bosco",
		PhoneNumber: "0788123456",
		SlotNumber:  slotNumber,
	}
}

// slotStatus 讀取車位目前狀態
func slotStatus(t *testing.T, db *gorm.DB, slotID int) string {
	t.Helper()

	var slot models.ParkingSlot
	if err := db.First(&slot, slotID).Error; err != nil {
		t.Fatalf("failed to reload slot %d: %v", slotID, err)
	}
	return slot.SlotStatus
}
