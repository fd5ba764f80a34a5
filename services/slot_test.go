package services

import (
	"errors"
	"smartpark/models"
	"testing"
)

func TestCreateSlotDuplicateNumber(t *testing.T) {
	db := newTestDB(t)
	createTestSlot(t, db, "A01")

	if _, err := CreateSlot(db, "A01", "First Floor"); !errors.Is(err, ErrSlotNumberExists) {
		t.Fatalf("err = %v, want ErrSlotNumberExists", err)
	}
}

func TestUpdateSlotDuplicateNumber(t *testing.T) {
	db := newTestDB(t)
	createTestSlot(t, db, "A01")
	slot := createTestSlot(t, db, "A02")

	number := "A01"
	if _, err := UpdateSlot(db, slot.SlotID, models.UpdateParkingSlotRequest{SlotNumber: &number}); !errors.Is(err, ErrSlotNumberExists) {
		t.Fatalf("err = %v, want ErrSlotNumberExists", err)
	}
}

func TestSoftDeleteHidesSlot(t *testing.T) {
	db := newTestDB(t)
	slot := createTestSlot(t, db, "A01")

	if err := DeleteSlot(db, slot.SlotID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}

	// 軟刪除後查不到
	if _, err := GetSlotByID(db, slot.SlotID); !errors.Is(err, ErrSlotNotFound) {
		t.Fatalf("err = %v, want ErrSlotNotFound", err)
	}

	slots, total, err := GetSlots(db, SlotQuery{Page: 1, Limit: 50})
	if err != nil {
		t.Fatalf("get slots failed: %v", err)
	}
	if total != 0 || len(slots) != 0 {
		t.Errorf("soft-deleted slot still listed: %d slots", len(slots))
	}

	// 軟刪除的車位不能進場
	if _, err := CheckIn(db, testCheckInInput("RAD 123A", "A01")); !errors.Is(err, ErrSlotNotFound) {
		t.Fatalf("err = %v, want ErrSlotNotFound", err)
	}

	// 資料仍在，僅標記停用
	var raw models.ParkingSlot
	if err := db.First(&raw, slot.SlotID).Error; err != nil {
		t.Fatalf("slot row should still exist: %v", err)
	}
	if raw.IsActive {
		t.Error("slot should be inactive")
	}
}

func TestGetSlotsFilterByStatus(t *testing.T) {
	db := newTestDB(t)
	createTestSlot(t, db, "A01")
	createTestSlot(t, db, "A02")

	if _, err := CheckIn(db, testCheckInInput("RAD 123A", "A01")); err != nil {
		t.Fatalf("check-in failed: %v", err)
	}

	occupied, total, err := GetSlots(db, SlotQuery{Status: models.SlotStatusOccupied, Page: 1, Limit: 50})
	if err != nil {
		t.Fatalf("get slots failed: %v", err)
	}
	if total != 1 || len(occupied) != 1 || occupied[0].SlotNumber != "A01" {
		t.Fatalf("occupied filter wrong: total=%d", total)
	}
}

func TestGetSlotStats(t *testing.T) {
	db := newTestDB(t)
	createTestSlot(t, db, "A01")
	createTestSlot(t, db, "A02")
	maint := createTestSlot(t, db, "A03")
	deleted := createTestSlot(t, db, "A04")

	status := models.SlotStatusMaintenance
	if _, err := UpdateSlot(db, maint.SlotID, models.UpdateParkingSlotRequest{SlotStatus: &status}); err != nil {
		t.Fatalf("failed to set maintenance: %v", err)
	}
	if err := DeleteSlot(db, deleted.SlotID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if _, err := CheckIn(db, testCheckInInput("RAD 123A", "A01")); err != nil {
		t.Fatalf("check-in failed: %v", err)
	}

	summary, err := GetSlotStats(db)
	if err != nil {
		t.Fatalf("stats failed: %v", err)
	}

	// 軟刪除的車位不列入統計
	if summary.Total != 3 {
		t.Errorf("total = %d, want 3", summary.Total)
	}
	if summary.Available != 1 || summary.Occupied != 1 || summary.Maintenance != 1 {
		t.Errorf("summary = %+v, want 1/1/1", summary)
	}
}
