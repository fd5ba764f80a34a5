package services

import (
	"errors"
	"smartpark/models"
	"testing"

	"gorm.io/gorm"
)

// checkedOutRecord 建立一筆已完成的停車紀錄
func checkedOutRecord(t *testing.T, db *gorm.DB, plate, slotNumber string) *models.ParkingRecord {
	t.Helper()

	createTestSlot(t, db, slotNumber)
	record, err := CheckIn(db, testCheckInInput(plate, slotNumber))
	if err != nil {
		t.Fatalf("check-in failed: %v", err)
	}
	record, err = CheckOut(db, record.RecordID, nil, "")
	if err != nil {
		t.Fatalf("check-out failed: %v", err)
	}
	return record
}

func TestCreatePaymentAgainstActiveRecord(t *testing.T) {
	db := newTestDB(t)
	createTestSlot(t, db, "A01")

	record, err := CheckIn(db, testCheckInInput("RAD 123A", "A01"))
	if err != nil {
		t.Fatalf("check-in failed: %v", err)
	}

	// 未完成的紀錄不能付款，不論金額多少
	_, err = CreatePayment(db, CreatePaymentInput{RecordID: record.RecordID, AmountPaid: 99999})
	if !errors.Is(err, ErrRecordNotCompleted) {
		t.Fatalf("err = %v, want ErrRecordNotCompleted", err)
	}
}

func TestCreatePaymentMarksRecordPaid(t *testing.T) {
	db := newTestDB(t)
	record := checkedOutRecord(t, db, "RAD 123A", "A01")

	payment, err := CreatePayment(db, CreatePaymentInput{RecordID: record.RecordID, AmountPaid: record.TotalAmount})
	if err != nil {
		t.Fatalf("payment failed: %v", err)
	}

	if payment.Status != models.PaymentStatusCompleted {
		t.Errorf("payment status = %s, want completed", payment.Status)
	}
	if payment.PaymentMethod != models.PaymentMethodCash {
		t.Errorf("default method = %s, want cash", payment.PaymentMethod)
	}
	if payment.TransactionID == "" {
		t.Error("transaction id should be generated when omitted")
	}
	if payment.ParkingRecord.RecordID != record.RecordID {
		t.Errorf("payment references record %d, want %d", payment.ParkingRecord.RecordID, record.RecordID)
	}

	reloaded, err := GetRecordByID(db, record.RecordID)
	if err != nil {
		t.Fatalf("failed to reload record: %v", err)
	}
	if !reloaded.IsPaid {
		t.Error("record should be marked paid")
	}
}

func TestCreatePaymentRejectsAlreadyPaid(t *testing.T) {
	db := newTestDB(t)
	record := checkedOutRecord(t, db, "RAD 123A", "A01")

	if _, err := CreatePayment(db, CreatePaymentInput{RecordID: record.RecordID, AmountPaid: 1000}); err != nil {
		t.Fatalf("first payment failed: %v", err)
	}

	_, err := CreatePayment(db, CreatePaymentInput{RecordID: record.RecordID, AmountPaid: 1000})
	if !errors.Is(err, ErrRecordAlreadyPaid) {
		t.Fatalf("err = %v, want ErrRecordAlreadyPaid", err)
	}
}

func TestCreatePaymentLenientAmount(t *testing.T) {
	db := newTestDB(t)
	record := checkedOutRecord(t, db, "RAD 123A", "A01")

	// 金額不與 total_amount 核對，少付也照收
	payment, err := CreatePayment(db, CreatePaymentInput{
		RecordID:      record.RecordID,
		AmountPaid:    1,
		PaymentMethod: models.PaymentMethodMobileMoney,
		TransactionID: "MM-2025-0001",
	})
	if err != nil {
		t.Fatalf("payment failed: %v", err)
	}
	if payment.AmountPaid != 1 {
		t.Errorf("amount = %d, want 1", payment.AmountPaid)
	}
	if payment.TransactionID != "MM-2025-0001" {
		t.Errorf("supplied transaction id should be kept, got %s", payment.TransactionID)
	}
}

func TestCreatePaymentUnknownRecord(t *testing.T) {
	db := newTestDB(t)

	_, err := CreatePayment(db, CreatePaymentInput{RecordID: 9999, AmountPaid: 1000})
	if !errors.Is(err, ErrRecordNotFound) {
		t.Fatalf("err = %v, want ErrRecordNotFound", err)
	}
}

func TestUpdatePayment(t *testing.T) {
	db := newTestDB(t)
	record := checkedOutRecord(t, db, "RAD 123A", "A01")

	payment, err := CreatePayment(db, CreatePaymentInput{RecordID: record.RecordID, AmountPaid: 1000})
	if err != nil {
		t.Fatalf("payment failed: %v", err)
	}

	status := models.PaymentStatusFailed
	notes := "card declined"
	updated, err := UpdatePayment(db, payment.PaymentID, UpdatePaymentInput{Status: &status, Notes: &notes})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.Status != models.PaymentStatusFailed || updated.Notes != "card declined" {
		t.Errorf("update not applied: %s / %q", updated.Status, updated.Notes)
	}
}
