package services

import (
	"smartpark/models"
	"testing"
)

func TestGetRecordStats(t *testing.T) {
	db := newTestDB(t)
	createTestSlot(t, db, "A02")

	// 一筆完成且付款，一筆仍在場內（A01 由 checkedOutRecord 建立）
	paid := checkedOutRecord(t, db, "RAD 001A", "A01")
	if _, err := CreatePayment(db, CreatePaymentInput{RecordID: paid.RecordID, AmountPaid: paid.TotalAmount}); err != nil {
		t.Fatalf("payment failed: %v", err)
	}
	if _, err := CheckIn(db, testCheckInInput("RAD 002B", "A02")); err != nil {
		t.Fatalf("check-in failed: %v", err)
	}

	summary, err := GetRecordStats(db)
	if err != nil {
		t.Fatalf("stats failed: %v", err)
	}

	if summary.TodayRecords != 2 {
		t.Errorf("today records = %d, want 2", summary.TodayRecords)
	}
	if summary.ActiveRecords != 1 {
		t.Errorf("active records = %d, want 1", summary.ActiveRecords)
	}
	// 營收只計入已付款的完成紀錄；剛出場的停車最低一小時 1000
	if summary.TotalRevenue != int64(paid.TotalAmount) {
		t.Errorf("total revenue = %d, want %d", summary.TotalRevenue, paid.TotalAmount)
	}
	if summary.TodayRevenue != int64(paid.TotalAmount) {
		t.Errorf("today revenue = %d, want %d", summary.TodayRevenue, paid.TotalAmount)
	}
}

func TestGetRecordStatsIgnoresUnpaid(t *testing.T) {
	db := newTestDB(t)

	// 完成但未付款的紀錄不計入營收
	checkedOutRecord(t, db, "RAD 001A", "A01")

	summary, err := GetRecordStats(db)
	if err != nil {
		t.Fatalf("stats failed: %v", err)
	}
	if summary.TotalRevenue != 0 || summary.TodayRevenue != 0 {
		t.Errorf("revenue = %d/%d, want 0/0", summary.TotalRevenue, summary.TodayRevenue)
	}
}

func TestGetPaymentStats(t *testing.T) {
	db := newTestDB(t)

	r1 := checkedOutRecord(t, db, "RAD 001A", "A01")
	r2 := checkedOutRecord(t, db, "RAD 002B", "A02")

	if _, err := CreatePayment(db, CreatePaymentInput{RecordID: r1.RecordID, AmountPaid: 1000}); err != nil {
		t.Fatalf("payment failed: %v", err)
	}
	if _, err := CreatePayment(db, CreatePaymentInput{
		RecordID:      r2.RecordID,
		AmountPaid:    2000,
		PaymentMethod: models.PaymentMethodCard,
	}); err != nil {
		t.Fatalf("payment failed: %v", err)
	}

	summary, err := GetPaymentStats(db)
	if err != nil {
		t.Fatalf("stats failed: %v", err)
	}

	if summary.TotalPayments.Count != 2 || summary.TotalPayments.Total != 3000 {
		t.Errorf("total payments = %+v, want count 2 total 3000", summary.TotalPayments)
	}
	if summary.TodayPayments.Count != 2 || summary.TodayPayments.Total != 3000 {
		t.Errorf("today payments = %+v, want count 2 total 3000", summary.TodayPayments)
	}

	methods := map[string]PaymentMethodStats{}
	for _, m := range summary.PaymentMethods {
		methods[m.PaymentMethod] = m
	}
	if m := methods[models.PaymentMethodCash]; m.Count != 1 || m.Total != 1000 {
		t.Errorf("cash bucket = %+v", m)
	}
	if m := methods[models.PaymentMethodCard]; m.Count != 1 || m.Total != 2000 {
		t.Errorf("card bucket = %+v", m)
	}
}
