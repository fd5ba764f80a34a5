package services

import (
	"math"
	"smartpark/models"
	"time"
)

// HourlyRate 每小時停車費（RWF），未滿一小時以一小時計
const HourlyRate = 1000

// ComputeBilling 根據進出場時間計算停車分鐘數與費用，分鐘與小時皆向上取整。
// 不檢查 exitTime 是否早於 entryTime：負的區間照實回傳負分鐘數，
// 費用仍以最低一小時計（與計費規則的 max(hours, 1) 一致）。
func ComputeBilling(entryTime, exitTime time.Time) (durationMinutes int, totalAmount int) {
	durationMinutes = int(math.Ceil(exitTime.Sub(entryTime).Minutes()))

	billableHours := int(math.Ceil(float64(durationMinutes) / 60.0))
	if billableHours < 1 {
		billableHours = 1
	}

	return durationMinutes, billableHours * HourlyRate
}

// CompleteSession 結束一次停車：設定出場時間、計算費用，並將 active 轉為 completed。
// 這是 active→completed 唯一的轉換點，轉換只會發生一次（completed 不會退回 active）。
func CompleteSession(record *models.ParkingRecord, exitTime time.Time) {
	record.ExitTime = &exitTime
	record.Duration, record.TotalAmount = ComputeBilling(record.EntryTime, exitTime)

	if record.Status == models.RecordStatusActive {
		record.Status = models.RecordStatusCompleted
	}
}
