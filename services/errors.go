package services

import "errors"

// 業務錯誤：handlers 依此對應 HTTP 狀態碼（404 / 400）
var (
	ErrCarNotFound        = errors.New("car not found")
	ErrSlotNotFound       = errors.New("parking slot not found")
	ErrRecordNotFound     = errors.New("parking record not found")
	ErrPaymentNotFound    = errors.New("payment not found")
	ErrSlotNumberExists   = errors.New("slot number already exists")
	ErrSlotUnavailable    = errors.New("parking slot is not available")
	ErrCarAlreadyParked   = errors.New("car is already parked")
	ErrRecordNotActive    = errors.New("parking record is not active")
	ErrRecordNotCompleted = errors.New("parking record must be completed before payment")
	ErrRecordAlreadyPaid  = errors.New("parking record is already paid")
)
