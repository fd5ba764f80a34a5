package handlers

import (
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"smartpark/database"
	"smartpark/models"
	"smartpark/services"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
)

// parseTime 解析時間字串，接受 RFC 3339 或不帶時區的 'YYYY-MM-DDThh:mm:ss'
func parseTime(timeStr string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, timeStr)
	if err == nil {
		return t, nil
	}

	t, err = time.Parse("2006-01-02T15:04:05", timeStr)
	if err == nil {
		return t.In(time.Local), nil
	}

	return time.Time{}, fmt.Errorf("time must be in 'YYYY-MM-DDThh:mm:ss' or RFC 3339 format")
}

// parseDateQuery 解析 startDate/endDate 查詢參數，接受 'YYYY-MM-DD' 或完整時間
func parseDateQuery(dateStr string) (*time.Time, error) {
	if dateStr == "" {
		return nil, nil
	}
	if t, err := time.ParseInLocation("2006-01-02", dateStr, time.Local); err == nil {
		return &t, nil
	}
	t, err := parseTime(dateStr)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// GetParkingRecords 查詢停車紀錄列表，支援 status / startDate / endDate / page / limit
func GetParkingRecords(c *gin.Context) {
	page, limit := parsePagination(c, 20)

	startDate, err := parseDateQuery(c.Query("startDate"))
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, "無效的開始日期格式", err.Error(), "ERR_INVALID_DATE")
		return
	}
	endDate, err := parseDateQuery(c.Query("endDate"))
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, "無效的結束日期格式", err.Error(), "ERR_INVALID_DATE")
		return
	}

	query := services.RecordQuery{
		Status:    c.Query("status"),
		StartDate: startDate,
		EndDate:   endDate,
		Page:      page,
		Limit:     limit,
	}

	records, total, err := services.GetRecords(database.DB, query)
	if err != nil {
		log.Printf("Failed to get parking records: %v", err)
		ErrorResponse(c, http.StatusInternalServerError, "查詢停車紀錄失敗", "server error", "ERR_SERVER")
		return
	}

	responses := make([]models.ParkingRecordResponse, len(records))
	for i, record := range records {
		responses[i] = record.ToResponse()
	}

	SuccessResponse(c, http.StatusOK, "查詢成功", gin.H{
		"records":     responses,
		"totalPages":  totalPages(total, limit),
		"currentPage": page,
		"total":       total,
	})
}

// GetParkingRecord 依 ID 查詢單筆停車紀錄
func GetParkingRecord(c *gin.Context) {
	recordID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, "無效的紀錄 ID", err.Error(), "ERR_INVALID_ID")
		return
	}

	record, err := services.GetRecordByID(database.DB, recordID)
	if err != nil {
		if errors.Is(err, services.ErrRecordNotFound) {
			ErrorResponse(c, http.StatusNotFound, "停車紀錄不存在", "parking record not found", "ERR_NOT_FOUND")
			return
		}
		log.Printf("Failed to get parking record %d: %v", recordID, err)
		ErrorResponse(c, http.StatusInternalServerError, "查詢停車紀錄失敗", "server error", "ERR_SERVER")
		return
	}

	SuccessResponse(c, http.StatusOK, "查詢成功", record.ToResponse())
}

// CreateParkingRecord 車輛進場（check-in）
func CreateParkingRecord(c *gin.Context) {
	var input services.CheckInInput
	if err := c.ShouldBindJSON(&input); err != nil {
		log.Printf("Invalid check-in input: %v", err)
		ErrorResponse(c, http.StatusBadRequest, "無效的輸入資料",
			"plate number, driver name, phone number, and slot number are required", "ERR_INVALID_INPUT")
		return
	}

	record, err := services.CheckIn(database.DB, input)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrSlotNotFound):
			ErrorResponse(c, http.StatusNotFound, "車位不存在", "parking slot not found", "ERR_NOT_FOUND")
		case errors.Is(err, services.ErrSlotUnavailable):
			ErrorResponse(c, http.StatusBadRequest, "車位不可用", "parking slot is not available", "ERR_SLOT_UNAVAILABLE")
		case errors.Is(err, services.ErrCarAlreadyParked):
			ErrorResponse(c, http.StatusBadRequest, "車輛已在場內", "car is already parked", "ERR_CAR_ALREADY_PARKED")
		default:
			log.Printf("Check-in failed for plate %s: %v", input.PlateNumber, err)
			ErrorResponse(c, http.StatusInternalServerError, "進場失敗", "server error", "ERR_SERVER")
		}
		return
	}

	SuccessResponse(c, http.StatusCreated, "進場成功", record.ToResponse())
}

// ExitInput 出場請求，exit_time 未提供時以當下時間計
type ExitInput struct {
	ExitTime string `json:"exit_time" binding:"omitempty"`
	Notes    string `json:"notes" binding:"omitempty,max=255"`
}

// ExitParkingRecord 車輛出場（check-out）
func ExitParkingRecord(c *gin.Context) {
	recordID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, "無效的紀錄 ID", err.Error(), "ERR_INVALID_ID")
		return
	}

	// 出場允許空 body（全部取預設值）
	var input ExitInput
	if err := c.ShouldBindJSON(&input); err != nil && !errors.Is(err, io.EOF) {
		log.Printf("Invalid exit input: %v", err)
		ErrorResponse(c, http.StatusBadRequest, "無效的輸入資料", err.Error(), "ERR_INVALID_INPUT")
		return
	}

	var exitTime *time.Time
	if input.ExitTime != "" {
		t, err := parseTime(input.ExitTime)
		if err != nil {
			ErrorResponse(c, http.StatusBadRequest, "無效的出場時間格式", err.Error(), "ERR_INVALID_TIME_FORMAT")
			return
		}
		exitTime = &t
	}

	record, err := services.CheckOut(database.DB, recordID, exitTime, input.Notes)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrRecordNotFound):
			ErrorResponse(c, http.StatusNotFound, "停車紀錄不存在", "parking record not found", "ERR_NOT_FOUND")
		case errors.Is(err, services.ErrRecordNotActive):
			ErrorResponse(c, http.StatusBadRequest, "停車紀錄不是進行中", "parking record is not active", "ERR_RECORD_NOT_ACTIVE")
		default:
			log.Printf("Check-out failed for record %d: %v", recordID, err)
			ErrorResponse(c, http.StatusInternalServerError, "出場失敗", "server error", "ERR_SERVER")
		}
		return
	}

	SuccessResponse(c, http.StatusOK, "出場成功", record.ToResponse())
}

// UpdateParkingRecord 自由修改紀錄欄位（entry_time / exit_time / notes），不重新計費
func UpdateParkingRecord(c *gin.Context) {
	recordID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, "無效的紀錄 ID", err.Error(), "ERR_INVALID_ID")
		return
	}

	var input services.UpdateRecordInput
	if err := c.ShouldBindJSON(&input); err != nil {
		log.Printf("Invalid record update input: %v", err)
		ErrorResponse(c, http.StatusBadRequest, "無效的輸入資料", err.Error(), "ERR_INVALID_INPUT")
		return
	}

	var entryTime, exitTime *time.Time
	clearExit := false
	if input.EntryTime != nil && *input.EntryTime != "" {
		t, err := parseTime(*input.EntryTime)
		if err != nil {
			ErrorResponse(c, http.StatusBadRequest, "無效的進場時間格式", err.Error(), "ERR_INVALID_TIME_FORMAT")
			return
		}
		entryTime = &t
	}
	if input.ExitTime != nil {
		// 傳空字串代表清除出場時間
		if *input.ExitTime == "" {
			clearExit = true
		} else {
			t, err := parseTime(*input.ExitTime)
			if err != nil {
				ErrorResponse(c, http.StatusBadRequest, "無效的出場時間格式", err.Error(), "ERR_INVALID_TIME_FORMAT")
				return
			}
			exitTime = &t
		}
	}

	record, err := services.UpdateRecord(database.DB, recordID, entryTime, exitTime, clearExit, input.Notes)
	if err != nil {
		if errors.Is(err, services.ErrRecordNotFound) {
			ErrorResponse(c, http.StatusNotFound, "停車紀錄不存在", "parking record not found", "ERR_NOT_FOUND")
			return
		}
		log.Printf("Failed to update parking record %d: %v", recordID, err)
		ErrorResponse(c, http.StatusInternalServerError, "更新停車紀錄失敗", "server error", "ERR_SERVER")
		return
	}

	SuccessResponse(c, http.StatusOK, "更新成功", record.ToResponse())
}

// DeleteParkingRecord 刪除停車紀錄，連帶刪除關聯付款
func DeleteParkingRecord(c *gin.Context) {
	recordID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, "無效的紀錄 ID", err.Error(), "ERR_INVALID_ID")
		return
	}

	if err := services.DeleteRecord(database.DB, recordID); err != nil {
		if errors.Is(err, services.ErrRecordNotFound) {
			ErrorResponse(c, http.StatusNotFound, "停車紀錄不存在", "parking record not found", "ERR_NOT_FOUND")
			return
		}
		log.Printf("Failed to delete parking record %d: %v", recordID, err)
		ErrorResponse(c, http.StatusInternalServerError, "刪除停車紀錄失敗", "server error", "ERR_SERVER")
		return
	}

	SuccessResponse(c, http.StatusOK, "停車紀錄刪除成功", nil)
}

// GetParkingRecordStats 停車紀錄統計
func GetParkingRecordStats(c *gin.Context) {
	summary, err := services.GetRecordStats(database.DB)
	if err != nil {
		log.Printf("Failed to get record stats: %v", err)
		ErrorResponse(c, http.StatusInternalServerError, "查詢統計失敗", "server error", "ERR_SERVER")
		return
	}

	SuccessResponse(c, http.StatusOK, "查詢成功", summary)
}
