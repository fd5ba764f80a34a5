package handlers

import (
	"errors"
	"log"
	"net/http"
	"smartpark/database"
	"smartpark/models"
	"smartpark/services"
	"strconv"

	"github.com/gin-gonic/gin"
)

// CreateSlotInput 新增車位請求
type CreateSlotInput struct {
	SlotNumber string `json:"slot_number" binding:"required,max=20"`
	Location   string `json:"location" binding:"omitempty,max=50"`
}

// GetParkingSlots 查詢車位列表，支援 status / page / limit
func GetParkingSlots(c *gin.Context) {
	page, limit := parsePagination(c, 50)
	query := services.SlotQuery{
		Status: c.Query("status"),
		Page:   page,
		Limit:  limit,
	}

	slots, total, err := services.GetSlots(database.DB, query)
	if err != nil {
		log.Printf("Failed to get parking slots: %v", err)
		ErrorResponse(c, http.StatusInternalServerError, "查詢車位失敗", "server error", "ERR_SERVER")
		return
	}

	responses := make([]models.ParkingSlotResponse, len(slots))
	for i, slot := range slots {
		responses[i] = slot.ToResponse()
	}

	SuccessResponse(c, http.StatusOK, "查詢成功", gin.H{
		"slots":       responses,
		"totalPages":  totalPages(total, limit),
		"currentPage": page,
		"total":       total,
	})
}

// GetParkingSlot 依 ID 查詢單一車位
func GetParkingSlot(c *gin.Context) {
	slotID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, "無效的車位 ID", err.Error(), "ERR_INVALID_ID")
		return
	}

	slot, err := services.GetSlotByID(database.DB, slotID)
	if err != nil {
		if errors.Is(err, services.ErrSlotNotFound) {
			ErrorResponse(c, http.StatusNotFound, "車位不存在", "parking slot not found", "ERR_NOT_FOUND")
			return
		}
		log.Printf("Failed to get parking slot %d: %v", slotID, err)
		ErrorResponse(c, http.StatusInternalServerError, "查詢車位失敗", "server error", "ERR_SERVER")
		return
	}

	SuccessResponse(c, http.StatusOK, "查詢成功", slot.ToResponse())
}

// CreateParkingSlot 新增車位（僅管理員）
func CreateParkingSlot(c *gin.Context) {
	var input CreateSlotInput
	if err := c.ShouldBindJSON(&input); err != nil {
		log.Printf("Invalid slot input: %v", err)
		ErrorResponse(c, http.StatusBadRequest, "無效的輸入資料", "slot number is required", "ERR_INVALID_INPUT")
		return
	}

	slot, err := services.CreateSlot(database.DB, input.SlotNumber, input.Location)
	if err != nil {
		if errors.Is(err, services.ErrSlotNumberExists) {
			ErrorResponse(c, http.StatusBadRequest, "車位編號已存在", "slot number already exists", "ERR_DUPLICATE_SLOT")
			return
		}
		log.Printf("Failed to create parking slot %s: %v", input.SlotNumber, err)
		ErrorResponse(c, http.StatusInternalServerError, "新增車位失敗", "server error", "ERR_SERVER")
		return
	}

	SuccessResponse(c, http.StatusCreated, "車位新增成功", slot.ToResponse())
}

// UpdateParkingSlot 更新車位（僅管理員）
func UpdateParkingSlot(c *gin.Context) {
	slotID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, "無效的車位 ID", err.Error(), "ERR_INVALID_ID")
		return
	}

	var req models.UpdateParkingSlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Printf("Invalid slot update input: %v", err)
		ErrorResponse(c, http.StatusBadRequest, "無效的輸入資料", err.Error(), "ERR_INVALID_INPUT")
		return
	}

	slot, err := services.UpdateSlot(database.DB, slotID, req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrSlotNotFound):
			ErrorResponse(c, http.StatusNotFound, "車位不存在", "parking slot not found", "ERR_NOT_FOUND")
		case errors.Is(err, services.ErrSlotNumberExists):
			ErrorResponse(c, http.StatusBadRequest, "車位編號已存在", "slot number already exists", "ERR_DUPLICATE_SLOT")
		default:
			log.Printf("Failed to update parking slot %d: %v", slotID, err)
			ErrorResponse(c, http.StatusInternalServerError, "更新車位失敗", "server error", "ERR_SERVER")
		}
		return
	}

	SuccessResponse(c, http.StatusOK, "車位更新成功", slot.ToResponse())
}

// DeleteParkingSlot 軟刪除車位（僅管理員）
func DeleteParkingSlot(c *gin.Context) {
	slotID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, "無效的車位 ID", err.Error(), "ERR_INVALID_ID")
		return
	}

	if err := services.DeleteSlot(database.DB, slotID); err != nil {
		if errors.Is(err, services.ErrSlotNotFound) {
			ErrorResponse(c, http.StatusNotFound, "車位不存在", "parking slot not found", "ERR_NOT_FOUND")
			return
		}
		log.Printf("Failed to delete parking slot %d: %v", slotID, err)
		ErrorResponse(c, http.StatusInternalServerError, "刪除車位失敗", "server error", "ERR_SERVER")
		return
	}

	SuccessResponse(c, http.StatusOK, "車位刪除成功", nil)
}

// GetParkingSlotStats 車位狀態統計
func GetParkingSlotStats(c *gin.Context) {
	summary, err := services.GetSlotStats(database.DB)
	if err != nil {
		log.Printf("Failed to get slot stats: %v", err)
		ErrorResponse(c, http.StatusInternalServerError, "查詢統計失敗", "server error", "ERR_SERVER")
		return
	}

	SuccessResponse(c, http.StatusOK, "查詢成功", summary)
}
