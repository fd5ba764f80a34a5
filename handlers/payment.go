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

// GetPayments 查詢付款列表，支援 status / method / startDate / endDate / page / limit
func GetPayments(c *gin.Context) {
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

	query := services.PaymentQuery{
		Status:    c.Query("status"),
		Method:    c.Query("method"),
		StartDate: startDate,
		EndDate:   endDate,
		Page:      page,
		Limit:     limit,
	}

	payments, total, err := services.GetPayments(database.DB, query)
	if err != nil {
		log.Printf("Failed to get payments: %v", err)
		ErrorResponse(c, http.StatusInternalServerError, "查詢付款失敗", "server error", "ERR_SERVER")
		return
	}

	responses := make([]models.PaymentResponse, len(payments))
	for i, payment := range payments {
		responses[i] = payment.ToResponse()
	}

	SuccessResponse(c, http.StatusOK, "查詢成功", gin.H{
		"payments":    responses,
		"totalPages":  totalPages(total, limit),
		"currentPage": page,
		"total":       total,
	})
}

// GetPayment 依 ID 查詢單筆付款
func GetPayment(c *gin.Context) {
	paymentID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, "無效的付款 ID", err.Error(), "ERR_INVALID_ID")
		return
	}

	payment, err := services.GetPaymentByID(database.DB, paymentID)
	if err != nil {
		if errors.Is(err, services.ErrPaymentNotFound) {
			ErrorResponse(c, http.StatusNotFound, "付款不存在", "payment not found", "ERR_NOT_FOUND")
			return
		}
		log.Printf("Failed to get payment %d: %v", paymentID, err)
		ErrorResponse(c, http.StatusInternalServerError, "查詢付款失敗", "server error", "ERR_SERVER")
		return
	}

	SuccessResponse(c, http.StatusOK, "查詢成功", payment.ToResponse())
}

// CreatePayment 對已完成的停車紀錄建立付款
func CreatePayment(c *gin.Context) {
	var input services.CreatePaymentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		log.Printf("Invalid payment input: %v", err)
		ErrorResponse(c, http.StatusBadRequest, "無效的輸入資料",
			"parking record ID and amount paid are required", "ERR_INVALID_INPUT")
		return
	}

	payment, err := services.CreatePayment(database.DB, input)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrRecordNotFound):
			ErrorResponse(c, http.StatusNotFound, "停車紀錄不存在", "parking record not found", "ERR_NOT_FOUND")
		case errors.Is(err, services.ErrRecordNotCompleted):
			ErrorResponse(c, http.StatusBadRequest, "停車紀錄尚未完成", "parking record must be completed before payment", "ERR_RECORD_NOT_COMPLETED")
		case errors.Is(err, services.ErrRecordAlreadyPaid):
			ErrorResponse(c, http.StatusBadRequest, "停車紀錄已付款", "parking record is already paid", "ERR_RECORD_ALREADY_PAID")
		default:
			log.Printf("Failed to create payment for record %d: %v", input.RecordID, err)
			ErrorResponse(c, http.StatusInternalServerError, "建立付款失敗", "server error", "ERR_SERVER")
		}
		return
	}

	SuccessResponse(c, http.StatusCreated, "付款成功", payment.ToResponse())
}

// UpdatePayment 更新付款欄位
func UpdatePayment(c *gin.Context) {
	paymentID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, "無效的付款 ID", err.Error(), "ERR_INVALID_ID")
		return
	}

	var input services.UpdatePaymentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		log.Printf("Invalid payment update input: %v", err)
		ErrorResponse(c, http.StatusBadRequest, "無效的輸入資料", err.Error(), "ERR_INVALID_INPUT")
		return
	}

	payment, err := services.UpdatePayment(database.DB, paymentID, input)
	if err != nil {
		if errors.Is(err, services.ErrPaymentNotFound) {
			ErrorResponse(c, http.StatusNotFound, "付款不存在", "payment not found", "ERR_NOT_FOUND")
			return
		}
		log.Printf("Failed to update payment %d: %v", paymentID, err)
		ErrorResponse(c, http.StatusInternalServerError, "更新付款失敗", "server error", "ERR_SERVER")
		return
	}

	SuccessResponse(c, http.StatusOK, "付款更新成功", payment.ToResponse())
}

// GetPaymentStats 付款統計
func GetPaymentStats(c *gin.Context) {
	summary, err := services.GetPaymentStats(database.DB)
	if err != nil {
		log.Printf("Failed to get payment stats: %v", err)
		ErrorResponse(c, http.StatusInternalServerError, "查詢統計失敗", "server error", "ERR_SERVER")
		return
	}

	SuccessResponse(c, http.StatusOK, "查詢成功", summary)
}
