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

// GetCars 查詢車輛列表，支援 search / page / limit
func GetCars(c *gin.Context) {
	page, limit := parsePagination(c, 50)
	query := services.CarQuery{
		Search: c.Query("search"),
		Page:   page,
		Limit:  limit,
	}

	cars, total, err := services.GetCars(database.DB, query)
	if err != nil {
		log.Printf("Failed to get cars: %v", err)
		ErrorResponse(c, http.StatusInternalServerError, "查詢車輛失敗", "server error", "ERR_SERVER")
		return
	}

	responses := make([]models.CarResponse, len(cars))
	for i, car := range cars {
		responses[i] = car.ToResponse()
	}

	SuccessResponse(c, http.StatusOK, "查詢成功", gin.H{
		"cars":        responses,
		"totalPages":  totalPages(total, limit),
		"currentPage": page,
		"total":       total,
	})
}

// GetCar 依 ID 查詢單一車輛
func GetCar(c *gin.Context) {
	carID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, "無效的車輛 ID", err.Error(), "ERR_INVALID_ID")
		return
	}

	car, err := services.GetCarByID(database.DB, carID)
	if err != nil {
		if errors.Is(err, services.ErrCarNotFound) {
			ErrorResponse(c, http.StatusNotFound, "車輛不存在", "car not found", "ERR_NOT_FOUND")
			return
		}
		log.Printf("Failed to get car %d: %v", carID, err)
		ErrorResponse(c, http.StatusInternalServerError, "查詢車輛失敗", "server error", "ERR_SERVER")
		return
	}

	SuccessResponse(c, http.StatusOK, "查詢成功", car.ToResponse())
}

// GetCarByPlate 依車牌查詢車輛，車牌比對不分大小寫
func GetCarByPlate(c *gin.Context) {
	plate := c.Param("plate")

	car, err := services.GetCarByPlate(database.DB, plate)
	if err != nil {
		if errors.Is(err, services.ErrCarNotFound) {
			ErrorResponse(c, http.StatusNotFound, "車輛不存在", "car not found", "ERR_NOT_FOUND")
			return
		}
		log.Printf("Failed to get car by plate %s: %v", plate, err)
		ErrorResponse(c, http.StatusInternalServerError, "查詢車輛失敗", "server error", "ERR_SERVER")
		return
	}

	SuccessResponse(c, http.StatusOK, "查詢成功", car.ToResponse())
}
