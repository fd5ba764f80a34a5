package handlers

import (
	"errors"
	"log"
	"net/http"
	"smartpark/database"
	"smartpark/models"
	"smartpark/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// LoginInput 登入請求
type LoginInput struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Login 以帳號密碼換取 token
func Login(c *gin.Context) {
	var input LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		log.Printf("Invalid login input: %v", err)
		ErrorResponse(c, http.StatusBadRequest, "請提供帳號與密碼", "username and password are required", "ERR_INVALID_INPUT")
		return
	}

	var user models.User
	if err := database.DB.Where("username = ? AND is_active = ?", input.Username, true).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			log.Printf("Login failed: user %s not found", input.Username)
			ErrorResponse(c, http.StatusUnauthorized, "無效的帳號或密碼", "invalid credentials", "ERR_INVALID_CREDENTIALS")
			return
		}
		log.Printf("Failed to query user %s: %v", input.Username, err)
		ErrorResponse(c, http.StatusInternalServerError, "伺服器錯誤", "server error", "ERR_SERVER")
		return
	}

	if !utils.CheckPasswordHash(input.Password, user.Password) {
		log.Printf("Login failed: wrong password for user %s", input.Username)
		ErrorResponse(c, http.StatusUnauthorized, "無效的帳號或密碼", "invalid credentials", "ERR_INVALID_CREDENTIALS")
		return
	}

	token, err := utils.GenerateToken(user.UserID, user.Username, user.Role)
	if err != nil {
		log.Printf("Failed to generate token for user %s: %v", input.Username, err)
		ErrorResponse(c, http.StatusInternalServerError, "伺服器錯誤", "server error", "ERR_SERVER")
		return
	}

	log.Printf("User %s logged in successfully", user.Username)
	SuccessResponse(c, http.StatusOK, "登入成功", gin.H{
		"token": token,
		"user":  user.ToResponse(),
	})
}

// GetMe 回傳當前登入者資訊
func GetMe(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		ErrorResponse(c, http.StatusUnauthorized, "未授權", "user_id not found in token", "ERR_NO_USER_ID")
		return
	}

	var user models.User
	if err := database.DB.Where("user_id = ? AND is_active = ?", userID, true).First(&user).Error; err != nil {
		log.Printf("Failed to load user %v: %v", userID, err)
		ErrorResponse(c, http.StatusUnauthorized, "無效的使用者", "user not found", "ERR_USER_NOT_FOUND")
		return
	}

	SuccessResponse(c, http.StatusOK, "查詢成功", gin.H{"user": user.ToResponse()})
}
