package main

import (
	"fmt"
	"log"
	"os"
	"smartpark/database"
	"smartpark/models"
	"smartpark/routes"
	"smartpark/services"
	"smartpark/utils"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
)

func main() {
	// 載入 .env 檔案
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file found, using default environment variables: %v", err)
	}

	// 初始化 JWTSecret
	utils.InitJWTSecret()

	// 初始化資料庫
	database.InitDB()

	// 執行資料庫遷移
	database.DB.AutoMigrate(
		&models.User{},
		&models.Car{},
		&models.ParkingSlot{},
		&models.ParkingRecord{},
		&models.Payment{},
	)
	log.Println("Database migration completed")

	// 確保預設管理員存在
	ensureAdminExists()

	// 建立示範車位（僅在車位表為空時）
	seedParkingSlots()

	// 設置 Gin 模式
	ginMode := os.Getenv("GIN_MODE")
	if ginMode == "" {
		ginMode = gin.ReleaseMode
	}
	gin.SetMode(ginMode)
	log.Printf("Gin mode set to %s", ginMode)

	// 初始化 Gin 路由器
	r := gin.Default()

	// 創建一個 API 路由組
	api := r.Group("/api")
	{
		routes.Path(api)
	}

	// 啟動定時任務：每小時記錄一次車位佔用概況（唯讀，不做任何寫入）
	c := cron.New()
	_, err := c.AddFunc("0 * * * *", func() {
		summary, err := services.GetSlotStats(database.DB)
		if err != nil {
			log.Printf("Failed to log occupancy summary: %v", err)
			return
		}
		log.Printf("Occupancy summary: total=%d available=%d occupied=%d maintenance=%d",
			summary.Total, summary.Available, summary.Occupied, summary.Maintenance)
	})
	if err != nil {
		log.Fatalf("Failed to schedule occupancy summary cron job: %v", err)
	}
	c.Start()
	log.Println("Cron jobs started")

	// 啟動伺服器
	port := os.Getenv("PORT")
	if port == "" {
		port = "5000"
	}
	log.Printf("Starting server on :%s", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// ensureAdminExists 檢查並創建預設管理員（admin / 123），已存在時僅記錄不報錯
func ensureAdminExists() {
	var admin models.User
	if err := database.DB.Where("role = ?", "admin").First(&admin).Error; err == nil {
		log.Printf("Admin already exists: username=%s", admin.Username)
		return
	}

	hashedPassword, err := utils.HashPassword("123")
	if err != nil {
		log.Fatalf("Failed to hash admin password: %v", err)
	}

	admin = models.User{
		Username: "admin",
		Password: hashedPassword,
		Role:     "admin",
		IsActive: true,
	}
	if err := database.DB.Create(&admin).Error; err != nil {
		log.Fatalf("Failed to create default admin: %v", err)
	}

	log.Printf("Default admin created: username=%s", admin.Username)
}

// seedParkingSlots 車位表為空時建立 50 個示範車位（A01–A50）
func seedParkingSlots() {
	var count int64
	if err := database.DB.Model(&models.ParkingSlot{}).Count(&count).Error; err != nil {
		log.Fatalf("Failed to count parking slots: %v", err)
	}
	if count > 0 {
		log.Printf("%d parking slots already exist", count)
		return
	}

	slots := make([]models.ParkingSlot, 0, 50)
	for i := 1; i <= 50; i++ {
		location := "Ground Floor"
		if i > 25 {
			location = "First Floor"
		}
		slots = append(slots, models.ParkingSlot{
			SlotNumber: fmt.Sprintf("A%02d", i),
			SlotStatus: models.SlotStatusAvailable,
			Location:   location,
			IsActive:   true,
		})
	}

	if err := database.DB.Create(&slots).Error; err != nil {
		log.Fatalf("Failed to seed parking slots: %v", err)
	}
	log.Println("50 sample parking slots created")
}
