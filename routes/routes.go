package routes

import (
	"errors"
	"log"
	"net/http"
	"smartpark/handlers"
	"smartpark/utils"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// AuthMiddleware 驗證 JWT token，並提取 user_id 和 role
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"status":  false,
				"message": "缺少 Authorization 標頭",
				"error":   "Authorization header is required",
				"code":    "ERR_NO_AUTH_HEADER",
			})
			c.Abort()
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"status":  false,
				"message": "無效的 Authorization 格式",
				"error":   "Authorization header must be in the format 'Bearer <token>'",
				"code":    "ERR_INVALID_AUTH_FORMAT",
			})
			c.Abort()
			return
		}

		tokenString := parts[1]

		// 明確要求檢查 exp 字段
		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return utils.JWTSecret, nil
		}, jwt.WithExpirationRequired())

		if err != nil {
			log.Printf("Token parsing error: %v", err)
			if errors.Is(err, jwt.ErrTokenExpired) {
				c.JSON(http.StatusUnauthorized, gin.H{
					"status":  false,
					"message": "token 已過期",
					"error":   "Token has expired",
					"code":    "ERR_TOKEN_EXPIRED",
				})
			} else {
				c.JSON(http.StatusUnauthorized, gin.H{
					"status":  false,
					"message": "無效的 token",
					"error":   err.Error(),
					"code":    "ERR_INVALID_TOKEN",
				})
			}
			c.Abort()
			return
		}

		// 檢查 Claims 是否有效
		if claims, ok := token.Claims.(jwt.MapClaims); ok && token.Valid {
			// 確認 exp 字段存在
			if _, ok := claims["exp"].(float64); !ok {
				c.JSON(http.StatusUnauthorized, gin.H{
					"status":  false,
					"message": "無效的 token 內容",
					"error":   "Missing or invalid exp claim",
					"code":    "ERR_INVALID_CLAIMS",
				})
				c.Abort()
				return
			}

			// 確認 user_id 字段
			userID, ok := claims["user_id"].(float64)
			if !ok {
				c.JSON(http.StatusUnauthorized, gin.H{
					"status":  false,
					"message": "無效的使用者 ID",
					"error":   "Invalid user_id in token",
					"code":    "ERR_INVALID_USER_ID",
				})
				c.Abort()
				return
			}

			// 確認 role 字段
			role, ok := claims["role"].(string)
			if !ok || (role != "admin" && role != "staff") {
				log.Printf("Missing or invalid role in token: %v", role)
				c.JSON(http.StatusUnauthorized, gin.H{
					"status":  false,
					"message": "無效的角色",
					"error":   "Invalid role in token",
					"code":    "ERR_INVALID_ROLE",
				})
				c.Abort()
				return
			}

			c.Set("user_id", int(userID))
			c.Set("role", role) // 將 role 存入上下文
		} else {
			c.JSON(http.StatusUnauthorized, gin.H{
				"status":  false,
				"message": "無效的 token 內容",
				"error":   "Invalid token claims or token is not valid",
				"code":    "ERR_INVALID_CLAIMS",
			})
			c.Abort()
			return
		}

		c.Next()
	}
}

// RoleMiddleware 檢查使用者角色是否符合要求
func RoleMiddleware(allowedRoles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, exists := c.Get("role")
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{
				"status":  false,
				"message": "無法獲取角色資訊",
				"error":   "Role not found in context",
				"code":    "ERR_ROLE_NOT_FOUND",
			})
			c.Abort()
			return
		}

		roleStr, ok := role.(string)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{
				"status":  false,
				"message": "無效的角色類型",
				"error":   "Invalid role type",
				"code":    "ERR_INVALID_ROLE_TYPE",
			})
			c.Abort()
			return
		}

		// 允許 admin 角色訪問所有端點
		if roleStr == "admin" {
			c.Next()
			return
		}

		allowed := false
		for _, allowedRole := range allowedRoles {
			if roleStr == allowedRole {
				allowed = true
				break
			}
		}

		if !allowed {
			c.JSON(http.StatusForbidden, gin.H{
				"status":  false,
				"message": "權限不足",
				"error":   "Insufficient role permissions",
				"code":    "ERR_INSUFFICIENT_PERMISSIONS",
			})
			c.Abort()
			return
		}

		c.Next()
	}
}

func Path(router *gin.RouterGroup) {
	// 健康檢查：不需要 token
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message":   "SmartPark API is running",
			"timestamp": time.Now().Format(time.RFC3339),
			"company":   "SmartPark - Rubavu District, West Province, Rwanda",
		})
	})

	// 認證路由
	auth := router.Group("/auth")
	{
		// 公開路由：登入不需要 token
		auth.POST("/login", handlers.Login)
		// 受保護路由：查詢當前登入者
		auth.GET("/me", AuthMiddleware(), handlers.GetMe)
	}

	// 車輛路由：由停車紀錄自動建立，僅提供查詢
	cars := router.Group("/cars")
	cars.Use(AuthMiddleware())
	{
		cars.GET("", handlers.GetCars)
		cars.GET("/:id", handlers.GetCar)
		cars.GET("/plate/:plate", handlers.GetCarByPlate)
	}

	// 車位路由：查詢開放給所有登入者，管理操作僅限 admin
	slots := router.Group("/parking-slots")
	slots.Use(AuthMiddleware())
	{
		slots.GET("", handlers.GetParkingSlots)
		slots.GET("/:id", handlers.GetParkingSlot)
		slots.GET("/stats/summary", handlers.GetParkingSlotStats)
		slots.POST("", RoleMiddleware("admin"), handlers.CreateParkingSlot)
		slots.PUT("/:id", RoleMiddleware("admin"), handlers.UpdateParkingSlot)
		slots.DELETE("/:id", RoleMiddleware("admin"), handlers.DeleteParkingSlot)
	}

	// 停車紀錄路由
	records := router.Group("/parking-records")
	records.Use(AuthMiddleware())
	{
		records.GET("", handlers.GetParkingRecords)
		records.GET("/:id", handlers.GetParkingRecord)
		records.GET("/stats/summary", handlers.GetParkingRecordStats)
		records.POST("", handlers.CreateParkingRecord)
		records.PUT("/:id/exit", handlers.ExitParkingRecord)
		records.PUT("/:id", handlers.UpdateParkingRecord)
		records.DELETE("/:id", handlers.DeleteParkingRecord)
	}

	// 付款路由
	payments := router.Group("/payments")
	payments.Use(AuthMiddleware())
	{
		payments.GET("", handlers.GetPayments)
		payments.GET("/:id", handlers.GetPayment)
		payments.GET("/stats/summary", handlers.GetPaymentStats)
		payments.POST("", handlers.CreatePayment)
		payments.PUT("/:id", handlers.UpdatePayment)
	}
}
