package main

import (
	"fmt"
	"log"
	"net/http"

	"loanProject/config"
	"loanProject/controllers"
	"loanProject/database"
	"loanProject/middleware"
	"loanProject/services"
	"loanProject/utils"

	"github.com/gin-gonic/gin"
)

func main() {
	// Инициализируем конфигурацию
	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatalf("Ошибка загрузки конфигурации: %v", err)
	}

	// Инициализируем подключение к базе данных
	db, err := database.NewDatabase(cfg)
	if err != nil {
		log.Fatalf("Ошибка подключения к базе данных: %v", err)
	}
	defer db.Close()

	// Инициализируем сервис email
	emailService := services.NewEmailService(cfg)

	// Создаем роутер
	router := gin.New()
	router.Use(middleware.Recovery())
	router.Use(middleware.Logger())
	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.RateLimit())

	// Инициализируем контроллеры
	loanController := controllers.NewLoanController(db, emailService)
	paymentController := controllers.NewPaymentController(db, emailService)

	api := router.Group("/api")

	// Маршруты для работы с займами
	api.POST("/prestamos/solicitud", loanController.SubmitApplication)
	api.GET("/prestamos/pendientes", loanController.ListPending)
	api.GET("/prestamos/:id", loanController.GetLoan)
	api.PUT("/prestamos/:id", loanController.UpdateCharges)
	api.PUT("/prestamos/:id/aprobar", loanController.Approve)
	api.PUT("/prestamos/:id/denegar", loanController.Deny)
	api.GET("/prestamos/codigo/:codigo", loanController.GetLoanByCode)
	api.GET("/prestamos/codigo/:codigo/detalle", paymentController.GetLoanDetail)

	// Маршруты для работы с платежами
	api.POST("/pagos/comprobante-general", paymentController.SubmitReceipt)
	api.POST("/pagos/:id/registrar-cuota", paymentController.SubmitInstallmentReceipt)
	api.PUT("/pagos/:id/validar", paymentController.ReviewReceipt)
	api.PUT("/pagos/:id/aprobar", paymentController.ApproveReceipt)
	api.PUT("/pagos/:id/denegar", paymentController.DenyReceipt)

	// Снимок метрик приложения
	api.GET("/metrics", func(c *gin.Context) {
		c.JSON(http.StatusOK, utils.GetMetrics().GetMetricsSnapshot())
	})

	// Запускаем сервер
	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	log.Printf("Сервер запущен на порту %s", addr)
	if err := router.Run(addr); err != nil {
		log.Fatalf("Ошибка запуска сервера: %v", err)
	}
}
