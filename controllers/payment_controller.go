package controllers

import (
	"net/http"
	"time"

	"loanProject/database"
	"loanProject/services"
	"loanProject/utils"

	"github.com/gin-gonic/gin"
)

// PaymentController обрабатывает запросы, связанные с платежами
type PaymentController struct {
	paymentService *services.PaymentService
}

// NewPaymentController создает новый экземпляр PaymentController
func NewPaymentController(db *database.Database, email *services.EmailService) *PaymentController {
	return &PaymentController{
		paymentService: services.NewPaymentService(db.DB, email),
	}
}

// GetLoanDetail возвращает заем с платежной историей и графиком взносов
func (c *PaymentController) GetLoanDetail(ctx *gin.Context) {
	detail, err := c.paymentService.GetLoanDetail(ctx.Param("codigo"))
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, detail)
}

// SubmitReceipt регистрирует платежный документ по коду займа
func (c *PaymentController) SubmitReceipt(ctx *gin.Context) {
	var dto services.ReceiptDTO
	if err := ctx.ShouldBindJSON(&dto); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "неверное тело запроса"})
		return
	}

	start := time.Now()
	result, err := c.paymentService.SubmitReceipt(dto)
	utils.LogOperation("submitReceipt", start, err)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, result)
}

// SubmitInstallmentReceipt регистрирует платежный документ по взносу из графика
func (c *PaymentController) SubmitInstallmentReceipt(ctx *gin.Context) {
	id, err := parseID(ctx, "id")
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "неверный ID взноса"})
		return
	}

	var dto services.InstallmentReceiptDTO
	if err := ctx.ShouldBindJSON(&dto); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "неверное тело запроса"})
		return
	}
	dto.FuturePaymentID = id

	start := time.Now()
	result, err := c.paymentService.SubmitInstallmentReceipt(dto)
	utils.LogOperation("submitInstallmentReceipt", start, err)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, result)
}

// reviewRequest представляет решение проверяющего по платежу
type reviewRequest struct {
	Approved bool `json:"aprobado"`
}

// ReviewReceipt проверяет платежный документ
func (c *PaymentController) ReviewReceipt(ctx *gin.Context) {
	id, err := parseID(ctx, "id")
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "неверный ID платежа"})
		return
	}

	var req reviewRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "неверное тело запроса"})
		return
	}

	start := time.Now()
	message, err := c.paymentService.ReviewReceipt(id, req.Approved)
	utils.LogOperation("reviewReceipt", start, err)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": message})
}

// ApproveReceipt подтверждает платеж в статусе pendiente
func (c *PaymentController) ApproveReceipt(ctx *gin.Context) {
	id, err := parseID(ctx, "id")
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "неверный ID платежа"})
		return
	}

	result, err := c.paymentService.ApproveReceipt(id)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, result)
}

// DenyReceipt отклоняет платеж в статусе pendiente
func (c *PaymentController) DenyReceipt(ctx *gin.Context) {
	id, err := parseID(ctx, "id")
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "неверный ID платежа"})
		return
	}

	result, err := c.paymentService.DenyReceipt(id)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, result)
}
