package controllers

import (
	"net/http"
	"strconv"
	"time"

	"loanProject/database"
	"loanProject/services"
	"loanProject/utils"

	"github.com/gin-gonic/gin"
)

// LoanController обрабатывает запросы, связанные с займами
type LoanController struct {
	loanService     *services.LoanService
	workflowService *services.WorkflowService
}

// NewLoanController создает новый экземпляр LoanController
func NewLoanController(db *database.Database, email *services.EmailService) *LoanController {
	return &LoanController{
		loanService:     services.NewLoanService(db.DB),
		workflowService: services.NewWorkflowService(db.DB, email),
	}
}

// SubmitApplication обрабатывает подачу заявки на заем
func (c *LoanController) SubmitApplication(ctx *gin.Context) {
	start := time.Now()

	var dto services.LoanApplicationDTO
	if err := ctx.ShouldBindJSON(&dto); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "неверное тело запроса"})
		return
	}

	summary, err := c.loanService.SubmitApplication(dto)
	utils.LogOperation("submitApplication", start, err)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, summary)
}

// ListPending возвращает займы на рассмотрении
func (c *LoanController) ListPending(ctx *gin.Context) {
	loans, err := c.loanService.ListPending()
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, loans)
}

// GetLoan возвращает заем по ID
func (c *LoanController) GetLoan(ctx *gin.Context) {
	id, err := parseID(ctx, "id")
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "неверный ID займа"})
		return
	}

	loan, err := c.loanService.GetLoan(id)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, loan)
}

// GetLoanByCode возвращает заем по его коду
func (c *LoanController) GetLoanByCode(ctx *gin.Context) {
	loan, err := c.loanService.GetLoanByCode(ctx.Param("codigo"))
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, loan)
}

// UpdateCharges обновляет условия займа и административные сборы
func (c *LoanController) UpdateCharges(ctx *gin.Context) {
	id, err := parseID(ctx, "id")
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "неверный ID займа"})
		return
	}

	var dto services.UpdateChargesDTO
	if err := ctx.ShouldBindJSON(&dto); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "неверное тело запроса"})
		return
	}
	dto.LoanID = id

	result, err := c.loanService.UpdateChargesAndAmount(dto)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, result)
}

// Approve одобряет заем
func (c *LoanController) Approve(ctx *gin.Context) {
	id, err := parseID(ctx, "id")
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "неверный ID займа"})
		return
	}

	start := time.Now()
	loan, err := c.workflowService.Approve(id)
	utils.LogOperation("approveLoan", start, err)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, loan)
}

// Deny отклоняет заем
func (c *LoanController) Deny(ctx *gin.Context) {
	id, err := parseID(ctx, "id")
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "неверный ID займа"})
		return
	}

	start := time.Now()
	loan, err := c.workflowService.Deny(id)
	utils.LogOperation("denyLoan", start, err)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, loan)
}

// parseID извлекает числовой идентификатор из параметра маршрута
func parseID(ctx *gin.Context, name string) (uint, error) {
	id, err := strconv.ParseUint(ctx.Param(name), 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}
