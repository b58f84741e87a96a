package services

import (
	"testing"

	"loanProject/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// seedPricedLoan создает заем с условиями: сумма 1000, процент 10,
// НДС 10, административный сбор 5
func seedPricedLoan(t *testing.T, db *gorm.DB) *ApplicationSummaryDTO {
	t.Helper()

	loanService := NewLoanService(db)
	summary, err := loanService.SubmitApplication(validApplication("1234567890123", 1000))
	require.NoError(t, err)

	_, err = loanService.UpdateChargesAndAmount(UpdateChargesDTO{
		LoanID:          summary.LoanID,
		InterestPercent: 10,
		RequestedAmount: 1000,
		VAT:             10,
		AdminFee:        5,
	})
	require.NoError(t, err)
	return summary
}

func TestApproveRecomputesTotal(t *testing.T) {
	db := newTestDB(t)
	service := NewWorkflowService(db, nil)

	summary := seedPricedLoan(t, db)

	loan, err := service.Approve(summary.LoanID)
	require.NoError(t, err)
	assert.Equal(t, models.LoanStatusApproved, loan.Status)

	// Формула одобрения: (1000 + 10 + 5) * 1.10
	var charges models.AdminCharges
	require.NoError(t, db.Where("prestamo_id = ?", summary.LoanID).First(&charges).Error)
	assert.InDelta(t, 1116.5, charges.Total, 1e-9)
}

func TestApproveLoanNotFound(t *testing.T) {
	db := newTestDB(t)
	service := NewWorkflowService(db, nil)

	_, err := service.Approve(77)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestApproveWithoutCharges(t *testing.T) {
	db := newTestDB(t)
	service := NewWorkflowService(db, nil)

	summary := seedPricedLoan(t, db)
	require.NoError(t, db.Where("prestamo_id = ?", summary.LoanID).Delete(&models.AdminCharges{}).Error)

	_, err := service.Approve(summary.LoanID)
	assert.ErrorIs(t, err, ErrChargesNotFound)
}

func TestTerminalLoanIsNotRevisited(t *testing.T) {
	db := newTestDB(t)
	service := NewWorkflowService(db, nil)

	summary := seedPricedLoan(t, db)

	_, err := service.Deny(summary.LoanID)
	require.NoError(t, err)

	// Повторное решение по займу в конечном статусе отклоняется
	_, err = service.Deny(summary.LoanID)
	assert.ErrorIs(t, err, ErrInvalidState)

	_, err = service.Approve(summary.LoanID)
	assert.ErrorIs(t, err, ErrInvalidState)

	// Сборы после отказа не пересчитаны
	var charges models.AdminCharges
	require.NoError(t, db.Where("prestamo_id = ?", summary.LoanID).First(&charges).Error)
	assert.InDelta(t, 1115, charges.Total, 1e-9)
}

func TestEvaluateAutoApproval(t *testing.T) {
	db := newTestDB(t)
	service := NewWorkflowService(db, nil)

	summary := seedPricedLoan(t, db)

	// Пока есть взносы в статусе pendiente, заем не одобряется
	future := models.FuturePayment{LoanID: summary.LoanID, Amount: 200, State: models.FuturePaymentPending}
	require.NoError(t, db.Create(&future).Error)

	promoted, err := service.EvaluateAutoApproval(db, summary.LoanID)
	require.NoError(t, err)
	assert.False(t, promoted)

	// После оплаты всех взносов заем одобряется автоматически
	require.NoError(t, db.Model(&future).Update("estado", models.FuturePaymentPaid).Error)

	promoted, err = service.EvaluateAutoApproval(db, summary.LoanID)
	require.NoError(t, err)
	assert.True(t, promoted)

	var loan models.Loan
	require.NoError(t, db.First(&loan, summary.LoanID).Error)
	assert.Equal(t, models.LoanStatusApproved, loan.Status)

	// Повторная проверка для уже одобренного займа ничего не меняет
	promoted, err = service.EvaluateAutoApproval(db, summary.LoanID)
	require.NoError(t, err)
	assert.False(t, promoted)
}
