package services

import (
	"testing"
	"time"

	"loanProject/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// seedLoanWithSchedule создает заем и график из заданного числа взносов
func seedLoanWithSchedule(t *testing.T, db *gorm.DB, installments int) (*ApplicationSummaryDTO, []models.FuturePayment) {
	t.Helper()

	summary := seedPricedLoan(t, db)

	schedule := make([]models.FuturePayment, installments)
	for i := range schedule {
		schedule[i] = models.FuturePayment{
			LoanID:  summary.LoanID,
			DueDate: time.Date(2024, time.Month(i+1), 15, 0, 0, 0, 0, time.UTC),
			Amount:  200,
			State:   models.FuturePaymentPending,
		}
		require.NoError(t, db.Create(&schedule[i]).Error)
	}
	return summary, schedule
}

func TestCorrelativesAreSequential(t *testing.T) {
	db := newTestDB(t)
	service := NewPaymentService(db, nil)

	summary, schedule := seedLoanWithSchedule(t, db, 2)

	first, err := service.SubmitReceipt(ReceiptDTO{
		LoanCode:        summary.LoanCode,
		TransactionCode: "TX-001",
		AmountPaid:      200,
	})
	require.NoError(t, err)

	// Второй платеж подается по конкретному взносу, нумерация общая
	second, err := service.SubmitInstallmentReceipt(InstallmentReceiptDTO{
		FuturePaymentID: schedule[0].ID,
		PaymentDate:     "2024-01-14",
		AmountPaid:      200,
		TransactionCode: "TX-002",
	})
	require.NoError(t, err)

	var receipts []models.RealizedPayment
	require.NoError(t, db.Order("pago_realizado_id ASC").Find(&receipts).Error)
	require.Len(t, receipts, 2)
	assert.Equal(t, "PAGO-1", receipts[0].Correlative)
	assert.Equal(t, "PAGO-2", receipts[1].Correlative)
	assert.Equal(t, first.RealizedPaymentID, receipts[0].ID)
	assert.Equal(t, second.RealizedPaymentID, receipts[1].ID)

	// Оба документа созданы в статусе pendiente
	assert.Equal(t, models.ReceiptPending, receipts[0].State)
	assert.Equal(t, models.ReceiptPending, receipts[1].State)

	// У платежа по взносу записана дата оплаты
	require.NotNil(t, receipts[1].PaymentDate)
	assert.Equal(t, "2024-01-14", receipts[1].PaymentDate.Format("2006-01-02"))

	// Сам взнос при регистрации документа не отмечается оплаченным
	var installment models.FuturePayment
	require.NoError(t, db.First(&installment, schedule[0].ID).Error)
	assert.Equal(t, models.FuturePaymentPending, installment.State)
}

func TestSubmitReceiptLoanNotFound(t *testing.T) {
	db := newTestDB(t)
	service := NewPaymentService(db, nil)

	_, err := service.SubmitReceipt(ReceiptDTO{
		LoanCode:        "P-9-9999",
		TransactionCode: "TX-404",
		AmountPaid:      100,
	})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSubmitInstallmentReceiptNotFound(t *testing.T) {
	db := newTestDB(t)
	service := NewPaymentService(db, nil)

	_, err := service.SubmitInstallmentReceipt(InstallmentReceiptDTO{
		FuturePaymentID: 55,
		PaymentDate:     "2024-01-14",
		AmountPaid:      100,
		TransactionCode: "TX-404",
	})
	assert.ErrorIs(t, err, ErrFuturePaymentNotFound)
}

func TestApproveReceiptRequiresPending(t *testing.T) {
	db := newTestDB(t)
	service := NewPaymentService(db, nil)

	summary, _ := seedLoanWithSchedule(t, db, 1)

	receipt, err := service.SubmitReceipt(ReceiptDTO{
		LoanCode:        summary.LoanCode,
		TransactionCode: "TX-010",
		AmountPaid:      200,
	})
	require.NoError(t, err)

	_, err = service.ApproveReceipt(receipt.RealizedPaymentID)
	require.NoError(t, err)

	// Повторное подтверждение уже проверенного платежа отклоняется
	_, err = service.ApproveReceipt(receipt.RealizedPaymentID)
	assert.ErrorIs(t, err, ErrInvalidState)

	_, err = service.DenyReceipt(receipt.RealizedPaymentID)
	assert.ErrorIs(t, err, ErrInvalidState)
}

func TestDenyReceiptSetsDenegado(t *testing.T) {
	db := newTestDB(t)
	service := NewPaymentService(db, nil)

	summary, _ := seedLoanWithSchedule(t, db, 1)

	receipt, err := service.SubmitReceipt(ReceiptDTO{
		LoanCode:        summary.LoanCode,
		TransactionCode: "TX-011",
		AmountPaid:      200,
	})
	require.NoError(t, err)

	_, err = service.DenyReceipt(receipt.RealizedPaymentID)
	require.NoError(t, err)

	var stored models.RealizedPayment
	require.NoError(t, db.First(&stored, receipt.RealizedPaymentID).Error)
	assert.Equal(t, models.ReceiptDenied, stored.State)
}

func TestReviewReceiptRejectHasNoCascade(t *testing.T) {
	db := newTestDB(t)
	service := NewPaymentService(db, nil)

	summary, _ := seedLoanWithSchedule(t, db, 1)

	receipt, err := service.SubmitReceipt(ReceiptDTO{
		LoanCode:        summary.LoanCode,
		TransactionCode: "TX-020",
		AmountPaid:      200,
	})
	require.NoError(t, err)

	message, err := service.ReviewReceipt(receipt.RealizedPaymentID, false)
	require.NoError(t, err)
	assert.NotEmpty(t, message)

	var stored models.RealizedPayment
	require.NoError(t, db.First(&stored, receipt.RealizedPaymentID).Error)
	assert.Equal(t, models.ReceiptRejected, stored.State)

	var loan models.Loan
	require.NoError(t, db.First(&loan, summary.LoanID).Error)
	assert.Equal(t, models.LoanStatusPending, loan.Status)
}

func TestReviewReceiptAutoApprovesLoan(t *testing.T) {
	db := newTestDB(t)
	service := NewPaymentService(db, nil)

	summary, schedule := seedLoanWithSchedule(t, db, 2)

	receipt, err := service.SubmitReceipt(ReceiptDTO{
		LoanCode:        summary.LoanCode,
		TransactionCode: "TX-030",
		AmountPaid:      200,
	})
	require.NoError(t, err)

	// Пока остаются взносы в статусе pendiente, заем не меняет статус
	_, err = service.ReviewReceipt(receipt.RealizedPaymentID, true)
	require.NoError(t, err)

	var loan models.Loan
	require.NoError(t, db.First(&loan, summary.LoanID).Error)
	assert.Equal(t, models.LoanStatusPending, loan.Status)

	// Оплачиваем весь график и проверяем следующий документ
	for i := range schedule {
		require.NoError(t, db.Model(&schedule[i]).Update("estado", models.FuturePaymentPaid).Error)
	}

	receipt, err = service.SubmitReceipt(ReceiptDTO{
		LoanCode:        summary.LoanCode,
		TransactionCode: "TX-031",
		AmountPaid:      200,
	})
	require.NoError(t, err)

	_, err = service.ReviewReceipt(receipt.RealizedPaymentID, true)
	require.NoError(t, err)

	require.NoError(t, db.First(&loan, summary.LoanID).Error)
	assert.Equal(t, models.LoanStatusApproved, loan.Status)
}

func TestReviewReceiptNotFound(t *testing.T) {
	db := newTestDB(t)
	service := NewPaymentService(db, nil)

	_, err := service.ReviewReceipt(123, true)
	assert.ErrorIs(t, err, ErrReceiptNotFound)
}

func TestGetLoanDetail(t *testing.T) {
	db := newTestDB(t)
	service := NewPaymentService(db, nil)

	summary, schedule := seedLoanWithSchedule(t, db, 3)

	_, err := service.SubmitReceipt(ReceiptDTO{
		LoanCode:        summary.LoanCode,
		TransactionCode: "TX-040",
		AmountPaid:      200,
	})
	require.NoError(t, err)

	detail, err := service.GetLoanDetail(summary.LoanCode)
	require.NoError(t, err)

	assert.Equal(t, summary.LoanID, detail.LoanID)
	assert.Len(t, detail.RealizedPayments, 1)
	assert.Len(t, detail.FuturePayments, 3)

	// Итог ближайшего платежа считается без процентов: 1000 + 10 + 5
	assert.InDelta(t, 1015, detail.NextPayment.TotalDue, 1e-9)
	require.NotNil(t, detail.NextPayment.DueDate)
	assert.Equal(t, schedule[0].DueDate.Format("2006-01-02"), detail.NextPayment.DueDate.Format("2006-01-02"))
}

func TestGetLoanDetailNotFound(t *testing.T) {
	db := newTestDB(t)
	service := NewPaymentService(db, nil)

	_, err := service.GetLoanDetail("P-0-0")
	assert.ErrorIs(t, err, ErrLoanNotFound)
}
