package services

import (
	"errors"
	"fmt"
	"log"

	"loanProject/models"
	"loanProject/utils"

	"gorm.io/gorm"
)

// WorkflowService применяет переходы статусов займа.
// Разрешенные переходы: на рассмотрении -> одобрен | отклонен.
// Конечные статусы повторно не меняются.
type WorkflowService struct {
	db    *gorm.DB
	email *EmailService
}

// NewWorkflowService создает новый экземпляр WorkflowService
func NewWorkflowService(db *gorm.DB, email *EmailService) *WorkflowService {
	return &WorkflowService{
		db:    db,
		email: email,
	}
}

// Approve одобряет заем и пересчитывает итог по формуле одобрения:
// (сумма + НДС + административный сбор) * (1 + процент/100).
// Формула отличается от пересчета в UpdateChargesAndAmount: здесь процент
// начисляется на сумму вместе со сборами. Оба пути пересчета сохранены
// раздельно для совместимости с исходной системой.
func (s *WorkflowService) Approve(loanID uint) (*LoanSummaryDTO, error) {
	// Начинаем транзакцию
	tx := s.db.Begin()
	if tx.Error != nil {
		return nil, fmt.Errorf("ошибка при начале транзакции: %w", tx.Error)
	}

	// Получаем заем с блокировкой строки
	var loan models.Loan
	if err := lockForUpdate(tx).First(&loan, loanID).Error; err != nil {
		tx.Rollback()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrLoanNotFound
		}
		return nil, err
	}

	// Конечный статус повторно не меняем
	if loan.Status.Terminal() {
		tx.Rollback()
		return nil, ErrLoanTerminal
	}

	// Получаем административные сборы
	var charges models.AdminCharges
	if err := tx.Where("prestamo_id = ?", loan.ID).First(&charges).Error; err != nil {
		tx.Rollback()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrChargesNotFound
		}
		return nil, err
	}

	// Одобряем заем и пересчитываем итог
	loan.Status = models.LoanStatusApproved
	total := loan.RequestedAmount + charges.VAT + charges.AdminFee
	total += total * (loan.InterestPercent / 100)
	charges.Total = total

	if err := tx.Save(&loan).Error; err != nil {
		tx.Rollback()
		return nil, fmt.Errorf("ошибка при обновлении займа: %w", err)
	}
	if err := tx.Save(&charges).Error; err != nil {
		tx.Rollback()
		return nil, fmt.Errorf("ошибка при обновлении сборов: %w", err)
	}

	// Подтверждаем транзакцию
	if err := tx.Commit().Error; err != nil {
		return nil, fmt.Errorf("ошибка при подтверждении транзакции: %w", err)
	}

	utils.GetMetrics().RecordLoanDecision(true)
	s.notifyDecision(&loan, "одобрен")

	return toLoanSummary(&loan), nil
}

// Deny отклоняет заем. Сборы не пересчитываются.
func (s *WorkflowService) Deny(loanID uint) (*LoanSummaryDTO, error) {
	// Начинаем транзакцию
	tx := s.db.Begin()
	if tx.Error != nil {
		return nil, fmt.Errorf("ошибка при начале транзакции: %w", tx.Error)
	}

	// Получаем заем с блокировкой строки
	var loan models.Loan
	if err := lockForUpdate(tx).First(&loan, loanID).Error; err != nil {
		tx.Rollback()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrLoanNotFound
		}
		return nil, err
	}

	// Конечный статус повторно не меняем
	if loan.Status.Terminal() {
		tx.Rollback()
		return nil, ErrLoanTerminal
	}

	loan.Status = models.LoanStatusDenied
	if err := tx.Save(&loan).Error; err != nil {
		tx.Rollback()
		return nil, fmt.Errorf("ошибка при обновлении займа: %w", err)
	}

	// Подтверждаем транзакцию
	if err := tx.Commit().Error; err != nil {
		return nil, fmt.Errorf("ошибка при подтверждении транзакции: %w", err)
	}

	utils.GetMetrics().RecordLoanDecision(false)
	s.notifyDecision(&loan, "отклонен")

	return toLoanSummary(&loan), nil
}

// EvaluateAutoApproval проверяет условие автоматического одобрения после
// изменения статуса платежа: если заем еще на рассмотрении и по нему не
// осталось запланированных платежей в статусе pendiente, заем переводится
// в статус "одобрен". Итог при этом не пересчитывается. Выполняется внутри
// транзакции вызывающей стороны.
func (s *WorkflowService) EvaluateAutoApproval(tx *gorm.DB, loanID uint) (bool, error) {
	var loan models.Loan
	if err := lockForUpdate(tx).First(&loan, loanID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, ErrLoanNotFound
		}
		return false, err
	}
	if loan.Status != models.LoanStatusPending {
		return false, nil
	}

	var remaining int64
	err := tx.Model(&models.FuturePayment{}).
		Where("prestamo_id = ? AND estado = ?", loan.ID, models.FuturePaymentPending).
		Count(&remaining).Error
	if err != nil {
		return false, err
	}
	if remaining > 0 {
		return false, nil
	}

	loan.Status = models.LoanStatusApproved
	if err := tx.Save(&loan).Error; err != nil {
		return false, err
	}
	return true, nil
}

// notifyDecision отправляет уведомление о решении по займу.
// Ошибка отправки логируется и не прерывает операцию.
func (s *WorkflowService) notifyDecision(loan *models.Loan, decision string) {
	if s.email == nil {
		return
	}
	if err := s.email.SendLoanDecisionNotification(loan.Code, decision); err != nil {
		log.Printf("Ошибка при отправке уведомления о решении по займу %s: %v", loan.Code, err)
	}
}
