package services

import (
	"errors"
	"fmt"
	"log"
	"time"

	"loanProject/models"
	"loanProject/utils"

	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"
)

// ReceiptDTO представляет платежный документ без привязки к взносу
type ReceiptDTO struct {
	LoanCode        string  `json:"codigo_prestamo" validate:"required"`
	TransactionCode string  `json:"codigo_transaccion" validate:"required"`
	AmountPaid      float64 `json:"monto_pagado" validate:"required,gt=0"`
}

// InstallmentReceiptDTO представляет платежный документ по конкретному взносу
type InstallmentReceiptDTO struct {
	FuturePaymentID uint    `json:"-" validate:"required"`
	PaymentDate     string  `json:"fecha_pago" validate:"required,datetime=2006-01-02"`
	AmountPaid      float64 `json:"monto_pagado" validate:"required,gt=0"`
	TransactionCode string  `json:"codigo_transaccion" validate:"required"`
}

// ReceiptResultDTO представляет результат регистрации или проверки платежа
type ReceiptResultDTO struct {
	RealizedPaymentID uint `json:"pago_realizado_id"`
}

// NextPaymentDTO представляет ближайший платеж по графику
type NextPaymentDTO struct {
	// Итог без процентов: сумма + НДС + административный сбор.
	// Так считала исходная система, расхождение с итогом займа сохранено.
	TotalDue float64    `json:"total_pago"`
	DueDate  *time.Time `json:"fecha_pago"`
}

// LoanDetailDTO представляет заем вместе с историей и графиком платежей
type LoanDetailDTO struct {
	LoanID           uint                     `json:"prestamo_id"`
	Code             string                   `json:"codigo_prestamo"`
	Status           models.LoanStatus        `json:"prestamo_estatus_id"`
	RequestedAmount  float64                  `json:"monto_solicitado"`
	InstallmentCount int                      `json:"cuotas_pactadas"`
	InterestPercent  float64                  `json:"porcentaje_interes"`
	RealizedPayments []models.RealizedPayment `json:"pagos_realizados"`
	FuturePayments   []models.FuturePayment   `json:"pagos_futuros"`
	NextPayment      NextPaymentDTO           `json:"proximo_pago"`
}

// PaymentService предоставляет методы для регистрации и проверки платежей
type PaymentService struct {
	db        *gorm.DB
	validator *validator.Validate
	email     *EmailService
	workflow  *WorkflowService
}

// NewPaymentService создает новый экземпляр PaymentService
func NewPaymentService(db *gorm.DB, email *EmailService) *PaymentService {
	return &PaymentService{
		db:        db,
		validator: validator.New(),
		email:     email,
		workflow:  NewWorkflowService(db, email),
	}
}

// GetLoanDetail возвращает заем по коду вместе с платежной историей,
// графиком взносов и ближайшим платежом
func (s *PaymentService) GetLoanDetail(code string) (*LoanDetailDTO, error) {
	// Получаем заем по коду
	var loan models.Loan
	if err := s.db.Where("codigo_prestamo = ?", code).First(&loan).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrLoanNotFound
		}
		return nil, err
	}

	// Собираем платежную историю
	var realized []models.RealizedPayment
	if err := s.db.Where("prestamo_id = ?", loan.ID).
		Order("pago_realizado_id ASC").
		Find(&realized).Error; err != nil {
		return nil, err
	}

	// Собираем график взносов в порядке записи
	var future []models.FuturePayment
	if err := s.db.Where("prestamo_id = ?", loan.ID).
		Order("pago_id ASC").
		Find(&future).Error; err != nil {
		return nil, err
	}

	// Итог ближайшего платежа берется из текущих сборов
	var charges models.AdminCharges
	if err := s.db.Where("prestamo_id = ?", loan.ID).First(&charges).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrChargesNotFound
		}
		return nil, err
	}

	nextPayment := NextPaymentDTO{
		TotalDue: loan.RequestedAmount + charges.VAT + charges.AdminFee,
	}
	if len(future) > 0 {
		nextPayment.DueDate = &future[0].DueDate
	}

	return &LoanDetailDTO{
		LoanID:           loan.ID,
		Code:             loan.Code,
		Status:           loan.Status,
		RequestedAmount:  loan.RequestedAmount,
		InstallmentCount: loan.InstallmentCount,
		InterestPercent:  loan.InterestPercent,
		RealizedPayments: realized,
		FuturePayments:   future,
		NextPayment:      nextPayment,
	}, nil
}

// nextCorrelative выдает следующий человекочитаемый номер платежа PAGO-{n}.
// Номер считается от максимального существующего ID, поэтому строго растет
// и не переиспользуется.
func (s *PaymentService) nextCorrelative(tx *gorm.DB) (string, error) {
	var last models.RealizedPayment
	err := tx.Order("pago_realizado_id DESC").First(&last).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "PAGO-1", nil
		}
		return "", err
	}
	return fmt.Sprintf("PAGO-%d", last.ID+1), nil
}

// SubmitReceipt регистрирует платежный документ по коду займа.
// Документ создается в статусе pendiente без привязки к конкретному взносу.
func (s *PaymentService) SubmitReceipt(dto ReceiptDTO) (*ReceiptResultDTO, error) {
	// Валидируем DTO
	if err := s.validator.Struct(dto); err != nil {
		return nil, translateValidationErrors(err)
	}

	// Начинаем транзакцию
	tx := s.db.Begin()
	if tx.Error != nil {
		return nil, fmt.Errorf("ошибка при начале транзакции: %w", tx.Error)
	}

	// Получаем заем по коду
	var loan models.Loan
	if err := tx.Where("codigo_prestamo = ?", dto.LoanCode).First(&loan).Error; err != nil {
		tx.Rollback()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrLoanNotFound
		}
		return nil, err
	}

	receipt, err := s.createReceipt(tx, loan.ID, dto.AmountPaid, dto.TransactionCode, nil)
	if err != nil {
		tx.Rollback()
		return nil, err
	}

	// Подтверждаем транзакцию
	if err := tx.Commit().Error; err != nil {
		return nil, fmt.Errorf("ошибка при подтверждении транзакции: %w", err)
	}

	utils.GetMetrics().RecordReceiptSubmitted()
	return &ReceiptResultDTO{RealizedPaymentID: receipt.ID}, nil
}

// SubmitInstallmentReceipt регистрирует платежный документ по конкретному
// взносу из графика. Сам взнос при этом остается в статусе pendiente:
// график сверяется только при проверке документа.
func (s *PaymentService) SubmitInstallmentReceipt(dto InstallmentReceiptDTO) (*ReceiptResultDTO, error) {
	// Валидируем DTO
	if err := s.validator.Struct(dto); err != nil {
		return nil, translateValidationErrors(err)
	}

	paymentDate, err := parseDate(dto.PaymentDate)
	if err != nil {
		return nil, fmt.Errorf("%w: неверная дата платежа", ErrValidation)
	}

	// Начинаем транзакцию
	tx := s.db.Begin()
	if tx.Error != nil {
		return nil, fmt.Errorf("ошибка при начале транзакции: %w", tx.Error)
	}

	// Получаем взнос и выводим из него заем
	var installment models.FuturePayment
	if err := tx.First(&installment, dto.FuturePaymentID).Error; err != nil {
		tx.Rollback()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrFuturePaymentNotFound
		}
		return nil, err
	}

	receipt, err := s.createReceipt(tx, installment.LoanID, dto.AmountPaid, dto.TransactionCode, &paymentDate)
	if err != nil {
		tx.Rollback()
		return nil, err
	}

	// Подтверждаем транзакцию
	if err := tx.Commit().Error; err != nil {
		return nil, fmt.Errorf("ошибка при подтверждении транзакции: %w", err)
	}

	utils.GetMetrics().RecordReceiptSubmitted()
	return &ReceiptResultDTO{RealizedPaymentID: receipt.ID}, nil
}

// createReceipt создает платежный документ со следующим корреляционным номером
func (s *PaymentService) createReceipt(tx *gorm.DB, loanID uint, amount float64, transactionCode string, paymentDate *time.Time) (*models.RealizedPayment, error) {
	correlative, err := s.nextCorrelative(tx)
	if err != nil {
		return nil, fmt.Errorf("ошибка при вычислении корреляционного номера: %w", err)
	}

	receipt := models.RealizedPayment{
		LoanID:          loanID,
		CreatedAt:       time.Now(),
		PaymentDate:     paymentDate,
		AmountPaid:      amount,
		Correlative:     correlative,
		State:           models.ReceiptPending,
		TransactionCode: transactionCode,
	}
	if err := tx.Create(&receipt).Error; err != nil {
		return nil, fmt.Errorf("ошибка при создании платежа: %w", err)
	}
	return &receipt, nil
}

// transitionReceipt переводит платежный документ в новый статус.
// Единая точка перехода для обоих внешних путей проверки.
func (s *PaymentService) transitionReceipt(tx *gorm.DB, receipt *models.RealizedPayment, to models.ReceiptState, requirePending bool) error {
	if requirePending && receipt.State != models.ReceiptPending {
		return ErrReceiptNotPending
	}
	receipt.State = to
	if err := tx.Save(receipt).Error; err != nil {
		return fmt.Errorf("ошибка при обновлении платежа: %w", err)
	}
	return nil
}

// ReviewReceipt проверяет платежный документ. При подтверждении документ
// переводится в статус aprobado и проверяется условие автоматического
// одобрения займа; при отказе документ получает статус rechazado.
func (s *PaymentService) ReviewReceipt(id uint, approved bool) (string, error) {
	// Начинаем транзакцию
	tx := s.db.Begin()
	if tx.Error != nil {
		return "", fmt.Errorf("ошибка при начале транзакции: %w", tx.Error)
	}

	// Получаем платеж с блокировкой строки
	var receipt models.RealizedPayment
	if err := lockForUpdate(tx).First(&receipt, id).Error; err != nil {
		tx.Rollback()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrReceiptNotFound
		}
		return "", err
	}

	promoted := false
	if approved {
		if err := s.transitionReceipt(tx, &receipt, models.ReceiptApproved, false); err != nil {
			tx.Rollback()
			return "", err
		}

		// После подтверждения проверяем условие автоматического одобрения
		var err error
		promoted, err = s.workflow.EvaluateAutoApproval(tx, receipt.LoanID)
		if err != nil {
			tx.Rollback()
			return "", err
		}
	} else {
		if err := s.transitionReceipt(tx, &receipt, models.ReceiptRejected, false); err != nil {
			tx.Rollback()
			return "", err
		}
	}

	// Подтверждаем транзакцию
	if err := tx.Commit().Error; err != nil {
		return "", fmt.Errorf("ошибка при подтверждении транзакции: %w", err)
	}

	utils.GetMetrics().RecordReceiptReviewed(approved)
	s.notifyReview(&receipt, promoted)

	if approved {
		return "платеж подтвержден", nil
	}
	return "платеж отклонен", nil
}

// ApproveReceipt подтверждает платеж в статусе pendiente.
// В отличие от ReviewReceipt автоматическое одобрение займа не проверяется.
func (s *PaymentService) ApproveReceipt(id uint) (*ReceiptResultDTO, error) {
	return s.finalizeReceipt(id, models.ReceiptApproved)
}

// DenyReceipt отклоняет платеж в статусе pendiente со статусом denegado
func (s *PaymentService) DenyReceipt(id uint) (*ReceiptResultDTO, error) {
	return s.finalizeReceipt(id, models.ReceiptDenied)
}

// finalizeReceipt переводит платеж из статуса pendiente в конечный статус
func (s *PaymentService) finalizeReceipt(id uint, to models.ReceiptState) (*ReceiptResultDTO, error) {
	// Начинаем транзакцию
	tx := s.db.Begin()
	if tx.Error != nil {
		return nil, fmt.Errorf("ошибка при начале транзакции: %w", tx.Error)
	}

	// Получаем платеж с блокировкой строки
	var receipt models.RealizedPayment
	if err := lockForUpdate(tx).First(&receipt, id).Error; err != nil {
		tx.Rollback()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReceiptNotFound
		}
		return nil, err
	}

	if err := s.transitionReceipt(tx, &receipt, to, true); err != nil {
		tx.Rollback()
		return nil, err
	}

	// Подтверждаем транзакцию
	if err := tx.Commit().Error; err != nil {
		return nil, fmt.Errorf("ошибка при подтверждении транзакции: %w", err)
	}

	utils.GetMetrics().RecordReceiptReviewed(to == models.ReceiptApproved)
	return &ReceiptResultDTO{RealizedPaymentID: receipt.ID}, nil
}

// notifyReview отправляет уведомление о результате проверки платежа.
// Ошибка отправки логируется и не прерывает операцию.
func (s *PaymentService) notifyReview(receipt *models.RealizedPayment, loanPromoted bool) {
	if s.email == nil {
		return
	}
	if err := s.email.SendReceiptReviewedNotification(receipt.Correlative, string(receipt.State)); err != nil {
		log.Printf("Ошибка при отправке уведомления о платеже %s: %v", receipt.Correlative, err)
	}
	if loanPromoted {
		if err := s.email.SendLoanDecisionNotification(fmt.Sprintf("ID %d", receipt.LoanID), "одобрен автоматически"); err != nil {
			log.Printf("Ошибка при отправке уведомления об автоматическом одобрении займа %d: %v", receipt.LoanID, err)
		}
	}
}
