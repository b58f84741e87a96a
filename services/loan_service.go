package services

import (
	"errors"
	"fmt"

	"loanProject/models"
	"loanProject/utils"

	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ReferenceDTO представляет одну персональную рекомендацию
type ReferenceDTO struct {
	FirstName     string `json:"primer_nombre" validate:"required"`
	SecondName    string `json:"segundo_nombre"`
	ThirdName     string `json:"tercer_nombre"`
	FirstSurname  string `json:"primer_apellido" validate:"required"`
	SecondSurname string `json:"segundo_apellido"`
	Phone         string `json:"telefono" validate:"required"`
}

// ReferencesDTO представляет четыре слота рекомендаций: два обязательных
// и два необязательных
type ReferencesDTO struct {
	Reference1 ReferenceDTO  `json:"referencia1"`
	Reference2 ReferenceDTO  `json:"referencia2"`
	Reference3 *ReferenceDTO `json:"referencia3" validate:"omitempty"`
	Reference4 *ReferenceDTO `json:"referencia4" validate:"omitempty"`
}

// AddressDTO представляет адресные данные заявки
type AddressDTO struct {
	BirthDepartment string `json:"depto_nacimiento" validate:"required"`
	BirthTown       string `json:"muni_nacimiento" validate:"required"`
	Neighborhood    string `json:"vecindad" validate:"required"`
}

// LoanApplicationDTO представляет заявку на заем
type LoanApplicationDTO struct {
	Applicant    ApplicantDTO  `json:"cliente"`
	Address      AddressDTO    `json:"direccion"`
	References   ReferencesDTO `json:"referencias"`
	Amount       float64       `json:"monto_prestamo" validate:"required,gt=0"`
	Installments int           `json:"cuotas_pactadas" validate:"required,gte=1,lte=12"`
	Purpose      string        `json:"motivo_prestamo"`
}

// ApplicationSummaryDTO представляет результат подачи заявки
type ApplicationSummaryDTO struct {
	BorrowerID       uint              `json:"usuario_id"`
	LoanCode         string            `json:"codigo_prestamo"`
	LoanID           uint              `json:"prestamo_id"`
	ChargeID         uint              `json:"cargo_admin_id"`
	RequestedAmount  float64           `json:"monto_solicitado"`
	InstallmentCount int               `json:"cuotas_pactadas"`
	InterestPercent  float64           `json:"porcentaje_interes"`
	Status           models.LoanStatus `json:"prestamo_estatus_id"`
}

// LoanSummaryDTO представляет краткие сведения о займе
type LoanSummaryDTO struct {
	LoanID           uint              `json:"prestamo_id"`
	BorrowerID       uint              `json:"usuario_id"`
	Code             string            `json:"codigo_prestamo"`
	Status           models.LoanStatus `json:"prestamo_estatus_id"`
	RequestedAmount  float64           `json:"monto_solicitado"`
	InstallmentCount int               `json:"cuotas_pactadas"`
	InterestPercent  float64           `json:"porcentaje_interes"`
}

// UpdateChargesDTO представляет данные для обновления условий займа
type UpdateChargesDTO struct {
	LoanID          uint    `json:"-" validate:"required"`
	InterestPercent float64 `json:"porcentaje_interes" validate:"gte=0"`
	RequestedAmount float64 `json:"monto_solicitado" validate:"required,gt=0"`
	VAT             float64 `json:"prestamo_iva" validate:"gte=0"`
	AdminFee        float64 `json:"prestamo_cargos_administrativos" validate:"gte=0"`
}

// UpdateChargesResultDTO представляет результат обновления условий займа
type UpdateChargesResultDTO struct {
	LoanID   uint    `json:"prestamo_id"`
	TotalDue float64 `json:"total_a_pagar"`
}

// LoanService предоставляет методы для работы с займами
type LoanService struct {
	db        *gorm.DB
	validator *validator.Validate
	party     *PartyService
}

// NewLoanService создает новый экземпляр LoanService
func NewLoanService(db *gorm.DB) *LoanService {
	return &LoanService{
		db:        db,
		validator: validator.New(),
		party:     NewPartyService(db),
	}
}

// lockForUpdate добавляет блокировку строки на время транзакции.
// SQLite не поддерживает FOR UPDATE, там изоляцию обеспечивает сама БД.
func lockForUpdate(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "postgres" {
		return tx.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	return tx
}

func toLoanSummary(loan *models.Loan) *LoanSummaryDTO {
	return &LoanSummaryDTO{
		LoanID:           loan.ID,
		BorrowerID:       loan.BorrowerID,
		Code:             loan.Code,
		Status:           loan.Status,
		RequestedAmount:  loan.RequestedAmount,
		InstallmentCount: loan.InstallmentCount,
		InterestPercent:  loan.InterestPercent,
	}
}

// SubmitApplication обрабатывает заявку на заем: разрешает род занятий,
// находит или создает заемщика и в одной транзакции записывает адрес,
// рекомендации, заем и нулевые административные сборы
func (s *LoanService) SubmitApplication(dto LoanApplicationDTO) (*ApplicationSummaryDTO, error) {
	// Валидируем заявку целиком до открытия транзакции
	if err := s.validator.Struct(dto); err != nil {
		return nil, translateValidationErrors(err)
	}

	// Начинаем транзакцию
	tx := s.db.Begin()
	if tx.Error != nil {
		return nil, fmt.Errorf("ошибка при начале транзакции: %w", tx.Error)
	}

	// Разрешаем род занятий
	occupation, err := s.party.FindOrCreateOccupation(tx, dto.Applicant.Occupation)
	if err != nil {
		tx.Rollback()
		return nil, fmt.Errorf("ошибка при поиске рода занятий: %w", err)
	}

	// Находим или создаем заемщика
	borrower, err := s.party.FindOrCreateBorrower(tx, dto.Applicant, occupation.ID)
	if err != nil {
		tx.Rollback()
		return nil, fmt.Errorf("ошибка при создании заемщика: %w", err)
	}

	// Записываем адрес заявки
	address := models.Address{
		BorrowerID:      borrower.ID,
		BirthDepartment: dto.Address.BirthDepartment,
		BirthTown:       dto.Address.BirthTown,
		Neighborhood:    dto.Address.Neighborhood,
	}
	if err := tx.Create(&address).Error; err != nil {
		tx.Rollback()
		return nil, fmt.Errorf("ошибка при записи адреса: %w", err)
	}

	// Записываем рекомендации
	references := buildReferenceSet(borrower.ID, dto.References)
	if err := tx.Create(references).Error; err != nil {
		tx.Rollback()
		return nil, fmt.Errorf("ошибка при записи рекомендаций: %w", err)
	}

	// Создаем заем в статусе "на рассмотрении"
	loan := models.Loan{
		BorrowerID:       borrower.ID,
		Code:             fmt.Sprintf("P-%d-%.0f", borrower.ID, dto.Amount),
		Purpose:          dto.Purpose,
		Status:           models.LoanStatusPending,
		RequestedAmount:  dto.Amount,
		InstallmentCount: dto.Installments,
		InterestPercent:  0,
	}
	if err := tx.Create(&loan).Error; err != nil {
		tx.Rollback()
		return nil, fmt.Errorf("ошибка при создании займа: %w", err)
	}

	// Создаем административные сборы с нулевыми суммами
	charges := models.AdminCharges{
		LoanID:   loan.ID,
		VAT:      0,
		AdminFee: 0,
		Total:    0,
	}
	if err := tx.Create(&charges).Error; err != nil {
		tx.Rollback()
		return nil, fmt.Errorf("ошибка при создании административных сборов: %w", err)
	}

	// Подтверждаем транзакцию
	if err := tx.Commit().Error; err != nil {
		return nil, fmt.Errorf("ошибка при подтверждении транзакции: %w", err)
	}

	utils.GetMetrics().RecordApplication()

	return &ApplicationSummaryDTO{
		BorrowerID:       borrower.ID,
		LoanCode:         loan.Code,
		LoanID:           loan.ID,
		ChargeID:         charges.ID,
		RequestedAmount:  loan.RequestedAmount,
		InstallmentCount: loan.InstallmentCount,
		InterestPercent:  loan.InterestPercent,
		Status:           loan.Status,
	}, nil
}

// buildReferenceSet переносит слоты рекомендаций в плоскую запись
func buildReferenceSet(borrowerID uint, refs ReferencesDTO) *models.ReferenceSet {
	set := &models.ReferenceSet{
		BorrowerID: borrowerID,

		Ref1FirstName:     refs.Reference1.FirstName,
		Ref1SecondName:    refs.Reference1.SecondName,
		Ref1ThirdName:     refs.Reference1.ThirdName,
		Ref1FirstSurname:  refs.Reference1.FirstSurname,
		Ref1SecondSurname: refs.Reference1.SecondSurname,
		Ref1Phone:         refs.Reference1.Phone,

		Ref2FirstName:     refs.Reference2.FirstName,
		Ref2SecondName:    refs.Reference2.SecondName,
		Ref2ThirdName:     refs.Reference2.ThirdName,
		Ref2FirstSurname:  refs.Reference2.FirstSurname,
		Ref2SecondSurname: refs.Reference2.SecondSurname,
		Ref2Phone:         refs.Reference2.Phone,
	}
	if refs.Reference3 != nil {
		set.Ref3FirstName = refs.Reference3.FirstName
		set.Ref3SecondName = refs.Reference3.SecondName
		set.Ref3ThirdName = refs.Reference3.ThirdName
		set.Ref3FirstSurname = refs.Reference3.FirstSurname
		set.Ref3SecondSurname = refs.Reference3.SecondSurname
		set.Ref3Phone = refs.Reference3.Phone
	}
	if refs.Reference4 != nil {
		set.Ref4FirstName = refs.Reference4.FirstName
		set.Ref4SecondName = refs.Reference4.SecondName
		set.Ref4ThirdName = refs.Reference4.ThirdName
		set.Ref4FirstSurname = refs.Reference4.FirstSurname
		set.Ref4SecondSurname = refs.Reference4.SecondSurname
		set.Ref4Phone = refs.Reference4.Phone
	}
	return set
}

// GetLoan возвращает краткие сведения о займе по ID
func (s *LoanService) GetLoan(id uint) (*LoanSummaryDTO, error) {
	var loan models.Loan
	if err := s.db.First(&loan, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrLoanNotFound
		}
		return nil, err
	}
	return toLoanSummary(&loan), nil
}

// GetLoanByCode возвращает краткие сведения о займе по его коду
func (s *LoanService) GetLoanByCode(code string) (*LoanSummaryDTO, error) {
	var loan models.Loan
	if err := s.db.Where("codigo_prestamo = ?", code).First(&loan).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrLoanNotFound
		}
		return nil, err
	}
	return toLoanSummary(&loan), nil
}

// ListPending возвращает все займы на рассмотрении.
// Пустой список считается ошибкой NotFound: отсутствие заявок на проверку
// внешние потребители обрабатывают как отдельный сигнал.
func (s *LoanService) ListPending() ([]LoanSummaryDTO, error) {
	var loans []models.Loan
	if err := s.db.Where("prestamo_estatus_id = ?", models.LoanStatusPending).Find(&loans).Error; err != nil {
		return nil, err
	}
	if len(loans) == 0 {
		return nil, ErrNoPendingLoans
	}

	summaries := make([]LoanSummaryDTO, len(loans))
	for i := range loans {
		summaries[i] = *toLoanSummary(&loans[i])
	}
	return summaries, nil
}

// UpdateChargesAndAmount перезаписывает условия займа и сборы и пересчитывает
// итог по формуле: сумма + сумма*процент/100 + НДС + административный сбор.
// Статус займа намеренно не проверяется: условия можно корректировать на
// любом этапе.
func (s *LoanService) UpdateChargesAndAmount(dto UpdateChargesDTO) (*UpdateChargesResultDTO, error) {
	// Валидируем DTO
	if err := s.validator.Struct(dto); err != nil {
		return nil, translateValidationErrors(err)
	}

	// Начинаем транзакцию
	tx := s.db.Begin()
	if tx.Error != nil {
		return nil, fmt.Errorf("ошибка при начале транзакции: %w", tx.Error)
	}

	// Получаем заем с блокировкой строки
	var loan models.Loan
	if err := lockForUpdate(tx).First(&loan, dto.LoanID).Error; err != nil {
		tx.Rollback()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrLoanNotFound
		}
		return nil, err
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

	// Перезаписываем условия и пересчитываем итог
	loan.InterestPercent = dto.InterestPercent
	loan.RequestedAmount = dto.RequestedAmount
	charges.VAT = dto.VAT
	charges.AdminFee = dto.AdminFee
	charges.Total = loan.RequestedAmount +
		loan.RequestedAmount*loan.InterestPercent/100 +
		charges.VAT +
		charges.AdminFee

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

	return &UpdateChargesResultDTO{
		LoanID:   loan.ID,
		TotalDue: charges.Total,
	}, nil
}
