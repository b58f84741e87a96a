package services

import (
	"testing"

	"loanProject/database"
	"loanProject/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB создает SQLite базу в памяти со схемой и справочниками
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	// Одно соединение, иначе каждый коннект пула получит свою базу в памяти
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, database.AutoMigrate(db))
	require.NoError(t, database.SeedLookups(db))
	return db
}

func validApplication(cui string, amount float64) LoanApplicationDTO {
	return LoanApplicationDTO{
		Applicant: ApplicantDTO{
			CUI:          cui,
			Gender:       "F",
			BirthDate:    "1990-05-04",
			CivilStatus:  "soltera",
			Nationality:  "guatemalteca",
			FirstName:    "Maria",
			FirstSurname: "Lopez",
			Occupation:   "comerciante",
		},
		Address: AddressDTO{
			BirthDepartment: "Guatemala",
			BirthTown:       "Mixco",
			Neighborhood:    "zona 1",
		},
		References: ReferencesDTO{
			Reference1: ReferenceDTO{FirstName: "Juan", FirstSurname: "Perez", Phone: "55511122"},
			Reference2: ReferenceDTO{FirstName: "Ana", FirstSurname: "Gomez", Phone: "55533344"},
		},
		Amount:       amount,
		Installments: 6,
		Purpose:      "capital de trabajo",
	}
}

func TestSubmitApplicationCreatesLoanWithZeroCharges(t *testing.T) {
	db := newTestDB(t)
	service := NewLoanService(db)

	summary, err := service.SubmitApplication(validApplication("1234567890123", 1000))
	require.NoError(t, err)

	assert.Equal(t, models.LoanStatusPending, summary.Status)
	assert.Equal(t, "P-1-1000", summary.LoanCode)
	assert.Equal(t, float64(1000), summary.RequestedAmount)
	assert.Equal(t, 6, summary.InstallmentCount)
	assert.Zero(t, summary.InterestPercent)

	var charges []models.AdminCharges
	require.NoError(t, db.Where("prestamo_id = ?", summary.LoanID).Find(&charges).Error)
	require.Len(t, charges, 1)
	assert.Zero(t, charges[0].VAT)
	assert.Zero(t, charges[0].AdminFee)
	assert.Zero(t, charges[0].Total)

	var borrower models.Borrower
	require.NoError(t, db.First(&borrower, summary.BorrowerID).Error)
	assert.Equal(t, "U-0123", borrower.ClientCode)
	assert.Equal(t, models.RoleCustomer, borrower.RoleID)
}

func TestSubmitApplicationReusesBorrower(t *testing.T) {
	db := newTestDB(t)
	service := NewLoanService(db)

	first, err := service.SubmitApplication(validApplication("1234567890123", 1000))
	require.NoError(t, err)

	second, err := service.SubmitApplication(validApplication("1234567890123", 2500))
	require.NoError(t, err)

	assert.Equal(t, first.BorrowerID, second.BorrowerID)
	assert.NotEqual(t, first.LoanID, second.LoanID)

	var borrowers int64
	require.NoError(t, db.Model(&models.Borrower{}).Count(&borrowers).Error)
	assert.EqualValues(t, 1, borrowers)

	var loans int64
	require.NoError(t, db.Model(&models.Loan{}).Count(&loans).Error)
	assert.EqualValues(t, 2, loans)
}

func TestSubmitApplicationValidation(t *testing.T) {
	db := newTestDB(t)
	service := NewLoanService(db)

	// Количество взносов вне диапазона 1..12
	dto := validApplication("1234567890123", 1000)
	dto.Installments = 13
	_, err := service.SubmitApplication(dto)
	assert.ErrorIs(t, err, ErrValidation)

	// Пустой обязательный слот рекомендации
	dto = validApplication("1234567890123", 1000)
	dto.References.Reference2 = ReferenceDTO{}
	_, err = service.SubmitApplication(dto)
	assert.ErrorIs(t, err, ErrValidation)

	// Ничего не должно быть создано
	var loans int64
	require.NoError(t, db.Model(&models.Loan{}).Count(&loans).Error)
	assert.Zero(t, loans)

	var borrowers int64
	require.NoError(t, db.Model(&models.Borrower{}).Count(&borrowers).Error)
	assert.Zero(t, borrowers)
}

func TestGetLoanNotFound(t *testing.T) {
	db := newTestDB(t)
	service := NewLoanService(db)

	_, err := service.GetLoan(42)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = service.GetLoanByCode("P-9-9999")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGetLoanByCode(t *testing.T) {
	db := newTestDB(t)
	service := NewLoanService(db)

	summary, err := service.SubmitApplication(validApplication("1234567890123", 1500))
	require.NoError(t, err)

	loan, err := service.GetLoanByCode(summary.LoanCode)
	require.NoError(t, err)
	assert.Equal(t, summary.LoanID, loan.LoanID)
	assert.Equal(t, models.LoanStatusPending, loan.Status)
}

func TestListPendingEmptyIsNotFound(t *testing.T) {
	db := newTestDB(t)
	service := NewLoanService(db)

	_, err := service.ListPending()
	assert.ErrorIs(t, err, ErrNoPendingLoans)

	_, err = service.SubmitApplication(validApplication("1234567890123", 1000))
	require.NoError(t, err)

	loans, err := service.ListPending()
	require.NoError(t, err)
	assert.Len(t, loans, 1)
}

func TestUpdateChargesAndAmountFormula(t *testing.T) {
	db := newTestDB(t)
	service := NewLoanService(db)

	summary, err := service.SubmitApplication(validApplication("1234567890123", 500))
	require.NoError(t, err)

	result, err := service.UpdateChargesAndAmount(UpdateChargesDTO{
		LoanID:          summary.LoanID,
		InterestPercent: 10,
		RequestedAmount: 1000,
		VAT:             10,
		AdminFee:        5,
	})
	require.NoError(t, err)

	// 1000 + 1000*0.10 + 10 + 5
	assert.InDelta(t, 1115, result.TotalDue, 1e-9)

	var loan models.Loan
	require.NoError(t, db.First(&loan, summary.LoanID).Error)
	assert.Equal(t, float64(1000), loan.RequestedAmount)
	assert.Equal(t, float64(10), loan.InterestPercent)
}

func TestUpdateChargesLoanNotFound(t *testing.T) {
	db := newTestDB(t)
	service := NewLoanService(db)

	_, err := service.UpdateChargesAndAmount(UpdateChargesDTO{
		LoanID:          99,
		RequestedAmount: 1000,
	})
	assert.ErrorIs(t, err, ErrNotFound)
}
