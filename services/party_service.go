package services

import (
	"errors"
	"time"

	"loanProject/models"

	"gorm.io/gorm"
)

// dateLayout - формат дат во входящих запросах
const dateLayout = "2006-01-02"

func parseDate(value string) (time.Time, error) {
	return time.Parse(dateLayout, value)
}

// ApplicantDTO представляет личные данные заявителя
type ApplicantDTO struct {
	CUI           string `json:"cui" validate:"required,min=8,max=20"`
	Gender        string `json:"genero"`
	BirthDate     string `json:"fecha_nacimiento" validate:"required,datetime=2006-01-02"`
	CivilStatus   string `json:"estado_civil" validate:"required"`
	Nationality   string `json:"nacionalidad" validate:"required"`
	FirstName     string `json:"primer_nombre" validate:"required"`
	SecondName    string `json:"segundo_nombre"`
	ThirdName     string `json:"tercer_nombre"`
	FirstSurname  string `json:"primer_apellido" validate:"required"`
	SecondSurname string `json:"segundo_apellido"`
	MarriedName   string `json:"apellido_casada"`
	Occupation    string `json:"ocupacion" validate:"required"`
}

// PartyService предоставляет методы для работы с заемщиками и родами занятий
type PartyService struct {
	db *gorm.DB
}

// NewPartyService создает новый экземпляр PartyService
func NewPartyService(db *gorm.DB) *PartyService {
	return &PartyService{db: db}
}

// FindOrCreateOccupation ищет род занятий по точному имени и создает его,
// если записи еще нет. Выполняется внутри переданной транзакции, чтобы
// создание было атомарным вместе с остальной заявкой.
func (s *PartyService) FindOrCreateOccupation(tx *gorm.DB, name string) (*models.Occupation, error) {
	var occupation models.Occupation
	err := tx.Where("nombre_ocupacion = ?", name).
		Attrs(models.Occupation{Name: name}).
		FirstOrCreate(&occupation).Error
	if err != nil {
		return nil, err
	}
	return &occupation, nil
}

// FindOrCreateBorrower ищет заемщика по CUI и создает его, если записи нет.
// Новому заемщику присваивается клиентский код U-<последние 4 знака CUI>
// и роль клиента.
func (s *PartyService) FindOrCreateBorrower(tx *gorm.DB, applicant ApplicantDTO, occupationID uint) (*models.Borrower, error) {
	var borrower models.Borrower
	err := tx.Where("cui = ?", applicant.CUI).First(&borrower).Error
	if err == nil {
		return &borrower, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	birthDate, err := parseDate(applicant.BirthDate)
	if err != nil {
		return nil, err
	}

	borrower = models.Borrower{
		ClientCode:    "U-" + applicant.CUI[len(applicant.CUI)-4:],
		RoleID:        models.RoleCustomer,
		Gender:        applicant.Gender,
		CUI:           applicant.CUI,
		BirthDate:     birthDate,
		CivilStatus:   applicant.CivilStatus,
		Nationality:   applicant.Nationality,
		FirstName:     applicant.FirstName,
		SecondName:    applicant.SecondName,
		ThirdName:     applicant.ThirdName,
		FirstSurname:  applicant.FirstSurname,
		SecondSurname: applicant.SecondSurname,
		MarriedName:   applicant.MarriedName,
		OccupationID:  occupationID,
	}
	if err := tx.Create(&borrower).Error; err != nil {
		return nil, err
	}
	return &borrower, nil
}
