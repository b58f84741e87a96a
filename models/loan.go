package models

// LoanStatus представляет статус займа.
// Числовые значения совпадают со справочником prestamo_estatus
// и сохранены для совместимости с внешними потребителями.
type LoanStatus int

const (
	LoanStatusApproved LoanStatus = 1 // Одобрен
	LoanStatusPending  LoanStatus = 2 // На рассмотрении
	LoanStatusDenied   LoanStatus = 3 // Отклонен
)

// Terminal сообщает, является ли статус конечным
func (s LoanStatus) Terminal() bool {
	return s == LoanStatusApproved || s == LoanStatusDenied
}

// Loan представляет заем
type Loan struct {
	ID               uint              `gorm:"column:prestamo_id;primaryKey;autoIncrement" json:"prestamo_id"`
	BorrowerID       uint              `gorm:"column:usuario_id;not null;index" json:"usuario_id"`
	Borrower         Borrower          `gorm:"foreignKey:BorrowerID" json:"-"`
	Code             string            `gorm:"column:codigo_prestamo;size:50;index" json:"codigo_prestamo"`
	Purpose          string            `gorm:"column:motivo_prestamo;type:text" json:"motivo_prestamo"`
	Status           LoanStatus        `gorm:"column:prestamo_estatus_id;not null;index" json:"prestamo_estatus_id"`
	RequestedAmount  float64           `gorm:"column:monto_solicitado;not null" json:"monto_solicitado"`
	InstallmentCount int               `gorm:"column:cuotas_pactadas;not null" json:"cuotas_pactadas"`
	InterestPercent  float64           `gorm:"column:porcentaje_interes;not null;default:0" json:"porcentaje_interes"`
	AdminCharges     []AdminCharges    `gorm:"foreignKey:LoanID" json:"-"`
	RealizedPayments []RealizedPayment `gorm:"foreignKey:LoanID" json:"-"`
	FuturePayments   []FuturePayment   `gorm:"foreignKey:LoanID" json:"-"`
}

// TableName возвращает имя таблицы для модели Loan
func (Loan) TableName() string {
	return "prestamo"
}

// LoanStatusRecord представляет строку справочника статусов займа
type LoanStatusRecord struct {
	ID          uint   `gorm:"column:estatus_id;primaryKey;autoIncrement" json:"estatus_id"`
	Description string `gorm:"column:descripcion;size:100" json:"descripcion"`
}

func (LoanStatusRecord) TableName() string {
	return "prestamo_estatus"
}
