package models

// AdminCharges представляет административные сборы по займу.
// Ровно одна запись на заем, создается вместе с ним с нулевыми суммами.
type AdminCharges struct {
	ID       uint    `gorm:"column:cargos_id;primaryKey;autoIncrement" json:"cargos_id"`
	LoanID   uint    `gorm:"column:prestamo_id;not null;index" json:"prestamo_id"`
	VAT      float64 `gorm:"column:prestamo_iva;not null;default:0" json:"prestamo_iva"`
	AdminFee float64 `gorm:"column:prestamo_cargos_administrativos;not null;default:0" json:"prestamo_cargos_administrativos"`
	Total    float64 `gorm:"column:prestamo_total;not null;default:0" json:"prestamo_total"`
}

// TableName возвращает имя таблицы для модели AdminCharges
func (AdminCharges) TableName() string {
	return "cargos_administrativos"
}
