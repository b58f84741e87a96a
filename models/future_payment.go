package models

import (
	"time"
)

// FuturePaymentState представляет статус запланированного платежа
type FuturePaymentState string

const (
	FuturePaymentPending FuturePaymentState = "pendiente" // Ожидает оплаты
	FuturePaymentPaid    FuturePaymentState = "pagado"    // Оплачен
)

// FuturePayment представляет запланированный взнос по графику погашения.
// Записи заводятся внешним процессом при выдаче займа, ядро их только читает.
type FuturePayment struct {
	ID      uint               `gorm:"column:pago_id;primaryKey;autoIncrement" json:"pago_id"`
	LoanID  uint               `gorm:"column:prestamo_id;not null;index" json:"prestamo_id"`
	DueDate time.Time          `gorm:"column:fecha_pago;not null" json:"fecha_pago"`
	Amount  float64            `gorm:"column:monto_pago;not null" json:"monto_pago"`
	State   FuturePaymentState `gorm:"column:estado;type:varchar(20);not null;default:'pendiente'" json:"estado"`
}

// TableName возвращает имя таблицы для модели FuturePayment
func (FuturePayment) TableName() string {
	return "pagos_futuros"
}
