package models

import (
	"time"
)

// ReceiptState представляет статус поданного платежного документа
type ReceiptState string

const (
	ReceiptPending  ReceiptState = "pendiente" // Ожидает проверки
	ReceiptApproved ReceiptState = "aprobado"  // Подтвержден
	ReceiptRejected ReceiptState = "rechazado" // Отклонен при валидации
	ReceiptDenied   ReceiptState = "denegado"  // Отклонен прямым решением
)

// Terminal сообщает, завершена ли проверка платежа
func (s ReceiptState) Terminal() bool {
	return s != ReceiptPending
}

// RealizedPayment представляет поданный платежный документ (квитанцию)
type RealizedPayment struct {
	ID              uint         `gorm:"column:pago_realizado_id;primaryKey;autoIncrement" json:"pago_realizado_id"`
	LoanID          uint         `gorm:"column:prestamo_id;not null;index" json:"prestamo_id"`
	CreatedAt       time.Time    `gorm:"column:pago_realizado_fecha_creacion" json:"pago_realizado_fecha_creacion"`
	PaymentDate     *time.Time   `gorm:"column:pago_realizado_fecha_pago" json:"pago_realizado_fecha_pago,omitempty"`
	AmountPaid      float64      `gorm:"column:pago_realizado_monto_pagado" json:"pago_realizado_monto_pagado"`
	Correlative     string       `gorm:"column:pago_realizado_correlativo;size:50;not null" json:"pago_realizado_correlativo"`
	State           ReceiptState `gorm:"column:estado;type:varchar(20);not null;default:'pendiente';index" json:"estado"`
	TransactionCode string       `gorm:"column:codigo_transaccion;size:50;unique" json:"codigo_transaccion"`
	ValidatedByID   *string      `gorm:"column:validacion1_validado_por;size:100" json:"validacion1_validado_por,omitempty"`
}

// TableName возвращает имя таблицы для модели RealizedPayment
func (RealizedPayment) TableName() string {
	return "pagos_realizados"
}

// ReceiptValidator представляет сотрудника, проверяющего платежи
type ReceiptValidator struct {
	ID   string `gorm:"column:validador_id;size:100;primaryKey" json:"validador_id"`
	Name string `gorm:"column:validador_nombre;size:100" json:"validador_nombre"`
}

func (ReceiptValidator) TableName() string {
	return "validadores"
}
