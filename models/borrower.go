package models

import (
	"time"
)

// Borrower представляет заемщика (клиента)
type Borrower struct {
	ID            uint       `gorm:"column:usuario_id;primaryKey;autoIncrement" json:"usuario_id"`
	ClientCode    string     `gorm:"column:codigo_cliente;size:50;unique;index" json:"codigo_cliente"`
	RoleID        uint       `gorm:"column:rol_id;index" json:"rol_id"`
	Gender        string     `gorm:"column:genero;size:20" json:"genero"`
	CUI           string     `gorm:"column:cui;size:20;unique;index" json:"cui"`
	BirthDate     time.Time  `gorm:"column:fecha_nacimiento" json:"fecha_nacimiento"`
	CivilStatus   string     `gorm:"column:estado_civil;size:50" json:"estado_civil"`
	Nationality   string     `gorm:"column:nacionalidad;size:50" json:"nacionalidad"`
	FirstName     string     `gorm:"column:primer_nombre;size:100" json:"primer_nombre"`
	SecondName    string     `gorm:"column:segundo_nombre;size:100" json:"segundo_nombre"`
	ThirdName     string     `gorm:"column:tercer_nombre;size:100" json:"tercer_nombre"`
	FirstSurname  string     `gorm:"column:primer_apellido;size:100" json:"primer_apellido"`
	SecondSurname string     `gorm:"column:segundo_apellido;size:100" json:"segundo_apellido"`
	MarriedName   string     `gorm:"column:apellido_casada;size:100" json:"apellido_casada"`
	OccupationID  uint       `gorm:"column:ocupaciones_id;index" json:"ocupaciones_id"`
	Occupation    Occupation `gorm:"foreignKey:OccupationID" json:"-"`
	Loans         []Loan     `gorm:"foreignKey:BorrowerID" json:"-"`
}

// TableName возвращает имя таблицы для модели Borrower
func (Borrower) TableName() string {
	return "usuarios"
}
