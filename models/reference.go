package models

// ReferenceSet представляет четыре персональные рекомендации заявки.
// Колонки намеренно повторяют плоскую структуру исходной схемы:
// слоты 1-2 обязательны, слоты 3-4 могут быть пустыми.
type ReferenceSet struct {
	ID         uint `gorm:"column:referencia_id;primaryKey;autoIncrement" json:"referencia_id"`
	BorrowerID uint `gorm:"column:usuario_id;index" json:"usuario_id"`

	Ref1FirstName     string `gorm:"column:referencia1_primer_nombre;size:100" json:"referencia1_primer_nombre"`
	Ref1SecondName    string `gorm:"column:referencia1_segundo_nombre;size:100" json:"referencia1_segundo_nombre"`
	Ref1ThirdName     string `gorm:"column:referencia1_tercer_nombre;size:100" json:"referencia1_tercer_nombre"`
	Ref1FirstSurname  string `gorm:"column:referencia1_primer_apellido;size:100" json:"referencia1_primer_apellido"`
	Ref1SecondSurname string `gorm:"column:referencia1_segundo_apellido;size:100" json:"referencia1_segundo_apellido"`
	Ref1Phone         string `gorm:"column:referencia1_telefono;size:20" json:"referencia1_telefono"`

	Ref2FirstName     string `gorm:"column:referencia2_primer_nombre;size:100" json:"referencia2_primer_nombre"`
	Ref2SecondName    string `gorm:"column:referencia2_segundo_nombre;size:100" json:"referencia2_segundo_nombre"`
	Ref2ThirdName     string `gorm:"column:referencia2_tercer_nombre;size:100" json:"referencia2_tercer_nombre"`
	Ref2FirstSurname  string `gorm:"column:referencia2_primer_apellido;size:100" json:"referencia2_primer_apellido"`
	Ref2SecondSurname string `gorm:"column:referencia2_segundo_apellido;size:100" json:"referencia2_segundo_apellido"`
	Ref2Phone         string `gorm:"column:referencia2_telefono;size:20" json:"referencia2_telefono"`

	Ref3FirstName     string `gorm:"column:referencia3_primer_nombre;size:100" json:"referencia3_primer_nombre"`
	Ref3SecondName    string `gorm:"column:referencia3_segundo_nombre;size:100" json:"referencia3_segundo_nombre"`
	Ref3ThirdName     string `gorm:"column:referencia3_tercer_nombre;size:100" json:"referencia3_tercer_nombre"`
	Ref3FirstSurname  string `gorm:"column:referencia3_primer_apellido;size:100" json:"referencia3_primer_apellido"`
	Ref3SecondSurname string `gorm:"column:referencia3_segundo_apellido;size:100" json:"referencia3_segundo_apellido"`
	Ref3Phone         string `gorm:"column:referencia3_telefono;size:20" json:"referencia3_telefono"`

	Ref4FirstName     string `gorm:"column:referencia4_primer_nombre;size:100" json:"referencia4_primer_nombre"`
	Ref4SecondName    string `gorm:"column:referencia4_segundo_nombre;size:100" json:"referencia4_segundo_nombre"`
	Ref4ThirdName     string `gorm:"column:referencia4_tercer_nombre;size:100" json:"referencia4_tercer_nombre"`
	Ref4FirstSurname  string `gorm:"column:referencia4_primer_apellido;size:100" json:"referencia4_primer_apellido"`
	Ref4SecondSurname string `gorm:"column:referencia4_segundo_apellido;size:100" json:"referencia4_segundo_apellido"`
	Ref4Phone         string `gorm:"column:referencia4_telefono;size:20" json:"referencia4_telefono"`
}

// TableName возвращает имя таблицы для модели ReferenceSet
func (ReferenceSet) TableName() string {
	return "referencias"
}
