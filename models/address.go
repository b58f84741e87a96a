package models

// Address представляет адресные данные, записываемые при подаче заявки
type Address struct {
	ID              uint   `gorm:"column:direccion_usuario_id;primaryKey;autoIncrement" json:"direccion_usuario_id"`
	BorrowerID      uint   `gorm:"column:usuario_id;index" json:"usuario_id"`
	BirthDepartment string `gorm:"column:depto_nacimiento;size:100" json:"depto_nacimiento"`
	BirthTown       string `gorm:"column:muni_nacimiento;size:100" json:"muni_nacimiento"`
	Neighborhood    string `gorm:"column:vecindad;size:100" json:"vecindad"`
}

// TableName возвращает имя таблицы для модели Address
func (Address) TableName() string {
	return "direccion_usuario"
}
