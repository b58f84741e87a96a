package models

// Идентификаторы ролей, заполняются миграцией
const (
	RoleAdmin     uint = 1
	RoleCustomer  uint = 2
	RoleValidator uint = 3
)

type Role struct {
	ID          uint   `gorm:"column:rol_id;primaryKey;autoIncrement" json:"rol_id"`
	Name        string `gorm:"column:nombre_rol;size:100" json:"nombre_rol"`
	Description string `gorm:"column:descripcion;type:text" json:"descripcion"`
}

func (Role) TableName() string {
	return "roles"
}
