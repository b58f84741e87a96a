package models

// Occupation представляет род занятий заемщика
type Occupation struct {
	ID   uint   `gorm:"column:ocupacion_id;primaryKey;autoIncrement" json:"ocupacion_id"`
	Name string `gorm:"column:nombre_ocupacion;size:100;unique;index" json:"nombre_ocupacion"`
}

// TableName возвращает имя таблицы для модели Occupation
func (Occupation) TableName() string {
	return "ocupaciones"
}
