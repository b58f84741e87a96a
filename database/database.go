package database

import (
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"loanProject/config"
	"loanProject/models"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Database представляет подключение к базе данных
type Database struct {
	DB *gorm.DB
}

// NewDatabase устанавливает соединение с базой данных и выполняет миграции
func NewDatabase(cfg *config.Config) (*Database, error) {
	db, err := Connect(cfg)
	if err != nil {
		return nil, err
	}
	return &Database{DB: db}, nil
}

// Close закрывает подключение к базе данных
func (d *Database) Close() error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Connect устанавливает соединение с базой данных и выполняет миграции.
// Уровень изоляции транзакций остается read committed (по умолчанию в
// PostgreSQL); конкурирующие решения по одному займу сериализуются
// блокировками строк SELECT ... FOR UPDATE в сервисном слое.
func Connect(cfg *config.Config) (*gorm.DB, error) {
	// Формируем строку подключения
	dsn := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		cfg.DB.Host,
		cfg.DB.Port,
		cfg.DB.User,
		cfg.DB.Password,
		cfg.DB.DBName,
		cfg.DB.SSLMode,
	)

	// Настраиваем логгер
	newLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  logger.Info,
			IgnoreRecordNotFoundError: true,
			Colorful:                  true,
		},
	)

	// Устанавливаем соединение
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: newLogger,
	})
	if err != nil {
		return nil, fmt.Errorf("ошибка подключения к базе данных: %v", err)
	}

	// Настраиваем пул соединений
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("ошибка получения пула соединений: %v", err)
	}

	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Hour)

	// Выполняем SQL миграции
	if err := runMigrations(cfg); err != nil {
		return nil, fmt.Errorf("ошибка выполнения SQL миграций: %v", err)
	}

	// Выполняем автоматическую миграцию моделей
	if err := AutoMigrate(db); err != nil {
		return nil, fmt.Errorf("ошибка автоматической миграции моделей: %v", err)
	}

	// Заполняем справочники
	if err := SeedLookups(db); err != nil {
		return nil, fmt.Errorf("ошибка заполнения справочников: %v", err)
	}

	return db, nil
}

// runMigrations выполняет SQL миграции
func runMigrations(cfg *config.Config) error {
	// Формируем URL для миграций
	dsn := fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		cfg.DB.User,
		cfg.DB.Password,
		cfg.DB.Host,
		cfg.DB.Port,
		cfg.DB.DBName,
		cfg.DB.SSLMode,
	)

	// Создаем экземпляр миграции
	m, err := migrate.New(
		"file://migrations",
		dsn,
	)
	if err != nil {
		return fmt.Errorf("ошибка создания миграции: %v", err)
	}

	// Выполняем миграции
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("ошибка выполнения миграций: %v", err)
	}

	return nil
}

// AutoMigrate выполняет автоматическую миграцию моделей
func AutoMigrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.Role{},
		&models.LoanStatusRecord{},
		&models.Occupation{},
		&models.Borrower{},
		&models.Address{},
		&models.ReferenceSet{},
		&models.Loan{},
		&models.AdminCharges{},
		&models.FuturePayment{},
		&models.ReceiptValidator{},
		&models.RealizedPayment{},
	)
	if err != nil {
		return fmt.Errorf("ошибка автоматической миграции: %v", err)
	}

	return nil
}

// SeedLookups заполняет справочники статусов и ролей
func SeedLookups(db *gorm.DB) error {
	statuses := []models.LoanStatusRecord{
		{ID: uint(models.LoanStatusApproved), Description: "Aprobado"},
		{ID: uint(models.LoanStatusPending), Description: "Pendiente"},
		{ID: uint(models.LoanStatusDenied), Description: "Denegado"},
	}
	for _, status := range statuses {
		if err := db.Where("estatus_id = ?", status.ID).
			Attrs(status).
			FirstOrCreate(&models.LoanStatusRecord{}).Error; err != nil {
			return err
		}
	}

	roles := []models.Role{
		{ID: models.RoleAdmin, Name: "admin", Description: "Administrador del sistema"},
		{ID: models.RoleCustomer, Name: "cliente", Description: "Cliente solicitante"},
		{ID: models.RoleValidator, Name: "validador", Description: "Validador de pagos"},
	}
	for _, role := range roles {
		if err := db.Where("rol_id = ?", role.ID).
			Attrs(role).
			FirstOrCreate(&models.Role{}).Error; err != nil {
			return err
		}
	}

	return nil
}
