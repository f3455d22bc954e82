package database

import (
	"fmt"
	"log"
	"os"

	"ProjectScoreService/internal/models"

	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const (
	defaultMigrationsPath = "file://migrations"
)

type Config struct {
	Host     string
	User     string
	Password string
	Name     string
	Port     string
}

func InitializeConnection() *gorm.DB {
	loadEnvironmentVariables()

	database, err := establishConnection(ConfigFromEnv().DSN(), logger.Info)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	if err := applyMigrations(database); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}

	syncGORMSchema(database)

	log.Println("Database connected and migrated successfully")
	return database
}

// Open connects without touching the schema; callers migrate when needed.
func Open(cfg Config, level logger.LogLevel) (*gorm.DB, error) {
	return establishConnection(cfg.DSN(), level)
}

func ConfigFromEnv() Config {
	return Config{
		Host:     os.Getenv("DB_HOST"),
		User:     os.Getenv("DB_USER"),
		Password: os.Getenv("DB_PASSWORD"),
		Name:     os.Getenv("DB_NAME"),
		Port:     os.Getenv("DB_PORT"),
	}
}

func (c Config) DSN() string {
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		c.Host,
		c.User,
		c.Password,
		c.Name,
		c.Port,
	)
}

func loadEnvironmentVariables() {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: Failed to load .env file: %v", err)
	}
}

func establishConnection(dsn string, level logger.LogLevel) (*gorm.DB, error) {
	return gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(level),
	})
}

func applyMigrations(database *gorm.DB) error {
	return RunMigrations(database)
}

func syncGORMSchema(database *gorm.DB) {
	err := database.AutoMigrate(
		&models.Department{},
		&models.UserGroup{},
		&models.SuccessCategory{},
		&models.Metric{},
		&models.MetricWeight{},
		&models.Project{},
	)
	if err != nil {
		log.Printf("Warning: AutoMigrate failed (this is ok if tables already exist): %v", err)
	}
}
