package config

import (
	"database/sql"
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
)

type Config struct {
	DB            *sql.DB
	Port          string
	SessionSecret string
	TemplatesDir  string
	StaticDir     string
	Location      *time.Location
	SecureCookies bool
}

var AppConfig *Config

// LoadEnv reads .env when present, then builds AppConfig from the environment.
func LoadEnv() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment")
	} else {
		log.Println(".env file loaded")
	}

	AppConfig = &Config{
		Port:          GetEnv("PORT", "3000"),
		SessionSecret: GetEnv("SESSION_SECRET", "school-management-dev-secret"),
		TemplatesDir:  GetEnv("TEMPLATES_DIR", "./app/templates"),
		StaticDir:     GetEnv("STATIC_DIR", "./static"),
		Location:      loadLocation(GetEnv("APP_TIMEZONE", "Local")),
		SecureCookies: GetEnvBool("SECURE_COOKIES", false),
	}
	if os.Getenv("SESSION_SECRET") == "" {
		log.Println("Warning: SESSION_SECRET is not set, using the development default")
	}
}

// GetEnv returns the value of key, or the first default when it is unset.
func GetEnv(key string, defaultValue ...string) string {
	value, exists := os.LookupEnv(key)
	if !exists && len(defaultValue) > 0 {
		return defaultValue[0]
	}
	return value
}

func GetEnvBool(key string, defaultValue bool) bool {
	b, err := strconv.ParseBool(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return b
}

func loadLocation(name string) *time.Location {
	loc, err := time.LoadLocation(name)
	if err != nil {
		log.Printf("Warning: failed to load time zone %q, falling back to local time: %v", name, err)
		return time.Local
	}
	return loc
}

// DSN builds the PostgreSQL connection string. DATABASE_URL wins when set.
func DSN() string {
	if url := os.Getenv("DATABASE_URL"); url != "" {
		return url
	}
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s connect_timeout=10",
		GetEnv("DB_HOST", "localhost"),
		GetEnv("DB_PORT", "5432"),
		GetEnv("DB_USER", "postgres"),
		GetEnv("DB_PASSWORD", ""),
		GetEnv("DB_NAME", "school_management"),
		GetEnv("DB_SSLMODE", "disable"),
	)
}

func InitDB() {
	if AppConfig == nil {
		LoadEnv()
	}

	db, err := sql.Open("postgres", DSN())
	if err != nil {
		log.Fatal("Failed to open database connection:", err)
	}

	// Set connection pool settings
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)

	log.Println("Testing database connection...")
	if err = db.Ping(); err != nil {
		log.Printf("Database connection failed: %v", err)
		log.Println("Check DATABASE_URL or DB_HOST/DB_PORT/DB_USER/DB_PASSWORD/DB_NAME")
		log.Fatal("Cannot establish database connection")
	}

	AppConfig.DB = db
	log.Println("Database connected successfully")
}

func GetDB() *sql.DB {
	return AppConfig.DB
}

// Now returns the current time in the application's time zone.
func Now() time.Time {
	if AppConfig == nil || AppConfig.Location == nil {
		return time.Now()
	}
	return time.Now().In(AppConfig.Location)
}
