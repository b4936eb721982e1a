package config

import (
	"database/sql"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
)

type Config struct {
	DB            *sql.DB
	JWTSecret     []byte
	SessionExpiry time.Duration
	CloudinaryURL string
	Production    bool
}

var AppConfig *Config

// Load reads .env (if present) and builds the application configuration.
// Call before InitDB.
func Load() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	AppConfig = &Config{
		JWTSecret:     []byte(getEnv("JWT_SECRET", "result-portal-secret-key")),
		SessionExpiry: 24 * time.Hour,
		CloudinaryURL: os.Getenv("CLOUDINARY_URL"),
		Production:    os.Getenv("APP_ENV") == "production",
	}
}

func InitDB() {
	var psqlInfo string

	if url := os.Getenv("DATABASE_URL"); url != "" {
		psqlInfo = url
	} else {
		psqlInfo = "host=localhost port=5432 user=postgres dbname=result_portal sslmode=disable"
		log.Println("DATABASE_URL not set, using local PostgreSQL database")
	}

	db, err := sql.Open("postgres", psqlInfo)
	if err != nil {
		log.Fatal("Failed to open database connection:", err)
	}

	// Set connection pool settings
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)

	log.Println("Testing database connection...")
	if err = db.Ping(); err != nil {
		log.Printf("Database connection failed: %v", err)
		log.Println("Verify DATABASE_URL or create the local database: createdb result_portal")
		log.Fatal("Cannot establish database connection")
	}

	if AppConfig == nil {
		Load()
	}
	AppConfig.DB = db
	log.Println("Database connected successfully")
}

func GetDB() *sql.DB {
	return AppConfig.DB
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
