package config

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
)

type Env struct {
	AppAddr   string
	GinMode   string
	JWTSecret string

	DBUser string
	DBPass string
	DBHost string
	DBName string

	RedisAddr     string
	RedisPassword string

	AMQPURL string
}

// LoadEnv reads .env when present, then the process environment.
func LoadEnv() Env {
	_ = godotenv.Load()

	appAddr := strings.TrimSpace(os.Getenv("APP_ADDR"))
	if appAddr == "" {
		appAddr = ":8080"
	}

	dbHost := strings.TrimSpace(os.Getenv("DB_HOST"))
	if dbHost == "" {
		dbHost = "127.0.0.1:3306"
	}
	dbUser := strings.TrimSpace(os.Getenv("DB_USER"))
	if dbUser == "" {
		dbUser = "root"
	}
	dbName := strings.TrimSpace(os.Getenv("DB_NAME"))
	if dbName == "" {
		dbName = "ticketing_app"
	}

	secret := strings.TrimSpace(os.Getenv("JWT_SECRET"))
	if secret == "" {
		secret = "super-secret-key-change-me"
	}

	return Env{
		AppAddr:   appAddr,
		GinMode:   strings.TrimSpace(os.Getenv("GIN_MODE")),
		JWTSecret: secret,

		DBUser: dbUser,
		DBPass: os.Getenv("DB_PASS"),
		DBHost: dbHost,
		DBName: dbName,

		RedisAddr:     strings.TrimSpace(os.Getenv("REDIS_ADDR")),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),

		AMQPURL: strings.TrimSpace(os.Getenv("AMQP_URL")),
	}
}
