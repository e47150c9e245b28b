package utils

import (
	"errors"
	"io/fs"
	"net/http"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	JWT      JWTConfig
	Cookie   CookieConfig
	Email    EmailConfig
	OTP      OTPConfig
	Redis    RedisConfig
	Seed     SeedConfig
}

type AppConfig struct {
	Name       string
	Port       string
	Debug      bool
	LogPath    string
	Origin     string
	Production bool
}

const (
	DriverMongo    = "mongo"
	DriverPostgres = "postgres"
)

type DatabaseConfig struct {
	Driver   string
	URI      string
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	MaxConns int32
}

type JWTConfig struct {
	Secret              string
	LoginExpiry         time.Duration
	PasswordResetExpiry time.Duration
}

type CookieConfig struct {
	Name     string
	Secure   bool
	SameSite http.SameSite
}

type EmailConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
}

type OTPConfig struct {
	ExpiryMinutes int
	Length        int
}

type RedisConfig struct {
	Addr           string
	Password       string
	DB             int
	ResendCooldown time.Duration
}

// SeedConfig holds the bootstrap admin account. Signup never creates admins.
type SeedConfig struct {
	AdminName     string
	AdminEmail    string
	AdminPassword string
}

func LoadConfig() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.SetConfigType("env")

	// Set defaults
	viper.SetDefault("APP_NAME", "ecommerce-rbac")
	viper.SetDefault("PORT", "8000")
	viper.SetDefault("DEBUG", false)
	viper.SetDefault("LOG_PATH", "logs/")
	viper.SetDefault("ORIGIN", "http://localhost:3000")
	viper.SetDefault("PRODUCTION", false)
	viper.SetDefault("DB_DRIVER", DriverMongo)
	viper.SetDefault("MONGO_URI", "mongodb://localhost:27017")
	viper.SetDefault("DB_NAME", "ecommerce")
	viper.SetDefault("DB_PORT", "5432")
	viper.SetDefault("DB_MAX_CONNS", 10)
	viper.SetDefault("LOGIN_TOKEN_EXPIRATION", "720h")
	viper.SetDefault("PASSWORD_RESET_TOKEN_EXPIRATION", "2m")
	viper.SetDefault("COOKIE_NAME", "token")
	viper.SetDefault("OTP_EXPIRY_MINUTES", 10)
	viper.SetDefault("OTP_LENGTH", 6)
	viper.SetDefault("REDIS_DB", 0)
	viper.SetDefault("RESEND_COOLDOWN", "60s")
	viper.SetDefault("SEED_ADMIN_NAME", "Administrator")

	// .env is optional, plain environment variables are enough in containers
	if err := viper.ReadInConfig(); err != nil {
		var pathErr *fs.PathError
		if !errors.As(err, &pathErr) {
			return nil, err
		}
	}

	viper.AutomaticEnv()

	production := viper.GetBool("PRODUCTION")

	config := &Config{
		App: AppConfig{
			Name:       viper.GetString("APP_NAME"),
			Port:       viper.GetString("PORT"),
			Debug:      viper.GetBool("DEBUG"),
			LogPath:    viper.GetString("LOG_PATH"),
			Origin:     viper.GetString("ORIGIN"),
			Production: production,
		},
		Database: DatabaseConfig{
			Driver:   strings.ToLower(viper.GetString("DB_DRIVER")),
			URI:      viper.GetString("MONGO_URI"),
			Host:     viper.GetString("DB_HOST"),
			Port:     viper.GetString("DB_PORT"),
			Name:     viper.GetString("DB_NAME"),
			User:     viper.GetString("DB_USER"),
			Password: viper.GetString("DB_PASS"),
			MaxConns: viper.GetInt32("DB_MAX_CONNS"),
		},
		JWT: JWTConfig{
			Secret:              viper.GetString("SECRET_KEY"),
			LoginExpiry:         viper.GetDuration("LOGIN_TOKEN_EXPIRATION"),
			PasswordResetExpiry: viper.GetDuration("PASSWORD_RESET_TOKEN_EXPIRATION"),
		},
		Cookie: CookieConfig{
			Name:     viper.GetString("COOKIE_NAME"),
			Secure:   production,
			SameSite: parseSameSite(viper.GetString("COOKIE_SAMESITE"), production),
		},
		Email: EmailConfig{
			Host:     viper.GetString("SMTP_HOST"),
			Port:     viper.GetInt("SMTP_PORT"),
			User:     viper.GetString("SMTP_USER"),
			Password: viper.GetString("SMTP_PASS"),
			From:     viper.GetString("EMAIL_FROM"),
		},
		OTP: OTPConfig{
			ExpiryMinutes: viper.GetInt("OTP_EXPIRY_MINUTES"),
			Length:        viper.GetInt("OTP_LENGTH"),
		},
		Redis: RedisConfig{
			Addr:           viper.GetString("REDIS_ADDR"),
			Password:       viper.GetString("REDIS_PASSWORD"),
			DB:             viper.GetInt("REDIS_DB"),
			ResendCooldown: viper.GetDuration("RESEND_COOLDOWN"),
		},
		Seed: SeedConfig{
			AdminName:     viper.GetString("SEED_ADMIN_NAME"),
			AdminEmail:    viper.GetString("SEED_ADMIN_EMAIL"),
			AdminPassword: viper.GetString("SEED_ADMIN_PASSWORD"),
		},
	}

	if config.JWT.Secret == "" {
		return nil, errors.New("SECRET_KEY is required")
	}
	if config.Database.Driver != DriverMongo && config.Database.Driver != DriverPostgres {
		return nil, errors.New("DB_DRIVER must be mongo or postgres")
	}

	return config, nil
}

// cross-site cookies need SameSite=None, which browsers only accept with Secure
func parseSameSite(value string, production bool) http.SameSite {
	switch strings.ToLower(value) {
	case "strict":
		return http.SameSiteStrictMode
	case "none":
		return http.SameSiteNoneMode
	case "lax":
		return http.SameSiteLaxMode
	}
	if production {
		return http.SameSiteNoneMode
	}
	return http.SameSiteLaxMode
}
