package config

import (
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	DBDriver    string
	DBUrl       string
	Port        string
	JWTSecret   string
	JWTTTL      time.Duration
	LogLevel    string
	CORSOrigins []string

	AWSBucket      string
	AWSRegion      string
	AWSAccessKey   string
	AWSSecretKey   string
	AWSEndpoint    string
	ImageURLExpiry time.Duration
}

// LoadConfig lit le .env s'il existe puis les variables d'environnement
func LoadConfig() *Config {
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("DB_DRIVER", "postgres")
	v.SetDefault("PORT", "8080")
	v.SetDefault("JWT_TTL", "24h")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("CORS_ORIGINS", "*")
	v.SetDefault("IMAGE_URL_TTL", "15m")

	return &Config{
		DBDriver:       strings.ToLower(v.GetString("DB_DRIVER")),
		DBUrl:          v.GetString("DATABASE_URL"),
		Port:           v.GetString("PORT"),
		JWTSecret:      v.GetString("JWT_SECRET"),
		JWTTTL:         v.GetDuration("JWT_TTL"),
		LogLevel:       v.GetString("LOG_LEVEL"),
		CORSOrigins:    splitList(v.GetString("CORS_ORIGINS")),
		AWSBucket:      v.GetString("AWS_BUCKET_NAME"),
		AWSRegion:      v.GetString("AWS_REGION"),
		AWSAccessKey:   v.GetString("AWS_ACCESS_KEY_ID"),
		AWSSecretKey:   v.GetString("AWS_SECRET_ACCESS_KEY"),
		AWSEndpoint:    v.GetString("AWS_ENDPOINT_URL"),
		ImageURLExpiry: v.GetDuration("IMAGE_URL_TTL"),
	}
}

// StorageEnabled indique si un bucket S3 est configuré
func (c *Config) StorageEnabled() bool {
	return c.AWSBucket != "" && c.AWSRegion != ""
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
