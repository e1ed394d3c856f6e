package config

import (
	"errors"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

type Config struct {
	ServiceHost string
	ServicePort int

	JWT struct {
		Secret     string
		AccessTTL  time.Duration
		RefreshTTL time.Duration
	}

	Code struct {
		Generator string // hmac или stored
		TTL       time.Duration
	}

	Mail struct {
		Backend  string // smtp или console
		Host     string
		Port     int
		Username string
		Password string
		From     string
	}

	Minio struct {
		Bucket string
	}
}

// NewConfig читает config/config.yaml и переменные окружения
func NewConfig() (*Config, error) {
	_ = godotenv.Load()

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("config")
	viper.AddConfigPath(".")

	viper.SetDefault("service_host", "0.0.0.0")
	viper.SetDefault("service_port", 8080)
	viper.SetDefault("jwt.secret", "yamdb_secret_key")
	viper.SetDefault("jwt.access_ttl", time.Hour)
	viper.SetDefault("jwt.refresh_ttl", 24*time.Hour)
	viper.SetDefault("code.generator", "hmac")
	viper.SetDefault("code.ttl", 24*time.Hour)
	viper.SetDefault("mail.backend", "console")
	viper.SetDefault("mail.port", 25)
	viper.SetDefault("mail.from", "noreply@yamdb.local")
	viper.SetDefault("minio.bucket", "title-posters")

	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
		logrus.Warn("config file not found, using defaults")
	}

	cfg := &Config{
		ServiceHost: viper.GetString("service_host"),
		ServicePort: viper.GetInt("service_port"),
	}
	cfg.JWT.Secret = viper.GetString("jwt.secret")
	cfg.JWT.AccessTTL = viper.GetDuration("jwt.access_ttl")
	cfg.JWT.RefreshTTL = viper.GetDuration("jwt.refresh_ttl")
	cfg.Code.Generator = viper.GetString("code.generator")
	cfg.Code.TTL = viper.GetDuration("code.ttl")
	cfg.Mail.Backend = viper.GetString("mail.backend")
	cfg.Mail.Host = viper.GetString("mail.host")
	cfg.Mail.Port = viper.GetInt("mail.port")
	cfg.Mail.Username = viper.GetString("mail.username")
	cfg.Mail.Password = viper.GetString("mail.password")
	cfg.Mail.From = viper.GetString("mail.from")
	cfg.Minio.Bucket = viper.GetString("minio.bucket")

	return cfg, nil
}
