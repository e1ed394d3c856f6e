package main

import (
	"os"

	"api_yamdb/internal/app/config"
	"api_yamdb/internal/app/dsn"
	"api_yamdb/internal/app/handler"
	"api_yamdb/internal/app/mail"
	"api_yamdb/internal/app/repository"
	"api_yamdb/internal/app/token"
	"api_yamdb/internal/pkg"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// @title YaMDb API
// @version 1.0
// @description REST API каталога отзывов на произведения

// @contact.name API Support
// @contact.url http://localhost:8080

// @host localhost:8080
// @BasePath /api

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description JWT токен в формате: "Bearer {token}"

func main() {
	router := gin.Default()
	conf, err := config.NewConfig()
	if err != nil {
		logrus.Fatalf("error loading config: %v", err)
	}

	postgresString := dsn.FromEnv()

	// Получаем Redis хост и порт из env
	redisHost := getEnv("REDIS_HOST", "localhost")
	redisPort := getEnv("REDIS_PORT", "6379")

	rep, errRep := repository.New(postgresString, redisHost, redisPort)
	if errRep != nil {
		logrus.Fatalf("error initializing repository: %v", errRep)
	}

	// Стратегия кодов подтверждения
	var codes token.Generator
	switch conf.Code.Generator {
	case "stored":
		codes = token.NewStoredCodeGenerator(rep)
	default:
		codes = token.NewHMACGenerator([]byte(conf.JWT.Secret), conf.Code.TTL)
	}

	// Транспорт доставки писем
	var sender mail.Sender
	if conf.Mail.Backend == "smtp" {
		sender = mail.NewSMTPSender(conf.Mail.Host, conf.Mail.Port,
			conf.Mail.Username, conf.Mail.Password, conf.Mail.From)
	} else {
		sender = &mail.ConsoleSender{}
	}

	hand := handler.NewHandler(rep, conf, codes, sender)

	// Swagger UI
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	application := pkg.NewApp(conf, router, hand)
	application.RunApp()
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
