package pkg

import (
	"fmt"

	"api_yamdb/internal/app/config"
	"api_yamdb/internal/app/handler"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type Application struct {
	Config  *config.Config
	Router  *gin.Engine
	Handler *handler.Handler
}

func NewApp(conf *config.Config, router *gin.Engine, h *handler.Handler) *Application {
	return &Application{
		Config:  conf,
		Router:  router,
		Handler: h,
	}
}

// RunApp регистрирует маршруты и запускает HTTP-сервер
func (a *Application) RunApp() {
	logrus.Info("Server start up")

	a.Handler.RegisterHandler(a.Router)

	serverAddress := fmt.Sprintf("%s:%d", a.Config.ServiceHost, a.Config.ServicePort)
	if err := a.Router.Run(serverAddress); err != nil {
		logrus.Fatalf("error running server: %v", err)
	}

	logrus.Info("Server down")
}
