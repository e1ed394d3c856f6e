package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"api_yamdb/internal/app/authz"
	"api_yamdb/internal/app/config"
	"api_yamdb/internal/app/mail"
	"api_yamdb/internal/app/repository"
	"api_yamdb/internal/app/token"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"
)

type Handler struct {
	Repository *repository.Repository
	Config     *config.Config
	Tokens     token.Generator
	Mail       mail.Sender
}

func NewHandler(r *repository.Repository, conf *config.Config, tokens token.Generator, sender mail.Sender) *Handler {
	return &Handler{
		Repository: r,
		Config:     conf,
		Tokens:     tokens,
		Mail:       sender,
	}
}

// RegisterHandler регистрирует маршруты API
func (h *Handler) RegisterHandler(router *gin.Engine) {
	api := router.Group("/api", h.AuthMiddleware())

	auth := api.Group("/auth")
	auth.POST("/signup", h.SignUp)
	auth.POST("/token", h.ObtainToken)
	auth.POST("/token/refresh", h.RefreshToken)
	auth.POST("/token/verify", h.VerifyToken)
	auth.POST("/logout", h.AuthRequired(), h.Logout)

	categories := api.Group("/categories", h.AdminOrReadOnly())
	categories.GET("", h.GetCategories)
	categories.POST("", h.CreateCategory)
	categories.DELETE("/:slug", h.DeleteCategory)

	genres := api.Group("/genres", h.AdminOrReadOnly())
	genres.GET("", h.GetGenres)
	genres.POST("", h.CreateGenre)
	genres.DELETE("/:slug", h.DeleteGenre)

	titles := api.Group("/titles", h.AdminOrReadOnly())
	titles.GET("", h.GetTitles)
	titles.GET("/:title_id", h.GetTitle)
	titles.POST("", h.CreateTitle)
	titles.PATCH("/:title_id", h.UpdateTitle)
	titles.DELETE("/:title_id", h.DeleteTitle)
	titles.POST("/:title_id/image", h.UploadTitleImage)

	reviews := api.Group("/titles/:title_id/reviews", h.AuthenticatedOrReadOnly())
	reviews.GET("", h.GetReviews)
	reviews.GET("/:review_id", h.GetReview)
	reviews.POST("", h.CreateReview)
	reviews.PATCH("/:review_id", h.UpdateReview)
	reviews.DELETE("/:review_id", h.DeleteReview)

	comments := api.Group("/titles/:title_id/reviews/:review_id/comments", h.AuthenticatedOrReadOnly())
	comments.GET("", h.GetComments)
	comments.GET("/:comment_id", h.GetComment)
	comments.POST("", h.CreateComment)
	comments.PATCH("/:comment_id", h.UpdateComment)
	comments.DELETE("/:comment_id", h.DeleteComment)

	users := api.Group("/users")
	users.GET("/me", h.AuthRequired(), h.Me)
	users.PATCH("/me", h.AuthRequired(), h.UpdateMe)

	usersAdmin := users.Group("", h.AdminOnly())
	usersAdmin.GET("", h.GetUsers)
	usersAdmin.POST("", h.CreateUser)
	usersAdmin.GET("/:username", h.GetUser)
	usersAdmin.PATCH("/:username", h.UpdateUser)
	usersAdmin.DELETE("/:username", h.DeleteUser)
}

type ErrorResponse struct {
	Error string `json:"error"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

func (h *Handler) errorHandler(ctx *gin.Context, errorStatusCode int, err error) {
	logrus.Error(err)
	ctx.AbortWithStatusJSON(errorStatusCode, ErrorResponse{
		Error: err.Error(),
	})
}

// fieldErrorHandler возвращает ошибку, привязанную к конкретному полю
func (h *Handler) fieldErrorHandler(ctx *gin.Context, statusCode int, field, message string) {
	ctx.AbortWithStatusJSON(statusCode, gin.H{field: []string{message}})
}

// bindingErrorHandler раскладывает ошибки валидатора по полям
func (h *Handler) bindingErrorHandler(ctx *gin.Context, err error) {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		out := gin.H{}
		for _, fe := range verrs {
			out[snakeCase(fe.Field())] = []string{validationMessage(fe)}
		}
		ctx.AbortWithStatusJSON(http.StatusBadRequest, out)
		return
	}
	h.errorHandler(ctx, http.StatusBadRequest, err)
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "обязательное поле"
	case "email":
		return "некорректный адрес электронной почты"
	case "max":
		return fmt.Sprintf("значение не должно превышать %s", fe.Param())
	case "min":
		return fmt.Sprintf("значение не должно быть меньше %s", fe.Param())
	}
	return "некорректное значение"
}

func snakeCase(name string) string {
	var b strings.Builder
	for i, r := range name {
		if r >= 'A' && r <= 'Z' {
			if i > 0 {
				b.WriteByte('_')
			}
			b.WriteRune(r - 'A' + 'a')
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// actor возвращает субъекта запроса, положенного AuthMiddleware
func (h *Handler) actor(ctx *gin.Context) authz.Actor {
	if v, ok := ctx.Get("actor"); ok {
		if a, ok := v.(authz.Actor); ok {
			return a
		}
	}
	return authz.Actor{}
}

func paginate(ctx *gin.Context) (limit, offset int) {
	page, err := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}
	pageSize, err := strconv.Atoi(ctx.DefaultQuery("page_size", "10"))
	if err != nil || pageSize < 1 || pageSize > 100 {
		pageSize = 10
	}
	return pageSize, (page - 1) * pageSize
}

func pathID(ctx *gin.Context, name string) (int, error) {
	id, err := strconv.Atoi(ctx.Param(name))
	if err != nil {
		return 0, fmt.Errorf("некорректный идентификатор %s", name)
	}
	return id, nil
}
