package handler

import (
	"net/http"
	"regexp"

	"api_yamdb/internal/app/ds"

	"github.com/gin-gonic/gin"
)

var slugRegexp = regexp.MustCompile(`^[-a-zA-Z0-9_]+$`)

// GetGenres godoc
// @Summary Список жанров
// @Tags genres
// @Produce json
// @Param search query string false "Поиск по названию"
// @Success 200 {array} ds.Genre
// @Router /genres [get]
func (h *Handler) GetGenres(ctx *gin.Context) {
	limit, offset := paginate(ctx)

	genres, err := h.Repository.GetGenres(ctx.Query("search"), limit, offset)
	if err != nil {
		h.errorHandler(ctx, http.StatusInternalServerError, err)
		return
	}

	ctx.JSON(http.StatusOK, genres)
}

// POST /api/genres - добавление жанра (админ)
func (h *Handler) CreateGenre(ctx *gin.Context) {
	var req struct {
		Name string `json:"name" binding:"required,max=256"`
		Slug string `json:"slug" binding:"required,max=50"`
	}

	if err := ctx.ShouldBindJSON(&req); err != nil {
		h.bindingErrorHandler(ctx, err)
		return
	}

	if !slugRegexp.MatchString(req.Slug) {
		h.fieldErrorHandler(ctx, http.StatusBadRequest, "slug",
			"слаг содержит недопустимые символы")
		return
	}

	if _, err := h.Repository.GetGenreBySlug(req.Slug); err == nil {
		h.fieldErrorHandler(ctx, http.StatusBadRequest, "slug",
			"жанр с таким слагом уже существует")
		return
	}

	genre := &ds.Genre{
		Name: req.Name,
		Slug: req.Slug,
	}

	if err := h.Repository.CreateGenre(genre); err != nil {
		h.errorHandler(ctx, http.StatusInternalServerError, err)
		return
	}

	ctx.JSON(http.StatusCreated, genre)
}

// DELETE /api/genres/:slug - удаление жанра (админ)
func (h *Handler) DeleteGenre(ctx *gin.Context) {
	if err := h.Repository.DeleteGenreBySlug(ctx.Param("slug")); err != nil {
		h.errorHandler(ctx, http.StatusNotFound, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}
