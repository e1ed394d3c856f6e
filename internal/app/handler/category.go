package handler

import (
	"net/http"

	"api_yamdb/internal/app/ds"

	"github.com/gin-gonic/gin"
)

// GetCategories godoc
// @Summary Список категорий
// @Tags categories
// @Produce json
// @Param search query string false "Поиск по названию"
// @Success 200 {array} ds.Category
// @Router /categories [get]
func (h *Handler) GetCategories(ctx *gin.Context) {
	limit, offset := paginate(ctx)

	categories, err := h.Repository.GetCategories(ctx.Query("search"), limit, offset)
	if err != nil {
		h.errorHandler(ctx, http.StatusInternalServerError, err)
		return
	}

	ctx.JSON(http.StatusOK, categories)
}

// POST /api/categories - добавление категории (админ)
func (h *Handler) CreateCategory(ctx *gin.Context) {
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

	if _, err := h.Repository.GetCategoryBySlug(req.Slug); err == nil {
		h.fieldErrorHandler(ctx, http.StatusBadRequest, "slug",
			"категория с таким слагом уже существует")
		return
	}

	category := &ds.Category{
		Name: req.Name,
		Slug: req.Slug,
	}

	if err := h.Repository.CreateCategory(category); err != nil {
		h.errorHandler(ctx, http.StatusInternalServerError, err)
		return
	}

	ctx.JSON(http.StatusCreated, category)
}

// DELETE /api/categories/:slug - удаление категории (админ)
func (h *Handler) DeleteCategory(ctx *gin.Context) {
	if err := h.Repository.DeleteCategoryBySlug(ctx.Param("slug")); err != nil {
		h.errorHandler(ctx, http.StatusNotFound, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}
