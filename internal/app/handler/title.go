package handler

import (
	"context"
	"fmt"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"api_yamdb/internal/app/ds"
	"api_yamdb/internal/app/repository"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const minTitleYear = 1800

type TitleResponse struct {
	ID          int          `json:"id"`
	Name        string       `json:"name"`
	Year        int          `json:"year"`
	Rating      *float64     `json:"rating"`
	Description string       `json:"description"`
	ImageURL    *string      `json:"image_url,omitempty"`
	Genre       []ds.Genre   `json:"genre"`
	Category    *ds.Category `json:"category"`
}

func titleResponse(title *ds.Title, rating *float64) TitleResponse {
	response := TitleResponse{
		ID:          title.TitleID,
		Name:        title.Name,
		Year:        title.Year,
		Rating:      rating,
		Description: title.Description,
		ImageURL:    title.ImageURL,
		Genre:       title.Genres,
	}
	if response.Genre == nil {
		response.Genre = []ds.Genre{}
	}
	if title.CategoryID != nil {
		category := title.Category
		response.Category = &category
	}
	return response
}

// GetTitles godoc
// @Summary Список произведений
// @Description Список с фильтрами и средним баллом отзывов
// @Tags titles
// @Produce json
// @Param name query string false "Поиск по названию"
// @Param year query int false "Год выпуска"
// @Param category query string false "Слаг категории"
// @Param genre query string false "Слаг жанра"
// @Success 200 {array} TitleResponse
// @Router /titles [get]
func (h *Handler) GetTitles(ctx *gin.Context) {
	limit, offset := paginate(ctx)

	filter := repositoryTitleFilter(ctx)

	titles, err := h.Repository.GetTitles(filter, limit, offset)
	if err != nil {
		h.errorHandler(ctx, http.StatusInternalServerError, err)
		return
	}

	titleIDs := make([]int, 0, len(titles))
	for i := range titles {
		titleIDs = append(titleIDs, titles[i].TitleID)
	}

	ratings, err := h.Repository.GetTitleRatings(titleIDs)
	if err != nil {
		h.errorHandler(ctx, http.StatusInternalServerError, err)
		return
	}

	response := make([]TitleResponse, 0, len(titles))
	for i := range titles {
		var rating *float64
		if value, ok := ratings[titles[i].TitleID]; ok {
			rating = &value
		}
		response = append(response, titleResponse(&titles[i], rating))
	}

	ctx.JSON(http.StatusOK, response)
}

// GET /api/titles/:title_id
func (h *Handler) GetTitle(ctx *gin.Context) {
	id, err := pathID(ctx, "title_id")
	if err != nil {
		h.errorHandler(ctx, http.StatusBadRequest, err)
		return
	}

	title, err := h.Repository.GetTitle(id)
	if err != nil {
		h.errorHandler(ctx, http.StatusNotFound, err)
		return
	}

	ratings, err := h.Repository.GetTitleRatings([]int{title.TitleID})
	if err != nil {
		h.errorHandler(ctx, http.StatusInternalServerError, err)
		return
	}

	var rating *float64
	if value, ok := ratings[title.TitleID]; ok {
		rating = &value
	}

	ctx.JSON(http.StatusOK, titleResponse(&title, rating))
}

// POST /api/titles - добавление произведения (админ)
func (h *Handler) CreateTitle(ctx *gin.Context) {
	var req struct {
		Name        string   `json:"name" binding:"required,max=256"`
		Year        int      `json:"year" binding:"required"`
		Description string   `json:"description"`
		Genre       []string `json:"genre" binding:"required,min=1"`
		Category    string   `json:"category" binding:"required"`
	}

	if err := ctx.ShouldBindJSON(&req); err != nil {
		h.bindingErrorHandler(ctx, err)
		return
	}

	if req.Year < minTitleYear || req.Year > time.Now().Year() {
		h.fieldErrorHandler(ctx, http.StatusBadRequest, "year",
			"год выпуска должен быть между 1800 и текущим")
		return
	}

	category, err := h.Repository.GetCategoryBySlug(req.Category)
	if err != nil {
		h.fieldErrorHandler(ctx, http.StatusBadRequest, "category", err.Error())
		return
	}

	genres, err := h.Repository.GetGenresBySlugs(req.Genre)
	if err != nil {
		h.fieldErrorHandler(ctx, http.StatusBadRequest, "genre", err.Error())
		return
	}

	title := &ds.Title{
		Name:        req.Name,
		Year:        req.Year,
		Description: req.Description,
		CategoryID:  &category.CategoryID,
		Category:    category,
		Genres:      genres,
	}

	if err := h.Repository.CreateTitle(title); err != nil {
		h.errorHandler(ctx, http.StatusInternalServerError, err)
		return
	}

	ctx.JSON(http.StatusCreated, titleResponse(title, nil))
}

// PATCH /api/titles/:title_id - изменение произведения (админ)
func (h *Handler) UpdateTitle(ctx *gin.Context) {
	id, err := pathID(ctx, "title_id")
	if err != nil {
		h.errorHandler(ctx, http.StatusBadRequest, err)
		return
	}

	title, err := h.Repository.GetTitle(id)
	if err != nil {
		h.errorHandler(ctx, http.StatusNotFound, err)
		return
	}

	var req struct {
		Name        *string  `json:"name"`
		Year        *int     `json:"year"`
		Description *string  `json:"description"`
		Genre       []string `json:"genre"`
		Category    *string  `json:"category"`
	}

	if err := ctx.ShouldBindJSON(&req); err != nil {
		h.bindingErrorHandler(ctx, err)
		return
	}

	updates := make(map[string]interface{})

	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Year != nil {
		if *req.Year < minTitleYear || *req.Year > time.Now().Year() {
			h.fieldErrorHandler(ctx, http.StatusBadRequest, "year",
				"год выпуска должен быть между 1800 и текущим")
			return
		}
		updates["year"] = *req.Year
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Category != nil {
		category, err := h.Repository.GetCategoryBySlug(*req.Category)
		if err != nil {
			h.fieldErrorHandler(ctx, http.StatusBadRequest, "category", err.Error())
			return
		}
		updates["category_id"] = category.CategoryID
	}

	if len(updates) > 0 {
		if err := h.Repository.UpdateTitle(id, updates); err != nil {
			h.errorHandler(ctx, http.StatusInternalServerError, err)
			return
		}
	}

	if req.Genre != nil {
		genres, err := h.Repository.GetGenresBySlugs(req.Genre)
		if err != nil {
			h.fieldErrorHandler(ctx, http.StatusBadRequest, "genre", err.Error())
			return
		}
		if err := h.Repository.ReplaceTitleGenres(&title, genres); err != nil {
			h.errorHandler(ctx, http.StatusInternalServerError, err)
			return
		}
	}

	updated, err := h.Repository.GetTitle(id)
	if err != nil {
		h.errorHandler(ctx, http.StatusInternalServerError, err)
		return
	}

	ratings, err := h.Repository.GetTitleRatings([]int{id})
	if err != nil {
		h.errorHandler(ctx, http.StatusInternalServerError, err)
		return
	}

	var rating *float64
	if value, ok := ratings[id]; ok {
		rating = &value
	}

	ctx.JSON(http.StatusOK, titleResponse(&updated, rating))
}

// DELETE /api/titles/:title_id - удаление произведения (админ).
// Отзывы и комментарии удаляются каскадом.
func (h *Handler) DeleteTitle(ctx *gin.Context) {
	id, err := pathID(ctx, "title_id")
	if err != nil {
		h.errorHandler(ctx, http.StatusBadRequest, err)
		return
	}

	if err := h.Repository.DeleteTitle(id); err != nil {
		h.errorHandler(ctx, http.StatusNotFound, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// POST /api/titles/:title_id/image - загрузка постера произведения (админ)
func (h *Handler) UploadTitleImage(ctx *gin.Context) {
	id, err := pathID(ctx, "title_id")
	if err != nil {
		h.errorHandler(ctx, http.StatusBadRequest, err)
		return
	}

	title, err := h.Repository.GetTitle(id)
	if err != nil {
		h.errorHandler(ctx, http.StatusNotFound, err)
		return
	}

	file, header, err := ctx.Request.FormFile("image")
	if err != nil {
		h.errorHandler(ctx, http.StatusBadRequest, fmt.Errorf("failed to get file: %v", err))
		return
	}
	defer file.Close()

	if !isImageFile(header.Filename) {
		h.errorHandler(ctx, http.StatusBadRequest, fmt.Errorf("file must be an image (jpg, jpeg, png, gif)"))
		return
	}

	if header.Size > 10*1024*1024 {
		h.errorHandler(ctx, http.StatusBadRequest, fmt.Errorf("file size must be less than 10MB"))
		return
	}

	fileExt := strings.ToLower(filepath.Ext(header.Filename))
	fileName := generateFileName(fileExt)

	imageURL, err := h.Repository.UploadFile(ctx, fileName, file, header.Size)
	if err != nil {
		h.errorHandler(ctx, http.StatusInternalServerError, fmt.Errorf("failed to upload image: %v", err))
		return
	}

	// Старый постер удаляем в фоне
	if title.ImageURL != nil && *title.ImageURL != "" {
		oldFileName := getFileNameFromURL(*title.ImageURL)
		if oldFileName != "" {
			go func() {
				deleteCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				h.Repository.DeleteFile(deleteCtx, oldFileName)
			}()
		}
	}

	if err := h.Repository.UpdateTitleImage(id, &imageURL); err != nil {
		go func() {
			deleteCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			h.Repository.DeleteFile(deleteCtx, fileName)
		}()

		h.errorHandler(ctx, http.StatusInternalServerError, fmt.Errorf("failed to update title: %v", err))
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"message":   "Image uploaded successfully",
		"image_url": imageURL,
	})
}

func repositoryTitleFilter(ctx *gin.Context) repository.TitleFilter {
	var filter repository.TitleFilter
	filter.Name = ctx.Query("name")
	filter.CategorySlug = ctx.Query("category")
	filter.GenreSlug = ctx.Query("genre")
	if yearStr := ctx.Query("year"); yearStr != "" {
		if year, err := strconv.Atoi(yearStr); err == nil {
			filter.Year = &year
		}
	}
	return filter
}

// Вспомогательные функции для работы с изображениями
func isImageFile(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	allowedExts := []string{".jpg", ".jpeg", ".png", ".gif", ".bmp", ".webp"}

	for _, allowed := range allowedExts {
		if ext == allowed {
			return true
		}
	}
	return false
}

func generateFileName(ext string) string {
	uuid := uuid.New().String()
	timestamp := time.Now().Format("20060102_150405")
	return fmt.Sprintf("title_%s_%s%s", timestamp, uuid, ext)
}

func getFileNameFromURL(url string) string {
	parts := strings.Split(url, "/")
	if len(parts) > 0 {
		return parts[len(parts)-1]
	}
	return ""
}
