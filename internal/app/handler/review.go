package handler

import (
	"errors"
	"net/http"
	"time"

	"api_yamdb/internal/app/authz"
	"api_yamdb/internal/app/ds"
	"api_yamdb/internal/app/repository"

	"github.com/gin-gonic/gin"
)

type ReviewResponse struct {
	ID      int       `json:"id"`
	Text    string    `json:"text"`
	Author  string    `json:"author"`
	Score   int       `json:"score"`
	PubDate time.Time `json:"pub_date"`
}

func reviewResponse(review *ds.Review) ReviewResponse {
	return ReviewResponse{
		ID:      review.ReviewID,
		Text:    review.Text,
		Author:  review.Author.Username,
		Score:   review.Score,
		PubDate: review.PubDate,
	}
}

// GetReviews godoc
// @Summary Список отзывов на произведение
// @Tags reviews
// @Produce json
// @Success 200 {array} ReviewResponse
// @Failure 404 {object} ErrorResponse
// @Router /titles/{title_id}/reviews [get]
func (h *Handler) GetReviews(ctx *gin.Context) {
	titleID, err := pathID(ctx, "title_id")
	if err != nil {
		h.errorHandler(ctx, http.StatusBadRequest, err)
		return
	}

	if _, err := h.Repository.GetTitle(titleID); err != nil {
		h.errorHandler(ctx, http.StatusNotFound, err)
		return
	}

	limit, offset := paginate(ctx)

	reviews, err := h.Repository.GetReviews(titleID, limit, offset)
	if err != nil {
		h.errorHandler(ctx, http.StatusInternalServerError, err)
		return
	}

	response := make([]ReviewResponse, 0, len(reviews))
	for i := range reviews {
		response = append(response, reviewResponse(&reviews[i]))
	}

	ctx.JSON(http.StatusOK, response)
}

// GET /api/titles/:title_id/reviews/:review_id
func (h *Handler) GetReview(ctx *gin.Context) {
	titleID, err := pathID(ctx, "title_id")
	if err != nil {
		h.errorHandler(ctx, http.StatusBadRequest, err)
		return
	}

	reviewID, err := pathID(ctx, "review_id")
	if err != nil {
		h.errorHandler(ctx, http.StatusBadRequest, err)
		return
	}

	review, err := h.Repository.GetReviewByPath(titleID, reviewID)
	if err != nil {
		h.errorHandler(ctx, http.StatusNotFound, err)
		return
	}

	ctx.JSON(http.StatusOK, reviewResponse(&review))
}

// POST /api/titles/:title_id/reviews - добавление отзыва.
// На произведение допускается один отзыв от автора.
func (h *Handler) CreateReview(ctx *gin.Context) {
	titleID, err := pathID(ctx, "title_id")
	if err != nil {
		h.errorHandler(ctx, http.StatusBadRequest, err)
		return
	}

	title, err := h.Repository.GetTitle(titleID)
	if err != nil {
		h.errorHandler(ctx, http.StatusNotFound, err)
		return
	}

	var req struct {
		Text  string `json:"text" binding:"required"`
		Score int    `json:"score" binding:"required,min=1,max=10"`
	}

	if err := ctx.ShouldBindJSON(&req); err != nil {
		h.bindingErrorHandler(ctx, err)
		return
	}

	actor := h.actor(ctx)

	exists, err := h.Repository.ReviewExists(title.TitleID, actor.UserID)
	if err != nil {
		h.errorHandler(ctx, http.StatusInternalServerError, err)
		return
	}
	if exists {
		h.errorHandler(ctx, http.StatusBadRequest, repository.ErrReviewExists)
		return
	}

	review := &ds.Review{
		TitleID:  title.TitleID,
		AuthorID: actor.UserID,
		Text:     req.Text,
		Score:    req.Score,
	}

	if err := h.Repository.CreateReview(review); err != nil {
		// Гонка двух одновременных отзывов: уникальный индекс
		// пропустил только первый
		if errors.Is(err, repository.ErrReviewExists) {
			h.errorHandler(ctx, http.StatusBadRequest, err)
			return
		}
		h.errorHandler(ctx, http.StatusInternalServerError, err)
		return
	}

	created, err := h.Repository.GetReviewByPath(titleID, review.ReviewID)
	if err != nil {
		h.errorHandler(ctx, http.StatusInternalServerError, err)
		return
	}

	ctx.JSON(http.StatusCreated, reviewResponse(&created))
}

// PATCH /api/titles/:title_id/reviews/:review_id - правка отзыва
// (автор, модератор или админ)
func (h *Handler) UpdateReview(ctx *gin.Context) {
	titleID, err := pathID(ctx, "title_id")
	if err != nil {
		h.errorHandler(ctx, http.StatusBadRequest, err)
		return
	}

	reviewID, err := pathID(ctx, "review_id")
	if err != nil {
		h.errorHandler(ctx, http.StatusBadRequest, err)
		return
	}

	review, err := h.Repository.GetReviewByPath(titleID, reviewID)
	if err != nil {
		h.errorHandler(ctx, http.StatusNotFound, err)
		return
	}

	if !authz.AdminModeratorAuthorOrReadOnly(h.actor(ctx), ctx.Request.Method, review.AuthorID) {
		h.errorHandler(ctx, http.StatusForbidden, errors.New("нет прав на изменение чужого отзыва"))
		return
	}

	var req struct {
		Text  *string `json:"text"`
		Score *int    `json:"score"`
	}

	if err := ctx.ShouldBindJSON(&req); err != nil {
		h.bindingErrorHandler(ctx, err)
		return
	}

	updates := make(map[string]interface{})

	if req.Text != nil {
		updates["text"] = *req.Text
	}
	if req.Score != nil {
		if *req.Score < 1 || *req.Score > 10 {
			h.fieldErrorHandler(ctx, http.StatusBadRequest, "score",
				"балл должен быть от 1 до 10")
			return
		}
		updates["score"] = *req.Score
	}

	if len(updates) > 0 {
		if err := h.Repository.UpdateReview(reviewID, updates); err != nil {
			h.errorHandler(ctx, http.StatusInternalServerError, err)
			return
		}
	}

	updated, err := h.Repository.GetReviewByPath(titleID, reviewID)
	if err != nil {
		h.errorHandler(ctx, http.StatusInternalServerError, err)
		return
	}

	ctx.JSON(http.StatusOK, reviewResponse(&updated))
}

// DELETE /api/titles/:title_id/reviews/:review_id - удаление отзыва
// (автор, модератор или админ). Комментарии удаляются каскадом.
func (h *Handler) DeleteReview(ctx *gin.Context) {
	titleID, err := pathID(ctx, "title_id")
	if err != nil {
		h.errorHandler(ctx, http.StatusBadRequest, err)
		return
	}

	reviewID, err := pathID(ctx, "review_id")
	if err != nil {
		h.errorHandler(ctx, http.StatusBadRequest, err)
		return
	}

	review, err := h.Repository.GetReviewByPath(titleID, reviewID)
	if err != nil {
		h.errorHandler(ctx, http.StatusNotFound, err)
		return
	}

	if !authz.AdminModeratorAuthorOrReadOnly(h.actor(ctx), ctx.Request.Method, review.AuthorID) {
		h.errorHandler(ctx, http.StatusForbidden, errors.New("нет прав на удаление чужого отзыва"))
		return
	}

	if err := h.Repository.DeleteReview(reviewID); err != nil {
		h.errorHandler(ctx, http.StatusInternalServerError, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}
