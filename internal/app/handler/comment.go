package handler

import (
	"errors"
	"net/http"
	"time"

	"api_yamdb/internal/app/authz"
	"api_yamdb/internal/app/ds"

	"github.com/gin-gonic/gin"
)

type CommentResponse struct {
	ID      int       `json:"id"`
	Text    string    `json:"text"`
	Author  string    `json:"author"`
	PubDate time.Time `json:"pub_date"`
}

func commentResponse(comment *ds.Comment) CommentResponse {
	return CommentResponse{
		ID:      comment.CommentID,
		Text:    comment.Text,
		Author:  comment.Author.Username,
		PubDate: comment.PubDate,
	}
}

// commentPath разбирает и проверяет сегменты пути комментариев.
// Отзыв ищется строго по паре (title_id, review_id): отзыв под другим
// произведением не раскрывается, путь считается не найденным.
func (h *Handler) commentPath(ctx *gin.Context) (titleID, reviewID int, ok bool) {
	titleID, err := pathID(ctx, "title_id")
	if err != nil {
		h.errorHandler(ctx, http.StatusBadRequest, err)
		return 0, 0, false
	}

	reviewID, err = pathID(ctx, "review_id")
	if err != nil {
		h.errorHandler(ctx, http.StatusBadRequest, err)
		return 0, 0, false
	}

	if _, err := h.Repository.GetReviewByPath(titleID, reviewID); err != nil {
		h.errorHandler(ctx, http.StatusNotFound, err)
		return 0, 0, false
	}

	return titleID, reviewID, true
}

// GetComments godoc
// @Summary Список комментариев к отзыву
// @Tags comments
// @Produce json
// @Success 200 {array} CommentResponse
// @Failure 404 {object} ErrorResponse
// @Router /titles/{title_id}/reviews/{review_id}/comments [get]
func (h *Handler) GetComments(ctx *gin.Context) {
	titleID, reviewID, ok := h.commentPath(ctx)
	if !ok {
		return
	}

	limit, offset := paginate(ctx)

	comments, err := h.Repository.GetComments(titleID, reviewID, limit, offset)
	if err != nil {
		h.errorHandler(ctx, http.StatusInternalServerError, err)
		return
	}

	response := make([]CommentResponse, 0, len(comments))
	for i := range comments {
		response = append(response, commentResponse(&comments[i]))
	}

	ctx.JSON(http.StatusOK, response)
}

// GET /api/titles/:title_id/reviews/:review_id/comments/:comment_id
func (h *Handler) GetComment(ctx *gin.Context) {
	titleID, reviewID, ok := h.commentPath(ctx)
	if !ok {
		return
	}

	commentID, err := pathID(ctx, "comment_id")
	if err != nil {
		h.errorHandler(ctx, http.StatusBadRequest, err)
		return
	}

	comment, err := h.Repository.GetCommentByPath(titleID, reviewID, commentID)
	if err != nil {
		h.errorHandler(ctx, http.StatusNotFound, err)
		return
	}

	ctx.JSON(http.StatusOK, commentResponse(&comment))
}

// POST /api/titles/:title_id/reviews/:review_id/comments - добавление
// комментария к отзыву
func (h *Handler) CreateComment(ctx *gin.Context) {
	titleID, reviewID, ok := h.commentPath(ctx)
	if !ok {
		return
	}

	var req struct {
		Text string `json:"text" binding:"required"`
	}

	if err := ctx.ShouldBindJSON(&req); err != nil {
		h.bindingErrorHandler(ctx, err)
		return
	}

	comment := &ds.Comment{
		ReviewID: reviewID,
		AuthorID: h.actor(ctx).UserID,
		Text:     req.Text,
	}

	if err := h.Repository.CreateComment(comment); err != nil {
		h.errorHandler(ctx, http.StatusInternalServerError, err)
		return
	}

	created, err := h.Repository.GetCommentByPath(titleID, reviewID, comment.CommentID)
	if err != nil {
		h.errorHandler(ctx, http.StatusInternalServerError, err)
		return
	}

	ctx.JSON(http.StatusCreated, commentResponse(&created))
}

// PATCH /api/titles/:title_id/reviews/:review_id/comments/:comment_id -
// правка комментария (автор, модератор или админ)
func (h *Handler) UpdateComment(ctx *gin.Context) {
	titleID, reviewID, ok := h.commentPath(ctx)
	if !ok {
		return
	}

	commentID, err := pathID(ctx, "comment_id")
	if err != nil {
		h.errorHandler(ctx, http.StatusBadRequest, err)
		return
	}

	comment, err := h.Repository.GetCommentByPath(titleID, reviewID, commentID)
	if err != nil {
		h.errorHandler(ctx, http.StatusNotFound, err)
		return
	}

	if !authz.AdminModeratorAuthorOrReadOnly(h.actor(ctx), ctx.Request.Method, comment.AuthorID) {
		h.errorHandler(ctx, http.StatusForbidden, errors.New("нет прав на изменение чужого комментария"))
		return
	}

	var req struct {
		Text *string `json:"text"`
	}

	if err := ctx.ShouldBindJSON(&req); err != nil {
		h.bindingErrorHandler(ctx, err)
		return
	}

	if req.Text != nil {
		err = h.Repository.UpdateComment(commentID, map[string]interface{}{"text": *req.Text})
		if err != nil {
			h.errorHandler(ctx, http.StatusInternalServerError, err)
			return
		}
	}

	updated, err := h.Repository.GetCommentByPath(titleID, reviewID, commentID)
	if err != nil {
		h.errorHandler(ctx, http.StatusInternalServerError, err)
		return
	}

	ctx.JSON(http.StatusOK, commentResponse(&updated))
}

// DELETE /api/titles/:title_id/reviews/:review_id/comments/:comment_id -
// удаление комментария (автор, модератор или админ)
func (h *Handler) DeleteComment(ctx *gin.Context) {
	titleID, reviewID, ok := h.commentPath(ctx)
	if !ok {
		return
	}

	commentID, err := pathID(ctx, "comment_id")
	if err != nil {
		h.errorHandler(ctx, http.StatusBadRequest, err)
		return
	}

	comment, err := h.Repository.GetCommentByPath(titleID, reviewID, commentID)
	if err != nil {
		h.errorHandler(ctx, http.StatusNotFound, err)
		return
	}

	if !authz.AdminModeratorAuthorOrReadOnly(h.actor(ctx), ctx.Request.Method, comment.AuthorID) {
		h.errorHandler(ctx, http.StatusForbidden, errors.New("нет прав на удаление чужого комментария"))
		return
	}

	if err := h.Repository.DeleteComment(commentID); err != nil {
		h.errorHandler(ctx, http.StatusInternalServerError, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}
