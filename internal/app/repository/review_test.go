package repository

import (
	"testing"

	"api_yamdb/internal/app/ds"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateReviewDuplicate(t *testing.T) {
	rep := newTestRepository(t)
	user := createTestUser(t, rep, "reader")
	title := createTestTitle(t, rep, "Побег из Шоушенка")

	first := &ds.Review{TitleID: title.TitleID, AuthorID: user.UserID, Text: "отлично", Score: 10}
	require.NoError(t, rep.CreateReview(first))

	// Уникальный индекс (title_id, author_id) пропускает только первый отзыв
	second := &ds.Review{TitleID: title.TitleID, AuthorID: user.UserID, Text: "передумал", Score: 5}
	err := rep.CreateReview(second)
	assert.ErrorIs(t, err, ErrReviewExists)
}

func TestCreateReviewDifferentAuthors(t *testing.T) {
	rep := newTestRepository(t)
	first := createTestUser(t, rep, "reader")
	second := createTestUser(t, rep, "critic")
	title := createTestTitle(t, rep, "Побег из Шоушенка")

	require.NoError(t, rep.CreateReview(&ds.Review{TitleID: title.TitleID, AuthorID: first.UserID, Text: "а", Score: 10}))
	require.NoError(t, rep.CreateReview(&ds.Review{TitleID: title.TitleID, AuthorID: second.UserID, Text: "б", Score: 6}))
}

func TestReviewExists(t *testing.T) {
	rep := newTestRepository(t)
	user := createTestUser(t, rep, "reader")
	title := createTestTitle(t, rep, "Догвилль")

	exists, err := rep.ReviewExists(title.TitleID, user.UserID)
	require.NoError(t, err)
	assert.False(t, exists)

	require.NoError(t, rep.CreateReview(&ds.Review{TitleID: title.TitleID, AuthorID: user.UserID, Text: "мрачно", Score: 8}))

	exists, err = rep.ReviewExists(title.TitleID, user.UserID)
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestGetReviewByPath(t *testing.T) {
	rep := newTestRepository(t)
	user := createTestUser(t, rep, "reader")
	first := createTestTitle(t, rep, "Интерстеллар")
	second := createTestTitle(t, rep, "Мементо")

	review := &ds.Review{TitleID: first.TitleID, AuthorID: user.UserID, Text: "космос", Score: 9}
	require.NoError(t, rep.CreateReview(review))

	found, err := rep.GetReviewByPath(first.TitleID, review.ReviewID)
	require.NoError(t, err)
	assert.Equal(t, "reader", found.Author.Username)

	// Отзыв существует, но путь указывает на другое произведение
	_, err = rep.GetReviewByPath(second.TitleID, review.ReviewID)
	assert.ErrorIs(t, err, ErrReviewNotFound)
}

func TestGetTitleRatings(t *testing.T) {
	rep := newTestRepository(t)
	first := createTestUser(t, rep, "reader")
	second := createTestUser(t, rep, "critic")
	rated := createTestTitle(t, rep, "Матрица")
	unrated := createTestTitle(t, rep, "Матрица 2")

	require.NoError(t, rep.CreateReview(&ds.Review{TitleID: rated.TitleID, AuthorID: first.UserID, Text: "а", Score: 10}))
	require.NoError(t, rep.CreateReview(&ds.Review{TitleID: rated.TitleID, AuthorID: second.UserID, Text: "б", Score: 7}))

	ratings, err := rep.GetTitleRatings([]int{rated.TitleID, unrated.TitleID})
	require.NoError(t, err)

	assert.InDelta(t, 8.5, ratings[rated.TitleID], 0.001)

	// Произведение без отзывов в карте отсутствует
	_, ok := ratings[unrated.TitleID]
	assert.False(t, ok)
}
