package postgres

import (
	"testing"
	"time"

	"github.com/DeepPatel29/airbnbApp-Deep-N01679203/internal/core/domain"
	"github.com/stretchr/testify/assert"
)

func TestToDisplay_NormalizedDates(t *testing.T) {
	t.Parallel()

	created := time.Date(2024, time.January, 2, 3, 4, 5, 0, time.UTC)
	l := toDisplay(map[string]any{
		"id":          "42",
		"last_review": "2019-10-19T00:00:00Z",
		"price":       float64(1234.5),
		"images":      []any{"https://x"},
	}, created, created)

	assert.Equal(t, "10/19/2019", l.LastReview)
	assert.Equal(t, "$1,234.50", l.Price)
	assert.Equal(t, []string{"https://x"}, l.Images)
	assert.Equal(t, created, l.CreatedAt)
}

func TestDisplayDocument(t *testing.T) {
	t.Parallel()

	doc := displayDocument(domain.DisplayListing{ID: "1", RoomType: "Private room"})

	assert.Equal(t, "1", doc["id"])
	assert.Equal(t, "Private room", doc["room type"])
	assert.Equal(t, "", doc["price"])
	assert.Equal(t, []string{}, doc["images"])
	assert.NotContains(t, doc, "createdAt")
}
