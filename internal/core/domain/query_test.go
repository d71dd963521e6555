package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr(v float64) *float64 { return &v }

func TestListingQuery_PriceRange(t *testing.T) {
	t.Parallel()

	q := ListingQuery{PriceMin: ptr(50), PriceMax: ptr(100)}

	assert.False(t, q.Matches(DisplayListing{Price: "$40.00"}))
	assert.True(t, q.Matches(DisplayListing{Price: "$75"}))
	assert.True(t, q.Matches(DisplayListing{Price: "100"}))
	assert.True(t, q.Matches(DisplayListing{Price: "$50"}))
	assert.False(t, q.Matches(DisplayListing{Price: "$1,000"}))
	assert.False(t, q.Matches(DisplayListing{Price: ""}), "null price never matches a bound")
}

func TestListingQuery_TextIsCaseInsensitiveSubstring(t *testing.T) {
	t.Parallel()

	q := ListingQuery{Text: &TextMatch{Fields: []string{"host name"}, Term: "MADA"}}
	assert.True(t, q.Matches(DisplayListing{HostName: "Madaline"}))
	assert.False(t, q.Matches(DisplayListing{HostName: "Jenna"}))

	quick := QuickSearchQuery("  park ")
	assert.True(t, quick.Matches(DisplayListing{ID: "1", Name: "Home by the Park"}))
	assert.True(t, quick.Matches(DisplayListing{ID: "park-7"}))
}

func TestListingQuery_EqualityAndRating(t *testing.T) {
	t.Parallel()

	q := ListingQuery{RoomType: "Private room", NeighbourhoodGroup: "Brooklyn", MinRating: ptr(4)}

	assert.True(t, q.Matches(DisplayListing{RoomType: "Private room", NeighbourhoodGroup: "Brooklyn", ReviewRateNumber: "5"}))
	assert.False(t, q.Matches(DisplayListing{RoomType: "Private room", NeighbourhoodGroup: "Brooklyn", ReviewRateNumber: "3"}))
	assert.False(t, q.Matches(DisplayListing{RoomType: "Private room", NeighbourhoodGroup: "Queens", ReviewRateNumber: "5"}))
	assert.False(t, q.Matches(DisplayListing{RoomType: "private room", NeighbourhoodGroup: "Brooklyn", ReviewRateNumber: "5"}))
	assert.False(t, q.Matches(DisplayListing{RoomType: "Private room", NeighbourhoodGroup: "Brooklyn"}))
}

func TestSearchRequest_Plan(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		req       SearchRequest
		wantErr   string
		wantDesc  string
		wantLimit int
	}{
		{name: "missing type", req: SearchRequest{Value: "x"}, wantErr: "Please select a search type"},
		{name: "unknown type", req: SearchRequest{Type: "zip", Value: "x"}, wantErr: "Invalid search type"},
		{name: "blank value", req: SearchRequest{Type: "name", Value: "  "}, wantErr: "Please enter a search value"},
		{name: "no price bounds", req: SearchRequest{Type: "price_range"}, wantErr: "Please provide at least one price value (min or max)"},
		{name: "bad price bound", req: SearchRequest{Type: "price_range", MinPrice: "cheap"}, wantErr: "Invalid minimum price"},
		{name: "host name", req: SearchRequest{Type: "host_name", Value: " Ann "}, wantDesc: "Host Name: Ann", wantLimit: SearchLimit},
		{name: "room type", req: SearchRequest{Type: "room_type", Value: "Shared"}, wantDesc: "Room Type: Shared", wantLimit: SearchLimit},
		{name: "min only", req: SearchRequest{Type: "price_range", MinPrice: "50"}, wantDesc: "Price Range: $50 - $Any", wantLimit: PriceRangeLimit},
		{name: "max only", req: SearchRequest{Type: "price_range", MaxPrice: "$100"}, wantDesc: "Price Range: $0 - $100", wantLimit: PriceRangeLimit},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			plan, err := tt.req.Plan()
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.True(t, errors.Is(err, ErrValidation))
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantDesc, plan.Description)
			assert.Equal(t, tt.wantLimit, plan.Limit)
		})
	}
}

func TestSearchRequest_PlanBuildsQuery(t *testing.T) {
	t.Parallel()

	plan, err := SearchRequest{Type: "id", Value: "10012"}.Plan()
	require.NoError(t, err)
	require.NotNil(t, plan.Query.Text)
	assert.Equal(t, []string{"id"}, plan.Query.Text.Fields)

	plan, err = SearchRequest{Type: "price_range", MinPrice: "50", MaxPrice: "100"}.Plan()
	require.NoError(t, err)
	assert.True(t, plan.Query.Matches(DisplayListing{Price: "$75"}))
	assert.False(t, plan.Query.Matches(DisplayListing{Price: "$40.00"}))
}

func TestFilterRequest_Query(t *testing.T) {
	t.Parallel()

	q, err := FilterRequest{RoomType: " Private room ", MinPrice: "", MaxPrice: "$200", MinRating: ""}.Query()
	require.NoError(t, err)
	assert.Equal(t, "Private room", q.RoomType)
	assert.Nil(t, q.PriceMin, "empty filter is ignored")
	require.NotNil(t, q.PriceMax)
	assert.InDelta(t, 200, *q.PriceMax, 1e-9)
	assert.Nil(t, q.MinRating)

	_, err = FilterRequest{MinRating: "high"}.Query()
	assert.ErrorIs(t, err, ErrValidation)

	_, err = FilterRequest{MaxPrice: "lots"}.Query()
	assert.ErrorIs(t, err, ErrValidation)
}
