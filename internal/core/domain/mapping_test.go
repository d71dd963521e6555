package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleDisplay() DisplayListing {
	return DisplayListing{
		ID:                          "1001254",
		Name:                        "Clean & quiet apt home by the park",
		HostID:                      "80014485718",
		HostIdentityVerified:        "unconfirmed",
		HostName:                    "Madaline",
		NeighbourhoodGroup:          "Brooklyn",
		Neighbourhood:               "Kensington",
		Lat:                         "40.64749",
		Long:                        "-73.97237",
		Country:                     "United States",
		CountryCode:                 "US",
		InstantBookable:             "FALSE",
		CancellationPolicy:          "strict",
		RoomType:                    "Private room",
		ConstructionYear:            "2020",
		Price:                       "$1,234.50",
		ServiceFee:                  "$193",
		MinimumNights:               "10",
		NumberOfReviews:             "9",
		LastReview:                  "10/19/2021",
		ReviewsPerMonth:             "0.21",
		ReviewRateNumber:            "4",
		CalculatedHostListingsCount: "6",
		Availability365:             "286",
		HouseRules:                  "Clean up and treat the home the way you'd like your home to be treated.",
		License:                     "",
		PropertyType:                "apartment",
		Thumbnail:                   "https://example.test/t.jpg",
		Images:                      []string{"https://example.test/1.jpg"},
	}
}

func TestNormalize(t *testing.T) {
	t.Parallel()

	n := Normalize(sampleDisplay())

	assert.Equal(t, "1001254", n.ID)
	assert.Equal(t, "Madaline", n.HostName)
	assert.Equal(t, "Brooklyn", n.NeighbourhoodGroup)
	require.NotNil(t, n.Price)
	assert.InDelta(t, 1234.50, *n.Price, 1e-9)
	require.NotNil(t, n.ServiceFee)
	assert.InDelta(t, 193, *n.ServiceFee, 1e-9)
	require.NotNil(t, n.LastReview)
	assert.Equal(t, time.Date(2021, 10, 19, 0, 0, 0, 0, time.UTC), *n.LastReview)
	require.NotNil(t, n.ReviewRateNumber)
	assert.InDelta(t, 4, *n.ReviewRateNumber, 1e-9)
	assert.Equal(t, "", n.License)
	assert.NotEmpty(t, n.Geohash)
	assert.Equal(t, "dr5r", n.Geohash[:4])
}

func TestNormalize_EmptyValuesBecomeNull(t *testing.T) {
	t.Parallel()

	n := Normalize(DisplayListing{ID: "x", Price: "", LastReview: "", Lat: "40.1"})

	assert.Nil(t, n.Price, "empty price must be null, not zero")
	assert.Nil(t, n.LastReview)
	assert.Nil(t, n.Long)
	assert.Empty(t, n.Geohash, "geohash needs both coordinates")
	assert.NotNil(t, n.Images)
	assert.Empty(t, n.Images)
}

func TestDisplay_RoundTrip(t *testing.T) {
	t.Parallel()

	original := sampleDisplay()
	back := Display(Normalize(original))

	assert.Equal(t, original.ID, back.ID)
	assert.Equal(t, original.HostName, back.HostName)
	assert.Equal(t, "$1,234.50", back.Price)
	assert.Equal(t, "$193", back.ServiceFee)
	assert.Equal(t, "10/19/2021", back.LastReview)
	assert.Equal(t, "40.64749", back.Lat)
	assert.Equal(t, original.Images, back.Images)
}

func TestDisplayFromDocument_DisplayShape(t *testing.T) {
	t.Parallel()

	doc := map[string]any{
		"id":         "1",
		"NAME":       "Loft",
		"host name":  "Ann",
		"room type":  "Entire home/apt",
		"price":      "$75",
		"images":     []any{"a.jpg", "", "b.jpg"},
		"createdAt":  time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC),
		"unexpected": "ignored",
	}

	l := DisplayFromDocument(doc)
	assert.Equal(t, "Ann", l.HostName)
	assert.Equal(t, "Entire home/apt", l.RoomType)
	assert.Equal(t, "$75", l.Price)
	assert.Equal(t, []string{"a.jpg", "b.jpg"}, l.Images)
	assert.Equal(t, 2024, l.CreatedAt.Year())
}

func TestDisplayFromDocument_NormalizedShape(t *testing.T) {
	t.Parallel()

	doc := map[string]any{
		"id":                  "2",
		"host_name":           "Bob",
		"neighbourhood_group": "Manhattan",
		"price":               float64(1234.5),
		"review_rate_number":  int32(5),
		"last_review":         time.Date(2021, 10, 19, 0, 0, 0, 0, time.UTC),
		"lat":                 nil,
		"instant_bookable":    true,
	}

	l := DisplayFromDocument(doc)
	assert.Equal(t, "Bob", l.HostName)
	assert.Equal(t, "Manhattan", l.NeighbourhoodGroup)
	assert.Equal(t, "$1,234.50", l.Price)
	assert.Equal(t, "5", l.ReviewRateNumber)
	assert.Equal(t, "10/19/2021", l.LastReview)
	assert.Equal(t, "", l.Lat)
	assert.Equal(t, "TRUE", l.InstantBookable)
	assert.Equal(t, []string{}, l.Images)
}

func TestDisplayFromDocument_DisplayKeyWins(t *testing.T) {
	t.Parallel()

	l := DisplayFromDocument(map[string]any{"host name": "New", "host_name": "Old"})
	assert.Equal(t, "New", l.HostName)
}

func TestSplitImages(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []string{"a", "b"}, SplitImages(" a , ,b,"))
	assert.Equal(t, []string{}, SplitImages(""))
}

func TestFieldAccessors(t *testing.T) {
	t.Parallel()

	var l DisplayListing
	for _, f := range ListingFields {
		require.True(t, l.SetField(f.Display, "v-"+f.Display), f.Display)
		assert.Equal(t, "v-"+f.Display, l.Field(f.Display))
	}
	assert.False(t, l.SetField("nope", "x"))
	assert.Equal(t, "", l.Field("nope"))
	assert.Equal(t, "host_id", FormName("host id"))
}
