package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrepareForCreate_ReportsEveryMissingField(t *testing.T) {
	t.Parallel()

	l := DisplayListing{ID: "1", Name: "Loft", Price: "  "}
	err := l.PrepareForCreate()

	var vErr *ValidationError
	require.True(t, errors.As(err, &vErr))
	assert.ErrorIs(t, err, ErrValidation)
	assert.Equal(t, []string{
		"host id", "host name", "neighbourhood group", "neighbourhood",
		"room type", "price", "property_type", "thumbnail",
	}, vErr.Missing)
	assert.Equal(t,
		"Please fill all required fields. Missing: host_id, host_name, neighbourhood_group, neighbourhood, room_type, price, property_type, thumbnail",
		vErr.Message)
}

func TestPrepareForCreate_AppliesDefaults(t *testing.T) {
	t.Parallel()

	l := sampleDisplay()
	l.ID = "42"
	l.Price = "$1,200"
	l.ServiceFee = ""
	l.Country = ""
	l.Images = nil

	require.NoError(t, l.PrepareForCreate())

	assert.Equal(t, "1200", l.Price)
	assert.Equal(t, "$0", l.ServiceFee)
	assert.Equal(t, "United States", l.Country)
	assert.Equal(t, "strict", l.CancellationPolicy, "provided values are kept")
	assert.Equal(t, []string{
		"https://picsum.photos/seed/42a/600/400",
		"https://picsum.photos/seed/42b/600/400",
	}, l.Images)
}

func TestListingPatch(t *testing.T) {
	t.Parallel()

	p := NewListingPatch()
	assert.True(t, p.IsEmpty())

	assert.False(t, p.Set("id", "new-id"), "id is immutable")
	assert.False(t, p.Set("bogus", "x"))
	assert.True(t, p.Set("price", "$1,500"))
	assert.True(t, p.Set("host name", "Ann"))
	assert.True(t, p.Set("NAME", "Loft"))
	assert.False(t, p.IsEmpty())

	l := DisplayListing{ID: "1", Price: "10", HostName: "Old"}
	p.Apply(&l)
	assert.Equal(t, "1", l.ID)
	assert.Equal(t, "1500", l.Price)
	assert.Equal(t, "Ann", l.HostName)

	assert.Equal(t, []string{"host_name"}, p.ReplacedAliases())
}

func TestPatchFromDocument(t *testing.T) {
	t.Parallel()

	p, err := PatchFromDocument(map[string]any{
		"id":        "ignored",
		"room type": "Shared room",
		"license":   nil,
		"images":    []any{"x.jpg"},
		"extra":     1,
	})
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"room type": "Shared room", "license": ""}, p.Fields)
	assert.True(t, p.ImagesSet)
	assert.Equal(t, []string{"x.jpg"}, p.Images)

	_, err = PatchFromDocument(map[string]any{"price": 75})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = PatchFromDocument(map[string]any{"images": "a,b"})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestListingExistsError(t *testing.T) {
	t.Parallel()

	err := error(&ListingExistsError{ID: "7"})
	assert.ErrorIs(t, err, ErrListingExists)
	assert.Equal(t, "Listing with ID 7 already exists", err.Error())
}
