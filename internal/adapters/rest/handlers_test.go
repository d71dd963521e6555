package rest

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/DeepPatel29/airbnbApp-Deep-N01679203/internal/adapters/memory"
	"github.com/DeepPatel29/airbnbApp-Deep-N01679203/internal/contextkeys"
	"github.com/DeepPatel29/airbnbApp-Deep-N01679203/internal/core/domain"
	"github.com/DeepPatel29/airbnbApp-Deep-N01679203/internal/core/usecase"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingPinger struct{}

func (failingPinger) Ping(context.Context) error { return errors.New("connection refused") }

func newTestRouter(t *testing.T, health HealthChecker) (http.Handler, *memory.ListingStorageAdapter) {
	t.Helper()

	store := memory.NewListingStorageAdapter()
	uc := ListingUseCases{
		List:        usecase.NewListListingsUseCase(store),
		Get:         usecase.NewGetListingUseCase(store),
		Search:      usecase.NewSearchListingsUseCase(store),
		Filter:      usecase.NewFilterListingsUseCase(store),
		QuickSearch: usecase.NewQuickSearchUseCase(store),
		Create:      usecase.NewCreateListingUseCase(store, nil),
		Update:      usecase.NewUpdateListingUseCase(store, nil),
		Delete:      usecase.NewDeleteListingUseCase(store, nil),
	}
	views, err := NewViews()
	require.NoError(t, err)
	if health == nil {
		health = store
	}

	router := NewRouter(NewWebHandler(uc, views), NewAPIHandler(uc, health), []string{"*"}, contextkeys.NoopLogger())
	return router, store
}

func seed(t *testing.T, store *memory.ListingStorageAdapter, listings ...domain.DisplayListing) {
	t.Helper()
	for _, l := range listings {
		require.NoError(t, store.Create(context.Background(), l))
	}
}

func do(router http.Handler, method, target string, body string, contentType string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func postForm(router http.Handler, target string, form url.Values) *httptest.ResponseRecorder {
	return do(router, http.MethodPost, target, form.Encode(), "application/x-www-form-urlencoded")
}

const validPayload = `{
	"id": "1001",
	"NAME": "Sunny loft",
	"host id": "h1",
	"host name": "Ann",
	"neighbourhood group": "Brooklyn",
	"neighbourhood": "Kensington",
	"room type": "Private room",
	"property_type": "apartment",
	"price": "$1,075",
	"thumbnail": "https://example.test/1001.jpg"
}`

func decodeJSON(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestAPI_CreateGetUpdateDelete(t *testing.T) {
	t.Parallel()
	router, _ := newTestRouter(t, nil)

	rec := do(router, http.MethodPost, "/api/listings", validPayload, "application/json")
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	created := decodeJSON(t, rec)
	assert.Equal(t, "1001", created["id"])
	assert.Equal(t, "1075", created["price"])
	assert.Len(t, created["images"], 2)
	require.IsType(t, "", created["createdAt"])
	assert.NotContains(t, created["createdAt"], "0001-01-01")

	rec = do(router, http.MethodGet, "/api/listing/1001", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	fetched := decodeJSON(t, rec)
	assert.Equal(t, "Sunny loft", fetched["NAME"])
	assert.Equal(t, fetched["createdAt"], created["createdAt"])

	rec = do(router, http.MethodPut, "/api/listings/1001", `{"NAME": "Sunny loft 2", "price": "$99", "id": "other"}`, "application/json")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	updated := decodeJSON(t, rec)
	assert.Equal(t, "Sunny loft 2", updated["NAME"])
	assert.Equal(t, "99", updated["price"])
	assert.Equal(t, "1001", updated["id"])

	rec = do(router, http.MethodDelete, "/api/listings/1001", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Listing deleted successfully", decodeJSON(t, rec)["message"])

	rec = do(router, http.MethodGet, "/api/listing/1001", "", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Listing not found", decodeJSON(t, rec)["error"])
}

func TestAPI_CreateErrors(t *testing.T) {
	t.Parallel()
	router, _ := newTestRouter(t, nil)

	require.Equal(t, http.StatusCreated, do(router, http.MethodPost, "/api/listings", validPayload, "application/json").Code)

	tests := []struct {
		name    string
		body    string
		wantErr string
	}{
		{name: "duplicate id", body: validPayload, wantErr: "Listing with ID 1001 already exists"},
		{name: "missing fields", body: `{"id": "2"}`, wantErr: "Please fill all required fields. Missing: NAME, host_id"},
		{name: "malformed json", body: `{"id": `, wantErr: "not valid JSON"},
		{name: "schema violation", body: `{"id": "3", "price": 10}`, wantErr: "schema validation failed"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(router, http.MethodPost, "/api/listings", tt.body, "application/json")
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			message := decodeJSON(t, rec)["error"]
			assert.Contains(t, message, tt.wantErr)
			assert.NotContains(t, message, "file://")
		})
	}
}

func TestAPI_MissingListing(t *testing.T) {
	t.Parallel()
	router, store := newTestRouter(t, nil)

	assert.Equal(t, http.StatusNotFound, do(router, http.MethodPut, "/api/listings/nope", `{"NAME": "x"}`, "application/json").Code)
	assert.Equal(t, http.StatusNotFound, do(router, http.MethodDelete, "/api/listings/nope", "", "").Code)

	count, err := store.Count(context.Background())
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestAPI_ListEmptyIsArray(t *testing.T) {
	t.Parallel()
	router, _ := newTestRouter(t, nil)

	rec := do(router, http.MethodGet, "/api/listings", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestHealth(t *testing.T) {
	t.Parallel()

	router, _ := newTestRouter(t, nil)
	rec := do(router, http.MethodGet, "/health", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())

	router, _ = newTestRouter(t, failingPinger{})
	rec = do(router, http.MethodGet, "/health", "", "")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestWeb_HomeAndNotFound(t *testing.T) {
	t.Parallel()
	router, _ := newTestRouter(t, nil)

	rec := do(router, http.MethodGet, "/", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "<title>QuickRentals</title>")

	rec = do(router, http.MethodGet, "/no/such/page", "", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "Route not found")

	rec = do(router, http.MethodGet, "/listing/missing", "", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "Listing not found")
}

func TestWeb_QuickSearch(t *testing.T) {
	t.Parallel()
	router, store := newTestRouter(t, nil)
	seed(t, store,
		domain.DisplayListing{ID: "501", Name: "Harbor view"},
		domain.DisplayListing{ID: "502", Name: "Garden flat"},
	)

	rec := do(router, http.MethodGet, "/quick-search?quickSearch=%20%20", "", "")
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/listings", rec.Header().Get("Location"))

	rec = do(router, http.MethodGet, "/quick-search?quickSearch=HARBOR", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Harbor view")
	assert.NotContains(t, rec.Body.String(), "Garden flat")
}

func TestWeb_PriceRangeSearch(t *testing.T) {
	t.Parallel()
	router, store := newTestRouter(t, nil)
	seed(t, store,
		domain.DisplayListing{ID: "1", Name: "Cheap room", Price: "$40.00"},
		domain.DisplayListing{ID: "2", Name: "Fair room", Price: "$75"},
		domain.DisplayListing{ID: "3", Name: "Unpriced room"},
	)

	rec := postForm(router, "/search", url.Values{
		"searchType": {"price_range"},
		"minPrice":   {"50"},
		"maxPrice":   {"100"},
	})
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Fair room")
	assert.NotContains(t, body, "Cheap room")
	assert.NotContains(t, body, "Unpriced room")
	assert.Contains(t, body, "Price Range: $50 - $100")
}

func TestWeb_SearchValidationAndEmptyResult(t *testing.T) {
	t.Parallel()
	router, store := newTestRouter(t, nil)
	seed(t, store, domain.DisplayListing{ID: "1", Name: "Loft", HostName: "Ann"})

	rec := postForm(router, "/search/listing", url.Values{"searchValue": {"x"}})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Please select a search type")

	rec = postForm(router, "/search", url.Values{"searchType": {"host_name"}, "searchValue": {"Zed"}})
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "No Results Found")
	assert.Contains(t, rec.Body.String(), "No listings found for Host Name: Zed")

	rec = postForm(router, "/search", url.Values{"searchType": {"host_name"}, "searchValue": {"ann"}})
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Loft")
}

func TestWeb_Filter(t *testing.T) {
	t.Parallel()
	router, store := newTestRouter(t, nil)
	seed(t, store,
		domain.DisplayListing{ID: "1", Name: "Top rated", RoomType: "Private room", Price: "120", ReviewRateNumber: "5"},
		domain.DisplayListing{ID: "2", Name: "Low rated", RoomType: "Private room", Price: "120", ReviewRateNumber: "2"},
	)

	rec := do(router, http.MethodGet, "/listings/filter?roomType=Private+room&minRating=4&minPrice=", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Top rated")
	assert.NotContains(t, rec.Body.String(), "Low rated")

	rec = do(router, http.MethodGet, "/listings/filter?minPrice=abc", "", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestWeb_AddEditDelete(t *testing.T) {
	t.Parallel()
	router, store := newTestRouter(t, nil)

	rec := postForm(router, "/add-listing", url.Values{"id": {"77"}})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Missing: NAME, host_id, host_name, neighbourhood_group, neighbourhood, room_type, price, property_type, thumbnail")

	form := url.Values{
		"id":                  {"77"},
		"NAME":                {"Quiet studio"},
		"host_id":             {"h77"},
		"host_name":           {"Bea"},
		"neighbourhood_group": {"Queens"},
		"neighbourhood":       {"Astoria"},
		"room_type":           {"Entire home/apt"},
		"property_type":       {"apartment"},
		"price":               {"$1,200"},
		"thumbnail":           {"https://example.test/77.jpg"},
		"images":              {"https://a.test/1.jpg, ,https://a.test/2.jpg"},
	}
	rec = postForm(router, "/add-listing", form)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Body.String(), "Listing added successfully!")

	stored, err := store.GetByID(context.Background(), "77")
	require.NoError(t, err)
	assert.Equal(t, "1200", stored.Price)
	assert.Equal(t, []string{"https://a.test/1.jpg", "https://a.test/2.jpg"}, stored.Images)

	rec = postForm(router, "/add-listing", form)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Listing with ID 77 already exists")

	rec = do(router, http.MethodGet, "/edit-listing/77", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `value="Quiet studio"`)

	rec = postForm(router, "/update-listing/77", url.Values{"NAME": {"Loud studio"}, "price": {"$90"}})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Listing updated successfully!")
	stored, err = store.GetByID(context.Background(), "77")
	require.NoError(t, err)
	assert.Equal(t, "Loud studio", stored.Name)
	assert.Equal(t, "90", stored.Price)
	assert.Equal(t, "Bea", stored.HostName)

	rec = postForm(router, "/delete-listing/77", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Listing 77 deleted successfully!")

	rec = postForm(router, "/delete-listing/77", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestLoggerMiddleware_EchoesValidTraceID(t *testing.T) {
	t.Parallel()
	router, _ := newTestRouter(t, nil)

	const traceID = "7f1c1c7e-7a49-4d0e-9c39-3f2d1f1e2a10"
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Trace-ID", traceID)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, traceID, rec.Header().Get("X-Trace-ID"))

	rec = do(router, http.MethodGet, "/", "", "")
	assert.NotEmpty(t, rec.Header().Get("X-Trace-ID"))
	assert.NotEqual(t, traceID, rec.Header().Get("X-Trace-ID"))
}
