package rest

import (
	"errors"
	"net/http"
	"strings"

	"github.com/DeepPatel29/airbnbApp-Deep-N01679203/internal/contextkeys"
	"github.com/DeepPatel29/airbnbApp-Deep-N01679203/internal/core/domain"
	"github.com/DeepPatel29/airbnbApp-Deep-N01679203/internal/core/port"
	"github.com/DeepPatel29/airbnbApp-Deep-N01679203/internal/core/port/usecases_port"
	"github.com/go-chi/chi/v5"
)

// ListingUseCases - набор use case, общий для веб-страниц и JSON API
type ListingUseCases struct {
	List        usecases_port.ListListingsUseCase
	Get         usecases_port.GetListingUseCase
	Search      usecases_port.SearchListingsUseCase
	Filter      usecases_port.FilterListingsUseCase
	QuickSearch usecases_port.QuickSearchUseCase
	Create      usecases_port.CreateListingUseCase
	Update      usecases_port.UpdateListingUseCase
	Delete      usecases_port.DeleteListingUseCase
}

// WebHandler отдает html-страницы
type WebHandler struct {
	uc    ListingUseCases
	views *Views
}

func NewWebHandler(uc ListingUseCases, views *Views) *WebHandler {
	return &WebHandler{uc: uc, views: views}
}

func (h *WebHandler) render(w http.ResponseWriter, r *http.Request, status int, page string, data pageData) {
	if err := h.views.Render(w, status, page, data); err != nil {
		contextkeys.LoggerFromContext(r.Context()).Error("Failed to render page", err, port.Fields{"page": page})
		http.Error(w, "Failed to render page", http.StatusInternalServerError)
	}
}

// renderError показывает страницу ошибки со статусом по типу ошибки.
// Для непредвиденных ошибок сообщение начинается с failure.
func (h *WebHandler) renderError(w http.ResponseWriter, r *http.Request, err error, title, failure string) {
	status := statusForError(err)
	message := err.Error()
	switch {
	case errors.Is(err, domain.ErrListingNotFound):
		message = "Listing not found"
	case status == http.StatusInternalServerError:
		contextkeys.LoggerFromContext(r.Context()).Error("Request failed", err, nil)
		message = failure + ": " + err.Error()
	}
	h.render(w, r, status, pageError, pageData{Title: title, Message: message})
}

func (h *WebHandler) NotFound(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusNotFound, pageError, pageData{Title: "Error", Message: "Route not found"})
}

// Home обрабатывает GET /
func (h *WebHandler) Home(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, pageIndex, pageData{Title: "QuickRentals", Message: "Welcome to QuickRentals"})
}

// AllListings обрабатывает GET /listings
func (h *WebHandler) AllListings(w http.ResponseWriter, r *http.Request) {
	listings, err := h.uc.List.Execute(r.Context())
	if err != nil {
		h.renderError(w, r, err, "Error", "Failed to fetch listings")
		return
	}
	h.render(w, r, http.StatusOK, pageListings, pageData{Title: "All AirBnB Listings", Listings: listings})
}

// ListingDetails обрабатывает GET /listing/{id}
func (h *WebHandler) ListingDetails(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	listing, err := h.uc.Get.Execute(r.Context(), id)
	if err != nil {
		h.renderError(w, r, err, "Error", "Failed to fetch listing")
		return
	}
	h.render(w, r, http.StatusOK, pageListing, pageData{Title: "Listing " + listing.ID, Listing: listing})
}

func (h *WebHandler) SearchForm(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, pageSearch, pageData{Title: "Search Listing"})
}

// Search обрабатывает POST /search и POST /search/listing
func (h *WebHandler) Search(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.renderError(w, r, domain.NewValidationError("Invalid form data"), "Error", "")
		return
	}

	req := domain.SearchRequest{
		Type:     r.PostFormValue("searchType"),
		Value:    r.PostFormValue("searchValue"),
		MinPrice: r.PostFormValue("minPrice"),
		MaxPrice: r.PostFormValue("maxPrice"),
	}
	result, err := h.uc.Search.Execute(r.Context(), req)
	if err != nil {
		h.renderError(w, r, err, "Error", "Failed to perform search")
		return
	}

	if len(result.Listings) == 0 {
		h.render(w, r, http.StatusOK, pageError, pageData{
			Title:   "No Results Found",
			Message: "No listings found for " + result.Description,
		})
		return
	}

	h.render(w, r, http.StatusOK, pageSearchResults, pageData{
		Title:             "Search Results",
		Listings:          result.Listings,
		SearchDescription: result.Description,
		ResultsCount:      len(result.Listings),
	})
}

// FilterListings обрабатывает GET /listings/filter
func (h *WebHandler) FilterListings(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	req := domain.FilterRequest{
		RoomType:           query.Get("roomType"),
		NeighbourhoodGroup: query.Get("neighbourhoodGroup"),
		PropertyType:       query.Get("propertyType"),
		MinPrice:           query.Get("minPrice"),
		MaxPrice:           query.Get("maxPrice"),
		MinRating:          query.Get("minRating"),
	}

	listings, err := h.uc.Filter.Execute(r.Context(), req)
	if err != nil {
		h.renderError(w, r, err, "Error", "Filter failed")
		return
	}
	h.render(w, r, http.StatusOK, pageListings, pageData{Title: "Filtered Listings", Listings: listings})
}

// QuickSearch обрабатывает GET /quick-search; пустой запрос ведет на полный список
func (h *WebHandler) QuickSearch(w http.ResponseWriter, r *http.Request) {
	term := strings.TrimSpace(r.URL.Query().Get("quickSearch"))
	if term == "" {
		http.Redirect(w, r, "/listings", http.StatusFound)
		return
	}

	listings, err := h.uc.QuickSearch.Execute(r.Context(), term)
	if err != nil {
		h.renderError(w, r, err, "Search Error", "Failed to perform search")
		return
	}
	h.render(w, r, http.StatusOK, pageListings, pageData{
		Title:       "Search Results",
		Listings:    listings,
		QuickSearch: term,
	})
}

func (h *WebHandler) AddListingForm(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, pageAddListing, pageData{Title: "Add New Listing", Fields: listingFormFields(nil)})
}

// AddListing обрабатывает POST /add-listing
func (h *WebHandler) AddListing(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.renderError(w, r, domain.NewValidationError("Invalid form data"), "Error", "")
		return
	}

	created, err := h.uc.Create.Execute(r.Context(), listingFromForm(r))
	if err != nil {
		h.renderError(w, r, err, "Error", "Failed to add listing")
		return
	}
	h.render(w, r, http.StatusOK, pageListing, pageData{
		Title:   "Listing Added Successfully",
		Message: "Listing added successfully!",
		Listing: created,
	})
}

// EditListingForm обрабатывает GET /edit-listing/{id}
func (h *WebHandler) EditListingForm(w http.ResponseWriter, r *http.Request) {
	listing, err := h.uc.Get.Execute(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.renderError(w, r, err, "Error", "Failed to fetch listing")
		return
	}
	h.render(w, r, http.StatusOK, pageEditListing, pageData{
		Title:   "Edit Listing",
		Listing: listing,
		Fields:  listingFormFields(listing),
		Images:  strings.Join(listing.Images, ", "),
	})
}

// UpdateListing обрабатывает POST /update-listing/{id}
func (h *WebHandler) UpdateListing(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.renderError(w, r, domain.NewValidationError("Invalid form data"), "Error", "")
		return
	}

	updated, err := h.uc.Update.Execute(r.Context(), chi.URLParam(r, "id"), patchFromForm(r))
	if err != nil {
		h.renderError(w, r, err, "Error", "Failed to update listing")
		return
	}
	h.render(w, r, http.StatusOK, pageListing, pageData{
		Title:   "Listing Updated",
		Message: "Listing updated successfully!",
		Listing: updated,
	})
}

// DeleteListing обрабатывает POST /delete-listing/{id}
func (h *WebHandler) DeleteListing(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.uc.Delete.Execute(r.Context(), id); err != nil {
		h.renderError(w, r, err, "Error", "Failed to delete listing")
		return
	}
	h.render(w, r, http.StatusOK, pageIndex, pageData{
		Title:   "AirBnB Data Explorer",
		Message: "Listing " + id + " deleted successfully!",
	})
}

// listingFromForm читает поля формы по именам из таблицы полей
func listingFromForm(r *http.Request) domain.DisplayListing {
	var listing domain.DisplayListing
	for _, f := range domain.ListingFields {
		listing.SetField(f.Display, strings.TrimSpace(r.PostFormValue(f.Form)))
	}
	listing.Images = domain.SplitImages(r.PostFormValue(domain.ImagesKey))
	return listing
}

// patchFromForm берет только присланные поля формы
func patchFromForm(r *http.Request) *domain.ListingPatch {
	patch := domain.NewListingPatch()
	for _, f := range domain.ListingFields {
		if values, ok := r.PostForm[f.Form]; ok && len(values) > 0 {
			patch.Set(f.Display, strings.TrimSpace(values[0]))
		}
	}
	if values, ok := r.PostForm[domain.ImagesKey]; ok && len(values) > 0 {
		patch.SetImages(domain.SplitImages(values[0]))
	}
	return patch
}
