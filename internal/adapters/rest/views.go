package rest

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/http"

	"github.com/DeepPatel29/airbnbApp-Deep-N01679203/internal/core/domain"
)

//go:embed templates/*.html
var templatesFS embed.FS

const (
	pageIndex         = "index"
	pageListings      = "listings"
	pageListing       = "listing"
	pageSearch        = "search"
	pageSearchResults = "searchResults"
	pageAddListing    = "addListing"
	pageEditListing   = "editListing"
	pageError         = "error"
)

var pageNames = []string{
	pageIndex, pageListings, pageListing, pageSearch,
	pageSearchResults, pageAddListing, pageEditListing, pageError,
}

// formField - одно поле формы добавления/редактирования
type formField struct {
	Name     string
	Label    string
	Value    string
	Required bool
}

// pageData - общая модель для всех шаблонов
type pageData struct {
	Title             string
	Message           string
	Listing           *domain.DisplayListing
	Listings          []domain.DisplayListing
	SearchDescription string
	ResultsCount      int
	QuickSearch       string
	Fields            []formField
	Images            string
}

// Views хранит по шаблону на страницу, каждый собран вместе с layout.html.
type Views struct {
	pages map[string]*template.Template
}

func NewViews() (*Views, error) {
	pages := make(map[string]*template.Template, len(pageNames))
	for _, name := range pageNames {
		tmpl, err := template.New("layout.html").ParseFS(templatesFS,
			"templates/layout.html",
			"templates/"+name+".html",
		)
		if err != nil {
			return nil, fmt.Errorf("parse template %s: %w", name, err)
		}
		pages[name] = tmpl
	}
	return &Views{pages: pages}, nil
}

// Render рендерит страницу в буфер и только после этого пишет ответ.
func (v *Views) Render(w http.ResponseWriter, status int, page string, data pageData) error {
	tmpl, ok := v.pages[page]
	if !ok {
		return fmt.Errorf("unknown page %q", page)
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "layout", data); err != nil {
		return fmt.Errorf("render %s: %w", page, err)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, err := buf.WriteTo(w)
	return err
}

// listingFormFields строит поля формы по таблице полей; listing может быть nil (пустая форма).
func listingFormFields(listing *domain.DisplayListing) []formField {
	fields := make([]formField, 0, len(domain.ListingFields))
	for _, f := range domain.ListingFields {
		field := formField{Name: f.Form, Label: f.Display, Required: f.Required}
		if listing != nil {
			field.Value = listing.Field(f.Display)
		}
		fields = append(fields, field)
	}
	return fields
}
