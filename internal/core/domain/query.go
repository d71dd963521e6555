package domain

import (
	"strings"

	"golang.org/x/text/cases"
)

// SearchType - по какому полю ищет форма поиска.
type SearchType string

const (
	SearchByID            SearchType = "id"
	SearchByName          SearchType = "name"
	SearchByNeighbourhood SearchType = "neighbourhood"
	SearchByHostName      SearchType = "host_name"
	SearchByRoomType      SearchType = "room_type"
	SearchByPriceRange    SearchType = "price_range"
)

type searchTarget struct {
	field string
	label string
}

var textSearchTargets = map[SearchType]searchTarget{
	SearchByID:            {field: "id", label: "ID"},
	SearchByName:          {field: "NAME", label: "Name"},
	SearchByNeighbourhood: {field: "neighbourhood", label: "Neighbourhood"},
	SearchByHostName:      {field: "host name", label: "Host Name"},
	SearchByRoomType:      {field: "room type", label: "Room Type"},
}

// TextMatch - регистронезависимое вхождение Term хотя бы в одно из полей (витринные ключи).
type TextMatch struct {
	Fields []string
	Term   string
}

// ListingQuery - единое описание выборки. Все заданные условия объединяются через AND.
// Адаптеры хранилищ транслируют его в свой язык запросов, Matches задает эталонную семантику.
type ListingQuery struct {
	Text *TextMatch

	RoomType           string
	NeighbourhoodGroup string
	PropertyType       string

	PriceMin  *float64
	PriceMax  *float64
	MinRating *float64
}

// Matches проверяет объявление на соответствие запросу.
func (q ListingQuery) Matches(l DisplayListing) bool {
	if q.Text != nil && !q.Text.matches(l) {
		return false
	}
	if q.RoomType != "" && l.RoomType != q.RoomType {
		return false
	}
	if q.NeighbourhoodGroup != "" && l.NeighbourhoodGroup != q.NeighbourhoodGroup {
		return false
	}
	if q.PropertyType != "" && l.PropertyType != q.PropertyType {
		return false
	}

	if q.PriceMin != nil || q.PriceMax != nil {
		price, ok := ParseCurrency(l.Price)
		if !ok {
			return false
		}
		if q.PriceMin != nil && price < *q.PriceMin {
			return false
		}
		if q.PriceMax != nil && price > *q.PriceMax {
			return false
		}
	}

	if q.MinRating != nil {
		rating, ok := ParseNumber(l.ReviewRateNumber)
		if !ok || rating < *q.MinRating {
			return false
		}
	}
	return true
}

func (t TextMatch) matches(l DisplayListing) bool {
	term := cases.Fold().String(t.Term)
	for _, field := range t.Fields {
		if strings.Contains(cases.Fold().String(l.Field(field)), term) {
			return true
		}
	}
	return false
}

// SearchRequest - сырые параметры формы поиска.
type SearchRequest struct {
	Type     string
	Value    string
	MinPrice string
	MaxPrice string
}

// SearchPlan - провалидированный поиск: запрос, лимит и описание для страницы результатов.
type SearchPlan struct {
	Query       ListingQuery
	Limit       int
	Description string
}

// Plan валидирует параметры поиска и строит запрос.
func (r SearchRequest) Plan() (*SearchPlan, error) {
	searchType := SearchType(strings.TrimSpace(r.Type))
	if searchType == "" {
		return nil, NewValidationError("Please select a search type")
	}

	if searchType == SearchByPriceRange {
		minRaw, maxRaw := strings.TrimSpace(r.MinPrice), strings.TrimSpace(r.MaxPrice)
		if minRaw == "" && maxRaw == "" {
			return nil, NewValidationError("Please provide at least one price value (min or max)")
		}
		minPrice, err := optionalCurrency("minimum price", minRaw)
		if err != nil {
			return nil, err
		}
		maxPrice, err := optionalCurrency("maximum price", maxRaw)
		if err != nil {
			return nil, err
		}

		minLabel, maxLabel := "0", "Any"
		if minRaw != "" {
			minLabel = minRaw
		}
		if maxRaw != "" {
			maxLabel = maxRaw
		}
		return &SearchPlan{
			Query:       ListingQuery{PriceMin: minPrice, PriceMax: maxPrice},
			Limit:       PriceRangeLimit,
			Description: "Price Range: $" + strings.TrimPrefix(minLabel, "$") + " - $" + strings.TrimPrefix(maxLabel, "$"),
		}, nil
	}

	target, ok := textSearchTargets[searchType]
	if !ok {
		return nil, NewValidationError("Invalid search type")
	}

	value := strings.TrimSpace(r.Value)
	if value == "" {
		return nil, NewValidationError("Please enter a search value")
	}

	return &SearchPlan{
		Query:       ListingQuery{Text: &TextMatch{Fields: []string{target.field}, Term: value}},
		Limit:       SearchLimit,
		Description: target.label + ": " + value,
	}, nil
}

// FilterRequest - сырые параметры комбинированного фильтра.
type FilterRequest struct {
	RoomType           string
	NeighbourhoodGroup string
	PropertyType       string
	MinPrice           string
	MaxPrice           string
	MinRating          string
}

// Query строит запрос фильтра. Пустые числовые параметры игнорируются,
// нечисловые - ошибка валидации.
func (r FilterRequest) Query() (ListingQuery, error) {
	q := ListingQuery{
		RoomType:           strings.TrimSpace(r.RoomType),
		NeighbourhoodGroup: strings.TrimSpace(r.NeighbourhoodGroup),
		PropertyType:       strings.TrimSpace(r.PropertyType),
	}

	var err error
	if q.PriceMin, err = optionalCurrency("minimum price", r.MinPrice); err != nil {
		return ListingQuery{}, err
	}
	if q.PriceMax, err = optionalCurrency("maximum price", r.MaxPrice); err != nil {
		return ListingQuery{}, err
	}
	if raw := strings.TrimSpace(r.MinRating); raw != "" {
		rating, ok := ParseNumber(raw)
		if !ok {
			return ListingQuery{}, NewValidationError("Invalid minimum rating: %q", raw)
		}
		q.MinRating = &rating
	}
	return q, nil
}

// QuickSearchQuery - поиск по вхождению в id или название.
func QuickSearchQuery(term string) ListingQuery {
	return ListingQuery{Text: &TextMatch{Fields: []string{"id", "NAME"}, Term: strings.TrimSpace(term)}}
}

func optionalCurrency(label, raw string) (*float64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	v, ok := ParseCurrency(raw)
	if !ok {
		return nil, NewValidationError("Invalid %s: %q", label, raw)
	}
	return &v, nil
}
