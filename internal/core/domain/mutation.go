package domain

import (
	"fmt"
	"strings"
)

// Значения по умолчанию для необязательных полей нового объявления
var createDefaults = map[string]string{
	"host_identity_verified":         "unconfirmed",
	"service fee":                    "$0",
	"minimum nights":                 "1",
	"availability 365":               "365",
	"review rate number":             "0",
	"number of reviews":              "0",
	"cancellation_policy":            "moderate",
	"instant_bookable":               "FALSE",
	"lat":                            "40.7128",
	"long":                           "-74.0060",
	"country":                        "United States",
	"country code":                   "US",
	"Construction year":              "2020",
	"calculated host listings count": "1",
	"property_type":                  "apartment",
}

// MissingRequired возвращает витринные ключи незаполненных обязательных полей.
func (l DisplayListing) MissingRequired() []string {
	var missing []string
	for _, f := range ListingFields {
		if f.Required && strings.TrimSpace(l.Field(f.Display)) == "" {
			missing = append(missing, f.Display)
		}
	}
	return missing
}

// PrepareForCreate валидирует новое объявление и дополняет его значениями по умолчанию.
func (l *DisplayListing) PrepareForCreate() error {
	if missing := l.MissingRequired(); len(missing) > 0 {
		return NewMissingFieldsError(missing)
	}

	l.ID = strings.TrimSpace(l.ID)
	l.Price = StripCurrency(l.Price)

	for key, value := range createDefaults {
		if strings.TrimSpace(l.Field(key)) == "" {
			l.SetField(key, value)
		}
	}

	if len(l.Images) == 0 {
		l.Images = PlaceholderImages(l.ID)
	}
	return nil
}

// PlaceholderImages - две картинки-заглушки, детерминированные по id.
func PlaceholderImages(id string) []string {
	return []string{
		fmt.Sprintf("https://picsum.photos/seed/%sa/600/400", id),
		fmt.Sprintf("https://picsum.photos/seed/%sb/600/400", id),
	}
}

// ListingPatch - частичное обновление: только переданные поля, ключи витринные.
type ListingPatch struct {
	Fields    map[string]string
	Images    []string
	ImagesSet bool
}

func NewListingPatch() *ListingPatch {
	return &ListingPatch{Fields: make(map[string]string)}
}

// Set добавляет поле в патч. id и неизвестные ключи игнорируются.
func (p *ListingPatch) Set(displayKey, value string) bool {
	if displayKey == "id" {
		return false
	}
	if _, ok := fieldsByDisplay[displayKey]; !ok {
		return false
	}
	if displayKey == "price" {
		value = StripCurrency(value)
	}
	p.Fields[displayKey] = value
	return true
}

func (p *ListingPatch) SetImages(images []string) {
	p.Images = copyImages(images)
	p.ImagesSet = true
}

func (p *ListingPatch) IsEmpty() bool {
	return len(p.Fields) == 0 && !p.ImagesSet
}

// Apply применяет патч к объявлению.
func (p *ListingPatch) Apply(l *DisplayListing) {
	for key, value := range p.Fields {
		l.SetField(key, value)
	}
	if p.ImagesSet {
		l.Images = copyImages(p.Images)
	}
}

// ReplacedAliases - нормализованные ключи, которые вытесняются витринными ключами патча.
// Так документ, пришедший из импорта, после правки сходится к витринной форме.
func (p *ListingPatch) ReplacedAliases() []string {
	var aliases []string
	for _, f := range ListingFields {
		if _, ok := p.Fields[f.Display]; ok && f.Normalized != f.Display {
			aliases = append(aliases, f.Normalized)
		}
	}
	return aliases
}

// PatchFromDocument строит патч из JSON-тела запроса (витринные ключи).
func PatchFromDocument(doc map[string]any) (*ListingPatch, error) {
	patch := NewListingPatch()
	for key, raw := range doc {
		if key == ImagesKey {
			images, ok := stringList(raw)
			if !ok {
				return nil, NewValidationError("Field %q must be a list of strings", key)
			}
			patch.SetImages(images)
			continue
		}
		if _, known := fieldsByDisplay[key]; !known || key == "id" {
			continue
		}
		switch v := raw.(type) {
		case string:
			patch.Set(key, v)
		case nil:
			patch.Set(key, "")
		default:
			return nil, NewValidationError("Field %q must be a string", key)
		}
	}
	return patch, nil
}

func stringList(raw any) ([]string, bool) {
	switch v := raw.(type) {
	case []string:
		return v, true
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			s, ok := item.(string)
			if !ok {
				return nil, false
			}
			out = append(out, s)
		}
		return out, true
	case nil:
		return []string{}, true
	}
	return nil, false
}
