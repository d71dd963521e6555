package postgres

import (
	"time"

	"github.com/DeepPatel29/airbnbApp-Deep-N01679203/internal/core/domain"
)

// toDisplay собирает витринную форму из jsonb-документа.
// Даты нормализованной формы лежат в jsonb строками RFC3339 и переводятся обратно в time.Time.
func toDisplay(doc map[string]any, createdAt, updatedAt time.Time) domain.DisplayListing {
	for _, f := range domain.ListingFields {
		if f.Kind != domain.KindDate || f.Normalized == f.Display {
			continue
		}
		if raw, ok := doc[f.Normalized].(string); ok {
			if t, err := time.Parse(time.RFC3339, raw); err == nil {
				doc[f.Normalized] = t
			}
		}
	}

	l := domain.DisplayFromDocument(doc)
	l.CreatedAt = createdAt
	l.UpdatedAt = updatedAt
	return l
}

// displayDocument - jsonb-представление витринной формы; метки времени хранятся в колонках
func displayDocument(l domain.DisplayListing) map[string]any {
	doc := make(map[string]any, len(domain.ListingFields)+1)
	for _, f := range domain.ListingFields {
		doc[f.Display] = l.Field(f.Display)
	}
	images := l.Images
	if images == nil {
		images = []string{}
	}
	doc[domain.ImagesKey] = images
	return doc
}

// normalizedDocument - jsonb-представление нормализованной формы
func normalizedDocument(n domain.NormalizedListing) domain.NormalizedListing {
	if n.Images == nil {
		n.Images = []string{}
	}
	n.CreatedAt = time.Time{}
	n.UpdatedAt = time.Time{}
	return n
}
