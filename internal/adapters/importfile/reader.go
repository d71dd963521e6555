package importfile

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/DeepPatel29/airbnbApp-Deep-N01679203/internal/core/domain"
)

// ReadListings читает файл с JSON-массивом сырых записей витринной формы
// и возвращает их в нормализованной форме.
func ReadListings(path string) ([]domain.NormalizedListing, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("importfile: open %s: %w", path, err)
	}
	defer f.Close()

	listings, err := DecodeListings(f)
	if err != nil {
		return nil, fmt.Errorf("importfile: %s: %w", path, err)
	}
	return listings, nil
}

// DecodeListings разбирает JSON-массив. Значения полей могут быть строками или числами.
func DecodeListings(r io.Reader) ([]domain.NormalizedListing, error) {
	var raw []map[string]any
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("decode json array: %w", err)
	}

	listings := make([]domain.NormalizedListing, 0, len(raw))
	for _, record := range raw {
		listings = append(listings, domain.Normalize(domain.DisplayFromDocument(record)))
	}
	return listings, nil
}
