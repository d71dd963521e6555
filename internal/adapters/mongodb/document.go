package mongodb

import (
	"strconv"

	"github.com/DeepPatel29/airbnbApp-Deep-N01679203/internal/core/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// toDisplay переводит сырой документ (любой из двух форм) в витринную форму.
func toDisplay(raw bson.M) domain.DisplayListing {
	doc := make(map[string]any, len(raw))
	for k, v := range raw {
		doc[k] = plainValue(v)
	}
	return domain.DisplayFromDocument(doc)
}

// plainValue заменяет bson-типы драйвера на обычные Go-типы
func plainValue(v interface{}) interface{} {
	switch val := v.(type) {
	case primitive.A:
		out := make([]any, 0, len(val))
		for _, item := range val {
			out = append(out, plainValue(item))
		}
		return out
	case primitive.DateTime:
		return val.Time().UTC()
	case primitive.ObjectID:
		return val.Hex()
	case primitive.Decimal128:
		if f, err := strconv.ParseFloat(val.String(), 64); err == nil {
			return f
		}
		return val.String()
	case primitive.D:
		out := make(map[string]any, len(val))
		for _, e := range val {
			out[e.Key] = plainValue(e.Value)
		}
		return out
	case bson.M:
		out := make(map[string]any, len(val))
		for k, item := range val {
			out[k] = plainValue(item)
		}
		return out
	default:
		return v
	}
}
