package mongodb

import (
	"regexp"

	"github.com/DeepPatel29/airbnbApp-Deep-N01679203/internal/core/domain"
	"go.mongodb.org/mongo-driver/bson"
)

// fieldAliases - все ключи, под которыми поле может лежать в коллекции (витринный и нормализованный).
func fieldAliases(displayKey string) []string {
	f, ok := domain.FieldByDisplay(displayKey)
	if !ok || f.Normalized == f.Display {
		return []string{displayKey}
	}
	return []string{f.Display, f.Normalized}
}

// anyOf строит условие "хотя бы один из ключей удовлетворяет cond"
func anyOf(keys []string, cond interface{}) bson.M {
	if len(keys) == 1 {
		return bson.M{keys[0]: cond}
	}
	or := make(bson.A, 0, len(keys))
	for _, k := range keys {
		or = append(or, bson.M{k: cond})
	}
	return bson.M{"$or": or}
}

// numericExpr приводит значение поля (строку "$1,234" или число) к double; нераспознанное -> null
func numericExpr(input interface{}) bson.M {
	asString := bson.M{"$trim": bson.M{"input": bson.M{"$toString": input}}}
	withoutSymbol := bson.M{"$replaceAll": bson.M{"input": asString, "find": bson.M{"$literal": "$"}, "replacement": ""}}
	withoutGrouping := bson.M{"$replaceAll": bson.M{"input": withoutSymbol, "find": ",", "replacement": ""}}

	return bson.M{"$convert": bson.M{
		"input":   withoutGrouping,
		"to":      "double",
		"onError": nil,
		"onNull":  nil,
	}}
}

// numericRange - $expr для границ; null никогда не проходит, даже если задана только верхняя граница
func numericRange(input interface{}, lower, upper *float64) bson.M {
	num := numericExpr(input)
	conds := bson.A{bson.M{"$ne": bson.A{num, nil}}}
	if lower != nil {
		conds = append(conds, bson.M{"$gte": bson.A{num, *lower}})
	}
	if upper != nil {
		conds = append(conds, bson.M{"$lte": bson.A{num, *upper}})
	}
	return bson.M{"$expr": bson.M{"$and": conds}}
}

// coalesceExpr берет первое непустое значение среди ключей-синонимов
func coalesceExpr(keys []string) interface{} {
	if len(keys) == 1 {
		return "$" + keys[0]
	}
	args := make(bson.A, 0, len(keys))
	for _, k := range keys {
		args = append(args, "$"+k)
	}
	return bson.M{"$ifNull": args}
}

// buildFilter транслирует domain.ListingQuery в фильтр MongoDB. Условия объединяются через $and.
func buildFilter(q domain.ListingQuery) bson.M {
	var conditions bson.A

	if q.Text != nil && q.Text.Term != "" {
		regex := bson.M{"$regex": regexp.QuoteMeta(q.Text.Term), "$options": "i"}
		var keys []string
		for _, field := range q.Text.Fields {
			keys = append(keys, fieldAliases(field)...)
		}
		conditions = append(conditions, anyOf(keys, regex))
	}

	addEquality := func(displayKey, value string) {
		if value != "" {
			conditions = append(conditions, anyOf(fieldAliases(displayKey), value))
		}
	}
	addEquality("room type", q.RoomType)
	addEquality("neighbourhood group", q.NeighbourhoodGroup)
	addEquality("property_type", q.PropertyType)

	if q.PriceMin != nil || q.PriceMax != nil {
		conditions = append(conditions, numericRange(coalesceExpr(fieldAliases("price")), q.PriceMin, q.PriceMax))
	}
	if q.MinRating != nil {
		conditions = append(conditions, numericRange(coalesceExpr(fieldAliases("review rate number")), q.MinRating, nil))
	}

	switch len(conditions) {
	case 0:
		return bson.M{}
	case 1:
		return conditions[0].(bson.M)
	default:
		return bson.M{"$and": conditions}
	}
}
