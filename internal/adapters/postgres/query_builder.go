package postgres

import (
	"fmt"
	"strings"

	"github.com/DeepPatel29/airbnbApp-Deep-N01679203/internal/core/domain"
)

// numericPattern - строка, которая после удаления "$", "," и пробелов является числом
const numericPattern = `^-?([0-9]+([.][0-9]*)?|[.][0-9]+)$`

type queryBuilder struct {
	conditions []string
	args       []interface{}
	argId      int
}

func newQueryBuilder() *queryBuilder {
	return &queryBuilder{
		argId: 1,
		args:  make([]interface{}, 0),
	}
}

// nextArg регистрирует аргумент и возвращает его плейсхолдер
func (qb *queryBuilder) nextArg(arg interface{}) string {
	qb.args = append(qb.args, arg)
	placeholder := fmt.Sprintf("$%d", qb.argId)
	qb.argId++
	return placeholder
}

// jsonField - выражение для текстового значения ключа документа
func jsonField(key string) string {
	return "doc->>'" + strings.ReplaceAll(key, "'", "''") + "'"
}

// aliases - ключи, под которыми поле лежит в витринной и нормализованной форме
func aliases(displayKey string) []string {
	f, ok := domain.FieldByDisplay(displayKey)
	if !ok || f.Normalized == f.Display {
		return []string{displayKey}
	}
	return []string{f.Display, f.Normalized}
}

func (qb *queryBuilder) addAnyOf(keys []string, operator string, arg interface{}) {
	placeholder := qb.nextArg(arg)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s %s %s", jsonField(k), operator, placeholder))
	}
	if len(parts) == 1 {
		qb.conditions = append(qb.conditions, parts[0])
		return
	}
	qb.conditions = append(qb.conditions, "("+strings.Join(parts, " OR ")+")")
}

// numericExpr приводит значение поля к double precision; нераспознанное -> NULL
func numericExpr(keys []string) string {
	fields := make([]string, 0, len(keys))
	for _, k := range keys {
		fields = append(fields, jsonField(k))
	}
	value := fields[0]
	if len(fields) > 1 {
		value = "COALESCE(" + strings.Join(fields, ", ") + ")"
	}
	cleaned := fmt.Sprintf(`regexp_replace(%s, '[$,[:space:]]', '', 'g')`, value)
	return fmt.Sprintf(`(CASE WHEN %s ~ '%s' THEN %s::double precision END)`, cleaned, numericPattern, cleaned)
}

func (qb *queryBuilder) addRange(displayKey string, lower, upper *float64) {
	expr := numericExpr(aliases(displayKey))
	if lower != nil {
		qb.conditions = append(qb.conditions, fmt.Sprintf("%s >= %s", expr, qb.nextArg(*lower)))
	}
	if upper != nil {
		qb.conditions = append(qb.conditions, fmt.Sprintf("%s <= %s", expr, qb.nextArg(*upper)))
	}
}

func (qb *queryBuilder) build() (string, []interface{}) {
	if len(qb.conditions) == 0 {
		return "", qb.args
	}
	return "WHERE " + strings.Join(qb.conditions, " AND "), qb.args
}

// escapeLike экранирует спецсимволы ILIKE, чтобы термин искался буквально
func escapeLike(term string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(term)
}

// applyQuery транслирует domain.ListingQuery в WHERE-часть запроса
func applyQuery(q domain.ListingQuery) (string, []interface{}) {
	qb := newQueryBuilder()

	if q.Text != nil && q.Text.Term != "" {
		var keys []string
		for _, field := range q.Text.Fields {
			keys = append(keys, aliases(field)...)
		}
		qb.addAnyOf(keys, "ILIKE", "%"+escapeLike(q.Text.Term)+"%")
	}

	if q.RoomType != "" {
		qb.addAnyOf(aliases("room type"), "=", q.RoomType)
	}
	if q.NeighbourhoodGroup != "" {
		qb.addAnyOf(aliases("neighbourhood group"), "=", q.NeighbourhoodGroup)
	}
	if q.PropertyType != "" {
		qb.addAnyOf(aliases("property_type"), "=", q.PropertyType)
	}

	qb.addRange("price", q.PriceMin, q.PriceMax)
	qb.addRange("review rate number", q.MinRating, nil)

	return qb.build()
}
