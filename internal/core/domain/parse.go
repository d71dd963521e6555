package domain

import (
	"math"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var (
	currencyCleaner = strings.NewReplacer("$", "", ",", "", " ", "", "\t", "")
	numberCleaner   = strings.NewReplacer(",", "", " ", "", "\t", "")
	priceStripper   = strings.NewReplacer("$", "", ",", "")
)

// Форматы дат, встречающиеся в исходных выгрузках
var dateLayouts = []string{
	"1/2/2006",
	"2006-01-02",
	time.RFC3339,
	time.RFC3339Nano,
}

const displayDateLayout = "1/2/2006"

// ParseCurrency разбирает денежную строку вида "$1,234.50".
// ok == false означает пустое или нераспознанное значение (null), а не ноль.
func ParseCurrency(s string) (float64, bool) {
	return parseFloat(currencyCleaner.Replace(strings.TrimSpace(s)))
}

// ParseNumber разбирает числовую строку; ok == false - значение отсутствует.
func ParseNumber(s string) (float64, bool) {
	return parseFloat(numberCleaner.Replace(strings.TrimSpace(s)))
}

// ParseDate пробует известные форматы дат; ok == false - даты нет.
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}

// StripCurrency убирает символ валюты и разделители тысяч из цены.
func StripCurrency(s string) string {
	return strings.TrimSpace(priceStripper.Replace(s))
}

func parseFloat(s string) (float64, bool) {
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

// FormatCurrency рендерит сумму в витринном виде: "$1,234.50", целые без копеек.
func FormatCurrency(v float64) string {
	p := message.NewPrinter(language.English)
	// выше 2^53 не каждое целое представимо, и int64 может переполниться
	if v == math.Trunc(v) && math.Abs(v) < 1<<53 {
		return p.Sprintf("$%d", int64(v))
	}
	return p.Sprintf("$%.2f", v)
}

// FormatNumber рендерит число в кратчайшей форме без группировки разрядов.
func FormatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func FormatDate(t time.Time) string {
	return t.Format(displayDateLayout)
}

func currencyPtr(s string) *float64 {
	if v, ok := ParseCurrency(s); ok {
		return &v
	}
	return nil
}

func numberPtr(s string) *float64 {
	if v, ok := ParseNumber(s); ok {
		return &v
	}
	return nil
}

func datePtr(s string) *time.Time {
	if t, ok := ParseDate(s); ok {
		return &t
	}
	return nil
}

func formatCurrencyPtr(v *float64) string {
	if v == nil {
		return ""
	}
	return FormatCurrency(*v)
}

func formatNumberPtr(v *float64) string {
	if v == nil {
		return ""
	}
	return FormatNumber(*v)
}

func formatDatePtr(t *time.Time) string {
	if t == nil {
		return ""
	}
	return FormatDate(*t)
}
