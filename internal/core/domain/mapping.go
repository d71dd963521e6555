package domain

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/mmcloughlin/geohash"
)

// Normalize переводит витринную форму в нормализованную:
// деньги и числа -> *float64, даты -> *time.Time, пустые строки -> nil.
func Normalize(d DisplayListing) NormalizedListing {
	n := NormalizedListing{
		ID:                          d.ID,
		Name:                        d.Name,
		HostID:                      d.HostID,
		HostIdentityVerified:        d.HostIdentityVerified,
		HostName:                    d.HostName,
		NeighbourhoodGroup:          d.NeighbourhoodGroup,
		Neighbourhood:               d.Neighbourhood,
		Lat:                         numberPtr(d.Lat),
		Long:                        numberPtr(d.Long),
		Country:                     d.Country,
		CountryCode:                 d.CountryCode,
		InstantBookable:             d.InstantBookable,
		CancellationPolicy:          d.CancellationPolicy,
		RoomType:                    d.RoomType,
		ConstructionYear:            numberPtr(d.ConstructionYear),
		Price:                       currencyPtr(d.Price),
		ServiceFee:                  currencyPtr(d.ServiceFee),
		MinimumNights:               numberPtr(d.MinimumNights),
		NumberOfReviews:             numberPtr(d.NumberOfReviews),
		LastReview:                  datePtr(d.LastReview),
		ReviewsPerMonth:             numberPtr(d.ReviewsPerMonth),
		ReviewRateNumber:            numberPtr(d.ReviewRateNumber),
		CalculatedHostListingsCount: numberPtr(d.CalculatedHostListingsCount),
		Availability365:             numberPtr(d.Availability365),
		HouseRules:                  d.HouseRules,
		License:                     d.License,
		PropertyType:                d.PropertyType,
		Thumbnail:                   d.Thumbnail,
		Images:                      copyImages(d.Images),
		CreatedAt:                   d.CreatedAt,
		UpdatedAt:                   d.UpdatedAt,
	}

	if n.Lat != nil && n.Long != nil {
		n.Geohash = geohash.Encode(*n.Lat, *n.Long)
	}

	return n
}

// Display - обратное преобразование нормализованной формы в витринную.
func Display(n NormalizedListing) DisplayListing {
	return DisplayListing{
		ID:                          n.ID,
		Name:                        n.Name,
		HostID:                      n.HostID,
		HostIdentityVerified:        n.HostIdentityVerified,
		HostName:                    n.HostName,
		NeighbourhoodGroup:          n.NeighbourhoodGroup,
		Neighbourhood:               n.Neighbourhood,
		Lat:                         formatNumberPtr(n.Lat),
		Long:                        formatNumberPtr(n.Long),
		Country:                     n.Country,
		CountryCode:                 n.CountryCode,
		InstantBookable:             n.InstantBookable,
		CancellationPolicy:          n.CancellationPolicy,
		RoomType:                    n.RoomType,
		ConstructionYear:            formatNumberPtr(n.ConstructionYear),
		Price:                       formatCurrencyPtr(n.Price),
		ServiceFee:                  formatCurrencyPtr(n.ServiceFee),
		MinimumNights:               formatNumberPtr(n.MinimumNights),
		NumberOfReviews:             formatNumberPtr(n.NumberOfReviews),
		LastReview:                  formatDatePtr(n.LastReview),
		ReviewsPerMonth:             formatNumberPtr(n.ReviewsPerMonth),
		ReviewRateNumber:            formatNumberPtr(n.ReviewRateNumber),
		CalculatedHostListingsCount: formatNumberPtr(n.CalculatedHostListingsCount),
		Availability365:             formatNumberPtr(n.Availability365),
		HouseRules:                  n.HouseRules,
		License:                     n.License,
		PropertyType:                n.PropertyType,
		Thumbnail:                   n.Thumbnail,
		Images:                      copyImages(n.Images),
		CreatedAt:                   n.CreatedAt,
		UpdatedAt:                   n.UpdatedAt,
	}
}

// DisplayFromDocument собирает витринную форму из сырого документа любой из двух форм.
// Для каждого поля сначала берется витринный ключ, затем нормализованный.
// Ожидаются уже "плоские" значения: string, числа, bool, time.Time, []any, []string.
func DisplayFromDocument(doc map[string]any) DisplayListing {
	var l DisplayListing
	for _, f := range ListingFields {
		v, ok := doc[f.Display]
		if !ok || v == nil {
			v = doc[f.Normalized]
		}
		l.SetField(f.Display, displayValue(v, f.Kind))
	}

	l.Images = imagesValue(doc[ImagesKey])
	l.CreatedAt = timeValue(doc["createdAt"])
	l.UpdatedAt = timeValue(doc["updatedAt"])
	return l
}

func displayValue(v any, kind FieldKind) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case bool:
		return strings.ToUpper(strconv.FormatBool(val))
	case time.Time:
		return FormatDate(val)
	case float64:
		return formatByKind(val, kind)
	case float32:
		return formatByKind(float64(val), kind)
	case int:
		return formatByKind(float64(val), kind)
	case int32:
		return formatByKind(float64(val), kind)
	case int64:
		return formatByKind(float64(val), kind)
	default:
		return fmt.Sprint(val)
	}
}

func formatByKind(v float64, kind FieldKind) string {
	if kind == KindCurrency {
		return FormatCurrency(v)
	}
	return FormatNumber(v)
}

func imagesValue(v any) []string {
	switch val := v.(type) {
	case []string:
		return copyImages(val)
	case []any:
		images := make([]string, 0, len(val))
		for _, item := range val {
			if s, ok := item.(string); ok && s != "" {
				images = append(images, s)
			}
		}
		return images
	case string:
		return SplitImages(val)
	}
	return []string{}
}

func timeValue(v any) time.Time {
	if t, ok := v.(time.Time); ok {
		return t
	}
	return time.Time{}
}

// SplitImages разбирает список ссылок через запятую, пустые элементы отбрасываются.
func SplitImages(raw string) []string {
	images := []string{}
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			images = append(images, part)
		}
	}
	return images
}

func copyImages(src []string) []string {
	images := make([]string, len(src))
	copy(images, src)
	return images
}
