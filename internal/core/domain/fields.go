package domain

// FieldKind определяет, как значение поля парсится при нормализации и рендерится обратно.
type FieldKind int

const (
	KindText FieldKind = iota
	KindNumber
	KindCurrency
	KindDate
)

// ListingField описывает одно скалярное поле объявления в обеих формах.
type ListingField struct {
	Display    string // ключ витринной формы
	Normalized string // ключ нормализованной формы
	Form       string // имя поля html-формы
	Kind       FieldKind
	Required   bool
}

// ListingFields - единая таблица соответствия форм. Images обрабатываются отдельно.
var ListingFields = []ListingField{
	{Display: "id", Normalized: "id", Form: "id", Kind: KindText, Required: true},
	{Display: "NAME", Normalized: "NAME", Form: "NAME", Kind: KindText, Required: true},
	{Display: "host id", Normalized: "host_id", Form: "host_id", Kind: KindText, Required: true},
	{Display: "host_identity_verified", Normalized: "host_identity_verified", Form: "host_identity_verified", Kind: KindText},
	{Display: "host name", Normalized: "host_name", Form: "host_name", Kind: KindText, Required: true},
	{Display: "neighbourhood group", Normalized: "neighbourhood_group", Form: "neighbourhood_group", Kind: KindText, Required: true},
	{Display: "neighbourhood", Normalized: "neighbourhood", Form: "neighbourhood", Kind: KindText, Required: true},
	{Display: "lat", Normalized: "lat", Form: "lat", Kind: KindNumber},
	{Display: "long", Normalized: "long", Form: "long", Kind: KindNumber},
	{Display: "country", Normalized: "country", Form: "country", Kind: KindText},
	{Display: "country code", Normalized: "country_code", Form: "country_code", Kind: KindText},
	{Display: "instant_bookable", Normalized: "instant_bookable", Form: "instant_bookable", Kind: KindText},
	{Display: "cancellation_policy", Normalized: "cancellation_policy", Form: "cancellation_policy", Kind: KindText},
	{Display: "room type", Normalized: "room_type", Form: "room_type", Kind: KindText, Required: true},
	{Display: "Construction year", Normalized: "Construction_year", Form: "construction_year", Kind: KindNumber},
	{Display: "price", Normalized: "price", Form: "price", Kind: KindCurrency, Required: true},
	{Display: "service fee", Normalized: "service_fee", Form: "service_fee", Kind: KindCurrency},
	{Display: "minimum nights", Normalized: "minimum_nights", Form: "minimum_nights", Kind: KindNumber},
	{Display: "number of reviews", Normalized: "number_of_reviews", Form: "number_of_reviews", Kind: KindNumber},
	{Display: "last review", Normalized: "last_review", Form: "last_review", Kind: KindDate},
	{Display: "reviews per month", Normalized: "reviews_per_month", Form: "reviews_per_month", Kind: KindNumber},
	{Display: "review rate number", Normalized: "review_rate_number", Form: "review_rate_number", Kind: KindNumber},
	{Display: "calculated host listings count", Normalized: "calculated_host_listings_count", Form: "calculated_host_listings_count", Kind: KindNumber},
	{Display: "availability 365", Normalized: "availability_365", Form: "availability_365", Kind: KindNumber},
	{Display: "house_rules", Normalized: "house_rules", Form: "house_rules", Kind: KindText},
	{Display: "license", Normalized: "license", Form: "license", Kind: KindText},
	{Display: "property_type", Normalized: "property_type", Form: "property_type", Kind: KindText, Required: true},
	{Display: "thumbnail", Normalized: "thumbnail", Form: "thumbnail", Kind: KindText, Required: true},
}

// ImagesKey одинаков в обеих формах
const ImagesKey = "images"

var fieldsByDisplay = func() map[string]ListingField {
	m := make(map[string]ListingField, len(ListingFields))
	for _, f := range ListingFields {
		m[f.Display] = f
	}
	return m
}()

// FieldByDisplay ищет описание поля по витринному ключу.
func FieldByDisplay(key string) (ListingField, bool) {
	f, ok := fieldsByDisplay[key]
	return f, ok
}

// FormName возвращает имя поля формы для витринного ключа (или сам ключ).
func FormName(displayKey string) string {
	if f, ok := fieldsByDisplay[displayKey]; ok {
		return f.Form
	}
	return displayKey
}

func (l *DisplayListing) fieldRef(key string) *string {
	switch key {
	case "id":
		return &l.ID
	case "NAME":
		return &l.Name
	case "host id":
		return &l.HostID
	case "host_identity_verified":
		return &l.HostIdentityVerified
	case "host name":
		return &l.HostName
	case "neighbourhood group":
		return &l.NeighbourhoodGroup
	case "neighbourhood":
		return &l.Neighbourhood
	case "lat":
		return &l.Lat
	case "long":
		return &l.Long
	case "country":
		return &l.Country
	case "country code":
		return &l.CountryCode
	case "instant_bookable":
		return &l.InstantBookable
	case "cancellation_policy":
		return &l.CancellationPolicy
	case "room type":
		return &l.RoomType
	case "Construction year":
		return &l.ConstructionYear
	case "price":
		return &l.Price
	case "service fee":
		return &l.ServiceFee
	case "minimum nights":
		return &l.MinimumNights
	case "number of reviews":
		return &l.NumberOfReviews
	case "last review":
		return &l.LastReview
	case "reviews per month":
		return &l.ReviewsPerMonth
	case "review rate number":
		return &l.ReviewRateNumber
	case "calculated host listings count":
		return &l.CalculatedHostListingsCount
	case "availability 365":
		return &l.Availability365
	case "house_rules":
		return &l.HouseRules
	case "license":
		return &l.License
	case "property_type":
		return &l.PropertyType
	case "thumbnail":
		return &l.Thumbnail
	}
	return nil
}

// Field возвращает значение поля по витринному ключу.
func (l DisplayListing) Field(key string) string {
	if ref := l.fieldRef(key); ref != nil {
		return *ref
	}
	return ""
}

// SetField устанавливает значение по витринному ключу; false для неизвестного ключа.
func (l *DisplayListing) SetField(key, value string) bool {
	ref := l.fieldRef(key)
	if ref == nil {
		return false
	}
	*ref = value
	return true
}
