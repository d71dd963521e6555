package domain

import "time"

// DisplayListing - объявление в "витринной" форме: ключи с пробелами, все значения строки.
// В этом виде объект приходит из форм и API и в этом же виде сохраняется.
type DisplayListing struct {
	ID                          string   `json:"id" bson:"id"`
	Name                        string   `json:"NAME" bson:"NAME"`
	HostID                      string   `json:"host id" bson:"host id"`
	HostIdentityVerified        string   `json:"host_identity_verified" bson:"host_identity_verified"`
	HostName                    string   `json:"host name" bson:"host name"`
	NeighbourhoodGroup          string   `json:"neighbourhood group" bson:"neighbourhood group"`
	Neighbourhood               string   `json:"neighbourhood" bson:"neighbourhood"`
	Lat                         string   `json:"lat" bson:"lat"`
	Long                        string   `json:"long" bson:"long"`
	Country                     string   `json:"country" bson:"country"`
	CountryCode                 string   `json:"country code" bson:"country code"`
	InstantBookable             string   `json:"instant_bookable" bson:"instant_bookable"`
	CancellationPolicy          string   `json:"cancellation_policy" bson:"cancellation_policy"`
	RoomType                    string   `json:"room type" bson:"room type"`
	ConstructionYear            string   `json:"Construction year" bson:"Construction year"`
	Price                       string   `json:"price" bson:"price"`
	ServiceFee                  string   `json:"service fee" bson:"service fee"`
	MinimumNights               string   `json:"minimum nights" bson:"minimum nights"`
	NumberOfReviews             string   `json:"number of reviews" bson:"number of reviews"`
	LastReview                  string   `json:"last review" bson:"last review"`
	ReviewsPerMonth             string   `json:"reviews per month" bson:"reviews per month"`
	ReviewRateNumber            string   `json:"review rate number" bson:"review rate number"`
	CalculatedHostListingsCount string   `json:"calculated host listings count" bson:"calculated host listings count"`
	Availability365             string   `json:"availability 365" bson:"availability 365"`
	HouseRules                  string   `json:"house_rules" bson:"house_rules"`
	License                     string   `json:"license" bson:"license"`
	PropertyType                string   `json:"property_type" bson:"property_type"`
	Thumbnail                   string   `json:"thumbnail" bson:"thumbnail"`
	Images                      []string `json:"images" bson:"images"`

	CreatedAt time.Time `json:"createdAt,omitempty" bson:"createdAt,omitempty"`
	UpdatedAt time.Time `json:"updatedAt,omitempty" bson:"updatedAt,omitempty"`
}

// NormalizedListing - нормализованная форма, которую пишет импорт:
// snake_case ключи, числа и даты типизированы, отсутствие значения = nil.
type NormalizedListing struct {
	ID                          string     `json:"id" bson:"id"`
	Name                        string     `json:"NAME" bson:"NAME"`
	HostID                      string     `json:"host_id" bson:"host_id"`
	HostIdentityVerified        string     `json:"host_identity_verified" bson:"host_identity_verified"`
	HostName                    string     `json:"host_name" bson:"host_name"`
	NeighbourhoodGroup          string     `json:"neighbourhood_group" bson:"neighbourhood_group"`
	Neighbourhood               string     `json:"neighbourhood" bson:"neighbourhood"`
	Lat                         *float64   `json:"lat" bson:"lat"`
	Long                        *float64   `json:"long" bson:"long"`
	Country                     string     `json:"country" bson:"country"`
	CountryCode                 string     `json:"country_code" bson:"country_code"`
	InstantBookable             string     `json:"instant_bookable" bson:"instant_bookable"`
	CancellationPolicy          string     `json:"cancellation_policy" bson:"cancellation_policy"`
	RoomType                    string     `json:"room_type" bson:"room_type"`
	ConstructionYear            *float64   `json:"Construction_year" bson:"Construction_year"`
	Price                       *float64   `json:"price" bson:"price"`
	ServiceFee                  *float64   `json:"service_fee" bson:"service_fee"`
	MinimumNights               *float64   `json:"minimum_nights" bson:"minimum_nights"`
	NumberOfReviews             *float64   `json:"number_of_reviews" bson:"number_of_reviews"`
	LastReview                  *time.Time `json:"last_review" bson:"last_review"`
	ReviewsPerMonth             *float64   `json:"reviews_per_month" bson:"reviews_per_month"`
	ReviewRateNumber            *float64   `json:"review_rate_number" bson:"review_rate_number"`
	CalculatedHostListingsCount *float64   `json:"calculated_host_listings_count" bson:"calculated_host_listings_count"`
	Availability365             *float64   `json:"availability_365" bson:"availability_365"`
	HouseRules                  string     `json:"house_rules" bson:"house_rules"`
	License                     string     `json:"license" bson:"license"`
	PropertyType                string     `json:"property_type" bson:"property_type"`
	Thumbnail                   string     `json:"thumbnail" bson:"thumbnail"`
	Images                      []string   `json:"images" bson:"images"`

	// Geohash считается из lat/long, если обе координаты есть
	Geohash string `json:"geohash,omitempty" bson:"geohash,omitempty"`

	CreatedAt time.Time `json:"createdAt,omitempty" bson:"createdAt,omitempty"`
	UpdatedAt time.Time `json:"updatedAt,omitempty" bson:"updatedAt,omitempty"`
}

// Лимиты выборок для разных сценариев чтения
const (
	ListLimit        = 100
	SearchLimit      = 50
	PriceRangeLimit  = 200
	FilterLimit      = 100
	QuickSearchLimit = 100
)

// ImportStats - итог пакетного импорта
type ImportStats struct {
	Total     int
	Succeeded int
	Failed    int
	FailedIDs []string
	// InCollection - сколько документов в коллекции после импорта
	InCollection int64
}
