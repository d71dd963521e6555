package constants

// Обменник событий об объявлениях
const (
	ListingsExchangeType = "topic"
)

// Ключи маршрутизации совпадают с типами событий
const (
	RoutingKeyListingCreated   = "listing.created"
	RoutingKeyListingUpdated   = "listing.updated"
	RoutingKeyListingDeleted   = "listing.deleted"
	RoutingKeyListingsImported = "listings.imported"
)

// Заголовки сообщений
const (
	HeaderTraceID = "x-trace-id"
)
