package model

// Kind names an entity collection. It doubles as the URL segment and the
// upstream resource path.
type Kind string

const (
	KindResident      Kind = "residents"
	KindApartment     Kind = "apartments"
	KindDocument      Kind = "documents"
	KindHotline       Kind = "hotlines"
	KindMovingTicket  Kind = "moving-tickets"
	KindReport        Kind = "reports"
	KindNotification  Kind = "notifications"
	KindNews          Kind = "news"
	KindUserApartment Kind = "user-apartments"
)

// Kinds lists every collection in a stable order.
var Kinds = []Kind{
	KindResident,
	KindApartment,
	KindDocument,
	KindHotline,
	KindMovingTicket,
	KindReport,
	KindNotification,
	KindNews,
	KindUserApartment,
}

func (k Kind) String() string { return string(k) }
