package domain

type ReplyType string

const (
	ReplyText     ReplyType = "text"
	ReplyProducts ReplyType = "products"
)

// Reply is the routed answer to an inbound chat message.
type Reply struct {
	Type     ReplyType
	Content  string
	Products []Product
}

// SearchResult is a capped, preference-filtered product list together
// with the filters that produced it and a follow-up prompt.
type SearchResult struct {
	Products []Product
	Filters  FilterSet
	FollowUp string
}

type Order struct {
	OrderID  string
	Amount   int
	Currency string
	Mock     bool
}

type ClientEventKind string

const (
	EventSearch     ClientEventKind = "search"
	EventPreference ClientEventKind = "preference"
)

// ClientEvent is a behavioral record emitted to the analytics stream.
type ClientEvent struct {
	UserID    string
	Kind      ClientEventKind
	Query     string
	ProductID string
	Action    string
	Unix      int64
}
