package port

import (
	"context"

	"github.com/vastrakart/assistant/internal/core/domain"
)

// Inbound ports, implemented by the core services and consumed by the
// HTTP boundary.

type Searcher interface {
	Search(ctx context.Context, userID, query string) (domain.SearchResult, error)
}

type Chatter interface {
	Chat(ctx context.Context, userID, message string) (domain.Reply, error)
}

type PreferenceUpdater interface {
	UpdatePreference(
		ctx context.Context,
		userID, productID string,
		action domain.PreferenceAction,
	) (domain.UserPreferences, error)
}

type WishlistProvider interface {
	Wishlist(ctx context.Context, userID string) ([]domain.Product, error)
}

type OrderPlacer interface {
	PlaceOrder(ctx context.Context, amount int, currency string) (domain.Order, error)
}

type PaymentVerifier interface {
	VerifyPayment(ctx context.Context, orderID, paymentID, signature string) (bool, error)
}

// Outbound ports, consumed by the core services and implemented by the
// adapters.

// KeyValueStorage is a durable string-keyed byte store. Get returns a
// nil slice and a nil error when the key is absent.
type KeyValueStorage interface {
	Set(ctx context.Context, key string, value []byte) error
	Get(ctx context.Context, key string) ([]byte, error)
}

// PreferenceStore holds the per-user liked/disliked/saved sets.
// Preferences never fails the caller: a backing-store failure degrades
// to defaults or to the transient fallback instead of propagating.
type PreferenceStore interface {
	Preferences(ctx context.Context, userID string) domain.UserPreferences
	Update(
		ctx context.Context,
		userID, productID string,
		action domain.PreferenceAction,
	) (domain.UserPreferences, error)
	SavedItems(ctx context.Context, userID string) []string
}

type CatalogSearcher interface {
	Match(f domain.FilterSet) []domain.Product
	Resolve(ids []string) []domain.Product
}

type OrderCreator interface {
	CreateOrder(ctx context.Context, amount int, currency string) (domain.Order, error)
}

type ClientEventsProducer interface {
	ProduceEvent(ctx context.Context, e domain.ClientEvent) error
}
