package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"github.com/vastrakart/assistant/internal/core/domain"
	"github.com/vastrakart/assistant/internal/core/port"
	"github.com/vastrakart/assistant/internal/core/query"
)

var _ port.Searcher = (*Assistant)(nil)
var _ port.Chatter = (*Assistant)(nil)
var _ port.PreferenceUpdater = (*Assistant)(nil)
var _ port.WishlistProvider = (*Assistant)(nil)

// maxResults caps every search response. Truncation keeps catalog
// order, there is no ranking.
const maxResults = 5

const (
	introContent = "Hello! I'm your AI shopping assistant. " +
		"Tell me what you're looking for! For example: " +
		"'red khaadi kurta for men under ₹3000' or 'beige sneakers under ₹2000'"
	emptyWishlistContent = "Your wishlist is empty. Save items by clicking the heart icon!"
	chatNoMatchContent   = "I couldn't find exact matches. Try adjusting your filters or browse our collection!"

	followUpBroaden = "I couldn't find exact matches. Would you like to broaden your search?"
	followUpMore    = "Would you like to see more options with different filters?"
	followUpRefine  = "Would you like to filter by delivery time or rating?"
)

var greetingPattern = regexp.MustCompile(`^(hi|hello|hey)`)

var ErrUnknownAction = errors.New("unknown preference action")

// Assistant composes the catalog, the query interpreter and the
// preference store into the conversational search flow.
type Assistant struct {
	catalog port.CatalogSearcher
	prefs   port.PreferenceStore
	events  port.ClientEventsProducer
}

func NewAssistant(
	catalog port.CatalogSearcher,
	prefs port.PreferenceStore,
	events port.ClientEventsProducer,
) Assistant {
	return Assistant{catalog, prefs, events}
}

// Search interprets the raw query, matches the catalog, removes the
// caller's disliked products and truncates to the first five in
// catalog order.
func (a Assistant) Search(
	ctx context.Context, userID, rawQuery string,
) (domain.SearchResult, error) {
	const op = "Assistant.Search"

	if err := ctx.Err(); err != nil {
		return domain.SearchResult{}, fmt.Errorf("%s: %w", op, err)
	}

	filters := query.Interpret(rawQuery)
	candidates := a.catalog.Match(filters)
	prefs := a.prefs.Preferences(ctx, userID)

	results := make([]domain.Product, 0, maxResults)
	for _, p := range candidates {
		if prefs.IsDisliked(p.ID) {
			continue
		}
		results = append(results, p)
		if len(results) == maxResults {
			break
		}
	}

	a.emit(ctx, domain.ClientEvent{
		UserID: userID,
		Kind:   domain.EventSearch,
		Query:  rawQuery,
		Unix:   time.Now().Unix(),
	})

	return domain.SearchResult{
		Products: results,
		Filters:  filters,
		FollowUp: followUp(len(results)),
	}, nil
}

// Chat classifies the inbound message, first match wins: greeting,
// wishlist request, otherwise product search.
func (a Assistant) Chat(
	ctx context.Context, userID, message string,
) (domain.Reply, error) {
	const op = "Assistant.Chat"

	if err := ctx.Err(); err != nil {
		return domain.Reply{}, fmt.Errorf("%s: %w", op, err)
	}

	lower := strings.ToLower(message)

	if greetingPattern.MatchString(lower) {
		return domain.Reply{Type: domain.ReplyText, Content: introContent}, nil
	}

	if strings.Contains(lower, "wishlist") || strings.Contains(lower, "saved") {
		saved := a.catalog.Resolve(a.prefs.SavedItems(ctx, userID))
		content := emptyWishlistContent
		if len(saved) > 0 {
			content = fmt.Sprintf("Here are your %d saved items:", len(saved))
		}
		return domain.Reply{
			Type:     domain.ReplyProducts,
			Content:  content,
			Products: saved,
		}, nil
	}

	res, err := a.Search(ctx, userID, message)
	if err != nil {
		return domain.Reply{}, fmt.Errorf("%s: %w", op, err)
	}

	content := chatNoMatchContent
	if len(res.Products) > 0 {
		content = fmt.Sprintf(
			"I found %d products matching your search:", len(res.Products),
		)
	}
	return domain.Reply{
		Type:     domain.ReplyProducts,
		Content:  content,
		Products: res.Products,
	}, nil
}

func (a Assistant) UpdatePreference(
	ctx context.Context,
	userID, productID string,
	action domain.PreferenceAction,
) (domain.UserPreferences, error) {
	const op = "Assistant.UpdatePreference"

	if !action.Valid() {
		return domain.UserPreferences{}, fmt.Errorf(
			"%s: %w: %q", op, ErrUnknownAction, action,
		)
	}

	prefs, err := a.prefs.Update(ctx, userID, productID, action)
	if err != nil {
		return domain.UserPreferences{}, fmt.Errorf("%s: %w", op, err)
	}

	a.emit(ctx, domain.ClientEvent{
		UserID:    userID,
		Kind:      domain.EventPreference,
		ProductID: productID,
		Action:    string(action),
		Unix:      time.Now().Unix(),
	})

	return prefs, nil
}

func (a Assistant) Wishlist(
	ctx context.Context, userID string,
) ([]domain.Product, error) {
	const op = "Assistant.Wishlist"

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return a.catalog.Resolve(a.prefs.SavedItems(ctx, userID)), nil
}

// emit is best effort: analytics must never affect the user flow.
func (a Assistant) emit(ctx context.Context, e domain.ClientEvent) {
	const op = "Assistant.emit"

	if err := a.events.ProduceEvent(ctx, e); err != nil {
		slog.With("op", op).Warn("failed to produce client event", "err", err)
	}
}

func followUp(n int) string {
	switch {
	case n == 0:
		return followUpBroaden
	case n < 3:
		return followUpMore
	default:
		return followUpRefine
	}
}
