package service_test

import (
	"context"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vastrakart/assistant/internal/core/catalog"
	"github.com/vastrakart/assistant/internal/core/domain"
	"github.com/vastrakart/assistant/internal/core/service"
)

// eventRecorder captures produced client events.
type eventRecorder struct {
	mu     sync.Mutex
	events []domain.ClientEvent
}

func (r *eventRecorder) ProduceEvent(_ context.Context, e domain.ClientEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
	return nil
}

func (r *eventRecorder) all() []domain.ClientEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]domain.ClientEvent(nil), r.events...)
}

type fixture struct {
	assistant service.Assistant
	prefs     service.PreferenceService
	events    *eventRecorder
}

func newFixture(t *testing.T) fixture {
	t.Helper()

	cat, err := catalog.New()
	require.NoError(t, err)

	prefs := service.NewPreferenceService(newMemStorage())
	events := &eventRecorder{}
	return fixture{
		assistant: service.NewAssistant(cat, prefs, events),
		prefs:     prefs,
		events:    events,
	}
}

func TestAssistantSearch(t *testing.T) {

	t.Run("FullScenario", func(t *testing.T) {
		f := newFixture(t)

		res, err := f.assistant.Search(
			t.Context(), "u1", "red khaadi kurta for men under ₹3000",
		)
		require.NoError(t, err)

		require.Len(t, res.Products, 1)
		p := res.Products[0]
		assert.Equal(t, "Kurta", p.Category)
		assert.Equal(t, "Red", p.Color)
		assert.Equal(t, "Khaadi", p.Material)
		assert.LessOrEqual(t, p.Price, 3000)

		assert.Equal(t, "kurta", res.Filters.Category)
		assert.Equal(t, "red", res.Filters.Color)
		assert.Equal(t, "khaadi", res.Filters.Material)
		assert.Equal(t, "men", res.Filters.Gender)
		require.NotNil(t, res.Filters.MaxPrice)
		assert.Equal(t, 3000, *res.Filters.MaxPrice)
	})

	t.Run("CapsAtFiveInCatalogOrder", func(t *testing.T) {
		f := newFixture(t)

		res, err := f.assistant.Search(t.Context(), "u1", "")
		require.NoError(t, err)

		require.Len(t, res.Products, 5)
		assert.Equal(t, "p1", res.Products[0].ID)
		assert.Equal(t, "p5", res.Products[4].ID)
		assert.Contains(t, res.FollowUp, "delivery time or rating")
	})

	t.Run("ExcludesDisliked", func(t *testing.T) {
		f := newFixture(t)
		ctx := t.Context()

		_, err := f.prefs.Update(ctx, "u1", "p1", domain.ActionDislike)
		require.NoError(t, err)

		res, err := f.assistant.Search(ctx, "u1", "red kurta")
		require.NoError(t, err)

		for _, p := range res.Products {
			assert.NotEqual(t, "p1", p.ID)
		}
	})

	t.Run("DislikesOfOtherUsersDoNotApply", func(t *testing.T) {
		f := newFixture(t)
		ctx := t.Context()

		_, err := f.prefs.Update(ctx, "other", "p1", domain.ActionDislike)
		require.NoError(t, err)

		res, err := f.assistant.Search(ctx, "u1", "red khaadi kurta")
		require.NoError(t, err)

		require.NotEmpty(t, res.Products)
		assert.Equal(t, "p1", res.Products[0].ID)
	})

	t.Run("NoCandidatesPromptsToBroaden", func(t *testing.T) {
		f := newFixture(t)

		res, err := f.assistant.Search(t.Context(), "u1", "maroon tuxedo under ₹10")
		require.NoError(t, err)

		assert.Empty(t, res.Products)
		assert.Contains(t, res.FollowUp, "broaden your search")
	})

	t.Run("FewResultsPromptForMoreOptions", func(t *testing.T) {
		f := newFixture(t)

		res, err := f.assistant.Search(t.Context(), "u1", "black leather jacket")
		require.NoError(t, err)

		require.NotEmpty(t, res.Products)
		assert.Less(t, len(res.Products), 3)
		assert.Contains(t, res.FollowUp, "different filters")
	})

	t.Run("EmitsSearchEvent", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.assistant.Search(t.Context(), "u1", "blue jeans")
		require.NoError(t, err)

		events := f.events.all()
		require.Len(t, events, 1)
		assert.Equal(t, domain.EventSearch, events[0].Kind)
		assert.Equal(t, "u1", events[0].UserID)
		assert.Equal(t, "blue jeans", events[0].Query)
	})
}

func TestAssistantChat(t *testing.T) {

	t.Run("Greeting", func(t *testing.T) {
		f := newFixture(t)

		reply, err := f.assistant.Chat(t.Context(), "u1", "hello!")
		require.NoError(t, err)

		assert.Equal(t, domain.ReplyText, reply.Type)
		assert.True(t, strings.HasPrefix(reply.Content, "Hello!"))
		assert.Empty(t, reply.Products)
	})

	t.Run("GreetingOnlyAtStart", func(t *testing.T) {
		f := newFixture(t)

		reply, err := f.assistant.Chat(t.Context(), "u1", "stylish kurta, hey")
		require.NoError(t, err)

		assert.Equal(t, domain.ReplyProducts, reply.Type)
	})

	t.Run("EmptyWishlist", func(t *testing.T) {
		f := newFixture(t)

		reply, err := f.assistant.Chat(t.Context(), "u1", "show my wishlist")
		require.NoError(t, err)

		assert.Equal(t, domain.ReplyProducts, reply.Type)
		assert.Contains(t, reply.Content, "wishlist is empty")
		assert.Empty(t, reply.Products)
	})

	t.Run("WishlistWithSavedItems", func(t *testing.T) {
		f := newFixture(t)
		ctx := t.Context()

		_, err := f.prefs.Update(ctx, "u1", "p5", domain.ActionSave)
		require.NoError(t, err)
		_, err = f.prefs.Update(ctx, "u1", "p2", domain.ActionSave)
		require.NoError(t, err)

		reply, err := f.assistant.Chat(ctx, "u1", "my saved items")
		require.NoError(t, err)

		assert.Equal(t, "Here are your 2 saved items:", reply.Content)
		require.Len(t, reply.Products, 2)
		assert.Equal(t, "p2", reply.Products[0].ID)
		assert.Equal(t, "p5", reply.Products[1].ID)
	})

	t.Run("SearchRoute", func(t *testing.T) {
		f := newFixture(t)

		reply, err := f.assistant.Chat(t.Context(), "u1", "red kurta")
		require.NoError(t, err)

		assert.Equal(t, domain.ReplyProducts, reply.Type)
		assert.Contains(t, reply.Content, "products matching your search")
		assert.NotEmpty(t, reply.Products)
	})

	t.Run("SearchRouteNoMatches", func(t *testing.T) {
		f := newFixture(t)

		reply, err := f.assistant.Chat(t.Context(), "u1", "maroon tuxedo under ₹10")
		require.NoError(t, err)

		assert.Equal(t, domain.ReplyProducts, reply.Type)
		assert.Contains(t, reply.Content, "browse our collection")
		assert.Empty(t, reply.Products)
	})
}

func TestAssistantUpdatePreference(t *testing.T) {

	t.Run("UnknownAction", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.assistant.UpdatePreference(
			t.Context(), "u1", "p1", domain.PreferenceAction("purchase"),
		)

		require.Error(t, err)
		assert.ErrorIs(t, err, service.ErrUnknownAction)
	})

	t.Run("EmitsPreferenceEvent", func(t *testing.T) {
		f := newFixture(t)

		prefs, err := f.assistant.UpdatePreference(
			t.Context(), "u1", "p1", domain.ActionLike,
		)
		require.NoError(t, err)
		assert.Equal(t, []string{"p1"}, prefs.Liked)

		events := f.events.all()
		require.Len(t, events, 1)
		assert.Equal(t, domain.EventPreference, events[0].Kind)
		assert.Equal(t, "p1", events[0].ProductID)
		assert.Equal(t, "like", events[0].Action)
	})
}

func TestAssistantWishlist(t *testing.T) {
	f := newFixture(t)
	ctx := t.Context()

	_, err := f.prefs.Update(ctx, "u1", "p3", domain.ActionSave)
	require.NoError(t, err)

	ps, err := f.assistant.Wishlist(ctx, "u1")
	require.NoError(t, err)

	require.Len(t, ps, 1)
	assert.Equal(t, "p3", ps[0].ID)
}
