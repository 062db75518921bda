package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/vastrakart/assistant/internal/core/domain"
	"github.com/vastrakart/assistant/internal/core/port"
)

var _ port.PreferenceStore = (*PreferenceService)(nil)

// PreferenceService keeps per-user liked/disliked/saved sets in a
// key-value storage, one JSON document per user. Reads never fail the
// caller: a storage error degrades to default empty sets. Update is
// read-modify-write without compare-and-swap, so concurrent updates
// for the same user are last-writer-wins.
type PreferenceService struct {
	storage port.KeyValueStorage
}

func NewPreferenceService(storage port.KeyValueStorage) PreferenceService {
	return PreferenceService{storage}
}

func (s PreferenceService) Preferences(
	ctx context.Context, userID string,
) domain.UserPreferences {
	const op = "PreferenceService.Preferences"
	log := slog.With("op", op)

	b, err := s.storage.Get(ctx, prefsKey(userID))
	if err != nil {
		log.Warn("failed to read preferences, using defaults",
			"userID", userID, "err", err)
		return domain.NewUserPreferences()
	}
	if b == nil {
		return domain.NewUserPreferences()
	}

	var sp storedPrefs
	if err := json.Unmarshal(b, &sp); err != nil {
		log.Warn("corrupt preferences value, using defaults",
			"userID", userID, "err", err)
		return domain.NewUserPreferences()
	}
	return sp.toDomain()
}

// Update adds productID to the set named by action, idempotently, and
// writes the whole document back. Write failures are absorbed: the
// updated in-memory value is still returned to the caller.
func (s PreferenceService) Update(
	ctx context.Context,
	userID, productID string,
	action domain.PreferenceAction,
) (domain.UserPreferences, error) {
	const op = "PreferenceService.Update"
	log := slog.With("op", op)

	if err := ctx.Err(); err != nil {
		return domain.UserPreferences{}, fmt.Errorf("%s: %w", op, err)
	}

	prefs := s.Preferences(ctx, userID)
	prefs.Add(productID, action)

	b, err := json.Marshal(fromDomainPrefs(prefs))
	if err != nil {
		return prefs, fmt.Errorf("%s: %w", op, err)
	}

	if err := s.storage.Set(ctx, prefsKey(userID), b); err != nil {
		log.Warn("failed to persist preferences",
			"userID", userID, "err", err)
	}
	return prefs, nil
}

func (s PreferenceService) SavedItems(
	ctx context.Context, userID string,
) []string {
	return s.Preferences(ctx, userID).Saved
}

func prefsKey(userID string) string {
	return fmt.Sprintf("user:%s:prefs", userID)
}

type storedPrefs struct {
	Liked    []string `json:"liked"`
	Disliked []string `json:"disliked"`
	Saved    []string `json:"saved"`
}

func (sp storedPrefs) toDomain() domain.UserPreferences {
	p := domain.NewUserPreferences()
	if sp.Liked != nil {
		p.Liked = sp.Liked
	}
	if sp.Disliked != nil {
		p.Disliked = sp.Disliked
	}
	if sp.Saved != nil {
		p.Saved = sp.Saved
	}
	return p
}

func fromDomainPrefs(p domain.UserPreferences) storedPrefs {
	return storedPrefs{
		Liked:    p.Liked,
		Disliked: p.Disliked,
		Saved:    p.Saved,
	}
}
