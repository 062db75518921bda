package domain

import "slices"

// GuestUserID is used when a request carries no user id. All anonymous
// callers share this single preference record.
const GuestUserID = "guest"

type PreferenceAction string

const (
	ActionLike    PreferenceAction = "like"
	ActionDislike PreferenceAction = "dislike"
	ActionSave    PreferenceAction = "save"
)

func (a PreferenceAction) Valid() bool {
	switch a {
	case ActionLike, ActionDislike, ActionSave:
		return true
	}
	return false
}

// UserPreferences keeps the per-user product id sets. The slices are
// ordered by insertion but carry set semantics: Add is a no-op for an
// id already present.
type UserPreferences struct {
	Liked    []string
	Disliked []string
	Saved    []string
}

func NewUserPreferences() UserPreferences {
	return UserPreferences{
		Liked:    []string{},
		Disliked: []string{},
		Saved:    []string{},
	}
}

func (p *UserPreferences) Add(productID string, action PreferenceAction) {
	switch action {
	case ActionLike:
		p.Liked = appendUnique(p.Liked, productID)
	case ActionDislike:
		p.Disliked = appendUnique(p.Disliked, productID)
	case ActionSave:
		p.Saved = appendUnique(p.Saved, productID)
	}
}

func (p UserPreferences) IsDisliked(productID string) bool {
	return slices.Contains(p.Disliked, productID)
}

func appendUnique(ids []string, id string) []string {
	if slices.Contains(ids, id) {
		return ids
	}
	return append(ids, id)
}
