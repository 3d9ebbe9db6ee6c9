package repositories

// DefaultLimit is applied when a page carries no limit. There is no
// enforced maximum; callers may request arbitrarily large pages.
const DefaultLimit = 20

// Page describes a skip/limit window over an ordered listing.
type Page struct {
	Skip  int
	Limit int
}

// Normalize returns a page with negative skip clamped to zero and a
// missing limit replaced by DefaultLimit.
func (p Page) Normalize() Page {
	if p.Skip < 0 {
		p.Skip = 0
	}
	if p.Limit <= 0 {
		p.Limit = DefaultLimit
	}
	return p
}

// Scope restricts a post listing relative to the viewer.
type Scope string

const (
	ScopeAll   Scope = "all"
	ScopeSaved Scope = "saved"
	ScopeLiked Scope = "liked"
)

// PostFilter selects posts by category and viewer-relative scope. An empty
// or "all" category matches everything.
type PostFilter struct {
	Category string
	Scope    Scope
}
