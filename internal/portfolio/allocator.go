package portfolio

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/google/uuid"
	gosimple "github.com/gosimple/slug"
)

// ErrInvalidSlug is returned when a candidate slug does not match the
// allowed pattern.
var ErrInvalidSlug = errors.New("slug may only contain lowercase letters, digits and hyphens")

// slugPattern is the only accepted slug shape: lowercase ASCII letters,
// digits and hyphens, non-empty.
var slugPattern = regexp.MustCompile(`^[a-z0-9-]+$`)

// Availability is the result of an advisory availability query. It does
// not reserve anything; a slug reported available can still be lost to a
// concurrent claim.
type Availability struct {
	Slug       string `json:"slug"`
	Available  bool   `json:"available"`
	Suggestion string `json:"suggestion,omitempty"`
}

// Allocation is the result of a successful slug claim.
type Allocation struct {
	Slug      string
	FullURL   string
	Portfolio *Portfolio
}

// Allocator enforces the slug namespace invariants: global uniqueness and
// owner-only mutation. Uniqueness under concurrent claims comes from the
// store's unique index, not from in-process locking.
type Allocator struct {
	repo    Repository
	baseURL string
}

// NewAllocator creates an Allocator composing public addresses against the
// given base URL.
func NewAllocator(repo Repository, baseURL string) *Allocator {
	return &Allocator{
		repo:    repo,
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

// ValidSlug reports whether the candidate matches the allowed slug pattern.
func ValidSlug(candidate string) bool {
	return slugPattern.MatchString(candidate)
}

// CheckAvailability answers whether a candidate slug is currently unclaimed.
// Invalid candidates are reported unavailable together with a normalized
// suggestion.
func (a *Allocator) CheckAvailability(ctx context.Context, candidate string) (*Availability, error) {
	if !ValidSlug(candidate) {
		return &Availability{
			Slug:       candidate,
			Available:  false,
			Suggestion: gosimple.Make(candidate),
		}, nil
	}

	_, err := a.repo.GetBySlug(ctx, candidate)
	if errors.Is(err, ErrNotFound) {
		return &Availability{Slug: candidate, Available: true}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("checking slug availability: %w", err)
	}

	return &Availability{Slug: candidate, Available: false}, nil
}

// Reserve claims a slug for the given portfolio on behalf of ownerID.
//
// The target must exist and belong to ownerID; a missing portfolio and a
// portfolio owned by someone else both come back as ErrNotFound. The
// conflict pre-check only produces a fast rejection in the common case;
// the write itself races concurrent claims and relies on the store's
// unique index, surfacing its violation as ErrSlugTaken.
func (a *Allocator) Reserve(ctx context.Context, candidate string, portfolioID uuid.UUID, ownerID string) (*Allocation, error) {
	if !ValidSlug(candidate) {
		return nil, ErrInvalidSlug
	}

	p, err := a.repo.GetByID(ctx, portfolioID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("resolving portfolio: %w", err)
	}
	if p.OwnerID.String() != ownerID {
		return nil, ErrNotFound
	}

	holder, err := a.repo.GetBySlug(ctx, candidate)
	if err != nil && !errors.Is(err, ErrNotFound) {
		return nil, fmt.Errorf("checking slug conflict: %w", err)
	}
	if holder != nil && holder.ID != portfolioID {
		return nil, ErrSlugTaken
	}

	updated, err := a.repo.SetSlug(ctx, portfolioID, candidate)
	if err != nil {
		if errors.Is(err, ErrSlugTaken) {
			return nil, ErrSlugTaken
		}
		return nil, fmt.Errorf("claiming slug: %w", err)
	}

	return &Allocation{
		Slug:      candidate,
		FullURL:   a.PublicURL(candidate),
		Portfolio: updated,
	}, nil
}

// PublicURL composes the fully qualified public address for a slug.
func (a *Allocator) PublicURL(slug string) string {
	return a.baseURL + "/" + slug
}
