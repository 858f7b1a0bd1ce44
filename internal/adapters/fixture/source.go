// Package fixture is an in-memory review source for development and tests.
package fixture

import (
	"context"
	"strings"

	"movies_web/internal/domain"
)

var sample = []domain.Review{
	{ID: 1, AuthorID: "larry", AuthorName: "Larry von Larryington", CategoryID: "MOV", CategoryTitle: "Movie", Subject: "Star Trek", Summary: "Loved it", Text: text("Really enjoyed this movie.  Proper good and that."), Rating: 4},
	{ID: 2, AuthorID: "beehive", AuthorName: "Betty Lively", CategoryID: "MOV", CategoryTitle: "Movie", Subject: "Star Trek", Summary: "Entertaining but not worth buying", Text: text("Didn't feel like the Star Trek I know and love, but it was still entertaining.  Be warned, there's a bit of an obsession with lens flare!"), Rating: 3},
	{ID: 3, AuthorID: "beehive", AuthorName: "Betty Lively", CategoryID: "MOV", CategoryTitle: "Movie", Subject: "Star Wars: The Force Awakens", Summary: "Please sir, I'd like some more", Text: text("Sooo excited to see Star Wars back.  Feels like the Star Wars I grew up with, although perhaps a bit too repetitive from the originals.  Just needs more saber battles!"), Rating: 5},
	{ID: 4, AuthorID: "larry", AuthorName: "Larry von Larryington", CategoryID: "MOV", CategoryTitle: "Movie", Subject: "Santa Claus Conquers the Martians", Summary: "What!?", Text: text("What the actual chuffing missery did I just watch!"), Rating: 1},
	{ID: 5, AuthorID: "bob69", AuthorName: "Robert Bob Robertson", CategoryID: "MOV", CategoryTitle: "Movie", Subject: "Star Trek", Summary: "wheres mr data???", Text: nil, Rating: 2},
}

func text(s string) *string { return &s }

// Source serves a fixed set of five sample reviews. It never fails.
type Source struct {
	reviews []domain.Review
}

var _ domain.ReviewSource = (*Source)(nil)

func New() *Source {
	return &Source{reviews: Reviews()}
}

// Reviews returns a copy of the sample data in its original order.
func Reviews() []domain.Review {
	out := make([]domain.Review, len(sample))
	copy(out, sample)
	return out
}

func (s *Source) GetReview(_ context.Context, id int) (domain.Review, bool, error) {
	for _, r := range s.reviews {
		if r.ID == id {
			return r, true, nil
		}
	}
	return domain.Review{}, false, nil
}

// GetReviews matches the whole subject case-insensitively; it is not a substring search.
func (s *Source) GetReviews(_ context.Context, subject *string) ([]domain.Review, error) {
	out := make([]domain.Review, 0, len(s.reviews))
	for _, r := range s.reviews {
		if subject == nil || strings.EqualFold(r.Subject, *subject) {
			out = append(out, r)
		}
	}
	return out, nil
}
