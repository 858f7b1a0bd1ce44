package domain

import (
	"context"
	"fmt"
)

// ReviewSource is where the front-end gets its reviews from: the live API or the in-memory fixture.
type ReviewSource interface {
	// GetReviews returns reviews in upstream order. A nil subject means no filter.
	GetReviews(ctx context.Context, subject *string) ([]Review, error)
	// GetReview reports found=false with a nil error when the review does not exist.
	GetReview(ctx context.Context, id int) (r Review, found bool, err error)
}

// UpstreamError is the transport/protocol failure kind: network errors, timeouts,
// unexpected statuses and undecodable bodies. Absence is never an UpstreamError.
type UpstreamError struct {
	Op     string // get_review | get_reviews
	Status int    // 0 when no response was received
	Err    error
}

func (e *UpstreamError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("reviews %s: status %d: %v", e.Op, e.Status, e.Err)
	}
	return fmt.Sprintf("reviews %s: %v", e.Op, e.Err)
}

func (e *UpstreamError) Unwrap() error { return e.Err }
