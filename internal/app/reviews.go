package app

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"movies_web/internal/adapters/observability"
	"movies_web/internal/domain"
)

const (
	ViewIndex   = "reviews/index"
	ViewDetails = "reviews/details"
)

// Result is what a controller action decided; rendering is left to the transport.
// View is empty for status-only results.
type Result struct {
	Status int
	View   string
	Model  any
	Errors map[string]string // validation errors, 400 only
}

// IndexQuery is the inbound model of the list page.
type IndexQuery struct {
	Subject *string `query:"subject" validate:"omitempty,max=200,printable"`
}

// ReviewsController maps review source outcomes to results. It holds exactly one source,
// chosen at startup.
type ReviewsController struct {
	src      domain.ReviewSource
	validate *validator.Validate
	log      zerolog.Logger
}

func NewReviewsController(src domain.ReviewSource, l zerolog.Logger) *ReviewsController {
	return &ReviewsController{src: src, validate: MustValidate(), log: l}
}

// Index lists reviews, optionally filtered by subject. Upstream failures degrade to an
// empty list; the user never sees an error here.
func (c *ReviewsController) Index(ctx context.Context, q IndexQuery) Result {
	if errs := c.validateQuery(q); errs != nil {
		return Result{Status: http.StatusBadRequest, Errors: errs}
	}

	reviews, err := c.src.GetReviews(ctx, q.Subject)
	if err != nil {
		var ue *domain.UpstreamError
		if !errors.As(err, &ue) {
			c.log.Error().Err(err).Str("op", "index").Msg("reviews source failed unexpectedly")
			return Result{Status: http.StatusInternalServerError}
		}
		c.log.Warn().Err(err).Str("op", "index").Msg("reviews service unavailable, showing empty list")
		observability.ObserveSourceFailure("index")
		reviews = nil
	}

	list := make([]domain.Review, 0, len(reviews))
	list = append(list, reviews...)
	return Result{Status: http.StatusOK, View: ViewIndex, Model: list}
}

// Details shows one review. A nil id means the route carried no usable id.
func (c *ReviewsController) Details(ctx context.Context, id *int) Result {
	if id == nil {
		return Result{Status: http.StatusBadRequest}
	}

	review, found, err := c.src.GetReview(ctx, *id)
	if err != nil {
		var ue *domain.UpstreamError
		if !errors.As(err, &ue) {
			c.log.Error().Err(err).Str("op", "details").Int("id", *id).Msg("reviews source failed unexpectedly")
			return Result{Status: http.StatusInternalServerError}
		}
		c.log.Warn().Err(err).Str("op", "details").Int("id", *id).Msg("reviews service unavailable")
		observability.ObserveSourceFailure("details")
		return Result{Status: http.StatusServiceUnavailable}
	}
	if !found {
		return Result{Status: http.StatusNotFound}
	}
	return Result{Status: http.StatusOK, View: ViewDetails, Model: review}
}

func (c *ReviewsController) validateQuery(q IndexQuery) map[string]string {
	err := c.validate.Struct(q)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return map[string]string{"": err.Error()}
	}
	out := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		out[fe.Field()] = describe(fe)
	}
	return out
}
