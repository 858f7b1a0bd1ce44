package httpserver_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"movies_web/internal/adapters/fixture"
	server "movies_web/internal/adapters/http_server"
	"movies_web/internal/app"
	"movies_web/internal/domain"
)

// downSource fails every call the way an unavailable reviews API does.
type downSource struct{ calls int }

func (d *downSource) GetReviews(context.Context, *string) ([]domain.Review, error) {
	d.calls++
	return nil, &domain.UpstreamError{Op: "get_reviews", Status: http.StatusServiceUnavailable, Err: errors.New("down")}
}

func (d *downSource) GetReview(context.Context, int) (domain.Review, bool, error) {
	d.calls++
	return domain.Review{}, false, &domain.UpstreamError{Op: "get_review", Status: http.StatusServiceUnavailable, Err: errors.New("down")}
}

func newTestServer(t *testing.T, src domain.ReviewSource) *httptest.Server {
	t.Helper()
	srv := server.New(zerolog.Nop())
	srv.MountHandlers(&server.Handlers{C: app.NewReviewsController(src, zerolog.Nop())})
	ts := httptest.NewServer(srv.Mux())
	t.Cleanup(ts.Close)
	return ts
}

func get(t *testing.T, url string, hdr ...string) (*http.Response, string) {
	t.Helper()
	req, err := http.NewRequest(http.MethodGet, url, nil)
	require.NoError(t, err)
	for i := 0; i+1 < len(hdr); i += 2 {
		req.Header.Set(hdr[i], hdr[i+1])
	}
	res, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer res.Body.Close()
	b, err := io.ReadAll(res.Body)
	require.NoError(t, err)
	return res, string(b)
}

func TestHealthz(t *testing.T) {
	ts := newTestServer(t, fixture.New())
	res, body := get(t, ts.URL+"/healthz")
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, "ok", body)
}

func TestIndex_ListsAllReviews(t *testing.T) {
	ts := newTestServer(t, fixture.New())

	for _, path := range []string{"/reviews", "/reviews/", "/reviews/index"} {
		res, body := get(t, ts.URL+path)
		require.Equal(t, http.StatusOK, res.StatusCode, path)
		assert.Contains(t, res.Header.Get("Content-Type"), "text/html")
		assert.NotEmpty(t, res.Header.Get("ETag"))
		for _, r := range fixture.Reviews() {
			assert.Contains(t, body, "/reviews/details/"+strconv.Itoa(r.ID))
		}
	}
}

func TestIndex_FiltersBySubject(t *testing.T) {
	ts := newTestServer(t, fixture.New())

	res, body := get(t, ts.URL+"/reviews?subject=santa+claus+conquers+the+martians")
	require.Equal(t, http.StatusOK, res.StatusCode)
	assert.Contains(t, body, "/reviews/details/4")
	assert.NotContains(t, body, "/reviews/details/1")
}

func TestIndex_InvalidSubject_ProblemWithErrors(t *testing.T) {
	src := &downSource{}
	ts := newTestServer(t, src)

	res, body := get(t, ts.URL+"/reviews?subject="+strings.Repeat("a", 201))
	require.Equal(t, http.StatusBadRequest, res.StatusCode)
	assert.Equal(t, "application/problem+json", res.Header.Get("Content-Type"))

	var p struct {
		Status int               `json:"status"`
		Errors map[string]string `json:"errors"`
	}
	require.NoError(t, json.Unmarshal([]byte(body), &p))
	assert.Equal(t, http.StatusBadRequest, p.Status)
	assert.Contains(t, p.Errors, "subject")
	assert.Zero(t, src.calls)
}

func TestIndex_UpstreamDown_EmptyList(t *testing.T) {
	ts := newTestServer(t, &downSource{})

	res, body := get(t, ts.URL+"/reviews")
	require.Equal(t, http.StatusOK, res.StatusCode)
	assert.Contains(t, body, "No reviews found.")
}

func TestIndex_NotModified(t *testing.T) {
	ts := newTestServer(t, fixture.New())

	res, _ := get(t, ts.URL+"/reviews")
	etag := res.Header.Get("ETag")
	require.NotEmpty(t, etag)

	res, body := get(t, ts.URL+"/reviews", "If-None-Match", etag)
	assert.Equal(t, http.StatusNotModified, res.StatusCode)
	assert.Empty(t, body)
}

func TestDetails_StatusMapping(t *testing.T) {
	ts := newTestServer(t, fixture.New())

	res, body := get(t, ts.URL+"/reviews/details/3")
	require.Equal(t, http.StatusOK, res.StatusCode)
	assert.Contains(t, body, "Star Wars: The Force Awakens")

	res, _ = get(t, ts.URL+"/reviews/details/100")
	assert.Equal(t, http.StatusNotFound, res.StatusCode)

	res, _ = get(t, ts.URL+"/reviews/details")
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)

	res, _ = get(t, ts.URL+"/reviews/details/")
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)

	res, _ = get(t, ts.URL+"/reviews/details/abc")
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
}

func TestDetails_AbsentText(t *testing.T) {
	ts := newTestServer(t, fixture.New())

	_, body := get(t, ts.URL+"/reviews/details/5")
	assert.Contains(t, body, "wheres mr data???")
	assert.NotContains(t, body, "<dt>Review</dt>")

	_, body = get(t, ts.URL+"/reviews/details/1")
	assert.Contains(t, body, "<dt>Review</dt><dd>Really enjoyed this movie.  Proper good and that.</dd>")
}

func TestDetails_UpstreamDown_ServiceUnavailable(t *testing.T) {
	ts := newTestServer(t, &downSource{})

	res, _ := get(t, ts.URL+"/reviews/details/1")
	assert.Equal(t, http.StatusServiceUnavailable, res.StatusCode)
}

func TestDetails_EscapesHTML(t *testing.T) {
	src := &fakeOne{r: domain.Review{ID: 9, Subject: "<script>alert(1)</script>", Summary: "x"}}
	ts := newTestServer(t, src)

	res, body := get(t, ts.URL+"/reviews/details/9")
	require.Equal(t, http.StatusOK, res.StatusCode)
	assert.NotContains(t, body, "<script>alert(1)</script>")
	assert.Contains(t, body, "&lt;script&gt;")
}

type fakeOne struct{ r domain.Review }

func (f *fakeOne) GetReviews(context.Context, *string) ([]domain.Review, error) {
	return []domain.Review{f.r}, nil
}

func (f *fakeOne) GetReview(_ context.Context, id int) (domain.Review, bool, error) {
	return f.r, id == f.r.ID, nil
}
