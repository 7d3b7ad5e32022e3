package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/lithammer/shortuuid/v3"

	"cinebook-cli/model"
)

const (
	defaultBaseURL     = "http://localhost:4000/api"
	defaultMaxAttempts = 3
	defaultRetryBase   = 200 * time.Millisecond
	defaultRetryCap    = 1200 * time.Millisecond
)

var validate = validator.New()

// Client wraps HTTP access to the booking backend.
type Client struct {
	httpClient  *http.Client
	baseURL     string
	maxAttempts int
	retryBase   time.Duration
	retryCap    time.Duration
}

// APIError is returned when the backend responds with a non-2xx status.
type APIError struct {
	StatusCode int
	Status     string
	Endpoint   string
	Body       string
}

func (e *APIError) Error() string {
	if e == nil {
		return "backend api error"
	}
	return fmt.Sprintf("backend api error: %s: %s", e.Status, e.Body)
}

// IsNotFound reports whether the error represents a 404 from the backend.
func IsNotFound(err error) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == http.StatusNotFound
	}
	return false
}

// NewClient creates a new backend client. If httpClient is nil, a default
// client is used; if baseURL is empty, the default local backend is used.
func NewClient(httpClient *http.Client, baseURL string) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 12 * time.Second}
	}
	if strings.TrimSpace(baseURL) == "" {
		baseURL = defaultBaseURL
	}
	return &Client{
		httpClient:  httpClient,
		baseURL:     strings.TrimRight(baseURL, "/"),
		maxAttempts: defaultMaxAttempts,
		retryBase:   defaultRetryBase,
		retryCap:    defaultRetryCap,
	}
}

// GetMovies fetches the full movie catalog.
func (c *Client) GetMovies(ctx context.Context) ([]model.Movie, error) {
	var movies []model.Movie
	if err := c.getJSON(ctx, c.baseURL+"/movies", &movies); err != nil {
		return nil, err
	}
	return movies, nil
}

// GetShowingsForMovie fetches the scheduled showings of one movie.
func (c *Client) GetShowingsForMovie(ctx context.Context, movieID model.MovieID) ([]model.Showing, error) {
	if movieID == 0 {
		return nil, errors.New("movie id is required")
	}
	endpoint := fmt.Sprintf("%s/movies/%d/showings", c.baseURL, movieID)
	var showings []model.Showing
	if err := c.getJSON(ctx, endpoint, &showings); err != nil {
		return nil, err
	}
	return showings, nil
}

// GetSeatAvailability fetches per-seat availability for one showing. The
// observed backend does not implement this endpoint; callers must expect
// failure and derive a seat map locally.
func (c *Client) GetSeatAvailability(ctx context.Context, showingID model.ShowingID) ([]model.SeatAvailability, error) {
	if showingID == 0 {
		return nil, errors.New("showing id is required")
	}
	endpoint := fmt.Sprintf("%s/showings/%d/seats", c.baseURL, showingID)
	var seats []model.SeatAvailability
	if err := c.getJSON(ctx, endpoint, &seats); err != nil {
		return nil, err
	}
	return seats, nil
}

// GetBookingsForUser fetches the booking history of one user.
func (c *Client) GetBookingsForUser(ctx context.Context, userID model.UserID) ([]model.Booking, error) {
	if userID == 0 {
		return nil, errors.New("user id is required")
	}
	endpoint := fmt.Sprintf("%s/users/%d/bookings", c.baseURL, userID)
	var bookings []model.Booking
	if err := c.getJSON(ctx, endpoint, &bookings); err != nil {
		return nil, err
	}
	return bookings, nil
}

// BookingRequest is the outbound booking submission. Seats are identified
// by seat-template id, not seat-availability id.
type BookingRequest struct {
	UserId          model.UserID           `json:"userId" validate:"required"`
	ShowingId       model.ShowingID        `json:"showingId" validate:"required"`
	SeatTemplateIds []model.SeatTemplateID `json:"seatTemplateIds" validate:"required,min=1"`
}

// SubmitBooking posts one booking request. A single attempt is made: the
// caller handles failure by synthesizing a local booking record, so
// retrying here would risk double submission.
func (c *Client) SubmitBooking(ctx context.Context, req BookingRequest) (model.Booking, error) {
	if err := validate.Struct(req); err != nil {
		return model.Booking{}, fmt.Errorf("invalid booking request: %w", err)
	}
	var booking model.Booking
	if err := c.postJSON(ctx, c.baseURL+"/bookings", req, &booking); err != nil {
		return model.Booking{}, err
	}
	if booking.Id == 0 {
		return model.Booking{}, errors.New("backend returned no booking record")
	}
	return booking, nil
}

func (c *Client) getJSON(ctx context.Context, endpoint string, out any) error {
	maxAttempts := c.maxAttempts
	if maxAttempts < 1 {
		maxAttempts = 1
	}

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return fmt.Errorf("create request: %w", err)
		}
		req.Header.Set("Accept", "application/json")

		res, err := c.httpClient.Do(req)
		if err != nil {
			if c.shouldRetryNetworkError(err) && attempt < maxAttempts {
				if waitErr := c.waitRetry(ctx, attempt); waitErr != nil {
					return waitErr
				}
				continue
			}
			return fmt.Errorf("request failed: %w", err)
		}

		if res.StatusCode < http.StatusOK || res.StatusCode >= http.StatusMultipleChoices {
			apiErr := readAPIError(res, endpoint)
			if c.shouldRetryStatus(res.StatusCode) && attempt < maxAttempts {
				if waitErr := c.waitRetry(ctx, attempt); waitErr != nil {
					return waitErr
				}
				continue
			}
			return apiErr
		}

		err = decodeBody(res, out)
		if err != nil {
			return fmt.Errorf("decode response from %s: %w", endpoint, err)
		}
		return nil
	}

	return errors.New("request failed after retries")
}

func (c *Client) postJSON(ctx context.Context, endpoint string, in any, out any) error {
	payload, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Idempotency-Key", shortuuid.New())

	res, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}

	if res.StatusCode < http.StatusOK || res.StatusCode >= http.StatusMultipleChoices {
		return readAPIError(res, endpoint)
	}

	if err := decodeBody(res, out); err != nil {
		return fmt.Errorf("decode response from %s: %w", endpoint, err)
	}
	return nil
}

func readAPIError(res *http.Response, endpoint string) *APIError {
	snippet, _ := io.ReadAll(io.LimitReader(res.Body, 8<<10))
	_ = res.Body.Close()
	return &APIError{
		StatusCode: res.StatusCode,
		Status:     res.Status,
		Endpoint:   endpoint,
		Body:       strings.TrimSpace(string(snippet)),
	}
}

func decodeBody(res *http.Response, out any) error {
	dec := json.NewDecoder(res.Body)
	err := dec.Decode(out)
	_ = res.Body.Close()
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}

func (c *Client) shouldRetryStatus(code int) bool {
	return code == http.StatusTooManyRequests || code >= http.StatusInternalServerError
}

func (c *Client) shouldRetryNetworkError(err error) bool {
	if err == nil {
		return false
	}
	return !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded)
}

func (c *Client) waitRetry(ctx context.Context, attempt int) error {
	timer := time.NewTimer(c.retryDelay(attempt))
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func (c *Client) retryDelay(attempt int) time.Duration {
	if attempt < 1 {
		attempt = 1
	}
	base := c.retryBase
	if base <= 0 {
		base = defaultRetryBase
	}
	cap := c.retryCap
	if cap <= 0 {
		cap = defaultRetryCap
	}

	delay := base
	for i := 1; i < attempt; i++ {
		if delay >= cap/2 {
			return cap
		}
		delay *= 2
	}
	if delay > cap {
		return cap
	}
	return delay
}
