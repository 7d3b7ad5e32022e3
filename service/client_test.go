package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"cinebook-cli/model"
)

func TestGetJSON_Non2xxReturnsError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte("boom"))
	}))
	defer server.Close()

	client := NewClient(server.Client(), server.URL)
	client.maxAttempts = 1

	var out map[string]any
	err := client.getJSON(context.Background(), server.URL+"/fail", &out)
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "500") || !strings.Contains(err.Error(), "boom") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestGetJSON_RetriesTransientServerErrors(t *testing.T) {
	var attempts int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		current := atomic.AddInt32(&attempts, 1)
		if current < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			_, _ = w.Write([]byte("retry later"))
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"ok": true}`))
	}))
	defer server.Close()

	client := NewClient(server.Client(), server.URL)
	client.maxAttempts = 3
	client.retryBase = time.Millisecond
	client.retryCap = 2 * time.Millisecond

	var out map[string]any
	if err := client.getJSON(context.Background(), server.URL+"/retry", &out); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if attempts != 3 {
		t.Fatalf("expected 3 attempts, got %d", attempts)
	}
	if ok, _ := out["ok"].(bool); !ok {
		t.Fatalf("unexpected payload: %+v", out)
	}
}

func TestGetJSON_DoesNotRetryOnClientErrors(t *testing.T) {
	var attempts int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&attempts, 1)
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte("bad request"))
	}))
	defer server.Close()

	client := NewClient(server.Client(), server.URL)
	client.maxAttempts = 3
	client.retryBase = time.Millisecond
	client.retryCap = 2 * time.Millisecond

	var out map[string]any
	err := client.getJSON(context.Background(), server.URL+"/bad-request", &out)
	if err == nil {
		t.Fatal("expected error")
	}
	if attempts != 1 {
		t.Fatalf("expected 1 attempt, got %d", attempts)
	}
}

func TestIsNotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte("no such movie"))
	}))
	defer server.Close()

	client := NewClient(server.Client(), server.URL)
	client.maxAttempts = 1

	_, err := client.GetShowingsForMovie(context.Background(), 99)
	if err == nil {
		t.Fatal("expected error")
	}
	if !IsNotFound(err) {
		t.Fatalf("expected not-found error, got %v", err)
	}
}

func TestGetMovies_DecodesCatalog(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/movies" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"id":1,"title":"Dune: Part Two","durationMin":166}]`))
	}))
	defer server.Close()

	client := NewClient(server.Client(), server.URL)

	movies, err := client.GetMovies(context.Background())
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if len(movies) != 1 {
		t.Fatalf("expected 1 movie, got %d", len(movies))
	}
	if movies[0].Id != 1 || movies[0].Title != "Dune: Part Two" || movies[0].DurationMin != 166 {
		t.Fatalf("unexpected movie: %+v", movies[0])
	}
}

func TestSubmitBooking_SingleAttemptWithIdempotencyKey(t *testing.T) {
	var attempts int32
	var keys []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&attempts, 1)
		keys = append(keys, r.Header.Get("Idempotency-Key"))
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("upstream down"))
	}))
	defer server.Close()

	client := NewClient(server.Client(), server.URL)
	client.maxAttempts = 3
	client.retryBase = time.Millisecond
	client.retryCap = 2 * time.Millisecond

	req := BookingRequest{UserId: 1, ShowingId: 2, SeatTemplateIds: []model.SeatTemplateID{3, 4}}
	_, err := client.SubmitBooking(context.Background(), req)
	if err == nil {
		t.Fatal("expected error")
	}
	if attempts != 1 {
		t.Fatalf("expected a single submission attempt, got %d", attempts)
	}
	if len(keys) != 1 || keys[0] == "" {
		t.Fatalf("expected an idempotency key on the request, got %v", keys)
	}
}

func TestSubmitBooking_ValidatesRequest(t *testing.T) {
	var attempts int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&attempts, 1)
	}))
	defer server.Close()

	client := NewClient(server.Client(), server.URL)

	_, err := client.SubmitBooking(context.Background(), BookingRequest{UserId: 1, ShowingId: 2})
	if err == nil {
		t.Fatal("expected validation error for empty seat list")
	}
	if attempts != 0 {
		t.Fatalf("expected no request to be sent, got %d", attempts)
	}
}

func TestSubmitBooking_DecodesBooking(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/bookings" || r.Method != http.MethodPost {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":7,"bookingNumber":"BK-20251024-090000","totalAmount":400}`))
	}))
	defer server.Close()

	client := NewClient(server.Client(), server.URL)

	req := BookingRequest{UserId: 1, ShowingId: 2, SeatTemplateIds: []model.SeatTemplateID{3}}
	booking, err := client.SubmitBooking(context.Background(), req)
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if booking.Id != 7 || booking.BookingNumber != "BK-20251024-090000" {
		t.Fatalf("unexpected booking: %+v", booking)
	}
}
