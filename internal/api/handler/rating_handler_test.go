package handler_test

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/awesomeeats/restaurant-api/internal/api/handler"
	"github.com/awesomeeats/restaurant-api/internal/core/domain"
	"github.com/awesomeeats/restaurant-api/internal/core/ports"
)

type stubRatingService struct {
	listFn   func(ctx context.Context, restaurantID string, pageIndex, itemsPerPage int) (*ports.ListResult[ports.RatingView], error)
	getFn    func(ctx context.Context, restaurantID, ratingID string) (*ports.RatingView, error)
	submitFn func(ctx context.Context, input ports.SubmitRatingInput) (*ports.NewRatingResult, error)
}

func (s *stubRatingService) List(ctx context.Context, restaurantID string, pageIndex, itemsPerPage int) (*ports.ListResult[ports.RatingView], error) {
	return s.listFn(ctx, restaurantID, pageIndex, itemsPerPage)
}

func (s *stubRatingService) Get(ctx context.Context, restaurantID, ratingID string) (*ports.RatingView, error) {
	return s.getFn(ctx, restaurantID, ratingID)
}

func (s *stubRatingService) Submit(ctx context.Context, input ports.SubmitRatingInput) (*ports.NewRatingResult, error) {
	return s.submitFn(ctx, input)
}

// asUser simulates the context injection the auth middleware performs.
func asUser(userID string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Set("user_id", userID)
			return next(c)
		}
	}
}

func TestRatingHandler_List_OK(t *testing.T) {
	svc := &stubRatingService{
		listFn: func(_ context.Context, restaurantID string, pageIndex, itemsPerPage int) (*ports.ListResult[ports.RatingView], error) {
			if restaurantID != "r1" || pageIndex != 1 || itemsPerPage != 2 {
				t.Fatalf("unexpected query: restaurant=%q page=%d size=%d", restaurantID, pageIndex, itemsPerPage)
			}
			return &ports.ListResult[ports.RatingView]{
				Items: []ports.RatingView{
					{ID: "a", Score: 4, Author: "Alice Smith", CreatedAt: time.Now()},
				},
				TotalCount: 3,
				HasMore:    false,
			}, nil
		},
	}
	e := newTestEcho()
	e.GET("/restaurants/:id/ratings", handler.NewRatingHandler(svc).List)

	rec := doJSON(e, http.MethodGet, "/restaurants/r1/ratings?page=1&size=2", "")

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var result ports.ListResult[ports.RatingView]
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if result.TotalCount != 3 || len(result.Items) != 1 {
		t.Fatalf("unexpected listing: %+v", result)
	}
}

func TestRatingHandler_List_BadPageParams(t *testing.T) {
	svc := &stubRatingService{
		listFn: func(_ context.Context, _ string, _, _ int) (*ports.ListResult[ports.RatingView], error) {
			t.Fatalf("service must not be called on invalid paging input")
			return nil, nil
		},
	}
	e := newTestEcho()
	e.GET("/restaurants/:id/ratings", handler.NewRatingHandler(svc).List)

	for _, target := range []string{
		"/restaurants/r1/ratings?page=-1",
		"/restaurants/r1/ratings?page=abc",
		"/restaurants/r1/ratings?size=0",
		"/restaurants/r1/ratings?size=-5",
	} {
		rec := doJSON(e, http.MethodGet, target, "")
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("%s: expected 400, got %d", target, rec.Code)
		}
	}
}

func TestRatingHandler_Get_NotFound(t *testing.T) {
	svc := &stubRatingService{
		getFn: func(_ context.Context, _, _ string) (*ports.RatingView, error) {
			return nil, domain.ErrRatingNotFound
		},
	}
	e := newTestEcho()
	e.GET("/restaurants/:id/ratings/:ratingId", handler.NewRatingHandler(svc).Get)

	rec := doJSON(e, http.MethodGet, "/restaurants/r1/ratings/missing", "")

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestRatingHandler_Submit_OK(t *testing.T) {
	svc := &stubRatingService{
		submitFn: func(_ context.Context, input ports.SubmitRatingInput) (*ports.NewRatingResult, error) {
			if input.UserID != "u1" {
				t.Fatalf("expected user id from context, got %q", input.UserID)
			}
			if input.RestaurantID != "r1" || input.Score != 4.5 {
				t.Fatalf("unexpected input: %+v", input)
			}
			return &ports.NewRatingResult{RestaurantID: "r1", AverageScore: 4.13}, nil
		},
	}
	e := newTestEcho()
	e.POST("/restaurants/:id/ratings", handler.NewRatingHandler(svc).Submit, asUser("u1"))

	rec := doJSON(e, http.MethodPost, "/restaurants/r1/ratings",
		`{"score":4.5,"comment":"great pasta"}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var result ports.NewRatingResult
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if result.AverageScore != 4.13 {
		t.Fatalf("unexpected average: %v", result.AverageScore)
	}
}

func TestRatingHandler_Submit_ScoreOutOfRange(t *testing.T) {
	svc := &stubRatingService{
		submitFn: func(_ context.Context, _ ports.SubmitRatingInput) (*ports.NewRatingResult, error) {
			t.Fatalf("service must not be called on an out-of-range score")
			return nil, nil
		},
	}
	e := newTestEcho()
	e.POST("/restaurants/:id/ratings", handler.NewRatingHandler(svc).Submit, asUser("u1"))

	for _, body := range []string{`{"score":5.5}`, `{"score":-1}`} {
		rec := doJSON(e, http.MethodPost, "/restaurants/r1/ratings", body)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("%s: expected 400, got %d", body, rec.Code)
		}
	}
}

func TestRatingHandler_Submit_UnknownRestaurant(t *testing.T) {
	svc := &stubRatingService{
		submitFn: func(_ context.Context, _ ports.SubmitRatingInput) (*ports.NewRatingResult, error) {
			return nil, domain.ErrRestaurantNotFound
		},
	}
	e := newTestEcho()
	e.POST("/restaurants/:id/ratings", handler.NewRatingHandler(svc).Submit, asUser("u1"))

	rec := doJSON(e, http.MethodPost, "/restaurants/ghost/ratings", `{"score":3}`)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestRatingHandler_Submit_NoAuthContext(t *testing.T) {
	svc := &stubRatingService{
		submitFn: func(_ context.Context, _ ports.SubmitRatingInput) (*ports.NewRatingResult, error) {
			t.Fatalf("service must not be called without authentication")
			return nil, nil
		},
	}
	e := newTestEcho()
	e.POST("/restaurants/:id/ratings", handler.NewRatingHandler(svc).Submit)

	rec := doJSON(e, http.MethodPost, "/restaurants/r1/ratings", `{"score":3}`)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}
