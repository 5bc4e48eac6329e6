package service

import (
	"context"
	"fmt"
	"sort"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/awesomeeats/restaurant-api/internal/core/domain"
	"github.com/awesomeeats/restaurant-api/internal/core/ports"
)

type stubRatingRepo struct {
	records []ports.RatingRecord
	nextID  int
}

func (r *stubRatingRepo) CountByRestaurant(_ context.Context, restaurantID string) (int64, error) {
	var n int64
	for _, rec := range r.records {
		if rec.Rating.RestaurantID == restaurantID {
			n++
		}
	}
	return n, nil
}

func (r *stubRatingRepo) FindPage(_ context.Context, restaurantID string, skip, limit int64) ([]ports.RatingRecord, error) {
	var matched []ports.RatingRecord
	for _, rec := range r.records {
		if rec.Rating.RestaurantID == restaurantID {
			matched = append(matched, rec)
		}
	}
	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].Rating.CreatedAt.After(matched[j].Rating.CreatedAt)
	})
	if skip >= int64(len(matched)) {
		return nil, nil
	}
	matched = matched[skip:]
	if int64(len(matched)) > limit {
		matched = matched[:limit]
	}
	return matched, nil
}

func (r *stubRatingRepo) FindByID(_ context.Context, restaurantID, ratingID string) (*ports.RatingRecord, error) {
	for _, rec := range r.records {
		if rec.Rating.ID == ratingID && rec.Rating.RestaurantID == restaurantID {
			clone := rec
			return &clone, nil
		}
	}
	return nil, domain.ErrRatingNotFound
}

func (r *stubRatingRepo) Insert(_ context.Context, rating *domain.Rating) (string, error) {
	r.nextID++
	id := fmt.Sprintf("rating_%d", r.nextID)
	stored := *rating
	stored.ID = id
	r.records = append(r.records, ports.RatingRecord{Rating: stored})
	return id, nil
}

func (r *stubRatingRepo) AverageScore(_ context.Context, restaurantID string) (float64, error) {
	var sum float64
	var n int
	for _, rec := range r.records {
		if rec.Rating.RestaurantID == restaurantID {
			sum += rec.Rating.Score
			n++
		}
	}
	if n == 0 {
		return 0, nil
	}
	return sum / float64(n), nil
}

type stubRestaurantRepo struct {
	restaurants map[string]domain.Restaurant
}

func newStubRestaurantRepo(ids ...string) *stubRestaurantRepo {
	repo := &stubRestaurantRepo{restaurants: make(map[string]domain.Restaurant)}
	for _, id := range ids {
		repo.restaurants[id] = domain.Restaurant{ID: id, Name: "restaurant " + id}
	}
	return repo
}

func (r *stubRestaurantRepo) CountAll(_ context.Context) (int64, error) {
	return int64(len(r.restaurants)), nil
}

func (r *stubRestaurantRepo) FindPage(_ context.Context, skip, limit int64) ([]domain.Restaurant, error) {
	var all []domain.Restaurant
	for _, rest := range r.restaurants {
		all = append(all, rest)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Name < all[j].Name })
	if skip >= int64(len(all)) {
		return nil, nil
	}
	all = all[skip:]
	if int64(len(all)) > limit {
		all = all[:limit]
	}
	return all, nil
}

func (r *stubRestaurantRepo) FindByID(_ context.Context, id string) (*domain.Restaurant, error) {
	rest, ok := r.restaurants[id]
	if !ok {
		return nil, domain.ErrRestaurantNotFound
	}
	return &rest, nil
}

func (r *stubRestaurantRepo) Exists(_ context.Context, id string) (bool, error) {
	_, ok := r.restaurants[id]
	return ok, nil
}

func (r *stubRestaurantRepo) Insert(_ context.Context, restaurant *domain.Restaurant) (string, error) {
	id := fmt.Sprintf("restaurant_%d", len(r.restaurants)+1)
	stored := *restaurant
	stored.ID = id
	r.restaurants[id] = stored
	return id, nil
}

func seedRatings(repo *stubRatingRepo, restaurantID string, scores ...float64) {
	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	for i, score := range scores {
		repo.nextID++
		repo.records = append(repo.records, ports.RatingRecord{
			Rating: domain.Rating{
				ID:           fmt.Sprintf("rating_%d", repo.nextID),
				RestaurantID: restaurantID,
				Score:        score,
				CreatedAt:    base.Add(time.Duration(i) * time.Minute),
			},
			AuthorFirstName: "Alice",
			AuthorLastName:  "Smith",
		})
	}
}

func TestRatingService_List_Pagination(t *testing.T) {
	repo := &stubRatingRepo{}
	seedRatings(repo, "r1", 5, 4, 3)
	svc := NewRatingService(repo, newStubRestaurantRepo("r1"), zerolog.Nop())

	page0, err := svc.List(context.Background(), "r1", 0, 2)
	if err != nil {
		t.Fatalf("List page 0: %v", err)
	}
	if len(page0.Items) != 2 {
		t.Fatalf("expected 2 items on page 0, got %d", len(page0.Items))
	}
	if !page0.HasMore {
		t.Fatalf("expected has_more on page 0")
	}
	if page0.TotalCount != 3 {
		t.Fatalf("expected total 3, got %d", page0.TotalCount)
	}

	page1, err := svc.List(context.Background(), "r1", 1, 2)
	if err != nil {
		t.Fatalf("List page 1: %v", err)
	}
	if len(page1.Items) != 1 {
		t.Fatalf("expected 1 item on page 1, got %d", len(page1.Items))
	}
	if page1.HasMore {
		t.Fatalf("expected no has_more on page 1")
	}
	if page1.TotalCount != 3 {
		t.Fatalf("total must be independent of the page, got %d", page1.TotalCount)
	}
}

func TestRatingService_List_NewestFirst(t *testing.T) {
	repo := &stubRatingRepo{}
	seedRatings(repo, "r1", 1, 2, 3) // seeded oldest to newest
	svc := NewRatingService(repo, newStubRestaurantRepo("r1"), zerolog.Nop())

	result, err := svc.List(context.Background(), "r1", 0, 10)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if result.Items[0].Score != 3 || result.Items[2].Score != 1 {
		t.Fatalf("expected newest first, got scores %v, %v, %v",
			result.Items[0].Score, result.Items[1].Score, result.Items[2].Score)
	}
}

func TestRatingService_List_BeyondLastPage(t *testing.T) {
	repo := &stubRatingRepo{}
	seedRatings(repo, "r1", 5, 4, 3)
	svc := NewRatingService(repo, newStubRestaurantRepo("r1"), zerolog.Nop())

	result, err := svc.List(context.Background(), "r1", 7, 10)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(result.Items) != 0 {
		t.Fatalf("expected empty page, got %d items", len(result.Items))
	}
	if result.HasMore {
		t.Fatalf("expected no has_more beyond the last page")
	}
	if result.TotalCount != 3 {
		t.Fatalf("expected total 3, got %d", result.TotalCount)
	}
}

func TestRatingService_List_ExactBoundary(t *testing.T) {
	repo := &stubRatingRepo{}
	seedRatings(repo, "r1", 5, 4)
	svc := NewRatingService(repo, newStubRestaurantRepo("r1"), zerolog.Nop())

	result, err := svc.List(context.Background(), "r1", 0, 2)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(result.Items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(result.Items))
	}
	if result.HasMore {
		t.Fatalf("has_more must be false when the page holds exactly all records")
	}
}

func TestRatingService_List_AuthorName(t *testing.T) {
	repo := &stubRatingRepo{records: []ports.RatingRecord{
		{
			Rating:          domain.Rating{ID: "a", RestaurantID: "r1", Score: 4, CreatedAt: time.Now()},
			AuthorFirstName: "Alice",
			AuthorLastName:  "Smith",
		},
		{
			Rating:          domain.Rating{ID: "b", RestaurantID: "r1", Score: 3, CreatedAt: time.Now().Add(-time.Minute)},
			AuthorFirstName: "Bob",
		},
		{
			Rating: domain.Rating{ID: "c", RestaurantID: "r1", Score: 2, CreatedAt: time.Now().Add(-2 * time.Minute)},
		},
	}}
	svc := NewRatingService(repo, newStubRestaurantRepo("r1"), zerolog.Nop())

	result, err := svc.List(context.Background(), "r1", 0, 10)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if got := result.Items[0].Author; got != "Alice Smith" {
		t.Fatalf("expected full name, got %q", got)
	}
	if got := result.Items[1].Author; got != "Bob" {
		t.Fatalf("expected trimmed single name, got %q", got)
	}
	if got := result.Items[2].Author; got != "" {
		t.Fatalf("expected empty author for missing name, got %q", got)
	}
}

func TestRatingService_Get_ScopedToRestaurant(t *testing.T) {
	repo := &stubRatingRepo{}
	seedRatings(repo, "r1", 5)
	seedRatings(repo, "r2", 4)
	svc := NewRatingService(repo, newStubRestaurantRepo("r1", "r2"), zerolog.Nop())

	if _, err := svc.Get(context.Background(), "r1", "rating_1"); err != nil {
		t.Fatalf("expected rating under its own restaurant, got %v", err)
	}

	// Same rating id under the wrong restaurant must look exactly like a
	// missing rating.
	if _, err := svc.Get(context.Background(), "r2", "rating_1"); err != domain.ErrRatingNotFound {
		t.Fatalf("expected ErrRatingNotFound, got %v", err)
	}
}

func TestRatingService_Submit_RecomputesAverage(t *testing.T) {
	repo := &stubRatingRepo{}
	seedRatings(repo, "r1", 5, 4, 3)
	svc := NewRatingService(repo, newStubRestaurantRepo("r1"), zerolog.Nop())

	result, err := svc.Submit(context.Background(), ports.SubmitRatingInput{
		RestaurantID: "r1",
		Score:        4,
		Comment:      "solid",
		UserID:       "u1",
	})
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if result.RestaurantID != "r1" {
		t.Fatalf("unexpected restaurant id %q", result.RestaurantID)
	}
	if result.AverageScore != 4.0 {
		t.Fatalf("expected average 4.0, got %v", result.AverageScore)
	}

	listed, err := svc.List(context.Background(), "r1", 0, 100)
	if err != nil {
		t.Fatalf("List after submit: %v", err)
	}
	if listed.TotalCount != 4 {
		t.Fatalf("expected the new rating to be listed, total %d", listed.TotalCount)
	}
}

func TestRatingService_Submit_RoundsHalfAwayFromZero(t *testing.T) {
	repo := &stubRatingRepo{}
	// 4 and 4.25 average to 4.125, which is exactly representable; the tie
	// must round up to 4.13, not to even (4.12).
	seedRatings(repo, "r1", 4)
	svc := NewRatingService(repo, newStubRestaurantRepo("r1"), zerolog.Nop())

	result, err := svc.Submit(context.Background(), ports.SubmitRatingInput{
		RestaurantID: "r1",
		Score:        4.25,
		UserID:       "u1",
	})
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if result.AverageScore != 4.13 {
		t.Fatalf("expected 4.13, got %v", result.AverageScore)
	}
}

func TestRatingService_Submit_UnknownRestaurant(t *testing.T) {
	repo := &stubRatingRepo{}
	svc := NewRatingService(repo, newStubRestaurantRepo(), zerolog.Nop())

	_, err := svc.Submit(context.Background(), ports.SubmitRatingInput{
		RestaurantID: "ghost",
		Score:        5,
		UserID:       "u1",
	})
	if err != domain.ErrRestaurantNotFound {
		t.Fatalf("expected ErrRestaurantNotFound, got %v", err)
	}
	if len(repo.records) != 0 {
		t.Fatalf("no rating must be persisted for an unknown restaurant")
	}
}

func TestRatingService_Submit_ServerAssignedFields(t *testing.T) {
	repo := &stubRatingRepo{}
	svc := NewRatingService(repo, newStubRestaurantRepo("r1"), zerolog.Nop())

	before := time.Now().UTC()
	if _, err := svc.Submit(context.Background(), ports.SubmitRatingInput{
		RestaurantID: "r1",
		Score:        3,
		UserID:       "u1",
	}); err != nil {
		t.Fatalf("Submit: %v", err)
	}
	after := time.Now().UTC()

	stored := repo.records[0].Rating
	if stored.UserID != "u1" {
		t.Fatalf("expected author from session, got %q", stored.UserID)
	}
	if stored.CreatedAt.Before(before) || stored.CreatedAt.After(after) {
		t.Fatalf("expected server-assigned timestamp, got %v", stored.CreatedAt)
	}
}
