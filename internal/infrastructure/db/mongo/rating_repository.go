package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/awesomeeats/restaurant-api/internal/core/domain"
	"github.com/awesomeeats/restaurant-api/internal/core/ports"
)

const collectionRatings = "ratings"

// RatingRepository implements ports.RatingRepository using MongoDB.
type RatingRepository struct {
	col *mongo.Collection
}

func NewRatingRepository(db *mongo.Database) *RatingRepository {
	return &RatingRepository{col: db.Collection(collectionRatings)}
}

type ratingDoc struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	RestaurantID string             `bson:"restaurant_id"`
	Score        float64            `bson:"score"`
	Comment      string             `bson:"comment,omitempty"`
	CreatedAt    time.Time          `bson:"created_at"`
	UserID       primitive.ObjectID `bson:"user_id"`
}

type authorDoc struct {
	FirstName string `bson:"first_name"`
	LastName  string `bson:"last_name,omitempty"`
}

type ratingWithAuthor struct {
	ratingDoc `bson:",inline"`
	Author    *authorDoc `bson:"author,omitempty"`
}

// CountByRestaurant returns the exact number of ratings for the restaurant.
func (r *RatingRepository) CountByRestaurant(ctx context.Context, restaurantID string) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	return r.col.CountDocuments(ctx, bson.M{"restaurant_id": restaurantID})
}

// FindPage returns ratings ordered by created_at descending with the author
// joined in from the users collection. Ties on created_at fall back to
// storage order, which is stable per process but otherwise unspecified.
func (r *RatingRepository) FindPage(ctx context.Context, restaurantID string, skip, limit int64) ([]ports.RatingRecord, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"restaurant_id": restaurantID}}},
		{{Key: "$sort", Value: bson.D{{Key: "created_at", Value: -1}}}},
		{{Key: "$skip", Value: skip}},
		{{Key: "$limit", Value: limit}},
		{{Key: "$lookup", Value: bson.M{
			"from":         collectionUsers,
			"localField":   "user_id",
			"foreignField": "_id",
			"as":           "author",
		}}},
		{{Key: "$unwind", Value: bson.M{"path": "$author", "preserveNullAndEmptyArrays": true}}},
	}

	cursor, err := r.col.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var docs []ratingWithAuthor
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}

	records := make([]ports.RatingRecord, 0, len(docs))
	for _, d := range docs {
		records = append(records, toRatingRecord(d))
	}
	return records, nil
}

// FindByID retrieves a rating scoped to its restaurant. A rating under a
// different restaurant is reported as not found.
func (r *RatingRepository) FindByID(ctx context.Context, restaurantID, ratingID string) (*ports.RatingRecord, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(ratingID)
	if err != nil {
		return nil, domain.ErrRatingNotFound
	}

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"_id": oid, "restaurant_id": restaurantID}}},
		{{Key: "$lookup", Value: bson.M{
			"from":         collectionUsers,
			"localField":   "user_id",
			"foreignField": "_id",
			"as":           "author",
		}}},
		{{Key: "$unwind", Value: bson.M{"path": "$author", "preserveNullAndEmptyArrays": true}}},
	}

	cursor, err := r.col.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var docs []ratingWithAuthor
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}
	if len(docs) == 0 {
		return nil, domain.ErrRatingNotFound
	}

	record := toRatingRecord(docs[0])
	return &record, nil
}

// Insert persists a new rating and returns the server-assigned id.
func (r *RatingRepository) Insert(ctx context.Context, rating *domain.Rating) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	userOID, err := primitive.ObjectIDFromHex(rating.UserID)
	if err != nil {
		return "", domain.ErrUserNotFound
	}

	doc := ratingDoc{
		RestaurantID: rating.RestaurantID,
		Score:        rating.Score,
		Comment:      rating.Comment,
		CreatedAt:    rating.CreatedAt,
		UserID:       userOID,
	}

	res, err := r.col.InsertOne(ctx, doc)
	if err != nil {
		return "", err
	}

	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return "", errors.New("ratings: unexpected inserted id type")
	}
	return oid.Hex(), nil
}

// AverageScore computes the arithmetic mean of every score for the
// restaurant. Returns 0 when the restaurant has no ratings.
func (r *RatingRepository) AverageScore(ctx context.Context, restaurantID string) (float64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"restaurant_id": restaurantID}}},
		{{Key: "$group", Value: bson.M{
			"_id":     nil,
			"average": bson.M{"$avg": "$score"},
		}}},
	}

	cursor, err := r.col.Aggregate(ctx, pipeline)
	if err != nil {
		return 0, err
	}
	defer cursor.Close(ctx)

	var result []struct {
		Average float64 `bson:"average"`
	}
	if err := cursor.All(ctx, &result); err != nil {
		return 0, err
	}
	if len(result) == 0 {
		return 0, nil
	}
	return result[0].Average, nil
}

// EnsureIndexes creates the indexes backing the list and scoped-lookup
// queries.
func (r *RatingRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "restaurant_id", Value: 1}, {Key: "created_at", Value: -1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}

func toRatingRecord(d ratingWithAuthor) ports.RatingRecord {
	record := ports.RatingRecord{
		Rating: domain.Rating{
			ID:           d.ID.Hex(),
			RestaurantID: d.RestaurantID,
			Score:        d.Score,
			Comment:      d.Comment,
			CreatedAt:    d.CreatedAt.UTC(),
			UserID:       d.UserID.Hex(),
		},
	}
	if d.Author != nil {
		record.AuthorFirstName = d.Author.FirstName
		record.AuthorLastName = d.Author.LastName
	}
	return record
}
