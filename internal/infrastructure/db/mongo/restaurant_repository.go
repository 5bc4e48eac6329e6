package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/awesomeeats/restaurant-api/internal/core/domain"
)

const collectionRestaurants = "restaurants"

// RestaurantRepository implements ports.RestaurantRepository using MongoDB.
type RestaurantRepository struct {
	col *mongo.Collection
}

func NewRestaurantRepository(db *mongo.Database) *RestaurantRepository {
	return &RestaurantRepository{col: db.Collection(collectionRestaurants)}
}

type addressDoc struct {
	Street  string `bson:"street"`
	City    string `bson:"city"`
	ZipCode string `bson:"zip_code"`
	Country string `bson:"country"`
}

type restaurantDoc struct {
	ID      primitive.ObjectID `bson:"_id,omitempty"`
	Name    string             `bson:"name"`
	Address addressDoc         `bson:"address"`
}

func (r *RestaurantRepository) CountAll(ctx context.Context) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	return r.col.CountDocuments(ctx, bson.M{})
}

// FindPage returns restaurants ordered by name ascending.
func (r *RestaurantRepository) FindPage(ctx context.Context, skip, limit int64) ([]domain.Restaurant, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().
		SetSort(bson.D{{Key: "name", Value: 1}}).
		SetSkip(skip).
		SetLimit(limit)

	cursor, err := r.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var docs []restaurantDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}

	restaurants := make([]domain.Restaurant, 0, len(docs))
	for _, d := range docs {
		restaurants = append(restaurants, toRestaurant(d))
	}
	return restaurants, nil
}

func (r *RestaurantRepository) FindByID(ctx context.Context, id string) (*domain.Restaurant, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrRestaurantNotFound
	}

	var doc restaurantDoc
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrRestaurantNotFound
		}
		return nil, err
	}

	restaurant := toRestaurant(doc)
	return &restaurant, nil
}

func (r *RestaurantRepository) Exists(ctx context.Context, id string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return false, nil
	}

	count, err := r.col.CountDocuments(ctx, bson.M{"_id": oid}, options.Count().SetLimit(1))
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *RestaurantRepository) Insert(ctx context.Context, restaurant *domain.Restaurant) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := restaurantDoc{
		Name: restaurant.Name,
		Address: addressDoc{
			Street:  restaurant.Address.Street,
			City:    restaurant.Address.City,
			ZipCode: restaurant.Address.ZipCode,
			Country: restaurant.Address.Country,
		},
	}

	res, err := r.col.InsertOne(ctx, doc)
	if err != nil {
		return "", err
	}

	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return "", errors.New("restaurants: unexpected inserted id type")
	}
	return oid.Hex(), nil
}

// EnsureIndexes creates the index backing the name-ordered listing.
func (r *RestaurantRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "name", Value: 1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}

func toRestaurant(d restaurantDoc) domain.Restaurant {
	return domain.Restaurant{
		ID:   d.ID.Hex(),
		Name: d.Name,
		Address: domain.Address{
			Street:  d.Address.Street,
			City:    d.Address.City,
			ZipCode: d.Address.ZipCode,
			Country: d.Address.Country,
		},
	}
}
