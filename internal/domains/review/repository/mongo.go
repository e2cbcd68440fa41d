package repository

import (
	"context"
	"fmt"
	"time"

	"bookstore-graphql/internal/domains/review/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const Collection = "book_reviews"

type reviewDocument struct {
	ID         primitive.ObjectID `bson:"_id,omitempty"`
	BookID     string             `bson:"book_id"`
	User       string             `bson:"user"`
	Rating     int                `bson:"rating"`
	Review     string             `bson:"review"`
	ReviewDate time.Time          `bson:"review_date"`
}

func (d reviewDocument) toModel() model.Review {
	return model.Review{
		ID:         d.ID.Hex(),
		BookID:     d.BookID,
		User:       d.User,
		Rating:     d.Rating,
		Review:     d.Review,
		ReviewDate: d.ReviewDate.UTC(),
	}
}

type mongoRepository struct {
	coll *mongo.Collection
}

func NewMongoRepository(db *mongo.Database) Repository {
	return &mongoRepository{coll: db.Collection(Collection)}
}

// EnsureIndexes indexes book_id, the only lookup key.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection(Collection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "book_id", Value: 1}},
	})
	if err != nil {
		return fmt.Errorf("failed to create book_reviews index: %w", err)
	}
	return nil
}

func (r *mongoRepository) Create(ctx context.Context, review *model.Review) (*model.Review, error) {
	doc := reviewDocument{
		ID:         primitive.NewObjectID(),
		BookID:     review.BookID,
		User:       review.User,
		Rating:     review.Rating,
		Review:     review.Review,
		ReviewDate: review.ReviewDate.UTC(),
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return nil, fmt.Errorf("failed to insert review: %w", err)
	}

	// BSON dates keep millisecond precision.
	doc.ReviewDate = doc.ReviewDate.Truncate(time.Millisecond)
	created := doc.toModel()
	return &created, nil
}

func (r *mongoRepository) ListByBookID(ctx context.Context, bookID string) ([]model.Review, error) {
	return r.find(ctx, bson.M{"book_id": bookID})
}

func (r *mongoRepository) ListByBookIDs(ctx context.Context, bookIDs []string) ([]model.Review, error) {
	if len(bookIDs) == 0 {
		return []model.Review{}, nil
	}
	return r.find(ctx, bson.M{"book_id": bson.M{"$in": bookIDs}})
}

func (r *mongoRepository) find(ctx context.Context, filter bson.M) ([]model.Review, error) {
	opts := options.Find().SetSort(bson.D{{Key: "review_date", Value: 1}, {Key: "_id", Value: 1}})

	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find reviews: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []reviewDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode reviews: %w", err)
	}

	reviews := make([]model.Review, 0, len(docs))
	for _, d := range docs {
		reviews = append(reviews, d.toModel())
	}
	return reviews, nil
}

func (r *mongoRepository) RatingStats(ctx context.Context, bookID string) (model.RatingStats, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.D{{Key: "book_id", Value: bookID}}}},
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: nil},
			{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
			{Key: "total", Value: bson.D{{Key: "$sum", Value: "$rating"}}},
		}}},
	}

	cursor, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return model.RatingStats{}, fmt.Errorf("failed to aggregate ratings: %w", err)
	}
	defer cursor.Close(ctx)

	var out []struct {
		Count int64 `bson:"count"`
		Total int64 `bson:"total"`
	}
	if err := cursor.All(ctx, &out); err != nil {
		return model.RatingStats{}, fmt.Errorf("failed to decode rating stats: %w", err)
	}
	if len(out) == 0 {
		return model.RatingStats{}, nil
	}
	return model.RatingStats{Count: out[0].Count, Total: out[0].Total}, nil
}
