package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"bookstore-graphql/internal/domains/author/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const MetadataCollection = "author_metadata"

type mongoMetadataRepository struct {
	coll *mongo.Collection
	now  func() time.Time
}

func NewMongoMetadataRepository(db *mongo.Database) MetadataRepository {
	return &mongoMetadataRepository{coll: db.Collection(MetadataCollection), now: time.Now}
}

// EnsureMetadataIndexes makes author_id unique.
func EnsureMetadataIndexes(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection(MetadataCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "author_id", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("failed to create author_metadata index: %w", err)
	}
	return nil
}

func (r *mongoMetadataRepository) GetByAuthorID(ctx context.Context, authorID string) (*model.Metadata, error) {
	var m model.Metadata
	err := r.coll.FindOne(ctx, bson.M{"author_id": authorID}).Decode(&m)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, model.ErrMetadataNotFound
		}
		return nil, fmt.Errorf("failed to get author metadata: %w", err)
	}
	return &m, nil
}

func (r *mongoMetadataRepository) Upsert(ctx context.Context, m *model.Metadata) (*model.Metadata, error) {
	awards := m.Awards
	if awards == nil {
		awards = []string{}
	}
	update := bson.M{"$set": bson.M{
		"awards":       awards,
		"website":      m.Website,
		"social_media": m.SocialMedia,
		"updated_at":   r.now().UTC(),
	}}
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)

	var stored model.Metadata
	err := r.coll.FindOneAndUpdate(ctx, bson.M{"author_id": m.AuthorID}, update, opts).Decode(&stored)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert author metadata: %w", err)
	}
	return &stored, nil
}
