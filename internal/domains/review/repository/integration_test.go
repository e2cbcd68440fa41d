//go:build integration

package repository

import (
	"context"
	"testing"
	"time"

	"bookstore-graphql/internal/domains/review/model"
	"bookstore-graphql/internal/testsupport"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIntegration_MongoReviews(t *testing.T) {
	ctx := context.Background()
	mongoDB := testsupport.ConnectMongo(t)
	require.NoError(t, mongoDB.EnsureIndexes(ctx, EnsureIndexes))

	repo := NewMongoRepository(mongoDB.Database())
	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	for i, r := range []model.Review{
		{BookID: "1", User: "ana", Rating: 5, Review: "Great"},
		{BookID: "1", User: "bo", Rating: 2, Review: "Meh"},
		{BookID: "2", User: "cy", Rating: 4, Review: "Good"},
	} {
		r.ReviewDate = base.Add(time.Duration(i) * time.Hour)
		created, err := repo.Create(ctx, &r)
		require.NoError(t, err)
		assert.Len(t, created.ID, 24)
	}

	book1, err := repo.ListByBookID(ctx, "1")
	require.NoError(t, err)
	require.Len(t, book1, 2)
	assert.Equal(t, "ana", book1[0].User)
	assert.True(t, base.Equal(book1[0].ReviewDate))

	both, err := repo.ListByBookIDs(ctx, []string{"1", "2"})
	require.NoError(t, err)
	assert.Len(t, both, 3)

	none, err := repo.ListByBookID(ctx, "404")
	require.NoError(t, err)
	assert.Empty(t, none)

	stats, err := repo.RatingStats(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, model.RatingStats{Count: 2, Total: 7}, stats)

	empty, err := repo.RatingStats(ctx, "404")
	require.NoError(t, err)
	assert.Equal(t, model.RatingStats{}, empty)
}
