package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

func TestSetupIndexes(t *testing.T) {
	db := newTestDatabase(t)
	ctx := context.Background()

	// Second run must be a no-op.
	require.NoError(t, SetupIndexes(ctx, db, zap.NewNop()))

	expected := map[string][]string{
		UsersCollection:     {"unique_email"},
		NotesCollection:     {"user_notes_date", "user_tags", "text_search"},
		BookmarksCollection: {"user_bookmarks_date", "user_tags", "text_search"},
	}

	for collection, names := range expected {
		cursor, err := db.Collection(collection).Indexes().List(ctx)
		require.NoError(t, err)

		var indexes []bson.M
		require.NoError(t, cursor.All(ctx, &indexes))

		found := map[string]bson.M{}
		for _, index := range indexes {
			found[index["name"].(string)] = index
		}
		for _, name := range names {
			assert.Contains(t, found, name, "%s.%s", collection, name)
		}

		if collection == NotesCollection {
			weights, ok := found["text_search"]["weights"].(bson.M)
			require.True(t, ok, "text index weights not found")
			assert.EqualValues(t, 10, weights["title"])
			assert.EqualValues(t, 5, weights["content"])
			assert.EqualValues(t, 3, weights["tags"])
		}
		if collection == UsersCollection {
			assert.Equal(t, true, found["unique_email"]["unique"])
		}
	}
}
