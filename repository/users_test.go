package repository

import (
	"context"
	"os"
	"testing"
	"time"

	"notemark/apperr"
	"notemark/config"
	"notemark/model"
	"notemark/utils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// newTestDatabase connects to TEST_MONGO_URI and hands out a throwaway database with
// indexes in place. Tests are skipped when no server is configured.
func newTestDatabase(t *testing.T) *mongo.Database {
	t.Helper()

	uri := os.Getenv("TEST_MONGO_URI")
	if uri == "" {
		t.Skip("TEST_MONGO_URI not set")
	}

	ctx := context.Background()
	cfg := config.Defaults().Database
	cfg.URI = uri

	client, err := utils.ConnectMongo(ctx, cfg)
	require.NoError(t, err)

	db := client.Database("notemark_test_" + uuid.NewString()[:8])
	require.NoError(t, SetupIndexes(ctx, db, zap.NewNop()))

	t.Cleanup(func() {
		_ = db.Drop(context.Background())
		_ = client.Disconnect(context.Background())
	})
	return db
}

func TestMongoOperations(t *testing.T) {
	db := newTestDatabase(t)
	ctx := context.Background()

	users := GetUsersRepo(db)
	notes := GetNotesRepo(db)
	bookmarks := GetBookmarksRepo(db)

	now := time.Now().UTC().Truncate(time.Millisecond)
	alice := &model.User{Name: "Alice", Email: "alice@example.com", Password: "salt$hash", CreatedAt: now, UpdatedAt: now}
	bob := &model.User{Name: "Bob", Email: "bob@example.com", Password: "salt$hash", CreatedAt: now, UpdatedAt: now}

	t.Run("CreateUser", func(t *testing.T) {
		require.NoError(t, users.AddUser(ctx, alice))
		require.NoError(t, users.AddUser(ctx, bob))
		assert.False(t, alice.ID.IsZero())
	})

	t.Run("DuplicateEmail", func(t *testing.T) {
		dup := &model.User{Name: "Other", Email: "alice@example.com", Password: "x$y"}
		err := users.AddUser(ctx, dup)
		assert.Equal(t, apperr.TypeConflict, apperr.TypeOf(err))
	})

	t.Run("FindUserByEmail", func(t *testing.T) {
		found, err := users.FindUserByEmail(ctx, "alice@example.com")
		require.NoError(t, err)
		require.NotNil(t, found)
		assert.Equal(t, alice.ID, found.ID)

		missing, err := users.FindUserByEmail(ctx, "nobody@example.com")
		require.NoError(t, err)
		assert.Nil(t, missing)
	})

	t.Run("RecordLogin", func(t *testing.T) {
		login := model.LoginInfo{At: now, Device: "Firefox on Linux (Desktop)", IPAddress: "10.0.0.1"}
		require.NoError(t, users.RecordLogin(ctx, alice.ID, login))

		found, err := users.FindUser(ctx, alice.ID)
		require.NoError(t, err)
		require.NotNil(t, found.LastLogin)
		assert.Equal(t, "Firefox on Linux (Desktop)", found.LastLogin.Device)
	})

	var first, second *model.Note
	t.Run("CreateNotes", func(t *testing.T) {
		first = &model.Note{UserID: alice.ID, Title: "Mongo indexes", Content: "compound first", Tags: []string{"db", "mongo"}, CreatedAt: now, UpdatedAt: now}
		second = &model.Note{UserID: alice.ID, Title: "Gin routing", Content: "groups", Tags: []string{"go"}, Favorite: true, CreatedAt: now.Add(time.Second), UpdatedAt: now.Add(time.Second)}
		require.NoError(t, notes.CreateNote(ctx, first))
		require.NoError(t, notes.CreateNote(ctx, second))
		require.NoError(t, notes.CreateNote(ctx, &model.Note{UserID: bob.ID, Title: "Bob's", Content: "mongo", Tags: []string{"mongo"}, CreatedAt: now, UpdatedAt: now}))
	})

	t.Run("FindNotes", func(t *testing.T) {
		all, err := notes.FindNotes(ctx, alice.ID, ListOptions{})
		require.NoError(t, err)
		require.Len(t, all, 2)
		assert.Equal(t, second.ID, all[0].ID, "newest first")

		tagged, err := notes.FindNotes(ctx, alice.ID, ListOptions{Tags: []string{"db", "mongo"}})
		require.NoError(t, err)
		require.Len(t, tagged, 1)
		assert.Equal(t, first.ID, tagged[0].ID)

		fav := true
		favorites, err := notes.FindNotes(ctx, alice.ID, ListOptions{Favorite: &fav})
		require.NoError(t, err)
		require.Len(t, favorites, 1)
		assert.Equal(t, second.ID, favorites[0].ID)

		searched, err := notes.FindNotes(ctx, alice.ID, ListOptions{Query: "indexes"})
		require.NoError(t, err)
		require.Len(t, searched, 1)
		assert.Equal(t, first.ID, searched[0].ID)
	})

	t.Run("OwnerScoping", func(t *testing.T) {
		_, err := notes.GetNote(ctx, bob.ID, first.ID)
		assert.True(t, apperr.IsNotFound(err))

		err = notes.DeleteNote(ctx, bob.ID, first.ID)
		assert.True(t, apperr.IsNotFound(err))
	})

	t.Run("UpdateNote", func(t *testing.T) {
		first.Title = "Mongo compound indexes"
		first.Favorite = true
		first.UpdatedAt = now.Add(time.Minute)

		updated, err := notes.UpdateNote(ctx, first)
		require.NoError(t, err)
		assert.Equal(t, "Mongo compound indexes", updated.Title)
		assert.True(t, updated.Favorite)
		assert.Equal(t, []string{"db", "mongo"}, updated.Tags)
	})

	t.Run("UpdateMissingNote", func(t *testing.T) {
		ghost := &model.Note{ID: primitive.NewObjectID(), UserID: alice.ID, Title: "x", Content: "y"}
		_, err := notes.UpdateNote(ctx, ghost)
		assert.True(t, apperr.IsNotFound(err))
	})

	t.Run("Bookmarks", func(t *testing.T) {
		bm := &model.Bookmark{UserID: alice.ID, URL: "https://go.dev", Title: "Go", Tags: []string{}, MetadataFetched: true, CreatedAt: now, UpdatedAt: now}
		require.NoError(t, bookmarks.CreateBookmark(ctx, bm))

		bm.Description = "The Go programming language"
		bm.MetadataFetched = false
		updated, err := bookmarks.UpdateBookmark(ctx, bm)
		require.NoError(t, err)
		assert.Equal(t, "The Go programming language", updated.Description)
		assert.True(t, updated.MetadataFetched)

		found, err := bookmarks.FindBookmarks(ctx, alice.ID, ListOptions{Query: "programming"})
		require.NoError(t, err)
		assert.Len(t, found, 1)
	})

	t.Run("CascadeDelete", func(t *testing.T) {
		removed, err := notes.DeleteUserNotes(ctx, alice.ID)
		require.NoError(t, err)
		assert.EqualValues(t, 2, removed)

		removed, err = bookmarks.DeleteUserBookmarks(ctx, alice.ID)
		require.NoError(t, err)
		assert.EqualValues(t, 1, removed)

		require.NoError(t, users.DeleteUserByID(ctx, alice.ID))
		_, err = users.FindUser(ctx, alice.ID)
		assert.True(t, apperr.IsNotFound(err))

		remaining, err := notes.FindNotes(ctx, bob.ID, ListOptions{})
		require.NoError(t, err)
		assert.Len(t, remaining, 1)
	})
}
