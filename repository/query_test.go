package repository

import (
	"testing"

	"notemark/apperr"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestParseID(t *testing.T) {
	t.Run("valid hex", func(t *testing.T) {
		want := primitive.NewObjectID()
		got, err := ParseID(want.Hex(), "note")
		require.NoError(t, err)
		assert.Equal(t, want, got)
	})

	for _, raw := range []string{"", "123", "not-an-object-id", "zzzzzzzzzzzzzzzzzzzzzzzz"} {
		t.Run("rejects "+raw, func(t *testing.T) {
			_, err := ParseID(raw, "bookmark")
			require.Error(t, err)
			assert.Equal(t, apperr.TypeInvalidID, apperr.TypeOf(err))
			assert.Equal(t, "Invalid bookmark ID format", apperr.MessageOf(err))
		})
	}
}

func TestNormalizeTags(t *testing.T) {
	got := NormalizeTags([]string{" Go ", "go", "", "  ", "Mongo", "GO", "api"})
	assert.Equal(t, []string{"go", "mongo", "api"}, got)
	assert.Equal(t, got, NormalizeTags(got), "normalizing twice changes nothing")

	assert.Empty(t, NormalizeTags(nil))
	assert.NotNil(t, NormalizeTags(nil), "stored tags are an empty array, never null")
}

func TestParseTagList(t *testing.T) {
	assert.Nil(t, ParseTagList(""))
	assert.Nil(t, ParseTagList("   "))
	assert.Equal(t, []string{"work", "urgent"}, ParseTagList("Work, URGENT ,work,"))
}

func TestListFilter(t *testing.T) {
	owner := primitive.NewObjectID()

	t.Run("owner only", func(t *testing.T) {
		assert.Equal(t, bson.M{"user_id": owner}, ListFilter(owner, ListOptions{}))
	})

	t.Run("blank query is ignored", func(t *testing.T) {
		filter := ListFilter(owner, ListOptions{Query: "   "})
		assert.NotContains(t, filter, "$text")
	})

	t.Run("all filters", func(t *testing.T) {
		fav := false
		filter := ListFilter(owner, ListOptions{
			Query:    "golang",
			Tags:     []string{"dev", "backend"},
			Favorite: &fav,
		})

		assert.Equal(t, bson.M{
			"user_id":  owner,
			"$text":    bson.M{"$search": "golang"},
			"tags":     bson.M{"$all": []string{"dev", "backend"}},
			"favorite": false,
		}, filter)
	})
}
