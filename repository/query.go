package repository

import (
	"strings"

	"notemark/apperr"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ListOptions are the optional filters of a list query. Zero values impose no constraint.
type ListOptions struct {
	// Query is matched against the collection's text index.
	Query string
	// Tags must all be present on a record (intersection). Expected normalized.
	Tags []string
	// Favorite, when set, requires an exact match.
	Favorite *bool
}

// ParseID converts a path parameter to an ObjectID, failing before any database round trip.
func ParseID(id, resource string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(strings.TrimSpace(id))
	if err != nil {
		return primitive.NilObjectID, apperr.InvalidID("Invalid " + resource + " ID format")
	}
	return oid, nil
}

// NormalizeTags trims and lowercases tags, dropping blanks and duplicates while keeping
// first-seen order.
func NormalizeTags(tags []string) []string {
	normalized := make([]string, 0, len(tags))
	seen := make(map[string]struct{}, len(tags))
	for _, tag := range tags {
		tag = strings.ToLower(strings.TrimSpace(tag))
		if tag == "" {
			continue
		}
		if _, dup := seen[tag]; dup {
			continue
		}
		seen[tag] = struct{}{}
		normalized = append(normalized, tag)
	}
	return normalized
}

// ParseTagList splits a comma separated query parameter into normalized tags.
func ParseTagList(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	return NormalizeTags(strings.Split(raw, ","))
}

// ListFilter builds the filter for a list query, always scoped to the owner.
func ListFilter(ownerID primitive.ObjectID, opts ListOptions) bson.M {
	filter := bson.M{"user_id": ownerID}

	if q := strings.TrimSpace(opts.Query); q != "" {
		filter["$text"] = bson.M{"$search": q}
	}
	if len(opts.Tags) > 0 {
		filter["tags"] = bson.M{"$all": opts.Tags}
	}
	if opts.Favorite != nil {
		filter["favorite"] = *opts.Favorite
	}

	return filter
}

// ownedFilter matches one record of one owner.
func ownedFilter(ownerID, id primitive.ObjectID) bson.M {
	return bson.M{"_id": id, "user_id": ownerID}
}

// newestFirst orders results by creation time, newest first.
func newestFirst() *options.FindOptions {
	return options.Find().SetSort(bson.D{
		{Key: "created_at", Value: -1},
		{Key: "_id", Value: -1},
	})
}
