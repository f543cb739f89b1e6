package repository

import (
	"context"

	"notemark/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

const BookmarksCollection = "bookmarks"

type BookmarksRepo struct {
	MongoCollection *mongo.Collection
}

func GetBookmarksRepo(db *mongo.Database) *BookmarksRepo {
	return &BookmarksRepo{MongoCollection: db.Collection(BookmarksCollection)}
}

func (r *BookmarksRepo) store() collection[model.Bookmark] {
	return collection[model.Bookmark]{coll: r.MongoCollection, name: BookmarksCollection, notFound: "Bookmark not found"}
}

func (r *BookmarksRepo) CreateBookmark(ctx context.Context, bookmark *model.Bookmark) error {
	if bookmark.ID.IsZero() {
		bookmark.ID = primitive.NewObjectID()
	}
	return r.store().insert(ctx, bookmark)
}

func (r *BookmarksRepo) FindBookmarks(ctx context.Context, ownerID primitive.ObjectID, opts ListOptions) ([]*model.Bookmark, error) {
	return r.store().find(ctx, ListFilter(ownerID, opts), newestFirst())
}

func (r *BookmarksRepo) GetBookmark(ctx context.Context, ownerID, bookmarkID primitive.ObjectID) (*model.Bookmark, error) {
	return r.store().findOne(ctx, ownedFilter(ownerID, bookmarkID))
}

// UpdateBookmark writes the mutable fields of bookmark. metadata_fetched is set at
// creation only and is left untouched.
func (r *BookmarksRepo) UpdateBookmark(ctx context.Context, bookmark *model.Bookmark) (*model.Bookmark, error) {
	return r.store().set(ctx, ownedFilter(bookmark.UserID, bookmark.ID), bson.M{
		"url":         bookmark.URL,
		"title":       bookmark.Title,
		"description": bookmark.Description,
		"tags":        bookmark.Tags,
		"favorite":    bookmark.Favorite,
		"updated_at":  bookmark.UpdatedAt,
	})
}

func (r *BookmarksRepo) DeleteBookmark(ctx context.Context, ownerID, bookmarkID primitive.ObjectID) error {
	return r.store().deleteOne(ctx, ownedFilter(ownerID, bookmarkID))
}

func (r *BookmarksRepo) DeleteUserBookmarks(ctx context.Context, ownerID primitive.ObjectID) (int64, error) {
	return r.store().deleteMany(ctx, bson.M{"user_id": ownerID})
}
