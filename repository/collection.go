package repository

import (
	"context"
	"errors"

	"notemark/apperr"
	"notemark/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// collection holds the persistence steps notes and bookmarks share.
type collection[T any] struct {
	coll     *mongo.Collection
	name     string
	notFound string
}

func (c collection[T]) insert(ctx context.Context, doc *T) error {
	timer := utils.TrackDBOperation("insert", c.name)
	defer timer.ObserveDuration()

	if _, err := c.coll.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return apperr.Conflict("Duplicate key error", err)
		}
		utils.TrackError("database")
		return apperr.Internal("insert into "+c.name, err)
	}
	return nil
}

func (c collection[T]) find(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]*T, error) {
	timer := utils.TrackDBOperation("find", c.name)
	defer timer.ObserveDuration()

	cursor, err := c.coll.Find(ctx, filter, opts)
	if err != nil {
		utils.TrackError("database")
		return nil, apperr.Internal("find in "+c.name, err)
	}
	defer cursor.Close(ctx)

	docs := make([]*T, 0)
	if err := cursor.All(ctx, &docs); err != nil {
		utils.TrackError("database")
		return nil, apperr.Internal("decode "+c.name, err)
	}
	return docs, nil
}

func (c collection[T]) findOne(ctx context.Context, filter bson.M) (*T, error) {
	timer := utils.TrackDBOperation("find_one", c.name)
	defer timer.ObserveDuration()

	var doc T
	if err := c.coll.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperr.NotFound(c.notFound)
		}
		utils.TrackError("database")
		return nil, apperr.Internal("find one in "+c.name, err)
	}
	return &doc, nil
}

// set applies a $set to one record and returns it as stored afterwards.
func (c collection[T]) set(ctx context.Context, filter bson.M, fields bson.M) (*T, error) {
	timer := utils.TrackDBOperation("update", c.name)
	defer timer.ObserveDuration()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var doc T
	err := c.coll.FindOneAndUpdate(ctx, filter, bson.M{"$set": fields}, opts).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperr.NotFound(c.notFound)
		}
		if mongo.IsDuplicateKeyError(err) {
			return nil, apperr.Conflict("Duplicate key error", err)
		}
		utils.TrackError("database")
		return nil, apperr.Internal("update in "+c.name, err)
	}
	return &doc, nil
}

func (c collection[T]) deleteOne(ctx context.Context, filter bson.M) error {
	timer := utils.TrackDBOperation("delete", c.name)
	defer timer.ObserveDuration()

	result, err := c.coll.DeleteOne(ctx, filter)
	if err != nil {
		utils.TrackError("database")
		return apperr.Internal("delete from "+c.name, err)
	}
	if result.DeletedCount == 0 {
		return apperr.NotFound(c.notFound)
	}
	return nil
}

func (c collection[T]) deleteMany(ctx context.Context, filter bson.M) (int64, error) {
	timer := utils.TrackDBOperation("delete_many", c.name)
	defer timer.ObserveDuration()

	result, err := c.coll.DeleteMany(ctx, filter)
	if err != nil {
		utils.TrackError("database")
		return 0, apperr.Internal("delete many from "+c.name, err)
	}
	return result.DeletedCount, nil
}
