package repository

import (
	"context"

	"notemark/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

const NotesCollection = "notes"

type NotesRepo struct {
	MongoCollection *mongo.Collection
}

func GetNotesRepo(db *mongo.Database) *NotesRepo {
	return &NotesRepo{MongoCollection: db.Collection(NotesCollection)}
}

func (r *NotesRepo) store() collection[model.Note] {
	return collection[model.Note]{coll: r.MongoCollection, name: NotesCollection, notFound: "Note not found"}
}

// CreateNote inserts note and fills in its generated id.
func (r *NotesRepo) CreateNote(ctx context.Context, note *model.Note) error {
	if note.ID.IsZero() {
		note.ID = primitive.NewObjectID()
	}
	return r.store().insert(ctx, note)
}

// FindNotes lists the owner's notes matching opts, newest first.
func (r *NotesRepo) FindNotes(ctx context.Context, ownerID primitive.ObjectID, opts ListOptions) ([]*model.Note, error) {
	return r.store().find(ctx, ListFilter(ownerID, opts), newestFirst())
}

func (r *NotesRepo) GetNote(ctx context.Context, ownerID, noteID primitive.ObjectID) (*model.Note, error) {
	return r.store().findOne(ctx, ownedFilter(ownerID, noteID))
}

// UpdateNote writes the mutable fields of note and returns the stored result.
func (r *NotesRepo) UpdateNote(ctx context.Context, note *model.Note) (*model.Note, error) {
	return r.store().set(ctx, ownedFilter(note.UserID, note.ID), bson.M{
		"title":      note.Title,
		"content":    note.Content,
		"tags":       note.Tags,
		"favorite":   note.Favorite,
		"updated_at": note.UpdatedAt,
	})
}

func (r *NotesRepo) DeleteNote(ctx context.Context, ownerID, noteID primitive.ObjectID) error {
	return r.store().deleteOne(ctx, ownedFilter(ownerID, noteID))
}

// DeleteUserNotes removes every note of the owner and reports how many went.
func (r *NotesRepo) DeleteUserNotes(ctx context.Context, ownerID primitive.ObjectID) (int64, error) {
	return r.store().deleteMany(ctx, bson.M{"user_id": ownerID})
}
