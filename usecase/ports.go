package usecase

import (
	"context"
	"time"

	"notemark/model"
	"notemark/repository"
	"notemark/services"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Every store method is scoped to an owner; a record of another owner is reported as
// not found.

type NoteStore interface {
	CreateNote(ctx context.Context, note *model.Note) error
	FindNotes(ctx context.Context, ownerID primitive.ObjectID, opts repository.ListOptions) ([]*model.Note, error)
	GetNote(ctx context.Context, ownerID, noteID primitive.ObjectID) (*model.Note, error)
	UpdateNote(ctx context.Context, note *model.Note) (*model.Note, error)
	DeleteNote(ctx context.Context, ownerID, noteID primitive.ObjectID) error
	DeleteUserNotes(ctx context.Context, ownerID primitive.ObjectID) (int64, error)
}

type BookmarkStore interface {
	CreateBookmark(ctx context.Context, bookmark *model.Bookmark) error
	FindBookmarks(ctx context.Context, ownerID primitive.ObjectID, opts repository.ListOptions) ([]*model.Bookmark, error)
	GetBookmark(ctx context.Context, ownerID, bookmarkID primitive.ObjectID) (*model.Bookmark, error)
	UpdateBookmark(ctx context.Context, bookmark *model.Bookmark) (*model.Bookmark, error)
	DeleteBookmark(ctx context.Context, ownerID, bookmarkID primitive.ObjectID) error
	DeleteUserBookmarks(ctx context.Context, ownerID primitive.ObjectID) (int64, error)
}

type UserStore interface {
	AddUser(ctx context.Context, user *model.User) error
	FindUserByEmail(ctx context.Context, email string) (*model.User, error)
	FindUser(ctx context.Context, userID primitive.ObjectID) (*model.User, error)
	RecordLogin(ctx context.Context, userID primitive.ObjectID, login model.LoginInfo) error
	DeleteUserByID(ctx context.Context, userID primitive.ObjectID) error
}

// MetadataSource scrapes a page. Implementations never fail; see services.Metadata.
type MetadataSource interface {
	Fetch(ctx context.Context, url string) services.Metadata
}

type TokenIssuer interface {
	Issue(userID primitive.ObjectID) (string, time.Time, error)
	Parse(token string) (*services.Claims, error)
}

type TokenRevoker interface {
	Revoke(ctx context.Context, token string, expiresAt time.Time) error
}

// now is the clock used for record timestamps. Mongo keeps millisecond precision.
func now() time.Time {
	return time.Now().UTC().Truncate(time.Millisecond)
}
