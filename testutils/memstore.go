package testutils

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"notemark/apperr"
	"notemark/model"
	"notemark/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// The stores below mirror the Mongo repositories closely enough for service and handler
// tests: owner scoping, tag intersection, favorite filter, newest-first ordering and a
// word-based stand-in for $text search.

func matchesText(query string, fields ...string) bool {
	words := strings.Fields(strings.ToLower(query))
	if len(words) == 0 {
		return true
	}
	haystack := strings.ToLower(strings.Join(fields, " "))
	for _, w := range words {
		if strings.Contains(haystack, w) {
			return true
		}
	}
	return false
}

func hasAllTags(tags, want []string) bool {
	set := make(map[string]struct{}, len(tags))
	for _, t := range tags {
		set[t] = struct{}{}
	}
	for _, w := range want {
		if _, ok := set[w]; !ok {
			return false
		}
	}
	return true
}

func matches(opts repository.ListOptions, tags []string, favorite bool, text ...string) bool {
	if !matchesText(opts.Query, text...) {
		return false
	}
	if len(opts.Tags) > 0 && !hasAllTags(tags, opts.Tags) {
		return false
	}
	if opts.Favorite != nil && *opts.Favorite != favorite {
		return false
	}
	return true
}

func newestFirst(createdAt func(i int) time.Time, ids func(i int) primitive.ObjectID) func(i, j int) bool {
	return func(i, j int) bool {
		if !createdAt(i).Equal(createdAt(j)) {
			return createdAt(i).After(createdAt(j))
		}
		return ids(i).Hex() > ids(j).Hex()
	}
}

type MemNoteStore struct {
	mu    sync.Mutex
	notes map[primitive.ObjectID]model.Note
	// Err, when set, is returned by every call.
	Err error
}

func NewMemNoteStore() *MemNoteStore {
	return &MemNoteStore{notes: map[primitive.ObjectID]model.Note{}}
}

func (s *MemNoteStore) CreateNote(_ context.Context, note *model.Note) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	if note.ID.IsZero() {
		note.ID = primitive.NewObjectID()
	}
	s.notes[note.ID] = cloneNote(*note)
	return nil
}

func (s *MemNoteStore) FindNotes(_ context.Context, ownerID primitive.ObjectID, opts repository.ListOptions) ([]*model.Note, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	out := make([]*model.Note, 0)
	for _, n := range s.notes {
		if n.UserID != ownerID || !matches(opts, n.Tags, n.Favorite, n.Title, n.Content, strings.Join(n.Tags, " ")) {
			continue
		}
		c := cloneNote(n)
		out = append(out, &c)
	}
	sort.Slice(out, newestFirst(
		func(i int) time.Time { return out[i].CreatedAt },
		func(i int) primitive.ObjectID { return out[i].ID }))
	return out, nil
}

func (s *MemNoteStore) GetNote(_ context.Context, ownerID, noteID primitive.ObjectID) (*model.Note, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	n, ok := s.notes[noteID]
	if !ok || n.UserID != ownerID {
		return nil, apperr.NotFound("Note not found")
	}
	c := cloneNote(n)
	return &c, nil
}

func (s *MemNoteStore) UpdateNote(_ context.Context, note *model.Note) (*model.Note, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	stored, ok := s.notes[note.ID]
	if !ok || stored.UserID != note.UserID {
		return nil, apperr.NotFound("Note not found")
	}
	stored.Title = note.Title
	stored.Content = note.Content
	stored.Tags = append([]string{}, note.Tags...)
	stored.Favorite = note.Favorite
	stored.UpdatedAt = note.UpdatedAt
	s.notes[note.ID] = stored
	c := cloneNote(stored)
	return &c, nil
}

func (s *MemNoteStore) DeleteNote(_ context.Context, ownerID, noteID primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	n, ok := s.notes[noteID]
	if !ok || n.UserID != ownerID {
		return apperr.NotFound("Note not found")
	}
	delete(s.notes, noteID)
	return nil
}

func (s *MemNoteStore) DeleteUserNotes(_ context.Context, ownerID primitive.ObjectID) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return 0, s.Err
	}
	var n int64
	for id, note := range s.notes {
		if note.UserID == ownerID {
			delete(s.notes, id)
			n++
		}
	}
	return n, nil
}

// Len reports how many notes are stored across all owners.
func (s *MemNoteStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.notes)
}

func cloneNote(n model.Note) model.Note {
	n.Tags = append([]string{}, n.Tags...)
	return n
}

type MemBookmarkStore struct {
	mu        sync.Mutex
	bookmarks map[primitive.ObjectID]model.Bookmark
	Err       error
}

func NewMemBookmarkStore() *MemBookmarkStore {
	return &MemBookmarkStore{bookmarks: map[primitive.ObjectID]model.Bookmark{}}
}

func (s *MemBookmarkStore) CreateBookmark(_ context.Context, bookmark *model.Bookmark) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	if bookmark.ID.IsZero() {
		bookmark.ID = primitive.NewObjectID()
	}
	s.bookmarks[bookmark.ID] = cloneBookmark(*bookmark)
	return nil
}

func (s *MemBookmarkStore) FindBookmarks(_ context.Context, ownerID primitive.ObjectID, opts repository.ListOptions) ([]*model.Bookmark, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	out := make([]*model.Bookmark, 0)
	for _, b := range s.bookmarks {
		if b.UserID != ownerID || !matches(opts, b.Tags, b.Favorite, b.Title, b.Description, b.URL, strings.Join(b.Tags, " ")) {
			continue
		}
		c := cloneBookmark(b)
		out = append(out, &c)
	}
	sort.Slice(out, newestFirst(
		func(i int) time.Time { return out[i].CreatedAt },
		func(i int) primitive.ObjectID { return out[i].ID }))
	return out, nil
}

func (s *MemBookmarkStore) GetBookmark(_ context.Context, ownerID, bookmarkID primitive.ObjectID) (*model.Bookmark, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	b, ok := s.bookmarks[bookmarkID]
	if !ok || b.UserID != ownerID {
		return nil, apperr.NotFound("Bookmark not found")
	}
	c := cloneBookmark(b)
	return &c, nil
}

func (s *MemBookmarkStore) UpdateBookmark(_ context.Context, bookmark *model.Bookmark) (*model.Bookmark, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	stored, ok := s.bookmarks[bookmark.ID]
	if !ok || stored.UserID != bookmark.UserID {
		return nil, apperr.NotFound("Bookmark not found")
	}
	stored.URL = bookmark.URL
	stored.Title = bookmark.Title
	stored.Description = bookmark.Description
	stored.Tags = append([]string{}, bookmark.Tags...)
	stored.Favorite = bookmark.Favorite
	stored.UpdatedAt = bookmark.UpdatedAt
	s.bookmarks[bookmark.ID] = stored
	c := cloneBookmark(stored)
	return &c, nil
}

func (s *MemBookmarkStore) DeleteBookmark(_ context.Context, ownerID, bookmarkID primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	b, ok := s.bookmarks[bookmarkID]
	if !ok || b.UserID != ownerID {
		return apperr.NotFound("Bookmark not found")
	}
	delete(s.bookmarks, bookmarkID)
	return nil
}

func (s *MemBookmarkStore) DeleteUserBookmarks(_ context.Context, ownerID primitive.ObjectID) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return 0, s.Err
	}
	var n int64
	for id, b := range s.bookmarks {
		if b.UserID == ownerID {
			delete(s.bookmarks, id)
			n++
		}
	}
	return n, nil
}

func (s *MemBookmarkStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.bookmarks)
}

func cloneBookmark(b model.Bookmark) model.Bookmark {
	b.Tags = append([]string{}, b.Tags...)
	return b
}

type MemUserStore struct {
	mu    sync.Mutex
	users map[primitive.ObjectID]model.User
	Err   error
}

func NewMemUserStore() *MemUserStore {
	return &MemUserStore{users: map[primitive.ObjectID]model.User{}}
}

func (s *MemUserStore) AddUser(_ context.Context, user *model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	for _, u := range s.users {
		if u.Email == user.Email {
			return apperr.Conflict("User already exists", nil)
		}
	}
	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	s.users[user.ID] = *user
	return nil
}

func (s *MemUserStore) FindUserByEmail(_ context.Context, email string) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	for _, u := range s.users {
		if u.Email == email {
			c := u
			return &c, nil
		}
	}
	return nil, nil
}

func (s *MemUserStore) FindUser(_ context.Context, userID primitive.ObjectID) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	u, ok := s.users[userID]
	if !ok {
		return nil, apperr.NotFound("User not found")
	}
	return &u, nil
}

func (s *MemUserStore) RecordLogin(_ context.Context, userID primitive.ObjectID, login model.LoginInfo) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	u, ok := s.users[userID]
	if !ok {
		return apperr.NotFound("User not found")
	}
	u.LastLogin = &login
	s.users[userID] = u
	return nil
}

func (s *MemUserStore) DeleteUserByID(_ context.Context, userID primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	if _, ok := s.users[userID]; !ok {
		return apperr.NotFound("User not found")
	}
	delete(s.users, userID)
	return nil
}

func (s *MemUserStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.users)
}
