package utils

import (
	"strings"
	"testing"

	"notemark/dto"

	"github.com/stretchr/testify/assert"
)

func ptr[T any](v T) *T { return &v }

func TestValidateNote(t *testing.T) {
	tests := []struct {
		name    string
		req     dto.NoteRequest
		wantErr map[string]string
	}{
		{
			name: "valid",
			req:  dto.NoteRequest{Title: ptr("Groceries"), Content: ptr("milk")},
		},
		{
			name:    "missing fields",
			req:     dto.NoteRequest{},
			wantErr: map[string]string{"title": "Title is required", "content": "Content is required"},
		},
		{
			name:    "whitespace only",
			req:     dto.NoteRequest{Title: ptr("   "), Content: ptr("\n\t")},
			wantErr: map[string]string{"title": "Title is required", "content": "Content is required"},
		},
		{
			name:    "title too long",
			req:     dto.NoteRequest{Title: ptr(strings.Repeat("a", MaxTitleLength+1)), Content: ptr("x")},
			wantErr: map[string]string{"title": "Title cannot exceed 200 characters"},
		},
		{
			name: "limit counts the trimmed title",
			req:  dto.NoteRequest{Title: ptr(strings.Repeat("a", MaxTitleLength-1) + "  "), Content: ptr("x")},
		},
		{
			name: "title at limit",
			req:  dto.NoteRequest{Title: ptr(strings.Repeat("a", MaxTitleLength)), Content: ptr("x")},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ValidateNote(&tt.req)
			if tt.wantErr == nil {
				assert.True(t, result.IsValid)
				assert.Empty(t, result.Errors)
				return
			}
			assert.False(t, result.IsValid)
			assert.Equal(t, tt.wantErr, result.Errors)
		})
	}
}

func TestValidateNoteUpdateChecksPresentFieldsOnly(t *testing.T) {
	result := ValidateNoteUpdate(&dto.NoteRequest{Favorite: ptr(true)})
	assert.True(t, result.IsValid)

	result = ValidateNoteUpdate(&dto.NoteRequest{Title: ptr("")})
	assert.False(t, result.IsValid)
	assert.Equal(t, map[string]string{"title": "Title is required"}, result.Errors)
}

func TestValidateBookmark(t *testing.T) {
	tests := []struct {
		name    string
		req     dto.BookmarkRequest
		wantErr map[string]string
	}{
		{
			name: "url only",
			req:  dto.BookmarkRequest{URL: ptr("https://go.dev/doc")},
		},
		{
			name:    "missing url",
			req:     dto.BookmarkRequest{Title: ptr("Go")},
			wantErr: map[string]string{"url": "URL is required"},
		},
		{
			name:    "malformed url",
			req:     dto.BookmarkRequest{URL: ptr("not a url")},
			wantErr: map[string]string{"url": "Invalid URL format"},
		},
		{
			name: "long title and description",
			req: dto.BookmarkRequest{
				URL:         ptr("https://go.dev"),
				Title:       ptr(strings.Repeat("t", MaxTitleLength+1)),
				Description: ptr(strings.Repeat("d", MaxDescriptionLength+1)),
			},
			wantErr: map[string]string{
				"title":       "Title cannot exceed 200 characters",
				"description": "Description cannot exceed 500 characters",
			},
		},
		{
			name: "padded description within limit",
			req:  dto.BookmarkRequest{URL: ptr("https://go.dev"), Description: ptr(" " + strings.Repeat("d", MaxDescriptionLength) + " ")},
		},
		{
			name: "empty title allowed",
			req:  dto.BookmarkRequest{URL: ptr("https://go.dev"), Title: ptr("")},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ValidateBookmark(&tt.req)
			if tt.wantErr == nil {
				assert.True(t, result.IsValid, result.Errors)
				return
			}
			assert.False(t, result.IsValid)
			assert.Equal(t, tt.wantErr, result.Errors)
		})
	}
}

func TestValidateBookmarkUpdate(t *testing.T) {
	assert.True(t, ValidateBookmarkUpdate(&dto.BookmarkRequest{Title: ptr("New")}).IsValid)

	result := ValidateBookmarkUpdate(&dto.BookmarkRequest{URL: ptr("  ")})
	assert.False(t, result.IsValid)
	assert.Equal(t, "URL is required", result.Errors["url"])
}

func TestValidateStruct(t *testing.T) {
	result := ValidateStruct(dto.SignupRequest{Name: "Ann", Email: "ann@example.com", Password: "secret1"})
	assert.True(t, result.IsValid)

	result = ValidateStruct(dto.SignupRequest{Email: "nope", Password: "123"})
	assert.False(t, result.IsValid)
	assert.Equal(t, map[string]string{
		"name":     "Name is required",
		"email":    "Email must be a valid email address",
		"password": "Password must be at least 6 characters",
	}, result.Errors)
}
