package usecase

import (
	"context"
	"strings"
	"time"

	"notemark/apperr"
	"notemark/dto"
	"notemark/model"
	"notemark/repository"
	"notemark/utils"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type BookmarksService struct {
	BookmarksRepo BookmarkStore
	Metadata      MetadataSource
	Logger        *zap.Logger
	Now           func() time.Time
}

func NewBookmarksService(repo BookmarkStore, metadata MetadataSource, logger *zap.Logger) *BookmarksService {
	return &BookmarksService{BookmarksRepo: repo, Metadata: metadata, Logger: logger, Now: now}
}

func (s *BookmarksService) ListBookmarks(ctx context.Context, ownerID primitive.ObjectID, opts repository.ListOptions) ([]*model.Bookmark, error) {
	bookmarks, err := s.BookmarksRepo.FindBookmarks(ctx, ownerID, opts)
	if err != nil {
		return nil, apperr.Wrap(err, "Failed to fetch bookmarks")
	}
	return bookmarks, nil
}

func (s *BookmarksService) GetBookmark(ctx context.Context, ownerID primitive.ObjectID, id string) (*model.Bookmark, error) {
	bookmarkID, err := repository.ParseID(id, "bookmark")
	if err != nil {
		return nil, err
	}
	return s.BookmarksRepo.GetBookmark(ctx, ownerID, bookmarkID)
}

// CreateBookmark stores a new bookmark. Without a title the page is scraped and, when
// that yields a title, its title and description are used.
func (s *BookmarksService) CreateBookmark(ctx context.Context, ownerID primitive.ObjectID, req *dto.BookmarkRequest) (*model.Bookmark, error) {
	if result := utils.ValidateBookmark(req); !result.IsValid {
		return nil, apperr.Validation("Validation failed", result.Errors)
	}

	bookmark := &model.Bookmark{
		UserID:      ownerID,
		URL:         strings.TrimSpace(*req.URL),
		Title:       strings.TrimSpace(dto.StringValue(req.Title)),
		Description: strings.TrimSpace(dto.StringValue(req.Description)),
		Tags:        repository.NormalizeTags(dto.TagsValue(req.Tags)),
		Favorite:    dto.BoolValue(req.Favorite),
	}

	if bookmark.Title == "" && s.Metadata != nil {
		meta := s.Metadata.Fetch(ctx, bookmark.URL)
		if meta.Success && meta.Title != "" {
			bookmark.Title = meta.Title
			if meta.Description != "" {
				bookmark.Description = meta.Description
			}
			bookmark.MetadataFetched = true
		} else {
			s.Logger.Debug("No metadata for bookmark", zap.String("url", bookmark.URL))
		}
	}

	at := s.Now()
	bookmark.CreatedAt = at
	bookmark.UpdatedAt = at

	if err := s.BookmarksRepo.CreateBookmark(ctx, bookmark); err != nil {
		return nil, err
	}
	utils.TrackResourceOperation("bookmark", "create")
	return bookmark, nil
}

// UpdateBookmark applies the fields present in req. Metadata is never fetched here.
func (s *BookmarksService) UpdateBookmark(ctx context.Context, ownerID primitive.ObjectID, id string, req *dto.BookmarkRequest) (*model.Bookmark, error) {
	bookmarkID, err := repository.ParseID(id, "bookmark")
	if err != nil {
		return nil, err
	}

	bookmark, err := s.BookmarksRepo.GetBookmark(ctx, ownerID, bookmarkID)
	if err != nil {
		return nil, err
	}

	if result := utils.ValidateBookmarkUpdate(req); !result.IsValid {
		return nil, apperr.Validation("Validation failed", result.Errors)
	}

	if req.URL != nil {
		bookmark.URL = strings.TrimSpace(*req.URL)
	}
	if req.Title != nil {
		bookmark.Title = strings.TrimSpace(*req.Title)
	}
	if req.Description != nil {
		bookmark.Description = strings.TrimSpace(*req.Description)
	}
	if req.Tags != nil {
		bookmark.Tags = repository.NormalizeTags(*req.Tags)
	}
	if req.Favorite != nil {
		bookmark.Favorite = *req.Favorite
	}
	bookmark.UpdatedAt = s.Now()

	updated, err := s.BookmarksRepo.UpdateBookmark(ctx, bookmark)
	if err != nil {
		return nil, err
	}
	utils.TrackResourceOperation("bookmark", "update")
	return updated, nil
}

func (s *BookmarksService) DeleteBookmark(ctx context.Context, ownerID primitive.ObjectID, id string) error {
	bookmarkID, err := repository.ParseID(id, "bookmark")
	if err != nil {
		return err
	}
	if err := s.BookmarksRepo.DeleteBookmark(ctx, ownerID, bookmarkID); err != nil {
		return err
	}
	utils.TrackResourceOperation("bookmark", "delete")
	return nil
}
