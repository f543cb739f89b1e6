package handler

import (
	"notemark/dto"
	"notemark/middleware"
	"notemark/usecase"
	"notemark/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type BookmarksHandler struct {
	Bookmarks *usecase.BookmarksService
	Logger    *zap.Logger
}

// ListBookmarks handles GET /api/bookmarks?q=&tags=&favorite=.
func (h *BookmarksHandler) ListBookmarks(c *gin.Context) {
	userID, _ := middleware.UserID(c)

	opts, err := listOptions(c)
	if err != nil {
		respondError(c, h.Logger, err, "Failed to fetch bookmarks")
		return
	}

	bookmarks, err := h.Bookmarks.ListBookmarks(c.Request.Context(), userID, opts)
	if err != nil {
		respondError(c, h.Logger, err, "Failed to fetch bookmarks")
		return
	}

	utils.List(c, bookmarks, len(bookmarks))
}

func (h *BookmarksHandler) GetBookmark(c *gin.Context) {
	userID, _ := middleware.UserID(c)

	bookmark, err := h.Bookmarks.GetBookmark(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		respondError(c, h.Logger, err, "Failed to fetch bookmark")
		return
	}

	utils.Success(c, bookmark)
}

func (h *BookmarksHandler) CreateBookmark(c *gin.Context) {
	userID, _ := middleware.UserID(c)

	var req dto.BookmarkRequest
	if err := bindJSON(c, &req); err != nil {
		respondError(c, h.Logger, err, "Failed to create bookmark")
		return
	}

	bookmark, err := h.Bookmarks.CreateBookmark(c.Request.Context(), userID, &req)
	if err != nil {
		respondError(c, h.Logger, err, "Failed to create bookmark")
		return
	}

	utils.Created(c, "Bookmark created successfully", bookmark)
}

func (h *BookmarksHandler) UpdateBookmark(c *gin.Context) {
	userID, _ := middleware.UserID(c)

	var req dto.BookmarkRequest
	if err := bindJSON(c, &req); err != nil {
		respondError(c, h.Logger, err, "Failed to update bookmark")
		return
	}

	bookmark, err := h.Bookmarks.UpdateBookmark(c.Request.Context(), userID, c.Param("id"), &req)
	if err != nil {
		respondError(c, h.Logger, err, "Failed to update bookmark")
		return
	}

	utils.SuccessMessage(c, "Bookmark updated successfully", bookmark)
}

func (h *BookmarksHandler) DeleteBookmark(c *gin.Context) {
	userID, _ := middleware.UserID(c)

	if err := h.Bookmarks.DeleteBookmark(c.Request.Context(), userID, c.Param("id")); err != nil {
		respondError(c, h.Logger, err, "Failed to delete bookmark")
		return
	}

	utils.SuccessMessage(c, "Bookmark deleted successfully", nil)
}
