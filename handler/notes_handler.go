package handler

import (
	"notemark/dto"
	"notemark/middleware"
	"notemark/usecase"
	"notemark/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type NotesHandler struct {
	Notes  *usecase.NotesService
	Logger *zap.Logger
}

// ListNotes handles GET /api/notes?q=&tags=&favorite=.
func (h *NotesHandler) ListNotes(c *gin.Context) {
	userID, _ := middleware.UserID(c)

	opts, err := listOptions(c)
	if err != nil {
		respondError(c, h.Logger, err, "Failed to fetch notes")
		return
	}

	notes, err := h.Notes.ListNotes(c.Request.Context(), userID, opts)
	if err != nil {
		respondError(c, h.Logger, err, "Failed to fetch notes")
		return
	}

	utils.List(c, notes, len(notes))
}

func (h *NotesHandler) GetNote(c *gin.Context) {
	userID, _ := middleware.UserID(c)

	note, err := h.Notes.GetNote(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		respondError(c, h.Logger, err, "Failed to fetch note")
		return
	}

	utils.Success(c, note)
}

func (h *NotesHandler) CreateNote(c *gin.Context) {
	userID, _ := middleware.UserID(c)

	var req dto.NoteRequest
	if err := bindJSON(c, &req); err != nil {
		respondError(c, h.Logger, err, "Failed to create note")
		return
	}

	note, err := h.Notes.CreateNote(c.Request.Context(), userID, &req)
	if err != nil {
		respondError(c, h.Logger, err, "Failed to create note")
		return
	}

	utils.Created(c, "Note created successfully", note)
}

func (h *NotesHandler) UpdateNote(c *gin.Context) {
	userID, _ := middleware.UserID(c)

	var req dto.NoteRequest
	if err := bindJSON(c, &req); err != nil {
		respondError(c, h.Logger, err, "Failed to update note")
		return
	}

	note, err := h.Notes.UpdateNote(c.Request.Context(), userID, c.Param("id"), &req)
	if err != nil {
		respondError(c, h.Logger, err, "Failed to update note")
		return
	}

	utils.SuccessMessage(c, "Note updated successfully", note)
}

func (h *NotesHandler) DeleteNote(c *gin.Context) {
	userID, _ := middleware.UserID(c)

	if err := h.Notes.DeleteNote(c.Request.Context(), userID, c.Param("id")); err != nil {
		respondError(c, h.Logger, err, "Failed to delete note")
		return
	}

	utils.SuccessMessage(c, "Note deleted successfully", nil)
}
