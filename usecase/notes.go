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
)

type NotesService struct {
	NotesRepo NoteStore
	Now       func() time.Time
}

func NewNotesService(repo NoteStore) *NotesService {
	return &NotesService{NotesRepo: repo, Now: now}
}

func (s *NotesService) ListNotes(ctx context.Context, ownerID primitive.ObjectID, opts repository.ListOptions) ([]*model.Note, error) {
	notes, err := s.NotesRepo.FindNotes(ctx, ownerID, opts)
	if err != nil {
		return nil, apperr.Wrap(err, "Failed to fetch notes")
	}
	return notes, nil
}

func (s *NotesService) GetNote(ctx context.Context, ownerID primitive.ObjectID, id string) (*model.Note, error) {
	noteID, err := repository.ParseID(id, "note")
	if err != nil {
		return nil, err
	}
	return s.NotesRepo.GetNote(ctx, ownerID, noteID)
}

func (s *NotesService) CreateNote(ctx context.Context, ownerID primitive.ObjectID, req *dto.NoteRequest) (*model.Note, error) {
	if result := utils.ValidateNote(req); !result.IsValid {
		return nil, apperr.Validation("Validation failed", result.Errors)
	}

	at := s.Now()
	note := &model.Note{
		UserID:    ownerID,
		Title:     strings.TrimSpace(*req.Title),
		Content:   strings.TrimSpace(*req.Content),
		Tags:      repository.NormalizeTags(dto.TagsValue(req.Tags)),
		Favorite:  dto.BoolValue(req.Favorite),
		CreatedAt: at,
		UpdatedAt: at,
	}

	if err := s.NotesRepo.CreateNote(ctx, note); err != nil {
		return nil, err
	}
	utils.TrackResourceOperation("note", "create")
	return note, nil
}

// UpdateNote applies the fields present in req to the stored note.
func (s *NotesService) UpdateNote(ctx context.Context, ownerID primitive.ObjectID, id string, req *dto.NoteRequest) (*model.Note, error) {
	noteID, err := repository.ParseID(id, "note")
	if err != nil {
		return nil, err
	}

	note, err := s.NotesRepo.GetNote(ctx, ownerID, noteID)
	if err != nil {
		return nil, err
	}

	if result := utils.ValidateNoteUpdate(req); !result.IsValid {
		return nil, apperr.Validation("Validation failed", result.Errors)
	}

	if req.Title != nil {
		note.Title = strings.TrimSpace(*req.Title)
	}
	if req.Content != nil {
		note.Content = strings.TrimSpace(*req.Content)
	}
	if req.Tags != nil {
		note.Tags = repository.NormalizeTags(*req.Tags)
	}
	if req.Favorite != nil {
		note.Favorite = *req.Favorite
	}
	note.UpdatedAt = s.Now()

	updated, err := s.NotesRepo.UpdateNote(ctx, note)
	if err != nil {
		return nil, err
	}
	utils.TrackResourceOperation("note", "update")
	return updated, nil
}

func (s *NotesService) DeleteNote(ctx context.Context, ownerID primitive.ObjectID, id string) error {
	noteID, err := repository.ParseID(id, "note")
	if err != nil {
		return err
	}
	if err := s.NotesRepo.DeleteNote(ctx, ownerID, noteID); err != nil {
		return err
	}
	utils.TrackResourceOperation("note", "delete")
	return nil
}
