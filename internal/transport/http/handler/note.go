package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/neeraj476/notes-app/internal/domain"
	"github.com/neeraj476/notes-app/internal/repository"
)

// noteUsecaser is the subset of NoteUsecase the handler needs.
type noteUsecaser interface {
	CreateNote(ctx context.Context, ownerID, title, content string) (*domain.Note, error)
	ListNotes(ctx context.Context, ownerID string) ([]*domain.Note, error)
	SearchNotes(ctx context.Context, ownerID, term string) ([]*domain.Note, error)
	GetNote(ctx context.Context, noteID, requesterID string) (*domain.Note, error)
	UpdateNote(ctx context.Context, noteID, requesterID string, patch repository.NotePatch) (*domain.Note, error)
	DeleteNote(ctx context.Context, noteID, requesterID string) (*domain.User, error)
}

type NoteHandler struct {
	noteUsecase noteUsecaser
	logger      *slog.Logger
}

func NewNoteHandler(noteUsecase noteUsecaser, logger *slog.Logger) *NoteHandler {
	return &NoteHandler{
		noteUsecase: noteUsecase,
		logger:      logger.With("component", "note_handler"),
	}
}

type createNoteRequest struct {
	Title   string `json:"title" binding:"required"`
	Content string `json:"content"`
}

type updateStylesRequest struct {
	Color     *string           `json:"color"`
	FontSize  *int              `json:"fontSize"`
	FontStyle *domain.FontStyle `json:"fontStyle" binding:"omitempty,oneof=normal italic bold semibold"`
}

type updateNoteRequest struct {
	Title   *string              `json:"title"`
	Content *string              `json:"content"`
	Styles  *updateStylesRequest `json:"styles"`
}

func (r updateNoteRequest) patch() repository.NotePatch {
	p := repository.NotePatch{Title: r.Title, Content: r.Content}
	if r.Styles != nil {
		p.Color = r.Styles.Color
		p.FontSize = r.Styles.FontSize
		p.FontStyle = r.Styles.FontStyle
	}
	return p
}

// POST /api/create-notes
func (h *NoteHandler) Create(c *gin.Context) {
	var req createNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	userID := c.GetString("userID")
	note, err := h.noteUsecase.CreateNote(c.Request.Context(), userID, req.Title, req.Content)
	if err != nil {
		h.logger.ErrorContext(c.Request.Context(), "create note", "user_id", userID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": errInternalServer})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Note created successfully",
		"note":    note,
	})
}

// GET /api/get-notes
// Zero notes is a 404 the SPA treats as an empty state, not a failure.
func (h *NoteHandler) List(c *gin.Context) {
	userID := c.GetString("userID")

	notes, err := h.noteUsecase.ListNotes(c.Request.Context(), userID)
	if err != nil {
		h.logger.ErrorContext(c.Request.Context(), "list notes", "user_id", userID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": errInternalServer})
		return
	}
	if len(notes) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"message": errNoNotes})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Notes retrieved successfully.",
		"notes":   notes,
	})
}

// GET /api/notes/search?searchTerm=
func (h *NoteHandler) Search(c *gin.Context) {
	term := c.Query("searchTerm")
	if term == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": errMissingTerm})
		return
	}

	userID := c.GetString("userID")
	notes, err := h.noteUsecase.SearchNotes(c.Request.Context(), userID, term)
	if err != nil {
		h.logger.ErrorContext(c.Request.Context(), "search notes", "user_id", userID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": errInternalServer})
		return
	}
	if notes == nil {
		notes = []*domain.Note{}
	}

	c.JSON(http.StatusOK, gin.H{"notes": notes})
}

// GET /api/notes/:id
func (h *NoteHandler) GetByID(c *gin.Context) {
	noteID := c.Param("id")
	userID := c.GetString("userID")

	note, err := h.noteUsecase.GetNote(c.Request.Context(), noteID, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNoteNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": errNoteNotFound})
			return
		}
		h.logger.ErrorContext(c.Request.Context(), "get note", "note_id", noteID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": errInternalServer})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Note retrieved successfully.",
		"note":    note,
	})
}

// PATCH /api/notes/:id/style
func (h *NoteHandler) Update(c *gin.Context) {
	var req updateNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	patch := req.patch()
	if patch.Empty() {
		c.JSON(http.StatusBadRequest, gin.H{"message": errEmptyPatch})
		return
	}

	noteID := c.Param("id")
	userID := c.GetString("userID")

	note, err := h.noteUsecase.UpdateNote(c.Request.Context(), noteID, userID, patch)
	if err != nil {
		if errors.Is(err, domain.ErrNoteNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": errNoteNotUpdated})
			return
		}
		h.logger.ErrorContext(c.Request.Context(), "update note", "note_id", noteID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": errInternalServer})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":     "Note updated successfully.",
		"updatedNote": note,
	})
}

// DELETE /api/notes/delete/:id
func (h *NoteHandler) Delete(c *gin.Context) {
	noteID := c.Param("id")
	userID := c.GetString("userID")

	user, err := h.noteUsecase.DeleteNote(c.Request.Context(), noteID, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNoteNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": errNoteNotDeleted})
			return
		}
		h.logger.ErrorContext(c.Request.Context(), "delete note", "note_id", noteID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": errInternalServer})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Note deleted successfully.",
		"user":    user,
	})
}
