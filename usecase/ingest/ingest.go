package ingest

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/planday/backend/domain"
	"github.com/planday/backend/repository"
	"github.com/planday/backend/usecase"
)

// Result is the outcome of one text capture: the stored note and the
// tasks extracted from it.
type Result struct {
	Note  *domain.Note  `json:"note"`
	Tasks []domain.Task `json:"tasks"`
}

type UseCase struct {
	notes     repository.NoteRepository
	tasks     repository.TaskRepository
	extractor usecase.TaskExtractor
	logger    *zap.Logger
}

func New(notes repository.NoteRepository, tasks repository.TaskRepository, extractor usecase.TaskExtractor, logger *zap.Logger) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		notes:     notes,
		tasks:     tasks,
		extractor: extractor,
		logger:    logger,
	}
}

// IngestText stores the raw capture as a note and creates one task per
// extracted draft. Extraction is best-effort: when the extractor is
// unreachable the note is still persisted, just without tasks.
func (uc *UseCase) IngestText(ctx context.Context, userID, title, content string) (*Result, error) {
	if strings.TrimSpace(content) == "" {
		return nil, domain.NewError(domain.ErrCodeInvalid, "content is required")
	}

	var drafts []usecase.TaskDraft
	if uc.extractor != nil {
		extracted, err := uc.extractor.Extract(ctx, content)
		if err != nil {
			uc.logger.Warn("task extraction failed, storing note without tasks",
				zap.String("user_id", userID), zap.Error(err))
		} else {
			drafts = extracted
		}
	}

	created := make([]domain.Task, 0, len(drafts))
	taskIDs := make([]string, 0, len(drafts))
	for _, draft := range drafts {
		task := &domain.Task{
			UserID:            userID,
			Title:             draft.Title,
			Priority:          draft.Priority,
			Status:            domain.StatusPending,
			EstimatedDuration: draft.EstimatedDuration,
		}
		stored, err := uc.tasks.Create(ctx, task)
		if err != nil {
			uc.logger.Warn("extracted task not persisted",
				zap.String("title", draft.Title), zap.Error(err))
			continue
		}
		created = append(created, *stored)
		taskIDs = append(taskIDs, stored.ID)
	}

	note := &domain.Note{
		UserID:           userID,
		Title:            title,
		Content:          content,
		SourceType:       "text",
		ExtractedTaskIDs: taskIDs,
	}
	stored, err := uc.notes.Create(ctx, note)
	if err != nil {
		return nil, err
	}

	uc.logger.Info("text ingested",
		zap.String("user_id", userID),
		zap.String("note_id", stored.ID),
		zap.Int("extracted_tasks", len(created)))

	return &Result{Note: stored, Tasks: created}, nil
}

func (uc *UseCase) ListNotes(ctx context.Context, filter repository.NoteFilter) ([]domain.Note, error) {
	return uc.notes.List(ctx, filter)
}

func (uc *UseCase) GetNote(ctx context.Context, userID, id string) (*domain.Note, error) {
	note, err := uc.notes.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if note.UserID != userID {
		return nil, domain.ErrNoteNotFound
	}
	return note, nil
}

func (uc *UseCase) DeleteNote(ctx context.Context, userID, id string) error {
	if _, err := uc.GetNote(ctx, userID, id); err != nil {
		return err
	}
	return uc.notes.Delete(ctx, id)
}
