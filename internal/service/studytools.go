package service

import (
	"context"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Rogue-Bear-Innovations/flashcards/internal/db"
)

var (
	ErrValidation        = errors.New("missing required fields")
	ErrToolNotFound      = errors.New("study tool not found")
	ErrFlashcardNotFound = errors.New("flashcard not found")
)

type StudyTools struct {
	db     *gorm.DB
	logger *zap.SugaredLogger
}

func NewStudyTools(db *gorm.DB, l *zap.SugaredLogger) *StudyTools {
	return &StudyTools{
		db:     db,
		logger: l,
	}
}

// List returns every study tool with its flashcards, both ordered by id.
func (s *StudyTools) List(ctx context.Context) ([]db.StudyTool, error) {
	tools := make([]db.StudyTool, 0)
	res := s.db.WithContext(ctx).
		Preload("Flashcards", func(tx *gorm.DB) *gorm.DB {
			return tx.Order("flashcards.id")
		}).
		Order("id").
		Find(&tools)
	if res.Error != nil {
		return nil, errors.Wrap(res.Error, "find study tools")
	}
	return tools, nil
}

func (s *StudyTools) CreateTool(ctx context.Context, name string) (*db.StudyTool, error) {
	if strings.TrimSpace(name) == "" {
		return nil, ErrValidation
	}

	model := db.StudyTool{
		Name:       name,
		Flashcards: []db.Flashcard{},
	}
	res := s.db.WithContext(ctx).Create(&model)
	if res.Error != nil {
		return nil, errors.Wrap(res.Error, "create study tool")
	}

	s.logger.Debugw("study tool created", "id", model.ID)
	return &model, nil
}

func (s *StudyTools) CreateFlashcard(ctx context.Context, toolID uint64, question, answer string) (*db.Flashcard, error) {
	if toolID == 0 || strings.TrimSpace(question) == "" || strings.TrimSpace(answer) == "" {
		return nil, ErrValidation
	}

	model := db.Flashcard{
		Question: question,
		Answer:   answer,
		ToolID:   toolID,
	}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var tool db.StudyTool
		if err := tx.Select("id").First(&tool, toolID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrToolNotFound
			}
			return errors.Wrap(err, "find study tool")
		}
		if err := tx.Create(&model).Error; err != nil {
			return errors.Wrap(err, "create flashcard")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Debugw("flashcard created", "id", model.ID, "tool_id", toolID)
	return &model, nil
}

func (s *StudyTools) DeleteFlashcard(ctx context.Context, id uint64) error {
	res := s.db.WithContext(ctx).Delete(&db.Flashcard{}, id)
	if res.Error != nil {
		return errors.Wrap(res.Error, "delete flashcard")
	}
	if res.RowsAffected == 0 {
		return ErrFlashcardNotFound
	}
	return nil
}

// DeleteTool removes the tool's flashcards before the tool itself.
func (s *StudyTools) DeleteTool(ctx context.Context, id uint64) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.exec(tx, squirrel.Delete("flashcards").Where(squirrel.Eq{"tool_id": id})); err != nil {
			return errors.Wrap(err, "delete flashcards of study tool")
		}
		res := tx.Delete(&db.StudyTool{}, id)
		if res.Error != nil {
			return errors.Wrap(res.Error, "delete study tool")
		}
		if res.RowsAffected == 0 {
			return ErrToolNotFound
		}
		return nil
	})
}

// Reset wipes all flashcards and then all study tools.
func (s *StudyTools) Reset(ctx context.Context) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.exec(tx, squirrel.Delete("flashcards")); err != nil {
			return errors.Wrap(err, "delete flashcards")
		}
		if err := s.exec(tx, squirrel.Delete("study_tools")); err != nil {
			return errors.Wrap(err, "delete study tools")
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.logger.Info("database reset")
	return nil
}

func (s *StudyTools) exec(tx *gorm.DB, q squirrel.DeleteBuilder) error {
	sql, args, err := q.ToSql()
	if err != nil {
		return errors.Wrap(err, "build sql")
	}
	return tx.Exec(sql, args...).Error
}
