// Package ui holds the per-instance state of the web UI components (main view,
// flip cards, deck preview) and renders them into page models. Components talk
// to the study tools API only through the API interface.
package ui

import (
	"context"

	"github.com/pkg/errors"

	"github.com/Rogue-Bear-Innovations/flashcards/internal/models"
)

var (
	ErrBlankInput  = errors.New("blank input")
	ErrNoSelection = errors.New("no study tool selected")
	ErrCancelled   = errors.New("cancelled by user")
	ErrBusy        = errors.New("operation already in progress")
)

const (
	PromptDeleteTool      = "Delete this study tool and all its flashcards?"
	PromptDeleteFlashcard = "Are you sure you want to delete this flashcard?"
	PromptReset           = "This will clear ALL study tools and flashcards. Continue?"
)

// API is the study tools endpoint as seen by the UI.
type API interface {
	ListTools(ctx context.Context) ([]models.StudyTool, error)
	CreateTool(ctx context.Context, name string) (*models.StudyTool, error)
	CreateFlashcard(ctx context.Context, toolID uint64, question, answer string) (*models.Flashcard, error)
	DeleteFlashcard(ctx context.Context, id uint64) error
	DeleteTool(ctx context.Context, id uint64) error
	Reset(ctx context.Context) error
}

// Confirmer answers a yes/no prompt before a destructive action.
type Confirmer interface {
	Confirm(prompt string) bool
}

type ConfirmFunc func(prompt string) bool

func (f ConfirmFunc) Confirm(prompt string) bool { return f(prompt) }

// Notice identifies a user-facing alert.
type Notice string

const (
	NoticeNone                  Notice = ""
	NoticeResetFailed           Notice = "reset-failed"
	NoticeDeleteToolFailed      Notice = "delete-tool-failed"
	NoticeDeleteFlashcardFailed Notice = "delete-flashcard-failed"
)

func (n Notice) Message() string {
	switch n {
	case NoticeResetFailed:
		return "Failed to reset database"
	case NoticeDeleteToolFailed:
		return "Failed to delete study tool"
	case NoticeDeleteFlashcardFailed:
		return "Failed to delete flashcard"
	}
	return ""
}

// ParseNotice maps a query value back to a known notice.
func ParseNotice(raw string) Notice {
	n := Notice(raw)
	if n.Message() == "" {
		return NoticeNone
	}
	return n
}

// Alerter shows a blocking alert to the user.
type Alerter interface {
	Alert(n Notice)
}

type AlertFunc func(n Notice)

func (f AlertFunc) Alert(n Notice) { f(n) }
