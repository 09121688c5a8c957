package ui

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/Rogue-Bear-Innovations/flashcards/internal/models"
)

type FlipCard struct {
	card      models.Flashcard
	api       API
	logger    *zap.SugaredLogger
	onDeleted func(ctx context.Context)

	mu       sync.Mutex
	flipped  bool
	deleting bool
}

func NewFlipCard(api API, card models.Flashcard, l *zap.SugaredLogger, onDeleted func(ctx context.Context)) *FlipCard {
	return &FlipCard{
		card:      card,
		api:       api,
		logger:    l,
		onDeleted: onDeleted,
	}
}

func (c *FlipCard) Card() models.Flashcard {
	return c.card
}

func (c *FlipCard) Toggle() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.flipped = !c.flipped
}

func (c *FlipCard) Flipped() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.flipped
}

func (c *FlipCard) Deleting() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.deleting
}

// Face is the text currently facing the user.
func (c *FlipCard) Face() string {
	if c.Flipped() {
		return c.card.Answer
	}
	return c.card.Question
}

// Delete removes the card; it never flips it. Only one delete per card is in
// flight at a time.
func (c *FlipCard) Delete(ctx context.Context, confirm Confirmer, alert Alerter) error {
	if !confirm.Confirm(PromptDeleteFlashcard) {
		return ErrCancelled
	}

	c.mu.Lock()
	if c.deleting {
		c.mu.Unlock()
		return ErrBusy
	}
	c.deleting = true
	c.mu.Unlock()

	defer func() {
		c.mu.Lock()
		c.deleting = false
		c.mu.Unlock()
	}()

	if err := c.api.DeleteFlashcard(ctx, c.card.ID); err != nil {
		c.logger.Errorw("Failed to delete flashcard", "error", err, "flashcard_id", c.card.ID)
		alert.Alert(NoticeDeleteFlashcardFailed)
		return err
	}

	if c.onDeleted != nil {
		c.onDeleted(ctx)
	}
	return nil
}
