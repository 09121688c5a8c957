package ui

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/Rogue-Bear-Innovations/flashcards/internal/models"
)

// PreviewHideDelay is how long the dropdown stays open after the pointer
// leaves. The page stylesheet applies it as the close transition delay;
// hovering or focusing the header again cancels a pending close.
const PreviewHideDelay = 180 * time.Millisecond

type DeckSummary struct {
	ID        uint64
	Name      string
	CardCount int
	URL       string
}

// DeckPreview is the header dropdown listing every study tool. Items link to
// the tool's page, which is how selecting one navigates.
type DeckPreview struct {
	api    API
	logger *zap.SugaredLogger

	mu      sync.Mutex
	tools   []models.StudyTool
	loading bool
}

func NewDeckPreview(api API, l *zap.SugaredLogger) *DeckPreview {
	return &DeckPreview{
		api:     api,
		logger:  l,
		loading: true,
	}
}

// Refresh re-fetches the tool list. On failure the list becomes empty.
func (p *DeckPreview) Refresh(ctx context.Context) {
	tools, err := p.api.ListTools(ctx)
	if err != nil {
		p.logger.Errorw("Failed to load tools for header preview", "error", err)
		tools = nil
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	p.tools = tools
	p.loading = false
}

func (p *DeckPreview) Loading() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.loading
}

func (p *DeckPreview) HideDelay() time.Duration {
	return PreviewHideDelay
}

func (p *DeckPreview) Items() []DeckSummary {
	p.mu.Lock()
	defer p.mu.Unlock()
	return summarize(p.tools)
}

// Reset wipes all data and calls reload on success.
func (p *DeckPreview) Reset(ctx context.Context, confirm Confirmer, alert Alerter, reload func()) error {
	if !confirm.Confirm(PromptReset) {
		return ErrCancelled
	}

	if err := p.api.Reset(ctx); err != nil {
		p.logger.Errorw("Reset failed", "error", err)
		alert.Alert(NoticeResetFailed)
		return err
	}

	reload()
	return nil
}

func summarize(tools []models.StudyTool) []DeckSummary {
	out := make([]DeckSummary, len(tools))
	for i, tool := range tools {
		out[i] = DeckSummary{
			ID:        tool.ID,
			Name:      tool.Name,
			CardCount: len(tool.Flashcards),
			URL:       URLFor(tool.ID),
		}
	}
	return out
}
