package ui

import (
	"context"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/Rogue-Bear-Innovations/flashcards/internal/models"
)

// MainView lists study tools, or shows the selected one with its flashcards.
type MainView struct {
	api    API
	logger *zap.SugaredLogger
	unsub  func()
	// deferRefresh skips the re-fetch after CreateTool, AddFlashcard and
	// DeleteSelectedTool; the caller redirects to a fresh page instead
	deferRefresh bool

	mu       sync.Mutex
	tools    []models.StudyTool
	loading  bool
	selected uint64
	cards    map[uint64]*FlipCard
}

type ViewOption func(*MainView)

// WithDeferredRefresh is for callers that redirect after every mutation.
func WithDeferredRefresh() ViewOption {
	return func(v *MainView) {
		v.deferRefresh = true
	}
}

func NewMainView(api API, sel *Selection, l *zap.SugaredLogger, opts ...ViewOption) *MainView {
	v := &MainView{
		api:     api,
		logger:  l,
		loading: true,
		cards:   map[uint64]*FlipCard{},
	}
	for _, opt := range opts {
		opt(v)
	}
	v.selected, _ = sel.Get()
	v.unsub = sel.Subscribe(func(id uint64, ok bool) {
		v.mu.Lock()
		defer v.mu.Unlock()
		v.selected = id
	})
	return v
}

// Close detaches the view from its selection.
func (v *MainView) Close() {
	v.unsub()
}

// Refresh re-fetches the tool list. On failure the previous list is kept.
func (v *MainView) Refresh(ctx context.Context) {
	tools, err := v.api.ListTools(ctx)

	v.mu.Lock()
	defer v.mu.Unlock()
	v.loading = false
	if err != nil {
		v.logger.Errorw("Failed to fetch study tools", "error", err)
		return
	}

	v.tools = tools
	cards := make(map[uint64]*FlipCard)
	for _, tool := range tools {
		for _, card := range tool.Flashcards {
			if existing, ok := v.cards[card.ID]; ok {
				cards[card.ID] = existing
				continue
			}
			cards[card.ID] = NewFlipCard(v.api, card, v.logger, v.Refresh)
		}
	}
	v.cards = cards
}

func (v *MainView) Loading() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.loading
}

func (v *MainView) Tools() []models.StudyTool {
	v.mu.Lock()
	defer v.mu.Unlock()
	out := make([]models.StudyTool, len(v.tools))
	copy(out, v.tools)
	return out
}

// Select picks a study tool without touching the URL.
func (v *MainView) Select(id uint64) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.selected = id
}

func (v *MainView) SelectedID() (uint64, bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.selected, v.selected != 0
}

// SelectedTool is nil when nothing is selected or the selection is not in the list.
func (v *MainView) SelectedTool() *models.StudyTool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.selectedToolLocked()
}

func (v *MainView) selectedToolLocked() *models.StudyTool {
	if v.selected == 0 {
		return nil
	}
	for i := range v.tools {
		if v.tools[i].ID == v.selected {
			tool := v.tools[i]
			return &tool
		}
	}
	return nil
}

// Cards returns the flip cards of the selected tool in list order.
func (v *MainView) Cards() []*FlipCard {
	v.mu.Lock()
	defer v.mu.Unlock()

	tool := v.selectedToolLocked()
	if tool == nil {
		return nil
	}
	out := make([]*FlipCard, 0, len(tool.Flashcards))
	for _, card := range tool.Flashcards {
		if fc, ok := v.cards[card.ID]; ok {
			out = append(out, fc)
		}
	}
	return out
}

func (v *MainView) Card(id uint64) *FlipCard {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.cards[id]
}

// SetFlipped turns the given cards to their answer side. Unknown ids are ignored.
func (v *MainView) SetFlipped(ids ...uint64) {
	v.mu.Lock()
	cards := make([]*FlipCard, 0, len(ids))
	for _, id := range ids {
		if fc, ok := v.cards[id]; ok {
			cards = append(cards, fc)
		}
	}
	v.mu.Unlock()

	for _, fc := range cards {
		if !fc.Flipped() {
			fc.Toggle()
		}
	}
}

// URL addresses the selected tool with the current flip state of its cards.
func (v *MainView) URL() string {
	id, _ := v.SelectedID()
	var flipped []uint64
	for _, fc := range v.Cards() {
		if fc.Flipped() {
			flipped = append(flipped, fc.Card().ID)
		}
	}
	return URLWithFlips(id, flipped)
}

func (v *MainView) refreshAfterMutation(ctx context.Context) {
	if v.deferRefresh {
		return
	}
	v.Refresh(ctx)
}

func (v *MainView) CreateTool(ctx context.Context, name string) error {
	if strings.TrimSpace(name) == "" {
		return ErrBlankInput
	}

	if _, err := v.api.CreateTool(ctx, name); err != nil {
		v.logger.Errorw("Failed to add tool", "error", err)
		return err
	}

	v.refreshAfterMutation(ctx)
	return nil
}

// AddFlashcard adds a card to the selected tool.
func (v *MainView) AddFlashcard(ctx context.Context, question, answer string) error {
	toolID, ok := v.SelectedID()
	if !ok {
		return ErrNoSelection
	}
	if strings.TrimSpace(question) == "" || strings.TrimSpace(answer) == "" {
		return ErrBlankInput
	}

	if _, err := v.api.CreateFlashcard(ctx, toolID, question, answer); err != nil {
		v.logger.Errorw("Failed to add flashcard", "error", err, "tool_id", toolID)
		return err
	}

	v.refreshAfterMutation(ctx)
	return nil
}

// DeleteSelectedTool deletes the selected tool with its flashcards and returns
// to the tool list.
func (v *MainView) DeleteSelectedTool(ctx context.Context, confirm Confirmer, alert Alerter) error {
	toolID, ok := v.SelectedID()
	if !ok {
		return ErrNoSelection
	}
	if !confirm.Confirm(PromptDeleteTool) {
		return ErrCancelled
	}

	if err := v.api.DeleteTool(ctx, toolID); err != nil {
		v.logger.Errorw("Failed to delete study tool", "error", err, "tool_id", toolID)
		alert.Alert(NoticeDeleteToolFailed)
		return err
	}

	v.Select(0)
	v.refreshAfterMutation(ctx)
	return nil
}
