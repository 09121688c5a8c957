package ui

import (
	"context"
	"sync"

	"github.com/pkg/errors"

	"github.com/Rogue-Bear-Innovations/flashcards/internal/models"
)

var errUnavailable = errors.New("api unavailable")

// fakeAPI keeps study tools in memory and counts list calls.
type fakeAPI struct {
	mu     sync.Mutex
	tools  []models.StudyTool
	nextID uint64
	lists  int
	fail   map[string]bool
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{nextID: 1, fail: map[string]bool{}}
}

func (f *fakeAPI) failing(op string) error {
	if f.fail[op] {
		return errUnavailable
	}
	return nil
}

func (f *fakeAPI) ListTools(ctx context.Context) ([]models.StudyTool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lists++
	if err := f.failing("list"); err != nil {
		return nil, err
	}
	out := make([]models.StudyTool, len(f.tools))
	for i, t := range f.tools {
		out[i] = t
		out[i].Flashcards = append([]models.Flashcard{}, t.Flashcards...)
	}
	return out, nil
}

func (f *fakeAPI) CreateTool(ctx context.Context, name string) (*models.StudyTool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.failing("create"); err != nil {
		return nil, err
	}
	tool := models.StudyTool{ID: f.nextID, Name: name, Flashcards: []models.Flashcard{}}
	f.nextID++
	f.tools = append(f.tools, tool)
	return &tool, nil
}

func (f *fakeAPI) CreateFlashcard(ctx context.Context, toolID uint64, question, answer string) (*models.Flashcard, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.failing("create"); err != nil {
		return nil, err
	}
	for i := range f.tools {
		if f.tools[i].ID == toolID {
			card := models.Flashcard{ID: f.nextID, Question: question, Answer: answer, ToolID: toolID}
			f.nextID++
			f.tools[i].Flashcards = append(f.tools[i].Flashcards, card)
			return &card, nil
		}
	}
	return nil, errors.New("unknown tool")
}

func (f *fakeAPI) DeleteFlashcard(ctx context.Context, id uint64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.failing("delete"); err != nil {
		return err
	}
	for i := range f.tools {
		for j, c := range f.tools[i].Flashcards {
			if c.ID == id {
				f.tools[i].Flashcards = append(f.tools[i].Flashcards[:j], f.tools[i].Flashcards[j+1:]...)
				return nil
			}
		}
	}
	return errors.New("flashcard not found")
}

func (f *fakeAPI) DeleteTool(ctx context.Context, id uint64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.failing("delete"); err != nil {
		return err
	}
	for i, t := range f.tools {
		if t.ID == id {
			f.tools = append(f.tools[:i], f.tools[i+1:]...)
			return nil
		}
	}
	return errors.New("study tool not found")
}

func (f *fakeAPI) Reset(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.failing("reset"); err != nil {
		return err
	}
	f.tools = nil
	return nil
}

func (f *fakeAPI) listCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.lists
}

func (f *fakeAPI) setFail(op string, v bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fail[op] = v
}

var (
	yes = ConfirmFunc(func(string) bool { return true })
	no  = ConfirmFunc(func(string) bool { return false })
)

type alerts struct {
	mu  sync.Mutex
	got []Notice
}

func (a *alerts) Alert(n Notice) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.got = append(a.got, n)
}
