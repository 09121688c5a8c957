package ui

import (
	"net/url"
	"strconv"
	"strings"
	"sync"

	"github.com/Rogue-Bear-Innovations/flashcards/internal/models"
)

// Selection is the selected study tool carried by the selectedTool query
// parameter. The deck preview writes it, the main view follows it.
type Selection struct {
	mu   sync.Mutex
	id   uint64
	subs map[int]func(id uint64, ok bool)
	next int
}

func NewSelection() *Selection {
	return &Selection{subs: map[int]func(uint64, bool){}}
}

func SelectionFromQuery(q url.Values) *Selection {
	s := NewSelection()
	s.id, _ = ParseSelected(q.Get(models.ParamSelectedTool))
	return s
}

// ParseSelected treats absent, malformed and zero ids as no selection.
func ParseSelected(raw string) (uint64, bool) {
	id, err := strconv.ParseUint(strings.TrimSpace(raw), 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return id, true
}

func (s *Selection) Get() (uint64, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.id, s.id != 0
}

func (s *Selection) Set(id uint64) {
	s.mu.Lock()
	if s.id == id {
		s.mu.Unlock()
		return
	}
	s.id = id
	subs := make([]func(uint64, bool), 0, len(s.subs))
	for _, fn := range s.subs {
		subs = append(subs, fn)
	}
	s.mu.Unlock()

	for _, fn := range subs {
		fn(id, id != 0)
	}
}

func (s *Selection) Clear() {
	s.Set(0)
}

// Subscribe registers fn for every change and returns its cancel func.
func (s *Selection) Subscribe(fn func(id uint64, ok bool)) func() {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := s.next
	s.next++
	s.subs[key] = fn

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.subs, key)
	}
}

func (s *Selection) URL() string {
	id, _ := s.Get()
	return URLFor(id)
}

// URLFor is the page address showing the given study tool, or home for 0.
func URLFor(id uint64) string {
	return URLWithFlips(id, nil)
}

// URLWithFlips is URLFor with the ids of the cards showing their answer.
// Home ignores flips.
func URLWithFlips(id uint64, flipped []uint64) string {
	if id == 0 {
		return "/"
	}
	q := url.Values{}
	q.Set(models.ParamSelectedTool, strconv.FormatUint(id, 10))
	for _, cardID := range flipped {
		q.Add(models.ParamFlipped, strconv.FormatUint(cardID, 10))
	}
	return "/?" + q.Encode()
}

// ParseFlipped keeps the valid card ids of a flipped list.
func ParseFlipped(raw []string) []uint64 {
	ids := make([]uint64, 0, len(raw))
	for _, r := range raw {
		if id, ok := ParseSelected(r); ok {
			ids = append(ids, id)
		}
	}
	return ids
}
