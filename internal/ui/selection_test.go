package ui

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseSelected(t *testing.T) {
	cases := map[string]struct {
		id uint64
		ok bool
	}{
		"":     {0, false},
		"0":    {0, false},
		"abc":  {0, false},
		"-3":   {0, false},
		"1.5":  {0, false},
		"7":    {7, true},
		" 12 ": {12, true},
	}
	for raw, want := range cases {
		id, ok := ParseSelected(raw)
		assert.Equal(t, want.id, id, raw)
		assert.Equal(t, want.ok, ok, raw)
	}
}

func TestSelectionFromQuery(t *testing.T) {
	s := SelectionFromQuery(url.Values{"selectedTool": {"4"}})
	id, ok := s.Get()
	assert.True(t, ok)
	assert.Equal(t, uint64(4), id)
	assert.Equal(t, "/?selectedTool=4", s.URL())

	s = SelectionFromQuery(url.Values{})
	_, ok = s.Get()
	assert.False(t, ok)
	assert.Equal(t, "/", s.URL())
}

func TestSelectionSubscribe(t *testing.T) {
	s := NewSelection()

	var got []uint64
	cancel := s.Subscribe(func(id uint64, ok bool) {
		assert.Equal(t, id != 0, ok)
		got = append(got, id)
	})

	s.Set(3)
	s.Set(3) // unchanged, no notification
	s.Clear()
	cancel()
	s.Set(9)

	assert.Equal(t, []uint64{3, 0}, got)
	id, _ := s.Get()
	assert.Equal(t, uint64(9), id)
}

func TestURLWithFlips(t *testing.T) {
	assert.Equal(t, "/?flipped=5&flipped=2&selectedTool=4", URLWithFlips(4, []uint64{5, 2}))
	assert.Equal(t, "/?selectedTool=4", URLWithFlips(4, nil))
	assert.Equal(t, "/", URLWithFlips(0, []uint64{5}))
}

func TestParseFlipped(t *testing.T) {
	assert.Equal(t, []uint64{3, 8}, ParseFlipped([]string{"3", "x", "0", " 8 "}))
	assert.Empty(t, ParseFlipped(nil))
}
