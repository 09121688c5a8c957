package service

import (
	"context"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Rogue-Bear-Innovations/flashcards/internal/db"
	"github.com/Rogue-Bear-Innovations/flashcards/internal/testutil"
)

func newService(t *testing.T) (*StudyTools, *gorm.DB) {
	gdb := testutil.NewDB(t)
	return NewStudyTools(gdb, zap.NewNop().Sugar()), gdb
}

func TestCreateTool(t *testing.T) {
	ctx := context.Background()
	s, _ := newService(t)

	t.Run("non-empty name", func(t *testing.T) {
		tool, err := s.CreateTool(ctx, "Biology")
		require.NoError(t, err)
		assert.NotZero(t, tool.ID)

		tools, err := s.List(ctx)
		require.NoError(t, err)
		require.Len(t, tools, 1)
		assert.Equal(t, "Biology", tools[0].Name)
		assert.Empty(t, tools[0].Flashcards)
	})

	t.Run("blank name", func(t *testing.T) {
		_, err := s.CreateTool(ctx, "   ")
		assert.True(t, errors.Is(err, ErrValidation))
	})
}

func TestCreateFlashcard(t *testing.T) {
	ctx := context.Background()
	s, gdb := newService(t)

	tool, err := s.CreateTool(ctx, "Chemistry")
	require.NoError(t, err)

	t.Run("valid", func(t *testing.T) {
		card, err := s.CreateFlashcard(ctx, tool.ID, "H2O?", "Water")
		require.NoError(t, err)
		assert.Equal(t, tool.ID, card.ToolID)

		tools, err := s.List(ctx)
		require.NoError(t, err)
		require.Len(t, tools[0].Flashcards, 1)
		assert.Equal(t, "H2O?", tools[0].Flashcards[0].Question)
		assert.Equal(t, "Water", tools[0].Flashcards[0].Answer)
	})

	t.Run("missing fields", func(t *testing.T) {
		before := testutil.Count(t, gdb, &db.Flashcard{})

		cases := []struct {
			toolID           uint64
			question, answer string
		}{
			{0, "q", "a"},
			{tool.ID, "", "a"},
			{tool.ID, "q", ""},
			{tool.ID, " ", "a"},
		}
		for _, c := range cases {
			_, err := s.CreateFlashcard(ctx, c.toolID, c.question, c.answer)
			assert.True(t, errors.Is(err, ErrValidation))
		}

		assert.Equal(t, before, testutil.Count(t, gdb, &db.Flashcard{}))
	})

	t.Run("unknown tool", func(t *testing.T) {
		before := testutil.Count(t, gdb, &db.Flashcard{})

		_, err := s.CreateFlashcard(ctx, tool.ID+100, "q", "a")
		assert.True(t, errors.Is(err, ErrToolNotFound))
		assert.Equal(t, before, testutil.Count(t, gdb, &db.Flashcard{}))
	})
}

func TestListOrdersFlashcardsByCreation(t *testing.T) {
	ctx := context.Background()
	s, _ := newService(t)

	first, err := s.CreateTool(ctx, "First")
	require.NoError(t, err)
	second, err := s.CreateTool(ctx, "Second")
	require.NoError(t, err)

	for _, q := range []string{"Q1", "Q2", "Q3"} {
		_, err := s.CreateFlashcard(ctx, second.ID, q, "A")
		require.NoError(t, err)
	}
	_, err = s.CreateFlashcard(ctx, first.ID, "Q0", "A")
	require.NoError(t, err)

	tools, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, tools, 2)
	assert.Equal(t, first.ID, tools[0].ID)
	assert.Len(t, tools[0].Flashcards, 1)

	questions := make([]string, 0)
	for _, c := range tools[1].Flashcards {
		assert.Equal(t, second.ID, c.ToolID)
		questions = append(questions, c.Question)
	}
	assert.Equal(t, []string{"Q1", "Q2", "Q3"}, questions)
}

func TestDeleteFlashcard(t *testing.T) {
	ctx := context.Background()
	s, _ := newService(t)

	tool, err := s.CreateTool(ctx, "Physics")
	require.NoError(t, err)
	keep, err := s.CreateFlashcard(ctx, tool.ID, "F=?", "ma")
	require.NoError(t, err)
	drop, err := s.CreateFlashcard(ctx, tool.ID, "E=?", "mc^2")
	require.NoError(t, err)

	require.NoError(t, s.DeleteFlashcard(ctx, drop.ID))

	tools, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, tools, 1)
	require.Len(t, tools[0].Flashcards, 1)
	assert.Equal(t, keep.ID, tools[0].Flashcards[0].ID)

	err = s.DeleteFlashcard(ctx, drop.ID)
	assert.True(t, errors.Is(err, ErrFlashcardNotFound))
}

func TestDeleteTool(t *testing.T) {
	ctx := context.Background()
	s, gdb := newService(t)

	doomed, err := s.CreateTool(ctx, "Doomed")
	require.NoError(t, err)
	other, err := s.CreateTool(ctx, "Other")
	require.NoError(t, err)
	for i := 0; i < 3; i++ {
		_, err := s.CreateFlashcard(ctx, doomed.ID, "q", "a")
		require.NoError(t, err)
	}
	_, err = s.CreateFlashcard(ctx, other.ID, "q", "a")
	require.NoError(t, err)

	require.NoError(t, s.DeleteTool(ctx, doomed.ID))

	tools, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, tools, 1)
	assert.Equal(t, other.ID, tools[0].ID)
	assert.Equal(t, int64(1), testutil.Count(t, gdb, &db.Flashcard{}))

	err = s.DeleteTool(ctx, doomed.ID)
	assert.True(t, errors.Is(err, ErrToolNotFound))
}

func TestReset(t *testing.T) {
	ctx := context.Background()
	s, gdb := newService(t)

	for _, name := range []string{"A", "B"} {
		tool, err := s.CreateTool(ctx, name)
		require.NoError(t, err)
		_, err = s.CreateFlashcard(ctx, tool.ID, "q", "a")
		require.NoError(t, err)
	}

	require.NoError(t, s.Reset(ctx))

	tools, err := s.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, tools)
	assert.Zero(t, testutil.Count(t, gdb, &db.Flashcard{}))

	// resetting an empty store is fine
	assert.NoError(t, s.Reset(ctx))
}

func TestFlashcardsAlwaysReferenceExistingTool(t *testing.T) {
	ctx := context.Background()
	s, _ := newService(t)

	check := func() {
		tools, err := s.List(ctx)
		require.NoError(t, err)
		ids := map[uint64]bool{}
		for _, tool := range tools {
			ids[tool.ID] = true
		}
		for _, tool := range tools {
			for _, c := range tool.Flashcards {
				assert.Equal(t, tool.ID, c.ToolID)
				assert.True(t, ids[c.ToolID])
			}
		}
	}

	a, err := s.CreateTool(ctx, "A")
	require.NoError(t, err)
	check()
	b, err := s.CreateTool(ctx, "B")
	require.NoError(t, err)
	check()
	ca, err := s.CreateFlashcard(ctx, a.ID, "qa", "aa")
	require.NoError(t, err)
	check()
	_, err = s.CreateFlashcard(ctx, b.ID, "qb", "ab")
	require.NoError(t, err)
	check()
	require.NoError(t, s.DeleteFlashcard(ctx, ca.ID))
	check()
	require.NoError(t, s.DeleteTool(ctx, b.ID))
	check()
	require.NoError(t, s.Reset(ctx))
	check()
}
