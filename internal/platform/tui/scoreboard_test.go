package tui

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/canvas-arcade/internal/storage"
)

func scoreboardStore(t *testing.T) *storage.Store {
	t.Helper()
	store, err := storage.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	for _, score := range []int{3, 9} {
		_, err := store.SaveScore(storage.Run{
			ID:       uuid.New(),
			GameID:   "tictactoe",
			Player:   "bo",
			Score:    score,
			Duration: 75 * time.Second,
		})
		require.NoError(t, err)
	}
	return store
}

func TestScoreboardRecentPage(t *testing.T) {
	sb := NewScoreboardModel(scoreboardStore(t), 100, 30)

	require.True(t, sb.recent())
	assert.Len(t, sb.entries, 2)
	view := sb.View()
	assert.Contains(t, view, "Recent")
	assert.Contains(t, view, "Tic-Tac-Toe")
	assert.Contains(t, view, "1:15")
}

func TestScoreboardGamePageHasStats(t *testing.T) {
	sb := NewScoreboardModel(scoreboardStore(t), 100, 30)

	for range len(sb.pages) {
		if sb.pages[sb.page].ID == "tictactoe" {
			break
		}
		next, _ := sb.Update(tea.KeyMsg{Type: tea.KeyTab})
		sb = next.(ScoreboardModel)
	}
	require.Equal(t, "tictactoe", sb.pages[sb.page].ID)

	require.Len(t, sb.entries, 2)
	assert.Equal(t, 9, sb.entries[0].Score)
	assert.Equal(t, 2, sb.stats.Runs)
	assert.Contains(t, sb.View(), "2 runs  best 9")
}

func TestScoreboardPagingWraps(t *testing.T) {
	sb := NewScoreboardModel(nil, 80, 24)

	next, _ := sb.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	sb = next.(ScoreboardModel)

	assert.Equal(t, len(sb.pages)-1, sb.page)
	assert.Contains(t, sb.View(), "No scores recorded yet.")
}

func TestScoreboardBackAndQuit(t *testing.T) {
	sb := NewScoreboardModel(nil, 80, 24)

	_, cmd := sb.Update(tea.KeyMsg{Type: tea.KeyEsc})
	require.NotNil(t, cmd)
	assert.Equal(t, scoreboardClosedMsg{}, cmd())

	next, _ := sb.Update(runes("q"))
	assert.True(t, next.(ScoreboardModel).IsQuitting())
}
