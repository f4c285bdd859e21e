package pager

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type changeRecorder struct {
	name    string
	order   *[]string
	changes []Change
}

func (r *changeRecorder) OnChange(c Change) tea.Cmd {
	r.changes = append(r.changes, c)
	if r.order != nil {
		*r.order = append(*r.order, r.name)
	}
	return nil
}

func TestClamp(t *testing.T) {
	tests := []struct {
		page, total, want int
	}{
		{page: -3, total: 5, want: 1},
		{page: 0, total: 5, want: 1},
		{page: 1, total: 5, want: 1},
		{page: 4, total: 5, want: 4},
		{page: 5, total: 5, want: 5},
		{page: 99, total: 5, want: 5},
		{page: 3, total: 0, want: 1},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Clamp(tt.page, tt.total), "Clamp(%d, %d)", tt.page, tt.total)
	}
}

func TestGotoKeepsCurrentInRange(t *testing.T) {
	for total := 1; total <= 6; total++ {
		for start := 1; start <= total; start++ {
			for page := -2; page <= total+3; page++ {
				s := NewStore()
				s.Init(total, start)

				state, _ := s.Goto(page, OriginPrimary)

				require.GreaterOrEqual(t, state.Current, 1)
				require.LessOrEqual(t, state.Current, total)
				require.Equal(t, Clamp(page, total), state.Current)
				require.Equal(t, total, state.Total)
			}
		}
	}
}

func TestGotoCurrentPageIsNoop(t *testing.T) {
	s := NewStore()
	rec := &changeRecorder{}
	s.Subscribe(rec)
	s.Init(5, 3)
	gen := s.Generation()

	state, cmd := s.Goto(3, OriginPrimary)

	assert.Nil(t, cmd)
	assert.Equal(t, State{Current: 3, Total: 5}, state)
	assert.Equal(t, gen, s.Generation())
	assert.Len(t, rec.changes, 1, "only Init notified")

	// Clamped to the current page is also a no-op.
	s.Goto(5, OriginPrimary)
	gen = s.Generation()
	_, cmd = s.Next(OriginPrimary)
	assert.Nil(t, cmd)
	assert.Equal(t, gen, s.Generation())
}

func TestListenersNotifiedInSubscriptionOrder(t *testing.T) {
	var order []string
	s := NewStore()
	for _, name := range []string{"loader", "urls", "renderer"} {
		s.Subscribe(&changeRecorder{name: name, order: &order})
	}

	s.Init(4, 1)
	s.Next(OriginPrimary)

	assert.Equal(t, []string{"loader", "urls", "renderer", "loader", "urls", "renderer"}, order)
}

func TestGenerationIncrementsPerChange(t *testing.T) {
	s := NewStore()
	rec := &changeRecorder{}
	s.Subscribe(rec)

	s.Init(5, 1)
	s.Goto(2, OriginPrimary)
	s.Goto(5, OriginSecondary)
	s.Prev(OriginPrimary)

	require.Len(t, rec.changes, 4)
	for i, c := range rec.changes {
		assert.Equal(t, uint64(i+1), c.Token)
	}
	assert.Equal(t, uint64(4), s.Generation())

	last := rec.changes[3]
	assert.Equal(t, State{Current: 4, Total: 5}, last.State)
	assert.Equal(t, State{Current: 5, Total: 5}, last.Previous)
	assert.Equal(t, OriginPrimary, last.Origin)
}

func TestInitAlwaysNotifies(t *testing.T) {
	s := NewStore()
	rec := &changeRecorder{}
	s.Subscribe(rec)

	state, _ := s.Init(1, 1)

	assert.Equal(t, State{Current: 1, Total: 1}, state)
	require.Len(t, rec.changes, 1)
	assert.Equal(t, OriginInit, rec.changes[0].Origin)
}

func TestInitClampsRequestedPage(t *testing.T) {
	s := NewStore()

	state, _ := s.Init(3, 10)
	assert.Equal(t, State{Current: 3, Total: 3}, state)

	state, _ = s.Init(0, 2)
	assert.Equal(t, State{Current: 1, Total: 1}, state)
}

func TestReloadKeepsStateAndBumpsGeneration(t *testing.T) {
	s := NewStore()
	rec := &changeRecorder{}
	s.Subscribe(rec)
	s.Init(5, 2)

	s.Reload(OriginPrimary)

	require.Len(t, rec.changes, 2)
	c := rec.changes[1]
	assert.True(t, c.Reload)
	assert.Equal(t, State{Current: 2, Total: 5}, c.State)
	assert.Equal(t, c.Previous, c.State)
	assert.Equal(t, uint64(2), s.Generation())
}

func TestStoreBatchesListenerCommands(t *testing.T) {
	s := NewStore()
	s.Subscribe(ListenerFunc(func(c Change) tea.Cmd {
		return func() tea.Msg { return c.State.Current }
	}))
	s.Subscribe(ListenerFunc(func(Change) tea.Cmd { return nil }))

	_, cmd := s.Init(3, 2)

	assert.Equal(t, []tea.Msg{2}, collect(cmd))
}
