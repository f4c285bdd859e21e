package modes

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"newsdeck/internal/ui/input/types"
)

type NormalMode struct {
	lastKeyWasG bool
	lastGTime   time.Time
}

func NewNormalMode() *NormalMode {
	return &NormalMode{}
}

func (m *NormalMode) Name() string {
	return "normal"
}

func (m *NormalMode) Enter(ctx types.Context) []types.Action {
	return nil
}

func (m *NormalMode) Exit(ctx types.Context) []types.Action {
	return nil
}

func (m *NormalMode) HandleKey(msg tea.KeyMsg, ctx types.Context) ([]types.Action, bool) {
	// Alt-modified arrows are history moves, like a browser
	if msg.Alt {
		switch msg.Type {
		case tea.KeyLeft:
			return m.history("back", ctx.CanBack())
		case tea.KeyRight:
			return m.history("forward", ctx.CanForward())
		}
	}

	switch msg.Type {
	case tea.KeyCtrlC:
		return []types.Action{types.QuitAction{Force: true}}, true

	case tea.KeyLeft:
		return m.navigate("prev", ctx)

	case tea.KeyRight:
		return m.navigate("next", ctx)

	case tea.KeyUp:
		return []types.Action{types.ScrollAction{Direction: "up"}}, true

	case tea.KeyDown:
		return []types.Action{types.ScrollAction{Direction: "down"}}, true

	case tea.KeyPgUp:
		return []types.Action{types.ScrollAction{Direction: "pageup"}}, true

	case tea.KeyPgDown, tea.KeySpace:
		return []types.Action{types.ScrollAction{Direction: "pagedown"}}, true

	case tea.KeyHome:
		return []types.Action{types.ScrollAction{Direction: "top"}}, true

	case tea.KeyEnd:
		return []types.Action{types.ScrollAction{Direction: "bottom"}}, true

	case tea.KeyTab, tea.KeyShiftTab:
		return []types.Action{types.FocusAction{}}, true

	case tea.KeyEnter:
		if !ctx.Ready() {
			return nil, true
		}
		return []types.Action{types.ActivateAction{}}, true
	}

	switch msg.String() {
	case "n", "l":
		return m.navigate("next", ctx)

	case "p", "h":
		return m.navigate("prev", ctx)

	case "j":
		return []types.Action{types.ScrollAction{Direction: "down"}}, true

	case "k":
		return []types.Action{types.ScrollAction{Direction: "up"}}, true

	case "b":
		return m.history("back", ctx.CanBack())

	case "f":
		return m.history("forward", ctx.CanForward())

	case ":":
		if !ctx.Ready() {
			return nil, true
		}
		return []types.Action{types.ChangeModeAction{Mode: types.ModeGoto}}, true

	case "r":
		if !ctx.Ready() {
			return nil, true
		}
		return []types.Action{types.ReloadAction{}}, true

	case "x":
		if ctx.HasError() {
			return []types.Action{types.DismissErrorAction{}}, true
		}
		return nil, true

	case "?":
		return []types.Action{types.ToggleHelpAction{}}, true

	case "q":
		return []types.Action{types.QuitAction{Force: false}}, true

	case "g":
		if m.lastKeyWasG && time.Since(m.lastGTime) < 500*time.Millisecond {
			// gg - first page
			m.lastKeyWasG = false
			return []types.Action{types.GotoAction{Page: 1}}, true
		}
		m.lastKeyWasG = true
		m.lastGTime = time.Now()
		return nil, true

	case "G":
		m.lastKeyWasG = false
		return []types.Action{types.GotoAction{Page: ctx.TotalPages()}}, true

	default:
		m.lastKeyWasG = false
	}

	return nil, false
}

func (m *NormalMode) navigate(direction string, ctx types.Context) ([]types.Action, bool) {
	m.lastKeyWasG = false
	if !ctx.Ready() {
		return nil, true
	}
	return []types.Action{types.NavigateAction{Direction: direction}}, true
}

func (m *NormalMode) history(direction string, possible bool) ([]types.Action, bool) {
	m.lastKeyWasG = false
	if !possible {
		return nil, true
	}
	return []types.Action{types.HistoryAction{Direction: direction}}, true
}
