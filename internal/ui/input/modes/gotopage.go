package modes

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"newsdeck/internal/ui/input/types"
)

// GotoMode reads a page number
type GotoMode struct {
	TextInputMode
}

func NewGotoMode(input *textinput.Model) *GotoMode {
	digit := func(r rune) bool { return r >= '0' && r <= '9' }
	return &GotoMode{
		TextInputMode: NewTextInputMode(types.ModeGoto, "goto", "Go to page: ", input, digit),
	}
}

func (m *GotoMode) Enter(ctx types.Context) []types.Action {
	actions := m.TextInputMode.Enter(ctx)
	if m.input != nil {
		total := strconv.Itoa(ctx.TotalPages())
		m.input.Placeholder = "1-" + total
		m.input.CharLimit = len(total) + 1
	}
	return actions
}

// HandleKey turns a submitted number into a GotoAction. Out-of-range
// numbers are passed through; the store clamps them. An empty submit
// just closes the prompt.
func (m *GotoMode) HandleKey(msg tea.KeyMsg, ctx types.Context) ([]types.Action, bool) {
	actions, consumed := m.TextInputMode.HandleKey(msg, ctx)
	if !consumed {
		return nil, false
	}

	out := make([]types.Action, 0, len(actions))
	for _, a := range actions {
		submit, ok := a.(types.SubmitTextAction)
		if !ok {
			out = append(out, a)
			continue
		}
		text := strings.TrimSpace(submit.Text)
		if text == "" {
			continue
		}
		page, err := strconv.Atoi(text)
		if err != nil {
			out = append(out, types.StatusAction{Message: fmt.Sprintf("not a page number: %q", text)})
			continue
		}
		out = append(out, types.GotoAction{Page: page})
	}
	return out, true
}
