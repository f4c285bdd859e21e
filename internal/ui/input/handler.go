// Package input maps key presses to model actions through per-mode handlers.
package input

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"newsdeck/internal/ui/input/modes"
	"newsdeck/internal/ui/input/types"
)

// Handler routes keys to the active mode and applies mode changes
type Handler struct {
	current types.Mode
	modes   map[types.Mode]types.ModeHandler
	input   *textinput.Model // shared by every text mode
}

func New() *Handler {
	ti := textinput.New()
	h := &Handler{
		current: types.ModeNormal,
		input:   &ti,
	}
	h.modes = map[types.Mode]types.ModeHandler{
		types.ModeNormal: modes.NewNormalMode(),
		types.ModeGoto:   modes.NewGotoMode(h.input),
	}
	return h
}

// HandleKey returns the actions for msg. Mode changes among them are
// applied here and not passed on.
func (h *Handler) HandleKey(msg tea.KeyMsg, ctx types.Context) ([]types.Action, tea.Cmd) {
	mode := h.modes[h.current]
	if mode == nil {
		return nil, nil
	}

	actions, consumed := mode.HandleKey(msg, ctx)
	_, typing := h.textMode()
	if !consumed && !typing {
		return nil, nil
	}

	var cmd tea.Cmd
	out := make([]types.Action, 0, len(actions)+1)
	for _, action := range actions {
		if change, ok := action.(types.ChangeModeAction); ok {
			out = append(out, h.switchTo(change.Mode, ctx)...)
			if _, ok := h.textMode(); ok {
				cmd = textinput.Blink
			}
			continue
		}
		out = append(out, action)
	}

	if _, ok := h.textMode(); ok && !consumed {
		*h.input, cmd = h.input.Update(msg)
		out = append(out, types.UpdateTextAction{Text: h.input.Value()})
	}

	return out, cmd
}

func (h *Handler) switchTo(next types.Mode, ctx types.Context) []types.Action {
	var actions []types.Action
	if m := h.modes[h.current]; m != nil {
		actions = append(actions, m.Exit(ctx)...)
	}
	h.current = next
	if m := h.modes[h.current]; m != nil {
		actions = append(actions, m.Enter(ctx)...)
	}

	if _, ok := h.textMode(); ok {
		h.input.Focus()
	} else {
		h.input.Blur()
	}
	return actions
}

// textMode returns the active mode if it takes text
func (h *Handler) textMode() (types.TextMode, bool) {
	tm, ok := h.modes[h.current].(types.TextMode)
	return tm, ok
}

func (h *Handler) CurrentMode() types.Mode { return h.current }

// Prompt returns the prompt of the active text mode
func (h *Handler) Prompt() string {
	if tm, ok := h.textMode(); ok {
		return tm.Prompt()
	}
	return ""
}

// TextInput returns the input while a text mode is active, else nil
func (h *Handler) TextInput() *textinput.Model {
	if _, ok := h.textMode(); ok {
		return h.input
	}
	return nil
}

func (h *Handler) Reset() {
	h.current = types.ModeNormal
	h.input.Reset()
	h.input.Blur()
}

// Update passes non-key messages (cursor blink) to the input
func (h *Handler) Update(msg tea.Msg) tea.Cmd {
	if _, ok := h.textMode(); !ok {
		return nil
	}
	var cmd tea.Cmd
	*h.input, cmd = h.input.Update(msg)
	return cmd
}
