package modes

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"newsdeck/internal/ui/input/types"
)

// TextInputMode is shared by prompt modes: esc cancels, enter submits and
// any other key goes to the input unless accept rejects one of its runes.
type TextInputMode struct {
	mode   types.Mode
	name   string
	prompt string
	accept func(rune) bool // nil accepts everything
	input  *textinput.Model
}

func NewTextInputMode(mode types.Mode, name, prompt string, input *textinput.Model, accept func(rune) bool) TextInputMode {
	return TextInputMode{
		mode:   mode,
		name:   name,
		prompt: prompt,
		accept: accept,
		input:  input,
	}
}

func (m TextInputMode) Name() string { return m.name }

// Prompt is drawn by the view in front of the input
func (m TextInputMode) Prompt() string { return m.prompt }

func (m TextInputMode) Enter(ctx types.Context) []types.Action {
	if m.input != nil {
		m.input.Reset()
		m.input.Prompt = ""
	}
	return nil
}

func (m TextInputMode) Exit(ctx types.Context) []types.Action {
	if m.input != nil {
		m.input.Blur()
		m.input.Reset()
	}
	return nil
}

func (m TextInputMode) value() string {
	if m.input == nil {
		return ""
	}
	return m.input.Value()
}

// HandleKey returns consumed=false for keys meant for the input itself
func (m TextInputMode) HandleKey(msg tea.KeyMsg, ctx types.Context) ([]types.Action, bool) {
	switch msg.Type {
	case tea.KeyCtrlC:
		return []types.Action{types.QuitAction{Force: true}}, true

	case tea.KeyEsc:
		return []types.Action{
			types.CancelTextAction{},
			types.ChangeModeAction{Mode: types.ModeNormal},
		}, true

	case tea.KeyEnter:
		return []types.Action{
			types.SubmitTextAction{Text: m.value(), Mode: m.mode},
			types.ChangeModeAction{Mode: types.ModeNormal},
		}, true

	case tea.KeyRunes:
		if m.accept == nil {
			return nil, false
		}
		for _, r := range msg.Runes {
			if !m.accept(r) {
				return nil, true
			}
		}
	}
	return nil, false
}
