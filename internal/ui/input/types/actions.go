package types

// Page navigation through the focused control
type NavigateAction struct {
	Direction string // "next", "prev"
}

func (a NavigateAction) Type() string { return "navigate" }

// ActivateAction uses the focused control's default affordance
type ActivateAction struct{}

func (a ActivateAction) Type() string { return "activate" }

// HistoryAction moves through the session history
type HistoryAction struct {
	Direction string // "back", "forward"
}

func (a HistoryAction) Type() string { return "history" }

// ScrollAction moves the content viewport
type ScrollAction struct {
	Direction string // "up", "down", "pageup", "pagedown", "top", "bottom"
}

func (a ScrollAction) Type() string { return "scroll" }

// FocusAction moves focus to the next control
type FocusAction struct{}

func (a FocusAction) Type() string { return "focus" }

// Mode transition actions
type ChangeModeAction struct {
	Mode Mode
	Data interface{} // Optional data for the mode
}

func (a ChangeModeAction) Type() string { return "change_mode" }

// Text input actions
type UpdateTextAction struct {
	Text string
}

func (a UpdateTextAction) Type() string { return "update_text" }

type SubmitTextAction struct {
	Text string
	Mode Mode // Which mode submitted the text
}

func (a SubmitTextAction) Type() string { return "submit_text" }

type CancelTextAction struct{}

func (a CancelTextAction) Type() string { return "cancel_text" }

// GotoAction jumps to a page number entered at the prompt
type GotoAction struct {
	Page int
}

func (a GotoAction) Type() string { return "goto" }

// ReloadAction fetches the current page again
type ReloadAction struct{}

func (a ReloadAction) Type() string { return "reload" }

// DismissErrorAction hides the inline fetch error
type DismissErrorAction struct{}

func (a DismissErrorAction) Type() string { return "dismiss_error" }

type ToggleHelpAction struct{}

func (a ToggleHelpAction) Type() string { return "toggle_help" }

type QuitAction struct {
	Force bool // true for Ctrl+C, false for 'q'
}

func (a QuitAction) Type() string { return "quit" }

// StatusAction shows a transient message in the status line
type StatusAction struct {
	Message string
}

func (a StatusAction) Type() string { return "status" }
