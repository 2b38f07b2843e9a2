package types

// Navigation actions
type NavigateAction struct {
	Direction string // "up", "down", "pageup", "pagedown", "home", "end", "left", "right"
}

func (a NavigateAction) Type() string { return "navigate" }

type ToggleOpenAction struct{}

func (a ToggleOpenAction) Type() string { return "toggle_open" }

type ExpandAllAction struct {
	Open bool
}

func (a ExpandAllAction) Type() string { return "expand_all" }

// Selection actions
type SelectAction struct{}

func (a SelectAction) Type() string { return "select" }

type ExtendSelectionAction struct {
	Direction string // "up" or "down"
}

func (a ExtendSelectionAction) Type() string { return "extend_selection" }

type SelectAllAction struct{}

func (a SelectAllAction) Type() string { return "select_all" }

type DeselectAllAction struct{}

func (a DeselectAllAction) Type() string { return "deselect_all" }

type ToggleSelectModeAction struct{}

func (a ToggleSelectModeAction) Type() string { return "toggle_select_mode" }

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

type SearchNavigateAction struct {
	Direction string // "next" or "prev"
}

func (a SearchNavigateAction) Type() string { return "search_navigate" }

// Menu actions
type MenuKeyAction struct {
	Key string // "up", "down", "left", "right", "enter", "esc"
}

func (a MenuKeyAction) Type() string { return "menu_key" }

// Command actions
type RefreshAction struct{}

func (a RefreshAction) Type() string { return "refresh" }

type ToggleHiddenAction struct{}

func (a ToggleHiddenAction) Type() string { return "toggle_hidden" }

type ToggleInfoAction struct{}

func (a ToggleInfoAction) Type() string { return "toggle_info" }

type ToggleHelpAction struct{}

func (a ToggleHelpAction) Type() string { return "toggle_help" }

type OpenPagerAction struct{}

func (a OpenPagerAction) Type() string { return "open_pager" }

type QuitAction struct {
	Force bool // true for Ctrl+C, false for 'q'
}

func (a QuitAction) Type() string { return "quit" }
