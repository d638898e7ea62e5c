package receiving

// PromptKind tells the transport adapter how to render a prompt
type PromptKind string

const (
	// PromptSelection carries a list of selectable option texts
	PromptSelection PromptKind = "selection"
	// PromptInput asks for free-form numeric input
	PromptInput PromptKind = "input"
	// PromptConfirmation carries action buttons for the staged data
	PromptConfirmation PromptKind = "confirmation"
	// PromptInfo is a plain informational message, no reply expected
	PromptInfo PromptKind = "info"
)

// Action identifies a confirm/edit button press routed through HandleConfirmAction
type Action string

const (
	ActionConfirmQuantity Action = "confirm_quantity"
	ActionEditQuantity    Action = "edit_quantity"
	ActionEditPrice       Action = "edit_price"
	ActionSave            Action = "save"
	ActionFinishReceipt   Action = "finish_receipt"
)

// Prompt is the transport-neutral reply of the workflow controller. The
// excluded messaging layer renders Options as a selection keyboard and
// Actions as inline buttons; no wire format is fixed here.
type Prompt struct {
	Kind    PromptKind `json:"kind"`
	Text    string     `json:"text"`
	Options []string   `json:"options,omitempty"`
	Actions []Action   `json:"actions,omitempty"`
}

// NewSelectionPrompt creates a prompt with selectable options
func NewSelectionPrompt(text string, options []string, actions ...Action) *Prompt {
	return &Prompt{Kind: PromptSelection, Text: text, Options: options, Actions: actions}
}

// NewInputPrompt creates a prompt asking for free-form input
func NewInputPrompt(text string) *Prompt {
	return &Prompt{Kind: PromptInput, Text: text}
}

// NewConfirmationPrompt creates a prompt with action buttons
func NewConfirmationPrompt(text string, actions ...Action) *Prompt {
	return &Prompt{Kind: PromptConfirmation, Text: text, Actions: actions}
}

// NewInfoPrompt creates a plain informational prompt
func NewInfoPrompt(text string) *Prompt {
	return &Prompt{Kind: PromptInfo, Text: text}
}
