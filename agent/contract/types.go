package contract

import "strings"

// Language selects which banker persona answers a session.
type Language string

const (
	LanguageEnglish Language = "en-US"
	LanguageSpanish Language = "es-ES"
)

// RouteLanguage maps a BCP-47-ish tag onto a supported language.
// Anything containing "es" goes to the Spanish banker, everything else
// to the English one.
func RouteLanguage(tag string) Language {
	if strings.Contains(strings.ToLower(tag), "es") {
		return LanguageSpanish
	}
	return LanguageEnglish
}

// ToolStatus is the fixed outcome vocabulary shared by all banking tools.
// Every business failure is expressed as one of these codes, never as an
// error return.
type ToolStatus string

const (
	StatusSuccess           ToolStatus = "success"
	StatusVerified          ToolStatus = "verified"
	StatusDenied            ToolStatus = "denied"
	StatusNotFound          ToolStatus = "not_found"
	StatusError             ToolStatus = "error"
	StatusLocked            ToolStatus = "locked"
	StatusActive            ToolStatus = "active"
	StatusMismatch          ToolStatus = "mismatch"
	StatusCardInactive      ToolStatus = "card_inactive"
	StatusIneligible        ToolStatus = "ineligible"
	StatusInvalidAmount     ToolStatus = "invalid_amount"
	StatusInsufficientFunds ToolStatus = "insufficient_funds"
	StatusRecipientNotFound ToolStatus = "recipient_not_found"
	StatusTransfer          ToolStatus = "transfer"
)

// ToolOutcome is the entire contract surface a tool exposes toward the
// conversational layer. Callers branch on Status and relay Message (or
// Details/Preview/Products) to the end user.
type ToolOutcome struct {
	Status        ToolStatus `json:"status,omitempty"`
	Message       string     `json:"message,omitempty"`
	Details       string     `json:"details,omitempty"`
	Preview       string     `json:"preview,omitempty"`
	Products      string     `json:"products,omitempty"`
	Greeting      string     `json:"greeting,omitempty"`
	CardID        string     `json:"card_id,omitempty"`
	AccountNumber string     `json:"account_number,omitempty"`
}

type ToolRequest struct {
	Tool string         `json:"tool"`
	Args map[string]any `json:"args,omitempty"`
}

type ToolResult struct {
	Tool    string      `json:"tool"`
	Outcome ToolOutcome `json:"outcome,omitempty"`
	Error   string      `json:"error,omitempty"`
}

type AssistantRequest struct {
	SessionID     string `json:"session_id"`
	UserMessage   string `json:"user_message"`
	MemorySummary string `json:"memory_summary,omitempty"`
}

type AssistantResponse struct {
	Reply string `json:"reply"`
}
