// Package session holds per-conversation state: the session's private copy
// of the bank, the identity-verification flag, and the currently bound
// customer, account and card.
package session

import (
	"time"

	bankingx "github.com/omnibank/zenith-assistant/agent/banking"
)

// State lives for exactly one conversation. The banking dataset is seeded
// lazily on first tool use and discarded with the session; nothing persists
// across conversations.
type State struct {
	SessionID string `json:"session_id"`
	Language  string `json:"language"`

	Bank             *bankingx.Dataset         `json:"bank,omitempty"`
	IdentityVerified bool                      `json:"is_identity_verified"`
	CurrentProfile   *bankingx.CustomerProfile `json:"current_customer_profile,omitempty"`
	CurrentAccount   *bankingx.Account         `json:"current_account_details,omitempty"`
	CurrentCard      *bankingx.DebitCard       `json:"current_card_details,omitempty"`

	UpdatedAt time.Time `json:"updated_at"`
}

func New(sessionID, language string, now time.Time) *State {
	return &State{
		SessionID: sessionID,
		Language:  language,
		UpdatedAt: now.UTC(),
	}
}

func (s *State) Touch(now time.Time) {
	s.UpdatedAt = now.UTC()
}

// EnsureBankingState seeds the session's working copy of the bank exactly
// once and returns it. Safe to call at the start of every tool invocation:
// an already-seeded session is returned unchanged, verified flag and
// bindings included.
func (s *State) EnsureBankingState(now time.Time) *bankingx.Dataset {
	if s.Bank == nil {
		s.Bank = bankingx.NewDataset(now)
	}
	return s.Bank
}
