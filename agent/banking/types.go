// Package banking holds the mock Omnibank domain model: customer profiles,
// accounts, cards, fees, loan products, loans and transactions, plus the
// query/mutation primitives the tool layer runs against a session's copy.
package banking

import "time"

type AccountStatus string

const (
	AccountActive AccountStatus = "active"
	AccountLocked AccountStatus = "locked"
)

type CardStatus string

const (
	CardActive   CardStatus = "active"
	CardInactive CardStatus = "inactive"
)

type PINStatus string

const (
	PINSet   PINStatus = "set"
	PINUnset PINStatus = "unset"
)

type LoanStatus string

const (
	LoanActive   LoanStatus = "active"
	LoanApproved LoanStatus = "approved"
)

type CustomerProfile struct {
	CustomerID       string `json:"customer_id"`
	FirstName        string `json:"first_name"`
	LastName         string `json:"last_name"`
	DateOfBirth      string `json:"date_of_birth"` // YYYY-MM-DD
	NationalID       string `json:"national_id"`
	IdentityVerified bool   `json:"identity_verified"`
}

type Account struct {
	AccountNumber string        `json:"account_number"`
	CustomerID    string        `json:"customer_id"`
	Balance       float64       `json:"balance"`
	Currency      string        `json:"currency"`
	Status        AccountStatus `json:"status"`
	LockReason    string        `json:"lock_reason,omitempty"`
}

type DebitCard struct {
	CardID        string     `json:"card_id"`
	CustomerID    string     `json:"customer_id"`
	AccountNumber string     `json:"account_number"`
	Last4Digits   string     `json:"last_4_digits"`
	Status        CardStatus `json:"status"`
	PINStatus     PINStatus  `json:"pin_status"`
}

type Fee struct {
	Name        string `json:"name"`
	Amount      string `json:"amount"`
	Description string `json:"description"`
}

type LoanProduct struct {
	Name          string `json:"name"`
	InterestRate  string `json:"interest_rate"`
	MaxTermMonths int    `json:"max_term_months"`
	Description   string `json:"description"`
}

type Loan struct {
	LoanID             string     `json:"loan_id"`
	CustomerID         string     `json:"customer_id"`
	LoanType           string     `json:"loan_type"`
	PrincipalAmount    float64    `json:"principal_amount"`
	OutstandingBalance float64    `json:"outstanding_balance"`
	Status             LoanStatus `json:"status"`
	InterestRate       string     `json:"interest_rate"`
}

// Transaction records are immutable once created; new ones are appended,
// never edited.
type Transaction struct {
	TransactionID string    `json:"transaction_id"`
	AccountNumber string    `json:"account_number"`
	Date          time.Time `json:"date"`
	Description   string    `json:"description"`
	Amount        float64   `json:"amount"` // negative = debit, positive = credit
}

// Dataset is one session's private, mutable copy of the bank. Sessions never
// share a Dataset; each is built fresh from the seed template.
type Dataset struct {
	Profiles     map[string]*CustomerProfile `json:"profiles"`
	Accounts     map[string]*Account         `json:"accounts"`
	Cards        map[string]*DebitCard       `json:"cards"`
	Fees         map[string]*Fee             `json:"fees"`
	LoanProducts map[string]*LoanProduct     `json:"loan_products"`
	Loans        map[string]*Loan            `json:"loans"`

	// Transactions keep insertion order so same-date entries sort stably.
	Transactions []*Transaction `json:"transactions"`

	productOrder []string
}
