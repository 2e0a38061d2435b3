// Package tool implements the banking tool layer: each tool enforces the
// identity-verification gate, performs at most one mutation sequence against
// the session's bank, and reports the outcome as a status code plus a
// user-readable message. Tools never call each other; all coordination goes
// through session state.
package tool

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	bankingx "github.com/omnibank/zenith-assistant/agent/banking"
	contractx "github.com/omnibank/zenith-assistant/agent/contract"
	sessionx "github.com/omnibank/zenith-assistant/agent/session"
)

// Toolset carries the injectable bits (clock, PIN generator) so tests can
// pin them down. The zero value is not usable; construct with NewToolset.
type Toolset struct {
	now func() time.Time
	pin func() string
}

type ToolsetOption func(*Toolset)

func WithClock(now func() time.Time) ToolsetOption {
	return func(t *Toolset) {
		if now != nil {
			t.now = now
		}
	}
}

func WithPINGenerator(pin func() string) ToolsetOption {
	return func(t *Toolset) {
		if pin != nil {
			t.pin = pin
		}
	}
}

func NewToolset(opts ...ToolsetOption) *Toolset {
	t := &Toolset{
		now: time.Now,
		pin: randomPIN,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

func randomPIN() string {
	return fmt.Sprintf("%04d", rand.Intn(10000))
}

/* --------------------------- Conversational --------------------------- */

// Greeting opens the conversation. No verification required.
func (t *Toolset) Greeting(st *sessionx.State) contractx.ToolOutcome {
	st.EnsureBankingState(t.now())
	return contractx.ToolOutcome{
		Greeting: "Welcome to Omnibank. You're speaking with Zenith, your personal virtual assistant. How can I help you make your banking simpler today?",
	}
}

// Affirmative records a verbal yes from the user.
func (t *Toolset) Affirmative(st *sessionx.State) contractx.ToolOutcome {
	st.EnsureBankingState(t.now())
	return contractx.ToolOutcome{
		Status:  contractx.StatusSuccess,
		Message: "User confirmed.",
	}
}

// TransferToHuman signals a hand-off to a human representative.
func (t *Toolset) TransferToHuman(st *sessionx.State) contractx.ToolOutcome {
	st.EnsureBankingState(t.now())
	return contractx.ToolOutcome{
		Status:  contractx.StatusTransfer,
		Message: "I am now transferring you to a human representative. Please hold.",
	}
}

/* ------------------------------ Identity ------------------------------ */

// VerifyIdentity never fails outright: credentials matching no seeded
// profile silently provision a new customer with a fixed starting balance.
// That is a deliberate demo policy, not a bug.
func (t *Toolset) VerifyIdentity(st *sessionx.State, firstName, lastName, dateOfBirth, idTail string) contractx.ToolOutcome {
	bank := st.EnsureBankingState(t.now())

	if profile, ok := bank.FindCustomer(firstName, lastName, dateOfBirth, idTail); ok {
		st.IdentityVerified = true
		st.CurrentProfile = &profile
		if account, ok := bank.AccountByCustomerID(profile.CustomerID); ok {
			st.CurrentAccount = &account
		}
		return contractx.ToolOutcome{
			Status:  contractx.StatusVerified,
			Message: fmt.Sprintf("Thank you, %s. Your identity has been successfully verified.", profile.FirstName),
		}
	}

	profile := bankingx.CustomerProfile{
		CustomerID:       "DYN-" + idTail,
		FirstName:        firstName,
		LastName:         lastName,
		DateOfBirth:      dateOfBirth,
		NationalID:       "xxxx" + idTail,
		IdentityVerified: true,
	}
	account := bankingx.Account{
		AccountNumber: "ACC-DYN-" + idTail,
		CustomerID:    profile.CustomerID,
		Balance:       bankingx.NewCustomerStartingBalance,
		Currency:      "USD",
		Status:        bankingx.AccountActive,
	}
	stored := account
	bank.Accounts[account.AccountNumber] = &stored

	st.IdentityVerified = true
	st.CurrentProfile = &profile
	st.CurrentAccount = &account
	return contractx.ToolOutcome{
		Status:  contractx.StatusVerified,
		Message: fmt.Sprintf("Thank you, %s. Your identity has been successfully verified.", firstName),
	}
}

/* ------------------------------ Accounts ------------------------------ */

func (t *Toolset) CheckAccountStatus(st *sessionx.State) contractx.ToolOutcome {
	bank := st.EnsureBankingState(t.now())
	if !st.IdentityVerified {
		return deniedOutcome("")
	}
	if st.CurrentAccount == nil {
		return contractx.ToolOutcome{
			Status:  contractx.StatusNotFound,
			Message: "I couldn't find an account associated with your profile.",
		}
	}

	// Re-read so a prior unlock in this session is reflected.
	account, ok := bank.Account(st.CurrentAccount.AccountNumber)
	if !ok {
		account = *st.CurrentAccount
	} else {
		st.CurrentAccount = &account
	}

	last4 := accountTail(account.AccountNumber)
	if account.Status == bankingx.AccountLocked {
		reason := account.LockReason
		if reason == "" {
			reason = "an unspecified reason"
		}
		return contractx.ToolOutcome{
			Status:        contractx.StatusLocked,
			AccountNumber: account.AccountNumber,
			Message:       fmt.Sprintf("Your account ending in %s is currently locked due to %s.", last4, reason),
		}
	}
	return contractx.ToolOutcome{
		Status:  contractx.StatusActive,
		Message: fmt.Sprintf("Your account ending in %s is currently active.", last4),
	}
}

// UnlockAccount activates whatever account number the caller names once the
// caller is verified. There is deliberately no ownership check here; the
// upstream product behavior is preserved as-is.
func (t *Toolset) UnlockAccount(st *sessionx.State, accountNumber string) contractx.ToolOutcome {
	bank := st.EnsureBankingState(t.now())
	if !st.IdentityVerified {
		return deniedOutcome("")
	}
	if bank.UpdateAccountStatus(accountNumber, bankingx.AccountActive) {
		return contractx.ToolOutcome{
			Status:  contractx.StatusSuccess,
			Message: fmt.Sprintf("Account ending in %s has been successfully unlocked.", accountTail(accountNumber)),
		}
	}
	return contractx.ToolOutcome{
		Status:  contractx.StatusError,
		Message: "An internal error occurred.",
	}
}

func (t *Toolset) GetAccountBalance(st *sessionx.State) contractx.ToolOutcome {
	bank := st.EnsureBankingState(t.now())
	if !st.IdentityVerified {
		return deniedOutcome("")
	}
	if st.CurrentAccount == nil {
		return contractx.ToolOutcome{
			Status:  contractx.StatusNotFound,
			Message: "I couldn't find an account for your profile.",
		}
	}

	account, ok := bank.Account(st.CurrentAccount.AccountNumber)
	if !ok {
		account = *st.CurrentAccount
	} else {
		st.CurrentAccount = &account
	}

	return contractx.ToolOutcome{
		Status: contractx.StatusSuccess,
		Message: fmt.Sprintf("Your current balance for the account ending in %s is %s.",
			accountTail(account.AccountNumber), bankingx.FormatUSD(account.Balance)),
	}
}

/* -------------------------------- Fees -------------------------------- */

// GetFeeDetails is general information and needs no verification.
func (t *Toolset) GetFeeDetails(st *sessionx.State, feeType string) contractx.ToolOutcome {
	bank := st.EnsureBankingState(t.now())
	fee, ok := bank.FeeInfo(feeType)
	if !ok {
		return contractx.ToolOutcome{
			Status:  contractx.StatusNotFound,
			Message: fmt.Sprintf("I couldn't find information about '%s'.", feeType),
		}
	}
	return contractx.ToolOutcome{
		Status:  contractx.StatusSuccess,
		Details: fmt.Sprintf("Fee Name: %s, Amount: %s, Description: %s", fee.Name, fee.Amount, fee.Description),
	}
}

/* -------------------------------- Cards -------------------------------- */

func (t *Toolset) GetCardDetails(st *sessionx.State, last4Digits string) contractx.ToolOutcome {
	bank := st.EnsureBankingState(t.now())
	if !st.IdentityVerified {
		return deniedOutcome("")
	}

	customerID := ""
	if st.CurrentProfile != nil {
		customerID = st.CurrentProfile.CustomerID
	}
	card, ok := bank.Card(last4Digits, customerID)
	if !ok {
		return contractx.ToolOutcome{
			Status:  contractx.StatusNotFound,
			Message: fmt.Sprintf("I couldn't find a card ending in %s.", last4Digits),
		}
	}

	st.CurrentCard = &card
	return contractx.ToolOutcome{
		Status:  contractx.StatusSuccess,
		CardID:  card.CardID,
		Preview: fmt.Sprintf("Card ending in %s, Status: %s", card.Last4Digits, card.Status),
	}
}

// ResetCardPIN returns the fresh PIN in the message. Acceptable only because
// this is a demo; a real deployment delivers PINs out-of-band.
func (t *Toolset) ResetCardPIN(st *sessionx.State, cardID string) contractx.ToolOutcome {
	bank := st.EnsureBankingState(t.now())
	if !st.IdentityVerified {
		return deniedOutcome("")
	}

	if st.CurrentCard == nil || st.CurrentCard.CardID != cardID {
		return contractx.ToolOutcome{
			Status:  contractx.StatusMismatch,
			Message: "There was a mismatch. Please start the card lookup process again.",
		}
	}
	if st.CurrentCard.Status != bankingx.CardActive {
		return contractx.ToolOutcome{
			Status:  contractx.StatusCardInactive,
			Message: "This card is not active.",
		}
	}

	newPIN := t.pin()
	bank.UpdateCardPINStatus(cardID, bankingx.PINSet)
	st.CurrentCard.PINStatus = bankingx.PINSet
	return contractx.ToolOutcome{
		Status:  contractx.StatusSuccess,
		Message: fmt.Sprintf("Your new temporary PIN is %s. Please change this at an ATM.", newPIN),
	}
}

/* -------------------------------- Loans -------------------------------- */

// GetLoanProducts is general information and needs no verification.
func (t *Toolset) GetLoanProducts(st *sessionx.State) contractx.ToolOutcome {
	bank := st.EnsureBankingState(t.now())
	products := bank.LoanProductCatalog()
	parts := make([]string, 0, len(products))
	for _, p := range products {
		parts = append(parts, fmt.Sprintf("%s (Rate: %s)", p.Name, p.InterestRate))
	}
	return contractx.ToolOutcome{
		Status:   contractx.StatusSuccess,
		Products: strings.Join(parts, ", "),
	}
}

func (t *Toolset) GetLoanDetails(st *sessionx.State) contractx.ToolOutcome {
	bank := st.EnsureBankingState(t.now())
	if !st.IdentityVerified {
		return deniedOutcome("")
	}

	customerID := ""
	if st.CurrentProfile != nil {
		customerID = st.CurrentProfile.CustomerID
	}
	loan, ok := bank.CustomerLoan(customerID)
	if !ok {
		return contractx.ToolOutcome{
			Status:  contractx.StatusNotFound,
			Message: "I couldn't find any existing loans for your profile.",
		}
	}
	return contractx.ToolOutcome{
		Status: contractx.StatusSuccess,
		Details: fmt.Sprintf("You have a %s with an outstanding balance of %s. The interest rate is %s.",
			loan.LoanType, bankingx.FormatUSD(loan.OutstandingBalance), loan.InterestRate),
	}
}

func (t *Toolset) ApplyForLoan(st *sessionx.State, loanType string, amount float64) contractx.ToolOutcome {
	bank := st.EnsureBankingState(t.now())
	if !st.IdentityVerified {
		return deniedOutcome("")
	}

	customerID := ""
	if st.CurrentProfile != nil {
		customerID = st.CurrentProfile.CustomerID
	}
	if _, ok := bank.CustomerLoan(customerID); ok {
		return contractx.ToolOutcome{
			Status:  contractx.StatusIneligible,
			Message: "Our records show you already have an active loan.",
		}
	}

	loan, ok := bank.AddLoan(customerID, loanType, amount)
	if !ok {
		return contractx.ToolOutcome{
			Status:  contractx.StatusError,
			Message: fmt.Sprintf("I'm sorry, we don't offer a '%s' at the moment.", loanType),
		}
	}
	return contractx.ToolOutcome{
		Status: contractx.StatusSuccess,
		Message: fmt.Sprintf("Congratulations! Your application for a %s of %s has been approved. Your Loan ID is %s.",
			loanType, bankingx.FormatUSD(amount), loan.LoanID),
	}
}

/* ---------------------------- Transactions ----------------------------- */

const recentTransactionLimit = 5

func (t *Toolset) ListRecentTransactions(st *sessionx.State) contractx.ToolOutcome {
	bank := st.EnsureBankingState(t.now())
	if !st.IdentityVerified {
		return deniedOutcome("Identity verification is required to view transactions.")
	}
	if st.CurrentAccount == nil {
		return contractx.ToolOutcome{
			Status:  contractx.StatusNotFound,
			Message: "I couldn't find an account for your profile.",
		}
	}

	txns := bank.TransactionsForAccount(st.CurrentAccount.AccountNumber, recentTransactionLimit)
	if len(txns) == 0 {
		return contractx.ToolOutcome{
			Status:  contractx.StatusSuccess,
			Details: "You have no recent transactions.",
		}
	}

	lines := make([]string, 0, len(txns))
	for _, txn := range txns {
		lines = append(lines, fmt.Sprintf("Date: %s, Description: %s, Amount: %s",
			txn.Date.Format("2006-01-02"), txn.Description, bankingx.FormatUSD(txn.Amount)))
	}
	return contractx.ToolOutcome{
		Status:  contractx.StatusSuccess,
		Details: strings.Join(lines, "\n"),
	}
}

// MakePayment debits the caller's account and credits the recipient. The
// two balance updates are equal and opposite, so the sum of balances across
// the session's bank is conserved; the gateway's session lock keeps the
// read-check-mutate sequence atomic with respect to concurrent requests.
func (t *Toolset) MakePayment(st *sessionx.State, recipientAccountNumber string, amount float64) contractx.ToolOutcome {
	bank := st.EnsureBankingState(t.now())
	if !st.IdentityVerified {
		return deniedOutcome("Identity verification is required to make a payment.")
	}
	if st.CurrentAccount == nil {
		return contractx.ToolOutcome{
			Status:  contractx.StatusNotFound,
			Message: "I couldn't find your account to send the payment from.",
		}
	}

	sender, ok := bank.Account(st.CurrentAccount.AccountNumber)
	if !ok {
		return contractx.ToolOutcome{
			Status:  contractx.StatusNotFound,
			Message: "I couldn't find your account to send the payment from.",
		}
	}

	if amount <= 0 {
		return contractx.ToolOutcome{
			Status:  contractx.StatusInvalidAmount,
			Message: "Payment amount must be positive.",
		}
	}
	if sender.Balance < amount {
		return contractx.ToolOutcome{
			Status:  contractx.StatusInsufficientFunds,
			Message: "You do not have sufficient funds to make this payment.",
		}
	}
	if _, ok := bank.Account(recipientAccountNumber); !ok {
		return contractx.ToolOutcome{
			Status:  contractx.StatusRecipientNotFound,
			Message: "The recipient account number does not seem to be valid.",
		}
	}

	now := t.now()
	bank.UpdateBalance(sender.AccountNumber, -amount, now)
	bank.UpdateBalance(recipientAccountNumber, amount, now)

	if updated, ok := bank.Account(sender.AccountNumber); ok {
		st.CurrentAccount = &updated
	}

	return contractx.ToolOutcome{
		Status: contractx.StatusSuccess,
		Message: fmt.Sprintf("Payment of %s to account %s was successful.",
			bankingx.FormatUSD(amount), recipientAccountNumber),
	}
}

/* ------------------------------- Helpers ------------------------------- */

func deniedOutcome(message string) contractx.ToolOutcome {
	if message == "" {
		message = "Identity verification is required first."
	}
	return contractx.ToolOutcome{
		Status:  contractx.StatusDenied,
		Message: message,
	}
}

func accountTail(accountNumber string) string {
	if len(accountNumber) < 4 {
		return "----"
	}
	return accountNumber[len(accountNumber)-4:]
}

