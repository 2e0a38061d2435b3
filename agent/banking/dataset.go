package banking

import (
	"fmt"
	"math/rand"
	"sort"
	"strings"
	"time"
)

// All lookup operations are total: a miss is an empty result, never an
// error. Record lookups return copies so callers cannot corrupt stored
// state through the returned value.

// FindCustomer matches names case-insensitively, the date of birth exactly,
// and the last four characters of the national id exactly.
func (d *Dataset) FindCustomer(firstName, lastName, dateOfBirth, idTail string) (CustomerProfile, bool) {
	for _, p := range d.Profiles {
		if strings.EqualFold(firstName, p.FirstName) &&
			strings.EqualFold(lastName, p.LastName) &&
			dateOfBirth == p.DateOfBirth &&
			idTail == idTailOf(p.NationalID) {
			return *p, true
		}
	}
	return CustomerProfile{}, false
}

// AccountByCustomerID returns the first account owned by the customer.
// The dataset assumes one account per customer.
func (d *Dataset) AccountByCustomerID(customerID string) (Account, bool) {
	for _, a := range d.Accounts {
		if a.CustomerID == customerID {
			return *a, true
		}
	}
	return Account{}, false
}

func (d *Dataset) Account(accountNumber string) (Account, bool) {
	a, ok := d.Accounts[accountNumber]
	if !ok {
		return Account{}, false
	}
	return *a, true
}

// Card requires both the last four digits and the owning customer to match
// the same record.
func (d *Dataset) Card(last4Digits, customerID string) (DebitCard, bool) {
	for _, c := range d.Cards {
		if c.Last4Digits == last4Digits && c.CustomerID == customerID {
			return *c, true
		}
	}
	return DebitCard{}, false
}

func (d *Dataset) FeeInfo(feeType string) (Fee, bool) {
	f, ok := d.Fees[NormalizeKey(feeType)]
	if !ok {
		return Fee{}, false
	}
	return *f, true
}

// CustomerLoan returns the first loan owned by the customer. At most one
// active or approved loan exists per customer; AddLoan callers enforce that.
func (d *Dataset) CustomerLoan(customerID string) (Loan, bool) {
	for _, l := range d.Loans {
		if l.CustomerID == customerID {
			return *l, true
		}
	}
	return Loan{}, false
}

// LoanProductCatalog lists products in catalog order.
func (d *Dataset) LoanProductCatalog() []LoanProduct {
	out := make([]LoanProduct, 0, len(d.productOrder))
	for _, k := range d.productOrder {
		if p, ok := d.LoanProducts[k]; ok {
			out = append(out, *p)
		}
	}
	return out
}

// TransactionsForAccount returns the account's transactions sorted by date
// descending, truncated to limit. Same-date entries keep insertion order.
func (d *Dataset) TransactionsForAccount(accountNumber string, limit int) []Transaction {
	matched := make([]Transaction, 0, limit)
	for _, t := range d.Transactions {
		if t.AccountNumber == accountNumber {
			matched = append(matched, *t)
		}
	}
	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].Date.After(matched[j].Date)
	})
	if limit >= 0 && len(matched) > limit {
		matched = matched[:limit]
	}
	return matched
}

// UpdateBalance adds amount (signed) to the account's balance and appends a
// synthesized transaction record. Returns false, with no effect, if the
// account does not exist.
func (d *Dataset) UpdateBalance(accountNumber string, amount float64, now time.Time) bool {
	acct, ok := d.Accounts[accountNumber]
	if !ok {
		return false
	}
	acct.Balance += amount

	description := "Deposit of " + FormatUSD(amount)
	if amount < 0 {
		description = "Payment of " + FormatUSD(-amount)
	}
	d.Transactions = append(d.Transactions, &Transaction{
		TransactionID: newDynamicID("TXN"),
		AccountNumber: accountNumber,
		Date:          now,
		Description:   description,
		Amount:        amount,
	})
	return true
}

// UpdateAccountStatus sets the account status; unlocking clears any lock
// reason.
func (d *Dataset) UpdateAccountStatus(accountNumber string, status AccountStatus) bool {
	acct, ok := d.Accounts[accountNumber]
	if !ok {
		return false
	}
	acct.Status = status
	if status == AccountActive {
		acct.LockReason = ""
	}
	return true
}

func (d *Dataset) UpdateCardPINStatus(cardID string, status PINStatus) bool {
	card, ok := d.Cards[cardID]
	if !ok {
		return false
	}
	card.PINStatus = status
	return true
}

// AddLoan resolves loanType against the product catalog by normalized key
// and creates an approved loan whose outstanding balance equals the
// principal. Returns false if the product is unknown.
func (d *Dataset) AddLoan(customerID, loanType string, amount float64) (Loan, bool) {
	product, ok := d.LoanProducts[NormalizeKey(loanType)]
	if !ok {
		return Loan{}, false
	}
	loan := &Loan{
		LoanID:             newDynamicID("LOAN"),
		CustomerID:         customerID,
		LoanType:           product.Name,
		PrincipalAmount:    amount,
		OutstandingBalance: amount,
		Status:             LoanApproved,
		InterestRate:       product.InterestRate,
	}
	d.Loans[loan.LoanID] = loan
	return *loan, true
}

func idTailOf(nationalID string) string {
	if len(nationalID) < 4 {
		return nationalID
	}
	return nationalID[len(nationalID)-4:]
}

func newDynamicID(prefix string) string {
	return fmt.Sprintf("%s-DYN-%04d", prefix, rand.Intn(9000)+1000)
}
