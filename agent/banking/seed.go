package banking

import (
	"strings"
	"time"
)

// NewCustomerStartingBalance is credited to accounts provisioned for
// callers whose identity matches no seeded profile.
const NewCustomerStartingBalance = 7500.00

// NormalizeKey canonicalizes free-form fee and loan-product names into
// catalog keys: trimmed, lowercased, spaces replaced with underscores.
// This is part of the lookup contract, not an implementation detail.
func NormalizeKey(s string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), " ", "_")
}

// NewDataset builds a fresh working copy of the seed data. Transaction dates
// are anchored to now so "recent" stays recent. Constructing new values on
// every call is what keeps concurrent sessions fully isolated.
func NewDataset(now time.Time) *Dataset {
	day := 24 * time.Hour
	d := &Dataset{
		Profiles: map[string]*CustomerProfile{
			"cust_rakeshG": {
				CustomerID:  "CUST778899",
				FirstName:   "Rakesh",
				LastName:    "Gowda",
				DateOfBirth: "1994-07-16",
				NationalID:  "685685685",
			},
		},
		Accounts: map[string]*Account{
			"ACC778899001": {
				AccountNumber: "ACC778899001",
				CustomerID:    "CUST778899",
				Balance:       25000.50,
				Currency:      "USD",
				Status:        AccountActive,
			},
			// Belongs to another mock user; exists so payments have a
			// reachable recipient.
			"ACC123456789": {
				AccountNumber: "ACC123456789",
				CustomerID:    "CUST_OTHER",
				Balance:       55000.75,
				Currency:      "USD",
				Status:        AccountActive,
			},
		},
		Cards: map[string]*DebitCard{
			"CARD5678": {
				CardID:        "CARD5678",
				CustomerID:    "CUST778899",
				AccountNumber: "ACC778899001",
				Last4Digits:   "5678",
				Status:        CardActive,
				PINStatus:     PINSet,
			},
		},
		Fees: map[string]*Fee{
			"monthly_service_fee": {
				Name:        "Monthly Service Fee",
				Amount:      "$5.00",
				Description: "A fee charged each month for account maintenance.",
			},
			"atm_withdrawal_fee": {
				Name:        "Out-of-network ATM Fee",
				Amount:      "$3.00",
				Description: "This fee is charged when you use an ATM outside of the Omnibank network.",
			},
		},
		LoanProducts: map[string]*LoanProduct{
			"personal_loan": {
				Name:          "Personal Loan",
				InterestRate:  "5.5% APR",
				MaxTermMonths: 60,
				Description:   "A flexible loan for various personal needs.",
			},
			"home_loan": {
				Name:          "Home Mortgage",
				InterestRate:  "3.8% APR",
				MaxTermMonths: 360,
				Description:   "Finance your dream home.",
			},
			"auto_loan": {
				Name:          "Auto Loan",
				InterestRate:  "4.2% APR",
				MaxTermMonths: 72,
				Description:   "A loan for a new or used vehicle.",
			},
		},
		Loans: map[string]*Loan{
			"LOAN778899": {
				LoanID:             "LOAN778899",
				CustomerID:         "CUST778899",
				LoanType:           "Auto Loan",
				PrincipalAmount:    20000.00,
				OutstandingBalance: 15250.50,
				Status:             LoanActive,
				InterestRate:       "4.2% APR",
			},
		},
		Transactions: []*Transaction{
			{TransactionID: "TXN004", AccountNumber: "ACC778899001", Date: now.Add(-1 * day), Description: "Gas Station", Amount: -55.20},
			{TransactionID: "TXN005", AccountNumber: "ACC778899001", Date: now.Add(-5 * day), Description: "Utility Bill Payment", Amount: -120.00},
			{TransactionID: "TXN007", AccountNumber: "ACC778899001", Date: now.Add(-10 * day), Description: "Grocery Store", Amount: -250.75},
		},
		productOrder: []string{"personal_loan", "home_loan", "auto_loan"},
	}
	return d
}
