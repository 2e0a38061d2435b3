package tool

import (
	"fmt"

	"github.com/cloudwego/eino/schema"
	contractx "github.com/omnibank/zenith-assistant/agent/contract"
	sessionx "github.com/omnibank/zenith-assistant/agent/session"
)

const (
	ToolGreeting               = "greeting"
	ToolAffirmative            = "affirmative"
	ToolTransferToHuman        = "transfer_to_human"
	ToolVerifyIdentity         = "verify_identity"
	ToolCheckAccountStatus     = "check_account_status"
	ToolUnlockAccount          = "unlock_account"
	ToolGetAccountBalance      = "get_account_balance"
	ToolGetFeeDetails          = "get_fee_details"
	ToolGetCardDetails         = "get_card_details"
	ToolResetCardPIN           = "reset_card_pin"
	ToolGetLoanProducts        = "get_loan_products"
	ToolGetLoanDetails         = "get_loan_details"
	ToolApplyForLoan           = "apply_for_loan"
	ToolListRecentTransactions = "list_recent_transactions"
	ToolMakePayment            = "make_payment"
)

// Infos describes every banking tool for the chat model.
func Infos() []*schema.ToolInfo {
	return []*schema.ToolInfo{
		{
			Name: ToolGreeting,
			Desc: "A static default greeting sent to the user to start the conversation.",
		},
		{
			Name: ToolAffirmative,
			Desc: "Indicates a verbal affirmative from the user was provided to the agent's question.",
		},
		{
			Name: ToolTransferToHuman,
			Desc: "Signals that the conversation needs to be transferred to a human agent.",
		},
		{
			Name: ToolVerifyIdentity,
			Desc: "Verify the caller's identity from their full name, date of birth and the last 4 characters of their national id.",
			ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
				"first_name":    {Type: schema.String, Desc: "Customer first name", Required: true},
				"last_name":     {Type: schema.String, Desc: "Customer last name", Required: true},
				"date_of_birth": {Type: schema.String, Desc: "Date of birth, YYYY-MM-DD", Required: true},
				"last_4_nin":    {Type: schema.String, Desc: "Last 4 characters of the national id", Required: true},
			}),
		},
		{
			Name: ToolCheckAccountStatus,
			Desc: "Check whether the verified customer's account is active or locked.",
		},
		{
			Name: ToolUnlockAccount,
			Desc: "Unlock an account by account number. Requires identity verification.",
			ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
				"account_number": {Type: schema.String, Desc: "Account number to unlock", Required: true},
			}),
		},
		{
			Name: ToolGetAccountBalance,
			Desc: "Get the verified customer's current account balance.",
		},
		{
			Name: ToolGetFeeDetails,
			Desc: "Look up details of a bank fee, e.g. the monthly service fee. No verification needed.",
			ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
				"fee_type": {Type: schema.String, Desc: "Fee name or type", Required: true},
			}),
		},
		{
			Name: ToolGetCardDetails,
			Desc: "Look up the verified customer's debit card by its last 4 digits.",
			ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
				"last_4_digits": {Type: schema.String, Desc: "Last 4 digits of the card", Required: true},
			}),
		},
		{
			Name: ToolResetCardPIN,
			Desc: "Reset the PIN of the card confirmed via get_card_details.",
			ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
				"card_id": {Type: schema.String, Desc: "Card id returned by get_card_details", Required: true},
			}),
		},
		{
			Name: ToolGetLoanProducts,
			Desc: "List the loan products on offer. No verification needed.",
		},
		{
			Name: ToolGetLoanDetails,
			Desc: "Get the verified customer's existing loan details.",
		},
		{
			Name: ToolApplyForLoan,
			Desc: "Apply for a new loan of a given type and amount. Requires identity verification.",
			ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
				"loan_type": {Type: schema.String, Desc: "Loan product, e.g. personal loan", Required: true},
				"amount":    {Type: schema.Number, Desc: "Requested principal amount", Required: true},
			}),
		},
		{
			Name: ToolListRecentTransactions,
			Desc: "List the most recent transactions on the verified customer's account.",
		},
		{
			Name: ToolMakePayment,
			Desc: "Make a payment from the verified customer's account to another account.",
			ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
				"recipient_account_number": {Type: schema.String, Desc: "Recipient account number", Required: true},
				"amount":                   {Type: schema.Number, Desc: "Payment amount", Required: true},
			}),
		},
	}
}

// Dispatch routes one tool invocation onto the session. Malformed arguments
// and unknown tool names come back as errors for the caller to report to the
// model; business failures are ToolOutcome statuses.
func (t *Toolset) Dispatch(st *sessionx.State, toolName string, args map[string]any) (contractx.ToolOutcome, error) {
	if st == nil {
		return contractx.ToolOutcome{}, fmt.Errorf("%w: session state is nil", contractx.ErrNoSession)
	}

	switch toolName {
	case ToolGreeting:
		return t.Greeting(st), nil
	case ToolAffirmative:
		return t.Affirmative(st), nil
	case ToolTransferToHuman:
		return t.TransferToHuman(st), nil
	case ToolVerifyIdentity:
		firstName, err := stringArg(args, "first_name")
		if err != nil {
			return contractx.ToolOutcome{}, err
		}
		lastName, err := stringArg(args, "last_name")
		if err != nil {
			return contractx.ToolOutcome{}, err
		}
		dateOfBirth, err := stringArg(args, "date_of_birth")
		if err != nil {
			return contractx.ToolOutcome{}, err
		}
		idTail, err := stringArg(args, "last_4_nin")
		if err != nil {
			return contractx.ToolOutcome{}, err
		}
		return t.VerifyIdentity(st, firstName, lastName, dateOfBirth, idTail), nil
	case ToolCheckAccountStatus:
		return t.CheckAccountStatus(st), nil
	case ToolUnlockAccount:
		accountNumber, err := stringArg(args, "account_number")
		if err != nil {
			return contractx.ToolOutcome{}, err
		}
		return t.UnlockAccount(st, accountNumber), nil
	case ToolGetAccountBalance:
		return t.GetAccountBalance(st), nil
	case ToolGetFeeDetails:
		feeType, err := stringArg(args, "fee_type")
		if err != nil {
			return contractx.ToolOutcome{}, err
		}
		return t.GetFeeDetails(st, feeType), nil
	case ToolGetCardDetails:
		last4, err := stringArg(args, "last_4_digits")
		if err != nil {
			return contractx.ToolOutcome{}, err
		}
		return t.GetCardDetails(st, last4), nil
	case ToolResetCardPIN:
		cardID, err := stringArg(args, "card_id")
		if err != nil {
			return contractx.ToolOutcome{}, err
		}
		return t.ResetCardPIN(st, cardID), nil
	case ToolGetLoanProducts:
		return t.GetLoanProducts(st), nil
	case ToolGetLoanDetails:
		return t.GetLoanDetails(st), nil
	case ToolApplyForLoan:
		loanType, err := stringArg(args, "loan_type")
		if err != nil {
			return contractx.ToolOutcome{}, err
		}
		amount, err := numberArg(args, "amount")
		if err != nil {
			return contractx.ToolOutcome{}, err
		}
		return t.ApplyForLoan(st, loanType, amount), nil
	case ToolListRecentTransactions:
		return t.ListRecentTransactions(st), nil
	case ToolMakePayment:
		recipient, err := stringArg(args, "recipient_account_number")
		if err != nil {
			return contractx.ToolOutcome{}, err
		}
		amount, err := numberArg(args, "amount")
		if err != nil {
			return contractx.ToolOutcome{}, err
		}
		return t.MakePayment(st, recipient, amount), nil
	default:
		return contractx.ToolOutcome{}, fmt.Errorf("%w: unknown tool %q", contractx.ErrSchemaViolation, toolName)
	}
}

func stringArg(args map[string]any, key string) (string, error) {
	raw, ok := args[key]
	if !ok {
		return "", fmt.Errorf("%w: %s is required", contractx.ErrSchemaViolation, key)
	}
	s, ok := raw.(string)
	if !ok {
		return "", fmt.Errorf("%w: %s must be a string", contractx.ErrSchemaViolation, key)
	}
	return s, nil
}

func numberArg(args map[string]any, key string) (float64, error) {
	raw, ok := args[key]
	if !ok {
		return 0, fmt.Errorf("%w: %s is required", contractx.ErrSchemaViolation, key)
	}
	switch v := raw.(type) {
	case float64:
		return v, nil
	case float32:
		return float64(v), nil
	case int:
		return float64(v), nil
	case int64:
		return float64(v), nil
	default:
		return 0, fmt.Errorf("%w: %s must be a number", contractx.ErrSchemaViolation, key)
	}
}
