package tool

import (
	"errors"
	"testing"

	contractx "github.com/omnibank/zenith-assistant/agent/contract"
)

func TestInfosCoverEveryTool(t *testing.T) {
	t.Parallel()

	wantNames := []string{
		ToolGreeting,
		ToolAffirmative,
		ToolTransferToHuman,
		ToolVerifyIdentity,
		ToolCheckAccountStatus,
		ToolUnlockAccount,
		ToolGetAccountBalance,
		ToolGetFeeDetails,
		ToolGetCardDetails,
		ToolResetCardPIN,
		ToolGetLoanProducts,
		ToolGetLoanDetails,
		ToolApplyForLoan,
		ToolListRecentTransactions,
		ToolMakePayment,
	}

	infos := Infos()
	if len(infos) != len(wantNames) {
		t.Fatalf("got %d tool infos, want %d", len(infos), len(wantNames))
	}
	seen := make(map[string]bool, len(infos))
	for _, info := range infos {
		if info.Desc == "" {
			t.Fatalf("tool %s has no description", info.Name)
		}
		seen[info.Name] = true
	}
	for _, name := range wantNames {
		if !seen[name] {
			t.Fatalf("tool %s missing from Infos()", name)
		}
	}
}

func TestDispatchNilSession(t *testing.T) {
	t.Parallel()

	ts := testToolset()
	if _, err := ts.Dispatch(nil, ToolGreeting, nil); !errors.Is(err, contractx.ErrNoSession) {
		t.Fatalf("Dispatch(nil session) error = %v, want ErrNoSession", err)
	}
}

func TestDispatchUnknownTool(t *testing.T) {
	t.Parallel()

	ts := testToolset()
	st := newTestState()
	if _, err := ts.Dispatch(st, "no_such_tool", nil); !errors.Is(err, contractx.ErrSchemaViolation) {
		t.Fatalf("Dispatch() error = %v, want ErrSchemaViolation", err)
	}
}

func TestDispatchArgValidation(t *testing.T) {
	t.Parallel()

	ts := testToolset()
	st := newTestState()

	cases := []struct {
		name string
		tool string
		args map[string]any
	}{
		{"verify missing name", ToolVerifyIdentity, map[string]any{"last_name": "Gowda", "date_of_birth": "1994-07-16", "last_4_nin": "5685"}},
		{"verify wrong type", ToolVerifyIdentity, map[string]any{"first_name": 7, "last_name": "Gowda", "date_of_birth": "1994-07-16", "last_4_nin": "5685"}},
		{"unlock missing account", ToolUnlockAccount, nil},
		{"fee missing type", ToolGetFeeDetails, map[string]any{}},
		{"loan amount not a number", ToolApplyForLoan, map[string]any{"loan_type": "personal loan", "amount": "lots"}},
		{"payment missing amount", ToolMakePayment, map[string]any{"recipient_account_number": "ACC123456789"}},
	}
	for _, tc := range cases {
		if _, err := ts.Dispatch(st, tc.tool, tc.args); !errors.Is(err, contractx.ErrSchemaViolation) {
			t.Fatalf("%s: error = %v, want ErrSchemaViolation", tc.name, err)
		}
	}
}

func TestDispatchRoutesArguments(t *testing.T) {
	t.Parallel()

	ts := testToolset()
	st := newTestState()

	out, err := ts.Dispatch(st, ToolVerifyIdentity, map[string]any{
		"first_name":    "Rakesh",
		"last_name":     "Gowda",
		"date_of_birth": "1994-07-16",
		"last_4_nin":    "5685",
	})
	if err != nil {
		t.Fatalf("Dispatch() error = %v", err)
	}
	if out.Status != contractx.StatusVerified {
		t.Fatalf("status = %q, want verified", out.Status)
	}

	// JSON-decoded numbers arrive as float64.
	out, err = ts.Dispatch(st, ToolMakePayment, map[string]any{
		"recipient_account_number": "ACC123456789",
		"amount":                   float64(500),
	})
	if err != nil {
		t.Fatalf("Dispatch() error = %v", err)
	}
	if out.Status != contractx.StatusSuccess {
		t.Fatalf("status = %q, want success", out.Status)
	}
}
