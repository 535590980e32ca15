package reports

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/millstone-erp/millstone-erp/internal/accounting/shared"
)

func TestBuildTrialBalanceOrdersByCode(t *testing.T) {
	tb := BuildTrialBalance([]LedgerBalance{
		{LedgerID: 2, Code: "SAL-001", Name: "Bakery Counter Sales", Credit: 1550},
		{LedgerID: 1, Code: "CASH", Name: "Cash", Debit: 1550},
	})

	require.Len(t, tb.Rows, 2)
	require.Equal(t, "CASH", tb.Rows[0].Code)
	require.Equal(t, "SAL-001", tb.Rows[1].Code)
}

func TestBuildTrialBalanceClosingIdentity(t *testing.T) {
	balances := []LedgerBalance{
		{LedgerID: 1, Code: "CASH", OpeningDebit: 5000, OpeningCredit: 1200, Debit: 1550, Credit: 300},
		{LedgerID: 2, Code: "SAL-001", OpeningCredit: 3800, Credit: 1550},
		{LedgerID: 3, Code: "DEB-001", Debit: 300, Credit: 1550},
	}

	tb := BuildTrialBalance(balances)
	for _, row := range tb.Rows {
		require.Equal(t, shared.Round2(row.OpeningBalance+row.Debit-row.Credit), row.ClosingBalance, "ledger %s", row.Code)
		require.Equal(t, shared.Round2(row.OpeningDebit+row.Debit), row.ClosingDebit)
		require.Equal(t, shared.Round2(row.OpeningCredit+row.Credit), row.ClosingCredit)
	}

	require.Equal(t, shared.Round2(tb.TotalOpening+tb.TotalDebit-tb.TotalCredit), tb.TotalClosing)
}

func TestBuildTrialBalanceBalancedBooksNetToZero(t *testing.T) {
	// every posting is double-entry, so a full trial balance closes at zero
	tb := BuildTrialBalance([]LedgerBalance{
		{LedgerID: 1, Code: "CASH", OpeningDebit: 1000, Debit: 500},
		{LedgerID: 2, Code: "SAL-001", OpeningCredit: 1000, Credit: 500},
	})

	require.Equal(t, 0.0, tb.TotalOpening)
	require.Equal(t, tb.TotalDebit, tb.TotalCredit)
	require.Equal(t, 0.0, tb.TotalClosing)
}

func TestBuildTrialBalanceEmpty(t *testing.T) {
	tb := BuildTrialBalance(nil)
	require.Empty(t, tb.Rows)
	require.Equal(t, 0.0, tb.TotalDebit)
}

func TestBuildTrialBalanceUniformNet(t *testing.T) {
	// net effect is Debit minus Credit for every ledger regardless of account
	// type: a credit-heavy income ledger simply carries a negative balance
	tb := BuildTrialBalance([]LedgerBalance{
		{LedgerID: 2, Code: "SAL-001", Credit: 1550},
	})
	require.Equal(t, -1550.0, tb.Rows[0].ClosingBalance)
}

type stubBalances struct {
	balances []LedgerBalance
	gotStart time.Time
	gotEnd   time.Time
}

func (s *stubBalances) LedgerBalances(_ context.Context, _ *int64, start, end time.Time) ([]LedgerBalance, error) {
	s.gotStart, s.gotEnd = start, end
	return s.balances, nil
}

func TestServiceRejectsInvertedRange(t *testing.T) {
	service := NewService(&stubBalances{})
	start := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)

	_, err := service.TrialBalance(context.Background(), nil, start, start.AddDate(0, 0, -1))
	require.ErrorIs(t, err, ErrInvalidRange)
}

func TestServicePassesRangeThrough(t *testing.T) {
	stub := &stubBalances{balances: []LedgerBalance{{LedgerID: 1, Code: "CASH", Debit: 10}}}
	service := NewService(stub)
	start := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 4, 30, 0, 0, 0, 0, time.UTC)

	tb, err := service.TrialBalance(context.Background(), nil, start, end)
	require.NoError(t, err)
	require.Equal(t, start, stub.gotStart)
	require.Equal(t, end, stub.gotEnd)
	require.Len(t, tb.Rows, 1)
}
