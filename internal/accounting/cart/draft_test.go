package cart

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/millstone-erp/millstone-erp/internal/accounting/shared"
	"github.com/millstone-erp/millstone-erp/internal/accounting/vouchers"
)

func amount(v float64) *float64 {
	return &v
}

func ref(id int64) *int64 {
	return &id
}

func TestAddLineBalancedSale(t *testing.T) {
	d := NewDraft(1, 10, time.Date(2026, 4, 12, 0, 0, 0, 0, time.UTC))

	d, err := AddLine(d, Line{LedgerID: 4, Debit: amount(1000)})
	require.NoError(t, err)
	d, err = AddLine(d, Line{LedgerID: 4, Debit: amount(550)})
	require.NoError(t, err)
	d, err = AddLine(d, Line{LedgerID: 2, Credit: amount(1550)})
	require.NoError(t, err)

	require.Len(t, d.Lines, 3)
	require.Equal(t, 1550.0, d.TotalDebit)
	require.Equal(t, 1550.0, d.TotalCredit)
	require.Equal(t, 2, d.DebitLines)
	require.Equal(t, 1, d.CreditLines)
	require.NoError(t, Validate(d))
	require.Equal(t, 0.0, Difference(d))
}

func TestAddLineRejections(t *testing.T) {
	d := NewDraft(1, 10, time.Now())

	_, err := AddLine(d, Line{Debit: amount(100)})
	require.ErrorIs(t, err, shared.ErrLedgerRequired)

	_, err = AddLine(d, Line{LedgerID: 1, Debit: amount(100), Credit: amount(100)})
	require.ErrorIs(t, err, shared.ErrBothAmounts)

	_, err = AddLine(d, Line{LedgerID: 1})
	require.ErrorIs(t, err, shared.ErrNoAmount)

	_, err = AddLine(d, Line{LedgerID: 1, Debit: amount(0), Credit: amount(0)})
	require.ErrorIs(t, err, shared.ErrNoAmount)

	_, err = AddLine(d, Line{LedgerID: 1, Debit: amount(-5)})
	require.ErrorIs(t, err, shared.ErrNegativeAmount)
}

func TestAddLineDoesNotMutateReceiver(t *testing.T) {
	d := NewDraft(1, 10, time.Now())
	d, err := AddLine(d, Line{LedgerID: 1, Debit: amount(100)})
	require.NoError(t, err)

	next, err := AddLine(d, Line{LedgerID: 2, Credit: amount(100)})
	require.NoError(t, err)

	require.Len(t, d.Lines, 1)
	require.Equal(t, 0.0, d.TotalCredit)
	require.Len(t, next.Lines, 2)
	require.Equal(t, 100.0, next.TotalCredit)
}

func TestRemoveLineRebalances(t *testing.T) {
	d := NewDraft(1, 10, time.Now())
	d, _ = AddLine(d, Line{LedgerID: 1, Debit: amount(300)})
	d, _ = AddLine(d, Line{LedgerID: 2, Debit: amount(200)})
	d, _ = AddLine(d, Line{LedgerID: 3, Credit: amount(500)})

	d, err := RemoveLine(d, 1)
	require.NoError(t, err)
	require.Len(t, d.Lines, 2)
	require.Equal(t, 300.0, d.TotalDebit)
	require.Equal(t, 500.0, d.TotalCredit)
	require.ErrorIs(t, Validate(d), shared.ErrUnbalanced)
	require.Equal(t, -200.0, Difference(d))
}

func TestRemoveLineOutOfRange(t *testing.T) {
	d := NewDraft(1, 10, time.Now())
	d, _ = AddLine(d, Line{LedgerID: 1, Debit: amount(50)})

	_, err := RemoveLine(d, -1)
	require.ErrorIs(t, err, shared.ErrLineNotFound)
	_, err = RemoveLine(d, 1)
	require.ErrorIs(t, err, shared.ErrLineNotFound)
}

func TestRecomputeNormalisesLines(t *testing.T) {
	d := NewDraft(1, 10, time.Now())
	d.Lines = []Line{
		{LedgerID: 1, Debit: amount(100), Remarks: "  keep me  "},
		{LedgerID: 2, Debit: amount(0), Credit: amount(0)}, // zero both ways: dropped
		{LedgerID: 3, Debit: amount(40), Credit: amount(40)},
		{LedgerID: 4, Credit: amount(-10)},
		{LedgerID: 5, Credit: amount(100.006)},
	}

	d = Recompute(d)
	require.Len(t, d.Lines, 2)
	require.Equal(t, "keep me", d.Lines[0].Remarks)
	require.Equal(t, 100.0, d.TotalDebit)
	require.Equal(t, 100.01, d.TotalCredit)
	require.Equal(t, 1, d.DebitLines)
	require.Equal(t, 1, d.CreditLines)
}

func TestRecomputeDropsSubCentAmounts(t *testing.T) {
	d := NewDraft(1, 10, time.Now())
	d.Lines = []Line{
		{LedgerID: 1, Debit: amount(100)},
		{LedgerID: 2, Credit: amount(100)},
		{LedgerID: 3, Debit: amount(0.004)},
	}

	d = Recompute(d)
	require.Len(t, d.Lines, 2)
	for _, line := range d.Lines {
		if line.Debit != nil {
			require.Greater(t, *line.Debit, 0.0)
			require.Nil(t, line.Credit)
		} else {
			require.NotNil(t, line.Credit)
			require.Greater(t, *line.Credit, 0.0)
		}
	}
	require.Equal(t, 100.0, d.TotalDebit)
	require.NoError(t, Validate(d))
}

func TestRecomputeClearsUnresolvedReferences(t *testing.T) {
	d := NewDraft(1, 10, time.Now())
	d.Lines = []Line{
		{LedgerID: 1, Debit: amount(10), ReferenceID: ref(0), ReferenceNo: "INV-1", ReferenceKind: vouchers.RefSale},
		{LedgerID: 2, Debit: amount(10), ReferenceID: ref(7), ReferenceNo: "   ", ReferenceKind: vouchers.RefSale},
		{LedgerID: 3, Debit: amount(10), ReferenceID: ref(8), ReferenceNo: " INV-2 ", ReferenceKind: "BOGUS"},
		{LedgerID: 4, Credit: amount(30), ReferenceID: ref(9), ReferenceNo: "INV-3", ReferenceKind: vouchers.RefPurchase},
	}

	d = Recompute(d)
	require.Len(t, d.Lines, 4)

	require.Nil(t, d.Lines[0].ReferenceID)
	require.Empty(t, d.Lines[0].ReferenceNo)
	require.Equal(t, vouchers.RefNone, d.Lines[0].ReferenceKind)

	require.Nil(t, d.Lines[1].ReferenceID)
	require.Equal(t, vouchers.RefNone, d.Lines[1].ReferenceKind)

	require.Equal(t, "INV-2", d.Lines[2].ReferenceNo)
	require.Equal(t, vouchers.RefNone, d.Lines[2].ReferenceKind)

	require.Equal(t, int64(9), *d.Lines[3].ReferenceID)
	require.Equal(t, vouchers.RefPurchase, d.Lines[3].ReferenceKind)
}

func TestRecomputeIsIdempotent(t *testing.T) {
	d := NewDraft(1, 10, time.Now())
	d, _ = AddLine(d, Line{LedgerID: 1, Debit: amount(123.45)})
	d, _ = AddLine(d, Line{LedgerID: 2, Credit: amount(123.45)})

	again := Recompute(d)
	require.Equal(t, d.TotalDebit, again.TotalDebit)
	require.Equal(t, d.TotalCredit, again.TotalCredit)
	require.Equal(t, d.Lines, again.Lines)
}

func TestValidatePreconditions(t *testing.T) {
	base := NewDraft(1, 10, time.Now())
	base, _ = AddLine(base, Line{LedgerID: 1, Debit: amount(100)})
	base, _ = AddLine(base, Line{LedgerID: 2, Credit: amount(100)})

	for _, tc := range []struct {
		name    string
		mutate  func(Draft) Draft
		wantErr error
	}{
		{"missing company", func(d Draft) Draft { d.CompanyID = 0; return d }, shared.ErrCompanyRequired},
		{"missing voucher", func(d Draft) Draft { d.VoucherID = 0; return d }, shared.ErrVoucherRequired},
		{"no lines", func(d Draft) Draft { d.Lines = nil; return Recompute(d) }, shared.ErrEmptyCart},
		{"unbalanced", func(d Draft) Draft {
			d.Lines = d.Lines[:1]
			return Recompute(d)
		}, shared.ErrUnbalanced},
	} {
		t.Run(tc.name, func(t *testing.T) {
			err := Validate(tc.mutate(base))
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("expected %v, got %v", tc.wantErr, err)
			}
		})
	}
}
