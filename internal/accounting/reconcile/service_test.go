package reconcile

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/millstone-erp/millstone-erp/internal/accounting/fiscal"
	"github.com/millstone-erp/millstone-erp/internal/accounting/shared"
	"github.com/millstone-erp/millstone-erp/internal/accounting/vouchers"
)

type stubYears struct {
	year fiscal.FinancialYear
}

func (s stubYears) FindByDate(_ context.Context, date time.Time) (fiscal.FinancialYear, error) {
	if s.year.Contains(date) {
		return s.year, nil
	}
	return fiscal.FinancialYear{}, shared.ErrYearNotFound
}

func (s stubYears) FindByID(_ context.Context, id int64) (fiscal.FinancialYear, error) {
	if s.year.ID == id {
		return s.year, nil
	}
	return fiscal.FinancialYear{}, shared.ErrYearNotFound
}

func (s stubYears) List(_ context.Context) ([]fiscal.FinancialYear, error) {
	return []fiscal.FinancialYear{s.year}, nil
}

type stubRows struct {
	rows     []Row
	warnings []Warning
	gotFrom  time.Time
	gotTo    time.Time
}

func (s *stubRows) LedgerRows(_ context.Context, _ int64, from, to time.Time) ([]Row, []Warning, error) {
	s.gotFrom, s.gotTo = from, to
	return s.rows, s.warnings, nil
}

func TestOutstandingWindowsToFinancialYear(t *testing.T) {
	year := fiscal.FinancialYear{ID: 2, StartDate: day(1), EndDate: day(30), Active: true}
	stub := &stubRows{rows: []Row{
		{LineID: 1, Date: day(2), Debit: 400, ReferenceID: ref(10), ReferenceNo: "INV-10", ReferenceKind: vouchers.RefSale},
	}}
	service := NewService(stub, fiscal.NewResolver(stubYears{year: year}))

	asOf := day(15)
	groups, warnings, err := service.Outstanding(context.Background(), 4, asOf)
	require.NoError(t, err)
	require.Empty(t, warnings)
	require.Len(t, groups, 1)
	require.Equal(t, 400.0, groups[0].Outstanding())

	// the load window runs from the year start to the working date, not the
	// year end: later postings must not leak into the view
	require.Equal(t, year.StartDate, stub.gotFrom)
	require.Equal(t, asOf, stub.gotTo)
}

func TestOutstandingUnresolvedPeriod(t *testing.T) {
	year := fiscal.FinancialYear{ID: 2, StartDate: day(1), EndDate: day(30), Active: true}
	service := NewService(&stubRows{}, fiscal.NewResolver(stubYears{year: year}))

	_, _, err := service.Outstanding(context.Background(), 4, time.Date(2031, 1, 1, 0, 0, 0, 0, time.UTC))
	require.ErrorIs(t, err, shared.ErrYearNotFound)
}

func TestOutstandingPropagatesWarnings(t *testing.T) {
	year := fiscal.FinancialYear{ID: 2, StartDate: day(1), EndDate: day(30), Active: true}
	stub := &stubRows{warnings: []Warning{{LineID: 3, Reason: "ledger 99 not found"}}}
	service := NewService(stub, fiscal.NewResolver(stubYears{year: year}))

	groups, warnings, err := service.Outstanding(context.Background(), 4, day(15))
	require.NoError(t, err)
	require.Empty(t, groups)
	require.Len(t, warnings, 1)
}
