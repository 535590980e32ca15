package reconcile

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"github.com/millstone-erp/millstone-erp/internal/accounting/fiscal"
)

func TestHandlerDefaultsAsOfToResolverClock(t *testing.T) {
	year := fiscal.FinancialYear{ID: 2, StartDate: day(1), EndDate: day(30), Active: true}
	stub := &stubRows{}
	resolver := fiscal.NewResolver(stubYears{year: year})
	resolver.WithNow(func() time.Time { return day(15) })

	handler := NewHandler(nil, NewService(stub, resolver))
	router := chi.NewRouter()
	handler.MountRoutes(router)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ledgers/4/outstanding", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, year.StartDate, stub.gotFrom)
	require.Equal(t, day(15), stub.gotTo)
}

func TestHandlerParsesExplicitAsOf(t *testing.T) {
	year := fiscal.FinancialYear{ID: 2, StartDate: day(1), EndDate: day(30), Active: true}
	stub := &stubRows{}
	handler := NewHandler(nil, NewService(stub, fiscal.NewResolver(stubYears{year: year})))
	router := chi.NewRouter()
	handler.MountRoutes(router)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ledgers/4/outstanding?as_of=2026-04-20", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, day(20), stub.gotTo)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ledgers/4/outstanding?as_of=not-a-date", nil))
	require.Equal(t, http.StatusBadRequest, rec.Code)
}
