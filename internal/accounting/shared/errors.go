package shared

import "errors"

var (
	// ErrUnbalanced indicates total debit != total credit.
	ErrUnbalanced = errors.New("accounting: transaction lines must balance")
	// ErrEmptyCart indicates no surviving lines after recompute.
	ErrEmptyCart = errors.New("accounting: transaction requires at least one line")
	// ErrZeroTotals indicates both totals are zero.
	ErrZeroTotals = errors.New("accounting: transaction total must be positive")
	// ErrLedgerRequired indicates a line without a ledger.
	ErrLedgerRequired = errors.New("accounting: line requires a ledger")
	// ErrBothAmounts indicates debit and credit set on one line.
	ErrBothAmounts = errors.New("accounting: line cannot carry both debit and credit")
	// ErrNoAmount indicates neither debit nor credit set.
	ErrNoAmount = errors.New("accounting: line requires a debit or credit amount")
	// ErrNegativeAmount indicates a negative debit or credit.
	ErrNegativeAmount = errors.New("accounting: line amount cannot be negative")
	// ErrLineNotFound indicates a detach of a line that is not in the cart.
	ErrLineNotFound = errors.New("accounting: line not found in cart")
	// ErrVoucherRequired indicates the header is missing a voucher type.
	ErrVoucherRequired = errors.New("accounting: voucher required")
	// ErrCompanyRequired indicates the header is missing a company.
	ErrCompanyRequired = errors.New("accounting: company required")

	// ErrYearNotFound indicates no financial year covers the date.
	ErrYearNotFound = errors.New("accounting: no financial year for date")
	// ErrYearLocked indicates the financial year is locked.
	ErrYearLocked = errors.New("accounting: financial year locked")
	// ErrYearInactive indicates the financial year is not active.
	ErrYearInactive = errors.New("accounting: financial year inactive")

	// ErrTransactionNotFound indicates a missing transaction header.
	ErrTransactionNotFound = errors.New("accounting: transaction not found")
	// ErrEditForbidden indicates a non-privileged edit of a posted transaction.
	ErrEditForbidden = errors.New("accounting: editing a posted transaction requires admin")
	// ErrAlreadyVoided indicates a void of an already voided transaction.
	ErrAlreadyVoided = errors.New("accounting: transaction already voided")
	// ErrReferenceSettled indicates the referenced document was settled by a
	// concurrent posting between selection and commit.
	ErrReferenceSettled = errors.New("accounting: reference already settled")

	// ErrLedgerNotFound indicates a missing ledger.
	ErrLedgerNotFound = errors.New("accounting: ledger not found")
	// ErrDuplicateLedger indicates name/code collision among active ledgers.
	ErrDuplicateLedger = errors.New("accounting: ledger name or code already in use")
	// ErrVoucherNotFound indicates a missing voucher type.
	ErrVoucherNotFound = errors.New("accounting: voucher not found")
)
