package apperrors

import "errors"

// Domain entity errors represent missing or invalid entities in the system.
// These errors indicate that a requested resource does not exist.
var (
	// ErrFundNotFound indicates that a fund with the given ID does not exist.
	ErrFundNotFound = errors.New("fund not found")

	// ErrTransactionNotFound indicates that a transaction with the given ID does not exist.
	ErrTransactionNotFound = errors.New("transaction not found")

	// ErrTreasurerNotFound indicates that a treasurer with the given ID does not exist.
	ErrTreasurerNotFound = errors.New("treasurer not found")

	// ErrSettingNotFound indicates that a system setting key has no stored value.
	ErrSettingNotFound = errors.New("system setting not found")
)

// Business logic errors represent validation failures or constraint violations.
// These errors indicate that an operation cannot be completed due to business rules.
var (
	// ErrInsufficientFunds indicates that a withdrawal cannot be completed
	// because the fund balance is lower than the requested amount.
	ErrInsufficientFunds = errors.New("insufficient funds for withdrawal")

	// ErrNonPositiveAmount indicates that an offering or withdrawal amount
	// is zero, negative, or unparsable.
	ErrNonPositiveAmount = errors.New("amount must be positive")

	// ErrUndoWindowExpired indicates that a reversal was attempted after the
	// five minute undo window closed.
	ErrUndoWindowExpired = errors.New("undo window expired")

	// ErrFundInUse indicates that a fund cannot be deleted because
	// transactions or splits still reference it.
	ErrFundInUse = errors.New("fund is in use")

	// ErrInvalidUUID indicates that a provided ID is not a valid UUID format.
	ErrInvalidUUID = errors.New("invalid UUID format")

	// ErrEmptyID indicates that a required ID parameter is empty or missing.
	ErrEmptyID = errors.New("ID cannot be empty")

	// ErrDuplicateEntry indicates that an entity with the same unique constraint already exists.
	ErrDuplicateEntry = errors.New("duplicate entry")

	// ErrTreasurerAlreadyApproved indicates that an approval was issued for a
	// treasurer that is already approved.
	ErrTreasurerAlreadyApproved = errors.New("treasurer already approved")
)

// Configuration errors represent invalid allocation setup rather than bad input.
var (
	// ErrRemainderFundNotConfigured indicates that no remainder fund has been
	// designated, or the designated fund no longer exists. Quick splits cannot
	// run without a fund to absorb the rounding residual.
	ErrRemainderFundNotConfigured = errors.New("remainder fund not configured")

	// ErrNoEligibleFunds indicates that a quick split found no fund with a
	// positive default percentage outside the remainder fund, and the
	// remainder fund itself is set to 0%.
	ErrNoEligibleFunds = errors.New("no funds with a positive default percentage")

	// ErrPercentagesNotHundred indicates that a default split configuration
	// does not sum to 100%.
	ErrPercentagesNotHundred = errors.New("default percentages must sum to 100%")

	// ErrPercentageOutOfRange indicates a default percentage outside 0-100.
	ErrPercentageOutOfRange = errors.New("percentage must be between 0 and 100")
)

// Operation failure errors represent system-level failures when retrieving or
// processing data. These errors indicate that an operation failed, but not due
// to missing entities or validation issues.
var (
	ErrFailedToRetrieveFunds        = errors.New("failed to retrieve funds")
	ErrFailedToRetrieveFund         = errors.New("failed to retrieve fund")
	ErrFailedToRetrieveTransactions = errors.New("failed to retrieve transactions")
	ErrFailedToRetrieveTransaction  = errors.New("failed to retrieve transaction")
	ErrFailedToRetrieveTreasurers   = errors.New("failed to retrieve treasurers")
	ErrFailedToRetrieveSummary      = errors.New("failed to retrieve summary")
)

// Data integrity errors represent inconsistencies or corruption in the data.
var (
	// ErrDataInconsistency indicates that the data is in an inconsistent state
	// (e.g., a split references a transaction that no longer exists). Any
	// mutation that hits this error aborts its enclosing database transaction.
	ErrDataInconsistency = errors.New("data inconsistency detected")

	// ErrMissingRequiredField indicates that a required field is missing or empty.
	ErrMissingRequiredField = errors.New("missing required field")
)
