package domain

import "github.com/SscSPs/player_tracker/internal/apperrors"

// Rating slip errors.
var (
	ErrSlipNotOpen          = apperrors.New("RATING_SLIP_NOT_OPEN", apperrors.ErrConflict, "rating slip is not open")
	ErrSlipNotPaused        = apperrors.New("RATING_SLIP_NOT_PAUSED", apperrors.ErrConflict, "rating slip is not paused")
	ErrSlipInvalidState     = apperrors.New("RATING_SLIP_INVALID_STATE", apperrors.ErrConflict, "rating slip is closed")
	ErrSlipDuplicateActive  = apperrors.New("RATING_SLIP_DUPLICATE_ACTIVE", apperrors.ErrConflict, "player already has an open rating slip at this table")
	ErrSlipAverageBetNeeded = apperrors.New("RATING_SLIP_AVERAGE_BET_REQUIRED", apperrors.ErrValidation, "average bet is required to close a rating slip")
	ErrSlipInvalidBet       = apperrors.New("RATING_SLIP_INVALID_AVERAGE_BET", apperrors.ErrValidation, "average bet must not be negative")
	ErrSlipSameSeat         = apperrors.New("RATING_SLIP_MOVE_SAME_SEAT", apperrors.ErrValidation, "move target is the current table and seat")
	ErrSlipNotClosed        = apperrors.New("RATING_SLIP_NOT_CLOSED", apperrors.ErrConflict, "rating slip is still active")
	ErrSlipNotFound         = apperrors.New("RATING_SLIP_NOT_FOUND", apperrors.ErrNotFound, "rating slip not found")
)

// Visit errors.
var (
	ErrVisitNotFound        = apperrors.New("VISIT_NOT_FOUND", apperrors.ErrNotFound, "visit not found")
	ErrVisitEnded           = apperrors.New("VISIT_ENDED", apperrors.ErrConflict, "visit has already ended")
	ErrVisitAlreadyActive   = apperrors.New("VISIT_ALREADY_ACTIVE", apperrors.ErrConflict, "player already has an active visit")
	ErrVisitHasActiveSlips  = apperrors.New("VISIT_HAS_ACTIVE_SLIPS", apperrors.ErrConflict, "visit still has open or paused rating slips")
	ErrVisitPlayerMismatch  = apperrors.New("VISIT_PLAYER_MISMATCH", apperrors.ErrValidation, "visit does not belong to the player")
	ErrPlayerNotFound       = apperrors.New("PLAYER_NOT_FOUND", apperrors.ErrNotFound, "player not found")
	ErrPlayerInactive       = apperrors.New("PLAYER_INACTIVE", apperrors.ErrConflict, "player is not active")
	ErrTableNotFound        = apperrors.New("TABLE_NOT_FOUND", apperrors.ErrNotFound, "gaming table not found")
	ErrTableNotActive       = apperrors.New("TABLE_NOT_ACTIVE", apperrors.ErrConflict, "gaming table is not active")
	ErrTableHasActiveSlips  = apperrors.New("TABLE_HAS_ACTIVE_SLIPS", apperrors.ErrConflict, "gaming table still has open or paused rating slips")
	ErrTableLabelTaken      = apperrors.New("TABLE_LABEL_TAKEN", apperrors.ErrDuplicate, "a gaming table with this label already exists")
	ErrSeatOutOfRange       = apperrors.New("SEAT_OUT_OF_RANGE", apperrors.ErrValidation, "seat number is outside the table's seats")
	ErrInvalidTableStatus   = apperrors.New("TABLE_INVALID_STATUS", apperrors.ErrValidation, "unknown gaming table status")
	ErrInvalidTableSettings = apperrors.New("TABLE_INVALID_SETTINGS", apperrors.ErrValidation, "gaming table settings are invalid")
)

// Financial and loyalty errors.
var (
	ErrTxnInvalidAmount     = apperrors.New("FINANCIAL_INVALID_AMOUNT", apperrors.ErrValidation, "amount must be greater than zero")
	ErrTxnInvalidDirection  = apperrors.New("FINANCIAL_INVALID_DIRECTION", apperrors.ErrValidation, "direction must be 'in' or 'out'")
	ErrTxnInvalidTender     = apperrors.New("FINANCIAL_INVALID_TENDER", apperrors.ErrValidation, "unknown tender type")
	ErrTxnRoleNotPermitted  = apperrors.New("FINANCIAL_ROLE_NOT_PERMITTED", apperrors.ErrForbidden, "staff role may not record this direction and tender")
	ErrIdempotencyKeyReused = apperrors.New("IDEMPOTENCY_KEY_REUSED", apperrors.ErrConflict, "idempotency key was already used for a different request")
	ErrIdempotencyKeyNeeded = apperrors.New("IDEMPOTENCY_KEY_REQUIRED", apperrors.ErrValidation, "Idempotency-Key header is required")
	ErrLedgerImmutable      = apperrors.New("LEDGER_IMMUTABLE", apperrors.ErrForbidden, "ledger rows cannot be modified")
	ErrTxnNotFound          = apperrors.New("FINANCIAL_TRANSACTION_NOT_FOUND", apperrors.ErrNotFound, "financial transaction not found")
	ErrLoyaltyZeroPoints    = apperrors.New("LOYALTY_ZERO_POINTS", apperrors.ErrValidation, "points adjustment must not be zero")
	ErrLoyaltyInsufficient  = apperrors.New("LOYALTY_INSUFFICIENT_BALANCE", apperrors.ErrConflict, "adjustment would make the points balance negative")
)

// Casino and staff errors.
var (
	ErrInvalidTimezone    = apperrors.New("CASINO_INVALID_TIMEZONE", apperrors.ErrValidation, "timezone is not a valid IANA zone")
	ErrInvalidGamingStart = apperrors.New("CASINO_INVALID_GAMING_DAY_START", apperrors.ErrValidation, "gaming day start must be HH:MM")
	ErrStaffRoleRequired  = apperrors.New("STAFF_ROLE_NOT_PERMITTED", apperrors.ErrForbidden, "staff role is not permitted to perform this action")
	ErrInvalidStaffRole   = apperrors.New("STAFF_INVALID_ROLE", apperrors.ErrValidation, "unknown staff role")
	ErrStaffEmailTaken    = apperrors.New("STAFF_EMAIL_TAKEN", apperrors.ErrDuplicate, "a staff member with this email already exists")
	ErrInvalidCredentials = apperrors.New("AUTH_INVALID_CREDENTIALS", apperrors.ErrUnauthorized, "invalid email or password")
	ErrStaffInactive      = apperrors.New("STAFF_INACTIVE", apperrors.ErrUnauthorized, "staff account is disabled")
	ErrCasinoNotFound     = apperrors.New("CASINO_NOT_FOUND", apperrors.ErrNotFound, "casino not found")
)
