package pgsql

import (
	"errors"

	"github.com/SscSPs/player_tracker/internal/apperrors"
	"github.com/SscSPs/player_tracker/internal/core/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// PostgreSQL error codes the repositories translate.
const (
	codeUniqueViolation      = "23505"
	codeForeignKeyViolation  = "23503"
	codeCheckViolation       = "23514"
	codeNotNullViolation     = "23502"
	codeInvalidTextRep       = "22P02"
	codeInsufficientPrivs    = "42501"
	codeRaiseException       = "P0001"
	codeSerializationFailure = "40001"
	codeLockNotAvailable     = "55P03"
	codeDeadlockDetected     = "40P01"
)

// uniqueConstraintErrors maps unique constraints and indexes onto the domain error their
// violation means.
var uniqueConstraintErrors = map[string]error{
	"uq_rating_slip_active_player_table": domain.ErrSlipDuplicateActive,
	"uq_rating_slip_pause_active":        domain.ErrSlipNotOpen,
	"uq_visit_active_player":             domain.ErrVisitAlreadyActive,
	"uq_gaming_table_label":              domain.ErrTableLabelTaken,
	"uq_staff_email":                     domain.ErrStaffEmailTaken,
}

// translateError converts a pgx error into an application error. msg describes the failed
// operation for logs and never reaches clients on server errors.
func translateError(err error, msg string) error {
	if err == nil {
		return nil
	}
	if alreadyTranslated(err) {
		return err
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return apperrors.ErrNotFound
	}

	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return apperrors.NewAppError(500, msg, err)
	}

	switch pgErr.Code {
	case codeUniqueViolation:
		if mapped, ok := uniqueConstraintErrors[pgErr.ConstraintName]; ok {
			return mapped
		}
		return apperrors.Wrapf(apperrors.ErrDuplicate, "%s", pgErr.ConstraintName)
	case codeForeignKeyViolation, codeCheckViolation, codeNotNullViolation, codeInvalidTextRep:
		return apperrors.Wrapf(apperrors.ErrValidation, "%s", pgErr.Message)
	case codeInsufficientPrivs:
		return apperrors.Wrapf(apperrors.ErrForbidden, "%s", pgErr.Message)
	case codeRaiseException:
		if pgErr.Hint == "ledger_immutable" {
			return domain.ErrLedgerImmutable
		}
		return apperrors.NewAppError(500, msg, err)
	case codeSerializationFailure, codeLockNotAvailable, codeDeadlockDetected:
		return apperrors.Wrapf(apperrors.ErrConflict, "concurrent update, retry the request")
	}
	return apperrors.NewAppError(500, msg, err)
}

// alreadyTranslated reports whether err already carries an application error, as happens when
// a transaction callback returns an error from a nested repository call or from a service.
func alreadyTranslated(err error) bool {
	var appErr *apperrors.AppError
	var coded *apperrors.CodedError
	if errors.As(err, &appErr) || errors.As(err, &coded) {
		return true
	}
	for _, category := range []error{
		apperrors.ErrNotFound, apperrors.ErrValidation, apperrors.ErrDuplicate,
		apperrors.ErrConflict, apperrors.ErrForbidden, apperrors.ErrUnauthorized,
	} {
		if errors.Is(err, category) {
			return true
		}
	}
	return false
}
