package balanceerrors

import (
	"net/http"

	"leavedesk/internal/shared/apperror"
)

var (
	ErrBalanceNotFound = apperror.New(
		apperror.CodeNotFound,
		"leave balance not found",
		http.StatusNotFound,
	)
	ErrInvalidBalanceID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid balance id",
		http.StatusBadRequest,
	)
	ErrBalanceExists = apperror.New(
		apperror.CodeConflict,
		"a balance for this employee and leave type already exists",
		http.StatusConflict,
	)
	ErrInvalidAllocation = apperror.New(
		apperror.CodeInvalidInput,
		"allocated days must be greater than zero",
		http.StatusBadRequest,
	)
	ErrInsufficientBalance = apperror.New(
		apperror.CodeInsufficientBalance,
		"insufficient remaining balance for this leave",
		http.StatusUnprocessableEntity,
	)
)
