package leavetypeerrors

import (
	"net/http"

	"leavedesk/internal/shared/apperror"
)

var (
	ErrLeaveTypeNotFound = apperror.New(
		apperror.CodeNotFound,
		"leave type not found",
		http.StatusNotFound,
	)
	ErrNameTaken = apperror.New(
		apperror.CodeConflict,
		"leave type with this name already exists",
		http.StatusConflict,
	)
	ErrNumericName = apperror.New(
		apperror.CodeInvalidInput,
		"leave type name cannot be only numbers",
		http.StatusBadRequest,
	)
	ErrInvalidLeaveTypeID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid leave type id",
		http.StatusBadRequest,
	)
	ErrLeaveTypeInUse = apperror.New(
		apperror.CodeInvalidState,
		"leave type is referenced by existing leaves or balances",
		http.StatusBadRequest,
	)
)
