package adminerrors

import (
	"net/http"

	"leavedesk/internal/shared/apperror"
)

var (
	ErrAdminNotFound = apperror.New(
		apperror.CodeNotFound,
		"admin not found",
		http.StatusNotFound,
	)
	ErrEmailTaken = apperror.New(
		apperror.CodeConflict,
		"admin with this email already exists",
		http.StatusConflict,
	)
	ErrInvalidAdminID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid admin id",
		http.StatusBadRequest,
	)
)
