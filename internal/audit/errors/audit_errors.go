package auditerrors

import (
	"net/http"

	"leavedesk/internal/shared/apperror"
)

var (
	ErrInvalidActorType = apperror.New(
		apperror.CodeInvalidInput,
		"invalid actor type, must be 'admin', 'manager' or 'employee'",
		http.StatusBadRequest,
	)
	ErrInvalidActorID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid actor id",
		http.StatusBadRequest,
	)
)
