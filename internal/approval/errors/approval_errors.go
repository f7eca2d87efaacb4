package approvalerrors

import (
	"net/http"

	"leavedesk/internal/shared/apperror"
)

var (
	ErrApprovalNotFound = apperror.New(
		apperror.CodeNotFound,
		"approval not found",
		http.StatusNotFound,
	)
	ErrInvalidDecision = apperror.New(
		apperror.CodeInvalidInput,
		"decision must be approved or rejected",
		http.StatusBadRequest,
	)
	ErrApproverNotFound = apperror.New(
		apperror.CodeNotFound,
		"approving manager not found",
		http.StatusNotFound,
	)
)
