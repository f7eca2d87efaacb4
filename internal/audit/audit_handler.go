package audit

import (
	"strconv"

	"leavedesk/internal/shared/apperror"
	"leavedesk/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	service Service
	logger  *zap.Logger
}

func NewHandler(service Service, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("audit.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("audit.handler")
	}
	return &Handler{service: service, logger: l}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	h.logger.Warn("audit request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Int("status", httpErr.Status),
		zap.String("code", httpErr.Code),
	)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func pageParams(c *gin.Context) (int, int) {
	skip, _ := strconv.Atoi(c.DefaultQuery("skip", "0"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))
	return skip, limit
}

func (h *Handler) GetAll(c *gin.Context) {
	skip, limit := pageParams(c)

	resp, total, err := h.service.List(c.Request.Context(), skip, limit)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	meta := response.NewPaginationMeta(total, skip, limit)
	response.Success(c, 200, resp, &meta)
}

func (h *Handler) GetByActor(c *gin.Context) {
	actorType := c.Param("actor_type")
	actorID := c.Param("actor_id")
	skip, limit := pageParams(c)

	resp, err := h.service.ListByActor(c.Request.Context(), actorType, actorID, skip, limit)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, 200, resp, nil)
}
