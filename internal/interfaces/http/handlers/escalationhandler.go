package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"caseflow/internal/application/escalation/usecases"
	"caseflow/internal/shared/errors"
	"caseflow/internal/shared/logger"
	"caseflow/internal/shared/utils"
)

type EscalationHandler struct {
	reportUC      usecases.EscalationReportExecutor
	acknowledgeUC usecases.AcknowledgeEscalationExecutor
	resolveUC     usecases.ResolveEscalationExecutor
	logger        logger.Interface
}

func NewEscalationHandler(
	reportUC usecases.EscalationReportExecutor,
	acknowledgeUC usecases.AcknowledgeEscalationExecutor,
	resolveUC usecases.ResolveEscalationExecutor,
) *EscalationHandler {
	return &EscalationHandler{
		reportUC:      reportUC,
		acknowledgeUC: acknowledgeUC,
		resolveUC:     resolveUC,
		logger:        logger.NewLogger(),
	}
}

type AcknowledgeEscalationRequest struct {
	Notes string `json:"notes" binding:"max=2000"`
}

type ResolveEscalationRequest struct {
	Resolution string `json:"resolution" binding:"required,max=2000"`
}

// Report serves escalation aggregations over a half-open [start, end) range.
// Dates are accepted as RFC 3339 timestamps or plain YYYY-MM-DD days.
func (h *EscalationHandler) Report(c *gin.Context) {
	start, err := parseTimeQuery(c, "start")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	end, err := parseTimeQuery(c, "end")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	unitID, err := parseUintQuery(c, "unit_id")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	assigneeID, err := parseUintQuery(c, "assignee_id")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	query := usecases.EscalationReportQuery{
		Start:        start,
		End:          end,
		UnitID:       unitID,
		AssigneeID:   assigneeID,
		WorkItemType: c.Query("work_item_type"),
	}

	result, err := h.reportUC.Execute(c.Request.Context(), query)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Escalation report generated", result)
}

func (h *EscalationHandler) Acknowledge(c *gin.Context) {
	actingUserID, _, err := actingIdentity(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	escalationID, err := parseIDParam(c, "id")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req AcknowledgeEscalationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for acknowledge escalation",
			"escalation_id", escalationID,
			"error", err)
		utils.ErrorResponseWithError(c, utils.BindingError(err))
		return
	}

	cmd := usecases.AcknowledgeEscalationCommand{
		EscalationID: escalationID,
		ActingUserID: actingUserID,
		Notes:        sanitize(req.Notes),
	}

	result, err := h.acknowledgeUC.Execute(c.Request.Context(), cmd)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Escalation acknowledged", result)
}

func (h *EscalationHandler) Resolve(c *gin.Context) {
	actingUserID, _, err := actingIdentity(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	escalationID, err := parseIDParam(c, "id")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req ResolveEscalationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for resolve escalation",
			"escalation_id", escalationID,
			"error", err)
		utils.ErrorResponseWithError(c, utils.BindingError(err))
		return
	}

	cmd := usecases.ResolveEscalationCommand{
		EscalationID: escalationID,
		ActingUserID: actingUserID,
		Resolution:   sanitize(req.Resolution),
	}

	result, err := h.resolveUC.Execute(c.Request.Context(), cmd)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Escalation resolved", result)
}

func parseTimeQuery(c *gin.Context, key string) (time.Time, error) {
	raw := c.Query(key)
	if raw == "" {
		return time.Time{}, errors.NewValidationError(key + " is required")
	}

	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	if t, err := time.Parse("2006-01-02", raw); err == nil {
		return t, nil
	}
	return time.Time{}, errors.NewValidationError("invalid " + key + " timestamp")
}
