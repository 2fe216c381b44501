package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"caseflow/internal/application/assignment/usecases"
	"caseflow/internal/shared/logger"
	"caseflow/internal/shared/utils"
)

type QueueHandler struct {
	listQueueUC    usecases.ListQueueExecutor
	positionUC     usecases.GetQueuePositionExecutor
	removeEntryUC  usecases.RemoveQueueEntryExecutor
	logger         logger.Interface
}

func NewQueueHandler(
	listQueueUC usecases.ListQueueExecutor,
	positionUC usecases.GetQueuePositionExecutor,
	removeEntryUC usecases.RemoveQueueEntryExecutor,
) *QueueHandler {
	return &QueueHandler{
		listQueueUC:   listQueueUC,
		positionUC:    positionUC,
		removeEntryUC: removeEntryUC,
		logger:        logger.NewLogger(),
	}
}

func (h *QueueHandler) List(c *gin.Context) {
	unitID, err := parseUintQuery(c, "unit_id")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	pagination, err := utils.ParsePagination(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	cmd := usecases.ListQueueCommand{
		Priority:     c.Query("priority"),
		WorkItemType: c.Query("work_item_type"),
		UnitID:       unitID,
		Page:         pagination.Page,
		PageSize:     pagination.PageSize,
	}

	result, err := h.listQueueUC.Execute(c.Request.Context(), cmd)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Queue retrieved", result)
}

func (h *QueueHandler) Position(c *gin.Context) {
	workItemID := c.Param("work_item_id")

	result, err := h.positionUC.Execute(c.Request.Context(), usecases.GetQueuePositionQuery{
		WorkItemID: workItemID,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Queue position retrieved", result)
}

func (h *QueueHandler) Remove(c *gin.Context) {
	actingUserID, actingRole, err := actingIdentity(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	entryID, err := parseIDParam(c, "id")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	cmd := usecases.RemoveQueueEntryCommand{
		QueueEntryID: entryID,
		ActingUserID: actingUserID,
		ActingRole:   actingRole,
	}

	result, err := h.removeEntryUC.Execute(c.Request.Context(), cmd)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Queue entry removed", result)
}
