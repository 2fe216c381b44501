package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"caseflow/internal/application/assignment/usecases"
	"caseflow/internal/shared/logger"
	"caseflow/internal/shared/utils"
)

type AssignmentHandler struct {
	autoAssignUC     usecases.AutoAssignExecutor
	manualOverrideUC usecases.ManualOverrideExecutor
	completeUC       usecases.CompleteAssignmentExecutor
	reassignUC       usecases.ReassignAssignmentExecutor
	getAssignmentUC  *usecases.GetAssignmentUseCase
	listUC           usecases.ListAssignmentsExecutor
	myAssignmentsUC  usecases.GetMyAssignmentsExecutor
	logger           logger.Interface
}

func NewAssignmentHandler(
	autoAssignUC usecases.AutoAssignExecutor,
	manualOverrideUC usecases.ManualOverrideExecutor,
	completeUC usecases.CompleteAssignmentExecutor,
	reassignUC usecases.ReassignAssignmentExecutor,
	getAssignmentUC *usecases.GetAssignmentUseCase,
	listUC usecases.ListAssignmentsExecutor,
	myAssignmentsUC usecases.GetMyAssignmentsExecutor,
) *AssignmentHandler {
	return &AssignmentHandler{
		autoAssignUC:     autoAssignUC,
		manualOverrideUC: manualOverrideUC,
		completeUC:       completeUC,
		reassignUC:       reassignUC,
		getAssignmentUC:  getAssignmentUC,
		listUC:           listUC,
		myAssignmentsUC:  myAssignmentsUC,
		logger:           logger.NewLogger(),
	}
}

type AutoAssignRequest struct {
	WorkItemID     string   `json:"work_item_id" binding:"required,max=64"`
	WorkItemType   string   `json:"work_item_type" binding:"required"`
	Priority       string   `json:"priority" binding:"required"`
	RequiredSkills []string `json:"required_skills"`
	TargetUnitID   *uint    `json:"target_unit_id"`
	Notes          string   `json:"notes" binding:"max=2000"`
}

type ManualOverrideRequest struct {
	WorkItemID     string   `json:"work_item_id" binding:"required,max=64"`
	WorkItemType   string   `json:"work_item_type" binding:"required"`
	Priority       string   `json:"priority" binding:"required"`
	RequiredSkills []string `json:"required_skills"`
	AssigneeID     uint     `json:"assignee_id" binding:"required"`
	Reason         string   `json:"reason" binding:"required,max=2000"`
}

type CompleteAssignmentRequest struct {
	Outcome string `json:"outcome" binding:"required,oneof=completed cancelled"`
}

type ReassignAssignmentRequest struct {
	NewAssigneeID uint `json:"new_assignee_id" binding:"required"`
}

func (h *AssignmentHandler) AutoAssign(c *gin.Context) {
	var req AutoAssignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for auto assign", "error", err)
		utils.ErrorResponseWithError(c, utils.BindingError(err))
		return
	}

	cmd := usecases.AutoAssignCommand{
		WorkItemID:     req.WorkItemID,
		WorkItemType:   req.WorkItemType,
		Priority:       req.Priority,
		RequiredSkills: req.RequiredSkills,
		TargetUnitID:   req.TargetUnitID,
		Notes:          sanitize(req.Notes),
	}

	result, err := h.autoAssignUC.Execute(c.Request.Context(), cmd)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	if result.Outcome == usecases.OutcomeAssigned {
		utils.CreatedResponse(c, result, "Work item assigned")
		return
	}
	utils.SuccessResponse(c, http.StatusAccepted, "Work item queued", result)
}

func (h *AssignmentHandler) ManualOverride(c *gin.Context) {
	actingUserID, actingRole, err := actingIdentity(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req ManualOverrideRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for manual override", "error", err)
		utils.ErrorResponseWithError(c, utils.BindingError(err))
		return
	}

	cmd := usecases.ManualOverrideCommand{
		WorkItemID:     req.WorkItemID,
		WorkItemType:   req.WorkItemType,
		Priority:       req.Priority,
		RequiredSkills: req.RequiredSkills,
		AssigneeID:     req.AssigneeID,
		ActingUserID:   actingUserID,
		ActingRole:     actingRole,
		Reason:         sanitize(req.Reason),
	}

	result, err := h.manualOverrideUC.Execute(c.Request.Context(), cmd)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, result, "Work item assigned by override")
}

func (h *AssignmentHandler) Complete(c *gin.Context) {
	actingUserID, actingRole, err := actingIdentity(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	assignmentID, err := parseIDParam(c, "id")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req CompleteAssignmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for complete assignment",
			"assignment_id", assignmentID,
			"error", err)
		utils.ErrorResponseWithError(c, utils.BindingError(err))
		return
	}

	cmd := usecases.CompleteAssignmentCommand{
		AssignmentID: assignmentID,
		Outcome:      req.Outcome,
		ActingUserID: actingUserID,
		ActingRole:   actingRole,
	}

	result, err := h.completeUC.Execute(c.Request.Context(), cmd)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Assignment finalized", result)
}

func (h *AssignmentHandler) Reassign(c *gin.Context) {
	actingUserID, actingRole, err := actingIdentity(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	assignmentID, err := parseIDParam(c, "id")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req ReassignAssignmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for reassign",
			"assignment_id", assignmentID,
			"error", err)
		utils.ErrorResponseWithError(c, utils.BindingError(err))
		return
	}

	cmd := usecases.ReassignAssignmentCommand{
		AssignmentID:  assignmentID,
		NewAssigneeID: req.NewAssigneeID,
		ActingUserID:  actingUserID,
		ActingRole:    actingRole,
	}

	result, err := h.reassignUC.Execute(c.Request.Context(), cmd)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Assignment reassigned", result)
}

func (h *AssignmentHandler) Get(c *gin.Context) {
	assignmentID, err := parseIDParam(c, "id")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.getAssignmentUC.Execute(c.Request.Context(), usecases.GetAssignmentQuery{
		AssignmentID: assignmentID,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Assignment retrieved", result)
}

func (h *AssignmentHandler) List(c *gin.Context) {
	assigneeID, err := parseUintQuery(c, "assignee_id")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
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

	cmd := usecases.ListAssignmentsCommand{
		Status:       c.Query("status"),
		Priority:     c.Query("priority"),
		WorkItemType: c.Query("work_item_type"),
		AssigneeID:   assigneeID,
		UnitID:       unitID,
		Page:         pagination.Page,
		PageSize:     pagination.PageSize,
	}

	result, err := h.listUC.Execute(c.Request.Context(), cmd)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Assignments retrieved", result)
}

// MyAssignments serves the authenticated staff member's workload dashboard.
func (h *AssignmentHandler) MyAssignments(c *gin.Context) {
	actingUserID, _, err := actingIdentity(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.myAssignmentsUC.Execute(c.Request.Context(), usecases.GetMyAssignmentsQuery{
		AssigneeID: actingUserID,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Workload retrieved", result)
}
