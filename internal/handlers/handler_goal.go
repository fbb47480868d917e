package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/famledger/family_finance_app/internal/core/ports/services"
	"github.com/famledger/family_finance_app/internal/dto"
)

type goalHandler struct {
	goalService portssvc.GoalSvcFacade
}

func newGoalHandler(gs portssvc.GoalSvcFacade) *goalHandler {
	return &goalHandler{goalService: gs}
}

// registerGoalRoutes registers the savings goal routes.
func registerGoalRoutes(rg *gin.RouterGroup, goalService portssvc.GoalSvcFacade) {
	h := newGoalHandler(goalService)

	goals := rg.Group("/goals")
	{
		goals.POST("", h.createGoal)
		goals.GET("", h.listGoals)
		goals.GET("/:goalID", h.getGoalByID)
		goals.PATCH("/:goalID", h.updateGoal)
		goals.DELETE("/:goalID", h.deleteGoal)
		goals.POST("/:goalID/add-funds", h.addFunds)
		goals.POST("/:goalID/withdraw-funds", h.withdrawFunds)
		goals.POST("/:goalID/transfer", h.transferFunds)
	}
}

// createGoal godoc
// @Summary Create a savings goal
// @Tags goals
// @Accept json
// @Produce json
// @Param goal body dto.CreateGoalRequest true "Goal details"
// @Success 201 {object} dto.GoalResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /goals [post]
func (h *goalHandler) createGoal(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req dto.CreateGoalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	goal, err := h.goalService.CreateGoal(c.Request.Context(), userID, req)
	if err != nil {
		respondServiceError(c, err, "Failed to create goal")
		return
	}
	c.JSON(http.StatusCreated, dto.ToGoalResponse(goal))
}

// listGoals godoc
// @Summary List savings goals
// @Tags goals
// @Produce json
// @Success 200 {array} dto.GoalResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /goals [get]
func (h *goalHandler) listGoals(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	goals, err := h.goalService.ListGoals(c.Request.Context(), userID)
	if err != nil {
		respondServiceError(c, err, "Failed to list goals")
		return
	}
	c.JSON(http.StatusOK, dto.ToGoalResponses(goals))
}

// getGoalByID godoc
// @Summary Get a savings goal
// @Tags goals
// @Produce json
// @Param goalID path string true "Goal ID"
// @Success 200 {object} dto.GoalResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /goals/{goalID} [get]
func (h *goalHandler) getGoalByID(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	goal, err := h.goalService.GetGoalByID(c.Request.Context(), userID, c.Param("goalID"))
	if err != nil {
		respondServiceError(c, err, "Failed to retrieve goal")
		return
	}
	c.JSON(http.StatusOK, dto.ToGoalResponse(goal))
}

// updateGoal godoc
// @Summary Update a savings goal
// @Description Patches a goal's name, target amount and due date. A target change recomputes the status.
// @Tags goals
// @Accept json
// @Produce json
// @Param goalID path string true "Goal ID"
// @Param goal body dto.UpdateGoalRequest true "Fields to change"
// @Success 200 {object} dto.GoalResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /goals/{goalID} [patch]
func (h *goalHandler) updateGoal(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateGoalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	goal, err := h.goalService.UpdateGoal(c.Request.Context(), userID, c.Param("goalID"), req)
	if err != nil {
		respondServiceError(c, err, "Failed to update goal")
		return
	}
	c.JSON(http.StatusOK, dto.ToGoalResponse(goal))
}

// deleteGoal godoc
// @Summary Delete a savings goal
// @Description Removes a goal. Goals still holding saved funds are refused.
// @Tags goals
// @Param goalID path string true "Goal ID"
// @Success 204
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Goal still holds saved funds"
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /goals/{goalID} [delete]
func (h *goalHandler) deleteGoal(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	if err := h.goalService.DeleteGoal(c.Request.Context(), userID, c.Param("goalID")); err != nil {
		respondServiceError(c, err, "Failed to delete goal")
		return
	}
	c.Status(http.StatusNoContent)
}

// addFunds godoc
// @Summary Add funds to a goal
// @Description Moves funds from the running balance into the goal via an expense entry on the reserved funding category.
// @Tags goals
// @Accept json
// @Produce json
// @Param goalID path string true "Goal ID"
// @Param funds body dto.GoalFundsRequest true "Amount to move"
// @Success 200 {object} dto.GoalResponse
// @Failure 400 {object} ErrorResponse "Non-positive amount or insufficient balance"
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /goals/{goalID}/add-funds [post]
func (h *goalHandler) addFunds(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req dto.GoalFundsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	goal, err := h.goalService.AddFunds(c.Request.Context(), userID, c.Param("goalID"), req.Amount)
	if err != nil {
		respondServiceError(c, err, "Failed to add funds to goal")
		return
	}
	c.JSON(http.StatusOK, dto.ToGoalResponse(goal))
}

// withdrawFunds godoc
// @Summary Withdraw funds from a goal
// @Description Moves saved funds back to the running balance via an income entry on the reserved withdrawal category.
// @Tags goals
// @Accept json
// @Produce json
// @Param goalID path string true "Goal ID"
// @Param funds body dto.GoalFundsRequest true "Amount to move"
// @Success 200 {object} dto.GoalResponse
// @Failure 400 {object} ErrorResponse "Non-positive amount or insufficient saved funds"
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /goals/{goalID}/withdraw-funds [post]
func (h *goalHandler) withdrawFunds(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req dto.GoalFundsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	goal, err := h.goalService.WithdrawFunds(c.Request.Context(), userID, c.Param("goalID"), req.Amount)
	if err != nil {
		respondServiceError(c, err, "Failed to withdraw funds from goal")
		return
	}
	c.JSON(http.StatusOK, dto.ToGoalResponse(goal))
}

// transferFunds godoc
// @Summary Transfer saved funds between goals
// @Description Reallocates saved funds from this goal into another. The running balance and the ledger are untouched.
// @Tags goals
// @Accept json
// @Produce json
// @Param goalID path string true "Source goal ID"
// @Param transfer body dto.TransferFundsRequest true "Target goal and amount"
// @Success 204
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /goals/{goalID}/transfer [post]
func (h *goalHandler) transferFunds(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req dto.TransferFundsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	if err := h.goalService.TransferFundsBetweenGoals(c.Request.Context(), userID, c.Param("goalID"), req.TargetGoalID, req.Amount); err != nil {
		respondServiceError(c, err, "Failed to transfer funds between goals")
		return
	}
	c.Status(http.StatusNoContent)
}
