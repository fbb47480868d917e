package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/famledger/family_finance_app/internal/core/ports/services"
	"github.com/famledger/family_finance_app/internal/dto"
)

type familyHandler struct {
	familyService portssvc.FamilySvcFacade
}

func newFamilyHandler(fs portssvc.FamilySvcFacade) *familyHandler {
	return &familyHandler{familyService: fs}
}

// registerFamilyRoutes registers the family group and contribution routes.
func registerFamilyRoutes(rg *gin.RouterGroup, familyService portssvc.FamilySvcFacade) {
	h := newFamilyHandler(familyService)

	groups := rg.Group("/groups")
	{
		groups.POST("", h.createGroup)
		groups.GET("", h.listGroups)
		groups.GET("/:groupID/contributions", h.listContributions)
		groups.POST("/:groupID/goals/:goalID/contribute", h.contributeToGoal)
		groups.POST("/:groupID/budgets/:budgetID/contribute", h.contributeToBudget)
	}
}

// createGroup godoc
// @Summary Create a family group
// @Description Creates a group owned by the caller, who becomes its first member.
// @Tags family
// @Accept json
// @Produce json
// @Param group body dto.CreateGroupRequest true "Group details"
// @Success 201 {object} dto.GroupResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /groups [post]
func (h *familyHandler) createGroup(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req dto.CreateGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	group, err := h.familyService.CreateGroup(c.Request.Context(), userID, req)
	if err != nil {
		respondServiceError(c, err, "Failed to create group")
		return
	}
	c.JSON(http.StatusCreated, dto.ToGroupResponse(group))
}

// listGroups godoc
// @Summary List family groups
// @Description Lists the groups the caller belongs to.
// @Tags family
// @Produce json
// @Success 200 {array} dto.GroupResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /groups [get]
func (h *familyHandler) listGroups(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	groups, err := h.familyService.ListGroups(c.Request.Context(), userID)
	if err != nil {
		respondServiceError(c, err, "Failed to list groups")
		return
	}

	responses := make([]dto.GroupResponse, len(groups))
	for i := range groups {
		responses[i] = dto.ToGroupResponse(&groups[i])
	}
	c.JSON(http.StatusOK, responses)
}

// listContributions godoc
// @Summary List a group's contributions
// @Description Reconstructs the group's contribution provenance, newest first. Members only.
// @Tags family
// @Produce json
// @Param groupID path string true "Group ID"
// @Success 200 {array} dto.ContributionResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /groups/{groupID}/contributions [get]
func (h *familyHandler) listContributions(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	contributions, err := h.familyService.ListGroupContributions(c.Request.Context(), userID, c.Param("groupID"))
	if err != nil {
		respondServiceError(c, err, "Failed to list contributions")
		return
	}
	c.JSON(http.StatusOK, dto.ToContributionResponses(contributions))
}

// contributeToGoal godoc
// @Summary Contribute to a shared goal
// @Description Adds funds to a group member's goal from the caller's balance. The expense entry, balance decrement, goal update and provenance row commit together.
// @Tags family
// @Accept json
// @Produce json
// @Param groupID path string true "Group ID"
// @Param goalID path string true "Goal ID"
// @Param contribution body dto.ContributionRequest true "Amount and optional description"
// @Success 201 {object} dto.ContributionResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse "Caller or goal owner is not a group member"
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /groups/{groupID}/goals/{goalID}/contribute [post]
func (h *familyHandler) contributeToGoal(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req dto.ContributionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	contribution, err := h.familyService.ContributeToGoal(c.Request.Context(), userID, c.Param("groupID"), c.Param("goalID"), req.Amount, req.Description)
	if err != nil {
		respondServiceError(c, err, "Failed to contribute to goal")
		return
	}
	c.JSON(http.StatusCreated, dto.ToContributionResponse(contribution))
}

// contributeToBudget godoc
// @Summary Contribute to a shared budget
// @Description Records spending against a group member's budget. The expense lands in the caller's ledger; the budget's spent amount and provenance row commit with it.
// @Tags family
// @Accept json
// @Produce json
// @Param groupID path string true "Group ID"
// @Param budgetID path string true "Budget ID"
// @Param contribution body dto.ContributionRequest true "Amount and optional description"
// @Success 201 {object} dto.ContributionResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse "Caller or budget owner is not a group member"
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /groups/{groupID}/budgets/{budgetID}/contribute [post]
func (h *familyHandler) contributeToBudget(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req dto.ContributionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	contribution, err := h.familyService.ContributeToBudget(c.Request.Context(), userID, c.Param("groupID"), c.Param("budgetID"), req.Amount, req.Description)
	if err != nil {
		respondServiceError(c, err, "Failed to contribute to budget")
		return
	}
	c.JSON(http.StatusCreated, dto.ToContributionResponse(contribution))
}
