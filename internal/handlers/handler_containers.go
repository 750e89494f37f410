package handlers

import (
	"log/slog"
	"net/http"

	"github.com/SscSPs/finance_reconciler/internal/core/domain"
	portssvc "github.com/SscSPs/finance_reconciler/internal/core/ports/services"
	"github.com/SscSPs/finance_reconciler/internal/dto"
	"github.com/SscSPs/finance_reconciler/internal/middleware"
	"github.com/gin-gonic/gin"
)

// containerHandler handles HTTP requests for accounts, projects and donors.
type containerHandler struct {
	containerService portssvc.ContainerSvcFacade
}

func newContainerHandler(cs portssvc.ContainerSvcFacade) *containerHandler {
	return &containerHandler{containerService: cs}
}

// registerContainerRoutes registers container routes and the organization-wide recalculation.
func registerContainerRoutes(rg *gin.RouterGroup, containerService portssvc.ContainerSvcFacade) {
	h := newContainerHandler(containerService)

	rg.POST("/recalculate", h.recalculateOrganization)

	accounts := rg.Group("/accounts")
	{
		accounts.POST("", h.createAccount)
		accounts.GET("/:accountID", h.getAccount)
		accounts.PUT("/:accountID/opening-balance", h.updateOpeningBalance)
		accounts.POST("/:accountID/recalculate", h.recalculate(domain.ContainerAccount, "accountID"))
	}

	projects := rg.Group("/projects")
	{
		projects.POST("", h.createProject)
		projects.GET("/:projectID", h.getProject)
		projects.POST("/:projectID/recalculate", h.recalculate(domain.ContainerProject, "projectID"))
	}

	donors := rg.Group("/donors")
	{
		donors.POST("", h.createDonor)
		donors.GET("/:donorID", h.getDonor)
		donors.POST("/:donorID/recalculate", h.recalculate(domain.ContainerDonor, "donorID"))
	}
}

// createAccount godoc
// @Summary Create a finance account
// @Description Creates an account whose current balance starts at its opening balance
// @Tags accounts
// @Accept  json
// @Produce  json
// @Param   orgID   path string                   true "Organization ID"
// @Param   account body dto.CreateAccountRequest true "Account details"
// @Success 201 {object} dto.AccountResponse
// @Failure 400 {object} map[string]string "Invalid request format or validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /organizations/{orgID}/accounts [post]
// @Security BearerAuth
func (h *containerHandler) createAccount(c *gin.Context) {
	var req dto.CreateAccountRequest
	if !bindJSON(c, &req) {
		return
	}
	userID, ok := actingUser(c)
	if !ok {
		return
	}

	account, err := h.containerService.CreateAccount(c.Request.Context(), c.Param("orgID"), req, userID)
	if err != nil {
		respondError(c, err, "Failed to create account")
		return
	}

	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Account created", slog.String("account_id", account.AccountID))
	c.JSON(http.StatusCreated, dto.ToAccountResponse(account))
}

// getAccount godoc
// @Summary Get a finance account
// @Tags accounts
// @Produce  json
// @Param   orgID     path string true "Organization ID"
// @Param   accountID path string true "Account ID"
// @Success 200 {object} dto.AccountResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Account not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /organizations/{orgID}/accounts/{accountID} [get]
// @Security BearerAuth
func (h *containerHandler) getAccount(c *gin.Context) {
	account, err := h.containerService.GetAccount(c.Request.Context(), c.Param("orgID"), c.Param("accountID"))
	if err != nil {
		respondError(c, err, "Failed to get account")
		return
	}
	c.JSON(http.StatusOK, dto.ToAccountResponse(account))
}

// updateOpeningBalance godoc
// @Summary Change an account's opening balance
// @Description Stores the new opening balance and recalculates the account in the same transaction
// @Tags accounts
// @Accept  json
// @Produce  json
// @Param   orgID     path string                          true "Organization ID"
// @Param   accountID path string                          true "Account ID"
// @Param   balance   body dto.UpdateOpeningBalanceRequest true "New opening balance"
// @Success 200 {object} dto.RecalculationResponse
// @Failure 400 {object} map[string]string "Invalid request format or validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Account not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /organizations/{orgID}/accounts/{accountID}/opening-balance [put]
// @Security BearerAuth
func (h *containerHandler) updateOpeningBalance(c *gin.Context) {
	var req dto.UpdateOpeningBalanceRequest
	if !bindJSON(c, &req) {
		return
	}
	userID, ok := actingUser(c)
	if !ok {
		return
	}

	recalc, err := h.containerService.UpdateOpeningBalance(c.Request.Context(), c.Param("orgID"), c.Param("accountID"), req, userID)
	if err != nil {
		respondError(c, err, "Failed to update opening balance")
		return
	}
	c.JSON(http.StatusOK, dto.ToRecalculationResponse(*recalc))
}

// createProject godoc
// @Summary Create a finance project
// @Tags projects
// @Accept  json
// @Produce  json
// @Param   orgID   path string                   true "Organization ID"
// @Param   project body dto.CreateProjectRequest true "Project details"
// @Success 201 {object} dto.ProjectResponse
// @Failure 400 {object} map[string]string "Invalid request format or validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /organizations/{orgID}/projects [post]
// @Security BearerAuth
func (h *containerHandler) createProject(c *gin.Context) {
	var req dto.CreateProjectRequest
	if !bindJSON(c, &req) {
		return
	}
	userID, ok := actingUser(c)
	if !ok {
		return
	}

	project, err := h.containerService.CreateProject(c.Request.Context(), c.Param("orgID"), req, userID)
	if err != nil {
		respondError(c, err, "Failed to create project")
		return
	}
	c.JSON(http.StatusCreated, dto.ToProjectResponse(project))
}

// getProject godoc
// @Summary Get a finance project
// @Tags projects
// @Produce  json
// @Param   orgID     path string true "Organization ID"
// @Param   projectID path string true "Project ID"
// @Success 200 {object} dto.ProjectResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Project not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /organizations/{orgID}/projects/{projectID} [get]
// @Security BearerAuth
func (h *containerHandler) getProject(c *gin.Context) {
	project, err := h.containerService.GetProject(c.Request.Context(), c.Param("orgID"), c.Param("projectID"))
	if err != nil {
		respondError(c, err, "Failed to get project")
		return
	}
	c.JSON(http.StatusOK, dto.ToProjectResponse(project))
}

// createDonor godoc
// @Summary Create a donor
// @Tags donors
// @Accept  json
// @Produce  json
// @Param   orgID path string                 true "Organization ID"
// @Param   donor body dto.CreateDonorRequest true "Donor details"
// @Success 201 {object} dto.DonorResponse
// @Failure 400 {object} map[string]string "Invalid request format or validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /organizations/{orgID}/donors [post]
// @Security BearerAuth
func (h *containerHandler) createDonor(c *gin.Context) {
	var req dto.CreateDonorRequest
	if !bindJSON(c, &req) {
		return
	}
	userID, ok := actingUser(c)
	if !ok {
		return
	}

	donor, err := h.containerService.CreateDonor(c.Request.Context(), c.Param("orgID"), req, userID)
	if err != nil {
		respondError(c, err, "Failed to create donor")
		return
	}
	c.JSON(http.StatusCreated, dto.ToDonorResponse(donor))
}

// getDonor godoc
// @Summary Get a donor
// @Tags donors
// @Produce  json
// @Param   orgID   path string true "Organization ID"
// @Param   donorID path string true "Donor ID"
// @Success 200 {object} dto.DonorResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Donor not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /organizations/{orgID}/donors/{donorID} [get]
// @Security BearerAuth
func (h *containerHandler) getDonor(c *gin.Context) {
	donor, err := h.containerService.GetDonor(c.Request.Context(), c.Param("orgID"), c.Param("donorID"))
	if err != nil {
		respondError(c, err, "Failed to get donor")
		return
	}
	c.JSON(http.StatusOK, dto.ToDonorResponse(donor))
}

// recalculate godoc
// @Summary Recalculate one container
// @Description Recomputes an account, project or donor from its live rows and stores the result
// @Tags recalculation
// @Produce  json
// @Param   orgID     path string true "Organization ID"
// @Param   accountID path string true "Account, project or donor ID"
// @Success 200 {object} dto.RecalculationResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Container not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /organizations/{orgID}/accounts/{accountID}/recalculate [post]
// @Router /organizations/{orgID}/projects/{accountID}/recalculate [post]
// @Router /organizations/{orgID}/donors/{accountID}/recalculate [post]
// @Security BearerAuth
func (h *containerHandler) recalculate(kind domain.ContainerKind, idParam string) gin.HandlerFunc {
	return func(c *gin.Context) {
		ref := domain.ContainerRef{Kind: kind, ID: c.Param(idParam)}
		recalc, err := h.containerService.RecalculateContainer(c.Request.Context(), c.Param("orgID"), ref)
		if err != nil {
			respondError(c, err, "Failed to recalculate "+string(kind))
			return
		}

		middleware.GetLoggerFromCtx(c.Request.Context()).Info("Container recalculated",
			slog.String("container", ref.String()),
			slog.String("balance", recalc.Balance.String()),
			slog.Bool("degraded", recalc.Degraded))
		c.JSON(http.StatusOK, dto.ToRecalculationResponse(*recalc))
	}
}

// recalculateOrganization godoc
// @Summary Recalculate every container of an organization
// @Description Recomputes all accounts, donors and projects, one transaction each. Stops at the first failure.
// @Tags recalculation
// @Produce  json
// @Param   orgID path string true "Organization ID"
// @Success 200 {array} dto.RecalculationResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /organizations/{orgID}/recalculate [post]
// @Security BearerAuth
func (h *containerHandler) recalculateOrganization(c *gin.Context) {
	recalcs, err := h.containerService.RecalculateOrganization(c.Request.Context(), c.Param("orgID"))
	if err != nil {
		middleware.GetLoggerFromCtx(c.Request.Context()).Warn("Organization recalculation stopped early", slog.Int("completed", len(recalcs)))
		respondError(c, err, "Failed to recalculate organization")
		return
	}
	c.JSON(http.StatusOK, dto.ToListRecalculationResponse(recalcs))
}
