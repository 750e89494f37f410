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

// entryHandler handles HTTP requests that mutate income, expense and asset rows.
// Every response carries the containers recalculated for the mutation.
type entryHandler struct {
	entryService portssvc.EntrySvcFacade
}

func newEntryHandler(es portssvc.EntrySvcFacade) *entryHandler {
	return &entryHandler{entryService: es}
}

// registerEntryRoutes registers income, expense and asset routes.
func registerEntryRoutes(rg *gin.RouterGroup, entryService portssvc.EntrySvcFacade) {
	h := newEntryHandler(entryService)

	income := rg.Group("/income")
	{
		income.POST("", h.createIncome)
		income.PUT("/:entryID", h.updateIncome)
		income.DELETE("/:entryID", h.deleteIncome)
	}

	expenses := rg.Group("/expenses")
	{
		expenses.POST("", h.createExpense)
		expenses.PUT("/:entryID", h.updateExpense)
		expenses.DELETE("/:entryID", h.deleteExpense)
	}

	assets := rg.Group("/assets")
	{
		assets.POST("", h.createAsset)
		assets.PUT("/:assetID", h.updateAsset)
		assets.DELETE("/:assetID", h.deleteAsset)
	}
}

func mutationResponse(entry any, recalcs []domain.Recalculation) dto.EntryMutationResponse {
	return dto.EntryMutationResponse{Entry: entry, Recalculations: dto.ToListRecalculationResponse(recalcs)}
}

func logRecalculations(c *gin.Context, msg string, rowID string, recalcs []domain.Recalculation) {
	middleware.GetLoggerFromCtx(c.Request.Context()).Info(msg, slog.String("row_id", rowID), slog.Int("recalculated", len(recalcs)))
}

// createIncome godoc
// @Summary Record income
// @Description Inserts an income entry and recalculates its account, project and donor
// @Tags income
// @Accept  json
// @Produce  json
// @Param   orgID  path string                  true "Organization ID"
// @Param   income body dto.CreateIncomeRequest true "Income details"
// @Success 201 {object} dto.EntryMutationResponse
// @Failure 400 {object} map[string]string "Invalid request format or validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /organizations/{orgID}/income [post]
// @Security BearerAuth
func (h *entryHandler) createIncome(c *gin.Context) {
	var req dto.CreateIncomeRequest
	if !bindJSON(c, &req) {
		return
	}
	userID, ok := actingUser(c)
	if !ok {
		return
	}

	entry, recalcs, err := h.entryService.CreateIncome(c.Request.Context(), c.Param("orgID"), req, userID)
	if err != nil {
		respondError(c, err, "Failed to create income")
		return
	}
	logRecalculations(c, "Income created", entry.EntryID, recalcs)
	c.JSON(http.StatusCreated, mutationResponse(entry, recalcs))
}

// updateIncome godoc
// @Summary Update income
// @Description Replaces an income entry. Containers are recalculated only when balance fields change.
// @Tags income
// @Accept  json
// @Produce  json
// @Param   orgID   path string                  true "Organization ID"
// @Param   entryID path string                  true "Income entry ID"
// @Param   income  body dto.UpdateIncomeRequest true "Income details"
// @Success 200 {object} dto.EntryMutationResponse
// @Failure 400 {object} map[string]string "Invalid request format or validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Income entry not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /organizations/{orgID}/income/{entryID} [put]
// @Security BearerAuth
func (h *entryHandler) updateIncome(c *gin.Context) {
	var req dto.UpdateIncomeRequest
	if !bindJSON(c, &req) {
		return
	}
	userID, ok := actingUser(c)
	if !ok {
		return
	}

	entry, recalcs, err := h.entryService.UpdateIncome(c.Request.Context(), c.Param("orgID"), c.Param("entryID"), req, userID)
	if err != nil {
		respondError(c, err, "Failed to update income")
		return
	}
	logRecalculations(c, "Income updated", entry.EntryID, recalcs)
	c.JSON(http.StatusOK, mutationResponse(entry, recalcs))
}

// deleteIncome godoc
// @Summary Delete income
// @Tags income
// @Produce  json
// @Param   orgID   path string true "Organization ID"
// @Param   entryID path string true "Income entry ID"
// @Success 200 {object} dto.EntryMutationResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Income entry not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /organizations/{orgID}/income/{entryID} [delete]
// @Security BearerAuth
func (h *entryHandler) deleteIncome(c *gin.Context) {
	userID, ok := actingUser(c)
	if !ok {
		return
	}

	recalcs, err := h.entryService.DeleteIncome(c.Request.Context(), c.Param("orgID"), c.Param("entryID"), userID)
	if err != nil {
		respondError(c, err, "Failed to delete income")
		return
	}
	logRecalculations(c, "Income deleted", c.Param("entryID"), recalcs)
	c.JSON(http.StatusOK, mutationResponse(nil, recalcs))
}

// createExpense godoc
// @Summary Record an expense
// @Description Inserts an expense (approved unless stated otherwise) and recalculates its account and project
// @Tags expenses
// @Accept  json
// @Produce  json
// @Param   orgID   path string                   true "Organization ID"
// @Param   expense body dto.CreateExpenseRequest true "Expense details"
// @Success 201 {object} dto.EntryMutationResponse
// @Failure 400 {object} map[string]string "Invalid request format or validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /organizations/{orgID}/expenses [post]
// @Security BearerAuth
func (h *entryHandler) createExpense(c *gin.Context) {
	var req dto.CreateExpenseRequest
	if !bindJSON(c, &req) {
		return
	}
	userID, ok := actingUser(c)
	if !ok {
		return
	}

	entry, recalcs, err := h.entryService.CreateExpense(c.Request.Context(), c.Param("orgID"), req, userID)
	if err != nil {
		respondError(c, err, "Failed to create expense")
		return
	}
	logRecalculations(c, "Expense created", entry.EntryID, recalcs)
	c.JSON(http.StatusCreated, mutationResponse(entry, recalcs))
}

// updateExpense godoc
// @Summary Update an expense
// @Description Replaces an expense. Approving or rejecting it recalculates its containers.
// @Tags expenses
// @Accept  json
// @Produce  json
// @Param   orgID   path string                   true "Organization ID"
// @Param   entryID path string                   true "Expense entry ID"
// @Param   expense body dto.UpdateExpenseRequest true "Expense details"
// @Success 200 {object} dto.EntryMutationResponse
// @Failure 400 {object} map[string]string "Invalid request format or validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Expense entry not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /organizations/{orgID}/expenses/{entryID} [put]
// @Security BearerAuth
func (h *entryHandler) updateExpense(c *gin.Context) {
	var req dto.UpdateExpenseRequest
	if !bindJSON(c, &req) {
		return
	}
	userID, ok := actingUser(c)
	if !ok {
		return
	}

	entry, recalcs, err := h.entryService.UpdateExpense(c.Request.Context(), c.Param("orgID"), c.Param("entryID"), req, userID)
	if err != nil {
		respondError(c, err, "Failed to update expense")
		return
	}
	logRecalculations(c, "Expense updated", entry.EntryID, recalcs)
	c.JSON(http.StatusOK, mutationResponse(entry, recalcs))
}

// deleteExpense godoc
// @Summary Delete an expense
// @Tags expenses
// @Produce  json
// @Param   orgID   path string true "Organization ID"
// @Param   entryID path string true "Expense entry ID"
// @Success 200 {object} dto.EntryMutationResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Expense entry not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /organizations/{orgID}/expenses/{entryID} [delete]
// @Security BearerAuth
func (h *entryHandler) deleteExpense(c *gin.Context) {
	userID, ok := actingUser(c)
	if !ok {
		return
	}

	recalcs, err := h.entryService.DeleteExpense(c.Request.Context(), c.Param("orgID"), c.Param("entryID"), userID)
	if err != nil {
		respondError(c, err, "Failed to delete expense")
		return
	}
	logRecalculations(c, "Expense deleted", c.Param("entryID"), recalcs)
	c.JSON(http.StatusOK, mutationResponse(nil, recalcs))
}

// createAsset godoc
// @Summary Register an asset
// @Description Inserts an asset and recalculates its finance account
// @Tags assets
// @Accept  json
// @Produce  json
// @Param   orgID path string                 true "Organization ID"
// @Param   asset body dto.CreateAssetRequest true "Asset details"
// @Success 201 {object} dto.EntryMutationResponse
// @Failure 400 {object} map[string]string "Invalid request format or validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /organizations/{orgID}/assets [post]
// @Security BearerAuth
func (h *entryHandler) createAsset(c *gin.Context) {
	var req dto.CreateAssetRequest
	if !bindJSON(c, &req) {
		return
	}
	userID, ok := actingUser(c)
	if !ok {
		return
	}

	asset, recalcs, err := h.entryService.CreateAsset(c.Request.Context(), c.Param("orgID"), req, userID)
	if err != nil {
		respondError(c, err, "Failed to create asset")
		return
	}
	logRecalculations(c, "Asset created", asset.AssetID, recalcs)
	c.JSON(http.StatusCreated, mutationResponse(asset, recalcs))
}

// updateAsset godoc
// @Summary Update an asset
// @Description Replaces an asset. Moving it between accounts recalculates both.
// @Tags assets
// @Accept  json
// @Produce  json
// @Param   orgID   path string                 true "Organization ID"
// @Param   assetID path string                 true "Asset ID"
// @Param   asset   body dto.UpdateAssetRequest true "Asset details"
// @Success 200 {object} dto.EntryMutationResponse
// @Failure 400 {object} map[string]string "Invalid request format or validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Asset not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /organizations/{orgID}/assets/{assetID} [put]
// @Security BearerAuth
func (h *entryHandler) updateAsset(c *gin.Context) {
	var req dto.UpdateAssetRequest
	if !bindJSON(c, &req) {
		return
	}
	userID, ok := actingUser(c)
	if !ok {
		return
	}

	asset, recalcs, err := h.entryService.UpdateAsset(c.Request.Context(), c.Param("orgID"), c.Param("assetID"), req, userID)
	if err != nil {
		respondError(c, err, "Failed to update asset")
		return
	}
	logRecalculations(c, "Asset updated", asset.AssetID, recalcs)
	c.JSON(http.StatusOK, mutationResponse(asset, recalcs))
}

// deleteAsset godoc
// @Summary Delete an asset
// @Tags assets
// @Produce  json
// @Param   orgID   path string true "Organization ID"
// @Param   assetID path string true "Asset ID"
// @Success 200 {object} dto.EntryMutationResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Asset not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /organizations/{orgID}/assets/{assetID} [delete]
// @Security BearerAuth
func (h *entryHandler) deleteAsset(c *gin.Context) {
	userID, ok := actingUser(c)
	if !ok {
		return
	}

	recalcs, err := h.entryService.DeleteAsset(c.Request.Context(), c.Param("orgID"), c.Param("assetID"), userID)
	if err != nil {
		respondError(c, err, "Failed to delete asset")
		return
	}
	logRecalculations(c, "Asset deleted", c.Param("assetID"), recalcs)
	c.JSON(http.StatusOK, mutationResponse(nil, recalcs))
}
