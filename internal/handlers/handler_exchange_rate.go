package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/finance_reconciler/internal/core/ports/services"
	"github.com/SscSPs/finance_reconciler/internal/dto"
	"github.com/SscSPs/finance_reconciler/internal/middleware"
	"github.com/gin-gonic/gin"
)

// exchangeRateHandler handles HTTP requests related to exchange rates.
type exchangeRateHandler struct {
	exchangeRateService portssvc.ExchangeRateSvcFacade
}

// newExchangeRateHandler creates a new exchangeRateHandler.
func newExchangeRateHandler(ers portssvc.ExchangeRateSvcFacade) *exchangeRateHandler {
	return &exchangeRateHandler{exchangeRateService: ers}
}

// registerExchangeRateRoutes registers routes related to exchange rates.
func registerExchangeRateRoutes(rg *gin.RouterGroup, exchangeRateService portssvc.ExchangeRateSvcFacade) {
	h := newExchangeRateHandler(exchangeRateService)

	rates := rg.Group("/exchange-rates")
	{
		rates.POST("", h.createExchangeRate)
		rates.GET("", h.listExchangeRates)
		rates.GET("/resolve", h.resolveRate)
		rates.GET("/:rateID", h.getExchangeRate)
		rates.PATCH("/:rateID", h.updateExchangeRate)
		rates.DELETE("/:rateID", h.deleteExchangeRate)
	}
}

// createExchangeRate godoc
// @Summary Create a new exchange rate
// @Description Adds a dated rate for a currency pair. Existing balances are not recalculated.
// @Tags exchange-rates
// @Accept  json
// @Produce  json
// @Param   orgID        path     string                        true  "Organization ID"
// @Param   exchangeRate body     dto.CreateExchangeRateRequest true  "Exchange Rate details"
// @Success 201 {object} dto.ExchangeRateResponse
// @Failure 400 {object} map[string]string "Invalid request format or validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 409 {object} map[string]string "Rate for the pair and date already exists"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /organizations/{orgID}/exchange-rates [post]
// @Security BearerAuth
func (h *exchangeRateHandler) createExchangeRate(c *gin.Context) {
	var req dto.CreateExchangeRateRequest
	if !bindJSON(c, &req) {
		return
	}
	userID, ok := actingUser(c)
	if !ok {
		return
	}

	rate, err := h.exchangeRateService.CreateExchangeRate(c.Request.Context(), c.Param("orgID"), req, userID)
	if err != nil {
		respondError(c, err, "Failed to create exchange rate")
		return
	}

	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Exchange rate created", slog.String("rate_id", rate.ExchangeRateID))
	c.JSON(http.StatusCreated, dto.ToExchangeRateResponse(rate))
}

// listExchangeRates godoc
// @Summary List exchange rates
// @Description Lists rates newest first, optionally filtered by pair and active flag
// @Tags exchange-rates
// @Produce  json
// @Param   orgID          path  string true  "Organization ID"
// @Param   fromCurrencyID query string false "Source currency ID"
// @Param   toCurrencyID   query string false "Target currency ID"
// @Param   activeOnly     query bool   false "Only active rates"
// @Param   limit          query int    false "Page size (1-500, default 100)"
// @Param   nextToken      query string false "Token from the previous page"
// @Success 200 {object} dto.ListExchangeRatesResponse
// @Failure 400 {object} map[string]string "Invalid query"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /organizations/{orgID}/exchange-rates [get]
// @Security BearerAuth
func (h *exchangeRateHandler) listExchangeRates(c *gin.Context) {
	var params dto.ListExchangeRatesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query: " + err.Error()})
		return
	}

	page, err := h.exchangeRateService.ListExchangeRates(c.Request.Context(), c.Param("orgID"), params)
	if err != nil {
		respondError(c, err, "Failed to list exchange rates")
		return
	}
	c.JSON(http.StatusOK, page)
}

// resolveRate godoc
// @Summary Resolve a conversion factor
// @Description Resolves the factor converting one unit of from into to on a date, using direct, reverse or base-currency paths. found=false means no path exists.
// @Tags exchange-rates
// @Produce  json
// @Param   orgID  path  string true  "Organization ID"
// @Param   from   query string true  "Source currency ID"
// @Param   to     query string true  "Target currency ID"
// @Param   asOf   query string false "Date (YYYY-MM-DD), defaults to today"
// @Param   amount query string false "Amount to convert"
// @Success 200 {object} dto.ResolveRateResponse
// @Failure 400 {object} map[string]string "Invalid query or unknown currency"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /organizations/{orgID}/exchange-rates/resolve [get]
// @Security BearerAuth
func (h *exchangeRateHandler) resolveRate(c *gin.Context) {
	var params dto.ResolveRateParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query: " + err.Error()})
		return
	}

	res, err := h.exchangeRateService.ResolveRate(c.Request.Context(), c.Param("orgID"), params)
	if err != nil {
		respondError(c, err, "Failed to resolve exchange rate")
		return
	}
	c.JSON(http.StatusOK, res)
}

// getExchangeRate godoc
// @Summary Get an exchange rate
// @Tags exchange-rates
// @Produce  json
// @Param   orgID  path string true "Organization ID"
// @Param   rateID path string true "Exchange rate ID"
// @Success 200 {object} dto.ExchangeRateResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Exchange rate not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /organizations/{orgID}/exchange-rates/{rateID} [get]
// @Security BearerAuth
func (h *exchangeRateHandler) getExchangeRate(c *gin.Context) {
	rate, err := h.exchangeRateService.GetExchangeRate(c.Request.Context(), c.Param("orgID"), c.Param("rateID"))
	if err != nil {
		respondError(c, err, "Failed to get exchange rate")
		return
	}
	c.JSON(http.StatusOK, dto.ToExchangeRateResponse(rate))
}

// updateExchangeRate godoc
// @Summary Update an exchange rate
// @Description Changes the provided fields of a rate. Existing balances are not recalculated.
// @Tags exchange-rates
// @Accept  json
// @Produce  json
// @Param   orgID  path string                        true "Organization ID"
// @Param   rateID path string                        true "Exchange rate ID"
// @Param   update body dto.UpdateExchangeRateRequest true "Fields to change"
// @Success 200 {object} dto.ExchangeRateResponse
// @Failure 400 {object} map[string]string "Invalid request format or validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Exchange rate not found"
// @Failure 409 {object} map[string]string "Rate for the pair and date already exists"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /organizations/{orgID}/exchange-rates/{rateID} [patch]
// @Security BearerAuth
func (h *exchangeRateHandler) updateExchangeRate(c *gin.Context) {
	var req dto.UpdateExchangeRateRequest
	if !bindJSON(c, &req) {
		return
	}
	userID, ok := actingUser(c)
	if !ok {
		return
	}

	rate, err := h.exchangeRateService.UpdateExchangeRate(c.Request.Context(), c.Param("orgID"), c.Param("rateID"), req, userID)
	if err != nil {
		respondError(c, err, "Failed to update exchange rate")
		return
	}
	c.JSON(http.StatusOK, dto.ToExchangeRateResponse(rate))
}

// deleteExchangeRate godoc
// @Summary Delete an exchange rate
// @Tags exchange-rates
// @Param   orgID  path string true "Organization ID"
// @Param   rateID path string true "Exchange rate ID"
// @Success 204 "No Content"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Exchange rate not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /organizations/{orgID}/exchange-rates/{rateID} [delete]
// @Security BearerAuth
func (h *exchangeRateHandler) deleteExchangeRate(c *gin.Context) {
	userID, ok := actingUser(c)
	if !ok {
		return
	}

	if err := h.exchangeRateService.DeleteExchangeRate(c.Request.Context(), c.Param("orgID"), c.Param("rateID"), userID); err != nil {
		respondError(c, err, "Failed to delete exchange rate")
		return
	}
	c.Status(http.StatusNoContent)
}
