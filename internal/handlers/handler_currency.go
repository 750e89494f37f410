package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/finance_reconciler/internal/core/ports/services"
	"github.com/SscSPs/finance_reconciler/internal/dto"
	"github.com/SscSPs/finance_reconciler/internal/middleware"
	"github.com/gin-gonic/gin"
)

// currencyHandler handles HTTP requests related to currencies.
type currencyHandler struct {
	currencyService portssvc.CurrencySvcFacade
}

// newCurrencyHandler creates a new currencyHandler.
func newCurrencyHandler(cs portssvc.CurrencySvcFacade) *currencyHandler {
	return &currencyHandler{currencyService: cs}
}

// registerCurrencyRoutes registers routes related to currencies.
func registerCurrencyRoutes(rg *gin.RouterGroup, currencyService portssvc.CurrencySvcFacade) {
	h := newCurrencyHandler(currencyService)

	currencies := rg.Group("/currencies")
	{
		currencies.POST("", h.createCurrency)
		currencies.GET("", h.listCurrencies)
		currencies.GET("/:currencyID", h.getCurrency)
		currencies.PUT("/:currencyID/base", h.setBaseCurrency)
	}
}

// createCurrency godoc
// @Summary Create a new currency
// @Description Adds a currency to the organization. Setting isBase demotes the previous base currency.
// @Tags currencies
// @Accept  json
// @Produce  json
// @Param   orgID    path     string                    true  "Organization ID"
// @Param   currency body     dto.CreateCurrencyRequest true  "Currency details"
// @Success 201 {object} dto.CurrencyResponse
// @Failure 400 {object} map[string]string "Invalid request format or validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 409 {object} map[string]string "Currency code already exists"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /organizations/{orgID}/currencies [post]
// @Security BearerAuth
func (h *currencyHandler) createCurrency(c *gin.Context) {
	var req dto.CreateCurrencyRequest
	if !bindJSON(c, &req) {
		return
	}
	userID, ok := actingUser(c)
	if !ok {
		return
	}

	currency, err := h.currencyService.CreateCurrency(c.Request.Context(), c.Param("orgID"), req, userID)
	if err != nil {
		respondError(c, err, "Failed to create currency")
		return
	}

	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Currency created", slog.String("currency_id", currency.CurrencyID), slog.String("code", currency.Code))
	c.JSON(http.StatusCreated, dto.ToCurrencyResponse(currency))
}

// listCurrencies godoc
// @Summary List currencies
// @Description Lists the organization's currencies ordered by code
// @Tags currencies
// @Produce  json
// @Param   orgID path string true "Organization ID"
// @Success 200 {array} dto.CurrencyResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /organizations/{orgID}/currencies [get]
// @Security BearerAuth
func (h *currencyHandler) listCurrencies(c *gin.Context) {
	currencies, err := h.currencyService.ListCurrencies(c.Request.Context(), c.Param("orgID"))
	if err != nil {
		respondError(c, err, "Failed to list currencies")
		return
	}
	c.JSON(http.StatusOK, dto.ToListCurrencyResponse(currencies))
}

// getCurrency godoc
// @Summary Get a currency
// @Tags currencies
// @Produce  json
// @Param   orgID      path string true "Organization ID"
// @Param   currencyID path string true "Currency ID"
// @Success 200 {object} dto.CurrencyResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Currency not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /organizations/{orgID}/currencies/{currencyID} [get]
// @Security BearerAuth
func (h *currencyHandler) getCurrency(c *gin.Context) {
	currency, err := h.currencyService.GetCurrency(c.Request.Context(), c.Param("orgID"), c.Param("currencyID"))
	if err != nil {
		respondError(c, err, "Failed to get currency")
		return
	}
	c.JSON(http.StatusOK, dto.ToCurrencyResponse(currency))
}

// setBaseCurrency godoc
// @Summary Set the base currency
// @Description Makes the currency the organization's only base currency
// @Tags currencies
// @Produce  json
// @Param   orgID      path string true "Organization ID"
// @Param   currencyID path string true "Currency ID"
// @Success 200 {object} dto.CurrencyResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Currency not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /organizations/{orgID}/currencies/{currencyID}/base [put]
// @Security BearerAuth
func (h *currencyHandler) setBaseCurrency(c *gin.Context) {
	userID, ok := actingUser(c)
	if !ok {
		return
	}

	currency, err := h.currencyService.SetBaseCurrency(c.Request.Context(), c.Param("orgID"), c.Param("currencyID"), userID)
	if err != nil {
		respondError(c, err, "Failed to set base currency")
		return
	}
	c.JSON(http.StatusOK, dto.ToCurrencyResponse(currency))
}
