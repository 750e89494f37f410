package mapping

import (
	"github.com/SscSPs/finance_reconciler/internal/core/domain"
	"github.com/SscSPs/finance_reconciler/internal/models"
)

// ToModelCurrency converts a domain Currency to a model Currency
func ToModelCurrency(d domain.Currency) models.Currency {
	return models.Currency{
		CurrencyID:     d.CurrencyID,
		OrganizationID: d.OrganizationID,
		Code:           d.Code,
		Symbol:         d.Symbol,
		Name:           d.Name,
		DecimalPlaces:  d.DecimalPlaces,
		IsBase:         d.IsBase,
		IsActive:       d.IsActive,
		AuditFields:    ToModelAuditFields(d.AuditFields),
		SoftDelete:     ToModelSoftDelete(d.SoftDelete),
	}
}

// ToDomainCurrency converts a model Currency to a domain Currency
func ToDomainCurrency(m models.Currency) domain.Currency {
	return domain.Currency{
		CurrencyID:     m.CurrencyID,
		OrganizationID: m.OrganizationID,
		Code:           m.Code,
		Symbol:         m.Symbol,
		Name:           m.Name,
		DecimalPlaces:  m.DecimalPlaces,
		IsBase:         m.IsBase,
		IsActive:       m.IsActive,
		AuditFields:    ToDomainAuditFields(m.AuditFields),
		SoftDelete:     ToDomainSoftDelete(m.SoftDelete),
	}
}

// ToDomainCurrencySlice converts a slice of model Currencies to a slice of domain Currencies
func ToDomainCurrencySlice(ms []models.Currency) []domain.Currency {
	ds := make([]domain.Currency, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainCurrency(m)
	}
	return ds
}
