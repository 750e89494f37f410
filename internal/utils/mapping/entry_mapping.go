package mapping

import (
	"time"

	"github.com/SscSPs/finance_reconciler/internal/core/domain"
	"github.com/SscSPs/finance_reconciler/internal/models"
)

// ToModelIncomeEntry converts a domain IncomeEntry to a model IncomeEntry
func ToModelIncomeEntry(d domain.IncomeEntry) models.IncomeEntry {
	return models.IncomeEntry{
		EntryID:        d.EntryID,
		OrganizationID: d.OrganizationID,
		AccountID:      d.AccountID,
		ProjectID:      d.ProjectID,
		DonorID:        d.DonorID,
		CurrencyID:     d.CurrencyID,
		Amount:         d.Amount,
		Date:           d.Date,
		Description:    d.Description,
		ReferenceNo:    d.ReferenceNo,
		AuditFields:    ToModelAuditFields(d.AuditFields),
		SoftDelete:     ToModelSoftDelete(d.SoftDelete),
	}
}

// ToDomainIncomeEntry converts a model IncomeEntry to a domain IncomeEntry
func ToDomainIncomeEntry(m models.IncomeEntry) domain.IncomeEntry {
	return domain.IncomeEntry{
		EntryID:        m.EntryID,
		OrganizationID: m.OrganizationID,
		AccountID:      m.AccountID,
		ProjectID:      m.ProjectID,
		DonorID:        m.DonorID,
		CurrencyID:     m.CurrencyID,
		Amount:         m.Amount,
		Date:           domain.DateOnly(m.Date),
		Description:    m.Description,
		ReferenceNo:    m.ReferenceNo,
		AuditFields:    ToDomainAuditFields(m.AuditFields),
		SoftDelete:     ToDomainSoftDelete(m.SoftDelete),
	}
}

// ToModelExpenseEntry converts a domain ExpenseEntry to a model ExpenseEntry
func ToModelExpenseEntry(d domain.ExpenseEntry) models.ExpenseEntry {
	return models.ExpenseEntry{
		EntryID:        d.EntryID,
		OrganizationID: d.OrganizationID,
		AccountID:      d.AccountID,
		ProjectID:      d.ProjectID,
		CurrencyID:     d.CurrencyID,
		Amount:         d.Amount,
		Date:           d.Date,
		Status:         string(d.Status),
		Description:    d.Description,
		ReferenceNo:    d.ReferenceNo,
		AuditFields:    ToModelAuditFields(d.AuditFields),
		SoftDelete:     ToModelSoftDelete(d.SoftDelete),
	}
}

// ToDomainExpenseEntry converts a model ExpenseEntry to a domain ExpenseEntry
func ToDomainExpenseEntry(m models.ExpenseEntry) domain.ExpenseEntry {
	return domain.ExpenseEntry{
		EntryID:        m.EntryID,
		OrganizationID: m.OrganizationID,
		AccountID:      m.AccountID,
		ProjectID:      m.ProjectID,
		CurrencyID:     m.CurrencyID,
		Amount:         m.Amount,
		Date:           domain.DateOnly(m.Date),
		Status:         domain.ExpenseStatus(m.Status),
		Description:    m.Description,
		ReferenceNo:    m.ReferenceNo,
		AuditFields:    ToDomainAuditFields(m.AuditFields),
		SoftDelete:     ToDomainSoftDelete(m.SoftDelete),
	}
}

// ToModelAsset converts a domain Asset to a model Asset
func ToModelAsset(d domain.Asset) models.Asset {
	return models.Asset{
		AssetID:          d.AssetID,
		OrganizationID:   d.OrganizationID,
		Name:             d.Name,
		AssetTag:         d.AssetTag,
		FinanceAccountID: d.FinanceAccountID,
		CurrencyID:       d.CurrencyID,
		PurchasePrice:    d.PurchasePrice,
		PurchaseDate:     d.PurchaseDate,
		TotalCopies:      d.TotalCopies,
		Status:           string(d.Status),
		AuditFields:      ToModelAuditFields(d.AuditFields),
		SoftDelete:       ToModelSoftDelete(d.SoftDelete),
	}
}

// ToDomainAsset converts a model Asset to a domain Asset
func ToDomainAsset(m models.Asset) domain.Asset {
	var purchased *time.Time
	if m.PurchaseDate != nil {
		d := domain.DateOnly(*m.PurchaseDate)
		purchased = &d
	}
	return domain.Asset{
		AssetID:          m.AssetID,
		OrganizationID:   m.OrganizationID,
		Name:             m.Name,
		AssetTag:         m.AssetTag,
		FinanceAccountID: m.FinanceAccountID,
		CurrencyID:       m.CurrencyID,
		PurchasePrice:    m.PurchasePrice,
		PurchaseDate:     purchased,
		TotalCopies:      m.TotalCopies,
		Status:           domain.AssetStatus(m.Status),
		AuditFields:      ToDomainAuditFields(m.AuditFields),
		SoftDelete:       ToDomainSoftDelete(m.SoftDelete),
	}
}
