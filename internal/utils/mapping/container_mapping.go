package mapping

import (
	"github.com/SscSPs/finance_reconciler/internal/core/domain"
	"github.com/SscSPs/finance_reconciler/internal/models"
)

// ToModelFinanceAccount converts a domain FinanceAccount to a model FinanceAccount
func ToModelFinanceAccount(d domain.FinanceAccount) models.FinanceAccount {
	return models.FinanceAccount{
		AccountID:      d.AccountID,
		OrganizationID: d.OrganizationID,
		Name:           d.Name,
		Code:           d.Code,
		CurrencyID:     d.CurrencyID,
		OpeningBalance: d.OpeningBalance,
		CurrentBalance: d.CurrentBalance,
		IsActive:       d.IsActive,
		AuditFields:    ToModelAuditFields(d.AuditFields),
		SoftDelete:     ToModelSoftDelete(d.SoftDelete),
	}
}

// ToDomainFinanceAccount converts a model FinanceAccount to a domain FinanceAccount
func ToDomainFinanceAccount(m models.FinanceAccount) domain.FinanceAccount {
	return domain.FinanceAccount{
		AccountID:      m.AccountID,
		OrganizationID: m.OrganizationID,
		Name:           m.Name,
		Code:           m.Code,
		CurrencyID:     m.CurrencyID,
		OpeningBalance: m.OpeningBalance,
		CurrentBalance: m.CurrentBalance,
		IsActive:       m.IsActive,
		AuditFields:    ToDomainAuditFields(m.AuditFields),
		SoftDelete:     ToDomainSoftDelete(m.SoftDelete),
	}
}

// ToModelFinanceProject converts a domain FinanceProject to a model FinanceProject
func ToModelFinanceProject(d domain.FinanceProject) models.FinanceProject {
	return models.FinanceProject{
		ProjectID:      d.ProjectID,
		OrganizationID: d.OrganizationID,
		Name:           d.Name,
		Code:           d.Code,
		CurrencyID:     d.CurrencyID,
		Budget:         d.Budget,
		TotalIncome:    d.TotalIncome,
		TotalExpense:   d.TotalExpense,
		IsActive:       d.IsActive,
		AuditFields:    ToModelAuditFields(d.AuditFields),
		SoftDelete:     ToModelSoftDelete(d.SoftDelete),
	}
}

// ToDomainFinanceProject converts a model FinanceProject to a domain FinanceProject
func ToDomainFinanceProject(m models.FinanceProject) domain.FinanceProject {
	return domain.FinanceProject{
		ProjectID:      m.ProjectID,
		OrganizationID: m.OrganizationID,
		Name:           m.Name,
		Code:           m.Code,
		CurrencyID:     m.CurrencyID,
		Budget:         m.Budget,
		TotalIncome:    m.TotalIncome,
		TotalExpense:   m.TotalExpense,
		IsActive:       m.IsActive,
		AuditFields:    ToDomainAuditFields(m.AuditFields),
		SoftDelete:     ToDomainSoftDelete(m.SoftDelete),
	}
}

// ToModelDonor converts a domain Donor to a model Donor
func ToModelDonor(d domain.Donor) models.Donor {
	return models.Donor{
		DonorID:        d.DonorID,
		OrganizationID: d.OrganizationID,
		Name:           d.Name,
		CurrencyID:     d.CurrencyID,
		TotalDonated:   d.TotalDonated,
		IsActive:       d.IsActive,
		AuditFields:    ToModelAuditFields(d.AuditFields),
		SoftDelete:     ToModelSoftDelete(d.SoftDelete),
	}
}

// ToDomainDonor converts a model Donor to a domain Donor
func ToDomainDonor(m models.Donor) domain.Donor {
	return domain.Donor{
		DonorID:        m.DonorID,
		OrganizationID: m.OrganizationID,
		Name:           m.Name,
		CurrencyID:     m.CurrencyID,
		TotalDonated:   m.TotalDonated,
		IsActive:       m.IsActive,
		AuditFields:    ToDomainAuditFields(m.AuditFields),
		SoftDelete:     ToDomainSoftDelete(m.SoftDelete),
	}
}
