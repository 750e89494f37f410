package mapping

import (
	"github.com/SscSPs/finance_reconciler/internal/core/domain"
	"github.com/SscSPs/finance_reconciler/internal/models"
)

// ToModelAuditFields converts a domain AuditFields to a model AuditFields
func ToModelAuditFields(d domain.AuditFields) models.AuditFields {
	return models.AuditFields{
		CreatedAt:     d.CreatedAt,
		CreatedBy:     d.CreatedBy,
		LastUpdatedAt: d.LastUpdatedAt,
		LastUpdatedBy: d.LastUpdatedBy,
	}
}

// ToDomainAuditFields converts a model AuditFields to a domain AuditFields
func ToDomainAuditFields(m models.AuditFields) domain.AuditFields {
	return domain.AuditFields{
		CreatedAt:     m.CreatedAt,
		CreatedBy:     m.CreatedBy,
		LastUpdatedAt: m.LastUpdatedAt,
		LastUpdatedBy: m.LastUpdatedBy,
	}
}

// ToModelSoftDelete converts a domain SoftDelete to a model SoftDelete
func ToModelSoftDelete(d domain.SoftDelete) models.SoftDelete {
	return models.SoftDelete{DeletedAt: d.DeletedAt, DeletedBy: d.DeletedBy}
}

// ToDomainSoftDelete converts a model SoftDelete to a domain SoftDelete
func ToDomainSoftDelete(m models.SoftDelete) domain.SoftDelete {
	return domain.SoftDelete{DeletedAt: m.DeletedAt, DeletedBy: m.DeletedBy}
}
