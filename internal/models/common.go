package models

import "time"

// AuditFields holds the audit columns shared by every table.
type AuditFields struct {
	CreatedAt     time.Time `db:"created_at"`
	CreatedBy     string    `db:"created_by"`
	LastUpdatedAt time.Time `db:"last_updated_at"`
	LastUpdatedBy string    `db:"last_updated_by"`
}

// SoftDelete holds the soft-delete columns.
type SoftDelete struct {
	DeletedAt *time.Time `db:"deleted_at"` // Nullable
	DeletedBy *string    `db:"deleted_by"` // Nullable
}
