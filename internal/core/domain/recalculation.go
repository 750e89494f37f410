package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Recalculation is the outcome of recomputing one container from its live rows.
type Recalculation struct {
	Container      ContainerRef    `json:"container"`
	OrganizationID string          `json:"organizationID"`
	CurrencyID     *string         `json:"currencyID"`
	Balance        decimal.Decimal `json:"balance"`
	TotalIncome    decimal.Decimal `json:"totalIncome"`
	TotalExpense   decimal.Decimal `json:"totalExpense"`
	OpeningBalance decimal.Decimal `json:"openingBalance"`
	// Degraded is set when at least one row had no rate path and was summed unconverted.
	Degraded        bool      `json:"degraded"`
	UnconvertedRows []string  `json:"unconvertedRows,omitempty"`
	Skipped         bool      `json:"skipped"` // container missing or deleted
	RecalculatedAt  time.Time `json:"recalculatedAt"`
}

// BalanceRecalculatedEvent is published after the transaction holding a recalculation commits.
type BalanceRecalculatedEvent struct {
	EventID        string          `json:"eventID"`
	OrganizationID string          `json:"organizationID"`
	ContainerKind  ContainerKind   `json:"containerKind"`
	ContainerID    string          `json:"containerID"`
	CurrencyID     *string         `json:"currencyID,omitempty"`
	Balance        decimal.Decimal `json:"balance"`
	TotalIncome    decimal.Decimal `json:"totalIncome"`
	TotalExpense   decimal.Decimal `json:"totalExpense"`
	Degraded       bool            `json:"degraded"`
	LowBalance     bool            `json:"lowBalance"`
	Trigger        string          `json:"trigger"`
	OccurredAt     time.Time       `json:"occurredAt"`
}
