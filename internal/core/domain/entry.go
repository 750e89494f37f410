package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// EntryKind identifies the kind of transaction row.
type EntryKind string

const (
	EntryIncome  EntryKind = "income"
	EntryExpense EntryKind = "expense"
	EntryAsset   EntryKind = "asset"
)

// ExpenseStatus is the approval state of an expense. Only approved expenses count toward totals.
type ExpenseStatus string

const (
	ExpensePending  ExpenseStatus = "pending"
	ExpenseApproved ExpenseStatus = "approved"
	ExpenseRejected ExpenseStatus = "rejected"
)

// Valid reports whether s is a known expense status.
func (s ExpenseStatus) Valid() bool {
	switch s {
	case ExpensePending, ExpenseApproved, ExpenseRejected:
		return true
	}
	return false
}

// AssetStatus is the lifecycle state of an asset.
type AssetStatus string

const (
	AssetAvailable   AssetStatus = "available"
	AssetAssigned    AssetStatus = "assigned"
	AssetMaintenance AssetStatus = "maintenance"
	AssetRetired     AssetStatus = "retired"
	AssetDisposed    AssetStatus = "disposed"
	AssetLost        AssetStatus = "lost"
)

// Valid reports whether s is a known asset status.
func (s AssetStatus) Valid() bool {
	switch s {
	case AssetAvailable, AssetAssigned, AssetMaintenance, AssetRetired, AssetDisposed, AssetLost:
		return true
	}
	return false
}

// IsOwned reports whether an asset in this state still counts toward its account balance.
func (s AssetStatus) IsOwned() bool {
	switch s {
	case AssetAvailable, AssetAssigned, AssetMaintenance:
		return true
	}
	return false
}

// OwnedAssetStatuses lists the states in which IsOwned is true.
var OwnedAssetStatuses = []AssetStatus{AssetAvailable, AssetAssigned, AssetMaintenance}

// Posting is one converted-or-not contribution of a row to a container total.
type Posting struct {
	RowID      string
	Kind       EntryKind
	Amount     decimal.Decimal
	CurrencyID *string
	Date       time.Time
}

// BalanceFields is the subset of a row's state that feeds container totals.
// Two snapshots with equal BalanceFields contribute identically.
type BalanceFields struct {
	Amount     decimal.Decimal
	CurrencyID *string
	Date       time.Time
	AccountID  *string
	ProjectID  *string
	DonorID    *string
	Status     string
	Copies     int
}

// Equal compares two snapshots field by field.
func (b BalanceFields) Equal(o BalanceFields) bool {
	return b.Amount.Equal(o.Amount) &&
		sameStringPtr(b.CurrencyID, o.CurrencyID) &&
		DateOnly(b.Date).Equal(DateOnly(o.Date)) &&
		sameStringPtr(b.AccountID, o.AccountID) &&
		sameStringPtr(b.ProjectID, o.ProjectID) &&
		sameStringPtr(b.DonorID, o.DonorID) &&
		b.Status == o.Status &&
		b.Copies == o.Copies
}

// TransactionRow is implemented by every row kind that contributes to container totals.
type TransactionRow interface {
	Kind() EntryKind
	RowID() string
	OrgID() string
	// Containers lists every container the row points to.
	Containers() []ContainerRef
	BalanceFields() BalanceFields
}

// IncomeEntry is money received into an account, optionally attributed to a project and donor.
type IncomeEntry struct {
	EntryID        string          `json:"entryID"`
	OrganizationID string          `json:"organizationID"`
	AccountID      *string         `json:"accountID"`
	ProjectID      *string         `json:"projectID"`
	DonorID        *string         `json:"donorID"`
	CurrencyID     *string         `json:"currencyID"`
	Amount         decimal.Decimal `json:"amount"`
	Date           time.Time       `json:"date"`
	Description    string          `json:"description"`
	ReferenceNo    string          `json:"referenceNo"`
	AuditFields
	SoftDelete
}

func (e IncomeEntry) Kind() EntryKind { return EntryIncome }
func (e IncomeEntry) RowID() string   { return e.EntryID }
func (e IncomeEntry) OrgID() string   { return e.OrganizationID }

func (e IncomeEntry) Containers() []ContainerRef {
	return refs(
		ContainerRef{Kind: ContainerAccount, ID: derefString(e.AccountID)},
		ContainerRef{Kind: ContainerProject, ID: derefString(e.ProjectID)},
		ContainerRef{Kind: ContainerDonor, ID: derefString(e.DonorID)},
	)
}

func (e IncomeEntry) BalanceFields() BalanceFields {
	return BalanceFields{
		Amount:     e.Amount,
		CurrencyID: e.CurrencyID,
		Date:       e.Date,
		AccountID:  e.AccountID,
		ProjectID:  e.ProjectID,
		DonorID:    e.DonorID,
	}
}

func (e IncomeEntry) Posting() Posting {
	return Posting{RowID: e.EntryID, Kind: EntryIncome, Amount: e.Amount, CurrencyID: e.CurrencyID, Date: e.Date}
}

// ExpenseEntry is money spent from an account, optionally charged to a project.
type ExpenseEntry struct {
	EntryID        string          `json:"entryID"`
	OrganizationID string          `json:"organizationID"`
	AccountID      *string         `json:"accountID"`
	ProjectID      *string         `json:"projectID"`
	CurrencyID     *string         `json:"currencyID"`
	Amount         decimal.Decimal `json:"amount"`
	Date           time.Time       `json:"date"`
	Status         ExpenseStatus   `json:"status"`
	Description    string          `json:"description"`
	ReferenceNo    string          `json:"referenceNo"`
	AuditFields
	SoftDelete
}

func (e ExpenseEntry) Kind() EntryKind { return EntryExpense }
func (e ExpenseEntry) RowID() string   { return e.EntryID }
func (e ExpenseEntry) OrgID() string   { return e.OrganizationID }

func (e ExpenseEntry) Containers() []ContainerRef {
	return refs(
		ContainerRef{Kind: ContainerAccount, ID: derefString(e.AccountID)},
		ContainerRef{Kind: ContainerProject, ID: derefString(e.ProjectID)},
	)
}

func (e ExpenseEntry) BalanceFields() BalanceFields {
	return BalanceFields{
		Amount:     e.Amount,
		CurrencyID: e.CurrencyID,
		Date:       e.Date,
		AccountID:  e.AccountID,
		ProjectID:  e.ProjectID,
		Status:     string(e.Status),
	}
}

// Counts reports whether the expense contributes to totals at all.
func (e ExpenseEntry) Counts() bool {
	return e.Status == ExpenseApproved && !e.IsDeleted()
}

func (e ExpenseEntry) Posting() Posting {
	return Posting{RowID: e.EntryID, Kind: EntryExpense, Amount: e.Amount, CurrencyID: e.CurrencyID, Date: e.Date}
}

// Asset is a purchased item whose value counts toward its finance account while owned.
type Asset struct {
	AssetID          string          `json:"assetID"`
	OrganizationID   string          `json:"organizationID"`
	Name             string          `json:"name"`
	AssetTag         string          `json:"assetTag"`
	FinanceAccountID *string         `json:"financeAccountID"`
	CurrencyID       *string         `json:"currencyID"`
	PurchasePrice    decimal.Decimal `json:"purchasePrice"`
	PurchaseDate     *time.Time      `json:"purchaseDate"`
	TotalCopies      int             `json:"totalCopies"`
	Status           AssetStatus     `json:"status"`
	AuditFields
	SoftDelete
}

func (a Asset) Kind() EntryKind { return EntryAsset }
func (a Asset) RowID() string   { return a.AssetID }
func (a Asset) OrgID() string   { return a.OrganizationID }

func (a Asset) Containers() []ContainerRef {
	return refs(ContainerRef{Kind: ContainerAccount, ID: derefString(a.FinanceAccountID)})
}

func (a Asset) BalanceFields() BalanceFields {
	return BalanceFields{
		Amount:     a.PurchasePrice,
		CurrencyID: a.CurrencyID,
		Date:       a.valuationDate(),
		AccountID:  a.FinanceAccountID,
		Status:     string(a.Status),
		Copies:     a.TotalCopies,
	}
}

// BookValue is purchase price times copies, with at least one copy.
func (a Asset) BookValue() decimal.Decimal {
	copies := a.TotalCopies
	if copies < 1 {
		copies = 1
	}
	return a.PurchasePrice.Mul(decimal.NewFromInt(int64(copies)))
}

// Counts reports whether the asset contributes to its account balance.
func (a Asset) Counts() bool {
	return a.Status.IsOwned() && !a.IsDeleted()
}

func (a Asset) Posting() Posting {
	return Posting{RowID: a.AssetID, Kind: EntryAsset, Amount: a.BookValue(), CurrencyID: a.CurrencyID, Date: a.valuationDate()}
}

func (a Asset) valuationDate() time.Time {
	if a.PurchaseDate != nil {
		return *a.PurchaseDate
	}
	return a.CreatedAt
}

// Contributions holds the live rows of one container, as read by the aggregator.
type Contributions struct {
	Income   []IncomeEntry
	Expenses []ExpenseEntry
	Assets   []Asset
}

func refs(candidates ...ContainerRef) []ContainerRef {
	out := make([]ContainerRef, 0, len(candidates))
	for _, c := range candidates {
		if c.ID != "" {
			out = append(out, c)
		}
	}
	return out
}
