package payment

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/venuehq/backend/internal/domain/shared"
	"github.com/venuehq/backend/internal/domain/shared/valueobject"
)

// HouseAccountStatus represents the state of a house account
type HouseAccountStatus string

const (
	HouseAccountActive    HouseAccountStatus = "active"
	HouseAccountSuspended HouseAccountStatus = "suspended"
	HouseAccountClosed    HouseAccountStatus = "closed"
)

// EntryType classifies house account ledger entries
type EntryType string

const (
	EntryCharge  EntryType = "charge"
	EntryPayment EntryType = "payment"
)

// HouseAccount is the aggregate root for on-account billing. Charges accrue
// against a credit limit and are settled by payments.
type HouseAccount struct {
	shared.VenueAggregateRoot
	AccountName string             `gorm:"size:255;not null"`
	ContactName string             `gorm:"size:255"`
	Status      HouseAccountStatus `gorm:"size:16;not null;default:'active'"`
	CreditLimit decimal.Decimal    `gorm:"type:decimal(18,2);not null"`
	Balance     decimal.Decimal    `gorm:"type:decimal(18,2);not null;default:0"` // Amount owed

	Entries []LedgerEntry `gorm:"foreignKey:AccountID;references:ID"`
}

// TableName returns the table name for GORM
func (HouseAccount) TableName() string {
	return "house_accounts"
}

// LedgerEntry is one charge or payment on a house account
type LedgerEntry struct {
	shared.BaseEntity
	AccountID    uuid.UUID       `gorm:"type:uuid;not null;index"`
	Type         EntryType       `gorm:"size:16;not null"`
	Amount       decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	BalanceAfter decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	Reference    string          `gorm:"size:255"`
	OccurredAt   time.Time       `gorm:"not null;index"`
}

// TableName returns the table name for GORM
func (LedgerEntry) TableName() string {
	return "house_account_entries"
}

// Statement summarizes account activity over a period
type Statement struct {
	AccountID      uuid.UUID       `json:"account_id"`
	AccountName    string          `json:"account_name"`
	PeriodStart    time.Time       `json:"period_start"`
	PeriodEnd      time.Time       `json:"period_end"`
	OpeningBalance decimal.Decimal `json:"opening_balance"`
	TotalCharges   decimal.Decimal `json:"total_charges"`
	TotalPayments  decimal.Decimal `json:"total_payments"`
	ClosingBalance decimal.Decimal `json:"closing_balance"`
	Entries        []LedgerEntry   `json:"entries"`
}

// NewHouseAccount opens a house account with the given credit limit
func NewHouseAccount(venueID uuid.UUID, accountName, contactName string, creditLimit valueobject.Money) (*HouseAccount, error) {
	if accountName == "" {
		return nil, shared.NewDomainError("INVALID_ACCOUNT_NAME", "Account name is required")
	}
	if creditLimit.IsNegative() {
		return nil, shared.NewDomainError("INVALID_CREDIT_LIMIT", "Credit limit cannot be negative")
	}
	return &HouseAccount{
		VenueAggregateRoot: shared.NewVenueAggregateRoot(venueID),
		AccountName:        accountName,
		ContactName:        contactName,
		Status:             HouseAccountActive,
		CreditLimit:        creditLimit.Amount().Round(2),
		Balance:            decimal.Zero,
		Entries:            make([]LedgerEntry, 0),
	}, nil
}

// Charge adds an amount owed. Fails when the resulting balance would exceed
// the credit limit.
func (a *HouseAccount) Charge(amount valueobject.Money, reference string) error {
	if a.Status != HouseAccountActive {
		return shared.ErrInvalidState
	}
	if !amount.IsPositive() {
		return shared.NewDomainError("INVALID_AMOUNT", "Charge amount must be positive")
	}

	newBalance := a.Balance.Add(amount.Amount().Round(2))
	if newBalance.GreaterThan(a.CreditLimit) {
		return shared.ErrCreditLimitExceeded
	}

	a.Balance = newBalance
	a.appendEntry(EntryCharge, amount.Amount().Round(2), reference)
	a.AddDomainEvent(NewHouseAccountChargedEvent(a, amount.Amount().Round(2), reference))
	return nil
}

// RecordPayment reduces the amount owed. Overpayment is rejected.
func (a *HouseAccount) RecordPayment(amount valueobject.Money, reference string) error {
	if a.Status == HouseAccountClosed {
		return shared.ErrInvalidState
	}
	if !amount.IsPositive() {
		return shared.NewDomainError("INVALID_AMOUNT", "Payment amount must be positive")
	}
	if amount.Amount().Round(2).GreaterThan(a.Balance) {
		return shared.NewDomainError("OVERPAYMENT", "Payment exceeds outstanding balance")
	}

	a.Balance = a.Balance.Sub(amount.Amount().Round(2))
	a.appendEntry(EntryPayment, amount.Amount().Round(2), reference)
	return nil
}

// Suspend blocks new charges while keeping the account open for payments
func (a *HouseAccount) Suspend() error {
	if a.Status != HouseAccountActive {
		return shared.ErrInvalidState
	}
	a.Status = HouseAccountSuspended
	a.UpdatedAt = time.Now()
	a.IncrementVersion()
	return nil
}

// Reactivate re-enables a suspended account
func (a *HouseAccount) Reactivate() error {
	if a.Status != HouseAccountSuspended {
		return shared.ErrInvalidState
	}
	a.Status = HouseAccountActive
	a.UpdatedAt = time.Now()
	a.IncrementVersion()
	return nil
}

// Close shuts the account. The balance must be settled first.
func (a *HouseAccount) Close() error {
	if a.Status == HouseAccountClosed {
		return shared.ErrInvalidState
	}
	if !a.Balance.IsZero() {
		return shared.NewDomainError("OUTSTANDING_BALANCE", "Account balance must be settled before closing")
	}
	a.Status = HouseAccountClosed
	a.UpdatedAt = time.Now()
	a.IncrementVersion()
	return nil
}

// AvailableCredit returns the remaining chargeable amount
func (a *HouseAccount) AvailableCredit() valueobject.Money {
	return valueobject.NewMoneyUSD(a.CreditLimit.Sub(a.Balance))
}

// StatementFor builds a statement from the in-memory ledger for [start, end)
func (a *HouseAccount) StatementFor(start, end time.Time) Statement {
	stmt := Statement{
		AccountID:      a.ID,
		AccountName:    a.AccountName,
		PeriodStart:    start,
		PeriodEnd:      end,
		OpeningBalance: decimal.Zero,
		TotalCharges:   decimal.Zero,
		TotalPayments:  decimal.Zero,
		Entries:        make([]LedgerEntry, 0),
	}

	for _, entry := range a.Entries {
		if entry.OccurredAt.Before(start) {
			switch entry.Type {
			case EntryCharge:
				stmt.OpeningBalance = stmt.OpeningBalance.Add(entry.Amount)
			case EntryPayment:
				stmt.OpeningBalance = stmt.OpeningBalance.Sub(entry.Amount)
			}
			continue
		}
		if !entry.OccurredAt.Before(end) {
			continue
		}
		stmt.Entries = append(stmt.Entries, entry)
		switch entry.Type {
		case EntryCharge:
			stmt.TotalCharges = stmt.TotalCharges.Add(entry.Amount)
		case EntryPayment:
			stmt.TotalPayments = stmt.TotalPayments.Add(entry.Amount)
		}
	}

	stmt.ClosingBalance = stmt.OpeningBalance.Add(stmt.TotalCharges).Sub(stmt.TotalPayments)
	return stmt
}

func (a *HouseAccount) appendEntry(entryType EntryType, amount decimal.Decimal, reference string) {
	now := time.Now()
	a.Entries = append(a.Entries, LedgerEntry{
		BaseEntity:   shared.NewBaseEntity(),
		AccountID:    a.ID,
		Type:         entryType,
		Amount:       amount,
		BalanceAfter: a.Balance,
		Reference:    reference,
		OccurredAt:   now,
	})
	a.UpdatedAt = now
	a.IncrementVersion()
}
