package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// RecurringFrequency is the recurrence step of a rule.
type RecurringFrequency string

const (
	Weekly  RecurringFrequency = "WEEKLY"
	Monthly RecurringFrequency = "MONTHLY"
	Annual  RecurringFrequency = "ANNUAL"
)

// TransferEndpointKind discriminates the two targets a transfer leg can hit.
type TransferEndpointKind string

const (
	EndpointAccount TransferEndpointKind = "ACCOUNT"
	EndpointReserve TransferEndpointKind = "RESERVE"
)

// TransferEndpoint is a resolved reference to either an account or a reserve.
// The API accepts the legacy prefixed string form ("acc_<id>" / "res_<id>")
// and resolves it once at the DTO boundary; the engine only ever sees this
// tagged form.
type TransferEndpoint struct {
	Kind TransferEndpointKind `json:"kind"`
	ID   string               `json:"id"`
}

// ParseTransferRef parses the prefixed string reference form.
func ParseTransferRef(ref string) (TransferEndpoint, error) {
	switch {
	case strings.HasPrefix(ref, "acc_"):
		return TransferEndpoint{Kind: EndpointAccount, ID: strings.TrimPrefix(ref, "acc_")}, nil
	case strings.HasPrefix(ref, "res_"):
		return TransferEndpoint{Kind: EndpointReserve, ID: strings.TrimPrefix(ref, "res_")}, nil
	default:
		return TransferEndpoint{}, fmt.Errorf("invalid transfer reference %q: expected acc_ or res_ prefix", ref)
	}
}

// Ref renders the endpoint back into the prefixed string form.
func (e TransferEndpoint) Ref() string {
	if e.Kind == EndpointReserve {
		return "res_" + e.ID
	}
	return "acc_" + e.ID
}

// RecurringExpense is a rule that expands into one POTENTIAL expense per
// occurrence between StartDate and EndDate (or the forecast horizon).
// Rules are mutated only through explicit edit/delete actions; the forecast
// engine never consumes or destroys them.
type RecurringExpense struct {
	RecurringExpenseID string             `json:"recurringExpenseID"` // Primary Key (UUID)
	UserID             string             `json:"userID"`
	Name               string             `json:"name"`
	Amount             decimal.Decimal    `json:"amount"`
	Frequency          RecurringFrequency `json:"frequency"`
	StartDate          time.Time          `json:"startDate"`
	EndDate            *time.Time         `json:"endDate,omitempty"` // Inclusive; nil means open-ended
	AccountID          string             `json:"accountID"`
	CategoryID         string             `json:"categoryID,omitempty"`

	AuditFields
}

// RecurringTransfer is a rule that expands into a POTENTIAL expense/income
// pair per occurrence, moving money between two accounts or reserves.
type RecurringTransfer struct {
	RecurringTransferID string             `json:"recurringTransferID"` // Primary Key (UUID)
	UserID              string             `json:"userID"`
	Name                string             `json:"name"`
	Amount              decimal.Decimal    `json:"amount"`
	Frequency           RecurringFrequency `json:"frequency"`
	StartDate           time.Time          `json:"startDate"`
	EndDate             *time.Time         `json:"endDate,omitempty"`
	Source              TransferEndpoint   `json:"source"`
	Destination         TransferEndpoint   `json:"destination"`

	AuditFields
}
