package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type PaymentMethod string

const (
	PaymentMethodCash         PaymentMethod = "cash"
	PaymentMethodBankTransfer PaymentMethod = "bank transfer"
	PaymentMethodCheck        PaymentMethod = "check"
	PaymentMethodCreditCard   PaymentMethod = "credit card"
	PaymentMethodOther        PaymentMethod = "other"
)

// RentPayment records one payment. PaymentMonth is formatted YYYY-MM.
// TenantName and PropertyName are attached when the payment is read and are
// never written back to the remote collection.
type RentPayment struct {
	ID            string          `json:"id,omitempty"`
	TenantID      string          `json:"tenantId"`
	PropertyID    string          `json:"propertyId,omitempty"`
	ContractID    string          `json:"contractId,omitempty"`
	Amount        decimal.Decimal `json:"amount"`
	PaymentDate   time.Time       `json:"paymentDate"`
	PaymentMonth  string          `json:"paymentMonth"`
	PaymentMethod PaymentMethod   `json:"paymentMethod"`
	ReceiptNumber string          `json:"receiptNumber,omitempty"`
	Notes         string          `json:"notes,omitempty"`
	CreatedBy     string          `json:"createdBy"`
	CreatedAt     time.Time       `json:"createdAt"`
	UpdatedAt     time.Time       `json:"updatedAt"`

	TenantName   string `json:"tenantName,omitempty"`
	PropertyName string `json:"propertyName,omitempty"`
}

func (p RentPayment) EntityID() string { return p.ID }

// RentPaymentDisplayFields lists the read-time fields of a RentPayment.
var RentPaymentDisplayFields = []string{"tenantName", "propertyName"}
