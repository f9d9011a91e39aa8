package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type ContractType string

const (
	ContractTypeSale  ContractType = "sale"
	ContractTypeLease ContractType = "lease"
	ContractTypeOther ContractType = "other"
)

// Contract is a sale or lease agreement. For leases Amount is the monthly rent.
type Contract struct {
	ID            string          `json:"id,omitempty"`
	Title         string          `json:"title"`
	TenantID      string          `json:"tenantId,omitempty"`
	PropertyID    string          `json:"propertyId,omitempty"`
	StartDate     time.Time       `json:"startDate"`
	EndDate       time.Time       `json:"endDate"`
	Amount        decimal.Decimal `json:"amount"`
	DepositAmount decimal.Decimal `json:"depositAmount"`
	IsActive      bool            `json:"isActive"`
	ContractType  ContractType    `json:"contractType"`
	CreatedBy     string          `json:"createdBy,omitempty"`
	Notes         string          `json:"notes,omitempty"`
	CreatedAt     time.Time       `json:"createdAt"`
	UpdatedAt     time.Time       `json:"updatedAt"`
}

func (c Contract) EntityID() string { return c.ID }
