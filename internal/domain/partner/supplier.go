package partner

import (
	"strings"
	"time"

	"github.com/erp/connector/internal/domain/shared"
)

// EsprinetSupplierRef is the fixed external reference identifying the
// distributor's own partner record.
const EsprinetSupplierRef = "ESPRINET_SUPPLIER"

// Supplier represents a supplier partner.
// It is the aggregate root for supplier-related operations.
type Supplier struct {
	shared.BaseAggregateRoot
	Ref          string `gorm:"type:varchar(50);not null;uniqueIndex"`
	Name         string `gorm:"type:varchar(200);not null"`
	IsCompany    bool   `gorm:"not null;default:true"`
	SupplierRank int    `gorm:"not null;default:1"`
	CustomerRank int    `gorm:"not null;default:0"`
}

// TableName returns the table name for GORM
func (Supplier) TableName() string {
	return "suppliers"
}

// NewSupplier creates a new supplier with required fields
func NewSupplier(ref, name string) (*Supplier, error) {
	if err := validateSupplierRef(ref); err != nil {
		return nil, err
	}
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Supplier name cannot be empty")
	}
	if len(name) > 200 {
		return nil, shared.NewDomainError("INVALID_NAME", "Supplier name cannot exceed 200 characters")
	}

	return &Supplier{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Ref:               strings.ToUpper(ref),
		Name:              name,
		IsCompany:         true,
		SupplierRank:      1,
		CustomerRank:      0,
	}, nil
}

// Rename updates the supplier name
func (s *Supplier) Rename(name string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Supplier name cannot be empty")
	}

	s.Name = name
	s.UpdatedAt = time.Now()
	s.IncrementVersion()

	return nil
}

// validateSupplierRef validates the supplier reference code
func validateSupplierRef(ref string) error {
	if ref == "" {
		return shared.NewDomainError("INVALID_REF", "Supplier ref cannot be empty")
	}
	if len(ref) > 50 {
		return shared.NewDomainError("INVALID_REF", "Supplier ref cannot exceed 50 characters")
	}
	return nil
}
