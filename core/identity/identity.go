// Package identity derives catalog record identifiers.
// Identifiers are content-derived so that repeated seeding of the same
// catalog rows upserts instead of duplicating.
package identity

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"github.com/google/uuid"

	"combo-pricing/core/types"
)

// Generator derives identifiers for catalog records
type Generator interface {
	// PlanID derives the identifier for a service plan
	PlanID(companyID int64, serviceType types.ServiceType, name string) string

	// ProductID derives the identifier for a combined product
	ProductID(companyName, productName string) string

	// DiscountID derives the identifier for a discount of a product
	DiscountID(productID, discountName string) string

	// BenefitID derives the identifier for a benefit row of a product
	BenefitID(productID, label string) string
}

// SHA256Generator derives ids as the SHA-256 hex digest of the seed string
type SHA256Generator struct{}

// NewSHA256Generator creates the default content-hash generator
func NewSHA256Generator() SHA256Generator {
	return SHA256Generator{}
}

func hashID(text string) string {
	sum := sha256.Sum256([]byte(text))
	return hex.EncodeToString(sum[:])
}

// PlanID hashes "{companyID}_{serviceType}_{name}"
func (SHA256Generator) PlanID(companyID int64, serviceType types.ServiceType, name string) string {
	return hashID(fmt.Sprintf("%d_%s_%s", companyID, serviceType, name))
}

// ProductID hashes "{companyName}_{productName}"
func (SHA256Generator) ProductID(companyName, productName string) string {
	return hashID(companyName + "_" + productName)
}

// DiscountID hashes "{productID}_{discountName}"
func (SHA256Generator) DiscountID(productID, discountName string) string {
	return hashID(productID + "_" + discountName)
}

// BenefitID hashes "{productID}_{label}"
func (SHA256Generator) BenefitID(productID, label string) string {
	return hashID(productID + "_" + label)
}

// UUIDGenerator derives name-based (version 5) UUIDs from the same seed
// strings, for storage engines that want UUID-typed keys. Still
// deterministic: the same seed yields the same id.
type UUIDGenerator struct {
	namespace uuid.UUID
}

// NewUUIDGenerator creates a UUID generator scoped to a namespace
func NewUUIDGenerator(namespace uuid.UUID) UUIDGenerator {
	return UUIDGenerator{namespace: namespace}
}

func (g UUIDGenerator) derive(text string) string {
	return uuid.NewSHA1(g.namespace, []byte(text)).String()
}

// PlanID derives a UUID from "{companyID}_{serviceType}_{name}"
func (g UUIDGenerator) PlanID(companyID int64, serviceType types.ServiceType, name string) string {
	return g.derive(fmt.Sprintf("%d_%s_%s", companyID, serviceType, name))
}

// ProductID derives a UUID from "{companyName}_{productName}"
func (g UUIDGenerator) ProductID(companyName, productName string) string {
	return g.derive(companyName + "_" + productName)
}

// DiscountID derives a UUID from "{productID}_{discountName}"
func (g UUIDGenerator) DiscountID(productID, discountName string) string {
	return g.derive(productID + "_" + discountName)
}

// BenefitID derives a UUID from "{productID}_{label}"
func (g UUIDGenerator) BenefitID(productID, label string) string {
	return g.derive(productID + "_" + label)
}
