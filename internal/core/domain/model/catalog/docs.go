// Package catalog holds the admin-managed reference data used for pricing:
// PricingFactor surcharges and sellable PackagingProducts.
package catalog
