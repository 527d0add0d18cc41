// Package kernel provides the shared value objects of the moving platform.
//
// The package includes:
//   - UUID: identifier for users, guest orders and one-time code requests
//   - Location: a validated latitude/longitude pair with great-circle distance
//   - Money: an amount in Toman, the platform's only currency
//   - Phone: a mobile number in the national "09xxxxxxxxx" format
//   - TrackingCode: the immutable human-readable reference of an order
//   - Role, Actor: who is performing an operation
//   - ServiceType: the kind of service an order or pricing factor belongs to
//   - Selection: a catalog id with a quantity
//
// Value objects are immutable and guard against zero values: each exposes
// Validate, which fails unless the value was produced by a constructor.
package kernel
