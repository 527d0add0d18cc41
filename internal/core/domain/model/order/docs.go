// Package order provides the Order aggregate of the moving platform and the
// state machine that drives it.
//
// The package includes:
//   - Order: the aggregate root holding addresses, priced lines and status
//   - Status: PendingPayment, PendingAdminApproval, InProgress, Completed, Cancelled
//   - Action: the operations that move an order between statuses
//   - Address: an origin or destination with floor and elevator details
//   - Item, Surcharge: the priced lines of an order
//
// Lifecycle:
//
//	PendingPayment ──> PendingAdminApproval ──> InProgress ──> Completed
//	      │                     │                   │
//	      └─────────────────────┴───────────────────┴──> Cancelled
//
// Legality of a move is looked up in a single transition table keyed by
// (Status, Action). Authority is checked after legality: only admins approve,
// only the assigned driver or an admin completes, and customers may cancel
// only before the order is accepted.
//
// Key business rules:
//   - Final price always equals the sum of item totals and surcharges
//   - The tracking code is generated at creation and never changes
//   - Approval requires an assigned driver (ErrDriverRequired)
//   - Illegal moves fail with ErrInvalidTransition and leave the order untouched
package order
