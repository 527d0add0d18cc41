// Package guestorder provides the GuestOrder aggregate: a quote draft built
// by an unauthenticated visitor across several steps and later reconciled
// into a real order owned by the authenticated user.
//
// The draft id is returned to the client, which sends it with every step.
// Each step applies a Patch; fields present in the patch overwrite the
// stored value, absent fields are kept. Once reconciled the draft is frozen
// and a second reconciliation fails with ErrAlreadyReconciled.
package guestorder
