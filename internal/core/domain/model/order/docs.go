// Package order provides domain entities and business logic for order
// management in the ordering system. It implements the Order aggregate root
// with its owned line items and selected options, the lifecycle state machine
// with an explicit transition table, the pricing computation, and the
// lifecycle event payloads.
//
// The package enforces the core invariants of the system:
//   - the order total always equals the pricing computation over the item set
//   - items are mutated only in draft status and only as whole sets
//   - status transitions are monotonic and role-gated
//
// All types follow the constructor pattern: direct struct instantiation
// produces an object that fails Validate, so every aggregate in circulation
// went through its invariant checks.
package order
