// Package order provides domain entities and business logic for order management
// in the ordering system. It implements the Order aggregate root with lifecycle
// management, price-snapshotted line items and state transitions.
//
// The package includes:
//   - Order: The aggregate root that manages order identity, line items, total and lifecycle
//   - LineItem: An immutable entity carrying name and price snapshots taken at creation
//   - Status: A state machine whose allowed transitions live in an explicit adjacency table
//   - Number: A value object for the unique, date-scoped order number (ORD-YYYYMMDD-NNN)
//
// Key business rules:
//   - Orders must have a valid identifier, owner, number and at least one line item
//   - The total amount always equals the exact decimal sum of line item subtotals
//   - Status follows the workflow Pending -> Confirmed -> Processing -> Shipped -> Delivered,
//     with Cancelled reachable from Pending, Confirmed and Processing
//   - Owners may cancel their own orders only while Pending or Confirmed
//   - Line items are immutable once the order exists; snapshots are never refreshed
//
// The package follows Domain-Driven Design principles, providing rich domain
// behavior, encapsulation, and validation to ensure business rules are enforced.
package order
