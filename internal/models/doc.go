// Package models defines the core domain models for tabsplit.
//
// # Models
//
//   - Order: a table's order as handed over by the POS, with its line items
//     and the subtotal, tax and tip the split calculator works from
//   - LineItem / Modifier: order lines and their add-ons
//   - Payment: one participant's share of a confirmed split, waiting to be
//     collected by the payment terminal
//   - User: a staff account allowed to run splits
//
// Money is always stored as integer cents (money.Cents).
//
// # Design Principles
//
//  1. Orders are the upstream context: the split engine only reads them
//  2. Split results are never stored; confirming a split records Payments
//  3. Use ID strings instead of pointers for relationships
package models
