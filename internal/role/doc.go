// Package role decides which items a user may see and how they are enriched.
//
// Each role maps to one stateless Strategy:
//   - Admin: sees every item and marks items above 1000 as priority
//   - Standard: sees only items valued at 500 or less, unchanged
//
// Strategies receive and return items by value. Enrichment produces a
// modified copy, so the caller's slice is never written to and the same
// items can be reported for several roles in a row or concurrently.
package role
