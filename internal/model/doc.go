// Package model defines the data carried through report generation.
//
// This package contains the following main types:
//   - Item: a line item rendered as one report row
//   - User: the viewer whose role decides visibility and enrichment
//   - Role and ReportType: the closed key sets of the strategy registries
//   - UnknownKeyError: the error returned for unregistered keys
//
// The types carry no rendering behavior. Role rules live in the role
// package and output formats in the report package, both of which import
// model, so keeping the shared types here avoids import cycles.
package model
