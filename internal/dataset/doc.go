// Package dataset loads line items from YAML or JSON documents.
//
// A document is either a top-level list of items or a mapping with an
// "items" key holding that list:
//
//	items:
//	  - id: "1"
//	    name: Pen
//	    value: 200
//	  - id: "2"
//	    name: Laptop
//	    value: 1500
//
// JSON is accepted as well because it is a subset of YAML. Item order in
// the document is the order in the report.
package dataset
