// Package manifest parses descriptor units: data-driven HCL files that
// declare entity definitions and their transforms.
//
// A unit contains one or more `entity` blocks:
//
//	entity "URL" {
//	  color       = "#642CA9"
//	  icon        = "link"
//	  author      = "OSIB"
//	  description = "Uniform Resource Locator, usually starts with https://"
//
//	  element "text" {
//	    label = "URL"
//	    icon  = "link"
//	  }
//
//	  row {
//	    element "text" { label = "City" }
//	    element "text" { label = "ASN" }
//	  }
//
//	  transform "To website" {
//	    icon    = "world-www"
//	    handler = "TransformUrlToWebsite"
//	  }
//	}
//
// Element blocks carry their kind as the block label plus arbitrary extra
// attributes (value, placeholder, options, style, ...) that are decoded into
// pass-through payload the engine treats as opaque. Executable
// behavior never lives in a unit: a transform block only names a Go handler
// registered at startup, which is what keeps loading free of the
// arbitrary-code-execution hazard of executing plugin source.
package manifest
