// Package registry provides the central "glue" for the plugin system.
//
// The Registry is a process-wide ordered ledger of entity descriptors. It is
// populated at startup: built-in and third-party modules first register their
// Go transform handlers under stable names, then descriptor units (data-driven
// HCL files) are loaded and every entity they declare is appended to the
// ledger, its transforms bound against the handler store by name.
//
// Lookup is deliberately a linear scan over registration order comparing
// normalized labels, returning the first match. Registries hold tens of
// entries, and first-registered-wins must hold even when two distinct raw
// labels normalize identically; do not replace the scan with a map without
// preserving that collision policy. Whether duplicate normalized labels are
// plugin shadowing or an authoring mistake is deliberately left open; the
// ledger records both and Validate logs the collision.
//
// All mutation and every multi-step read goes through one RWMutex, so a
// Reset followed by a reload can never expose a partially repopulated ledger
// to concurrent readers.
package registry
