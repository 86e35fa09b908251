// Package entity holds the data model of the plugin engine: entity
// descriptors and their element layouts, the blueprint compiler that turns a
// layout into a wire-serializable UI schema, the input mapper that flattens a
// wire graph node into the open record a handler consumes, and the transform
// dispatcher.
//
// Descriptors and their layouts are immutable after load; blueprints, graph
// nodes, and input records are per-invocation values discarded after a
// dispatch completes. The only shared mutable state in the engine lives in
// the registry package.
package entity
