// Package graph is the in-memory model of an operator graph being edited:
// the nodes, their typed input connectors and the directed edges between
// them.
//
// # Why Graph Package Exists
//
// The editor mutates the graph one user gesture at a time (add a node, drag
// a connection, delete a node) and every gesture must leave the model
// consistent. This package owns those consistency rules so that neither the
// UI layer nor the validation engine has to re-implement them:
//   - **Arity:** fixed operators keep their slots; variable-arity operators
//     grow one slot per connection and compact on disconnect
//   - **Wiring:** one edge per input slot, one edge per (source, target) pair,
//     no self loops, no cycles
//   - **Staleness:** any structural or parameter change marks the node dirty
//
// # Architecture
//
//	┌──────────────────────────────────────┐
//	│               Manager                │
//	│ (registry, ids, typed event bus,     │
//	│  interaction guard)                  │
//	└──────────┬───────────────────────────┘
//	           │ owns
//	           ▼
//	  ┌─────────────────┐  incoming edges  ┌─────────────────┐
//	  │      Node       │ ───────────────▶ │  upstream Node  │
//	  │ (slots, status, │  (index→source)  │  (Output read)  │
//	  │  output, dirty) │                  └─────────────────┘
//	  └─────────────────┘
//
// Edges are not separate objects: each Node owns its incoming edges keyed by
// connector index. Nodes never keep references to their consumers; the
// Manager answers Dependents() by scanning, and structural changes are
// announced as Events to registered Listeners.
//
// # Validation State
//
// A node carries a Status (Unchecked, Validated, Warning, Error), the
// artifact produced by its last successful recompute and a dirty flag. The
// recompute protocol itself lives in the validation package, which updates
// nodes through MarkValidated, MarkWarning, MarkError and Invalidate.
//
// # Thread-Safety
//
// None. The model is driven from a single interaction thread; the Manager's
// interaction guard rejects structural edits while a validation pass runs.
package graph
