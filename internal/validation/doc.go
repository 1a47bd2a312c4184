// Package validation drives the recompute protocol of graph nodes: it
// decides whether a node can be validated, asks the parameter form and the
// execution collaborator for a fresh output and records the outcome on the
// node and the notification channel.
//
// A recompute runs four steps and stops at the first that fails:
//
//  1. the node must be complete (every mandatory input connected);
//  2. every connected upstream node must hold an output;
//  3. the parameter form must accept the current parameters;
//  4. the execution collaborator must produce an artifact.
//
// Incompleteness surfaces as graph.Warning, rejected parameters and failed
// execution as graph.Error. Failures never cross node boundaries: a
// downstream node simply finds a nil output in step 2.
package validation
