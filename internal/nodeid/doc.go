/*
Package nodeid allocates and parses the human-readable identifiers given to
graph nodes.

An identifier is the operator label, optionally followed by an ordinal in
parentheses when the label is already taken in the session, e.g. `Read`,
`Read(2)`, `Band-Maths(3)`. The first node of a kind never carries an
ordinal.
*/
package nodeid
