// Package app wires the graph core into a headless host. It loads the
// operator catalog and a graph script, validates every node, reports the
// outcome, and optionally serves node status over HTTP and socket.io.
package app
