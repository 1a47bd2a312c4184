package graph

// upstreamPath searches the incoming edges of start for target. When target
// is upstream of start it returns the ids along the data flow from target to
// start; otherwise nil. Adding an edge start -> target would then close a cycle.
func upstreamPath(start, target *Node) []string {
	// Depth-first search over incoming edges. visited holds nodes already
	// known not to lead to target.
	visited := make(map[*Node]bool)

	var visit func(n *Node) []string
	visit = func(n *Node) []string {
		if n == target {
			return []string{n.id}
		}
		if visited[n] {
			return nil
		}
		visited[n] = true
		for _, in := range n.Sources() {
			if path := visit(in.Source); path != nil {
				return append(path, n.id)
			}
		}
		return nil
	}
	return visit(start)
}

// DetectCycles walks the whole graph and returns a *CycleError for the first
// cycle found. Connect never admits a cycle, so a non-nil result means the
// graph was corrupted by code outside this package.
func (m *Manager) DetectCycles() error {
	// Classic three-colour DFS: permanent nodes are fully explored, temporary
	// nodes are on the current recursion stack.
	permanent := make(map[*Node]bool)
	temporary := make(map[*Node]bool)
	var stack []string

	var visit func(n *Node) error
	visit = func(n *Node) error {
		if permanent[n] {
			return nil
		}
		if temporary[n] {
			start := 0
			for i, id := range stack {
				if id == n.id {
					start = i
				}
			}
			path := append(append([]string{}, stack[start:]...), n.id)
			// stack runs downstream to upstream; report in data-flow order.
			for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
				path[i], path[j] = path[j], path[i]
			}
			return &CycleError{Path: path}
		}
		temporary[n] = true
		stack = append(stack, n.id)
		for _, in := range n.Sources() {
			if err := visit(in.Source); err != nil {
				return err
			}
		}
		stack = stack[:len(stack)-1]
		delete(temporary, n)
		permanent[n] = true
		return nil
	}

	for _, n := range m.order {
		if err := visit(n); err != nil {
			return err
		}
	}
	return nil
}
