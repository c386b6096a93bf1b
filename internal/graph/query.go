package graph

// TopologicalOrder returns the DAG's nodes in dependency-respecting order.
// Ties (nodes with no relative ordering constraint) are broken by operation
// registration order, so the result is stable across repeated calls on the
// same graph.
func (d *OperationDAG) TopologicalOrder() []string {
	indegree := make(map[string]int, len(d.Nodes))
	for _, n := range d.Nodes {
		indegree[n] = 0
	}
	for _, e := range d.Edges {
		indegree[e.To]++
	}

	ready := d.readyNodesSortedByIndex(indegree)
	order := make([]string, 0, len(d.Nodes))

	for len(ready) > 0 {
		node := ready[0]
		ready = ready[1:]
		order = append(order, node)

		for _, next := range d.forward[node] {
			indegree[next]--
			if indegree[next] == 0 {
				ready = insertByIndex(ready, next, d.index)
			}
		}
	}

	return order
}

// ParallelLevels returns the DAG's nodes grouped into levels: every
// operation in a level has all of its predecessors in earlier levels, so a
// level is a unit of safe concurrent execution. Within a level, operations
// are listed in registration order.
func (d *OperationDAG) ParallelLevels() [][]string {
	indegree := make(map[string]int, len(d.Nodes))
	for _, n := range d.Nodes {
		indegree[n] = 0
	}
	for _, e := range d.Edges {
		indegree[e.To]++
	}

	remaining := make(map[string]bool, len(d.Nodes))
	for _, n := range d.Nodes {
		remaining[n] = true
	}

	var levels [][]string
	for len(remaining) > 0 {
		var level []string
		for _, n := range d.Nodes {
			if remaining[n] && indegree[n] == 0 {
				level = append(level, n)
			}
		}
		if len(level) == 0 {
			// Remaining nodes all participate in a cycle; emit them as a
			// final level so every node still appears somewhere. The
			// validator is responsible for rejecting cyclic graphs outright.
			for _, n := range d.Nodes {
				if remaining[n] {
					level = append(level, n)
				}
			}
			levels = append(levels, level)
			break
		}
		for _, n := range level {
			delete(remaining, n)
			for _, next := range d.forward[n] {
				indegree[next]--
			}
		}
		levels = append(levels, level)
	}
	return levels
}

func (d *OperationDAG) readyNodesSortedByIndex(indegree map[string]int) []string {
	var ready []string
	for _, n := range d.Nodes {
		if indegree[n] == 0 {
			ready = append(ready, n)
		}
	}
	return ready
}

// insertByIndex inserts node into a slice already sorted by index[], keeping
// it sorted, so TopologicalOrder's tie-break stays deterministic.
func insertByIndex(sorted []string, node string, index map[string]int) []string {
	pos := len(sorted)
	for i, n := range sorted {
		if index[node] < index[n] {
			pos = i
			break
		}
	}
	out := make([]string, 0, len(sorted)+1)
	out = append(out, sorted[:pos]...)
	out = append(out, node)
	out = append(out, sorted[pos:]...)
	return out
}
