package traverse

// DepthFirst visits root and everything reachable from it. visit is called
// exactly once per node and returns the node's forward-edge children.
// Children are visited in the order visit returns them.
func DepthFirst[K comparable](root K, visit func(K) []K) {
	visited := map[K]struct{}{root: {}}
	stack := []K{root}

	for len(stack) > 0 {
		n := len(stack) - 1
		cur := stack[n]
		stack = stack[:n]

		children := visit(cur)
		// Push in reverse so the first child is popped next.
		for i := len(children) - 1; i >= 0; i-- {
			c := children[i]
			if _, seen := visited[c]; seen {
				continue
			}
			visited[c] = struct{}{}
			stack = append(stack, c)
		}
	}
}

// Reachable returns every node reachable from root, root included, in visit
// order.
func Reachable[K comparable](root K, children func(K) []K) []K {
	var out []K
	DepthFirst(root, func(k K) []K {
		out = append(out, k)
		return children(k)
	})
	return out
}

// Reaches reports whether target is reachable from root. The walk stops
// expanding once target is found.
func Reaches[K comparable](root, target K, children func(K) []K) bool {
	found := false
	DepthFirst(root, func(k K) []K {
		if found {
			return nil
		}
		if k == target {
			found = true
			return nil
		}
		return children(k)
	})
	return found
}
