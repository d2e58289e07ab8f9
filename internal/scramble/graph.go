package scramble

// maxFallbackTries bounds the extra edge attempts for a node left without
// any incoming edge after the random pass.
const maxFallbackTries = 10

// dependencyGraph is an acyclic graph over piece ids stored as
// arena-indexed adjacency lists. Edge order is insertion order.
type dependencyGraph struct {
	edges    [][]int
	inDegree []int
}

func newDependencyGraph(n int) *dependencyGraph {
	return &dependencyGraph{
		edges:    make([][]int, n),
		inDegree: make([]int, n),
	}
}

// buildDependencyGraph draws edges from rng until every node has been
// offered two to four incoming edges, rejecting any edge that would close a
// cycle.
func buildDependencyGraph(rng *Randomizer, total int) *dependencyGraph {
	g := newDependencyGraph(total)
	n := uint64(total)

	for r := 0; r < total; r++ {
		fanIn := int(rng.Next()%3 + 2)
		for k := 0; k < fanIn; k++ {
			j := int(rng.Next() % n)
			g.tryAddEdge(j, r)
		}
	}

	for r := 0; r < total; r++ {
		if g.inDegree[r] != 0 {
			continue
		}
		for tries := 0; tries < maxFallbackTries; tries++ {
			j := int(rng.Next() % n)
			if g.tryAddEdge(j, r) {
				break
			}
		}
	}

	return g
}

// tryAddEdge adds from→to unless it is a self loop or would create a cycle.
func (g *dependencyGraph) tryAddEdge(from, to int) bool {
	if from == to || g.wouldCreateCycle(from, to) {
		return false
	}
	g.edges[from] = append(g.edges[from], to)
	g.inDegree[to]++
	return true
}

// wouldCreateCycle reports whether target is reachable from start. Adding
// target→start closes a cycle exactly when it is.
func (g *dependencyGraph) wouldCreateCycle(target, start int) bool {
	visited := make([]bool, len(g.edges))
	stack := []int{start}
	for len(stack) > 0 {
		node := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if node == target {
			return true
		}
		if visited[node] {
			continue
		}
		visited[node] = true
		stack = append(stack, g.edges[node]...)
	}
	return false
}

// topologicalOrder runs Kahn's algorithm on a copy of the in-degree table.
// Zero in-degree nodes are seeded in ascending id order and drained FIFO.
func (g *dependencyGraph) topologicalOrder() []int {
	inDegree := make([]int, len(g.inDegree))
	copy(inDegree, g.inDegree)

	queue := make([]int, 0, len(inDegree))
	for node, d := range inDegree {
		if d == 0 {
			queue = append(queue, node)
		}
	}

	order := make([]int, 0, len(inDegree))
	for head := 0; head < len(queue); head++ {
		node := queue[head]
		order = append(order, node)
		for _, next := range g.edges[node] {
			inDegree[next]--
			if inDegree[next] == 0 {
				queue = append(queue, next)
			}
		}
	}
	return order
}

func (g *dependencyGraph) edgeCount() int {
	total := 0
	for _, e := range g.edges {
		total += len(e)
	}
	return total
}
