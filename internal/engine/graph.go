package engine

import (
	"sort"
)

// Graph owns the registered module set and answers ordering questions:
// in what order must a requested subset run, given declared dependencies?
//
// The graph rebuilds lazily: registering a new module invalidates any cached
// resolution, and the next ResolveOrder call revalidates the full set.
type Graph struct {
	modules map[string]Module
}

// NewGraph creates an empty module graph.
func NewGraph() *Graph {
	return &Graph{modules: make(map[string]Module)}
}

// Register adds a module to the graph. Registering an id twice fails with
// ErrDuplicateModule.
func (g *Graph) Register(m Module) error {
	if g.modules == nil {
		g.modules = make(map[string]Module)
	}

	id := m.Metadata().ID
	if _, exists := g.modules[id]; exists {
		return ErrDuplicateModule{ID: id}
	}

	g.modules[id] = m
	return nil
}

// Get returns the module registered under id.
func (g *Graph) Get(id string) (Module, bool) {
	m, ok := g.modules[id]
	return m, ok
}

// ModuleIDs returns all registered ids in sorted order.
func (g *Graph) ModuleIDs() []string {
	ids := make([]string, 0, len(g.modules))
	for id := range g.modules {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// ResolveOrder computes a total order over the requested ids plus their
// transitive dependencies such that every DependsOn entry appears strictly
// earlier than its dependent. With no ids the whole registry is ordered.
// Ties are broken by ascending priority, then id, so the order is stable
// across runs for the same registration set.
func (g *Graph) ResolveOrder(ids ...string) ([]string, error) {
	if err := g.validateDependencies(); err != nil {
		return nil, err
	}

	selected, err := g.selectModules(ids)
	if err != nil {
		return nil, err
	}

	return g.sortModules(selected)
}

// validateDependencies checks every declared dependency against the registry.
func (g *Graph) validateDependencies() error {
	for _, id := range g.ModuleIDs() {
		for _, dep := range g.modules[id].Metadata().DependsOn {
			if _, ok := g.modules[dep]; !ok {
				return ErrUnknownModule{ID: dep, RequiredBy: id}
			}
		}
	}
	return nil
}

// selectModules returns the transitive dependency closure of the requested
// ids, or the full registry when ids is empty.
func (g *Graph) selectModules(ids []string) (map[string]struct{}, error) {
	selected := make(map[string]struct{}, len(g.modules))

	if len(ids) == 0 {
		for id := range g.modules {
			selected[id] = struct{}{}
		}
		return selected, nil
	}

	queue := append([]string(nil), ids...)
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]

		if _, ok := g.modules[id]; !ok {
			return nil, ErrUnknownModule{ID: id}
		}
		if _, done := selected[id]; done {
			continue
		}
		selected[id] = struct{}{}
		queue = append(queue, g.modules[id].Metadata().DependsOn...)
	}
	return selected, nil
}

// sortModules runs Kahn's algorithm over the selected subgraph. The ready
// set is drained lowest (priority, id) first for deterministic tie-breaks.
func (g *Graph) sortModules(selected map[string]struct{}) ([]string, error) {
	indegree := make(map[string]int, len(selected))
	dependents := make(map[string][]string, len(selected))

	for id := range selected {
		indegree[id] = 0
	}
	for id := range selected {
		for _, dep := range g.modules[id].Metadata().DependsOn {
			if _, in := selected[dep]; !in {
				continue
			}
			indegree[id]++
			dependents[dep] = append(dependents[dep], id)
		}
	}

	var ready []string
	for id, degree := range indegree {
		if degree == 0 {
			ready = append(ready, id)
		}
	}

	order := make([]string, 0, len(selected))
	for len(ready) > 0 {
		sort.Slice(ready, func(i, j int) bool {
			return g.lessByPriority(ready[i], ready[j])
		})

		current := ready[0]
		ready = ready[1:]
		order = append(order, current)

		for _, dependent := range dependents[current] {
			indegree[dependent]--
			if indegree[dependent] == 0 {
				ready = append(ready, dependent)
			}
		}
	}

	if len(order) != len(selected) {
		return nil, ErrCircularDependency{Cycle: g.findCycle(selected)}
	}
	return order, nil
}

func (g *Graph) lessByPriority(a, b string) bool {
	pa := g.modules[a].Metadata().Priority
	pb := g.modules[b].Metadata().Priority
	if pa != pb {
		return pa < pb
	}
	return a < b
}

// findCycle extracts one dependency cycle from the selected subgraph via DFS.
func (g *Graph) findCycle(selected map[string]struct{}) []string {
	visited := make(map[string]bool, len(selected))
	stack := make(map[string]bool, len(selected))
	path := []string{}

	var cycle []string
	var dfs func(node string) bool

	dfs = func(node string) bool {
		visited[node] = true
		stack[node] = true
		path = append(path, node)

		for _, dep := range g.modules[node].Metadata().DependsOn {
			if _, in := selected[dep]; !in {
				continue
			}
			if !visited[dep] {
				if dfs(dep) {
					return true
				}
			} else if stack[dep] {
				idx := len(path) - 1
				for idx >= 0 && path[idx] != dep {
					idx--
				}
				if idx >= 0 {
					cycle = append([]string{}, path[idx:]...)
					return true
				}
			}
		}

		stack[node] = false
		path = path[:len(path)-1]
		return false
	}

	// Walk nodes in sorted order so the reported cycle is deterministic.
	nodes := make([]string, 0, len(selected))
	for id := range selected {
		nodes = append(nodes, id)
	}
	sort.Strings(nodes)

	for _, node := range nodes {
		if !visited[node] {
			if dfs(node) {
				break
			}
		}
	}
	return cycle
}
