// pkg/registry/registry.go

package registry

import (
	cerr "github.com/cockroachdb/errors"
)

// Kind distinguishes how a unit's compose definition is shaped.
type Kind string

const (
	// GroupedStack is several interdependent containers in one definition.
	GroupedStack Kind = "grouped-stack"
	// StandaloneService is a single container per definition.
	StandaloneService Kind = "standalone-service"
)

// Category groups units for the status report.
type Category string

const (
	CategoryCrypto Category = "crypto"
	CategoryMedia  Category = "media"
	CategoryProxy  Category = "proxy"
)

// Probe describes how to recognize a unit as healthy in container status
// output: a container name substring plus the marker that must accompany it.
type Probe struct {
	ContainerMatch string
	HealthyMarker  string
}

// Unit is the atomic thing the lifecycle controller manages.
type Unit struct {
	Name          string
	Kind          Kind
	Category      Category
	DefinitionRef string
	DependsOn     []string
	HealthProbe   *Probe
}

// Registry is the fixed, validated set of units with a precomputed start
// order. The dependency edges must form a DAG; order is computed once at
// construction so adding a unit cannot silently violate ordering.
type Registry struct {
	units []Unit
	order []int
}

// New validates the unit set and computes a deterministic topological order.
// Ties are broken by declaration order, so independent units start in the
// order they are listed.
func New(units []Unit) (*Registry, error) {
	index := make(map[string]int, len(units))
	for i, u := range units {
		if u.Name == "" {
			return nil, cerr.New("unit with empty name")
		}
		if _, dup := index[u.Name]; dup {
			return nil, cerr.Newf("duplicate unit name %q", u.Name)
		}
		index[u.Name] = i
	}

	indegree := make([]int, len(units))
	dependents := make([][]int, len(units))
	for i, u := range units {
		for _, dep := range u.DependsOn {
			j, ok := index[dep]
			if !ok {
				return nil, cerr.Newf("unit %q depends on unknown unit %q", u.Name, dep)
			}
			indegree[i]++
			dependents[j] = append(dependents[j], i)
		}
	}

	// Kahn's algorithm with a sorted frontier for stable output.
	var order []int
	frontier := make([]int, 0, len(units))
	for i := range units {
		if indegree[i] == 0 {
			frontier = append(frontier, i)
		}
	}
	for len(frontier) > 0 {
		// Frontier stays sorted: new entries are appended in index order and
		// we always take the smallest.
		next := frontier[0]
		for _, c := range frontier[1:] {
			if c < next {
				next = c
			}
		}
		for k, c := range frontier {
			if c == next {
				frontier = append(frontier[:k], frontier[k+1:]...)
				break
			}
		}
		order = append(order, next)
		for _, d := range dependents[next] {
			indegree[d]--
			if indegree[d] == 0 {
				frontier = append(frontier, d)
			}
		}
	}

	if len(order) != len(units) {
		return nil, cerr.New("dependency cycle detected in unit registry")
	}

	return &Registry{units: units, order: order}, nil
}

// Units returns all units in declaration order.
func (r *Registry) Units() []Unit {
	out := make([]Unit, len(r.units))
	copy(out, r.units)
	return out
}

// StartOrder returns units in dependency order: every unit after all of its
// dependencies.
func (r *Registry) StartOrder() []Unit {
	out := make([]Unit, 0, len(r.units))
	for _, i := range r.order {
		out = append(out, r.units[i])
	}
	return out
}

// StopOrder is the exact reverse of StartOrder.
func (r *Registry) StopOrder() []Unit {
	start := r.StartOrder()
	out := make([]Unit, 0, len(start))
	for i := len(start) - 1; i >= 0; i-- {
		out = append(out, start[i])
	}
	return out
}

// Lookup returns the unit with the given name.
func (r *Registry) Lookup(name string) (Unit, bool) {
	for _, u := range r.units {
		if u.Name == name {
			return u, true
		}
	}
	return Unit{}, false
}
