// Package snapshot defines the data model for one sampled point in
// repository history and the aggregation of per-module extraction results.
package snapshot

import (
	"sort"
	"strings"
	"time"
)

// Method is an HTTP method tag attached to an inferred endpoint.
type Method string

const (
	MethodGet    Method = "GET"
	MethodPost   Method = "POST"
	MethodPut    Method = "PUT"
	MethodDelete Method = "DELETE"
	MethodAny    Method = "ANY"
)

// Endpoint is an inferred externally reachable API route.
type Endpoint struct {
	Method Method
	Path   string
}

// NewEndpoint builds an endpoint with a normalized path.
func NewEndpoint(method Method, rawPath string) Endpoint {
	return Endpoint{Method: method, Path: NormalizePath(rawPath)}
}

// NormalizePath strips leading and trailing slashes and re-prefixes exactly
// one leading slash, so "users/", "/users" and "users" all become "/users".
// Normalizing an already-normalized path is a no-op.
func NormalizePath(raw string) string {
	return "/" + strings.Trim(strings.TrimSpace(raw), "/")
}

// String renders the endpoint as "METHOD /path".
func (e Endpoint) String() string {
	return string(e.Method) + " " + e.Path
}

// Snapshot identifies one point in history: a logical sampling date and the
// commit active at or before it. Immutable once resolved.
type Snapshot struct {
	Date   time.Time
	Commit string
}

// Sets accumulates deduplicated extraction results for one module.
type Sets struct {
	Endpoints    map[Endpoint]struct{}
	Calls        map[string]struct{}
	Dependencies map[string]struct{}
}

// NewSets returns empty extraction sets.
func NewSets() *Sets {
	return &Sets{
		Endpoints:    make(map[Endpoint]struct{}),
		Calls:        make(map[string]struct{}),
		Dependencies: make(map[string]struct{}),
	}
}

// AddEndpoint inserts a normalized endpoint.
func (s *Sets) AddEndpoint(e Endpoint) {
	s.Endpoints[e] = struct{}{}
}

// AddCall inserts a trimmed call-site string. Identity is the exact trimmed
// text; textually distinct invocations of the same logical call stay distinct.
func (s *Sets) AddCall(call string) {
	call = strings.TrimSpace(call)
	if call != "" {
		s.Calls[call] = struct{}{}
	}
}

// AddDependency inserts a dependency coordinate.
func (s *Sets) AddDependency(coord string) {
	coord = strings.TrimSpace(coord)
	if coord != "" {
		s.Dependencies[coord] = struct{}{}
	}
}

// Merge unions other into s.
func (s *Sets) Merge(other *Sets) {
	if other == nil {
		return
	}
	for e := range other.Endpoints {
		s.Endpoints[e] = struct{}{}
	}
	for c := range other.Calls {
		s.Calls[c] = struct{}{}
	}
	for d := range other.Dependencies {
		s.Dependencies[d] = struct{}{}
	}
}

// Summary is the aggregated result for one snapshot across all modules.
// Lists are sorted for display; counts are derived from the lists and never
// tracked independently.
type Summary struct {
	Endpoints    []string `json:"endpoints"`
	Calls        []string `json:"calls"`
	Dependencies []string `json:"dependencies"`
}

// Aggregate unions per-module extraction sets into a summary.
// Pure and deterministic given its inputs.
func Aggregate(results ...*Sets) *Summary {
	merged := NewSets()
	for _, r := range results {
		merged.Merge(r)
	}

	sum := &Summary{
		Endpoints:    make([]string, 0, len(merged.Endpoints)),
		Calls:        make([]string, 0, len(merged.Calls)),
		Dependencies: make([]string, 0, len(merged.Dependencies)),
	}
	for e := range merged.Endpoints {
		sum.Endpoints = append(sum.Endpoints, e.String())
	}
	for c := range merged.Calls {
		sum.Calls = append(sum.Calls, c)
	}
	for d := range merged.Dependencies {
		sum.Dependencies = append(sum.Dependencies, d)
	}
	sort.Strings(sum.Endpoints)
	sort.Strings(sum.Calls)
	sort.Strings(sum.Dependencies)
	return sum
}

// EndpointCount returns the endpoint set cardinality.
func (s *Summary) EndpointCount() int { return len(s.Endpoints) }

// CallCount returns the call set cardinality.
func (s *Summary) CallCount() int { return len(s.Calls) }

// DependencyCount returns the dependency set cardinality.
func (s *Summary) DependencyCount() int { return len(s.Dependencies) }
