// Package catalog is the static table of recognition rules driving the
// extraction engine. Rules are pure configuration: supporting a new source
// dialect means appending a rule here, never touching the matcher.
package catalog

import (
	"regexp"

	"github.com/archdrift/archdrift/internal/snapshot"
)

// EndpointRule recognizes one style of endpoint declaration. The pattern has
// at most one capturing group holding the route path; a rule without a group
// is a file-level marker and contributes its matched text as a sentinel path.
type EndpointRule struct {
	Method  snapshot.Method
	pattern *regexp.Regexp
}

// Matches returns the raw path strings declared in content. Matching is
// case-insensitive.
func (r EndpointRule) Matches(content string) []string {
	found := r.pattern.FindAllStringSubmatch(content, -1)
	if found == nil {
		return nil
	}
	paths := make([]string, 0, len(found))
	for _, m := range found {
		if len(m) > 1 {
			paths = append(paths, m[1])
		} else {
			paths = append(paths, m[0])
		}
	}
	return paths
}

// CallRule recognizes one style of outbound call site. The full matched span
// is kept verbatim; matching is case-sensitive.
type CallRule struct {
	pattern *regexp.Regexp
}

// Matches returns the literal matched spans in content.
func (r CallRule) Matches(content string) []string {
	return r.pattern.FindAllString(content, -1)
}

func endpointRule(method snapshot.Method, pattern string) EndpointRule {
	return EndpointRule{Method: method, pattern: regexp.MustCompile("(?i)" + pattern)}
}

func callRule(pattern string) CallRule {
	return CallRule{pattern: regexp.MustCompile(pattern)}
}

// EndpointRules covers annotation-style route declarations (Spring, JAX-RS)
// and fluent router registration (Express-style app/router calls).
var EndpointRules = []EndpointRule{
	endpointRule(snapshot.MethodGet, `@GetMapping\("([^"]+)"\)`),
	endpointRule(snapshot.MethodPost, `@PostMapping\("([^"]+)"\)`),
	endpointRule(snapshot.MethodPut, `@PutMapping\("([^"]+)"\)`),
	endpointRule(snapshot.MethodDelete, `@DeleteMapping\("([^"]+)"\)`),
	endpointRule(snapshot.MethodAny, `@RequestMapping\("([^"]+)"\)`),
	endpointRule(snapshot.MethodAny, `@Path\("([^"]+)"\)`),
	endpointRule(snapshot.MethodDelete, `@DELETE\b`),
	endpointRule(snapshot.MethodGet, `app\.get\(\s*["']([^"']+)["']`),
	endpointRule(snapshot.MethodPost, `app\.post\(\s*["']([^"']+)["']`),
	endpointRule(snapshot.MethodPut, `app\.put\(\s*["']([^"']+)["']`),
	endpointRule(snapshot.MethodDelete, `app\.delete\(\s*["']([^"']+)["']`),
	endpointRule(snapshot.MethodGet, `router\.get\(\s*["']([^"']+)["']`),
	endpointRule(snapshot.MethodPost, `router\.post\(\s*["']([^"']+)["']`),
	endpointRule(snapshot.MethodPut, `router\.put\(\s*["']([^"']+)["']`),
	endpointRule(snapshot.MethodDelete, `router\.delete\(\s*["']([^"']+)["']`),
}

// CallRules covers HTTP client invocations across dialects, RPC stub
// construction, process-level network tools, bare URLs and literal API path
// fragments.
var CallRules = []CallRule{
	callRule(`axios\.(get|post|put|delete|request|create)\(`),
	callRule(`fetch\(`),
	callRule(`requests\.(get|post|put|delete|head|options)\(`),
	callRule(`RestTemplate\.(getForObject|getForEntity|postForObject|postForEntity|exchange)\(`),
	callRule(`httpClient\.(send|execute)\(`),
	callRule(`WebClient\..*?\.(get|post|put|delete)\(`),
	callRule(`Grpc.*stub`),
	callRule(`\.newBlockingStub\(`),
	callRule(`insecure_channel\(`),
	callRule(`http\.Get\(`),
	callRule(`http\.Post\(`),
	callRule(`curl_init\(`),
	callRule(`file_get_contents\(`),
	callRule(`\bcurl\b`),
	callRule(`\bwget\b`),
	callRule(`Invoke-WebRequest`),
	callRule(`http[s]?://[^\s"']+`),
	callRule("[\"'`](/api/[^\"']+)[\"'`]"),
}
