package catalog

import (
	"testing"

	"github.com/archdrift/archdrift/internal/snapshot"
)

// matchEndpoints runs every endpoint rule against content and collects the
// normalized results, the same way the extractor does.
func matchEndpoints(content string) map[string]struct{} {
	out := make(map[string]struct{})
	for _, rule := range EndpointRules {
		for _, raw := range rule.Matches(content) {
			out[snapshot.NewEndpoint(rule.Method, raw).String()] = struct{}{}
		}
	}
	return out
}

func matchCalls(content string) map[string]struct{} {
	out := make(map[string]struct{})
	for _, rule := range CallRules {
		for _, m := range rule.Matches(content) {
			out[m] = struct{}{}
		}
	}
	return out
}

func TestEndpointRules(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    []string
	}{
		{
			name:    "spring get mapping",
			content: `@GetMapping("/users")`,
			want:    []string{"GET /users"},
		},
		{
			name:    "spring post mapping",
			content: `@PostMapping("/orders/")`,
			want:    []string{"POST /orders"},
		},
		{
			name:    "spring request mapping",
			content: `@RequestMapping("/api/v1")`,
			want:    []string{"ANY /api/v1"},
		},
		{
			name:    "jaxrs path",
			content: `@Path("widgets")`,
			want:    []string{"ANY /widgets"},
		},
		{
			name: "jaxrs delete marker has no path group",
			content: `@DELETE
public Response remove() {}`,
			want: []string{"DELETE /@DELETE"},
		},
		{
			name:    "express app routes",
			content: `app.get('/health', h); app.post("/submit", h)`,
			want:    []string{"GET /health", "POST /submit"},
		},
		{
			name: "express router with newline",
			content: `router.put(
  '/items/:id', h)`,
			want: []string{"PUT /items/:id"},
		},
		{
			name:    "case insensitive annotation",
			content: `@getmapping("/lower")`,
			want:    []string{"GET /lower"},
		},
		{
			name:    "no declarations",
			content: `func main() { fmt.Println("hello") }`,
			want:    nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := matchEndpoints(tt.content)
			if len(got) != len(tt.want) {
				t.Fatalf("got %d endpoints %v, want %d", len(got), got, len(tt.want))
			}
			for _, ep := range tt.want {
				if _, ok := got[ep]; !ok {
					t.Errorf("missing endpoint %q in %v", ep, got)
				}
			}
		})
	}
}

func TestCallRules(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    []string
	}{
		{
			name:    "axios",
			content: `const r = await axios.get('http://billing/invoices')`,
			want:    []string{"axios.get(", "http://billing/invoices"},
		},
		{
			name:    "python requests",
			content: `resp = requests.post(url, json=payload)`,
			want:    []string{"requests.post("},
		},
		{
			name:    "grpc blocking stub",
			content: `stub := pb.NewGreeterClient(conn).newBlockingStub(`,
			want:    []string{".newBlockingStub("},
		},
		{
			name:    "go stdlib client",
			content: `resp, err := http.Get(endpoint)`,
			want:    []string{"http.Get("},
		},
		{
			name:    "php",
			content: `$ch = curl_init($url);`,
			want:    []string{"curl_init("},
		},
		{
			name:    "shell tool word boundary",
			content: `exec("curl -s localhost")`,
			want:    []string{"curl"},
		},
		{
			name:    "api path literal",
			content: `client.send("/api/payments/charge")`,
			want:    []string{`"/api/payments/charge"`},
		},
		{
			name:    "calls are case sensitive",
			content: `AXIOS.GET(url); Requests.Post(url)`,
			want:    nil,
		},
		{
			name:    "curly is not curl",
			content: `curly braces and wgetter`,
			want:    nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := matchCalls(tt.content)
			if len(got) != len(tt.want) {
				t.Fatalf("got %d calls %v, want %d", len(got), got, len(tt.want))
			}
			for _, call := range tt.want {
				if _, ok := got[call]; !ok {
					t.Errorf("missing call %q in %v", call, got)
				}
			}
		})
	}
}
