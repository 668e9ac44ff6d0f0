package extract

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/archdrift/archdrift/internal/config"
	"github.com/archdrift/archdrift/internal/snapshot"
	"github.com/archdrift/archdrift/internal/testutil"
)

func TestExtractDeduplicatesAcrossFiles(t *testing.T) {
	root := t.TempDir()
	testutil.CreateFileTree(t, root, map[string]string{
		"a/UserController.java":   `@GetMapping("/users")`,
		"b/LegacyController.java": `@GetMapping("users/")`,
	})

	sets := New(nil).Extract(root)

	if len(sets.Endpoints) != 1 {
		t.Errorf("got %d endpoints, want 1 (same route in two files)", len(sets.Endpoints))
	}
}

func TestExtractSkipsExcludedDirs(t *testing.T) {
	root := t.TempDir()
	testutil.CreateFileTree(t, root, map[string]string{
		"src/routes.js":               `app.get('/live', h)`,
		"node_modules/dep/index.js":   `app.get('/vendored', h)`,
		"frontend/app.js":             `app.get('/spa', h)`,
		"node_modules/dep/pom.xml":    `<project><dependencies><dependency><groupId>g</groupId><artifactId>a</artifactId></dependency></dependencies></project>`,
	})

	sets := New(nil).Extract(root)

	if len(sets.Endpoints) != 1 {
		t.Fatalf("got %d endpoints %v, want 1", len(sets.Endpoints), sets.Endpoints)
	}
	if _, ok := sets.Endpoints[snapshot.NewEndpoint(snapshot.MethodGet, "/live")]; !ok {
		t.Error("endpoint outside excluded dirs should survive")
	}
	if len(sets.Dependencies) != 0 {
		t.Errorf("manifests under excluded dirs should be skipped, got %v", sets.Dependencies)
	}
}

func TestExtractSkipsBinaryFiles(t *testing.T) {
	root := t.TempDir()
	data := append([]byte(`app.get('/bin', h)`), 0x00)
	if err := os.WriteFile(filepath.Join(root, "blob.js"), data, 0o644); err != nil {
		t.Fatal(err)
	}

	sets := New(nil).Extract(root)

	if len(sets.Endpoints) != 0 {
		t.Errorf("binary files should contribute nothing, got %v", sets.Endpoints)
	}
}

func TestExtractCallAllowlistIsNarrower(t *testing.T) {
	root := t.TempDir()
	testutil.CreateFileTree(t, root, map[string]string{
		// .php and .go carry endpoints but are not scanned for calls.
		"api.php":    `curl_init($url); @GetMapping("/legacy")`,
		"handler.go": `http.Get(upstream)`,
		"svc.py":     `requests.get(url)`,
	})

	sets := New(nil).Extract(root)

	if len(sets.Calls) != 1 {
		t.Fatalf("got %d calls %v, want 1", len(sets.Calls), sets.Calls)
	}
	if _, ok := sets.Calls["requests.get("]; !ok {
		t.Errorf("python call site missing from %v", sets.Calls)
	}
	if _, ok := sets.Endpoints[snapshot.NewEndpoint(snapshot.MethodGet, "/legacy")]; !ok {
		t.Error("php endpoint should still be extracted")
	}
}

func TestExtractMalformedManifestIsContained(t *testing.T) {
	root := t.TempDir()
	testutil.CreateFileTree(t, root, map[string]string{
		"pom.xml":   `<project><dependencies><dependency>`,
		"routes.js": `app.post('/orders', h)`,
	})

	sets := New(nil).Extract(root)

	if len(sets.Dependencies) != 0 {
		t.Errorf("malformed manifest should contribute nothing, got %v", sets.Dependencies)
	}
	if len(sets.Endpoints) != 1 {
		t.Errorf("extraction should continue past a bad manifest, got %v", sets.Endpoints)
	}
}

func TestExtractRespectsCustomConfig(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Extract.ExcludeDirs = []string{"generated"}
	cfg.Extract.EndpointExtensions = []string{".rb"}
	cfg.Extract.CallExtensions = nil

	root := t.TempDir()
	testutil.CreateFileTree(t, root, map[string]string{
		"app.rb":           `app.get('/custom', h)`,
		"routes.js":        `app.get('/ignored', h)`,
		"generated/api.rb": `app.get('/machine', h)`,
	})

	sets := New(cfg).Extract(root)

	if len(sets.Endpoints) != 1 {
		t.Fatalf("got %d endpoints %v, want 1", len(sets.Endpoints), sets.Endpoints)
	}
	if _, ok := sets.Endpoints[snapshot.NewEndpoint(snapshot.MethodGet, "/custom")]; !ok {
		t.Errorf("expected only the .rb endpoint, got %v", sets.Endpoints)
	}
}

func TestExtractMissingPath(t *testing.T) {
	sets := New(nil).Extract(filepath.Join(t.TempDir(), "absent"))
	if len(sets.Endpoints)+len(sets.Calls)+len(sets.Dependencies) != 0 {
		t.Error("a missing module path should yield empty sets")
	}
}
