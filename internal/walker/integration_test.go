package walker

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/archdrift/archdrift/internal/extract"
	"github.com/archdrift/archdrift/internal/report"
	"github.com/archdrift/archdrift/internal/snapshot"
	"github.com/archdrift/archdrift/internal/testutil"
	"github.com/archdrift/archdrift/internal/vcs"
)

// End-to-end: two commits of a small service, one weekly period, extraction
// and CSV reporting run against each checked-out snapshot.
func TestMineHistoryEndToEnd(t *testing.T) {
	path, gr := testutil.InitRepo(t, "main")

	testutil.CommitTree(t, gr, path, "initial service",
		time.Date(2024, 11, 20, 10, 0, 0, 0, time.UTC), map[string]string{
			"Controller.java": `@GetMapping("/users")`,
			"pom.xml": `<project>
  <dependencies>
    <dependency>
      <groupId>org.springframework</groupId>
      <artifactId>spring-web</artifactId>
      <version>5.3.0</version>
    </dependency>
  </dependencies>
</project>`,
		})

	tip := testutil.CommitTree(t, gr, path, "add orders route",
		time.Date(2024, 11, 30, 10, 0, 0, 0, time.UTC), map[string]string{
			"routes.js": `app.post('/orders', handler)
axios.get(inventoryURL)`,
		})

	repo, err := vcs.Open(path)
	if err != nil {
		t.Fatal(err)
	}

	csvPath := filepath.Join(t.TempDir(), "series.csv")
	sink, err := report.NewCSVSink(csvPath)
	if err != nil {
		t.Fatal(err)
	}
	defer sink.Close()

	ex := extract.New(nil)
	var sums []*snapshot.Summary

	// Sampling dates land on Nov 25 (first commit) and Dec 2 (second).
	w := New(repo, Weekly, 1, WithNow(fixedClock))
	err = w.Walk(func(snap snapshot.Snapshot) error {
		results := make([]*snapshot.Sets, 0, 1)
		for _, mod := range extract.ResolveModules(path) {
			results = append(results, ex.Extract(mod))
		}
		sum := snapshot.Aggregate(results...)
		sums = append(sums, sum)
		return sink.Write("svc", snap.Date, sum)
	})
	if err != nil {
		t.Fatalf("Walk() error: %v", err)
	}

	if len(sums) != 2 {
		t.Fatalf("got %d snapshots, want 2", len(sums))
	}

	checkCounts := func(i, endpoints, deps, calls int) {
		t.Helper()
		if sums[i].EndpointCount() != endpoints {
			t.Errorf("snapshot %d endpoints = %d, want %d", i, sums[i].EndpointCount(), endpoints)
		}
		if sums[i].DependencyCount() != deps {
			t.Errorf("snapshot %d dependencies = %d, want %d", i, sums[i].DependencyCount(), deps)
		}
		if sums[i].CallCount() != calls {
			t.Errorf("snapshot %d calls = %d, want %d", i, sums[i].CallCount(), calls)
		}
	}
	checkCounts(0, 1, 1, 0)
	checkCounts(1, 2, 1, 1)

	// The working tree is back on the original head.
	if head := testutil.HeadHash(t, gr); head != tip {
		t.Errorf("after mining head = %s, want original %s", head, tip)
	}

	// The CSV carries one data row per snapshot with matching counts.
	f, err := os.Open(csvPath)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 3 {
		t.Fatalf("got %d csv rows, want header + 2", len(rows))
	}
	if rows[1][1] != "2024-11-25" || rows[2][1] != "2024-12-02" {
		t.Errorf("csv dates = %q, %q", rows[1][1], rows[2][1])
	}
	if rows[2][2] != "2" || rows[2][3] != "1" || rows[2][4] != "1" {
		t.Errorf("csv counts = %v", rows[2][2:5])
	}
}
