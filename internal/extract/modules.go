package extract

import (
	"encoding/xml"
	"os"
	"path/filepath"
	"strings"
)

// ResolveModules determines the logical sub-paths of a repository snapshot to
// analyze independently. A root pom.xml declaring <modules> yields one path
// per declared module; a missing, empty or malformed descriptor falls back to
// the repository root itself.
func ResolveModules(repoRoot string) []string {
	data, err := os.ReadFile(filepath.Join(repoRoot, "pom.xml"))
	if err != nil {
		return []string{repoRoot}
	}

	var descriptor struct {
		Modules []string `xml:"modules>module"`
	}
	if err := xml.Unmarshal(data, &descriptor); err != nil {
		return []string{repoRoot}
	}

	var paths []string
	for _, m := range descriptor.Modules {
		if m = strings.TrimSpace(m); m != "" {
			paths = append(paths, filepath.Join(repoRoot, m))
		}
	}
	if len(paths) == 0 {
		return []string{repoRoot}
	}
	return paths
}
