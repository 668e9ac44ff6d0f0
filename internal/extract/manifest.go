package extract

import (
	"bufio"
	"bytes"
	"encoding/json"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"

	"github.com/archdrift/archdrift/internal/config"
)

// InheritedVersion marks a Maven dependency whose version is managed by a
// parent POM.
const InheritedVersion = "<inherited>"

// manifestParser extracts dependency coordinates from one manifest file.
// A parse error means the file contributes no dependencies; it never aborts
// the surrounding extraction.
type manifestParser func(path string, cfg *config.Config) ([]string, error)

var manifestParsers = map[string]manifestParser{
	"pom.xml":          parsePom,
	"package.json":     parsePackageJSON,
	"composer.json":    parseComposerJSON,
	"requirements.txt": parseRequirements,
	"build.gradle":     parseGradle,
	"go.mod":           parseGoMod,
}

// IsManifest reports whether name is a recognized dependency manifest.
func IsManifest(name string) bool {
	_, ok := manifestParsers[name]
	return ok
}

type pomDependency struct {
	GroupID    string `xml:"groupId"`
	ArtifactID string `xml:"artifactId"`
	Version    string `xml:"version"`
	Scope      string `xml:"scope"`
}

// parsePom collects every <dependency> element nested under a <dependencies>
// element anywhere in the document, excluding non-production scopes. The
// coordinate is group:artifact:version, with version "<inherited>" when the
// POM leaves it to a parent.
func parsePom(path string, cfg *config.Config) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	dec := xml.NewDecoder(bytes.NewReader(data))
	var stack []string
	var deps []string

	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Local == "dependency" && len(stack) > 0 && stack[len(stack)-1] == "dependencies" {
				var d pomDependency
				if err := dec.DecodeElement(&d, &t); err != nil {
					return nil, err
				}
				if cfg.ScopeExcluded(strings.TrimSpace(d.Scope)) {
					continue
				}
				gid := strings.TrimSpace(d.GroupID)
				aid := strings.TrimSpace(d.ArtifactID)
				if gid == "" || aid == "" {
					continue
				}
				ver := strings.TrimSpace(d.Version)
				if ver == "" {
					ver = InheritedVersion
				}
				deps = append(deps, fmt.Sprintf("%s:%s:%s", gid, aid, ver))
				continue
			}
			stack = append(stack, t.Name.Local)
		case xml.EndElement:
			if len(stack) > 0 {
				stack = stack[:len(stack)-1]
			}
		}
	}

	return deps, nil
}

// parsePackageJSON returns the keys of the "dependencies" map.
func parsePackageJSON(path string, _ *config.Config) ([]string, error) {
	return jsonMapKeys(path, "dependencies")
}

// parseComposerJSON returns the keys of the "require" map.
func parseComposerJSON(path string, _ *config.Config) ([]string, error) {
	return jsonMapKeys(path, "require")
}

func jsonMapKeys(path, field string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var doc map[string]json.RawMessage
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, err
	}

	raw, ok := doc[field]
	if !ok {
		return nil, nil
	}
	var entries map[string]json.RawMessage
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, err
	}

	deps := make([]string, 0, len(entries))
	for name := range entries {
		deps = append(deps, name)
	}
	return deps, nil
}

// parseRequirements reads name==version lines, keeping the bare name.
// Blank lines and #-comments are skipped.
func parseRequirements(path string, _ *config.Config) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var deps []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		name := strings.TrimSpace(strings.SplitN(line, "==", 2)[0])
		if name != "" {
			deps = append(deps, name)
		}
	}
	return deps, sc.Err()
}

var gradleDependencyRe = regexp.MustCompile(`(?:implementation|api|compile)\s+["']([^"']+)["']`)

// parseGradle extracts coordinates from implementation/api/compile lines.
func parseGradle(path string, _ *config.Config) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var deps []string
	for _, m := range gradleDependencyRe.FindAllStringSubmatch(string(data), -1) {
		deps = append(deps, m[1])
	}
	return deps, nil
}

// parseGoMod extracts module paths from require directives, handling both
// the single-line and block forms.
func parseGoMod(path string, _ *config.Config) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var deps []string
	inBlock := false
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		switch {
		case inBlock:
			if line == ")" {
				inBlock = false
				continue
			}
			if fields := strings.Fields(line); len(fields) > 0 && fields[0] != "//" {
				deps = append(deps, fields[0])
			}
		case strings.HasPrefix(line, "require"):
			rest := strings.TrimSpace(strings.TrimPrefix(line, "require"))
			if strings.HasPrefix(rest, "(") {
				inBlock = true
				continue
			}
			if fields := strings.Fields(rest); len(fields) > 0 {
				deps = append(deps, fields[0])
			}
		}
	}
	return deps, sc.Err()
}
