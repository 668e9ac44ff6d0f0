package extract

import (
	"path/filepath"
	"testing"

	"github.com/archdrift/archdrift/internal/testutil"
)

func TestResolveModules(t *testing.T) {
	tests := []struct {
		name string
		pom  string // empty means no pom.xml is written
		want []string
	}{
		{
			name: "no descriptor falls back to root",
			pom:  "",
			want: []string{"."},
		},
		{
			name: "declared modules",
			pom: `<project>
  <modules>
    <module>billing</module>
    <module>shipping</module>
  </modules>
</project>`,
			want: []string{"billing", "shipping"},
		},
		{
			name: "empty modules falls back to root",
			pom:  `<project><modules></modules></project>`,
			want: []string{"."},
		},
		{
			name: "blank entries are dropped",
			pom: `<project>
  <modules>
    <module>  </module>
    <module>core</module>
  </modules>
</project>`,
			want: []string{"core"},
		},
		{
			name: "malformed descriptor falls back to root",
			pom:  `<project><modules>`,
			want: []string{"."},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := t.TempDir()
			if tt.pom != "" {
				testutil.WriteFile(t, filepath.Join(root, "pom.xml"), tt.pom)
			}

			got := ResolveModules(root)
			if len(got) != len(tt.want) {
				t.Fatalf("got %v, want %d paths", got, len(tt.want))
			}
			for i, rel := range tt.want {
				want := filepath.Join(root, rel)
				if got[i] != want {
					t.Errorf("paths[%d] = %q, want %q", i, got[i], want)
				}
			}
		})
	}
}
