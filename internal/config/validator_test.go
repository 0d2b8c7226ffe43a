package config

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/indaco/relfiles/internal/core"
)

func newTestFS(paths ...string) *core.MockFileSystem {
	fs := core.NewMockFileSystem()
	for _, p := range paths {
		fs.SetFile(p, []byte("content"))
	}
	return fs
}

func validate(t *testing.T, fs core.FileSystem, cfg *Config) []string {
	t.Helper()
	results, err := NewValidator(fs, cfg).Validate(context.Background())
	if err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	return Failures(results)
}

func TestValidator_NoFiles(t *testing.T) {
	want := []string{"No files given, please configure at least one file to update."}
	for _, cfg := range []*Config{nil, {}, {Files: []FileSpec{}}} {
		if diff := cmp.Diff(want, validate(t, newTestFS(), cfg)); diff != "" {
			t.Errorf("failures mismatch (-want +got):\n%s", diff)
		}
	}
}

func TestValidator_FileRules(t *testing.T) {
	tests := []struct {
		name string
		file FileSpec
		want []string
	}{
		{
			name: "valid k8s",
			file: FileSpec{Type: TypeK8s, Path: StringList{"app.yaml"}, Image: StringList{"app"}},
		},
		{
			name: "missing type",
			file: FileSpec{Path: StringList{"app.yaml"}},
			want: []string{"Invalid config, no type for file at index 0 is set!"},
		},
		{
			name: "unsupported type",
			file: FileSpec{Type: "helm", Path: StringList{"app.yaml"}},
			want: []string{`Invalid config, type "helm" for file at index 0 is not supported!`},
		},
		{
			name: "k8s without image",
			file: FileSpec{Type: TypeK8s, Path: StringList{"app.yaml"}},
			want: []string{"File at index 0 has type k8s but no image name is set."},
		},
		{
			name: "xml without replacements",
			file: FileSpec{Type: TypeXML, Path: StringList{"app.yaml"}},
			want: []string{"XML files must be given replacements!"},
		},
		{
			name: "xml with incomplete replacements reports once",
			file: FileSpec{Type: TypeXML, Path: StringList{"app.yaml"}, Replacements: ReplacementList{
				{Key: "A"}, {Value: "b"},
			}},
			want: []string{"Each XML file replacement must have a key and a value set!"},
		},
		{
			name: "containerfile without label",
			file: FileSpec{Type: TypeContainerfile, Path: StringList{"app.yaml"}},
			want: []string{"Containerfiles need a label to be replaced."},
		},
		{
			name: "missing path skips access checks",
			file: FileSpec{Type: TypeFlutter},
			want: []string{"Invalid config, no path for file at index 0 is set!"},
		},
		{
			name: "missing file",
			file: FileSpec{Type: TypeFlutter, Path: StringList{"app.yaml", "missing.yaml"}},
			want: []string{`No write access to the file "missing.yaml".`},
		},
		{
			name: "denied file",
			file: FileSpec{Type: TypeFlutter, Path: StringList{"locked.yaml"}},
			want: []string{`No write access to the file "locked.yaml".`},
		},
		{
			name: "glob with matches",
			file: FileSpec{Type: TypeK8s, Path: StringList{"deploy/**/*.yaml"}, Image: StringList{"app"}},
		},
		{
			name: "glob without matches",
			file: FileSpec{Type: TypeK8s, Path: StringList{"charts/**/*.yaml"}, Image: StringList{"app"}},
			want: []string{`No file matches the pattern "charts/**/*.yaml".`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := newTestFS("app.yaml", "locked.yaml", "deploy/base/app.yaml", "deploy/prod/app.yaml")
			fs.Deny("locked.yaml")

			got := validate(t, fs, &Config{Files: []FileSpec{tt.file}})
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("failures mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestValidator_CollectsEveryProblem(t *testing.T) {
	cfg := &Config{Files: []FileSpec{
		{Type: TypeK8s, Path: StringList{"a.yaml"}, Image: StringList{"app"}},
		{Type: "helm"},
		{Type: TypeXML, Path: StringList{"missing.csproj"}},
	}}

	want := []string{
		`Invalid config, type "helm" for file at index 1 is not supported!`,
		"Invalid config, no path for file at index 1 is set!",
		"XML files must be given replacements!",
		`No write access to the file "missing.csproj".`,
	}
	if diff := cmp.Diff(want, validate(t, newTestFS("a.yaml"), cfg)); diff != "" {
		t.Errorf("failures mismatch (-want +got):\n%s", diff)
	}
}

func TestValidator_PassedSummary(t *testing.T) {
	cfg := &Config{Files: []FileSpec{{Type: TypeFlutter, Path: StringList{"pubspec.yaml"}}}}
	results, err := NewValidator(newTestFS("pubspec.yaml"), cfg).Validate(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if HasErrors(results) || len(results) != 1 || !results[0].Passed {
		t.Errorf("unexpected results: %+v", results)
	}
}

func TestValidator_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	cfg := &Config{Files: []FileSpec{{Type: TypeFlutter, Path: StringList{"pubspec.yaml"}}}}
	if _, err := NewValidator(newTestFS(), cfg).Validate(ctx); err == nil {
		t.Error("expected context error")
	}
}

func TestExpandPaths(t *testing.T) {
	fs := newTestFS("deploy/b.yaml", "deploy/a.yaml", "deploy/nested/c.yaml", "deploy/readme.md")

	got, err := ExpandPaths(context.Background(), fs, []string{"literal.yaml", "deploy/**/*.yaml", "deploy/a.yaml"})
	if err != nil {
		t.Fatalf("ExpandPaths() error = %v", err)
	}
	want := []string{"literal.yaml", "deploy/a.yaml", "deploy/b.yaml", "deploy/nested/c.yaml"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("ExpandPaths() mismatch (-want +got):\n%s", diff)
	}

	if _, err := ExpandPaths(context.Background(), fs, []string{"deploy/[.yaml"}); err == nil {
		t.Error("expected error for malformed pattern")
	}
}

func TestHasGlobMeta(t *testing.T) {
	tests := map[string]bool{
		"deploy/app.yaml":        false,
		"deploy/*.yaml":          true,
		"deploy/**/app.yaml":     true,
		"app-?.yaml":             true,
		"{a,b}.yaml":             true,
		"charts/[ab].yaml":       true,
		"with space/values.yaml": false,
	}
	for in, want := range tests {
		if got := HasGlobMeta(in); got != want {
			t.Errorf("HasGlobMeta(%q) = %v, want %v", in, got, want)
		}
	}
}
