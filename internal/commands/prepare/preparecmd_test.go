package prepare

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/indaco/relfiles/internal/core"
	"github.com/indaco/relfiles/internal/git"
	"github.com/indaco/relfiles/internal/printer"
	"github.com/indaco/relfiles/internal/release"
	"github.com/urfave/cli/v3"
)

type fakeGit struct {
	branch    string
	branchErr error
	head      string
	tag       string
	tagErr    error
}

func (f *fakeGit) CurrentBranch(context.Context) (string, error) { return f.branch, f.branchErr }
func (f *fakeGit) HeadCommit(context.Context) (string, error)    { return f.head, nil }
func (f *fakeGit) LatestTag(context.Context) (string, error)     { return f.tag, f.tagErr }

func newApp(fs core.FileSystem, gitReader core.GitContextReader, out, errOut *bytes.Buffer) *cli.Command {
	return &cli.Command{
		Name:      "relfiles",
		Writer:    out,
		ErrWriter: errOut,
		Flags:     []cli.Flag{&cli.StringFlag{Name: "config"}},
		Commands:  []*cli.Command{Run(fs, gitReader)},
	}
}

func clearReleaseEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"RELFILES_LAST_VERSION", "RELFILES_NEXT_VERSION", "RELFILES_BRANCH"} {
		t.Setenv(key, "")
	}
}

func TestMain(m *testing.M) {
	printer.SetNoColor(true)
	m.Run()
}

func TestPrepareCmd_Flags(t *testing.T) {
	clearReleaseEnv(t)
	fs := core.NewMockFileSystem()
	fs.SetFile(".relfiles.yaml", []byte(`files:
  - type: flutter
    path: pubspec.yaml
  - type: containerfile
    path: Dockerfile
    label: version
`))
	fs.SetFile("pubspec.yaml", []byte("name: app\nversion: 1.0.0+4\n"))
	fs.SetFile("Dockerfile", []byte("FROM scratch\nLABEL version=\"v1.0.0\"\n"))

	var out, errOut bytes.Buffer
	err := newApp(fs, nil, &out, &errOut).Run(context.Background(),
		[]string{"relfiles", "prepare", "--last-version", "v1.0.0", "--next-version", "v1.1.0"})
	if err != nil {
		t.Fatalf("prepare failed: %v\n%s", err, errOut.String())
	}

	pubspec, _ := fs.GetFile("pubspec.yaml")
	if diff := cmp.Diff("name: app\nversion: 1.1.0+5\n", string(pubspec)); diff != "" {
		t.Errorf("pubspec mismatch (-want +got):\n%s", diff)
	}
	dockerfile, _ := fs.GetFile("Dockerfile")
	if diff := cmp.Diff("FROM scratch\nLABEL version=\"v1.1.0\"\n", string(dockerfile)); diff != "" {
		t.Errorf("Dockerfile mismatch (-want +got):\n%s", diff)
	}

	for _, want := range []string{
		"Replacing 1.0.0 with version 1.1.0 in pubspec.yaml",
		"Replacing 1.0.0 with version 1.1.0 in Dockerfile",
	} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("output missing %q:\n%s", want, out.String())
		}
	}
	if errOut.Len() != 0 {
		t.Errorf("unexpected stderr output: %q", errOut.String())
	}
}

func TestPrepareCmd_EnvSources(t *testing.T) {
	t.Setenv("RELFILES_LAST_VERSION", "2.0.0")
	t.Setenv("RELFILES_NEXT_VERSION", "2.1.0")
	t.Setenv("RELFILES_BRANCH", "main")

	fs := core.NewMockFileSystem()
	fs.SetFile(".relfiles.yaml", []byte(`files:
  - type: k8s
    path: deploy/app.yaml
    image: repo/app
    branches: main
`))
	fs.SetFile("deploy/app.yaml", []byte("image: repo/app:2.0.0\n"))

	var out, errOut bytes.Buffer
	if err := newApp(fs, nil, &out, &errOut).Run(context.Background(), []string{"relfiles", "prepare"}); err != nil {
		t.Fatalf("prepare failed: %v", err)
	}

	got, _ := fs.GetFile("deploy/app.yaml")
	if string(got) != "image: repo/app:2.1.0\n" {
		t.Errorf("manifest = %q", got)
	}
}

func TestPrepareCmd_ContextFile(t *testing.T) {
	clearReleaseEnv(t)
	fs := core.NewMockFileSystem()
	fs.SetFile(".relfiles.yaml", []byte(`files:
  - type: xml
    path: App.csproj
    replacements:
      - key: Version
        value: ${nextRelease.version}
      - key: Commit
        value: ${CI_COMMIT_SHA}
    branches: [release/*]
`))
	fs.SetFile("App.csproj", []byte("<Version>1.0.0</Version>\n<Commit>none</Commit>\n"))
	fs.SetFile("ctx.json", []byte(`{
  "lastRelease": {"version": "1.0.0"},
  "nextRelease": {"version": "1.0.1", "gitHead": "abc"},
  "branch": {"name": "release/1.x"},
  "env": {"CI_COMMIT_SHA": "deadbeef"}
}`))

	var out, errOut bytes.Buffer
	err := newApp(fs, nil, &out, &errOut).Run(context.Background(),
		[]string{"relfiles", "prepare", "--context-file", "ctx.json"})
	if err != nil {
		t.Fatalf("prepare failed: %v", err)
	}

	got, _ := fs.GetFile("App.csproj")
	if diff := cmp.Diff("<Version>1.0.1</Version>\n<Commit>deadbeef</Commit>\n", string(got)); diff != "" {
		t.Errorf("csproj mismatch (-want +got):\n%s", diff)
	}
}

func TestPrepareCmd_FlagsOverrideContextFile(t *testing.T) {
	clearReleaseEnv(t)
	fs := core.NewMockFileSystem()
	fs.SetFile(".relfiles.yaml", []byte("files:\n  - type: flutter\n    path: pubspec.yaml\n"))
	fs.SetFile("pubspec.yaml", []byte("version: 1.0.0\n"))
	fs.SetFile("ctx.json", []byte(`{"lastRelease": {"version": "1.0.0"}, "nextRelease": {"version": "1.0.1"}}`))

	var out, errOut bytes.Buffer
	err := newApp(fs, nil, &out, &errOut).Run(context.Background(),
		[]string{"relfiles", "prepare", "--context-file", "ctx.json", "--next-version", "1.1.0"})
	if err != nil {
		t.Fatalf("prepare failed: %v", err)
	}

	got, _ := fs.GetFile("pubspec.yaml")
	if string(got) != "version: 1.1.0\n" {
		t.Errorf("pubspec = %q", got)
	}
}

func TestPrepareCmd_FromGit(t *testing.T) {
	clearReleaseEnv(t)
	fs := core.NewMockFileSystem()
	fs.SetFile(".relfiles.yaml", []byte(`files:
  - type: xml
    path: pom.xml
    branches: main
    replacements:
      - key: version
        value: ${nextRelease.version}
      - key: scm.revision
        value: ${nextRelease.gitHead}
`))
	fs.SetFile("pom.xml", []byte("<version>0.9.0</version><scm.revision>x</scm.revision>"))

	gitReader := &fakeGit{branch: "main", head: "c0ffee", tag: "v0.9.0"}
	var out, errOut bytes.Buffer
	err := newApp(fs, gitReader, &out, &errOut).Run(context.Background(),
		[]string{"relfiles", "prepare", "--from-git", "--next-version", "1.0.0"})
	if err != nil {
		t.Fatalf("prepare failed: %v\n%s", err, errOut.String())
	}

	got, _ := fs.GetFile("pom.xml")
	if diff := cmp.Diff("<version>1.0.0</version><scm.revision>c0ffee</scm.revision>", string(got)); diff != "" {
		t.Errorf("pom mismatch (-want +got):\n%s", diff)
	}
	if !strings.Contains(out.String(), "Replacing 0.9.0 with version 1.0.0 in pom.xml") {
		t.Errorf("last version was not taken from the tag:\n%s", out.String())
	}
}

func TestPrepareCmd_FromGitWarnings(t *testing.T) {
	clearReleaseEnv(t)
	fs := core.NewMockFileSystem()
	fs.SetFile(".relfiles.yaml", []byte("files:\n  - type: flutter\n    path: pubspec.yaml\n    branches: main\n"))
	fs.SetFile("pubspec.yaml", []byte("version: 1.0.0\n"))

	gitReader := &fakeGit{branchErr: git.ErrDetachedHead, tagErr: errors.New("no names found")}
	var out, errOut bytes.Buffer
	err := newApp(fs, gitReader, &out, &errOut).Run(context.Background(),
		[]string{"relfiles", "prepare", "--from-git", "--last-version", "1.0.0", "--next-version", "1.0.1"})
	if !errors.Is(err, release.ErrNoBranchInfo) {
		t.Fatalf("expected ErrNoBranchInfo, got %v", err)
	}
	if !strings.Contains(errOut.String(), "HEAD is detached") {
		t.Errorf("missing detached HEAD warning: %q", errOut.String())
	}
	if strings.Contains(errOut.String(), "latest tag") {
		t.Errorf("git tags should not be read when --last-version is given: %q", errOut.String())
	}
}

func TestPrepareCmd_MissingVersions(t *testing.T) {
	clearReleaseEnv(t)
	fs := core.NewMockFileSystem()
	fs.SetFile(".relfiles.yaml", []byte("files:\n  - type: flutter\n    path: pubspec.yaml\n"))
	fs.SetFile("pubspec.yaml", []byte("version: 1.0.0\n"))

	var out, errOut bytes.Buffer
	err := newApp(fs, nil, &out, &errOut).Run(context.Background(),
		[]string{"relfiles", "prepare", "--next-version", "1.0.1"})
	if !errors.Is(err, release.ErrNoReleaseInfo) {
		t.Fatalf("expected ErrNoReleaseInfo, got %v", err)
	}
	if len(fs.Writes) != 0 {
		t.Errorf("files written without release info: %v", fs.Writes)
	}
}

func TestPrepareCmd_DryRunAndProgressionWarning(t *testing.T) {
	clearReleaseEnv(t)
	fs := core.NewMockFileSystem()
	fs.SetFile(".relfiles.yaml", []byte("files:\n  - type: flutter\n    path: pubspec.yaml\n"))
	fs.SetFile("pubspec.yaml", []byte("version: 2.0.0\n"))

	var out, errOut bytes.Buffer
	err := newApp(fs, nil, &out, &errOut).Run(context.Background(),
		[]string{"relfiles", "prepare", "--dry-run", "--last-version", "2.0.0", "--next-version", "1.0.0"})
	if err != nil {
		t.Fatalf("prepare failed: %v", err)
	}

	if len(fs.Writes) != 0 {
		t.Errorf("dry run wrote files: %v", fs.Writes)
	}
	if !strings.Contains(out.String(), "Dry run: pubspec.yaml would be updated") {
		t.Errorf("missing dry-run report:\n%s", out.String())
	}
	if !strings.Contains(errOut.String(), "next version 1.0.0 does not follow last version 2.0.0") {
		t.Errorf("missing progression warning: %q", errOut.String())
	}
}

func TestPrepareCmd_BadContextFile(t *testing.T) {
	clearReleaseEnv(t)
	fs := core.NewMockFileSystem()
	fs.SetFile(".relfiles.yaml", []byte("files:\n  - type: flutter\n    path: pubspec.yaml\n"))
	fs.SetFile("ctx.json", []byte("not json"))

	var out, errOut bytes.Buffer
	tests := map[string]string{
		"missing": "missing.json",
		"invalid": "ctx.json",
	}
	for name, file := range tests {
		t.Run(name, func(t *testing.T) {
			err := newApp(fs, nil, &out, &errOut).Run(context.Background(),
				[]string{"relfiles", "prepare", "--context-file", file})
			if err == nil || !strings.Contains(err.Error(), file) {
				t.Errorf("expected an error naming %s, got %v", file, err)
			}
		})
	}
}
