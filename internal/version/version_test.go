package version

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"strings"
	"testing"
)

// TestGitHelper stands in for git when run by fakeGit.
func TestGitHelper(t *testing.T) {
	if os.Getenv("OPERADORAS_GIT_HELPER") != "1" {
		return
	}
	defer os.Exit(0)

	args := os.Args
	for len(args) > 0 && args[0] != "--" {
		args = args[1:]
	}
	args = append(args, "", "", "")[1:]

	var out string
	switch strings.Join(args[:3], " ") {
	case "describe --always --dirty":
		out = os.Getenv("GIT_COMMIT")
	case "describe --tags --abbrev=0":
		out = os.Getenv("GIT_TAG")
	}
	if out == "fail" {
		os.Exit(128)
	}
	fmt.Fprint(os.Stdout, out)
}

// fakeGit routes git calls to TestGitHelper, answering describe with tag and
// commit ("fail" makes the call exit non-zero). It counts the calls made.
func fakeGit(t *testing.T, tag, commit string) *int {
	t.Helper()
	calls := new(int)
	orig := execCommand
	t.Cleanup(func() {
		execCommand = orig
		Reset()
	})

	execCommand = func(ctx context.Context, name string, args ...string) *exec.Cmd {
		*calls++
		cs := append([]string{"-test.run=TestGitHelper", "--"}, args...)
		cmd := exec.CommandContext(ctx, os.Args[0], cs...)
		cmd.Env = []string{"OPERADORAS_GIT_HELPER=1", "GIT_TAG=" + tag, "GIT_COMMIT=" + commit}
		return cmd
	}
	Reset()
	return calls
}

func TestGitFallback(t *testing.T) {
	tests := []struct {
		name       string
		tag        string
		commit     string
		wantVer    string
		wantCommit string
	}{
		{"TaggedRelease", "v0.4.2", "a1b2c3d", "0.4.2", "a1b2c3d"},
		{"TagWithoutPrefix", "0.4.2", "a1b2c3d-dirty", "0.4.2", "a1b2c3d-dirty"},
		{"NoTags", "fail", "a1b2c3d", "dev", "a1b2c3d"},
		{"EmptyTag", "", "a1b2c3d", "dev", "a1b2c3d"},
		{"NotARepository", "fail", "fail", "dev", "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fakeGit(t, tt.tag, tt.commit)

			if got := GetVersion(); got != tt.wantVer {
				t.Errorf("GetVersion() = %q, want %q", got, tt.wantVer)
			}
			if got := GetCommit(); got != tt.wantCommit {
				t.Errorf("GetCommit() = %q, want %q", got, tt.wantCommit)
			}
		})
	}
}

func TestLdflagsWin(t *testing.T) {
	calls := fakeGit(t, "v9.9.9", "ffffff")
	Version, Commit, Date = "1.2.0", "abc1234", "2025-03-01"

	want := fmt.Sprintf("operadoras-tui 1.2.0 (commit: abc1234, built: 2025-03-01, %s/%s)", runtime.GOOS, runtime.GOARCH)
	if got := Info(); got != want {
		t.Errorf("Info() = %q, want %q", got, want)
	}
	if *calls != 0 {
		t.Errorf("git ran %d times with every value set at build time", *calls)
	}
}

func TestInfo(t *testing.T) {
	fakeGit(t, "v0.4.2", "a1b2c3d")

	info := Info()
	if !strings.HasPrefix(info, Name+" 0.4.2 (commit: a1b2c3d, built: ") {
		t.Errorf("Info() = %q", info)
	}
	if GetDate() == "" {
		t.Error("GetDate() should default to today")
	}
}

func TestReset(t *testing.T) {
	calls := fakeGit(t, "v0.4.2", "a1b2c3d")

	GetVersion()
	GetVersion()
	if *calls != 2 {
		t.Fatalf("git ran %d times, want 2 (once per value)", *calls)
	}

	Reset()
	if Version != "" || Commit != "" || Date != "" {
		t.Error("Reset should clear resolved values")
	}
	GetVersion()
	if *calls != 4 {
		t.Errorf("git ran %d times after Reset, want 4", *calls)
	}
}
