package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"math/rand/v2"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/cardfan/internal/server"
	"github.com/matzehuels/cardfan/pkg/host"
)

// isolateCLI points config and cache lookups at a temp dir.
func isolateCLI(t *testing.T) string {
	t.Helper()
	base := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(base, "config"))
	t.Setenv("XDG_CACHE_HOME", filepath.Join(base, "cache"))
	t.Setenv("CARDFAN_CONFIG", "")
	return base
}

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root := New(io.Discard, LogInfo).RootCommand()
	root.SetArgs(args)
	root.SetOut(&out)
	root.SetErr(io.Discard)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestLayoutJSON(t *testing.T) {
	isolateCLI(t)

	out, err := runCLI(t, "layout", "-n", "3", "--width", "800", "--height", "600", "--json", "--no-cache")
	if err != nil {
		t.Fatalf("layout error: %v", err)
	}
	var resp server.LayoutResponse
	if err := json.Unmarshal([]byte(out), &resp); err != nil {
		t.Fatalf("decode %q: %v", out, err)
	}
	if resp.Mode != "linear" {
		t.Errorf("Mode = %q, want linear", resp.Mode)
	}
	if len(resp.Transforms) != 3 {
		t.Fatalf("len(Transforms) = %d, want 3", len(resp.Transforms))
	}
	for i := 1; i < 3; i++ {
		if resp.Transforms[i].X <= resp.Transforms[i-1].X {
			t.Errorf("Transforms[%d].X = %v, not right of %v", i, resp.Transforms[i].X, resp.Transforms[i-1].X)
		}
	}
}

func TestLayoutArcFlags(t *testing.T) {
	isolateCLI(t)

	out, err := runCLI(t, "layout", "-n", "4", "--radius", "600", "--angle", "90", "--lifted", "1", "--json", "--no-cache")
	if err != nil {
		t.Fatalf("layout error: %v", err)
	}
	var resp server.LayoutResponse
	if err := json.Unmarshal([]byte(out), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Mode != "arc" {
		t.Errorf("Mode = %q, want arc", resp.Mode)
	}
	if !resp.Transforms[1].Lifted || resp.Transforms[0].Lifted {
		t.Errorf("Lifted = %v/%v, want false/true", resp.Transforms[0].Lifted, resp.Transforms[1].Lifted)
	}
	if d0, d3 := resp.Transforms[0].Degrees, resp.Transforms[3].Degrees; d0 <= 0 || d3 >= 0 {
		t.Errorf("Degrees = %v..%v, want leftmost tilted left and rightmost tilted right", d0, d3)
	}
}

func TestLayoutCached(t *testing.T) {
	isolateCLI(t)

	first, err := runCLI(t, "layout", "-n", "2")
	if err != nil {
		t.Fatalf("layout error: %v", err)
	}
	if strings.Contains(first, "cached") {
		t.Errorf("first run reported a cache hit:\n%s", first)
	}
	second, err := runCLI(t, "layout", "-n", "2")
	if err != nil {
		t.Fatalf("layout error: %v", err)
	}
	if !strings.Contains(second, "cached") {
		t.Errorf("second run missed the cache:\n%s", second)
	}
}

func TestLayoutInvalid(t *testing.T) {
	isolateCLI(t)

	if _, err := runCLI(t, "layout", "--angle", "0", "--no-cache"); err == nil {
		t.Error("layout --angle 0: expected error")
	}
}

func TestSimulate(t *testing.T) {
	isolateCLI(t)

	tests := []struct {
		name string
		args []string
		want []string
	}{
		{
			name: "recycle",
			args: []string{"simulate", "-n", "5", "-r", "2"},
			want: []string{"Summary", "2 (2 recycled)", "added", "removed", "tap"},
		},
		{
			name: "no recycle",
			args: []string{"simulate", "-n", "4", "-r", "1", "--no-recycle", "--quiet"},
			want: []string{"Summary", "1 (0 recycled)"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := runCLI(t, tt.args...)
			if err != nil {
				t.Fatalf("simulate error: %v", err)
			}
			for _, w := range tt.want {
				if !strings.Contains(out, w) {
					t.Errorf("output missing %q:\n%s", w, out)
				}
			}
		})
	}
}

func TestSimulationReusesHandles(t *testing.T) {
	sim := simulation{
		count:   4,
		remove:  2,
		recycle: true,
		step:    host.FrameStep,
		rng:     rand.New(rand.NewPCG(1, 2)),
		out:     io.Discard,
		quiet:   true,
	}
	stats, err := sim.run(800, 600)
	if err != nil {
		t.Fatalf("run() error = %v", err)
	}
	if stats.finalCards != 4 {
		t.Errorf("finalCards = %d, want 4", stats.finalCards)
	}
	if stats.recycled != 2 {
		t.Errorf("recycled = %d, want 2", stats.recycled)
	}
	if stats.pool.Reused != 2 || stats.reused != 2 {
		t.Errorf("reused = %d (hooks %d), want 2", stats.pool.Reused, stats.reused)
	}
	if stats.pool.Created != 4 {
		t.Errorf("Created = %d, want 4", stats.pool.Created)
	}
	if stats.gestures["tap"] != 1 || stats.gestures["drag"] != 1 {
		t.Errorf("gestures = %v, want one tap and one drag", stats.gestures)
	}
	if stats.virtual <= 0 {
		t.Errorf("virtual = %v, want > 0", stats.virtual)
	}
}

func TestConfigInitShow(t *testing.T) {
	base := isolateCLI(t)
	path := filepath.Join(base, "custom", "cardfan.toml")

	out, err := runCLI(t, "config", "init", path)
	if err != nil {
		t.Fatalf("config init error: %v", err)
	}
	if !strings.Contains(out, path) {
		t.Errorf("init output = %q, want path", out)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("config not written: %v", err)
	}
	if _, err := runCLI(t, "config", "init", path); err == nil {
		t.Error("second init without --force: expected error")
	}
	if _, err := runCLI(t, "config", "init", path, "--force"); err != nil {
		t.Errorf("init --force error: %v", err)
	}

	t.Setenv("CARDFAN_FAN_SPACING", "75")
	out, err = runCLI(t, "--config", path, "config", "show")
	if err != nil {
		t.Fatalf("config show error: %v", err)
	}
	for _, want := range []string{"[fan]", "spacing = 75.0", "[demo]", "[server]"} {
		if !strings.Contains(out, want) {
			t.Errorf("config show missing %q:\n%s", want, out)
		}
	}
}

func TestConfigPath(t *testing.T) {
	base := isolateCLI(t)

	out, err := runCLI(t, "config", "path")
	if err != nil {
		t.Fatalf("config path error: %v", err)
	}
	if want := filepath.Join(base, "config", "cardfan", "config.toml"); !strings.Contains(out, want) {
		t.Errorf("config path = %q, want %q", out, want)
	}
}

func TestCompletion(t *testing.T) {
	for _, shell := range []string{"bash", "zsh", "fish", "powershell"} {
		t.Run(shell, func(t *testing.T) {
			out, err := runCLI(t, "completion", shell)
			if err != nil {
				t.Fatalf("completion %s error: %v", shell, err)
			}
			if !strings.Contains(out, "cardfan") {
				t.Errorf("completion %s output does not mention cardfan", shell)
			}
		})
	}
}
