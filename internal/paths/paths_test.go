package paths

import (
	"path/filepath"
	"testing"
)

func TestConfigPath(t *testing.T) {
	got := ConfigPath("/work/game")
	want := filepath.Join("/work/game", ".sfxgen.yaml")
	if got != want {
		t.Errorf("ConfigPath() = %q, want %q", got, want)
	}
}

func TestSourcePathDefaults(t *testing.T) {
	got := SourcePath("/work/game", "")
	want := filepath.Join("/work/game", "src", "assets", "audio", "paranormalSfx.ts")
	if got != want {
		t.Errorf("SourcePath() = %q, want %q", got, want)
	}

	got = ManifestPath("/work/game", "")
	want = filepath.Join("/work/game", "public", "audio", "paranormal-sfx.json")
	if got != want {
		t.Errorf("ManifestPath() = %q, want %q", got, want)
	}
}

func TestResolveKeepsAbsolutePaths(t *testing.T) {
	abs := filepath.Join(t.TempDir(), "out.ts")
	if got := SourcePath("/work/game", abs); got != abs {
		t.Errorf("SourcePath() = %q, want %q", got, abs)
	}
	if got := Resolve("/work/game", "gen/sfx.json"); got != filepath.Join("/work/game", "gen", "sfx.json") {
		t.Errorf("Resolve() = %q", got)
	}
}
