package cmd

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/minicodemonkey/sfxgen/internal/asset"
	"github.com/minicodemonkey/sfxgen/internal/config"
	"github.com/minicodemonkey/sfxgen/internal/manifest"
	"github.com/minicodemonkey/sfxgen/internal/paths"
	"github.com/minicodemonkey/sfxgen/internal/synth"
	"github.com/minicodemonkey/sfxgen/internal/wav"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func testCommon(t *testing.T) (Common, *bytes.Buffer) {
	t.Helper()
	var out bytes.Buffer
	return Common{BaseDir: t.TempDir(), Out: &out, Logger: zap.NewNop()}, &out
}

func generateFixture(t *testing.T, c Common) {
	t.Helper()
	err := RunGenerate(context.Background(), GenerateOptions{Common: c, Seed: 21})
	require.NoError(t, err)
}

func TestRunGenerateWritesArtifacts(t *testing.T) {
	c, out := testCommon(t)
	generateFixture(t, c)

	src, err := os.ReadFile(paths.SourcePath(c.BaseDir, ""))
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(string(src), "// Auto-generated procedural paranormal SFX data URLs."))

	assets, err := asset.ParseTypeScript(string(src))
	require.NoError(t, err)
	require.Len(t, assets, 3)
	require.Equal(t, "UFO_ELVIS_SFX", assets[0].Name)
	require.Equal(t, "CRYPTID_RUMBLE_SFX", assets[1].Name)
	require.Equal(t, "RADIO_STATIC_SFX", assets[2].Name)

	for _, a := range assets {
		data, err := a.Bytes()
		require.NoError(t, err)
		_, _, err = wav.Decode(data)
		require.NoError(t, err, a.Name)
	}

	doc, err := os.ReadFile(paths.ManifestPath(c.BaseDir, ""))
	require.NoError(t, err)
	m, err := manifest.Parse(doc)
	require.NoError(t, err)
	require.Equal(t, []string{"ufo-elvis", "cryptid-rumble", "radio-static"}, m.IDs())

	require.Contains(t, out.String(), "ufo-elvis")
	require.Contains(t, out.String(), "Wrote ")
}

func TestRunGenerateIsReproducibleWithSeed(t *testing.T) {
	c, _ := testCommon(t)
	generateFixture(t, c)
	first, err := os.ReadFile(paths.SourcePath(c.BaseDir, ""))
	require.NoError(t, err)

	generateFixture(t, c)
	second, err := os.ReadFile(paths.SourcePath(c.BaseDir, ""))
	require.NoError(t, err)

	require.Equal(t, first, second, "same seed must regenerate byte-identical output")
}

func TestRunGenerateHonoursConfig(t *testing.T) {
	c, _ := testCommon(t)
	cfg := config.Default()
	cfg.Output.Source = "gen/sfx.ts"
	cfg.Output.Manifest = "gen/sfx.json"
	cfg.Seed = 3
	require.NoError(t, config.Save(c.BaseDir, cfg))

	require.NoError(t, RunGenerate(context.Background(), GenerateOptions{Common: c}))

	_, err := os.Stat(filepath.Join(c.BaseDir, "gen", "sfx.ts"))
	require.NoError(t, err)
	_, err = os.Stat(filepath.Join(c.BaseDir, "gen", "sfx.json"))
	require.NoError(t, err)
}

func TestRunCheckPassesAfterGenerate(t *testing.T) {
	c, out := testCommon(t)
	generateFixture(t, c)
	out.Reset()

	require.NoError(t, RunCheck(CheckOptions{Common: c}))
	require.Contains(t, out.String(), "manifest")
}

func TestRunCheckDetectsTampering(t *testing.T) {
	c, _ := testCommon(t)
	generateFixture(t, c)

	srcPath := paths.SourcePath(c.BaseDir, "")
	src, err := os.ReadFile(srcPath)
	require.NoError(t, err)
	tampered := strings.Replace(string(src), "RADIO_STATIC_SFX", "RADIO_NOISE_SFX", 1)
	require.NoError(t, os.WriteFile(srcPath, []byte(tampered), 0o644))

	err = RunCheck(CheckOptions{Common: c})
	require.ErrorIs(t, err, ErrCheckFailed)
	require.Contains(t, err.Error(), "RADIO_STATIC_SFX")
	require.Contains(t, err.Error(), "RADIO_NOISE_SFX")
}

func TestRunCheckDetectsDuplicateConstants(t *testing.T) {
	c, _ := testCommon(t)
	generateFixture(t, c)

	srcPath := paths.SourcePath(c.BaseDir, "")
	src, err := os.ReadFile(srcPath)
	require.NoError(t, err)
	assets, err := asset.ParseTypeScript(string(src))
	require.NoError(t, err)

	dup := asset.TypeScript{}.Format(assets[0])
	require.NoError(t, os.WriteFile(srcPath, []byte(string(src)+"\n"+dup+"\n"), 0o644))

	err = RunCheck(CheckOptions{Common: c})
	require.ErrorIs(t, err, ErrCheckFailed)
	require.ErrorContains(t, err, "UFO_ELVIS_SFX: constant declared more than once")
}

func TestRunCheckDetectsManifestDrift(t *testing.T) {
	c, _ := testCommon(t)
	generateFixture(t, c)

	doc := `{"ufo-elvis": "Procedural AM broadcast sting with vibrato sweep."}`
	require.NoError(t, os.WriteFile(paths.ManifestPath(c.BaseDir, ""), []byte(doc), 0o644))

	err := RunCheck(CheckOptions{Common: c})
	require.ErrorIs(t, err, ErrCheckFailed)
	require.Contains(t, err.Error(), "manifest")
}

func TestRunCheckWithoutModule(t *testing.T) {
	c, _ := testCommon(t)
	require.Error(t, RunCheck(CheckOptions{Common: c}))
}

func TestRunListPlain(t *testing.T) {
	c, out := testCommon(t)
	require.NoError(t, RunList(ListOptions{Common: c, Plain: true}))

	text := out.String()
	require.Contains(t, text, "| `ufo-elvis` | `UFO_ELVIS_SFX` | 1.8s | 79380 | 158804 |")
	require.Contains(t, text, "`cryptid-rumble`")
	require.Contains(t, text, "`radio-static`")
}

func TestRunListSizesMatchGeneratedAssets(t *testing.T) {
	c, _ := testCommon(t)
	generateFixture(t, c)

	src, err := os.ReadFile(paths.SourcePath(c.BaseDir, ""))
	require.NoError(t, err)
	assets, err := asset.ParseTypeScript(string(src))
	require.NoError(t, err)

	rows, err := effectRows(synth.Effects())
	require.NoError(t, err)
	for i, row := range rows {
		require.Equal(t, len(assets[i].Chunks), row.Chunks, row.ID)
	}
}

func TestRunShow(t *testing.T) {
	c, out := testCommon(t)
	generateFixture(t, c)
	out.Reset()

	require.NoError(t, RunShow(ShowOptions{Common: c, ID: "radio-static", Plain: true}))
	text := out.String()
	require.True(t, strings.HasPrefix(text, "export const RADIO_STATIC_SFX = 'data:audio/wav;base64,'"))
	require.Contains(t, text, "more chunks")

	out.Reset()
	require.NoError(t, RunShow(ShowOptions{Common: c, ID: "radio-static", Plain: true, Full: true}))
	require.NotContains(t, out.String(), "more chunks")

	require.Error(t, RunShow(ShowOptions{Common: c, ID: "banshee"}))
}

// syncBuffer is a bytes.Buffer safe for use from a background command.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

type fakePlayer struct {
	played [][]byte
}

func (f *fakePlayer) Play(_ context.Context, data []byte) error {
	f.played = append(f.played, data)
	return nil
}

func withFakePlayer(t *testing.T) *fakePlayer {
	t.Helper()
	fp := &fakePlayer{}
	old := getPlayer
	getPlayer = func() (audioPlayer, error) { return fp, nil }
	t.Cleanup(func() { getPlayer = old })
	return fp
}

func TestRunPlayRendersFresh(t *testing.T) {
	fp := withFakePlayer(t)
	c, out := testCommon(t)

	require.NoError(t, RunPlay(context.Background(), PlayOptions{Common: c, ID: "cryptid-rumble", Seed: 5}))
	require.Len(t, fp.played, 1)

	h, err := wav.ParseHeader(fp.played[0])
	require.NoError(t, err)
	require.Equal(t, 105840, h.Frames())
	require.Contains(t, out.String(), "cryptid-rumble")
}

func TestRunPlayFromModule(t *testing.T) {
	fp := withFakePlayer(t)
	c, _ := testCommon(t)
	generateFixture(t, c)

	require.NoError(t, RunPlay(context.Background(), PlayOptions{Common: c, ID: "ufo-elvis", FromModule: true}))
	require.Len(t, fp.played, 1)
	require.True(t, bytes.HasPrefix(fp.played[0], []byte("RIFF")))
}

func TestRunPlayReportsDeviceErrors(t *testing.T) {
	old := getPlayer
	getPlayer = func() (audioPlayer, error) { return nil, errors.New("no device") }
	t.Cleanup(func() { getPlayer = old })

	c, _ := testCommon(t)
	err := RunPlay(context.Background(), PlayOptions{Common: c, ID: "ufo-elvis"})
	require.ErrorContains(t, err, "no device")
}

func TestRunInit(t *testing.T) {
	c, out := testCommon(t)

	require.NoError(t, RunInit(InitOptions{Common: c}))
	require.Contains(t, out.String(), "Created")
	require.True(t, config.Exists(c.BaseDir))

	cfg, err := config.Load(c.BaseDir)
	require.NoError(t, err)
	require.Equal(t, paths.DefaultSourcePath, cfg.Output.Source)

	require.Error(t, RunInit(InitOptions{Common: c}), "second init without force must fail")
	require.NoError(t, RunInit(InitOptions{Common: c, Force: true}))
}

func TestRunWatchRegeneratesOnChange(t *testing.T) {
	c, _ := testCommon(t)
	var out syncBuffer
	c.Out = &out

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- RunWatch(ctx, WatchOptions{Common: c}) }()

	manifestPath := paths.ManifestPath(c.BaseDir, "")
	require.Eventually(t, func() bool {
		_, err := os.Stat(manifestPath)
		return err == nil
	}, 5*time.Second, 20*time.Millisecond, "initial generation should run")

	cfg := config.Default()
	cfg.Output.Manifest = "moved/sfx.json"
	require.NoError(t, config.Save(c.BaseDir, cfg))

	require.Eventually(t, func() bool {
		_, err := os.Stat(filepath.Join(c.BaseDir, "moved", "sfx.json"))
		return err == nil
	}, 5*time.Second, 20*time.Millisecond, "config change should trigger regeneration")

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("RunWatch did not stop after cancel")
	}
}

func TestRunPlayPreviewMatchesGeneratedAsset(t *testing.T) {
	fp := withFakePlayer(t)
	c, _ := testCommon(t)
	generateFixture(t, c)

	require.NoError(t, RunPlay(context.Background(), PlayOptions{Common: c, ID: "radio-static", Seed: 21}))
	require.NoError(t, RunPlay(context.Background(), PlayOptions{Common: c, ID: "radio-static", FromModule: true}))
	require.Len(t, fp.played, 2)
	require.Equal(t, fp.played[1], fp.played[0])
}
