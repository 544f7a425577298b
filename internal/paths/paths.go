package paths

import (
	"path/filepath"
)

const (
	// DefaultSourcePath is where the generated TypeScript module lives.
	DefaultSourcePath = "src/assets/audio/paranormalSfx.ts"

	// DefaultManifestPath is where the manifest document lives.
	DefaultManifestPath = "public/audio/paranormal-sfx.json"

	configFile = ".sfxgen.yaml"
)

// ConfigPath returns <project>/.sfxgen.yaml
func ConfigPath(projectDir string) string {
	return filepath.Join(projectDir, configFile)
}

// Resolve joins a configured path onto the project directory unless it is
// already absolute.
func Resolve(projectDir, path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(projectDir, path)
}

// SourcePath returns the absolute-or-project-relative module path, falling
// back to DefaultSourcePath.
func SourcePath(projectDir, configured string) string {
	if configured == "" {
		configured = DefaultSourcePath
	}
	return Resolve(projectDir, configured)
}

// ManifestPath returns the manifest path, falling back to DefaultManifestPath.
func ManifestPath(projectDir, configured string) string {
	if configured == "" {
		configured = DefaultManifestPath
	}
	return Resolve(projectDir, configured)
}
