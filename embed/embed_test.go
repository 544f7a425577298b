package embed

import (
	"strings"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestGetSourceBanner(t *testing.T) {
	banner := GetSourceBanner("make sfx")

	// Verify the command placeholder was substituted
	if strings.Contains(banner, "{{COMMAND}}") {
		t.Error("Expected {{COMMAND}} to be substituted")
	}
	if !strings.Contains(banner, "make sfx") {
		t.Error("Expected banner to contain the regenerate command")
	}

	// Every line must be a comment so the module stays valid TypeScript
	for _, line := range strings.Split(strings.TrimRight(banner, "\n"), "\n") {
		if !strings.HasPrefix(line, "//") {
			t.Errorf("Expected comment line, got %q", line)
		}
	}
}

func TestGetSourceBannerFallback(t *testing.T) {
	banner := GetSourceBanner("")
	if !strings.Contains(banner, DefaultRegenerateCommand) {
		t.Errorf("Expected banner to fall back to %q", DefaultRegenerateCommand)
	}
}

func TestSourceBannerNotEmpty(t *testing.T) {
	if sourceBannerTemplate == "" {
		t.Error("Expected sourceBannerTemplate to be embedded and non-empty")
	}
}

func TestGetConfigTemplate(t *testing.T) {
	text := GetConfigTemplate("gen/sfx.ts", "gen/sfx.json")
	if strings.Contains(text, "{{SOURCE}}") || strings.Contains(text, "{{MANIFEST}}") {
		t.Error("Expected placeholders to be substituted")
	}

	var parsed struct {
		Output struct {
			Source   string `yaml:"source"`
			Manifest string `yaml:"manifest"`
		} `yaml:"output"`
		Workers int `yaml:"workers"`
	}
	if err := yaml.Unmarshal([]byte(text), &parsed); err != nil {
		t.Fatalf("Expected template to be valid YAML: %v", err)
	}
	if parsed.Output.Source != "gen/sfx.ts" || parsed.Output.Manifest != "gen/sfx.json" {
		t.Errorf("Unexpected output paths: %+v", parsed.Output)
	}
	if parsed.Workers != 1 {
		t.Errorf("Expected workers 1, got %d", parsed.Workers)
	}
}
