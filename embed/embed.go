// Package embed provides the text templates compiled into sfxgen.
// All templates are embedded at compile time using Go's embed directive.
package embed

import (
	_ "embed"
	"strings"
)

//go:embed source_banner.txt
var sourceBannerTemplate string

//go:embed config.yaml
var configTemplate string

// DefaultRegenerateCommand is named in the banner when no command is given.
const DefaultRegenerateCommand = "go run ./cmd/sfxgen"

// GetSourceBanner returns the comment header of the generated module with the
// regenerate command substituted.
func GetSourceBanner(command string) string {
	if command == "" {
		command = DefaultRegenerateCommand
	}
	return strings.ReplaceAll(sourceBannerTemplate, "{{COMMAND}}", command)
}

// GetConfigTemplate returns a commented .sfxgen.yaml with the output paths
// substituted.
func GetConfigTemplate(sourcePath, manifestPath string) string {
	result := strings.ReplaceAll(configTemplate, "{{SOURCE}}", sourcePath)
	return strings.ReplaceAll(result, "{{MANIFEST}}", manifestPath)
}
