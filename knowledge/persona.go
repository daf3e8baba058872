package knowledge

import (
	"fmt"
	"os"
	"strings"

	"github.com/SaiNageswarS/go-api-boot/logger"
	"go.uber.org/zap"
)

// DefaultSystemPrompt generates the persona string used when no custom
// prompt file is supplied.
func DefaultSystemPrompt(identity string) string {
	return fmt.Sprintf("You are %s.", identity)
}

// LoadSystemPrompt reads an optional persona file, substituting
// {agent_identity} with the document identity. Any read problem falls back
// to the generated default prompt.
func LoadSystemPrompt(path, identity string) string {
	if path == "" {
		return DefaultSystemPrompt(identity)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			logger.Error("Failed to read system prompt file", zap.String("path", path), zap.Error(err))
		}
		return DefaultSystemPrompt(identity)
	}

	prompt := strings.TrimSpace(string(raw))
	if prompt == "" {
		return DefaultSystemPrompt(identity)
	}

	return strings.ReplaceAll(prompt, "{agent_identity}", identity)
}
