package appconfig

import (
	"github.com/SaiNageswarS/go-api-boot/config"
)

type AppConfig struct {
	config.BootConfig `ini:",extends"`

	DocsDir          string `env:"DOCS-DIR" ini:"docs_dir"`
	Document         string `env:"DOCUMENT" ini:"document"`
	SystemPromptPath string `env:"SYSTEM-PROMPT-PATH" ini:"system_prompt_path"`

	LLMProvider     string `env:"LLM-PROVIDER" ini:"llm_provider"`
	ChatModel       string `env:"CHAT-MODEL" ini:"chat_model"`
	ClassifierModel string `env:"CLASSIFIER-MODEL" ini:"classifier_model"`
	JudgeModel      string `env:"JUDGE-MODEL" ini:"judge_model"`

	SessionWindow int `env:"SESSION-WINDOW" ini:"session_window"`
	MaxTokens     int `env:"MAX-TOKENS" ini:"max_tokens"`
}
