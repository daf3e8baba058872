package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/SaiNageswarS/faq-agent/agent"
	"github.com/SaiNageswarS/faq-agent/appconfig"
	"github.com/SaiNageswarS/faq-agent/knowledge"
	"github.com/SaiNageswarS/faq-agent/llm"
	"github.com/SaiNageswarS/faq-agent/memory"
	"github.com/SaiNageswarS/go-api-boot/config"
	"github.com/SaiNageswarS/go-api-boot/dotenv"
	"github.com/SaiNageswarS/go-api-boot/logger"
	"go.uber.org/zap"
)

func main() {
	dotenv.LoadEnv()

	ccfgg := &appconfig.AppConfig{}
	err := config.LoadConfig("config.ini", ccfgg)
	if err != nil {
		logger.Fatal("Failed to load config", zap.Error(err))
	}
	applyDefaults(ccfgg)

	chatModel := provideLLMClient(ccfgg.LLMProvider, ccfgg.ChatModel)
	classifierModel := provideLLMClient(ccfgg.LLMProvider, ccfgg.ClassifierModel)
	judgeModel := provideLLMClient(ccfgg.LLMProvider, ccfgg.JudgeModel)

	doc := loadKnowledgeBase(ccfgg)

	identity := knowledge.DefaultIdentity
	if doc != nil {
		identity = doc.Identity()
	}
	systemPrompt := knowledge.LoadSystemPrompt(ccfgg.SystemPromptPath, identity)

	faqAgent, err := agent.NewAgentBuilder().
		WithChatModel(chatModel).
		WithClassifierModel(classifierModel).
		WithJudgeModel(judgeModel).
		WithKnowledgeBase(doc).
		WithIdentity(identity).
		WithSystemPrompt(systemPrompt).
		WithMaxTokens(ccfgg.MaxTokens).
		WithConversationManager(memory.NewConversationManager(ccfgg.SessionWindow)).
		Build()
	if err != nil {
		logger.Fatal("Failed to build agent", zap.Error(err))
	}

	runChatLoop(getCancellableContext(), faqAgent, identity)
}

func applyDefaults(cfg *appconfig.AppConfig) {
	if cfg.DocsDir == "" {
		cfg.DocsDir = "sample_data"
	}
	if cfg.LLMProvider == "" {
		cfg.LLMProvider = "gemini"
	}
	if cfg.ChatModel == "" {
		cfg.ChatModel = "gemini-1.5-flash"
	}
	if cfg.ClassifierModel == "" {
		cfg.ClassifierModel = cfg.ChatModel
	}
	if cfg.JudgeModel == "" {
		cfg.JudgeModel = cfg.ChatModel
	}
	if cfg.SessionWindow == 0 {
		cfg.SessionWindow = 5
	}
	if cfg.MaxTokens == 0 {
		cfg.MaxTokens = 2000
	}
}

func provideLLMClient(provider, model string) llm.LLMClient {
	switch provider {
	case "gemini":
		return llm.NewGeminiClient(model)
	case "groq":
		return llm.NewGroqClient(model)
	case "anthropic":
		return llm.NewAnthropicClient(model)
	default:
		logger.Fatal("Unknown LLM provider", zap.String("provider", provider))
		return nil
	}
}

// loadKnowledgeBase discovers and loads the configured FAQ document. A missing
// or unloadable document is not fatal: the agent runs with the search tool
// reporting no data.
func loadKnowledgeBase(cfg *appconfig.AppConfig) *knowledge.Document {
	name := cfg.Document
	if name == "" {
		docs, err := knowledge.ListDocuments(cfg.DocsDir)
		if err != nil || len(docs) == 0 {
			logger.Error("No FAQ documents found", zap.String("dir", cfg.DocsDir), zap.Error(err))
			return nil
		}
		name = docs[0]
	}

	doc, err := knowledge.LoadDocument(filepath.Join(cfg.DocsDir, name))
	if err != nil {
		logger.Error("Failed to load FAQ document", zap.String("document", name), zap.Error(err))
		return nil
	}

	logger.Info("Loaded FAQ document",
		zap.String("document", name),
		zap.Int("records", len(doc.Data)),
		zap.Strings("categories", doc.Categories()))
	return doc
}

func runChatLoop(ctx context.Context, faqAgent *agent.Agent, identity string) {
	fmt.Printf("%s is ready. Type your question, or \"exit\" to quit.\n\n", identity)

	reporter := &consoleReporter{}
	scanner := bufio.NewScanner(os.Stdin)

	for {
		fmt.Print("You: ")
		if !scanner.Scan() {
			break
		}

		question := strings.TrimSpace(scanner.Text())
		if question == "" {
			continue
		}
		if question == "exit" || question == "quit" {
			break
		}

		response, err := faqAgent.Execute(ctx, reporter, &agent.AnswerRequest{
			SessionID: "console",
			Question:  question,
		})
		if err != nil {
			logger.Error("Agent execution failed", zap.Error(err))
			fmt.Printf("%s: I'm sorry, an error occurred while generating the reply. Please try again.\n\n", identity)
			continue
		}

		fmt.Printf("%s: %s\n\n", identity, response.Answer)
	}

	fmt.Println("Bye!")
}

// consoleReporter prints pipeline progress to stderr so it does not mix with
// the conversation on stdout.
type consoleReporter struct{}

func (r *consoleReporter) Send(event *agent.AgentStreamChunk) error {
	switch {
	case event.ProgressUpdate != nil:
		fmt.Fprintf(os.Stderr, "  [%s] %s\n", event.ProgressUpdate.Stage, event.ProgressUpdate.Message)
	case event.ToolResult != nil:
		fmt.Fprintf(os.Stderr, "  [tool] %s -> %s\n", event.ToolResult.ToolName, event.ToolResult.Result)
	case event.Error != nil:
		fmt.Fprintf(os.Stderr, "  [error] %s\n", event.Error.ErrorMessage)
	}
	return nil
}

func getCancellableContext() context.Context {
	ctx, cancel := context.WithCancel(context.Background())

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sig
		cancel()
	}()

	return ctx
}
