package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"mcpchat/internal/cli"
	"mcpchat/internal/config"
	"mcpchat/internal/gateway"
	"mcpchat/internal/intent"
	"mcpchat/internal/llm/openai"
	"mcpchat/internal/logger"
	"mcpchat/internal/mcp"
	"mcpchat/internal/orchestrator"

	"github.com/spf13/cobra"
)

var (
	configPath string
	apiBaseURL string
	apiKey     string
	model      string
	seed       int
	mode       string
	verbose    bool
	noColor    bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "mcpchat",
		Short: "MCP chat client",
		Long:  "A chat client bridging an OpenAI-compatible model backend and the tools of an MCP server",
	}

	chatCmd := &cobra.Command{
		Use:   "chat [server-command] [args...]",
		Short: "Chat with the model using an MCP server's tools",
		Args:  cobra.ArbitraryArgs,
		RunE:  runChat,
	}

	chatCmd.Flags().StringVar(&configPath, "config", "", "Path to mcpchat.yaml (default: search standard locations)")
	chatCmd.Flags().StringVar(&apiBaseURL, "api-base-url", os.Getenv("OPENAI_API_BASE_URL"), "OpenAI-compatible API base URL")
	chatCmd.Flags().StringVar(&apiKey, "api-key", os.Getenv("OPENAI_API_KEY"), "API key")
	chatCmd.Flags().StringVar(&model, "model", "", "Model to use")
	chatCmd.Flags().IntVar(&seed, "seed", 0, "Base seed for reproducible generations")
	chatCmd.Flags().StringVar(&mode, "mode", "", "Tool detection mode: substring or tagged")
	chatCmd.Flags().BoolVar(&verbose, "verbose", false, "Enable verbose output (debug mode)")
	chatCmd.Flags().BoolVar(&noColor, "no-color", false, "Disable colored output")

	rootCmd.AddCommand(chatCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func runChat(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(args)
	if err != nil {
		return err
	}

	if cfg.Backend.APIKey == "" {
		return fmt.Errorf("API key required (set OPENAI_API_KEY, use --api-key, or configure backend.api_key)")
	}
	if cfg.Server.Command == "" {
		return fmt.Errorf("MCP server command required (pass it as an argument or configure server.command)")
	}

	// Create Logger
	logLevel := logger.LevelInfo
	if verbose {
		logLevel = logger.LevelDebug
	}
	log := logger.NewLogger(os.Stdout, logLevel)
	if noColor {
		log.SetColorMode(false)
	}

	// Create LLM client and gateway
	log.Debug("Creating LLM client (model: %s)", cfg.Backend.Model)
	llmClient := openai.NewClient(cfg.Backend.APIKey, cfg.Backend.Model, cfg.Backend.BaseURL)
	gw := gateway.New(llmClient, cfg.Backend.Seed, log)

	// Create intent detector
	detector, err := intent.NewDetector(cfg.Detector, log)
	if err != nil {
		return err
	}
	log.Debug("Tool detection mode: %s", cfg.Detector)

	ctx := context.Background()

	// Connect to the MCP server
	log.Info("Connecting to MCP server: %s", cfg.Server.Command)
	session, err := mcp.Connect(ctx, cfg.Server.Name, cfg.Server.Command, cfg.Server.Args, cfg.Server.Env)
	if err != nil {
		return fmt.Errorf("failed to connect to MCP server: %w", err)
	}
	defer func() {
		if cerr := session.Close(); cerr != nil {
			log.Error("Error closing MCP session: %v", cerr)
		} else {
			log.Info("Connection to MCP server closed")
		}
	}()

	catalog := session.Catalog()
	if len(catalog) == 0 {
		log.Warn("Connected to server but no tools available")
	}
	for _, tool := range catalog {
		log.Info("  - %s: %s", tool.Name, tool.Description)
	}
	log.SessionStart(cfg.Server.Name, len(catalog))

	loop := orchestrator.New(gw, detector, log)

	chat := cli.NewChatLoop(loop, session, log, os.Stdin, os.Stdout)
	return chat.Run(ctx)
}

// loadConfig merges the YAML config with command-line overrides.
// Flags win over file values; positional args name the server command.
func loadConfig(args []string) (*config.Config, error) {
	var cfg *config.Config
	var err error

	if configPath != "" {
		cfg, err = config.Load(configPath)
	} else {
		cfg, err = config.LoadWithDefaults()
	}
	if err != nil {
		return nil, err
	}

	if len(args) > 0 {
		cfg.Server.Command = args[0]
		cfg.Server.Args = args[1:]
	}
	if cfg.Server.Name == "" && cfg.Server.Command != "" {
		cfg.Server.Name = filepath.Base(cfg.Server.Command)
	}

	if apiBaseURL != "" {
		cfg.Backend.BaseURL = apiBaseURL
	}
	if apiKey != "" {
		cfg.Backend.APIKey = apiKey
	}
	if model != "" {
		cfg.Backend.Model = model
	}
	if seed != 0 {
		cfg.Backend.Seed = seed
	}
	if mode != "" {
		cfg.Detector = config.DetectorMode(mode)
	}

	cfg.ExpandSecrets()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}
