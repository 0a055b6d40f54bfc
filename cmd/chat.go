package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/spigell/portfolio-agent/internal/agenttools"
	"github.com/spigell/portfolio-agent/internal/ai/gemini"
	"github.com/spigell/portfolio-agent/internal/conversation"
	"github.com/spigell/portfolio-agent/internal/logger"
	"github.com/spigell/portfolio-agent/internal/persona"
	"github.com/spigell/portfolio-agent/internal/pushover"
	"github.com/spigell/portfolio-agent/internal/secrets"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Chat with the portfolio persona",
	Run: func(_ *cobra.Command, _ []string) {
		chat()
	},
}

func init() {
	rootCmd.AddCommand(chatCmd)
}

func chat() {
	ctx := context.Background()

	log, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		fatalBeforeLogger(err)
	}

	config, err := getConfig()
	if err != nil {
		log.Fatal("getting a config", zap.Error(err))
	}

	log.Info("starting the portfolio-agent chat", zap.String("version", version))

	agent, err := buildAgent(ctx, config, log)
	if err != nil {
		log.Fatal("building the persona agent", zap.Error(err))
	}

	orchestrator := conversation.New(conversation.ModePersona, agent, log)

	fmt.Println("Say hello, or type \"exit\" to leave.")
	repl(ctx, orchestrator)
}

// repl reads user turns from stdin until EOF or an exit word.
func repl(ctx context.Context, orchestrator *conversation.Orchestrator) {
	scanner := bufio.NewScanner(os.Stdin)

	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			return
		}

		input := strings.TrimSpace(scanner.Text())
		if input == "" {
			continue
		}
		if strings.EqualFold(input, "exit") || strings.EqualFold(input, "quit") {
			return
		}

		fmt.Println(orchestrator.HandleTurn(ctx, input))
	}
}

func buildAgent(ctx context.Context, config *Config, log *zap.Logger) (*persona.Agent, error) {
	if config == nil || config.Persona == nil {
		return nil, errors.New("persona section is required in the config")
	}

	profile, err := persona.LoadProfile(config.Persona.Name, config.Persona.SummaryFile, config.Persona.ResumeFile)
	if err != nil {
		return nil, fmt.Errorf("loading profile: %w", err)
	}

	if config.AI == nil || config.AI.Gemini == nil {
		return nil, errors.New("ai.gemini section is required in the config")
	}

	provider := strings.TrimSpace(strings.ToLower(config.AI.Provider))
	if provider != "" && provider != "gemini" {
		return nil, fmt.Errorf("unsupported ai provider: %s", config.AI.Provider)
	}

	apiKey, err := secrets.Load(secrets.Source{
		Name: "gemini api key",
		File: config.AI.Gemini.APIKeyFile,
		Env:  "GEMINI_API_KEY",
	})
	if err != nil {
		return nil, fmt.Errorf("%w (set ai.gemini.api-key-file or GEMINI_API_KEY_FILE)", err)
	}

	genLogger := log.With(
		zap.String("provider", "gemini"),
		zap.String("model", config.AI.Gemini.Model),
	)

	generator, err := gemini.NewGenerator(ctx, apiKey, config.AI.Gemini.Model, config.AI.Gemini.MaxRetries, genLogger)
	if err != nil {
		return nil, err
	}

	notifier, err := buildNotifier(config, log)
	if err != nil {
		return nil, err
	}

	registry := agenttools.NewRegistry(log,
		agenttools.NewRecordUserDetails(notifier, log),
		agenttools.NewRecordUnknownQuestion(notifier, log),
	)

	return persona.NewAgent(profile, generator, registry, log, config.AI.Gemini.MaxToolRounds), nil
}

// buildNotifier returns a nil Notifier when pushover is disabled so the tools
// fall back to log-only delivery.
func buildNotifier(config *Config, log *zap.Logger) (agenttools.Notifier, error) {
	if config.Pushover == nil || !config.Pushover.Enabled {
		log.Info("pushover notifications disabled")
		return nil, nil
	}

	token, err := secrets.Load(secrets.Source{
		Name: "pushover token",
		File: config.Pushover.TokenFile,
		Env:  "PUSHOVER_TOKEN",
	})
	if err != nil {
		return nil, err
	}

	user, err := secrets.Load(secrets.Source{
		Name: "pushover user",
		File: config.Pushover.UserFile,
		Env:  "PUSHOVER_USER",
	})
	if err != nil {
		return nil, err
	}

	return pushover.New(token, user, log), nil
}

func fatalBeforeLogger(err error) {
	log.Fatalf("creating a logger: %s", err)
}
