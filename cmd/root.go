package cmd

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	app = "portfolio-agent"
)

type Config struct {
	Persona   *PersonaConfig   `mapstructure:"persona"`
	Questions *QuestionsConfig `mapstructure:"questions"`
	Interview *InterviewConfig `mapstructure:"interview"`
	AI        *AIConfig        `mapstructure:"ai"`
	Pushover  *PushoverConfig  `mapstructure:"pushover"`
}

type PersonaConfig struct {
	Name        string `mapstructure:"name"`
	SummaryFile string `mapstructure:"summary-file"`
	ResumeFile  string `mapstructure:"resume-file"`
}

type QuestionsConfig struct {
	Dir string `mapstructure:"dir"`
}

type InterviewConfig struct {
	QuestionsPerSession int `mapstructure:"questions-per-session"`
}

type AIConfig struct {
	Provider string        `mapstructure:"provider"`
	Gemini   *GeminiConfig `mapstructure:"gemini"`
}

type GeminiConfig struct {
	APIKeyFile    string `mapstructure:"api-key-file"`
	Model         string `mapstructure:"model"`
	MaxRetries    int    `mapstructure:"max-retries"`
	MaxToolRounds int    `mapstructure:"max-tool-rounds"`
}

type PushoverConfig struct {
	Enabled   bool   `mapstructure:"enabled"`
	TokenFile string `mapstructure:"token-file"`
	UserFile  string `mapstructure:"user-file"`
}

var (
	// Used for flags.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:   app,
		Short: "portfolio-agent is a cli chatbot that answers as you and runs mock technical interviews",
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	if err := viper.BindEnv("ai.gemini.api-key-file", "GEMINI_API_KEY_FILE"); err != nil {
		log.Fatalf("binding GEMINI_API_KEY_FILE environment variable: %v", err)
	}

	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is portfolio-agent.yaml in current directory)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))

	viper.SetDefault("questions.dir", "questions")
	viper.SetDefault("interview.questions-per-session", 5)
}

func initConfig() {
	// Secrets may come from a local .env file during development.
	_ = godotenv.Load()

	// Config needed only for commands that talk to external services or
	// load the question bank.
	if chatCmd.CalledAs() == "" && interviewCmd.CalledAs() == "" && questionsCmd.CalledAs() == "" {
		return
	}

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName(app + ".yaml")
	}

	// We can't proceed if the config file parsed with error.
	if err := viper.ReadInConfig(); err != nil {
		log.Fatal(err)
	}
}

func getConfig() (*Config, error) {
	var config *Config
	err := viper.Unmarshal(&config)
	if err != nil {
		return config, err
	}

	return config, nil
}
