package cmd

import (
	"fmt"
	"strings"

	"github.com/spigell/portfolio-agent/internal/logger"
	"github.com/spigell/portfolio-agent/internal/questions"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var questionsCmd = &cobra.Command{
	Use:   "questions",
	Short: "Show question bank statistics",
	Run: func(_ *cobra.Command, _ []string) {
		showQuestions()
	},
}

func init() {
	rootCmd.AddCommand(questionsCmd)
}

func showQuestions() {
	log, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		fatalBeforeLogger(err)
	}

	config, err := getConfig()
	if err != nil {
		log.Fatal("getting a config", zap.Error(err))
	}

	dir := questionsDir(config)
	catalog := questions.Load(dir, log)

	fmt.Printf("question bank: %s (%d questions)\n", dir, catalog.Len())
	for _, tech := range catalog.Techs() {
		byTech := catalog.FilterByTech(tech)
		fmt.Printf("  %s: %d questions, roles: %s\n",
			tech, byTech.Len(), strings.Join(catalog.Roles(tech), ", "))
	}
}
