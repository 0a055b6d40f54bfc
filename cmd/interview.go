package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spigell/portfolio-agent/internal/conversation"
	"github.com/spigell/portfolio-agent/internal/interview"
	"github.com/spigell/portfolio-agent/internal/logger"
	"github.com/spigell/portfolio-agent/internal/questions"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var interviewCmd = &cobra.Command{
	Use:   "interview",
	Short: "Run a mock technical interview",
	Run: func(_ *cobra.Command, _ []string) {
		runInterview()
	},
}

func init() {
	rootCmd.AddCommand(interviewCmd)
}

func runInterview() {
	ctx := context.Background()

	log, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		fatalBeforeLogger(err)
	}

	config, err := getConfig()
	if err != nil {
		log.Fatal("getting a config", zap.Error(err))
	}

	log.Info("starting the portfolio-agent interview", zap.String("version", version))

	catalog := questions.Load(questionsDir(config), log)
	if catalog.Len() == 0 {
		log.Fatal("no questions found", zap.String("dir", questionsDir(config)))
	}

	tech, role, years, err := interviewSetup(catalog)
	if err != nil {
		log.Fatal("interview setup aborted", zap.Error(err))
	}

	orchestrator := conversation.New(conversation.ModeInterview, nil, log)
	session := orchestrator.StartInterview(catalog, tech, role, years, questionsPerSession(config), nil)

	fmt.Println(session.Greeting())

	scanner := bufio.NewScanner(os.Stdin)
	for session.Stage() != interview.StageFinished {
		fmt.Print("> ")
		if !scanner.Scan() {
			return
		}
		fmt.Println(orchestrator.HandleTurn(ctx, scanner.Text()))
	}

	if len(session.Answers) == 0 {
		return
	}

	captureEmail(ctx, scanner, session, config, log)
}

// interviewSetup collects the technology, target role and years of experience
// through interactive prompts.
func interviewSetup(catalog *questions.Catalog) (string, string, int, error) {
	techPrompt := promptui.Select{
		Label: "Choose a technology",
		Items: catalog.Techs(),
	}
	_, tech, err := techPrompt.Run()
	if err != nil {
		return "", "", 0, err
	}

	rolePrompt := promptui.Select{
		Label: "Choose a target role",
		Items: catalog.Roles(tech),
	}
	_, role, err := rolePrompt.Run()
	if err != nil {
		return "", "", 0, err
	}

	yearsPrompt := promptui.Prompt{
		Label: "Years of experience",
		Validate: func(input string) error {
			n, err := strconv.Atoi(strings.TrimSpace(input))
			if err != nil || n < 0 {
				return fmt.Errorf("enter a non-negative number")
			}
			return nil
		},
	}
	raw, err := yearsPrompt.Run()
	if err != nil {
		return "", "", 0, err
	}
	years, _ := strconv.Atoi(strings.TrimSpace(raw))

	return tech, role, years, nil
}

// captureEmail reads one final line and, when it looks like an email address,
// pushes an interview report to the configured notification sink.
func captureEmail(ctx context.Context, scanner *bufio.Scanner, session *interview.Session, config *Config, log *zap.Logger) {
	fmt.Print("> ")
	if !scanner.Scan() {
		return
	}

	email := strings.TrimSpace(scanner.Text())
	if !strings.Contains(email, "@") {
		fmt.Println("No email left, that's fine. Thanks for practicing with me!")
		return
	}

	fmt.Println("Thanks! I will get back to you with feedback.")

	notifier, err := buildNotifier(config, log)
	if err != nil {
		log.Warn("building notification sink", zap.Error(err))
		return
	}
	if notifier == nil {
		log.Info("interview finished",
			zap.String("email", email),
			zap.Int("answers", len(session.Answers)),
		)
		return
	}

	message := fmt.Sprintf("Mock interview finished: %s (%s, %s, %d years) answered %d questions, contact %s",
		session.Name, session.Tech, session.Role, session.Years, len(session.Answers), email)
	if err := notifier.Push(ctx, message); err != nil {
		log.Warn("pushing interview report", zap.Error(err))
	}
}

func questionsDir(config *Config) string {
	if config != nil && config.Questions != nil && config.Questions.Dir != "" {
		return config.Questions.Dir
	}
	return viper.GetString("questions.dir")
}

func questionsPerSession(config *Config) int {
	if config != nil && config.Interview != nil && config.Interview.QuestionsPerSession > 0 {
		return config.Interview.QuestionsPerSession
	}
	return viper.GetInt("interview.questions-per-session")
}
