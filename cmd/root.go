package cmd

import (
	"errors"
	"log"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/spigell/hr-screener/internal/ai"
	"github.com/spigell/hr-screener/internal/booking"
	"github.com/spigell/hr-screener/internal/pipeline"
	"github.com/spigell/hr-screener/internal/retry"
	"github.com/spigell/hr-screener/internal/routing"
	"github.com/spigell/hr-screener/internal/scheduling"
)

const (
	app = "hr-screener"

	defaultOutputDir = "results"
)

type Config struct {
	JobFile      string            `mapstructure:"job-file"`
	BookingsFile string            `mapstructure:"bookings-file"`
	OutputDir    string            `mapstructure:"output-dir"`
	Company      ai.Company        `mapstructure:"company"`
	Routing      routing.Config    `mapstructure:"routing"`
	Retry        retry.Policy      `mapstructure:"retry"`
	Pipeline     pipeline.Config   `mapstructure:"pipeline"`
	Scheduling   scheduling.Config `mapstructure:"scheduling"`
	AI           *AIConfig         `mapstructure:"ai"`
}

type AIConfig struct {
	Provider string        `mapstructure:"provider"`
	Gemini   *GeminiConfig `mapstructure:"gemini"`
}

type GeminiConfig struct {
	APIKey     string `mapstructure:"api-key"`
	APIKeyFile string `mapstructure:"api-key-file"`
	Model      string `mapstructure:"model"`
}

var (
	// Used for flags.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:   app,
		Short: "hr-screener screens resumes against a job profile and books interview slots for accepted candidates",
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	viper.SetEnvPrefix("HR_SCREENER")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	viper.AutomaticEnv()

	if err := viper.BindEnv("ai.gemini.api-key-file", "GEMINI_API_KEY_FILE"); err != nil {
		log.Fatalf("binding GEMINI_API_KEY_FILE environment variable: %v", err)
	}

	setDefaults()

	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is hr-screener.yaml in current directory)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")
	rootCmd.PersistentFlags().String("bookings-file", "", "bookings ledger file (default is "+booking.DefaultPath+")")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
	viper.BindPFlag("bookings-file", rootCmd.PersistentFlags().Lookup("bookings-file"))
}

// setDefaults registers every default so that a missing config file still
// yields a complete configuration.
func setDefaults() {
	company := ai.DefaultCompany()
	routingCfg := routing.DefaultConfig()
	policy := retry.DefaultPolicy()
	pipelineCfg := pipeline.DefaultConfig()
	schedulingCfg := scheduling.DefaultConfig()

	viper.SetDefault("bookings-file", booking.DefaultPath)
	viper.SetDefault("output-dir", defaultOutputDir)

	viper.SetDefault("company.name", company.Name)
	viper.SetDefault("company.email", company.Email)
	viper.SetDefault("company.signature", company.Signature)

	viper.SetDefault("routing.accept-threshold", routingCfg.AcceptThreshold)
	viper.SetDefault("routing.review-low", routingCfg.ReviewLow)
	viper.SetDefault("routing.review-high", routingCfg.ReviewHigh)
	viper.SetDefault("routing.high-score", routingCfg.HighScore)
	viper.SetDefault("routing.max-gaps", routingCfg.MaxGaps)

	viper.SetDefault("retry.max-attempts", policy.MaxAttempts)
	viper.SetDefault("retry.delay", policy.Delay)

	viper.SetDefault("pipeline.timeout", pipelineCfg.Timeout)
	viper.SetDefault("pipeline.concurrency", pipelineCfg.Concurrency)
	viper.SetDefault("pipeline.questions", pipelineCfg.Questions)
	viper.SetDefault("pipeline.slots", pipelineCfg.Slots)

	viper.SetDefault("scheduling.lead-days", schedulingCfg.LeadDays)
	viper.SetDefault("scheduling.duration-minutes", schedulingCfg.DurationMinutes)
	viper.SetDefault("scheduling.timezone", schedulingCfg.Timezone)
	viper.SetDefault("scheduling.preferred-times", schedulingCfg.PreferredTimes)
	viper.SetDefault("scheduling.business-hours", schedulingCfg.BusinessHours)
	viper.SetDefault("scheduling.holidays", schedulingCfg.Holidays)
	viper.SetDefault("scheduling.attempts-per-slot", schedulingCfg.AttemptsPerSlot)

	viper.SetDefault("ai.provider", "gemini")
}

func initConfig() {
	// A missing .env is fine; the environment may already be set.
	_ = godotenv.Load()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName(app)
		viper.SetConfigType("yaml")
	}

	// An explicit config must parse; the default one may be absent.
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile == "" && errors.As(err, &notFound) {
			return
		}
		log.Fatal(err)
	}
}

func getConfig() (*Config, error) {
	var config *Config
	err := viper.Unmarshal(&config)
	if err != nil {
		return config, err
	}

	config.Pipeline.Retry = config.Retry

	return config, nil
}
