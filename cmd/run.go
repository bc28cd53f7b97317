package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"sync"

	"github.com/google/uuid"
	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/spigell/hr-screener/internal/logger"
	"github.com/spigell/hr-screener/internal/pipeline"
	"github.com/spigell/hr-screener/internal/resumetext"
	"github.com/spigell/hr-screener/internal/screening"
)

const (
	PromptYes = "Yes"
	PromptNo  = "No"
)

var errScreeningFailed = errors.New("one or more resumes could not be screened")

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Screen resumes against the job profile",
	Run: func(cmd *cobra.Command, _ []string) {
		run(cmd)
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringSliceP("resume", "r", nil, "resume file (.txt or .pdf); repeat for several candidates")
	runCmd.Flags().String("job", "", "job profile file (yaml or json)")
	runCmd.Flags().String("candidate-id", "", "candidate id for a single resume (default is a random uuid)")
	runCmd.Flags().StringP("output-dir", "o", "", "directory for result files")
	runCmd.Flags().BoolP("auto-approve", "y", false, "do not ask for confirmation before screening")

	runCmd.MarkFlagRequired("resume")

	viper.BindPFlag("job-file", runCmd.Flags().Lookup("job"))
	viper.BindPFlag("output-dir", runCmd.Flags().Lookup("output-dir"))
}

// run is the main command for the cli.
func run(cmd *cobra.Command) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	logger.Info("starting the hr-screener", zap.String("version", resolveVersion()))

	pretty, err := dumpConfig(config)
	if err != nil {
		logger.Warn("dumping the config", zap.Error(err))
	}
	logger.Debug(fmt.Sprintf("starting with config: \n %s", pretty))

	resumes, _ := cmd.Flags().GetStringSlice("resume")
	candidateID, _ := cmd.Flags().GetString("candidate-id")
	if candidateID != "" && len(resumes) > 1 {
		logger.Fatal("--candidate-id can only be used with a single resume")
	}

	if err := requireJob(config); err != nil {
		logger.Fatal("loading job profile", zap.Error(err))
	}

	job, err := screening.LoadJobProfile(config.JobFile)
	if err != nil {
		logger.Fatal("loading job profile", zap.Error(err))
	}

	logger.Info("job profile loaded",
		zap.String("title", job.Title),
		zap.Strings("required_skills", job.RequiredSkills),
		zap.Int("resumes", len(resumes)),
	)

	if auto, _ := cmd.Flags().GetBool("auto-approve"); !auto {
		prompt := promptui.Select{
			Label: fmt.Sprintf("Screen %d resume(s) for %q?", len(resumes), job.Title),
			Items: []string{PromptYes, PromptNo},
		}
		_, answer, err := prompt.Run()
		if err != nil {
			logger.Fatal("exiting", zap.Error(err))
		}
		if answer != PromptYes {
			logger.Info("exiting", zap.String("reason", "got no from prompt"))
			return
		}
	}

	orchestrator, err := newOrchestrator(ctx, config, logger)
	if err != nil {
		logger.Fatal("building the pipeline", zap.Error(err))
	}

	results, err := screenAll(ctx, orchestrator, config, job, resumes, candidateID, logger)
	printSummary(results)
	if err != nil {
		logger.Fatal("screening finished with errors", zap.Error(err))
	}
}

const redacted = "[redacted]"

// dumpConfig renders config for debug output with the inline api key masked.
func dumpConfig(config *Config) (string, error) {
	c := *config
	if c.AI != nil && c.AI.Gemini != nil && c.AI.Gemini.APIKey != "" {
		ai := *c.AI
		gemini := *ai.Gemini
		gemini.APIKey = redacted
		ai.Gemini = &gemini
		c.AI = &ai
	}

	pretty, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return "", err
	}
	return string(pretty), nil
}

type screened struct {
	Resume     string
	State      pipeline.State
	ResultFile string
	Err        error
}

// screenAll runs the pipeline for every resume, at most
// pipeline.concurrency at a time. One failing resume does not stop the rest.
func screenAll(ctx context.Context, o *pipeline.Orchestrator, config *Config, job *screening.JobProfile, resumes []string, candidateID string, log *zap.Logger) ([]screened, error) {
	results := make([]screened, len(resumes))

	limit := config.Pipeline.Concurrency
	if limit <= 0 {
		limit = pipeline.DefaultConcurrency
	}

	var (
		g      errgroup.Group
		mu     sync.Mutex
		failed bool
	)
	g.SetLimit(limit)

	for i, path := range resumes {
		g.Go(func() error {
			id := candidateID
			if id == "" {
				id = uuid.NewString()
			}

			res := screenOne(ctx, o, config.OutputDir, job, path, id, log)
			results[i] = res

			if res.Err != nil || res.State.Failed() {
				mu.Lock()
				failed = true
				mu.Unlock()
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return results, err
	}
	if failed {
		return results, errScreeningFailed
	}
	return results, nil
}

func screenOne(ctx context.Context, o *pipeline.Orchestrator, outputDir string, job *screening.JobProfile, path, id string, log *zap.Logger) screened {
	res := screened{Resume: path}
	runLog := logger.WithRun(log, path, id)

	text, err := resumetext.Load(ctx, path, runLog)
	if err != nil {
		runLog.Error("loading resume", zap.Error(err))
		res.Err = err
		return res
	}

	res.State = o.Run(ctx, pipeline.NewState(id, text, job))

	if outputDir == "" {
		outputDir = defaultOutputDir
	}
	file, err := pipeline.WriteResult(outputDir, res.State)
	if err != nil {
		runLog.Error("saving result", zap.Error(err))
		res.Err = err
		return res
	}
	res.ResultFile = file

	runLog.Info("result saved", zap.String("file", file))
	return res
}

func printSummary(results []screened) {
	fmt.Println()
	fmt.Println("SCREENING SUMMARY")
	for _, r := range results {
		fmt.Printf("\n%s\n", r.Resume)
		if r.Err != nil && r.State.CurrentStep == "" {
			fmt.Printf("  error:        %s\n", r.Err)
			continue
		}

		s := r.State
		fmt.Printf("  candidate:    %s\n", s.CandidateName())
		if s.Score != nil {
			fmt.Printf("  score:        %d/100 (%s)\n", s.Score.Score, s.Score.Classification)
			fmt.Printf("  skill match:  %.1f%%\n", s.Score.SkillMatchPercentage)
		}
		fmt.Printf("  decision:     %s\n", s.Decision)
		fmt.Printf("  human review: %t\n", s.HumanReview)
		if s.Coordination != nil {
			if slot, ok := s.Coordination.BookedSlot(); ok {
				fmt.Printf("  interview:    %s (booked: %t)\n", slot, s.Coordination.Booked)
			}
			if s.Coordination.Email.Subject != "" {
				fmt.Printf("  email:        %s\n", s.Coordination.Email.Subject)
			}
		}
		if s.Error != "" {
			fmt.Printf("  error:        %s\n", s.Error)
		}
		if r.ResultFile != "" {
			fmt.Printf("  result file:  %s\n", r.ResultFile)
		}
	}
}
