package main

import (
	"context"
	"fmt"
	"slices"

	"github.com/jonathan/resume-ats/internal/config"
	"github.com/jonathan/resume-ats/internal/observability"
	"github.com/jonathan/resume-ats/internal/schemas"
	"github.com/jonathan/resume-ats/internal/session"
	"github.com/jonathan/resume-ats/internal/types"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var batchCommand = &cobra.Command{
	Use:   "batch",
	Short: "Rank several job descriptions by how well a resume matches them",
	Long: `Scores one resume against many job descriptions concurrently and prints them best match first.
Job descriptions with identical text are scored once.`,
	RunE: runBatchCmd,
}

var (
	batchConfigPath  string
	batchResume      string
	batchJobs        []string
	batchJobURLs     []string
	batchTemplate    string
	batchConcurrency int
)

func init() {
	batchCommand.Flags().StringVar(&batchConfigPath, "config", "", "Path to config.json file (values can be overridden by other flags)")
	batchCommand.Flags().StringVarP(&batchResume, "resume", "r", "", "Path to resume JSON file")
	batchCommand.Flags().StringArrayVarP(&batchJobs, "job", "j", nil, "Path to a job description file (repeatable)")
	batchCommand.Flags().StringArrayVar(&batchJobURLs, "job-url", nil, "URL of a job posting (repeatable)")
	batchCommand.Flags().StringVarP(&batchTemplate, "template", "t", "", "Template id: modern, classic, creative or minimal")
	batchCommand.Flags().IntVar(&batchConcurrency, "concurrency", 0, "Number of job descriptions scored in parallel")

	rootCmd.AddCommand(batchCommand)
}

func runBatchCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := resolveConfig(batchConfigPath, func(cfg *config.Config) {
		if cmd.Flags().Changed("resume") {
			cfg.Resume = batchResume
		}
		if cmd.Flags().Changed("template") {
			cfg.Template = batchTemplate
		}
		if cmd.Flags().Changed("concurrency") {
			cfg.Concurrency = batchConcurrency
		}
		// The config file's single job is ignored; batch takes jobs from flags only
		cfg.Job, cfg.JobURL = "", ""
	})
	if err != nil {
		return err
	}

	sources := make([]jobSource, 0, len(batchJobs)+len(batchJobURLs))
	for _, p := range batchJobs {
		sources = append(sources, jobSource{Path: p})
	}
	for _, u := range batchJobURLs {
		sources = append(sources, jobSource{URL: u})
	}
	if len(sources) == 0 {
		return fmt.Errorf("at least one --job or --job-url must be provided")
	}

	doc, err := schemas.ReadResume(cfg.Resume)
	if err != nil {
		return err
	}

	var templateID types.TemplateID
	if cfg.Template != "" {
		if templateID, err = types.ParseTemplateID(cfg.Template); err != nil {
			return err
		}
	}

	ctx := commandContext(cmd)

	ranked, err := rankJobs(ctx, doc, sources, templateID, cfg.Concurrency)
	if err != nil {
		return err
	}

	observability.NewPrinter(cmd.OutOrStdout()).PrintRanking(ranked)
	return nil
}

// jobSource names one job description by file path or URL
type jobSource struct {
	Path string
	URL  string
}

func (s jobSource) String() string {
	if s.URL != "" {
		return s.URL
	}
	return s.Path
}

// rankJobs loads every source and scores doc against each distinct job description
// with at most concurrency workers. Sources that fail to load are reported with
// their error and ranked last. The result is sorted by overall score, best first.
func rankJobs(ctx context.Context, doc *types.ResumeDocument, sources []jobSource, template types.TemplateID, concurrency int) ([]observability.RankedJob, error) {
	if concurrency <= 0 {
		concurrency = config.DefaultConcurrency
	}

	results := make([]observability.RankedJob, len(sources))
	hashes := make([]string, len(sources))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	for i, src := range sources {
		results[i].Source = src.String()
		g.Go(func() error {
			jd, err := loadJobDescription(gctx, src.Path, src.URL)
			if err != nil {
				results[i].Err = err
				return nil
			}
			hashes[i] = jd.Hash

			report, err := session.NewController().RunAnalysis(gctx, doc, jd.Text, template)
			if err != nil {
				results[i].Err = err
				return nil
			}
			results[i].Overall = report.Score.Overall
			results[i].KeywordMatch = report.Score.KeywordMatch
			results[i].Band = report.Band
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Drop later duplicates of the same text
	seen := make(map[string]bool, len(sources))
	ranked := make([]observability.RankedJob, 0, len(results))
	for i, r := range results {
		if h := hashes[i]; h != "" {
			if seen[h] {
				continue
			}
			seen[h] = true
		}
		ranked = append(ranked, r)
	}

	slices.SortStableFunc(ranked, func(a, b observability.RankedJob) int {
		if (a.Err == nil) != (b.Err == nil) {
			if a.Err == nil {
				return -1
			}
			return 1
		}
		return b.Overall - a.Overall
	})
	return ranked, nil
}
