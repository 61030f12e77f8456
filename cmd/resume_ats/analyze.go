package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/jonathan/resume-ats/internal/config"
	"github.com/jonathan/resume-ats/internal/ingestion"
	"github.com/jonathan/resume-ats/internal/observability"
	"github.com/jonathan/resume-ats/internal/schemas"
	"github.com/jonathan/resume-ats/internal/session"
	"github.com/jonathan/resume-ats/internal/types"
	"github.com/spf13/cobra"
)

var analyzeCommand = &cobra.Command{
	Use:   "analyze",
	Short: "Score a resume against a job description",
	Long: `Scores a resume JSON document against a job description (text or HTML file, or a URL) and prints the job match report.

Configuration can be loaded from a JSON file using --config. Command-line arguments override config file values.`,
	RunE: runAnalyzeCmd,
}

var (
	analyzeConfigPath string
	analyzeResume     string
	analyzeJob        string
	analyzeJobURL     string
	analyzeTemplate   string
	analyzeOut        string
	analyzeVerbose    bool
)

func init() {
	// Config file flag (processed first)
	analyzeCommand.Flags().StringVar(&analyzeConfigPath, "config", "", "Path to config.json file (values can be overridden by other flags)")

	analyzeCommand.Flags().StringVarP(&analyzeResume, "resume", "r", "", "Path to resume JSON file")
	analyzeCommand.Flags().StringVarP(&analyzeJob, "job", "j", "", "Path to job description text or HTML file (mutually exclusive with --job-url)")
	analyzeCommand.Flags().StringVar(&analyzeJobURL, "job-url", "", "URL to fetch the job description from (mutually exclusive with --job)")
	analyzeCommand.Flags().StringVarP(&analyzeTemplate, "template", "t", "", "Template id: modern, classic, creative or minimal")
	analyzeCommand.Flags().StringVarP(&analyzeOut, "out", "o", "", "Path to write the JSON report to (defaults to stdout)")
	analyzeCommand.Flags().BoolVarP(&analyzeVerbose, "verbose", "v", false, "Print a human-readable report")

	rootCmd.AddCommand(analyzeCommand)
}

func runAnalyzeCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := resolveConfig(analyzeConfigPath, func(cfg *config.Config) {
		if cmd.Flags().Changed("resume") {
			cfg.Resume = analyzeResume
		}
		if cmd.Flags().Changed("job") {
			cfg.Job = analyzeJob
			cfg.JobURL = ""
		}
		if cmd.Flags().Changed("job-url") {
			cfg.JobURL = analyzeJobURL
			if !cmd.Flags().Changed("job") {
				cfg.Job = ""
			}
		}
		if cmd.Flags().Changed("template") {
			cfg.Template = analyzeTemplate
		}
		if cmd.Flags().Changed("out") {
			cfg.Out = analyzeOut
		}
		if cmd.Flags().Changed("verbose") {
			cfg.Verbose = analyzeVerbose
		}
	})
	if err != nil {
		return err
	}

	if cfg.Job == "" && cfg.JobURL == "" {
		return fmt.Errorf("either --job or --job-url must be provided (via flag or config)")
	}
	if cfg.Job != "" && cfg.JobURL != "" {
		return fmt.Errorf("--job and --job-url are mutually exclusive; provide only one")
	}

	ctx := commandContext(cmd)

	jd, err := loadJobDescription(ctx, cfg.Job, cfg.JobURL)
	if err != nil {
		return err
	}

	report, err := analyzeResumeFile(ctx, cfg.Resume, jd.Text, cfg.Template)
	if err != nil {
		return err
	}

	return writeReport(cmd.OutOrStdout(), report, cfg.Out, cfg.Verbose)
}

// resolveConfig loads the optional config file, applies flag overrides and defaults,
// and checks that a resume was given.
func resolveConfig(configPath string, overrides func(*config.Config)) (config.Config, error) {
	var cfg config.Config
	if configPath != "" {
		loaded, err := config.LoadConfig(configPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = *loaded
	}

	overrides(&cfg)
	cfg = cfg.MergeWithDefaults(config.Config{Backend: config.BackendSQLite})

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	if cfg.Resume == "" {
		return cfg, fmt.Errorf("--resume is required (via flag or config)")
	}
	return cfg, nil
}

// loadJobDescription reads a job description file or fetches a job posting URL.
func loadJobDescription(ctx context.Context, path, url string) (*ingestion.JobDescription, error) {
	if url != "" {
		jd, err := ingestion.FetchJobDescription(ctx, url, ingestion.DefaultFetchOptions())
		if err != nil {
			return nil, fmt.Errorf("failed to fetch job description: %w", err)
		}
		return jd, nil
	}

	jd, err := ingestion.ReadJobDescription(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read job description: %w", err)
	}
	return jd, nil
}

// analyzeResumeFile reads the resume at resumePath and scores it against jobDescription.
func analyzeResumeFile(ctx context.Context, resumePath, jobDescription, template string) (*types.JobMatchReport, error) {
	doc, err := schemas.ReadResume(resumePath)
	if err != nil {
		return nil, err
	}

	var templateID types.TemplateID
	if template != "" {
		if templateID, err = types.ParseTemplateID(template); err != nil {
			return nil, err
		}
	}

	return session.NewController().RunAnalysis(ctx, doc, jobDescription, templateID)
}

// writeReport writes the report as JSON to outPath (stdout when empty), and as
// formatted boxes when verbose.
func writeReport(stdout io.Writer, report *types.JobMatchReport, outPath string, verbose bool) error {
	if verbose {
		observability.NewPrinter(stdout).PrintReport(report)
	}

	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}

	if outPath == "" {
		if verbose {
			return nil
		}
		_, err = fmt.Fprintln(stdout, string(data))
		return err
	}

	if dir := filepath.Dir(outPath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	if err := os.WriteFile(outPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	_, _ = fmt.Fprintf(stdout, "Report written to %s\n", outPath)
	return nil
}
