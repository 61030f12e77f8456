package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"github.com/jonathan/resume-ats/internal/ingestion"
	"github.com/jonathan/resume-ats/internal/schemas"
	"github.com/jonathan/resume-ats/internal/session"
	"github.com/jonathan/resume-ats/internal/types"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"
)

const mcpServerVersion = "1.0.0"

var mcpCommand = &cobra.Command{
	Use:   "mcp",
	Short: "Serve ATS scoring as MCP tools over stdio",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := commandContext(cmd)
		// stdout carries the protocol
		log.SetOutput(cmd.ErrOrStderr())
		return newMCPServer().Run(ctx, &mcp.StdioTransport{})
	},
}

func init() {
	rootCmd.AddCommand(mcpCommand)
}

// ScoreInput is the input of the ats_score tool
type ScoreInput struct {
	Resume         map[string]any `json:"resume" jsonschema:"the resume document (personalInfo, experience, education, skills, projects, certifications)"`
	JobDescription string         `json:"job_description" jsonschema:"job description text or HTML"`
	Template       string         `json:"template,omitempty" jsonschema:"template id: modern, classic, creative or minimal"`
}

// TemplatesOutput is the output of the ats_templates tool
type TemplatesOutput struct {
	Templates []types.TemplateRating `json:"templates"`
}

func newMCPServer() *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{
		Name:    "resume_ats",
		Version: mcpServerVersion,
	}, nil)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "ats_score",
		Description: "Score a resume for ATS compatibility against a job description. Returns the overall score, the keyword, formatting, section and readability sub-scores, matched and missing keywords, and improvement suggestions.",
		Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true},
	}, handleScoreTool)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "ats_templates",
		Description: "List the resume templates with their ATS compatibility rating, pros, cons and best-fit roles.",
		Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true},
	}, func(_ context.Context, _ *mcp.CallToolRequest, _ struct{}) (*mcp.CallToolResult, TemplatesOutput, error) {
		return nil, TemplatesOutput{Templates: types.Templates()}, nil
	})

	return server
}

func handleScoreTool(ctx context.Context, _ *mcp.CallToolRequest, input ScoreInput) (*mcp.CallToolResult, *types.JobMatchReport, error) {
	report, err := scoreResume(ctx, input)
	if err != nil {
		return nil, nil, err
	}
	return nil, report, nil
}

// scoreResume decodes and validates the resume carried by input and analyzes it.
func scoreResume(ctx context.Context, input ScoreInput) (*types.JobMatchReport, error) {
	if input.Resume == nil {
		return nil, errors.New("resume is required")
	}
	raw, err := json.Marshal(input.Resume)
	if err != nil {
		return nil, fmt.Errorf("failed to encode resume: %w", err)
	}
	doc, err := schemas.DecodeResume(raw)
	if err != nil {
		return nil, err
	}

	var templateID types.TemplateID
	if input.Template != "" {
		if templateID, err = types.ParseTemplateID(input.Template); err != nil {
			return nil, err
		}
	}

	jobDescription, err := ingestion.PrepareJobDescription(input.JobDescription)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare job description: %w", err)
	}

	return session.NewController().RunAnalysis(ctx, doc, jobDescription, templateID)
}
