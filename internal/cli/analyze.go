package cli

import (
	"context"

	"github.com/spf13/cobra"

	"atsresume/internal/common"
	"atsresume/internal/extract"
	"atsresume/internal/types"
)

type analyzeOptions struct {
	resume     string
	jdFile     string
	jdText     string
	format     string
	outputFile string
	checkLinks bool
}

func newAnalyzeCmd() *cobra.Command {
	opts := &analyzeOptions{}
	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Score a resume, optionally against a job description",
		Long: `Analyze a resume the way an applicant tracking system would.

The report covers:
- Keyword and skill coverage of the job description (when one is given)
- ATS formatting problems and section completeness
- Impact (action verbs and quantified results)
- Readability, tone, career path and role suitability

Without --format or --output a colored summary is printed. Any --format
prints the full report in that format.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAnalyze(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.resume, "resume", "r", "", "Resume file (pdf, docx, txt, md, html)")
	cmd.Flags().StringVar(&opts.jdFile, "jd", "", "Job description file")
	cmd.Flags().StringVar(&opts.jdText, "jd-text", "", "Job description text (HTML is converted to text)")
	cmd.Flags().BoolVar(&opts.checkLinks, "check-links", false, "Check that profile links in the resume are reachable")
	addOutputFlags(cmd, &opts.format, &opts.outputFile)
	_ = cmd.MarkFlagRequired("resume")
	cmd.MarkFlagsMutuallyExclusive("jd", "jd-text")

	return cmd
}

func runAnalyze(cmd *cobra.Command, opts *analyzeOptions) error {
	s, err := newSession(cmd)
	if err != nil {
		return err
	}
	defer s.close()

	cmdConfig, err := s.outputConfig(opts.format, opts.outputFile)
	if err != nil {
		return err
	}
	cmdConfig.Summary = !cmd.Flags().Changed("format")

	pipeline, err := s.pipeline(opts.checkLinks)
	if err != nil {
		return err
	}

	paths := []string{opts.resume}
	if opts.jdFile != "" {
		paths = append(paths, opts.jdFile)
	}

	analyze := func(ctx context.Context, texts []string) (*types.Report, error) {
		jd := opts.jdText
		if len(texts) > 1 {
			jd = texts[1]
		}
		if extract.LooksLikeHTML(jd) {
			jd = extract.HTMLToText(jd)
		}

		s.logger.Info("Starting resume analysis",
			"resume_chars", len(texts[0]),
			"jd_chars", len(jd),
			"output_format", cmdConfig.OutputFormat)
		return pipeline.Run(ctx, texts[0], jd), nil
	}

	if err := common.RunCommand(cmd.Context(), s.runner(cmd), cmdConfig, paths, analyze, renderSummary); err != nil {
		return err
	}
	s.logger.Info("Resume analysis completed successfully")
	return nil
}
