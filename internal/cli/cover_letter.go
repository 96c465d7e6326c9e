package cli

import (
	"context"

	"github.com/spf13/cobra"

	"atsresume/internal/advanced"
	"atsresume/internal/common"
	"atsresume/internal/types"
)

func newCoverLetterCmd() *cobra.Command {
	var resume, name, format, outputFile string
	cmd := &cobra.Command{
		Use:   "cover-letter",
		Short: "Generate a cover letter from a resume",
		Long: `Fill the standard cover letter template with the candidate name and
leading technical skills found in the resume. --name overrides the parsed name.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(cmd)
			if err != nil {
				return err
			}
			defer s.close()

			cmdConfig, err := s.outputConfig(format, outputFile)
			if err != nil {
				return err
			}
			pipeline, err := s.pipeline(false)
			if err != nil {
				return err
			}

			generate := func(_ context.Context, texts []string) (*types.CoverLetter, error) {
				doc := pipeline.Parse(texts[0])
				candidate := name
				if candidate == "" {
					candidate = doc.Name
				}
				return advanced.CoverLetter(candidate, doc.Skills.AllTechnical), nil
			}
			return common.RunCommand(cmd.Context(), s.runner(cmd), cmdConfig, []string{resume}, generate, nil)
		},
	}

	cmd.Flags().StringVarP(&resume, "resume", "r", "", "Resume file (pdf, docx, txt, md, html)")
	cmd.Flags().StringVar(&name, "name", "", "Candidate name (default: parsed from the resume)")
	addOutputFlags(cmd, &format, &outputFile)
	_ = cmd.MarkFlagRequired("resume")
	return cmd
}
