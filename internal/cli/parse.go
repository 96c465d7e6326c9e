package cli

import (
	"context"

	"github.com/spf13/cobra"

	"atsresume/internal/common"
	"atsresume/internal/types"
)

func newParseCmd() *cobra.Command {
	var resume, format, outputFile string
	cmd := &cobra.Command{
		Use:   "parse",
		Short: "Extract structured data from a resume",
		Long: `Parse a resume into contact details, skills, education, experience,
a normalized timeline of roles, detected sections and word statistics.`,
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

			parse := func(_ context.Context, texts []string) (*types.ParsedDocument, error) {
				return pipeline.Parse(texts[0]), nil
			}
			return common.RunCommand(cmd.Context(), s.runner(cmd), cmdConfig, []string{resume}, parse, nil)
		},
	}

	cmd.Flags().StringVarP(&resume, "resume", "r", "", "Resume file (pdf, docx, txt, md, html)")
	addOutputFlags(cmd, &format, &outputFile)
	_ = cmd.MarkFlagRequired("resume")
	return cmd
}
