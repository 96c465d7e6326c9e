package cli

import (
	"context"

	"github.com/spf13/cobra"

	"atsresume/internal/advanced"
	"atsresume/internal/common"
	"atsresume/internal/types"
)

func newCleanCmd() *cobra.Command {
	var input, format, outputFile string
	cmd := &cobra.Command{
		Use:   "clean",
		Short: "Produce ATS-safe plain text from a document",
		Long: `Extract the text of a document and replace every run of non-ASCII
characters with a single space, so that older ATS parsers read it cleanly.`,
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

			clean := func(_ context.Context, texts []string) (*types.CleanText, error) {
				return advanced.CleanText(texts[0]), nil
			}
			return common.RunCommand(cmd.Context(), s.runner(cmd), cmdConfig, []string{input}, clean, nil)
		},
	}

	cmd.Flags().StringVarP(&input, "input", "i", "", "Document to clean (pdf, docx, txt, md, html)")
	addOutputFlags(cmd, &format, &outputFile)
	_ = cmd.MarkFlagRequired("input")
	return cmd
}
