package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/insightdelivered/trial-balance-converter/internal/extractor"
	"github.com/insightdelivered/trial-balance-converter/internal/logger"
	"github.com/insightdelivered/trial-balance-converter/internal/writer"
)

func newDumpCmd(a *app) *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "dump <input.pdf>",
		Short: "Write the extracted text of every page, for parser diagnosis",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input := args[0]
			if err := validateInput(input); err != nil {
				return err
			}
			pages, err := extractor.ExtractText(input)
			if err != nil {
				return err
			}
			logger.FromContext(cmd.Context()).Info().
				Str("file", input).Int("pages", len(pages)).
				Bool("readable", extractor.IsReadableText(pages)).
				Msg("text extracted")

			var out io.Writer = cmd.OutOrStdout()
			if output != "" {
				f, err := os.Create(output)
				if err != nil {
					return fmt.Errorf("failed to create output file %q: %w", output, err)
				}
				defer f.Close()
				out = f
			}
			return writer.WritePageDump(out, pages)
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "Write the dump to a file instead of stdout")
	return cmd
}
