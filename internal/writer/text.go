package writer

import (
	"fmt"
	"io"
)

// WritePageDump writes the extracted text of every page between page
// markers. It is used to inspect what the parser sees.
func WritePageDump(out io.Writer, pages []string) error {
	for i, text := range pages {
		if _, err := fmt.Fprintf(out, "--- Página %d ---\n%s\n-------------------\n", i+1, text); err != nil {
			return fmt.Errorf("failed to write page %d: %w", i+1, err)
		}
	}
	return nil
}
