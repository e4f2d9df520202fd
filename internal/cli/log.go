package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"switchscan/internal/ui"
)

func newLogCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "log",
		Short: "Page the log file",
		RunE: func(cmd *cobra.Command, _ []string) error {
			name := logFilename()
			if name == stderrLogFile {
				return fmt.Errorf("logs go to stderr, there is no file to show")
			}
			f, err := os.Open(name)
			if err != nil {
				return fmt.Errorf("open log: %w", err)
			}
			defer f.Close()
			return ui.RunPager(f)
		},
	}
}
