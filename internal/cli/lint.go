package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/validkit/pkg/schema"
)

func newLintCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "lint <schema file|dir>...",
		Short: "Check schema files for definition errors",
		Long: `Compile schema files and report definition errors such as unknown
rule keys, invalid patterns or unknown predicates. Directories are
checked file by file.

Exit codes: 0 when every schema compiles, 1 otherwise.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runLint(cmd.Context(), args)
		},
	}
}

func (a *app) runLint(ctx context.Context, paths []string) error {
	failed := false
	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			fmt.Fprintf(a.out, "%s: %s\n", p, oneLine(err))
			failed = true
			continue
		}

		if info.IsDir() {
			set, err := schema.LoadDir(ctx, p, a.schemaOptions()...)
			if err != nil {
				fmt.Fprintf(a.out, "%s: %s\n", p, oneLine(err))
				failed = true
				continue
			}
			fmt.Fprintf(a.out, "%s: ok (%d schemas)\n", p, set.Len())
			continue
		}

		if _, err := schema.Load(ctx, p, a.schemaOptions()...); err != nil {
			fmt.Fprintf(a.out, "%s: %s\n", p, oneLine(err))
			failed = true
			continue
		}
		fmt.Fprintf(a.out, "%s: ok\n", p)
	}

	if failed {
		return ErrInvalid
	}
	return nil
}

// oneLine keeps one report line per path for joined errors.
func oneLine(err error) string {
	return strings.ReplaceAll(err.Error(), "\n", "; ")
}
