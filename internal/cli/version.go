package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

type versionInfo struct {
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	BuildDate string `json:"build_date"`
}

func newVersionCommand(a *app) *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			info := versionInfo{Version: Version, Commit: Commit, BuildDate: BuildDate}
			switch format {
			case formatJSON:
				return (&printer{w: a.out}).printJSON(info)
			case formatText:
				fmt.Fprintf(a.out, "validkit version %s\n", info.Version)
				fmt.Fprintf(a.out, "  Commit: %s\n", info.Commit)
				fmt.Fprintf(a.out, "  Built:  %s\n", info.BuildDate)
				return nil
			default:
				return fmt.Errorf("%w: invalid output format %q: must be text or json", ErrUsage, format)
			}
		},
	}
	cmd.Flags().StringVarP(&format, "format", "o", formatText, "Output format (text|json)")
	return cmd
}
