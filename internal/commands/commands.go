package commands

import (
	"github.com/spf13/cobra"
)

// New creates the treenav root command. Without a subcommand it opens the
// browser on the given outline file or directory.
func New() *cobra.Command {
	so := &SourceOptions{}

	cmd := &cobra.Command{
		Use:   "treenav [path]",
		Short: "Browse outline files and directory trees in the terminal.",
		Example: `
treenav
treenav notes.toml
treenav --select-mode multi ~/src
`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				so.Path = args[0]
			}
			return runUI(so)
		},
	}

	AddSourceArgs(cmd, so)
	AddCommands(cmd)
	return cmd
}

func AddCommands(topLevel *cobra.Command) {
	addDump(topLevel)
}
