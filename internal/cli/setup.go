package cli

import (
	"github.com/spf13/cobra"
)

// NewSetupCommand creates the setup command.
func NewSetupCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "setup",
		Short: "Lay out and initialize the counter",
		Long: `Lay out and initialize the counter at the configured origin.

Running setup again resets the counter to zero.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(opts, cmd, func(s *session) error {
				report, err := s.vm.Deploy(s.store)
				if err != nil {
					return err
				}
				printReport(cmd, report)
				return nil
			})
		},
	}
}
