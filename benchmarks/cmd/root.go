package cmd

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

func RootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "replay-bench",
		Short: "Collect turns into a replay buffer and extract n-step batches",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			UpdateFlags()
			flags.Record()

			log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
			zerolog.SetGlobalLevel(zerolog.InfoLevel)
			if flags.Debug {
				zerolog.SetGlobalLevel(zerolog.DebugLevel)
			}
		},
	}
	AddFlags(cmd)

	cmd.AddCommand(
		CartpoleCommand(),
	)

	return cmd
}
