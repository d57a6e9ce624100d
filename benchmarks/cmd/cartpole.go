package cmd

import (
	"context"
	"os"
	"os/signal"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/zeu5/nstep-replay/benchmarks/cartpole"
)

func CartpoleCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cartpole",
		Short: "Collect cartpole episodes and train an n-step Q policy from the buffer",
		Run: func(cmd *cobra.Command, args []string) {
			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, os.Interrupt)

			doneCh := make(chan struct{})

			ctx, cancel := context.WithCancel(context.Background())
			go func() {
				select {
				case <-sigCh:
				case <-doneCh:
				}
				cancel()
			}()

			if err := cartpole.Run(ctx, flags); err != nil {
				log.Error().Err(err).Msg("cartpole run failed")
			}
			close(doneCh)
		},
	}

	return cmd
}
