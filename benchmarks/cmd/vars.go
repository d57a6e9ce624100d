package cmd

import (
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/zeu5/nstep-replay/benchmarks/common"
)

var (
	flags *common.Flags = common.DefaultFlags()

	savePath string
	debug    bool

	episodes int
	horizon  int
	seed     int64

	capacity    int
	prioritized bool

	batchSize     int
	batches       int
	gamma         float64
	updateHorizon int
	stackSize     int
)

func AddFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().StringVar(&savePath, "save-path", flags.SavePath, "Path to save results")
	cmd.PersistentFlags().BoolVar(&debug, "debug", flags.Debug, "Enable debug logging")

	cmd.PersistentFlags().IntVar(&episodes, "episodes", flags.Episodes, "Number of episodes to collect")
	cmd.PersistentFlags().IntVar(&horizon, "horizon", flags.Horizon, "Maximum steps per episode")
	cmd.PersistentFlags().Int64Var(&seed, "seed", flags.Seed, "Random seed")

	cmd.PersistentFlags().IntVar(&capacity, "capacity", flags.Capacity, "Buffer capacity per field")
	cmd.PersistentFlags().BoolVar(&prioritized, "prioritized", flags.Prioritized, "Record and sample by priority")

	cmd.PersistentFlags().IntVar(&batchSize, "batch-size", flags.BatchSize, "Samples per batch")
	cmd.PersistentFlags().IntVar(&batches, "batches", flags.Batches, "Total batches to extract")
	cmd.PersistentFlags().Float64Var(&gamma, "gamma", flags.Gamma, "Discount factor")
	cmd.PersistentFlags().IntVar(&updateHorizon, "update-horizon", flags.UpdateHorizon, "N-step lookahead")
	cmd.PersistentFlags().IntVar(&stackSize, "stack-size", flags.StackSize, "Frames to stack per state")

	viper.SetEnvPrefix("NSTEP")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
	viper.BindPFlags(cmd.PersistentFlags())
}

// UpdateFlags copies flag values into the flags struct. Values are read
// back through viper so NSTEP_* environment variables override defaults
// that were not set on the command line.
func UpdateFlags() {
	flags.SavePath = viper.GetString("save-path")
	flags.Debug = viper.GetBool("debug")

	flags.Episodes = viper.GetInt("episodes")
	flags.Horizon = viper.GetInt("horizon")
	flags.Seed = viper.GetInt64("seed")

	flags.Capacity = viper.GetInt("capacity")
	flags.Prioritized = viper.GetBool("prioritized")

	flags.BatchSize = viper.GetInt("batch-size")
	flags.Batches = viper.GetInt("batches")
	flags.Gamma = viper.GetFloat64("gamma")
	flags.UpdateHorizon = viper.GetInt("update-horizon")
	flags.StackSize = viper.GetInt("stack-size")
}
