package common

import (
	"path"

	"github.com/zeu5/nstep-replay/util"
)

type Flags struct {
	SavePath string
	RunFlags
	BufferFlags
	SampleFlags
	Debug bool
}

type RunFlags struct {
	Episodes int
	Horizon  int
	Seed     int64
}

type BufferFlags struct {
	Capacity    int
	Prioritized bool
}

type SampleFlags struct {
	BatchSize     int
	Batches       int
	Gamma         float64
	UpdateHorizon int
	StackSize     int
}

func DefaultFlags() *Flags {
	return &Flags{
		SavePath: "results",
		RunFlags: RunFlags{
			Episodes: 1000,
			Horizon:  500,
			Seed:     1,
		},
		BufferFlags: BufferFlags{
			Capacity:    100000,
			Prioritized: false,
		},
		SampleFlags: SampleFlags{
			BatchSize:     32,
			Batches:       500,
			Gamma:         0.99,
			UpdateHorizon: 3,
			StackSize:     1,
		},
		Debug: false,
	}
}

func (f *Flags) Record() {
	util.SaveJson(path.Join(f.SavePath, "config.json"), f)
}
