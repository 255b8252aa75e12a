package gpunet

import (
	"github.com/spf13/viper"
)

// Config is the key/value configuration surface of the network. The rigid
// CPC/GPC/partition form of older configurations maps onto it as a preset:
// l counts the aggregation layers, units lists the fan-in of each
// (SMs-per-TPC, TPCs-per-GPC, GPCs-per-partition, ...), and speedups lists
// the per-layer bandwidth multipliers ending with the crossbar-to-L2 edge.
type Config struct {
	Layers                int
	SMs                   int
	L2Slices              int
	Units                 []int
	Speedups              []int
	InterPartitionSpeedup int
	Partition             bool
	NumVCs                int
}

func setConfigDefaults(v *viper.Viper) {
	v.SetDefault("l", 1)
	v.SetDefault("sm", 1)
	v.SetDefault("l2slice", 1)
	v.SetDefault("inter_partition_speedup", 1)
	v.SetDefault("partition", false)
	v.SetDefault("num_vcs", 4)
}

// ConfigFromViper reads the configuration keys out of a viper instance.
func ConfigFromViper(v *viper.Viper) Config {
	setConfigDefaults(v)
	return Config{
		Layers:                v.GetInt("l"),
		SMs:                   v.GetInt("sm"),
		L2Slices:              v.GetInt("l2slice"),
		Units:                 v.GetIntSlice("units"),
		Speedups:              v.GetIntSlice("speedups"),
		InterPartitionSpeedup: v.GetInt("inter_partition_speedup"),
		Partition:             v.GetBool("partition"),
		NumVCs:                v.GetInt("num_vcs"),
	}
}

// LoadConfig reads a configuration file.
func LoadConfig(path string) (Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return Config{}, err
	}
	return ConfigFromViper(v), nil
}

// Descriptor normalizes the configuration into a hierarchy descriptor.
// Missing or short vectors default to all-1, padded to required length.
func (c Config) Descriptor() (*Descriptor, error) {
	ratio := padOnes(c.Units, c.Layers)
	speedup := padOnes(c.Speedups, c.Layers+1)

	return MakeDescriptorBuilder().
		WithLayers(c.Layers).
		WithSMNodes(c.SMs).
		WithL2Nodes(c.L2Slices).
		WithRatios(ratio...).
		WithSpeedups(speedup...).
		WithInterPartitionSpeedup(c.InterPartitionSpeedup).
		WithPartitioned(c.Partition).
		WithNumVCs(c.NumVCs).
		Build()
}

func padOnes(v []int, n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = 1
		if i < len(v) {
			out[i] = v[i]
		}
	}
	return out
}
