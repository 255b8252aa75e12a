// Command traceroute builds a hierarchical GPU network from a configuration,
// injects a watched request/reply pair, and prints every routing decision
// along the way.
package main

import (
	"flag"
	"os"

	"github.com/sarchlab/akita/v4/sim"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	"github.com/tebeka/atexit"

	"github.com/sarchlab/gpunoc/gpunet"
	"github.com/sarchlab/gpunoc/noc"
	"github.com/sarchlab/gpunoc/timing"
)

var (
	configPath = flag.String("config", "",
		"path to a network configuration file")
	src = flag.Int("src", 1, "source SM node")
	dst = flag.Int("dst", -1, "destination L2 node (default: last L2 slice)")
)

func main() {
	flag.Parse()

	cfg := defaultConfig()
	if *configPath != "" {
		loaded, err := gpunet.LoadConfig(*configPath)
		if err != nil {
			logrus.WithError(err).Fatal("cannot read configuration")
		}
		cfg = loaded
	}

	desc, err := cfg.Descriptor()
	if err != nil {
		logrus.WithError(err).Fatal("invalid configuration")
	}

	engine := sim.NewSerialEngine()
	fabric, err := timing.MakeFabricBuilder().
		WithEngine(engine).
		WithFreq(1 * sim.GHz).
		WithDescriptor(desc).
		Build("GPUNet")
	if err != nil {
		logrus.WithError(err).Fatal("cannot create fabric")
	}

	net, err := gpunet.MakeNetworkBuilder().
		WithDescriptor(desc).
		WithFabric(fabric).
		Build("GPUNet")
	if err != nil {
		logrus.WithError(err).Fatal("cannot build network")
	}
	net.Dump(os.Stdout)

	dest := *dst
	if dest < 0 {
		dest = desc.Nodes() - 1
	}

	request := noc.FlitBuilder{}.
		WithSource(*src).
		WithDest(dest).
		WithType(noc.ReadRequest).
		WithWatch().
		Build()
	fabric.InjectChannel(*src).Push(request)
	if err := engine.Run(); err != nil {
		logrus.WithError(err).Fatal("simulation failed")
	}

	delivered := fabric.EjectChannel(dest).Pop()
	if delivered == nil {
		logrus.Fatal("request flit was not delivered")
	}
	logrus.WithFields(logrus.Fields{
		"flit": delivered.ID,
		"dest": dest,
		"hops": delivered.Hops,
	}).Info("request delivered")

	reply := noc.FlitBuilder{}.
		WithSource(dest).
		WithDest(*src).
		WithType(noc.ReadReply).
		WithWatch().
		Build()
	fabric.InjectChannel(dest).Push(reply)
	if err := engine.Run(); err != nil {
		logrus.WithError(err).Fatal("simulation failed")
	}

	delivered = fabric.EjectChannel(*src).Pop()
	if delivered == nil {
		logrus.Fatal("reply flit was not delivered")
	}
	logrus.WithFields(logrus.Fields{
		"flit": delivered.ID,
		"dest": *src,
		"hops": delivered.Hops,
	}).Info("reply delivered")

	atexit.Exit(0)
}

// defaultConfig is a two-partition, two-layer hierarchy: 8 SMs behind pairs
// of layer-0 routers, 8 L2 slices split across two crossbars.
func defaultConfig() gpunet.Config {
	v := viper.New()
	v.Set("l", 2)
	v.Set("sm", 8)
	v.Set("l2slice", 8)
	v.Set("units", []int{2, 2})
	v.Set("speedups", []int{1, 2, 2})
	v.Set("inter_partition_speedup", 2)
	v.Set("partition", true)
	v.Set("num_vcs", 4)
	return gpunet.ConfigFromViper(v)
}
