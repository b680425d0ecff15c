// internal/node/node.go
package node

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/tamzrod/weather-node/internal/boot"
	cfg "github.com/tamzrod/weather-node/internal/config"
	"github.com/tamzrod/weather-node/internal/cycle"
	"github.com/tamzrod/weather-node/internal/indicator"
)

// Node is boot, then either the fault indicator or the cycle loop.
type Node struct {
	seq       *boot.Sequencer
	runner    *cycle.Runner
	indicator *indicator.Indicator
	log       logrus.FieldLogger
}

func New(c *cfg.Config, p Parts, log logrus.FieldLogger) *Node {
	seq := boot.New(boot.Collaborators{
		Atmosphere: p.Atmosphere,
		AirQuality: p.AirQuality,
		Radiation:  p.Radiation,
		Radio:      p.Radio,
	}, boot.RadioSettings{
		FrequencyHz: c.Radio.FrequencyHz,
		TxPowerDBm:  c.Radio.TxPowerDBm,
	}, log.WithField("component", "boot"))

	runner := cycle.New(
		cycle.NewState(c.Node.ID),
		cycle.Sensors{
			Atmosphere: p.Atmosphere,
			AirQuality: p.AirQuality,
			Radiation:  p.Radiation,
		},
		p.Radio,
		time.Duration(c.Node.CycleDelayS)*time.Second,
		log.WithField("component", "cycle"),
	)

	ind := indicator.New(p.LED, indicator.Timing{
		On:  ms(c.Indicator.OnMs),
		Off: ms(c.Indicator.OffMs),
		Gap: ms(c.Indicator.GapMs),
	})

	return &Node{seq: seq, runner: runner, indicator: ind, log: log}
}

// Observe installs a cycle observer (metrics).
func (n *Node) Observe(o cycle.Observer) { n.runner.SetObserver(o) }

func (n *Node) Indicator() *indicator.Indicator { return n.indicator }

// Run boots and loops until ctx is done. A fatal boot failure enters the
// indicator fault pattern, which runs until ctx is done; the boot error
// is returned then. No packet is ever sent after a fatal boot failure.
func (n *Node) Run(ctx context.Context) error {
	err := n.seq.Boot(ctx)

	var fe *boot.FatalError
	switch {
	case err == nil:
	case errors.As(err, &fe):
		n.indicator.Enter(fe.Subsystem)
		n.log.WithFields(logrus.Fields{
			"subsystem": fe.Subsystem.String(),
			"pulses":    fe.Subsystem.Pulses(),
		}).Error("fatal boot failure, halting in indicator loop")
		_ = n.indicator.Run(ctx)
		return err
	default:
		return err
	}

	n.runner.Run(ctx)
	return nil
}

// ExitCode maps a Run error to a process exit status without assuming
// concrete types beyond the boot contract.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	if errors.Cause(err) == context.Canceled {
		return 0
	}

	var fe *boot.FatalError
	if errors.As(err, &fe) {
		return 10 + fe.Subsystem.Pulses()
	}
	return 1
}
