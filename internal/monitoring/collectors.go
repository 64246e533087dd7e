// Package monitoring exposes the boost coordinator's counters as prometheus
// collectors.
package monitoring

import (
	"golang.org/x/exp/constraints"

	"github.com/go-logr/logr"
	prom "github.com/prometheus/client_golang/prometheus"

	"github.com/divyalingaiah/powerhal/internal/boost"
)

const promNamespace string = "powerhal"

type collectorImpl struct {
	collectFunc  func(ch chan<- prom.Metric)
	describeFunc func(ch chan<- *prom.Desc)
}

func (c collectorImpl) Collect(ch chan<- prom.Metric) {
	c.collectFunc(ch)
}

func (c collectorImpl) Describe(ch chan<- *prom.Desc) {
	c.describeFunc(ch)
}

type number interface {
	constraints.Integer | constraints.Float
}

// newStatCollector is a generic factory of prometheus Collectors for
// unlabeled coordinator statistics. readFunc's signature corresponds to the
// coordinator's counter accessors.
func newStatCollector[T number](name, desc string, valueType prom.ValueType, readFunc func() T) prom.Collector {
	promDesc := prom.NewDesc(prom.BuildFQName(promNamespace, "", name), desc, nil, nil)

	return collectorImpl{
		collectFunc: func(ch chan<- prom.Metric) {
			ch <- prom.MustNewConstMetric(promDesc, valueType, float64(readFunc()))
		},
		describeFunc: func(ch chan<- *prom.Desc) {
			ch <- promDesc
		},
	}
}

func newPulseCollector(coord *boost.Coordinator) prom.Collector {
	desc := prom.NewDesc(
		prom.BuildFQName(promNamespace, "", "hint_pulses_total"),
		"Number of boost pulses issued, by hint kind.",
		[]string{"kind"},
		nil,
	)

	return collectorImpl{
		collectFunc: func(ch chan<- prom.Metric) {
			ch <- prom.MustNewConstMetric(desc, prom.CounterValue,
				float64(coord.TouchPulses()), boost.HintInteraction.String())
			ch <- prom.MustNewConstMetric(desc, prom.CounterValue,
				float64(coord.VsyncPulses()), boost.HintVsync.String())
		},
		describeFunc: func(ch chan<- *prom.Desc) {
			ch <- desc
		},
	}
}

// RegisterCollectors registers every coordinator collector with reg.
func RegisterCollectors(reg prom.Registerer, coord *boost.Coordinator, log logr.Logger) error {
	collectors := []prom.Collector{
		newStatCollector("boosts_total",
			"Number of boost-on transitions issued to the scheduler-tunable endpoint.",
			prom.CounterValue, coord.Boosts),
		newStatCollector("deboosts_total",
			"Number of deboost writes issued to the scheduler-tunable endpoint.",
			prom.CounterValue, coord.Deboosts),
		newStatCollector("hints_suppressed_total",
			"Number of hints that did not result in a boost pulse.",
			prom.CounterValue, coord.SuppressedHints),
		newStatCollector("boost_active",
			"Whether a scheduler-tunable boost window is currently open.",
			prom.GaugeValue, func() uint64 {
				if coord.BoostActive() {
					return 1
				}
				return 0
			}),
		newPulseCollector(coord),
	}

	for _, collector := range collectors {
		if err := reg.Register(collector); err != nil {
			return err
		}
	}

	log.V(4).Info("coordinator collectors registered")
	return nil
}
