package widgets

import (
	"context"
	"fmt"
	"math"
	"slices"

	"github.com/hashicorp/go-multierror"
	"github.com/shirou/gopsutil/cpu"
	"github.com/shirou/gopsutil/host"
	"github.com/shirou/gopsutil/mem"
	"github.com/shirou/gopsutil/net"
)

// HostSource reads usage from the machine the process runs on.
//
// The host has no portable battery reading, so Battery is always 100.
// Temperature is the hottest sensor, or 0 when none is readable.
type HostSource struct{}

// NewHostSource returns a source reading the local host.
func NewHostSource() *HostSource {
	return &HostSource{}
}

// Sample implements MetricsSource. CPU and memory readings are required;
// sensor and interface failures degrade to defaults.
func (HostSource) Sample(ctx context.Context) (Metrics, error) {
	m := Metrics{Battery: 100, Network: NetworkDisconnected}

	var result *multierror.Error
	percent, err := cpu.PercentWithContext(ctx, 0, false)
	switch {
	case err != nil:
		result = multierror.Append(result, fmt.Errorf("cpu: %w", err))
	case len(percent) > 0:
		m.CPU = int(math.Round(percent[0]))
	}

	vm, err := mem.VirtualMemoryWithContext(ctx)
	if err != nil {
		result = multierror.Append(result, fmt.Errorf("memory: %w", err))
	} else {
		m.Memory = int(math.Round(vm.UsedPercent))
	}
	if err := result.ErrorOrNil(); err != nil {
		return Metrics{}, err
	}

	if temps, err := host.SensorsTemperaturesWithContext(ctx); err == nil {
		for _, t := range temps {
			m.Temperature = max(m.Temperature, int(math.Round(t.Temperature)))
		}
	}

	if ifaces, err := net.InterfacesWithContext(ctx); err == nil {
		for _, iface := range ifaces {
			if slices.Contains(iface.Flags, "up") && !slices.Contains(iface.Flags, "loopback") {
				m.Network = NetworkConnected
				break
			}
		}
	}
	return m, nil
}
