/*
Package widgets provides the periodic tasks behind the desktop widgets: a
clock ticking every second and a poller sampling system usage every five
seconds.

Tasks run once immediately on Start and then on every tick until Stop is
called or the context passed to Start ends. Start and Stop are idempotent.

Example usage:

	poller := widgets.NewPoller(widgets.NewRandomSource(1), log, func(m widgets.Metrics) {
		fmt.Println(m.CPU, m.Network)
	})
	poller.Start(ctx)
	defer poller.Stop()
*/
package widgets
