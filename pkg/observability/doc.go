/*
Package observability exports harness activity as Prometheus metrics.

Metrics plugs into any run through lifecycle hooks:

	m, err := observability.NewMetrics(prometheus.DefaultRegisterer)
	if err != nil {
		return err
	}
	sc.Run(t, scenario.WithLifecycleHooks(m.Hooks()))

Structured logging is not part of this package; every component accepts a
*slog.Logger through its options.
*/
package observability
