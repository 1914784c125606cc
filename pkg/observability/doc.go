/*
Package observability provides tools for monitoring search runs.

Both the Prometheus collectors and the structured event logger attach to the engine
through domain.LifecycleHooks, so they can be combined with LifecycleHooks.Merge:

	m := observability.NewMetrics(prometheus.DefaultRegisterer)
	eng := planner.New(
		planner.WithLifecycleHooks(m.Hooks()),
		planner.WithLifecycleHooks(observability.LogHooks(logger)),
	)
*/
package observability
