// Package metrics exposes Prometheus metrics for ID providers and render
// passes.
//
//	c := metrics.New(metrics.WithRegistry(reg))
//	root := mount.New(app, mount.WithObserver(c))
//	uniqueid.Provider(uniqueid.ProviderProps{Observer: c}, ...)
package metrics
