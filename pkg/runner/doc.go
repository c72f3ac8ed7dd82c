/*
Package runner runs registered models outside of `go test`.

rapid expects a testing.TB. T implements rapid.TB on top of plain I/O so a
model can be checked from a CLI, a soak job or a CI step that is not a Go test
binary. Runner looks models up in a registry, applies a profile and returns a
Result.

# Usage

	reg := registry.NewRegistry()
	reg.Register(counter.Model())

	r := runner.NewRunner(reg, runner.WithLogger(logger))
	res, err := r.Run(ctx, "counter", profile)
	if err != nil {
		log.Fatal(err)
	}
	if res.Failed {
		os.Exit(1)
	}
*/
package runner
