// Package app wires the hoopsight dashboard server together and manages
// its lifecycle.
//
// New assembles the full dependency graph: configuration, structured
// logging, OpenTelemetry providers, the dataset store, the services on
// top of it and the chi routing tree, with the frontend passed in as an
// fs.FS so the binary can embed its own assets. Construction validates
// the dataset inputs but does not read them; Start performs the one load
// the process ever does, and a load failure there is fatal.
//
//	a, err := app.New(frontendFS)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := a.Run(); err != nil {
//	    log.Fatal(err)
//	}
//
// Run blocks until SIGINT or SIGTERM, then drains in-flight requests,
// stops the runtime collector and flushes telemetry before returning.
// Initialization errors are returned rather than fatal-logged so main
// keeps control of the exit code.
package app
