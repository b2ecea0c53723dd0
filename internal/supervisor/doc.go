// GikiZero - Carbon Footprint Tracking
// Copyright 2026 Rawad Hossain
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/rawadhossain/GikiZero

/*
Package supervisor runs the GikiZero server's long-lived services under a
suture v4 supervisor tree.

	RootSupervisor ("gikizero")
	├── DataSupervisor ("data-layer")
	│   ├── HealthProbeService
	│   └── UptimeService
	└── APISupervisor ("api-layer")
	    └── HTTPServerService

Crashed services are restarted with suture's backoff. Supervisor events are
logged through sutureslog onto the application's zerolog logger (see
logging.NewSlogLogger).

Usage:

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.DefaultTreeConfig())
	if err != nil {
	    return err
	}
	tree.AddDataService(services.NewHealthProbeService(db, 30*time.Second))
	tree.AddDataService(services.NewUptimeService(startTime, 15*time.Second))
	tree.AddAPIService(services.NewHTTPServerService(server, 10*time.Second))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	err = tree.Serve(ctx)

The service implementations live in the services subpackage.
*/
package supervisor
