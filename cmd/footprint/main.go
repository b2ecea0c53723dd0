// GikiZero - Carbon Footprint Tracking
// Copyright 2026 Rawad Hossain
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/rawadhossain/GikiZero

// Command footprint shows a GikiZero user's analytics in the terminal.
//
//	footprint analytics --url https://gikizero.example --token $TOKEN --period week
//	footprint periods
//
// The token is the one returned by POST /api/auth/signin. --url and --token
// fall back to GIKIZERO_URL and GIKIZERO_TOKEN.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := newRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}
