// GikiZero - Carbon Footprint Tracking
// Copyright 2026 Rawad Hossain
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/rawadhossain/GikiZero

// Package services contains suture.Service implementations for the GikiZero
// supervisor tree.
//
// Every service blocks in Serve until its context is canceled and returns
// ctx.Err() on a clean stop, so suture treats the stop as intentional.
// Errors returned before that trigger a restart with backoff.
package services
