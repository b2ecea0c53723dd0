// GikiZero - Carbon Footprint Tracking
// Copyright 2026 Rawad Hossain
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/rawadhossain/GikiZero

package main

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/rawadhossain/GikiZero/internal/supervisor"
)

func TestWaitForShutdown_ReturnsAfterCancel(t *testing.T) {
	tree, err := supervisor.NewSupervisorTree(slog.New(slog.NewTextHandler(io.Discard, nil)), supervisor.TreeConfig{
		ShutdownTimeout: time.Second,
	})
	if err != nil {
		t.Fatalf("NewSupervisorTree() error = %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	errCh := tree.ServeBackground(ctx)

	done := make(chan error, 1)
	go func() { done <- waitForShutdown(ctx, errCh) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Errorf("waitForShutdown() = %v, want nil", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("waitForShutdown did not return after cancel")
	}

	if _, err := tree.UnstoppedServiceReport(); err != nil {
		t.Errorf("UnstoppedServiceReport() error = %v", err)
	}
}

func TestWaitForShutdown_TreeError(t *testing.T) {
	boom := errors.New("tree failed")
	errCh := make(chan error, 1)
	errCh <- boom

	if err := waitForShutdown(context.Background(), errCh); !errors.Is(err, boom) {
		t.Errorf("waitForShutdown() = %v, want %v", err, boom)
	}
}

func TestWaitForShutdown_CanceledIsClean(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	errCh := make(chan error, 1)
	errCh <- context.Canceled

	if err := waitForShutdown(ctx, errCh); err != nil {
		t.Errorf("waitForShutdown() = %v, want nil", err)
	}
}
