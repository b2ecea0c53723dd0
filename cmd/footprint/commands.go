// GikiZero - Carbon Footprint Tracking
// Copyright 2026 Rawad Hossain
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/rawadhossain/GikiZero

package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/rawadhossain/GikiZero/internal/analytics"
	"github.com/rawadhossain/GikiZero/internal/client"
	"github.com/rawadhossain/GikiZero/internal/logging"
	"github.com/rawadhossain/GikiZero/internal/render"
)

const defaultURL = "http://localhost:3000"

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "footprint",
		Short:         "Carbon footprint analytics from a GikiZero server",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			level, _ := cmd.Flags().GetString("log-level")
			logging.Init(logging.Config{Level: level, Format: "console", Output: cmd.ErrOrStderr()})
		},
	}
	root.PersistentFlags().String("log-level", "warn", "Log level for diagnostics on stderr")

	root.AddCommand(newAnalyticsCmd(), newPeriodsCmd())
	return root
}

func newAnalyticsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "analytics",
		Aliases: []string{"a", "dashboard"},
		Short:   "Show stat cards, trend and category averages for a period",
		Args:    cobra.NoArgs,
		RunE:    runAnalytics,
	}
	cmd.Flags().String("url", envOr("GIKIZERO_URL", defaultURL), "Server base URL")
	cmd.Flags().String("token", os.Getenv("GIKIZERO_TOKEN"), "Session token (bearer)")
	cmd.Flags().StringP("period", "p", string(analytics.DefaultPeriod), "Time window: week, month or all")
	cmd.Flags().String("missing", string(analytics.MissingAsZero), "Absent category scores: zero or excluded")
	cmd.Flags().Int("width", 100, "Output width in columns")
	cmd.Flags().Bool("json", false, "Print the view as JSON instead of rendering it")
	cmd.Flags().Duration("timeout", client.DefaultTimeout, "Request timeout")
	return cmd
}

func runAnalytics(cmd *cobra.Command, _ []string) error {
	baseURL, _ := cmd.Flags().GetString("url")
	token, _ := cmd.Flags().GetString("token")
	periodFlag, _ := cmd.Flags().GetString("period")
	missingFlag, _ := cmd.Flags().GetString("missing")
	width, _ := cmd.Flags().GetInt("width")
	asJSON, _ := cmd.Flags().GetBool("json")
	timeout, _ := cmd.Flags().GetDuration("timeout")

	period, err := analytics.ParsePeriod(periodFlag)
	if err != nil {
		return err
	}
	policy, err := analytics.ParseMissingPolicy(missingFlag)
	if err != nil {
		return err
	}
	if token == "" {
		return errors.New("--token is required (or set GIKIZERO_TOKEN)")
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
	defer cancel()

	dash := client.NewDashboard(client.New(baseURL, token), policy)
	select {
	case <-dash.SelectPeriod(ctx, period):
	case <-ctx.Done():
		return fmt.Errorf("fetch analytics: %w", ctx.Err())
	}
	if err := dash.Err(); err != nil {
		return err
	}

	view := dash.View()
	out := cmd.OutOrStdout()
	if asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(view)
	}
	_, err = fmt.Fprint(out, render.Terminal(view, width))
	return err
}

func newPeriodsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "periods",
		Short: "List the accepted --period values",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			for _, o := range analytics.PeriodOptions {
				marker := " "
				if o.Value == analytics.DefaultPeriod {
					marker = "*"
				}
				if _, err := fmt.Fprintf(out, "%s %-6s %s\n", marker, o.Value, o.Label); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
