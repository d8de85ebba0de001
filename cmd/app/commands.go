package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"weatherdeck.app/internal/adapters/external"
	"weatherdeck.app/internal/adapters/infrastructure"
	"weatherdeck.app/internal/app"
	"weatherdeck.app/internal/config"
	"weatherdeck.app/internal/core/forecast"
)

const shutdownTimeout = 30 * time.Second

// RootCommand creates the weatherdeck command tree. Without a subcommand it serves.
func RootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "weatherdeck",
		Short:         "Three-day weather for tracked cities",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context())
		},
	}

	rootCmd.AddCommand(ServeCommand(), SearchCommand(), ForecastCommand())
	return rootCmd
}

// ServeCommand runs the HTTP API and the background refresher until SIGINT or SIGTERM
func ServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API and background refresher",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context())
		},
	}
}

func runServe(parent context.Context) error {
	application, err := app.NewApplication()
	if err != nil {
		return fmt.Errorf("initialize application: %w", err)
	}
	slog.Info("Configuration loaded successfully", "port", application.Config().Server.Port)

	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		errCh <- application.Start(ctx)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return err
		}
	case <-ctx.Done():
		slog.Info("Received shutdown signal...")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return application.Shutdown(shutdownCtx)
}

// SearchCommand prints matching places as JSON
func SearchCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "search <query>",
		Short: "Search places by name",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			gateway, err := newGateway()
			if err != nil {
				return err
			}

			locations, err := gateway.SearchLocations(cmd.Context(), strings.Join(args, " "))
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), locations)
		},
	}
}

// ForecastCommand prints the yesterday/today/tomorrow bundle for a coordinate as JSON
func ForecastCommand() *cobra.Command {
	var (
		lat, lon float64
		name     string
		unitName string
	)

	forecastCmd := &cobra.Command{
		Use:   "forecast",
		Short: "Fetch the three-day forecast for a coordinate",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			unit, err := forecast.UnitFromToken(unitName)
			if err != nil {
				return err
			}

			gateway, err := newGateway()
			if err != nil {
				return err
			}

			location := forecast.Location{Name: name, Latitude: lat, Longitude: lon}
			result, err := gateway.FetchWeather(cmd.Context(), location, unit)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), result)
		},
	}

	forecastCmd.Flags().Float64Var(&lat, "lat", 0, "Latitude in degrees")
	forecastCmd.Flags().Float64Var(&lon, "lon", 0, "Longitude in degrees")
	forecastCmd.Flags().StringVar(&name, "name", "Custom location", "Label for the coordinate")
	forecastCmd.Flags().StringVar(&unitName, "unit", "metric", "metric or imperial")
	_ = forecastCmd.MarkFlagRequired("lat")
	_ = forecastCmd.MarkFlagRequired("lon")

	return forecastCmd
}

func newGateway() (*external.OpenMeteoGateway, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, err
	}
	provider := infrastructure.NewConfigProviderAdapter(cfg)
	return external.NewOpenMeteoGateway(external.OpenMeteoGatewayParams{
		Config: provider.GetWeatherConfig(),
	}), nil
}

func printJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
