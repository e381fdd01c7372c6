package main

import (
	"log/slog"
	"math/rand"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/prop-dev/prop"
	"github.com/prop-dev/prop/pkg/bridge"
	"github.com/prop-dev/prop/pkg/metrics"
)

// serveCmd creates the serve command.
func serveCmd() *cobra.Command {
	var (
		addr    string
		verbose bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve demo containers over the bridge protocol",
		Long: `Serve starts a bridge server with three demo containers:

  counter      int, rejects negative values
  message      string, trimmed to 280 characters
  temperature  float64, random-walks on its own every second

Connect with any WebSocket client:

  GET /properties                  lists the containers
  GET /properties/{name}           streams changes, accepts {"value":...} writes
  GET /metrics                     Prometheus metrics`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(addr, verbose)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8090", "listen address")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	return cmd
}

func runServe(addr string, verbose bool) error {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	metrics.Enable(metrics.WithNamespace("prop"))

	counter := prop.New(
		prop.WithInitial(0),
		prop.WithValidator(func(v int) bool { return v >= 0 }),
	)
	message := prop.New(
		prop.WithInitial("hello"),
		prop.WithCoerce(func(v *string) {
			if len(*v) > 280 {
				*v = (*v)[:280]
			}
		}),
	)
	temperature := prop.New(prop.WithInitial(20.0))

	metrics.Observe(counter, "counter")
	metrics.Observe(message, "message")
	metrics.Observe(temperature, "temperature")
	metrics.ExportValue(temperature, "temperature")

	server := bridge.NewServer(bridge.WithLogger(logger))
	if err := bridge.Register(server, "counter", counter); err != nil {
		return err
	}
	if err := bridge.Register(server, "message", message); err != nil {
		return err
	}
	if err := bridge.Register(server, "temperature", temperature); err != nil {
		return err
	}

	// Random-walk the temperature so connected clients see traffic.
	go func() {
		ticker := time.NewTicker(time.Second)
		defer ticker.Stop()
		for range ticker.C {
			temperature.Update(func(v float64) float64 {
				return v + (rand.Float64()-0.5)*0.4
			})
		}
	}()

	r := chi.NewRouter()
	r.Mount("/", server.Handler())
	r.Handle("/metrics", promhttp.Handler())

	logger.Info("bridge server listening", "addr", addr, "properties", server.Names())
	return http.ListenAndServe(addr, r)
}
