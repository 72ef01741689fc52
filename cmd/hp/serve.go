package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jacksmith/hp/internal/notify"
	"github.com/jacksmith/hp/internal/server"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve prospects over HTTP",
	Long: `Serve the prospect list as a JSON API.

Routes:
  GET  /prospects?filter=&sort=
  POST /prospects                 {"name": ..., "emailAddress": ...}
  GET  /prospects/{id}
  POST /prospects/{id}/toggle
  POST /prospects/{id}/remind
  POST /scan                      raw two-line payload
  GET  /metrics

The server never asks for notification permission; set it beforehand with
"hp notifications allow". With --deliver, due reminders are delivered while
the server runs.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

var (
	serveAddr    string
	serveDeliver bool
)

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "127.0.0.1:8080", "listen address")
	serveCmd.Flags().BoolVar(&serveDeliver, "deliver", false, "deliver due reminders while serving")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	w, err := openWorkspace()
	if err != nil {
		return err
	}
	defer w.Close()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metrics := notify.NewMetrics(reg)

	center := w.center(false)
	sched := notify.NewScheduler(center, w.trigger(), w.logger, metrics)
	srv := &http.Server{
		Addr:              serveAddr,
		Handler:           server.New(w.store, sched, reg, w.logger).Routes(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, stop := signal.NotifyContext(commandContext(cmd), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if serveDeliver {
		d := notify.NewDispatcher(center, w.deliverers(), w.logger, metrics)
		go d.Run(ctx, w.config.DeliverEvery)
	}

	errc := make(chan error, 1)
	go func() {
		w.logger.Info("serving", "addr", serveAddr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
