// Copyright 2026 The tbl-radar-chart Authors
// SPDX-License-Identifier: MIT

package main

import (
	"bytes"
	"context"
	"fmt"
	"html"
	"log/slog"
	"net/http"
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/spf13/cobra"

	"github.com/andrew-jp/tbl-radar-chart/internal/config"
	"github.com/andrew-jp/tbl-radar-chart/internal/pipeline"
	"github.com/andrew-jp/tbl-radar-chart/internal/radar"
	"github.com/andrew-jp/tbl-radar-chart/internal/snapshot"
)

// Serve command flags.
var (
	serveAddr     string
	servePoll     time.Duration
	serveTitle    string
	serveSheet    string
	serveCategory string
	serveValues   []string
)

// serveCmd serves the chart over HTTP and re-renders when the snapshot
// file changes.
var serveCmd = &cobra.Command{
	Use:   "serve <snapshot>",
	Short: "Serve the radar chart over HTTP",
	Long: `Serve the radar chart over HTTP, watching the snapshot file.

GET /           redraw the current chart from the session cache
GET /select?i=N promote series N to the front with extra emphasis

The snapshot file is polled for modification; a change triggers a full
update pipeline, exactly as a data-changed event from a live host would.`,
	Args: cobra.ExactArgs(1),
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", ":8080", "listen address")
	serveCmd.Flags().DurationVar(&servePoll, "poll", 2*time.Second, "snapshot poll interval (0 disables watching)")
	serveCmd.Flags().StringVar(&serveTitle, "title", "", "chart title")
	serveCmd.Flags().StringVar(&serveSheet, "sheet", "", "workbook sheet name (default: first sheet)")
	serveCmd.Flags().StringVar(&serveCategory, "category", "", "field for the category slot")
	serveCmd.Flags().StringSliceVar(&serveValues, "values", nil, "fields for the values slot (comma-separated)")
}

// surface is the server's display region: the session renders into it and
// requests read the latest page out of it. Every render replaces the page
// wholesale.
type surface struct {
	opts radar.Options

	mu   sync.Mutex
	page []byte
}

var _ radar.Renderer = (*surface)(nil)

// Render draws the chart into the surface, replacing the prior page.
func (s *surface) Render(data radar.ChartData) error {
	var buf bytes.Buffer
	if err := radar.RenderHTML(data, s.opts, &buf); err != nil {
		return err
	}
	s.mu.Lock()
	s.page = buf.Bytes()
	s.mu.Unlock()
	return nil
}

// Page returns the latest rendered page, or nil when nothing rendered yet.
func (s *surface) Page() []byte {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.page
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(".")
	if err != nil {
		return exitError(ExitInvalidArgs, "tblradar: %v", err)
	}
	if serveTitle == "" {
		serveTitle = cfg.Title
	}
	if serveSheet == "" {
		serveSheet = cfg.Sheet
	}
	if serveCategory == "" {
		serveCategory = cfg.Category
	}
	if len(serveValues) == 0 {
		serveValues = cfg.Values
	}

	src, err := snapshot.Open(args[0], snapshot.Options{
		Sheet:    serveSheet,
		PageSize: cfg.PageSize,
		Category: serveCategory,
		Values:   serveValues,
	})
	if err != nil {
		return exitError(ExitInvalidArgs, "tblradar: %v", err)
	}

	surf := &surface{opts: radar.Options{Title: serveTitle, Width: cfg.Width, Height: cfg.Height}}
	session := pipeline.NewSession(src, surf)

	// Initial update; a missing assignment is served as the inline warning
	// rather than failing startup.
	if err := session.HandleDataChanged(cmd.Context()); err != nil {
		slog.Error("initial update failed", "error", err)
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()
	if servePoll > 0 {
		go watchSnapshot(ctx, session, args[0], servePoll)
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		serveChart(w, session, surf)
	})
	mux.HandleFunc("/select", func(w http.ResponseWriter, r *http.Request) {
		index, err := strconv.Atoi(r.URL.Query().Get("i"))
		if err != nil {
			http.Error(w, "select: bad series index", http.StatusBadRequest)
			return
		}
		if err := session.PromoteSeries(index); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		http.Redirect(w, r, "/", http.StatusSeeOther)
	})

	slog.Info("serving chart", "addr", serveAddr, "snapshot", args[0])
	if err := http.ListenAndServe(serveAddr, mux); err != nil {
		return exitError(ExitUpdateFailed, "tblradar: serve: %v", err)
	}
	return nil
}

// serveChart redraws from the session cache and writes the page. Only the
// renderer runs here; the host is never re-queried on a plain reload.
func serveChart(w http.ResponseWriter, session *pipeline.Session, surf *surface) {
	switch session.State() {
	case pipeline.StateReady:
		if err := session.HandleResize(); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write(surf.Page())
	case pipeline.StateNeedsFields:
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		fmt.Fprintf(w, "<p style=%q>%s</p>", "color:#b45309;font-family:sans-serif",
			html.EscapeString(session.Warning()))
	default:
		http.Error(w, fmt.Sprintf("chart unavailable (state: %s)", session.State()),
			http.StatusServiceUnavailable)
	}
}

// watchSnapshot polls the snapshot file's mtime and runs the update
// pipeline when it changes.
func watchSnapshot(ctx context.Context, session *pipeline.Session, path string, interval time.Duration) {
	var lastMod time.Time
	if info, err := os.Stat(path); err == nil {
		lastMod = info.ModTime()
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}

		info, err := os.Stat(path)
		if err != nil {
			slog.Warn("snapshot stat failed", "path", path, "error", err)
			continue
		}
		if !info.ModTime().After(lastMod) {
			continue
		}
		lastMod = info.ModTime()

		slog.Info("snapshot changed, updating", "path", path)
		if err := session.HandleDataChanged(ctx); err != nil {
			slog.Error("update failed", "error", err)
		}
	}
}
