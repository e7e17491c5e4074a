package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/mandalnilabja/mpgconverter/internal/config"
	"github.com/mandalnilabja/mpgconverter/internal/version"
)

func setupLogger(cfg *config.Config) *slog.Logger {
	opts := &slog.HandlerOptions{Level: parseLevel(cfg.LogLevel)}

	var handler slog.Handler
	if cfg.LogFormat == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}
	return slog.New(handler)
}

// parseLevel maps LOG_LEVEL to a slog level, falling back to info.
func parseLevel(s string) slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return slog.LevelInfo
	}
	return level
}

func printStartupBanner(w io.Writer, cfg *config.Config) {
	base := "http://localhost" + cfg.ServerPort

	fmt.Fprintf(w, "\n")
	fmt.Fprintf(w, "⛽ mpgconverter %s - Fuel Economy Converter\n", version.Version)
	fmt.Fprintln(w, "════════════════════════════════════════════════")
	if cfg.EnableWebUI {
		fmt.Fprintf(w, "Web UI:     %s/web\n", base)
	}
	fmt.Fprintf(w, "Convert:    %s/api/convert\n", base)
	if cfg.EnableUsageLog {
		fmt.Fprintf(w, "Admin API:  %s/api/admin/\n", base)
		fmt.Fprintf(w, "Data:       %s\n", config.DataDir())
	}
	if p := cfg.Prefix(); p != "" {
		fmt.Fprintf(w, "Base path:  %s%s/\n", base, p)
	}
	fmt.Fprintf(w, "Default:    %s\n", cfg.DefaultUnit.Label())
	fmt.Fprintln(w, "════════════════════════════════════════════════")
	fmt.Fprintf(w, "\n")
}
