package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/paulmach/orb"

	"github.com/placefind/placefind/internal/config"
	"github.com/placefind/placefind/internal/logging"
	"github.com/placefind/placefind/internal/render"
	"github.com/placefind/placefind/internal/search"
	"github.com/placefind/placefind/internal/transport"
)

// runQuery is the headless path: one submission, print the outcome, exit.
// It drives the same controller and dispatcher as the TUI.
func runQuery(args []string) error {
	var serverURL, configPath, timeoutStr string
	var asJSON bool

	fs := flag.NewFlagSet("query", flag.ExitOnError)
	fs.StringVar(&serverURL, "server", "", "Search service base URL (default: from config)")
	fs.StringVar(&configPath, "config", "", "Config file path")
	fs.StringVar(&timeoutStr, "timeout", "", "Request timeout, e.g. 10s (default: from config)")
	fs.BoolVar(&asJSON, "json", false, "Print the resolved response as JSON")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: placefind query [flags] \"<text>\"\n\nFlags:\n")
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  placefind query \"vegan restaurants in Berlin open till 11 pm\"\n")
		fmt.Fprintf(os.Stderr, "  placefind query -server http://localhost:8000 -json \"cafes near Central Park\"\n")
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	text := strings.TrimSpace(strings.Join(fs.Args(), " "))
	if text == "" {
		return fmt.Errorf("query text is required")
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if serverURL != "" {
		cfg.Server.URL = serverURL
	}
	if timeoutStr != "" {
		cfg.Server.Timeout = timeoutStr
	}

	logger := logging.New(cfg.Logging.File, cfg.Logging.Debug)
	client := transport.NewClient(cfg.Server.URL, cfg.RequestTimeout(), logger)
	ctrl := search.NewController(logger)

	req, ok := ctrl.Submit(text)
	if !ok {
		return fmt.Errorf("query text is required")
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.RequestTimeout())
	defer cancel()

	body, err := client.Search(ctx, req.Query)
	if err != nil {
		ctrl.OnFailure(req.ID, err)
		return fmt.Errorf("%s", ctrl.State().Err)
	}
	ctrl.OnSuccess(req.ID, body)

	resp := *ctrl.State().Result
	if asJSON {
		out, err := json.MarshalIndent(resp, "", "  ")
		if err != nil {
			return fmt.Errorf("encoding response: %w", err)
		}
		fmt.Println(string(out))
		return nil
	}

	var origin *orb.Point
	if cfg.Origin != nil {
		origin = &orb.Point{cfg.Origin.Lng, cfg.Origin.Lat}
	}
	fmt.Println(render.Text(render.NewRegistry(origin), resp))
	return nil
}
