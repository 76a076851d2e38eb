// Package main runs the trawler browser automation core. It reads XML tool
// invocations from stdin, applies them to the managed browser session, and
// reports one outcome line per action on stdout and the dashboard.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/trawlerhq/trawler/pkg/config"
	"github.com/trawlerhq/trawler/pkg/dashboard"
	"github.com/trawlerhq/trawler/pkg/engine"
	"github.com/trawlerhq/trawler/pkg/logging"
	"github.com/trawlerhq/trawler/pkg/report"
	"github.com/trawlerhq/trawler/pkg/tools"
	"github.com/trawlerhq/trawler/pkg/tools/browser"
)

const version = "0.1.0"

type flags struct {
	ConfigPath  string
	Addr        string
	Actor       string
	Headless    bool
	ShowVersion bool
}

func main() {
	f := parseFlags()

	if f.ShowVersion {
		fmt.Printf("trawler v%s\n", version)
		return
	}

	if err := run(f); err != nil {
		log.Fatalf("trawler: %v", err)
	}
}

func parseFlags() *flags {
	f := &flags{}

	flag.StringVar(&f.ConfigPath, "config", "", "Path to config file (default ~/.trawler/config.yaml)")
	flag.StringVar(&f.Addr, "addr", "", "Dashboard listen address (overrides config)")
	flag.StringVar(&f.Actor, "actor", "", "Actor label on reported outcomes (overrides config)")
	flag.BoolVar(&f.Headless, "headless", false, "Launch browsers headless by default")
	flag.BoolVar(&f.ShowVersion, "version", false, "Show version and exit")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "trawler - browser crawl automation core\n\n")
		fmt.Fprintf(os.Stderr, "Usage: trawler [options]\n\n")
		fmt.Fprintf(os.Stderr, "Reads <tool> invocations from stdin and reports outcomes on stdout.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
	}

	flag.Parse()
	return f
}

func run(f *flags) error {
	configPath := f.ConfigPath
	if configPath == "" {
		var err error
		if configPath, err = config.DefaultPath(); err != nil {
			return err
		}
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if f.Addr != "" {
		cfg.Dashboard.Addr = f.Addr
	}
	if f.Actor != "" {
		cfg.Actor = f.Actor
	}
	if f.Headless {
		cfg.Browser.Headless = true
	}

	logger, logErr := logging.NewLogger("main")
	if logErr != nil {
		fmt.Fprintf(os.Stderr, "file logging unavailable: %v\n", logErr)
	}
	defer logger.Close()

	eng := engine.NewPlaywrightEngine()
	manager := browser.NewManager(eng, logger)

	board := dashboard.NewBoard(cfg.Dashboard.FeedSize)
	sink := report.MultiSink{report.NewWriterSink(os.Stdout), board}

	registry := tools.NewRegistry()
	browser.RegisterTools(registry, manager, board, browser.RegistryOptions{
		DefaultHeadless:  cfg.Browser.Headless,
		ExecutablePath:   cfg.Browser.ExecutablePath,
		SnapshotMaxChars: cfg.Snapshot.MaxChars,
	})
	dispatcher := tools.NewDispatcher(registry, sink, cfg.Actor, logger)

	if cfg.Dashboard.Addr != "" {
		server := dashboard.NewServer(board, logger)
		go func() {
			if err := server.ListenAndServe(cfg.Dashboard.Addr); err != nil {
				logger.Errorf("dashboard server: %v", err)
			}
		}()
	}

	// The browser process must not outlive us: close the session on
	// termination signals before exiting.
	ctx, cancel := context.WithCancel(context.Background())
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		logger.Infof("termination signal, closing browser session")
		manager.Close()
		eng.Stop()
		cancel()
		os.Exit(0)
	}()

	readActions(ctx, dispatcher, logger)

	manager.Close()
	return eng.Stop()
}

// readActions consumes stdin, dispatching every complete <tool> invocation
// as it arrives. Returns on EOF.
func readActions(ctx context.Context, dispatcher *tools.Dispatcher, logger *logging.Logger) {
	scanner := bufio.NewScanner(os.Stdin)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	var pending strings.Builder
	for scanner.Scan() {
		pending.WriteString(scanner.Text())
		pending.WriteString("\n")

		for tools.HasToolCall(pending.String()) {
			call, remaining, err := tools.ParseToolCall(pending.String())
			if err != nil {
				logger.Warnf("discarding malformed tool call: %v", err)
				pending.Reset()
				break
			}
			pending.Reset()
			pending.WriteString(remaining)
			dispatcher.DispatchCall(ctx, call)
		}
	}
	if err := scanner.Err(); err != nil {
		logger.Errorf("reading stdin: %v", err)
	}
}
