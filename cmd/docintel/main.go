package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/stipsportal/docintel/internal/common"
	"github.com/stipsportal/docintel/internal/export"
	"github.com/stipsportal/docintel/internal/ingest"
	llmazure "github.com/stipsportal/docintel/internal/llm/azure"
	"github.com/stipsportal/docintel/internal/normalize"
	ocrazure "github.com/stipsportal/docintel/internal/ocr/azure"
	"github.com/stipsportal/docintel/internal/pipeline"
	"github.com/stipsportal/docintel/internal/server"
)

// printError prints an error message to stderr, falling back to stdout if stderr fails
func printError(format string, args ...interface{}) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		fmt.Printf(format, args...)
	}
}

func main() {
	var (
		dir         = flag.String("dir", "", "directory of documents to process")
		out         = flag.String("out", "", "output directory for JSON records (defaults to -dir)")
		xlsx        = flag.Bool("xlsx", false, "also write an XLSX batch summary")
		watch       = flag.Bool("watch", false, "keep watching -dir and process new documents as they arrive")
		serve       = flag.Bool("serve", false, "run the HTTP API instead of a batch")
		concurrency = flag.Int("concurrency", 0, "parallel documents per batch (defaults to PIPELINE_CONCURRENCY)")
	)
	flag.Parse()

	if !*serve && *dir == "" {
		printError("Error: --dir is required unless --serve is set\n")
		os.Exit(1)
	}
	if *out == "" {
		*out = *dir
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	cfg := common.LoadConfig()
	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}
	if *concurrency > 0 {
		cfg.Pipeline.Concurrency = *concurrency
	}

	extractor := ocrazure.NewClient(ocrazure.Config{
		Endpoint:     cfg.DocIntel.Endpoint,
		APIKey:       cfg.DocIntel.APIKey,
		APIVersion:   cfg.DocIntel.APIVersion,
		ModelID:      cfg.DocIntel.ModelID,
		PollInterval: cfg.DocIntel.PollInterval,
		Timeout:      cfg.DocIntel.Timeout,
	}, logger)

	completer := llmazure.NewClient(llmazure.Config{
		Endpoint:   cfg.LLM.Endpoint,
		APIKey:     cfg.LLM.APIKey,
		APIVersion: cfg.LLM.APIVersion,
		Deployment: cfg.LLM.Deployment,
		Timeout:    cfg.LLM.Timeout,
	}, logger)

	engine := normalize.NewEngine(completer, normalize.Config{Temperature: cfg.LLM.Temperature}, logger)
	processor := pipeline.NewProcessor(logger, extractor, engine)
	batch := pipeline.NewBatch(processor, cfg.Pipeline.Concurrency, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	switch {
	case *serve:
		runServer(ctx, batch, cfg.Server, logger)
	case *watch:
		runWatch(ctx, processor, *dir, *out, logger)
	default:
		runBatch(ctx, batch, *dir, *out, *xlsx, logger)
	}
}

func runServer(ctx context.Context, batch *pipeline.Batch, cfg common.ServerConfig, logger *slog.Logger) {
	srv := server.NewServer(batch, cfg, logger)

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Start() }()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Stop(shutdownCtx); err != nil {
			logger.Error("server shutdown failed", "error", err)
			os.Exit(1)
		}
		logger.Info("server.stopped")
	case err := <-errCh:
		logger.Error("server failed", "error", err)
		os.Exit(1)
	}
}

func runBatch(ctx context.Context, batch *pipeline.Batch, dir, out string, xlsx bool, logger *slog.Logger) {
	paths, err := ingest.ScanDirectory(dir)
	if err != nil {
		logger.Error("failed to scan directory", "dir", dir, "error", err)
		os.Exit(1)
	}
	if len(paths) == 0 {
		logger.Warn("no processable documents found", "dir", dir)
		return
	}

	files := make([]pipeline.BatchFile, 0, len(paths))
	for _, p := range paths {
		data, err := os.ReadFile(p)
		if err != nil {
			logger.Error("failed to read document", "path", p, "error", err)
			os.Exit(1)
		}
		files = append(files, pipeline.BatchFile{Filename: filepath.Base(p), Data: data})
	}

	if err := os.MkdirAll(out, 0o755); err != nil {
		logger.Error("failed to create output directory", "dir", out, "error", err)
		os.Exit(1)
	}

	results, summary := batch.Run(ctx, files)

	written := 0
	for _, res := range results {
		if res.Err != nil {
			continue
		}
		if _, err := export.WriteJSON(out, res.Result.JSONName, res.Result.Record); err != nil {
			logger.Error("failed to write record", "file", res.Result.JSONName, "error", err)
			os.Exit(1)
		}
		written++
	}

	stamp := time.Now().Format("20060102_150405")
	summaryName := fmt.Sprintf("Document_Summary_%s.json", stamp)
	if _, err := export.WriteJSON(out, summaryName, summary); err != nil {
		logger.Error("failed to write summary", "file", summaryName, "error", err)
		os.Exit(1)
	}

	if xlsx {
		book, err := export.SummaryXLSX(summary, logger)
		if err != nil {
			logger.Error("failed to build XLSX summary", "error", err)
			os.Exit(1)
		}
		xlsxPath := filepath.Join(out, fmt.Sprintf("Document_Summary_%s.xlsx", stamp))
		if err := os.WriteFile(xlsxPath, book, 0o644); err != nil {
			logger.Error("failed to write XLSX summary", "path", xlsxPath, "error", err)
			os.Exit(1)
		}
		logger.Info("summary workbook written", "path", xlsxPath)
	}

	failures := len(files) - written
	logger.Info("batch complete",
		"documents", len(files),
		"records_written", written,
		"failures", failures,
		"output_dir", out,
	)

	fmt.Printf("Processing complete!\n")
	fmt.Printf("- Documents: %d\n", len(files))
	fmt.Printf("- Records written: %d\n", written)
	fmt.Printf("- Failures: %d\n", failures)
	fmt.Printf("- Output: %s\n", out)
}

// runWatch processes documents one at a time as the watcher reports them.
// Watched documents arrive alone, so classification sees no batch siblings.
func runWatch(ctx context.Context, processor *pipeline.Processor, dir, out string, logger *slog.Logger) {
	if err := os.MkdirAll(out, 0o755); err != nil {
		logger.Error("failed to create output directory", "dir", out, "error", err)
		os.Exit(1)
	}

	evCh, errCh, err := ingest.StartWatcher(ctx, ingest.WatchConfig{
		Roots:       []string{dir},
		InitialScan: true,
		Debounce:    500 * time.Millisecond,
	})
	if err != nil {
		logger.Error("failed to start watcher", "dir", dir, "error", err)
		os.Exit(1)
	}
	logger.Info("watching for documents", "dir", dir, "output_dir", out)

	for {
		select {
		case <-ctx.Done():
			logger.Info("watch stopped")
			return
		case err, ok := <-errCh:
			if ok && err != nil {
				logger.Error("watch error", "error", err)
			}
		case path, ok := <-evCh:
			if !ok {
				return
			}
			data, err := os.ReadFile(path)
			if err != nil {
				logger.Error("failed to read document", "path", path, "error", err)
				continue
			}
			res, err := processor.ProcessDocument(ctx, pipeline.DocumentInput{
				Filename: filepath.Base(path),
				Data:     data,
			})
			if err != nil {
				logger.Error("failed to process document", "path", path, "error", err)
				continue
			}
			if _, err := export.WriteJSON(out, res.JSONName, res.Record); err != nil {
				logger.Error("failed to write record", "file", res.JSONName, "error", err)
			}
		}
	}
}
