package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"time"

	"github.com/schollz/progressbar/v3"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	archiver "github.com/videotools/arte-archiver"
	"github.com/videotools/arte-archiver/arte"
	"github.com/videotools/arte-archiver/async"
	"github.com/videotools/arte-archiver/batch"
	"github.com/videotools/arte-archiver/database"
	"github.com/videotools/arte-archiver/internal/archive"
)

func main() {
	logger, err := zap.NewDevelopment()
	if err != nil {
		log.Fatalf("can't initialize zap logger: %v", err)
	}
	defer logger.Sync()
	zap.RedirectStdLog(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	ctx = archiver.WithLogger(ctx, logger)

	app := &cli.App{
		Name:  "arte-dl",
		Usage: "resolve arte.tv video, playlist and category URLs",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "json",
				Usage: "print resolved records as JSON",
			},
			&cli.BoolFlag{
				Name:  "expand",
				Usage: "eagerly resolve every entry of a collection",
			},
			&cli.IntFlag{
				Name:  "concurrency",
				Value: 4,
				Usage: "concurrent fetches during --expand",
			},
			&cli.PathFlag{
				Name:  "archive",
				Usage: "skip videos already recorded in the archive `FILE`",
			},
			&cli.PathFlag{
				Name:  "history",
				Usage: "record resolutions in the history database `FILE`",
			},
		},
		Action: func(c *cli.Context) error {
			r, err := newRun(c, logger)
			if err != nil {
				return err
			}
			defer r.close()
			for _, url := range c.Args().Slice() {
				if err := r.resolve(ctx, url); err != nil {
					return err
				}
			}
			return nil
		},
		HideHelpCommand: true,
	}

	result := async.Run(func() error { return app.Run(os.Args) })

	select {
	case err = <-result:
		if err != nil {
			logger.Fatal(err.Error())
		}
	case <-ctx.Done():
		logger.Error(ctx.Err().Error())
		stop()
	}
}

type run struct {
	json        bool
	expand      bool
	concurrency int
	archive     *archive.Archive
	history     *database.Database
	logger      *zap.SugaredLogger
}

func newRun(c *cli.Context, logger *zap.Logger) (*run, error) {
	r := &run{
		json:        c.Bool("json"),
		expand:      c.Bool("expand"),
		concurrency: c.Int("concurrency"),
		logger:      logger.Sugar(),
	}
	if path := c.Path("archive"); path != "" {
		a, err := archive.Open(path)
		if err != nil {
			return nil, fmt.Errorf("failed to open archive: %w", err)
		}
		r.archive = a
	}
	if path := c.Path("history"); path != "" {
		h, err := database.Open(path, logger)
		if err != nil {
			if r.archive != nil {
				_ = r.archive.Close()
			}
			return nil, fmt.Errorf("failed to open history database: %w", err)
		}
		r.history = h
	}
	return r, nil
}

func (r *run) close() {
	if r.archive != nil {
		_ = r.archive.Close()
	}
	if r.history != nil {
		_ = r.history.Close()
	}
}

func (r *run) resolve(ctx context.Context, url string) error {
	match, err := archiver.DefaultRegistry.Match(url)
	if err != nil {
		return fmt.Errorf("match failed: %w", err)
	}
	r.logger.Infow("resolving", "url", url, "strategy", match.Source.Strategy())

	resolved, err := match.Source.Recon(ctx)
	if errors.Is(err, archiver.ErrNoResult) {
		r.logger.Infow("page yielded no result", "url", url)
		return nil
	}
	if err != nil {
		return fmt.Errorf("recon failed: %w", err)
	}

	switch result := resolved.(type) {
	case *arte.VideoRecord:
		return r.emitVideo(result, url)
	case *arte.CollectionResult:
		return r.emitCollection(ctx, result)
	default:
		return fmt.Errorf("unexpected resolution type %T", resolved)
	}
}

func (r *run) emitVideo(record *arte.VideoRecord, url string) error {
	if r.archive != nil {
		seen, err := r.archive.Seen(record.ID)
		if err != nil {
			return err
		}
		if seen {
			r.logger.Infow("already archived, skipping", "id", record.ID)
			return nil
		}
	}
	if err := r.print(record); err != nil {
		return err
	}
	if r.history != nil {
		if err := r.history.RecordVideo(record, url); err != nil {
			return err
		}
	}
	if r.archive != nil {
		return r.archive.Put(archive.Record{ID: record.ID, Title: record.Title, ResolvedAt: time.Now()})
	}
	return nil
}

func (r *run) emitCollection(ctx context.Context, result *arte.CollectionResult) error {
	if r.history != nil {
		if err := r.history.RecordCollection(result); err != nil {
			return err
		}
	}
	if !r.expand {
		return r.print(result)
	}

	bar := progressbar.Default(int64(len(result.Entries)), "expanding")
	expander := batch.Expander{
		Resolver:    arte.DefaultClient,
		Concurrency: r.concurrency,
		Progress: func(done int, total int) {
			_ = bar.Set(done)
		},
	}
	for _, expanded := range expander.Expand(ctx, result) {
		if expanded.Err != nil {
			r.logger.Warnw("entry failed", "url", expanded.Entry.TargetURL, "error", expanded.Err)
			continue
		}
		if err := r.emitVideo(expanded.Record, expanded.Entry.TargetURL); err != nil {
			return err
		}
	}
	return nil
}

func (r *run) print(v any) error {
	if r.json {
		data, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(data))
		return nil
	}
	switch result := v.(type) {
	case *arte.VideoRecord:
		fmt.Printf("%s\t%s\t%s\n", result.ID, result.UploadDate.Format("2006-01-02"), result.Title)
		for _, f := range result.Formats {
			fmt.Printf("  [%s] %s\n", f.Note, f.StreamURL)
		}
	case *arte.CollectionResult:
		fmt.Printf("%s\t%s (%d entries)\n", result.ID, result.Title, len(result.Entries))
		for _, e := range result.Entries {
			fmt.Printf("  %s\t%s\n", e.Title, e.TargetURL)
		}
	}
	return nil
}
