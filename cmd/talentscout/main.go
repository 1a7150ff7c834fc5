// Copyright 2026 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/poiesic/talentscout"
	"github.com/poiesic/talentscout/ai"
	"github.com/poiesic/talentscout/core"
	"github.com/poiesic/talentscout/history"
	"github.com/poiesic/talentscout/search"
	"github.com/poiesic/talentscout/server"
	"github.com/urfave/cli/v2"
)

func main() {
	// Load .env (optional, for local dev)
	_ = godotenv.Load()

	app := &cli.App{
		Name:   "talentscout",
		Usage:  "Semantic talent discovery over creator portfolios",
		Before: setupLogger,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
		},
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "Run the HTTP search service",
				Action: serveCommand,
				Flags: append(databaseFlags(),
					&cli.StringFlag{
						Name:    "addr",
						Usage:   "HTTP listen address",
						Value:   ":8080",
						EnvVars: []string{"TALENTSCOUT_ADDR"},
					},
					&cli.StringFlag{
						Name:  "rebuild-schedule",
						Usage: "Cron schedule for popular cluster rebuilds",
						Value: "@every 15m",
					},
				),
			},
			{
				Name:   "search",
				Usage:  "Run a one-shot search from the command line",
				Action: searchCommand,
				Flags: append(databaseFlags(),
					&cli.StringFlag{
						Name:     "role",
						Usage:    "Creator role to search for",
						Required: true,
					},
					&cli.StringFlag{
						Name:    "query",
						Aliases: []string{"q"},
						Usage:   "Free-text query",
					},
					&cli.StringFlag{
						Name:  "content-type",
						Usage: "Scope: all, images, or videos",
						Value: "all",
					},
					&cli.Float64Flag{
						Name:  "max-budget",
						Usage: "Maximum day rate",
					},
					&cli.StringSliceFlag{
						Name:  "subject",
						Usage: "Required subject tag (repeatable)",
					},
					&cli.StringSliceFlag{
						Name:  "style",
						Usage: "Required style tag (repeatable)",
					},
					&cli.IntFlag{
						Name:  "page",
						Value: 1,
					},
					&cli.IntFlag{
						Name:  "limit",
						Value: 5,
					},
				),
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func databaseFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "storage",
			Usage:   "Storage backend: badger or postgres",
			Value:   "badger",
			EnvVars: []string{"TALENTSCOUT_STORAGE"},
		},
		&cli.StringFlag{
			Name:    "db",
			Aliases: []string{"d"},
			Usage:   "Path to BadgerDB database directory",
			EnvVars: []string{"TALENTSCOUT_DB"},
		},
		&cli.StringFlag{
			Name:    "database-url",
			Usage:   "PostgreSQL connection URL (postgres storage only)",
			EnvVars: []string{"TALENTSCOUT_DATABASE_URL"},
		},
		&cli.StringFlag{
			Name:    "embedding-host",
			Usage:   "Embedding service host URL",
			Value:   "http://localhost:11434/v1",
			EnvVars: []string{"TALENTSCOUT_EMBEDDING_HOST"},
		},
		&cli.StringFlag{
			Name:    "embedding-model",
			Usage:   "Embedding model name",
			Value:   "embeddinggemma",
			EnvVars: []string{"TALENTSCOUT_EMBEDDING_MODEL"},
		},
	}
}

func openDatabase(c *cli.Context) (*talentscout.Database, error) {
	aiConfig := ai.NewConfig(
		ai.WithHost(c.String("embedding-host")),
		ai.WithEmbeddingModel(c.String("embedding-model")),
	)
	if err := aiConfig.Validate(); err != nil {
		return nil, fmt.Errorf("invalid AI configuration: %w", err)
	}

	switch c.String("storage") {
	case "badger":
		if c.String("db") == "" {
			return nil, fmt.Errorf("badger storage requires --db")
		}
		return talentscout.NewDatabase(c.String("db"), talentscout.WithAIConfig(aiConfig))
	case "postgres":
		if c.String("database-url") == "" {
			return nil, fmt.Errorf("postgres storage requires --database-url")
		}
		return talentscout.NewDatabase("",
			talentscout.WithAIConfig(aiConfig),
			talentscout.WithPostgres(c.String("database-url")))
	}
	return nil, fmt.Errorf("unknown storage backend %q: must be badger or postgres", c.String("storage"))
}

func serveCommand(c *cli.Context) error {
	db, err := openDatabase(c)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	clusterer, err := db.NewClusterer()
	if err != nil {
		return err
	}

	// Live searches feed the clusterer as they persist; the cron rebuild
	// keeps it consistent with deletions.
	recorder, err := db.NewRecorder(history.WithObserver(clusterer))
	if err != nil {
		return err
	}
	defer recorder.Release()

	engine, err := db.NewEngine(search.WithRecorder(recorder))
	if err != nil {
		return err
	}

	srv, err := server.NewServer(engine, db.HistoryRepository(),
		server.WithAddr(c.String("addr")),
		server.WithClusterer(clusterer),
		server.WithQueryEmbedder(db.Gateway()),
		server.WithRebuildSchedule(c.String("rebuild-schedule")))
	if err != nil {
		return err
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case <-stop:
	}

	slog.Info("shutting down")
	return srv.Shutdown(context.Background())
}

func searchCommand(c *cli.Context) error {
	db, err := openDatabase(c)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	engine, err := db.NewEngine()
	if err != nil {
		return err
	}

	query := &core.Query{
		Text:        c.String("query"),
		Role:        c.String("role"),
		ContentType: core.ContentType(c.String("content-type")),
		Subjects:    c.StringSlice("subject"),
		Styles:      c.StringSlice("style"),
		Page:        c.Int("page"),
		Limit:       c.Int("limit"),
	}
	if c.IsSet("max-budget") {
		budget := c.Float64("max-budget")
		query.MaxBudget = &budget
	}

	response, err := engine.Search(c.Context, "", query)
	if err != nil {
		return err
	}

	if response.Degraded {
		fmt.Println("(degraded: results are filter-only, unranked)")
	}
	fmt.Printf("%d creators (page %d, showing %d)\n\n", response.Total, response.Page, len(response.Results))

	for i, result := range response.Results {
		fmt.Printf("%2d. %s  [%s]  score=%.3f  day rate=%.0f\n",
			(response.Page-1)*response.Limit+i+1,
			result.Creator.Name, result.Creator.Role, result.Score, result.Creator.DayRate)
		for _, project := range result.Projects {
			fmt.Printf("      project %d: final=%.3f (vector=%.3f video=%.3f)\n",
				project.ProjectId, project.FinalScore, project.VectorScore, project.VideoScore)
		}
	}
	return nil
}

func setupLogger(c *cli.Context) error {
	// Get log level from flag and normalize to lowercase
	levelStr := strings.ToLower(c.String("log-level"))

	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", levelStr)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}
