package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"engtt/internal/exclude"
	"engtt/internal/feed"
	"engtt/internal/models"
	"engtt/internal/subst"
	"engtt/internal/timetable"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"
)

func main() {
	// Load .env file first, but don't error if it doesn't exist.
	_ = godotenv.Load()

	app := &cli.App{
		Name:      "engtt",
		Usage:     "Convert engineering iCalendar feeds to Timetable XML.",
		ArgsUsage: "<ical_file>...",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "tripos",
				Aliases: []string{"t"},
				Value:   "engineering",
				EnvVars: []string{"ENGTT_TRIPOS"},
				Usage:   "Tripos name to use in the output.",
			},
			&cli.StringFlag{
				Name:    "substitutions",
				Aliases: []string{"s"},
				Usage:   "JSON file to load substitutions from.",
			},
			&cli.StringFlag{
				Name:    "exclusions",
				Aliases: []string{"e"},
				Usage:   "JSON file to load exclusions from.",
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Write the XML document to this file instead of stdout.",
			},
			&cli.BoolFlag{
				Name:  "lenient",
				Usage: "Skip events that fail to parse instead of aborting.",
			},
		},
		Action: convert,
	}

	if err := app.Run(os.Args); err != nil {
		slog.Error("Conversion failed", "error", err)
		os.Exit(1)
	}
}

func convert(c *cli.Context) error {
	logLevel := os.Getenv("LOG_LEVEL")
	if logLevel == "" {
		logLevel = "info"
	}
	logger := setupLogger(logLevel)

	if c.NArg() == 0 {
		return fmt.Errorf("no iCalendar files given")
	}

	var resolver subst.Resolver = subst.Null{}
	if file := c.String("substitutions"); file != "" {
		s, err := subst.FromJSONFile(file)
		if err != nil {
			return fmt.Errorf("failed to load substitutions: %w", err)
		}
		resolver = s
		logger.Info("Loaded substitutions.", "file", file)
	}

	var filter exclude.Filter = exclude.Null{}
	if file := c.String("exclusions"); file != "" {
		x, err := exclude.FromJSONFile(file)
		if err != nil {
			return fmt.Errorf("failed to load exclusions: %w", err)
		}
		filter = x
		logger.Info("Loaded exclusions.", "file", file)
	}

	parser, err := feed.NewParser(logger, c.Bool("lenient"))
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	var events []models.Event
	for _, file := range c.Args().Slice() {
		parsed, err := parser.ParseFile(file)
		if err != nil {
			return fmt.Errorf("failed to parse %s: %w", file, err)
		}
		logger.Info("Parsed feed.", "file", file, "count", len(parsed))

		for _, ev := range parsed {
			ev = subst.Apply(resolver, ev)
			if filter.IsExcluded(ev) {
				logger.Debug("Event excluded.", "uid", ev.UID, "name", ev.Name)
				continue
			}
			events = append(events, ev)
		}
	}

	tree, err := timetable.Assemble(c.String("tripos"), events)
	if err != nil {
		return fmt.Errorf("failed to assemble timetable: %w", err)
	}

	out := os.Stdout
	if path := c.String("output"); path != "" {
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close()
		out = f
	}
	if err := tree.WriteXML(out); err != nil {
		return fmt.Errorf("failed to write timetable XML: %w", err)
	}
	return nil
}

func setupLogger(level string) *slog.Logger {
	var logLevel slog.Level
	switch strings.ToLower(level) {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))
}
