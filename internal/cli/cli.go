package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"traloc/internal/config"
	"traloc/internal/export"
	"traloc/internal/loader"
	"traloc/internal/store"
	"traloc/internal/tra"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// Execute runs the CLI application.
func Execute() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	rootCmd := &cobra.Command{
		Use:   "traloc",
		Short: "Legacy tra localization adapter",
		Long:  "Ingests the legacy line-oriented tra resource format for en/fr/nl/de and normalizes it into a single translation index for downstream consumers.",
	}

	rootCmd.AddCommand(inspectCmd())
	rootCmd.AddCommand(exportCmd())
	rootCmd.AddCommand(syncCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func inspectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <directory>",
		Short: "Build the translation index and report coverage statistics",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInspect(args[0])
		},
	}
}

func exportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export <directory>",
		Short: "Build the translation index and export it to TSV or JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, _ := cmd.Flags().GetString("format")
			output, _ := cmd.Flags().GetString("output")
			return runExport(args[0], format, output)
		},
	}

	cmd.Flags().String("format", "tsv", "Export format: tsv or json")
	cmd.Flags().String("output", "translations", "Output path (without extension)")

	return cmd
}

func syncCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sync <directory>",
		Short: "Build the translation index and upsert it into PostgreSQL",
		Long: `Builds the translation index from the four legacy resource files and
writes every (identifier, lang, text) row into the shared translations table,
keyed by this adapter's source tag.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSync(args[0])
		},
	}
}

// buildAdapter loads the four language files and constructs the index.
func buildAdapter(dir, fileExt string) (*tra.Adapter, error) {
	blobs, err := loader.NewLoader(fileExt).Load(dir)
	if err != nil {
		return nil, fmt.Errorf("load language files: %w", err)
	}

	adapter, err := tra.Build(blobs)
	if err != nil {
		return nil, fmt.Errorf("build translation index: %w", err)
	}

	if adapter.SkippedLines() > 0 {
		log.Warn().Int("lines", adapter.SkippedLines()).Msg("Skipped unparseable lines")
	}

	return adapter, nil
}

// runInspect handles the `inspect` command.
func runInspect(dir string) error {
	cfg := config.Load()

	adapter, err := buildAdapter(dir, cfg.FileExt)
	if err != nil {
		return err
	}

	perLang := make(map[tra.Lang]int, len(tra.Langs))
	for _, bundle := range adapter.Translations() {
		for lang := range bundle {
			perLang[lang]++
		}
	}

	ev := log.Info().
		Int("identifiers", adapter.Count()).
		Int("skipped_lines", adapter.SkippedLines()).
		Str("source_tag", adapter.SourceTag())
	for _, lang := range tra.Langs {
		ev = ev.Int(string(lang), perLang[lang])
	}
	ev.Msg("Translation index built")

	return nil
}

// runExport handles the `export` command.
func runExport(dir, format, output string) error {
	cfg := config.Load()

	adapter, err := buildAdapter(dir, cfg.FileExt)
	if err != nil {
		return err
	}

	switch format {
	case "json":
		if err := export.WriteJSON(adapter, output+".json"); err != nil {
			return fmt.Errorf("export JSON: %w", err)
		}
	default:
		if err := export.WriteTSV(adapter, output+".tsv"); err != nil {
			return fmt.Errorf("export TSV: %w", err)
		}
	}

	return nil
}

// runSync handles the `sync` command.
func runSync(dir string) error {
	ctx, cancel := setupContext()
	defer cancel()

	cfg := config.Load()

	adapter, err := buildAdapter(dir, cfg.FileExt)
	if err != nil {
		return err
	}

	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("connect PostgreSQL: %w", err)
	}
	defer pool.Close()

	if err := pool.Ping(ctx); err != nil {
		return fmt.Errorf("ping PostgreSQL: %w", err)
	}
	log.Info().Msg("Connected to PostgreSQL")

	st := store.NewTranslationStore(pool)
	if err := st.EnsureSchema(ctx); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}

	written, err := st.UpsertAll(ctx, adapter)
	if err != nil {
		return fmt.Errorf("sync translations: %w", err)
	}

	log.Info().
		Int("identifiers", adapter.Count()).
		Int("rows", written).
		Msg("Sync complete")

	return nil
}

// setupContext creates a cancellable context with signal handling.
func setupContext() (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigCh
		log.Warn().Msg("Received shutdown signal, cancelling...")
		cancel()
	}()

	return ctx, cancel
}
