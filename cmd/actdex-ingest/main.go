package main

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/kailas-cloud/actdex/internal/config"
	"github.com/kailas-cloud/actdex/internal/db"
	dbBolt "github.com/kailas-cloud/actdex/internal/db/bolt"
	dbRedis "github.com/kailas-cloud/actdex/internal/db/redis"
	"github.com/kailas-cloud/actdex/internal/domain"
	logpkg "github.com/kailas-cloud/actdex/internal/logger"
	"github.com/kailas-cloud/actdex/internal/pdfpage"
	corpusrepo "github.com/kailas-cloud/actdex/internal/repository/corpus"
	"github.com/kailas-cloud/actdex/internal/usecase/ingest"
	"github.com/kailas-cloud/actdex/internal/version"
)

var (
	cfg    *config.Config
	logger *zap.Logger

	flagBatch int
)

var rootCmd = &cobra.Command{
	Use:   "actdex-ingest",
	Short: "Ingest bare-act PDFs into the actdex corpus",
	Long: `actdex-ingest turns bare-act PDFs into searchable corpus pages.

It extracts per-page plain text, infers the act name from the file name,
and writes one page document per non-blank page to the configured store.`,
	Version:      version.String(),
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// .env is optional; missing file is not an error.
		_ = godotenv.Load()
		return initApp()
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

var ingestCmd = &cobra.Command{
	Use:   "ingest <pdf-file|directory>",
	Short: "Extract and store pages from bare-act PDFs",
	Args:  cobra.ExactArgs(1),
	RunE:  runIngest,
}

var purgeCmd = &cobra.Command{
	Use:   "purge <act-name>",
	Short: "Delete every stored page of one act",
	Args:  cobra.ExactArgs(1),
	RunE:  runPurge,
}

func init() {
	ingestCmd.Flags().IntVar(&flagBatch, "batch", ingest.DefaultBatchSize, "pages per store write batch")

	rootCmd.AddCommand(ingestCmd)
	rootCmd.AddCommand(purgeCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func initApp() error {
	env := config.GetEnv()

	c, err := config.Load(env)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	cfg = &c

	l, err := logpkg.NewLogger(env, cfg.Logging.Level)
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}
	logger = l

	domain.KeyPrefix = cfg.Storage.KeyPrefix
	return nil
}

// openStore connects to the configured database driver and waits for readiness.
func openStore(ctx context.Context) (db.Store, error) {
	var store db.Store
	var err error
	switch cfg.Database.Driver {
	case "redis":
		store, err = dbRedis.NewStore(dbRedis.Config{
			Addrs:    cfg.Database.Addrs,
			Password: cfg.Database.Password,
		})
	case "bolt":
		store, err = dbBolt.NewStore(dbBolt.Config{
			Path: cfg.Database.Path,
		})
	default:
		return nil, fmt.Errorf("unknown database driver %q", cfg.Database.Driver)
	}
	if err != nil {
		return nil, fmt.Errorf("create store: %w", err)
	}

	if err := store.WaitForReady(ctx, time.Duration(cfg.Database.ReadinessTimeout)*time.Second); err != nil {
		store.Close()
		return nil, fmt.Errorf("store not ready: %w", err)
	}
	return store, nil
}

func runIngest(cmd *cobra.Command, args []string) error {
	files, err := collectPDFs(args[0])
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("no PDF files found under %s", args[0])
	}

	ctx := cmd.Context()
	store, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer store.Close()

	repo := corpusrepo.New(store, cfg.Storage.Corpus)
	svc := ingest.New(repo, logger).WithBatchSize(flagBatch)

	var saved, skipped int
	for _, file := range files {
		pages, err := pdfpage.ExtractPages(file)
		if err != nil {
			return fmt.Errorf("extract %s: %w", file, err)
		}

		actName := ingest.InferActName(file)
		bar := newProgressBar(len(pages), actName)
		svc.WithProgress(func(n int) { _ = bar.Add(n) })

		res, err := svc.IngestAct(ctx, actName, pages)
		if err != nil {
			return fmt.Errorf("ingest %s: %w", actName, err)
		}
		_ = bar.Finish()

		saved += res.Saved
		skipped += res.Skipped
	}

	fmt.Printf("Done: %d acts, %d pages saved, %d blank pages skipped\n", len(files), saved, skipped)
	return nil
}

func runPurge(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	store, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer store.Close()

	repo := corpusrepo.New(store, cfg.Storage.Corpus)
	n, err := repo.PurgeAct(ctx, args[0])
	if err != nil {
		return fmt.Errorf("purge %s: %w", args[0], err)
	}

	fmt.Printf("Purged %d pages of %q\n", n, args[0])
	return nil
}

// collectPDFs resolves the source argument into an ordered list of PDF paths.
// A directory is walked recursively; extension matching is case-insensitive.
func collectPDFs(root string) ([]string, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, err
	}

	if !info.IsDir() {
		if !strings.EqualFold(filepath.Ext(root), ".pdf") {
			return nil, fmt.Errorf("%s is not a PDF file", root)
		}
		return []string{root}, nil
	}

	var files []string
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if strings.EqualFold(filepath.Ext(path), ".pdf") {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Strings(files)
	return files, nil
}

func newProgressBar(total int, actName string) *progressbar.ProgressBar {
	return progressbar.NewOptions(total,
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionShowBytes(false),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowCount(),
		progressbar.OptionSetDescription(fmt.Sprintf("[cyan]%s[reset]", actName)),
		progressbar.OptionOnCompletion(func() { fmt.Println() }),
	)
}
