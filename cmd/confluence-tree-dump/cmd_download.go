package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/cobra"
	"gopkg.in/dnaeon/go-vcr.v3/cassette"
	"gopkg.in/dnaeon/go-vcr.v3/recorder"

	"github.com/ai-agile/confluence-tree-dump/config"
	"github.com/ai-agile/confluence-tree-dump/confluence"
	"github.com/ai-agile/confluence-tree-dump/internal/termfmt"
	"github.com/ai-agile/confluence-tree-dump/localdump"
)

var downloadUsage = strings.TrimSpace(`
Download the configured page tree: the page named by PageId in
confluence.config, plus all descendants up to --max-depth, flattened into one
output directory.  An optional positional argument overrides --out-dir.
`)

var downloadCmd = &cobra.Command{
	Use:   "download [out-dir]",
	Short: "Download a Confluence page tree",
	Long:  downloadUsage,
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 1 {
			OutDir = args[0]
		}
		return runDownload(cmd.Context())
	},
}

var (
	MaxDepth        int
	Format          string
	Timeout         time.Duration
	FailFast        bool
	SkipUnchanged   bool
	SkipAttachments bool
	WriteMarkdown   bool
	DryRun          bool
	WithVCR         bool
)

func init() {
	rootCmd.AddCommand(downloadCmd)

	downloadCmd.Flags().IntVar(&MaxDepth, "max-depth", localdump.DefaultMaxDepth, "how deep below the root page to descend (0 downloads the root page only)")
	downloadCmd.Flags().StringVar(&Format, "format", string(localdump.FormatStorage), "body representation to persist: storage or export-view")
	downloadCmd.Flags().DurationVar(&Timeout, "timeout", confluence.DefaultTimeout, "per-request HTTP timeout")
	downloadCmd.Flags().BoolVar(&FailFast, "fail-fast", false, "abort the whole run on the first page failure (legacy behaviour)")
	downloadCmd.Flags().BoolVar(&SkipUnchanged, "skip-unchanged", false, "don't rewrite files whose version and content hash already match")
	downloadCmd.Flags().BoolVar(&SkipAttachments, "skip-attachments", false, "don't download page attachments")
	downloadCmd.Flags().BoolVar(&WriteMarkdown, "write-markdown", false, "also render each page's export view to Markdown")
	downloadCmd.Flags().BoolVar(&DryRun, "dry-run", false, "fetch and report, but write nothing")
	downloadCmd.Flags().BoolVar(&WithVCR, "with-vcr", false, "use go-vcr to cache responses")
}

func runDownload(ctx context.Context) error {
	cfg, err := config.Load(ConfigDir)
	if err != nil {
		return err
	}

	format, err := localdump.ParseBodyFormat(Format)
	if err != nil {
		return err
	}

	if MaxDepth < 0 {
		return fmt.Errorf("download: --max-depth must be >= 0, got %d", MaxDepth)
	}

	api, err := confluence.NewAPI(cfg.BaseURL, cfg.Email, cfg.Token)
	if err != nil {
		return fmt.Errorf("download: Confluence API creation failed: %w", err)
	}
	api.Timeout = Timeout
	api.Logger = logger

	if WithVCR {
		// set up VCR recordings.
		opts := &recorder.Options{
			CassetteName:       "fixtures/confluence-tree",
			Mode:               recorder.ModeReplayWithNewEpisodes,
			SkipRequestLatency: true,
			RealTransport:      http.DefaultTransport,
		}
		r, err := recorder.NewWithOptions(opts)
		if err != nil {
			return fmt.Errorf("download: couldn't set up go-vcr recording: %w", err)
		}

		defer r.Stop() // Make sure recorder is stopped once done with it

		// Add a hook which removes Authorization headers from all requests
		hook := func(i *cassette.Interaction) error {
			delete(i.Request.Headers, "Authorization")
			return nil
		}
		r.AddHook(hook, recorder.AfterCaptureHook)
		r.SetReplayableInteractions(true)

		api.Client = r.GetDefaultClient()
	}

	// No bulk calls without confirmed auth.
	ok, err := api.ProbeAuth(ctx)
	if err != nil {
		return fmt.Errorf("download: auth probe couldn't run: %w", err)
	}
	if !ok {
		return fmt.Errorf("download: authentication probe against %s failed; check CONF_EMAIL and CONF_TOKEN", cfg.BaseURL)
	}
	logger.Infow("authenticated", "base_url", cfg.BaseURL, "root_page", cfg.RootPageID)

	outDir, err := homedir.Expand(OutDir)
	if err != nil {
		return fmt.Errorf("download: couldn't expand homedir in '%s': %w", OutDir, err)
	}
	if !DryRun {
		if err := os.MkdirAll(outDir, 0750); err != nil {
			return fmt.Errorf("download: couldn't create output directory %s: %w", outDir, err)
		}
	}

	downloader := &localdump.TreeDownloader{
		API:             api,
		OutDir:          outDir,
		Format:          format,
		MaxDepth:        MaxDepth,
		FailFast:        FailFast,
		SkipUnchanged:   SkipUnchanged,
		SkipAttachments: SkipAttachments,
		WriteMarkdown:   WriteMarkdown,
		DryRun:          DryRun,
		ShowProgress:    !Debug && !DryRun,
		Logger:          logger,
	}

	summary, err := downloader.DownloadTree(ctx, cfg.RootPageID)
	if err != nil {
		return err
	}

	printSummary(summary)

	if len(summary.Failures) > 0 {
		return fmt.Errorf("download: %d branch(es) failed", len(summary.Failures))
	}
	return nil
}

func printSummary(s localdump.Summary) {
	fmt.Printf("\n%v: %d visited, %d written, %d unchanged, %d attachments\n",
		termfmt.Bold().V("done"), s.Visited, s.Written, s.Skipped, s.Attachments)

	for _, failure := range s.Failures {
		fmt.Printf("  %v page %s: %v\n",
			termfmt.Fg(termfmt.Red).V("failed"), failure.ID, failure.Err)
	}
}
