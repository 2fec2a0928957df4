package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ai-agile/confluence-tree-dump/config"
	"github.com/ai-agile/confluence-tree-dump/confluence"
	"github.com/ai-agile/confluence-tree-dump/internal/termfmt"
)

var checkUsage = strings.TrimSpace(`
Resolve configuration and issue one authenticated probe request, without
downloading anything.  Use this to verify credentials before a bulk run.
`)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Verify configuration and credentials",
	Long:  checkUsage,
	Args:  cobra.ExactArgs(0),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(ConfigDir)
		if err != nil {
			return err
		}

		api, err := confluence.NewAPI(cfg.BaseURL, cfg.Email, cfg.Token)
		if err != nil {
			return fmt.Errorf("check: Confluence API creation failed: %w", err)
		}
		api.Logger = logger

		ok, err := api.ProbeAuth(cmd.Context())
		if err != nil {
			return fmt.Errorf("check: auth probe couldn't run: %w", err)
		}
		if !ok {
			fmt.Printf("%v: authentication against %s failed\n",
				termfmt.Fg(termfmt.Red).V("not ok"), cfg.BaseURL)
			return fmt.Errorf("check: authentication failed for %s as %s", cfg.BaseURL, cfg.Email)
		}

		fmt.Printf("%v: authenticated against %s as %s (root page %s)\n",
			termfmt.Fg(termfmt.Green).V("ok"), cfg.BaseURL, cfg.Email, cfg.RootPageID)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)
}
