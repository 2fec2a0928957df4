package main

import (
	"fmt"
	"runtime/debug"
	"strings"

	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Args:  cobra.ExactArgs(0),
	RunE: func(cmd *cobra.Command, args []string) error {
		info, ok := debug.ReadBuildInfo()
		if !ok {
			return fmt.Errorf("version: could not read build info")
		}
		fmt.Printf("confluence-tree-dump version %s\n", shortVersion(info))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}

// shortVersion condenses the embedded build info: the module version when the
// binary was installed from a tag, plus the VCS revision with a dirty marker
// when one was stamped in.
func shortVersion(info *debug.BuildInfo) string {
	parts := []string{}
	if v := info.Main.Version; v != "" && v != "(devel)" {
		parts = append(parts, v)
	}

	revision, dirty := "", false
	for _, kv := range info.Settings {
		switch kv.Key {
		case "vcs.revision":
			revision = kv.Value
		case "vcs.modified":
			dirty = kv.Value == "true"
		}
	}
	if revision != "" {
		parts = append(parts, "rev", revision)
		if dirty {
			parts = append(parts, "dirty")
		}
	}

	if len(parts) == 0 {
		return "devel"
	}
	return strings.Join(parts, "-")
}
