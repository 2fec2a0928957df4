package main

import (
	"errors"
	"fmt"
	"os"
	"reflect"

	"github.com/fatih/structs"
	"github.com/mitchellh/go-homedir"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v2"
)

var (
	// Store the result of binding cobra flags
	Config string
	Debug  bool

	// ConfigDir is the directory holding the project's .env and
	// confluence.config files.
	ConfigDir string
	OutDir    string

	ParsedConfig YamlConfig

	logger *zap.SugaredLogger
)

// Build the cobra command that handles our command line tool.
var rootCmd = &cobra.Command{
	Use:   "confluence-tree-dump",
	Short: "Download a Confluence page tree to local annotated files",
	Long: `
Point this tool at a Confluence page and it will download that page and all of
its descendants (depth-bounded) into one flat directory, each file carrying a
front-matter header with version, content hash and macro counts for change
detection.
`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := initializeConfig(cmd); err != nil {
			return fmt.Errorf("confluence-tree-dump: failed to initialise config: %w", err)
		}

		logger = buildLogger(Debug)
		return nil
	},
}

func init() {
	// Define cobra flags, the default value has the lowest (least significant) precedence
	rootCmd.PersistentFlags().StringVar(&Config, "config", "", "settings file location (default: ~/.config/confluence-tree-dump.yaml, respects CONFLUENCE_TREE_DUMP_CONFIG)")
	rootCmd.PersistentFlags().BoolVar(&Debug, "debug", false, "display debug output")
	rootCmd.PersistentFlags().StringVar(&ConfigDir, "config-dir", ".", "directory holding .env and confluence.config")
	rootCmd.PersistentFlags().StringVar(&OutDir, "out-dir", "confluence", "directory to save downloaded pages into")
}

func buildLogger(debug bool) *zap.SugaredLogger {
	cfg := zap.NewProductionConfig()
	cfg.Encoding = "console"
	cfg.DisableCaller = true
	if debug {
		cfg = zap.NewDevelopmentConfig()
	}
	l, err := cfg.Build()
	if err != nil {
		// zap only fails on bad config; ours is static.
		return zap.NewNop().Sugar()
	}
	return l.Sugar()
}

func initializeConfig(cmd *cobra.Command) error {
	explicit := Config != ""
	if !explicit {
		// Did the user provide an ENV?
		envConfig := os.Getenv("CONFLUENCE_TREE_DUMP_CONFIG")
		if envConfig != "" {
			Config = envConfig
			explicit = true
		} else {
			// As fallback, search for config in home XDG-ish directory
			Config = "~/.config/confluence-tree-dump.yaml"
		}
	}
	config, err := homedir.Expand(Config)
	if err != nil {
		return fmt.Errorf("confluence-tree-dump: unable to expand homedir: %w", err)
	}
	Config = config

	if _, err := os.Stat(Config); errors.Is(err, os.ErrNotExist) {
		if explicit {
			return fmt.Errorf("confluence-tree-dump: specified settings file does not exist: %w", err)
		}
		// No settings file is fine; flags and defaults carry the run.
		return nil
	}

	yamlFile, err := os.ReadFile(Config)
	if err != nil {
		return fmt.Errorf("confluence-tree-dump: error reading settings file: %w", err)
	}

	// I'd like to bark if a user sets a key we don't recognise:
	if err := yaml.UnmarshalStrict(yamlFile, &ParsedConfig); err != nil {
		return fmt.Errorf("confluence-tree-dump: issue parsing settings file: %w", err)
	}

	// Bind the current command's flags to the parsed settings
	if err := bindFlags(cmd, ParsedConfig); err != nil {
		return fmt.Errorf("confluence-tree-dump: failed to bind flags: %w", err)
	}

	return nil
}

type YamlConfig struct {
	FailFast        *bool `yaml:"fail-fast"`
	SkipUnchanged   *bool `yaml:"skip-unchanged"`
	SkipAttachments *bool `yaml:"skip-attachments"`
	WriteMarkdown   *bool `yaml:"write-markdown"`
	WithVCR         *bool `yaml:"with-vcr"`
	DryRun          *bool `yaml:"dry-run"`

	ConfigDir string `yaml:"config-dir"`
	OutDir    string `yaml:"out-dir"`
	Format    string `yaml:"format"`

	MaxDepth int `yaml:"max-depth"`
}

// Bind each cobra flag to its associated settings-file key.  Flags the user
// set on the command line win; file values only fill in the rest.
func bindFlags(cmd *cobra.Command, v YamlConfig) error {
	for _, field := range structs.Fields(v) {
		key := field.Tag("yaml")
		if key == "" {
			return fmt.Errorf("confluence-tree-dump: could not retrieve struct tag 'yaml'")
		}
		if flag := cmd.Flag(key); flag == nil {
			// the flag is unknown.  that can legitimately happen if you're
			// running e.g. `check` which has no `max-depth` flag but your
			// YAML file does define that key...
			continue
		}
		if !cmd.Flags().Changed(key) {
			switch field.Kind() {
			case reflect.Ptr:
				// err, this is crappy, but i know YamlConfig only uses pointers for bools.....
				b, ok := field.Value().(*bool)
				if !ok {
					return fmt.Errorf("confluence-tree-dump: found unrecognised field: %+v", field)
				}
				if b != nil {
					cmd.Flags().Set(key, fmt.Sprintf("%v", *b))
				}

			case reflect.String:
				s, ok := field.Value().(string)
				if !ok {
					return fmt.Errorf("confluence-tree-dump: found unrecognised field: %+v", field)
				}
				if s != "" {
					cmd.Flags().Set(key, s)
				}

			case reflect.Int:
				n, ok := field.Value().(int)
				if !ok {
					return fmt.Errorf("confluence-tree-dump: found unrecognised field: %+v", field)
				}
				if n != 0 {
					cmd.Flags().Set(key, fmt.Sprintf("%d", n))
				}

			default:
				return fmt.Errorf("confluence-tree-dump: found unrecognised field: %+v", field)
			}
		}
	}

	return nil
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	defer func() {
		if logger != nil {
			logger.Sync()
		}
	}()

	if err := rootCmd.Execute(); err != nil {
		return fmt.Errorf("confluence-tree-dump: execution error: %w", err)
	}

	return nil
}
