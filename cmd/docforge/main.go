// Command docforge indexes a Python source tree and generates docstrings and
// commit messages with an LLM backend.
package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"docforge/internal/config"
	"docforge/internal/index"
	"docforge/internal/writer"
)

var (
	rootCmd = &cobra.Command{
		Use:   "docforge",
		Short: "AI-assisted docstring and commit message writer for Python projects",
	}
	cfgPath       string
	verbose       bool
	ignoreFolders []string
	stdin         = bufio.NewReader(os.Stdin)
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	zerolog.SetGlobalLevel(zerolog.InfoLevel)

	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "docforge.yaml", "Path to the config file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringSliceVar(&ignoreFolders, "ignore", nil, "Extra folder markers to skip while indexing")
	cobra.OnInitialize(func() {
		if verbose {
			zerolog.SetGlobalLevel(zerolog.DebugLevel)
		}
	})

	rootCmd.AddCommand(indexCmd)
	rootCmd.AddCommand(docsCmd)
	rootCmd.AddCommand(moduleDocsCmd)
	rootCmd.AddCommand(buildCacheCmd)
	rootCmd.AddCommand(iterCmd)
	rootCmd.AddCommand(commitCmd)
	rootCmd.AddCommand(bumpCmd)
}

func loadConfig() *config.Config {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Warn().Err(err).Str("path", cfgPath).Msg("failed to load config, using defaults")
		return config.Default()
	}
	return cfg
}

// buildIndex constructs the symbol index and surfaces the duplicate-name
// diagnostic. Duplicates never fail the build.
func buildIndex(root string, cfg *config.Config) (*index.Index, error) {
	merged := append([]string{}, cfg.Project.IgnoreFolders...)
	merged = append(merged, ignoreFolders...)

	idx, err := index.Build(root, merged)
	if err != nil {
		return nil, err
	}
	if dups := idx.Duplicates(); len(dups) > 0 {
		log.Warn().Strs("names", dups).
			Msg("duplicated names found; this is not critical, but generated context may pick the wrong variant")
	}
	return idx, nil
}

func newWriter(ctx context.Context, cfg *config.Config) (writer.Writer, error) {
	if cfg.AI.APIKey == "" {
		return nil, fmt.Errorf("AI API key not configured (set DOCFORGE_API_KEY or ai.api_key)")
	}
	return writer.New(ctx, writer.Options{
		Provider: cfg.AI.Provider,
		APIKey:   cfg.AI.APIKey,
		Model:    cfg.AI.Model,
		BaseURL:  cfg.AI.BaseURL,
	})
}

// resolveInstruction merges the --instruction and --profile flags; the two
// are mutually exclusive.
func resolveInstruction(instruction, profile string, profiles map[string]string) (string, error) {
	if instruction != "" && profile != "" {
		return "", fmt.Errorf("--instruction and --profile are mutually exclusive")
	}
	if profile == "" {
		return instruction, nil
	}
	resolved, ok := profiles[profile]
	if !ok {
		return "", fmt.Errorf("unknown profile %q", profile)
	}
	return resolved, nil
}

func promptLine(prompt string) (string, error) {
	fmt.Print(prompt)
	line, err := stdin.ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// chooseSymbol asks the operator to pick among same-name definitions.
func chooseSymbol(root string, syms []index.Symbol) (index.Symbol, error) {
	if len(syms) == 1 {
		return syms[0], nil
	}
	fmt.Println("Found multiple definitions. Please select the proper one:")
	for i, sym := range syms {
		row, _ := sym.Location(root)
		fmt.Printf("%-4d: %s:%d\n", i, sym.FilePath, row)
	}
	line, err := promptLine("Type index: ")
	if err != nil {
		return index.Symbol{}, err
	}
	var choice int
	if _, err := fmt.Sscanf(line, "%d", &choice); err != nil || choice < 0 || choice >= len(syms) {
		return index.Symbol{}, fmt.Errorf("invalid selection %q", line)
	}
	return syms[choice], nil
}
