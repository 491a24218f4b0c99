package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"docforge/internal/config"
	"docforge/internal/index"
	"docforge/internal/pysrc"
	"docforge/internal/writer"
)

var (
	docInstruction string
	docProfile     string
	docSymbolName  string
)

func init() {
	for _, cmd := range []*cobra.Command{docsCmd, moduleDocsCmd} {
		cmd.Flags().StringVarP(&docInstruction, "instruction", "i", "", "Custom instruction for the AI")
		cmd.Flags().StringVarP(&docProfile, "profile", "p", "", "Predefined instruction set (fastapi, cli)")
	}
	docsCmd.Flags().StringVarP(&docSymbolName, "name", "n", "", "Symbol to document (prompts interactively when omitted)")
}

var indexCmd = &cobra.Command{
	Use:   "index [root]",
	Short: "Build the symbol index and report statistics",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := loadConfig()
		root := rootArg(args, cfg)

		idx, err := buildIndex(root, cfg)
		if err != nil {
			return err
		}
		fmt.Printf("Indexed %d names across %d files\n", idx.Len(), len(idx.Files()))
		if dups := idx.Duplicates(); len(dups) > 0 {
			fmt.Printf("Duplicated names: %s\n", strings.Join(dups, ", "))
		}
		return nil
	},
}

var docsCmd = &cobra.Command{
	Use:   "docs [root]",
	Short: "Generate a docstring for a function or class",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := loadConfig()
		root := rootArg(args, cfg)
		ctx := cmd.Context()

		instruction, err := resolveInstruction(docInstruction, docProfile, writer.DocProfiles)
		if err != nil {
			return err
		}

		idx, err := buildIndex(root, cfg)
		if err != nil {
			return err
		}
		w, err := newWriter(ctx, cfg)
		if err != nil {
			return err
		}

		if docSymbolName != "" {
			return generateOne(ctx, idx, w, root, docSymbolName, instruction)
		}

		for {
			name, err := promptLine("Enter a function or class name: ")
			if err != nil {
				return nil
			}
			if name == "" {
				continue
			}
			if err := generateOne(ctx, idx, w, root, name, instruction); err != nil {
				log.Error().Err(err).Str("name", name).Msg("docstring generation failed")
			}
		}
	},
}

func generateOne(ctx context.Context, idx *index.Index, w writer.Writer, root, name, instruction string) error {
	syms, ok := idx.Lookup(name)
	if !ok {
		return fmt.Errorf("unable to locate %q in the index; double check the name", name)
	}
	sym, err := chooseSymbol(root, syms)
	if err != nil {
		return err
	}

	deps, err := idx.Dependencies(sym.Name)
	if err != nil && !errors.Is(err, index.ErrNotFound) {
		return err
	}

	doc, err := w.WriteDocstring(ctx, writer.DocRequest{
		Name:         sym.Name,
		Source:       sym.NormalizedSource,
		Dependencies: deps,
		Instruction:  instruction,
	})
	if err != nil {
		return err
	}

	formatted := writer.FormatDocstring(doc)
	copyToClipboard(formatted)
	fmt.Printf("Copied to clipboard. Manually paste docstring @ %s\n", symbolLink(root, sym))
	return nil
}

var moduleDocsCmd = &cobra.Command{
	Use:   "module-docs [root]",
	Short: "Generate a module-level docstring for a file",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := loadConfig()
		root := rootArg(args, cfg)
		ctx := cmd.Context()

		instruction, err := resolveInstruction(docInstruction, docProfile, writer.DocProfiles)
		if err != nil {
			return err
		}

		idx, err := buildIndex(root, cfg)
		if err != nil {
			return err
		}
		w, err := newWriter(ctx, cfg)
		if err != nil {
			return err
		}

		for {
			name, err := promptLine("Enter a module name: ")
			if err != nil {
				return nil
			}
			if name == "" {
				continue
			}
			if err := generateModuleDoc(ctx, idx, w, root, name, instruction); err != nil {
				log.Error().Err(err).Str("module", name).Msg("module docstring generation failed")
			}
		}
	},
}

func generateModuleDoc(ctx context.Context, idx *index.Index, w writer.Writer, root, name, instruction string) error {
	var matches []string
	for _, f := range idx.Files() {
		if strings.Contains(f, name) {
			matches = append(matches, f)
		}
	}
	if len(matches) == 0 {
		return fmt.Errorf("unable to locate module %q; use more of the file path", name)
	}

	module := matches[0]
	if len(matches) > 1 {
		fmt.Println("Found multiple modules. Please select the proper one:")
		for i, m := range matches {
			fmt.Printf("%-4d: %s\n", i, m)
		}
		line, err := promptLine("Type index: ")
		if err != nil {
			return err
		}
		var choice int
		if _, err := fmt.Sscanf(line, "%d", &choice); err != nil || choice < 0 || choice >= len(matches) {
			return fmt.Errorf("invalid selection %q", line)
		}
		module = matches[choice]
	}

	source, err := os.ReadFile(filepath.Join(root, module))
	if err != nil {
		return err
	}

	doc, err := w.WriteModuleDoc(ctx, filepath.Base(module), string(source), instruction)
	if err != nil {
		return err
	}

	formatted := writer.FormatDocstring(doc)
	copyToClipboard(formatted)
	fmt.Printf("Copied to clipboard. Manually paste docstring @ %s\n",
		pysrc.EditorLink(filepath.Join(root, module), 1))
	return nil
}

func rootArg(args []string, cfg *config.Config) string {
	if len(args) > 0 {
		return args[0]
	}
	if cfg.Project.Root != "" {
		return cfg.Project.Root
	}
	return "."
}

func symbolLink(root string, sym index.Symbol) string {
	row, ok := sym.Location(root)
	if !ok {
		return sym.FilePath
	}
	return fmt.Sprintf("%s:%d (%s)", sym.FilePath, row,
		pysrc.EditorLink(filepath.Join(root, sym.FilePath), row))
}

func copyToClipboard(text string) {
	if err := clipboard.WriteAll(text); err != nil {
		log.Warn().Err(err).Msg("clipboard unavailable, printing instead")
		fmt.Println(text)
	}
}
