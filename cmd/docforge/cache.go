package main

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"docforge/internal/cache"
	"docforge/internal/index"
	"docforge/internal/writer"
)

const cacheWorkers = 8

var (
	cacheAll bool
	cacheDry bool
)

func init() {
	buildCacheCmd.Flags().BoolVar(&cacheAll, "all", false, "Include symbols that already have a docstring")
	buildCacheCmd.Flags().BoolVar(&cacheDry, "dry", false, "Only report how many symbols would be generated")
}

var buildCacheCmd = &cobra.Command{
	Use:   "build-cache [root]",
	Short: "Generate docstrings for undocumented symbols into the cache",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := loadConfig()
		root := rootArg(args, cfg)
		ctx := cmd.Context()

		idx, err := buildIndex(root, cfg)
		if err != nil {
			return err
		}

		var queue []index.Symbol
		idx.All(func(sym index.Symbol) {
			if !cacheAll && sym.HasDoc {
				return
			}
			if writer.IgnoreMarked(sym.NormalizedSource) {
				return
			}
			queue = append(queue, sym)
		})

		if len(queue) == 0 {
			fmt.Println("Couldn't find any objects that require a docstring. Use --all to generate docstrings for all objects.")
			return nil
		}
		if cacheDry {
			fmt.Printf("%d candidates found for docstring generation. Re-run without --dry to build the cache.\n", len(queue))
			return nil
		}

		w, err := newWriter(ctx, cfg)
		if err != nil {
			return err
		}
		store, err := cache.NewStore(cfg.Cache.Path)
		if err != nil {
			return err
		}
		defer store.Close()

		var (
			mu      sync.Mutex
			entries []cache.Entry
		)
		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(cacheWorkers)
		for _, sym := range queue {
			g.Go(func() error {
				deps, derr := idx.Dependencies(sym.Name)
				if derr != nil && !errors.Is(derr, index.ErrNotFound) {
					deps = nil
				}
				doc, werr := w.WriteDocstring(gctx, writer.DocRequest{
					Name:         sym.Name,
					Source:       sym.NormalizedSource,
					Dependencies: deps,
				})
				if werr != nil {
					// One failed symbol never aborts the batch.
					log.Error().Err(werr).Str("name", sym.Name).Msg("docstring generation failed")
					return nil
				}
				mu.Lock()
				entries = append(entries, cache.Entry{Symbol: sym, DocString: writer.FormatDocstring(doc)})
				mu.Unlock()
				log.Debug().Str("name", sym.Name).Msg("docstring generated")
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return err
		}

		if err := store.Save(entries); err != nil {
			return err
		}
		fmt.Printf("Docstring cache built successfully (%d/%d generated). Use iter to go through the docstrings.\n",
			len(entries), len(queue))
		return nil
	},
}

var iterCmd = &cobra.Command{
	Use:   "iter",
	Short: "Iterate cached docstrings, copying each to the clipboard",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := loadConfig()
		root := rootArg(nil, cfg)

		store, err := cache.NewStore(cfg.Cache.Path)
		if err != nil {
			return err
		}
		defer store.Close()

		entries, err := store.List()
		if err != nil {
			return err
		}
		if len(entries) == 0 {
			fmt.Println("No docstring cache found. Use build-cache to build one.")
			return nil
		}

		for _, entry := range entries {
			copyToClipboard(entry.DocString)
			fmt.Printf("Copied to clipboard. Manually paste docstring @ %s\n", symbolLink(root, entry.Symbol))

			answer, err := promptLine("Pop docstring from cache? [Y/n/exit] ")
			if err != nil {
				return nil
			}
			switch {
			case strings.Contains(strings.ToLower(answer), "exit"):
				fmt.Println("Exiting...")
				return nil
			case strings.Contains(strings.ToLower(answer), "n"):
				fmt.Println("Saving current result for later...")
			default:
				if err := store.Delete(entry); err != nil {
					log.Warn().Err(err).Str("name", entry.Symbol.Name).Msg("failed to pop cache entry")
				}
			}
		}
		return nil
	},
}
