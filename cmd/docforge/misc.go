package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"docforge/internal/gitutil"
	"docforge/internal/version"
	"docforge/internal/writer"
)

var (
	commitInstruction string
	commitProfile     string
	bumpRegex         string
)

func init() {
	commitCmd.Flags().StringVarP(&commitInstruction, "instruction", "i", "", "Custom instruction for the AI")
	commitCmd.Flags().StringVarP(&commitProfile, "profile", "p", "", "Predefined instruction set (conventional, detailed)")
	bumpCmd.Flags().StringVar(&bumpRegex, "regex", `version = "(.*?)"`, "Regex whose first group captures the version")
}

var commitCmd = &cobra.Command{
	Use:   "commit",
	Short: "Write a commit message from the staged diff",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := loadConfig()
		ctx := cmd.Context()

		instruction, err := resolveInstruction(commitInstruction, commitProfile, writer.CommitProfiles)
		if err != nil {
			return err
		}

		diff, err := gitutil.StagedDiff()
		if err != nil {
			if errors.Is(err, gitutil.ErrNoStagedChanges) {
				fmt.Println("No staged changes found. Stage your changes with git add first.")
				return nil
			}
			return err
		}

		w, err := newWriter(ctx, cfg)
		if err != nil {
			return err
		}
		message, err := w.WriteCommitMessage(ctx, diff, instruction)
		if err != nil {
			return err
		}

		copyToClipboard(message)
		fmt.Printf("Commit message copied to clipboard:\n\n%s\n", message)
		return nil
	},
}

var bumpCmd = &cobra.Command{
	Use:   "bump [file]",
	Short: "Increment the patch version in a project file",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		file := "pyproject.toml"
		if len(args) > 0 {
			file = args[0]
		}
		old, next, err := version.Bump(file, bumpRegex)
		if err != nil {
			return err
		}
		fmt.Printf("Version incremented from %s to %s\n", old, next)
		return nil
	},
}
