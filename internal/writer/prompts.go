package writer

import (
	"fmt"
	"strings"
)

// PromptBuilder constructs the prompts shared by every backend.
type PromptBuilder struct{}

// DocProfiles are predefined instruction sets selectable with --profile.
var DocProfiles = map[string]string{
	"fastapi": "The objects are FastAPI endpoints. Describe the route's purpose, " +
		"its request parameters, the response model, and any HTTPException it raises.",
	"cli": "The objects are CLI commands. Describe the command's purpose, its " +
		"arguments and options, and include a one-line usage example.",
}

// CommitProfiles are predefined instruction sets for commit messages.
var CommitProfiles = map[string]string{
	"conventional": "Use Conventional Commits format: type(scope): description.",
	"detailed":     "After the one-line summary, add a short body listing each notable change.",
}

func (pb *PromptBuilder) BuildDocstringPrompt(req DocRequest) string {
	var sb strings.Builder
	sb.WriteString("You are a Python docstring writer. Look at the main object, its ")
	sb.WriteString("arguments and its dependencies, then write a docstring for the main ")
	sb.WriteString("object only.\n")
	sb.WriteString("Use Google style. Format neatly with list items where useful. Keep ")
	sb.WriteString("the documentation simple and minimal; do not restate the obvious.\n")
	sb.WriteString("Respond with the docstring text only, no quotes and no code fences.\n\n")
	fmt.Fprintf(&sb, "Main object name: %s\n\n", req.Name)
	fmt.Fprintf(&sb, "Main object source code:\n%s\n\n", req.Source)
	if len(req.Dependencies) > 0 {
		sb.WriteString("Dependency source code:\n")
		sb.WriteString(strings.Join(req.Dependencies, "\n\n"))
		sb.WriteString("\n\n")
	}
	if req.Instruction != "" {
		fmt.Fprintf(&sb, "Additional instructions: %s\n", req.Instruction)
	}
	return sb.String()
}

func (pb *PromptBuilder) BuildModuleDocPrompt(moduleName, source, instruction string) string {
	var sb strings.Builder
	sb.WriteString("You are a Python module docstring writer. Read the module source and ")
	sb.WriteString("write a docstring for the top of the file.\n")
	sb.WriteString("Use Google style. Keep it simple and minimal. Ignore any existing ")
	sb.WriteString("module docstring and write from scratch.\n")
	sb.WriteString("Respond with the docstring text only, no quotes and no code fences.\n\n")
	fmt.Fprintf(&sb, "Module name: %s\n\n", moduleName)
	fmt.Fprintf(&sb, "Module source code:\n%s\n\n", source)
	if instruction != "" {
		fmt.Fprintf(&sb, "Additional instructions: %s\n", instruction)
	}
	return sb.String()
}

func (pb *PromptBuilder) BuildCommitPrompt(diff, instruction string) string {
	var sb strings.Builder
	sb.WriteString("You are a Git commit message writer. Examine the diff and write one ")
	sb.WriteString("commit message.\n")
	sb.WriteString("Prefix the message with an action verb such as ADD, REMOVE, UPDATE, ")
	sb.WriteString("TEST, IMPROVE, CLEANUP, REFACTOR or OPTIMIZE, in the form ")
	sb.WriteString("'VERB: describe the change in one line'.\n")
	sb.WriteString("Respond with the commit message only.\n\n")
	fmt.Fprintf(&sb, "Git diff:\n\n%s\n", diff)
	if instruction != "" {
		fmt.Fprintf(&sb, "\nAdditional instructions: %s\n", instruction)
	}
	return sb.String()
}
