package main

import (
	"errors"
	"os"

	"github.com/erraggy/recordcheck"
	"github.com/erraggy/recordcheck/cmd/recordcheck/commands"
)

// commandNames lists the sub-commands offered as typo suggestions.
var commandNames = []string{"validate", "schema", "mcp", "version", "help"}

func main() {
	os.Exit(run(os.Args[1:], commands.StdStreams()))
}

// run dispatches a sub-command and returns the process exit code.
func run(args []string, streams commands.Streams) int {
	if len(args) < 1 {
		printUsage(streams)
		return 1
	}

	var err error
	switch command := args[0]; command {
	case "version", "-v", "--version":
		commands.Writef(streams.Out, "recordcheck v%s\n", recordcheck.Version())
		return 0
	case "help", "-h", "--help":
		printUsage(streams)
		return 0
	case "validate":
		err = commands.HandleValidate(args[1:], streams)
	case "schema":
		err = commands.HandleSchema(args[1:], streams)
	case "mcp":
		err = commands.HandleMCP(args[1:], streams)
	default:
		commands.Writef(streams.Err, "Unknown command: %s\n", command)
		if suggestion := suggestCommand(command); suggestion != "" {
			commands.Writef(streams.Err, "Did you mean '%s'?\n", suggestion)
		}
		commands.Writef(streams.Err, "\n")
		printUsage(streams)
		return 1
	}

	switch {
	case err == nil:
		return 0
	case errors.Is(err, commands.ErrInvalid):
		return 1
	default:
		commands.Writef(streams.Err, "Error: %v\n", err)
		return 1
	}
}

// suggestCommand returns the closest known command within an edit distance
// of 2, or "" when nothing is close enough.
func suggestCommand(input string) string {
	best, bestDist := "", 3
	for _, name := range commandNames {
		if d := levenshtein(input, name); d < bestDist {
			best, bestDist = name, d
		}
	}
	return best
}

func levenshtein(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	prev := make([]int, len(rb)+1)
	curr := make([]int, len(rb)+1)
	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= len(ra); i++ {
		curr[0] = i
		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			curr[j] = min(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}
	return prev[len(rb)]
}

func printUsage(streams commands.Streams) {
	commands.Writef(streams.Out, `recordcheck - Metadata Record Validation Tools

Usage:
  recordcheck <command> [options]

Commands:
  validate    Validate a JSON or YAML record against a record schema
  schema      List built-in schemas or describe the fields of a schema
  mcp         Serve the validator as an MCP server over stdio
  version     Show version information
  help        Show this help message

Examples:
  recordcheck validate conference.json
  recordcheck validate --schema conferences --strict conference.yaml
  recordcheck schema conferences

Run 'recordcheck <command> --help' for more information on a command.
`)
}
