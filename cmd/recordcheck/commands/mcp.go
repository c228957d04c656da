package commands

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/erraggy/recordcheck/internal/mcpserver"
)

// HandleMCP executes the mcp command, serving MCP over stdio until the
// client disconnects or the process is interrupted.
func HandleMCP(args []string, streams Streams) error {
	fs := flag.NewFlagSet("mcp", flag.ContinueOnError)
	fs.SetOutput(streams.Err)
	fs.Usage = func() {
		Writef(fs.Output(), "Usage: recordcheck mcp\n\n")
		Writef(fs.Output(), "Serve recordcheck as a Model Context Protocol server over stdio.\n")
		Writef(fs.Output(), "Tools: validate_record, describe_schema, list_schemas.\n")
		Writef(fs.Output(), "Configuration is read from RECORDCHECK_* environment variables.\n")
	}

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}
	if fs.NArg() != 0 {
		fs.Usage()
		return fmt.Errorf("mcp command takes no arguments")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return mcpserver.Run(ctx)
}
