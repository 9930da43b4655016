package main

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog"

	"github.com/ingenium-notes/ingenium/internal/state"
	"github.com/ingenium-notes/ingenium/pkg/cmd/root"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(logLevel()).
		With().Timestamp().Logger()

	ctx := context.Background()
	s, err := state.NewState(ctx, log)
	if err != nil {
		return err
	}
	defer s.Close(ctx)

	cmd, err := root.NewCmdRoot(s)
	if err != nil {
		return err
	}
	return cmd.ExecuteContext(ctx)
}

// logLevel peeks at the arguments because the logger has to exist before
// cobra parses the flag set.
func logLevel() zerolog.Level {
	for _, arg := range os.Args[1:] {
		if arg == "--verbose" || arg == "-v" {
			return zerolog.DebugLevel
		}
	}
	if os.Getenv("INGENIUM_DEBUG") != "" {
		return zerolog.DebugLevel
	}
	return zerolog.WarnLevel
}
