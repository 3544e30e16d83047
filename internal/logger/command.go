package logger

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

// errUnknownLogLevel is returned for --log-level values ParseLogLevel rejects.
var errUnknownLogLevel = errors.New("unknown log level")

// AttachCobraLogLevelFlag adds a persistent --log-level flag to root and
// applies it to the global logger before any command runs.
func AttachCobraLogLevelFlag(root *cobra.Command) {
	var value string

	root.PersistentFlags().StringVar(&value, "log-level", "info", "log level: debug, info, warn, error")

	previous := root.PersistentPreRunE
	root.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		level, ok := ParseLogLevel(value)
		if !ok {
			return fmt.Errorf("%w: %q", errUnknownLogLevel, value)
		}

		SetLevel(level)

		if previous != nil {
			return previous(cmd, args)
		}

		return nil
	}
}
