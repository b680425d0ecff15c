// cmd/weather-node/main.go
package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/tamzrod/weather-node/internal/node"
)

// Set at build time: go build -ldflags "-X main.version=1.2.3"
var version = "dev"

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "weather-node",
		Short:         "Environmental telemetry node: sample, encode, uplink, idle.",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	root.AddCommand(newRunCommand())
	root.AddCommand(newDecodeCommand())
	root.AddCommand(newVersionCommand())
	return root
}

func main() {
	err := newRootCommand().Execute()
	os.Exit(node.ExitCode(err))
}
