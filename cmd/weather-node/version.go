// cmd/weather-node/version.go
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tamzrod/weather-node/internal/packet"
)

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Prints the build version and packet protocol version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintf(cmd.OutOrStdout(), "Version: %s\nPacket protocol: v%d (%d bytes)\n",
				version, packet.Version, packet.Size)
			return nil
		},
	}
}
