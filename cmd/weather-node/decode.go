// cmd/weather-node/decode.go
package main

import (
	"encoding/hex"
	"fmt"
	"io"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/tamzrod/weather-node/internal/packet"
)

// newDecodeCommand is the base-station side helper: it turns a captured
// frame back into fields.
func newDecodeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "decode <hex>",
		Short: "Decodes a captured weather packet given as hex",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return decodeHex(cmd.OutOrStdout(), args[0])
		},
	}
}

func decodeHex(w io.Writer, s string) error {
	clean := strings.NewReplacer(" ", "", ":", "", "\n", "").Replace(strings.TrimPrefix(s, "0x"))
	raw, err := hex.DecodeString(clean)
	if err != nil {
		return errors.Wrap(err, "decode: bad hex")
	}

	p, err := packet.Decode(raw)
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "node        %d\n", p.NodeID)
	fmt.Fprintf(w, "packetnum   %d\n", p.PacketNum)
	fmt.Fprintf(w, "temp_c      %.2f\n", p.TempC)
	fmt.Fprintf(w, "press_pa    %.1f\n", p.PressPa)
	fmt.Fprintf(w, "hum         %.2f\n", p.Hum)
	fmt.Fprintf(w, "co2_ppm     %.0f\n", p.CO2ppm)
	fmt.Fprintf(w, "tvoc_ppb    %.0f\n", p.TVOCppb)
	fmt.Fprintf(w, "count       %d\n", p.Count)
	fmt.Fprintf(w, "deviceinfo  %s (%s)\n", p.DeviceInfo.Binary(), p.DeviceInfo)
	return nil
}
