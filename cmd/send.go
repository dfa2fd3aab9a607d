package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/smazurov/panelnode/internal/logging"
	"github.com/smazurov/panelnode/internal/ports"
	"github.com/smazurov/panelnode/internal/transport"
)

// CreateSendCmd sends one raw frame to the panel, useful for bench
// testing LEDs without running the daemon.
func CreateSendCmd() *cobra.Command {
	var (
		port string
		baud int
		wait time.Duration
	)

	sendCmd := &cobra.Command{
		Use:   "send <frame>",
		Short: "Send a raw frame to the panel (e.g. 'LED|3|BLINK|180')",
		Args:  cobra.MinimumNArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			logger := logging.GetLogger("send")

			resolved, err := ports.Detect(port, logger)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				os.Exit(1)
			}

			tr := transport.NewSerial(transport.SerialConfig{
				Port: resolved,
				Baud: baud,
			}, logger, nil)
			defer tr.Close()

			frame := strings.Join(args, " ")
			if err := tr.SendLine(frame); err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				os.Exit(1)
			}
			fmt.Printf("Sent: %s\n", frame)

			if wait <= 0 {
				return
			}

			// Echo panel responses for the wait window.
			deadline := time.Now().Add(wait)
			for time.Now().Before(deadline) {
				line, err := tr.ReadLine()
				if errors.Is(err, io.EOF) {
					return
				}
				if line != "" {
					fmt.Printf("Received: %s\n", line)
				}
			}
		},
	}

	sendCmd.Flags().StringVarP(&port, "port", "p", "", "Serial port (autodetected when empty)")
	sendCmd.Flags().IntVarP(&baud, "baud", "b", 115200, "Baud rate")
	sendCmd.Flags().DurationVarP(&wait, "wait", "w", 0, "How long to echo panel responses after sending")

	return sendCmd
}
