// Package cmd holds the bench subcommands: port detection, raw frame
// sending, and self-update.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/smazurov/panelnode/internal/logging"
	"github.com/smazurov/panelnode/internal/ports"
)

// CreateDetectCmd lists serial ports and shows which one would be picked.
func CreateDetectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "detect",
		Short: "List serial ports and show the autodetected panel port",
		Run: func(cmd *cobra.Command, args []string) {
			candidates, err := ports.List()
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				os.Exit(1)
			}

			if len(candidates) == 0 {
				fmt.Println("No serial ports found")
				os.Exit(1)
			}

			for _, c := range candidates {
				marker := " "
				if ports.Preferred(c) {
					marker = "*"
				}
				if c.IsUSB {
					fmt.Printf("%s %-20s %s [%s:%s]\n", marker, c.Name, c.Description, c.VID, c.PID)
				} else {
					fmt.Printf("%s %-20s\n", marker, c.Name)
				}
			}

			port, err := ports.Detect("", logging.GetLogger("detect"))
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				os.Exit(1)
			}
			fmt.Printf("\nWould use: %s\n", port)
		},
	}
}
