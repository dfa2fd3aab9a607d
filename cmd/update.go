package cmd

import (
	"fmt"
	"os"

	"github.com/creativeprojects/go-selfupdate"
	"github.com/spf13/cobra"

	"github.com/smazurov/panelnode/internal/version"
)

const updateRepository = "smazurov/panelnode"

// CreateUpdateCmd updates the binary in place from the latest GitHub
// release.
func CreateUpdateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "update",
		Short: "Update to the latest released version",
		Run: func(cmd *cobra.Command, args []string) {
			release, err := selfupdate.UpdateSelf(cmd.Context(), version.String(), selfupdate.ParseSlug(updateRepository))
			if err != nil {
				fmt.Fprintf(os.Stderr, "Update failed: %v\n", err)
				os.Exit(1)
			}

			if release.Version() == version.String() {
				fmt.Printf("Already up to date (%s)\n", version.String())
				return
			}
			fmt.Printf("Updated to %s\n", release.Version())
		},
	}
}
