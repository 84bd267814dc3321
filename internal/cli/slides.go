package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/novaera/showcase/carousel"
)

func newSlidesCmd(_ *app) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "slides",
		Short: "List the slides of the carousel",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			slides := carousel.DefaultSlides()
			out := cmd.OutOrStdout()

			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")

				return enc.Encode(slides)
			}

			for i, s := range slides {
				fmt.Fprintf(out, "%d  %s\n   %s\n   %s\n",
					i, s.Title, s.Description, s.ImageRef)
			}

			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print the slides as JSON")

	return cmd
}
