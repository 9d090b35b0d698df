package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dishoutapp/dishout/internal/analysis"
	"github.com/dishoutapp/dishout/internal/location"
	"github.com/dishoutapp/dishout/internal/phone"
)

func newAnalyzeCommand(deps Dependencies) *cobra.Command {
	var (
		query     string
		imagePath string
		lat       float64
		lng       float64
	)

	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Identify a dish from a photo or a text query and list places serving it.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if query == "" && imagePath == "" {
				return fmt.Errorf("provide --query or --image")
			}

			var loc *location.Coordinate
			if cmd.Flags().Changed("lat") && cmd.Flags().Changed("lng") {
				loc = &location.Coordinate{Latitude: lat, Longitude: lng}
			}

			session := deps.Analysis.CreateSession()

			var snap analysis.Snapshot
			var err error
			if imagePath != "" {
				data, readErr := os.ReadFile(imagePath)
				if readErr != nil {
					return fmt.Errorf("reading image: %w", readErr)
				}
				snap, err = deps.Analysis.AnalyzeImage(cmd.Context(), session.ID, data, loc)
			} else {
				snap, err = deps.Analysis.AnalyzeQuery(cmd.Context(), session.ID, query, loc)
			}
			if err != nil {
				return err
			}

			if snap.State == analysis.StateError {
				return fmt.Errorf("%s", snap.ErrorMessage)
			}

			renderResult(cmd, snap)
			return nil
		},
	}

	cmd.Flags().StringVar(&query, "query", "", "Dish to search for, e.g. \"chicken shawarma\".")
	cmd.Flags().StringVar(&imagePath, "image", "", "Path to a dish photo.")
	cmd.Flags().Float64Var(&lat, "lat", 0, "Latitude to bias the search towards.")
	cmd.Flags().Float64Var(&lng, "lng", 0, "Longitude to bias the search towards.")

	return cmd
}

func renderResult(cmd *cobra.Command, snap analysis.Snapshot) {
	out := cmd.OutOrStdout()

	_, _ = fmt.Fprintln(out, snap.Result.DishName)
	if snap.Result.Description != "" {
		_, _ = fmt.Fprintln(out)
		_, _ = fmt.Fprintln(out, snap.Result.Description)
	}

	if len(snap.Result.Places) == 0 {
		return
	}

	_, _ = fmt.Fprintln(out)
	_, _ = fmt.Fprintln(out, "Places:")
	for _, place := range snap.Result.Places {
		_, _ = fmt.Fprintf(out, "  %s\n", place.Title)
		if place.PhoneNumber != "" {
			normalized := phone.Normalize(place.PhoneNumber, phone.DefaultPlan())
			_, _ = fmt.Fprintf(out, "    phone: %s\n", normalized)
		}
		if place.MapURI != "" {
			_, _ = fmt.Fprintf(out, "    map:   %s\n", place.MapURI)
		}
	}
}
