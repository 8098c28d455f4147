package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"multi-city-planner/internal/catalog"
	"multi-city-planner/internal/models"
	"multi-city-planner/internal/planner"
)

type generateOptions struct {
	cities        []string
	start         string
	end           string
	startCity     string
	endCity       string
	returnToStart bool
	adults        int
	children      int
	infants       int
	minNights     int
	maxNights     int
	modes         []string
	maxLegPrice   float64
	maxLegMinutes int
}

func newGenerateCmd(a *app) *cobra.Command {
	opts := &generateOptions{}

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a multi-city trip and print it as JSON",
		Example: "  tripplan generate --cities Paris,Rome,Barcelona --start 2026-06-01 --end 2026-06-10 --return\n" +
			"  tripplan generate --cities Berlin,Prague,Vienna --start 2026-09-01 --end 2026-09-12 --modes train,bus",
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := opts.request()
			if err != nil {
				return err
			}

			res := a.orchestrator().Generate(cmd.Context(), req)
			if err := printJSON(cmd.OutOrStdout(), res); err != nil {
				return err
			}
			if !res.Success {
				return fmt.Errorf("trip generation failed (%s)", res.Code)
			}
			return nil
		},
	}

	f := cmd.Flags()
	f.StringSliceVarP(&opts.cities, "cities", "c", nil, "Cities to visit, by name or id")
	f.StringVar(&opts.start, "start", "", "First day of the trip (YYYY-MM-DD)")
	f.StringVar(&opts.end, "end", "", "Last day of the trip (YYYY-MM-DD)")
	f.StringVar(&opts.startCity, "start-city", "", "City to start from (defaults to the first listed)")
	f.StringVar(&opts.endCity, "end-city", "", "City to finish in")
	f.BoolVar(&opts.returnToStart, "return", false, "Return to the start city at the end")
	f.IntVar(&opts.adults, "adults", 1, "Number of adults")
	f.IntVar(&opts.children, "children", 0, "Number of children")
	f.IntVar(&opts.infants, "infants", 0, "Number of infants")
	f.IntVar(&opts.minNights, "min-nights", models.DefaultMinNightsPerCity, "Minimum nights per city")
	f.IntVar(&opts.maxNights, "max-nights", models.DefaultMaxNightsPerCity, "Maximum nights per city")
	f.StringSliceVar(&opts.modes, "modes", nil, "Preferred transport modes (flight, train, bus, ferry, car_rental, private_transfer)")
	f.Float64Var(&opts.maxLegPrice, "max-leg-price", 0, "Maximum price per leg in EUR (0 for no limit)")
	f.IntVar(&opts.maxLegMinutes, "max-leg-minutes", 0, "Maximum duration per leg in minutes (0 for no limit)")
	_ = cmd.MarkFlagRequired("cities")
	_ = cmd.MarkFlagRequired("start")
	_ = cmd.MarkFlagRequired("end")

	return cmd
}

func (o *generateOptions) request() (*planner.GenerateRequest, error) {
	cities := make([]models.CityDestination, 0, len(o.cities))
	for _, name := range o.cities {
		city, ok := catalog.LookupCity(name)
		if !ok {
			return nil, fmt.Errorf("unknown city %q", name)
		}
		cities = append(cities, city)
	}

	start, err := time.Parse(dateLayout, o.start)
	if err != nil {
		return nil, fmt.Errorf("invalid --start: %w", err)
	}
	end, err := time.Parse(dateLayout, o.end)
	if err != nil {
		return nil, fmt.Errorf("invalid --end: %w", err)
	}

	req := &planner.GenerateRequest{
		Cities:        cities,
		StartDate:     start,
		EndDate:       end,
		ReturnToStart: o.returnToStart,
		Travelers: models.TravelerInfo{
			Adults:   o.adults,
			Children: o.children,
			Infants:  o.infants,
		},
		Preferences: models.TripPreferences{
			MinNightsPerCity:      o.minNights,
			MaxNightsPerCity:      o.maxNights,
			MaxLegDurationMinutes: o.maxLegMinutes,
		},
	}
	for _, m := range o.modes {
		req.Preferences.PreferredTransport = append(req.Preferences.PreferredTransport, models.TransportMode(m))
	}
	if o.maxLegPrice > 0 {
		req.Preferences.MaxLegPrice = &models.Money{Amount: o.maxLegPrice, Currency: models.ReportingCurrency}
	}

	if o.startCity != "" {
		id, ok := catalog.Resolve(o.startCity)
		if !ok {
			return nil, fmt.Errorf("unknown city %q", o.startCity)
		}
		req.StartCityID = id
	}
	if o.endCity != "" {
		id, ok := catalog.Resolve(o.endCity)
		if !ok {
			return nil, fmt.Errorf("unknown city %q", o.endCity)
		}
		req.EndCityID = id
	}
	return req, nil
}
