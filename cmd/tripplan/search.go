package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"multi-city-planner/internal/catalog"
	"multi-city-planner/internal/models"
	"multi-city-planner/internal/transport"
)

func newSearchCmd(a *app) *cobra.Command {
	var (
		fromArg     string
		toArg       string
		dateArg     string
		modes       []string
		maxPrice    float64
		maxDuration int
		adults      int
		children    int
		infants     int
	)

	cmd := &cobra.Command{
		Use:   "search",
		Short: "Search transport options between two cities",
		RunE: func(cmd *cobra.Command, args []string) error {
			from, ok := catalog.LookupCity(fromArg)
			if !ok {
				return fmt.Errorf("unknown city %q", fromArg)
			}
			to, ok := catalog.LookupCity(toArg)
			if !ok {
				return fmt.Errorf("unknown city %q", toArg)
			}
			date, err := time.Parse(dateLayout, dateArg)
			if err != nil {
				return fmt.Errorf("invalid --date: %w", err)
			}

			req := &transport.SearchRequest{
				From:               &from,
				To:                 &to,
				DepartureDate:      date,
				Travelers:          models.TravelerInfo{Adults: adults, Children: children, Infants: infants},
				MaxDurationMinutes: maxDuration,
			}
			for _, m := range modes {
				mode := models.TransportMode(m)
				if !mode.Valid() {
					return fmt.Errorf("unknown transport mode %q", m)
				}
				req.PreferredModes = append(req.PreferredModes, mode)
			}
			if maxPrice > 0 {
				req.MaxPrice = &models.Money{Amount: maxPrice, Currency: models.ReportingCurrency}
			}

			result, err := a.searcher().Search(cmd.Context(), req)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), result)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&fromArg, "from", "f", "", "Origin city")
	f.StringVarP(&toArg, "to", "t", "", "Destination city")
	f.StringVarP(&dateArg, "date", "d", time.Now().UTC().Format(dateLayout), "Departure date (YYYY-MM-DD)")
	f.StringSliceVar(&modes, "modes", nil, "Transport modes to search")
	f.Float64Var(&maxPrice, "max-price", 0, "Maximum total price in EUR (0 for no limit)")
	f.IntVar(&maxDuration, "max-duration", 0, "Maximum duration in minutes (0 for no limit)")
	f.IntVar(&adults, "adults", 1, "Number of adults")
	f.IntVar(&children, "children", 0, "Number of children")
	f.IntVar(&infants, "infants", 0, "Number of infants")
	_ = cmd.MarkFlagRequired("from")
	_ = cmd.MarkFlagRequired("to")

	return cmd
}

func newCitiesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "cities",
		Short: "List the cities the planner knows about",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, c := range catalog.Cities() {
				fmt.Fprintf(cmd.OutOrStdout(), "%-12s %-16s %s\n", c.ID, c.Name, c.CountryCode)
			}
			return nil
		},
	}
}
