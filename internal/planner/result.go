package planner

import "multi-city-planner/internal/models"

// Result is the envelope every orchestrator operation returns. A failed
// operation carries Error and Code; a successful one may still carry
// warnings about placeholder legs or schedule overruns.
type Result struct {
	Success  bool                  `json:"success"`
	Trip     *models.MultiCityTrip `json:"trip,omitempty"`
	Error    string                `json:"error,omitempty"`
	Code     string                `json:"code,omitempty"`
	Warnings []string              `json:"warnings,omitempty"`
}

func success(trip *models.MultiCityTrip, warnings []string) *Result {
	return &Result{Success: true, Trip: trip, Warnings: warnings}
}

func failure(err error, warnings []string) *Result {
	return &Result{Success: false, Error: err.Error(), Code: codeFor(err), Warnings: warnings}
}
