package dto

import "github.com/shopspring/decimal"

// DashboardSummaryDTO resumen de la pantalla de inicio para un año.
type DashboardSummaryDTO struct {
	Year             int             `json:"year"`
	Locations        int             `json:"locations"`
	MasterItems      int             `json:"master_items"`
	Censuses         int             `json:"censuses"`
	OpenCensuses     int             `json:"open_censuses"`
	StaleCensuses    int             `json:"stale_censuses"`
	PendingLocations int             `json:"pending_locations"` // ubicaciones sin censo en el año
	GrandTotal       decimal.Decimal `json:"grand_total"`
	AvailableYears   []int           `json:"available_years"`
}
