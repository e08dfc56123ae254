package domain

// PlanPrices maps a plan key to its price in paise. The table is static
// configuration, not persisted state.
var PlanPrices = map[string]int64{
	"silver-monthly": 40000,
	"gold-monthly":   100000,
	"silver-yearly":  400000,
	"gold-yearly":    1000000,
}

// PlanAmount returns the price for a plan in paise, or 0 for an unknown
// plan. Callers must treat 0 as an error before contacting the gateway.
func PlanAmount(plan string) int64 {
	return PlanPrices[plan]
}
