package sodata

import (
	"sort"
	"strings"

	"github.com/dikaipan/rocdashboard-sub001/internal/models"
)

// monthOrder is the reporting window of the service-order export.
var monthOrder = []string{"apr", "may", "jun", "jul", "aug", "sep"}

// NormalizeMonths parses the months query filter ("apr,may") into the
// canonical ordered subset. Unknown names are dropped; an empty or fully
// invalid filter selects every month.
func NormalizeMonths(filter string) []string {
	if strings.TrimSpace(filter) == "" {
		return append([]string(nil), monthOrder...)
	}
	wanted := make(map[string]bool)
	for _, part := range strings.Split(filter, ",") {
		wanted[strings.ToLower(strings.TrimSpace(part))] = true
	}
	out := make([]string, 0, len(monthOrder))
	for _, m := range monthOrder {
		if wanted[m] {
			out = append(out, m)
		}
	}
	if len(out) == 0 {
		return append([]string(nil), monthOrder...)
	}
	return out
}

// FilterByMonths keeps the orders belonging to the selected months.
func FilterByMonths(orders []models.ServiceOrder, months []string) []models.ServiceOrder {
	keep := make(map[string]bool, len(months))
	for _, m := range months {
		keep[m] = true
	}
	out := make([]models.ServiceOrder, 0, len(orders))
	for _, o := range orders {
		if keep[strings.ToLower(o.Month)] {
			out = append(out, o)
		}
	}
	return out
}

func statusBucket(status string) string {
	switch strings.ToLower(strings.TrimSpace(status)) {
	case "completed", "complete", "closed", "done":
		return "completed"
	case "cancelled", "canceled", "cancel":
		return "cancelled"
	default:
		return "open"
	}
}

type MonthSummary struct {
	Month           string `json:"month"`
	TotalOrders     int    `json:"total_orders"`
	Completed       int    `json:"completed"`
	Open            int    `json:"open"`
	Cancelled       int    `json:"cancelled"`
	UniqueCustomers int    `json:"unique_customers"`
	UniqueEngineers int    `json:"unique_engineers"`
}

type SummaryTotals struct {
	TotalOrders     int `json:"total_orders"`
	Completed       int `json:"completed"`
	Open            int `json:"open"`
	Cancelled       int `json:"cancelled"`
	UniqueCustomers int `json:"unique_customers"`
	UniqueEngineers int `json:"unique_engineers"`
}

type SummaryResponse struct {
	Months      []string       `json:"months"`
	Points      []MonthSummary `json:"points"`
	GrandTotals SummaryTotals  `json:"grand_totals"`
}

// Summarize aggregates orders per month for the KPI cards and the monthly
// chart. Months without orders still produce a zero point so the chart
// axis stays complete.
func Summarize(orders []models.ServiceOrder, months []string) SummaryResponse {
	type agg struct {
		MonthSummary
		customers map[string]bool
		engineers map[string]bool
	}

	buckets := make(map[string]*agg, len(months))
	for _, m := range months {
		buckets[m] = &agg{
			MonthSummary: MonthSummary{Month: m},
			customers:    make(map[string]bool),
			engineers:    make(map[string]bool),
		}
	}

	allCustomers := make(map[string]bool)
	allEngineers := make(map[string]bool)
	totals := SummaryTotals{}

	for _, o := range orders {
		b, ok := buckets[strings.ToLower(o.Month)]
		if !ok {
			continue
		}
		b.TotalOrders++
		totals.TotalOrders++
		switch statusBucket(o.Status) {
		case "completed":
			b.Completed++
			totals.Completed++
		case "cancelled":
			b.Cancelled++
			totals.Cancelled++
		default:
			b.Open++
			totals.Open++
		}
		if cust := strings.TrimSpace(o.Customer); cust != "" {
			b.customers[cust] = true
			allCustomers[cust] = true
		}
		if eng := strings.TrimSpace(o.EngineerID); eng != "" {
			b.engineers[eng] = true
			allEngineers[eng] = true
		}
	}

	points := make([]MonthSummary, 0, len(months))
	for _, m := range months {
		b := buckets[m]
		b.UniqueCustomers = len(b.customers)
		b.UniqueEngineers = len(b.engineers)
		points = append(points, b.MonthSummary)
	}
	totals.UniqueCustomers = len(allCustomers)
	totals.UniqueEngineers = len(allEngineers)

	return SummaryResponse{Months: months, Points: points, GrandTotals: totals}
}

type CustomerProfile struct {
	Customer        string   `json:"customer"`
	TotalOrders     int      `json:"total_orders"`
	Completed       int      `json:"completed"`
	Cancelled       int      `json:"cancelled"`
	UniqueMachines  int      `json:"unique_machines"`
	UniqueEngineers int      `json:"unique_engineers"`
	ActiveMonths    []string `json:"active_months"`
}

// CustomerIntelligence profiles every customer across the whole window,
// ordered by order volume. Drives the customer drill-down table.
func CustomerIntelligence(orders []models.ServiceOrder) []CustomerProfile {
	type agg struct {
		CustomerProfile
		machines  map[string]bool
		engineers map[string]bool
		months    map[string]bool
	}

	byCustomer := make(map[string]*agg)
	for _, o := range orders {
		cust := strings.TrimSpace(o.Customer)
		if cust == "" {
			continue
		}
		b, ok := byCustomer[cust]
		if !ok {
			b = &agg{
				CustomerProfile: CustomerProfile{Customer: cust},
				machines:        make(map[string]bool),
				engineers:       make(map[string]bool),
				months:          make(map[string]bool),
			}
			byCustomer[cust] = b
		}
		b.TotalOrders++
		switch statusBucket(o.Status) {
		case "completed":
			b.Completed++
		case "cancelled":
			b.Cancelled++
		}
		if wsid := strings.TrimSpace(o.WSID); wsid != "" {
			b.machines[wsid] = true
		}
		if eng := strings.TrimSpace(o.EngineerID); eng != "" {
			b.engineers[eng] = true
		}
		b.months[strings.ToLower(o.Month)] = true
	}

	profiles := make([]CustomerProfile, 0, len(byCustomer))
	for _, b := range byCustomer {
		b.UniqueMachines = len(b.machines)
		b.UniqueEngineers = len(b.engineers)
		for _, m := range monthOrder {
			if b.months[m] {
				b.ActiveMonths = append(b.ActiveMonths, m)
			}
		}
		profiles = append(profiles, b.CustomerProfile)
	}

	sort.Slice(profiles, func(i, j int) bool {
		if profiles[i].TotalOrders != profiles[j].TotalOrders {
			return profiles[i].TotalOrders > profiles[j].TotalOrders
		}
		return profiles[i].Customer < profiles[j].Customer
	})
	return profiles
}

type EngineerCustomerLink struct {
	EngineerID   string `json:"engineer_id"`
	EngineerName string `json:"engineer_name"`
	Customer     string `json:"customer"`
	Orders       int    `json:"orders"`
	Completed    int    `json:"completed"`
}

// EngineerCustomerRelationships counts orders per engineer/customer pair,
// ordered by volume. Feeds the relationship matrix view.
func EngineerCustomerRelationships(orders []models.ServiceOrder) []EngineerCustomerLink {
	type key struct{ engineer, customer string }

	byPair := make(map[key]*EngineerCustomerLink)
	for _, o := range orders {
		eng := strings.TrimSpace(o.EngineerID)
		cust := strings.TrimSpace(o.Customer)
		if eng == "" || cust == "" {
			continue
		}
		k := key{eng, cust}
		link, ok := byPair[k]
		if !ok {
			link = &EngineerCustomerLink{
				EngineerID:   eng,
				EngineerName: strings.TrimSpace(o.EngineerName),
				Customer:     cust,
			}
			byPair[k] = link
		}
		link.Orders++
		if statusBucket(o.Status) == "completed" {
			link.Completed++
		}
		if link.EngineerName == "" {
			link.EngineerName = strings.TrimSpace(o.EngineerName)
		}
	}

	links := make([]EngineerCustomerLink, 0, len(byPair))
	for _, link := range byPair {
		links = append(links, *link)
	}
	sort.Slice(links, func(i, j int) bool {
		if links[i].Orders != links[j].Orders {
			return links[i].Orders > links[j].Orders
		}
		if links[i].EngineerID != links[j].EngineerID {
			return links[i].EngineerID < links[j].EngineerID
		}
		return links[i].Customer < links[j].Customer
	})
	return links
}
