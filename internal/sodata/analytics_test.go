package sodata

import (
	"reflect"
	"testing"

	"github.com/dikaipan/rocdashboard-sub001/internal/models"
)

func sampleOrders() []models.ServiceOrder {
	return []models.ServiceOrder{
		{SONumber: "SO-1", Month: "apr", EngineerID: "IDH00001", EngineerName: "Budi", Customer: "Bank Sejahtera", WSID: "WS1", Status: "Completed"},
		{SONumber: "SO-2", Month: "apr", EngineerID: "IDH00001", EngineerName: "Budi", Customer: "Bank Sejahtera", WSID: "WS2", Status: "Open"},
		{SONumber: "SO-3", Month: "apr", EngineerID: "IDH00002", EngineerName: "Sari", Customer: "Toko Makmur", WSID: "WS3", Status: "cancel"},
		{SONumber: "SO-4", Month: "may", EngineerID: "IDH00002", EngineerName: "Sari", Customer: "Bank Sejahtera", WSID: "WS1", Status: "complete"},
		{SONumber: "SO-5", Month: "jun", EngineerID: "IDH00003", EngineerName: "Andi", Customer: "Toko Makmur", WSID: "WS4", Status: "Completed"},
	}
}

func TestNormalizeMonths(t *testing.T) {
	if got := NormalizeMonths(""); len(got) != 6 || got[0] != "apr" || got[5] != "sep" {
		t.Fatalf("empty filter should select the full window, got %v", got)
	}
	if got := NormalizeMonths("may, APR"); !reflect.DeepEqual(got, []string{"apr", "may"}) {
		t.Fatalf("filter should be normalized and reordered, got %v", got)
	}
	if got := NormalizeMonths("jan,feb"); len(got) != 6 {
		t.Fatalf("fully invalid filter should fall back to the full window, got %v", got)
	}
}

func TestFilterByMonths(t *testing.T) {
	got := FilterByMonths(sampleOrders(), []string{"apr"})
	if len(got) != 3 {
		t.Fatalf("expected 3 april orders, got %d", len(got))
	}
	for _, o := range got {
		if o.Month != "apr" {
			t.Fatalf("leaked order from %s", o.Month)
		}
	}
}

func TestSummarize(t *testing.T) {
	res := Summarize(sampleOrders(), NormalizeMonths(""))

	if len(res.Points) != 6 {
		t.Fatalf("expected a point per month, got %d", len(res.Points))
	}
	apr := res.Points[0]
	if apr.Month != "apr" || apr.TotalOrders != 3 || apr.Completed != 1 || apr.Open != 1 || apr.Cancelled != 1 {
		t.Fatalf("unexpected april point %+v", apr)
	}
	if apr.UniqueCustomers != 2 || apr.UniqueEngineers != 2 {
		t.Fatalf("unexpected april uniques %+v", apr)
	}

	// months without data still chart as zero
	sep := res.Points[5]
	if sep.Month != "sep" || sep.TotalOrders != 0 {
		t.Fatalf("unexpected september point %+v", sep)
	}

	if res.GrandTotals.TotalOrders != 5 || res.GrandTotals.Completed != 3 {
		t.Fatalf("unexpected totals %+v", res.GrandTotals)
	}
	if res.GrandTotals.UniqueCustomers != 2 || res.GrandTotals.UniqueEngineers != 3 {
		t.Fatalf("unexpected unique totals %+v", res.GrandTotals)
	}
}

func TestSummarizeRespectsFilter(t *testing.T) {
	res := Summarize(sampleOrders(), []string{"may"})
	if len(res.Points) != 1 || res.Points[0].TotalOrders != 1 {
		t.Fatalf("unexpected filtered summary %+v", res.Points)
	}
	if res.GrandTotals.TotalOrders != 1 {
		t.Fatalf("totals must respect the filter, got %+v", res.GrandTotals)
	}
}

func TestCustomerIntelligence(t *testing.T) {
	profiles := CustomerIntelligence(sampleOrders())
	if len(profiles) != 2 {
		t.Fatalf("expected 2 customers, got %d", len(profiles))
	}

	top := profiles[0]
	if top.Customer != "Bank Sejahtera" || top.TotalOrders != 3 {
		t.Fatalf("unexpected top customer %+v", top)
	}
	if top.UniqueMachines != 2 || top.UniqueEngineers != 2 {
		t.Fatalf("unexpected uniques %+v", top)
	}
	if !reflect.DeepEqual(top.ActiveMonths, []string{"apr", "may"}) {
		t.Fatalf("unexpected active months %v", top.ActiveMonths)
	}
}

func TestEngineerCustomerRelationships(t *testing.T) {
	links := EngineerCustomerRelationships(sampleOrders())
	if len(links) != 4 {
		t.Fatalf("expected 4 pairs, got %d", len(links))
	}

	top := links[0]
	if top.EngineerID != "IDH00001" || top.Customer != "Bank Sejahtera" || top.Orders != 2 {
		t.Fatalf("unexpected top pair %+v", top)
	}
	if top.Completed != 1 || top.EngineerName != "Budi" {
		t.Fatalf("unexpected pair detail %+v", top)
	}

	// ties break by engineer id then customer
	if links[1].Orders != 1 {
		t.Fatalf("unexpected ordering %+v", links)
	}
}
