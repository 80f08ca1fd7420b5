package uploads

import (
	"errors"
	"testing"

	"github.com/dikaipan/rocdashboard-sub001/internal/csvutil"
)

func TestValidTarget(t *testing.T) {
	for _, target := range []string{TargetEngineers, TargetMachines, TargetStockParts, TargetSO} {
		if !ValidTarget(target) {
			t.Errorf("ValidTarget(%q) = false, want true", target)
		}
	}
	if ValidTarget("tools") {
		t.Error(`ValidTarget("tools") = true, want false`)
	}
}

func TestAcceptRow(t *testing.T) {
	cases := []struct {
		target string
		row    csvutil.Row
		want   bool
	}{
		{TargetEngineers, csvutil.Row{"id": "IDH00001", "name": "Budi"}, true},
		{TargetEngineers, csvutil.Row{"id": "IDH00001", "name": "  "}, false},
		{TargetMachines, csvutil.Row{"wsid": "WS001", "branch_name": "KCP Sudirman"}, true},
		{TargetMachines, csvutil.Row{"wsid": "", "branch_name": "KCP Sudirman"}, false},
		{TargetStockParts, csvutil.Row{"part_number": "PN1", "part_name": "Roller"}, true},
		{TargetStockParts, csvutil.Row{"part_number": "PN1"}, false},
		{TargetSO, csvutil.Row{"so_number": "SO123", "month": "apr"}, true},
		{TargetSO, csvutil.Row{"so_number": "SO123"}, false},
		{"unknown", csvutil.Row{"id": "IDH00001", "name": "Budi"}, false},
	}
	for _, tc := range cases {
		if got := AcceptRow(tc.target, tc.row); got != tc.want {
			t.Errorf("AcceptRow(%q, %v) = %v, want %v", tc.target, tc.row, got, tc.want)
		}
	}
}

func TestEngineerFromRow(t *testing.T) {
	e := engineerFromRow(csvutil.Row{
		"id":               "idh00042",
		"name":             "Budi Santoso",
		"region":           "Jawa Barat",
		"years_experience": "7.5",
		"latitude":         "-6.2",
		"longitude":        "106.8",
	})
	if e.ID != "IDH00042" {
		t.Errorf("ID = %q, want IDH00042", e.ID)
	}
	if e.YearsExperience != 7.5 {
		t.Errorf("YearsExperience = %v, want 7.5", e.YearsExperience)
	}
	if e.Latitude != -6.2 || e.Longitude != 106.8 {
		t.Errorf("coordinates = (%v, %v), want (-6.2, 106.8)", e.Latitude, e.Longitude)
	}
}

func TestMachineFromRow(t *testing.T) {
	m := machineFromRow(csvutil.Row{
		"wsid":         "WS010",
		"branch_name":  "KCP Asia Afrika",
		"install_year": "2021.0",
	})
	if m.WSID != "WS010" {
		t.Errorf("WSID = %q, want WS010", m.WSID)
	}
	if m.InstallYear != 2021 {
		t.Errorf("InstallYear = %d, want 2021", m.InstallYear)
	}
}

func TestStockPartFromRow(t *testing.T) {
	p := stockPartFromRow(csvutil.Row{
		"part_number":   "PN-100",
		"part_name":     "Pick Roller",
		"type_of_part":  "consumable",
		"top20_usage":   "yes",
		"idfsl_jakarta": "3",
		"idccw_bandung": "2.0",
		"remark":        "ignored",
	})
	if p.PartNumber != "PN-100" {
		t.Errorf("PartNumber = %q, want PN-100", p.PartNumber)
	}
	if !p.Top20Usage {
		t.Error("Top20Usage = false, want true")
	}
	if got := p.Locations["idfsl_jakarta"]; got != 3 {
		t.Errorf("idfsl_jakarta = %v, want 3", got)
	}
	if got := p.Locations["idccw_bandung"]; got != 2 {
		t.Errorf("idccw_bandung = %v, want 2", got)
	}
	if _, ok := p.Locations["remark"]; ok {
		t.Error("remark collected as a location column")
	}
	if p.GrandTotal != 5 {
		t.Errorf("GrandTotal = %d, want 5", p.GrandTotal)
	}
}

func TestServiceOrderFromRow(t *testing.T) {
	so := serviceOrderFromRow(csvutil.Row{
		"so_number":     "SO-2024-001",
		"month":         "April",
		"engineer_id":   "idh00007",
		"engineer_name": "Siti",
		"status":        "Completed",
	})
	if so.Month != "apr" {
		t.Errorf("Month = %q, want apr", so.Month)
	}
	if so.EngineerID != "IDH00007" {
		t.Errorf("EngineerID = %q, want IDH00007", so.EngineerID)
	}
	if so.Status != "Completed" {
		t.Errorf("Status = %q, want Completed", so.Status)
	}
}

func TestImportRejectsUnparseableCSV(t *testing.T) {
	_, err := Import(nil, TargetEngineers, []byte("  \n\n"))
	if !errors.Is(err, ErrBadCSV) {
		t.Fatalf("err = %v, want ErrBadCSV", err)
	}
}
