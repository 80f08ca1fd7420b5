package main

import (
	"encoding/json"
	"flag"
	"log"
	"os"
	"path/filepath"

	"github.com/dikaipan/rocdashboard-sub001/internal/csvutil"
)

// Converts the dashboard CSV files to JSON arrays for static hosting, one
// output file per dataset.
var conversions = []struct {
	csvFile  string
	jsonFile string
}{
	{"data_mesin.csv", "machines.json"},
	{"data_ce.csv", "engineers.json"},
	{"stok_part.csv", "stock-parts.json"},
	{"alamat_fsl.csv", "fsl-locations.json"},
	{"data_mesin_perbulan.csv", "monthly-machines.json"},
}

func main() {
	in := flag.String("in", "data", "directory of dashboard CSV files")
	out := flag.String("out", filepath.Join("frontend", "public", "api"), "output directory for JSON files")
	flag.Parse()

	if err := os.MkdirAll(*out, 0o755); err != nil {
		log.Fatalf("cannot create output directory: %v", err)
	}

	for _, conv := range conversions {
		src := filepath.Join(*in, conv.csvFile)
		dst := filepath.Join(*out, conv.jsonFile)
		n, err := convert(src, dst)
		if err != nil {
			if os.IsNotExist(err) {
				log.Printf("[WARN] %s not found", src)
				continue
			}
			log.Fatalf("convert %s: %v", src, err)
		}
		log.Printf("converted %s -> %s (%d records)", src, dst, n)
	}
}

// convert writes the CSV rows as a JSON array, mapping empty cells to null
// so the static frontend can tell blank from zero.
func convert(src, dst string) (int, error) {
	data, err := os.ReadFile(src)
	if err != nil {
		return 0, err
	}
	headers, rows, err := csvutil.Decode(data)
	if err != nil {
		return 0, err
	}

	records := make([]map[string]any, 0, len(rows))
	for _, row := range rows {
		rec := make(map[string]any, len(headers))
		for _, h := range headers {
			if row[h] == "" {
				rec[h] = nil
			} else {
				rec[h] = row[h]
			}
		}
		records = append(records, rec)
	}

	out, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return 0, err
	}
	if err := os.WriteFile(dst, out, 0o644); err != nil {
		return 0, err
	}
	return len(records), nil
}
