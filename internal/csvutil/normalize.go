package csvutil

import (
	"fmt"
	"strings"
)

// header aliases seen across the legacy spreadsheets. Keys are already
// normalized; values are the canonical column names the importers expect.
var headerAliases = map[string]string{
	"id_engineer":      "id",
	"nama":             "name",
	"nama_ce":          "name",
	"ws_id":            "wsid",
	"id_mesin":         "wsid",
	"branch":           "branch_name",
	"nama_cabang":      "branch_name",
	"part_no":          "part_number",
	"partnumber":       "part_number",
	"nama_part":        "part_name",
	"so":               "so_number",
	"no_so":            "so_number",
	"bulan":            "month",
	"id_fsl":           "fsl_id",
	"fsl":              "fsl_name",
	"kota":             "fsl_city",
	"city":             "fsl_city",
	"tipe_mesin":       "machine_type",
	"status_mesin":     "machine_status",
	"top_20_usage":     "top20_usage",
	"tahun_pemasangan": "install_year",
}

// NormalizeHeader lowercases a raw header cell and rewrites separators to
// underscores, the way the legacy spreadsheets were cleaned before use.
// Blank headers become unnamed_<index> so positional columns stay
// addressable. Known aliases collapse to one canonical name.
func NormalizeHeader(raw string, index int) string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return fmt.Sprintf("unnamed_%d", index)
	}

	s = strings.ToLower(s)
	var b strings.Builder
	lastUnderscore := false
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastUnderscore = false
		default:
			if !lastUnderscore && b.Len() > 0 {
				b.WriteByte('_')
				lastUnderscore = true
			}
		}
	}
	s = strings.TrimSuffix(b.String(), "_")
	if s == "" {
		return fmt.Sprintf("unnamed_%d", index)
	}
	if canonical, ok := headerAliases[s]; ok {
		return canonical
	}
	return s
}

// NormalizeHeaders maps NormalizeHeader over a full header row.
func NormalizeHeaders(raw []string) []string {
	out := make([]string, len(raw))
	for i, h := range raw {
		out[i] = NormalizeHeader(h, i)
	}
	return out
}
