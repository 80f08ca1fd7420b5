package geo

import "strings"

// City is one entry of the static coordinate table used to place FSL
// locations on the map. Coordinates are city centroids.
type City struct {
	Name     string
	Province string
	Lat      float64
	Lon      float64
}

var cities = map[string]City{
	"jakarta":        {"Jakarta", "DKI Jakarta", -6.2088, 106.8456},
	"surabaya":       {"Surabaya", "Jawa Timur", -7.2575, 112.7521},
	"bandung":        {"Bandung", "Jawa Barat", -6.9175, 107.6191},
	"medan":          {"Medan", "Sumatera Utara", 3.5952, 98.6722},
	"semarang":       {"Semarang", "Jawa Tengah", -6.9667, 110.4167},
	"makassar":       {"Makassar", "Sulawesi Selatan", -5.1477, 119.4327},
	"palembang":      {"Palembang", "Sumatera Selatan", -2.9761, 104.7754},
	"pekanbaru":      {"Pekanbaru", "Riau", 0.5071, 101.4478},
	"balikpapan":     {"Balikpapan", "Kalimantan Timur", -1.2379, 116.8529},
	"banjarmasin":    {"Banjarmasin", "Kalimantan Selatan", -3.3186, 114.5944},
	"denpasar":       {"Denpasar", "Bali", -8.6705, 115.2126},
	"yogyakarta":     {"Yogyakarta", "DI Yogyakarta", -7.7956, 110.3695},
	"malang":         {"Malang", "Jawa Timur", -7.9666, 112.6326},
	"manado":         {"Manado", "Sulawesi Utara", 1.4748, 124.8421},
	"pontianak":      {"Pontianak", "Kalimantan Barat", -0.0263, 109.3425},
	"samarinda":      {"Samarinda", "Kalimantan Timur", -0.5022, 117.1536},
	"batam":          {"Batam", "Kepulauan Riau", 1.0456, 104.0305},
	"padang":         {"Padang", "Sumatera Barat", -0.9471, 100.4172},
	"bandar lampung": {"Bandar Lampung", "Lampung", -5.3971, 105.2668},
	"cirebon":        {"Cirebon", "Jawa Barat", -6.7320, 108.5523},
	"surakarta":      {"Surakarta", "Jawa Tengah", -7.5755, 110.8243},
	"solo":           {"Surakarta", "Jawa Tengah", -7.5755, 110.8243},
	"bogor":          {"Bogor", "Jawa Barat", -6.5971, 106.8060},
	"bekasi":         {"Bekasi", "Jawa Barat", -6.2383, 106.9756},
	"tangerang":      {"Tangerang", "Banten", -6.1783, 106.6319},
	"jayapura":       {"Jayapura", "Papua", -2.5916, 140.6690},
	"kupang":         {"Kupang", "Nusa Tenggara Timur", -10.1772, 123.6070},
	"mataram":        {"Mataram", "Nusa Tenggara Barat", -8.5833, 116.1167},
	"jambi":          {"Jambi", "Jambi", -1.6101, 103.6131},
	"banda aceh":     {"Banda Aceh", "Aceh", 5.5483, 95.3238},
}

// LookupCity resolves a city name from the FSL sheet to its coordinates.
// Matching is case-insensitive and tolerates the kota/kab prefixes the
// source data sometimes carries.
func LookupCity(name string) (City, bool) {
	key := strings.ToLower(strings.TrimSpace(name))
	for _, prefix := range []string{"kota ", "kab. ", "kab ", "kabupaten "} {
		key = strings.TrimPrefix(key, prefix)
	}
	key = strings.TrimSpace(key)
	if key == "" {
		return City{}, false
	}
	c, ok := cities[key]
	return c, ok
}
