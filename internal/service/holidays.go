package service

import (
	"sort"
	"strconv"
	"strings"
)

// Holiday is a public holiday shown on the calendar.
type Holiday struct {
	Date string `json:"date"`
	Name string `json:"name"`
}

// turkishHolidays is keyed by YYYY-MM-DD.
var turkishHolidays = map[string]string{
	"2024-01-01": "Yılbaşı",
	"2024-04-09": "Ramazan Bayramı Arifesi",
	"2024-04-10": "Ramazan Bayramı 1. Gün",
	"2024-04-11": "Ramazan Bayramı 2. Gün",
	"2024-04-12": "Ramazan Bayramı 3. Gün",
	"2024-04-23": "Ulusal Egemenlik ve Çocuk Bayramı",
	"2024-05-01": "Emek ve Dayanışma Günü",
	"2024-05-19": "Atatürk'ü Anma, Gençlik ve Spor Bayramı",
	"2024-06-15": "Kurban Bayramı Arifesi",
	"2024-06-16": "Kurban Bayramı 1. Gün",
	"2024-06-17": "Kurban Bayramı 2. Gün",
	"2024-06-18": "Kurban Bayramı 3. Gün",
	"2024-06-19": "Kurban Bayramı 4. Gün",
	"2024-07-15": "Demokrasi ve Milli Birlik Günü",
	"2024-08-30": "Zafer Bayramı",
	"2024-10-28": "Cumhuriyet Bayramı Arifesi",
	"2024-10-29": "Cumhuriyet Bayramı",

	"2025-01-01": "Yılbaşı",
	"2025-03-29": "Ramazan Bayramı Arifesi",
	"2025-03-30": "Ramazan Bayramı 1. Gün",
	"2025-03-31": "Ramazan Bayramı 2. Gün",
	"2025-04-01": "Ramazan Bayramı 3. Gün",
	"2025-04-23": "Ulusal Egemenlik ve Çocuk Bayramı",
	"2025-05-01": "Emek ve Dayanışma Günü",
	"2025-05-19": "Atatürk'ü Anma, Gençlik ve Spor Bayramı",
	"2025-06-05": "Kurban Bayramı Arifesi",
	"2025-06-06": "Kurban Bayramı 1. Gün",
	"2025-06-07": "Kurban Bayramı 2. Gün",
	"2025-06-08": "Kurban Bayramı 3. Gün",
	"2025-06-09": "Kurban Bayramı 4. Gün",
	"2025-07-15": "Demokrasi ve Milli Birlik Günü",
	"2025-08-30": "Zafer Bayramı",
	"2025-10-28": "Cumhuriyet Bayramı Arifesi",
	"2025-10-29": "Cumhuriyet Bayramı",

	"2026-01-01": "Yılbaşı",
	"2026-03-19": "Ramazan Bayramı Arifesi",
	"2026-03-20": "Ramazan Bayramı 1. Gün",
	"2026-03-21": "Ramazan Bayramı 2. Gün",
	"2026-03-22": "Ramazan Bayramı 3. Gün",
	"2026-04-23": "Ulusal Egemenlik ve Çocuk Bayramı",
	"2026-05-01": "Emek ve Dayanışma Günü",
	"2026-05-19": "Atatürk'ü Anma, Gençlik ve Spor Bayramı",
	"2026-05-26": "Kurban Bayramı Arifesi",
	"2026-05-27": "Kurban Bayramı 1. Gün",
	"2026-05-28": "Kurban Bayramı 2. Gün",
	"2026-05-29": "Kurban Bayramı 3. Gün",
	"2026-05-30": "Kurban Bayramı 4. Gün",
	"2026-07-15": "Demokrasi ve Milli Birlik Günü",
	"2026-08-30": "Zafer Bayramı",
	"2026-10-28": "Cumhuriyet Bayramı Arifesi",
	"2026-10-29": "Cumhuriyet Bayramı",
}

// HolidaysForYear returns the known holidays of year in date order.
// Years outside the table yield an empty list.
func HolidaysForYear(year int) []Holiday {
	prefix := strconv.Itoa(year) + "-"
	out := make([]Holiday, 0, 17)
	for date, name := range turkishHolidays {
		if strings.HasPrefix(date, prefix) {
			out = append(out, Holiday{Date: date, Name: name})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out
}
