package refdata

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/Nano867/prediction-crop/entities"
)

// ParseTemperatureTable scans every table row of an HTML page and keeps rows
// shaped like "<zone> <12 numbers>". Header rows and anything else are skipped.
// A trailing unit such as "°C" on a number is tolerated.
func ParseTemperatureTable(r io.Reader) (Dataset, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return Dataset{}, fmt.Errorf("parse html: %w", err)
	}

	ds := Dataset{Temperatures: map[entities.ClimateZone][]float64{}}
	doc.Find("tr").Each(func(_ int, tr *goquery.Selection) {
		cells := tr.Find("th,td")
		if cells.Length() < 13 {
			return
		}
		zone := strings.TrimSpace(cells.First().Text())
		if zone == "" {
			return
		}
		row := make([]float64, 0, 12)
		cells.Slice(1, 13).EachWithBreak(func(_ int, td *goquery.Selection) bool {
			v, err := parseCelsius(td.Text())
			if err != nil {
				return false
			}
			row = append(row, v)
			return true
		})
		if len(row) == 12 {
			ds.Temperatures[entities.ClimateZone(zone)] = row
		}
	})
	if len(ds.Temperatures) == 0 {
		return Dataset{}, fmt.Errorf("no temperature rows found")
	}
	return ds, nil
}

// FetchTemperatureTable downloads url and parses it with ParseTemperatureTable.
func FetchTemperatureTable(ctx context.Context, url string, maxBytes int64) (Dataset, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return Dataset{}, err
	}
	req.Header.Set("User-Agent", "prediction-crop/1.0")
	httpc := &http.Client{Timeout: 20 * time.Second}
	resp, err := httpc.Do(req)
	if err != nil {
		return Dataset{}, err
	}
	defer resp.Body.Close()
	if resp.StatusCode/100 != 2 {
		return Dataset{}, fmt.Errorf("fetch %s: http %d", url, resp.StatusCode)
	}
	if maxBytes <= 0 {
		maxBytes = 2 << 20
	}
	b, err := io.ReadAll(io.LimitReader(resp.Body, maxBytes))
	if err != nil {
		return Dataset{}, err
	}
	return ParseTemperatureTable(bytes.NewReader(b))
}

func parseCelsius(s string) (float64, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, "°C")
	s = strings.TrimSuffix(s, "°")
	s = strings.ReplaceAll(s, "−", "-") // unicode minus
	return strconv.ParseFloat(strings.TrimSpace(s), 64)
}
