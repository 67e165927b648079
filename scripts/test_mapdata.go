//go:build ignore
// +build ignore

// Ручная проверка эндпоинта map-data на запущенном сервисе:
//
//	go run scripts/test_mapdata.go -addr http://localhost:8080 -city tehran
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"time"
)

func main() {
	addr := flag.String("addr", "http://localhost:8080", "service base URL")
	city := flag.String("city", "tehran", "city name")
	display := flag.String("display", "tehran_region_districts", "area_type_display value")
	heatmap := flag.String("heatmap", "order_density", "heatmap_type_request value")
	flag.Parse()

	q := url.Values{}
	q.Set("city", *city)
	q.Set("area_type_display", *display)
	q.Set("heatmap_type_request", *heatmap)
	q.Set("start_date", time.Now().AddDate(0, -1, 0).Format("2006-01-02"))
	q.Set("end_date", time.Now().Format("2006-01-02"))

	endpoint := *addr + "/api/map-data?" + q.Encode()
	fmt.Println("GET", endpoint)

	start := time.Now()
	resp, err := http.Get(endpoint)
	if err != nil {
		log.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		log.Fatalf("read body: %v", err)
	}
	fmt.Printf("status=%d elapsed=%s size=%d bytes\n", resp.StatusCode, time.Since(start), len(body))

	var payload struct {
		Data struct {
			Vendors      []json.RawMessage `json:"vendors"`
			CoverageGrid []json.RawMessage `json:"coverage_grid"`
			HeatmapData  []json.RawMessage `json:"heatmap_data"`
			Partial      map[string]string `json:"partial_errors"`
		} `json:"data"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		log.Fatalf("parse response: %v", err)
	}

	fmt.Printf("vendors=%d coverage_cells=%d heatmap_points=%d\n",
		len(payload.Data.Vendors), len(payload.Data.CoverageGrid), len(payload.Data.HeatmapData))
	for part, msg := range payload.Data.Partial {
		fmt.Printf("partial failure: %s: %s\n", part, msg)
	}
}
