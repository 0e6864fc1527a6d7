// SwipeEats - Swipe-Based Restaurant Discovery Engine
// Copyright 2026 SwipeEats contributors
// SPDX-License-Identifier: MIT
// https://github.com/swipeeats/swipeeats

// Package dataset loads the restaurant catalog from a scraped CSV file.
//
// The source data is messy: prices carry currency symbols and thousand
// separators, coordinates may be blank, and the scrape includes collection
// pages ("10 Best Restaurants, Sector 29") alongside real venues. The loader
// normalizes what it can and drops what it cannot, so a bad row never takes
// the catalog down.
package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/swipeeats/swipeeats/internal/geo"
	"github.com/swipeeats/swipeeats/internal/metrics"
	"github.com/swipeeats/swipeeats/internal/recommend"
)

// DefaultPrice is the assumed cost for two when the price column is absent
// or unparseable.
const DefaultPrice = 500

// Loader reads restaurant rows from CSV and produces the catalog.
type Loader struct {
	logger zerolog.Logger

	// origin anchors distance computation for every loaded restaurant.
	origin geo.Location
}

// NewLoader creates a catalog loader anchored at the given location.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewLoader(origin geo.Location, logger zerolog.Logger) *Loader {
	return &Loader{
		logger: logger.With().Str("component", "dataset").Logger(),
		origin: origin,
	}
}

// LoadFile reads and parses the CSV catalog at path.
func (l *Loader) LoadFile(path string) ([]recommend.Restaurant, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open dataset: %w", err)
	}
	defer f.Close()

	return l.Load(f)
}

// Load parses CSV rows from r. The first row is the header; unknown columns
// are ignored and missing columns resolve to empty values. Rows that fail
// validation are skipped, not fatal.
func (l *Loader) Load(r io.Reader) ([]recommend.Restaurant, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	cols := columnIndex(header)

	var (
		restaurants []recommend.Restaurant
		skipped     int
		index       int
	)
	seen := make(map[string]struct{})

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			skipped++
			continue
		}

		row := rowValues(record, cols)
		if !isValidRestaurant(row) {
			skipped++
			continue
		}

		rest := l.buildRestaurant(row, index)
		index++

		// Duplicate names keep the first occurrence.
		key := strings.ToLower(rest.Name)
		if _, dup := seen[key]; dup {
			skipped++
			continue
		}
		seen[key] = struct{}{}

		restaurants = append(restaurants, rest)
	}

	metrics.RecordDatasetLoad(len(restaurants), skipped)

	l.logger.Info().
		Int("restaurants", len(restaurants)).
		Int("skipped", skipped).
		Msg("dataset loaded")

	return restaurants, nil
}

// csvRow holds the raw string values of one dataset row.
type csvRow struct {
	name          string
	cuisine       string
	rating        string
	priceForTwo   string
	address       string
	area          string
	latitude      string
	longitude     string
	imageURLs     string
	phone         string
	popularDishes string
	ambianceTags  string
	url           string
}

// columnIndex maps known header names to their positions.
func columnIndex(header []string) map[string]int {
	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[strings.ToLower(strings.TrimSpace(name))] = i
	}
	return cols
}

func rowValues(record []string, cols map[string]int) csvRow {
	field := func(name string) string {
		idx, ok := cols[name]
		if !ok || idx >= len(record) {
			return ""
		}
		return record[idx]
	}

	return csvRow{
		name:          field("name"),
		cuisine:       field("cuisine"),
		rating:        field("rating"),
		priceForTwo:   field("price_for_two"),
		address:       field("address"),
		area:          field("area"),
		latitude:      field("latitude"),
		longitude:     field("longitude"),
		imageURLs:     field("image_urls"),
		phone:         field("phone"),
		popularDishes: field("popular_dishes"),
		ambianceTags:  field("ambiance_tags"),
		url:           field("url"),
	}
}

// isValidRestaurant filters out collection pages and nameless entries.
func isValidRestaurant(row csvRow) bool {
	if strings.Contains(row.name, "Restaurants,") || strings.Contains(row.name, "Restaurants ") {
		return false
	}
	if strings.TrimSpace(row.name) == "" {
		return false
	}
	if strings.Contains(row.name, "Best Food") {
		return false
	}
	return true
}

func (l *Loader) buildRestaurant(row csvRow, index int) recommend.Restaurant {
	lat := parseFloat(row.latitude)
	lon := parseFloat(row.longitude)

	return recommend.Restaurant{
		ID:            generateID(row.name, index),
		Name:          strings.TrimSpace(row.name),
		Cuisine:       strings.TrimSpace(row.cuisine),
		Rating:        parseFloat(row.rating),
		PriceForTwo:   parsePrice(row.priceForTwo),
		Address:       strings.TrimSpace(row.address),
		Area:          strings.TrimSpace(row.area),
		Latitude:      lat,
		Longitude:     lon,
		ImageURLs:     parseImageURLs(row.imageURLs),
		Phone:         strings.TrimSpace(row.phone),
		PopularDishes: strings.TrimSpace(row.popularDishes),
		AmbianceTags:  parseAmbianceTags(row.ambianceTags),
		URL:           strings.TrimSpace(row.url),
		Distance:      geo.Distance(l.origin.Latitude, l.origin.Longitude, lat, lon),
	}
}

// parsePrice parses prices like "₹100" or "₹1,400" to a number.
// Unparseable prices fall back to DefaultPrice.
func parsePrice(s string) float64 {
	if s == "" {
		return DefaultPrice
	}
	cleaned := strings.Map(func(r rune) rune {
		if r == '₹' || r == ',' || r == ' ' {
			return -1
		}
		return r
	}, s)
	parsed, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return DefaultPrice
	}
	return parsed
}

func parseFloat(s string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0
	}
	return v
}

// parseImageURLs splits a comma-separated URL list, keeping only http(s)
// entries.
func parseImageURLs(s string) []string {
	if s == "" {
		return nil
	}
	var urls []string
	for _, u := range strings.Split(s, ",") {
		u = strings.TrimSpace(u)
		if u != "" && strings.HasPrefix(u, "http") {
			urls = append(urls, u)
		}
	}
	return urls
}

// parseAmbianceTags splits a comma-separated tag list.
func parseAmbianceTags(s string) []string {
	if s == "" {
		return nil
	}
	var tags []string
	for _, tag := range strings.Split(s, ",") {
		if tag = strings.TrimSpace(tag); tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags
}

// generateID builds a stable slug-index ID from the restaurant name.
func generateID(name string, index int) string {
	var b strings.Builder
	lastDash := false
	for _, r := range strings.ToLower(name) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastDash = false
		default:
			if !lastDash {
				b.WriteByte('-')
				lastDash = true
			}
		}
	}
	slug := b.String()
	if len(slug) > 30 {
		slug = slug[:30]
	}
	return fmt.Sprintf("%s-%d", slug, index)
}
