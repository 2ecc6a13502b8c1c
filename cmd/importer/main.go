// Command importer bulk-loads auction items from a CSV file into the
// snapshot file. Rows: category,first_name,last_name,base_price. Run it
// while the auctioneer is down; the snapshot file is the authoritative
// state.
package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/Jay-Patell/AuctionBotLeague/internal/model"
	"github.com/Jay-Patell/AuctionBotLeague/internal/store"
)

func main() {
	csvPath := flag.String("file", "", "path to CSV file (category,first_name,last_name,base_price)")
	dataPath := flag.String("data", "auction_data.json", "path to snapshot file")
	skipHeader := flag.Bool("skip-header", true, "skip the first CSV row")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	if *csvPath == "" {
		fmt.Fprintln(os.Stderr, "usage: importer -file players.csv [-data auction_data.json]")
		os.Exit(2)
	}

	items, err := readItems(*csvPath, *skipHeader)
	if err != nil {
		logger.Error("import failed", "error", err)
		os.Exit(1)
	}

	st := store.New(*dataPath, logger)
	state, err := st.Load()
	if err != nil {
		logger.Error("snapshot file unusable", "error", err)
		os.Exit(1)
	}

	state.Pending = append(state.Pending, items...)
	if err := st.Save(state); err != nil {
		logger.Error("save failed", "error", err)
		os.Exit(1)
	}

	logger.Info("players imported", "count", len(items), "pending_total", len(state.Pending), "data", *dataPath)
}

func readItems(path string, skipHeader bool) ([]model.Item, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open csv: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = 4

	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse csv: %w", err)
	}
	if skipHeader && len(rows) > 0 {
		rows = rows[1:]
	}

	items := make([]model.Item, 0, len(rows))
	for i, row := range rows {
		category, err := model.ParseCategory(strings.TrimSpace(row[0]))
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+1, err)
		}

		name := strings.TrimSpace(row[1] + " " + row[2])
		if name == "" {
			return nil, fmt.Errorf("row %d: empty name", i+1)
		}

		basePrice, err := strconv.ParseInt(strings.TrimSpace(row[3]), 10, 64)
		if err != nil || basePrice < 0 {
			return nil, fmt.Errorf("row %d: invalid base price %q", i+1, row[3])
		}

		items = append(items, model.Item{
			ID:        uuid.New(),
			Name:      name,
			Category:  category,
			BasePrice: basePrice,
		})
	}
	return items, nil
}
