// Package importer reads and writes the player roster as CSV.
package importer

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/player-auction/internal/auction"
)

// Canonical column names, in export order.
const (
	ColID         = "ID"
	ColName       = "Name"
	ColCricket    = "Cricket"
	ColBadminton  = "Badminton"
	ColTT         = "TT"
	ColTeam       = "Team"
	ColPrice      = "Price"
	ColCaptainFor = "CaptainFor"
	ColContactNo  = "ContactNo"
)

var Columns = []string{ColID, ColName, ColCricket, ColBadminton, ColTT, ColTeam, ColPrice, ColCaptainFor, ColContactNo}

// CanonicalColumn maps a loosely named header to a canonical column. It returns
// "" for headers that are ignored.
func CanonicalColumn(header string) string {
	c := strings.ToLower(strings.ReplaceAll(strings.TrimSpace(header), " ", ""))
	switch c {
	case "id":
		return ColID
	case "name", "player", "playername":
		return ColName
	case "team":
		return ColTeam
	case "price":
		return ColPrice
	case "captainfor", "captain":
		return ColCaptainFor
	}
	switch {
	case strings.Contains(c, "cric"), strings.Contains(c, "bat"):
		return ColCricket
	case strings.Contains(c, "bad"), strings.Contains(c, "shuttle"):
		return ColBadminton
	case strings.Contains(c, "tt"), strings.Contains(c, "table"):
		return ColTT
	case strings.Contains(c, "mobile"), strings.Contains(c, "contact"):
		return ColContactNo
	}
	return ""
}

// Read parses a roster. Missing IDs are numbered from 1 in row order, missing
// ownership columns default to unsold, and grades outside A, B and C become "0".
func Read(r io.Reader) ([]auction.Player, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, errors.New("empty csv: header row is missing")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read csv header: %w", err)
	}

	columns := make(map[string]int)
	for i, h := range header {
		col := CanonicalColumn(strings.TrimPrefix(h, "\ufeff"))
		if col == "" {
			log.Debug("Ignoring csv column", "header", h)
			continue
		}
		if _, dup := columns[col]; !dup {
			columns[col] = i
		}
	}
	if _, ok := columns[ColName]; !ok {
		return nil, fmt.Errorf("csv has no name column (got %v)", header)
	}

	var players []auction.Player
	line := 1
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("failed to read csv line %d: %w", line, err)
		}
		if blank(record) {
			continue
		}
		p, err := parseRecord(record, columns, len(players)+1)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		players = append(players, p)
	}
	log.Info("Roster parsed", "players", len(players), "columns", len(columns))
	return players, nil
}

func parseRecord(record []string, columns map[string]int, seq int) (auction.Player, error) {
	field := func(col string) string {
		i, ok := columns[col]
		if !ok || i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}

	p := auction.Player{
		ID:        seq,
		Name:      field(ColName),
		Cricket:   auction.ParseGrade(field(ColCricket)),
		Badminton: auction.ParseGrade(field(ColBadminton)),
		TT:        auction.ParseGrade(field(ColTT)),
		ContactNo: field(ColContactNo),
	}
	if p.Name == "" {
		return auction.Player{}, errors.New("player has no name")
	}
	if raw := field(ColID); raw != "" {
		id, err := strconv.Atoi(raw)
		if err != nil {
			return auction.Player{}, fmt.Errorf("invalid id %q", raw)
		}
		p.ID = id
	}
	if raw := field(ColTeam); raw != "" {
		team, ok := auction.ParseTeam(raw)
		if !ok {
			return auction.Player{}, fmt.Errorf("unknown team %q", raw)
		}
		p.Team = team
	}
	if raw := field(ColPrice); raw != "" {
		price, err := parsePrice(raw)
		if err != nil {
			return auction.Player{}, err
		}
		p.Price = price
	}
	if raw := field(ColCaptainFor); raw != "" {
		sport, ok := auction.ParseSport(raw)
		if !ok {
			return auction.Player{}, fmt.Errorf("unknown captain sport %q", raw)
		}
		p.CaptainFor = sport
	}
	return p, nil
}

// maxPrice bounds imported prices well inside the int range.
const maxPrice = 1_000_000_000

// parsePrice accepts whole numbers. Spreadsheet exports often write them as
// "120.0", so a float with no fractional part is accepted too.
func parsePrice(raw string) (int, error) {
	if price, err := strconv.Atoi(raw); err == nil {
		if price < 0 || price > maxPrice {
			return 0, fmt.Errorf("price %q is out of range", raw)
		}
		return price, nil
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("invalid price %q", raw)
	}
	if f != math.Trunc(f) {
		return 0, fmt.Errorf("price %q is not a whole number", raw)
	}
	if f < 0 || f > maxPrice {
		return 0, fmt.Errorf("price %q is out of range", raw)
	}
	return int(f), nil
}

func blank(record []string) bool {
	for _, f := range record {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}

// Write exports players with the canonical columns.
func Write(w io.Writer, players []auction.Player) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(Columns); err != nil {
		return fmt.Errorf("failed to write csv header: %w", err)
	}
	for _, p := range players {
		price := ""
		if p.Sold() {
			price = strconv.Itoa(p.Price)
		}
		record := []string{
			strconv.Itoa(p.ID),
			p.Name,
			p.Cricket.String(),
			p.Badminton.String(),
			p.TT.String(),
			string(p.Team),
			price,
			string(p.CaptainFor),
			p.ContactNo,
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write player %d: %w", p.ID, err)
		}
	}
	writer.Flush()
	return writer.Error()
}
