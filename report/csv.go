package report

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"sentiment-analysis/models"
	"strconv"
)

var rankingHeader = []string{"rank", "application", "score", "positive", "negative", "neutral", "total", "has_data"}

// WriteRankingCSV writes one row per entry. Scores use the shortest
// representation that parses back to the same float64.
func WriteRankingCSV(w io.Writer, result models.RankingResult) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(rankingHeader); err != nil {
		return err
	}
	for _, e := range result.Entries {
		record := []string{
			strconv.Itoa(e.Rank),
			string(e.App),
			strconv.FormatFloat(e.Score, 'g', -1, 64),
			strconv.Itoa(e.Positive),
			strconv.Itoa(e.Negative),
			strconv.Itoa(e.Neutral),
			strconv.Itoa(e.Total),
			strconv.FormatBool(e.HasData),
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// ReadRankingCSV parses the output of WriteRankingCSV back into entries.
func ReadRankingCSV(r io.Reader) ([]models.RankingEntry, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = len(rankingHeader)

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, errors.New("ranking csv is empty")
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	for i, name := range rankingHeader {
		if header[i] != name {
			return nil, fmt.Errorf("unexpected column %d: got %q, want %q", i, header[i], name)
		}
	}

	var entries []models.RankingEntry
	for {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row: %w", err)
		}
		entry, err := parseRankingRecord(record)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", len(entries)+1, err)
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

func parseRankingRecord(record []string) (models.RankingEntry, error) {
	var (
		e   models.RankingEntry
		err error
	)
	e.App = models.AppName(record[1])
	if e.Rank, err = strconv.Atoi(record[0]); err != nil {
		return e, fmt.Errorf("rank: %w", err)
	}
	if e.Score, err = strconv.ParseFloat(record[2], 64); err != nil {
		return e, fmt.Errorf("score: %w", err)
	}
	ints := []*int{&e.Positive, &e.Negative, &e.Neutral, &e.Total}
	for i, dst := range ints {
		if *dst, err = strconv.Atoi(record[3+i]); err != nil {
			return e, fmt.Errorf("%s: %w", rankingHeader[3+i], err)
		}
	}
	if e.HasData, err = strconv.ParseBool(record[7]); err != nil {
		return e, fmt.Errorf("has_data: %w", err)
	}
	return e, nil
}

// WriteComparisonCSV writes the comparison table with a percent and total
// column per feature. Missing categories leave both cells empty.
func WriteComparisonCSV(w io.Writer, c Comparison) error {
	cw := csv.NewWriter(w)
	header := []string{"application"}
	for _, f := range c.Features {
		header = append(header, f+"_percent_positive", f+"_total")
	}
	if err := cw.Write(header); err != nil {
		return err
	}
	for _, row := range c.Rows {
		record := []string{string(row.App)}
		for _, f := range c.Features {
			cell := row.Cells[f]
			if !cell.Present {
				record = append(record, "", "")
				continue
			}
			record = append(record,
				strconv.FormatFloat(cell.PercentPositive*100, 'f', 1, 64),
				strconv.Itoa(cell.Total),
			)
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
