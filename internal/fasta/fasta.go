// Package fasta reads FASTA sequence listings, as served by the RCSB FASTA
// endpoint or synthesized by the lookup service, into per-record summaries.
package fasta

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/biogo/biogo/alphabet"
	"github.com/biogo/biogo/io/seqio/fasta"
	"github.com/biogo/biogo/seq/linear"
)

// Record summarizes one FASTA record. Header fields are split on '|' the
// way RCSB headers are laid out:
//
//	>4HHB_1|Chains A, C|Hemoglobin subunit alpha|Homo sapiens (9606)
type Record struct {
	Header      string   `json:"header"`
	EntityID    string   `json:"entity_id"`
	Chains      []string `json:"chains,omitempty"`
	Description string   `json:"description,omitempty"`
	Organism    string   `json:"organism,omitempty"`
	Length      int      `json:"length"`
}

// Summary describes a whole listing.
type Summary struct {
	Records       []Record `json:"records"`
	TotalResidues int      `json:"total_residues"`
}

// ErrMalformed indicates the listing has content but no FASTA header.
var ErrMalformed = errors.New("malformed FASTA listing")

// Parse reads every record of listing. An empty or blank listing yields no
// records and no error.
func Parse(listing string) ([]Record, error) {
	trimmed := strings.TrimSpace(listing)
	if trimmed == "" {
		return []Record{}, nil
	}
	if !strings.HasPrefix(trimmed, ">") {
		return nil, ErrMalformed
	}

	r := fasta.NewReader(strings.NewReader(trimmed), linear.NewSeq("", nil, alphabet.Protein))
	records := []Record{}
	for {
		s, err := r.Read()
		if err != nil {
			if err == io.EOF {
				break
			}
			return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
		}
		header := s.Name()
		if desc := s.Description(); desc != "" {
			header += " " + desc
		}
		rec := parseHeader(header)
		rec.Length = s.Len()
		records = append(records, rec)
	}
	return records, nil
}

// Summarize parses listing and totals its residues.
func Summarize(listing string) (Summary, error) {
	records, err := Parse(listing)
	if err != nil {
		return Summary{}, err
	}
	sum := Summary{Records: records}
	for _, rec := range records {
		sum.TotalResidues += rec.Length
	}
	return sum, nil
}

func parseHeader(header string) Record {
	rec := Record{Header: header}
	fields := strings.Split(header, "|")
	rec.EntityID = strings.TrimSpace(fields[0])
	if len(fields) > 1 {
		rec.Chains = parseChains(fields[1])
	}
	if len(fields) > 2 {
		rec.Description = strings.TrimSpace(fields[2])
	}
	if len(fields) > 3 {
		rec.Organism = strings.TrimSpace(strings.Join(fields[3:], "|"))
	}
	return rec
}

// parseChains reads "Chain A" or "Chains A, C" into its labels.
func parseChains(field string) []string {
	field = strings.TrimSpace(field)
	for _, prefix := range []string{"Chains ", "Chain "} {
		if strings.HasPrefix(field, prefix) {
			field = strings.TrimPrefix(field, prefix)
			break
		}
	}
	var chains []string
	for _, c := range strings.Split(field, ",") {
		if c = strings.TrimSpace(c); c != "" {
			chains = append(chains, c)
		}
	}
	return chains
}
