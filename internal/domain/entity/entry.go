// Package entity defines the core domain types for structural entry lookups.
// It contains the Entry and PolymerEntity records returned by the remote
// database, the aggregated RetrievalResult, identifier normalization, and the
// error kinds shared by every layer.
package entity

import "strconv"

// Entry is the top-level record of a structural database entry.
type Entry struct {
	ID                  string    `json:"id"`
	Title               string    `json:"title"`
	Methods             []string  `json:"methods"`
	Resolutions         []float64 `json:"resolutions,omitempty"`
	PolymerEntityCount  int       `json:"polymer_entity_count"`
	DepositedModelCount int       `json:"deposited_model_count"`
	PolymerEntityIDs    []string  `json:"polymer_entity_ids"`
}

// PrimaryMethod returns the first experimental method, or "Experimental"
// when the entry declares none.
func (e *Entry) PrimaryMethod() string {
	if len(e.Methods) == 0 || e.Methods[0] == "" {
		return "Experimental"
	}
	return e.Methods[0]
}

// Resolution returns the first combined resolution value in ångström.
// ok is false when the entry carries no resolution (e.g. NMR structures).
func (e *Entry) Resolution() (value float64, ok bool) {
	if len(e.Resolutions) == 0 {
		return 0, false
	}
	return e.Resolutions[0], true
}

// ResolutionLabel renders the resolution for display, e.g. "1.74Å", or
// "N/A" when there is none.
func (e *Entry) ResolutionLabel() string {
	v, ok := e.Resolution()
	if !ok || v == 0 {
		return "N/A"
	}
	return strconv.FormatFloat(v, 'f', -1, 64) + "Å"
}

// PolymerEntity is one distinct molecular component of an Entry.
type PolymerEntity struct {
	// ID is the composite entity identifier, e.g. "4HHB_1" or "4HHB.1".
	ID          string   `json:"id"`
	EntryID     string   `json:"entry_id,omitempty"`
	EntityID    string   `json:"entity_id,omitempty"`
	Description string   `json:"description,omitempty"`
	Organisms   []string `json:"organisms,omitempty"`
	Chains      []string `json:"chains"`
	Type        string   `json:"type,omitempty"`
	Sequence    string   `json:"sequence,omitempty"`
}

// Organism returns the first source organism name, or "" when none is known.
func (p *PolymerEntity) Organism() string {
	if len(p.Organisms) == 0 {
		return ""
	}
	return p.Organisms[0]
}

// OrganismLabel is Organism for display, "Organism Unspecified" when unknown.
func (p *PolymerEntity) OrganismLabel() string {
	if o := p.Organism(); o != "" {
		return o
	}
	return "Organism Unspecified"
}

// SequenceSource tells where a RetrievalResult's sequence listing came from.
type SequenceSource string

const (
	// SequenceSourceRemote means the listing is the FASTA endpoint body, verbatim.
	SequenceSourceRemote SequenceSource = "remote"
	// SequenceSourceSynthesized means the listing was built from the fetched entities.
	SequenceSourceSynthesized SequenceSource = "synthesized"
)

// RetrievalResult aggregates everything produced by one lookup.
// A result is built fresh per lookup and never mutated afterwards.
type RetrievalResult struct {
	Entry          Entry           `json:"entry"`
	Entities       []PolymerEntity `json:"entities"`
	Sequence       string          `json:"fasta"`
	SequenceSource SequenceSource  `json:"fasta_source"`
}
