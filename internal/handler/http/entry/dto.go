package entry

import (
	"pdb-explorer/internal/domain/entity"
	"pdb-explorer/internal/fasta"
)

// DTO is the JSON representation of a lookup result.
type DTO struct {
	Entry       EntryDTO       `json:"entry"`
	Entities    []EntityDTO    `json:"entities"`
	FASTA       string         `json:"fasta"`
	FASTASource string         `json:"fasta_source"`
	Summary     *fasta.Summary `json:"fasta_summary,omitempty"`
}

// EntryDTO carries the raw entry fields plus their display forms.
type EntryDTO struct {
	ID                  string    `json:"id"`
	Title               string    `json:"title"`
	Method              string    `json:"method"`
	Methods             []string  `json:"methods"`
	Resolution          string    `json:"resolution"`
	Resolutions         []float64 `json:"resolutions,omitempty"`
	PolymerEntityCount  int       `json:"polymer_entity_count"`
	DepositedModelCount int       `json:"deposited_model_count"`
	PolymerEntityIDs    []string  `json:"polymer_entity_ids"`
}

// EntityDTO is one polymer entity.
type EntityDTO struct {
	ID             string   `json:"id"`
	EntityID       string   `json:"entity_id,omitempty"`
	Description    string   `json:"description"`
	Organism       string   `json:"organism"`
	Organisms      []string `json:"organisms,omitempty"`
	Chains         []string `json:"chains"`
	Type           string   `json:"type,omitempty"`
	Sequence       string   `json:"sequence,omitempty"`
	SequenceLength int      `json:"sequence_length"`
}

func toDTO(r *entity.RetrievalResult, summary *fasta.Summary) DTO {
	e := r.Entry
	out := DTO{
		Entry: EntryDTO{
			ID:                  e.ID,
			Title:               e.Title,
			Method:              e.PrimaryMethod(),
			Methods:             e.Methods,
			Resolution:          e.ResolutionLabel(),
			Resolutions:         e.Resolutions,
			PolymerEntityCount:  e.PolymerEntityCount,
			DepositedModelCount: e.DepositedModelCount,
			PolymerEntityIDs:    e.PolymerEntityIDs,
		},
		Entities:    make([]EntityDTO, 0, len(r.Entities)),
		FASTA:       r.Sequence,
		FASTASource: string(r.SequenceSource),
		Summary:     summary,
	}
	for i := range r.Entities {
		p := &r.Entities[i]
		out.Entities = append(out.Entities, EntityDTO{
			ID:             p.ID,
			EntityID:       p.EntityID,
			Description:    p.Description,
			Organism:       p.OrganismLabel(),
			Organisms:      p.Organisms,
			Chains:         p.Chains,
			Type:           p.Type,
			Sequence:       p.Sequence,
			SequenceLength: len(p.Sequence),
		})
	}
	return out
}
