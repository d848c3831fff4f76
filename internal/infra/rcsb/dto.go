package rcsb

import "pdb-explorer/internal/domain/entity"

// entryDTO is the subset of GET /entry/{ID} the application reads.
type entryDTO struct {
	RcsbID string `json:"rcsb_id"`
	Struct struct {
		Title string `json:"title"`
	} `json:"struct"`
	EntryInfo struct {
		ResolutionCombined  []float64 `json:"resolution_combined"`
		PolymerEntityCount  int       `json:"polymer_entity_count"`
		DepositedModelCount int       `json:"deposited_model_count"`
	} `json:"rcsb_entry_info"`
	Exptl []struct {
		Method string `json:"method"`
	} `json:"exptl"`
	ContainerIdentifiers struct {
		PolymerEntityIDs []string `json:"polymer_entity_ids"`
	} `json:"rcsb_entry_container_identifiers"`
}

func (d *entryDTO) toEntity(requested entity.Identifier) *entity.Entry {
	id := d.RcsbID
	if id == "" {
		id = requested.String()
	}

	methods := make([]string, 0, len(d.Exptl))
	for _, e := range d.Exptl {
		methods = append(methods, e.Method)
	}

	ids := d.ContainerIdentifiers.PolymerEntityIDs
	if ids == nil {
		ids = []string{}
	}

	return &entity.Entry{
		ID:                  id,
		Title:               d.Struct.Title,
		Methods:             methods,
		Resolutions:         d.EntryInfo.ResolutionCombined,
		PolymerEntityCount:  d.EntryInfo.PolymerEntityCount,
		DepositedModelCount: d.EntryInfo.DepositedModelCount,
		PolymerEntityIDs:    ids,
	}
}

// polymerEntityDTO is the subset of GET /polymer_entity/{ID}/{entity} the application reads.
type polymerEntityDTO struct {
	RcsbID        string `json:"rcsb_id"`
	PolymerEntity *struct {
		Description string `json:"pdbx_description"`
	} `json:"rcsb_polymer_entity"`
	SourceOrganism []struct {
		ScientificName string `json:"scientific_name"`
	} `json:"rcsb_entity_source_organism"`
	ContainerIdentifiers struct {
		EntryID     string   `json:"entry_id"`
		EntityID    string   `json:"entity_id"`
		AuthAsymIDs []string `json:"auth_asym_ids"`
	} `json:"rcsb_polymer_entity_container_identifiers"`
	EntityPoly *struct {
		Type             string `json:"type"`
		SeqOneLetterCode string `json:"pdbx_seq_one_letter_code"`
	} `json:"entity_poly"`
}

func (d *polymerEntityDTO) toEntity() *entity.PolymerEntity {
	p := &entity.PolymerEntity{
		ID:       d.RcsbID,
		EntryID:  d.ContainerIdentifiers.EntryID,
		EntityID: d.ContainerIdentifiers.EntityID,
		Chains:   d.ContainerIdentifiers.AuthAsymIDs,
	}
	if p.Chains == nil {
		p.Chains = []string{}
	}
	if d.PolymerEntity != nil {
		p.Description = d.PolymerEntity.Description
	}
	// Empty names are kept so that "first organism" keeps its position.
	for _, o := range d.SourceOrganism {
		p.Organisms = append(p.Organisms, o.ScientificName)
	}
	if d.EntityPoly != nil {
		p.Type = d.EntityPoly.Type
		p.Sequence = d.EntityPoly.SeqOneLetterCode
	}
	return p
}
