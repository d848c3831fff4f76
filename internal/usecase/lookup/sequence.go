package lookup

import (
	"context"
	"log/slog"
	"strings"

	"pdb-explorer/internal/domain/entity"
	"pdb-explorer/internal/observability/logging"
	"pdb-explorer/internal/observability/metrics"
)

// Placeholders used in synthesized FASTA headers.
const (
	UnknownDescription = "Unknown Protein"
	UnknownOrganism    = "Unknown Organism"
)

// ResolveSequence returns the FASTA listing for id. The remote listing is
// returned verbatim when it can be fetched; otherwise one record per entity
// is synthesized. It never fails.
func (s *Service) ResolveSequence(ctx context.Context, id entity.Identifier, entities []entity.PolymerEntity) (string, entity.SequenceSource) {
	listing, err := s.Sequences.FetchFASTA(ctx, id)
	return resolve(ctx, id, entities, listing, err)
}

// resolve picks between an already attempted remote listing and synthesis.
func resolve(ctx context.Context, id entity.Identifier, entities []entity.PolymerEntity, listing string, fetchErr error) (string, entity.SequenceSource) {
	if fetchErr == nil {
		metrics.RecordSequenceListing(string(entity.SequenceSourceRemote))
		return listing, entity.SequenceSourceRemote
	}

	logging.FromContext(ctx).Warn("FASTA endpoint unavailable, synthesizing listing",
		slog.String("pdb_id", id.String()),
		slog.Int("entities", len(entities)),
		slog.Any("error", fetchErr))
	metrics.RecordSequenceListing(string(entity.SequenceSourceSynthesized))
	return SynthesizeFASTA(id, entities), entity.SequenceSourceSynthesized
}

// SynthesizeFASTA builds a FASTA listing with one record per entity, in
// order, separated by a blank line:
//
//	>4HHB_1|Chain A, C|Hemoglobin subunit alpha|Homo sapiens
//	VLSPADKTNVKAAWGKVGAHAGEYGAEALERMFLSFPTTKTYFPHF
//
// An empty entity list yields an empty listing.
func SynthesizeFASTA(id entity.Identifier, entities []entity.PolymerEntity) string {
	var b strings.Builder
	for i := range entities {
		if i > 0 {
			b.WriteString("\n\n")
		}
		writeRecord(&b, id, &entities[i])
	}
	return b.String()
}

func writeRecord(b *strings.Builder, id entity.Identifier, p *entity.PolymerEntity) {
	description := p.Description
	if description == "" {
		description = UnknownDescription
	}
	organism := p.Organism()
	if organism == "" {
		organism = UnknownOrganism
	}

	b.WriteByte('>')
	b.WriteString(id.String())
	b.WriteByte('_')
	b.WriteString(EntitySuffix(p.ID))
	b.WriteString("|Chain ")
	b.WriteString(strings.Join(p.Chains, ", "))
	b.WriteByte('|')
	b.WriteString(description)
	b.WriteByte('|')
	b.WriteString(organism)
	b.WriteByte('\n')
	b.WriteString(p.Sequence)
}

// EntitySuffix returns the second separator-delimited field of a composite
// entity id, splitting on '.' or '_': "1" for "4HHB.1", "4HHB_1" and
// "4HHB.1.2". The whole id is returned when that field is missing or empty.
func EntitySuffix(entityID string) string {
	i := strings.IndexAny(entityID, "._")
	if i < 0 {
		return entityID
	}
	field := entityID[i+1:]
	if j := strings.IndexAny(field, "._"); j >= 0 {
		field = field[:j]
	}
	if field == "" {
		return entityID
	}
	return field
}
