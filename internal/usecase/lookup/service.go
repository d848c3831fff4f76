// Package lookup implements the entry retrieval use case: fetch the entry,
// fan out to its polymer entities, and resolve a FASTA sequence listing with
// a local fallback when the FASTA endpoint is unavailable.
package lookup

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"pdb-explorer/internal/domain/entity"
	"pdb-explorer/internal/observability/logging"
	"pdb-explorer/internal/observability/metrics"
	"pdb-explorer/internal/observability/tracing"

	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/sync/errgroup"
)

const defaultParallelism = 8

// EntryFetcher retrieves the top-level record of an entry.
type EntryFetcher interface {
	FetchEntry(ctx context.Context, id entity.Identifier) (*entity.Entry, error)
}

// EntityFetcher retrieves one polymer entity of an entry.
type EntityFetcher interface {
	FetchPolymerEntity(ctx context.Context, id entity.Identifier, entityID string) (*entity.PolymerEntity, error)
}

// SequenceFetcher retrieves the pre-built FASTA listing of an entry.
type SequenceFetcher interface {
	FetchFASTA(ctx context.Context, id entity.Identifier) (string, error)
}

// Config holds tuning for the lookup service.
type Config struct {
	// Parallelism is the maximum number of concurrent polymer entity fetches.
	// Values below 1 fall back to 8.
	Parallelism int
}

// Service runs entry lookups. It holds no per-lookup state and is safe for
// concurrent use.
type Service struct {
	Entries   EntryFetcher
	Entities  EntityFetcher
	Sequences SequenceFetcher
	config    Config
}

// NewService creates a lookup Service.
//
// The RCSB client satisfies all three fetcher interfaces, so callers
// usually pass the same value three times:
//
//	client := rcsb.NewClient(cfg)
//	svc := lookup.NewService(client, client, client, lookup.Config{Parallelism: cfg.Parallelism})
func NewService(entries EntryFetcher, entities EntityFetcher, sequences SequenceFetcher, config Config) *Service {
	if config.Parallelism < 1 {
		config.Parallelism = defaultParallelism
	}
	return &Service{
		Entries:   entries,
		Entities:  entities,
		Sequences: sequences,
		config:    config,
	}
}

// Lookup validates raw, fetches the entry and then, concurrently, its
// polymer entities and the remote FASTA listing. When the listing cannot be
// retrieved it is synthesized from the entities that were fetched.
//
// Errors:
//   - entity.ErrInvalidIdentifierFormat: raw is not 4 alphanumeric characters (no network call is made)
//   - entity.ErrEntryNotFound, entity.ErrRemoteService, entity.ErrNetworkUnreachable: entry fetch failed
//
// Entity and FASTA failures never surface here.
func (s *Service) Lookup(ctx context.Context, raw string) (*entity.RetrievalResult, error) {
	start := time.Now()
	logger := logging.FromContext(ctx)

	id, err := entity.ParseIdentifier(raw)
	if err != nil {
		metrics.RecordLookup(metrics.OutcomeInvalidIdentifier, time.Since(start))
		return nil, err
	}

	ctx, span := tracing.StartSpan(ctx, "lookup.Lookup", attribute.String("pdb.id", id.String()))
	defer span.End()

	entry, err := s.Entries.FetchEntry(ctx, id)
	if err != nil {
		tracing.RecordError(span, err)
		metrics.RecordLookup(outcomeOf(err), time.Since(start))
		logger.Warn("entry fetch failed",
			slog.String("pdb_id", id.String()),
			slog.Any("error", err))
		return nil, err
	}
	logger.Info("entry fetched",
		slog.String("pdb_id", id.String()),
		slog.Int("polymer_entities", len(entry.PolymerEntityIDs)))

	var (
		listing    string
		listingErr error
		primary    errgroup.Group
	)
	primary.Go(func() error {
		listing, listingErr = s.Sequences.FetchFASTA(ctx, id)
		return nil
	})

	entities := s.FetchEntities(ctx, id, entry)
	_ = primary.Wait()

	sequence, source := resolve(ctx, id, entities, listing, listingErr)

	result := &entity.RetrievalResult{
		Entry:          *entry,
		Entities:       entities,
		Sequence:       sequence,
		SequenceSource: source,
	}

	duration := time.Since(start)
	metrics.RecordLookup(metrics.OutcomeSuccess, duration)
	metrics.RecordLookupEntities(len(entities))
	span.SetAttributes(
		attribute.Int("pdb.entities", len(entities)),
		attribute.String("pdb.fasta_source", string(source)),
	)
	logger.Info("lookup completed",
		slog.String("pdb_id", id.String()),
		slog.Int("entities", len(entities)),
		slog.Int("entities_declared", len(entry.PolymerEntityIDs)),
		slog.String("fasta_source", string(source)),
		slog.Duration("duration", duration))

	return result, nil
}

// FetchEntities fetches every polymer entity declared by entry under the
// validated identifier id, at most Config.Parallelism at a time, and waits
// for all of them. A failed fetch is logged and dropped. Entities recorded
// under a different entry are dropped as well. The result follows the
// entry's declared id order and is never nil.
func (s *Service) FetchEntities(ctx context.Context, id entity.Identifier, entry *entity.Entry) []entity.PolymerEntity {
	logger := logging.FromContext(ctx)

	ctx, span := tracing.StartSpan(ctx, "lookup.FetchEntities",
		attribute.String("pdb.id", id.String()),
		attribute.Int("pdb.entities_declared", len(entry.PolymerEntityIDs)))
	defer span.End()

	slots := make([]*entity.PolymerEntity, len(entry.PolymerEntityIDs))

	var eg errgroup.Group
	eg.SetLimit(s.config.Parallelism)
	for i, entityID := range entry.PolymerEntityIDs {
		eg.Go(func() error {
			p, err := s.Entities.FetchPolymerEntity(ctx, id, entityID)
			if err != nil {
				metrics.RecordEntityFetchFailure()
				logger.Warn("polymer entity fetch failed, skipping",
					slog.String("pdb_id", id.String()),
					slog.String("entity_id", entityID),
					slog.Any("error", err))
				return nil
			}
			if p.EntryID != "" && !strings.EqualFold(p.EntryID, id.String()) {
				metrics.RecordEntityFetchFailure()
				logger.Warn("polymer entity belongs to another entry, skipping",
					slog.String("pdb_id", id.String()),
					slog.String("entity_id", entityID),
					slog.String("entity_entry_id", p.EntryID))
				return nil
			}
			slots[i] = p
			return nil
		})
	}
	_ = eg.Wait()

	entities := make([]entity.PolymerEntity, 0, len(slots))
	for _, p := range slots {
		if p != nil {
			entities = append(entities, *p)
		}
	}
	span.SetAttributes(attribute.Int("pdb.entities", len(entities)))
	return entities
}

// outcomeOf maps a lookup error to its metrics outcome label.
func outcomeOf(err error) string {
	switch {
	case errors.Is(err, entity.ErrInvalidIdentifierFormat):
		return metrics.OutcomeInvalidIdentifier
	case errors.Is(err, entity.ErrEntryNotFound):
		return metrics.OutcomeNotFound
	case errors.Is(err, entity.ErrNetworkUnreachable):
		return metrics.OutcomeNetworkError
	case errors.Is(err, entity.ErrRemoteService):
		return metrics.OutcomeRemoteError
	default:
		return metrics.OutcomeError
	}
}
