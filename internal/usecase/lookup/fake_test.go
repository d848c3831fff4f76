package lookup

import (
	"context"
	"errors"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"pdb-explorer/internal/domain/entity"
)

var errBoom = errors.New("boom")

// fakeRemote implements all three fetcher interfaces.
type fakeRemote struct {
	entry    *entity.Entry
	entryErr error

	entities   map[string]*entity.PolymerEntity
	entityErrs map[string]error
	delays     map[string]time.Duration

	fasta    string
	fastaErr error

	entryCalls  atomic.Int32
	entityCalls atomic.Int32
	fastaCalls  atomic.Int32

	inFlight    atomic.Int32
	maxInFlight atomic.Int32

	mu            sync.Mutex
	entityEntries []entity.Identifier
}

// entityEntryIDs returns the distinct entry identifiers polymer entities
// were requested under.
func (f *fakeRemote) entityEntryIDs() []entity.Identifier {
	f.mu.Lock()
	defer f.mu.Unlock()
	ids := slices.Clone(f.entityEntries)
	slices.Sort(ids)
	return slices.Compact(ids)
}

func (f *fakeRemote) totalCalls() int32 {
	return f.entryCalls.Load() + f.entityCalls.Load() + f.fastaCalls.Load()
}

func (f *fakeRemote) FetchEntry(ctx context.Context, id entity.Identifier) (*entity.Entry, error) {
	f.entryCalls.Add(1)
	if f.entryErr != nil {
		return nil, f.entryErr
	}
	e := *f.entry
	return &e, nil
}

func (f *fakeRemote) FetchPolymerEntity(ctx context.Context, id entity.Identifier, entityID string) (*entity.PolymerEntity, error) {
	f.entityCalls.Add(1)
	f.mu.Lock()
	f.entityEntries = append(f.entityEntries, id)
	f.mu.Unlock()
	n := f.inFlight.Add(1)
	defer f.inFlight.Add(-1)
	for {
		m := f.maxInFlight.Load()
		if n <= m || f.maxInFlight.CompareAndSwap(m, n) {
			break
		}
	}

	if d, ok := f.delays[entityID]; ok {
		time.Sleep(d)
	}
	if err, ok := f.entityErrs[entityID]; ok {
		return nil, err
	}
	p, ok := f.entities[entityID]
	if !ok {
		return nil, &entity.RemoteServiceError{StatusCode: 404}
	}
	cp := *p
	return &cp, nil
}

func (f *fakeRemote) FetchFASTA(ctx context.Context, id entity.Identifier) (string, error) {
	f.fastaCalls.Add(1)
	if f.fastaErr != nil {
		return "", f.fastaErr
	}
	return f.fasta, nil
}

func hemoglobinRemote() *fakeRemote {
	return &fakeRemote{
		entry: &entity.Entry{
			ID:                 "4HHB",
			Title:              "THE CRYSTAL STRUCTURE OF HUMAN DEOXYHAEMOGLOBIN AT 1.74 ANGSTROMS RESOLUTION",
			Methods:            []string{"X-RAY DIFFRACTION"},
			Resolutions:        []float64{1.74},
			PolymerEntityCount: 2,
			PolymerEntityIDs:   []string{"1", "2"},
		},
		entities: map[string]*entity.PolymerEntity{
			"1": {
				ID: "4HHB_1", EntryID: "4HHB", EntityID: "1",
				Description: "Hemoglobin subunit alpha",
				Organisms:   []string{"Homo sapiens"},
				Chains:      []string{"A", "C"},
				Sequence:    "VLSPADKTNVKAAWGKVGAHAGEYGAEALERMFLSFPTTKTYFPHF",
			},
			"2": {
				ID: "4HHB_2", EntryID: "4HHB", EntityID: "2",
				Description: "Hemoglobin subunit beta",
				Organisms:   []string{"Homo sapiens"},
				Chains:      []string{"B", "D"},
				Sequence:    "VHLTPEEKSAVTALWGKVNVDEVGGEALGRLLVVYPWTQRFFESFGDLST",
			},
		},
		fasta: ">4HHB_1|Chains A, C|Hemoglobin subunit alpha|Homo sapiens (9606)\nVLSPADKTNVKAAWGKVGAHAGEYGAEALERMFLSFPTTKTYFPHF\n",
	}
}
