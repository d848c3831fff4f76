package entry

import (
	"context"
	"log/slog"
	"mime"
	"net/http"

	"pdb-explorer/internal/domain/entity"
	"pdb-explorer/internal/fasta"
	"pdb-explorer/internal/handler/http/respond"
	"pdb-explorer/internal/observability/logging"
)

// Looker runs one entry lookup. *lookup.Service implements it.
type Looker interface {
	Lookup(ctx context.Context, raw string) (*entity.RetrievalResult, error)
}

// GetHandler serves GET /entries/{id} as JSON.
type GetHandler struct{ Svc Looker }

// ServeHTTP looks the entry up and answers with a DTO, including a parsed
// summary of the FASTA listing when it can be read.
func (h GetHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	result, err := h.Svc.Lookup(r.Context(), r.PathValue("id"))
	if err != nil {
		respond.SafeError(w, http.StatusInternalServerError, toAppError(err))
		return
	}

	var summary *fasta.Summary
	if s, err := fasta.Summarize(result.Sequence); err != nil {
		logging.FromContext(r.Context()).Warn("FASTA listing could not be parsed",
			slog.String("pdb_id", result.Entry.ID),
			slog.String("fasta_source", string(result.SequenceSource)),
			slog.Any("error", err))
	} else {
		summary = &s
	}

	respond.JSON(w, http.StatusOK, toDTO(result, summary))
}

// FASTAHandler serves GET /entries/{id}/fasta as text/plain.
type FASTAHandler struct{ Svc Looker }

// ServeHTTP answers with the sequence listing only. The X-Fasta-Source
// header tells whether it was synthesized.
func (h FASTAHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	result, err := h.Svc.Lookup(r.Context(), r.PathValue("id"))
	if err != nil {
		respond.SafeError(w, http.StatusInternalServerError, toAppError(err))
		return
	}

	w.Header().Set("X-Fasta-Source", string(result.SequenceSource))
	w.Header().Set("Content-Disposition", mime.FormatMediaType("inline", map[string]string{"filename": result.Entry.ID + ".fasta"}))
	respond.Text(w, http.StatusOK, result.Sequence)
}
