package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"pdb-explorer/internal/domain/entity"
	"pdb-explorer/internal/fasta"
	"pdb-explorer/internal/observability/logging"
)

// looker is the lookup operation the CLI drives.
type looker interface {
	Lookup(ctx context.Context, raw string) (*entity.RetrievalResult, error)
}

type options struct {
	ID        string
	Output    string
	FASTAOnly bool
	FASTAFile string
}

// jsonOutput is the -output json document.
type jsonOutput struct {
	*entity.RetrievalResult
	Summary *fasta.Summary `json:"summary,omitempty"`
}

// errWriteFASTA marks a failure to save the listing, as opposed to a lookup failure.
var errWriteFASTA = errors.New("failed to write FASTA file")

// run performs one lookup and renders it to w.
func run(ctx context.Context, svc looker, opts options, w io.Writer) error {
	result, err := svc.Lookup(ctx, opts.ID)
	if err != nil {
		return err
	}

	if opts.FASTAFile != "" {
		if err := os.WriteFile(opts.FASTAFile, []byte(ensureNewline(result.Sequence)), 0o644); err != nil {
			return fmt.Errorf("%w: %v", errWriteFASTA, err)
		}
		logging.FromContext(ctx).Info("fasta written",
			slog.String("pdb_id", result.Entry.ID),
			slog.String("path", opts.FASTAFile),
			slog.String("source", string(result.SequenceSource)))
	}

	var summary *fasta.Summary
	if s, err := fasta.Summarize(result.Sequence); err != nil {
		logging.FromContext(ctx).Warn("fasta listing could not be summarized",
			slog.String("pdb_id", result.Entry.ID),
			slog.Any("error", err))
	} else {
		summary = &s
	}

	switch {
	case opts.FASTAOnly:
		_, err = io.WriteString(w, ensureNewline(result.Sequence))
		return err
	case opts.Output == "json":
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		return encoder.Encode(jsonOutput{RetrievalResult: result, Summary: summary})
	default:
		return renderText(w, result, summary)
	}
}

// renderText prints the entry in human-readable format. Headings are styled
// only when w is a terminal.
func renderText(w io.Writer, result *entity.RetrievalResult, summary *fasta.Summary) error {
	r := lipgloss.NewRenderer(w)
	badge := r.NewStyle().Bold(true).Foreground(lipgloss.Color("#2563EB"))
	title := r.NewStyle().Bold(true)
	heading := r.NewStyle().Bold(true).Foreground(lipgloss.Color("#475569"))
	chain := r.NewStyle().Foreground(lipgloss.Color("#2563EB"))

	var b strings.Builder
	e := &result.Entry

	fmt.Fprintf(&b, "%s\n", badge.Render("ID: "+e.ID))
	fmt.Fprintf(&b, "%s\n\n", title.Render(e.Title))
	fmt.Fprintf(&b, "Method:     %s\n", e.PrimaryMethod())
	fmt.Fprintf(&b, "Resolution: %s\n", e.ResolutionLabel())
	fmt.Fprintf(&b, "Polymers:   %d unique\n", e.PolymerEntityCount)
	fmt.Fprintf(&b, "Models:     %d deposited\n", e.DepositedModelCount)

	fmt.Fprintf(&b, "\n%s\n", heading.Render(fmt.Sprintf("Molecular Components (%d):", len(result.Entities))))
	for i := range result.Entities {
		p := &result.Entities[i]
		fmt.Fprintf(&b, "%d. %s\n", i+1, p.Description)
		fmt.Fprintf(&b, "   Organism: %s\n", p.OrganismLabel())
		fmt.Fprintf(&b, "   Chains:   %s\n", chain.Render(strings.Join(p.Chains, ", ")))
	}

	label := fmt.Sprintf("FASTA Sequence (%s", result.SequenceSource)
	if summary != nil {
		label += fmt.Sprintf(", %d records, %d residues", len(summary.Records), summary.TotalResidues)
	}
	fmt.Fprintf(&b, "\n%s\n", heading.Render(label+"):"))
	b.WriteString(ensureNewline(result.Sequence))

	_, err := io.WriteString(w, b.String())
	return err
}

// userMessage turns err into the line printed on stderr.
func userMessage(err error) string {
	if errors.Is(err, errWriteFASTA) {
		return err.Error()
	}
	return entity.UserMessage(err)
}

func ensureNewline(s string) string {
	if s == "" || strings.HasSuffix(s, "\n") {
		return s
	}
	return s + "\n"
}
