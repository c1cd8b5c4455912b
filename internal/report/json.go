package report

import (
	"encoding/json"
	"io"

	"github.com/alecthomas/chroma/v2/quick"
)

// Document is the JSON report envelope.
type Document struct {
	Revision string  `json:"revision,omitempty"`
	Summary  Summary `json:"summary"`
	Rows     []Row   `json:"rows"`
}

// writeJSON writes indented JSON, syntax-highlighted with chroma on terminals.
func writeJSON(w io.Writer, rows []Row, opts Options) error {
	doc := Document{
		Revision: opts.Revision,
		Summary:  Summarize(rows),
		Rows:     rows,
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')
	if opts.Terminal {
		return quick.Highlight(w, string(data), "json", "terminal256", "monokai")
	}
	_, err = w.Write(data)
	return err
}
