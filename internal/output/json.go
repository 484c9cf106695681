package output

import (
	"encoding/json"

	"github.com/wordlens/wordlens/internal/core"
)

// JSONFormatter renders results as JSON.
type JSONFormatter struct {
	Indent bool
}

func (f *JSONFormatter) marshal(v any) (string, error) {
	var (
		data []byte
		err  error
	)
	if f.Indent {
		data, err = json.MarshalIndent(v, "", "  ")
	} else {
		data, err = json.Marshal(v)
	}
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// FormatResults renders lookup results as JSON.
func (f *JSONFormatter) FormatResults(results []*core.WordResult) (string, error) {
	return f.marshal(results)
}

// FormatReport renders a run report as JSON.
func (f *JSONFormatter) FormatReport(report *core.RunReport) (string, error) {
	return f.marshal(report)
}

// FormatCandidates renders a candidate list as JSON.
func (f *JSONFormatter) FormatCandidates(candidates []core.Candidate) (string, error) {
	return f.marshal(candidates)
}

// FormatStatus renders the status report as JSON.
func (f *JSONFormatter) FormatStatus(status *StatusReport) (string, error) {
	return f.marshal(status)
}
