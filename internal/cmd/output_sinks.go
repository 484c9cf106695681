package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
)

type outputSink struct {
	writer io.Writer
	close  func() error
	path   string
}

func openSink(path string) (*outputSink, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" || trimmed == "-" {
		return &outputSink{writer: os.Stdout, close: func() error { return nil }, path: "-"}, nil
	}

	if err := os.MkdirAll(filepath.Dir(trimmed), 0o750); err != nil {
		return nil, fmt.Errorf("create output directory: %w", err)
	}
	file, err := os.Create(trimmed) // #nosec G304 -- path comes from the CLI flag
	if err != nil {
		return nil, err
	}
	return &outputSink{writer: file, close: file.Close, path: trimmed}, nil
}

// emit writes rendered output to the command's --out target, defaulting
// to stdout.
func emit(cmd *cobra.Command, rendered string) error {
	if strings.TrimSpace(rendered) == "" {
		return nil
	}

	outPath := ""
	if flag := cmd.Flags().Lookup("out"); flag != nil {
		outPath = flag.Value.String()
	}

	sink, err := openSink(outPath)
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintln(sink.writer, rendered); err != nil {
		_ = sink.close()
		return err
	}
	return sink.close()
}
