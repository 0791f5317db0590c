package metrics

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/prometheus/client_golang/prometheus"
)

// WriteTextfile writes everything g gathers to path in the text exposition
// format read by node_exporter's textfile collector. The file is replaced
// atomically; path should end in .prom.
func WriteTextfile(g prometheus.Gatherer, path string) error {
	if g == nil {
		return errors.New("metrics gatherer required")
	}
	if path == "" {
		return errors.New("metrics textfile path required")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create metrics dir: %w", err)
	}
	if err := prometheus.WriteToTextfile(path, g); err != nil {
		return fmt.Errorf("write metrics textfile %s: %w", path, err)
	}
	return nil
}
