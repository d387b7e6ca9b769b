package report

import (
	"embed"
	"encoding/json"
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dannydang64/snowboard-store-sub000/internal/perf"
)

//go:embed templates/report.html
var templateFS embed.FS

var reportTmpl = template.Must(template.New("report.html").Funcs(template.FuncMap{
	"ms": func(d time.Duration) string {
		return fmt.Sprintf("%dms", d.Milliseconds())
	},
	"pct": func(v float64) string {
		return fmt.Sprintf("%.1f%%", v*100)
	},
}).ParseFS(templateFS, "templates/report.html"))

// reportData is what the HTML template renders.
type reportData struct {
	Summary Summary
	Perf    []perf.CategorySummary
	Flagged []perf.Sample
}

// Write renders summary.json and report.html into dir. Failures are
// reported but a partial write never invalidates the run itself; callers
// log the error and keep their exit code.
func Write(dir string, s Summary, mon *perf.Monitor) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("report dir: %w", err)
	}

	b, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("encode summary: %w", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "summary.json"), b, 0o644); err != nil {
		return fmt.Errorf("write summary.json: %w", err)
	}

	data := reportData{Summary: s}
	if mon != nil {
		data.Perf = mon.Summary()
		data.Flagged = mon.Breaches()
	}
	f, err := os.Create(filepath.Join(dir, "report.html"))
	if err != nil {
		return fmt.Errorf("create report.html: %w", err)
	}
	defer f.Close()
	if err := reportTmpl.Execute(f, data); err != nil {
		return fmt.Errorf("render report.html: %w", err)
	}
	return nil
}

// SanitizeName turns a test name into a safe artifact file stem.
func SanitizeName(name string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r == '-' || r == '_':
			return r
		default:
			return '_'
		}
	}, name)
}
