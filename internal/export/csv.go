// Package export renders role-scoped report lists as CSV files, the only
// export format the system produces.
package export

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"campusreport/internal/report"
)

// Header is fixed; consumers key on these column names.
var Header = []string{"No.", "Date", "College", "Category", "Urgency", "Status", "Description"}

const dateLayout = "2006-01-02 15:04:05"

// Filter narrows an already role-scoped list. Empty fields mean "all".
type Filter struct {
	Status  report.Status
	College string
}

func (f Filter) Apply(reports []report.Report) []report.Report {
	out := []report.Report{}
	for _, r := range reports {
		if f.Status != "" && r.Status != f.Status {
			continue
		}
		if f.College != "" && string(r.College) != f.College {
			continue
		}
		out = append(out, r)
	}
	return out
}

// Render produces the CSV blob: every field quoted, embedded quotes doubled,
// rows numbered from 1, newline-separated. This matches the files earlier
// releases wrote, which is why encoding/csv (which quotes only when needed)
// is not used here.
func Render(reports []report.Report) []byte {
	var b strings.Builder
	writeRow(&b, Header)
	for i, r := range reports {
		writeRow(&b, []string{
			fmt.Sprintf("%d", i+1),
			r.Date.Format(dateLayout),
			string(r.College),
			r.Category,
			string(r.Urgency),
			string(r.Status),
			r.Description,
		})
	}
	return []byte(strings.TrimSuffix(b.String(), "\n"))
}

func writeRow(b *strings.Builder, fields []string) {
	for i, f := range fields {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteByte('"')
		b.WriteString(strings.ReplaceAll(f, `"`, `""`))
		b.WriteByte('"')
	}
	b.WriteByte('\n')
}

// WriteFile renders the reports into dir under a timestamped name and returns
// the full path.
func WriteFile(dir string, reports []report.Report, now time.Time) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create export dir: %w", err)
	}
	name := fmt.Sprintf("reports-summary-%d.csv", now.UnixMilli())
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, Render(reports), 0o644); err != nil {
		return "", fmt.Errorf("write export: %w", err)
	}
	return path, nil
}
