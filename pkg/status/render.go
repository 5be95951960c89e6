// pkg/status/render.go

package status

import (
	"fmt"
	"strings"

	"github.com/Felipebmaitan/HomeLab/pkg/registry"
)

var categoryTitles = map[registry.Category]string{
	registry.CategoryCrypto: "Crypto stacks",
	registry.CategoryMedia:  "Media services",
	registry.CategoryProxy:  "Reverse proxy",
}

// Render formats a report as the human-readable summary printed after every
// operation. ports optionally maps unit names to their published ports for
// display.
func Render(report *Report, ports map[string]string) string {
	var sb strings.Builder

	for _, category := range []registry.Category{
		registry.CategoryCrypto, registry.CategoryMedia, registry.CategoryProxy,
	} {
		units := unitsIn(report, category)
		if len(units) == 0 {
			continue
		}
		sb.WriteString(categoryTitles[category])
		sb.WriteString("\n")
		for _, u := range units {
			mark := "✗ stopped"
			if u.Running {
				mark = "✓ running"
			}
			line := fmt.Sprintf("  %-14s %s", u.Unit, mark)
			if port, ok := ports[u.Unit]; ok && u.Running {
				line += fmt.Sprintf("  (port %s)", port)
			}
			sb.WriteString(line)
			sb.WriteString("\n")
		}
	}

	sb.WriteString(fmt.Sprintf(
		"\nContainers: %d (%d running)  Images: %d  Volumes: %d  Networks: %d\n",
		report.Counts.Containers, report.Counts.Running,
		report.Counts.Images, report.Counts.Volumes, report.Counts.Networks,
	))
	return sb.String()
}

func unitsIn(report *Report, category registry.Category) []UnitStatus {
	var out []UnitStatus
	for _, u := range report.Units {
		if u.Category == category {
			out = append(out, u)
		}
	}
	return out
}
