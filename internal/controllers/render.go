// internal/controllers/render.go
package controllers

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/hostelworks/hostel-console/internal/models"
)

func newTable(w io.Writer, headers ...string) *tabwriter.Writer {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(headers, "\t"))
	return tw
}

func row(tw *tabwriter.Writer, cells ...any) {
	parts := make([]string, len(cells))
	for i, c := range cells {
		parts[i] = fmt.Sprint(c)
	}
	fmt.Fprintln(tw, strings.Join(parts, "\t"))
}

// status renders a status with its severity marker, e.g. "occupied [warning]".
func status(value string, sev models.Severity) string {
	if value == "" {
		return "-"
	}
	if sev == models.SeverityDefault {
		return value
	}
	return fmt.Sprintf("%s [%s]", value, sev)
}

func money(v float64) string {
	return fmt.Sprintf("$%.2f", v)
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
