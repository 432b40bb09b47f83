package report

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/goccy/go-json"
	"github.com/vmihailenco/msgpack/v5"
)

// ErrUnknownFormat is returned for an output format other than text, json
// or msgpack.
var ErrUnknownFormat = errors.New("unknown output format")

// Format selects how a Document is encoded.
type Format string

const (
	FormatText    Format = "text"
	FormatJSON    Format = "json"
	FormatMsgpack Format = "msgpack"
)

// Formats lists the supported formats.
var Formats = []Format{FormatText, FormatJSON, FormatMsgpack}

// ParseFormat accepts a format name. Empty selects text.
func ParseFormat(name string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(name))); f {
	case "":
		return FormatText, nil
	case FormatText, FormatJSON, FormatMsgpack:
		return f, nil
	}
	return "", fmt.Errorf("%w %q", ErrUnknownFormat, name)
}

// ContentType returns the HTTP media type for the format.
func (f Format) ContentType() string {
	switch f {
	case FormatJSON:
		return "application/json"
	case FormatMsgpack:
		return "application/msgpack"
	default:
		return "text/plain; charset=utf-8"
	}
}

// Write encodes v in the given format. Text output is only defined for
// Documents; other values fall back to their JSON form.
func Write(w io.Writer, format Format, v any) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case FormatMsgpack:
		return msgpack.NewEncoder(w).Encode(v)
	case FormatText:
		if doc, ok := v.(Document); ok {
			return WriteText(w, doc)
		}
		return Write(w, FormatJSON, v)
	}
	return fmt.Errorf("%w %q", ErrUnknownFormat, format)
}

const (
	divider  = "-----------------------------------"
	barWidth = 30
)

// WriteText renders the document as plain text with ASCII bar charts.
func WriteText(w io.Writer, doc Document) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintf(bw, "%s\n%s\n%s\n", divider, doc.Title, divider)
	fmt.Fprintln(bw, doc.Description)

	if len(doc.Notices) > 0 {
		fmt.Fprintln(bw, "\nNotices:")
		for _, n := range doc.Notices {
			fmt.Fprintf(bw, "- %s: %s\n", n.Field, n.Message)
		}
	}

	fmt.Fprintln(bw, "\nDetailed Results")
	section := SectionResults
	for _, l := range doc.Lines {
		if l.Section != section {
			section = l.Section
			switch section {
			case SectionLeakage:
				fmt.Fprintln(bw, "\nImpact of Leakage")
			case SectionCost:
				fmt.Fprintln(bw)
			}
		}
		fmt.Fprintln(bw, l.Text)
	}

	writeBars(bw, doc.LossDistribution)
	writeBars(bw, doc.CostBreakdown)

	fmt.Fprintf(bw, "\n%s\n", doc.EmissionsTrend.Title)
	for i, p := range doc.EmissionsTrend.Points {
		fmt.Fprintf(bw, "%d  %.4f\n", i+1, p)
	}
	fmt.Fprintln(bw, divider)

	return bw.Flush()
}

func writeBars(w io.Writer, chart BarChart) {
	fmt.Fprintf(w, "\n%s\n", chart.Title)

	labelWidth := 0
	for _, b := range chart.Bars {
		labelWidth = max(labelWidth, len(b.Label))
	}

	top := chart.Max()
	for _, b := range chart.Bars {
		n := 0
		if top > 0 && b.Value > 0 {
			n = max(1, int(math.Round(b.Value/top*barWidth)))
		}
		fmt.Fprintf(w, "%-*s |%-*s %.2f\n", labelWidth, b.Label, barWidth, strings.Repeat("#", n), b.Value)
	}
}
