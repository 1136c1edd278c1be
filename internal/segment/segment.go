// Package segment locates the "ordered examinations" section of an order
// form and merges its lines into examination fragments.
//
// A section starts after an anchor line and ends before a stop line. The
// two form layouts seen in practice ("一般檢查" … "Impression" and
// "列印時間" … "檢查說明") are presets of the same Config.
package segment

import (
	"regexp"
	"strings"
)

// Marker is a substring test applied to one line.
type Marker struct {
	Text       string
	IgnoreCase bool
}

// In reports whether line contains the marker.
func (m Marker) In(line string) bool {
	if m.Text == "" {
		return false
	}
	if m.IgnoreCase {
		return strings.Contains(strings.ToLower(line), strings.ToLower(m.Text))
	}
	return strings.Contains(line, m.Text)
}

// Config describes one section layout.
type Config struct {
	// Anchors open the section; the anchor line itself is not part of it.
	Anchors []Marker
	// Stops close the section; the stop line is not part of it.
	Stops []Marker
	// Noise lines inside the section are dropped.
	Noise []Marker
}

// Exact builds case-sensitive markers.
func Exact(texts ...string) []Marker {
	out := make([]Marker, 0, len(texts))
	for _, t := range texts {
		out = append(out, Marker{Text: t})
	}
	return out
}

// Fold builds case-insensitive markers.
func Fold(texts ...string) []Marker {
	out := make([]Marker, 0, len(texts))
	for _, t := range texts {
		out = append(out, Marker{Text: t, IgnoreCase: true})
	}
	return out
}

var noiseWords = []string{"kV", "mAs", "診", "斷", "健保", "醫師", "科別", "檢體"}

// Routine is the "一般檢查 / Routine" layout.
func Routine() Config {
	return Config{
		Anchors: append(Exact("一般檢查"), Fold("Routine")...),
		Stops: append(
			Exact("檢查說明", "特殊檢查", "說明", "備註", "影像"),
			Fold("Impression", "Finding", "Special", "Note", "Remark")...,
		),
		Noise: Fold(noiseWords...),
	}
}

// PrintTime is the layout whose examinations follow the "列印時間" line and
// end at "檢查說明".
func PrintTime() Config {
	return Config{
		Anchors: Exact("列印時間"),
		Stops:   Exact("檢查說明"),
		Noise:   Exact(noiseWords...),
	}
}

// Preset returns a layout by name ("routine" or "print-time").
func Preset(name string) (Config, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "routine", "":
		return Routine(), true
	case "print-time", "printtime":
		return PrintTime(), true
	}
	return Config{}, false
}

// Segment returns the section lines in one forward scan. A stop line seen
// before any anchor ends the scan with no section. Repeated anchor lines
// inside the section are dropped.
func (c Config) Segment(lines []string) []string {
	var (
		out        []string
		collecting bool
	)
	for _, raw := range lines {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}
		if !collecting {
			if matchAny(c.Anchors, line) {
				collecting = true
				continue
			}
			if matchAny(c.Stops, line) {
				return nil
			}
			continue
		}
		if matchAny(c.Stops, line) {
			break
		}
		if matchAny(c.Noise, line) || matchAny(c.Anchors, line) {
			continue
		}
		out = append(out, line)
	}
	return out
}

func matchAny(markers []Marker, line string) bool {
	for _, m := range markers {
		if m.In(line) {
			return true
		}
	}
	return false
}

var (
	reCodeOnly = regexp.MustCompile(`^\*?\d{3,}[A-Za-z0-9-]*$`)
	reCodeDesc = regexp.MustCompile(`^\*?\d{3,}[A-Za-z0-9-]*\s+.+`)
	reSerial   = regexp.MustCompile(`^RA\d+$`)
)

// MergeFragments joins code-only lines with the description line that
// follows them. Serial-number lines are skipped. Lines that are neither a
// code nor a pending description are kept only when keepLoose is set.
func MergeFragments(section []string, keepLoose bool) []string {
	var (
		out     []string
		pending string
		held    bool
	)
	flush := func() {
		if held {
			out = append(out, pending)
			pending, held = "", false
		}
	}

	for _, line := range section {
		line = strings.TrimSpace(line)
		if line == "" || reSerial.MatchString(line) {
			continue
		}
		switch {
		case reCodeDesc.MatchString(line):
			flush()
			out = append(out, line)
		case reCodeOnly.MatchString(line):
			flush()
			pending, held = line, true
		case held:
			pending += " " + line
			flush()
		case keepLoose:
			out = append(out, line)
		}
	}
	flush()
	return out
}
