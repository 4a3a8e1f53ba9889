package device

import (
	"bufio"
	"strings"
	"unicode"
)

// ParseCandidates turns `adb devices -l` output into records without
// filtering by family. The first line is the header and is always skipped.
// Only lines mentioning "device" and not "List" are considered; the serial
// is the first field. Serials repeated later in the output are dropped.
func ParseCandidates(raw string, fam Family) []Record {
	var out []Record
	seen := map[string]bool{}

	sc := bufio.NewScanner(strings.NewReader(raw))
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	first := true
	for sc.Scan() {
		line := strings.TrimRight(sc.Text(), "\r")
		if first {
			first = false
			continue
		}
		if !strings.Contains(line, "device") || strings.Contains(line, "List") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		serial := fields[0]
		if seen[serial] {
			continue
		}
		seen[serial] = true

		rec := Record{
			Serial:   serial,
			Model:    extractModel(line),
			Product:  tokenValue(fields, "product:"),
			Codename: tokenValue(fields, "device:"),
		}
		if len(fields) > 1 && !strings.Contains(fields[1], ":") {
			rec.State = fields[1]
		}
		rec.Family = fam.Member(rec.Model)
		out = append(out, rec)
	}
	return out
}

// Parse returns only the records belonging to fam.
func Parse(raw string, fam Family) []Record {
	var out []Record
	for _, r := range ParseCandidates(raw, fam) {
		if r.Family {
			out = append(out, r)
		}
	}
	return out
}

func extractModel(line string) string {
	idx := strings.Index(line, "model:")
	if idx < 0 {
		return UnknownModel
	}
	rest := line[idx+len("model:"):]
	if end := strings.IndexFunc(rest, unicode.IsSpace); end >= 0 {
		return rest[:end]
	}
	return rest
}

func tokenValue(fields []string, prefix string) string {
	for _, f := range fields[1:] {
		if strings.HasPrefix(f, prefix) {
			return strings.TrimPrefix(f, prefix)
		}
	}
	return ""
}
