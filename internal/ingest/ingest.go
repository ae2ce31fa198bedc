// Package ingest parses platform files of the form
//
//	Name:/loc1,/loc2,...
//
// into platform records. Malformed lines are skipped and reported as
// diagnostics instead of failing the whole file.
package ingest

import (
	"fmt"
	"io"
	"strings"

	"ad-platforms/internal/location"
	"ad-platforms/internal/platform"
)

const utf8BOM = "\ufeff"

// Reason explains why a line was skipped.
type Reason string

const (
	ReasonEmptyLine        Reason = "empty line"
	ReasonMissingSeparator Reason = "missing separator"
	ReasonEmptyName        Reason = "empty name"
	ReasonDuplicate        Reason = "duplicate"
	ReasonNoLocations      Reason = "no valid locations"
)

// Diagnostic records a skipped line. Line is 0-indexed.
type Diagnostic struct {
	Line   int    `json:"line"`
	Reason Reason `json:"reason"`
}

// Result is the outcome of parsing one file.
type Result struct {
	Platforms []platform.Platform
	Skipped   []Diagnostic
	Lines     int
	// Empty is set when the input had no lines at all.
	Empty bool
}

// ParseReader reads r to the end and parses its contents.
func ParseReader(r io.Reader) (Result, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return Result{}, fmt.Errorf("read platform file: %w", err)
	}
	return Parse(string(b)), nil
}

// Parse parses raw line by line. The first occurrence of a platform name
// wins; later lines with the same name in any letter case are skipped.
// A leading UTF-8 byte order mark is ignored.
func Parse(raw string) Result {
	lines := splitLines(strings.TrimPrefix(raw, utf8BOM))
	res := Result{
		Platforms: []platform.Platform{},
		Lines:     len(lines),
		Empty:     len(lines) == 0,
	}

	seen := make(map[string]struct{})
	for i, line := range lines {
		p, reason, ok := parseLine(line, seen)
		if !ok {
			res.Skipped = append(res.Skipped, Diagnostic{Line: i, Reason: reason})
			continue
		}
		seen[strings.ToLower(p.Name)] = struct{}{}
		res.Platforms = append(res.Platforms, p)
	}
	return res
}

func parseLine(line string, seen map[string]struct{}) (platform.Platform, Reason, bool) {
	if strings.TrimSpace(line) == "" {
		return platform.Platform{}, ReasonEmptyLine, false
	}

	rawName, rawLocs, found := strings.Cut(line, ":")
	if !found {
		return platform.Platform{}, ReasonMissingSeparator, false
	}

	name := strings.TrimSpace(rawName)
	if name == "" {
		return platform.Platform{}, ReasonEmptyName, false
	}
	if _, dup := seen[strings.ToLower(name)]; dup {
		return platform.Platform{}, ReasonDuplicate, false
	}

	locs := parseLocations(rawLocs)
	if len(locs) == 0 {
		return platform.Platform{}, ReasonNoLocations, false
	}
	return platform.Platform{Name: name, Locations: locs}, "", true
}

// parseLocations keeps the valid, distinct entries of a comma-separated list.
func parseLocations(s string) []string {
	var locs []string
	seen := make(map[string]struct{})
	for _, piece := range strings.Split(s, ",") {
		loc := strings.TrimSpace(piece)
		if !location.Valid(loc) {
			continue
		}
		if _, dup := seen[loc]; dup {
			continue
		}
		seen[loc] = struct{}{}
		locs = append(locs, loc)
	}
	return locs
}

// splitLines splits on \n, \r\n and \r. A trailing terminator does not
// produce an extra empty line.
func splitLines(s string) []string {
	if s == "" {
		return nil
	}
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	s = strings.TrimSuffix(s, "\n")
	return strings.Split(s, "\n")
}
