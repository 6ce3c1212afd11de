package naming

import (
	"path/filepath"
	"regexp"
	"strings"
)

// slidePattern matches the full base name. The extension is matched
// case-insensitively to agree with discovery.
var slidePattern = regexp.MustCompile(
	`^(?P<specimen>[^_]*)_(?P<participant>[^_]*)_(?P<biopsyid>[^_]*)_(?P<slideid>[^_]*)_` +
		`(?P<imageid>[^_]*)_(?P<blocknumber>[^_]*)_(?P<slidenumber>[^_]*)_` +
		`(?P<department>[^_]*)_(?P<stain>[^_.]*)\.(?i:svs|ndpi)$`)

// SlideName holds the nine fields encoded in a slide filename, each with
// surrounding whitespace trimmed.
type SlideName struct {
	Specimen    string
	Participant string
	BiopsyID    string
	SlideID     string
	ImageID     string
	BlockNumber string
	SlideNumber string
	Department  string
	Stain       string
}

// ParseFilename parses name (a base name or a full path; only the base name
// is considered) into a SlideName. ok is false when the name does not follow
// the convention; no partial result is returned in that case.
func ParseFilename(name string) (sn SlideName, ok bool) {
	m := slidePattern.FindStringSubmatch(filepath.Base(name))
	if m == nil {
		return SlideName{}, false
	}
	group := func(g string) string {
		return strings.TrimSpace(m[slidePattern.SubexpIndex(g)])
	}
	return SlideName{
		Specimen:    group("specimen"),
		Participant: group("participant"),
		BiopsyID:    group("biopsyid"),
		SlideID:     group("slideid"),
		ImageID:     group("imageid"),
		BlockNumber: group("blocknumber"),
		SlideNumber: group("slidenumber"),
		Department:  group("department"),
		Stain:       group("stain"),
	}, true
}

// Extensions lists the recognized whole-slide-image extensions (lowercase,
// with leading dot).
var Extensions = []string{".svs", ".ndpi"}

// IsSlideFile reports whether path has a recognized whole-slide-image
// extension, compared case-insensitively.
func IsSlideFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range Extensions {
		if ext == e {
			return true
		}
	}
	return false
}
