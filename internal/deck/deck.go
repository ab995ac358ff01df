package deck

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"go.uber.org/zap"

	"github.com/arcanaland/proxyprint/internal/card"
	"github.com/arcanaland/proxyprint/internal/logging"
)

// FaceRole tells which physical face of a card a PrintUnit is.
type FaceRole int

const (
	Single FaceRole = iota
	DFCFront
	DFCBack
)

func (r FaceRole) String() string {
	switch r {
	case Single:
		return "single"
	case DFCFront:
		return "dfcFront"
	case DFCBack:
		return "dfcBack"
	default:
		return fmt.Sprintf("FaceRole(%d)", int(r))
	}
}

// PrintUnit is one physical card face to print.
type PrintUnit struct {
	DisplayName string // cache key and file name
	ArtURI      string
	Source      *card.Card
	Role        FaceRole
}

// Entry is one parsed decklist line.
type Entry struct {
	Line   int
	Copies int
	Name   string
}

// Problem describes a decklist line that produced no print units.
type Problem struct {
	Line   int
	Text   string
	Reason string
}

func (p Problem) String() string {
	return fmt.Sprintf("line %d: %s (%q)", p.Line, p.Reason, p.Text)
}

// Resolution is the outcome of resolving a decklist. Units is in print order.
type Resolution struct {
	Units      []PrintUnit
	Entries    []Entry
	Unresolved []Problem
	Malformed  []Problem
}

// Lookup resolves a card name; *catalog.Catalog satisfies it.
type Lookup interface {
	Find(name string) (*card.Card, error)
}

// sectionHeaders are structural lines in common decklist exports.
var sectionHeaders = map[string]bool{
	"deck":       true,
	"main deck":  true,
	"mainboard":  true,
	"sideboard":  true,
	"maybeboard": true,
	"companion":  true,
	"commander":  true,
}

// MaxCopies is the largest copy count a decklist line may ask for.
const MaxCopies = 999

// setSuffix matches an Arena-style printing suffix such as " (M10) 146".
var setSuffix = regexp.MustCompile(`\s+\([A-Za-z0-9]{2,6}\)(\s+[A-Za-z0-9\-★]+)?$`)

// Resolver turns decklist text into print units.
type Resolver struct {
	logger *zap.Logger
}

// NewResolver returns a resolver that reports skipped lines to logger.
func NewResolver(logger *zap.Logger) *Resolver {
	return &Resolver{logger: logging.OrNop(logger)}
}

type lineKind int

const (
	lineEntry lineKind = iota
	lineSkip
	lineMalformed
)

// parseLine classifies one decklist line. Blank lines, comments and section
// headers are lineSkip; an entry with a non-positive or missing count or an
// empty name is lineMalformed.
func parseLine(raw string) (Entry, lineKind, string) {
	line := strings.TrimSpace(raw)
	if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, "//") {
		return Entry{}, lineSkip, ""
	}
	if sectionHeaders[strings.ToLower(strings.TrimSpace(strings.TrimSuffix(line, ":")))] {
		return Entry{}, lineSkip, ""
	}

	copies := 1
	name := line
	if i := strings.IndexFunc(line, unicode.IsSpace); i > 0 && isCount(line[:i]) {
		copies, _ = strconv.Atoi(strings.TrimRight(line[:i], "xX"))
		name = strings.TrimSpace(line[i:])
	} else if isCount(line) {
		copies, _ = strconv.Atoi(strings.TrimRight(line, "xX"))
		name = ""
	}
	name = setSuffix.ReplaceAllString(name, "")

	switch {
	case copies <= 0:
		return Entry{}, lineMalformed, "copies must be positive"
	case copies > MaxCopies:
		return Entry{}, lineMalformed, fmt.Sprintf("copies must be at most %d", MaxCopies)
	case name == "":
		return Entry{}, lineMalformed, "missing card name"
	}
	return Entry{Copies: copies, Name: name}, lineEntry, ""
}

// isCount reports whether tok is an integer, optionally followed by x ("4x").
func isCount(tok string) bool {
	digits := strings.TrimRight(tok, "xX")
	if digits == "" || len(tok)-len(digits) > 1 {
		return false
	}
	_, err := strconv.Atoi(digits)
	return err == nil
}

// Resolve parses text line by line and expands every found card into print
// units. It never fails: unknown names and malformed lines are skipped and
// reported in the Resolution and the log. Output order is line order, then
// copy order, then face order.
func (r *Resolver) Resolve(cat Lookup, text string) Resolution {
	var res Resolution

	// Lines have no length limit; an oversized line is just an unknown name.
	text = strings.TrimPrefix(text, "\ufeff")
	for i, raw := range strings.Split(text, "\n") {
		lineNo := i + 1

		entry, kind, reason := parseLine(raw)
		switch kind {
		case lineSkip:
			continue
		case lineMalformed:
			p := Problem{Line: lineNo, Text: strings.TrimSpace(raw), Reason: reason}
			res.Malformed = append(res.Malformed, p)
			r.logger.Warn("skipping malformed decklist line",
				zap.Int("line", lineNo), zap.String("text", p.Text), zap.String("reason", reason))
			continue
		}
		entry.Line = lineNo

		c, err := cat.Find(entry.Name)
		if err != nil {
			res.Unresolved = append(res.Unresolved, Problem{Line: lineNo, Text: entry.Name, Reason: "card not found"})
			r.logger.Warn("card not found", zap.Int("line", lineNo), zap.String("name", entry.Name))
			continue
		}

		res.Entries = append(res.Entries, entry)
		units := Expand(c)
		for n := 0; n < entry.Copies; n++ {
			res.Units = append(res.Units, units...)
		}
	}
	return res
}

// Expand returns the print units for one copy of c: front then back for cards
// whose art lives on their faces, otherwise a single unit named after the card
// with "//" made filesystem-safe.
func Expand(c *card.Card) []PrintUnit {
	if c.FaceArt() {
		return []PrintUnit{
			{DisplayName: c.Faces[0].Name, ArtURI: c.Faces[0].ArtURI, Source: c, Role: DFCFront},
			{DisplayName: c.Faces[1].Name, ArtURI: c.Faces[1].ArtURI, Source: c, Role: DFCBack},
		}
	}
	return []PrintUnit{{
		DisplayName: strings.ReplaceAll(c.Name, "//", "--"),
		ArtURI:      c.ArtURI,
		Source:      c,
		Role:        Single,
	}}
}
