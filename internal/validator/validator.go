package validator

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/arcanaland/proxyprint/internal/catalog"
	"github.com/arcanaland/proxyprint/internal/deck"
	"github.com/arcanaland/proxyprint/internal/fault"
	"github.com/arcanaland/proxyprint/internal/sheet"
)

type ValidationResults struct {
	Errors   []string
	Warnings []string
	Units    int
	Pages    int
}

type Validator struct {
	DecklistPath string
	Catalog      *catalog.Catalog
	Results      ValidationResults

	resolver *deck.Resolver
}

func NewValidator(decklistPath string, cat *catalog.Catalog, logger *zap.Logger) *Validator {
	return &Validator{
		DecklistPath: decklistPath,
		Catalog:      cat,
		Results:      ValidationResults{},
		resolver:     deck.NewResolver(logger),
	}
}

// Validate resolves the decklist offline against the catalog. Only an
// unreadable decklist is returned as an error; everything else is reported in
// the results.
func (v *Validator) Validate() (ValidationResults, error) {
	text, err := os.ReadFile(v.DecklistPath)
	if err != nil {
		return v.Results, fault.Wrap(fault.CodeIO, "read decklist "+v.DecklistPath, err)
	}

	if v.Catalog.Len() == 0 {
		v.Results.Errors = append(v.Results.Errors, "card catalog is empty; run 'proxyprint sync' first")
		return v.Results, nil
	}

	res := v.resolver.Resolve(v.Catalog, string(text))
	v.validateLines(res)
	v.validateUnresolved(res)

	v.Results.Units = len(res.Units)
	v.Results.Pages = sheet.Pages(len(res.Units))
	if len(res.Units) == 0 {
		v.Results.Errors = append(v.Results.Errors, "decklist contains no printable cards")
	}

	return v.Results, nil
}

// validateLines reports lines that could not be parsed as entries.
func (v *Validator) validateLines(res deck.Resolution) {
	for _, p := range res.Malformed {
		v.Results.Errors = append(v.Results.Errors, p.String())
	}
}

// validateUnresolved reports names missing from the catalog. Back-face names
// are expected in exports and only noted.
func (v *Validator) validateUnresolved(res deck.Resolution) {
	for _, p := range res.Unresolved {
		if c, ok := v.Catalog.FindBackFace(p.Text); ok {
			v.Results.Warnings = append(v.Results.Warnings,
				fmt.Sprintf("line %d: %q is the back face of %q and is printed with its front; skipped",
					p.Line, p.Text, c.Name))
			continue
		}
		v.Results.Warnings = append(v.Results.Warnings, p.String())
	}
}
