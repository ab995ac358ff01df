// Package catalog keeps a local mirror of the upstream card catalog fresh and
// answers card-name lookups against it.
package catalog

import (
	"fmt"
	"strings"
	"time"

	"golang.org/x/text/unicode/norm"

	"github.com/arcanaland/proxyprint/internal/card"
	"github.com/arcanaland/proxyprint/internal/fault"
)

// Catalog is an immutable, ordered snapshot of card records.
// A nil *Catalog behaves as an empty catalog.
type Catalog struct {
	cards   []card.Card
	updated time.Time

	// first index of each exact name and each front-face name
	byName  map[string]int
	byFront map[string]int
}

// New builds a catalog over cards. A zero updated means the age is unknown.
func New(cards []card.Card, updated time.Time) *Catalog {
	c := &Catalog{
		cards:   cards,
		updated: updated.UTC(),
		byName:  make(map[string]int, len(cards)),
		byFront: make(map[string]int),
	}
	for i := range cards {
		key := normalize(cards[i].Name)
		if _, ok := c.byName[key]; !ok {
			c.byName[key] = i
		}
		if front := cards[i].FrontName(); front != "" {
			fk := normalize(front)
			if _, ok := c.byFront[fk]; !ok {
				c.byFront[fk] = i
			}
		}
	}
	return c
}

// Len returns the number of records.
func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.cards)
}

// Cards returns the records in upstream order.
func (c *Catalog) Cards() []card.Card {
	if c == nil {
		return nil
	}
	return c.cards
}

// LastUpdated returns the upstream stamp of the snapshot, and false when absent.
func (c *Catalog) LastUpdated() (time.Time, bool) {
	if c == nil || c.updated.IsZero() {
		return time.Time{}, false
	}
	return c.updated, true
}

// Find resolves a user-supplied card name. An exact name match anywhere in the
// catalog wins over a front-face match, so "Delver of Secrets" finds
// "Delver of Secrets // Insectile Aberration". Ties go to catalog order.
func (c *Catalog) Find(name string) (*card.Card, error) {
	if c != nil {
		key := normalize(name)
		if i, ok := c.byName[key]; ok {
			return &c.cards[i], nil
		}
		if i, ok := c.byFront[key]; ok {
			return &c.cards[i], nil
		}
	}
	return nil, fault.New(fault.CodeNotFound, fmt.Sprintf("card name %q not found in catalog", name))
}

// Find is the package-level form of (*Catalog).Find.
func Find(c *Catalog, name string) (*card.Card, error) {
	return c.Find(name)
}

func normalize(name string) string {
	return norm.NFC.String(strings.TrimSpace(name))
}

// FindBackFace returns the first card whose second face is named name. It
// backs diagnostics only; decklist resolution never matches back faces.
func (c *Catalog) FindBackFace(name string) (*card.Card, bool) {
	if c == nil {
		return nil, false
	}
	key := normalize(name)
	for i := range c.cards {
		if len(c.cards[i].Faces) > 1 && normalize(c.cards[i].Faces[1].Name) == key {
			return &c.cards[i], true
		}
	}
	return nil, false
}
