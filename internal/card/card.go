package card

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/arcanaland/proxyprint/internal/fault"
)

// Layout is the upstream layout kind of a card.
type Layout string

const (
	LayoutNormal    Layout = "normal"
	LayoutTransform Layout = "transform"
	LayoutModalDFC  Layout = "modal_dfc"
	LayoutFlip      Layout = "flip"
	LayoutSplit     Layout = "split"
)

// doubleFacedLayouts always print as two physical faces.
var doubleFacedLayouts = map[Layout]bool{
	LayoutTransform: true,
	LayoutModalDFC:  true,
}

// Face is one named face of a multi-face card. ArtURI is empty when the art
// lives on the parent card (split, flip, adventure).
type Face struct {
	Name   string
	ArtURI string
}

// Card represents one catalog entry, keyed by Name.
//
// Exactly one of ArtURI or per-face art is set: single-art cards carry their
// own ArtURI (and may still list faces for lookup), face-art cards have an
// empty ArtURI and two faces that each carry art.
type Card struct {
	Name   string
	Layout Layout
	Faces  []Face
	ArtURI string
}

// HasFaces reports whether the card lists faces.
func (c *Card) HasFaces() bool {
	return len(c.Faces) > 0
}

// FrontName returns the name of the first face, or "" if the card has none.
func (c *Card) FrontName() string {
	if len(c.Faces) == 0 {
		return ""
	}
	return c.Faces[0].Name
}

// FaceArt reports whether each face carries its own art, meaning the card
// prints as a front and a back.
func (c *Card) FaceArt() bool {
	return c.ArtURI == "" && len(c.Faces) == 2
}

// imageURIs is the subset of the upstream image_uris object we read.
type imageURIs struct {
	PNG string `json:"png"`
}

type rawFace struct {
	Name      string     `json:"name"`
	ImageURIs *imageURIs `json:"image_uris"`
}

type rawCard struct {
	Name      string     `json:"name"`
	Layout    string     `json:"layout"`
	CardFaces []rawFace  `json:"card_faces"`
	ImageURIs *imageURIs `json:"image_uris"`
}

func (f rawFace) png() string {
	if f.ImageURIs == nil {
		return ""
	}
	return f.ImageURIs.PNG
}

func (r rawCard) png() string {
	if r.ImageURIs == nil {
		return ""
	}
	return r.ImageURIs.PNG
}

// fromRaw validates an upstream record into the tagged Card form.
func fromRaw(r rawCard) (Card, error) {
	if strings.TrimSpace(r.Name) == "" {
		return Card{}, fault.New(fault.CodeMalformed, "card without a name")
	}
	c := Card{Name: r.Name, Layout: Layout(r.Layout)}
	for _, f := range r.CardFaces {
		c.Faces = append(c.Faces, Face{Name: f.Name, ArtURI: f.png()})
	}

	facesHaveArt := len(c.Faces) == 2 && c.Faces[0].ArtURI != "" && c.Faces[1].ArtURI != ""

	switch {
	case doubleFacedLayouts[c.Layout]:
		if !facesHaveArt {
			return Card{}, fault.New(fault.CodeMalformed,
				fmt.Sprintf("%s card %q needs two faces with art", c.Layout, c.Name))
		}
	case r.png() != "":
		c.ArtURI = r.png()
		for i := range c.Faces {
			c.Faces[i].ArtURI = ""
		}
	case facesHaveArt:
		// reversible_card, double_faced_token: art only on the faces.
	default:
		return Card{}, fault.New(fault.CodeMalformed,
			fmt.Sprintf("card %q (%s) has no art reference", c.Name, c.Layout))
	}
	return c, nil
}

// Decode reads a JSON array of upstream card objects. Any record that does
// not satisfy the Card invariants fails the whole decode with fault.ErrMalformed.
func Decode(r io.Reader) ([]Card, error) {
	dec := json.NewDecoder(r)

	tok, err := dec.Token()
	if err != nil {
		return nil, fault.Wrap(fault.CodeMalformed, "read card array", err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '[' {
		return nil, fault.New(fault.CodeMalformed, "card payload is not a JSON array")
	}

	var cards []Card
	for i := 0; dec.More(); i++ {
		var raw rawCard
		if err := dec.Decode(&raw); err != nil {
			return nil, fault.Wrap(fault.CodeMalformed, fmt.Sprintf("decode card #%d", i), err)
		}
		c, err := fromRaw(raw)
		if err != nil {
			return nil, fmt.Errorf("card #%d: %w", i, err)
		}
		cards = append(cards, c)
	}
	if _, err := dec.Token(); err != nil {
		return nil, fault.Wrap(fault.CodeMalformed, "read end of card array", err)
	}
	return cards, nil
}
