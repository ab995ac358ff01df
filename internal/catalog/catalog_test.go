package catalog

import (
	"errors"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arcanaland/proxyprint/internal/card"
	"github.com/arcanaland/proxyprint/internal/fault"
)

func fixtureCards(t *testing.T) []card.Card {
	t.Helper()
	f, err := os.Open("testdata/oracle_cards.json")
	require.NoError(t, err)
	defer f.Close()
	cards, err := card.Decode(f)
	require.NoError(t, err)
	return cards
}

func TestFindExactName(t *testing.T) {
	c := New(fixtureCards(t), time.Time{})
	for _, rec := range c.Cards() {
		got, err := c.Find(rec.Name)
		require.NoError(t, err, rec.Name)
		assert.Equal(t, rec.Name, got.Name)
	}
}

func TestFindFrontFace(t *testing.T) {
	c := New(fixtureCards(t), time.Time{})
	for _, rec := range c.Cards() {
		if !rec.HasFaces() {
			continue
		}
		got, err := Find(c, rec.FrontName())
		require.NoError(t, err, rec.FrontName())
		assert.Equal(t, rec.Name, got.Name)
	}
}

func TestFindBackFaceMisses(t *testing.T) {
	c := New(fixtureCards(t), time.Time{})
	_, err := c.Find("Insectile Aberration")
	assert.True(t, errors.Is(err, fault.ErrNotFound))
}

func TestFindExactBeatsFrontFace(t *testing.T) {
	// "Fire" is both a standalone record and the front face of "Fire // Ice".
	cards := []card.Card{
		{Name: "Fire // Ice", Layout: card.LayoutSplit, Faces: []card.Face{{Name: "Fire"}, {Name: "Ice"}}, ArtURI: "split"},
		{Name: "Fire", Layout: card.LayoutNormal, ArtURI: "fire"},
	}
	c := New(cards, time.Time{})

	got, err := c.Find("Fire")
	require.NoError(t, err)
	assert.Equal(t, "fire", got.ArtURI)
}

func TestFindFirstMatchWins(t *testing.T) {
	cards := []card.Card{
		{Name: "Duplicate", ArtURI: "first"},
		{Name: "Duplicate", ArtURI: "second"},
	}
	got, err := New(cards, time.Time{}).Find("Duplicate")
	require.NoError(t, err)
	assert.Equal(t, "first", got.ArtURI)
}

func TestFindNormalizesUnicode(t *testing.T) {
	// precomposed û in the catalog, decomposed u + combining circumflex in the query
	cards := []card.Card{{Name: "Lim-D\u00fbl's Vault", ArtURI: "vault"}}
	got, err := New(cards, time.Time{}).Find("  Lim-Du\u0302l's Vault ")
	require.NoError(t, err)
	assert.Equal(t, "vault", got.ArtURI)
}

func TestNilCatalogIsEmpty(t *testing.T) {
	var c *Catalog
	assert.Equal(t, 0, c.Len())
	_, ok := c.LastUpdated()
	assert.False(t, ok)
	_, err := c.Find("Lightning Bolt")
	assert.True(t, errors.Is(err, fault.ErrNotFound))
}

func TestManifestSelect(t *testing.T) {
	raw, err := os.ReadFile("testdata/bulk_data.json")
	require.NoError(t, err)
	m, err := ParseManifest(raw)
	require.NoError(t, err)

	ds, err := m.Select("Oracle Cards")
	require.NoError(t, err)
	assert.Equal(t, "https://data.example/bulk/oracle-cards.json", ds.DownloadURI)
	assert.Equal(t, time.Date(2026, 10, 17, 9, 3, 37, 523000000, time.UTC), ds.UpdatedAt.UTC())

	// matched by type when upstream renames the entry
	m.Data[0].Name = "Oracle Cards (v2)"
	ds, err = m.Select("Oracle Cards")
	require.NoError(t, err)
	assert.Equal(t, "oracle_cards", ds.Type)

	_, err = m.Select("Unique Artwork")
	assert.True(t, errors.Is(err, fault.ErrIncompleteDataset))
}

func TestFindBackFace(t *testing.T) {
	c := New(fixtureCards(t), time.Time{})

	got, ok := c.FindBackFace("Insectile Aberration")
	require.True(t, ok)
	assert.Equal(t, "Delver of Secrets // Insectile Aberration", got.Name)

	_, ok = c.FindBackFace("Delver of Secrets")
	assert.False(t, ok)
}
