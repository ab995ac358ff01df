package validator

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arcanaland/proxyprint/internal/card"
	"github.com/arcanaland/proxyprint/internal/catalog"
	"github.com/arcanaland/proxyprint/internal/fault"
)

func testCatalog() *catalog.Catalog {
	return catalog.New([]card.Card{
		{
			Name:   "Delver of Secrets // Insectile Aberration",
			Layout: card.LayoutTransform,
			Faces: []card.Face{
				{Name: "Delver of Secrets", ArtURI: "front"},
				{Name: "Insectile Aberration", ArtURI: "back"},
			},
		},
		{Name: "Lightning Bolt", Layout: card.LayoutNormal, ArtURI: "bolt"},
	}, time.Time{})
}

func writeDecklist(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "deck.txt")
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestValidateCleanDecklist(t *testing.T) {
	path := writeDecklist(t, "Deck\n4 Delver of Secrets\n4 Lightning Bolt\n")

	results, err := NewValidator(path, testCatalog(), nil).Validate()
	require.NoError(t, err)
	assert.Empty(t, results.Errors)
	assert.Empty(t, results.Warnings)
	assert.Equal(t, 12, results.Units)
	assert.Equal(t, 2, results.Pages)
}

func TestValidateReportsProblems(t *testing.T) {
	path := writeDecklist(t, "4 Delver of Secrets\n4 Insectile Aberration\n0 Lightning Bolt\n1 Black Lotus\n")

	results, err := NewValidator(path, testCatalog(), nil).Validate()
	require.NoError(t, err)

	require.Len(t, results.Errors, 1)
	assert.Contains(t, results.Errors[0], "line 3")

	require.Len(t, results.Warnings, 2)
	assert.Contains(t, results.Warnings[0], "back face of \"Delver of Secrets // Insectile Aberration\"")
	assert.Contains(t, results.Warnings[1], "Black Lotus")
	assert.Equal(t, 8, results.Units)
}

func TestValidateEmptyCatalog(t *testing.T) {
	path := writeDecklist(t, "4 Lightning Bolt\n")

	results, err := NewValidator(path, nil, nil).Validate()
	require.NoError(t, err)
	require.Len(t, results.Errors, 1)
	assert.Contains(t, results.Errors[0], "sync")
}

func TestValidateNoPrintableCards(t *testing.T) {
	path := writeDecklist(t, "Sideboard:\n")

	results, err := NewValidator(path, testCatalog(), nil).Validate()
	require.NoError(t, err)
	assert.Equal(t, []string{"decklist contains no printable cards"}, results.Errors)
}

func TestValidateMissingFile(t *testing.T) {
	_, err := NewValidator(filepath.Join(t.TempDir(), "nope.txt"), testCatalog(), nil).Validate()
	require.Error(t, err)
	assert.True(t, errors.Is(err, fault.ErrIO))
}
