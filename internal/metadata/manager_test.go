package metadata

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestManager(t *testing.T) *Manager {
	t.Helper()
	m, err := NewManager(t.TempDir())
	require.NoError(t, err)
	return m
}

func testCreateInput() CreateInput {
	depth := 2.0
	return CreateInput{
		FilenameBase:      "sunset_over_lake",
		Category:          "landscapes",
		BigFilePath:       "/paintings/big/landscapes/sunset_over_lake.jpg",
		InstagramFilePath: "/paintings/social/landscapes/sunset_over_lake_social.jpg",
		SelectedTitle:     "Sunset Over Lake",
		AllTitles:         []string{"Sunset Over Lake", "Evening Calm", "Golden Hour"},
		Description:       "A warm evening scene over still water.",
		Width:             60,
		Height:            80,
		Depth:             &depth,
		DimensionUnit:     "cm",
		DimensionsText:    "60cm x 80cm x 2cm",
		Substrate:         "canvas",
		Medium:            "oil",
		Subject:           "landscape",
		Style:             "impressionist",
		Collection:        "lakes",
		PriceEUR:          850,
		CreationDate:      "2026-05-10",
	}
}

func TestCreateFillsProcessingInfo(t *testing.T) {
	m := newTestManager(t)

	meta := m.Create(testCreateInput())
	assert.Equal(t, "big", meta.AnalyzedFrom)
	assert.NotEmpty(t, meta.ProcessedDate)
	assert.Equal(t, "Sunset Over Lake", meta.Title.Selected)
	assert.Len(t, meta.Title.AllOptions, 3)
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	m := newTestManager(t)
	meta := m.Create(testCreateInput())

	jsonPath, err := m.SaveJSON(meta)
	require.NoError(t, err)
	assert.Equal(t, m.Path("landscapes", "sunset_over_lake"), jsonPath)
	assert.True(t, m.Exists("landscapes", "sunset_over_lake"))

	loaded, err := m.Load("landscapes", "sunset_over_lake")
	require.NoError(t, err)
	assert.Equal(t, meta.Title.Selected, loaded.Title.Selected)
	assert.Equal(t, meta.Files.Instagram, loaded.Files.Instagram)
	assert.Equal(t, meta.PriceEUR, loaded.PriceEUR)
	require.NotNil(t, loaded.Dimensions.Depth)
	assert.Equal(t, 2.0, *loaded.Dimensions.Depth)
}

func TestSaveTextReport(t *testing.T) {
	m := newTestManager(t)
	meta := m.Create(testCreateInput())

	txtPath, err := m.SaveText(meta)
	require.NoError(t, err)

	raw, err := os.ReadFile(txtPath)
	require.NoError(t, err)
	report := string(raw)

	assert.Contains(t, report, "ARTWORK METADATA")
	assert.Contains(t, report, "Title: Sunset Over Lake")
	assert.Contains(t, report, "Medium: oil on canvas")
	assert.Contains(t, report, "Dimensions: 60cm x 80cm x 2cm")
	assert.Contains(t, report, "Price: EUR 850.00")
	assert.Contains(t, report, "1. Sunset Over Lake")
	assert.Contains(t, report, "3. Golden Hour")
}

func TestSaveTextMissingInstagramVariant(t *testing.T) {
	m := newTestManager(t)
	in := testCreateInput()
	in.InstagramFilePath = ""
	meta := m.Create(in)

	txtPath, err := m.SaveText(meta)
	require.NoError(t, err)

	raw, err := os.ReadFile(txtPath)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "Instagram Version: N/A")
}

func TestLoadMissing(t *testing.T) {
	m := newTestManager(t)

	assert.False(t, m.Exists("landscapes", "nope"))
	_, err := m.Load("landscapes", "nope")
	assert.True(t, os.IsNotExist(err))
}
