package qualification

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAnalyzeMessageContent_Empty(t *testing.T) {
	got := AnalyzeMessageContent("", "", "")

	assert.Equal(t, 0, got.WordCount)
	assert.NotNil(t, got.HighValueKeywords)
	assert.Empty(t, got.HighValueKeywords)
	assert.Empty(t, got.MediumValueKeywords)
	assert.Empty(t, got.RedFlags)
	assert.False(t, got.ContainsSpecificDetails)
}

func TestAnalyzeMessageContent_ShipyardStory(t *testing.T) {
	got := AnalyzeMessageContent(
		"My father worked at Norfolk Naval Shipyard as a pipe fitter from 1968-1989 and was diagnosed with mesothelioma in 2021",
		"",
		"mesothelioma",
	)

	assert.Equal(t, []string{"mesothelioma", "diagnosed", "shipyard", "pipe fitter"}, got.HighValueKeywords)
	assert.Equal(t, []string{"my father", "worked at"}, got.MediumValueKeywords)
	assert.Empty(t, got.RedFlags)
	assert.Equal(t, 21, got.WordCount)
	assert.True(t, got.ContainsSpecificDetails)
}

func TestAnalyzeMessageContent_TableOrder(t *testing.T) {
	got := AnalyzeMessageContent("I worked in construction and later got cancer", "", "")

	// construction appears first in the message but after cancer in the table
	assert.Equal(t, []string{"cancer", "construction"}, got.HighValueKeywords)
}

func TestAnalyzeMessageContent_NoDuplicates(t *testing.T) {
	got := AnalyzeMessageContent("Asbestos asbestos ASBESTOS", "", "")

	assert.Equal(t, []string{"asbestos"}, got.HighValueKeywords)
	assert.Equal(t, 3, got.WordCount)
}

func TestAnalyzeMessageContent_RedFlags(t *testing.T) {
	got := AnalyzeMessageContent("I am a student doing homework for a school project", "", "")

	assert.Equal(t, []string{"school project", "student", "homework"}, got.RedFlags)
}

func TestAnalyzeMessageContent_ExposureOnly(t *testing.T) {
	got := AnalyzeMessageContent("", "Worked in a boiler room", "")

	assert.Equal(t, []string{"boiler"}, got.HighValueKeywords)
	assert.Equal(t, 5, got.WordCount)
	assert.True(t, got.ContainsSpecificDetails)
}

func TestAnalyzeMessageContent_SpecificDetails(t *testing.T) {
	tests := []struct {
		name    string
		message string
		want    bool
	}{
		{"decade", "it happened back in the 1970s", true},
		{"year", "exposure ended in 1989", true},
		{"years ago", "that was 30 years ago", true},
		{"single year ago", "he retired 1 year ago", true},
		{"worked for", "he worked for GE", true},
		{"worked in", "she worked in a mill", true},
		{"diagnosed with", "diagnosed with cancer", true},
		{"diagnosed in", "he was diagnosed in march", true},
		{"my husband", "my husband was a welder", true},
		{"named plant", "the Riverside plant", true},
		{"named corporation", "Acme Corporation", true},
		{"vague", "hello there, please call me", false},
		{"three digits", "about 300 of us", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := AnalyzeMessageContent(tt.message, "", "")
			assert.Equal(t, tt.want, got.ContainsSpecificDetails)
		})
	}
}

func TestKeywordTablesAreCopies(t *testing.T) {
	kws := HighValueKeywords()
	kws[0] = "changed"

	assert.Equal(t, "mesothelioma", HighValueKeywords()[0])
	assert.Len(t, MediumValueKeywords(), 24)
	assert.Len(t, RedFlagKeywords(), 9)
}
