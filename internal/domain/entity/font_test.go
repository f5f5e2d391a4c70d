package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLeadingFamily(t *testing.T) {
	assert.Equal(t, "Poppins", LeadingFamily("Poppins, sans-serif"))
	assert.Equal(t, "Open Sans", LeadingFamily("'Open Sans', sans-serif"))
	assert.Equal(t, "Bebas Neue", LeadingFamily(`"Bebas Neue"`))
	assert.Equal(t, "serif", LeadingFamily("serif"))
	assert.Equal(t, "", LeadingFamily(""))
}

func TestSortWeights(t *testing.T) {
	assert.Equal(t, []int{100, 400, 700}, SortWeights([]int{700, 100, 400, 700, 100}))
	assert.Empty(t, SortWeights(nil))
}

func TestFontDescriptor_AvailableWeights(t *testing.T) {
	web := FontDescriptor{Family: "Poppins", Source: FontSourceWeb, Weights: []int{100, 400, 900}}
	assert.Equal(t, []int{100, 400, 900}, web.AvailableWeights())

	system := FontDescriptor{Family: "Cantarell", Source: FontSourceSystem}
	assert.Equal(t, DefaultWeights, system.AvailableWeights())

	// Returned slices are copies; mutating one must not affect the descriptor.
	got := web.AvailableWeights()
	got[0] = 999
	assert.Equal(t, []int{100, 400, 900}, web.Weights)
}

func TestFontDescriptor_HasWeight(t *testing.T) {
	d := FontDescriptor{Family: "Oswald", Source: FontSourceWeb, Weights: []int{200, 400, 700}}
	assert.True(t, d.HasWeight(400))
	assert.False(t, d.HasWeight(900))

	unknown := FontDescriptor{Family: "Cantarell", Source: FontSourceSystem}
	assert.True(t, unknown.HasWeight(700), "default pair applies when no weights declared")
}
