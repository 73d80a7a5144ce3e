package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestClassRates_SetKeepsFirstPosition(t *testing.T) {
	cr := NewClassRates(
		ClassRate[string]{"b", 0.2},
		ClassRate[string]{"a", 0.1},
		ClassRate[string]{"b", 0.9},
	)
	assert.Equal(t, []string{"b", "a"}, cr.Classes())
	assert.Equal(t, 2, cr.Len())

	r, ok := cr.Rate("b")
	assert.True(t, ok)
	assert.Equal(t, 0.9, r)
}

func TestClassRates_ZeroValueIsUsable(t *testing.T) {
	var cr ClassRates[int]
	_, ok := cr.Rate(1)
	assert.False(t, ok)

	cr.Set(3, 0.5)
	r, ok := cr.Rate(3)
	assert.True(t, ok)
	assert.Equal(t, 0.5, r)
}

func TestClassRates_NilReads(t *testing.T) {
	var cr *ClassRates[string]
	assert.Zero(t, cr.Len())
	assert.Nil(t, cr.Classes())
	_, ok := cr.Rate("x")
	assert.False(t, ok)
}

func TestClassRates_ClassesReturnsCopy(t *testing.T) {
	cr := rates("a", 0.1, "b", 0.2)
	classes := cr.Classes()
	classes[0] = "z"
	assert.Equal(t, []string{"a", "b"}, cr.Classes())
}

func TestClassRates_UnmarshalYAMLPreservesOrder(t *testing.T) {
	doc := `
zebra: 0.1
apple: 0.2
mango: 0.3
`
	var cr ClassRates[string]
	require.NoError(t, yaml.Unmarshal([]byte(doc), &cr))
	assert.Equal(t, []string{"zebra", "apple", "mango"}, cr.Classes())
	r, _ := cr.Rate("mango")
	assert.Equal(t, 0.3, r)
}

func TestClassRates_UnmarshalYAMLIntKeys(t *testing.T) {
	doc := "2: 0.5\n0: 0.25\n1: 1\n"
	var cr ClassRates[int]
	require.NoError(t, yaml.Unmarshal([]byte(doc), &cr))
	assert.Equal(t, []int{2, 0, 1}, cr.Classes())
	r, _ := cr.Rate(1)
	assert.Equal(t, 1.0, r)
}

func TestClassRates_UnmarshalYAMLErrors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"sequence", "- 0.1\n- 0.2\n"},
		{"non-numeric rate", "a: high\n"},
		{"duplicate class", "a: 0.1\na: 0.2\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var cr ClassRates[string]
			assert.Error(t, yaml.Unmarshal([]byte(tt.doc), &cr))
		})
	}
}
