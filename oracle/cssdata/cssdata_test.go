package cssdata

import (
	"errors"
	"sort"
	"strings"
	"testing"

	"github.com/npillmayer/cssed/oracle"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultTable(t *testing.T) {
	tab := Default()
	require.NotNil(t, tab)
	assert.True(t, tab.IsKnownProperty("border"))
	assert.False(t, tab.IsKnownProperty("--main-color"))
	_, ok := tab.LegalValues("border")
	assert.False(t, ok, "border accepts free text only")
	v, ok := tab.LegalValues("display")
	require.True(t, ok)
	assert.Contains(t, v, "flex")
	assert.True(t, oracle.IsLegalValue(tab, "display", "none"))
}

func TestDefaultTableIsSorted(t *testing.T) {
	names := Default().CompletionsForProperty("")
	assert.Equal(t, Default().Len(), len(names))
	assert.True(t, sort.StringsAreSorted(names), "property table should be in alphabetical order")
}

func TestCompletions(t *testing.T) {
	c := Default().CompletionsForProperty("bor")
	require.NotEmpty(t, c)
	assert.Equal(t, "border", c[0])
	for _, name := range c {
		assert.True(t, strings.HasPrefix(name, "bor"))
	}
	assert.Empty(t, Default().CompletionsForProperty("Bor"), "completion is case-sensitive")
}

func TestLegalValuesIsACopy(t *testing.T) {
	v, _ := Default().LegalValues("position")
	v[0] = "bogus"
	w, _ := Default().LegalValues("position")
	assert.NotEqual(t, "bogus", w[0])
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(strings.NewReader("properties:\n  - name: a\n  - name: a\n"))
	assert.True(t, errors.Is(err, ErrTable))
	_, err = Load(strings.NewReader("properties:\n  - nom: a\n"))
	assert.True(t, errors.Is(err, ErrTable))
	tab, err := Load(strings.NewReader("properties:\n  - name: x\n    values: [a, b]\n"))
	require.NoError(t, err)
	assert.True(t, oracle.IsLegalValue(tab, "x", "b"))
}
