package filter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testItem struct {
	Name        string
	Description string
	Installed   bool
}

func testMatchers() Matchers[testItem] {
	return Matchers[testItem]{
		"name":      Partial(func(i testItem) string { return i.Name }),
		"exact":     Equals(func(i testItem) string { return i.Name }),
		"installed": EqualsBool(func(i testItem) bool { return i.Installed }),
		"query": PartialAny(
			func(i testItem) string { return i.Name },
			func(i testItem) string { return i.Description },
		),
	}
}

func TestNormalizeString(t *testing.T) {
	assert.Equal(t, "hello", NormalizeString("  Hello "))
	assert.Equal(t, "", NormalizeString("  "))
}

func TestPredicates(t *testing.T) {
	m := testMatchers()
	item := testItem{Name: "Server-GitHub", Description: "Repository access", Installed: true}

	assert.True(t, m["name"](item, "github"))
	assert.False(t, m["name"](item, "gitlab"))
	assert.True(t, m["exact"](item, "server-github"))
	assert.False(t, m["exact"](item, "github"))
	assert.True(t, m["installed"](item, "TRUE"))
	assert.False(t, m["installed"](item, "false"))
	assert.False(t, m["installed"](item, "maybe"))
	assert.True(t, m["query"](item, "repository"))
	assert.False(t, m["query"](item, "slack"))
}

func TestParse(t *testing.T) {
	t.Parallel()

	got, err := Parse([]string{" Name = git ", "installed=true", "name=hub"})
	require.NoError(t, err)
	require.Equal(t, map[string]string{"name": "hub", "installed": "true"}, got)

	got, err = Parse(nil)
	require.NoError(t, err)
	require.Nil(t, got)

	_, err = Parse([]string{"novalue"})
	require.EqualError(t, err, "invalid filter 'novalue', expected key=value")

	_, err = Parse([]string{"=x"})
	require.Error(t, err)
}

func TestMatchers_Validate(t *testing.T) {
	t.Parallel()

	m := testMatchers()
	require.NoError(t, m.Validate(map[string]string{"name": "x", "INSTALLED": "true"}))

	err := m.Validate(map[string]string{"vendor": "x", "tag": "y"})
	require.EqualError(t, err, "unsupported filter keys: tag, vendor (supported: exact, installed, name, query)")
}

func TestMatchers_Match(t *testing.T) {
	t.Parallel()

	m := testMatchers()
	item := testItem{Name: "fetch", Installed: false}

	require.True(t, m.Match(item, nil))
	require.True(t, m.Match(item, map[string]string{"name": "fet", "installed": "false"}))
	require.False(t, m.Match(item, map[string]string{"name": "fet", "installed": "true"}))
	require.True(t, m.Match(item, map[string]string{"unknown": "x", " ": "y"}))
}

func TestApply(t *testing.T) {
	t.Parallel()

	items := []testItem{
		{Name: "alpha", Installed: true},
		{Name: "beta"},
		{Name: "alphabet"},
	}

	got, err := Apply(items, map[string]string{"name": "alpha"}, testMatchers())
	require.NoError(t, err)
	require.Equal(t, []testItem{items[0], items[2]}, got)

	got, err = Apply(items, nil, testMatchers())
	require.NoError(t, err)
	require.Equal(t, items, got)

	_, err = Apply(items, map[string]string{"bogus": "x"}, testMatchers())
	require.Error(t, err)
}
