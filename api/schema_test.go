package api

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultTable(t *testing.T) {
	table := DefaultTable()
	require.Len(t, table, 1)

	m, ok := table.Lookup(DesignatedOrigin)
	require.True(t, ok)
	assert.Equal(t, RuleCamelCase, m.Rule)
	assert.Equal(t, "getNames", m.Member("get_names"))

	_, ok = table.Lookup("os")
	assert.False(t, ok)
}

func TestMapping_MemberOverride(t *testing.T) {
	m := Mapping{
		Origin:  "cc_lib",
		Rule:    RuleCamelCase,
		Members: map[string]string{"wrap_it": "wrap"},
	}
	assert.Equal(t, "wrap", m.Member("wrap_it"))
	assert.Equal(t, "isPresent", m.Member("is_present"))
}

func TestMapping_Verbatim(t *testing.T) {
	m := Mapping{Origin: "term", Rule: RuleVerbatim}
	assert.Equal(t, "set_cursor_pos", m.Member("set_cursor_pos"))
}

func TestParseNamingRule(t *testing.T) {
	r, err := ParseNamingRule("camel")
	require.NoError(t, err)
	assert.Equal(t, RuleCamelCase, r)

	r, err = ParseNamingRule(" Verbatim ")
	require.NoError(t, err)
	assert.Equal(t, RuleVerbatim, r)

	_, err = ParseNamingRule("kebab")
	assert.Error(t, err)
}

func TestTable_Fingerprint(t *testing.T) {
	a := Table{
		"cc_lib": {Origin: "cc_lib", Rule: RuleCamelCase, Members: map[string]string{"b": "B", "a": "A"}},
		"term":   {Origin: "term", Rule: RuleVerbatim},
	}
	b := Table{
		"term":   {Origin: "term", Rule: RuleVerbatim},
		"cc_lib": {Origin: "cc_lib", Rule: RuleCamelCase, Members: map[string]string{"a": "A", "b": "B"}},
	}
	assert.Equal(t, a.Fingerprint(), b.Fingerprint())
	assert.Equal(t, "cc_lib=camel,a:A,b:B;term=verbatim;", a.Fingerprint())

	assert.NotEqual(t, a.Fingerprint(), DefaultTable().Fingerprint())
	assert.Equal(t, []string{"cc_lib", "term"}, a.Origins())
}
