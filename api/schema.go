package api

import (
	"fmt"
	"sort"
	"strings"

	"github.com/agentic-research/cclua/internal/naming"
)

// DesignatedOrigin is the import origin of the device automation API stubs.
const DesignatedOrigin = "cc_lib"

// NamingRule says how member names on a mapped origin are rewritten.
type NamingRule string

const (
	// RuleVerbatim emits member names unchanged.
	RuleVerbatim NamingRule = "verbatim"
	// RuleCamelCase rewrites snake_case member names to camelCase.
	RuleCamelCase NamingRule = "camel"
)

// ParseNamingRule validates a rule name read from configuration.
func ParseNamingRule(s string) (NamingRule, error) {
	switch NamingRule(strings.ToLower(strings.TrimSpace(s))) {
	case RuleCamelCase, "camelcase", "camel_case":
		return RuleCamelCase, nil
	case RuleVerbatim, "":
		return RuleVerbatim, nil
	default:
		return "", fmt.Errorf("unknown naming rule %q (want %q or %q)", s, RuleCamelCase, RuleVerbatim)
	}
}

// Mapping associates an import origin with the rewrite applied to member
// accesses on names imported from it.
type Mapping struct {
	// Origin is the module name as written in the import statement.
	Origin string `json:"origin"`
	// Rule is applied to members without an explicit override.
	Rule NamingRule `json:"rule"`
	// Members maps a source member name to its exact target name.
	Members map[string]string `json:"members,omitempty"`
}

// Member returns the target-language name for member.
func (m Mapping) Member(member string) string {
	if name, ok := m.Members[member]; ok {
		return name
	}
	if m.Rule == RuleCamelCase {
		return naming.SnakeToCamel(member)
	}
	return member
}

// Table is the set of mapped origins, keyed by origin. It is read-only once
// handed to the translator.
type Table map[string]Mapping

// DefaultTable holds the single designated origin with the camelCase rule.
func DefaultTable() Table {
	return Table{
		DesignatedOrigin: {Origin: DesignatedOrigin, Rule: RuleCamelCase},
	}
}

// Lookup returns the mapping for origin.
func (t Table) Lookup(origin string) (Mapping, bool) {
	m, ok := t[origin]
	return m, ok
}

// Origins returns the mapped origins in sorted order.
func (t Table) Origins() []string {
	out := make([]string, 0, len(t))
	for o := range t {
		out = append(out, o)
	}
	sort.Strings(out)
	return out
}

// Fingerprint renders the table canonically. Two tables with the same
// fingerprint rewrite every member identically.
func (t Table) Fingerprint() string {
	var sb strings.Builder
	for _, o := range t.Origins() {
		m := t[o]
		fmt.Fprintf(&sb, "%s=%s", o, m.Rule)
		keys := make([]string, 0, len(m.Members))
		for k := range m.Members {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Fprintf(&sb, ",%s:%s", k, m.Members[k])
		}
		sb.WriteByte(';')
	}
	return sb.String()
}
