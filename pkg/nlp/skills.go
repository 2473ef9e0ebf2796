package nlp

import "strings"

// aliases groups spellings that name the same skill.
var aliases = [][]string{
	{"postgres", "postgresql"},
	{"k8s", "kubernetes"},
	{"golang", "go"},
	{"js", "javascript"},
	{"ts", "typescript"},
	{"rest", "rest api"},
	{"ci cd", "cicd"},
	{"node", "node js", "nodejs"},
	{"react", "react js", "reactjs"},
	{"ms excel", "excel"},
}

var aliasIndex = buildAliasIndex()

func buildAliasIndex() map[string][]string {
	idx := make(map[string][]string)
	for _, group := range aliases {
		for _, name := range group {
			idx[NormalizeSkill(name)] = group
		}
	}
	return idx
}

// SkillVariants returns the normalized skill followed by its known aliases.
// Unknown multi-word skills additionally get a variant with every token
// expanded to its first alias (e.g. "golang postgres" -> "go postgresql").
func SkillVariants(skill string) []string {
	base := NormalizeSkill(skill)
	if base == "" {
		return []string{}
	}
	var out []string
	seen := map[string]struct{}{}
	add := func(s string) {
		s = NormalizeSkill(s)
		if s == "" {
			return
		}
		if _, ok := seen[s]; ok {
			return
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}

	add(base)
	group, known := aliasIndex[base]
	for _, alias := range group {
		add(alias)
	}

	parts := strings.Split(base, " ")
	if !known && len(parts) > 1 {
		expanded := make([]string, len(parts))
		for i, p := range parts {
			expanded[i] = tokenAlias(p)
		}
		add(strings.Join(expanded, " "))
	}
	return out
}

func tokenAlias(token string) string {
	for _, alias := range aliasIndex[token] {
		if alias != token && !strings.Contains(alias, " ") {
			return alias
		}
	}
	return token
}
