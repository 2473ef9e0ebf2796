package nlp

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeSkill(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "  Node.js ", want: "node js"},
		{in: "C++", want: "c++"},
		{in: "C#", want: "c#"},
		{in: "CI/CD", want: "ci cd"},
		{in: "Język polski", want: "język polski"},
		{in: "---", want: ""},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeSkill(tt.in))
		})
	}
}

func TestSkillVariants(t *testing.T) {
	assert.Equal(t, []string{"go", "golang"}, SkillVariants("Go"))
	assert.Equal(t, []string{"node js", "node", "nodejs"}, SkillVariants("Node.js"))
	assert.Equal(t, []string{"haskell"}, SkillVariants("Haskell"))
	assert.Empty(t, SkillVariants("  "))
}

func TestSkillVariantsExpandsTokens(t *testing.T) {
	got := SkillVariants("golang postgres")
	assert.Contains(t, got, "golang postgres")
	assert.Contains(t, got, "go postgresql")
}

func TestContainsPhrase(t *testing.T) {
	assert.True(t, ContainsPhrase("rest api design", "rest api"))
	assert.False(t, ContainsPhrase("rest apis", "rest api"))
	assert.False(t, ContainsPhrase("anything", ""))
}
