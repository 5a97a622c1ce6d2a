package advice

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAtsChecks(t *testing.T) {
	text := "Jane Doe\njane.doe@example.com\n+7 912 345-67-89\n\n" +
		"Experience\nBackend developer at Acme.\n\nSkills\nPython, Flask.\n\n" +
		"Education\nBSc Computer Science.\n\nProjects\nResume scoring service.\n" +
		strings.Repeat("More details. ", 10)

	byName := map[string]bool{}
	for _, c := range AtsChecks(text) {
		byName[c.Name] = c.Passed
	}

	require.True(t, byName["email"])
	require.True(t, byName["phone"])
	require.True(t, byName["sec_experience"])
	require.True(t, byName["sec_education"])
	require.True(t, byName["sec_skills"])
	require.True(t, byName["sec_projects"])
	require.True(t, byName["length"])
}

func TestAtsChecksFailures(t *testing.T) {
	byName := map[string]bool{}
	for _, c := range AtsChecks("short text without anything useful") {
		byName[c.Name] = c.Passed
	}

	require.False(t, byName["email"])
	require.False(t, byName["phone"])
	require.False(t, byName["sec_experience"])
	require.False(t, byName["length"])
}

func TestRoadmapDistribution(t *testing.T) {
	missing := []string{"docker", "kubernetes", "terraform", "aws"}
	roadmap := Roadmap(missing, 3)

	require.Len(t, roadmap, 3)
	// Base tips land in the first months.
	require.NotEmpty(t, roadmap[1])
	// Skills are spread round-robin: 4 skills over 3 months.
	var total int
	for m := 1; m <= 3; m++ {
		for _, item := range roadmap[m] {
			if strings.HasPrefix(item, "Learn & build project for:") {
				total++
			}
		}
	}
	require.Equal(t, len(missing), total)
	require.Contains(t, roadmap[1], "Learn & build project for: docker")
	require.Contains(t, roadmap[1], "Learn & build project for: aws")
	require.Contains(t, roadmap[2], "Learn & build project for: kubernetes")
}

func TestRoadmapClampsMonths(t *testing.T) {
	require.Len(t, Roadmap(nil, 0), 1)
	require.Len(t, Roadmap(nil, -5), 1)
	require.Len(t, Roadmap(nil, 100), 24)
}

func TestSuggestRoles(t *testing.T) {
	require.Contains(t, SuggestRoles([]string{"python", "flask"}), "Backend Developer (Python)")
	require.Contains(t, SuggestRoles([]string{"React", "css"}), "Frontend Developer (React)")
	require.Contains(t, SuggestRoles([]string{"docker"}), "DevOps / Cloud Engineer (Junior)")
	require.Equal(t, []string{"Software Engineer (General)"}, SuggestRoles([]string{"cooking"}))
	require.Equal(t, []string{"Software Engineer (General)"}, SuggestRoles(nil))
}
