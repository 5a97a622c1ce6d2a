// Package advice содержит эвристики для соискателя: ATS-проверки резюме,
// план обучения по недостающим навыкам и подбор подходящих должностей.
package advice

import (
	"fmt"
	"regexp"
	"strings"
)

// Check — одна проверка готовности резюме к ATS-системам.
type Check struct {
	Name   string `json:"name"`
	Passed bool   `json:"passed"`
}

var (
	reEmail = regexp.MustCompile(`[a-z0-9.\-_]+@[a-z0-9.\-]+\.[a-z]{2,}`)
	rePhone = regexp.MustCompile(`\+?\d[\d\-\s]{7,}\d`)
)

// minResumeLength — ниже этой длины резюме почти наверняка неполное.
const minResumeLength = 200

var resumeSections = []string{"experience", "education", "skills", "projects"}

// AtsChecks прогоняет текст резюме через простые проверки: контакты,
// стандартные секции, минимальная длина.
func AtsChecks(text string) []Check {
	lower := strings.ToLower(text)

	checks := []Check{
		{Name: "email", Passed: reEmail.MatchString(lower)},
		{Name: "phone", Passed: rePhone.MatchString(lower)},
	}
	for _, sec := range resumeSections {
		checks = append(checks, Check{Name: "sec_" + sec, Passed: strings.Contains(lower, sec)})
	}
	checks = append(checks, Check{Name: "length", Passed: len(text) >= minResumeLength})
	return checks
}

// Roadmap раскладывает недостающие навыки по плану на months месяцев.
// Значение months зажимается в диапазон 1..24.
func Roadmap(missing []string, months int) map[int][]string {
	if months < 1 {
		months = 1
	}
	if months > 24 {
		months = 24
	}

	base := []string{
		"Polish resume bullets — highlight measurable impact.",
		"Build a small project demonstrating the required skill.",
		"Practice interview questions (STAR method).",
	}

	roadmap := make(map[int][]string, months)
	for m := 1; m <= months; m++ {
		roadmap[m] = []string{}
	}
	for i, b := range base {
		m := 1 + i
		if m > months {
			m = months
		}
		roadmap[m] = append(roadmap[m], b)
	}
	for i, skill := range missing {
		m := 1 + i%months
		roadmap[m] = append(roadmap[m], fmt.Sprintf("Learn & build project for: %s", skill))
	}
	return roadmap
}

// roleRules сопоставляет группы навыков с должностями.
var roleRules = []struct {
	title  string
	skills []string
}{
	{"Backend Developer (Python)", []string{"python", "django", "flask", "sql"}},
	{"Frontend Developer (React)", []string{"react", "javascript", "html", "css"}},
	{"Data Analyst / Jr Data Scientist", []string{"pandas", "numpy", "data science", "data analysis"}},
	{"DevOps / Cloud Engineer (Junior)", []string{"aws", "docker", "kubernetes"}},
}

// SuggestRoles подбирает должности по извлечённым навыкам. Если ни одно
// правило не сработало, возвращается общая рекомендация.
func SuggestRoles(skills []string) []string {
	have := make(map[string]struct{}, len(skills))
	for _, s := range skills {
		have[strings.ToLower(s)] = struct{}{}
	}

	var out []string
	for _, rule := range roleRules {
		for _, s := range rule.skills {
			if _, ok := have[s]; ok {
				out = append(out, rule.title)
				break
			}
		}
	}
	if len(out) == 0 {
		out = []string{"Software Engineer (General)"}
	}
	return out
}
