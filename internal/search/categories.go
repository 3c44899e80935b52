package search

import (
	"sort"
	"strings"
)

const othersCategory = "Others"

type categoryRule struct {
	name     string
	icon     string
	keywords []string
}

// categoryRules are checked in order; the first rule with a keyword found in a
// profile's title or bio claims it.
var categoryRules = []categoryRule{
	{"Frontend Developer", "Code", []string{"frontend", "front-end", "front end", "react", "vue", "angular", "javascript", "html", "css", "ui developer", "web developer"}},
	{"Backend Developer", "Database", []string{"backend", "back-end", "back end", "node", "nodejs", "python", "java", "php", "api", "server", "database"}},
	{"Full Stack Developer", "Layers", []string{"fullstack", "full-stack", "full stack", "mern", "mean", "lamp", "stack"}},
	{"Data Engineer", "Database", []string{"data engineer", "data engineering", "etl", "data pipeline", "big data"}},
	{"Data Analyst", "BarChart", []string{"data analyst", "data analysis", "analyst", "business analyst", "reporting"}},
	{"Data Scientist", "TrendingUp", []string{"data scientist", "data science", "machine learning", "ml", "ai", "artificial intelligence"}},
	{"DevOps Engineer", "Settings", []string{"devops", "dev ops", "docker", "kubernetes", "aws", "azure", "jenkins", "ci/cd"}},
	{"Cloud Engineer", "Settings", []string{"cloud", "aws", "azure", "gcp", "google cloud", "cloud architect"}},
	{"Mobile Developer", "Smartphone", []string{"mobile", "ios", "android", "react native", "flutter", "app developer"}},
	{"QA Engineer", "CheckCircle", []string{"qa", "quality assurance", "testing", "test", "automation", "tester"}},
	{"UI/UX Designer", "Palette", []string{"ui", "ux", "designer", "design", "figma", "user experience", "user interface"}},
	{"Product Manager", "Users", []string{"product manager", "product management", "pm", "product owner", "scrum master"}},
	{"Software Engineer", "Code", []string{"software engineer", "software developer", "programmer", "coding", "engineer"}},
}

// Category is one professional bucket with its member count.
type Category struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
	Icon  string `json:"icon"`
}

// Categorize buckets each title/bio pair into the first matching category.
// Empty categories are omitted; the rest are ordered by count with "Others" last.
func Categorize(profiles []TitleBio) []Category {
	counts := make([]int, len(categoryRules))
	others := 0
	for _, p := range profiles {
		text := strings.ToLower(p.Title + " " + p.Bio)
		matched := false
		for i, rule := range categoryRules {
			if containsAny(text, rule.keywords) {
				counts[i]++
				matched = true
				break
			}
		}
		if !matched {
			others++
		}
	}

	out := make([]Category, 0, len(categoryRules)+1)
	for i, rule := range categoryRules {
		if counts[i] > 0 {
			out = append(out, Category{Name: rule.name, Count: counts[i], Icon: rule.icon})
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Count > out[j].Count })
	if others > 0 {
		out = append(out, Category{Name: othersCategory, Count: others, Icon: "User"})
	}
	return out
}

func containsAny(text string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}
