package models

import "strings"

type Category string

const (
	CategoryWeb       Category = "Web"
	CategoryX         Category = "X"
	CategoryInstagram Category = "Instagram"
	CategoryThreads   Category = "Threads"
	CategoryReddit    Category = "Reddit"
	CategoryNotion    Category = "Notion"
	CategoryYoutube   Category = "Youtube"
	CategoryOther     Category = "Other"
)

// categoryRules is ordered; the first fragment found in the URL wins.
var categoryRules = []struct {
	fragment string
	category Category
}{
	{"threads", CategoryThreads},
	{"youtube", CategoryYoutube},
	{"youtu.be", CategoryYoutube},
	{"twitter", CategoryX},
	{"x.com", CategoryX},
	{"instagram", CategoryInstagram},
	{"notion", CategoryNotion},
	{"reddit", CategoryReddit},
}

// DetectCategory maps a raw URL to a category via case-insensitive substring
// heuristics. Empty or unrecognized input falls back to CategoryWeb.
func DetectCategory(rawURL string) Category {
	lowered := strings.ToLower(strings.TrimSpace(rawURL))
	if lowered == "" {
		return CategoryWeb
	}
	for _, rule := range categoryRules {
		if strings.Contains(lowered, rule.fragment) {
			return rule.category
		}
	}
	return CategoryWeb
}

func ValidCategory(c Category) bool {
	switch c {
	case CategoryWeb, CategoryX, CategoryInstagram, CategoryThreads,
		CategoryReddit, CategoryNotion, CategoryYoutube, CategoryOther:
		return true
	}
	return false
}
