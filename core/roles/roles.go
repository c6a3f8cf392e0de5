// Package roles canonicalizes the free-text role labels attached to users
// and supervision edges (mixed Latin and Arabic strings) into a closed set
// of academic categories.
package roles

import "strings"

// Category is the closed set of academic roles the dashboard understands.
type Category string

const (
	Student      Category = "student"
	Supervisor   Category = "supervisor"
	CoSupervisor Category = "co_supervisor"
)

var labelCleaner = strings.NewReplacer("_", " ", "-", " ")

// Normalize maps a raw role label to its Category.
// Keyword tests run in a fixed priority order; the co/assistant exclusion in
// the supervisor rule is what keeps co-supervisors from being misread as
// primary supervisors, and must not be relaxed.
// Department-head labels are deliberately unclassifiable: that role is an
// administrative scope, not an academic one.
func Normalize(label string) (Category, bool) {
	r := labelCleaner.Replace(strings.TrimSpace(strings.ToLower(label)))
	if r == "" {
		return "", false
	}

	if containsAny(r, "head", "chair", "رئيس") {
		return "", false
	}
	if containsAny(r, "student", "طالب") {
		return Student, true
	}
	if containsAny(r, "supervisor", "مشرف") && !containsAny(r, "co", "assistant", "مساعد") {
		return Supervisor, true
	}
	if containsAny(r, "co", "assistant", "مساعد") {
		return CoSupervisor, true
	}
	return "", false
}

// Categories normalizes a label list, dropping unclassifiable entries and
// duplicates while preserving first-seen order.
func Categories(labels []string) []Category {
	var out []Category
	seen := make(map[Category]bool, 3)
	for _, label := range labels {
		if cat, ok := Normalize(label); ok && !seen[cat] {
			seen[cat] = true
			out = append(out, cat)
		}
	}
	return out
}

// Classify resolves a user's primary category from their labels.
// A user with zero classifiable labels falls back to Supervisor when they
// hold an elevated account flag, else Student. The fallback is consuming-
// screen policy, kept here because several screens share it.
func Classify(labels []string, elevated bool) Category {
	if cats := Categories(labels); len(cats) > 0 {
		return cats[0]
	}
	if elevated {
		return Supervisor
	}
	return Student
}

func containsAny(s string, keywords ...string) bool {
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}
