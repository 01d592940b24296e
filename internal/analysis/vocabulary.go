package analysis

import (
	"regexp"
	"strings"
)

type techTerm struct {
	name string
	re   *regexp.Regexp
}

func term(name, pattern string) techTerm {
	return techTerm{
		name: name,
		re:   regexp.MustCompile(`(?:^|[^\w.+#-])(?:` + pattern + `)(?:$|[^\w+#])`),
	}
}

// techVocabulary lists the technology names recognised in free text. The
// name is the canonical lower-case form reported to callers.
var techVocabulary = []techTerm{
	term("javascript", `(?i:javascript)`),
	term("typescript", `(?i:typescript)`),
	term("python", `(?i:python)`),
	term("java", `(?i:java)`),
	term("golang", `(?i:golang)|Go`),
	term("php", `(?i:php)`),
	term("ruby", `(?i:ruby)`),
	term("c++", `(?i:c\+\+)`),
	term("c#", `(?i:c#)`),
	term("kotlin", `(?i:kotlin)`),
	term("swift", `(?i:swift)`),
	term("react", `(?i:react(?:\.js)?)`),
	term("vue.js", `(?i:vue(?:\.js)?)`),
	term("angular", `(?i:angular)`),
	term("next.js", `(?i:next\.js)`),
	term("node.js", `(?i:node\.?js)`),
	term("express", `(?i:express(?:\.js)?)`),
	term("laravel", `(?i:laravel)`),
	term("django", `(?i:django)`),
	term("flask", `(?i:flask)`),
	term("spring boot", `(?i:spring boot)`),
	term("flutter", `(?i:flutter)`),
	term("html", `(?i:html5?)`),
	term("css", `(?i:css3?)`),
	term("tailwind", `(?i:tailwind(?:\s?css)?)`),
	term("sql", `(?i:sql)`),
	term("mysql", `(?i:mysql)`),
	term("postgresql", `(?i:postgres(?:ql)?)`),
	term("mongodb", `(?i:mongo(?:db)?)`),
	term("redis", `(?i:redis)`),
	term("firebase", `(?i:firebase)`),
	term("graphql", `(?i:graphql)`),
	term("docker", `(?i:docker)`),
	term("kubernetes", `(?i:kubernetes|k8s)`),
	term("aws", `(?i:aws|amazon web services)`),
	term("gcp", `(?i:gcp|google cloud)`),
	term("azure", `(?i:azure)`),
	term("git", `(?i:git)`),
	term("linux", `(?i:linux)`),
	term("tensorflow", `(?i:tensorflow)`),
	term("pytorch", `(?i:pytorch)`),
	term("figma", `(?i:figma)`),
}

// matchTechnologies returns the canonical names of vocabulary terms found in
// text, in vocabulary order.
func matchTechnologies(text string) []string {
	var found []string
	for _, t := range techVocabulary {
		if t.re.MatchString(text) {
			found = append(found, t.name)
		}
	}
	return found
}

func isTechTerm(word string) bool {
	padded := " " + word + " "
	for _, t := range techVocabulary {
		if t.re.MatchString(padded) {
			return true
		}
	}
	return false
}

// actionVerbs open achievement-style bullet points.
var actionVerbs = []string{
	"achieved", "built", "created", "delivered", "designed", "developed",
	"implemented", "improved", "increased", "launched", "led", "managed",
	"optimized", "reduced", "spearheaded", "streamlined",
}

var actionVerbPattern = regexp.MustCompile(`(?i)\b(?:` + strings.Join(actionVerbs, "|") + `)\b`)

// projectVerbs introduce an implicit project mention.
var projectVerbs = []string{"built", "developed", "created", "designed", "implemented"}

var projectVerbPattern = regexp.MustCompile(`(?i)\b(?:` + strings.Join(projectVerbs, "|") + `)\s+(?:an?\s+|the\s+)?`)

func startsWithActionVerb(s string) bool {
	loc := actionVerbPattern.FindStringIndex(s)
	return loc != nil && loc[0] == 0
}
