package skill

import (
	"sort"
	"strings"
)

// Skill is a lower-cased, trimmed catalog keyword.
type Skill string

func Normalize(s string) Skill {
	return Skill(strings.ToLower(strings.TrimSpace(s)))
}

func (s Skill) String() string {
	return string(s)
}

type Catalog []Skill

var defaultCatalog = Catalog{
	"python", "django", "flask", "react", "nodejs", "docker", "kubernetes",
	"apis", "rest", "sql", "mongodb", "leadership", "aws", "azure", "gcp",
	"data analysis", "machine learning", "pandas", "numpy", "excel",
}

// DefaultCatalog returns a copy of the built-in keyword list.
func DefaultCatalog() Catalog {
	out := make(Catalog, len(defaultCatalog))
	copy(out, defaultCatalog)
	return out
}

func (c Catalog) Contains(s Skill) bool {
	for _, it := range c {
		if Normalize(string(it)) == Normalize(string(s)) {
			return true
		}
	}
	return false
}

type Set map[Skill]struct{}

func NewSet(skills ...Skill) Set {
	out := make(Set, len(skills))
	for _, s := range skills {
		out.Add(s)
	}
	return out
}

func (s Set) Add(sk Skill) {
	n := Normalize(string(sk))
	if n == "" {
		return
	}
	s[n] = struct{}{}
}

func (s Set) Contains(sk Skill) bool {
	_, ok := s[Normalize(string(sk))]
	return ok
}

func (s Set) Len() int {
	return len(s)
}

func (s Set) Intersect(other Set) Set {
	out := make(Set)
	for sk := range s {
		if other.Contains(sk) {
			out[sk] = struct{}{}
		}
	}
	return out
}

func (s Set) Difference(other Set) Set {
	out := make(Set)
	for sk := range s {
		if !other.Contains(sk) {
			out[sk] = struct{}{}
		}
	}
	return out
}

func (s Set) Sorted() []Skill {
	out := make([]Skill, 0, len(s))
	for sk := range s {
		out = append(out, sk)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func Strings(skills []Skill) []string {
	out := make([]string, 0, len(skills))
	for _, s := range skills {
		out = append(out, string(s))
	}
	return out
}
