package matching

import (
	"strings"

	"resume-match/internal/domain/skill"
)

const DefaultThreshold = 80.0

type Extractor struct {
	catalog   skill.Catalog
	sim       Similarity
	threshold float64
}

func NewExtractor(catalog skill.Catalog, sim Similarity, threshold float64) *Extractor {
	if len(catalog) == 0 {
		catalog = skill.DefaultCatalog()
	}
	if sim == nil {
		sim = PartialRatio{}
	}
	if threshold <= 0 {
		threshold = DefaultThreshold
	}
	return &Extractor{catalog: catalog, sim: sim, threshold: threshold}
}

// Extract returns the catalog skills whose similarity against text reaches
// the threshold. Each skill is tested on its own, so overlapping hits are fine.
func (e *Extractor) Extract(text string) skill.Set {
	found := make(skill.Set)
	lower := strings.ToLower(text)
	if strings.TrimSpace(lower) == "" {
		return found
	}

	for _, sk := range e.catalog {
		name := skill.Normalize(string(sk))
		if name == "" {
			continue
		}
		if e.sim.Similarity(string(name), lower) >= e.threshold {
			found.Add(name)
		}
	}
	return found
}

func (e *Extractor) Catalog() skill.Catalog {
	return e.catalog
}
