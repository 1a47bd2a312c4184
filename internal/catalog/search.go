package catalog

import (
	"sort"
	"strings"
)

// Match is a single result of a catalog search.
type Match struct {
	Metadata *Metadata
	Score    float64
}

// Score ranks an operator against lower-case keywords. The longest keyword
// contained in the label wins and is normalised by the label length; a
// keyword found only in the category scores 0; no hit at all scores -1.
func (m *Metadata) Score(keywords []string) float64 {
	label := strings.ToLower(m.label)
	category := strings.ToLower(m.category)

	res := -1.0
	for _, keyword := range keywords {
		if keyword == "" {
			continue
		}
		if strings.Contains(label, keyword) && res < float64(len(keyword)) {
			res = float64(len(keyword))
		} else if strings.Contains(category, keyword) && res < 0 {
			res = 0
		}
	}
	if res > 0 {
		return res / float64(len(label))
	}
	return res
}

// Search returns the operators matching the query, best match first. The
// query is split on whitespace and compared case-insensitively.
func (c *Catalog) Search(query string) []Match {
	keywords := strings.Fields(strings.ToLower(query))
	if len(keywords) == 0 {
		return nil
	}

	var matches []Match
	for _, md := range c.byKind {
		if score := md.Score(keywords); score >= 0 {
			matches = append(matches, Match{Metadata: md, Score: score})
		}
	}
	sort.Slice(matches, func(i, j int) bool {
		if matches[i].Score != matches[j].Score {
			return matches[i].Score > matches[j].Score
		}
		return matches[i].Metadata.Label() < matches[j].Metadata.Label()
	})
	return matches
}
