package linkmatch

import (
	fuzzy "github.com/paul-mannino/go-fuzzywuzzy"

	"github.com/minjae-dev/webreader/models"
)

// Threshold is the minimum similarity (0-100, exclusive) a label must score
// against the query before it is considered navigable.
const Threshold = 60

// BestLink picks the link whose label is the closest fuzzy match for the
// query, or nil when no label clears the threshold. Labels are assumed unique
// within one content session; when duplicates exist the last one wins.
func BestLink(query string, links []models.Link) *models.Link {
	if len(links) == 0 {
		return nil
	}

	candidates := make(map[string]models.Link, len(links))
	labels := make([]string, 0, len(links))
	for _, link := range links {
		if _, seen := candidates[link.Text]; !seen {
			labels = append(labels, link.Text)
		}
		candidates[link.Text] = link
	}

	// labels are scored in first-seen order so ties resolve deterministically
	bestScore := -1
	var bestLabel string
	for _, label := range labels {
		score := fuzzy.WRatio(query, label)
		if score > bestScore {
			bestScore = score
			bestLabel = label
		}
	}

	if bestScore > Threshold {
		link := candidates[bestLabel]
		return &link
	}
	return nil
}
