package finder

import (
	"time"

	"github.com/rohmanhakim/nl-locator/internal/dom"
	"github.com/rohmanhakim/nl-locator/internal/metadata"
)

// Finder wraps Rank with metadata recording.
type Finder struct {
	metadataSink metadata.MetadataSink
}

func NewFinder(metadataSink metadata.MetadataSink) Finder {
	return Finder{
		metadataSink: metadataSink,
	}
}

func (f *Finder) Rank(markup string, query string) Result {
	start := time.Now()

	tree, err := dom.Parse(markup)
	if err != nil {
		f.metadataSink.RecordError(
			time.Now(),
			"finder",
			"Finder.Rank",
			metadata.CauseContentInvalid,
			err.Error(),
			[]metadata.Attribute{metadata.NewAttr(metadata.AttrQuery, query)},
		)
		f.metadataSink.RecordLocate(query, 0, 0, false, time.Since(start))
		return Result{Candidates: []ElementScore{}}
	}

	result := RankTree(tree, query)

	bestScore := 0
	if result.Best != nil {
		bestScore = result.Best.Score
	}
	f.metadataSink.RecordLocate(
		query,
		len(result.Candidates),
		bestScore,
		result.Best != nil,
		time.Since(start),
	)
	return result
}
