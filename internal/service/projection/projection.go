package projection

import (
	"sort"

	"github.com/humanbelnik/cinetally/internal/model"
	"github.com/humanbelnik/cinetally/internal/service/consensus"
)

type SortBy string

const (
	SortLatest SortBy = "latest"
	SortScore  SortBy = "score"
)

const DefaultPageSize = 15

// Options select which slice of the collection a view wants. Kind is
// mandatory: a view always serves exactly one media kind. Category narrows
// further when set. Page is 1-based.
type Options struct {
	Kind     model.Kind
	Category model.Category
	SortBy   SortBy
	Page     int
	PageSize int
}

type Projection struct {
	Slice      []model.Entry
	TotalPages int
}

// Project filters, sorts and paginates entries. It is pure: identical inputs
// always yield an identical slice and page count. A page past the end yields
// an empty slice; the requested page is never renormalized here.
func Project(entries []model.Entry, opts Options) Projection {
	if opts.PageSize <= 0 {
		opts.PageSize = DefaultPageSize
	}
	if opts.Page <= 0 {
		opts.Page = 1
	}

	scored := make([]scoredEntry, 0, len(entries))
	for _, e := range entries {
		if e.Kind != opts.Kind {
			continue
		}
		if opts.Category != "" && e.Category != opts.Category {
			continue
		}
		scored = append(scored, scoredEntry{entry: e, score: consensus.Score(e)})
	}

	switch opts.SortBy {
	case SortScore:
		sort.SliceStable(scored, func(i, j int) bool {
			if scored[i].score != scored[j].score {
				return scored[i].score > scored[j].score
			}
			return scored[i].entry.CreatedAt.After(scored[j].entry.CreatedAt)
		})
	default:
		sort.SliceStable(scored, func(i, j int) bool {
			return scored[i].entry.CreatedAt.After(scored[j].entry.CreatedAt)
		})
	}

	totalPages := (len(scored) + opts.PageSize - 1) / opts.PageSize
	if totalPages < 1 {
		totalPages = 1
	}

	start := (opts.Page - 1) * opts.PageSize
	if start > len(scored) {
		start = len(scored)
	}
	end := start + opts.PageSize
	if end > len(scored) {
		end = len(scored)
	}

	slice := make([]model.Entry, 0, end-start)
	for _, se := range scored[start:end] {
		slice = append(slice, se.entry)
	}

	return Projection{
		Slice:      slice,
		TotalPages: totalPages,
	}
}

type scoredEntry struct {
	entry model.Entry
	score float64
}
