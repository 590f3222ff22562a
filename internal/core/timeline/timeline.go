package timeline

import (
	"math"
	"strconv"

	"github.com/gofrs/uuid"
)

// PageSize is the number of posts on every listing page.
const PageSize = 10

// Filter narrows a post listing. The zero value lists everything.
type Filter struct {
	// AuthorIDs, when non-nil, keeps only posts by these authors. An empty
	// non-nil slice matches nothing.
	AuthorIDs []uuid.UUID
	GroupID   *uint
}

// Meta describes where a page sits in the whole listing.
type Meta struct {
	Number      int   `json:"number"`
	PageSize    int   `json:"page_size"`
	TotalCount  int64 `json:"total_count"`
	NumPages    int   `json:"num_pages"`
	HasNext     bool  `json:"has_next"`
	HasPrevious bool  `json:"has_previous"`
}

// ParsePageNumber turns a ?page= value into a 1-based page number.
// Anything unparsable or below 1 means the first page.
func ParsePageNumber(raw string) int {
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return 1
	}
	return n
}

// Offset is the number of rows before page number. Page numbers whose offset
// does not fit in an int map to math.MaxInt, which is past any listing.
func Offset(number, size int) int {
	if number < 1 {
		number = 1
	}
	if size > 0 && number-1 > (math.MaxInt-1)/size {
		return math.MaxInt
	}
	return (number - 1) * size
}

// NewMeta computes page metadata. A page past the end is valid and simply empty.
func NewMeta(number, size int, total int64) Meta {
	if number < 1 {
		number = 1
	}
	numPages := int((total + int64(size) - 1) / int64(size))
	return Meta{
		Number:      number,
		PageSize:    size,
		TotalCount:  total,
		NumPages:    numPages,
		HasNext:     number < numPages,
		HasPrevious: number > 1 && numPages > 0,
	}
}
