package catalog

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"beerdex/pkg/model"
)

func makeGroups(n int) []*model.BeerGroup {
	groups := make([]*model.BeerGroup, n)
	for i := range groups {
		groups[i] = &model.BeerGroup{CanonicalID: fmt.Sprintf("g%02d", i)}
	}
	return groups
}

func TestPaginate(t *testing.T) {
	tests := []struct {
		name       string
		total      int
		page       int
		limit      int
		wantLen    int
		wantFirst  string
		totalPages int
	}{
		{"First page", 45, 1, 20, 20, "g00", 3},
		{"Middle page", 45, 2, 20, 20, "g20", 3},
		{"Short last page", 45, 3, 20, 5, "g40", 3},
		{"Out of range page is empty", 45, 9, 20, 0, "", 3},
		{"Exact fit", 40, 2, 20, 20, "g20", 2},
		{"Empty sequence", 0, 1, 20, 0, "", 0},
		{"Page below one is clamped", 10, 0, 5, 5, "g00", 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page, p := Paginate(makeGroups(tt.total), tt.page, tt.limit)

			assert.Len(t, page, tt.wantLen)
			if tt.wantLen > 0 {
				assert.Equal(t, tt.wantFirst, page[0].CanonicalID)
			}
			assert.Equal(t, int64(tt.total), p.Total)
			assert.Equal(t, tt.totalPages, p.TotalPages)
		})
	}
}

func TestPaginate_PagesCoverSequenceExactly(t *testing.T) {
	const total, limit = 45, 20
	groups := makeGroups(total)

	var covered int
	_, first := Paginate(groups, 1, limit)
	for page := 1; page <= first.TotalPages; page++ {
		slice, _ := Paginate(groups, page, limit)
		covered += len(slice)
	}
	assert.Equal(t, total, covered, "page lengths must sum to the total")
}

func TestPaginate_TotalPagesZeroOnlyWhenEmpty(t *testing.T) {
	_, p := Paginate(nil, 1, 20)
	assert.Zero(t, p.TotalPages)
	assert.Zero(t, p.Total)

	_, p = Paginate(makeGroups(1), 1, 20)
	assert.Equal(t, 1, p.TotalPages)
}
