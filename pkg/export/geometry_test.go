package export

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func heights(strips []Strip) []int {
	out := make([]int, len(strips))
	for i, s := range strips {
		out[i] = s.Height
	}
	return out
}

func TestPlanStripsRemainderOnLastPage(t *testing.T) {
	strips := PlanStrips(3000, 1200)
	assert.Equal(t, []int{1200, 1200, 600}, heights(strips))
	assert.Equal(t, []Strip{{0, 1200}, {1200, 1200}, {2400, 600}}, strips)
}

func TestPlanStripsCoverage(t *testing.T) {
	cases := []struct{ h, u int }{
		{1, 1200}, {1199, 1200}, {1200, 1200}, {1201, 1200},
		{2400, 1200}, {3000, 1200}, {7777, 333}, {5000, 1},
	}
	for _, tc := range cases {
		strips := PlanStrips(tc.h, float64(tc.u))

		pages := (tc.h + tc.u - 1) / tc.u
		require.Len(t, strips, pages, "H=%d U=%d", tc.h, tc.u)
		for i := 0; i < tc.h/tc.u; i++ {
			assert.Equal(t, tc.u, strips[i].Height)
		}
		last := tc.h % tc.u
		if last == 0 {
			last = tc.u
		}
		assert.Equal(t, last, strips[len(strips)-1].Height, "H=%d U=%d", tc.h, tc.u)
	}
}

func TestPlanStripsFractionalHeightIsContiguous(t *testing.T) {
	for _, u := range []float64{2094.6, 1000.5, 333.33, 0.4} {
		strips := PlanStrips(10000, u)
		top := 0
		for _, s := range strips {
			assert.Equal(t, top, s.Top, "U=%g", u)
			assert.Positive(t, s.Height)
			top += s.Height
		}
		assert.Equal(t, 10000, top, "U=%g", u)
	}
}

func TestPlanStripsFoldsSubPixelRemainder(t *testing.T) {
	strips := PlanStrips(1000, 333.3)

	assert.Equal(t, []int{333, 334, 333}, heights(strips))
	assert.Equal(t, 1000, strips[2].Top+strips[2].Height)
}

func TestPlanStripsEmpty(t *testing.T) {
	assert.Empty(t, PlanStrips(0, 1200))
	assert.Empty(t, PlanStrips(100, 0))
}

func TestGeometry(t *testing.T) {
	require.NoError(t, A4.Validate())
	assert.InDelta(t, 277.0, A4.UsableHeight(), 1e-9)
	assert.InDelta(t, 0.25, A4.Ratio(840), 1e-9)
	assert.InDelta(t, 1108.0, A4.StripHeight(840), 1e-9)

	bad := []Geometry{
		{PageWidth: 0, PageHeight: 297, Scale: 1},
		{PageWidth: 210, PageHeight: 20, MarginTop: 10, MarginBottom: 10, Scale: 1},
		{PageWidth: 210, PageHeight: 297, MarginTop: -1, Scale: 1},
		{PageWidth: 210, PageHeight: 297},
	}
	for _, g := range bad {
		assert.Error(t, g.Validate(), "%+v", g)
	}
}
