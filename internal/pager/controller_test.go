package pager

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestControllerStartup(t *testing.T) {
	h := newHarness(t, 5, "https://news.example/?page=3")

	assert.Equal(t, State{Current: 3, Total: 5}, h.ctrl.State())
	assert.Equal(t, 3, h.shownPage())
	assert.False(t, h.ctrl.Loading())
	assert.Equal(t, []string{"discovered:5", "nav:3/5:init", "content:3", "scroll:top"}, h.log.snapshot())
	assert.Equal(t, "https://news.example/?page=3", h.ctrl.Location().String())
	assert.Equal(t, 1, h.ctrl.History().Len())
	require.Len(t, h.frag.runs, 1)
}

func TestControllerRendersPlaceholderBeforeDiscovery(t *testing.T) {
	c := New(context.Background(), Options{
		Source: &fakeSource{total: 2},
		Start:  mustURL(t, "https://news.example/"),
	})

	require.Len(t, c.Controls(), 2)
	assert.Equal(t, "Page 1 of 1", c.Controls()[0].Label)
	assert.False(t, c.Ready())
	assert.Nil(t, c.Reload(), "nothing to reload yet")
}

func TestNextFromPageThreeOfFive(t *testing.T) {
	h := newHarness(t, 5, "https://news.example/?page=3")
	top, _ := h.ctrl.Control(OriginPrimary)
	require.Equal(t, "Page 3 of 5", top.Label)

	pump(h.ctrl, h.ctrl.Activate(OriginPrimary, AffordanceNext))

	assert.Equal(t, 4, h.ctrl.State().Current)
	assert.Equal(t, 4, h.shownPage())
	assert.Equal(t, "https://news.example/?page=4", h.ctrl.Location().String())
	assert.Equal(t, 2, h.ctrl.History().Len(), "pushed")
	for _, c := range h.ctrl.Controls() {
		assert.Equal(t, "Page 4 of 5", c.Label, c.Mount.Name)
	}
}

func TestPrevDisabledOnFirstPage(t *testing.T) {
	h := newHarness(t, 5, "https://news.example/")
	gen := h.ctrl.Generation()
	fetches := h.src.fetchCount()

	for _, origin := range []Origin{OriginPrimary, OriginSecondary} {
		c, ok := h.ctrl.Control(origin)
		require.True(t, ok)
		assert.False(t, c.PrevEnabled)
		assert.Nil(t, h.ctrl.Activate(origin, AffordancePrev))
	}

	assert.Equal(t, gen, h.ctrl.Generation())
	assert.Equal(t, fetches, h.src.fetchCount())
	assert.Equal(t, 1, h.ctrl.History().Len())
}

func TestNextDisabledOnLastPage(t *testing.T) {
	h := newHarness(t, 5, "https://news.example/?page=5")
	gen := h.ctrl.Generation()

	c, _ := h.ctrl.Control(OriginSecondary)
	assert.False(t, c.NextEnabled)
	assert.Nil(t, h.ctrl.Activate(OriginSecondary, AffordanceNext))
	assert.Nil(t, h.ctrl.Next(OriginPrimary), "store clamps too")

	assert.Equal(t, 5, h.ctrl.State().Current)
	assert.Equal(t, gen, h.ctrl.Generation())
	assert.Equal(t, 1, h.ctrl.History().Len())
}

func TestRapidDoubleNext(t *testing.T) {
	h := newHarness(t, 5, "https://news.example/?page=2")

	first := collect(h.ctrl.Activate(OriginPrimary, AffordanceNext))
	second := collect(h.ctrl.Activate(OriginPrimary, AffordanceNext))
	require.Equal(t, 4, h.ctrl.State().Current)

	h.log.reset()
	// Deliver the newer response first; the older one must not win.
	for _, m := range append(second, first...) {
		_, cmd := h.ctrl.Update(m)
		pump(h.ctrl, cmd)
	}

	assert.Equal(t, 4, h.shownPage())
	assert.Equal(t, []string{"content:4", "scroll:top"}, h.log.snapshot())
	assert.Equal(t, "https://news.example/?page=4", h.ctrl.Location().String())
	assert.Equal(t, 3, h.ctrl.History().Len())
}

func TestSecondaryControlDefersScroll(t *testing.T) {
	h := newHarness(t, 5, "https://news.example/?page=2")
	h.log.reset()

	msgs := collect(h.ctrl.Activate(OriginSecondary, AffordanceNext))
	require.Len(t, loadedMsgs(msgs), 1)

	_, tick := h.ctrl.Update(msgs[0])
	assert.Equal(t, []string{"nav:3/5:secondary", "content:3"}, h.log.snapshot(), "still at the old offset")

	h.ctrl.Drawn()
	pump(h.ctrl, tick)
	assert.Equal(t, []string{"nav:3/5:secondary", "content:3", "scroll:top"}, h.log.snapshot())
}

func TestBackAfterThreePages(t *testing.T) {
	h := newHarness(t, 5, "https://news.example/")
	pump(h.ctrl, h.ctrl.Next(OriginPrimary))
	pump(h.ctrl, h.ctrl.Next(OriginPrimary))
	require.Equal(t, 3, h.ctrl.History().Len())

	pump(h.ctrl, h.ctrl.Back())

	assert.Equal(t, 2, h.ctrl.State().Current)
	assert.Equal(t, 2, h.shownPage())
	assert.Equal(t, 3, h.ctrl.History().Len())
	assert.Equal(t, "https://news.example/?page=2", h.ctrl.Location().String())

	pump(h.ctrl, h.ctrl.Forward())
	assert.Equal(t, 3, h.shownPage())
}

func TestControllerFailureDismissAndRetry(t *testing.T) {
	h := newHarness(t, 5, "https://news.example/")
	h.src.setFailing(2, true)

	pump(h.ctrl, h.ctrl.Next(OriginPrimary))

	failure := h.ctrl.Container().Failure()
	require.NotNil(t, failure)
	assert.Equal(t, 2, failure.Page)
	assert.Equal(t, 2, h.ctrl.State().Current, "state survives the failure")
	assert.Equal(t, "https://news.example/?page=2", h.ctrl.Location().String())

	assert.True(t, h.ctrl.DismissError())
	assert.False(t, h.ctrl.DismissError())

	h.src.setFailing(2, false)
	histLen := h.ctrl.History().Len()
	h.log.reset()
	pump(h.ctrl, h.ctrl.Reload())

	assert.Nil(t, h.ctrl.Container().Failure())
	assert.Equal(t, 2, h.shownPage())
	assert.Equal(t, histLen, h.ctrl.History().Len(), "reload writes no history")
	assert.Equal(t, []string{"content:2", "scroll:top"}, h.log.snapshot(), "reload is not announced")
}

func TestControllerGotoClamps(t *testing.T) {
	h := newHarness(t, 4, "https://news.example/")

	pump(h.ctrl, h.ctrl.Goto(40, OriginPrimary))
	assert.Equal(t, 4, h.shownPage())

	pump(h.ctrl, h.ctrl.Goto(-1, OriginPrimary))
	assert.Equal(t, 1, h.shownPage())
	assert.Equal(t, "https://news.example/", h.ctrl.Location().String())
}

func TestControllerInitClampsOddPageParams(t *testing.T) {
	tests := []struct {
		start    string
		want     int
		location string
	}{
		{start: "https://news.example/?page=99999999999999999999", want: 5, location: "https://news.example/?page=5"},
		{start: "https://news.example/?page=3abc", want: 3, location: "https://news.example/?page=3"},
		{start: "https://news.example/?page=abc", want: 1, location: "https://news.example/"},
	}
	for _, tt := range tests {
		t.Run(tt.start, func(t *testing.T) {
			h := newHarness(t, 5, tt.start)
			assert.Equal(t, tt.want, h.ctrl.State().Current)
			assert.Equal(t, tt.want, h.shownPage())
			assert.Equal(t, tt.location, h.ctrl.Location().String())
			assert.Equal(t, 1, h.ctrl.History().Len(), "init replaces")
		})
	}
}

func TestControllerIgnoresForeignMessages(t *testing.T) {
	h := newHarness(t, 2, "https://news.example/")
	handled, cmd := h.ctrl.Update("tick")
	assert.False(t, handled)
	assert.Nil(t, cmd)
}
