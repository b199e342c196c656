package page

import (
	"testing"

	"github.com/stretchr/testify/require"

	"shortmovie-about/internal/domain/models"
)

func TestCardStartsLoading(t *testing.T) {
	c := NewCard(models.Member{ID: 1})

	require.Equal(t, ImageLoading, c.Status())
	require.True(t, c.ShowSpinner())
	require.True(t, c.ShowFallback())
}

func TestCardLoadedIsTerminal(t *testing.T) {
	c := NewCard(models.Member{ID: 1})

	require.True(t, c.MarkLoaded())
	require.False(t, c.MarkErrored())
	require.False(t, c.MarkLoaded())

	require.Equal(t, ImageLoaded, c.Status())
	require.False(t, c.ShowSpinner())
	require.False(t, c.ShowFallback())
}

func TestCardErroredIsTerminal(t *testing.T) {
	c := NewCard(models.Member{ID: 1})

	require.True(t, c.MarkErrored())
	require.False(t, c.MarkLoaded())

	require.Equal(t, ImageErrored, c.Status())
	require.False(t, c.ShowSpinner())
	require.True(t, c.ShowFallback())
}

func TestCardHoverAndTooltipAreIndependent(t *testing.T) {
	c := NewCard(models.Member{ID: 1})

	c.SetHovered(true)
	require.True(t, c.Hovered())
	require.False(t, c.TooltipVisible())

	c.SetTooltip(true)
	c.SetHovered(false)
	require.False(t, c.Hovered())
	require.True(t, c.TooltipVisible())
	require.Equal(t, ImageLoading, c.Status())
}

func TestOpenProfilePassesURLUnmodified(t *testing.T) {
	link := "https://www.instagram.com/matt.nael?igsh=MWhpcHQzcWlsYzRhdg=="
	c := NewCard(models.Member{ID: 5, LinkToInstagram: link})

	var opened []string
	c.OpenProfile(NavigatorFunc(func(url string) {
		opened = append(opened, url)
	}))

	require.Equal(t, []string{link}, opened)
}

func TestOpenProfileWithEmptyLink(t *testing.T) {
	c := NewCard(models.Member{ID: 6})

	var opened []string
	c.OpenProfile(NavigatorFunc(func(url string) {
		opened = append(opened, url)
	}))

	require.Equal(t, []string{""}, opened)
}

func TestImageStatusString(t *testing.T) {
	require.Equal(t, "loading", ImageLoading.String())
	require.Equal(t, "loaded", ImageLoaded.String())
	require.Equal(t, "errored", ImageErrored.String())
	require.Equal(t, "unknown", ImageStatus(42).String())
}
