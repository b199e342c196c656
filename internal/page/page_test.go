package page

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"shortmovie-about/internal/domain/models"
	"shortmovie-about/internal/noise"
	"shortmovie-about/internal/roster"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type staticLoader struct {
	members []models.Member
}

func (l staticLoader) Load(ctx context.Context) []models.Member {
	return l.members
}

// blockingLoader returns its members only once released, ignoring ctx,
// to simulate a response that lands after teardown.
type blockingLoader struct {
	release chan struct{}
	members []models.Member
}

func (l blockingLoader) Load(ctx context.Context) []models.Member {
	<-l.release
	return l.members
}

func testMembers(n int) []models.Member {
	members := make([]models.Member, n)
	for i := range members {
		id := i + 1
		members[i] = models.Member{
			ID:               uint(id),
			FullName:         fmt.Sprintf("Member %d", id),
			Nim:              fmt.Sprintf("27020000%02d", id),
			Age:              19 + id,
			Job:              fmt.Sprintf("Job %d", id),
			Location:         "Jakarta, Indonesia",
			InstagramAccount: fmt.Sprintf("@member_%d", id),
			LinkToInstagram:  fmt.Sprintf("https://www.instagram.com/member_%d", id),
			Quote:            fmt.Sprintf("Quote number %d.", id),
			ImagePath:        fmt.Sprintf("/assets/member_image/%d.jpg", id),
		}
	}
	return members
}

// newImageServer serves every image except the listed missing paths.
// Only HEAD is answered; a GET would mean the probe downloads the image.
func newImageServer(t *testing.T, missing ...string) *HTTPImageServer {
	t.Helper()

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodHead {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		for _, m := range missing {
			if r.URL.Path == m {
				http.NotFound(w, r)
				return
			}
		}
		w.Header().Set("Content-Type", "image/jpeg")
		_, _ = w.Write([]byte{0xff, 0xd8, 0xff})
	}))
	t.Cleanup(ts.Close)

	return NewHTTPImageServer(ts.URL, time.Second)
}

func newTestPage(t *testing.T, loader RosterLoader, images ImageServer) *Page {
	t.Helper()

	p := New(discardLogger(), loader, images, noise.New(noise.DefaultPoints, time.Hour, noise.WithSeed(7)))
	t.Cleanup(p.Teardown)
	return p
}

func TestRendersOneCardPerMember(t *testing.T) {
	members := testMembers(6)
	p := newTestPage(t, staticLoader{members: members}, newImageServer(t))

	p.Mount(context.Background())
	require.True(t, p.Wait(context.Background()))
	p.ResolveImages(context.Background())

	v := p.View()
	require.True(t, v.Loaded)
	require.Len(t, v.Cards, 6)

	var buf bytes.Buffer
	require.NoError(t, Render(&buf, v))
	html := buf.String()

	require.Equal(t, 6, strings.Count(html, `<article class="card`))
	require.Equal(t, 6, strings.Count(html, `Click to view Instagram`))
	require.NotContains(t, html, "card__tooltip--visible")
	for i, m := range members {
		require.Equal(t, m, v.Cards[i].Member)
		require.Equal(t, ImageLoaded, v.Cards[i].Status)

		require.Contains(t, html, m.FullName)
		require.Contains(t, html, fmt.Sprintf("%d years old", m.Age))
		require.Contains(t, html, m.Location)
		require.Contains(t, html, m.Job)
		require.Contains(t, html, m.InstagramAccount)
		require.Contains(t, html, m.Quote)
		require.Contains(t, html, `href="`+m.LinkToInstagram+`"`)
	}
	require.Contains(t, html, `rel="noopener noreferrer"`)
}

func TestEndpointFailureRendersZeroCards(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{name: "server_error", status: http.StatusInternalServerError, body: `{"error":"Failed to fetch members"}`},
		{name: "malformed_json", status: http.StatusOK, body: `{"data":[`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = io.WriteString(w, tt.body)
			}))
			defer api.Close()

			loader := roster.NewLoader(discardLogger(), api.URL+"/api/members", time.Second)
			p := newTestPage(t, loader, newImageServer(t))

			p.Mount(context.Background())
			require.True(t, p.Wait(context.Background()))
			p.ResolveImages(context.Background())

			v := p.View()
			require.Empty(t, v.Cards)
			require.Len(t, v.Documentation, 5)

			var buf bytes.Buffer
			require.NoError(t, Render(&buf, v))
			require.NotContains(t, buf.String(), `<article class="card`)
			require.Contains(t, buf.String(), `data-count="5"`)
		})
	}
}

func TestMissingImageOnlyAffectsItsCard(t *testing.T) {
	members := testMembers(3)
	p := newTestPage(t, staticLoader{members: members}, newImageServer(t, members[1].ImagePath))

	p.Mount(context.Background())
	require.True(t, p.Wait(context.Background()))
	p.ResolveImages(context.Background())

	v := p.View()
	require.Len(t, v.Cards, 3)

	require.Equal(t, ImageLoaded, v.Cards[0].Status)
	require.False(t, v.Cards[0].ShowFallback)

	require.Equal(t, ImageErrored, v.Cards[1].Status)
	require.True(t, v.Cards[1].ShowFallback)
	require.False(t, v.Cards[1].ShowImage)
	require.False(t, v.Cards[1].ShowSpinner)

	require.Equal(t, ImageLoaded, v.Cards[2].Status)
	require.False(t, v.Cards[2].ShowFallback)

	var buf bytes.Buffer
	require.NoError(t, Render(&buf, v))
	require.Equal(t, 1, strings.Count(buf.String(), `class="card__fallback"`))
	require.Equal(t, 1, strings.Count(buf.String(), `data-image-status="errored"`))
}

func TestEmptyImagePathErrors(t *testing.T) {
	members := testMembers(1)
	members[0].ImagePath = ""
	p := newTestPage(t, staticLoader{members: members}, newImageServer(t))

	p.Mount(context.Background())
	require.True(t, p.Wait(context.Background()))
	p.ResolveImages(context.Background())

	require.Equal(t, ImageErrored, p.Cards()[0].Status())
}

func TestCardsLoadingBeforeResolve(t *testing.T) {
	p := newTestPage(t, staticLoader{members: testMembers(2)}, newImageServer(t))

	p.Mount(context.Background())
	require.True(t, p.Wait(context.Background()))

	for _, c := range p.View().Cards {
		require.Equal(t, ImageLoading, c.Status)
		require.True(t, c.ShowSpinner)
		require.True(t, c.ShowFallback)
	}
}

func TestTeardownStopsNoise(t *testing.T) {
	gen := noise.New(10, time.Millisecond, noise.WithSeed(8))
	p := New(discardLogger(), staticLoader{}, newImageServer(t), gen)

	p.Mount(context.Background())
	require.True(t, gen.Running())
	require.Eventually(t, func() bool { return gen.Ticks() > 2 }, time.Second, time.Millisecond)

	p.Teardown()
	require.False(t, gen.Running())

	ticks := gen.Ticks()
	time.Sleep(20 * time.Millisecond)
	require.Equal(t, ticks, gen.Ticks())
}

func TestLateRosterIsDiscarded(t *testing.T) {
	loader := blockingLoader{release: make(chan struct{}), members: testMembers(4)}
	p := New(discardLogger(), loader, newImageServer(t), noise.New(10, time.Hour))

	p.Mount(context.Background())
	require.False(t, p.Loaded())

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		p.Teardown()
	}()

	// Teardown waits for the fetch, so release it once teardown has begun.
	require.Eventually(t, p.isTornDown, time.Second, time.Millisecond)
	close(loader.release)
	wg.Wait()

	require.False(t, p.Loaded())
	require.Empty(t, p.Cards())
	require.False(t, p.Wait(context.Background()))
}

func TestTeardownCancelsInFlightFetch(t *testing.T) {
	started := make(chan struct{})
	api := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		close(started)
		<-r.Context().Done()
	}))
	defer api.Close()

	loader := roster.NewLoader(discardLogger(), api.URL+"/api/members", 0)
	p := New(discardLogger(), loader, newImageServer(t), noise.New(10, time.Hour))

	p.Mount(context.Background())
	<-started

	done := make(chan struct{})
	go func() {
		p.Teardown()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("teardown did not cancel the roster request")
	}
	require.Empty(t, p.Cards())
}

func TestMountAndTeardownAreIdempotent(t *testing.T) {
	gen := noise.New(10, time.Hour)
	p := New(discardLogger(), staticLoader{members: testMembers(1)}, newImageServer(t), gen)

	p.Mount(context.Background())
	p.Mount(context.Background())
	require.True(t, p.Wait(context.Background()))
	require.Equal(t, uint64(1), gen.Ticks())

	p.Teardown()
	p.Teardown()

	p.Mount(context.Background())
	require.False(t, gen.Running())
}

func TestResolveImagesAfterTeardownIsNoop(t *testing.T) {
	p := New(discardLogger(), staticLoader{members: testMembers(2)}, newImageServer(t), noise.New(10, time.Hour))

	p.Mount(context.Background())
	require.True(t, p.Wait(context.Background()))
	p.Teardown()

	p.ResolveImages(context.Background())
	for _, c := range p.Cards() {
		require.Equal(t, ImageLoading, c.Status())
	}
}

func TestWaitHonoursContext(t *testing.T) {
	loader := blockingLoader{release: make(chan struct{})}
	p := New(discardLogger(), loader, newImageServer(t), noise.New(10, time.Hour))
	p.Mount(context.Background())

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	require.False(t, p.Wait(ctx))

	close(loader.release)
	p.Teardown()
}

func TestViewIncludesNoiseFrame(t *testing.T) {
	p := newTestPage(t, staticLoader{}, newImageServer(t))
	p.Mount(context.Background())
	require.True(t, p.Wait(context.Background()))

	v := p.View()
	require.Len(t, v.Noise, noise.DefaultPoints)

	var buf bytes.Buffer
	require.NoError(t, Render(&buf, v))
	require.Equal(t, noise.DefaultPoints, strings.Count(buf.String(), "<i style="))
}
