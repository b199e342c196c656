package handler

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"

	"shortmovie-about/internal/apperrors"
	"shortmovie-about/internal/lib/logger/sl"
	"shortmovie-about/internal/noise"
	"shortmovie-about/internal/page"
)

const wsWriteWait = 2 * time.Second

type (
	PageFactory  func() *page.Page
	NoiseFactory func() *noise.Generator
)

type AboutHandler struct {
	newPage       PageFactory
	newNoise      NoiseFactory
	memberService MemberService
	renderTimeout time.Duration
	upgrader      websocket.Upgrader
	log           *slog.Logger
}

func NewAboutHandler(
	newPage PageFactory,
	newNoise NoiseFactory,
	memberService MemberService,
	renderTimeout time.Duration,
	log *slog.Logger,
) *AboutHandler {
	return &AboutHandler{
		newPage:       newPage,
		newNoise:      newNoise,
		memberService: memberService,
		renderTimeout: renderTimeout,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
			// The stream carries decorative data only.
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		log: log,
	}
}

// About renders the page. The page is mounted for the duration of the
// request and always torn down before returning.
func (h *AboutHandler) About(w http.ResponseWriter, r *http.Request) {
	const op = "handler.about.About"

	log := h.log.With(slog.String("op", op))

	p := h.newPage()
	defer p.Teardown()

	ctx, cancel := context.WithTimeout(r.Context(), h.renderTimeout)
	defer cancel()

	p.Mount(ctx)
	if !p.Wait(ctx) {
		log.Warn("roster not available before render deadline")
	}
	p.ResolveImages(ctx)

	var buf bytes.Buffer
	if err := page.Render(&buf, p.View()); err != nil {
		log.Error("failed to render about page", sl.Err(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Referrer-Policy", "no-referrer")
	w.WriteHeader(http.StatusOK)
	if _, err := buf.WriteTo(w); err != nil {
		log.Debug("failed to write about page", sl.Err(err))
	}
}

// Instagram sends the browser to the member's profile link exactly as
// stored, without leaking the referrer.
func (h *AboutHandler) Instagram(w http.ResponseWriter, r *http.Request) {
	const op = "handler.about.Instagram"

	log := h.log.With(slog.String("op", op))

	member, err := h.memberService.GetMember(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, apperrors.ErrMemberNotFound) || errors.Is(err, apperrors.ErrInvalidMemberID) {
			http.NotFound(w, r)
			return
		}
		log.Error("failed to get member", sl.Err(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Referrer-Policy", "no-referrer")
	page.NewCard(*member).OpenProfile(page.NavigatorFunc(func(url string) {
		if url == "" {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		w.Header().Set("Location", url)
		w.WriteHeader(http.StatusFound)
	}))
}

// Noise streams noise frames over a WebSocket until the client goes away.
// The generator lives exactly as long as the connection.
func (h *AboutHandler) Noise(w http.ResponseWriter, r *http.Request) {
	const op = "handler.about.Noise"

	log := h.log.With(slog.String("op", op))

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Debug("websocket upgrade failed", sl.Err(err))
		return
	}
	defer conn.Close()

	gen := h.newNoise()
	gen.Start()
	defer gen.Stop()

	frames, unsubscribe := gen.Subscribe()
	defer unsubscribe()

	closed := make(chan struct{})
	go func() {
		defer close(closed)
		for {
			if _, _, err := conn.NextReader(); err != nil {
				return
			}
		}
	}()

	if err := h.writeFrame(conn, gen.Frame()); err != nil {
		return
	}

	for {
		select {
		case <-closed:
			return
		case <-r.Context().Done():
			return
		case frame, ok := <-frames:
			if !ok {
				return
			}
			if err := h.writeFrame(conn, frame); err != nil {
				log.Debug("noise stream closed", sl.Err(err))
				return
			}
		}
	}
}

func (h *AboutHandler) writeFrame(conn *websocket.Conn, frame []noise.Point) error {
	if err := conn.SetWriteDeadline(time.Now().Add(wsWriteWait)); err != nil {
		return err
	}
	return conn.WriteJSON(frame)
}
