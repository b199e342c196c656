package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"shortmovie-about/internal/apperrors"
	"shortmovie-about/internal/domain/models"
	"shortmovie-about/internal/lib/logger/sl"
)

type (
	MemberListResponse struct {
		Data []models.Member `json:"data"`
	}

	MemberResponse struct {
		Data models.Member `json:"data"`
	}

	ErrorResponse struct {
		Error string `json:"error"`
	}

	PingResponse struct {
		Message string `json:"message"`
	}
)

type MemberService interface {
	ListMembers(ctx context.Context) ([]models.Member, error)
	GetMember(ctx context.Context, rawID string) (*models.Member, error)
}

type MemberHandler struct {
	memberService MemberService
	log           *slog.Logger
}

func NewMemberHandler(memberService MemberService, log *slog.Logger) *MemberHandler {
	return &MemberHandler{
		memberService: memberService,
		log:           log,
	}
}

func (h *MemberHandler) ListMembers(w http.ResponseWriter, r *http.Request) {
	const op = "handler.member.ListMembers"

	log := h.log.With(slog.String("op", op))

	members, err := h.memberService.ListMembers(r.Context())
	if err != nil {
		log.Error("failed to fetch members", sl.Err(err))
		h.writeError(w, http.StatusInternalServerError, "Failed to fetch members")
		return
	}

	writeJSON(w, log, http.StatusOK, MemberListResponse{Data: members})
}

func (h *MemberHandler) GetMember(w http.ResponseWriter, r *http.Request) {
	const op = "handler.member.GetMember"

	log := h.log.With(slog.String("op", op))

	member, err := h.memberService.GetMember(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrMemberNotFound), errors.Is(err, apperrors.ErrInvalidMemberID):
			h.writeError(w, http.StatusNotFound, "Member not found")
		default:
			log.Error("failed to get member", sl.Err(err))
			h.writeError(w, http.StatusInternalServerError, "Failed to fetch member")
		}
		return
	}

	writeJSON(w, log, http.StatusOK, MemberResponse{Data: *member})
}

func (h *MemberHandler) Ping(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, h.log, http.StatusOK, PingResponse{Message: "pong"})
}

func (h *MemberHandler) writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, h.log, status, ErrorResponse{Error: message})
}

func writeJSON(w http.ResponseWriter, log *slog.Logger, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Error("failed to encode JSON response", sl.Err(err))
	}
}
