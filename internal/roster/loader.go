// Package roster fetches the team roster rendered by the About page.
package roster

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"shortmovie-about/internal/apperrors"
	"shortmovie-about/internal/domain/models"
	"shortmovie-about/internal/lib/logger/sl"
)

type Loader struct {
	log      *slog.Logger
	client   *http.Client
	endpoint string
}

func NewLoader(log *slog.Logger, endpoint string, timeout time.Duration) *Loader {
	return &Loader{
		log:      log,
		client:   &http.Client{Timeout: timeout},
		endpoint: endpoint,
	}
}

// Fetch performs one GET against the endpoint and decodes the
// {"data": [...]} envelope. A missing or null data field yields an empty
// roster.
func (l *Loader) Fetch(ctx context.Context) ([]models.Member, error) {
	const op = "roster.Loader.Fetch"

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, l.endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := l.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, fmt.Errorf("%s: %w: %d", op, apperrors.ErrRosterStatus, resp.StatusCode)
	}

	var envelope models.MemberList
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return nil, fmt.Errorf("%s: %w: %v", op, apperrors.ErrRosterDecode, err)
	}

	if envelope.Data == nil {
		return []models.Member{}, nil
	}

	return envelope.Data, nil
}

// Load never fails: any error is logged and the page gets an empty roster.
func (l *Loader) Load(ctx context.Context) []models.Member {
	const op = "roster.Loader.Load"

	log := l.log.With(
		slog.String("op", op),
		slog.String("endpoint", l.endpoint),
	)

	members, err := l.Fetch(ctx)
	if err != nil {
		// Cancellation means the page went away first.
		if errors.Is(err, context.Canceled) {
			log.Debug("team members fetch cancelled", sl.Err(err))
		} else {
			log.Error("failed to fetch team members", sl.Err(err))
		}
		return []models.Member{}
	}

	log.Debug("team members fetched", slog.Int("member_count", len(members)))

	return members
}
