package integration

import (
	"fmt"
	"log/slog"
	"net/http/httptest"
	"os"
	"path/filepath"

	"github.com/go-chi/chi/v5"

	"shortmovie-about/internal/app"
	"shortmovie-about/internal/config"
	v1 "shortmovie-about/internal/http/v1"
	"shortmovie-about/internal/lib/migrator"
	"shortmovie-about/internal/repo"
	"shortmovie-about/internal/service"
	"shortmovie-about/internal/storage/postgresql"
)

// presentImage is served from the assets dir; missingImage is not.
const (
	presentImage = "/assets/member_image/evaldo.jpg"
	missingImage = "/assets/member_image/winsen.png"
)

type TestServer struct {
	Storage *postgresql.Storage
	Server  *httptest.Server
}

// NewTestServer runs the real stack against the database configured by the
// PG_* variables. The About page fetches its roster from the same server,
// so a render exercises the members API, the roster loader and the image
// probes end to end.
func NewTestServer(assetsDir string) (*TestServer, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	log := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelError,
	}))

	if err := migrator.RunMigrations(cfg.Postgres, log); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	storage := postgresql.Init(cfg.Postgres)
	memberService := service.NewMemberService(log, repo.NewMemberRepo(storage.GetDB()))

	r := chi.NewRouter()
	ts := httptest.NewServer(r)

	cfg.Roster.Endpoint = ts.URL + "/api/members"
	cfg.ImageBaseURL = ts.URL
	cfg.AssetsDir = assetsDir

	v1.SetupRoutes(r, app.NewRouterDependencies(log, cfg, memberService), log)

	return &TestServer{
		Storage: storage,
		Server:  ts,
	}, nil
}

func (s *TestServer) LoadFixtures() error {
	if _, err := s.Storage.GetDB().Exec("TRUNCATE members RESTART IDENTITY"); err != nil {
		return fmt.Errorf("failed to truncate members: %w", err)
	}

	fixtures := `
		INSERT INTO members(full_name, nim, age, job, location, instagram_account, link_to_instagram, quote, image_path) VALUES
			('Evaldo Raynardi', '2702232750', 20, 'Actor', 'Jakarta, Indonesia', '@evaldo_raynardi',
			 'https://www.instagram.com/evaldo_raynardi?igsh=cXp3aG1tbmtrcWYy', 'Acting is not pretending.', '` + presentImage + `'),
			('Winsen Olando', '2702280844', 20, 'Editor', 'Jakarta, Indonesia', '@winsen_olando',
			 'https://www.instagram.com/winsen_olando', 'Sound is the heartbeat of cinema.', '` + missingImage + `');
	`

	if _, err := s.Storage.GetDB().Exec(fixtures); err != nil {
		return fmt.Errorf("failed to load fixtures: %w", err)
	}

	return nil
}

func (s *TestServer) Close() {
	s.Server.Close()
	s.Storage.Close()
}

// NewAssetsDir lays out the assets tree with only presentImage on disk.
func NewAssetsDir(root string) (string, error) {
	path := filepath.Join(root, filepath.FromSlash("member_image/evaldo.jpg"))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", err
	}
	if err := os.WriteFile(path, []byte("jpeg"), 0o644); err != nil {
		return "", err
	}
	return root, nil
}
