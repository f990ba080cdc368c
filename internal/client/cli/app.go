package cli

import (
	"bufio"
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"time"

	"github.com/clipstream/clipstream/internal/client/api"
	"github.com/clipstream/clipstream/internal/client/comments"
	"github.com/clipstream/clipstream/internal/client/config"
	"github.com/clipstream/clipstream/internal/client/feed"
	"github.com/clipstream/clipstream/internal/client/likes"
	"github.com/clipstream/clipstream/internal/client/localstate"
	"github.com/clipstream/clipstream/internal/client/models"
	"github.com/clipstream/clipstream/internal/client/session"
	"github.com/clipstream/clipstream/internal/logging"

	_ "modernc.org/sqlite"
)

// sessionStore is the slice of the session layer the CLI needs. The real
// session.Store satisfies it; tests can provide a lightweight stub.
type sessionStore interface {
	Restore(ctx context.Context) *models.Session
	Login(ctx context.Context, creds models.Credentials) (*models.Session, error)
	Signup(ctx context.Context, profile models.SignupProfile) (*models.Session, error)
	Logout(ctx context.Context) error
	Current() *models.Session
	TokenExpiry() (time.Time, bool)
}

// uploader is the slice of the gateway the upload command needs.
type uploader interface {
	Upload(ctx context.Context, req models.UploadRequest) (string, error)
}

type App struct {
	config   *config.Config
	sessions sessionStore
	engine   *likes.Engine
	comments *comments.Loader
	uploader uploader

	feedFetch   feed.FetchFunc
	creatorLoad func(ctx context.Context, q models.CreatorFeedQuery) (models.FeedPage, error)

	feedPager *feed.Pager
	minePager *feed.Pager

	log    logging.Logger
	reader *bufio.Reader
	db     *sql.DB
}

func NewApp(c *config.Config) (*App, error) {
	ctx := context.Background()

	var log logging.Logger = logging.NewNopLogger()
	if zl, err := logging.NewZapLogger(c.DevLogging); err == nil {
		log = zl
	}

	if dir := filepath.Dir(c.StatePath); dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return nil, err
		}
	}

	db, err := localstate.Open(ctx, c.StatePath)
	if err != nil {
		log.Error(ctx, "error initializing local state", "error", err)
		return nil, err
	}

	gw := api.New(c.APIBaseURL,
		api.WithTokenSource(localstate.NewTokenSource(localstate.NewSQLiteRepository(db))),
		api.WithTimeout(c.RequestTimeout),
		api.WithRateLimit(c.RequestsPerSecond),
		api.WithBreaker(c.BreakerMaxFailures),
		api.WithLogger(log),
	)

	return &App{
		config:      c,
		sessions:    session.NewStore(db, gw, log),
		engine:      likes.NewEngine(gw, log),
		comments:    comments.NewLoader(gw, c.CommentCacheTTL, log),
		uploader:    gw,
		feedFetch:   gw.LoadFeed,
		creatorLoad: gw.LoadCreatorFeed,
		log:         log,
		reader:      bufio.NewReader(os.Stdin),
		db:          db,
	}, nil
}

func (a *App) Run(ctx context.Context) {
	defer a.Close()
	a.Root(ctx)
}

// Close releases the local state database.
func (a *App) Close() {
	if a.db != nil {
		_ = a.db.Close()
	}
}

func (a *App) isLoggedIn() bool {
	return a.sessions.Current() != nil
}

// resetPagers drops feed state after the viewer identity changes, so the
// next feed command fetches from scratch under the new identity.
func (a *App) resetPagers() {
	a.feedPager = nil
	a.minePager = nil
}

func (a *App) viewerID() string {
	if sess := a.sessions.Current(); sess != nil {
		return sess.ID
	}
	return ""
}
