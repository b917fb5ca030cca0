package desktop

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"webdesk/pkg/apps"
	"webdesk/pkg/games"
	"webdesk/pkg/prefs"
	"webdesk/pkg/search"
	"webdesk/pkg/widgets"
	"webdesk/pkg/wm"
)

// MaxToasts is how many recent toasts a desktop keeps.
const MaxToasts = 5

var (
	// ErrNoGame is returned for a game action while no game is running.
	ErrNoGame = errors.New("no game running")
	// ErrInvalidScreen is returned for a negative screen size.
	ErrInvalidScreen = errors.New("invalid screen size")
)

// Config holds configuration for a desktop.
type Config struct {
	ScreenWidth  int
	ScreenHeight int
	Registry     *apps.Registry
	// Prefs stores the favorite games. Defaults to an in-memory store.
	Prefs prefs.Store
	// Metrics feeds the usage widget. Defaults to a time-seeded
	// RandomSource.
	Metrics widgets.MetricsSource
	Logger  logrus.FieldLogger
	// Rand drives the games. Defaults to a time-seeded source.
	Rand  *rand.Rand
	Now   func() time.Time
	NewID func() string
}

// KeyEvent is a key press delivered to the desktop.
type KeyEvent struct {
	Key   string `json:"key"`
	Ctrl  bool   `json:"ctrl,omitempty"`
	Meta  bool   `json:"meta,omitempty"`
	Shift bool   `json:"shift,omitempty"`
}

// Toast is an advisory notification.
type Toast struct {
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	At          time.Time `json:"at"`
}

// GameState is the running game and its board.
type GameState struct {
	ID    string `json:"id"`
	State any    `json:"state"`
}

// GameEntry is a catalog entry with its favorite flag.
type GameEntry struct {
	games.Info
	Favorite bool `json:"favorite"`
}

// Desktop is one desktop session.
type Desktop struct {
	log       logrus.FieldLogger
	registry  *apps.Registry
	manager   *wm.Manager
	favorites *prefs.Favorites
	index     *search.Index
	clock     *widgets.Clock
	poller    *widgets.Poller
	now       func() time.Time

	mu          sync.Mutex
	rng         *rand.Rand
	searchOpen  bool
	query       string
	category    search.Category
	cursor      search.Cursor
	clockTime   time.Time
	metrics     widgets.Metrics
	toasts      []Toast
	game        games.Session
	unsubscribe func()
	closed      bool
}

// New creates a desktop. Widgets stay idle until Start.
func New(cfg Config) (*Desktop, error) {
	if cfg.ScreenWidth < 0 || cfg.ScreenHeight < 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidScreen, cfg.ScreenWidth, cfg.ScreenHeight)
	}
	if cfg.Registry == nil {
		cfg.Registry = apps.Default()
	}
	if cfg.Logger == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		cfg.Logger = l
	}
	if cfg.Prefs == nil {
		cfg.Prefs = prefs.NewMemoryStore()
	}
	if cfg.Metrics == nil {
		cfg.Metrics = widgets.NewRandomSource(time.Now().UnixNano())
	}
	if cfg.Rand == nil {
		cfg.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}

	log := cfg.Logger.WithField("component", "desktop")
	d := &Desktop{
		log:      log,
		registry: cfg.Registry,
		manager: wm.NewManager(wm.Config{
			ScreenWidth:  cfg.ScreenWidth,
			ScreenHeight: cfg.ScreenHeight,
			Registry:     cfg.Registry,
			Logger:       cfg.Logger,
			NewID:        cfg.NewID,
		}),
		favorites: prefs.LoadFavorites(cfg.Prefs, log),
		index:     search.NewIndex(cfg.Registry),
		now:       cfg.Now,
		rng:       cfg.Rand,
		category:  search.CategoryAll,
		clockTime: cfg.Now(),
		metrics:   widgets.InitialMetrics,
	}
	d.clock = widgets.NewClock(d.setClock)
	d.poller = widgets.NewPoller(cfg.Metrics, log, d.setMetrics)
	d.unsubscribe = d.manager.Subscribe(wm.ListenerFunc(d.windowEvent))
	return d, nil
}

// Manager returns the window manager of the desktop.
func (d *Desktop) Manager() *wm.Manager {
	return d.manager
}

// Registry returns the application registry of the desktop.
func (d *Desktop) Registry() *apps.Registry {
	return d.registry
}

// Start runs the clock and the usage poller until Close or until ctx ends.
func (d *Desktop) Start(ctx context.Context) {
	d.clock.Start(ctx)
	d.poller.Start(ctx)
}

// Close stops every timer the desktop owns, including a running game's.
// It is safe to call more than once.
func (d *Desktop) Close() {
	d.clock.Stop()
	d.poller.Stop()

	d.mu.Lock()
	game, unsubscribe := d.game, d.unsubscribe
	d.game, d.unsubscribe = nil, nil
	d.closed = true
	d.mu.Unlock()

	if game != nil {
		game.Close()
	}
	if unsubscribe != nil {
		unsubscribe()
	}
}

// Launch opens appID, or focuses its window when it is already open.
func (d *Desktop) Launch(appID string) error {
	return d.manager.Open(appID)
}

// windowEvent runs after the manager has released its lock, so it may
// take d.mu. Callers never hold d.mu while calling a manager method that
// emits events; read-only calls such as Snapshot are safe.
func (d *Desktop) windowEvent(ev wm.Event) {
	switch ev.Type {
	case wm.EventOpened:
		d.toast("Opening "+ev.AppID, "Application is starting...")
	case wm.EventClosed:
		if ev.AppID == apps.Games {
			d.ExitGame()
		}
	}
}

func (d *Desktop) toast(title, description string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.toasts = append(d.toasts, Toast{Title: title, Description: description, At: d.now()})
	if n := len(d.toasts); n > MaxToasts {
		d.toasts = append([]Toast(nil), d.toasts[n-MaxToasts:]...)
	}
}

// Toasts returns the most recent toasts, oldest first.
func (d *Desktop) Toasts() []Toast {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]Toast(nil), d.toasts...)
}

// HandleKey applies a desktop-level shortcut and reports whether the key
// was consumed. Ctrl+K and Meta+K open search; while search is open Escape
// closes it, the arrow keys move the highlight and Enter selects it.
func (d *Desktop) HandleKey(ev KeyEvent) bool {
	if (ev.Ctrl || ev.Meta) && strings.EqualFold(ev.Key, "k") {
		d.OpenSearch()
		return true
	}
	if !d.SearchOpen() {
		return false
	}

	switch ev.Key {
	case "Escape":
		d.CloseSearch()
	case "ArrowDown":
		d.mu.Lock()
		d.cursor.Down()
		d.mu.Unlock()
	case "ArrowUp":
		d.mu.Lock()
		d.cursor.Up()
		d.mu.Unlock()
	case "Enter":
		if err := d.SelectHighlighted(); err != nil {
			d.log.WithError(err).Debug("select search result")
		}
	default:
		return false
	}
	return true
}

// OpenSearch shows the search surface with an empty query.
func (d *Desktop) OpenSearch() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.searchOpen = true
	d.query = ""
	d.category = search.CategoryAll
	d.cursor.Reset(nil)
}

// CloseSearch hides the search surface.
func (d *Desktop) CloseSearch() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.searchOpen = false
}

// SearchOpen reports whether the search surface is shown.
func (d *Desktop) SearchOpen() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.searchOpen
}

// Search runs a query without touching the search surface.
func (d *Desktop) Search(query string, category search.Category) []search.Result {
	return d.index.Search(query, category)
}

// SetQuery updates the search surface and returns its results. The
// highlight returns to the first result.
func (d *Desktop) SetQuery(query string, category search.Category) []search.Result {
	results := d.index.Search(query, category)

	d.mu.Lock()
	defer d.mu.Unlock()
	d.query, d.category = query, category
	d.cursor.Reset(results)
	return results
}

// SelectHighlighted selects the highlighted search result.
func (d *Desktop) SelectHighlighted() error {
	d.mu.Lock()
	r, ok := d.cursor.Selected()
	d.mu.Unlock()

	if !ok {
		d.CloseSearch()
		return nil
	}
	return d.Select(r)
}

// Select acts on a search result, opening its target application, and
// closes the search surface.
func (d *Desktop) Select(r search.Result) error {
	d.mu.Lock()
	query := d.query
	d.mu.Unlock()

	switch r.Kind {
	case search.KindFile:
		d.toast("Opening "+r.Name, "From "+r.Path)
	case search.KindSetting:
		d.toast("Opening Settings", "Navigating to "+r.Name)
	case search.KindCommand:
		d.toast("Executing command", r.Name)
	case search.KindWeb:
		d.toast("Searching the web", `Opening "`+query+`" in browser`)
	}

	d.CloseSearch()
	if target, ok := r.Target(); ok {
		return d.Launch(target)
	}
	return nil
}

// Games lists the catalog filtered by query and tab.
func (d *Desktop) Games(query string, tab games.Tab) []GameEntry {
	found := games.Filter(games.Catalog(), query, tab, d.favorites.Contains)
	out := make([]GameEntry, 0, len(found))
	for _, g := range found {
		out = append(out, GameEntry{Info: g, Favorite: d.favorites.Contains(g.ID)})
	}
	return out
}

// Favorites returns the favorite game ids.
func (d *Desktop) Favorites() []string {
	return d.favorites.List()
}

// ToggleFavorite flips the favorite flag of a catalog game and reports the
// new flag.
func (d *Desktop) ToggleFavorite(id string) (bool, error) {
	if !inCatalog(id) {
		return false, games.ErrUnknownGame
	}
	return d.favorites.Toggle(id)
}

func inCatalog(id string) bool {
	for _, g := range games.Catalog() {
		if g.ID == id {
			return true
		}
	}
	return false
}

// StartGame launches the Game Center and starts id in it, ending any game
// already running.
func (d *Desktop) StartGame(id string) (GameState, error) {
	if err := d.Launch(apps.Games); err != nil {
		return GameState{}, err
	}

	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return GameState{}, ErrNoGame
	}
	// A close that raced the launch already ran ExitGame; one that comes
	// later waits for d.mu and ends this session.
	if !d.manager.Snapshot().IsOpen(apps.Games) {
		d.mu.Unlock()
		return GameState{}, fmt.Errorf("game center closed: %w", wm.ErrWindowNotFound)
	}
	session, err := games.New(id, d.rng)
	if err != nil {
		d.mu.Unlock()
		return GameState{}, err
	}
	prev := d.game
	d.game = session
	state := GameState{ID: id, State: session.State()}
	d.mu.Unlock()

	if prev != nil {
		prev.Close()
	}
	d.log.WithField("game", id).Debug("game started")
	return state, nil
}

// GameAction applies a to the running game.
func (d *Desktop) GameAction(a games.Action) (GameState, bool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.game == nil {
		return GameState{}, false, ErrNoGame
	}
	changed := d.game.Apply(a)
	return GameState{ID: d.game.GameID(), State: d.game.State()}, changed, nil
}

// Game returns the running game, if any.
func (d *Desktop) Game() (GameState, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.game == nil {
		return GameState{}, false
	}
	return GameState{ID: d.game.GameID(), State: d.game.State()}, true
}

// ExitGame ends the running game and cancels its timers.
func (d *Desktop) ExitGame() {
	d.mu.Lock()
	game := d.game
	d.game = nil
	d.mu.Unlock()

	if game != nil {
		game.Close()
	}
}

func (d *Desktop) setClock(t time.Time) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.clockTime = t
}

func (d *Desktop) setMetrics(m widgets.Metrics) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.metrics = m
}
