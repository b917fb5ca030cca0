package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/sirupsen/logrus"

	"webdesk/pkg/apps"
	"webdesk/pkg/desktop"
	"webdesk/pkg/games"
	"webdesk/pkg/router"
	"webdesk/pkg/search"
	"webdesk/pkg/stream"
	"webdesk/pkg/wm"
)

// maxBodyBytes bounds every JSON request body.
const maxBodyBytes = 64 << 10

var errBadRequest = errors.New("bad request")

// APIConfig holds optional API settings.
type APIConfig struct {
	// StaticDir, when set, serves a front end for every GET the API does
	// not route.
	StaticDir string
	// CORSOrigin is the allowed origin. Defaults to any.
	CORSOrigin string
	// MaxStreamClients bounds the event stream connections.
	MaxStreamClients int
}

type api struct {
	d   *desktop.Desktop
	log logrus.FieldLogger
}

// API is the desktop JSON API together with its event stream.
type API struct {
	*router.Router
	hub         *stream.Hub
	unsubscribe func()
}

// Close disconnects stream clients and detaches the stream from the
// window manager.
func (a *API) Close() {
	a.unsubscribe()
	a.hub.Close()
}

// NewAPI returns the desktop JSON API. Call Close when done.
func NewAPI(d *desktop.Desktop, log logrus.FieldLogger, cfg APIConfig) *API {
	if log == nil {
		log = logrus.StandardLogger()
	}
	a := &api{d: d, log: log.WithField("component", "api")}

	var origins []string
	if cfg.CORSOrigin != "" {
		origins = []string{cfg.CORSOrigin}
	}
	hub := stream.NewHub(stream.Config{
		MaxClients:     cfg.MaxStreamClients,
		OriginPatterns: origins,
		State:          func() any { return d.State() },
		Logger:         log,
	})
	unsubscribe := d.Manager().Subscribe(hub)

	r := router.New()
	r.Use(
		router.RequestIDMiddleware(),
		router.LoggingMiddleware(a.log),
		router.RecoveryMiddleware(a.log),
		router.CORSMiddleware(cfg.CORSOrigin),
	)
	var static http.Handler
	if cfg.StaticDir != "" {
		static = NewStaticHandler(cfg.StaticDir)
	}
	r.SetNotFoundHandler(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		if static != nil && req.Method == http.MethodGet && !strings.HasPrefix(req.URL.Path, "/api/") {
			static.ServeHTTP(w, req)
			return
		}
		writeError(w, http.StatusNotFound, "not found")
	}))
	r.SetMethodNotAllowedHandler(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}))

	r.GET("/health", http.HandlerFunc(a.health))
	r.GET("/api/v1/apps", http.HandlerFunc(a.listApps))
	r.GET("/api/v1/session", http.HandlerFunc(a.session))
	r.POST("/api/v1/screen", http.HandlerFunc(a.screen))
	r.POST("/api/v1/apps/:id/open", a.appAction(d.Launch))
	r.POST("/api/v1/apps/:id/close", a.appAction(d.Manager().Close))
	r.POST("/api/v1/apps/:id/minimize", a.appAction(d.Manager().Minimize))
	r.POST("/api/v1/apps/:id/focus", a.appAction(d.Manager().Focus))
	r.POST("/api/v1/apps/:id/maximize", a.appAction(d.Manager().ToggleMaximize))
	r.POST("/api/v1/windows/:id/pointer", http.HandlerFunc(a.pointer))
	r.POST("/api/v1/keys", http.HandlerFunc(a.keys))
	r.GET("/api/v1/search", http.HandlerFunc(a.search))
	r.POST("/api/v1/search/select", http.HandlerFunc(a.selectResult))
	r.GET("/api/v1/games", http.HandlerFunc(a.listGames))
	r.POST("/api/v1/games/:id/favorite", http.HandlerFunc(a.toggleFavorite))
	r.POST("/api/v1/games/:id/start", http.HandlerFunc(a.startGame))
	r.GET("/api/v1/game", http.HandlerFunc(a.game))
	r.POST("/api/v1/game/actions", http.HandlerFunc(a.gameAction))
	r.DELETE("/api/v1/game", http.HandlerFunc(a.exitGame))
	r.GET("/api/v1/widgets", http.HandlerFunc(a.widgets))
	r.GET("/api/v1/events", hub)
	return &API{Router: r, hub: hub, unsubscribe: unsubscribe}
}

func (a *api) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

func (a *api) listApps(w http.ResponseWriter, r *http.Request) {
	descs := a.d.Registry().Descriptors()
	if descs == nil {
		descs = []apps.Descriptor{}
	}
	writeJSON(w, http.StatusOK, descs)
}

func (a *api) session(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, a.d.State())
}

type screenRequest struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

func (a *api) screen(w http.ResponseWriter, r *http.Request) {
	var req screenRequest
	if err := decodeJSON(w, r, &req); err != nil {
		a.fail(w, r, err)
		return
	}
	if req.Width < 0 || req.Height < 0 {
		a.fail(w, r, fmt.Errorf("%w: negative screen size", errBadRequest))
		return
	}
	a.d.Manager().SetScreenSize(req.Width, req.Height)
	writeJSON(w, http.StatusOK, a.d.State())
}

// appAction adapts a per-application operation to a handler answering
// with the new desktop state.
func (a *api) appAction(op func(appID string) error) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := op(router.Param(r.Context(), "id")); err != nil {
			a.fail(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, a.d.State())
	})
}

type pointerRequest struct {
	Type   string `json:"type"`
	Region string `json:"region"`
	X      int    `json:"x"`
	Y      int    `json:"y"`
}

func (a *api) pointer(w http.ResponseWriter, r *http.Request) {
	appID := router.Param(r.Context(), "id")

	var req pointerRequest
	if err := decodeJSON(w, r, &req); err != nil {
		a.fail(w, r, err)
		return
	}

	m := a.d.Manager()
	p := wm.Point{X: req.X, Y: req.Y}
	var err error
	switch req.Type {
	case "down":
		region, perr := wm.ParseRegion(req.Region)
		if perr != nil {
			a.fail(w, r, fmt.Errorf("%w: %w", errBadRequest, perr))
			return
		}
		err = m.PointerDown(appID, region, p)
	case "move":
		err = m.PointerMove(appID, p)
	case "up":
		err = m.PointerUp(appID)
	default:
		err = fmt.Errorf("%w: pointer type %q", errBadRequest, req.Type)
	}
	if err != nil {
		a.fail(w, r, err)
		return
	}

	win, err := m.Window(appID)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, win)
}

type keyResponse struct {
	Handled    bool `json:"handled"`
	SearchOpen bool `json:"search_open"`
}

func (a *api) keys(w http.ResponseWriter, r *http.Request) {
	var ev desktop.KeyEvent
	if err := decodeJSON(w, r, &ev); err != nil {
		a.fail(w, r, err)
		return
	}
	handled := a.d.HandleKey(ev)
	writeJSON(w, http.StatusOK, keyResponse{Handled: handled, SearchOpen: a.d.SearchOpen()})
}

func (a *api) search(w http.ResponseWriter, r *http.Request) {
	category, ok := search.ParseCategory(r.URL.Query().Get("category"))
	if !ok {
		a.fail(w, r, fmt.Errorf("%w: unknown category", errBadRequest))
		return
	}
	results := a.d.SetQuery(r.URL.Query().Get("q"), category)
	if results == nil {
		results = []search.Result{}
	}
	writeJSON(w, http.StatusOK, results)
}

func (a *api) selectResult(w http.ResponseWriter, r *http.Request) {
	var res search.Result
	if err := decodeJSON(w, r, &res); err != nil {
		a.fail(w, r, err)
		return
	}
	if err := a.d.Select(res); err != nil {
		a.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, a.d.State())
}

func (a *api) listGames(w http.ResponseWriter, r *http.Request) {
	tab := games.Tab(r.URL.Query().Get("tab"))
	switch tab {
	case "":
		tab = games.TabAll
	case games.TabAll, games.TabFavorites:
	default:
		a.fail(w, r, fmt.Errorf("%w: unknown tab", errBadRequest))
		return
	}
	writeJSON(w, http.StatusOK, a.d.Games(r.URL.Query().Get("q"), tab))
}

type favoriteResponse struct {
	ID       string `json:"id"`
	Favorite bool   `json:"favorite"`
}

func (a *api) toggleFavorite(w http.ResponseWriter, r *http.Request) {
	id := router.Param(r.Context(), "id")
	on, err := a.d.ToggleFavorite(id)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, favoriteResponse{ID: id, Favorite: on})
}

func (a *api) startGame(w http.ResponseWriter, r *http.Request) {
	st, err := a.d.StartGame(router.Param(r.Context(), "id"))
	if err != nil {
		a.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, st)
}

func (a *api) game(w http.ResponseWriter, r *http.Request) {
	st, ok := a.d.Game()
	if !ok {
		a.fail(w, r, desktop.ErrNoGame)
		return
	}
	writeJSON(w, http.StatusOK, st)
}

type actionResponse struct {
	Game    desktop.GameState `json:"game"`
	Changed bool              `json:"changed"`
}

func (a *api) gameAction(w http.ResponseWriter, r *http.Request) {
	var action games.Action
	if err := decodeJSON(w, r, &action); err != nil {
		a.fail(w, r, err)
		return
	}
	st, changed, err := a.d.GameAction(action)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, actionResponse{Game: st, Changed: changed})
}

func (a *api) exitGame(w http.ResponseWriter, r *http.Request) {
	a.d.ExitGame()
	w.WriteHeader(http.StatusNoContent)
}

func (a *api) widgets(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, a.d.Widgets())
}

// fail maps err to a status code and writes it as a JSON error body.
func (a *api) fail(w http.ResponseWriter, r *http.Request, err error) {
	status := statusOf(err)
	a.log.WithFields(logrus.Fields{
		"path":       r.URL.Path,
		"status":     status,
		"request_id": router.RequestIDFromContext(r.Context()),
	}).WithError(err).Debug("request rejected")
	writeError(w, status, err.Error())
}

func statusOf(err error) int {
	switch {
	case errors.Is(err, errBadRequest), errors.Is(err, wm.ErrInvalidRegion):
		return http.StatusBadRequest
	case errors.Is(err, wm.ErrUnknownApp),
		errors.Is(err, wm.ErrWindowNotFound),
		errors.Is(err, games.ErrUnknownGame),
		errors.Is(err, desktop.ErrNoGame):
		return http.StatusNotFound
	case errors.Is(err, wm.ErrWindowMinimized):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("%w: %w", errBadRequest, err)
	}
	return nil
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
