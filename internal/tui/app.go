package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/paulmach/orb"
	"github.com/phuslu/log"

	"github.com/placefind/placefind/internal/config"
	"github.com/placefind/placefind/internal/logging"
	"github.com/placefind/placefind/internal/model"
	"github.com/placefind/placefind/internal/render"
	"github.com/placefind/placefind/internal/search"
	"github.com/placefind/placefind/internal/storage"
	"github.com/placefind/placefind/internal/transport"
	"github.com/placefind/placefind/internal/tui/views"
)

type viewID int

const (
	viewHome viewID = iota
	viewSearch
	viewResults
	viewHistory
)

// App is the root bubbletea model. It owns the shared collaborators (one
// controller per app: the TUI has a single search widget) and routes
// navigation messages between views.
type App struct {
	currentView viewID
	width       int
	height      int

	cfg      config.Config
	log      *log.Logger
	client   *transport.Client
	ctrl     *search.Controller
	store    *storage.Store // nil when history is disabled
	registry *search.Registry
	origin   *orb.Point

	home    views.HomeModel
	search  views.SearchModel
	results views.ResultsModel
	history views.HistoryModel
}

type savedResultsMsg struct {
	query string
	resp  model.SearchResponse
	err   error
}

func NewApp(cfg config.Config, logger *log.Logger, client *transport.Client, store *storage.Store) App {
	var origin *orb.Point
	if cfg.Origin != nil {
		origin = &orb.Point{cfg.Origin.Lng, cfg.Origin.Lat}
	}

	return App{
		currentView: viewHome,
		cfg:         cfg,
		log:         logger,
		client:      client,
		ctrl:        search.NewController(logger),
		store:       store,
		registry:    render.NewRegistry(origin),
		origin:      origin,
		home:        views.NewHomeModel(),
	}
}

func (a App) Init() tea.Cmd {
	return tea.Batch(a.home.Init(), a.pingCmd())
}

// pingCmd probes the service once at startup. Outcome only reaches the log.
func (a App) pingCmd() tea.Cmd {
	client := a.client
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		client.Ping(ctx)
		return nil
	}
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height

	case views.NavigateToHome:
		a.currentView = viewHome
		return a, nil

	case views.NavigateToSearch:
		a.currentView = viewSearch
		a.search = views.NewSearchModel(a.ctrl, a.client, a.cfg.RequestTimeout(), msg.Query)
		if msg.Run {
			var cmd tea.Cmd
			a.search, cmd = a.search.Submit()
			return a, tea.Batch(a.search.Init(), cmd)
		}
		return a, a.search.Init()

	case views.NavigateToHistory:
		a.currentView = viewHistory
		a.history = views.NewHistoryModel(a.store)
		return a, a.history.Init()

	case views.ShowResults:
		if a.store != nil {
			if _, err := a.store.SaveSearch(msg.Query, msg.Response); err != nil {
				a.log.Warn().Err(err).Msg("saving search history")
			}
		}
		a.currentView = viewResults
		a.results = views.NewResultsModel(msg.Query, msg.Response, a.registry, a.origin, false)
		return a, tea.Batch(a.results.Init(), a.sizeCmd())

	case views.OpenSaved:
		if a.store == nil {
			return a, nil
		}
		return a, a.loadSavedCmd(msg.Entry)

	case savedResultsMsg:
		if msg.err != nil {
			a.log.Warn().Err(msg.err).Msg("loading saved results")
			return a, nil
		}
		a.currentView = viewResults
		a.results = views.NewResultsModel(msg.query, msg.resp, a.registry, a.origin, true)
		return a, tea.Batch(a.results.Init(), a.sizeCmd())
	}

	var cmd tea.Cmd
	switch a.currentView {
	case viewHome:
		var m tea.Model
		m, cmd = a.home.Update(msg)
		a.home = m.(views.HomeModel)
	case viewSearch:
		var m tea.Model
		m, cmd = a.search.Update(msg)
		a.search = m.(views.SearchModel)
	case viewResults:
		var m tea.Model
		m, cmd = a.results.Update(msg)
		a.results = m.(views.ResultsModel)
	case viewHistory:
		var m tea.Model
		m, cmd = a.history.Update(msg)
		a.history = m.(views.HistoryModel)
	}

	return a, cmd
}

func (a App) loadSavedCmd(entry storage.SearchEntry) tea.Cmd {
	store := a.store
	return func() tea.Msg {
		records, err := store.Places(entry.ID)
		return savedResultsMsg{
			query: entry.Query,
			resp: model.SearchResponse{
				QueryType: entry.QueryType,
				Records:   records,
				Message:   entry.Message,
			},
			err: err,
		}
	}
}

func (a App) View() string {
	var content string
	switch a.currentView {
	case viewHome:
		content = a.home.View()
	case viewSearch:
		content = a.search.View()
	case viewResults:
		content = a.results.View()
	case viewHistory:
		content = a.history.View()
	}

	return lipgloss.Place(
		a.width, a.height,
		lipgloss.Center, lipgloss.Top,
		content,
	)
}

// sizeCmd sends a WindowSizeMsg so newly created views get the current terminal size.
func (a App) sizeCmd() tea.Cmd {
	w, h := a.width, a.height
	return func() tea.Msg {
		return tea.WindowSizeMsg{Width: w, Height: h}
	}
}

// Run starts the TUI with collaborators built from cfg.
func Run(cfg config.Config) error {
	logger := logging.New(cfg.Logging.File, cfg.Logging.Debug)
	client := transport.NewClient(cfg.Server.URL, cfg.RequestTimeout(), logger)

	var store *storage.Store
	if cfg.History.Enabled {
		s, err := storage.NewStore(cfg.History.Path)
		if err != nil {
			logger.Warn().Err(err).Msg("history unavailable")
		} else {
			store = s
			defer store.Close()
		}
	}

	p := tea.NewProgram(NewApp(cfg, logger, client, store), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
