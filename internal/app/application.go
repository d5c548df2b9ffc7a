package app

import (
	"context"
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/kk-code-lab/tocview/internal/api"
	"github.com/kk-code-lab/tocview/internal/assets"
	"github.com/kk-code-lab/tocview/internal/config"
	"github.com/kk-code-lab/tocview/internal/logging"
	"github.com/kk-code-lab/tocview/internal/prefs"
	statepkg "github.com/kk-code-lab/tocview/internal/state"
	inputui "github.com/kk-code-lab/tocview/internal/ui/input"
	renderui "github.com/kk-code-lab/tocview/internal/ui/render"
	"github.com/kk-code-lab/tocview/internal/viewer"
	"go.uber.org/zap"
)

// Application represents the running app.
type Application struct {
	screen         tcell.Screen
	state          *statepkg.AppState
	reducer        *statepkg.StateReducer
	renderer       *renderui.Renderer
	input          *inputui.InputHandler
	actionCh       chan statepkg.Action
	shouldQuit     bool
	ctx            context.Context
	cancel         context.CancelFunc
	clipboardCmd   []string
	clipboardAvail bool
	viewer         *viewer.Opener
	lastButtons    tcell.ButtonMask
	log            *zap.Logger
}

// deps are the collaborators wired into a new Application.
type deps struct {
	backend statepkg.Backend
	assets  statepkg.DetailsSource
	prefs   *prefs.Store
	viewer  *viewer.Opener
	tocPath string // loaded right away when non-empty
}

// NewApplication opens the terminal and wires the API client, the asset
// cache and the preferences store into a new application.
func NewApplication(cfg *config.Config, store *prefs.Store) (*Application, error) {
	codec, err := api.CodecByName(cfg.Codec)
	if err != nil {
		return nil, err
	}
	client := api.New(api.Config{
		BaseURL: cfg.Server,
		Timeout: cfg.Timeout,
		Codec:   codec,
	})

	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("init screen: %w", err)
	}
	screen.EnableMouse()

	return newApplication(screen, deps{
		backend: client,
		assets:  assets.New(client.ExtractAsset, cfg.ExtractPolicy),
		prefs:   store,
		viewer:  viewer.Detect(),
		tocPath: cfg.TOCPath,
	}), nil
}

func newApplication(screen tcell.Screen, d deps) *Application {
	ctx, cancel := context.WithCancel(context.Background())

	tocPath, locale := d.tocPath, prefs.DefaultLocale
	svc := statepkg.Services{Backend: d.backend, Assets: d.assets}
	if d.prefs != nil {
		saved := d.prefs.Get()
		if tocPath == "" {
			tocPath = saved.TOCPath
		}
		locale = saved.Locale
		svc.Prefs = d.prefs
	}

	clipboardCmd, clipboardAvail := detectClipboard()

	state := statepkg.NewAppState(tocPath, locale)
	state.ClipboardAvailable = clipboardAvail
	state.ViewerAvailable = d.viewer.Available()
	w, h := screen.Size()
	state.ScreenWidth = w
	state.ScreenHeight = h

	actionCh := make(chan statepkg.Action, 10)
	state.SetDispatch(func(action statepkg.Action) {
		select {
		case actionCh <- action:
		default:
			go func() { actionCh <- action }()
		}
	})

	inputHandler := inputui.NewInputHandler(actionCh)
	inputHandler.SetState(state)

	app := &Application{
		screen:         screen,
		state:          state,
		reducer:        statepkg.NewStateReducer(ctx, svc),
		renderer:       renderui.NewRenderer(screen),
		input:          inputHandler,
		actionCh:       actionCh,
		ctx:            ctx,
		cancel:         cancel,
		clipboardCmd:   clipboardCmd,
		clipboardAvail: clipboardAvail,
		viewer:         d.viewer,
		log:            logging.Named("app"),
	}

	if d.tocPath != "" {
		actionCh <- statepkg.InputSubmitAction{}
	}
	return app
}

// Close cleans up resources.
func (app *Application) Close() error {
	app.cancel()
	app.screen.Fini()
	return nil
}
