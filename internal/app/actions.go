package app

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/kk-code-lab/tocview/internal/i18n"
	statepkg "github.com/kk-code-lab/tocview/internal/state"
	"github.com/kk-code-lab/tocview/internal/viewer"
	"go.uber.org/zap"
)

func (app *Application) status(key string, args ...any) {
	app.state.StatusMessage = i18n.New(app.state.Locale).T(key, args...)
}

// handleYank copies the current path, or the selected asset id in the
// results pane, to the clipboard.
func (app *Application) handleYank() bool {
	text := app.state.YankText()
	if text == "" {
		return false
	}
	if !app.clipboardAvail || len(app.clipboardCmd) == 0 {
		app.status(i18n.NoClipboard)
		return true
	}

	cmd := commandBuilder(app.clipboardCmd[0], app.clipboardCmd[1:]...)
	cmd.Stdin = strings.NewReader(text)
	if err := cmd.Run(); err != nil {
		app.state.LastError = fmt.Errorf("%s: %w", app.clipboardCmd[0], err)
		app.log.Warn("clipboard command failed", zap.Strings("command", app.clipboardCmd), zap.Error(err))
		return true
	}
	app.state.LastYankTime = time.Now()
	app.status(i18n.Copied, text)
	return true
}

// handleOpenViewer hands the model URL of the details panel to the viewer.
func (app *Application) handleOpenViewer() bool {
	details := app.state.Details
	if !details.ShowsModel() {
		return false
	}
	err := app.viewer.Open(app.ctx, details.ViewerURL)
	switch {
	case errors.Is(err, viewer.ErrNoOpener):
		app.status(i18n.NoViewer)
	case err != nil:
		app.state.LastError = err
		app.log.Warn("viewer failed", zap.String("url", details.ViewerURL), zap.Error(err))
	default:
		app.status(i18n.ViewerOpened, details.ViewerURL)
	}
	return true
}

func (app *Application) handleAppAction(action statepkg.Action) bool {
	switch action.(type) {
	case statepkg.YankAction:
		return app.handleYank()
	case statepkg.OpenViewerAction:
		return app.handleOpenViewer()
	}

	if _, err := app.reducer.Reduce(app.state, action); err != nil {
		app.state.LastError = err
		app.log.Warn("reduce failed", zap.String("action", fmt.Sprintf("%T", action)), zap.Error(err))
	}
	return true
}
