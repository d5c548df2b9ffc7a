package state

import (
	"github.com/kk-code-lab/tocview/internal/api"
	"go.uber.org/zap"
)

// DetailsPanel is the right-hand details view. Without an asset it shows the
// TOC summary.
type DetailsPanel struct {
	HasAsset bool
	Result   api.SearchResult
	Info     api.AssetInfo
	Loaded   bool
	Loading  bool
	Cached   bool // served from the cache without a request
	Err      string

	// ViewerURL is set for model assets.
	ViewerURL string
}

// ShowsModel reports whether the viewer action is offered.
func (d DetailsPanel) ShowsModel() bool {
	return d.Loaded && d.ViewerURL != ""
}

// requestDetails shows result in the details panel, extracting its metadata
// unless the cache already holds it.
func (r *StateReducer) requestDetails(state *AppState, result api.SearchResult) {
	state.DetailsEpoch++
	epoch := state.DetailsEpoch
	state.Details = DetailsPanel{HasAsset: true, Result: result}

	if r.assets == nil {
		state.Details.Err = "asset extraction unavailable"
		return
	}

	if info, ok := r.assets.Get(result.Index); ok {
		r.applyDetails(state, info, true)
		return
	}

	state.Details.Loading = true
	ch := r.assets.Request(r.ctx, result.Index)
	r.run(state, func() Action {
		res := <-ch
		return DetailsResultAction{
			Epoch:  epoch,
			Index:  res.Index,
			Info:   res.Info,
			Err:    res.Err,
			Shared: res.Shared,
		}
	})
}

func (r *StateReducer) applyDetails(state *AppState, info api.AssetInfo, cached bool) {
	state.Details.Info = info
	state.Details.Loaded = true
	state.Details.Loading = false
	state.Details.Cached = cached
	state.Details.Err = ""
	state.Details.ViewerURL = ""
	if info.IsModel() && r.backend != nil {
		state.Details.ViewerURL = r.backend.ModelURL(state.Details.Result.Index)
	}
}

func (r *StateReducer) completeDetails(state *AppState, a DetailsResultAction) {
	if a.Epoch != state.DetailsEpoch || !state.Details.HasAsset || state.Details.Result.Index != a.Index {
		r.log.Debug("stale extraction discarded",
			zap.Int("epoch", a.Epoch),
			zap.Int("current", state.DetailsEpoch),
			zap.Int("index", a.Index))
		return
	}
	if a.Err != nil {
		state.Details.Loading = false
		state.Details.Err = a.Err.Error()
		return
	}
	r.applyDetails(state, a.Info, false)
}

// resetDetails returns the panel to the TOC summary.
func (s *AppState) resetDetails() {
	s.DetailsEpoch++
	s.Details = DetailsPanel{}
}
