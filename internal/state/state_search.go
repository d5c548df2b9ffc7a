package state

import (
	"github.com/kk-code-lab/tocview/internal/api"
	"go.uber.org/zap"
)

// triggerSearch dispatches searchAssets for the current query. Each dispatch
// takes a new epoch; only the completion carrying the latest one is applied.
func (r *StateReducer) triggerSearch(state *AppState) {
	needle := state.SearchQuery

	state.SearchEpoch++
	epoch := state.SearchEpoch
	state.SearchInFlight = true
	state.SearchDone = false
	state.SearchError = ""
	state.SearchResults = nil
	state.SearchSelected = -1
	state.ResultsCursor = 0
	state.SearchScroll = 0

	if r.backend == nil {
		state.SearchInFlight = false
		state.SearchError = "no server configured"
		return
	}

	backend := r.backend
	ctx := r.ctx
	r.run(state, func() Action {
		results, err := backend.SearchAssets(ctx, needle)
		return SearchResultsAction{Epoch: epoch, Needle: needle, Results: results, Err: err}
	})
}

func (r *StateReducer) completeSearch(state *AppState, a SearchResultsAction) {
	if a.Epoch != state.SearchEpoch {
		r.log.Debug("stale search discarded",
			zap.Int("epoch", a.Epoch),
			zap.Int("current", state.SearchEpoch),
			zap.String("needle", a.Needle))
		return
	}

	state.SearchInFlight = false
	state.SearchDone = true
	if a.Err != nil {
		state.SearchError = a.Err.Error()
		state.SearchResults = nil
		return
	}
	state.SearchResults = append([]api.SearchResult(nil), a.Results...)
	state.SearchSelected = -1
	state.ResultsCursor = 0
	state.SearchScroll = 0
}

// selectResult marks one result selected and requests its details.
func (r *StateReducer) selectResult(state *AppState, idx int) {
	if idx < 0 || idx >= len(state.SearchResults) {
		return
	}
	state.SearchSelected = idx
	state.ResultsCursor = idx
	state.SearchScroll = ensureVisible(idx, state.SearchScroll, state.ResultsRows())
	r.requestDetails(state, state.SearchResults[idx])
}

// SelectedResultCount returns how many results are selected: 0 or 1.
func (s *AppState) SelectedResultCount() int {
	if _, ok := s.SelectedResult(); ok {
		return 1
	}
	return 0
}
