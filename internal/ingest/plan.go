package ingest

// Selector narrows one batch of a run plan to everything, nothing, or an
// explicit id list.
type Selector struct {
	All bool
	IDs []int64
}

// Enabled reports whether the batch should run at all.
func (s Selector) Enabled() bool {
	return s.All || len(s.IDs) > 0
}

// Matches reports whether the id falls inside the selection.
func (s Selector) Matches(id int64) bool {
	if s.All {
		return true
	}
	for _, v := range s.IDs {
		if v == id {
			return true
		}
	}
	return false
}

// Plan is a resolved run plan: which batches run and over which subsets.
// Batches always execute in dependency order (teams, players and stints,
// season stats, draft, junior stats) regardless of which are enabled.
type Plan struct {
	// Season is the current season in YYYYYYYY form, e.g. "20252026". Stints
	// discovered for this season may be marked active; older seasons never
	// are.
	Season string

	// Teams selects the team batch.
	Teams Selector
	// Rosters selects which teams' rosters seed the player batch.
	Rosters Selector
	// Players selects extra player ids to ingest beyond roster discovery.
	Players Selector
	// SeasonStats selects players whose year-by-year splits are ingested.
	// All means every stored player.
	SeasonStats Selector

	// DraftYear enables the draft batch when > 0.
	DraftYear int
	// JuniorLeagues filters which leagues' splits the junior batch stores.
	// Empty disables the batch.
	JuniorLeagues []string
}
