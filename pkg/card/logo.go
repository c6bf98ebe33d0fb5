package card

// LogoState tracks whether the logo of the currently mounted team failed to
// load. It belongs to a single rendered instance; mounting a different team
// starts clean.
type LogoState struct {
	teamID string
	loaded bool
	failed bool
}

// Mount attaches the state to teamID, clearing it if the team changed
func (l *LogoState) Mount(teamID string) {
	if l.teamID == teamID {
		return
	}
	*l = LogoState{teamID: teamID}
}

// TeamID is the currently mounted team
func (l *LogoState) TeamID() string {
	return l.teamID
}

// MarkLoaded records a successful load. Results for a team that is no
// longer mounted are ignored; the return value reports whether it applied.
func (l *LogoState) MarkLoaded(teamID string) bool {
	if teamID != l.teamID {
		return false
	}
	l.loaded = true
	l.failed = false
	return true
}

// MarkFailed records a load failure for the mounted team
func (l *LogoState) MarkFailed(teamID string) bool {
	if teamID != l.teamID {
		return false
	}
	l.failed = true
	l.loaded = false
	return true
}

// Loaded reports a successful load
func (l *LogoState) Loaded() bool {
	return l.loaded
}

// Fallback reports whether the short name should replace the logo
func (l *LogoState) Fallback() bool {
	return l.failed
}

// LogoFallbacks is a per-widget set of team ids whose logos failed, used
// where several teams are on screen at once.
type LogoFallbacks struct {
	failed map[string]bool
}

// Mark records a failure for teamID
func (f *LogoFallbacks) Mark(teamID string) {
	if f.failed == nil {
		f.failed = make(map[string]bool)
	}
	f.failed[teamID] = true
}

// Has reports whether teamID should use its fallback
func (f *LogoFallbacks) Has(teamID string) bool {
	return f.failed[teamID]
}
