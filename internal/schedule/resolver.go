package schedule

import (
	"time"

	"github.com/castell-digital/marquee/internal/model"
)

// Diagnostic records why one candidate playlist was not a schedule match.
type Diagnostic struct {
	PlaylistID int           `json:"playlist_id"`
	Failed     []FailedCheck `json:"failed"`
}

// Decision is the resolver's answer for a single screen at a single instant.
// A nil Playlist means the screen has nothing to show; that is a normal
// outcome, not an error.
type Decision struct {
	Playlist     *model.Playlist `json:"playlist"`
	FallbackUsed bool            `json:"fallback_used"`
	Diagnostics  []Diagnostic    `json:"diagnostics,omitempty"`
}

// Resolve selects the playlist a screen should display at now, out of the
// playlists assigned to it.
//
// Active playlists whose schedule matches now compete on priority; the
// highest wins, ties broken by lowest playlist id. When no active playlist
// matches its schedule, the highest-priority active playlist is returned
// anyway with FallbackUsed set: a screen with any active assignment must
// never go dark just because the clock fell outside every window. Only a
// screen with zero active assignments resolves to nothing.
func Resolve(assigned []model.Playlist, now time.Time) Decision {
	var active []model.Playlist
	for _, p := range assigned {
		if p.Active {
			active = append(active, p)
		}
	}
	if len(active) == 0 {
		return Decision{}
	}

	var (
		best        *model.Playlist
		diagnostics []Diagnostic
	)
	for i := range active {
		p := &active[i]
		ok, failed := Evaluate(*p, now)
		if !ok {
			diagnostics = append(diagnostics, Diagnostic{PlaylistID: p.ID, Failed: failed})
			continue
		}
		if best == nil || higherPrecedence(p, best) {
			best = p
		}
	}

	if best != nil {
		return Decision{Playlist: best, Diagnostics: diagnostics}
	}

	// Fallback: every active playlist failed its schedule, show the
	// highest-priority one regardless and surface the failed checks.
	for i := range active {
		p := &active[i]
		if best == nil || higherPrecedence(p, best) {
			best = p
		}
	}
	return Decision{Playlist: best, FallbackUsed: true, Diagnostics: diagnostics}
}

func higherPrecedence(a, b *model.Playlist) bool {
	if a.Priority != b.Priority {
		return a.Priority > b.Priority
	}
	return a.ID < b.ID
}
