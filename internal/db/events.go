package db

import (
	"github.com/rs/zerolog/log"

	"github.com/castell-digital/marquee/internal/model"
)

// AppendEvent writes one screen-reported event. The screen must exist; the
// content reference is soft — if the id no longer resolves it is stored as
// null so the log never breaks because content was deleted after the fact.
func (s *pgStore) AppendEvent(screenID int, action string, contentID *int, details model.JSONMap) (model.ScreenEvent, error) {
	var exists bool
	if err := s.db.Get(&exists, `SELECT EXISTS (SELECT 1 FROM screens WHERE id = $1);`, screenID); err != nil {
		log.Error().Err(err).Int("screen_id", screenID).Msg("failed to check screen for event")
		return model.ScreenEvent{}, err
	}
	if !exists {
		return model.ScreenEvent{}, ErrNotFound
	}

	if contentID != nil {
		var contentExists bool
		if err := s.db.Get(&contentExists, `SELECT EXISTS (SELECT 1 FROM content WHERE id = $1);`, *contentID); err != nil {
			log.Error().Err(err).Int("content_id", *contentID).Msg("failed to check content for event")
			return model.ScreenEvent{}, err
		}
		if !contentExists {
			contentID = nil
		}
	}

	if details == nil {
		details = model.JSONMap{}
	}

	var ev model.ScreenEvent
	const q = `
	INSERT INTO screen_events (screen_id, content_id, action, details, created_at)
	VALUES ($1, $2, $3, $4, now())
	RETURNING id, screen_id, content_id, action, details, created_at;`
	if err := s.db.Get(&ev, q, screenID, contentID, action, details); err != nil {
		log.Error().Err(err).Int("screen_id", screenID).Msg("failed to append screen event")
		return model.ScreenEvent{}, err
	}
	return ev, nil
}

// ListEvents returns a screen's events newest first. A limit <= 0 returns
// the full log (used by the CSV export).
func (s *pgStore) ListEvents(screenID, limit int) ([]model.ScreenEvent, error) {
	const base = `
	SELECT id, screen_id, content_id, action, details, created_at
	  FROM screen_events
	 WHERE screen_id = $1
	 ORDER BY created_at DESC, id DESC`

	var events []model.ScreenEvent
	var err error
	if limit > 0 {
		err = s.db.Select(&events, base+` LIMIT $2;`, screenID, limit)
	} else {
		err = s.db.Select(&events, base+`;`, screenID)
	}
	if err != nil {
		log.Error().Err(err).Int("screen_id", screenID).Msg("failed to list screen events")
		return nil, err
	}
	return events, nil
}
