package db

import (
	"time"

	"github.com/rs/zerolog/log"

	"github.com/castell-digital/marquee/internal/model"
)

const screenColumns = `
	id, name, location, api_token, status, last_heartbeat,
	app_version, device_info, tags, created_at, updated_at`

func (s *pgStore) CreateScreen(name string, location *string, token string) (model.Screen, error) {
	var sc model.Screen
	const q = `
	INSERT INTO screens (name, location, api_token, status, device_info, created_at, updated_at)
	VALUES ($1, $2, $3, 'inactive', '{}', now(), now())
	RETURNING ` + screenColumns + `;`
	if err := s.db.Get(&sc, q, name, location, token); err != nil {
		log.Error().Err(err).Msg("failed to create screen")
		return model.Screen{}, err
	}
	return sc, nil
}

func (s *pgStore) GetScreenByID(id int) (model.Screen, error) {
	var sc model.Screen
	err := s.db.Get(&sc, `SELECT `+screenColumns+` FROM screens WHERE id = $1;`, id)
	return sc, notFound(err)
}

// GetScreenByToken resolves the per-screen bearer token carried on every
// device-originated call.
func (s *pgStore) GetScreenByToken(token string) (model.Screen, error) {
	var sc model.Screen
	err := s.db.Get(&sc, `SELECT `+screenColumns+` FROM screens WHERE api_token = $1;`, token)
	return sc, notFound(err)
}

func (s *pgStore) ListScreens() ([]model.Screen, error) {
	var screens []model.Screen
	err := s.db.Select(&screens, `SELECT `+screenColumns+` FROM screens ORDER BY id;`)
	if err != nil {
		log.Error().Err(err).Msg("failed to list screens")
		return nil, err
	}
	return screens, nil
}

func (s *pgStore) UpdateScreen(id int, name, location, status, tags *string) error {
	res, err := s.db.Exec(`
		UPDATE screens
		SET name       = COALESCE($2, name),
		    location   = COALESCE($3, location),
		    status     = COALESCE($4, status),
		    tags       = COALESCE($5, tags),
		    updated_at = now()
		WHERE id = $1;`, id, name, location, status, tags)
	if err != nil {
		log.Error().Err(err).Int("screen_id", id).Msg("failed to update screen")
		return err
	}
	if rows, _ := res.RowsAffected(); rows == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *pgStore) DeleteScreen(id int) error {
	res, err := s.db.Exec(`DELETE FROM screens WHERE id = $1;`, id)
	if err != nil {
		log.Error().Err(err).Int("screen_id", id).Msg("failed to delete screen")
		return err
	}
	if rows, _ := res.RowsAffected(); rows == 0 {
		return ErrNotFound
	}
	return nil
}

// TouchScreenHeartbeat overwrites the liveness timestamp, flips the screen to
// active and folds in whatever the device reported about itself. Last write
// wins; concurrent heartbeats from one screen are harmless.
func (s *pgStore) TouchScreenHeartbeat(id int, at time.Time, appVersion *string, deviceInfo model.JSONMap) error {
	var info any
	if deviceInfo != nil {
		info = deviceInfo
	}
	res, err := s.db.Exec(`
		UPDATE screens
		SET last_heartbeat = $2,
		    status         = 'active',
		    app_version    = COALESCE($3, app_version),
		    device_info    = COALESCE($4, device_info),
		    updated_at     = now()
		WHERE id = $1;`, id, at, appVersion, info)
	if err != nil {
		log.Error().Err(err).Int("screen_id", id).Msg("failed to record heartbeat")
		return err
	}
	if rows, _ := res.RowsAffected(); rows == 0 {
		return ErrNotFound
	}
	return nil
}

// ListScreensWithPlaylist returns every screen the playlist is assigned to,
// used to fan out refresh notifications after playlist edits.
func (s *pgStore) ListScreensWithPlaylist(playlistID int) ([]model.Screen, error) {
	var screens []model.Screen
	err := s.db.Select(&screens, `
		SELECT s.id, s.name, s.location, s.api_token, s.status, s.last_heartbeat,
		       s.app_version, s.device_info, s.tags, s.created_at, s.updated_at
		  FROM screens s
		  JOIN screen_playlists sp ON s.id = sp.screen_id
		 WHERE sp.playlist_id = $1
		 ORDER BY s.id;`, playlistID)
	if err != nil {
		log.Error().Err(err).Int("playlist_id", playlistID).Msg("failed to list screens with playlist")
		return nil, err
	}
	return screens, nil
}
