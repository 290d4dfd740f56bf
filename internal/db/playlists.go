package db

import (
	"time"

	"github.com/rs/zerolog/log"

	"github.com/castell-digital/marquee/internal/model"
)

const playlistColumns = `
	id, name, description, is_active, start_date, end_date,
	start_time, end_time, weekdays, priority, created_at, updated_at`

func (s *pgStore) CreatePlaylist(name string, description *string) (model.Playlist, error) {
	var p model.Playlist
	const q = `
	INSERT INTO playlists (name, description, is_active, weekdays, priority, created_at, updated_at)
	VALUES ($1, $2, true, '', 0, now(), now())
	RETURNING ` + playlistColumns + `;`
	if err := s.db.Get(&p, q, name, description); err != nil {
		log.Error().Err(err).Msg("failed to create playlist")
		return model.Playlist{}, err
	}
	return p, nil
}

func (s *pgStore) GetPlaylistByID(id int) (model.Playlist, error) {
	var p model.Playlist
	if err := s.db.Get(&p, `SELECT `+playlistColumns+` FROM playlists WHERE id = $1;`, id); err != nil {
		return model.Playlist{}, notFound(err)
	}
	items, err := s.ListPlaylistItems(id)
	if err != nil {
		return p, err
	}
	p.Items = items
	return p, nil
}

func (s *pgStore) ListPlaylists() ([]model.Playlist, error) {
	var out []model.Playlist
	if err := s.db.Select(&out, `SELECT `+playlistColumns+` FROM playlists ORDER BY id;`); err != nil {
		log.Error().Err(err).Msg("failed to list playlists")
		return nil, err
	}
	for i := range out {
		items, err := s.ListPlaylistItems(out[i].ID)
		if err != nil {
			return nil, err
		}
		out[i].Items = items
	}
	return out, nil
}

func (s *pgStore) UpdatePlaylist(id int, name, description *string, active *bool) error {
	res, err := s.db.Exec(`
		UPDATE playlists
		SET name        = COALESCE($2, name),
		    description = COALESCE($3, description),
		    is_active   = COALESCE($4, is_active),
		    updated_at  = now()
		WHERE id = $1;`, id, name, description, active)
	if err != nil {
		log.Error().Err(err).Int("playlist_id", id).Msg("failed to update playlist")
		return err
	}
	if rows, _ := res.RowsAffected(); rows == 0 {
		return ErrNotFound
	}
	return nil
}

// UpdatePlaylistSchedule writes the scheduling constraints the resolver
// evaluates. Dates and times arrive pre-validated from the handler layer.
func (s *pgStore) UpdatePlaylistSchedule(
	id int,
	startDate, endDate *time.Time,
	startTime, endTime, weekdays *string,
	priority *int,
) error {
	res, err := s.db.Exec(`
		UPDATE playlists
		SET start_date = $2,
		    end_date   = $3,
		    start_time = $4,
		    end_time   = $5,
		    weekdays   = COALESCE($6, weekdays),
		    priority   = COALESCE($7, priority),
		    updated_at = now()
		WHERE id = $1;`, id, startDate, endDate, startTime, endTime, weekdays, priority)
	if err != nil {
		log.Error().Err(err).Int("playlist_id", id).Msg("failed to update playlist schedule")
		return err
	}
	if rows, _ := res.RowsAffected(); rows == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *pgStore) DeletePlaylist(id int) error {
	res, err := s.db.Exec(`DELETE FROM playlists WHERE id = $1;`, id)
	if err != nil {
		log.Error().Err(err).Int("playlist_id", id).Msg("failed to delete playlist")
		return err
	}
	if rows, _ := res.RowsAffected(); rows == 0 {
		return ErrNotFound
	}
	return nil
}

// AddItemToPlaylist appends content at the given position. A given content
// may appear at most once per playlist; a duplicate insert reports
// ErrConflict.
func (s *pgStore) AddItemToPlaylist(playlistID, contentID, position int) (model.PlaylistItem, error) {
	var it model.PlaylistItem
	const q = `
	INSERT INTO playlist_items (playlist_id, content_id, position, created_at)
	VALUES ($1, $2, $3, now())
	RETURNING id, playlist_id, content_id, position, created_at;`
	if err := s.db.Get(&it, q, playlistID, contentID, position); err != nil {
		if isUniqueViolation(err) {
			return model.PlaylistItem{}, ErrConflict
		}
		log.Error().Err(err).Int("playlist_id", playlistID).Msg("failed to add playlist item")
		return model.PlaylistItem{}, err
	}
	return it, nil
}

func (s *pgStore) UpdatePlaylistItem(itemID int, position *int) error {
	res, err := s.db.Exec(`
		UPDATE playlist_items
		SET position = COALESCE($2, position)
		WHERE id = $1;`, itemID, position)
	if err != nil {
		log.Error().Err(err).Int("item_id", itemID).Msg("failed to update playlist item")
		return err
	}
	if rows, _ := res.RowsAffected(); rows == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *pgStore) RemovePlaylistItem(itemID int) error {
	res, err := s.db.Exec(`DELETE FROM playlist_items WHERE id = $1;`, itemID)
	if err != nil {
		log.Error().Err(err).Int("item_id", itemID).Msg("failed to remove playlist item")
		return err
	}
	if rows, _ := res.RowsAffected(); rows == 0 {
		return ErrNotFound
	}
	return nil
}

// ListPlaylistItems returns the ordered items with their content joined in,
// skipping nothing: items whose content was deactivated still appear, the
// handler decides what to expose.
func (s *pgStore) ListPlaylistItems(playlistID int) ([]model.PlaylistItem, error) {
	type row struct {
		model.PlaylistItem
		CTitle     *string    `db:"c_title"`
		CType      *string    `db:"c_type"`
		CFilePath  *string    `db:"c_file_path"`
		CURL       *string    `db:"c_url"`
		CDuration  *int       `db:"c_duration"`
		CFileSize  *int64     `db:"c_file_size"`
		CChecksum  *string    `db:"c_checksum"`
		CActive    *bool      `db:"c_is_active"`
		CCreatedAt *time.Time `db:"c_created_at"`
		CUpdatedAt *time.Time `db:"c_updated_at"`
	}
	var rows []row
	const q = `
	SELECT
	  pi.id, pi.playlist_id, pi.content_id, pi.position, pi.created_at,
	  c.title      AS c_title,
	  c.type       AS c_type,
	  c.file_path  AS c_file_path,
	  c.url        AS c_url,
	  c.duration   AS c_duration,
	  c.file_size  AS c_file_size,
	  c.checksum   AS c_checksum,
	  c.is_active  AS c_is_active,
	  c.created_at AS c_created_at,
	  c.updated_at AS c_updated_at
	FROM playlist_items pi
	JOIN content c ON pi.content_id = c.id
	WHERE pi.playlist_id = $1
	ORDER BY pi.position, pi.id;`
	if err := s.db.Select(&rows, q, playlistID); err != nil {
		log.Error().Err(err).Int("playlist_id", playlistID).Msg("failed to list playlist items")
		return nil, err
	}

	items := make([]model.PlaylistItem, 0, len(rows))
	for _, r := range rows {
		it := r.PlaylistItem
		it.Content = &model.Content{
			ID:        r.ContentID,
			Title:     deref(r.CTitle),
			Type:      deref(r.CType),
			FilePath:  r.CFilePath,
			URL:       r.CURL,
			Duration:  derefInt(r.CDuration),
			FileSize:  derefInt64(r.CFileSize),
			Checksum:  r.CChecksum,
			Active:    r.CActive != nil && *r.CActive,
			CreatedAt: derefTime(r.CCreatedAt),
			UpdatedAt: derefTime(r.CUpdatedAt),
		}
		items = append(items, it)
	}
	return items, nil
}

// ReorderPlaylistItems rewrites positions to match the given item id order.
// Positions are first shifted out of the way so no two rows hold the same
// position mid-transaction.
func (s *pgStore) ReorderPlaylistItems(playlistID int, itemIDs []int) error {
	tx, err := s.db.Beginx()
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		} else {
			err = tx.Commit()
		}
	}()

	if _, err = tx.Exec(`
		UPDATE playlist_items
		   SET position = position + $1
		 WHERE playlist_id = $2;`, len(itemIDs), playlistID); err != nil {
		return err
	}

	for idx, itemID := range itemIDs {
		if _, err = tx.Exec(`
			UPDATE playlist_items
			   SET position = $1
			 WHERE id = $2
			   AND playlist_id = $3;`, idx+1, itemID, playlistID); err != nil {
			return err
		}
	}
	return nil
}

func (s *pgStore) AssignPlaylistToScreen(screenID, playlistID int) error {
	_, err := s.db.Exec(`
		INSERT INTO screen_playlists (screen_id, playlist_id, assigned_at)
		VALUES ($1, $2, now())
		ON CONFLICT DO NOTHING;`, screenID, playlistID)
	if err != nil {
		log.Error().Err(err).
			Int("screen_id", screenID).
			Int("playlist_id", playlistID).
			Msg("failed to assign playlist to screen")
	}
	return err
}

func (s *pgStore) UnassignPlaylistFromScreen(screenID, playlistID int) error {
	_, err := s.db.Exec(`
		DELETE FROM screen_playlists
		 WHERE screen_id = $1 AND playlist_id = $2;`, screenID, playlistID)
	if err != nil {
		log.Error().Err(err).
			Int("screen_id", screenID).
			Int("playlist_id", playlistID).
			Msg("failed to unassign playlist from screen")
	}
	return err
}

// GetActivePlaylistsForScreen loads every active playlist assigned to a
// screen, scheduling fields included. The resolver does the rest in memory.
func (s *pgStore) GetActivePlaylistsForScreen(screenID int) ([]model.Playlist, error) {
	var out []model.Playlist
	const q = `
	SELECT p.id, p.name, p.description, p.is_active, p.start_date, p.end_date,
	       p.start_time, p.end_time, p.weekdays, p.priority, p.created_at, p.updated_at
	  FROM playlists p
	  JOIN screen_playlists sp ON sp.playlist_id = p.id
	 WHERE sp.screen_id = $1
	   AND p.is_active = true
	 ORDER BY p.id;`
	if err := s.db.Select(&out, q, screenID); err != nil {
		log.Error().Err(err).Int("screen_id", screenID).Msg("failed to get active playlists for screen")
		return nil, err
	}
	return out, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func derefInt(i *int) int {
	if i == nil {
		return 0
	}
	return *i
}

func derefInt64(i *int64) int64 {
	if i == nil {
		return 0
	}
	return *i
}

func derefTime(t *time.Time) time.Time {
	if t == nil {
		return time.Time{}
	}
	return *t
}
