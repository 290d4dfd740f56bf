package db

import (
	"github.com/rs/zerolog/log"

	"github.com/castell-digital/marquee/internal/model"
)

const contentColumns = `
	id, title, type, file_path, url, duration, file_size, checksum,
	is_active, created_at, updated_at`

func (s *pgStore) CreateContent(
	title, typ string,
	filePath, url *string,
	duration int,
	fileSize int64,
	checksum *string,
) (model.Content, error) {
	var c model.Content
	const q = `
	INSERT INTO content
	  (title, type, file_path, url, duration, file_size, checksum, is_active, created_at, updated_at)
	VALUES
	  ($1, $2, $3, $4, $5, $6, $7, true, now(), now())
	RETURNING ` + contentColumns + `;`
	if err := s.db.Get(&c, q, title, typ, filePath, url, duration, fileSize, checksum); err != nil {
		log.Error().Err(err).Msg("failed to create content")
		return model.Content{}, err
	}
	return c, nil
}

func (s *pgStore) GetContentByID(id int) (model.Content, error) {
	var c model.Content
	err := s.db.Get(&c, `SELECT `+contentColumns+` FROM content WHERE id = $1;`, id)
	return c, notFound(err)
}

func (s *pgStore) ListContent() ([]model.Content, error) {
	var all []model.Content
	if err := s.db.Select(&all, `SELECT `+contentColumns+` FROM content ORDER BY id;`); err != nil {
		log.Error().Err(err).Msg("failed to list content")
		return nil, err
	}
	return all, nil
}

func (s *pgStore) UpdateContent(id int, title, url *string, duration *int, active *bool) error {
	res, err := s.db.Exec(`
		UPDATE content
		SET title      = COALESCE($2, title),
		    url        = COALESCE($3, url),
		    duration   = COALESCE($4, duration),
		    is_active  = COALESCE($5, is_active),
		    updated_at = now()
		WHERE id = $1;`, id, title, url, duration, active)
	if err != nil {
		log.Error().Err(err).Int("content_id", id).Msg("failed to update content")
		return err
	}
	if rows, _ := res.RowsAffected(); rows == 0 {
		return ErrNotFound
	}
	return nil
}

// ReplaceContentFile swaps the stored payload reference and its derived
// size/checksum in one statement. The derived fields are never written
// anywhere else.
func (s *pgStore) ReplaceContentFile(id int, filePath string, fileSize int64, checksum string) error {
	res, err := s.db.Exec(`
		UPDATE content
		SET file_path  = $2,
		    file_size  = $3,
		    checksum   = $4,
		    updated_at = now()
		WHERE id = $1;`, id, filePath, fileSize, checksum)
	if err != nil {
		log.Error().Err(err).Int("content_id", id).Msg("failed to replace content file")
		return err
	}
	if rows, _ := res.RowsAffected(); rows == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *pgStore) DeleteContent(id int) error {
	res, err := s.db.Exec(`DELETE FROM content WHERE id = $1;`, id)
	if err != nil {
		log.Error().Err(err).Int("content_id", id).Msg("failed to delete content")
		return err
	}
	if rows, _ := res.RowsAffected(); rows == 0 {
		return ErrNotFound
	}
	return nil
}
