// Store exposes the persistence operations the HTTP layer and the schedule
// resolver consume. Keeping it behind an interface lets handler tests run
// against an in-memory fake.
package db

import (
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/castell-digital/marquee/internal/model"
)

type Store interface {
	// admin users
	CreateUser(email, hashedPassword string, name *string) (int, error)
	GetUserByEmail(email string) (*model.User, error)
	GetUserByID(id int) (*model.User, error)
	UpdateUserProfile(id int, email string, name *string) error

	// screens
	CreateScreen(name string, location *string, token string) (model.Screen, error)
	GetScreenByID(id int) (model.Screen, error)
	GetScreenByToken(token string) (model.Screen, error)
	ListScreens() ([]model.Screen, error)
	UpdateScreen(id int, name, location, status, tags *string) error
	DeleteScreen(id int) error
	TouchScreenHeartbeat(id int, at time.Time, appVersion *string, deviceInfo model.JSONMap) error
	ListScreensWithPlaylist(playlistID int) ([]model.Screen, error)

	// content
	CreateContent(title, typ string, filePath, url *string, duration int, fileSize int64, checksum *string) (model.Content, error)
	GetContentByID(id int) (model.Content, error)
	ListContent() ([]model.Content, error)
	UpdateContent(id int, title, url *string, duration *int, active *bool) error
	ReplaceContentFile(id int, filePath string, fileSize int64, checksum string) error
	DeleteContent(id int) error

	// playlists
	CreatePlaylist(name string, description *string) (model.Playlist, error)
	GetPlaylistByID(id int) (model.Playlist, error)
	ListPlaylists() ([]model.Playlist, error)
	UpdatePlaylist(id int, name, description *string, active *bool) error
	UpdatePlaylistSchedule(id int, startDate, endDate *time.Time, startTime, endTime, weekdays *string, priority *int) error
	DeletePlaylist(id int) error
	AddItemToPlaylist(playlistID, contentID, position int) (model.PlaylistItem, error)
	UpdatePlaylistItem(itemID int, position *int) error
	RemovePlaylistItem(itemID int) error
	ListPlaylistItems(playlistID int) ([]model.PlaylistItem, error)
	ReorderPlaylistItems(playlistID int, itemIDs []int) error
	AssignPlaylistToScreen(screenID, playlistID int) error
	UnassignPlaylistFromScreen(screenID, playlistID int) error
	GetActivePlaylistsForScreen(screenID int) ([]model.Playlist, error)

	// screen events
	AppendEvent(screenID int, action string, contentID *int, details model.JSONMap) (model.ScreenEvent, error)
	ListEvents(screenID, limit int) ([]model.ScreenEvent, error)
}

type pgStore struct {
	db *sqlx.DB
}

var _ Store = (*pgStore)(nil)

func NewStore(conn *sqlx.DB) Store {
	return &pgStore{db: conn}
}
