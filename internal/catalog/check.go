package catalog

import (
	"errors"
	"fmt"
	"github.com/jypelle/boberplayer/apimodel"
	"github.com/samber/lo"
	"slices"
)

// Check verifies that every playlist and queue entry only refers to songs
// the library knows. All problems are reported together.
func (l *Library) Check() error {
	l.lock.RLock()
	defer l.lock.RUnlock()

	var errs []error
	playlistIds := lo.Keys(l.playlists)
	slices.Sort(playlistIds)
	for _, playlistId := range playlistIds {
		playlist := l.playlists[playlistId]
		if err := l.checkSongRefs("playlist", playlist.Songs); err != nil {
			errs = append(errs, fmt.Errorf("playlist %d: %w", playlist.Id, err))
		}
	}
	for i, entry := range l.queue {
		if err := l.checkEntry(entry); err != nil {
			errs = append(errs, fmt.Errorf("queue entry %d: %w", i, err))
		}
	}
	return errors.Join(errs...)
}

func (l *Library) checkSongRefs(entity string, songIds []apimodel.SongId) error {
	var errs []error
	for i, songId := range songIds {
		if _, ok := l.songs[songId]; !ok {
			errs = append(errs, &apimodel.FieldError{
				Entity: entity,
				Field:  fmt.Sprintf("songs[%d]", i),
				Err:    fmt.Errorf("%w: %d", apimodel.ErrUnknownSong, songId),
			})
		}
	}
	return errors.Join(errs...)
}

func (l *Library) checkEntry(entry apimodel.QueueEntry) error {
	if err := entry.Validate(); err != nil {
		return err
	}
	if song, ok := entry.Song(); ok {
		known, ok := l.songs[song.Id]
		if !ok {
			return fmt.Errorf("%w: %d", apimodel.ErrUnknownSong, song.Id)
		}
		if known.Path != song.Path {
			return &apimodel.FieldError{
				Entity: "queue_entry",
				Field:  "path",
				Err:    fmt.Errorf("%w: song %d is %s in the library", apimodel.ErrConflictingField, song.Id, known.Path),
			}
		}
	}
	if playlistQueue, ok := entry.PlaylistQueue(); ok {
		return l.checkSongRefs("playlist_queue", playlistQueue.Playlist.Songs)
	}
	return nil
}
