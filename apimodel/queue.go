package apimodel

import (
	"encoding/json"
	"fmt"
	"gopkg.in/yaml.v3"
)

// PlaylistQueue is a playback cursor over one playlist.
// Jumps and Prime are carried as-is, nothing in this package interprets them.
type PlaylistQueue struct {
	CurrentIndex int64    `json:"currentIndex" yaml:"currentIndex"`
	Jumps        int64    `json:"jumps" yaml:"jumps"`
	Prime        int64    `json:"prime" yaml:"prime"`
	Playlist     Playlist `json:"playlist" yaml:"playlist"`
}

const playlistQueueEntity = "playlist_queue"

var playlistQueueKeys = []string{"currentIndex", "jumps", "prime", "playlist"}

func NewPlaylistQueue(playlist Playlist, currentIndex int64, jumps int64, prime int64) (PlaylistQueue, error) {
	queue := PlaylistQueue{
		CurrentIndex: currentIndex,
		Jumps:        jumps,
		Prime:        prime,
		Playlist:     playlist.Clone(),
	}
	if err := queue.Validate(); err != nil {
		return PlaylistQueue{}, err
	}
	return queue, nil
}

// Validate checks the wrapped playlist and the cursor. An empty playlist
// only accepts a cursor at 0.
func (q PlaylistQueue) Validate() error {
	if err := q.Playlist.Validate(); err != nil {
		return fmt.Errorf("%s: %w", playlistQueueEntity, err)
	}
	if len(q.Playlist.Songs) == 0 {
		if q.CurrentIndex != 0 {
			return fieldError(playlistQueueEntity, "currentIndex", fmt.Errorf("%w: %d in empty playlist", ErrIndexOutOfRange, q.CurrentIndex))
		}
		return nil
	}
	if err := checkIndex(q.CurrentIndex, len(q.Playlist.Songs)); err != nil {
		return fieldError(playlistQueueEntity, "currentIndex", err)
	}
	return nil
}

func (q PlaylistQueue) Clone() PlaylistQueue {
	q.Playlist = q.Playlist.Clone()
	return q
}

// Current returns the song under the cursor, if any.
func (q PlaylistQueue) Current() (SongId, bool) {
	if q.CurrentIndex < 0 || q.CurrentIndex >= int64(len(q.Playlist.Songs)) {
		return 0, false
	}
	return q.Playlist.Songs[q.CurrentIndex], true
}

type playlistQueueAlias PlaylistQueue

func (q *PlaylistQueue) UnmarshalJSON(data []byte) error {
	keys, err := jsonKeys(playlistQueueEntity, data)
	if err != nil {
		return err
	}
	if err := keys.require(playlistQueueEntity, playlistQueueKeys...); err != nil {
		return err
	}
	var alias playlistQueueAlias
	if err := json.Unmarshal(data, &alias); err != nil {
		return fmt.Errorf("decode %s: %w", playlistQueueEntity, err)
	}
	*q = PlaylistQueue(alias)
	return nil
}

func (q *PlaylistQueue) UnmarshalYAML(value *yaml.Node) error {
	keys, err := yamlKeys(playlistQueueEntity, value)
	if err != nil {
		return err
	}
	if err := keys.require(playlistQueueEntity, playlistQueueKeys...); err != nil {
		return err
	}
	var alias playlistQueueAlias
	if err := value.Decode(&alias); err != nil {
		return fmt.Errorf("decode %s: %w", playlistQueueEntity, err)
	}
	*q = PlaylistQueue(alias)
	return nil
}
