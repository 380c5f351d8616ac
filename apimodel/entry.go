package apimodel

import (
	"encoding/json"
	"fmt"
	"gopkg.in/yaml.v3"
)

type EntryKind int

const (
	UNDEFINED_ENTRY EntryKind = iota
	SONG_ENTRY
	PLAYLIST_QUEUE_ENTRY
)

func (k EntryKind) String() string {
	switch k {
	case SONG_ENTRY:
		return "song"
	case PLAYLIST_QUEUE_ENTRY:
		return "playlist_queue"
	default:
		return "undefined"
	}
}

const queueEntryEntity = "queue_entry"

// QueueEntry is the next thing to play: either a single song or a nested
// playlist queue. The zero value holds neither and is invalid.
//
// Encoded entries carry no tag: an object with a "playlist" key is a
// PlaylistQueue, anything else is a Song.
type QueueEntry struct {
	kind          EntryKind
	song          *Song
	playlistQueue *PlaylistQueue
}

// NewSongEntry wraps a copy of song.
func NewSongEntry(song Song) QueueEntry {
	song = song.Clone()
	return QueueEntry{kind: SONG_ENTRY, song: &song}
}

// NewPlaylistQueueEntry wraps a copy of playlistQueue.
func NewPlaylistQueueEntry(playlistQueue PlaylistQueue) QueueEntry {
	playlistQueue = playlistQueue.Clone()
	return QueueEntry{kind: PLAYLIST_QUEUE_ENTRY, playlistQueue: &playlistQueue}
}

// Clone returns an entry that shares no memory with e.
func (e QueueEntry) Clone() QueueEntry {
	switch e.kind {
	case SONG_ENTRY:
		return NewSongEntry(*e.song)
	case PLAYLIST_QUEUE_ENTRY:
		return NewPlaylistQueueEntry(*e.playlistQueue)
	default:
		return QueueEntry{}
	}
}

func (e QueueEntry) Kind() EntryKind {
	return e.kind
}

func (e QueueEntry) Song() (Song, bool) {
	if e.kind != SONG_ENTRY {
		return Song{}, false
	}
	return e.song.Clone(), true
}

func (e QueueEntry) PlaylistQueue() (PlaylistQueue, bool) {
	if e.kind != PLAYLIST_QUEUE_ENTRY {
		return PlaylistQueue{}, false
	}
	return e.playlistQueue.Clone(), true
}

func (e QueueEntry) Validate() error {
	switch e.kind {
	case SONG_ENTRY:
		return e.song.Validate()
	case PLAYLIST_QUEUE_ENTRY:
		return e.playlistQueue.Validate()
	default:
		return fieldError(queueEntryEntity, "", ErrEmptyEntry)
	}
}

func (e QueueEntry) value() (interface{}, error) {
	switch e.kind {
	case SONG_ENTRY:
		return e.song, nil
	case PLAYLIST_QUEUE_ENTRY:
		return e.playlistQueue, nil
	default:
		return nil, fieldError(queueEntryEntity, "", ErrEmptyEntry)
	}
}

func (e QueueEntry) MarshalJSON() ([]byte, error) {
	v, err := e.value()
	if err != nil {
		return nil, err
	}
	return json.Marshal(v)
}

func (e QueueEntry) MarshalYAML() (interface{}, error) {
	return e.value()
}

func (e *QueueEntry) UnmarshalJSON(data []byte) error {
	keys, err := jsonKeys(queueEntryEntity, data)
	if err != nil {
		return err
	}
	if keys["playlist"] {
		var playlistQueue PlaylistQueue
		if err := json.Unmarshal(data, &playlistQueue); err != nil {
			return err
		}
		*e = NewPlaylistQueueEntry(playlistQueue)
		return nil
	}
	var song Song
	if err := json.Unmarshal(data, &song); err != nil {
		return err
	}
	*e = NewSongEntry(song)
	return nil
}

func (e *QueueEntry) UnmarshalYAML(value *yaml.Node) error {
	keys, err := yamlKeys(queueEntryEntity, value)
	if err != nil {
		return err
	}
	if keys["playlist"] {
		var playlistQueue PlaylistQueue
		if err := value.Decode(&playlistQueue); err != nil {
			return err
		}
		*e = NewPlaylistQueueEntry(playlistQueue)
		return nil
	}
	var song Song
	if err := value.Decode(&song); err != nil {
		return err
	}
	*e = NewSongEntry(song)
	return nil
}

func (e QueueEntry) String() string {
	switch e.kind {
	case SONG_ENTRY:
		return fmt.Sprintf("song %d %q", e.song.Id, e.song.Name)
	case PLAYLIST_QUEUE_ENTRY:
		return fmt.Sprintf("playlist %d %q at %d", e.playlistQueue.Playlist.Id, e.playlistQueue.Playlist.Name, e.playlistQueue.CurrentIndex)
	default:
		return "empty entry"
	}
}
