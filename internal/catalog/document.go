package catalog

import (
	"errors"
	"fmt"
	"github.com/jypelle/boberplayer/apimodel"
	"github.com/sirupsen/logrus"
	"slices"
)

// Document is the exchange form of a library.
type Document struct {
	Songs     []apimodel.Song       `json:"songs" yaml:"songs"`
	Playlists []apimodel.Playlist   `json:"playlists" yaml:"playlists"`
	Servers   []apimodel.Server     `json:"servers" yaml:"servers"`
	Queue     []apimodel.QueueEntry `json:"queue" yaml:"queue"`
}

// FromDocument builds a library out of a document. Records that fail
// validation are left out and every problem is reported in the joined error,
// so the returned library is usable even when the error is not nil.
func FromDocument(doc Document) (*Library, error) {
	library := NewLibrary()

	library.lock.Lock()
	defer library.lock.Unlock()

	var errs []error
	for i, song := range doc.Songs {
		if err := library.putSong(song); err != nil {
			errs = append(errs, fmt.Errorf("songs[%d]: %w", i, err))
		}
	}
	for i, playlist := range doc.Playlists {
		if err := library.putPlaylist(playlist); err != nil {
			errs = append(errs, fmt.Errorf("playlists[%d]: %w", i, err))
		}
	}
	for i, server := range doc.Servers {
		if err := server.Validate(); err != nil {
			errs = append(errs, fmt.Errorf("servers[%d]: %w", i, err))
			continue
		}
		if err := library.insertServer(server); err != nil {
			errs = append(errs, fmt.Errorf("servers[%d]: %w", i, err))
		}
	}
	for i, entry := range doc.Queue {
		if err := library.enqueue(entry); err != nil {
			errs = append(errs, fmt.Errorf("queue[%d]: %w", i, err))
		}
	}

	logrus.Debugf("Library loaded: %d songs, %d playlists, %d servers, %d queue entries",
		len(library.songs), len(library.playlists), len(library.servers), len(library.queue))

	return library, errors.Join(errs...)
}

// Document exports a consistent snapshot of the library. Sequences are never nil.
func (l *Library) Document() Document {
	l.lock.RLock()
	defer l.lock.RUnlock()

	doc := Document{
		Songs:     l.songList(),
		Playlists: l.playlistList(),
		Servers:   slices.Clone(l.servers),
		Queue:     l.queueList(),
	}
	if doc.Servers == nil {
		doc.Servers = []apimodel.Server{}
	}
	return doc
}
