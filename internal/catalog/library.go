package catalog

import (
	"cmp"
	"fmt"
	"github.com/jypelle/boberplayer/apimodel"
	"github.com/samber/lo"
	"github.com/sirupsen/logrus"
	"slices"
	"sync"
)

// Library holds the songs, playlists, servers and play queue of one user.
// Every record it holds has passed validation. Records are copied in and out,
// callers never share memory with the library.
type Library struct {
	lock sync.RWMutex

	songs     map[apimodel.SongId]apimodel.Song
	playlists map[apimodel.PlaylistId]apimodel.Playlist
	servers   []apimodel.Server // sorted with apimodel.Server.Compare
	queue     []apimodel.QueueEntry
}

func NewLibrary() *Library {
	return &Library{
		songs:     make(map[apimodel.SongId]apimodel.Song),
		playlists: make(map[apimodel.PlaylistId]apimodel.Playlist),
	}
}

// region Songs

// AddSong registers a new song under the next free identifier.
func (l *Library) AddSong(name string, path string, album *string, author *string) (apimodel.Song, error) {
	l.lock.Lock()
	defer l.lock.Unlock()

	song, err := apimodel.NewSong(l.nextSongId(), name, path, album, author)
	if err != nil {
		logrus.Warnf("Refused song \"%s\": %v", name, err)
		return apimodel.Song{}, err
	}
	l.songs[song.Id] = song.Clone()
	logrus.Debugf("Add song %d: [%s, %s]", song.Id, song.Name, song.Path)

	return song, nil
}

// PutSong registers a song under its own identifier.
func (l *Library) PutSong(song apimodel.Song) error {
	l.lock.Lock()
	defer l.lock.Unlock()

	return l.putSong(song)
}

func (l *Library) putSong(song apimodel.Song) error {
	if err := song.Validate(); err != nil {
		return err
	}
	if _, ok := l.songs[song.Id]; ok {
		return &apimodel.FieldError{Entity: "song", Field: "id", Err: fmt.Errorf("%w: %d", apimodel.ErrDuplicate, song.Id)}
	}
	l.songs[song.Id] = song.Clone()
	return nil
}

func (l *Library) nextSongId() apimodel.SongId {
	if len(l.songs) == 0 {
		return 0
	}
	return lo.Max(lo.Keys(l.songs)) + 1
}

func (l *Library) Song(songId apimodel.SongId) (apimodel.Song, bool) {
	l.lock.RLock()
	defer l.lock.RUnlock()

	song, ok := l.songs[songId]
	return song.Clone(), ok
}

// Songs returns every song ordered by identifier.
func (l *Library) Songs() []apimodel.Song {
	l.lock.RLock()
	defer l.lock.RUnlock()

	return l.songList()
}

func (l *Library) songList() []apimodel.Song {
	songs := lo.Map(lo.Values(l.songs), func(s apimodel.Song, _ int) apimodel.Song {
		return s.Clone()
	})
	slices.SortFunc(songs, func(a, b apimodel.Song) int {
		return cmp.Compare(a.Id, b.Id)
	})
	return songs
}

// endregion

// region Playlists

// AddPlaylist creates an empty playlist. Identifiers follow creation order.
func (l *Library) AddPlaylist(name string, desc *string) (apimodel.Playlist, error) {
	l.lock.Lock()
	defer l.lock.Unlock()

	playlist, err := apimodel.NewPlaylist(l.nextPlaylistId(), name, desc)
	if err != nil {
		logrus.Warnf("Refused playlist \"%s\": %v", name, err)
		return apimodel.Playlist{}, err
	}
	l.playlists[playlist.Id] = playlist.Clone()
	logrus.Debugf("Add playlist %d: \"%s\"", playlist.Id, playlist.Name)

	return playlist, nil
}

// PutPlaylist registers a playlist under its own identifier. Every song it
// references must already be in the library.
func (l *Library) PutPlaylist(playlist apimodel.Playlist) error {
	l.lock.Lock()
	defer l.lock.Unlock()

	return l.putPlaylist(playlist)
}

func (l *Library) putPlaylist(playlist apimodel.Playlist) error {
	if err := playlist.Validate(); err != nil {
		return err
	}
	if _, ok := l.playlists[playlist.Id]; ok {
		return &apimodel.FieldError{Entity: "playlist", Field: "id", Err: fmt.Errorf("%w: %d", apimodel.ErrDuplicate, playlist.Id)}
	}
	if err := l.checkSongRefs("playlist", playlist.Songs); err != nil {
		return fmt.Errorf("playlist %d: %w", playlist.Id, err)
	}
	l.playlists[playlist.Id] = playlist.Clone()
	return nil
}

func (l *Library) nextPlaylistId() apimodel.PlaylistId {
	if len(l.playlists) == 0 {
		return 0
	}
	return lo.Max(lo.Keys(l.playlists)) + 1
}

func (l *Library) Playlist(playlistId apimodel.PlaylistId) (apimodel.Playlist, bool) {
	l.lock.RLock()
	defer l.lock.RUnlock()

	playlist, ok := l.playlists[playlistId]
	if !ok {
		return apimodel.Playlist{}, false
	}
	return playlist.Clone(), true
}

// Playlists returns every playlist ordered by identifier.
func (l *Library) Playlists() []apimodel.Playlist {
	l.lock.RLock()
	defer l.lock.RUnlock()

	return l.playlistList()
}

func (l *Library) playlistList() []apimodel.Playlist {
	playlists := lo.Map(lo.Values(l.playlists), func(p apimodel.Playlist, _ int) apimodel.Playlist {
		return p.Clone()
	})
	slices.SortFunc(playlists, func(a, b apimodel.Playlist) int {
		return cmp.Compare(a.Id, b.Id)
	})
	return playlists
}

// AddSongToPlaylist appends a known song to a known playlist.
func (l *Library) AddSongToPlaylist(songId apimodel.SongId, playlistId apimodel.PlaylistId) error {
	l.lock.Lock()
	defer l.lock.Unlock()

	if _, ok := l.songs[songId]; !ok {
		return fmt.Errorf("%w: %d", apimodel.ErrUnknownSong, songId)
	}
	playlist, ok := l.playlists[playlistId]
	if !ok {
		return fmt.Errorf("%w: %d", apimodel.ErrUnknownPlaylist, playlistId)
	}
	playlist = playlist.Clone()
	playlist.Songs = append(playlist.Songs, songId)
	l.playlists[playlistId] = playlist
	logrus.Debugf("Add song %d to playlist %d", songId, playlistId)

	return nil
}

// PlaylistSongs resolves the songs of a playlist, in playlist order.
func (l *Library) PlaylistSongs(playlistId apimodel.PlaylistId) ([]apimodel.Song, error) {
	l.lock.RLock()
	defer l.lock.RUnlock()

	playlist, ok := l.playlists[playlistId]
	if !ok {
		return nil, fmt.Errorf("%w: %d", apimodel.ErrUnknownPlaylist, playlistId)
	}
	songs := make([]apimodel.Song, 0, len(playlist.Songs))
	for _, songId := range playlist.Songs {
		song, ok := l.songs[songId]
		if !ok {
			return nil, fmt.Errorf("playlist %d: %w: %d", playlistId, apimodel.ErrUnknownSong, songId)
		}
		songs = append(songs, song.Clone())
	}
	return songs, nil
}

// SelectSong sets the current song index of a playlist, nil clears it.
func (l *Library) SelectSong(playlistId apimodel.PlaylistId, index *int64) error {
	l.lock.Lock()
	defer l.lock.Unlock()

	playlist, ok := l.playlists[playlistId]
	if !ok {
		return fmt.Errorf("%w: %d", apimodel.ErrUnknownPlaylist, playlistId)
	}
	playlist = playlist.Clone()
	playlist.CurrentSongIndex = nil
	if index != nil {
		playlist.CurrentSongIndex = lo.ToPtr(*index)
	}
	if err := playlist.Validate(); err != nil {
		return err
	}
	l.playlists[playlistId] = playlist

	return nil
}

// endregion

// region Servers

// AddServer inserts a server, keeping the list sorted. Adding the exact same
// server twice is a no-op; reusing a name for another address is refused.
func (l *Library) AddServer(name string, ip string) error {
	l.lock.Lock()
	defer l.lock.Unlock()

	server, err := apimodel.NewServer(name, ip)
	if err != nil {
		logrus.Errorf("Failed to add server! Reason: %v", err)
		return err
	}
	return l.insertServer(server)
}

func (l *Library) insertServer(server apimodel.Server) error {
	pos, found := slices.BinarySearchFunc(l.servers, server, apimodel.Server.Compare)
	if found {
		logrus.Debugf("Server %s (%s) already known", server.Name, server.Ip)
		return nil
	}
	if l.serverIndex(server.Name) >= 0 {
		return &apimodel.FieldError{Entity: "server", Field: "name", Err: fmt.Errorf("%w: %s", apimodel.ErrDuplicate, server.Name)}
	}
	l.servers = slices.Insert(l.servers, pos, server)
	logrus.Debugf("Add server %s (%s)", server.Name, server.Ip)
	return nil
}

// ModifyServer replaces the server named oldName.
func (l *Library) ModifyServer(oldName string, name string, ip string) error {
	l.lock.Lock()
	defer l.lock.Unlock()

	server, err := apimodel.NewServer(name, ip)
	if err != nil {
		logrus.Errorf("Failed to modify server! Reason: %v", err)
		return err
	}
	index := l.serverIndex(oldName)
	if index < 0 {
		return fmt.Errorf("%w: %s", apimodel.ErrUnknownServer, oldName)
	}
	if other := l.serverIndex(name); other >= 0 && other != index {
		return &apimodel.FieldError{Entity: "server", Field: "name", Err: fmt.Errorf("%w: %s", apimodel.ErrDuplicate, name)}
	}
	l.servers[index] = server
	slices.SortFunc(l.servers, apimodel.Server.Compare)
	logrus.Debugf("Modify server %s: %s (%s)", oldName, server.Name, server.Ip)

	return nil
}

func (l *Library) RemoveServer(name string) error {
	l.lock.Lock()
	defer l.lock.Unlock()

	index := l.serverIndex(name)
	if index < 0 {
		logrus.Warnf("No such server found: %s", name)
		return fmt.Errorf("%w: %s", apimodel.ErrUnknownServer, name)
	}
	l.servers = slices.Delete(l.servers, index, index+1)
	logrus.Debugf("Remove server %s", name)

	return nil
}

func (l *Library) serverIndex(name string) int {
	return slices.IndexFunc(l.servers, func(s apimodel.Server) bool {
		return s.Name == name
	})
}

func (l *Library) Servers() []apimodel.Server {
	l.lock.RLock()
	defer l.lock.RUnlock()

	return slices.Clone(l.servers)
}

// endregion

// region Queue

// Enqueue appends an entry to the play queue. The songs it refers to must be
// in the library.
func (l *Library) Enqueue(entry apimodel.QueueEntry) error {
	l.lock.Lock()
	defer l.lock.Unlock()

	return l.enqueue(entry)
}

func (l *Library) enqueue(entry apimodel.QueueEntry) error {
	if err := l.checkEntry(entry); err != nil {
		return err
	}
	l.queue = append(l.queue, entry.Clone())
	logrus.Debugf("Enqueue %s", entry)
	return nil
}

func (l *Library) Queue() []apimodel.QueueEntry {
	l.lock.RLock()
	defer l.lock.RUnlock()

	return l.queueList()
}

func (l *Library) queueList() []apimodel.QueueEntry {
	return lo.Map(l.queue, func(e apimodel.QueueEntry, _ int) apimodel.QueueEntry {
		return e.Clone()
	})
}

func (l *Library) ClearQueue() {
	l.lock.Lock()
	defer l.lock.Unlock()

	l.queue = nil
}

// endregion
