package catalog

import (
	"fmt"
	"github.com/jypelle/boberplayer/apimodel"
	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"sync"
	"testing"
)

func TestLibrarySongs(t *testing.T) {
	library := NewLibrary()

	first, err := library.AddSong("Track A", "/music/a.mp3", nil, lo.ToPtr("Artist X"))
	require.NoError(t, err)
	assert.Equal(t, apimodel.SongId(0), first.Id)

	second, err := library.AddSong("Track B", "/music/b.mp3", lo.ToPtr("Album"), nil)
	require.NoError(t, err)
	assert.Equal(t, apimodel.SongId(1), second.Id)

	require.NoError(t, library.PutSong(apimodel.Song{Id: 10, Name: "Track C", Path: "/music/c.mp3"}))
	third, err := library.AddSong("Track D", "/music/d.mp3", nil, nil)
	require.NoError(t, err)
	assert.Equal(t, apimodel.SongId(11), third.Id)

	err = library.PutSong(apimodel.Song{Id: 10, Name: "Other", Path: "/other.mp3"})
	assert.ErrorIs(t, err, apimodel.ErrDuplicate)

	_, err = library.AddSong("", "/music/e.mp3", nil, nil)
	assert.ErrorIs(t, err, apimodel.ErrEmptyField)

	song, ok := library.Song(1)
	assert.True(t, ok)
	assert.Equal(t, second, song)

	_, ok = library.Song(99)
	assert.False(t, ok)

	ids := lo.Map(library.Songs(), func(s apimodel.Song, _ int) apimodel.SongId { return s.Id })
	assert.Equal(t, []apimodel.SongId{0, 1, 10, 11}, ids)
}

func TestLibraryPlaylists(t *testing.T) {
	library := NewLibrary()
	song, err := library.AddSong("Track A", "/music/a.mp3", nil, nil)
	require.NoError(t, err)

	mix, err := library.AddPlaylist("Mix", nil)
	require.NoError(t, err)
	assert.Equal(t, apimodel.PlaylistId(0), mix.Id)
	assert.Empty(t, mix.Songs)
	assert.Nil(t, mix.CurrentSongIndex)

	chill, err := library.AddPlaylist("Chill", lo.ToPtr("slow songs"))
	require.NoError(t, err)
	assert.Equal(t, apimodel.PlaylistId(1), chill.Id)

	t.Run("add song", func(t *testing.T) {
		require.NoError(t, library.AddSongToPlaylist(song.Id, mix.Id))
		require.NoError(t, library.AddSongToPlaylist(song.Id, mix.Id))

		songs, err := library.PlaylistSongs(mix.Id)
		require.NoError(t, err)
		assert.Equal(t, []apimodel.Song{song, song}, songs)
	})

	t.Run("unknown song", func(t *testing.T) {
		err := library.AddSongToPlaylist(42, mix.Id)
		assert.ErrorIs(t, err, apimodel.ErrUnknownSong)
	})

	t.Run("unknown playlist", func(t *testing.T) {
		err := library.AddSongToPlaylist(song.Id, 42)
		assert.ErrorIs(t, err, apimodel.ErrUnknownPlaylist)

		_, err = library.PlaylistSongs(42)
		assert.ErrorIs(t, err, apimodel.ErrUnknownPlaylist)
	})

	t.Run("select song", func(t *testing.T) {
		require.NoError(t, library.SelectSong(mix.Id, lo.ToPtr[int64](1)))
		playlist, ok := library.Playlist(mix.Id)
		require.True(t, ok)
		current, ok := playlist.CurrentSong()
		assert.True(t, ok)
		assert.Equal(t, song.Id, current)

		err := library.SelectSong(mix.Id, lo.ToPtr[int64](2))
		assert.ErrorIs(t, err, apimodel.ErrIndexOutOfRange)

		// A refused selection leaves the previous one in place.
		playlist, _ = library.Playlist(mix.Id)
		assert.Equal(t, int64(1), *playlist.CurrentSongIndex)

		require.NoError(t, library.SelectSong(mix.Id, nil))
		playlist, _ = library.Playlist(mix.Id)
		assert.Nil(t, playlist.CurrentSongIndex)

		assert.ErrorIs(t, library.SelectSong(42, nil), apimodel.ErrUnknownPlaylist)
	})

	t.Run("returned playlists are copies", func(t *testing.T) {
		playlist, ok := library.Playlist(mix.Id)
		require.True(t, ok)
		playlist.Songs[0] = 99

		playlist, _ = library.Playlist(mix.Id)
		assert.Equal(t, song.Id, playlist.Songs[0])
	})

	t.Run("put playlist", func(t *testing.T) {
		err := library.PutPlaylist(apimodel.Playlist{Id: 7, Name: "Dangling", Songs: []apimodel.SongId{song.Id, 5}})
		assert.ErrorIs(t, err, apimodel.ErrUnknownSong)

		err = library.PutPlaylist(apimodel.Playlist{Id: mix.Id, Name: "Again", Songs: []apimodel.SongId{}})
		assert.ErrorIs(t, err, apimodel.ErrDuplicate)

		require.NoError(t, library.PutPlaylist(apimodel.Playlist{Id: 7, Name: "Seven", Songs: []apimodel.SongId{song.Id}}))
		next, err := library.AddPlaylist("Next", nil)
		require.NoError(t, err)
		assert.Equal(t, apimodel.PlaylistId(8), next.Id)
	})

	ids := lo.Map(library.Playlists(), func(p apimodel.Playlist, _ int) apimodel.PlaylistId { return p.Id })
	assert.Equal(t, []apimodel.PlaylistId{0, 1, 7, 8}, ids)
}

func TestLibraryServers(t *testing.T) {
	library := NewLibrary()

	require.NoError(t, library.AddServer("zeta", "10.0.0.9"))
	require.NoError(t, library.AddServer("alpha", "10.0.0.1"))
	require.NoError(t, library.AddServer("mid", "::1"))
	require.NoError(t, library.AddServer("alpha", "10.0.0.1"))

	names := lo.Map(library.Servers(), func(s apimodel.Server, _ int) string { return s.Name })
	assert.Equal(t, []string{"alpha", "mid", "zeta"}, names)

	assert.ErrorIs(t, library.AddServer("alpha", "10.0.0.2"), apimodel.ErrDuplicate)
	assert.ErrorIs(t, library.AddServer("bad", "not-an-ip"), apimodel.ErrInvalidAddress)

	t.Run("modify", func(t *testing.T) {
		require.NoError(t, library.ModifyServer("zeta", "beta", "10.0.0.8"))
		assert.Equal(t, []apimodel.Server{
			{Name: "alpha", Ip: "10.0.0.1"},
			{Name: "beta", Ip: "10.0.0.8"},
			{Name: "mid", Ip: "::1"},
		}, library.Servers())

		require.NoError(t, library.ModifyServer("beta", "beta", "10.0.0.7"))
		assert.ErrorIs(t, library.ModifyServer("nope", "x", "10.0.0.1"), apimodel.ErrUnknownServer)
		assert.ErrorIs(t, library.ModifyServer("beta", "alpha", "10.0.0.1"), apimodel.ErrDuplicate)
		assert.ErrorIs(t, library.ModifyServer("beta", "beta", "bad"), apimodel.ErrInvalidAddress)
	})

	t.Run("remove", func(t *testing.T) {
		require.NoError(t, library.RemoveServer("mid"))
		assert.ErrorIs(t, library.RemoveServer("mid"), apimodel.ErrUnknownServer)
		assert.Len(t, library.Servers(), 2)
	})
}

func TestLibraryQueue(t *testing.T) {
	library := NewLibrary()
	song, err := library.AddSong("Track A", "/music/a.mp3", nil, nil)
	require.NoError(t, err)

	require.NoError(t, library.Enqueue(apimodel.NewSongEntry(song)))
	require.NoError(t, library.Enqueue(apimodel.NewPlaylistQueueEntry(apimodel.PlaylistQueue{
		Playlist: apimodel.Playlist{Id: 1, Name: "Mix", Songs: []apimodel.SongId{song.Id}},
	})))

	err = library.Enqueue(apimodel.NewSongEntry(apimodel.Song{Id: 5, Name: "Ghost", Path: "/ghost.mp3"}))
	assert.ErrorIs(t, err, apimodel.ErrUnknownSong)

	err = library.Enqueue(apimodel.NewSongEntry(apimodel.Song{Id: song.Id, Name: "Track A", Path: "/elsewhere.mp3"}))
	assert.ErrorIs(t, err, apimodel.ErrConflictingField)

	err = library.Enqueue(apimodel.NewPlaylistQueueEntry(apimodel.PlaylistQueue{
		Playlist: apimodel.Playlist{Id: 2, Name: "Dangling", Songs: []apimodel.SongId{8}},
	}))
	assert.ErrorIs(t, err, apimodel.ErrUnknownSong)

	assert.ErrorIs(t, library.Enqueue(apimodel.QueueEntry{}), apimodel.ErrEmptyEntry)

	queue := library.Queue()
	require.Len(t, queue, 2)
	assert.Equal(t, apimodel.SONG_ENTRY, queue[0].Kind())
	assert.Equal(t, apimodel.PLAYLIST_QUEUE_ENTRY, queue[1].Kind())
	assert.NoError(t, library.Check())

	library.ClearQueue()
	assert.Empty(t, library.Queue())
}

func TestLibraryCopies(t *testing.T) {
	library := NewLibrary()
	song, err := library.AddSong("Track A", "/music/a.mp3", nil, lo.ToPtr("Artist X"))
	require.NoError(t, err)

	t.Run("stored playlists keep their own index", func(t *testing.T) {
		index := lo.ToPtr[int64](0)
		songs := []apimodel.SongId{song.Id}
		require.NoError(t, library.PutPlaylist(apimodel.Playlist{Id: 1, Name: "Mix", CurrentSongIndex: index, Songs: songs}))
		*index = 5
		songs[0] = 99

		stored, ok := library.Playlist(1)
		require.True(t, ok)
		assert.NoError(t, stored.Validate())
		assert.Equal(t, []apimodel.SongId{song.Id}, stored.Songs)

		*stored.CurrentSongIndex = 7
		stored, _ = library.Playlist(1)
		assert.Equal(t, int64(0), *stored.CurrentSongIndex)

		*library.Playlists()[0].CurrentSongIndex = 7
		*library.Document().Playlists[0].CurrentSongIndex = 7
		stored, _ = library.Playlist(1)
		assert.NoError(t, stored.Validate())
	})

	t.Run("selected index is copied", func(t *testing.T) {
		index := lo.ToPtr[int64](0)
		require.NoError(t, library.SelectSong(1, index))
		*index = 3
		stored, _ := library.Playlist(1)
		assert.Equal(t, int64(0), *stored.CurrentSongIndex)
	})

	t.Run("returned songs are copies", func(t *testing.T) {
		got, ok := library.Song(song.Id)
		require.True(t, ok)
		*got.Author = "Someone else"
		*library.Songs()[0].Author = "Someone else"

		got, _ = library.Song(song.Id)
		assert.Equal(t, "Artist X", *got.Author)
	})

	t.Run("queued entries keep their own songs", func(t *testing.T) {
		songs := []apimodel.SongId{song.Id}
		require.NoError(t, library.Enqueue(apimodel.NewPlaylistQueueEntry(apimodel.PlaylistQueue{
			Playlist: apimodel.Playlist{Id: 1, Name: "Mix", Songs: songs},
		})))
		songs[0] = 99
		assert.NoError(t, library.Check())

		playlistQueue, ok := library.Queue()[0].PlaylistQueue()
		require.True(t, ok)
		playlistQueue.Playlist.Songs[0] = 99
		assert.NoError(t, library.Check())

		library.ClearQueue()
	})
}

func TestLibraryConcurrentAccess(t *testing.T) {
	library := NewLibrary()
	mix, err := library.AddPlaylist("Mix", nil)
	require.NoError(t, err)

	var wg sync.WaitGroup
	for worker := 0; worker < 4; worker++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 25; i++ {
				song, err := library.AddSong(fmt.Sprintf("Track %d-%d", worker, i), fmt.Sprintf("/music/%d-%d.mp3", worker, i), nil, nil)
				if !assert.NoError(t, err) {
					return
				}
				assert.NoError(t, library.AddSongToPlaylist(song.Id, mix.Id))
				assert.NoError(t, library.SelectSong(mix.Id, lo.ToPtr[int64](0)))
				assert.NoError(t, library.Enqueue(apimodel.NewSongEntry(song)))
				assert.NoError(t, library.AddServer(fmt.Sprintf("server-%d-%d", worker, i), "10.0.0.1"))
			}
		}()
	}
	for reader := 0; reader < 4; reader++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 25; i++ {
				_, err := FromDocument(library.Document())
				assert.NoError(t, err)
				library.Playlists()
				library.Queue()
				library.Songs()
			}
		}()
	}
	wg.Wait()

	assert.NoError(t, library.Check())
	assert.Len(t, library.Songs(), 100)
	assert.Len(t, library.Queue(), 100)
	songs, err := library.PlaylistSongs(mix.Id)
	require.NoError(t, err)
	assert.Len(t, songs, 100)

	reloaded, err := FromDocument(library.Document())
	require.NoError(t, err)
	assert.Equal(t, library.Document(), reloaded.Document())
}
