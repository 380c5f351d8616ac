package main

import (
	"errors"
	"fmt"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jypelle/boberplayer/apimodel"
	"github.com/jypelle/boberplayer/internal/catalog"
	"github.com/jypelle/boberplayer/internal/codec"
	"github.com/jypelle/boberplayer/internal/config"
	"github.com/sirupsen/logrus"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

type CliApp struct {
	*config.Config
	out io.Writer
}

func NewCliApp(cfg *config.Config, out io.Writer) *CliApp {
	return &CliApp{
		Config: cfg,
		out:    out,
	}
}

func (c *CliApp) libraryFilename(filename string) string {
	if filename == "" {
		return c.CompleteLibraryFilename()
	}
	return filename
}

func readDocument(filename string) (catalog.Document, error) {
	var doc catalog.Document

	format, err := codec.FormatFromFilename(filename)
	if err != nil {
		return doc, err
	}
	file, err := os.Open(filename)
	if err != nil {
		return doc, err
	}
	defer file.Close()

	if err = codec.Decode(file, format, &doc); err != nil {
		return doc, fmt.Errorf("unable to read %s: %w", filename, err)
	}
	return doc, nil
}

// loadLibrary reads and checks a library document, logging every problem found.
func (c *CliApp) loadLibrary(filename string) (*catalog.Library, error) {
	filename = c.libraryFilename(filename)
	logrus.Debugf("Read library %s", filename)

	doc, err := readDocument(filename)
	if err != nil {
		logrus.Error(err)
		return nil, err
	}

	library, err := catalog.FromDocument(doc)
	if err != nil {
		for _, line := range strings.Split(err.Error(), "\n") {
			logrus.Errorf("%s: %s", filename, line)
		}
		return library, err
	}
	return library, nil
}

func (c *CliApp) Check(filename string) error {
	library, err := c.loadLibrary(filename)
	if err != nil {
		return err
	}
	if err = library.Check(); err != nil {
		logrus.Error(err)
		return err
	}
	fmt.Fprintf(c.out, "%s: ok (%d songs, %d playlists, %d servers, %d queue entries)\n",
		c.libraryFilename(filename), len(library.Songs()), len(library.Playlists()), len(library.Servers()), len(library.Queue()))
	return nil
}

// List renders the library as tables. Invalid records are reported and skipped.
func (c *CliApp) List(filename string) error {
	library, err := c.loadLibrary(filename)
	if library == nil {
		return err
	}

	songTable := c.newTable("Songs", table.Row{"Id", "Name", "Path", "Album", "Author"})
	for _, song := range library.Songs() {
		songTable.AppendRow(table.Row{song.Id, song.Name, song.Path, orDash(song.Album), orDash(song.Author)})
	}
	songTable.Render()

	playlistTable := c.newTable("Playlists", table.Row{"Id", "Name", "Description", "Current", "Songs"})
	for _, playlist := range library.Playlists() {
		current := "-"
		if songId, ok := playlist.CurrentSong(); ok {
			current = fmt.Sprintf("#%d (song %d)", *playlist.CurrentSongIndex, songId)
		}
		playlistTable.AppendRow(table.Row{playlist.Id, playlist.Name, orDash(playlist.Desc), current, len(playlist.Songs)})
	}
	playlistTable.Render()

	serverTable := c.newTable("Servers", table.Row{"Name", "Ip"})
	for _, server := range library.Servers() {
		serverTable.AppendRow(table.Row{server.Name, server.Ip})
	}
	serverTable.Render()

	queueTable := c.newTable("Queue", table.Row{"#", "Kind", "Entry"})
	for i, entry := range library.Queue() {
		queueTable.AppendRow(table.Row{i, entry.Kind(), entry.String()})
	}
	queueTable.Render()

	return err
}

func (c *CliApp) newTable(title string, header table.Row) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(c.out)
	t.SetStyle(table.StyleLight)
	t.SetTitle(title)
	t.AppendHeader(header)
	return t
}

// Convert re-encodes a valid library document. Legacy song identifier keys
// are written back as "id".
func (c *CliApp) Convert(input string, output string) error {
	library, err := c.loadLibrary(input)
	if err != nil {
		return err
	}

	if output == "" {
		format, err := c.OutputFormat()
		if err != nil {
			logrus.Error(err)
			return err
		}
		return codec.Encode(c.out, format, library.Document())
	}

	if err = writeDocument(output, library.Document()); err != nil {
		logrus.Errorf("Unable to write %s: %v", output, err)
		return err
	}
	logrus.Infof("Library written to %s", output)
	return nil
}

// writeDocument replaces filename through a temporary file of the same folder,
// the previous content stays in place when encoding fails.
func writeDocument(filename string, doc catalog.Document) error {
	format, err := codec.FormatFromFilename(filename)
	if err != nil {
		return err
	}
	file, err := os.CreateTemp(filepath.Dir(filename), "."+filepath.Base(filename)+".*")
	if err != nil {
		return err
	}
	err = codec.Encode(file, format, doc)
	if closeErr := file.Close(); err == nil {
		err = closeErr
	}
	if err == nil {
		err = os.Rename(file.Name(), filename)
	}
	if err != nil {
		return errors.Join(err, os.Remove(file.Name()))
	}
	return nil
}

// update applies change to a library document and writes it back. A missing
// document starts as an empty library.
func (c *CliApp) update(filename string, change func(library *catalog.Library) error) error {
	filename = c.libraryFilename(filename)

	var library *catalog.Library
	if _, err := os.Stat(filename); errors.Is(err, fs.ErrNotExist) {
		logrus.Infof("Create library %s", filename)
		library = catalog.NewLibrary()
	} else {
		if library, err = c.loadLibrary(filename); err != nil {
			return err
		}
	}

	if err := change(library); err != nil {
		logrus.Error(err)
		return err
	}
	if err := writeDocument(filename, library.Document()); err != nil {
		logrus.Errorf("Unable to write %s: %v", filename, err)
		return err
	}
	return nil
}

func (c *CliApp) AddSong(filename string, name string, path string, album *string, author *string) error {
	return c.update(filename, func(library *catalog.Library) error {
		song, err := library.AddSong(name, path, album, author)
		if err != nil {
			return err
		}
		fmt.Fprintf(c.out, "song %d added\n", song.Id)
		return nil
	})
}

func (c *CliApp) AddPlaylist(filename string, name string, desc *string) error {
	return c.update(filename, func(library *catalog.Library) error {
		playlist, err := library.AddPlaylist(name, desc)
		if err != nil {
			return err
		}
		fmt.Fprintf(c.out, "playlist %d added\n", playlist.Id)
		return nil
	})
}

func (c *CliApp) AddSongToPlaylist(filename string, playlistId apimodel.PlaylistId, songId apimodel.SongId) error {
	return c.update(filename, func(library *catalog.Library) error {
		return library.AddSongToPlaylist(songId, playlistId)
	})
}

func (c *CliApp) AddServer(filename string, name string, ip string) error {
	return c.update(filename, func(library *catalog.Library) error {
		return library.AddServer(name, ip)
	})
}

func (c *CliApp) ModifyServer(filename string, oldName string, name string, ip string) error {
	return c.update(filename, func(library *catalog.Library) error {
		return library.ModifyServer(oldName, name, ip)
	})
}

func (c *CliApp) RemoveServer(filename string, name string) error {
	return c.update(filename, func(library *catalog.Library) error {
		return library.RemoveServer(name)
	})
}

func orDash(s *string) string {
	if s == nil {
		return "-"
	}
	return *s
}
