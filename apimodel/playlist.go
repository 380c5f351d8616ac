package apimodel

import (
	"encoding/json"
	"fmt"
	"github.com/samber/lo"
	"gopkg.in/yaml.v3"
	"slices"
)

type PlaylistId int64

// Playlist is an ordered list of song identifiers. CurrentSongIndex is nil
// when no song is selected.
type Playlist struct {
	Id               PlaylistId `json:"id" yaml:"id"`
	Name             string     `json:"name" yaml:"name"`
	Desc             *string    `json:"desc" yaml:"desc"`
	CurrentSongIndex *int64     `json:"current_song_index" yaml:"current_song_index"`
	Songs            []SongId   `json:"songs" yaml:"songs"`
}

const playlistEntity = "playlist"

func NewPlaylist(id PlaylistId, name string, desc *string) (Playlist, error) {
	playlist := Playlist{
		Id:    id,
		Name:  name,
		Desc:  desc,
		Songs: []SongId{},
	}
	if err := playlist.Validate(); err != nil {
		return Playlist{}, err
	}
	return playlist, nil
}

func (p Playlist) Validate() error {
	if p.Id < 0 {
		return fieldError(playlistEntity, "id", fmt.Errorf("%w: %d", ErrInvalidId, p.Id))
	}
	if p.Name == "" {
		return fieldError(playlistEntity, "name", ErrEmptyField)
	}
	if p.CurrentSongIndex != nil {
		if err := checkIndex(*p.CurrentSongIndex, len(p.Songs)); err != nil {
			return fieldError(playlistEntity, "current_song_index", err)
		}
	}
	return nil
}

// Clone returns a copy that shares no memory with p.
func (p Playlist) Clone() Playlist {
	if p.Desc != nil {
		p.Desc = lo.ToPtr(*p.Desc)
	}
	if p.CurrentSongIndex != nil {
		p.CurrentSongIndex = lo.ToPtr(*p.CurrentSongIndex)
	}
	p.Songs = slices.Clone(p.Songs)
	return p
}

// CurrentSong returns the selected song, if any.
func (p Playlist) CurrentSong() (SongId, bool) {
	if p.CurrentSongIndex == nil {
		return 0, false
	}
	index := *p.CurrentSongIndex
	if index < 0 || index >= int64(len(p.Songs)) {
		return 0, false
	}
	return p.Songs[index], true
}

func checkIndex(index int64, length int) error {
	if index < 0 || index >= int64(length) {
		return fmt.Errorf("%w: %d not in [0, %d)", ErrIndexOutOfRange, index, length)
	}
	return nil
}

type playlistAlias Playlist

// normalized never carries a nil song list, so songs encode as [] rather than null.
func (p Playlist) normalized() Playlist {
	if p.Songs == nil {
		p.Songs = []SongId{}
	}
	return p
}

func (p Playlist) MarshalJSON() ([]byte, error) {
	return json.Marshal(playlistAlias(p.normalized()))
}

func (p Playlist) MarshalYAML() (interface{}, error) {
	return playlistAlias(p.normalized()), nil
}

func (p *Playlist) UnmarshalJSON(data []byte) error {
	keys, err := jsonKeys(playlistEntity, data)
	if err != nil {
		return err
	}
	if err := keys.require(playlistEntity, "id", "name", "songs"); err != nil {
		return err
	}
	var alias playlistAlias
	if err := json.Unmarshal(data, &alias); err != nil {
		return fmt.Errorf("decode %s: %w", playlistEntity, err)
	}
	*p = Playlist(alias).normalized()
	return nil
}

func (p *Playlist) UnmarshalYAML(value *yaml.Node) error {
	keys, err := yamlKeys(playlistEntity, value)
	if err != nil {
		return err
	}
	if err := keys.require(playlistEntity, "id", "name", "songs"); err != nil {
		return err
	}
	var alias playlistAlias
	if err := value.Decode(&alias); err != nil {
		return fmt.Errorf("decode %s: %w", playlistEntity, err)
	}
	*p = Playlist(alias).normalized()
	return nil
}
