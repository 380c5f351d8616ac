package apimodel

import (
	"encoding/json"
	"fmt"
	"github.com/samber/lo"
	"gopkg.in/yaml.v3"
)

type SongId int64

// Song is a playable track. Album and Author are nil when the metadata is unknown.
type Song struct {
	Id     SongId  `json:"id" yaml:"id"`
	Name   string  `json:"name" yaml:"name"`
	Path   string  `json:"path" yaml:"path"`
	Album  *string `json:"album" yaml:"album"`
	Author *string `json:"author" yaml:"author"`
}

const songEntity = "song"

// Older documents name the identifier "songid" or "uuid".
var songIdKeys = []string{"id", "songid", "uuid"}

func NewSong(id SongId, name string, path string, album *string, author *string) (Song, error) {
	song := Song{
		Id:     id,
		Name:   name,
		Path:   path,
		Album:  album,
		Author: author,
	}
	if err := song.Validate(); err != nil {
		return Song{}, err
	}
	return song, nil
}

func (s Song) Validate() error {
	if s.Id < 0 {
		return fieldError(songEntity, "id", fmt.Errorf("%w: %d", ErrInvalidId, s.Id))
	}
	if s.Name == "" {
		return fieldError(songEntity, "name", ErrEmptyField)
	}
	if s.Path == "" {
		return fieldError(songEntity, "path", ErrEmptyField)
	}
	return nil
}

// Clone returns a copy that shares no memory with s.
func (s Song) Clone() Song {
	if s.Album != nil {
		s.Album = lo.ToPtr(*s.Album)
	}
	if s.Author != nil {
		s.Author = lo.ToPtr(*s.Author)
	}
	return s
}

type songWire struct {
	Id     *SongId `json:"id" yaml:"id"`
	SongId *SongId `json:"songid" yaml:"songid"`
	Uuid   *SongId `json:"uuid" yaml:"uuid"`
	Name   string  `json:"name" yaml:"name"`
	Path   string  `json:"path" yaml:"path"`
	Album  *string `json:"album" yaml:"album"`
	Author *string `json:"author" yaml:"author"`
}

func (w songWire) song(keys keySet) (Song, error) {
	if !keys.hasAny(songIdKeys...) {
		return Song{}, fieldError(songEntity, "id", ErrMissingField)
	}
	if err := keys.require(songEntity, "name", "path"); err != nil {
		return Song{}, err
	}

	var id *SongId
	for _, candidate := range []*SongId{w.Id, w.SongId, w.Uuid} {
		if candidate == nil {
			continue
		}
		if id != nil && *id != *candidate {
			return Song{}, fieldError(songEntity, "id", fmt.Errorf("%w: %d and %d", ErrConflictingField, *id, *candidate))
		}
		id = candidate
	}
	if id == nil {
		return Song{}, fieldError(songEntity, "id", ErrMissingField)
	}

	return Song{
		Id:     *id,
		Name:   w.Name,
		Path:   w.Path,
		Album:  w.Album,
		Author: w.Author,
	}, nil
}

func (s *Song) UnmarshalJSON(data []byte) error {
	keys, err := jsonKeys(songEntity, data)
	if err != nil {
		return err
	}
	var w songWire
	if err := json.Unmarshal(data, &w); err != nil {
		return fmt.Errorf("decode %s: %w", songEntity, err)
	}
	song, err := w.song(keys)
	if err != nil {
		return err
	}
	*s = song
	return nil
}

func (s *Song) UnmarshalYAML(value *yaml.Node) error {
	keys, err := yamlKeys(songEntity, value)
	if err != nil {
		return err
	}
	var w songWire
	if err := value.Decode(&w); err != nil {
		return fmt.Errorf("decode %s: %w", songEntity, err)
	}
	song, err := w.song(keys)
	if err != nil {
		return err
	}
	*s = song
	return nil
}
