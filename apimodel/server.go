package apimodel

import (
	"cmp"
	"encoding/json"
	"fmt"
	"gopkg.in/yaml.v3"
	"net/netip"
	"strings"
)

// Server is a named network endpoint. Ip holds the textual address.
type Server struct {
	Name string `json:"name" yaml:"name"`
	Ip   string `json:"ip" yaml:"ip"`
}

const serverEntity = "server"

func NewServer(name string, ip string) (Server, error) {
	server := Server{
		Name: name,
		Ip:   strings.TrimSpace(ip),
	}
	if err := server.Validate(); err != nil {
		return Server{}, err
	}
	return server, nil
}

func (s Server) Validate() error {
	if s.Name == "" {
		return fieldError(serverEntity, "name", ErrEmptyField)
	}
	if _, err := s.Addr(); err != nil {
		return err
	}
	return nil
}

// Addr parses Ip as an IPv4 or IPv6 address.
func (s Server) Addr() (netip.Addr, error) {
	if s.Ip == "" {
		return netip.Addr{}, fieldError(serverEntity, "ip", ErrEmptyField)
	}
	addr, err := netip.ParseAddr(s.Ip)
	if err != nil {
		return netip.Addr{}, fieldError(serverEntity, "ip", fmt.Errorf("%w: %q", ErrInvalidAddress, s.Ip))
	}
	return addr, nil
}

// Compare orders servers by name, then by ip.
func (s Server) Compare(other Server) int {
	if c := cmp.Compare(s.Name, other.Name); c != 0 {
		return c
	}
	return cmp.Compare(s.Ip, other.Ip)
}

type serverAlias Server

func (s *Server) UnmarshalJSON(data []byte) error {
	keys, err := jsonKeys(serverEntity, data)
	if err != nil {
		return err
	}
	if err := keys.require(serverEntity, "name", "ip"); err != nil {
		return err
	}
	var alias serverAlias
	if err := json.Unmarshal(data, &alias); err != nil {
		return fmt.Errorf("decode %s: %w", serverEntity, err)
	}
	*s = Server(alias)
	return nil
}

func (s *Server) UnmarshalYAML(value *yaml.Node) error {
	keys, err := yamlKeys(serverEntity, value)
	if err != nil {
		return err
	}
	if err := keys.require(serverEntity, "name", "ip"); err != nil {
		return err
	}
	var alias serverAlias
	if err := value.Decode(&alias); err != nil {
		return fmt.Errorf("decode %s: %w", serverEntity, err)
	}
	*s = Server(alias)
	return nil
}
