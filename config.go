package vdba

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/arloliu/vdba/types"
)

// Default connection settings.
const (
	DefaultHost           = "localhost"
	DefaultPort           = 9042
	DefaultTimeout        = 10 * time.Second
	DefaultConnectTimeout = 10 * time.Second
)

// Hosts is a list of contact points.
//
// When decoded from YAML it accepts either a single scalar or a sequence:
//
//	hosts: db1.example.com
//	hosts: [db1.example.com, db2.example.com]
type Hosts []string

// UnmarshalYAML implements yaml.Unmarshaler.
func (h *Hosts) UnmarshalYAML(value *yaml.Node) error {
	hosts, err := decodeNames(value, "hosts")
	if err != nil {
		return err
	}
	*h = hosts

	return nil
}

// Names is an ordered list of identifiers, such as key columns.
//
// Like Hosts, it decodes from a single YAML scalar or a sequence:
//
//	partitionKey: id
//	partitionKey: [tenant, day]
type Names []string

// UnmarshalYAML implements yaml.Unmarshaler.
func (n *Names) UnmarshalYAML(value *yaml.Node) error {
	names, err := decodeNames(value, "names")
	if err != nil {
		return err
	}
	*n = names

	return nil
}

func decodeNames(value *yaml.Node, field string) ([]string, error) {
	switch value.Kind {
	case yaml.ScalarNode:
		var name string
		if err := value.Decode(&name); err != nil {
			return nil, err
		}

		return []string{name}, nil
	case yaml.SequenceNode:
		var names []string
		if err := value.Decode(&names); err != nil {
			return nil, err
		}

		return names, nil
	default:
		return nil, fmt.Errorf("vdba: %s must be a string or a list of strings (line %d)", field, value.Line)
	}
}

// Config describes how to reach a database.
//
// Only Database is required. Call WithDefaults to fill in the rest; drivers
// do this themselves in CreateConnection.
type Config struct {
	// Hosts are the contact points. Default: ["localhost"].
	Hosts Hosts `yaml:"hosts"`

	// Port is the native protocol port. Default: 9042.
	Port int `yaml:"port"`

	// Database is the database (keyspace) to use. Required.
	Database string `yaml:"database"`

	// Username and Password enable authentication when Username is set.
	Username string `yaml:"username"`
	Password string `yaml:"password"`

	// ReadConsistency is the symbolic consistency for reads. Default: "quorum".
	ReadConsistency string `yaml:"readConsistency"`

	// WriteConsistency is the symbolic consistency for writes. Default: "quorum".
	WriteConsistency string `yaml:"writeConsistency"`

	// Timeout bounds each request. Default: 10s.
	Timeout time.Duration `yaml:"timeout"`

	// ConnectTimeout bounds the initial connection. Default: 10s.
	ConnectTimeout time.Duration `yaml:"connectTimeout"`

	// ProtoVersion pins the native protocol version. Zero negotiates.
	ProtoVersion int `yaml:"protoVersion"`
}

// WithDefaults returns a copy of c with empty fields set to their defaults.
//
// Blank host entries are dropped; an empty host list becomes ["localhost"].
// Consistency names are trimmed but not validated; see Validate.
//
// Returns:
//   - *Config: A normalized copy; c is not modified
func (c *Config) WithDefaults() *Config {
	out := *c

	out.Hosts = make(Hosts, 0, len(c.Hosts))
	for _, host := range c.Hosts {
		if host = strings.TrimSpace(host); host != "" {
			out.Hosts = append(out.Hosts, host)
		}
	}
	if len(out.Hosts) == 0 {
		out.Hosts = Hosts{DefaultHost}
	}

	if out.Port == 0 {
		out.Port = DefaultPort
	}
	if out.Timeout == 0 {
		out.Timeout = DefaultTimeout
	}
	if out.ConnectTimeout == 0 {
		out.ConnectTimeout = DefaultConnectTimeout
	}

	out.ReadConsistency = strings.TrimSpace(out.ReadConsistency)
	if out.ReadConsistency == "" {
		out.ReadConsistency = types.DefaultConsistency
	}
	out.WriteConsistency = strings.TrimSpace(out.WriteConsistency)
	if out.WriteConsistency == "" {
		out.WriteConsistency = types.DefaultConsistency
	}

	return &out
}

// Validate checks that c names a database and that both consistency names resolve.
//
// Validate does not apply defaults: an empty consistency name is rejected.
//
// Returns:
//   - error: *types.ConfigurationError or *types.UnknownConsistencyError, or nil if valid
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Database) == "" {
		return &types.ConfigurationError{Field: "database", Cause: types.ErrDatabaseExpected}
	}
	if c.Port < 0 || c.Port > 65535 {
		return &types.ConfigurationError{
			Field: "port",
			Cause: fmt.Errorf("vdba: port %d out of range", c.Port),
		}
	}
	if _, err := types.ParseConsistency(c.ReadConsistency); err != nil {
		return err
	}
	if _, err := types.ParseConsistency(c.WriteConsistency); err != nil {
		return err
	}

	return nil
}

// ParseConfig decodes a YAML document into a Config.
//
// Unknown keys are rejected so that typos do not silently fall back to defaults.
//
// Parameters:
//   - data: YAML document
//
// Returns:
//   - *Config: The decoded configuration, without defaults applied
//   - error: Decoding error wrapped in *types.ConfigurationError
//
// Example:
//
//	cfg, err := vdba.ParseConfig([]byte(`
//	hosts: [10.0.0.1, 10.0.0.2]
//	database: odba
//	readConsistency: localOne
//	writeConsistency: localQuorum
//	`))
func ParseConfig(data []byte) (*Config, error) {
	var cfg Config

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, &types.ConfigurationError{
			Field: "yaml",
			Cause: fmt.Errorf("vdba: failed to parse config: %w", err),
		}
	}

	return &cfg, nil
}

// LoadConfig reads and decodes a YAML configuration file.
//
// Parameters:
//   - path: Path of the YAML file
//
// Returns:
//   - *Config: The decoded configuration, without defaults applied
//   - error: Read or decoding error
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("vdba: failed to read config %s: %w", path, err)
	}

	return ParseConfig(data)
}
