package vdba

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/arloliu/vdba/types"
)

func TestConfigWithDefaults(t *testing.T) {
	cfg := (&Config{Database: "odba"}).WithDefaults()

	require.Equal(t, Hosts{"localhost"}, cfg.Hosts)
	require.Equal(t, 9042, cfg.Port)
	require.Equal(t, "quorum", cfg.ReadConsistency)
	require.Equal(t, "quorum", cfg.WriteConsistency)
	require.Equal(t, DefaultTimeout, cfg.Timeout)
	require.Equal(t, DefaultConnectTimeout, cfg.ConnectTimeout)
	require.NoError(t, cfg.Validate())
}

func TestConfigWithDefaultsKeepsExplicitValues(t *testing.T) {
	orig := &Config{
		Hosts:            Hosts{" db1 ", "", "db2"},
		Port:             19042,
		Database:         "odba",
		ReadConsistency:  "localOne",
		WriteConsistency: "eachQuorum",
		Timeout:          time.Second,
	}
	cfg := orig.WithDefaults()

	require.Equal(t, Hosts{"db1", "db2"}, cfg.Hosts)
	require.Equal(t, 19042, cfg.Port)
	require.Equal(t, "localOne", cfg.ReadConsistency)
	require.Equal(t, "eachQuorum", cfg.WriteConsistency)
	require.Equal(t, time.Second, cfg.Timeout)

	// The original is untouched.
	require.Equal(t, Hosts{" db1 ", "", "db2"}, orig.Hosts)
}

func TestConfigValidate(t *testing.T) {
	t.Run("missing database", func(t *testing.T) {
		err := (&Config{}).WithDefaults().Validate()
		require.ErrorIs(t, err, types.ErrDatabaseExpected)
		require.ErrorIs(t, err, types.ErrConfiguration)
	})

	t.Run("unknown read consistency", func(t *testing.T) {
		err := (&Config{Database: "odba", ReadConsistency: "foo"}).WithDefaults().Validate()
		require.ErrorIs(t, err, types.ErrUnknownConsistency)

		var target *types.UnknownConsistencyError
		require.ErrorAs(t, err, &target)
		require.Equal(t, "foo", target.Name)
	})

	t.Run("unknown write consistency", func(t *testing.T) {
		err := (&Config{Database: "odba", WriteConsistency: "serial"}).WithDefaults().Validate()
		require.ErrorIs(t, err, types.ErrUnknownConsistency)
	})

	t.Run("case folded consistency", func(t *testing.T) {
		err := (&Config{Database: "odba", WriteConsistency: "EACHQUORUM"}).WithDefaults().Validate()
		require.NoError(t, err)
	})

	t.Run("port out of range", func(t *testing.T) {
		err := (&Config{Database: "odba", Port: 70000}).WithDefaults().Validate()
		require.ErrorIs(t, err, types.ErrConfiguration)
	})
}

func TestParseConfigHostsScalar(t *testing.T) {
	cfg, err := ParseConfig([]byte(`
hosts: db1.example.com
database: odba
`))
	require.NoError(t, err)
	require.Equal(t, Hosts{"db1.example.com"}, cfg.Hosts)
	require.Equal(t, "odba", cfg.Database)
}

func TestParseConfigFull(t *testing.T) {
	cfg, err := ParseConfig([]byte(`
hosts: [10.0.0.1, 10.0.0.2]
port: 19042
database: odba
username: cassandra
password: secret
readConsistency: localOne
writeConsistency: localQuorum
timeout: 2s
connectTimeout: 5s
protoVersion: 4
`))
	require.NoError(t, err)
	require.Equal(t, &Config{
		Hosts:            Hosts{"10.0.0.1", "10.0.0.2"},
		Port:             19042,
		Database:         "odba",
		Username:         "cassandra",
		Password:         "secret",
		ReadConsistency:  "localOne",
		WriteConsistency: "localQuorum",
		Timeout:          2 * time.Second,
		ConnectTimeout:   5 * time.Second,
		ProtoVersion:     4,
	}, cfg)
}

func TestParseConfigRejectsUnknownKeys(t *testing.T) {
	_, err := ParseConfig([]byte("database: odba\nkeyspace: other\n"))
	require.ErrorIs(t, err, types.ErrConfiguration)
}

func TestParseConfigRejectsMappingHosts(t *testing.T) {
	_, err := ParseConfig([]byte("database: odba\nhosts: {a: b}\n"))
	require.Error(t, err)
}

func TestTableOptionsKeysScalarOrList(t *testing.T) {
	var opts TableOptions
	require.NoError(t, yaml.Unmarshal([]byte("partitionKey: id\n"), &opts))
	require.Equal(t, Names{"id"}, opts.PartitionKey)
	require.Empty(t, opts.ClusteringKey)

	opts = TableOptions{}
	doc := "ifNotExists: true\npartitionKey: [tenant, day]\nclusteringKey: ts\n"
	require.NoError(t, yaml.Unmarshal([]byte(doc), &opts))
	require.True(t, opts.IfNotExists)
	require.Equal(t, Names{"tenant", "day"}, opts.PartitionKey)
	require.Equal(t, Names{"ts"}, opts.ClusteringKey)

	opts = TableOptions{}
	require.Error(t, yaml.Unmarshal([]byte("partitionKey: {a: b}\n"), &opts))
}

func TestParseConfigEmpty(t *testing.T) {
	cfg, err := ParseConfig(nil)
	require.NoError(t, err)
	require.Equal(t, &Config{}, cfg)
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vdba.yaml")
	require.NoError(t, os.WriteFile(path, []byte("database: odba\nport: 9042\n"), 0o600))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	require.Equal(t, "odba", cfg.Database)
	require.Equal(t, 9042, cfg.Port)

	_, err = LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}
