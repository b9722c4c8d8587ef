package cassandra

import (
	"context"
	"errors"

	"github.com/arloliu/vdba"
	"github.com/arloliu/vdba/types"
)

// Server describes the cluster a connection talks to.
type Server struct {
	conn *Connection
	host string
	port int
}

var _ vdba.Server = (*Server)(nil)

const versionQuery = "SELECT release_version FROM system.local"

var errNoLocalRow = errors.New("vdba: system.local returned no row")

func newServer(conn *Connection) *Server {
	return &Server{
		conn: conn,
		host: conn.config.Hosts[0],
		port: conn.config.Port,
	}
}

// Host returns the first contact point.
func (s *Server) Host() string {
	return s.host
}

// Port returns the native protocol port.
func (s *Server) Port() int {
	return s.port
}

// Version returns the release version of the coordinator that answers.
//
// Returns:
//   - string: e.g. "4.1.5"
//   - error: types.ErrNotConnected or *types.ExecutionError
func (s *Server) Version(ctx context.Context) (string, error) {
	row, err := s.conn.newEngine().findOne(ctx, versionQuery)
	if err != nil {
		return "", err
	}
	if row == nil {
		return "", &types.ExecutionError{
			Statement: versionQuery,
			Cause:     errNoLocalRow,
		}
	}

	return stringValue(row["release_version"]), nil
}
