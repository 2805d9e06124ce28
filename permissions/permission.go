package permissions

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
)

//go:embed permissions.json
var permissionsData []byte

var ErrInvalidEndpoint = errors.New("invalid endpoint permission")

// Permission lists what an endpoint requires. Skip marks it public, otherwise the caller's role needs any one of
// Permissions. An authenticated endpoint with no Permissions is open to every signed in user.
type Permission struct {
	Permissions []string `json:"permissions"`
	Path        string   `json:"path"`
	Method      string   `json:"method"`
	Skip        bool     `json:"skip"`
}

// PermissionData is the route table. Skip on the table itself disables RBAC entirely.
type PermissionData struct {
	Endpoints []Permission `json:"endpoints"`
	Skip      bool         `json:"skip"`

	index map[string]int
}

func routeKey(path, method string) string {
	if path != "/" {
		path = strings.TrimSuffix(path, "/")
	}

	return strings.ToUpper(method) + " " + path
}

// FindPermissions looks up the entry for a chi route pattern such as /v1/orders/{id}. Unknown routes yield the
// zero Permission.
func (r *PermissionData) FindPermissions(path, method string) Permission {
	if idx, ok := r.index[routeKey(path, method)]; ok {
		return r.Endpoints[idx]
	}

	return Permission{}
}

// Parse decodes and indexes a route table. A route listed twice, or public yet requiring permissions, is rejected.
func Parse(data []byte) (*PermissionData, error) {
	var table PermissionData

	if err := json.Unmarshal(data, &table); err != nil {
		return nil, fmt.Errorf("decode permissions: %w", err)
	}

	table.index = make(map[string]int, len(table.Endpoints))

	for idx, endpoint := range table.Endpoints {
		key := routeKey(endpoint.Path, endpoint.Method)

		switch {
		case endpoint.Path == "" || endpoint.Method == "":
			return nil, fmt.Errorf("%w: entry %d needs a path and a method", ErrInvalidEndpoint, idx)
		case endpoint.Skip && len(endpoint.Permissions) > 0:
			return nil, fmt.Errorf("%w: %s is public but lists permissions", ErrInvalidEndpoint, key)
		}

		if _, duplicate := table.index[key]; duplicate {
			return nil, fmt.Errorf("%w: %s is listed twice", ErrInvalidEndpoint, key)
		}

		table.index[key] = idx
	}

	return &table, nil
}

// Get returns the embedded route table, or nil when it cannot be parsed. The RBAC middleware denies every
// protected route when the table is nil.
func Get() *PermissionData {
	table, err := Parse(permissionsData)
	if err != nil {
		log.Error().Err(err).Msg("failed to load embedded permissions")

		return nil
	}

	log.Info().Int("endpoints", len(table.Endpoints)).Msg("loaded embedded permissions")

	return table
}
