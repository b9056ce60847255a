// Package identity assigns the node a stable local instance identifier,
// used to tag the node's log lines.
package identity

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// NodeID is the node's local instance identifier. It is generated once and
// persisted under dataDir; subsequent calls to Load return the same value.
type NodeID struct {
	UUID uuid.UUID `json:"uuid"`
}

func (id NodeID) String() string {
	return id.UUID.String()
}

// Load reads the node identity from dataDir/identity.json, generating and
// persisting a new one if none exists yet.
func Load(dataDir string) (NodeID, error) {
	path := filepath.Join(dataDir, "identity.json")

	data, err := os.ReadFile(path)
	if err == nil {
		var id NodeID
		if err := json.Unmarshal(data, &id); err != nil {
			return NodeID{}, err
		}
		return id, nil
	}
	if !os.IsNotExist(err) {
		return NodeID{}, err
	}

	id := NodeID{UUID: uuid.New()}
	data, err = json.Marshal(id)
	if err != nil {
		return NodeID{}, err
	}
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return NodeID{}, err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return NodeID{}, err
	}
	return id, nil
}
