package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// PeerMetadata replaces the dynamic "metadata bag" the original system
// carried as a free-form JSON blob with an explicit, typed column.
// Unknown keys seen on read are not preserved (there are none left to
// preserve — the bag has exactly these two flags).
type PeerMetadata struct {
	NeedsConfigRefresh bool `json:"needs_config_refresh"`
	RouteAllTraffic    bool `json:"route_all_traffic"`
}

// Scan implements sql.Scanner so gorm can store PeerMetadata as a JSON column.
func (m *PeerMetadata) Scan(value interface{}) error {
	if value == nil {
		*m = PeerMetadata{}
		return nil
	}
	var raw []byte
	switch v := value.(type) {
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("peer metadata: unsupported scan type %T", value)
	}
	if len(raw) == 0 {
		*m = PeerMetadata{}
		return nil
	}
	return json.Unmarshal(raw, m)
}

// Value implements driver.Valuer.
func (m PeerMetadata) Value() (driver.Value, error) {
	b, err := json.Marshal(m)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}
