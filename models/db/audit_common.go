package dbmodels

import (
	"database/sql/driver"
	"encoding/json"

	"github.com/pkg/errors"
)

// JSONMap is a jsonb column holding a flat snapshot of values.
type JSONMap map[string]any

func (j JSONMap) Value() (driver.Value, error) {
	valueString, err := json.Marshal(j)
	return string(valueString), err
}

func (j *JSONMap) Scan(value any) error {
	var raw []byte
	switch v := value.(type) {
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	case nil:
		*j = nil
		return nil
	default:
		return errors.Errorf("unsupported jsonb value type %T", value)
	}
	return json.Unmarshal(raw, j)
}
