// Package rowid gives terminal rows a stable identity that survives
// scrolling, so the row cache can key on "this row" rather than on a
// screen-relative y coordinate that shifts every time new output arrives.
package rowid

import (
	"encoding/json"

	"github.com/google/uuid"
)

// RowID identifies a row independent of its current screen position.
type RowID uuid.UUID

// Nil is the zero RowID, used for rows that have never been assigned one.
var Nil = RowID(uuid.Nil)

// New allocates a fresh RowID.
func New() RowID {
	return RowID(uuid.New())
}

func (id RowID) String() string {
	return uuid.UUID(id).String()
}

// MarshalJSON renders a RowID as its canonical UUID string rather than the
// byte-array encoding [16]byte would otherwise produce.
func (id RowID) MarshalJSON() ([]byte, error) {
	return json.Marshal(id.String())
}

func (id *RowID) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := uuid.Parse(s)
	if err != nil {
		return err
	}
	*id = RowID(parsed)
	return nil
}
