package systems

import (
	"io"

	"github.com/google/uuid"
)

// newID draws a UUIDv4 from src so seeded sessions produce stable IDs.
func newID(src io.Reader) string {
	id, err := uuid.NewRandomFromReader(src)
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}
