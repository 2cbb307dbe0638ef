package store

import (
	"strings"

	"github.com/google/uuid"
)

const (
	zoneIDPrefix = "col-"
	itemIDPrefix = "it-"
)

// idGenerator returns the random part of new ids. Tests replace it to get
// stable ids.
var idGenerator = defaultGenerateID

// defaultGenerateID returns the first eight hex digits of a random UUID.
func defaultGenerateID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
}

func newZoneID() string { return zoneIDPrefix + idGenerator() }

func newItemID() string { return itemIDPrefix + idGenerator() }
