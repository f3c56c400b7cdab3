package aardvark

import (
	"regexp"
	"strings"

	"github.com/google/uuid"
)

var (
	idPattern       = regexp.MustCompile(`id=([a-zA-Z0-9]+)`)
	sublayerPattern = regexp.MustCompile(`sublayer=(\d+)`)
)

// DatasetRef is the identity parsed from a DCAT identifier URL.
type DatasetRef struct {
	UUID     string
	Sublayer string
	// Synthesized is true when the identifier carried no id= token.
	Synthesized bool
}

// RecordID is {siteName}-{uuid}{sublayer}.
func (r DatasetRef) RecordID(siteName string) string {
	return siteName + "-" + r.UUID + r.Sublayer
}

// ParseIdentifier extracts the id= and sublayer= query values. Without an id= token the UUID is
// derived from the identifier text, so a dataset keeps the same record id across runs.
func ParseIdentifier(identifier string) DatasetRef {
	var ref DatasetRef
	if m := idPattern.FindStringSubmatch(identifier); m != nil {
		ref.UUID = m[1]
	} else {
		ref.UUID = strings.ReplaceAll(uuid.NewSHA1(uuid.NameSpaceURL, []byte(identifier)).String(), "-", "")
		ref.Synthesized = true
	}
	if m := sublayerPattern.FindStringSubmatch(identifier); m != nil {
		ref.Sublayer = m[1]
	}
	return ref
}
