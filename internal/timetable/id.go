package timetable

import (
	"crypto/md5"
	"encoding/hex"
	"io"
)

// externalIDSeed is mixed into every series identifier so the generated
// ids occupy their own namespace. The exact bytes carry no meaning.
var externalIDSeed = []byte{
	0x07, 0xb8, 0xb7, 0xbc, 0xf1, 0xf1, 0xfc, 0x06,
	0x3b, 0xc2, 0x1b, 0x43, 0x3c, 0x2c, 0x14, 0x4c,
}

// ExternalID derives a stable identifier for a series from its position
// in the tree: the same four inputs always yield the same id. It doesn't
// really matter which hash we use, there are no security implications.
func ExternalID(tripos, part, paper, series string) string {
	h := md5.New()
	h.Write(externalIDSeed)
	io.WriteString(h, tripos+part+paper+series)
	return hex.EncodeToString(h.Sum(nil))
}
