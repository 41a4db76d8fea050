package model

import (
	"crypto/rand"
	"fmt"
)

const (
	refPrefix  = "LL-"
	refLength  = 5
	refCharset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
)

// NewReferenceCode returns a fresh booking reference, "LL-" followed by five
// uppercase alphanumerics. Codes are not checked for uniqueness against
// existing rows.
func NewReferenceCode() string {
	buf := make([]byte, refLength)
	if _, err := rand.Read(buf); err != nil {
		panic(fmt.Sprintf("reference code: %v", err))
	}
	for i, b := range buf {
		buf[i] = refCharset[int(b)%len(refCharset)]
	}
	return refPrefix + string(buf)
}
