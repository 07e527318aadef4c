// package cid provides content IDs for calculations.
//
// An ID is the 32 byte hash of a canonical encoding of whatever it identifies.
package cid

import (
	"bytes"
	"database/sql/driver"
	"encoding/base64"
	"errors"
	"fmt"
)

var _ driver.Valuer = ID{}

const (
	IDSize = 32
	// Base64Alphabet is used when encoding IDs as base64 strings.
	// It is a URL and filepath safe encoding, which maintains ordering.
	Base64Alphabet = "-0123456789" + "ABCDEFGHIJKLMNOPQRSTUVWXYZ" + "_" + "abcdefghijklmnopqrstuvwxyz"
)

// ID identifies a particular piece of data
type ID [IDSize]byte

var enc = base64.NewEncoding(Base64Alphabet).WithPadding(base64.NoPadding)

// Parse decodes an ID from its base64 string form.
func Parse(x string) (ID, error) {
	var id ID
	if err := id.UnmarshalText([]byte(x)); err != nil {
		return ID{}, err
	}
	return id, nil
}

func (id ID) String() string {
	return enc.EncodeToString(id[:])
}

func (id ID) MarshalText() ([]byte, error) {
	buf := make([]byte, enc.EncodedLen(len(id)))
	enc.Encode(buf, id[:])
	return buf, nil
}

func (id *ID) UnmarshalText(data []byte) error {
	if enc.DecodedLen(len(data)) != IDSize {
		return fmt.Errorf("cid: wrong length for base64 ID: %d", len(data))
	}
	n, err := enc.Decode(id[:], data)
	if err != nil {
		return err
	}
	if n != IDSize {
		return errors.New("cid: base64 string is too short")
	}
	return nil
}

func (a ID) Compare(b ID) int {
	return bytes.Compare(a[:], b[:])
}

func (id ID) IsZero() bool {
	return id == (ID{})
}

func (id *ID) Scan(x any) error {
	switch x := x.(type) {
	case []byte:
		if len(x) != IDSize {
			return fmt.Errorf("wrong length for cid.ID HAVE: %d WANT: %d", len(x), IDSize)
		}
		copy(id[:], x)
		return nil
	default:
		return fmt.Errorf("cannot scan type %T", x)
	}
}

func (id ID) Value() (driver.Value, error) {
	return id[:], nil
}
