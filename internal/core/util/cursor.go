package util

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"todoapi/internal/core/model/response"
)

// ErrInvalidCursor marks a client-supplied cursor that cannot be decoded.
// Callers use it to tell bad input apart from a failing store.
var ErrInvalidCursor = errors.New("invalid cursor")

// CursorCodec signs keyset-pagination cursors so clients cannot forge or
// reorder them. The key is fixed at startup.
type CursorCodec struct {
	secret []byte
}

func NewCursorCodec(secret string) *CursorCodec {
	return &CursorCodec{secret: []byte(secret)}
}

func (cc *CursorCodec) sign(encoded string) string {
	mac := hmac.New(sha256.New, cc.secret)
	mac.Write([]byte(encoded))
	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}

func (cc *CursorCodec) Encode(datetime string, id int) string {
	data := response.CursorData{Datetime: datetime, ID: id}
	jsonData, _ := json.Marshal(data)
	encoded := base64.StdEncoding.EncodeToString(jsonData)

	return encoded + "." + cc.sign(encoded)
}

func (cc *CursorCodec) Decode(token string) (string, int, error) {
	parts := strings.Split(token, ".")

	if len(parts) != 2 {
		return "", 0, fmt.Errorf("%w: malformed token", ErrInvalidCursor)
	}

	if !hmac.Equal([]byte(parts[1]), []byte(cc.sign(parts[0]))) {
		return "", 0, fmt.Errorf("%w: bad signature", ErrInvalidCursor)
	}

	decoded, err := base64.StdEncoding.DecodeString(parts[0])

	if err != nil {
		return "", 0, fmt.Errorf("%w: %v", ErrInvalidCursor, err)
	}

	var cursor response.CursorData

	if err := json.Unmarshal(decoded, &cursor); err != nil {
		return "", 0, fmt.Errorf("%w: %v", ErrInvalidCursor, err)
	}

	return cursor.Datetime, cursor.ID, nil
}
