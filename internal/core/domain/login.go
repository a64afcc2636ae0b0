package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// LoginPayloadKind enumerates the shapes the login endpoint returns in data.
type LoginPayloadKind int

const (
	// PayloadNone is a null or absent data field.
	PayloadNone LoginPayloadKind = iota
	// PayloadBareToken is data holding the token string itself.
	PayloadBareToken
	// PayloadTokenObject is data of the form {token, user?}.
	PayloadTokenObject
)

// LoginPayload is the decoded login response data.
type LoginPayload struct {
	Kind  LoginPayloadKind
	Token string
	User  *UserProfile
}

type loginObject struct {
	Token string          `json:"token"`
	User  json.RawMessage `json:"user"`
}

// UnmarshalJSON accepts a bare string, an object, or null. A user field that
// is not an object is ignored rather than failing the whole payload.
func (p *LoginPayload) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 {
		*p = LoginPayload{Kind: PayloadNone}
		return nil
	}

	switch b[0] {
	case 'n':
		*p = LoginPayload{Kind: PayloadNone}
		return nil
	case '"':
		var token string
		if err := json.Unmarshal(b, &token); err != nil {
			return fmt.Errorf("login payload: %w", err)
		}
		*p = LoginPayload{Kind: PayloadBareToken, Token: token}
		return nil
	case '{':
		var obj loginObject
		if err := json.Unmarshal(b, &obj); err != nil {
			return fmt.Errorf("login payload: %w", err)
		}
		*p = LoginPayload{Kind: PayloadTokenObject, Token: obj.Token, User: decodeEmbeddedUser(obj.User)}
		return nil
	default:
		return fmt.Errorf("login payload: unexpected JSON value starting with %q", b[0])
	}
}

// MarshalJSON writes the payload back in the shape it was received in.
func (p LoginPayload) MarshalJSON() ([]byte, error) {
	switch p.Kind {
	case PayloadBareToken:
		return json.Marshal(p.Token)
	case PayloadTokenObject:
		return json.Marshal(struct {
			Token string       `json:"token"`
			User  *UserProfile `json:"user,omitempty"`
		}{p.Token, p.User})
	default:
		return []byte("null"), nil
	}
}

func decodeEmbeddedUser(raw json.RawMessage) *UserProfile {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || raw[0] != '{' {
		return nil
	}
	var u UserProfile
	if err := json.Unmarshal(raw, &u); err != nil {
		return nil
	}
	return &u
}
