package generate

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrUnknownType  = errors.New("unknown payload type")
	ErrMissingField = errors.New("missing required field")
	ErrBadOption    = errors.New("invalid option")
)

// WiFi encryption modes.
const (
	EncWPA    = "WPA"
	EncWEP    = "WEP"
	EncNoPass = "nopass"
)

// Form holds the user's input for one payload. Only the fields of the
// chosen type are read.
type Form struct {
	Type       string
	Value      string
	Number     string
	Message    string
	Email      string
	Subject    string
	SSID       string
	Password   string
	Encryption string
}

// Encode validates the form and builds the string to put in the QR code.
func Encode(f Form) (string, error) {
	switch f.Type {
	case "text":
		v := strings.TrimSpace(f.Value)
		if v == "" {
			return "", missing(FieldValue)
		}
		return v, nil

	case "url":
		v := strings.TrimSpace(f.Value)
		if v == "" {
			return "", missing(FieldValue)
		}
		if !strings.Contains(v, "://") {
			v = "https://" + v
		}
		return v, nil

	case "tel":
		v := strings.TrimSpace(f.Value)
		if v == "" {
			return "", missing(FieldValue)
		}
		return "tel:" + v, nil

	case "sms":
		num := strings.TrimSpace(f.Number)
		msg := strings.TrimSpace(f.Message)
		if num == "" {
			return "", missing(FieldNumber)
		}
		data := "sms:" + num
		if msg != "" {
			data += "?body=" + EscapeComponent(msg)
		}
		return data, nil

	case "email":
		mail := strings.TrimSpace(f.Email)
		sub := strings.TrimSpace(f.Subject)
		msg := strings.TrimSpace(f.Message)
		if mail == "" {
			return "", missing(FieldEmail)
		}
		data := "mailto:" + mail
		var params []string
		if sub != "" {
			params = append(params, "subject="+EscapeComponent(sub))
		}
		if msg != "" {
			params = append(params, "body="+EscapeComponent(msg))
		}
		if len(params) > 0 {
			data += "?" + strings.Join(params, "&")
		}
		return data, nil

	case "wifi":
		ssid := strings.TrimSpace(f.SSID)
		enc := f.Encryption
		if enc == "" {
			enc = EncWPA
		}
		switch enc {
		case EncWPA, EncWEP, EncNoPass:
		default:
			return "", fmt.Errorf("%w: encryption %q (want %s, %s or %s)", ErrBadOption, enc, EncWPA, EncWEP, EncNoPass)
		}
		if ssid == "" {
			return "", missing(FieldSSID)
		}
		// the password is taken verbatim, spaces included
		if enc != EncNoPass && f.Password == "" {
			return "", missing(FieldPassword)
		}
		return fmt.Sprintf("WIFI:T:%s;S:%s;P:%s;;", enc, ssid, f.Password), nil
	}

	return "", fmt.Errorf("%w: %q", ErrUnknownType, f.Type)
}

func missing(field Field) error {
	return fmt.Errorf("%w: %s", ErrMissingField, field)
}

const upperhex = "0123456789ABCDEF"

// EscapeComponent percent-encodes s the way a URI component is encoded:
// everything but letters, digits and -_.!~*'() is escaped as UTF-8 bytes.
func EscapeComponent(s string) string {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		if unreserved(c) {
			b.WriteByte(c)
			continue
		}
		b.WriteByte('%')
		b.WriteByte(upperhex[c>>4])
		b.WriteByte(upperhex[c&15])
	}
	return b.String()
}

func unreserved(c byte) bool {
	switch {
	case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z', '0' <= c && c <= '9':
		return true
	}
	return strings.IndexByte("-_.!~*'()", c) >= 0
}
