package generate

type Field string

const (
	FieldValue      Field = "value"
	FieldNumber     Field = "number"
	FieldMessage    Field = "message"
	FieldEmail      Field = "email"
	FieldSubject    Field = "subject"
	FieldSSID       Field = "ssid"
	FieldPassword   Field = "password"
	FieldEncryption Field = "encryption"
)

// TypeProfile describes one kind of payload the generator can build.
type TypeProfile struct {
	Key         string
	Name        string
	Fields      []Field
	Required    []Field
	Description string
}

var Types = map[string]TypeProfile{
	"text": {
		Key:         "text",
		Name:        "Text",
		Fields:      []Field{FieldValue},
		Required:    []Field{FieldValue},
		Description: "Plain text, encoded as-is",
	},
	"url": {
		Key:         "url",
		Name:        "URL",
		Fields:      []Field{FieldValue},
		Required:    []Field{FieldValue},
		Description: "Web address, https:// added when no scheme is given",
	},
	"tel": {
		Key:         "tel",
		Name:        "Phone",
		Fields:      []Field{FieldValue},
		Required:    []Field{FieldValue},
		Description: "Phone number as a tel: link",
	},
	"sms": {
		Key:         "sms",
		Name:        "SMS",
		Fields:      []Field{FieldNumber, FieldMessage},
		Required:    []Field{FieldNumber},
		Description: "Text message with optional body",
	},
	"email": {
		Key:         "email",
		Name:        "Email",
		Fields:      []Field{FieldEmail, FieldSubject, FieldMessage},
		Required:    []Field{FieldEmail},
		Description: "mailto: link with optional subject and body",
	},
	"wifi": {
		Key:         "wifi",
		Name:        "WiFi",
		Fields:      []Field{FieldSSID, FieldPassword, FieldEncryption},
		Required:    []Field{FieldSSID},
		Description: "Network credentials (WPA, WEP or nopass)",
	},
}

func GetType(key string) (TypeProfile, bool) {
	t, ok := Types[key]
	return t, ok
}

func ListTypes() []TypeProfile {
	order := []string{"text", "url", "tel", "sms", "email", "wifi"}
	var result []TypeProfile
	for _, k := range order {
		result = append(result, Types[k])
	}
	return result
}
