package telegram

import "strings"

// ContentKind selects the Bot API endpoint used for a send.
type ContentKind int

const (
	KindText ContentKind = iota
	KindPhoto
	KindAnimation
	KindVideo
	KindDocument
)

// endpoint is the Bot API method and the query parameter carrying the payload.
type endpoint struct {
	method      string
	param       string
	encodeValue bool
}

func (k ContentKind) endpoint() (endpoint, bool) {
	switch k {
	case KindText:
		return endpoint{method: "sendMessage", param: "text", encodeValue: true}, true
	case KindPhoto:
		return endpoint{method: "sendPhoto", param: "photo"}, true
	case KindAnimation:
		return endpoint{method: "sendAnimation", param: "animation"}, true
	case KindVideo:
		return endpoint{method: "sendVideo", param: "video"}, true
	case KindDocument:
		return endpoint{method: "sendDocument", param: "document"}, true
	}
	return endpoint{}, false
}

// Method returns the Bot API method name, or "" for an unknown kind.
func (k ContentKind) Method() string {
	ep, _ := k.endpoint()
	return ep.method
}

// Param returns the query parameter name, or "" for an unknown kind.
func (k ContentKind) Param() string {
	ep, _ := k.endpoint()
	return ep.param
}

func (k ContentKind) String() string {
	switch k {
	case KindText:
		return "text"
	case KindPhoto:
		return "photo"
	case KindAnimation:
		return "animation"
	case KindVideo:
		return "video"
	case KindDocument:
		return "document"
	}
	return "unknown"
}

// ParseContentKind maps a kind name to its ContentKind. "message" is
// accepted as an alias of "text" and "gif" as an alias of "animation".
func ParseContentKind(name string) (ContentKind, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "text", "message":
		return KindText, nil
	case "photo":
		return KindPhoto, nil
	case "animation", "gif":
		return KindAnimation, nil
	case "video":
		return KindVideo, nil
	case "document":
		return KindDocument, nil
	}
	return 0, &ConfigurationError{Kind: -1, Name: name}
}

// Kinds lists every supported content kind in declaration order.
func Kinds() []ContentKind {
	return []ContentKind{KindText, KindPhoto, KindAnimation, KindVideo, KindDocument}
}
