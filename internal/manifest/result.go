package manifest

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// Outcome tags a Result. Only OK carries photos.
type Outcome int

const (
	OK Outcome = iota
	NoFolders
	NoImages
)

func (o Outcome) String() string {
	switch o {
	case OK:
		return "ok"
	case NoFolders:
		return "no_folders"
	case NoImages:
		return "no_images"
	default:
		return fmt.Sprintf("outcome(%d)", int(o))
	}
}

// FolderState is one entry of a Presence mapping.
type FolderState struct {
	Name   string
	Exists bool
}

// Presence maps each configured folder to whether it exists, in folder order.
type Presence []FolderState

func (p Presence) Exists(name string) bool {
	for _, s := range p {
		if s.Name == name {
			return s.Exists
		}
	}
	return false
}

func (p Presence) Any() bool {
	for _, s := range p {
		if s.Exists {
			return true
		}
	}
	return false
}

func (p Presence) All() bool {
	for _, s := range p {
		if !s.Exists {
			return false
		}
	}
	return len(p) > 0
}

// Found returns the names of the existing folders.
func (p Presence) Found() []string {
	out := make([]string, 0, len(p))
	for _, s := range p {
		if s.Exists {
			out = append(out, s.Name)
		}
	}
	return out
}

func (p Presence) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, s := range p {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := writeString(&buf, s.Name); err != nil {
			return nil, err
		}
		if s.Exists {
			buf.WriteString(":true")
		} else {
			buf.WriteString(":false")
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Variant is one folder's copy of a photo. Path and URL are empty when the
// folder has no file of that name.
type Variant struct {
	Folder  string
	Path    string
	URL     string
	Present bool
}

type ImageRecord struct {
	Filename string
	Variants []Variant
	Size     *int64
}

func (r ImageRecord) Variant(folder string) (Variant, bool) {
	for _, v := range r.Variants {
		if v.Folder == folder {
			return v, true
		}
	}
	return Variant{}, false
}

// MarshalJSON writes "<folder>" and "<folder>_url" for every variant, then
// "filename" and, when known, "size".
func (r ImageRecord) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, v := range r.Variants {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := writeNullable(&buf, v.Folder, v.Path, v.Present); err != nil {
			return nil, err
		}
		buf.WriteByte(',')
		if err := writeNullable(&buf, v.Folder+"_url", v.URL, v.Present); err != nil {
			return nil, err
		}
	}
	if len(r.Variants) > 0 {
		buf.WriteByte(',')
	}
	buf.WriteString(`"filename":`)
	if err := writeString(&buf, r.Filename); err != nil {
		return nil, err
	}
	if r.Size != nil {
		fmt.Fprintf(&buf, `,"size":%d`, *r.Size)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Result is the manifest for one scan. Outcome decides which fields are
// meaningful: Photos and Presence are only serialized for OK.
type Result struct {
	Outcome  Outcome
	BaseURL  string
	Presence Presence
	Photos   []ImageRecord
}

func (r Result) Success() bool {
	return r.Outcome == OK
}

func (r Result) Count() int {
	return len(r.Photos)
}

func (r Result) Message() string {
	switch r.Outcome {
	case OK:
		return fmt.Sprintf("found %d images", len(r.Photos))
	case NoFolders:
		return "folders " + joinOr(folderNames(r.Presence)) + " were not found"
	case NoImages:
		return "no images were found in the folders"
	default:
		return r.Outcome.String()
	}
}

type successBody struct {
	Success bool          `json:"success"`
	Message string        `json:"message"`
	Count   int           `json:"count"`
	BaseURL string        `json:"base_url"`
	Photos  []ImageRecord `json:"photos"`
	Folders Presence      `json:"folders"`
}

type failureBody struct {
	Success bool          `json:"success"`
	Message string        `json:"message"`
	Photos  []ImageRecord `json:"photos"`
	BaseURL string        `json:"base_url"`
}

func (r Result) MarshalJSON() ([]byte, error) {
	photos := r.Photos
	if photos == nil {
		photos = []ImageRecord{}
	}
	if !r.Success() {
		return marshalNoEscape(failureBody{
			Success: false,
			Message: r.Message(),
			Photos:  []ImageRecord{},
			BaseURL: r.BaseURL,
		})
	}
	presence := r.Presence
	if presence == nil {
		presence = Presence{}
	}
	return marshalNoEscape(successBody{
		Success: true,
		Message: r.Message(),
		Count:   len(photos),
		BaseURL: r.BaseURL,
		Photos:  photos,
		Folders: presence,
	})
}

func folderNames(p Presence) []string {
	names := make([]string, 0, len(p))
	for _, s := range p {
		names = append(names, s.Name)
	}
	return names
}

func joinOr(names []string) string {
	switch len(names) {
	case 0:
		return ""
	case 1:
		return names[0]
	}
	return strings.Join(names[:len(names)-1], ", ") + " or " + names[len(names)-1]
}

func writeNullable(buf *bytes.Buffer, key, value string, present bool) error {
	if err := writeString(buf, key); err != nil {
		return err
	}
	buf.WriteByte(':')
	if !present {
		buf.WriteString("null")
		return nil
	}
	return writeString(buf, value)
}

func writeString(buf *bytes.Buffer, s string) error {
	b, err := marshalNoEscape(s)
	if err != nil {
		return err
	}
	buf.Write(b)
	return nil
}

func marshalNoEscape(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}
