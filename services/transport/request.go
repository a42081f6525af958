package transportsvc

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"sort"
	"strings"

	"github.com/pkg/errors"
)

const (
	contentTypeJSON = "application/json"
	headerAuth      = "Authorization"
	headerCT        = "Content-Type"
	headerAccept    = "Accept"
)

// Request describes one call to the remote API.
type Request struct {
	Method string
	Path   string // relative to the configured base URL
	Query  url.Values
	Body   interface{} // *Form is sent as multipart/form-data, anything else as JSON
	Token  string      // bearer token, empty for anonymous calls
	Header http.Header
}

func (r Request) method() string {
	if r.Method == "" {
		return http.MethodGet
	}
	return strings.ToUpper(r.Method)
}

// IsMultipart reports whether the body will be sent as multipart/form-data.
func (r Request) IsMultipart() bool {
	switch r.Body.(type) {
	case *Form, Form:
		return true
	}
	return false
}

func (r Request) url(baseURL string) string {
	u := baseURL + r.Path
	if len(r.Query) > 0 {
		sep := "?"
		if strings.Contains(r.Path, "?") {
			sep = "&"
		}
		u += sep + r.Query.Encode()
	}
	return u
}

// encodeBody returns the encoded body and its content type.
// GET requests never carry a body: one given by the caller is dropped rather than rejected.
func (r Request) encodeBody() (io.Reader, string, error) {
	if r.Body == nil || r.method() == http.MethodGet {
		return nil, "", nil
	}
	switch body := r.Body.(type) {
	case *Form:
		return body.encode()
	case Form:
		return body.encode()
	case json.RawMessage:
		return bytes.NewReader(body), contentTypeJSON, nil
	default:
		data, err := json.Marshal(body)
		if err != nil {
			return nil, "", errors.Wrap(err, "marshalling JSON body")
		}
		return bytes.NewReader(data), contentTypeJSON, nil
	}
}

// File is a binary attachment of a Form.
type File struct {
	Field       string
	Filename    string
	ContentType string
	Content     io.Reader
}

// Form is a multipart/form-data body: plain fields plus binary attachments (images, resumes, videos...).
type Form struct {
	Fields url.Values
	Files  []File
}

func NewForm() *Form {
	return &Form{Fields: make(url.Values)}
}

func (f *Form) Set(key, value string) *Form {
	if f.Fields == nil {
		f.Fields = make(url.Values)
	}
	f.Fields.Set(key, value)
	return f
}

func (f *Form) Add(key, value string) *Form {
	if f.Fields == nil {
		f.Fields = make(url.Values)
	}
	f.Fields.Add(key, value)
	return f
}

func (f *Form) AddFile(field, filename, contentType string, content io.Reader) *Form {
	f.Files = append(f.Files, File{Field: field, Filename: filename, ContentType: contentType, Content: content})
	return f
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

func fileDisposition(field, filename string) string {
	return `form-data; name="` + quoteEscaper.Replace(field) + `"; filename="` + quoteEscaper.Replace(filename) + `"`
}

// HasFiles reports whether the form carries at least one attachment.
func (f Form) HasFiles() bool { return len(f.Files) > 0 }

func (f Form) encode() (io.Reader, string, error) {
	body := new(bytes.Buffer)
	w := multipart.NewWriter(body)

	keys := make([]string, 0, len(f.Fields))
	for k := range f.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		for _, v := range f.Fields[k] {
			if err := w.WriteField(k, v); err != nil {
				return nil, "", errors.Wrapf(err, "writing field %q", k)
			}
		}
	}

	for _, file := range f.Files {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", fileDisposition(file.Field, file.Filename))
		ct := file.ContentType
		if ct == "" {
			ct = "application/octet-stream"
		}
		h.Set(headerCT, ct)
		part, err := w.CreatePart(h)
		if err != nil {
			return nil, "", errors.Wrapf(err, "creating part %q", file.Field)
		}
		if file.Content != nil {
			if _, err = io.Copy(part, file.Content); err != nil {
				return nil, "", errors.Wrapf(err, "copying file %q", file.Filename)
			}
		}
	}

	if err := w.Close(); err != nil {
		return nil, "", errors.Wrap(err, "closing multipart writer")
	}
	return body, w.FormDataContentType(), nil
}
