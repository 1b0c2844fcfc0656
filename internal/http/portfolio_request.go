package http

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"portfolio-views/internal/portfolios"
)

const (
	formFieldProjects = "projects"

	formFileProfileImage  = "profileImage"
	formFileResume        = "resume"
	formFileProjectImages = "projectImages"

	// multipart parts above this size are spooled to temporary files
	maxMultipartMemory = 8 << 20
	// allowance for the non-file fields of a request
	maxFormFieldBytes = 1 << 20
)

// UploadLimits bound the size of portfolio requests.
type UploadLimits struct {
	MaxFileBytes     int64
	MaxProjectImages int
}

func (l UploadLimits) maxBodyBytes() int64 {
	return l.MaxFileBytes*int64(l.MaxProjectImages+2) + maxFormFieldBytes
}

// decodePortfolioRequest fills dst from a JSON body or a multipart form and
// returns the uploaded files. Unknown fields are rejected.
func decodePortfolioRequest(w http.ResponseWriter, r *http.Request, limits UploadLimits, dst any) (*portfolios.Files, error) {
	r.Body = http.MaxBytesReader(w, r.Body, limits.maxBodyBytes())

	if !isMultipart(r) {
		if err := decodeStrictJSON(r.Body, dst); err != nil {
			return nil, err
		}
		return nil, nil
	}

	if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
		return nil, bodyReadError(err, "invalid multipart form")
	}

	fields, err := formFields(r.MultipartForm.Value)
	if err != nil {
		return nil, err
	}
	body, err := json.Marshal(fields)
	if err != nil {
		return nil, errInvalidRequestBody("invalid multipart form", err)
	}
	if err := decodeStrictJSON(bytes.NewReader(body), dst); err != nil {
		return nil, err
	}

	return formFiles(r.MultipartForm.File)
}

func decodeStrictJSON(r io.Reader, dst any) error {
	decoder := json.NewDecoder(r)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dst); err != nil {
		return bodyReadError(err, fmt.Sprintf("invalid json: %v", err))
	}
	return nil
}

// formFields turns multipart values into a JSON object. The projects field
// carries a JSON encoded array.
func formFields(values map[string][]string) (map[string]any, error) {
	fields := make(map[string]any, len(values))
	for key, vals := range values {
		if len(vals) == 0 {
			continue
		}
		value := vals[0]
		if key != formFieldProjects {
			fields[key] = value
			continue
		}
		if value == "" {
			continue
		}
		var projects []json.RawMessage
		if err := json.Unmarshal([]byte(value), &projects); err != nil {
			return nil, errInvalidRequestBody("projects must be a valid JSON array", err)
		}
		fields[key] = projects
	}
	return fields, nil
}

func formFiles(files map[string][]*multipart.FileHeader) (*portfolios.Files, error) {
	result := &portfolios.Files{}
	for field, headers := range files {
		if len(headers) == 0 {
			continue
		}
		switch field {
		case formFileProfileImage, formFileResume:
			if len(headers) > 1 {
				return nil, errInvalidRequestBody(fmt.Sprintf("%s accepts a single file", field), nil)
			}
			upload := toUpload(headers[0])
			if field == formFileProfileImage {
				result.ProfileImage = upload
			} else {
				result.Resume = upload
			}
		case formFileProjectImages:
			for _, header := range headers {
				result.ProjectImages = append(result.ProjectImages, toUpload(header))
			}
		default:
			return nil, errInvalidRequestBody(fmt.Sprintf("unexpected file field %q", field), nil)
		}
	}
	return result, nil
}

func toUpload(header *multipart.FileHeader) *portfolios.Upload {
	return &portfolios.Upload{
		Filename: header.Filename,
		Size:     header.Size,
		Open: func() (io.ReadCloser, error) {
			return header.Open()
		},
	}
}

func bodyReadError(err error, msg string) error {
	var maxBytesErr *http.MaxBytesError
	if errors.As(err, &maxBytesErr) {
		return errRequestTooLarge(err)
	}
	if errors.Is(err, io.EOF) {
		return errInvalidRequestBody("empty request body", err)
	}
	return errInvalidRequestBody(msg, err)
}
