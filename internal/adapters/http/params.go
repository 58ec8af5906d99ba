package httpadapter

import (
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"

	"github.com/oapi-codegen/runtime"

	"github.com/kirillkom/legal-case-intel/internal/core/domain"
)

// multipartOverhead is the slack allowed on top of the file cap for
// boundaries and part headers.
const multipartOverhead = 1 << 20

func pathParam(r *http.Request, name string) (string, error) {
	var value string
	err := runtime.BindStyledParameterWithOptions("simple", name, r.PathValue(name), &value, runtime.BindStyledParameterOptions{
		ParamLocation: runtime.ParamLocationPath,
		Explode:       false,
		Required:      true,
	})
	if err != nil {
		return "", domain.WrapError(domain.ErrInvalidInput, "bind path parameter "+name, err)
	}
	return value, nil
}

// checklistVariationsFromQuery reads ?consensual=true&extra=a&extra=b.
func checklistVariationsFromQuery(r *http.Request) (domain.ChecklistVariations, error) {
	var (
		consensual *bool
		extra      *[]string
	)
	query := r.URL.Query()
	if err := runtime.BindQueryParameter("form", true, false, "consensual", query, &consensual); err != nil {
		return domain.ChecklistVariations{}, domain.WrapError(domain.ErrInvalidInput, "bind query parameter consensual", err)
	}
	if err := runtime.BindQueryParameter("form", true, false, "extra", query, &extra); err != nil {
		return domain.ChecklistVariations{}, domain.WrapError(domain.ErrInvalidInput, "bind query parameter extra", err)
	}

	var variations domain.ChecklistVariations
	if consensual != nil {
		variations.Consensual = *consensual
	}
	if extra != nil {
		variations.ExtraRecommended = *extra
	}
	return variations, nil
}

func decodeJSON(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return domain.WrapError(domain.ErrInvalidInput, "decode request body", errors.New("invalid json"))
	}
	return nil
}

type multipartFile struct {
	multipart.File
	Filename    string
	ContentType string
}

// formFile opens the "file" part of a multipart request capped at maxBytes.
func (rt *Router) formFile(w http.ResponseWriter, r *http.Request) (multipartFile, error) {
	if rt.maxUploadBytes > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, rt.maxUploadBytes+multipartOverhead)
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return multipartFile{}, domain.WrapError(domain.ErrInvalidInput, "read multipart", errors.New("file exceeds upload limit"))
		}
		return multipartFile{}, domain.WrapError(domain.ErrInvalidInput, "read multipart", errors.New("multipart field 'file' is required"))
	}
	return multipartFile{File: file, Filename: header.Filename, ContentType: header.Header.Get("Content-Type")}, nil
}
