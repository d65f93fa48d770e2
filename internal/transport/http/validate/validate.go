// Package validate decodes request bodies and runs struct-tag validation,
// returning domain errors that the response package knows how to render.
package validate

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	entrans "github.com/go-playground/validator/v10/translations/en"

	"github.com/baechuer/real-time-ressys/services/user-service/internal/domain"
)

const maxBodyBytes = 1 << 20

// Normalizer is implemented by request DTOs that clean their fields
// (trimming etc.) before rules run.
type Normalizer interface {
	Normalize()
}

var (
	v     *validator.Validate
	trans ut.Translator
)

func init() {
	v = validator.New(validator.WithRequiredStructEnabled())

	// report fields by their JSON name, as clients sent them
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	locale := en.New()
	trans, _ = ut.New(locale, locale).GetTranslator("en")
	if err := entrans.RegisterDefaultTranslations(v, trans); err != nil {
		panic(err)
	}
	if err := trans.Add("type_string", "{0} must be a string", false); err != nil {
		panic(err)
	}
}

// Body decodes the JSON request body into dst and validates it.
//
// Malformed JSON, including data after the first value, yields
// domain.ErrInvalidJSON. A well-formed body whose
// values have the wrong type, or that breaks a validate tag, yields
// domain.ErrValidation with one reason per field. An empty body is
// validated like {} so missing fields are reported individually.
func Body(r *http.Request, dst any) error {
	fields := map[string]string{}

	if err := decode(r, dst); err != nil {
		var typeErr *json.UnmarshalTypeError
		if !errors.As(err, &typeErr) || typeErr.Field == "" {
			return domain.ErrInvalidJSON(err)
		}
		fields[typeErr.Field] = typeMessage(typeErr)
	}

	if n, ok := dst.(Normalizer); ok {
		n.Normalize()
	}

	for field, msg := range structErrors(dst) {
		if _, seen := fields[field]; !seen {
			fields[field] = msg
		}
	}

	if len(fields) > 0 {
		return domain.ErrValidation(fields)
	}
	return nil
}

// Struct validates an already-populated value.
func Struct(dst any) error {
	if fields := structErrors(dst); len(fields) > 0 {
		return domain.ErrValidation(fields)
	}
	return nil
}

// errTrailingData rejects bodies such as {}{} or {...} garbage.
var errTrailingData = errors.New("body must hold a single JSON value")

func decode(r *http.Request, dst any) error {
	if r.Body == nil {
		return nil
	}
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))

	err := dec.Decode(dst)
	if errors.Is(err, io.EOF) {
		return nil
	}
	var typeErr *json.UnmarshalTypeError
	if err != nil && !errors.As(err, &typeErr) {
		return err
	}

	// the decoder has consumed the first value even on a type mismatch,
	// so anything left but EOF is trailing data
	if extra := dec.Decode(&struct{}{}); !errors.Is(extra, io.EOF) {
		return errTrailingData
	}
	return err
}

func structErrors(dst any) map[string]string {
	err := v.Struct(dst)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return map[string]string{"body": err.Error()}
	}

	out := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		if _, ok := out[fe.Field()]; !ok {
			out[fe.Field()] = fe.Translate(trans)
		}
	}
	return out
}

func typeMessage(e *json.UnmarshalTypeError) string {
	if e.Type != nil && e.Type.Kind() == reflect.String {
		msg, err := trans.T("type_string", e.Field)
		if err == nil {
			return msg
		}
	}
	return e.Field + " has an invalid type"
}
