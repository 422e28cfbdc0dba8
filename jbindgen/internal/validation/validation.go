// Package validation holds the struct validator shared by configuration and
// definition-file loading, with the identifier rules jbind needs.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

var (
	javaIdentRE   = regexp.MustCompile(`^[\p{L}_$][\p{L}\p{N}_$]*$`)
	goIdentRE     = regexp.MustCompile(`^[\p{L}_][\p{L}\p{N}_]*$`)
	javaKeywords  = makeSet("abstract assert boolean break byte case catch char class const continue default do double else enum extends final finally float for goto if implements import instanceof int interface long native new package private protected public return short static strictfp super switch synchronized this throw throws transient try void volatile while true false null _")
	goKeywords    = makeSet("break case chan const continue default defer else fallthrough for func go goto if import interface map package range return select struct switch type var")
	validate      = newValidator()
	errNotAStruct = errors.New("validation: not a struct")
)

func makeSet(words string) map[string]bool {
	set := make(map[string]bool)
	for _, w := range strings.Fields(words) {
		set[w] = true
	}
	return set
}

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		for _, key := range []string{"yaml", "toml"} {
			if name, _, _ := strings.Cut(f.Tag.Get(key), ","); name != "" && name != "-" {
				return name
			}
		}
		return f.Name
	})
	must(v.RegisterValidation("java_ident", func(fl validator.FieldLevel) bool {
		return IsJavaIdent(fl.Field().String())
	}))
	must(v.RegisterValidation("java_package", func(fl validator.FieldLevel) bool {
		return IsJavaPackage(fl.Field().String())
	}))
	must(v.RegisterValidation("go_ident", func(fl validator.FieldLevel) bool {
		return IsGoIdent(fl.Field().String())
	}))
	return v
}

func must(err error) {
	if err != nil {
		panic(err)
	}
}

// IsJavaIdent reports whether s can name a Java class or enum constant.
func IsJavaIdent(s string) bool {
	return javaIdentRE.MatchString(s) && !javaKeywords[s]
}

// IsJavaPackage reports whether s is a dotted Java package name.
func IsJavaPackage(s string) bool {
	if s == "" {
		return false
	}
	for _, part := range strings.Split(s, ".") {
		if !IsJavaIdent(part) {
			return false
		}
	}
	return true
}

// IsGoIdent reports whether s is a Go identifier.
func IsGoIdent(s string) bool {
	return goIdentRE.MatchString(s) && !goKeywords[s]
}

// Struct validates v against its validate tags.
func Struct(v any) error {
	err := validate.Struct(v)
	var invalid *validator.InvalidValidationError
	if errors.As(err, &invalid) {
		return fmt.Errorf("%w: %v", errNotAStruct, err)
	}
	return err
}

// Messages renders the field errors of err as "field: message" lines. Errors
// not produced by the validator are returned as their message.
func Messages(err error) []string {
	if err == nil {
		return nil
	}
	var valErrs validator.ValidationErrors
	if !errors.As(err, &valErrs) {
		return []string{err.Error()}
	}
	msgs := make([]string, 0, len(valErrs))
	for _, ve := range valErrs {
		msgs = append(msgs, fieldPath(ve)+": "+message(ve))
	}
	return msgs
}

// fieldPath drops the top-level struct name from the namespace,
// e.g. "Config.package" becomes "package".
func fieldPath(ve validator.FieldError) string {
	ns := ve.Namespace()
	if _, rest, ok := strings.Cut(ns, "."); ok {
		return rest
	}
	return ns
}

func message(ve validator.FieldError) string {
	switch ve.Tag() {
	case "required":
		return "required"
	case "java_ident":
		return fmt.Sprintf("%q is not a valid Java identifier", ve.Value())
	case "java_package":
		return fmt.Sprintf("%q is not a valid Java package name", ve.Value())
	case "go_ident":
		return fmt.Sprintf("%q is not a valid Go identifier", ve.Value())
	case "oneof":
		return fmt.Sprintf("must be one of: %s", ve.Param())
	case "min":
		return fmt.Sprintf("must have at least %s elements", ve.Param())
	default:
		if ve.Param() != "" {
			return fmt.Sprintf("failed %s=%s validation", ve.Tag(), ve.Param())
		}
		return fmt.Sprintf("failed %s validation", ve.Tag())
	}
}
