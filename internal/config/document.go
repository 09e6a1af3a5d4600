// Package config loads theme documents from disk. Documents come in two
// formats, YAML and HCL, and translate into immutable theme values consumed
// by the resolver.
package config

import (
	"fmt"
	"regexp"
	"sync"

	"github.com/go-playground/validator/v10"

	glazeerrors "github.com/glazekit/glaze/pkg/errors"
)

// Document is the raw shape of a theme file before translation. Variable and
// style values stay loosely typed here; tokens.go interprets them.
type Document struct {
	Name          string                  `mapstructure:"name" validate:"required,theme_name"`
	SiteVariables map[string]any          `mapstructure:"siteVariables"`
	Components    map[string]ComponentDoc `mapstructure:"components" validate:"dive"`
}

// ComponentDoc is one component's contribution in a theme file.
type ComponentDoc struct {
	Variables map[string]any            `mapstructure:"variables"`
	Styles    map[string]map[string]any `mapstructure:"styles"`
}

var (
	validatorOnce sync.Once
	validateInst  *validator.Validate

	themeNamePattern = regexp.MustCompile(`^[a-z0-9][a-z0-9_-]*$`)
	hexColorPattern  = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6}|[0-9a-fA-F]{8})$`)
)

func validatorInstance() *validator.Validate {
	validatorOnce.Do(func() {
		v := validator.New()
		_ = v.RegisterValidation("theme_name", func(fl validator.FieldLevel) bool {
			return themeNamePattern.MatchString(fl.Field().String())
		})
		validateInst = v
	})
	return validateInst
}

// validateDocument runs struct validation plus the semantic checks that
// struct tags cannot express: site variable names and reference targets.
func validateDocument(doc *Document) error {
	if err := validatorInstance().Struct(doc); err != nil {
		if fieldErrs, ok := err.(validator.ValidationErrors); ok && len(fieldErrs) > 0 {
			first := fieldErrs[0]
			return glazeerrors.NewValidationError(first.Namespace(),
				fmt.Sprintf("failed %q constraint", first.Tag()), err)
		}
		return err
	}

	for name, value := range doc.SiteVariables {
		if s, ok := value.(string); ok && looksLikeColor(s) && !hexColorPattern.MatchString(s) {
			return glazeerrors.NewValidationError("siteVariables."+name,
				fmt.Sprintf("malformed color %q", s), nil)
		}
	}

	for compName, comp := range doc.Components {
		for tokenName, raw := range comp.Variables {
			if err := validateTokenValue(doc, comp, raw); err != nil {
				return glazeerrors.NewValidationError(
					fmt.Sprintf("components.%s.variables.%s", compName, tokenName),
					err.Error(), err)
			}
		}
	}
	return nil
}

// validateTokenValue checks reference targets without resolving anything;
// unresolvable chains still surface at resolution time with their own codes.
func validateTokenValue(doc *Document, comp ComponentDoc, raw any) error {
	s, ok := raw.(string)
	if !ok {
		return nil
	}
	for _, ref := range referencesIn(s) {
		if _, inSite := doc.SiteVariables[ref]; inSite {
			continue
		}
		if _, inComponent := comp.Variables[ref]; inComponent {
			continue
		}
		return fmt.Errorf("reference %q matches no site variable or component token", ref)
	}
	return nil
}

func looksLikeColor(s string) bool {
	return len(s) > 0 && s[0] == '#'
}
