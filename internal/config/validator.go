package config

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/dotforge/dotforge/internal/platform"
	forgeerrors "github.com/dotforge/dotforge/pkg/errors"
)

var (
	validatorOnce sync.Once
	validateInst  *validator.Validate

	semverPattern    = regexp.MustCompile(`^\d+\.\d+(?:\.\d+)?(?:-[0-9A-Za-z-.]+)?(?:\+[0-9A-Za-z-.]+)?$`)
	aliasNamePattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_-]*$`)
	sshGitPattern    = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+:[a-zA-Z0-9._/~-]+$`)
)

func validatorInstance() *validator.Validate {
	validatorOnce.Do(func() {
		v := validator.New()

		_ = v.RegisterValidation("semver", func(fl validator.FieldLevel) bool {
			return semverPattern.MatchString(fl.Field().String())
		})

		_ = v.RegisterValidation("alias_name", func(fl validator.FieldLevel) bool {
			return aliasNamePattern.MatchString(fl.Field().String())
		})

		_ = v.RegisterValidation("platform", func(fl validator.FieldLevel) bool {
			p := platform.Platform(fl.Field().String())
			return p.Valid() && p != platform.Unknown
		})

		_ = v.RegisterValidation("git_url", func(fl validator.FieldLevel) bool {
			return isGitURL(fl.Field().String())
		})

		validateInst = v
	})

	return validateInst
}

func isGitURL(raw string) bool {
	if strings.TrimSpace(raw) == "" {
		return false
	}

	if parsed, err := url.Parse(raw); err == nil {
		scheme := strings.ToLower(parsed.Scheme)
		if (scheme == "http" || scheme == "https" || scheme == "ssh") && parsed.Host != "" {
			return true
		}
	}

	if sshGitPattern.MatchString(raw) {
		return true
	}

	// Local paths are accepted for repositories on disk.
	return strings.HasPrefix(raw, "/") || strings.HasPrefix(raw, "./") || strings.HasPrefix(raw, "../")
}

// ValidateConfig performs schema validation on the manifest.
func ValidateConfig(cfg *Config) error {
	if cfg == nil {
		return forgeerrors.NewValidationError("", "configuration is nil", nil)
	}

	if err := validatorInstance().Struct(cfg); err != nil {
		var invalid validator.ValidationErrors
		if ok := asValidationErrors(err, &invalid); ok && len(invalid) > 0 {
			first := invalid[0]
			return forgeerrors.NewValidationError(
				first.Namespace(),
				fmt.Sprintf("failed %q validation", first.Tag()),
				err,
			)
		}
		return forgeerrors.NewValidationError("", err.Error(), err)
	}

	return nil
}

func asValidationErrors(err error, target *validator.ValidationErrors) bool {
	v, ok := err.(validator.ValidationErrors)
	if !ok {
		return false
	}
	*target = v
	return true
}
