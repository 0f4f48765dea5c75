package studyconfig

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// MinPrePeriodDays 사전 구간 최소 길이 (추정기 학습용)
const MinPrePeriodDays = 3

// ValidationError 검증 실패 (프로그램 중단)
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Warning 권장 위반 (경고만)
type Warning struct {
	Code    string
	Message string
}

var validate = newValidator()

// newValidator reports fields by their YAML names
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("yaml"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Validate checks all required constraints
// 실패 시 error 반환 (프로그램 중단)
func Validate(cfg *Config) error {
	// === 필드 단위 (struct tag) ===
	if err := validate.Struct(cfg); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return fromFieldError(verrs[0])
		}
		return err
	}

	// === Periods: pre.start <= pre.end < post.start <= post.end ===
	preStart, preEnd, err := cfg.Periods.Pre.Range()
	if err != nil {
		return ValidationError{"periods.pre", err.Error()}
	}
	postStart, postEnd, err := cfg.Periods.Post.Range()
	if err != nil {
		return ValidationError{"periods.post", err.Error()}
	}

	if preEnd.Before(preStart) {
		return ValidationError{"periods.pre", "start must be on or before end"}
	}
	if postEnd.Before(postStart) {
		return ValidationError{"periods.post", "start must be on or before end"}
	}
	if !preEnd.Before(postStart) {
		return ValidationError{"periods", "pre.end must be before post.start"}
	}
	if cfg.Periods.Pre.Days() < MinPrePeriodDays {
		return ValidationError{"periods.pre", fmt.Sprintf("must span at least %d days", MinPrePeriodDays)}
	}

	// === Quality ===
	if q := cfg.Quality; q != nil {
		if q.MinRows < 1 {
			return ValidationError{"quality.min_rows", "must be >= 1"}
		}
		if q.MinCoverage < 0 || q.MinCoverage > 1 {
			return ValidationError{"quality.min_coverage", "must be in [0, 1]"}
		}
	}

	return nil
}

// Warn checks recommended constraints (non-fatal)
func Warn(cfg *Config) []Warning {
	var warnings []Warning

	// 사전 구간이 사후 구간보다 짧으면 반사실 추정 불안정
	if pre, post := cfg.Periods.Pre.Days(), cfg.Periods.Post.Days(); pre < post {
		warnings = append(warnings, Warning{
			Code:    "SHORT_PRE_PERIOD",
			Message: fmt.Sprintf("pre period (%d days) shorter than post period (%d days)", pre, post),
		})
	}

	if cfg.Estimator.NIter < 1000 {
		warnings = append(warnings, Warning{
			Code:    "LOW_NITER",
			Message: fmt.Sprintf("niter=%d < 1000: posterior may not converge", cfg.Estimator.NIter),
		})
	}

	if cfg.Estimator.Seed == 0 {
		warnings = append(warnings, Warning{
			Code:    "ZERO_SEED",
			Message: "estimator.seed is 0: set it explicitly for reproducible runs",
		})
	}

	return warnings
}

// === Helper Functions ===

func fromFieldError(fe validator.FieldError) ValidationError {
	field := fe.Namespace()
	if i := strings.Index(field, "."); i >= 0 {
		field = field[i+1:]
	}

	var msg string
	switch fe.Tag() {
	case "required":
		msg = "required"
	case "min":
		msg = fmt.Sprintf("must be >= %s", fe.Param())
	case "gt":
		msg = fmt.Sprintf("must be > %s", fe.Param())
	case "lt":
		msg = fmt.Sprintf("must be < %s", fe.Param())
	case "oneof":
		msg = fmt.Sprintf("must be one of [%s]", fe.Param())
	case "unique":
		msg = "must not contain duplicates"
	case "datetime":
		msg = "must be YYYY-MM-DD"
	default:
		msg = fmt.Sprintf("failed %q", fe.Tag())
	}

	return ValidationError{Field: field, Message: msg}
}
