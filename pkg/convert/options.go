package convert

import (
	"io"
	"runtime"

	"github.com/charmbracelet/log"

	"github.com/eddi-weiss/mavenizor/pkg/errors"
	"github.com/eddi-weiss/mavenizor/pkg/filter"
	"github.com/eddi-weiss/mavenizor/pkg/gav"
)

// RequirementFilter adjusts the requirements of bundles matching Bundle.
type RequirementFilter struct {
	// Bundle is a symbolic-name pattern selecting declaring bundles.
	Bundle string `json:"bundle" toml:"bundle"`
	// Permitted requirements may stay unresolved without being reported.
	Permitted []string `json:"permitted,omitempty" toml:"permitted"`
	// Erase drops matching requirements from the output.
	Erase []string `json:"erase,omitempty" toml:"erase"`
}

// Options configures a conversion run.
type Options struct {
	// Workers bounds concurrent bundle conversions. Zero means GOMAXPROCS.
	Workers int `json:"workers,omitempty"`

	// InputBundles selects the bundles to convert. Source bundles always
	// pass. Empty selects all bundles.
	InputBundles []string `json:"input_bundles,omitempty"`

	// RequirementFilters are applied in order.
	RequirementFilters []RequirementFilter `json:"requirement_filters,omitempty"`

	// Settings is a free-form map copied into the Result untouched.
	Settings map[string]string `json:"settings,omitempty"`

	// Cache memoizes coordinate derivation. Nil disables memoization.
	Cache *gav.Cache `json:"-"`

	// Logger receives progress messages. Nil discards them.
	Logger *log.Logger `json:"-"`

	input   *filter.Set
	filters []compiledFilter
}

type compiledFilter struct {
	bundle    string
	permitted *filter.Set
	erase     *filter.Set
}

// ValidateAndSetDefaults validates the options and fills in defaults.
func (o *Options) ValidateAndSetDefaults() error {
	if o.Workers < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "workers must not be negative")
	}
	if o.Workers == 0 {
		o.Workers = runtime.GOMAXPROCS(0)
	}
	if o.Logger == nil {
		o.Logger = log.New(io.Discard)
	}

	input, err := filter.NewSet(o.InputBundles)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "input bundles")
	}
	o.input = input

	filters := make([]compiledFilter, 0, len(o.RequirementFilters))
	for _, rf := range o.RequirementFilters {
		if err := filter.Validate(rf.Bundle); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidConfig, err, "requirement filter")
		}
		permitted, err := filter.NewSet(rf.Permitted)
		if err != nil {
			return errors.Wrap(errors.ErrCodeInvalidConfig, err, "requirement filter %s", rf.Bundle)
		}
		erase, err := filter.NewSet(rf.Erase)
		if err != nil {
			return errors.Wrap(errors.ErrCodeInvalidConfig, err, "requirement filter %s", rf.Bundle)
		}
		filters = append(filters, compiledFilter{bundle: rf.Bundle, permitted: permitted, erase: erase})
	}
	o.filters = filters
	return nil
}

// erased reports whether a requirement of bundle on name is erased.
func (o *Options) erased(bundle, name string) bool {
	for _, f := range o.filters {
		if !f.erase.Empty() && filter.MatchName(f.bundle, bundle) && f.erase.Matches(name) {
			return true
		}
	}
	return false
}

// permitted reports whether an unresolved requirement of bundle on name is
// expected.
func (o *Options) permitted(bundle, name string) bool {
	for _, f := range o.filters {
		if !f.permitted.Empty() && filter.MatchName(f.bundle, bundle) && f.permitted.Matches(name) {
			return true
		}
	}
	return false
}
