// Package requirements checks that Parameters carry the entries the 3-D
// Secure 2 SDK refuses to initialize without.
//
// params.Parameters never validates what it stores. This package is the
// consumer-side check run by `svcparams validate` before handing parameters
// to the SDK.
package requirements

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"svcparams/internal/params"

	"github.com/go-playground/validator/v10"
)

// ErrMissing is wrapped by the error returned from Error.
var ErrMissing = errors.New("required service parameters missing or invalid")

// DirectoryServer holds the directory server information read from
// params.ServiceGroup.
type DirectoryServer struct {
	DirectoryServerID string `validate:"required,printascii"`
	PublicKey         string `validate:"required,printascii"`
}

// keyFor maps struct fields to parameter keys.
var keyFor = map[string]string{
	"DirectoryServerID": params.KeyDirectoryServerID,
	"PublicKey":         params.KeyPublicKey,
}

// Problem describes one required entry that is missing or invalid.
type Problem struct {
	Group  params.Group `json:"group"`
	Key    string       `json:"key"`
	Reason string       `json:"reason"`
}

func (p Problem) String() string {
	return fmt.Sprintf("%s.%s: %s", p.Group, p.Key, p.Reason)
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// DirectoryServerFrom reads the directory server information from p.
func DirectoryServerFrom(p *params.Parameters) DirectoryServer {
	id, _ := p.GetIn(params.KeyDirectoryServerID, params.ServiceGroup)
	pk, _ := p.GetIn(params.KeyPublicKey, params.ServiceGroup)
	return DirectoryServer{DirectoryServerID: id, PublicKey: pk}
}

// Check returns the problems found in p, sorted by key. An empty result
// means the SDK has everything it requires.
func Check(p *params.Parameters) []Problem {
	ds := DirectoryServerFrom(p)

	err := validate.Struct(ds)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []Problem{{Group: params.ServiceGroup, Reason: err.Error()}}
	}

	problems := make([]Problem, 0, len(verrs))
	for _, fe := range verrs {
		problems = append(problems, Problem{
			Group:  params.ServiceGroup,
			Key:    keyFor[fe.StructField()],
			Reason: reason(fe),
		})
	}
	sort.Slice(problems, func(i, j int) bool { return problems[i].Key < problems[j].Key })
	return problems
}

func reason(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "not set"
	case "printascii":
		return "must contain printable ASCII only"
	}
	return fmt.Sprintf("failed %q check", fe.Tag())
}

// Error joins problems into a single error wrapping ErrMissing, or returns
// nil if there are none.
func Error(problems []Problem) error {
	if len(problems) == 0 {
		return nil
	}
	lines := make([]string, len(problems))
	for i, p := range problems {
		lines[i] = p.String()
	}
	return fmt.Errorf("%w:\n  %s", ErrMissing, strings.Join(lines, "\n  "))
}
