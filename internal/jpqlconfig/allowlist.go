package jpqlconfig

import (
	"fmt"
	"os"
	"regexp"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"cuelang.org/go/encoding/yaml"
)

// allowlistSchema constrains an allow-list document to {allow:
// [...string]} where every entry is a valid identifier-shaped function
// name.
const allowlistSchema = `
allow: [...=~"^[A-Za-z_][A-Za-z0-9_]*$"]
`

var functionNamePattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// FunctionAllowList is a validated set of vendor-extension function
// names permitted in function('name', args...) call sites. An
// unrecognized name is only an error in fail-fast parsing
// when an allow-list is configured and the name is not on it —
// permissive mode never consults it.
type FunctionAllowList struct {
	names map[string]struct{}
}

// LoadFunctionAllowList reads a YAML or CUE allow-list document at
// path, validates it against allowlistSchema, and returns the
// resulting set of permitted function names.
func LoadFunctionAllowList(path string) (*FunctionAllowList, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("jpqlconfig: read allow-list %s: %w", path, err)
	}
	return ParseFunctionAllowList(data, path)
}

// ParseFunctionAllowList parses and validates allow-list data already
// read into memory; filename is used only for CUE error positions.
func ParseFunctionAllowList(data []byte, filename string) (*FunctionAllowList, error) {
	ctx := cuecontext.New()

	schema := ctx.CompileString(allowlistSchema)
	if err := schema.Err(); err != nil {
		return nil, fmt.Errorf("jpqlconfig: compile allow-list schema: %w", err)
	}

	expr, err := yaml.Extract(filename, data)
	if err != nil {
		return nil, fmt.Errorf("jpqlconfig: parse allow-list %s: %w", filename, err)
	}
	doc := ctx.BuildFile(expr)
	if err := doc.Err(); err != nil {
		return nil, fmt.Errorf("jpqlconfig: build allow-list %s: %w", filename, err)
	}

	unified := schema.Unify(doc)
	if err := unified.Validate(cue.Concrete(true)); err != nil {
		return nil, fmt.Errorf("jpqlconfig: allow-list %s fails schema: %w", filename, err)
	}

	iter, err := unified.LookupPath(cue.ParsePath("allow")).List()
	if err != nil {
		return nil, fmt.Errorf("jpqlconfig: allow-list %s: %w", filename, err)
	}

	allow := &FunctionAllowList{names: make(map[string]struct{})}
	for iter.Next() {
		name, err := iter.Value().String()
		if err != nil {
			return nil, fmt.Errorf("jpqlconfig: allow-list %s: non-string entry: %w", filename, err)
		}
		if !functionNamePattern.MatchString(name) {
			return nil, fmt.Errorf("jpqlconfig: allow-list %s: %q is not a valid function name", filename, name)
		}
		allow.names[name] = struct{}{}
	}
	return allow, nil
}

// Allows reports whether name is permitted by the allow-list.
func (a *FunctionAllowList) Allows(name string) bool {
	_, ok := a.names[name]
	return ok
}
