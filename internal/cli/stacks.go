package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/stackmove/stackmove/internal/domain/cfn"
	"github.com/stackmove/stackmove/internal/domain/model"
	"github.com/stackmove/stackmove/internal/pkg/codec"
)

// parseStackFlags turns a repeated "--deployed name=path.yaml" style
// flag value into Stacks, decoding each file with the codec chosen by
// its extension. Every stack is given the same environment, since a
// single refactorctl invocation only ever plans one environment at a
// time (spec §5; PlanAll's multi-environment concurrency has no
// analogue here because a demo CLI run is never itself concurrent).
func parseStackFlags(entries []string, env cfn.Environment) ([]cfn.Stack, error) {
	stacks := make([]cfn.Stack, 0, len(entries))
	for _, entry := range entries {
		name, path, ok := strings.Cut(entry, "=")
		if !ok {
			return nil, fmt.Errorf("invalid stack flag %q: expected name=path", entry)
		}

		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("opening %q: %w", path, err)
		}

		var tmpl *cfn.Template
		switch strings.ToLower(filepath.Ext(path)) {
		case ".json":
			tmpl, err = codec.DecodeJSON(f)
		default:
			tmpl, err = codec.DecodeYAML(f)
		}
		closeErr := f.Close()
		if err != nil {
			return nil, fmt.Errorf("decoding %q: %w", path, err)
		}
		if closeErr != nil {
			return nil, closeErr
		}

		stacks = append(stacks, cfn.Stack{Environment: env, StackName: name, Template: tmpl})
	}
	return stacks, nil
}

// loadProvider reads an optional JSON file mapping resource type to
// its ordered primary-identifier key list (spec §4.2's external
// resource-model provider). An empty path yields a provider that never
// reports a physical identifier, so every resource hashes structurally.
func loadProvider(path string) (model.Provider, error) {
	if path == "" {
		return model.NewStaticProvider(nil), nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %q: %w", path, err)
	}
	defer f.Close()

	tmpl, err := codec.DecodeJSON(f)
	if err != nil {
		return nil, fmt.Errorf("decoding %q: %w", path, err)
	}

	identifiers := make(map[string][]string)
	for k, v := range tmpl.Extra {
		seq, ok := v.AsSeq()
		if !ok {
			continue
		}
		keys := make([]string, 0, len(seq))
		for _, item := range seq {
			if s, ok := item.AsString(); ok {
				keys = append(keys, s)
			}
		}
		identifiers[k] = keys
	}
	return model.NewStaticProvider(identifiers), nil
}
