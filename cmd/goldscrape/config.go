package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/alecthomas/kong"
	"gopkg.in/yaml.v3"
)

// YAMLResolver loads flag values from a YAML document of scalar keys named
// after the flags. Dashed flag names may also be written with underscores.
//
//	endpoint: http://genomesonline.org/cgi-bin/GOLD/GOLDCards.cgi
//	rate: 0.5
//	timeout: 30s
func YAMLResolver(r io.Reader) (kong.Resolver, error) {
	values := map[string]any{}
	if err := yaml.NewDecoder(r).Decode(&values); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parsing YAML config: %w", err)
	}

	return kong.ResolverFunc(func(_ *kong.Context, _ *kong.Path, flag *kong.Flag) (any, error) {
		for _, key := range []string{flag.Name, strings.ReplaceAll(flag.Name, "-", "_")} {
			v, ok := values[key]
			if !ok {
				continue
			}
			switch v.(type) {
			case map[string]any, []any:
				return nil, fmt.Errorf("config key %q must be a scalar", key)
			case nil:
				return nil, nil
			}
			return fmt.Sprint(v), nil
		}
		return nil, nil
	}), nil
}
