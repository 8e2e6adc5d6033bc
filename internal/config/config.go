// Package config loads the tool's configuration.
//
// The schema lives in schema.cue (embedded). A user config file is optional;
// when given it is compiled as CUE (plain JSON is valid CUE), unified with
// the schema's #Config definition and decoded. Unknown fields, wrong types
// and out-of-range values are rejected by the unification.
package config

import (
	_ "embed"
	"fmt"
	"os"
	"time"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
)

//go:embed schema.cue
var schemaSrc string

// Config is the resolved configuration.
type Config struct {
	DB               string `json:"db"`
	Key              string `json:"key"`
	Addr             string `json:"addr"`
	Lang             string `json:"lang"`
	SuccessTTLMillis int    `json:"success_ttl_ms"`
	ErrorTTLMillis   int    `json:"error_ttl_ms"`
}

// SuccessTTL returns the success notification lifetime.
func (c Config) SuccessTTL() time.Duration {
	return time.Duration(c.SuccessTTLMillis) * time.Millisecond
}

// ErrorTTL returns the error notification lifetime.
func (c Config) ErrorTTL() time.Duration {
	return time.Duration(c.ErrorTTLMillis) * time.Millisecond
}

// Default returns the configuration with every field at its schema default.
func Default() (Config, error) {
	return Load("")
}

// Load reads the config file at path and fills in defaults.
// An empty path means "no file".
func Load(path string) (Config, error) {
	var data []byte
	if path != "" {
		var err error
		data, err = os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}
	return Parse(path, data)
}

// Parse resolves a config document given as bytes. name is used in error
// positions only.
func Parse(name string, data []byte) (Config, error) {
	ctx := cuecontext.New()
	value, err := schema(ctx)
	if err != nil {
		return Config{}, err
	}

	if len(data) > 0 {
		user := ctx.CompileBytes(data, cue.Filename(name))
		if err := user.Err(); err != nil {
			return Config{}, fmt.Errorf("parse config %s: %w", name, err)
		}
		value = value.Unify(user)
	}

	if err := value.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}

	var cfg Config
	if err := value.Decode(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	return cfg, nil
}

// Check validates a Config assembled in code, such as one with command-line
// overrides applied, against the schema.
func Check(cfg Config) error {
	ctx := cuecontext.New()
	value, err := schema(ctx)
	if err != nil {
		return err
	}
	value = value.Unify(ctx.Encode(cfg))
	if err := value.Validate(cue.Concrete(true)); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

func schema(ctx *cue.Context) (cue.Value, error) {
	v := ctx.CompileString(schemaSrc, cue.Filename("schema.cue"))
	if err := v.Err(); err != nil {
		return cue.Value{}, fmt.Errorf("compile config schema: %w", err)
	}
	return v.LookupPath(cue.ParsePath("#Config")), nil
}
