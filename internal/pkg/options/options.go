// Package options merges configuration from command line flags, OS ENV
// variables and ".env" files in the working directory.
package options

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cast"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/umisama/go-regexpcache"

	"github.com/osdpack/osdpack/internal/pkg/env"
	"github.com/osdpack/osdpack/internal/pkg/filesystem"
	"github.com/osdpack/osdpack/internal/pkg/log"
)

// EnvPrefix of the ENV variables bound to flags, eg. "--bearer" <-> "OPENSEARCH_BEARER".
const EnvPrefix = "OPENSEARCH_"

// Options contains parsed flags and ENV variables.
type Options struct {
	envNaming *env.NamingConvention
	envs      *env.Map
	parser    *viper.Viper
}

func NewOptions() *Options {
	return &Options{
		envNaming: env.NewNamingConvention(EnvPrefix),
		parser:    viper.New(),
	}
}

// Load all sources of the options, the value priority is:
// flag set by the user > OS ENV > ".env" file > flag default.
func (o *Options) Load(logger log.Logger, osEnvs *env.Map, fs filesystem.Fs, flags *pflag.FlagSet) error {
	// Load is called on each command run, start from a clean parser
	o.parser = viper.New()

	// ENVs from the OS are merged with ".env" files, the OS wins
	o.envs = env.LoadDotEnv(logger, osEnvs, fs, []string{"."})

	var bindErr error
	flags.VisitAll(func(flag *pflag.Flag) {
		if err := o.parser.BindPFlag(flag.Name, flag); err != nil {
			bindErr = err
			return
		}

		// A flag set by the user has priority over the ENV
		if !flag.Changed {
			if value, found := o.envs.Lookup(o.envNaming.FlagToEnv(flag.Name)); found {
				o.parser.Set(flag.Name, value)
			}
		}
	})

	return bindErr
}

// Envs returns the merged OS and ".env" variables, nil before Load.
func (o *Options) Envs() *env.Map {
	return o.envs
}

func (o *Options) Set(key string, value interface{}) {
	o.parser.Set(key, value)
}

func (o *Options) GetString(key string) string {
	return cast.ToString(o.parser.Get(key))
}

func (o *Options) GetBool(key string) bool {
	return cast.ToBool(o.parser.Get(key))
}

// Dump set options for debugging, credentials are masked.
func (o *Options) Dump() string {
	var out strings.Builder
	out.WriteString("Parsed options:")

	keys := o.parser.AllKeys()
	sort.Strings(keys)
	for _, key := range keys {
		value := o.parser.Get(key)
		if str, ok := value.(string); ok && str != "" && isSecretKey(key) {
			if len(str) > 7 {
				str = str[:7]
			}
			value = str + "*****"
		}
		out.WriteString(fmt.Sprintf("\n  %s = %#v", key, value))
	}

	return out.String()
}

func isSecretKey(key string) bool {
	return regexpcache.MustCompile(`(?i)(token|password|secret|bearer)`).MatchString(key)
}
