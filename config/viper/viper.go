// Copyright (c) 2021 Patrick Ascher <development@fullhouse-productions.com>. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package viper provides a wrapper for the https://github.com/spf13/viper package.
// It offers a different callback function, to get access to the viper instance.
// By default, the watcher will automatically unmarshal the data of the defined configuration struct.
package viper

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/ivanfilho21/database/config"
	"github.com/spf13/viper"
)

// init registers the viper provider.
func init() {
	err := config.Register(config.VIPER, new(viperProvider))
	if err != nil {
		log.Fatal(err)
	}
}

// Error messages
var (
	ErrOptions   = errors.New("viper-provider: options must be of type viper.Options")
	ErrMandatory = errors.New("viper-provider: viper.Options file-name, path and type are mandatory")
)

// Options for the viper provider.
type Options struct {
	// FileName of the configuration, with or without extension.
	FileName string
	// FileType of the configuration (json, yaml, toml, ...).
	FileType string
	// FilePath to look into.
	FilePath string
	// Watch for file changes.
	Watch bool
	// WatchCallback can be defined.
	// By default, the config struct gets updated on changes.
	WatchCallback func(cfg interface{}, viper *viper.Viper, e fsnotify.Event)
	// EnvPrefix for environment variables, for example "DB" reads DB_DATABASES.
	EnvPrefix string
	// EnvAutomatic check if environment variables match any of the existing keys.
	// Nested keys are joined by an underscore (databases.host -> DATABASES_HOST).
	EnvAutomatic bool
	// EnvBind binds a Viper key to a ENV variable.
	EnvBind []string
}

// vInstance with the configuration and options.
// Needed for the callbacks, because of limits of the standard viper callback arguments.
type vInstance struct {
	viper   *viper.Viper
	cfg     interface{}
	options Options
}

// vInstances are keyed by the absolute filepath, the only argument of the viper watch-callback.
var (
	mu         sync.Mutex
	vInstances map[string]*vInstance
)

// viperProvider satisfies the config.Interface.
type viperProvider struct{}

// Parse will configure viper and unmarshal the config into the config struct.
// If Options.Watch is activated, the configuration will automatically be updated on file changes.
// Filename, path and type are mandatory.
func (vp *viperProvider) Parse(cfg interface{}, opt interface{}) error {
	options, ok := opt.(Options)
	if !ok {
		return ErrOptions
	}

	if options.FileName == "" || options.FilePath == "" || options.FileType == "" {
		return ErrMandatory
	}

	i, err := instance(cfg, options)
	if err != nil {
		return fmt.Errorf("viper-provider: %w", err)
	}

	i.viper.SetConfigName(options.FileName)
	i.viper.AddConfigPath(options.FilePath)
	i.viper.SetConfigType(options.FileType)

	i.viper.OnConfigChange(func(e fsnotify.Event) {
		mu.Lock()
		inst, ok := vInstances[e.Name]
		mu.Unlock()
		if !ok {
			return
		}
		_ = inst.viper.Unmarshal(inst.cfg)
		if inst.options.WatchCallback != nil {
			inst.options.WatchCallback(inst.cfg, inst.viper, e)
		}
	})

	if options.EnvPrefix != "" {
		i.viper.SetEnvPrefix(options.EnvPrefix)
	}
	if len(options.EnvBind) != 0 {
		// no error can happen because the length is checked.
		_ = i.viper.BindEnv(options.EnvBind...)
	}
	if options.EnvAutomatic {
		i.viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
		i.viper.AutomaticEnv()
	}

	if err = i.viper.ReadInConfig(); err != nil {
		return err
	}

	// the watcher spawns a goroutine, it must start after the config was read.
	if options.Watch {
		i.viper.WatchConfig()
	}

	return i.viper.Unmarshal(cfg)
}

// instance returns the viper instance of the given file.
// If it already exists, the cfg and options will be updated. Otherwise a new instance will be created.
func instance(cfg interface{}, opt Options) (*vInstance, error) {
	name, err := filepath.Abs(filepath.Join(opt.FilePath, opt.FileName))
	if err != nil {
		return nil, err
	}
	if _, err = os.Stat(name); err != nil {
		return nil, err
	}

	mu.Lock()
	defer mu.Unlock()
	if vInstances == nil {
		vInstances = make(map[string]*vInstance)
	}

	if v, ok := vInstances[name]; ok {
		v.cfg = cfg
		v.options = opt
		return v, nil
	}

	vInstances[name] = &vInstance{options: opt, cfg: cfg, viper: viper.New()}
	return vInstances[name], nil
}
