/*
 * config.go, part of zeomerge.
 *
 * Copyright 2026 The zeomerge Authors
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

package batch

import (
	"errors"
	"fmt"
	"os"
	"reflect"
	"runtime"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/rmera/zeomerge"
	"github.com/rmera/zeomerge/structio"
	"gopkg.in/yaml.v3"
)

var (
	configValidate *validator.Validate
	radii          = zeomerge.DefaultRadii()
)

func init() {
	configValidate = validator.New()
	_ = configValidate.RegisterValidation("element", validateElement)
	//errors name the settings as they are written in the YAML file
	configValidate.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("yaml"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
}

//validateElement accepts the element symbols that have a covalent radius.
func validateElement(fl validator.FieldLevel) bool {
	_, ok := radii.Radius(fl.Field().String())
	return ok
}

//Config contains all the settings for a batch run. It is read-only once
//the run starts, so it can be shared by all workers.
type Config struct {
	//Reactions are the reaction names, as they appear in file names.
	Reactions []string `yaml:"reactions" json:"reactions" validate:"required,min=1,dive,required"`

	HostDir   string `yaml:"host_dir" json:"host_dir"`
	GuestDir  string `yaml:"guest_dir" json:"guest_dir"`
	OutputDir string `yaml:"output_dir" json:"output_dir"`

	//Extension of the files written, ".cif" by default. It can
	//carry a compression suffix, as in ".cif.gz".
	OutputExt string `yaml:"output_ext" json:"output_ext"`

	SeedElements      []string `yaml:"seed_elements" json:"seed_elements" validate:"dive,element"`
	ProtectedElements []string `yaml:"protected_elements" json:"protected_elements" validate:"dive,element"`
	//Elements removed from every host before merging.
	StripElements []string `yaml:"strip_elements" json:"strip_elements" validate:"dive,element"`

	Scale   float64 `yaml:"scale" json:"scale" validate:"gt=1"`
	Skin    float64 `yaml:"skin" json:"skin" validate:"gte=0"`
	TolSame float64 `yaml:"tol_same" json:"tol_same" validate:"gt=0"`
	//If true, molecule atoms close to any host atom are dropped, whatever their element.
	AnySymbol bool `yaml:"any_symbol" json:"any_symbol"`

	//Region growth, for the select command.
	SafeElements []string `yaml:"safe_elements" json:"safe_elements" validate:"dive,element"`
	Shells       int      `yaml:"n_shells" json:"n_shells" validate:"gte=0"`

	Workers int `yaml:"workers" json:"workers" validate:"gte=1"`
}

//DefaultConfig returns the settings used when nothing else is given.
func DefaultConfig() *Config {
	return &Config{
		Reactions:         []string{"CH3Z-HMB", "CH3OH-TMB", "CH3Z-Toluene", "CH3OH-HMB", "CH3OH-Toluene", "CH3Z-TMB"},
		HostDir:           "data",
		GuestDir:          "Scaling-Si-6R",
		OutputDir:         "merged3",
		OutputExt:         ".cif",
		SeedElements:      zeomerge.DefaultSeeds().Sorted(),
		ProtectedElements: zeomerge.DefaultProtected().Sorted(),
		StripElements:     []string{"H"},
		Scale:             zeomerge.DefaultScale,
		Skin:              0,
		TolSame:           zeomerge.DefaultTolSame,
		Shells:            2,
		Workers:           runtime.NumCPU(),
	}
}

//LoadConfig reads a YAML file with settings. Settings absent from the file
//keep their default values.
func LoadConfig(path string) (*Config, error) {
	C := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, C); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	return C, C.Validate()
}

//Validate returns an error if some setting can't work.
func (C *Config) Validate() error {
	err := configValidate.Struct(C)
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		msgs := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			msgs = append(msgs, fmt.Sprintf("%s=%v fails %s%s", fe.Field(), fe.Value(), fe.Tag(), param(fe.Param())))
		}
		return fmt.Errorf("config: %s", strings.Join(msgs, "; "))
	} else if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if _, err := structio.FormatOf("merged" + C.OutputExt); err != nil {
		return fmt.Errorf("config: can't write structures with extension %q", C.OutputExt)
	}
	return nil
}

func param(p string) string {
	if p == "" {
		return ""
	}
	return " " + p
}

//Builder returns the neighbor graph builder for these settings.
func (C *Config) Builder() *zeomerge.GraphBuilder {
	B := zeomerge.NewGraphBuilder(C.Scale)
	B.Skin = C.Skin
	return B
}

//ClassifyOptions returns the element roles for molecule extraction.
func (C *Config) ClassifyOptions() zeomerge.ClassifyOptions {
	return zeomerge.ClassifyOptions{
		Seeds:     zeomerge.NewElements(C.SeedElements...),
		Protected: zeomerge.NewElements(C.ProtectedElements...),
	}
}

//Merger returns the merger for these settings.
func (C *Config) Merger() *zeomerge.Merger {
	M := &zeomerge.Merger{Tol: C.TolSame, Match: zeomerge.SameSymbol}
	if C.AnySymbol {
		M.Match = zeomerge.AnySymbol
	}
	return M
}

//GrowOptions returns the settings for region growth.
func (C *Config) GrowOptions() zeomerge.GrowOptions {
	return zeomerge.GrowOptions{
		Seeds:  zeomerge.NewElements(C.SeedElements...),
		Safe:   zeomerge.NewElements(C.SafeElements...),
		Shells: C.Shells,
	}
}
