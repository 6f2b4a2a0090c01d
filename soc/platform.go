package soc

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"

	"golang.org/x/exp/slices"
	"gopkg.in/yaml.v3"

	"rvblink/core"
)

//go:embed platforms.yaml
var rawPlatforms []byte

var platforms []Platform

var (
	ErrUnknownPlatform = errors.New("unknown platform")
	ErrInvalidPlatform = errors.New("invalid platform")
	ErrImageTooLarge   = errors.New("firmware image too large")
)

// Platform describes one FPGA board build of the SoC.
type Platform struct {
	Name        string     `yaml:"name"`
	Description string     `yaml:"description"`
	Device      string     `yaml:"device"`
	Package     string     `yaml:"package"`
	Speed       string     `yaml:"speed"`
	Clock       Clock      `yaml:"clock"`
	Resources   []Resource `yaml:"resources"`
	IMemWords   int        `yaml:"imemWords"`
	DMemWords   int        `yaml:"dmemWords"`
	GPOBase     uint32     `yaml:"gpoBase"`
}

// Clock is the board oscillator feeding the core.
type Clock struct {
	Name   string `yaml:"name"`
	Pin    string `yaml:"pin"`
	Hz     uint64 `yaml:"hz"`
	IOType string `yaml:"ioType"`
}

// Resource is a named group of pins the gateware requests.
type Resource struct {
	Name   string   `yaml:"name"`
	Pins   []string `yaml:"pins"`
	Dir    string   `yaml:"dir"`
	IOType string   `yaml:"ioType"`
}

// Platforms returns the built-in platform catalogue.
func Platforms() []Platform {
	return platforms
}

// FindPlatform looks a built-in platform up by name.
func FindPlatform(name string) (Platform, error) {
	i := slices.IndexFunc(platforms, func(p Platform) bool {
		return p.Name == strings.ToLower(name)
	})
	if i < 0 {
		return Platform{}, fmt.Errorf("%w: %q", ErrUnknownPlatform, name)
	}
	return platforms[i], nil
}

// LoadPlatform parses a single platform description from a YAML file and
// fills in missing values from the defaults.
func LoadPlatform(path string) (Platform, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Platform{}, err
	}
	return ParsePlatform(data)
}

// ParsePlatform parses a single platform description.
func ParsePlatform(data []byte) (Platform, error) {
	var p Platform
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&p); err != nil {
		return Platform{}, fmt.Errorf("%w: %v", ErrInvalidPlatform, err)
	}

	applyDefaults(&p)

	if err := p.Validate(); err != nil {
		return Platform{}, err
	}
	return p, nil
}

// applyDefaults fills in missing configuration values with the blink board's
func applyDefaults(p *Platform) {
	if p.Name == "" {
		p.Name = "custom"
	}
	if p.Device == "" {
		p.Device = "LFE5U-45F"
	}
	if p.Package == "" {
		p.Package = "BG256"
	}
	if p.Speed == "" {
		p.Speed = "6"
	}
	if p.Clock.Hz == 0 {
		p.Clock.Hz = core.DefaultClockHz
	}
	if p.IMemWords == 0 {
		p.IMemWords = 1024
	}
	if p.DMemWords == 0 {
		p.DMemWords = 1024
	}
	if p.GPOBase == 0 {
		p.GPOBase = uint32(core.GPOAddress)
	}
}

// Validate checks the platform can host the blink firmware.
func (p Platform) Validate() error {
	if p.IMemWords <= 0 || p.DMemWords <= 0 {
		return fmt.Errorf("%w: %s: memory depths must be positive", ErrInvalidPlatform, p.Name)
	}
	if p.Clock.Hz == 0 {
		return fmt.Errorf("%w: %s: clock frequency is zero", ErrInvalidPlatform, p.Name)
	}
	if region(p.GPOBase) != RegionGPO {
		return fmt.Errorf("%w: %s: GPO base %#x is outside the GPO region", ErrInvalidPlatform, p.Name, p.GPOBase)
	}
	return nil
}

// Resource looks up a pin resource by name.
func (p Platform) Resource(name string) (Resource, bool) {
	i := slices.IndexFunc(p.Resources, func(r Resource) bool { return r.Name == name })
	if i < 0 {
		return Resource{}, false
	}
	return p.Resources[i], true
}

func init() {
	var t struct {
		Elements []Platform `yaml:"platforms"`
	}
	if err := yaml.Unmarshal(rawPlatforms, &t); err != nil {
		panic(err)
	}

	for i := range t.Elements {
		applyDefaults(&t.Elements[i])
	}
	platforms = t.Elements
}
