// Package state reads HCL configuration and builds process wide objects from it.
package state

import (
	"path/filepath"

	"github.com/hashicorp/hcl"
	"github.com/juju/errors"
	"github.com/temoto/uplink/helpers"
	"github.com/temoto/uplink/internal/opcua"
	"github.com/temoto/uplink/log2"
	uplink_config "github.com/temoto/uplink/uplink/config"
)

type Config struct {
	// includeSeen contains absolute paths to prevent include loops
	includeSeen map[string]struct{}
	// only used for Unmarshal, do not access
	XXX_Include []ConfigSource  `hcl:"include"`
	XXX_Sources []SourceConfig `hcl:"source"`

	Uplink        uplink_config.Config `hcl:"uplink"`
	RuntimeSource struct {
		Enable bool   `hcl:"enable"`
		ID     string `hcl:"id"`
	} `hcl:"runtime_source"`
	LogLevel string `hcl:"log_level"`

	// accumulated from all sources, later definitions of same id fail in BuildSources
	Sources []SourceConfig `hcl:"-"`
}

type ConfigSource struct {
	Name     string `hcl:"name,key"`
	Optional bool   `hcl:"optional"`
}

type SourceConfig struct {
	ID       string          `hcl:"id,key"`
	Disabled bool            `hcl:"disabled"`
	Channels []ChannelConfig `hcl:"channel"`
	// channels with node_id are updated from OPC UA subscription
	Opcua opcua.Config `hcl:"opcua"`
}

type ChannelConfig struct {
	Name    string   `hcl:"name,key"`
	Kind    string   `hcl:"kind"`
	Access  string   `hcl:"access"`
	Value   string   `hcl:"value"`
	Options []string `hcl:"options"`
	NodeID  string   `hcl:"node_id"`
}

func (c *Config) read(log *log2.Log, fs FullReader, source ConfigSource, errs *[]error) {
	norm := fs.Normalize(source.Name)
	if _, ok := c.includeSeen[norm]; ok {
		*errs = append(*errs, errors.Errorf("config duplicate source=%s", source.Name))
		return
	}
	log.Debugf("config reading source='%s' path=%s", source.Name, norm)
	c.includeSeen[source.Name] = struct{}{}
	c.includeSeen[norm] = struct{}{}

	bs, err := fs.ReadAll(norm)
	if bs == nil && err == nil {
		if !source.Optional {
			err = errors.NotFoundf("config required name=%s path=%s", source.Name, norm)
			*errs = append(*errs, err)
		}
		return
	}
	if err != nil {
		*errs = append(*errs, errors.Annotatef(err, "config source=%s", source.Name))
		return
	}

	err = hcl.Unmarshal(bs, c)
	if err != nil {
		err = errors.Annotatef(err, "config unmarshal source=%s content='%s'", source.Name, string(bs))
		*errs = append(*errs, err)
		return
	}
	c.Sources = append(c.Sources, c.XXX_Sources...)
	c.XXX_Sources = nil

	var includes []ConfigSource
	includes, c.XXX_Include = c.XXX_Include, nil
	for _, include := range includes {
		includeNorm := fs.Normalize(include.Name)
		if _, ok := c.includeSeen[includeNorm]; ok {
			err = errors.Errorf("config include loop: from=%s include=%s", source.Name, include.Name)
			*errs = append(*errs, err)
			continue
		}
		c.read(log, fs, include, errs)
	}
}

func ReadConfig(log *log2.Log, fs FullReader, names ...string) (*Config, error) {
	if len(names) == 0 {
		log.Fatal("code error [Must]ReadConfig() without names")
	}

	if osfs, ok := fs.(*OsFullReader); ok {
		dir, name := filepath.Split(names[0])
		osfs.SetBase(dir)
		names[0] = name
	}
	c := &Config{
		includeSeen: make(map[string]struct{}),
	}
	errs := make([]error, 0, 8)
	for _, name := range names {
		c.read(log, fs, ConfigSource{Name: name}, &errs)
	}
	return c, helpers.FoldErrors(errs)
}

func MustReadConfig(log *log2.Log, fs FullReader, names ...string) *Config {
	c, err := ReadConfig(log, fs, names...)
	if err != nil {
		log.Fatal(errors.ErrorStack(err))
	}
	return c
}
