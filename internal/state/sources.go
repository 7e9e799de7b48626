package state

import (
	"strconv"

	"github.com/juju/errors"
	"github.com/temoto/uplink/helpers"
	"github.com/temoto/uplink/internal/opcua"
	"github.com/temoto/uplink/internal/source"
	"github.com/temoto/uplink/log2"
	"github.com/temoto/uplink/uplink"
)

// BuildSources creates registry from config.
// Static channel values come from config text, code sets the rest with Point.Set.
func BuildSources(log *log2.Log, c *Config) (*source.Registry, error) {
	reg := source.NewRegistry()
	errs := make([]error, 0)

	if c.RuntimeSource.Enable {
		if err := reg.Add(source.NewRuntime(c.RuntimeSource.ID)); err != nil {
			errs = append(errs, errors.Annotate(err, "runtime_source"))
		}
	}

	for _, sc := range c.Sources {
		comp, err := buildComponent(sc)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if err = reg.Add(comp); err != nil {
			errs = append(errs, errors.Annotate(err, "config"))
			continue
		}
		log.Debugf("config source=%s channels=%d disabled=%t", sc.ID, len(sc.Channels), sc.Disabled)
	}
	return reg, helpers.FoldErrors(errs)
}

func buildComponent(sc SourceConfig) (*source.Component, error) {
	comp := source.NewComponent(sc.ID)
	if sc.Disabled {
		comp.Disable()
	}
	errs := make([]error, 0)
	for _, cc := range sc.Channels {
		if err := buildPoint(comp, cc); err != nil {
			errs = append(errs, errors.Annotatef(err, "source=%s channel=%s", sc.ID, cc.Name))
		}
	}
	return comp, helpers.FoldErrors(errs)
}

func buildPoint(comp *source.Component, cc ChannelConfig) error {
	kind, ok := uplink.ParseKind(cc.Kind)
	if !ok {
		return errors.NotValidf("kind=%q", cc.Kind)
	}
	access, err := source.ParseAccess(cc.Access)
	if err != nil {
		return err
	}
	if len(cc.Options) != 0 && kind != uplink.KindEnum {
		return errors.NotValidf("options with kind=%s", kind)
	}
	p, err := comp.AddPoint(cc.Name, kind, access)
	if err != nil {
		return err
	}
	if len(cc.Options) != 0 {
		p.SetOptions(cc.Options)
	}
	x, err := ParseValue(kind, cc.Value, cc.Options)
	if err != nil {
		return err
	}
	return p.Set(x)
}

// ParseValue converts config text to sample of kind, empty text is nil (not available).
// Enum accepts option name or number.
func ParseValue(kind uplink.Kind, s string, options []string) (interface{}, error) {
	if s == "" {
		return nil, nil
	}
	switch kind {
	case uplink.KindInt16:
		i, err := strconv.ParseInt(s, 0, 16)
		return int16(i), errors.Annotatef(err, "value=%q", s)
	case uplink.KindInt32:
		i, err := strconv.ParseInt(s, 0, 32)
		return int32(i), errors.Annotatef(err, "value=%q", s)
	case uplink.KindInt64:
		i, err := strconv.ParseInt(s, 0, 64)
		return i, errors.Annotatef(err, "value=%q", s)
	case uplink.KindFloat32:
		f, err := strconv.ParseFloat(s, 32)
		return float32(f), errors.Annotatef(err, "value=%q", s)
	case uplink.KindFloat64:
		f, err := strconv.ParseFloat(s, 64)
		return f, errors.Annotatef(err, "value=%q", s)
	case uplink.KindBool:
		b, err := strconv.ParseBool(s)
		return b, errors.Annotatef(err, "value=%q", s)
	case uplink.KindString:
		return s, nil
	case uplink.KindEnum:
		for i, o := range options {
			if o == s {
				return uplink.Enum(i), nil
			}
		}
		i, err := strconv.ParseInt(s, 0, 32)
		return uplink.Enum(i), errors.Annotatef(err, "value=%q", s)
	}
	return nil, errors.NotSupportedf("kind=%s", kind)
}

// BuildBridges binds node_id channels of registry components to OPC UA servers.
func BuildBridges(log *log2.Log, c *Config, reg *source.Registry) ([]*opcua.Bridge, error) {
	var bridges []*opcua.Bridge
	errs := make([]error, 0)
	for _, sc := range c.Sources {
		var nodes []opcua.Node
		for _, cc := range sc.Channels {
			if cc.NodeID == "" {
				continue
			}
			if !sc.Opcua.Enabled() {
				errs = append(errs, errors.NotValidf("source=%s channel=%s node_id without opcua endpoint", sc.ID, cc.Name))
				continue
			}
			p, err := point(reg, uplink.Address{Component: sc.ID, Channel: cc.Name})
			if err != nil {
				errs = append(errs, err)
				continue
			}
			nodes = append(nodes, opcua.Node{NodeID: cc.NodeID, Point: p})
		}
		if !sc.Opcua.Enabled() || sc.Disabled {
			continue
		}
		b, err := opcua.NewBridge(log.Clone(log2.LInfo), sc.Opcua, nodes)
		if err != nil {
			errs = append(errs, errors.Annotatef(err, "source=%s", sc.ID))
			continue
		}
		bridges = append(bridges, b)
	}
	return bridges, helpers.FoldErrors(errs)
}

func point(reg *source.Registry, addr uplink.Address) (*source.Point, error) {
	s, ok := reg.Get(addr.Component)
	if !ok {
		return nil, errors.NotFoundf("source=%s", addr.Component)
	}
	comp, ok := s.(*source.Component)
	if !ok {
		return nil, errors.NotSupportedf("source=%s type=%T is not settable", addr.Component, s)
	}
	p, ok := comp.Point(addr.Channel)
	if !ok {
		return nil, errors.NotFoundf("channel=%s", addr.String())
	}
	return p, nil
}
