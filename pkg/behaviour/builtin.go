package behaviour

import (
	"fmt"
	"slices"

	"github.com/aretw0/animclone/pkg/domain"
)

// Built-in type ids.
const (
	TypeParameterDriver = "parameter-driver"
	TypeLayerControl    = "layer-control"
	TypeTrackingControl = "tracking-control"
	TypePlayAudio       = "play-audio"
)

func mismatch(src domain.Behaviour, dst domain.Behaviour) error {
	return fmt.Errorf("cannot copy %s into %T", src.TypeID(), dst)
}

// ParameterOp is one change applied by a ParameterDriver.
type ParameterOp struct {
	Type   string  `yaml:"type" mapstructure:"type"` // set, add, random, copy
	Name   string  `yaml:"name" mapstructure:"name"`
	Source string  `yaml:"source,omitempty" mapstructure:"source"`
	Value  float64 `yaml:"value" mapstructure:"value"`
	Chance float64 `yaml:"chance,omitempty" mapstructure:"chance"`
}

// ParameterDriver changes animator parameters when its state is entered.
type ParameterDriver struct {
	domain.BehaviourBase `mapstructure:"-"`
	Parameters           []ParameterOp `mapstructure:"parameters"`
	LocalOnly            bool          `mapstructure:"local_only"`
	DebugString          string        `mapstructure:"debug_string"`
}

func (b *ParameterDriver) TypeID() string     { return TypeParameterDriver }
func (b *ParameterDriver) ObjectName() string { return TypeParameterDriver }

func (b *ParameterDriver) CopyTo(dst domain.Behaviour) error {
	d, ok := dst.(*ParameterDriver)
	if !ok {
		return mismatch(b, dst)
	}
	base := d.BehaviourBase
	*d = *b
	d.BehaviourBase = base
	d.Parameters = slices.Clone(b.Parameters)
	return nil
}

// LayerControl blends the weight of an animator layer.
type LayerControl struct {
	domain.BehaviourBase `mapstructure:"-"`
	Playable             string  `mapstructure:"playable"`
	Layer                int     `mapstructure:"layer"`
	GoalWeight           float64 `mapstructure:"goal_weight"`
	BlendDuration        float64 `mapstructure:"blend_duration"`
	DebugString          string  `mapstructure:"debug_string"`
}

func (b *LayerControl) TypeID() string     { return TypeLayerControl }
func (b *LayerControl) ObjectName() string { return TypeLayerControl }

func (b *LayerControl) CopyTo(dst domain.Behaviour) error {
	d, ok := dst.(*LayerControl)
	if !ok {
		return mismatch(b, dst)
	}
	base := d.BehaviourBase
	*d = *b
	d.BehaviourBase = base
	return nil
}

// TrackingControl switches body parts between tracking and animation.
// Each field holds one of "no_change", "tracking" or "animation".
type TrackingControl struct {
	domain.BehaviourBase `mapstructure:"-"`
	Head                 string `mapstructure:"head"`
	LeftHand             string `mapstructure:"left_hand"`
	RightHand            string `mapstructure:"right_hand"`
	Hip                  string `mapstructure:"hip"`
	LeftFoot             string `mapstructure:"left_foot"`
	RightFoot            string `mapstructure:"right_foot"`
	Eyes                 string `mapstructure:"eyes"`
	Mouth                string `mapstructure:"mouth"`
}

func (b *TrackingControl) TypeID() string     { return TypeTrackingControl }
func (b *TrackingControl) ObjectName() string { return TypeTrackingControl }

func (b *TrackingControl) CopyTo(dst domain.Behaviour) error {
	d, ok := dst.(*TrackingControl)
	if !ok {
		return mismatch(b, dst)
	}
	base := d.BehaviourBase
	*d = *b
	d.BehaviourBase = base
	return nil
}

// PlayAudio plays one of its clips when the state is entered.
type PlayAudio struct {
	domain.BehaviourBase `mapstructure:"-"`
	Source               string   `mapstructure:"source"`
	Clips                []string `mapstructure:"clips"`
	VolumeMin            float64  `mapstructure:"volume_min"`
	VolumeMax            float64  `mapstructure:"volume_max"`
	Loop                 bool     `mapstructure:"loop"`
	PlayOnEnter          bool     `mapstructure:"play_on_enter"`
}

func (b *PlayAudio) TypeID() string     { return TypePlayAudio }
func (b *PlayAudio) ObjectName() string { return TypePlayAudio }

func (b *PlayAudio) CopyTo(dst domain.Behaviour) error {
	d, ok := dst.(*PlayAudio)
	if !ok {
		return mismatch(b, dst)
	}
	base := d.BehaviourBase
	*d = *b
	d.BehaviourBase = base
	d.Clips = slices.Clone(b.Clips)
	return nil
}
