package yamlasset

import (
	"math"

	"github.com/aretw0/animclone/pkg/domain"
	"gopkg.in/yaml.v3"
)

// number is a float field that keeps negative zero through a YAML round trip.
// A plain "-0" resolves to the integer 0, so it is written as "-0.0".
type number float64

func (n number) IsZero() bool {
	return n == 0 && !math.Signbit(float64(n))
}

func (n number) MarshalYAML() (any, error) {
	if n == 0 && math.Signbit(float64(n)) {
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!float", Value: "-0.0"}, nil
	}
	return float64(n), nil
}

type machineDoc struct {
	Ref        string          `yaml:"ref,omitempty"`
	ID         string          `yaml:"id,omitempty"`
	Name       string          `yaml:"name,omitempty"`
	Position   *domain.Vector3 `yaml:"position,omitempty"`
	Layout     *domain.Layout  `yaml:"layout,omitempty"`
	Default    string          `yaml:"default,omitempty"`
	Behaviours []behaviourDoc  `yaml:"behaviours,omitempty"`
	States     []stateDoc      `yaml:"states,omitempty"`
	Machines   []machineDoc    `yaml:"machines,omitempty"`
	AnyState   []transitionDoc `yaml:"any_state,omitempty"`
	Entry      []transitionDoc `yaml:"entry,omitempty"`
}

func (d *machineDoc) key() string {
	if d.ID != "" {
		return d.ID
	}
	return d.Name
}

type stateDoc struct {
	Ref      string          `yaml:"ref,omitempty"`
	ID       string          `yaml:"id,omitempty"`
	Name     string          `yaml:"name,omitempty"`
	Position *domain.Vector3 `yaml:"position,omitempty"`

	Motion *domain.MotionRef `yaml:"motion,omitempty"`

	Speed                      *number `yaml:"speed,omitempty"`
	SpeedParameter             string  `yaml:"speed_parameter,omitempty"`
	SpeedParameterActive       bool    `yaml:"speed_parameter_active,omitempty"`
	CycleOffset                number  `yaml:"cycle_offset,omitempty"`
	CycleOffsetParameter       string  `yaml:"cycle_offset_parameter,omitempty"`
	CycleOffsetParameterActive bool    `yaml:"cycle_offset_parameter_active,omitempty"`
	TimeParameter              string  `yaml:"time_parameter,omitempty"`
	TimeParameterActive        bool    `yaml:"time_parameter_active,omitempty"`
	Mirror                     bool    `yaml:"mirror,omitempty"`
	MirrorParameter            string  `yaml:"mirror_parameter,omitempty"`
	MirrorParameterActive      bool    `yaml:"mirror_parameter_active,omitempty"`
	IKOnFeet                   bool    `yaml:"ik_on_feet,omitempty"`
	WriteDefaultValues         bool    `yaml:"write_default_values,omitempty"`
	Tag                        string  `yaml:"tag,omitempty"`

	Behaviours  []behaviourDoc  `yaml:"behaviours,omitempty"`
	Transitions []transitionDoc `yaml:"transitions,omitempty"`
}

func (d *stateDoc) key() string {
	if d.ID != "" {
		return d.ID
	}
	return d.Name
}

type transitionDoc struct {
	Name      string `yaml:"name,omitempty"`
	To        string `yaml:"to,omitempty"`
	ToMachine string `yaml:"to_machine,omitempty"`
	Exit      bool   `yaml:"exit,omitempty"`

	Conditions []conditionDoc `yaml:"conditions,omitempty"`

	Duration            number `yaml:"duration,omitempty"`
	Offset              number `yaml:"offset,omitempty"`
	ExitTime            number `yaml:"exit_time,omitempty"`
	HasExitTime         bool   `yaml:"has_exit_time,omitempty"`
	FixedDuration       bool   `yaml:"fixed_duration,omitempty"`
	Interruption        string `yaml:"interruption,omitempty"`
	OrderedInterruption bool   `yaml:"ordered_interruption,omitempty"`
	CanTransitionToSelf bool   `yaml:"can_transition_to_self,omitempty"`
	Mute                bool   `yaml:"mute,omitempty"`
	Solo                bool   `yaml:"solo,omitempty"`
}

type conditionDoc struct {
	Mode      string `yaml:"mode"`
	Parameter string `yaml:"parameter"`
	Threshold number `yaml:"threshold,omitempty"`
}

type behaviourDoc struct {
	Type   string         `yaml:"type"`
	Fields map[string]any `yaml:"fields,omitempty"`
}
