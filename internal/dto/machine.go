package dto

import (
	"sort"
	"strconv"

	"github.com/aretw0/turing/pkg/machines"
)

// MachineInfo is the transport view of a machine definition. Tables are functions and
// cannot be serialized, so only their size is exposed.
type MachineInfo struct {
	Name        string `json:"name" yaml:"name" mapstructure:"name"`
	Description string `json:"description,omitempty" yaml:"description,omitempty" mapstructure:"description"`
	Alphabet    string `json:"alphabet" yaml:"alphabet" mapstructure:"alphabet"`
	Fill        string `json:"fill" yaml:"fill" mapstructure:"fill"`
	Cursor      int    `json:"cursor" yaml:"cursor" mapstructure:"cursor"`
	States      int    `json:"states" yaml:"states" mapstructure:"states"`

	// HaltLabels is keyed by the decimal state index.
	HaltLabels map[string]string `json:"halt_labels,omitempty" yaml:"halt_labels,omitempty" mapstructure:"halt_labels"`
}

// FromDefinition builds the transport view of def.
func FromDefinition(def machines.Definition) MachineInfo {
	info := MachineInfo{
		Name:        def.Name,
		Description: def.Description,
		Alphabet:    string(def.Alphabet),
		Fill:        string(def.Fill),
		Cursor:      def.Cursor,
		States:      len(def.Table),
	}
	if len(def.HaltLabels) > 0 {
		info.HaltLabels = make(map[string]string, len(def.HaltLabels))
		for state, label := range def.HaltLabels {
			info.HaltLabels[strconv.Itoa(state)] = label
		}
	}
	return info
}

// FromDefinitions converts a catalog, keeping its order.
func FromDefinitions(defs []machines.Definition) []MachineInfo {
	infos := make([]MachineInfo, 0, len(defs))
	for _, def := range defs {
		infos = append(infos, FromDefinition(def))
	}
	return infos
}

// SortedLabels returns the halt labels ordered by state index.
func (m MachineInfo) SortedLabels() []string {
	states := make([]int, 0, len(m.HaltLabels))
	for k := range m.HaltLabels {
		if n, err := strconv.Atoi(k); err == nil {
			states = append(states, n)
		}
	}
	sort.Ints(states)

	labels := make([]string, 0, len(states))
	for _, s := range states {
		labels = append(labels, strconv.Itoa(s)+": "+m.HaltLabels[strconv.Itoa(s)])
	}
	return labels
}
