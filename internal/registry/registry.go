// Package registry holds the project name to path mapping and its backing file.
package registry

import (
	orderedmap "github.com/wk8/go-ordered-map/v2"
	"gopkg.in/yaml.v3"
)

// Entry is one registered project
type Entry struct {
	Name string `json:"name" yaml:"name"`
	Path string `json:"path" yaml:"path"`
}

// Registry maps project names to paths, preserving insertion order.
// Overwriting an existing name keeps its original position.
type Registry struct {
	projects *orderedmap.OrderedMap[string, string]
}

// New returns an empty registry
func New() *Registry {
	return &Registry{projects: orderedmap.New[string, string]()}
}

// Get returns the path registered for name
func (r *Registry) Get(name string) (string, bool) {
	return r.projects.Get(name)
}

// Set registers name at path and reports whether an existing entry was replaced
func (r *Registry) Set(name, path string) bool {
	_, replaced := r.projects.Set(name, path)
	return replaced
}

// Delete removes name and reports whether it was present
func (r *Registry) Delete(name string) bool {
	_, present := r.projects.Delete(name)
	return present
}

// Len returns the number of registered projects
func (r *Registry) Len() int {
	return r.projects.Len()
}

// Names returns project names in registry order
func (r *Registry) Names() []string {
	names := make([]string, 0, r.projects.Len())
	for pair := r.projects.Oldest(); pair != nil; pair = pair.Next() {
		names = append(names, pair.Key)
	}
	return names
}

// Entries returns all projects in registry order
func (r *Registry) Entries() []Entry {
	entries := make([]Entry, 0, r.projects.Len())
	for pair := r.projects.Oldest(); pair != nil; pair = pair.Next() {
		entries = append(entries, Entry{Name: pair.Key, Path: pair.Value})
	}
	return entries
}

// MarshalJSON encodes the registry as a flat JSON object in registry order
func (r *Registry) MarshalJSON() ([]byte, error) {
	return r.projects.MarshalJSON()
}

// UnmarshalJSON replaces the registry contents with the given JSON object,
// keeping the key order of the document
func (r *Registry) UnmarshalJSON(data []byte) error {
	projects := orderedmap.New[string, string]()
	if err := projects.UnmarshalJSON(data); err != nil {
		return err
	}
	r.projects = projects
	return nil
}

// MarshalYAML encodes the registry as an ordered YAML mapping
func (r *Registry) MarshalYAML() (interface{}, error) {
	node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for pair := r.projects.Oldest(); pair != nil; pair = pair.Next() {
		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: pair.Key},
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: pair.Value},
		)
	}
	return node, nil
}
