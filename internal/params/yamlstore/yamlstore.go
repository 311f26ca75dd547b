// Package yamlstore persists params.Parameters in a YAML file.
//
// The default group is written under "default" and named groups under
// "groups", so a group may be called "default" without clashing:
//
//	default:
//	  locale: en-GB
//	groups:
//	  threeDS2DirectoryServerInformation:
//	    directoryServerId: F013371337
//	    publicKey: eyJrdHkiOi...
//
// yaml.Marshal on maps produces alphabetical key ordering, so the output is
// deterministic and diff-friendly.
package yamlstore

import (
	"fmt"

	"svcparams/internal/fsutil"
	"svcparams/internal/params"

	"gopkg.in/yaml.v3"
)

// document is the on-disk shape of a parameters file.
type document struct {
	Default map[string]string            `yaml:"default,omitempty"`
	Groups  map[string]map[string]string `yaml:"groups,omitempty"`
}

// Store keeps a parameters file and its in-memory copy in step.
type Store struct {
	path string
	data *params.Parameters
}

// New creates a Store that reads from and writes to path.
// If the file exists it is loaded; if it does not exist the store
// starts empty and the file is created on the first write.
func New(path string) (*Store, error) {
	s := &Store{path: path}
	if err := s.readFromDisk(); err != nil {
		return nil, err
	}
	return s, nil
}

// Path returns the file backing the store.
func (s *Store) Path() string {
	return s.path
}

// Params returns a copy of the stored parameters.
func (s *Store) Params() *params.Parameters {
	return s.data.Clone()
}

// Get returns the value for key in group and whether it was found.
func (s *Store) Get(key string, group params.Group) (string, bool) {
	return s.data.GetIn(key, group)
}

// Set writes key in group and persists to disk. Setting None removes the key.
func (s *Store) Set(key string, v params.Value, group params.Group) error {
	return s.Update(func(p *params.Parameters) {
		p.SetIn(key, v, group)
	})
}

// Remove removes key from group and persists to disk.
func (s *Store) Remove(key string, group params.Group) error {
	return s.Set(key, params.None(), group)
}

// Import copies the prefixed entries of source into group and persists to
// disk. With replace set, group is cleared first. It returns the number of
// entries copied.
func (s *Store) Import(source map[string]string, prefix string, group params.Group, replace bool) (int, error) {
	var n int
	err := s.Update(func(p *params.Parameters) {
		if replace {
			p.ClearGroup(group)
		}
		n = p.ImportInto(source, prefix, group)
	})
	return n, err
}

// Update acquires the file lock, re-reads the file (picking up writes from
// other processes), applies fn and writes the result back atomically.
func (s *Store) Update(fn func(p *params.Parameters)) error {
	return fsutil.WithLock(s.path, func() error {
		if err := s.readFromDisk(); err != nil {
			return err
		}

		fn(s.data)

		raw, err := Marshal(s.data)
		if err != nil {
			return err
		}
		return fsutil.AtomicWrite(s.path, raw, 0600)
	})
}

// readFromDisk reloads s.data from the file on disk.
func (s *Store) readFromDisk() error {
	raw, err := fsutil.ReadIfExists(s.path)
	if err != nil {
		return fmt.Errorf("reading params file: %w", err)
	}
	p, err := Unmarshal(raw)
	if err != nil {
		return err
	}
	s.data = p
	return nil
}

// Marshal encodes p in the parameters file format.
func Marshal(p *params.Parameters) ([]byte, error) {
	doc := document{}
	for _, g := range p.Groups() {
		entries := p.Group(g)
		if g == params.DefaultGroup {
			doc.Default = entries
			continue
		}
		if doc.Groups == nil {
			doc.Groups = make(map[string]map[string]string)
		}
		doc.Groups[string(g)] = entries
	}

	raw, err := yaml.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("encoding params: %w", err)
	}
	return raw, nil
}

// Unmarshal decodes a parameters file. Empty input yields empty Parameters.
func Unmarshal(raw []byte) (*params.Parameters, error) {
	p := params.New()
	if len(raw) == 0 {
		return p, nil
	}

	var doc document
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("parsing params file: %w", err)
	}

	for k, v := range doc.Default {
		p.Set(k, params.Some(v))
	}
	for g, entries := range doc.Groups {
		for k, v := range entries {
			p.SetIn(k, params.Some(v), params.Group(g))
		}
	}
	return p, nil
}
