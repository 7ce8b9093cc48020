/*
Copyright 2023 Alexander Bartolomey (github@alexanderbartolomey.de)

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package ipfix

import (
	"io"

	"gopkg.in/yaml.v3"
)

// Registry is the serialized form of a set of information elements
type Registry struct {
	Name   string               `yaml:"name"`
	Fields []InformationElement `yaml:"fields"`
}

// ReadYAML decodes a Registry from r. Unknown keys are rejected.
func ReadYAML(r io.Reader) ([]InformationElement, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var reg Registry
	if err := dec.Decode(&reg); err != nil {
		return nil, err
	}
	return reg.Fields, nil
}

// WriteYAML encodes ies as a Registry called name
func WriteYAML(w io.Writer, name string, ies []InformationElement) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(Registry{Name: name, Fields: ies}); err != nil {
		return err
	}
	return enc.Close()
}
