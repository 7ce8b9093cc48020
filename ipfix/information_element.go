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
	"fmt"

	"github.com/zoomoid/nvipfix/iana/semantics"
	"github.com/zoomoid/nvipfix/iana/units"
)

// penMask marks an enterprise-specific field specifier in template records
const penMask uint16 = 0x8000

// FieldKey identifies an information element. EnterpriseId is 0 for IANA elements.
type FieldKey struct {
	EnterpriseId uint32
	Id           uint16
}

func (k FieldKey) String() string {
	if k.EnterpriseId == 0 {
		return fmt.Sprintf("%d", k.Id)
	}
	return fmt.Sprintf("%d/%d", k.EnterpriseId, k.Id)
}

type InformationElement struct {
	Constructor DataTypeConstructor `yaml:"-"`

	Id           uint16 `yaml:"id"`
	Name         string `yaml:"name"`
	EnterpriseId uint32 `yaml:"pen,omitempty"`

	Type        string             `yaml:"type"`
	Semantics   semantics.Semantic `yaml:"semantics,omitempty"`
	Units       units.Unit         `yaml:"units,omitempty"`
	Description string             `yaml:"description,omitempty"`
}

func (i *InformationElement) Key() FieldKey {
	return FieldKey{EnterpriseId: i.EnterpriseId, Id: i.Id}
}

func (i *InformationElement) String() string {
	return fmt.Sprintf("%s(%s)<%s>", i.Name, i.Key(), i.Type)
}

func (i *InformationElement) Clone() *InformationElement {
	ie := *i
	return &ie
}
