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

// FieldBuilder creates template fields from information elements. The element must carry
// a constructor, which is the case for every element obtained from an InfoModel.
type FieldBuilder struct {
	prototype *InformationElement
	length    uint16
}

func NewFieldBuilder(ie *InformationElement) *FieldBuilder {
	return &FieldBuilder{
		prototype: ie,
	}
}

// SetLength sets a reduced encoding length. 0 keeps the data type's default length.
func (b *FieldBuilder) SetLength(length uint16) *FieldBuilder {
	b.length = length
	return b
}

// SetPEN sets the field's Private Enterprise Number
func (b *FieldBuilder) SetPEN(pen uint32) *FieldBuilder {
	b.prototype.EnterpriseId = pen
	return b
}

func (b *FieldBuilder) Complete() Field {
	constructor, length := b.prototype.Constructor, b.length
	if length != 0 {
		constructor = func() DataType {
			return b.prototype.Constructor().SetLength(length)
		}
	}
	return &FixedLengthField{
		id:          b.prototype.Id,
		name:        b.prototype.Name,
		pen:         b.prototype.EnterpriseId,
		constructor: constructor,
		prototype:   b.prototype,
	}
}
