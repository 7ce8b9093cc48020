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

/*
Package ipfix encodes IPFIX messages according to RFC 7011 for exporting processes.

Information elements are resolved by name from an InfoModel, which is populated from a YAML
registry. The default registry covers the IANA elements used for flow export, plus the
enterprise-specific elements known to this module.

A Session owns the templates of one observation domain and the message sequence number.
Records are appended to a Buffer bound to a session and a writer, and every call to Emit
writes exactly one message with a single Write call, such that a datagram socket receives
one message per datagram:

	session := ipfix.NewSession(model, 1)
	id, err := session.AddTemplate(ipfix.FieldSpec{Name: "sourceIPv4Address"}, ipfix.FieldSpec{Name: "initiatorOctets"})
	if err != nil {
		return err
	}
	buf := ipfix.NewBuffer(session, conn)
	buf.AppendTemplates()
	rec, _ := session.NewRecord(id)
	rec.Set("sourceIPv4Address", uint32(0x0A000001))
	rec.Set("initiatorOctets", uint64(1500))
	if err := buf.Append(rec); err != nil {
		return err
	}
	return buf.Emit()

A Decoder reads such messages back, learning templates per observation domain from the
template sets it encounters.
*/
package ipfix
