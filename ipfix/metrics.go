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

import "github.com/prometheus/client_golang/prometheus"

var (
	EncodedMessages = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "nvipfix",
		Name:      "encoder_messages_total",
		Help:      "Total number of IPFIX messages written by export buffers",
	})
	EncodedBytes = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "nvipfix",
		Name:      "encoder_bytes_total",
		Help:      "Total number of bytes of IPFIX messages written by export buffers",
	})
	EncodedRecords = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "nvipfix",
		Name:      "encoder_records_total",
		Help:      "Total number of encoded records per kind",
	}, []string{"kind"})
	EncoderErrors = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "nvipfix",
		Name:      "encoder_errors_total",
		Help:      "Total number of errors while encoding or writing messages",
	})

	DecodedMessages = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "nvipfix",
		Name:      "decoder_messages_total",
		Help:      "Total number of IPFIX messages read by decoders",
	})
	DecoderErrors = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "nvipfix",
		Name:      "decoder_errors_total",
		Help:      "Total number of malformed or undecodable messages",
	})
)

// Collectors returns all metrics of the package for registration
func Collectors() []prometheus.Collector {
	return []prometheus.Collector{EncodedMessages, EncodedBytes, EncodedRecords, EncoderErrors, DecodedMessages, DecoderErrors}
}
