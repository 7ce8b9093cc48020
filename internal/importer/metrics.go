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

package importer

import "github.com/prometheus/client_golang/prometheus"

var (
	ImportedRecords = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "nvipfix",
		Subsystem: "importer",
		Name:      "records_total",
		Help:      "Total number of imported flow records",
	})
	UnknownFields = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "nvipfix",
		Subsystem: "importer",
		Name:      "unknown_fields_total",
		Help:      "Total number of skipped fields with unknown names",
	})
	InvalidValues = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "nvipfix",
		Subsystem: "importer",
		Name:      "invalid_values_total",
		Help:      "Total number of skipped fields with unparseable values",
	})
)

func Collectors() []prometheus.Collector {
	return []prometheus.Collector{ImportedRecords, UnknownFields, InvalidValues}
}
