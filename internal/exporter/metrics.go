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

package exporter

import "github.com/prometheus/client_golang/prometheus"

var (
	ExportedMessages = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "nvipfix",
		Subsystem: "exporter",
		Name:      "messages_total",
		Help:      "Total number of export invocations per collector",
	}, []string{"collector"})
	ExportedRecords = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "nvipfix",
		Subsystem: "exporter",
		Name:      "records_total",
		Help:      "Total number of exported flow records per collector",
	}, []string{"collector"})
	ExportErrors = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "nvipfix",
		Subsystem: "exporter",
		Name:      "errors_total",
		Help:      "Total number of export errors per collector and stage",
	}, []string{"collector", "stage"})
	Sessions = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "nvipfix",
		Subsystem: "exporter",
		Name:      "sessions",
		Help:      "Number of cached collector sessions",
	})
)

func Collectors() []prometheus.Collector {
	return []prometheus.Collector{ExportedMessages, ExportedRecords, ExportErrors, Sessions}
}
