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

// Package nvapi fetches connection statistics of a switch as flow records.
package nvapi

import (
	"context"
	"errors"

	"github.com/zoomoid/nvipfix/internal/datetime"
	"github.com/zoomoid/nvipfix/internal/flow"
)

var (
	ErrConnect      = errors.New("unable to connect to switch api")
	ErrAuth         = errors.New("switch api authentication failed")
	ErrNoSwitchHost = errors.New("switch-nvapi-host is not configured")
)

// Source yields the connections observed by a switch within a time window
type Source interface {
	Records(ctx context.Context, start, end datetime.Datetime) (*flow.List, error)
}
