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

import "errors"

var (
	ErrInfoModel            = errors.New("unable to load information model")
	ErrSession              = errors.New("unable to create session")
	ErrTemplate             = errors.New("unable to register template")
	ErrTransport            = errors.New("unable to reach collector")
	ErrUnsupportedTransport = errors.New("unsupported transport")
	ErrInvalidArguments     = errors.New("invalid arguments")
)
