// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package patch

import (
	"github.com/walteh/markpatch/pkg/marker"
	"github.com/walteh/markpatch/pkg/region"
)

var (
	// ErrMarkerNotFound means a required marker has no occurrence
	ErrMarkerNotFound = marker.ErrNotFound

	// ErrInvalidRegion means the end marker does not follow the start marker
	ErrInvalidRegion = region.ErrInvalidRegion

	// ErrAmbiguousMode means a mode's inputs are missing or contradictory
	ErrAmbiguousMode = region.ErrAmbiguousMode
)
