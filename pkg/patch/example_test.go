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

package patch_test

import (
	"fmt"

	"github.com/walteh/markpatch/pkg/document"
	"github.com/walteh/markpatch/pkg/patch"
	"github.com/walteh/markpatch/pkg/strip"
)

func ExampleReplaceBounded() {
	doc := document.FromString("A\n/* START */\nold\n/* END */\nZ")

	res, err := patch.ReplaceBounded(doc, "/* START */", "/* END */", "new")
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}

	fmt.Println(res.Document.String())
	fmt.Printf("Regions: %d\n", res.Regions)

	// Output:
	// A
	// /* START */
	// new
	// /* END */
	// Z
	// Regions: 1
}

func ExampleReplaceTail() {
	doc := document.FromString("contract C {\n    /* INTERNAL */\n    function f() {}\n}\n")

	res, err := patch.ReplaceTail(doc, "/* INTERNAL */", "    /* INTERNAL */\n    function g() {}\n", patch.WithTerminator("}\n"))
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}

	fmt.Print(res.Document.String())

	// Output:
	// contract C {
	//     /* INTERNAL */
	//     function g() {}
	// }
}

func ExampleRebuildFromBackup() {
	backup := document.FromString("import {Old} from './Old.sol';\ncontract C {\n    using Old for uint256;\n    // BEGIN\n    stale\n    // END\n}\n")

	res, err := patch.RebuildFromBackup(backup,
		[]strip.Pattern{strip.Import("Old"), strip.Using("Old")},
		"// BEGIN", "// END",
		"    fresh\n",
	)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}

	fmt.Print(res.Document.String())
	fmt.Printf("Removed: %d\n", res.Removed)

	// Output:
	// contract C {
	//     // BEGIN
	//     fresh
	//     // END
	// }
	// Removed: 2
}

func ExampleReplaceBounded_missingMarker() {
	doc := document.FromString("A\n/* START */\nold")

	res, err := patch.ReplaceBounded(doc, "/* START */", "/* END */", "new")
	fmt.Println(err)
	fmt.Println(res.Changed())

	// Output:
	// locating bounded region: marker not found: "/* END */"
	// false
}
