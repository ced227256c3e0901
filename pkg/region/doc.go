/*
Package region computes which lines of a document a patch replaces.

	+-----------+      +-----------+      +-------------+
	|   Tail    |      |  Bounded  |      | Statements  |
	| S .. EOF  |      | S .. E)   |      | line by line|
	+-----+-----+      +-----+-----+      +------+------+
	      |                  |                   |
	      +--------+---------+-------------------+
	               |
	        +------+------+
	        | marker.Scan |
	        +-------------+

🎯 Rules:
- Tail: from the first start marker line to the end of the document. Any
  closing syntax after the marker goes with it; the replacement must
  supply it.
- Bounded: from the first start marker line up to the first end marker
  line that comes after it. The end marker line is never part of the
  region.
- Statements: each matching line on its own, never an error.

When a marker occurs more than once the first occurrence wins.
*/
package region
