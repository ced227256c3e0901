// Package patch replaces marker-delimited regions of a text document.
//
//	+---------------+   +------------------+   +---------------------+
//	|  ReplaceTail  |   |  ReplaceBounded  |   |  RebuildFromBackup  |
//	+-------+-------+   +--------+---------+   +----------+----------+
//	        |                    |                        |
//	        |                    |              +---------+---------+
//	        |                    |              | strip.All         |
//	        |                    |              +---------+---------+
//	        |                    +<-----------------------+
//	+-------+--------------------+-------+
//	|          region.Tail / Bounded     |
//	+------------------+-----------------+
//	                   |
//	            +------+------+
//	            | marker.Scan |
//	            +-------------+
//
// 🎯 Purpose:
// - Regenerate named sections of generated or hand-maintained files
// - Leave every byte outside the replaced span untouched
// - Never hand back a half-patched document
//
// ⚡ Guarantees:
//   - Every operation is a pure function of its inputs; the same inputs give
//     the same bytes, so a patch can be re-run safely.
//   - On any error the result carries the input document unchanged and the
//     error wraps one of ErrMarkerNotFound, ErrInvalidRegion or
//     ErrAmbiguousMode.
//
// ⚠️ Tail mode drops everything after the start marker, closing braces
// included. The replacement (or WithTerminator) has to put them back.
//
// 🔍 Example:
//
//	res, err := patch.ReplaceBounded(doc, "/* VIEW FUNCTIONS */", "/* INTERNAL FUNCTIONS */", body)
//	if errors.Is(err, patch.ErrMarkerNotFound) {
//		// leave the file alone
//	}
//	os.WriteFile(path, res.Document.Bytes(), 0o644)
package patch
