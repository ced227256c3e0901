/*
Package operation runs a patch plan against the filesystem.

	+-------------+
	|  Operation  |
	|   (Plan)    |
	+------+------+
	       |
	+------+------+      +-------------+
	|   Runner    +----->+  patchFile  |  one pipeline per file
	| (errgroup)  |      +------+------+
	+-------------+             |
	              read (live or backup) -> patch.Apply -> write

🎯 Purpose:
- Turn a config.Config into concrete per-file jobs
- Run each job as an independent read, patch, write pipeline
- Report every file's outcome without letting one failure touch another file

🔄 Flow:
1. Plan: expand globs and load replacement text for every patch. Any
   problem here stops the run before a single file is read.
2. Execute: patches run in plan order, so a later patch sees what an
   earlier one wrote. Within a patch, files run in parallel when the plan
   sets async.
3. A file is written only when its patch succeeded and the bytes changed.

🔍 Example:

	op, err := operation.New(operation.Options{Config: cfg, Store: st, Console: console})
	outcomes, err := op.Execute(ctx)
*/
package operation
