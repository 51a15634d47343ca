/*
Package operation creates timestamped versions of a single file.

	+-----------+      +-------------+      +-----------+
	|  config   | ---> |  Versioner  | ---> | versions  |
	| (record)  |      | (copy+keep) |      | (list/rm) |
	+-----------+      +-------------+      +-----------+

🎯 Purpose:
- Validates the record (three non-blank fields)
- Copies the source to {dest}/{base}_{YYYYMMDD_HHMMSS}{ext} with its metadata
- Deletes versions beyond max_versions, newest kept

🔄 Flow:
1. Validate -> ErrConfigIncomplete
2. Stat source -> ErrSourceNotFound
3. MkdirAll destination -> ErrDestinationUnwritable
4. Copy bytes, permissions and mtime -> ErrDestinationUnwritable
5. List + prune (failures are reported on the Result, never returned)

⚠️ Known behavior:
- Two runs in the same second produce the same name; the second overwrites
  the first.
- Without Options.Atomic the copy writes the destination in place, so a crash
  mid-copy can leave a truncated version behind.
- Nothing locks the destination; concurrent runs may prune each other's view.

🔍 Example:

	path, err := operation.VersionNow(ctx, "", nil)
	switch operation.KindOf(err) {
	case operation.KindConfigNotFound:
		// create a default record and ask the user to fill it
	case operation.KindConfigIncomplete, operation.KindSourceNotFound:
		// show err verbatim
	}
*/
package operation
