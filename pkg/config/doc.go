/*
Package config loads and saves the versioning record.

🎯 Purpose:
- Reads the record a caller (CLI or any other front end) owns
- Writes it back after the caller edits it
- Creates an empty record when none exists yet

🔄 Flow:
1. Caller picks a path (DefaultPath puts it next to the executable)
2. Load decodes it by extension: .json, .yaml/.yml or .hcl
3. Caller mutates fields (SetSource, SetDestination, MaxVersions)
4. Save writes it back atomically

📝 Record:

	{
	  "ruta_origen": "/data",
	  "archivo": "report.xlsx",
	  "ruta_destino": "/versions",
	  "max_versions": 2
	}

max_versions is lenient: negative, non-numeric or null values decode to 0,
which means every version is kept.

Load does not reject blank fields. Validate reports them as ErrIncomplete so the
versioning step can tell an incomplete record apart from a missing one
(ErrNotFound).
*/
package config
