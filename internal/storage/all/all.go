// Package all registers every storage backend with the factory. The entry
// point blank-imports this package; the pipeline config decides which
// backend actually gets used, but support for all of them is built in.
package all

import (
	_ "silverpipe/internal/storage/mssql"
	_ "silverpipe/internal/storage/mysql"
	_ "silverpipe/internal/storage/postgres"
	_ "silverpipe/internal/storage/snowflake"
	_ "silverpipe/internal/storage/sqlite"
)
