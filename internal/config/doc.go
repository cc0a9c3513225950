// Package config loads and validates the HoopSight runtime configuration
// and resolves the file system paths derived from it.
//
// Settings stack in three layers. Struct defaults sit at the bottom, an
// optional YAML file overrides them (HOOP_CONFIG names it explicitly,
// otherwise the first config.yaml found in the conventional locations is
// used), and HOOP_* environment variables override everything:
//
//	HOOP_SERVER_PORT=9090
//	HOOP_DATA_DIR=/srv/hoopsight/data
//	HOOP_LOGGING_LEVEL=debug
//	HOOP_SECURITY_RATE_LIMIT_ENABLED=false
//
// Load returns an already validated Config. Bad ports, an empty data
// directory, missing CORS origins and out-of-range sample ratios fail
// startup; unrecognized logging values are normalized to their defaults
// instead, so a typo in a log level never takes the server down.
//
// Paths anchors the data, reports and log directories at the executable
// when the configured directories are relative, and hands out absolute
// file locations:
//
//	paths, err := config.NewPaths(cfg)
//	gamesCSV := paths.DataPath("games.csv")
//	trendCSV := paths.ReportPath("season-trend.csv")
package config
