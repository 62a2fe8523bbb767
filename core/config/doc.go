// Package config provides configuration management for dns-fleet.
//
// Configuration is read from environment variables, optionally preloaded from
// a .env file with godotenv. Defaults come from the `default` struct tags of
// each section and are registered with Viper so AutomaticEnv can override them.
//
// # Configuration Structure
//
//   - Server: HTTP port, API key, read timeout
//   - Log: logging level and format
//   - Database: node registry connection (mysql, sqlite)
//   - Storage: S3/MinIO settings for archived drift reports
//   - Cluster: node seed list, timeouts, capacity, fairness and dedupe tuning
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Cluster.Capacity)
package config
