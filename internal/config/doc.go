// Package config loads uniqueid.yaml.
//
// # Configuration File Structure
//
//	server:
//	  addr: localhost:3000
//	  read_timeout: 5s
//	log:
//	  level: debug
//	  format: json
//	render:
//	  pretty: true
//	demo:
//	  items: 3
//	  version: v1
//	metrics:
//	  enabled: true
//	  namespace: uniqueid
//
// Environment variables prefixed with UNIQUEID_ override file values:
// UNIQUEID_ADDR, UNIQUEID_LOG_LEVEL, UNIQUEID_LOG_FORMAT, UNIQUEID_ITEMS and
// UNIQUEID_METRICS.
//
// # Usage
//
//	cfg, err := config.Load(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	fmt.Println("Addr:", cfg.Server.Addr)
package config
