// Package config loads the segtimer YAML configuration.
//
// A file only needs the keys it changes; everything else keeps the values
// from Default. Command line flags are applied on top by cmd/segtimer before
// Validate is called.
//
//	listen: 0.0.0.0:80
//	default_seconds: 120
//	display:
//	  driver: ht16k33
//	  address: 0x70
//	  brightness: 8
//	log:
//	  level: info
//	  events: /var/lib/segtimer/events.tlog
//	history:
//	  path: /var/lib/segtimer/history.db
//	discovery:
//	  enabled: true
package config
