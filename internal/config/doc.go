// Package config loads cordova project configuration.
//
// The configuration is stored in cordova.json (or cordova.yaml) at the
// project root.
//
// # Configuration File Structure
//
//	{
//	  "name": "counter",
//	  "mountTarget": "#app",
//	  "server": {
//	    "address": ":8080",
//	    "path": "/ws"
//	  },
//	  "metrics": {
//	    "enabled": true,
//	    "namespace": "cordova"
//	  },
//	  "snapshot": {
//	    "bucket": "snapshots",
//	    "prefix": "renders/",
//	    "region": "eu-central-1"
//	  }
//	}
//
// # Usage
//
//	cfg, err := config.Load(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	fmt.Println("Listening on", cfg.Server.Address)
package config
