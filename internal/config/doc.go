// Package config loads settings for the wand command line tool.
//
// Settings live in wand.json in the working directory. Every field has a
// default, so the file is optional. After the file is read, WAND_*
// environment variables override individual fields.
//
// # Configuration File Structure
//
//	{
//	  "preview": {
//	    "host": "localhost",
//	    "port": 4000,
//	    "dir": "site",
//	    "liveReload": true,
//	    "pollInterval": "500ms"
//	  },
//	  "publish": {
//	    "bucket": "my-site",
//	    "prefix": "pages/",
//	    "region": "eu-west-1",
//	    "cacheControl": "max-age=300"
//	  },
//	  "log": {
//	    "level": "info",
//	    "json": false
//	  }
//	}
//
// # Environment
//
// Variables are named after the JSON path: WAND_PREVIEW_PORT,
// WAND_PUBLISH_BUCKET, WAND_LOG_LEVEL and so on. Publish credentials are
// only read from the environment (WAND_PUBLISH_ACCESS_KEY_ID,
// WAND_PUBLISH_SECRET_ACCESS_KEY, WAND_PUBLISH_SESSION_TOKEN).
//
// # Usage
//
//	cfg, err := config.Load(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	fmt.Println("Port:", cfg.Preview.Port)
package config
