// Package config loads the installer's Lua configuration file.
//
// A configuration file assigns a global ue4ss table:
//
//	ue4ss = {
//	  cache_dir  = "/home/deck/.cache/ue4ss-installer",
//	  repository = { owner = "UE4SS-RE", repo = "RE-UE4SS" },
//	  tag        = "~3.0",
//	  games      = {
//	    "/games/Palworld/Pal/Binaries/Win64",
//	    platform.is_windows and "D:/Games/Other" or nil,
//	  },
//	}
//
// Every field is optional. The file runs in a sandboxed VM without the os,
// io, debug or module loading libraries, and can read the host through the
// read-only platform table.
package config
