package main

import (
	"fmt"
)

const (
	app_name           = "trident-crypto"
	project_url        = "https://github.com/gatekeep/Trident.RPC"
	ver_major   uint8  = 0
	ver_minor   uint8  = 4
	ver_build   uint16 = 117
)

var build_flag string // -ldflags "-X main.build_flag=-beta"

var version uint32

func init() {
	var ver uint32
	ver |= uint32(ver_major) << 24
	ver |= uint32(ver_minor) << 16
	ver |= uint32(ver_build)
	version = ver
}

func versionString() string {
	return fmt.Sprintf("%s version: v%d.%d.%04d%s", app_name, ver_major, ver_minor, ver_build, build_flag)
}
